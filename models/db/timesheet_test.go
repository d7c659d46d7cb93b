package dbmodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wbl-portal-backend/models"
)

func TestCalcHours(t *testing.T) {
	date := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		entry   TimeEntry
		want    float64
		wantErr bool
	}{
		{
			name:  "full day with lunch",
			entry: TimeEntry{Date: date, StartTime: "08:00", LunchOut: "12:00", LunchIn: "12:30", EndTime: "16:30"},
			want:  8.0,
		},
		{
			name:  "half day without lunch",
			entry: TimeEntry{Date: date, StartTime: "08:00", EndTime: "12:00"},
			want:  4.0,
		},
		{
			name:  "break minutes subtracted",
			entry: TimeEntry{Date: date, StartTime: "09:00", EndTime: "17:00", BreakMinutes: 30},
			want:  7.5,
		},
		{
			name:  "lunch pair and break combined",
			entry: TimeEntry{Date: date, StartTime: "08:00", LunchOut: "12:00", LunchIn: "13:00", EndTime: "17:00", BreakMinutes: 15},
			want:  7.8,
		},
		{
			name:  "rounding to one decimal",
			entry: TimeEntry{Date: date, StartTime: "08:00", EndTime: "12:20"},
			want:  4.3,
		},
		{
			name:  "absent day keeps supplied hours",
			entry: TimeEntry{Date: date, Hours: 3.25},
			want:  3.3,
		},
		{
			name:  "only start recorded keeps supplied hours",
			entry: TimeEntry{Date: date, StartTime: "08:00", Hours: 2},
			want:  2.0,
		},
		{
			name:    "malformed start time",
			entry:   TimeEntry{Date: date, StartTime: "8am", EndTime: "12:00"},
			wantErr: true,
		},
		{
			name:    "inverted shift",
			entry:   TimeEntry{Date: date, StartTime: "16:00", EndTime: "08:00"},
			wantErr: true,
		},
		{
			name:    "inverted lunch interval",
			entry:   TimeEntry{Date: date, StartTime: "08:00", LunchOut: "13:00", LunchIn: "12:00", EndTime: "17:00"},
			wantErr: true,
		},
		{
			name:    "negative break",
			entry:   TimeEntry{Date: date, StartTime: "08:00", EndTime: "12:00", BreakMinutes: -10},
			wantErr: true,
		},
		{
			name:    "break exceeds worked time",
			entry:   TimeEntry{Date: date, StartTime: "08:00", EndTime: "09:00", BreakMinutes: 120},
			wantErr: true,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.entry.CalcHours()
			if tc.wantErr {
				require.Error(t, err)
				require.True(t, models.IsValidationError(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSumEntryHours(t *testing.T) {
	entries := []TimeEntry{{Hours: 8}, {Hours: 4.3}, {Hours: 0}, {Hours: 7.8}}
	require.Equal(t, 20.1, SumEntryHours(entries))
	require.Equal(t, 0.0, SumEntryHours(nil))
}

func TestTransitionGuards(t *testing.T) {
	t.Run("submit", func(t *testing.T) {
		require.NoError(t, Timesheet{Status: models.TimesheetStatusDraft}.CheckSubmit())
		require.NoError(t, Timesheet{Status: models.TimesheetStatusRejected}.CheckSubmit())

		err := Timesheet{Status: models.TimesheetStatusSubmitted}.CheckSubmit()
		require.True(t, models.IsInvalidStateError(err))
		err = Timesheet{Status: models.TimesheetStatusApproved}.CheckSubmit()
		require.True(t, models.IsInvalidStateError(err))
	})

	t.Run("edit", func(t *testing.T) {
		require.NoError(t, Timesheet{Status: models.TimesheetStatusDraft}.CheckEdit())
		require.NoError(t, Timesheet{Status: models.TimesheetStatusRejected}.CheckEdit())

		err := Timesheet{Status: models.TimesheetStatusSubmitted}.CheckEdit()
		require.True(t, models.IsInvalidStateError(err))
		err = Timesheet{Status: models.TimesheetStatusApproved}.CheckEdit()
		require.True(t, models.IsInvalidStateError(err))
	})

	t.Run("review", func(t *testing.T) {
		require.NoError(t, Timesheet{Status: models.TimesheetStatusSubmitted}.CheckReview())

		for _, status := range []models.TimesheetStatus{
			models.TimesheetStatusDraft,
			models.TimesheetStatusApproved,
			models.TimesheetStatusRejected,
		} {
			err := Timesheet{Status: status}.CheckReview()
			require.True(t, models.IsInvalidStateError(err), "status %s", status)
		}
	})

	t.Run("error carries state and transition", func(t *testing.T) {
		err := Timesheet{Status: models.TimesheetStatusApproved}.CheckEdit()
		require.EqualError(t, err, `cannot edit a timesheet in status "approved"`)
	})
}
