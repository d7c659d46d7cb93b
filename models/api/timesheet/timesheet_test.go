package timesheetapimodels

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

func TestTimesheetCreateDataValidate(t *testing.T) {
	require.NoError(t, TimesheetCreateData{WeekStart: "2023-06-05"}.Validate())
	require.NoError(t, TimesheetCreateData{WeekStart: "2023-06-05", WeekEnd: "2023-06-11"}.Validate())
	require.Error(t, TimesheetCreateData{}.Validate())
	require.Error(t, TimesheetCreateData{WeekStart: "06/05/2023"}.Validate())
	require.Error(t, TimesheetCreateData{WeekStart: "2023-06-05", WeekEnd: "soon"}.Validate())
}

func TestTimesheetSignDataValidate(t *testing.T) {
	require.NoError(t, TimesheetSignData{Signature: "iVBORw0KGgo="}.Validate())
	require.NoError(t, TimesheetSignData{Signature: "iVBORw0KGgo=", SignatureDate: "2023-06-09"}.Validate())
	require.Error(t, TimesheetSignData{}.Validate())
	require.Error(t, TimesheetSignData{Signature: "x", SignatureDate: "June 9"}.Validate())
}

func TestTimesheetFilter(t *testing.T) {
	require.NoError(t, TimesheetFilter{}.Validate())
	require.NoError(t, TimesheetFilter{Status: models.TimesheetStatusDraft}.Validate())
	require.Error(t, TimesheetFilter{Status: "archived"}.Validate())

	page, limit := TimesheetFilter{}.GetPage()
	require.Equal(t, 1, page)
	require.Equal(t, 20, limit)

	page, limit = TimesheetFilter{Page: 3, Limit: 500}.GetPage()
	require.Equal(t, 3, page)
	require.Equal(t, 100, limit)
}

func TestTimesheetConvert(t *testing.T) {
	weekStart := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	submitted := time.Date(2023, 6, 12, 9, 30, 0, 0, time.UTC)
	rec := dbmodels.Timesheet{
		BaseModel:     dbmodels.BaseModel{ID: "ts-1"},
		ParticipantID: "p-1",
		Participant:   &dbmodels.Participant{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDate(0, 0, 6),
		TotalHours:    12.3,
		Status:        models.TimesheetStatusSubmitted,
		SubmittedAt:   &submitted,
		Signature:     "payload",
		Entries: []dbmodels.TimeEntry{
			{Date: weekStart, StartTime: "08:00", EndTime: "16:30", Hours: 8},
			{Date: weekStart.AddDate(0, 0, 1), Hours: 4.3},
		},
	}

	view := TimesheetConvert(rec)
	require.Equal(t, "ts-1", view.ID)
	require.Equal(t, "Jane Doe", view.ParticipantName)
	require.Equal(t, "jane@example.com", view.ParticipantEmail)
	require.Equal(t, "2023-06-05", view.WeekStart)
	require.Equal(t, "2023-06-11", view.WeekEnd)
	require.Equal(t, "submitted", view.Status)
	require.Equal(t, "Pending review", view.StatusName)
	require.True(t, view.Signed)
	require.Len(t, view.Entries, 2)
	require.Equal(t, "2023-06-05", view.Entries[0].Date)
	require.Equal(t, 8.0, view.Entries[0].Hours)
}
