package pdfexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	dbmodels "wbl-portal-backend/models/db"
)

func TestGenerateTimesheet(t *testing.T) {
	weekStart := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	sigDate := time.Date(2023, 6, 9, 0, 0, 0, 0, time.UTC)
	ts := dbmodels.Timesheet{
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDate(0, 0, 6),
		TotalHours:    12.3,
		SignatureDate: &sigDate,
		Entries: []dbmodels.TimeEntry{
			{Date: weekStart, StartTime: "08:00", LunchOut: "12:00", LunchIn: "12:30", EndTime: "16:30", Hours: 8},
			{Date: weekStart.AddDate(0, 0, 1), StartTime: "08:00", EndTime: "12:20", Hours: 4.3},
		},
	}
	participant := dbmodels.Participant{FirstName: "Jane", LastName: "Doe", CaseID: "C-1001", JobTitle: "Library Aide"}
	enrollment := &dbmodels.Enrollment{WorksiteName: "City Library", SupervisorName: "Pat Smith", WorksitePhone: "813-555-0100"}

	file, err := GenerateTimesheet(ts, participant, enrollment, "Career Focus Inc.", "Wesley Chapel, FL")
	require.NoError(t, err)
	require.NotEmpty(t, file)
	require.Equal(t, "%PDF", string(file[:4]))

	t.Run("without enrollment or entries", func(t *testing.T) {
		bare, err := GenerateTimesheet(dbmodels.Timesheet{WeekStart: weekStart}, participant, nil, "x", "y")
		require.NoError(t, err)
		require.NotEmpty(t, bare)
	})

	t.Run("invalid signature payload falls back to a line", func(t *testing.T) {
		signed := ts
		signed.Signature = "not base64!!"
		file, err := GenerateTimesheet(signed, participant, enrollment, "x", "y")
		require.NoError(t, err)
		require.NotEmpty(t, file)
	})
}
