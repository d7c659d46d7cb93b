package xlsexport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

func TestExportTimesheetList(t *testing.T) {
	NewHandler()
	weekStart := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	submitted := time.Date(2023, 6, 12, 9, 30, 0, 0, time.UTC)
	list := []dbmodels.Timesheet{
		{
			Participant: &dbmodels.Participant{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com", CaseID: "C-1001"},
			WeekStart:   weekStart,
			WeekEnd:     weekStart.AddDate(0, 0, 6),
			TotalHours:  12.3,
			Status:      models.TimesheetStatusSubmitted,
			SubmittedAt: &submitted,
		},
		{
			WeekStart:       weekStart.AddDate(0, 0, 7),
			WeekEnd:         weekStart.AddDate(0, 0, 13),
			Status:          models.TimesheetStatusRejected,
			RejectionReason: "Missing supervisor signature",
		},
	}

	buf, err := Instance.ExportTimesheetList(list)
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Timesheets")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, timesheetHeaders, rows[0][:len(timesheetHeaders)])
	require.Equal(t, "Jane Doe", rows[1][0])
	require.Equal(t, "06/05/2023", rows[1][3])
	require.Equal(t, "Pending review", rows[1][6])
	require.Equal(t, "Missing supervisor signature", rows[2][9])

	t.Run("empty list still writes the header", func(t *testing.T) {
		buf, err := Instance.ExportTimesheetList(nil)
		require.NoError(t, err)
		f, err := excelize.OpenReader(buf)
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows("Timesheets")
		require.NoError(t, err)
		require.Len(t, rows, 1)
	})
}
