package xlsexport

import (
	"bytes"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"

	"wbl-portal-backend/lib/utils/helpers"
	dbmodels "wbl-portal-backend/models/db"
)

type Provider interface {
	ExportTimesheetList(list []dbmodels.Timesheet) (*bytes.Buffer, error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{}
}

type impl struct{}

var timesheetHeaders = []string{"Participant", "Email", "Case ID", "Week start", "Week end", "Total hours", "Status", "Submitted", "Reviewed", "Rejection reason"}

func (i impl) ExportTimesheetList(list []dbmodels.Timesheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			log.WithError(err).Error("error closing xlsx file")
		}
	}()
	sheet := "Sheet1"
	row := 0
	row, err := writeHeader(f, sheet, row, timesheetHeaders)
	if err != nil {
		return nil, errors.Wrap(err, "error writing xlsx header")
	}
	if len(list) != 0 {
		if err = writeTimesheetData(f, sheet, list, row); err != nil {
			return nil, errors.Wrap(err, "error writing xlsx data")
		}
	}
	f.SetSheetName(sheet, "Timesheets")
	return f.WriteToBuffer()
}

func writeTimesheetData(f *excelize.File, sheet string, list []dbmodels.Timesheet, row int) error {
	if err := applyDataCellStyle(f, sheet, 1, row+1, len(timesheetHeaders), len(list)+1); err != nil {
		return err
	}
	for _, item := range list {
		row++
		col := 1

		// "Participant"
		if item.Participant != nil {
			if err := writeColumn(f, sheet, col, row, item.Participant.GetFullName()); err != nil {
				return err
			}
		}

		// "Email"
		col++
		if item.Participant != nil {
			if err := writeColumn(f, sheet, col, row, item.Participant.Email); err != nil {
				return err
			}
		}

		// "Case ID"
		col++
		if item.Participant != nil {
			if err := writeColumn(f, sheet, col, row, item.Participant.CaseID); err != nil {
				return err
			}
		}

		// "Week start"
		col++
		if err := writeColumn(f, sheet, col, row, helpers.FormatDate(item.WeekStart)); err != nil {
			return err
		}

		// "Week end"
		col++
		if err := writeColumn(f, sheet, col, row, helpers.FormatDate(item.WeekEnd)); err != nil {
			return err
		}

		// "Total hours"
		col++
		if err := writeColumn(f, sheet, col, row, item.TotalHours); err != nil {
			return err
		}

		// "Status"
		col++
		if err := writeColumn(f, sheet, col, row, item.Status.ToHuman()); err != nil {
			return err
		}

		// "Submitted"
		col++
		if item.SubmittedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.SubmittedAt.Format("01/02/2006 15:04")); err != nil {
				return err
			}
		}

		// "Reviewed"
		col++
		if item.ReviewedAt != nil {
			if err := writeColumn(f, sheet, col, row, item.ReviewedAt.Format("01/02/2006 15:04")); err != nil {
				return err
			}
		}

		// "Rejection reason"
		col++
		if err := writeColumn(f, sheet, col, row, item.RejectionReason); err != nil {
			return err
		}
	}
	return nil
}
