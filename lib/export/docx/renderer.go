package docxexport

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"wbl-portal-backend/lib/utils/helpers"
	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

// signedMarker is what a captured electronic signature binds as; the image
// payload itself stays on the record.
const signedMarker = "Signed electronically"

type Provider interface {
	Render(templateRaw []byte, data RenderData) (RenderResult, error)
}

var Instance Provider

// NewHandler wires a stateless renderer. Nothing is retained between calls:
// the template is reparsed and the ledger rebuilt on every render, so values
// can never leak across timesheets and template edits take effect immediately.
func NewHandler() {
	Instance = impl{}
}

type impl struct{}

type RenderData struct {
	Header     HeaderValues
	Rows       []EntryRowValues
	Signature  SignatureValues
	TotalHours float64
}

type RenderResult struct {
	File []byte
	// Truncated is informational: set when the template held fewer time rows
	// than the timesheet has entries and the excess was dropped.
	Truncated *models.CapacityExceededError
}

// BuildRenderData flattens a timesheet plus its externally owned identity and
// enrollment data into the ordered ledger segments. Entries keep their
// insertion order; the enrollment may be absent.
func BuildRenderData(ts dbmodels.Timesheet, participant dbmodels.Participant, enrollment *dbmodels.Enrollment, employerName, employerAddress string) RenderData {
	header := HeaderValues{
		ParticipantName: participant.GetFullName(),
		CaseID:          participant.CaseID,
		EmployerName:    employerName,
		JobTitle:        participant.JobTitle,
		EmployerAddress: employerAddress,
	}
	if enrollment != nil {
		header.WorksiteName = enrollment.WorksiteName
		header.SupervisorName = enrollment.SupervisorName
		header.WorksitePhone = enrollment.WorksitePhone
	}
	rows := make([]EntryRowValues, 0, len(ts.Entries))
	for _, entry := range ts.Entries {
		rows = append(rows, EntryRowValues{
			Date:        helpers.FormatDateShort(entry.Date),
			ShiftOneIn:  helpers.FormatClock(entry.StartTime),
			ShiftOneOut: helpers.FormatClock(entry.LunchOut),
			ShiftTwoIn:  helpers.FormatClock(entry.LunchIn),
			ShiftTwoOut: helpers.FormatClock(entry.EndTime),
			Hours:       helpers.FormatHours(entry.Hours),
		})
	}
	signature := SignatureValues{
		PrintedName: participant.GetFullName(),
	}
	if ts.Signature != "" {
		signature.Signature = signedMarker
	}
	if ts.SignatureDate != nil {
		signature.SignatureDate = helpers.FormatDate(*ts.SignatureDate)
	}
	return RenderData{
		Header:     header,
		Rows:       rows,
		Signature:  signature,
		TotalHours: ts.TotalHours,
	}
}

// Render loads the template tree, binds every fillable position through the
// resolver, writes the week total into its fixed cell and serializes the
// result. The input bytes and the stored timesheet are never mutated.
func (i impl) Render(templateRaw []byte, data RenderData) (RenderResult, error) {
	tpl, err := LoadTemplate(templateRaw)
	if err != nil {
		return RenderResult{}, err
	}
	if tpl.TableCount() < 2 {
		return RenderResult{}, models.NewTemplateStructureError("expected info and time tables, found %d table(s)", tpl.TableCount())
	}

	result := RenderResult{}
	capacity := tpl.TimeRowCapacity(timeRowTableIndex, ValuesPerTimeRow)
	rows := data.Rows
	if len(rows) > capacity {
		result.Truncated = &models.CapacityExceededError{Entries: len(rows), TemplateRows: capacity}
		log.WithField("entries", len(rows)).
			WithField("template_rows", capacity).
			Warn(result.Truncated.Error())
		rows = rows[:capacity]
	}

	ledger := NewLedger(data.Header, rows, data.Signature)
	Resolve(tpl, ledger)

	// The total is a derived aggregate, not a per-entry value; it is addressed
	// structurally: time table, last row, trailing column.
	if err := tpl.SetCellText(timeRowTableIndex, -1, -1, fmt.Sprintf("%.1f", data.TotalHours)); err != nil {
		return RenderResult{}, err
	}

	// Post-pass: no scaffolding text may leak into a rendered document.
	for _, pos := range tpl.Positions() {
		if pos.IsPlaceholder() {
			pos.Blank()
		}
	}

	file, err := tpl.Bytes()
	if err != nil {
		return RenderResult{}, err
	}
	result.File = file
	return result, nil
}
