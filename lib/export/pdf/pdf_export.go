package pdfexport

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/pkg/errors"

	"wbl-portal-backend/lib/utils/helpers"
	dbmodels "wbl-portal-backend/models/db"
)

// Florida VR/DOE form palette.
var (
	headerBlue = [3]int{217, 232, 245}
	borderGray = [3]int{102, 102, 102}
)

const (
	infoLabelW1 = 40.6
	infoValueW1 = 54.6
	infoLabelW2 = 43.2
	infoValueW2 = 52.1

	minTimeRows = 10
)

var timeColWidths = []float64{30.5, 29.2, 29.2, 29.2, 29.2, 22.9}
var timeHeaders = []string{"DATE", "TIME IN", "TIME OUT", "TIME IN", "TIME OUT", "TOTAL"}

// GenerateTimesheet draws the On the Job Training / Work Based Learning
// Experience timesheet without a DOCX template. The layout mirrors the
// mandated form: info grid, six-column time table padded to ten rows, total
// row, signature block and accessibility footer.
func GenerateTimesheet(ts dbmodels.Timesheet, participant dbmodels.Participant, enrollment *dbmodels.Enrollment, employerName, employerAddress string) (pdfFile []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Errorf("GenerateTimesheet panic recover: %v", r)
		}
	}()
	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(12.7, 10, 12.7)
	pdf.SetAutoPageBreak(true, 10)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 12)
	pdf.MultiCell(0, 6, "ON THE JOB TRAINING/WORK BASED LEARNING EXPERIENCE TIMESHEET", "", "C", false)
	pdf.Ln(3)

	worksiteName, worksitePhone, supervisorName := "", "", ""
	if enrollment != nil {
		worksiteName = enrollment.WorksiteName
		worksitePhone = enrollment.WorksitePhone
		supervisorName = enrollment.SupervisorName
	}

	infoRows := [][4]string{
		{"Participant Name:", participant.GetFullName(), "Case ID Number:", participant.CaseID},
		{"Name of Employer of Record:", employerName, "Place of Employment/Worksite:", worksiteName},
		{"Participant Job Title:", participant.JobTitle, "Supervisor Name:", supervisorName},
		{"Employer Address:", employerAddress, "Employer Phone Number:", worksitePhone},
	}
	pdf.SetDrawColor(borderGray[0], borderGray[1], borderGray[2])
	for _, row := range infoRows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.SetFillColor(headerBlue[0], headerBlue[1], headerBlue[2])
		pdf.CellFormat(infoLabelW1, 8, row[0], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(infoValueW1, 8, row[1], "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(infoLabelW2, 8, row[2], "1", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(infoValueW2, 8, row[3], "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(0, 5, "COMPLETE TABLE FOR TOTAL HOURS WORKED PER WORK WEEK:", "", 1, "L", false, 0, "")
	pdf.Ln(1)

	pdf.SetFillColor(headerBlue[0], headerBlue[1], headerBlue[2])
	for i, header := range timeHeaders {
		last := 0
		if i == len(timeHeaders)-1 {
			last = 1
		}
		pdf.CellFormat(timeColWidths[i], 7, header, "1", last, "C", true, 0, "")
	}

	pdf.SetFont("Helvetica", "", 9)
	rows := 0
	for _, entry := range ts.Entries {
		writeTimeRow(pdf, [6]string{
			helpers.FormatDateShort(entry.Date),
			helpers.FormatClock(entry.StartTime),
			helpers.FormatClock(entry.LunchOut),
			helpers.FormatClock(entry.LunchIn),
			helpers.FormatClock(entry.EndTime),
			helpers.FormatHours(entry.Hours),
		})
		rows++
	}
	for ; rows < minTimeRows; rows++ {
		writeTimeRow(pdf, [6]string{})
	}

	pdf.SetFillColor(headerBlue[0], headerBlue[1], headerBlue[2])
	for i := 0; i < 4; i++ {
		pdf.CellFormat(timeColWidths[i], 7, "", "1", 0, "C", true, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(timeColWidths[4], 7, "TOTAL:", "1", 0, "C", true, 0, "")
	pdf.CellFormat(timeColWidths[5], 7, fmt.Sprintf("%.1f", ts.TotalHours), "1", 1, "C", true, 0, "")
	pdf.Ln(10)

	writeSignatureBlock(pdf, ts, participant)

	pdf.SetFont("Helvetica", "I", 7)
	pdf.SetTextColor(128, 128, 128)
	pdf.MultiCell(0, 3.5, "If you have any difficulty regarding accessibility of this form or any data fields, "+
		"contact Vocational Rehabilitation: Vremploymentserviceproviders@vr.fldoe.org\n"+
		"Stevens Amendment Language | Vocational Rehabilitation | Florida Department of Education (rehabworks.org)", "", "L", false)

	if pdf.Error() != nil {
		return nil, pdf.Error()
	}
	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeTimeRow(pdf *fpdf.Fpdf, cells [6]string) {
	for i, cell := range cells {
		last := 0
		if i == len(cells)-1 {
			last = 1
		}
		pdf.CellFormat(timeColWidths[i], 7, cell, "1", last, "C", false, 0, "")
	}
}

func writeSignatureBlock(pdf *fpdf.Fpdf, ts dbmodels.Timesheet, participant dbmodels.Participant) {
	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(46, 8, "PARTICIPANT SIGNATURE:", "", 0, "L", false, 0, "")

	sigImage := decodeSignature(ts.Signature)
	if sigImage != nil {
		x, y := pdf.GetX(), pdf.GetY()
		pdf.RegisterImageOptionsReader("signature", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(sigImage))
		pdf.ImageOptions("signature", x, y-4, 50, 12.5, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
		pdf.SetX(x + 64)
	} else {
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(64, 8, strings.Repeat("_", 30), "", 0, "L", false, 0, "")
	}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(15, 8, "DATE:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	sigDate := strings.Repeat("_", 25)
	if ts.SignatureDate != nil {
		sigDate = helpers.FormatDate(*ts.SignatureDate)
	}
	pdf.CellFormat(50, 8, sigDate, "", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(56, 8, "PARTICIPANT PRINTED NAME:", "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(100, 8, participant.GetFullName(), "B", 1, "L", false, 0, "")
	pdf.Ln(8)
}

// decodeSignature accepts the stored payload with or without a data-URL
// prefix; anything undecodable falls back to a signature line.
func decodeSignature(payload string) []byte {
	if payload == "" {
		return nil
	}
	if idx := strings.Index(payload, ","); idx >= 0 {
		payload = payload[idx+1:]
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil
	}
	return raw
}
