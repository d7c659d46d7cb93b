package docxexport

import (
	"archive/zip"
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/require"

	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

func placeholderSdt(marker string) string {
	return `<w:sdt><w:sdtPr><w:showingPlcHdr/></w:sdtPr><w:sdtContent><w:p><w:r><w:t>` +
		marker + `</w:t></w:r></w:p></w:sdtContent></w:sdt>`
}

func filledSdt(text string) string {
	return `<w:sdt><w:sdtPr/><w:sdtContent><w:p><w:r><w:t>` +
		text + `</w:t></w:r></w:p></w:sdtContent></w:sdt>`
}

func plainCell(text string) string {
	return `<w:tc><w:p><w:r><w:t>` + text + `</w:t></w:r></w:p></w:tc>`
}

// buildTestForm assembles a minimal archive shaped like the mandated form:
// an info table with eight fillable positions, a time table with a heading
// row, timeRows data rows of six positions each and a trailing total row,
// then a free-standing paragraph with the three signature positions.
func buildTestForm(t *testing.T, timeRows int) []byte {
	t.Helper()
	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	sb.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)

	sb.WriteString(`<w:tbl>`)
	for row := 0; row < 2; row++ {
		sb.WriteString(`<w:tr>`)
		for cell := 0; cell < 4; cell++ {
			sb.WriteString(`<w:tc>` + placeholderSdt("Click or tap here to enter text.") + `</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)

	sb.WriteString(`<w:tbl>`)
	sb.WriteString(`<w:tr>`)
	for _, heading := range []string{"DATE", "TIME IN", "TIME OUT", "TIME IN", "TIME OUT", "TOTAL"} {
		sb.WriteString(plainCell(heading))
	}
	sb.WriteString(`</w:tr>`)
	for row := 0; row < timeRows; row++ {
		sb.WriteString(`<w:tr>`)
		for cell := 0; cell < 6; cell++ {
			sb.WriteString(`<w:tc>` + placeholderSdt("Click or tap here to enter text.") + `</w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`<w:tr>` + strings.Repeat(plainCell(""), 4) + plainCell("TOTAL:") + plainCell("") + `</w:tr>`)
	sb.WriteString(`</w:tbl>`)

	sb.WriteString(`<w:p>` + placeholderSdt("Click or tap here to enter text.") +
		placeholderSdt("Click or tap to enter a date.") +
		placeholderSdt("Click or tap here to enter text.") + `</w:p>`)
	sb.WriteString(`</w:body></w:document>`)

	return buildArchive(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types/>`,
		"word/document.xml":   sb.String(),
	})
}

func buildArchive(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "word/document.xml"} {
		data, ok := parts[name]
		if !ok {
			continue
		}
		w, err := writer.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(data))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return buf.Bytes()
}

func documentTexts(t *testing.T, raw []byte) []string {
	t.Helper()
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	require.NoError(t, err)
	for _, file := range reader.File {
		if file.Name != documentPart {
			continue
		}
		rc, err := file.Open()
		require.NoError(t, err)
		doc := etree.NewDocument()
		_, err = doc.ReadFrom(rc)
		rc.Close()
		require.NoError(t, err)
		var texts []string
		for _, el := range doc.FindElements("//w:t") {
			texts = append(texts, el.Text())
		}
		return texts
	}
	t.Fatalf("archive has no %s", documentPart)
	return nil
}

func testRenderData(entries int) RenderData {
	data := RenderData{
		Header: HeaderValues{
			ParticipantName: "Jane Doe",
			CaseID:          "C-1001",
			EmployerName:    "Career Focus Inc.",
			WorksiteName:    "City Library",
			JobTitle:        "Library Aide",
			SupervisorName:  "Pat Smith",
			EmployerAddress: "6013 Wesley Grove Boulevard, Suite 202, Wesley Chapel, FL 33544",
			WorksitePhone:   "813-555-0100",
		},
		Signature: SignatureValues{
			Signature:     "Signed electronically",
			SignatureDate: "06/05/2023",
			PrintedName:   "Jane Doe",
		},
		TotalHours: 12,
	}
	for i := 0; i < entries; i++ {
		data.Rows = append(data.Rows, EntryRowValues{
			Date:        fmt.Sprintf("Mon 06/%02d", i+1),
			ShiftOneIn:  "08:00 AM",
			ShiftOneOut: "12:00 PM",
			ShiftTwoIn:  "12:30 PM",
			ShiftTwoOut: "04:30 PM",
			Hours:       "8.0",
		})
	}
	return data
}

func TestLoadTemplate(t *testing.T) {
	raw := buildTestForm(t, 7)
	tpl, err := LoadTemplate(raw)
	require.NoError(t, err)

	require.Equal(t, 2, tpl.TableCount())
	require.Len(t, tpl.Positions(), 8+7*6+3)
	require.Equal(t, 7, tpl.TimeRowCapacity(timeRowTableIndex, ValuesPerTimeRow))

	segments := map[Segment]int{}
	for _, pos := range tpl.Positions() {
		seg, ok := classify(pos.Context)
		require.True(t, ok)
		segments[seg]++
	}
	require.Equal(t, 8, segments[SegmentHeader])
	require.Equal(t, 7*6, segments[SegmentTimeRow])
	require.Equal(t, 3, segments[SegmentSignature])
}

func TestLoadTemplateBroken(t *testing.T) {
	t.Run("not an archive", func(t *testing.T) {
		_, err := LoadTemplate([]byte("plain text"))
		require.True(t, models.IsTemplateStructureError(err))
	})
	t.Run("missing document part", func(t *testing.T) {
		raw := buildArchive(t, map[string]string{"[Content_Types].xml": `<?xml version="1.0"?><Types/>`})
		_, err := LoadTemplate(raw)
		require.True(t, models.IsTemplateStructureError(err))
	})
	t.Run("single table", func(t *testing.T) {
		raw := buildArchive(t, map[string]string{
			"word/document.xml": `<?xml version="1.0"?><w:document xmlns:w="ns"><w:body><w:tbl/></w:body></w:document>`,
		})
		_, err := impl{}.Render(raw, testRenderData(1))
		require.True(t, models.IsTemplateStructureError(err))
	})
}

func TestRender(t *testing.T) {
	raw := buildTestForm(t, 7)
	data := testRenderData(2)

	result, err := impl{}.Render(raw, data)
	require.NoError(t, err)
	require.Nil(t, result.Truncated)

	texts := documentTexts(t, result.File)
	joined := strings.Join(texts, "|")

	require.Contains(t, joined, "Jane Doe")
	require.Contains(t, joined, "C-1001")
	require.Contains(t, joined, "City Library")
	require.Contains(t, joined, "Mon 06/01")
	require.Contains(t, joined, "Mon 06/02")
	require.Contains(t, joined, "12.0")
	require.NotContains(t, joined, "Click or tap")

	// ledger order within the header segment is the form's field order
	idxName := strings.Index(joined, "Jane Doe")
	idxCase := strings.Index(joined, "C-1001")
	idxWorksite := strings.Index(joined, "City Library")
	require.Less(t, idxName, idxCase)
	require.Less(t, idxCase, idxWorksite)
}

func TestRenderTruncatesBeyondCapacity(t *testing.T) {
	raw := buildTestForm(t, 2)
	data := testRenderData(5)

	result, err := impl{}.Render(raw, data)
	require.NoError(t, err)
	require.NotNil(t, result.Truncated)
	require.Equal(t, 5, result.Truncated.Entries)
	require.Equal(t, 2, result.Truncated.TemplateRows)

	joined := strings.Join(documentTexts(t, result.File), "|")
	require.Contains(t, joined, "Mon 06/01")
	require.Contains(t, joined, "Mon 06/02")
	require.NotContains(t, joined, "Mon 06/03")
}

func TestRenderExhaustedSegmentsBindEmpty(t *testing.T) {
	raw := buildTestForm(t, 7)
	data := testRenderData(2)

	result, err := impl{}.Render(raw, data)
	require.NoError(t, err)

	// rows three to seven stay blank, no scaffolding text remains
	joined := strings.Join(documentTexts(t, result.File), "|")
	require.NotContains(t, joined, "Click or tap")
	require.NotContains(t, joined, "Mon 06/03")
}

func TestRenderKeepsAuthoredContent(t *testing.T) {
	raw := buildTestForm(t, 1)
	// swap the first header placeholder for authored content
	tpl, err := LoadTemplate(raw)
	require.NoError(t, err)
	tpl.Positions()[0].SetText("Prefilled Name")
	mutated, err := tpl.Bytes()
	require.NoError(t, err)

	data := testRenderData(1)
	result, err := impl{}.Render(mutated, data)
	require.NoError(t, err)

	joined := strings.Join(documentTexts(t, result.File), "|")
	require.Contains(t, joined, "Prefilled Name")
	// the authored position does not consume the first ledger value; the name
	// binds to the next placeholder instead
	require.Contains(t, joined, "Jane Doe")
}

func TestRenderIdempotent(t *testing.T) {
	raw := buildTestForm(t, 7)
	data := testRenderData(3)

	first, err := impl{}.Render(raw, data)
	require.NoError(t, err)
	second, err := impl{}.Render(raw, data)
	require.NoError(t, err)
	require.Equal(t, first.File, second.File)
}

func TestRenderWritesTotalCell(t *testing.T) {
	raw := buildTestForm(t, 2)
	data := testRenderData(1)
	data.TotalHours = 37.5

	result, err := impl{}.Render(raw, data)
	require.NoError(t, err)
	joined := strings.Join(documentTexts(t, result.File), "|")
	require.Contains(t, joined, "37.5")
	require.Contains(t, joined, "TOTAL:")
}

func TestBuildRenderData(t *testing.T) {
	weekStart := time.Date(2023, 6, 5, 0, 0, 0, 0, time.UTC)
	sigDate := time.Date(2023, 6, 9, 0, 0, 0, 0, time.UTC)
	ts := dbmodels.Timesheet{
		WeekStart:     weekStart,
		WeekEnd:       weekStart.AddDate(0, 0, 6),
		TotalHours:    12,
		Signature:     "iVBORw0KGgo=",
		SignatureDate: &sigDate,
		Entries: []dbmodels.TimeEntry{
			{Date: weekStart, StartTime: "08:00", LunchOut: "12:00", LunchIn: "12:30", EndTime: "16:30", Hours: 8},
			{Date: weekStart.AddDate(0, 0, 1), StartTime: "08:00", EndTime: "12:00", Hours: 4},
		},
	}
	participant := dbmodels.Participant{FirstName: "Jane", LastName: "Doe", CaseID: "C-1001", JobTitle: "Library Aide"}
	enrollment := &dbmodels.Enrollment{WorksiteName: "City Library", SupervisorName: "Pat Smith", WorksitePhone: "813-555-0100"}

	data := BuildRenderData(ts, participant, enrollment, "Career Focus Inc.", "Somewhere, FL")

	require.Equal(t, "Jane Doe", data.Header.ParticipantName)
	require.Equal(t, "City Library", data.Header.WorksiteName)
	require.Equal(t, "Career Focus Inc.", data.Header.EmployerName)
	require.Len(t, data.Rows, 2)
	require.Equal(t, "Mon 06/05", data.Rows[0].Date)
	require.Equal(t, "08:00 AM", data.Rows[0].ShiftOneIn)
	require.Equal(t, "12:00 PM", data.Rows[0].ShiftOneOut)
	require.Equal(t, "8.0", data.Rows[0].Hours)
	require.Equal(t, "", data.Rows[1].ShiftTwoIn)
	require.Equal(t, "Signed electronically", data.Signature.Signature)
	require.Equal(t, "06/09/2023", data.Signature.SignatureDate)
	require.Equal(t, "Jane Doe", data.Signature.PrintedName)

	t.Run("no enrollment renders blank worksite fields", func(t *testing.T) {
		bare := BuildRenderData(ts, participant, nil, "Career Focus Inc.", "Somewhere, FL")
		require.Equal(t, "", bare.Header.WorksiteName)
		require.Equal(t, "", bare.Header.SupervisorName)
	})
	t.Run("unsigned timesheet leaves the signature position blank", func(t *testing.T) {
		unsigned := ts
		unsigned.Signature = ""
		unsigned.SignatureDate = nil
		bare := BuildRenderData(unsigned, participant, enrollment, "x", "y")
		require.Equal(t, "", bare.Signature.Signature)
		require.Equal(t, "", bare.Signature.SignatureDate)
	})
}

func TestLedger(t *testing.T) {
	ledger := NewLedger(
		HeaderValues{ParticipantName: "a", CaseID: "b"},
		[]EntryRowValues{{Date: "d1", Hours: "h1"}},
		SignatureValues{PrintedName: "p"},
	)
	require.Equal(t, 8, ledger.Remaining(SegmentHeader))
	require.Equal(t, 6, ledger.Remaining(SegmentTimeRow))
	require.Equal(t, 3, ledger.Remaining(SegmentSignature))

	require.Equal(t, "a", ledger.Next(SegmentHeader))
	require.Equal(t, "b", ledger.Next(SegmentHeader))
	require.Equal(t, "d1", ledger.Next(SegmentTimeRow))

	for i := 0; i < 10; i++ {
		ledger.Next(SegmentSignature)
	}
	require.Equal(t, "", ledger.Next(SegmentSignature))
	require.Equal(t, 0, ledger.Remaining(SegmentSignature))
}
