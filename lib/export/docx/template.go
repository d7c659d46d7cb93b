package docxexport

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"

	"github.com/beevik/etree"

	"wbl-portal-backend/models"
)

const documentPart = "word/document.xml"

// FieldContext is the structural path of a fillable position: which table,
// row and cell it sits in, or free-standing when TableIndex is -1. Tables are
// counted in document order.
type FieldContext struct {
	TableIndex int
	RowIndex   int
	CellIndex  int
}

func (c FieldContext) InTable() bool {
	return c.TableIndex >= 0
}

// FieldPosition is one anonymous content control in document order. The
// template format has no named fields; a position is addressed purely by its
// order and structural context.
type FieldPosition struct {
	Context FieldContext
	sdt     *etree.Element
}

// Template is the parsed structural tree of a DOCX form. It is parsed fresh
// from the raw bytes on every render and never cached; mutations happen on
// this in-memory copy only.
type Template struct {
	parts     []zipPart
	doc       *etree.Document
	body      *etree.Element
	tables    []*etree.Element
	positions []FieldPosition
}

type zipPart struct {
	name string
	data []byte
}

// LoadTemplate unpacks the archive and walks the document body collecting
// every fillable position in document order. A template without the document
// part or a readable body is structurally broken.
func LoadTemplate(raw []byte) (*Template, error) {
	reader, err := zip.NewReader(bytes.NewReader(raw), int64(len(raw)))
	if err != nil {
		return nil, models.NewTemplateStructureError("not a valid archive: %v", err)
	}
	tpl := &Template{}
	var docXML []byte
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			return nil, models.NewTemplateStructureError("cannot open part %s: %v", file.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, models.NewTemplateStructureError("cannot read part %s: %v", file.Name, err)
		}
		tpl.parts = append(tpl.parts, zipPart{name: file.Name, data: data})
		if file.Name == documentPart {
			docXML = data
		}
	}
	if docXML == nil {
		return nil, models.NewTemplateStructureError("missing %s", documentPart)
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(docXML); err != nil {
		return nil, models.NewTemplateStructureError("cannot parse %s: %v", documentPart, err)
	}
	root := doc.Root()
	if root == nil {
		return nil, models.NewTemplateStructureError("empty document part")
	}
	body := root.SelectElement("w:body")
	if body == nil {
		return nil, models.NewTemplateStructureError("document has no body")
	}
	tpl.doc = doc
	tpl.body = body
	tpl.collect(body, FieldContext{TableIndex: -1})
	return tpl, nil
}

// collect walks the tree in document order. Entering a table rebinds the
// context for everything below it; a nested sdt inside another sdt's content
// is not collected twice.
func (t *Template) collect(el *etree.Element, ctx FieldContext) {
	for _, child := range el.ChildElements() {
		switch {
		case child.Space == "w" && child.Tag == "tbl":
			t.collectTable(child)
		case child.Space == "w" && child.Tag == "sdt":
			t.positions = append(t.positions, FieldPosition{Context: ctx, sdt: child})
		default:
			t.collect(child, ctx)
		}
	}
}

func (t *Template) collectTable(tbl *etree.Element) {
	tableIdx := len(t.tables)
	t.tables = append(t.tables, tbl)
	rowIdx := 0
	for _, rowEl := range tbl.ChildElements() {
		if rowEl.Space != "w" || rowEl.Tag != "tr" {
			continue
		}
		cellIdx := 0
		for _, cellEl := range rowEl.ChildElements() {
			if cellEl.Space != "w" || cellEl.Tag != "tc" {
				continue
			}
			t.collect(cellEl, FieldContext{TableIndex: tableIdx, RowIndex: rowIdx, CellIndex: cellIdx})
			cellIdx++
		}
		rowIdx++
	}
}

func (t *Template) Positions() []FieldPosition {
	return t.positions
}

func (t *Template) TableCount() int {
	return len(t.tables)
}

// TimeRowCapacity is the number of complete entry rows the time table can
// hold, given its fillable positions. This is the hard ceiling above which
// entries are dropped at render time.
func (t *Template) TimeRowCapacity(tableIndex, valuesPerRow int) int {
	count := 0
	for _, pos := range t.positions {
		if pos.Context.TableIndex == tableIndex {
			count++
		}
	}
	return count / valuesPerRow
}

// SetCellText overwrites the text of a structurally addressed cell, bypassing
// the positional resolver. Used for derived aggregates such as the week total.
// Negative row or cell indices address from the end of the table.
func (t *Template) SetCellText(tableIndex, rowIndex, cellIndex int, value string) error {
	if tableIndex < 0 || tableIndex >= len(t.tables) {
		return models.NewTemplateStructureError("table %d not present", tableIndex)
	}
	var rows []*etree.Element
	for _, el := range t.tables[tableIndex].ChildElements() {
		if el.Space == "w" && el.Tag == "tr" {
			rows = append(rows, el)
		}
	}
	if rowIndex < 0 {
		rowIndex += len(rows)
	}
	if rowIndex < 0 || rowIndex >= len(rows) {
		return models.NewTemplateStructureError("table %d has no row %d", tableIndex, rowIndex)
	}
	var cells []*etree.Element
	for _, el := range rows[rowIndex].ChildElements() {
		if el.Space == "w" && el.Tag == "tc" {
			cells = append(cells, el)
		}
	}
	if cellIndex < 0 {
		cellIndex += len(cells)
	}
	if cellIndex < 0 || cellIndex >= len(cells) {
		return models.NewTemplateStructureError("table %d row %d has no cell %d", tableIndex, rowIndex, cellIndex)
	}
	setCellText(cells[cellIndex], value)
	return nil
}

// Bytes serializes the mutated tree back into the archive. Entry order and
// names are preserved so an unchanged render is byte-for-byte reproducible.
func (t *Template) Bytes() ([]byte, error) {
	docXML, err := t.doc.WriteToBytes()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	writer := zip.NewWriter(&buf)
	for _, part := range t.parts {
		header := &zip.FileHeader{Name: part.name, Method: zip.Deflate}
		w, err := writer.CreateHeader(header)
		if err != nil {
			return nil, err
		}
		data := part.data
		if part.name == documentPart {
			data = docXML
		}
		if _, err := w.Write(data); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Text returns the visible content of the position.
func (p FieldPosition) Text() string {
	var sb strings.Builder
	content := p.sdt.SelectElement("w:sdtContent")
	if content == nil {
		return ""
	}
	for _, textEl := range content.FindElements(".//w:t") {
		sb.WriteString(textEl.Text())
	}
	return sb.String()
}

var placeholderMarkers = map[string]bool{
	"Click or tap here to enter text.": true,
	"Click here to enter text.":        true,
	"Choose an item.":                  true,
	"Click or tap to enter a date.":    true,
	"Enter a date.":                    true,
}

// IsPlaceholder reports whether the position still shows template scaffolding
// rather than user-authored content. Only such positions may be overwritten.
func (p FieldPosition) IsPlaceholder() bool {
	if p.sdt.FindElement("w:sdtPr/w:showingPlcHdr") != nil {
		return true
	}
	text := strings.TrimSpace(p.Text())
	if text == "" {
		return true
	}
	if placeholderMarkers[text] {
		return true
	}
	return strings.Trim(text, "_") == ""
}

// SetText replaces the position content with a single literal value and drops
// the placeholder flag. Extra text runs beyond the first are removed so the
// cell holds exactly the bound value.
func (p FieldPosition) SetText(value string) {
	content := p.sdt.SelectElement("w:sdtContent")
	if content == nil {
		content = p.sdt.CreateElement("w:sdtContent")
	}
	texts := content.FindElements(".//w:t")
	if len(texts) == 0 {
		holder := content.SelectElement("w:p")
		if holder == nil {
			holder = content
		}
		run := holder.CreateElement("w:r")
		texts = append(texts, run.CreateElement("w:t"))
	}
	first := texts[0]
	first.SetText(value)
	first.CreateAttr("xml:space", "preserve")
	for _, extra := range texts[1:] {
		if parent := extra.Parent(); parent != nil {
			parent.RemoveChild(extra)
		}
	}
	if pr := p.sdt.SelectElement("w:sdtPr"); pr != nil {
		if flag := pr.SelectElement("w:showingPlcHdr"); flag != nil {
			pr.RemoveChild(flag)
		}
	}
}

// Blank clears the position content entirely. Used by the post-pass so no
// scaffolding text leaks into a rendered document.
func (p FieldPosition) Blank() {
	p.SetText("")
}

func setCellText(cell *etree.Element, value string) {
	para := cell.SelectElement("w:p")
	if para == nil {
		para = cell.CreateElement("w:p")
	}
	for _, run := range para.SelectElements("w:r") {
		para.RemoveChild(run)
	}
	run := para.CreateElement("w:r")
	textEl := run.CreateElement("w:t")
	textEl.SetText(value)
	textEl.CreateAttr("xml:space", "preserve")
}
