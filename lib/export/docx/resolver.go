package docxexport

// Table indices carry the segment classification: the first table on the form
// is the info block, the second the time table; positions outside any table
// belong to the signature block. Tables beyond the second are left untouched.
const (
	headerTableIndex  = 0
	timeRowTableIndex = 1
)

// classify maps a structural path onto a ledger segment. The bool is false
// for positions no segment claims.
func classify(ctx FieldContext) (Segment, bool) {
	if !ctx.InTable() {
		return SegmentSignature, true
	}
	switch ctx.TableIndex {
	case headerTableIndex:
		return SegmentHeader, true
	case timeRowTableIndex:
		return SegmentTimeRow, true
	}
	return 0, false
}

// Resolve walks the field tree in document order and binds each placeholder
// position to the next unused value of its segment. Positions holding
// user-authored content are never overwritten; an exhausted segment binds
// empty strings rather than failing.
func Resolve(tpl *Template, ledger *Ledger) {
	for _, pos := range tpl.Positions() {
		seg, ok := classify(pos.Context)
		if !ok {
			continue
		}
		if !pos.IsPlaceholder() {
			continue
		}
		pos.SetText(ledger.Next(seg))
	}
}
