package docxexport

// The form has no named fields, only anonymous ordered positions, so the
// order in which values are flattened here is a hard contract with the
// template layout. Segment sizes are fixed by the structs below; a template
// revision that reorders fields must be caught against this file, not
// papered over with index arithmetic at call sites.

// HeaderValues is the info-block segment, exactly eight values in form order.
type HeaderValues struct {
	ParticipantName string
	CaseID          string
	EmployerName    string
	WorksiteName    string
	JobTitle        string
	SupervisorName  string
	EmployerAddress string
	WorksitePhone   string
}

func (h HeaderValues) flatten() []string {
	return []string{
		h.ParticipantName,
		h.CaseID,
		h.EmployerName,
		h.WorksiteName,
		h.JobTitle,
		h.SupervisorName,
		h.EmployerAddress,
		h.WorksitePhone,
	}
}

// EntryRowValues is one time-table row: short date, the two in/out pairs and
// the decimal hours, six values in column order.
type EntryRowValues struct {
	Date        string
	ShiftOneIn  string
	ShiftOneOut string
	ShiftTwoIn  string
	ShiftTwoOut string
	Hours       string
}

// ValuesPerTimeRow is the time-table column count the template capacity is
// measured against.
const ValuesPerTimeRow = 6

func (r EntryRowValues) flatten() []string {
	return []string{
		r.Date,
		r.ShiftOneIn,
		r.ShiftOneOut,
		r.ShiftTwoIn,
		r.ShiftTwoOut,
		r.Hours,
	}
}

// SignatureValues is the signature block segment, exactly three values.
type SignatureValues struct {
	Signature     string
	SignatureDate string
	PrintedName   string
}

func (s SignatureValues) flatten() []string {
	return []string{
		s.Signature,
		s.SignatureDate,
		s.PrintedName,
	}
}

type Segment int

const (
	SegmentHeader Segment = iota
	SegmentTimeRow
	SegmentSignature
)

// Ledger is the flattened, segmented value sequence the resolver consumes.
// Each segment is consumed independently and strictly in order; an exhausted
// segment yields empty strings so a template may carry more positions than
// there is data (blank spare weekly rows).
type Ledger struct {
	segments [3][]string
	next     [3]int
}

func NewLedger(header HeaderValues, rows []EntryRowValues, signature SignatureValues) *Ledger {
	l := &Ledger{}
	l.segments[SegmentHeader] = header.flatten()
	for _, row := range rows {
		l.segments[SegmentTimeRow] = append(l.segments[SegmentTimeRow], row.flatten()...)
	}
	l.segments[SegmentSignature] = signature.flatten()
	return l
}

// Next consumes and returns the next unused value of the segment.
func (l *Ledger) Next(seg Segment) string {
	values := l.segments[seg]
	if l.next[seg] >= len(values) {
		return ""
	}
	value := values[l.next[seg]]
	l.next[seg]++
	return value
}

func (l *Ledger) Remaining(seg Segment) int {
	return len(l.segments[seg]) - l.next[seg]
}
