package timesheetapimodels

import (
	"time"

	"github.com/pkg/errors"

	"wbl-portal-backend/lib/utils/helpers"
	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

type TimeEntryData struct {
	Date         string  `json:"date"`          // 2006-01-02
	StartTime    string  `json:"start_time"`    // 15:04, empty = not recorded
	LunchOut     string  `json:"lunch_out"`
	LunchIn      string  `json:"lunch_in"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	Hours        float64 `json:"hours"`
}

type TimesheetCreateData struct {
	WeekStart string          `json:"week_start"` // 2006-01-02
	WeekEnd   string          `json:"week_end"`
	Notes     string          `json:"notes"`
	Entries   []TimeEntryData `json:"entries"`
}

func (d TimesheetCreateData) Validate() error {
	if d.WeekStart == "" {
		return errors.New("week start date is required")
	}
	if _, err := helpers.ParseDate(d.WeekStart); err != nil {
		return errors.New("week start date is invalid")
	}
	if d.WeekEnd != "" {
		if _, err := helpers.ParseDate(d.WeekEnd); err != nil {
			return errors.New("week end date is invalid")
		}
	}
	return nil
}

type TimesheetUpdateData struct {
	Notes   *string          `json:"notes"`
	Entries *[]TimeEntryData `json:"entries"`
}

type TimesheetReviewData struct {
	Approved bool   `json:"approved"`
	Reason   string `json:"reason"`
}

type TimesheetSignData struct {
	Signature     string `json:"signature"` // base64 image payload
	SignatureDate string `json:"signature_date"`
}

func (d TimesheetSignData) Validate() error {
	if d.Signature == "" {
		return errors.New("signature payload is required")
	}
	if d.SignatureDate != "" {
		if _, err := helpers.ParseDate(d.SignatureDate); err != nil {
			return errors.New("signature date is invalid")
		}
	}
	return nil
}

type TimesheetFilter struct {
	Status models.TimesheetStatus `json:"status"`
	Limit  int                    `json:"limit"`
	Page   int                    `json:"page"`
}

func (f TimesheetFilter) Validate() error {
	if f.Status != "" && !f.Status.IsValid() {
		return errors.Errorf("unknown status %q", f.Status)
	}
	return nil
}

func (f TimesheetFilter) GetPage() (page, limit int) {
	page = 1
	limit = 20
	if f.Page > 0 {
		page = f.Page
	}
	if f.Limit > 0 {
		limit = f.Limit
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

type TimeEntryView struct {
	Date         string  `json:"date"`
	StartTime    string  `json:"start_time"`
	LunchOut     string  `json:"lunch_out"`
	LunchIn      string  `json:"lunch_in"`
	EndTime      string  `json:"end_time"`
	BreakMinutes int     `json:"break_minutes"`
	Hours        float64 `json:"hours"`
}

type TimesheetView struct {
	ID               string          `json:"id"`
	ParticipantID    string          `json:"participant_id"`
	ParticipantName  string          `json:"participant_name,omitempty"`
	ParticipantEmail string          `json:"participant_email,omitempty"`
	WeekStart        string          `json:"week_start"`
	WeekEnd          string          `json:"week_end"`
	TotalHours       float64         `json:"total_hours"`
	Status           string          `json:"status"`
	StatusName       string          `json:"status_name"`
	Notes            string          `json:"notes,omitempty"`
	SubmittedAt      *time.Time      `json:"submitted_at,omitempty"`
	ReviewedAt       *time.Time      `json:"reviewed_at,omitempty"`
	ReviewerID       string          `json:"reviewer_id,omitempty"`
	RejectionReason  string          `json:"rejection_reason,omitempty"`
	Signed           bool            `json:"signed"`
	SignatureDate    string          `json:"signature_date,omitempty"`
	Entries          []TimeEntryView `json:"entries"`
	CreatedAt        time.Time       `json:"created_at"`
}

func TimeEntryConvert(rec dbmodels.TimeEntry) TimeEntryView {
	return TimeEntryView{
		Date:         rec.Date.Format("2006-01-02"),
		StartTime:    rec.StartTime,
		LunchOut:     rec.LunchOut,
		LunchIn:      rec.LunchIn,
		EndTime:      rec.EndTime,
		BreakMinutes: rec.BreakMinutes,
		Hours:        rec.Hours,
	}
}

func TimesheetConvert(rec dbmodels.Timesheet) TimesheetView {
	view := TimesheetView{
		ID:              rec.ID,
		ParticipantID:   rec.ParticipantID,
		WeekStart:       rec.WeekStart.Format("2006-01-02"),
		WeekEnd:         rec.WeekEnd.Format("2006-01-02"),
		TotalHours:      rec.TotalHours,
		Status:          string(rec.Status),
		StatusName:      rec.Status.ToHuman(),
		Notes:           rec.Notes,
		SubmittedAt:     rec.SubmittedAt,
		ReviewedAt:      rec.ReviewedAt,
		ReviewerID:      rec.ReviewerID,
		RejectionReason: rec.RejectionReason,
		Signed:          rec.Signature != "",
		CreatedAt:       rec.CreatedAt,
	}
	if rec.SignatureDate != nil {
		view.SignatureDate = rec.SignatureDate.Format("2006-01-02")
	}
	if rec.Participant != nil {
		view.ParticipantName = rec.Participant.GetFullName()
		view.ParticipantEmail = rec.Participant.Email
	}
	view.Entries = make([]TimeEntryView, 0, len(rec.Entries))
	for _, entry := range rec.Entries {
		view.Entries = append(view.Entries, TimeEntryConvert(entry))
	}
	return view
}
