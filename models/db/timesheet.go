package dbmodels

import (
	"math"
	"time"

	"wbl-portal-backend/models"
)

// Timesheet is the week-scoped aggregate of worked time entries plus the
// review workflow state. WeekStart is unique per participant. TotalHours is
// always the recomputed sum of entry hours, never edited independently.
type Timesheet struct {
	BaseModel
	ParticipantID string       `gorm:"type:varchar(36);index:idx_participant_week,unique"`
	Participant   *Participant `gorm:"foreignKey:ParticipantID"`
	WeekStart     time.Time    `gorm:"type:date;index:idx_participant_week,unique"`
	WeekEnd       time.Time    `gorm:"type:date"`
	TotalHours    float64
	Notes         string
	Status          models.TimesheetStatus `gorm:"type:varchar(20);index"`
	SubmittedAt     *time.Time
	ReviewedAt      *time.Time
	ReviewerID      string       `gorm:"type:varchar(36)"`
	Reviewer        *Participant `gorm:"foreignKey:ReviewerID"`
	RejectionReason string
	Signature       string      // base64 image payload, optional
	SignatureDate   *time.Time  `gorm:"type:date"`
	Entries         []TimeEntry `gorm:"foreignKey:TimesheetID"`
}

// TimeEntry is one worked day: two in/out pairs around an optional lunch gap,
// plus unpaid break minutes. Times are wall-clock "15:04" strings, empty means
// not recorded. Entries are owned by the timesheet and replaced as a whole set.
type TimeEntry struct {
	BaseModel
	TimesheetID  string    `gorm:"type:varchar(36);index"`
	Date         time.Time `gorm:"type:date"`
	StartTime    string    `gorm:"type:varchar(5)"`
	LunchOut     string    `gorm:"type:varchar(5)"`
	LunchIn      string    `gorm:"type:varchar(5)"`
	EndTime      string    `gorm:"type:varchar(5)"`
	BreakMinutes int
	Hours        float64
	Position     int `gorm:"index"` // insertion order, preserved for rendering
}

const clockLayout = "15:04"

// CalcHours derives the worked duration in decimal hours, rounded to one
// decimal place. With a full lunch pair the paid time is
// (lunch_out-start)+(end-lunch_in); without one it is end-start. Unpaid break
// minutes are subtracted in both cases. Returns a ValidationError on
// malformed or inverted times; an entry without both a start and an end keeps
// whatever hours value was supplied.
func (e TimeEntry) CalcHours() (float64, error) {
	if e.BreakMinutes < 0 {
		return 0, models.NewValidationError("break minutes cannot be negative on %s", e.Date.Format("2006-01-02"))
	}
	if e.StartTime == "" || e.EndTime == "" {
		if e.Hours < 0 {
			return 0, models.NewValidationError("hours cannot be negative on %s", e.Date.Format("2006-01-02"))
		}
		return roundHours(e.Hours), nil
	}
	start, err := parseClock(e.StartTime)
	if err != nil {
		return 0, models.NewValidationError("invalid start time %q on %s", e.StartTime, e.Date.Format("2006-01-02"))
	}
	end, err := parseClock(e.EndTime)
	if err != nil {
		return 0, models.NewValidationError("invalid end time %q on %s", e.EndTime, e.Date.Format("2006-01-02"))
	}
	worked := end.Sub(start)
	if e.LunchOut != "" && e.LunchIn != "" {
		lunchOut, err := parseClock(e.LunchOut)
		if err != nil {
			return 0, models.NewValidationError("invalid lunch out time %q on %s", e.LunchOut, e.Date.Format("2006-01-02"))
		}
		lunchIn, err := parseClock(e.LunchIn)
		if err != nil {
			return 0, models.NewValidationError("invalid lunch in time %q on %s", e.LunchIn, e.Date.Format("2006-01-02"))
		}
		if lunchIn.Before(lunchOut) {
			return 0, models.NewValidationError("lunch interval is inverted on %s", e.Date.Format("2006-01-02"))
		}
		worked = lunchOut.Sub(start) + end.Sub(lunchIn)
	}
	worked -= time.Duration(e.BreakMinutes) * time.Minute
	if worked < 0 {
		return 0, models.NewValidationError("worked interval is negative on %s", e.Date.Format("2006-01-02"))
	}
	return roundHours(worked.Hours()), nil
}

func parseClock(value string) (time.Time, error) {
	return time.Parse(clockLayout, value)
}

func roundHours(h float64) float64 {
	return math.Round(h*10) / 10
}

// CheckSubmit guards the draft/rejected -> submitted transition.
func (t Timesheet) CheckSubmit() error {
	if !t.Status.IsEditable() {
		return models.NewInvalidStateError(t.Status, "submit")
	}
	return nil
}

// CheckEdit guards whole-set entry replacement and note updates.
func (t Timesheet) CheckEdit() error {
	if !t.Status.IsEditable() {
		return models.NewInvalidStateError(t.Status, "edit")
	}
	return nil
}

// CheckReview guards the submitted -> approved/rejected transition. A second
// review of the same cycle finds a terminal status and fails here.
func (t Timesheet) CheckReview() error {
	if t.Status != models.TimesheetStatusSubmitted {
		return models.NewInvalidStateError(t.Status, "review")
	}
	return nil
}

// SumEntryHours recomputes the aggregate total from the current entry set.
func SumEntryHours(entries []TimeEntry) float64 {
	var total float64
	for _, e := range entries {
		total += e.Hours
	}
	return roundHours(total)
}
