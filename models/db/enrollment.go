package dbmodels

import (
	"github.com/lib/pq"
)

// Enrollment ties a participant to a worksite placement. The timesheet core
// reads worksite name, supervisor and phone for document rendering; a
// participant may have no active enrollment, in which case those fields render
// blank.
type Enrollment struct {
	BaseModel
	ParticipantID  string         `gorm:"type:varchar(36);index"`
	Participant    *Participant   `gorm:"foreignKey:ParticipantID"`
	WorksiteName   string         `gorm:"type:varchar(255)"`
	WorksitePhone  string         `gorm:"type:varchar(50)"`
	SupervisorName string         `gorm:"type:varchar(255)"`
	WorkDays       pq.StringArray `gorm:"type:text[]"`
	IsActive       bool           `gorm:"default:true"`
	HoursCompleted float64
}
