package dbmodels

import (
	"fmt"

	"wbl-portal-backend/models"
)

// Participant is the portal identity referenced by timesheets. The timesheet
// core only reads it (name, email, case metadata) for review listings and
// document rendering.
type Participant struct {
	BaseModel
	Email          string `gorm:"type:varchar(255);uniqueIndex"`
	FirstName      string `gorm:"type:varchar(255)"`
	LastName       string `gorm:"type:varchar(255)"`
	Phone          string `gorm:"type:varchar(50)"`
	Address        string
	Role           models.UserRole `gorm:"type:varchar(50)"`
	IsActive       bool            `gorm:"default:true"`
	CaseID         string          `gorm:"type:varchar(100);index"`
	JobTitle       string          `gorm:"type:varchar(255)"`
	CounselorEmail string          `gorm:"type:varchar(255)"`
}

func (p Participant) GetFullName() string {
	return fmt.Sprintf("%v %v", p.FirstName, p.LastName)
}
