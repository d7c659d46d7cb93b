package participantapimodels

import (
	"strings"

	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

type ParticipantCreateData struct {
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Role           string `json:"role"`
	CaseID         string `json:"case_id"`
	JobTitle       string `json:"job_title"`
	CounselorEmail string `json:"counselor_email"`
}

func (d ParticipantCreateData) Validate() error {
	if strings.TrimSpace(d.Email) == "" {
		return models.NewValidationError("email is required")
	}
	if strings.TrimSpace(d.FirstName) == "" || strings.TrimSpace(d.LastName) == "" {
		return models.NewValidationError("first and last name are required")
	}
	if d.Role != "" && !models.UserRole(d.Role).IsValid() {
		return models.NewValidationError("role %q is unknown", d.Role)
	}
	return nil
}

type EnrollmentCreateData struct {
	WorksiteName   string   `json:"worksite_name"`
	WorksitePhone  string   `json:"worksite_phone"`
	SupervisorName string   `json:"supervisor_name"`
	WorkDays       []string `json:"work_days"`
}

func (d EnrollmentCreateData) Validate() error {
	if strings.TrimSpace(d.WorksiteName) == "" {
		return models.NewValidationError("worksite name is required")
	}
	return nil
}

type ParticipantView struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	Role           string `json:"role"`
	IsActive       bool   `json:"is_active"`
	CaseID         string `json:"case_id"`
	JobTitle       string `json:"job_title"`
	CounselorEmail string `json:"counselor_email"`

	Enrollment *EnrollmentView `json:"enrollment,omitempty"`
}

type EnrollmentView struct {
	ID             string   `json:"id"`
	WorksiteName   string   `json:"worksite_name"`
	WorksitePhone  string   `json:"worksite_phone"`
	SupervisorName string   `json:"supervisor_name"`
	WorkDays       []string `json:"work_days"`
	HoursCompleted float64  `json:"hours_completed"`
}

func ParticipantConvert(rec dbmodels.Participant) ParticipantView {
	return ParticipantView{
		ID:             rec.ID,
		Email:          rec.Email,
		FirstName:      rec.FirstName,
		LastName:       rec.LastName,
		Phone:          rec.Phone,
		Address:        rec.Address,
		Role:           string(rec.Role),
		IsActive:       rec.IsActive,
		CaseID:         rec.CaseID,
		JobTitle:       rec.JobTitle,
		CounselorEmail: rec.CounselorEmail,
	}
}

func EnrollmentConvert(rec dbmodels.Enrollment) EnrollmentView {
	return EnrollmentView{
		ID:             rec.ID,
		WorksiteName:   rec.WorksiteName,
		WorksitePhone:  rec.WorksitePhone,
		SupervisorName: rec.SupervisorName,
		WorkDays:       rec.WorkDays,
		HoursCompleted: rec.HoursCompleted,
	}
}
