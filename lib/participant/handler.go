package participanthandler

import (
	"github.com/pkg/errors"

	"wbl-portal-backend/db"
	enrollmentstore "wbl-portal-backend/lib/enrollment/store"
	participantstore "wbl-portal-backend/lib/participant/store"
	"wbl-portal-backend/models"
	participantapimodels "wbl-portal-backend/models/api/participant"
	dbmodels "wbl-portal-backend/models/db"
)

var ErrNotFound = errors.New("participant not found")

type Provider interface {
	Create(data participantapimodels.ParticipantCreateData) (id string, err error)
	Get(id string) (*participantapimodels.ParticipantView, error)
	Enroll(participantID string, data participantapimodels.EnrollmentCreateData) (id string, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:           participantstore.NewInstance(db.DB),
		enrollmentStore: enrollmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store           participantstore.Provider
	enrollmentStore enrollmentstore.Provider
}

func (i impl) Create(data participantapimodels.ParticipantCreateData) (string, error) {
	existing, err := i.store.FindByEmail(data.Email)
	if err != nil {
		return "", errors.Wrap(err, "error checking for existing participant")
	}
	if existing != nil {
		return "", models.NewValidationError("participant with email %s already exists", data.Email)
	}
	role := models.UserRole(data.Role)
	if role == "" {
		role = models.UserRoleParticipant
	}
	rec := dbmodels.Participant{
		Email:          data.Email,
		FirstName:      data.FirstName,
		LastName:       data.LastName,
		Phone:          data.Phone,
		Address:        data.Address,
		Role:           role,
		IsActive:       true,
		CaseID:         data.CaseID,
		JobTitle:       data.JobTitle,
		CounselorEmail: data.CounselorEmail,
	}
	id, err := i.store.Create(rec)
	if err != nil {
		return "", errors.Wrap(err, "error creating participant")
	}
	return id, nil
}

func (i impl) Get(id string) (*participantapimodels.ParticipantView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := participantapimodels.ParticipantConvert(*rec)
	enrollment, err := i.enrollmentStore.GetActiveByParticipant(id)
	if err != nil {
		return nil, err
	}
	if enrollment != nil {
		enrollmentView := participantapimodels.EnrollmentConvert(*enrollment)
		view.Enrollment = &enrollmentView
	}
	return &view, nil
}

// Enroll records a new active placement. Any previous placement for the
// participant stays in history but no longer drives document rendering.
func (i impl) Enroll(participantID string, data participantapimodels.EnrollmentCreateData) (string, error) {
	rec, err := i.store.GetByID(participantID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", ErrNotFound
	}
	id, err := i.enrollmentStore.Create(dbmodels.Enrollment{
		ParticipantID:  participantID,
		WorksiteName:   data.WorksiteName,
		WorksitePhone:  data.WorksitePhone,
		SupervisorName: data.SupervisorName,
		WorkDays:       data.WorkDays,
		IsActive:       true,
	})
	if err != nil {
		return "", errors.Wrap(err, "error creating enrollment")
	}
	return id, nil
}
