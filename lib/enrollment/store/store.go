package enrollmentstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "wbl-portal-backend/models/db"
)

type Provider interface {
	GetActiveByParticipant(participantID string) (rec *dbmodels.Enrollment, err error)
	Create(rec dbmodels.Enrollment) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// GetActiveByParticipant returns the current placement or nil; a participant
// without one still renders a timesheet with blank worksite fields.
func (i impl) GetActiveByParticipant(participantID string) (*dbmodels.Enrollment, error) {
	rec := dbmodels.Enrollment{}
	err := i.db.
		Where("participant_id = ?", participantID).
		Where("is_active = ?", true).
		Order("created_at DESC").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Create(rec dbmodels.Enrollment) (id string, err error) {
	err = i.db.
		Omit("Participant").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
