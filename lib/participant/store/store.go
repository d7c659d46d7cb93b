package participantstore

import (
	"github.com/pkg/errors"
	"gorm.io/gorm"

	dbmodels "wbl-portal-backend/models/db"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.Participant, err error)
	FindByEmail(email string) (rec *dbmodels.Participant, err error)
	Create(rec dbmodels.Participant) (id string, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (*dbmodels.Participant, error) {
	rec := dbmodels.Participant{}
	err := i.db.
		Where("id = ?", id).
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

func (i impl) FindByEmail(email string) (*dbmodels.Participant, error) {
	rec := dbmodels.Participant{}
	err := i.db.
		Where("email = ?", email).
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

func (i impl) Create(rec dbmodels.Participant) (id string, err error) {
	err = i.db.
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}
