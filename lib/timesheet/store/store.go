package timesheetstore

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wbl-portal-backend/models"
	dbmodels "wbl-portal-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Timesheet) (id string, err error)
	GetByID(id string) (rec *dbmodels.Timesheet, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.Timesheet, err error)
	GetByWeek(participantID string, weekStart time.Time) (rec *dbmodels.Timesheet, err error)
	Update(id string, updMap map[string]interface{}) error
	ReplaceEntries(timesheetID string, entries []dbmodels.TimeEntry) error
	ListByParticipant(participantID string, status models.TimesheetStatus, page, limit int) (list []dbmodels.Timesheet, rowCount int64, err error)
	ListPending() (list []dbmodels.Timesheet, err error)
	ListForExport(status models.TimesheetStatus) (list []dbmodels.Timesheet, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Timesheet) (id string, err error) {
	err = i.db.
		Omit("Participant", "Reviewer").
		Create(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Where("id = ?", id).
		Preload("Participant").
		Preload("Reviewer").
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
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

// GetByIDForUpdate takes a row lock so concurrent transitions against the
// same timesheet serialize on the surrounding transaction. Entries are loaded
// separately to keep FOR UPDATE off the joined tables.
func (i impl) GetByIDForUpdate(id string) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	err = i.db.
		Where("timesheet_id = ?", id).
		Order("position ASC").
		Find(&rec.Entries).
		Error
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (i impl) GetByWeek(participantID string, weekStart time.Time) (*dbmodels.Timesheet, error) {
	rec := dbmodels.Timesheet{}
	err := i.db.
		Where("participant_id = ?", participantID).
		Where("week_start = ?", weekStart).
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

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	err := i.db.
		Model(&dbmodels.Timesheet{}).
		Where("id = ?", id).
		Updates(updMap).
		Error
	if err != nil {
		return err
	}
	return nil
}

// ReplaceEntries swaps the whole entry set atomically: the old rows are
// discarded and the new ones inserted with their insertion order persisted.
func (i impl) ReplaceEntries(timesheetID string, entries []dbmodels.TimeEntry) error {
	err := i.db.
		Where("timesheet_id = ?", timesheetID).
		Delete(&dbmodels.TimeEntry{}).
		Error
	if err != nil {
		return errors.Wrap(err, "error deleting replaced time entries")
	}
	if len(entries) == 0 {
		return nil
	}
	for idx := range entries {
		entries[idx].TimesheetID = timesheetID
		entries[idx].Position = idx
	}
	err = i.db.
		Create(&entries).
		Error
	if err != nil {
		return errors.Wrap(err, "error inserting time entries")
	}
	return nil
}

func (i impl) ListByParticipant(participantID string, status models.TimesheetStatus, page, limit int) (list []dbmodels.Timesheet, rowCount int64, err error) {
	list = []dbmodels.Timesheet{}
	tx := i.db.
		Model(&dbmodels.Timesheet{}).
		Where("participant_id = ?", participantID)
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return nil, 0, err
	}
	err = tx.
		Order("week_start DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&list).
		Error
	if err != nil {
		return nil, 0, err
	}
	return list, rowCount, nil
}

func (i impl) ListPending() (list []dbmodels.Timesheet, err error) {
	list = []dbmodels.Timesheet{}
	err = i.db.
		Where("status = ?", models.TimesheetStatusSubmitted).
		Order("submitted_at ASC").
		Preload("Participant").
		Preload("Entries", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListForExport(status models.TimesheetStatus) (list []dbmodels.Timesheet, err error) {
	list = []dbmodels.Timesheet{}
	tx := i.db.
		Preload("Participant").
		Order("week_start DESC")
	if status != "" {
		tx = tx.Where("status = ?", status)
	}
	err = tx.Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}
