package timesheethandler

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"wbl-portal-backend/db"
	enrollmentstore "wbl-portal-backend/lib/enrollment/store"
	xlsexport "wbl-portal-backend/lib/export/xls"
	participantstore "wbl-portal-backend/lib/participant/store"
	timesheetstore "wbl-portal-backend/lib/timesheet/store"
	"wbl-portal-backend/lib/utils/helpers"
	"wbl-portal-backend/models"
	tsapimodels "wbl-portal-backend/models/api/timesheet"
	dbmodels "wbl-portal-backend/models/db"
)

var ErrNotFound = errors.New("timesheet not found")

type Provider interface {
	Create(participantID string, data tsapimodels.TimesheetCreateData) (id string, err error)
	Edit(id, actorID string, data tsapimodels.TimesheetUpdateData) error
	Submit(id, actorID string) error
	Review(id, reviewerID string, data tsapimodels.TimesheetReviewData) error
	Sign(id, actorID string, data tsapimodels.TimesheetSignData) error
	Get(id string) (*tsapimodels.TimesheetView, error)
	List(participantID string, filter tsapimodels.TimesheetFilter) (list []tsapimodels.TimesheetView, rowCount int64, err error)
	ListPending() ([]tsapimodels.TimesheetView, error)
	ExportXLS(status models.TimesheetStatus) (*bytes.Buffer, error)
	RenderDocument(ctx context.Context, id string) (fileName string, file []byte, err error)
	RenderPDF(id string) (fileName string, file []byte, err error)
	SendDocument(ctx context.Context, id string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:            timesheetstore.NewInstance(db.DB),
		participantStore: participantstore.NewInstance(db.DB),
		enrollmentStore:  enrollmentstore.NewInstance(db.DB),
	}
}

type impl struct {
	store            timesheetstore.Provider
	participantStore participantstore.Provider
	enrollmentStore  enrollmentstore.Provider
}

func (i impl) GetLogger(timesheetID, actorID string) *log.Entry {
	return log.
		WithField("timesheet_id", timesheetID).
		WithField("actor_id", actorID)
}

func (i impl) Create(participantID string, data tsapimodels.TimesheetCreateData) (string, error) {
	weekStart, err := helpers.ParseDate(data.WeekStart)
	if err != nil {
		return "", models.NewValidationError("week start date is invalid")
	}
	weekEnd := weekStart.AddDate(0, 0, 6)
	if data.WeekEnd != "" {
		weekEnd, err = helpers.ParseDate(data.WeekEnd)
		if err != nil {
			return "", models.NewValidationError("week end date is invalid")
		}
	}
	if !weekEnd.Equal(weekStart.AddDate(0, 0, 6)) {
		return "", models.NewValidationError("week end must be six days after week start")
	}

	existing, err := i.store.GetByWeek(participantID, weekStart)
	if err != nil {
		return "", errors.Wrap(err, "error checking for existing timesheet")
	}
	if existing != nil {
		return "", models.NewValidationError("timesheet already exists for week starting %s", data.WeekStart)
	}

	entries, total, err := buildEntries(weekStart, weekEnd, data.Entries)
	if err != nil {
		return "", err
	}

	var id string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := timesheetstore.NewInstance(tx)
		rec := dbmodels.Timesheet{
			ParticipantID: participantID,
			WeekStart:     weekStart,
			WeekEnd:       weekEnd,
			Notes:         data.Notes,
			TotalHours:    total,
			Status:        models.TimesheetStatusDraft,
		}
		id, err = store.Create(rec)
		if err != nil {
			return errors.Wrap(err, "error creating timesheet")
		}
		return store.ReplaceEntries(id, entries)
	})
	if err != nil {
		return "", err
	}
	i.GetLogger(id, participantID).Info("timesheet created")
	return id, nil
}

// Edit replaces the entry set atomically and recomputes the total. Only legal
// while the timesheet is editable (draft or rejected).
func (i impl) Edit(id, actorID string, data tsapimodels.TimesheetUpdateData) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := timesheetstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return errors.Wrap(err, "error loading timesheet")
		}
		if rec == nil || rec.ParticipantID != actorID {
			return ErrNotFound
		}
		if err = rec.CheckEdit(); err != nil {
			return err
		}
		updMap := map[string]interface{}{}
		if data.Notes != nil {
			updMap["notes"] = *data.Notes
		}
		if data.Entries != nil {
			entries, total, err := buildEntries(rec.WeekStart, rec.WeekEnd, *data.Entries)
			if err != nil {
				return err
			}
			if err = store.ReplaceEntries(id, entries); err != nil {
				return err
			}
			updMap["total_hours"] = total
		}
		return store.Update(id, updMap)
	})
}

// Submit moves an editable timesheet into review. The record becomes
// read-only for the participant until a reviewer decides or rejects it back.
func (i impl) Submit(id, actorID string) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := timesheetstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return errors.Wrap(err, "error loading timesheet")
		}
		if rec == nil || rec.ParticipantID != actorID {
			return ErrNotFound
		}
		if err = rec.CheckSubmit(); err != nil {
			return err
		}
		return store.Update(id, map[string]interface{}{
			"status":       models.TimesheetStatusSubmitted,
			"submitted_at": time.Now(),
		})
	})
	if err != nil {
		return err
	}
	i.GetLogger(id, actorID).Info("timesheet submitted")
	return nil
}

// Review decides a submitted timesheet. Approval is terminal; rejection
// requires a reason and re-opens the record for editing. The reason stays on
// the record for audit even after a later resubmission.
func (i impl) Review(id, reviewerID string, data tsapimodels.TimesheetReviewData) error {
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		store := timesheetstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return errors.Wrap(err, "error loading timesheet")
		}
		if rec == nil {
			return ErrNotFound
		}
		if err = rec.CheckReview(); err != nil {
			return err
		}
		updMap := map[string]interface{}{
			"reviewed_at": time.Now(),
			"reviewer_id": reviewerID,
		}
		if data.Approved {
			updMap["status"] = models.TimesheetStatusApproved
		} else {
			if data.Reason == "" {
				return models.NewValidationError("rejection reason is required")
			}
			updMap["status"] = models.TimesheetStatusRejected
			updMap["rejection_reason"] = data.Reason
		}
		return store.Update(id, updMap)
	})
	if err != nil {
		return err
	}
	i.GetLogger(id, reviewerID).
		WithField("approved", data.Approved).
		Info("timesheet reviewed")
	i.notifyReviewDecision(id)
	return nil
}

// Sign attaches the participant's signature payload. Legal while editable;
// once submitted the artifact is frozen.
func (i impl) Sign(id, actorID string, data tsapimodels.TimesheetSignData) error {
	return db.DB.Transaction(func(tx *gorm.DB) error {
		store := timesheetstore.NewInstance(tx)
		rec, err := store.GetByIDForUpdate(id)
		if err != nil {
			return errors.Wrap(err, "error loading timesheet")
		}
		if rec == nil || rec.ParticipantID != actorID {
			return ErrNotFound
		}
		if !rec.Status.IsEditable() {
			return models.NewInvalidStateError(rec.Status, "sign")
		}
		sigDate := time.Now()
		if data.SignatureDate != "" {
			sigDate, _ = helpers.ParseDate(data.SignatureDate)
		}
		return store.Update(id, map[string]interface{}{
			"signature":      data.Signature,
			"signature_date": sigDate,
		})
	})
}

func (i impl) Get(id string) (*tsapimodels.TimesheetView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := tsapimodels.TimesheetConvert(*rec)
	return &view, nil
}

func (i impl) List(participantID string, filter tsapimodels.TimesheetFilter) ([]tsapimodels.TimesheetView, int64, error) {
	page, limit := filter.GetPage()
	list, rowCount, err := i.store.ListByParticipant(participantID, filter.Status, page, limit)
	if err != nil {
		return nil, 0, err
	}
	result := make([]tsapimodels.TimesheetView, 0, len(list))
	for _, rec := range list {
		result = append(result, tsapimodels.TimesheetConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) ListPending() ([]tsapimodels.TimesheetView, error) {
	list, err := i.store.ListPending()
	if err != nil {
		return nil, err
	}
	result := make([]tsapimodels.TimesheetView, 0, len(list))
	for _, rec := range list {
		result = append(result, tsapimodels.TimesheetConvert(rec))
	}
	return result, nil
}

func (i impl) ExportXLS(status models.TimesheetStatus) (*bytes.Buffer, error) {
	list, err := i.store.ListForExport(status)
	if err != nil {
		return nil, err
	}
	return xlsexport.Instance.ExportTimesheetList(list)
}

// buildEntries validates and recomputes the replacement entry set. Dates must
// be unique and inside the week window; hours are derived server side whenever
// both shift boundaries are present.
func buildEntries(weekStart, weekEnd time.Time, data []tsapimodels.TimeEntryData) ([]dbmodels.TimeEntry, float64, error) {
	entries := make([]dbmodels.TimeEntry, 0, len(data))
	seen := map[string]bool{}
	for _, entryData := range data {
		date, err := helpers.ParseDate(entryData.Date)
		if err != nil {
			return nil, 0, models.NewValidationError("entry date %q is invalid", entryData.Date)
		}
		if date.Before(weekStart) || date.After(weekEnd) {
			return nil, 0, models.NewValidationError("entry date %s is outside the timesheet week", entryData.Date)
		}
		if seen[entryData.Date] {
			return nil, 0, models.NewValidationError("duplicate entry for %s", entryData.Date)
		}
		seen[entryData.Date] = true
		entry := dbmodels.TimeEntry{
			Date:         date,
			StartTime:    entryData.StartTime,
			LunchOut:     entryData.LunchOut,
			LunchIn:      entryData.LunchIn,
			EndTime:      entryData.EndTime,
			BreakMinutes: entryData.BreakMinutes,
			Hours:        entryData.Hours,
		}
		entry.Hours, err = entry.CalcHours()
		if err != nil {
			return nil, 0, err
		}
		entries = append(entries, entry)
	}
	return entries, dbmodels.SumEntryHours(entries), nil
}
