package timesheethandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"wbl-portal-backend/config"
	docxexport "wbl-portal-backend/lib/export/docx"
	pdfexport "wbl-portal-backend/lib/export/pdf"
	"wbl-portal-backend/lib/notify"
	templatestorage "wbl-portal-backend/lib/template-storage"
	dbmodels "wbl-portal-backend/models/db"
)

// loadForRender gathers everything a render needs: the aggregate with its
// entries in insertion order, the owning identity and the active enrollment.
// Rendering is read-only; nothing loaded here is written back.
func (i impl) loadForRender(id string) (*dbmodels.Timesheet, *dbmodels.Participant, *dbmodels.Enrollment, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "error loading timesheet")
	}
	if rec == nil {
		return nil, nil, nil, ErrNotFound
	}
	participant, err := i.participantStore.GetByID(rec.ParticipantID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "error loading participant")
	}
	if participant == nil {
		return nil, nil, nil, errors.New("timesheet owner not found")
	}
	enrollment, err := i.enrollmentStore.GetActiveByParticipant(rec.ParticipantID)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, "error loading enrollment")
	}
	return rec, participant, enrollment, nil
}

// RenderDocument fills the mandated DOCX form for the timesheet. The template
// is fetched fresh from storage on every call.
func (i impl) RenderDocument(ctx context.Context, id string) (fileName string, file []byte, err error) {
	rec, participant, enrollment, err := i.loadForRender(id)
	if err != nil {
		return "", nil, err
	}
	templateRaw, err := templatestorage.Instance.GetTemplate(ctx, config.Conf.Portal.TemplateKey)
	if err != nil {
		return "", nil, err
	}
	data := docxexport.BuildRenderData(*rec, *participant, enrollment,
		config.Conf.Portal.EmployerName, config.Conf.Portal.EmployerAddress)
	result, err := docxexport.Instance.Render(templateRaw, data)
	if err != nil {
		return "", nil, err
	}
	return documentFileName(*rec, *participant, "docx"), result.File, nil
}

// RenderPDF draws the fallback form without a template.
func (i impl) RenderPDF(id string) (fileName string, file []byte, err error) {
	rec, participant, enrollment, err := i.loadForRender(id)
	if err != nil {
		return "", nil, err
	}
	file, err = pdfexport.GenerateTimesheet(*rec, *participant, enrollment,
		config.Conf.Portal.EmployerName, config.Conf.Portal.EmployerAddress)
	if err != nil {
		return "", nil, err
	}
	return documentFileName(*rec, *participant, "pdf"), file, nil
}

// SendDocument renders the form and mails it to the counselor on record,
// falling back to the configured counselor address.
func (i impl) SendDocument(ctx context.Context, id string) error {
	fileName, file, err := i.RenderDocument(ctx, id)
	if err != nil {
		return err
	}
	rec, participant, _, err := i.loadForRender(id)
	if err != nil {
		return err
	}
	to := participant.CounselorEmail
	if to == "" {
		to = config.Conf.Portal.CounselorEmail
	}
	return notify.Instance.SendTimesheetDocument(to, fileName, file,
		participant.GetFullName(), rec.WeekStart.Format("2006-01-02"))
}

func documentFileName(rec dbmodels.Timesheet, participant dbmodels.Participant, ext string) string {
	name := strings.ReplaceAll(strings.ToLower(participant.LastName), " ", "-")
	if name == "" {
		name = "participant"
	}
	return fmt.Sprintf("timesheet_%s_%s.%s", rec.WeekStart.Format("2006-01-02"), name, ext)
}

// notifyReviewDecision is best effort: the decision is already persisted, a
// failed mail only gets logged.
func (i impl) notifyReviewDecision(id string) {
	rec, err := i.store.GetByID(id)
	if err != nil || rec == nil || rec.Participant == nil {
		log.WithField("timesheet_id", id).WithError(err).Error("error loading timesheet for review notification")
		return
	}
	err = notify.Instance.SendReviewDecision(rec.Participant.Email, rec.Participant.GetFullName(),
		rec.WeekStart.Format("2006-01-02"), rec.Status, rec.RejectionReason)
	if err != nil {
		log.WithField("timesheet_id", id).WithError(err).Error("error sending review notification")
	}
}
