package notify

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"

	"wbl-portal-backend/config"
	"wbl-portal-backend/lib/smtp"
	"wbl-portal-backend/models"
)

type Provider interface {
	SendReviewDecision(to, participantName, weekStart string, status models.TimesheetStatus, reason string) error
	SendTimesheetDocument(to, fileName string, file []byte, participantName, weekStart string) error
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		from: config.Conf.Smtp.User,
	}
}

type impl struct {
	from string
}

// SendReviewDecision tells the participant the outcome of a review. Failures
// are the caller's to log; the decision itself is already persisted.
func (i impl) SendReviewDecision(to, participantName, weekStart string, status models.TimesheetStatus, reason string) error {
	if to == "" {
		return nil
	}
	var message string
	switch status {
	case models.TimesheetStatusApproved:
		message = fmt.Sprintf("Hello %s,\n\nYour timesheet for the week of %s has been approved.", participantName, weekStart)
	case models.TimesheetStatusRejected:
		message = fmt.Sprintf("Hello %s,\n\nYour timesheet for the week of %s was returned for changes.\nReason: %s\n\nPlease correct it and submit again.", participantName, weekStart, reason)
	default:
		return nil
	}
	return smtp.Instance.SendEMail(i.from, to, message, "Timesheet review")
}

// SendTimesheetDocument mails the rendered form as an attachment, typically
// to the VR counselor on record.
func (i impl) SendTimesheetDocument(to, fileName string, file []byte, participantName, weekStart string) error {
	if to == "" {
		return errors.New("recipient address is empty")
	}
	port, err := strconv.Atoi(config.Conf.Smtp.Port)
	if err != nil {
		log.WithError(err).Warn("document not sent, smtp port is not configured")
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", i.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("WBL Portal - Timesheet %s, week of %s", participantName, weekStart))
	m.SetBody("text/plain", fmt.Sprintf("Attached is the signed timesheet of %s for the week of %s.", participantName, weekStart))
	m.Attach(fileName, gomail.SetCopyFunc(func(w io.Writer) error {
		_, err := w.Write(file)
		return err
	}))

	dialer := gomail.NewDialer(config.Conf.Smtp.Host, port, config.Conf.Smtp.User, config.Conf.Smtp.Password)
	if err := dialer.DialAndSend(m); err != nil {
		return errors.Wrap(err, "error sending timesheet document")
	}
	log.WithField("recipient", to).Info("timesheet document sent")
	return nil
}
