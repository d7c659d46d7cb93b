package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	dbmodels "wbl-portal-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("running migrations")
	if err := DB.AutoMigrate(&dbmodels.Participant{}); err != nil {
		return errors.Wrap(err, "error migrating Participant")
	}
	if err := DB.AutoMigrate(&dbmodels.Enrollment{}); err != nil {
		return errors.Wrap(err, "error migrating Enrollment")
	}
	if err := DB.AutoMigrate(&dbmodels.Timesheet{}); err != nil {
		return errors.Wrap(err, "error migrating Timesheet")
	}
	if err := DB.AutoMigrate(&dbmodels.TimeEntry{}); err != nil {
		return errors.Wrap(err, "error migrating TimeEntry")
	}
	log.Info("migrations finished")
	return nil
}
