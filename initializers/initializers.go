package initializers

import (
	"context"

	"wbl-portal-backend/config"
	"wbl-portal-backend/fiberlog"
	docxexport "wbl-portal-backend/lib/export/docx"
	xlsexport "wbl-portal-backend/lib/export/xls"
	"wbl-portal-backend/lib/notify"
	participanthandler "wbl-portal-backend/lib/participant"
	templatestorage "wbl-portal-backend/lib/template-storage"
	timesheethandler "wbl-portal-backend/lib/timesheet"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3()
	InitSmtp()
	templatestorage.NewHandler()
	docxexport.NewHandler()
	xlsexport.NewHandler()
	notify.NewHandler()
	participanthandler.NewHandler()
	timesheethandler.NewHandler()
}
