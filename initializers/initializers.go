package initializers

import (
	"context"

	"maintenance-backend/config"
	"maintenance-backend/db"
	"maintenance-backend/fiberlog"
	adminpanelhandler "maintenance-backend/lib/admin-panel"
	adminpanelauthhandler "maintenance-backend/lib/admin-panel/auth"
	buildingprovider "maintenance-backend/lib/dicts/building"
	"maintenance-backend/lib/documents"
	pdfexport "maintenance-backend/lib/export/pdf"
	xlsexport "maintenance-backend/lib/export/xls"
	maintenancereqhandler "maintenance-backend/lib/maintenance-req"
	notificationhandler "maintenance-backend/lib/notification"
	"maintenance-backend/lib/signature"
	"maintenance-backend/lib/translation"
	connectionhub "maintenance-backend/lib/ws/hub/connection-hub"
)

var LoggerConfig *fiberlog.Config

func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	ApplyLogLevel()
	InitDBConnection()
	db.InitPreload()
	InitS3(ctx)
	InitStorage()
	InitSmtp()
	InitSubmissionGuard(ctx)
	translation.NewHandler()
	pdfexport.NewHandler(pdfexport.DefaultOptions(config.Conf.Pdf.FontDir))
	xlsexport.NewHandler()
	signature.NewHandler(int64(config.Conf.Submission.MaxImageMb) << 20)
	adminpanelhandler.NewHandler()
	adminpanelauthhandler.NewHandler()
	buildingprovider.NewHandler()
	connectionhub.Init()
	notificationhandler.NewHandler()
	documents.NewHandler()
	maintenancereqhandler.NewHandler()
}
