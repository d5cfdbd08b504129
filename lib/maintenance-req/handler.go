package maintenancereqhandler

import (
	"bytes"
	"context"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	"maintenance-backend/db"
	buildingprovider "maintenance-backend/lib/dicts/building"
	"maintenance-backend/lib/documents"
	xlsexport "maintenance-backend/lib/export/xls"
	filestorage "maintenance-backend/lib/file-storage"
	filesdbstorage "maintenance-backend/lib/file-storage/storage"
	maintenancereqstore "maintenance-backend/lib/maintenance-req/store"
	notificationhandler "maintenance-backend/lib/notification"
	"maintenance-backend/lib/signature"
	submissionguard "maintenance-backend/lib/submission-guard"
	"maintenance-backend/lib/translation"
	initchecker "maintenance-backend/lib/utils/init-checker"
	"maintenance-backend/models"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
	dbmodels "maintenance-backend/models/db"
)

var (
	ErrNotFound          = errors.New("заявка не найдена")
	ErrInvalidTransition = errors.New("смена статуса заявки невозможна")
	ErrBusy              = errors.New("заявка обрабатывается другим пользователем, повторите попытку")
)

type Provider interface {
	// Submit проверка формы, подпись, фото, перевод, сохранение и рассылка документов
	Submit(ctx context.Context, sessionID string, data maintenanceapimodels.SubmitRequest) (SubmitResult, error)
	Get(id string) (maintenanceapimodels.RequestView, error)
	List(filter maintenanceapimodels.RequestFilter) (list []maintenanceapimodels.RequestView, rowCount int64, err error)
	Delete(ctx context.Context, id string) error
	Export(filter maintenanceapimodels.RequestFilter) (*bytes.Buffer, error)
	// Retranslate повторный перевод сохраненных оригиналов текста арендатора
	Retranslate(ctx context.Context, id string) (maintenanceapimodels.RequestView, error)
	Approve(ctx context.Context, id, adminID, message string) (TransitionResult, error)
	Reject(ctx context.Context, id, adminID, message string) (TransitionResult, error)
	ResendPdf(ctx context.Context, id string, data maintenanceapimodels.ResendPdfRequest) error
	LoadPdf(ctx context.Context, id string, forAdmin bool) (models.File, error)
}

// SubmitResult сохраненная заявка и результаты побочных шагов, которые не отменяют сохранение
type SubmitResult struct {
	Request        dbmodels.MaintenanceRequest
	Outcome        documents.Outcome
	TranslationErr error
	Notified       int
}

type TransitionResult struct {
	Request dbmodels.MaintenanceRequest
	Email   documents.StageOutcome
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithDeps(Deps{
		Store:         maintenancereqstore.NewInstance(db.DB),
		Files:         filesdbstorage.NewInstance(db.DB),
		Storage:       filestorage.Instance,
		Signature:     signature.Instance,
		Translator:    translation.Instance,
		Buildings:     buildingprovider.Instance,
		Notifications: notificationhandler.Instance,
		Documents:     documents.Instance,
		Guard:         submissionguard.Instance,
		Xls:           xlsexport.Instance,
		Location:      config.Conf.Location(),
		MaxImages:     config.Conf.Submission.MaxImages,
		MaxImageBytes: int64(config.Conf.Submission.MaxImageMb) << 20,
	})
}

type Deps struct {
	Store         maintenancereqstore.Provider
	Files         filesdbstorage.Provider
	Storage       filestorage.Provider
	Signature     signature.Provider
	Translator    translation.Provider
	Buildings     buildingprovider.Provider
	Notifications notificationhandler.Provider
	Documents     documents.Provider
	Guard         submissionguard.Provider
	Xls           xlsexport.Provider
	Location      *time.Location
	Now           func() time.Time
	MaxImages     int
	MaxImageBytes int64
	LockWait      time.Duration
}

func NewHandlerWithDeps(deps Deps) Provider {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.LockWait <= 0 {
		deps.LockWait = 5 * time.Second
	}
	initchecker.CheckInit(
		"store", deps.Store,
		"files", deps.Files,
		"storage", deps.Storage,
		"signature", deps.Signature,
		"translator", deps.Translator,
		"buildings", deps.Buildings,
		"notifications", deps.Notifications,
		"documents", deps.Documents,
		"guard", deps.Guard,
	)
	return impl{deps: deps}
}

type impl struct {
	deps Deps
}

func (i impl) getLogger(id string) *log.Entry {
	return log.WithField("request_id", id)
}

func (i impl) getRec(id string) (*dbmodels.MaintenanceRequest, error) {
	rec, err := i.deps.Store.GetByID(id)
	if err != nil {
		i.getLogger(id).WithError(err).Error("ошибка получения заявки")
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) Get(id string) (maintenanceapimodels.RequestView, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return maintenanceapimodels.RequestView{}, err
	}
	return maintenanceapimodels.RequestConvert(*rec), nil
}

func (i impl) List(filter maintenanceapimodels.RequestFilter) (list []maintenanceapimodels.RequestView, rowCount int64, err error) {
	recList, rowCount, err := i.deps.Store.List(filter)
	if err != nil {
		return nil, 0, err
	}
	list = make([]maintenanceapimodels.RequestView, 0, len(recList))
	for _, rec := range recList {
		list = append(list, maintenanceapimodels.RequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) Export(filter maintenanceapimodels.RequestFilter) (*bytes.Buffer, error) {
	if i.deps.Xls == nil {
		return nil, errors.New("выгрузка в excel не настроена")
	}
	list, err := i.deps.Store.ListAll(filter)
	if err != nil {
		return nil, err
	}
	return i.deps.Xls.ExportRequestList(list, i.deps.Location)
}

// Delete удаляет заявку, учет файлов и сами файлы; ошибки удаления файлов только логируются
func (i impl) Delete(ctx context.Context, id string) error {
	logger := i.getLogger(id)
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	files, err := i.deps.Files.GetFileList(id)
	if err != nil {
		logger.WithError(err).Warn("ошибка получения списка файлов заявки")
	}
	if err = i.deps.Store.Delete(id); err != nil {
		logger.WithError(err).Error("ошибка удаления заявки")
		return err
	}
	paths := map[string]bool{}
	for _, file := range files {
		paths[file.Path] = true
	}
	for _, p := range []string{rec.SignatureFilePath, rec.PdfPath, rec.AdminPdfPath} {
		if p != "" {
			paths[p] = true
		}
	}
	for _, p := range rec.PropertyImages {
		paths[p] = true
	}
	for p := range paths {
		if err = i.deps.Storage.Delete(ctx, p); err != nil {
			logger.WithField("path", p).WithError(err).Warn("ошибка удаления файла заявки")
		}
	}
	if err = i.deps.Files.DeleteByRequest(id); err != nil {
		logger.WithError(err).Warn("ошибка удаления учета файлов заявки")
	}
	logger.WithField("work_order_number", rec.WorkOrderNumber).Info("заявка удалена")
	return nil
}

func (i impl) ResendPdf(ctx context.Context, id string, data maintenanceapimodels.ResendPdfRequest) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.getRec(id)
	if err != nil {
		return err
	}
	stage := i.deps.Documents.ResendPdf(ctx, rec, data.Email, data.Message)
	if stage.Failed() {
		return errors.Wrap(stage.Err, "pdf не отправлен")
	}
	i.getLogger(id).WithField("email", data.Email).Info("pdf заявки отправлен повторно")
	return nil
}

func (i impl) LoadPdf(ctx context.Context, id string, forAdmin bool) (models.File, error) {
	rec, err := i.getRec(id)
	if err != nil {
		return models.File{}, err
	}
	return i.deps.Documents.LoadPdf(ctx, rec, forAdmin)
}
