package documents

import (
	"context"
	"fmt"
	"path"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	"maintenance-backend/db"
	pdfexport "maintenance-backend/lib/export/pdf"
	filestorage "maintenance-backend/lib/file-storage"
	filesdbstorage "maintenance-backend/lib/file-storage/storage"
	maintenancereqstore "maintenance-backend/lib/maintenance-req/store"
	messagetemplate "maintenance-backend/lib/message-template"
	"maintenance-backend/lib/metrics"
	"maintenance-backend/lib/signature"
	"maintenance-backend/lib/smtp"
	"maintenance-backend/models"
	dbmodels "maintenance-backend/models/db"
)

var ErrPdfNotReady = errors.New("pdf документ по заявке не сформирован")

const pdfContentType = "application/pdf"

// RequestUpdater частичное обновление заявки (пути pdf, статус доставки письма)
type RequestUpdater interface {
	Update(id string, updMap map[string]interface{}) error
}

type FileRecorder interface {
	SaveFile(rec dbmodels.StoredFile) (id string, err error)
}

type Provider interface {
	// Generate формирует pdf для администратора и арендатора и сохраняет пути в заявке
	Generate(ctx context.Context, rec *dbmodels.MaintenanceRequest) Outcome
	// Distribute письмо арендатору с его pdf и письмо администратору с английским pdf
	Distribute(ctx context.Context, rec *dbmodels.MaintenanceRequest, outcome *Outcome)
	// Process Generate + Distribute, ошибки только логируются и возвращаются в Outcome
	Process(ctx context.Context, rec *dbmodels.MaintenanceRequest) Outcome
	// ResendPdf повторная отправка pdf арендатора на произвольный адрес, при отсутствии pdf формирует его заново
	ResendPdf(ctx context.Context, rec *dbmodels.MaintenanceRequest, email, message string) StageOutcome
	// SendStatusEmail письмо арендатору о смене статуса, обновляет статус доставки
	SendStatusEmail(ctx context.Context, rec *dbmodels.MaintenanceRequest, message string) StageOutcome
	// LoadPdf содержимое pdf арендатора или администратора, при отсутствии формирует заново
	LoadPdf(ctx context.Context, rec *dbmodels.MaintenanceRequest, forAdmin bool) (file models.File, err error)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithDeps(Deps{
		Store:      maintenancereqstore.NewInstance(db.DB),
		Files:      filesdbstorage.NewInstance(db.DB),
		Storage:    filestorage.Instance,
		Renderer:   pdfexport.Instance,
		Mailer:     smtp.Instance,
		AdminEmail: config.Conf.Admin.NotifyEmail,
		Location:   config.Conf.Location(),
	})
}

type Deps struct {
	Store      RequestUpdater
	Files      FileRecorder
	Storage    filestorage.Provider
	Renderer   pdfexport.Provider
	Mailer     smtp.Provider
	AdminEmail string
	Location   *time.Location
	Now        func() time.Time
}

func NewHandlerWithDeps(deps Deps) Provider {
	if deps.Location == nil {
		deps.Location = time.UTC
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return impl{deps: deps}
}

type impl struct {
	deps Deps
}

func AdminPdfPath(requestID string) string {
	return path.Join(string(models.FilePdf), fmt.Sprintf("maintenance_request_%s_en_admin.pdf", requestID))
}

func TenantPdfPath(requestID string, lang models.Language) string {
	return path.Join(string(models.FilePdf), fmt.Sprintf("maintenance_request_%s_%s.pdf", requestID, lang))
}

func (i impl) getLogger(rec *dbmodels.MaintenanceRequest) *log.Entry {
	return log.
		WithField("request_id", rec.ID).
		WithField("work_order_number", rec.WorkOrderNumber)
}

func (i impl) Process(ctx context.Context, rec *dbmodels.MaintenanceRequest) Outcome {
	outcome := i.Generate(ctx, rec)
	i.Distribute(ctx, rec, &outcome)
	logger := i.getLogger(rec)
	for _, stage := range outcome.Stages() {
		if stage.Failed() {
			logger.
				WithField("stage", stage.Stage).
				WithError(stage.Err).
				Warn("шаг обработки заявки не выполнен")
		}
	}
	return outcome
}

func (i impl) Generate(ctx context.Context, rec *dbmodels.MaintenanceRequest) Outcome {
	outcome := Outcome{}
	// варианты независимы: ошибка одного не мешает второму
	outcome.AdminPdf = i.generate(ctx, rec, true)
	outcome.TenantPdf = i.generate(ctx, rec, false)
	updMap := map[string]interface{}{}
	if outcome.AdminPdf.Done {
		rec.AdminPdfPath = outcome.AdminPdf.Path
		updMap["AdminPdfPath"] = rec.AdminPdfPath
	}
	if outcome.TenantPdf.Done {
		rec.PdfPath = outcome.TenantPdf.Path
		updMap["PdfPath"] = rec.PdfPath
	}
	if err := i.deps.Store.Update(rec.ID, updMap); err != nil {
		i.getLogger(rec).WithError(err).Error("ошибка сохранения путей pdf в заявке")
	}
	return outcome
}

func (i impl) generate(ctx context.Context, rec *dbmodels.MaintenanceRequest, forAdmin bool) StageOutcome {
	stage := StageOutcome{Stage: StageTenantPdf}
	lang := rec.SelectedLanguage
	filePath := TenantPdfPath(rec.ID, lang)
	variant := "tenant"
	if forAdmin {
		stage.Stage = StageAdminPdf
		lang = models.LanguageEn
		filePath = AdminPdfPath(rec.ID)
		variant = "admin"
	}
	body, err := i.render(ctx, rec, lang, forAdmin, variant)
	if err != nil {
		stage.Err = err
		return stage
	}
	if err = i.deps.Storage.Put(ctx, filePath, body, pdfContentType); err != nil {
		stage.Err = errors.Wrap(err, "ошибка сохранения pdf")
		return stage
	}
	stage.Done = true
	stage.Path = filePath
	if i.deps.Files != nil {
		requestID := rec.ID
		_, err = i.deps.Files.SaveFile(dbmodels.StoredFile{
			MaintenanceRequestID: &requestID,
			Path:                 filePath,
			Type:                 models.FilePdf,
			ContentType:          pdfContentType,
			Size:                 int64(len(body)),
			Strategy:             filestorage.StrategyStorage,
		})
		if err != nil {
			i.getLogger(rec).WithError(err).Warn("ошибка учета pdf файла")
		}
	}
	return stage
}

func (i impl) render(ctx context.Context, rec *dbmodels.MaintenanceRequest, lang models.Language, forAdmin bool, variant string) ([]byte, error) {
	data := TemplateData(*rec, lang, forAdmin, i.deps.Location)
	html, err := messagetemplate.Build(messagetemplate.KindPdf, lang, data)
	if err != nil {
		return nil, err
	}
	sigCaption, imagesCaption, footer := messagetemplate.PdfLabels(lang)
	page := pdfexport.Page{
		Title:            messagetemplate.PdfTitle(lang, rec.WorkOrderNumber),
		HTML:             html,
		Signature:        i.loadSignature(ctx, rec),
		SignatureCaption: sigCaption,
		Footer:           footer,
	}
	if forAdmin {
		page.Images = i.loadImages(ctx, rec)
		page.ImagesCaption = imagesCaption
	}
	started := time.Now()
	body, err := i.deps.Renderer.Render(page)
	metrics.PdfRenderSeconds.WithLabelValues(variant).Observe(time.Since(started).Seconds())
	if err != nil {
		return nil, errors.Wrap(err, "ошибка формирования pdf")
	}
	return body, nil
}

// loadSignature файл подписи из хранилища, иначе подпись с холста из самой заявки
func (i impl) loadSignature(ctx context.Context, rec *dbmodels.MaintenanceRequest) *models.File {
	logger := i.getLogger(rec)
	if rec.SignatureFilePath != "" {
		body, err := i.deps.Storage.Get(ctx, rec.SignatureFilePath)
		if err == nil {
			return &models.File{FileName: path.Base(rec.SignatureFilePath), Body: body}
		}
		logger.WithError(err).Warn("файл подписи недоступен")
	}
	if rec.TenantSignature != "" {
		body, err := signature.DecodeDataURL(rec.TenantSignature)
		if err == nil {
			return &models.File{FileName: "signature_" + rec.ID, Body: body}
		}
		logger.WithError(err).Warn("подпись в заявке не читается")
	}
	return nil
}

func (i impl) loadImages(ctx context.Context, rec *dbmodels.MaintenanceRequest) []models.File {
	images := make([]models.File, 0, len(rec.PropertyImages))
	for _, imagePath := range rec.PropertyImages {
		body, err := i.deps.Storage.Get(ctx, imagePath)
		if err != nil {
			i.getLogger(rec).WithField("path", imagePath).WithError(err).Warn("фото объекта недоступно")
			continue
		}
		images = append(images, models.File{FileName: path.Base(imagePath), Body: body})
	}
	return images
}

func (i impl) Distribute(ctx context.Context, rec *dbmodels.MaintenanceRequest, outcome *Outcome) {
	outcome.TenantEmail = i.sendTenantConfirmation(ctx, rec, outcome.TenantPdf)
	outcome.AdminEmail = i.sendAdminNotice(ctx, rec, outcome.AdminPdf)
}

func (i impl) sendTenantConfirmation(ctx context.Context, rec *dbmodels.MaintenanceRequest, pdf StageOutcome) StageOutcome {
	lang := rec.SelectedLanguage
	msg := smtp.Message{
		To:      rec.TenantEmail,
		Subject: messagetemplate.Subject(messagetemplate.KindConfirmation, lang, rec.WorkOrderNumber),
	}
	body, err := messagetemplate.Build(messagetemplate.KindConfirmation, lang, TemplateData(*rec, lang, false, i.deps.Location))
	if err == nil {
		msg.TextBody = body
		msg.Attachments, err = i.attachment(ctx, rec, pdf.Path)
	}
	stage := i.send(ctx, rec, StageTenantEmail, msg, err)
	i.saveDelivery(rec, stage)
	return stage
}

func (i impl) sendAdminNotice(ctx context.Context, rec *dbmodels.MaintenanceRequest, pdf StageOutcome) StageOutcome {
	if i.deps.AdminEmail == "" {
		i.getLogger(rec).Warn("адрес администратора не задан, письмо о новой заявке не отправлено")
		return StageOutcome{Stage: StageAdminEmail, Skipped: true}
	}
	msg := smtp.Message{
		To:      i.deps.AdminEmail,
		Subject: messagetemplate.Subject(messagetemplate.KindAdminNewRequest, models.LanguageEn, rec.WorkOrderNumber),
	}
	body, err := messagetemplate.Build(messagetemplate.KindAdminNewRequest, models.LanguageEn, TemplateData(*rec, models.LanguageEn, true, i.deps.Location))
	if err == nil {
		msg.TextBody = body
		msg.Attachments, err = i.attachment(ctx, rec, pdf.Path)
	}
	return i.send(ctx, rec, StageAdminEmail, msg, err)
}

// attachment pdf вложение, если pdf не сформирован - письмо уходит без вложения
func (i impl) attachment(ctx context.Context, rec *dbmodels.MaintenanceRequest, filePath string) ([]models.File, error) {
	if filePath == "" {
		return nil, nil
	}
	body, err := i.deps.Storage.Get(ctx, filePath)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка чтения pdf для вложения")
	}
	return []models.File{{
		FileName:    fmt.Sprintf("%s.pdf", rec.WorkOrderNumber),
		ContentType: pdfContentType,
		Body:        body,
	}}, nil
}

func (i impl) send(ctx context.Context, rec *dbmodels.MaintenanceRequest, stageName string, msg smtp.Message, prepareErr error) StageOutcome {
	stage := StageOutcome{Stage: stageName}
	err := prepareErr
	if err == nil {
		if i.deps.Mailer == nil {
			err = smtp.ErrNotConfigured
		} else {
			err = i.deps.Mailer.Send(ctx, msg)
		}
	}
	kind := "tenant"
	if stageName == StageAdminEmail {
		kind = "admin"
	}
	metrics.EmailTotal.WithLabelValues(kind, metrics.Result(err)).Inc()
	if err != nil {
		stage.Err = err
		i.getLogger(rec).
			WithField("stage", stageName).
			WithError(err).
			Error("ошибка отправки письма")
		return stage
	}
	stage.Done = true
	return stage
}

// saveDelivery статус доставки меняют только письма арендатору
func (i impl) saveDelivery(rec *dbmodels.MaintenanceRequest, stage StageOutcome) {
	status := models.EmailDeliverySent
	updMap := map[string]interface{}{}
	if stage.Done {
		now := i.deps.Now()
		rec.EmailSentAt = &now
		rec.EmailDeliveryError = ""
		updMap["EmailSentAt"] = now
	} else {
		status = models.EmailDeliveryFailed
		rec.EmailDeliveryError = stage.ErrorText()
	}
	rec.EmailDeliveryStatus = &status
	updMap["EmailDeliveryStatus"] = status
	updMap["EmailDeliveryError"] = rec.EmailDeliveryError
	if err := i.deps.Store.Update(rec.ID, updMap); err != nil {
		i.getLogger(rec).WithError(err).Error("ошибка сохранения статуса доставки письма")
	}
}

func (i impl) ResendPdf(ctx context.Context, rec *dbmodels.MaintenanceRequest, email, message string) StageOutcome {
	file, err := i.LoadPdf(ctx, rec, false)
	lang := rec.SelectedLanguage
	data := TemplateData(*rec, lang, false, i.deps.Location)
	data.Message = message
	msg := smtp.Message{
		To:      email,
		Subject: messagetemplate.Subject(messagetemplate.KindResend, lang, rec.WorkOrderNumber),
	}
	if err == nil {
		msg.Attachments = []models.File{file}
		msg.TextBody, err = messagetemplate.Build(messagetemplate.KindResend, lang, data)
	}
	return i.send(ctx, rec, StageTenantEmail, msg, err)
}

func (i impl) SendStatusEmail(ctx context.Context, rec *dbmodels.MaintenanceRequest, message string) StageOutcome {
	kind := messagetemplate.KindApproved
	if rec.Status == models.RequestStatusRejected {
		kind = messagetemplate.KindRejected
	}
	lang := rec.SelectedLanguage
	data := TemplateData(*rec, lang, false, i.deps.Location)
	data.Message = message
	msg := smtp.Message{
		To:      rec.TenantEmail,
		Subject: messagetemplate.Subject(kind, lang, rec.WorkOrderNumber),
	}
	body, err := messagetemplate.Build(kind, lang, data)
	msg.TextBody = body
	stage := i.send(ctx, rec, StageTenantEmail, msg, err)
	i.saveDelivery(rec, stage)
	return stage
}

func (i impl) LoadPdf(ctx context.Context, rec *dbmodels.MaintenanceRequest, forAdmin bool) (models.File, error) {
	filePath := rec.PdfPath
	if forAdmin {
		filePath = rec.AdminPdfPath
	}
	if filePath != "" {
		body, err := i.deps.Storage.Get(ctx, filePath)
		if err == nil {
			return pdfFile(rec, body, forAdmin), nil
		}
		if !errors.Is(err, filestorage.ErrFileNotFound) {
			return models.File{}, err
		}
	}
	stage := i.generate(ctx, rec, forAdmin)
	if !stage.Done {
		return models.File{}, errors.Wrap(ErrPdfNotReady, stage.ErrorText())
	}
	updMap := map[string]interface{}{}
	if forAdmin {
		rec.AdminPdfPath = stage.Path
		updMap["AdminPdfPath"] = stage.Path
	} else {
		rec.PdfPath = stage.Path
		updMap["PdfPath"] = stage.Path
	}
	if err := i.deps.Store.Update(rec.ID, updMap); err != nil {
		i.getLogger(rec).WithError(err).Error("ошибка сохранения пути pdf в заявке")
	}
	body, err := i.deps.Storage.Get(ctx, stage.Path)
	if err != nil {
		return models.File{}, err
	}
	return pdfFile(rec, body, forAdmin), nil
}

func pdfFile(rec *dbmodels.MaintenanceRequest, body []byte, forAdmin bool) models.File {
	name := fmt.Sprintf("%s.pdf", rec.WorkOrderNumber)
	if forAdmin {
		name = fmt.Sprintf("%s_admin.pdf", rec.WorkOrderNumber)
	}
	return models.File{FileName: name, ContentType: pdfContentType, Body: body}
}
