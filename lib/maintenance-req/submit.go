package maintenancereqhandler

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"maintenance-backend/lib/metrics"
	"maintenance-backend/lib/signature"
	"maintenance-backend/lib/utils/helpers"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	maintenanceapimodels "maintenance-backend/models/api/maintenance"
	dbmodels "maintenance-backend/models/db"
)

var imageExtByMediaType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

func (i impl) Submit(ctx context.Context, sessionID string, data maintenanceapimodels.SubmitRequest) (result SubmitResult, err error) {
	data.Trim()
	now := i.deps.Now()
	errs := data.Validate(now, i.deps.Location)
	i.validateImages(data.PropertyImages, errs)
	if !errs.Empty() {
		metrics.SubmissionRejectedTotal.WithLabelValues(apimodels.CategoryValidation).Inc()
		return SubmitResult{}, errs
	}
	lang := data.Language()
	logger := i.getLogger("").
		WithField("session_id", sessionID).
		WithField("language", lang)

	sig, err := i.acquireSignature(ctx, data)
	if err != nil {
		if signature.IsSignatureError(err) {
			logger.WithField("stage", "signature").WithError(err).Warn("подпись отклонена")
			metrics.SubmissionRejectedTotal.WithLabelValues(apimodels.CategorySignature).Inc()
			errs.Add("signature", signature.UserMessage(err))
			return SubmitResult{}, errs
		}
		return SubmitResult{}, errors.Wrap(err, "ошибка обработки подписи")
	}
	filePaths := []string{sig.Path}
	sigType := models.FileDigitalSignature
	if sig.DataURL == "" {
		sigType = models.FileUploadSignature
	}
	i.recordFile(sig.Path, sigType, "", sig.Size, sig.Strategy)

	imagePaths, err := i.saveImages(ctx, data.TenantName, data.PropertyImages)
	filePaths = append(filePaths, imagePaths...)
	if err != nil {
		logger.WithField("stage", "images").WithError(err).Error("ошибка сохранения фото объекта")
		i.discardFiles(ctx, logger, filePaths)
		return SubmitResult{}, err
	}

	texts, translationErr := i.translateTexts(ctx, lang, data.WorkRequested, data.SpecialInstructions, data.NoPermissionReason)
	if translationErr != nil {
		logger.WithField("stage", "translation").WithError(translationErr).Warn("заявка сохраняется без перевода")
	}

	rec := dbmodels.MaintenanceRequest{
		TenantName:         data.TenantName,
		TenantEmail:        data.TenantEmail,
		TenantPhone:        data.TenantPhone,
		BuildingName:       data.BuildingName,
		UnitNumber:         data.UnitNumber,
		PermissionToEnter:  *data.PermissionToEnter,
		ScheduledDate:      data.ParsedDate(i.deps.Location),
		ScheduledTime:      data.ScheduledTime,
		IsEmergency:        data.IsEmergency,
		Priority:           models.PriorityRoutine,
		TenantSignature:    sig.DataURL,
		SignatureFilePath:  sig.Path,
		IsDigitalSignature: sig.IsDigital,
		PropertyImages:     imagePaths,
		SelectedLanguage:   lang,
		Status:             models.RequestStatusPending,
	}
	texts.apply(&rec)
	if err = i.applyBuilding(&rec, data.BuildingID); err != nil {
		logger.WithField("stage", "building").WithError(err).Error("ошибка получения здания")
		i.discardFiles(ctx, logger, filePaths)
		return SubmitResult{}, err
	}
	if err = i.create(&rec); err != nil {
		logger.WithField("stage", "persist").WithError(err).Error("ошибка сохранения заявки")
		i.discardFiles(ctx, logger, filePaths)
		return SubmitResult{}, err
	}
	logger = logger.
		WithField("request_id", rec.ID).
		WithField("work_order_number", rec.WorkOrderNumber)

	saved, err := i.readBack(rec)
	if err != nil {
		logger.WithField("stage", "persist").WithError(err).Error("ошибка чтения сохраненной заявки")
		return SubmitResult{}, err
	}
	if err = i.deps.Files.AttachToRequest(filePaths, saved.ID); err != nil {
		logger.WithError(err).Warn("ошибка привязки файлов к заявке")
	}
	result = SubmitResult{TranslationErr: translationErr}
	result.Notified, err = i.deps.Notifications.FanOut(*saved)
	if err != nil {
		logger.WithField("stage", "notification").WithError(err).Error("уведомления администраторам не созданы")
	}
	result.Outcome = i.deps.Documents.Process(ctx, saved)
	if _, err = i.deps.Guard.Record(ctx, sessionID, *saved); err != nil {
		logger.WithField("stage", "guard").WithError(err).Warn("отметка об отправке не сохранена")
	}
	result.Request = *saved
	metrics.SubmissionsTotal.WithLabelValues(string(lang)).Inc()
	logger.Info("заявка принята")
	return result, nil
}

func (i impl) acquireSignature(ctx context.Context, data maintenanceapimodels.SubmitRequest) (signature.Result, error) {
	if data.SignatureUpload != nil && len(data.SignatureUpload.Body) > 0 {
		return i.deps.Signature.FromUpload(ctx, data.TenantName, *data.SignatureUpload)
	}
	return i.deps.Signature.FromDataURL(ctx, data.TenantName, data.TenantSignature)
}

func (i impl) validateImages(images []models.File, errs apimodels.ValidationErrors) {
	if i.deps.MaxImages > 0 && len(images) > i.deps.MaxImages {
		errs.Add("property_images", fmt.Sprintf("No more than %d images can be attached", i.deps.MaxImages))
		return
	}
	for _, image := range images {
		if i.deps.MaxImageBytes > 0 && int64(len(image.Body)) > i.deps.MaxImageBytes {
			errs.Add("property_images", fmt.Sprintf("Image %s is too large", image.FileName))
			return
		}
		if _, err := signature.DetectImageType(image); err != nil {
			errs.Add("property_images", fmt.Sprintf("File %s must be a PNG, JPEG, GIF or WebP image", image.FileName))
			return
		}
	}
}

// saveImages property_images/<арендатор>_<время>_<n>_<суффикс>.<ext>
// При ошибке возвращает пути уже записанных фото
func (i impl) saveImages(ctx context.Context, tenantName string, images []models.File) ([]string, error) {
	slug := helpers.Slug(tenantName, 40, "tenant")
	stamp := i.deps.Now().In(i.deps.Location).Format("20060102_150405")
	paths := make([]string, 0, len(images))
	for idx, image := range images {
		mediaType, err := signature.DetectImageType(image)
		if err != nil {
			return paths, err
		}
		suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
		filePath := fmt.Sprintf("%s/%s_%s_%d_%s.%s", models.FilePropertyImage, slug, stamp, idx+1, suffix, imageExtByMediaType[mediaType])
		if err = i.deps.Storage.Put(ctx, filePath, image.Body, mediaType); err != nil {
			return paths, errors.Wrapf(err, "ошибка сохранения фото %s", image.FileName)
		}
		i.recordFile(filePath, models.FilePropertyImage, mediaType, int64(len(image.Body)), "")
		paths = append(paths, filePath)
	}
	return paths, nil
}

// discardFiles убирает файлы формы, если заявка не сохранилась
func (i impl) discardFiles(ctx context.Context, logger *log.Entry, paths []string) {
	for _, p := range paths {
		if err := i.deps.Storage.Delete(ctx, p); err != nil {
			logger.WithField("path", p).WithError(err).Warn("ошибка удаления файла несохраненной заявки")
		}
	}
	if err := i.deps.Files.DeleteUnattached(paths); err != nil {
		logger.WithError(err).Warn("ошибка удаления учета файлов несохраненной заявки")
	}
}

func (i impl) recordFile(filePath string, fileType models.FileType, contentType string, size int64, strategy string) {
	_, err := i.deps.Files.SaveFile(dbmodels.StoredFile{
		Path:        filePath,
		Type:        fileType,
		ContentType: contentType,
		Size:        size,
		Strategy:    strategy,
	})
	if err != nil {
		i.getLogger("").WithField("path", filePath).WithError(err).Warn("ошибка учета файла")
	}
}

// applyBuilding адрес копируется из справочника, без корректной ссылки остается пустым
func (i impl) applyBuilding(rec *dbmodels.MaintenanceRequest, buildingID string) error {
	building, err := i.deps.Buildings.Resolve(buildingID)
	if err != nil || building == nil {
		return err
	}
	rec.BuildingID = &building.ID
	rec.PropertyAddress = building.Address
	rec.PropertyCity = building.City
	rec.PropertyState = building.State
	rec.PropertyZip = building.Zip
	return nil
}

// create сохраняет заявку, подбирая номер, пока он не окажется уникальным
func (i impl) create(rec *dbmodels.MaintenanceRequest) error {
	for attempt := 1; attempt <= workOrderMaxAttempts; attempt++ {
		number, err := NewWorkOrderNumber(i.deps.Now(), i.deps.Location)
		if err != nil {
			return err
		}
		exists, err := i.deps.Store.ExistsWorkOrder(number)
		if err != nil {
			return err
		}
		if exists {
			continue
		}
		rec.WorkOrderNumber = number
		err = i.deps.Store.Create(rec)
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		i.getLogger(rec.ID).WithField("work_order_number", number).Warn("номер заявки занят, повторяем")
	}
	return ErrWorkOrderExhausted
}

// readBack повторное чтение после записи; язык заявки обязан совпасть с выбранным
func (i impl) readBack(rec dbmodels.MaintenanceRequest) (*dbmodels.MaintenanceRequest, error) {
	saved, err := i.getRec(rec.ID)
	if err != nil {
		return nil, err
	}
	if saved.SelectedLanguage == rec.SelectedLanguage {
		return saved, nil
	}
	i.getLogger(rec.ID).
		WithField("expected", rec.SelectedLanguage).
		WithField("actual", saved.SelectedLanguage).
		Warn("язык заявки не сохранился, записываем повторно")
	if err = i.deps.Store.Update(rec.ID, map[string]interface{}{"SelectedLanguage": rec.SelectedLanguage}); err != nil {
		return nil, err
	}
	saved, err = i.getRec(rec.ID)
	if err != nil {
		return nil, err
	}
	if saved.SelectedLanguage != rec.SelectedLanguage {
		return nil, errors.New("язык заявки не удалось сохранить")
	}
	return saved, nil
}
