package signature

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	filestorage "maintenance-backend/lib/file-storage"
	"maintenance-backend/lib/metrics"
	"maintenance-backend/lib/utils/helpers"
	"maintenance-backend/models"
)

type Result struct {
	Path      string // путь в хранилище
	DataURL   string // нормализованная подпись с холста, пусто для загруженного файла
	IsDigital bool
	Strategy  string // способ, которым файл был записан
	Size      int64
}

type Provider interface {
	FromDataURL(ctx context.Context, tenantName, dataURL string) (Result, error)
	FromUpload(ctx context.Context, tenantName string, file models.File) (Result, error)
}

var Instance Provider

type StrategiesFunc func(storage filestorage.Provider, contentType string) []filestorage.WriteStrategy

func NewHandler(maxUploadBytes int64) {
	Instance = NewHandlerWithDeps(filestorage.Instance, filestorage.DefaultStrategies, time.Now, maxUploadBytes)
}

func NewHandlerWithDeps(storage filestorage.Provider, strategies StrategiesFunc, now func() time.Time, maxUploadBytes int64) Provider {
	return impl{
		storage:        storage,
		strategies:     strategies,
		now:            now,
		maxUploadBytes: maxUploadBytes,
	}
}

type impl struct {
	storage        filestorage.Provider
	strategies     StrategiesFunc
	now            func() time.Time
	maxUploadBytes int64
}

var extByMediaType = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
}

var mediaTypeByExt = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

func (i impl) FromDataURL(ctx context.Context, tenantName, dataURL string) (Result, error) {
	normalized := NormalizeDataURL(dataURL)
	body, err := DecodeDataURL(normalized)
	if err != nil {
		return Result{}, err
	}
	mediaType, err := dataURLImageType(MediaType(normalized), body)
	if err != nil {
		return Result{}, err
	}
	filePath := i.fileName(models.FileDigitalSignature, tenantName, extByMediaType[mediaType])
	logger := log.WithField("path", filePath)

	strategy, err := filestorage.WriteWithFallback(ctx, filePath, body, i.strategies(i.storage, mediaType)...)
	metrics.SignatureWriteTotal.WithLabelValues(strategyLabel(strategy), metrics.Result(err)).Inc()
	if err != nil {
		logger.WithError(err).Error("подпись не сохранена ни одним способом")
		return Result{}, errors.Wrap(ErrSignaturePersistenceFailed, err.Error())
	}
	size, err := i.verify(ctx, filePath)
	if err != nil {
		logger.
			WithField("strategy", strategy).
			WithError(err).
			Error("подпись не найдена после записи")
		return Result{}, err
	}
	if strategy != filestorage.StrategyStorage {
		logger.WithField("strategy", strategy).Warn("подпись сохранена резервным способом")
	}
	return Result{
		Path:      filePath,
		DataURL:   normalized,
		IsDigital: true,
		Strategy:  strategy,
		Size:      size,
	}, nil
}

func (i impl) FromUpload(ctx context.Context, tenantName string, file models.File) (Result, error) {
	if len(file.Body) == 0 {
		return Result{}, ErrSignatureTooSmall
	}
	if i.maxUploadBytes > 0 && int64(len(file.Body)) > i.maxUploadBytes {
		return Result{}, errors.Wrap(ErrUnsupportedSignatureFile, "file is too large")
	}
	mediaType, err := DetectImageType(file)
	if err != nil {
		return Result{}, ErrUnsupportedSignatureFile
	}
	filePath := i.fileName(models.FileUploadSignature, tenantName, extByMediaType[mediaType])
	logger := log.WithField("path", filePath)

	err = i.storage.Put(ctx, filePath, file.Body, mediaType)
	metrics.SignatureWriteTotal.WithLabelValues(filestorage.StrategyStorage, metrics.Result(err)).Inc()
	if err != nil {
		logger.WithError(err).Error("ошибка сохранения загруженной подписи")
		return Result{}, errors.Wrap(ErrSignaturePersistenceFailed, err.Error())
	}
	size, err := i.verify(ctx, filePath)
	if err != nil {
		logger.WithError(err).Error("загруженная подпись не найдена после записи")
		return Result{}, err
	}
	return Result{
		Path:      filePath,
		IsDigital: true,
		Strategy:  filestorage.StrategyStorage,
		Size:      size,
	}, nil
}

func (i impl) verify(ctx context.Context, filePath string) (int64, error) {
	size, err := i.storage.Size(ctx, filePath)
	if err != nil {
		return 0, errors.Wrap(ErrSignatureVerificationFailed, err.Error())
	}
	if size <= 0 {
		return 0, errors.Wrap(ErrSignatureVerificationFailed, "empty file")
	}
	return size, nil
}

// fileName <тип>/<slug>_<YYYYMMDD_HHMMSS>_<6 символов>.<ext>
func (i impl) fileName(fileType models.FileType, tenantName, ext string) string {
	slug := helpers.Slug(tenantName, 40, "tenant")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:6]
	return fmt.Sprintf("%s/%s_%s_%s.%s", fileType, slug, i.now().Format("20060102_150405"), suffix, ext)
}

// DetectImageType тип изображения по содержимому, расширение должно ему соответствовать
func DetectImageType(file models.File) (string, error) {
	sniffed := http.DetectContentType(file.Body)
	if _, ok := extByMediaType[sniffed]; !ok {
		return "", errors.Errorf("файл не является изображением: %s", sniffed)
	}
	ext := strings.ToLower(filepath.Ext(file.FileName))
	if ext != "" {
		byExt, ok := mediaTypeByExt[ext]
		if !ok {
			return "", errors.Errorf("недопустимое расширение файла: %s", ext)
		}
		if byExt != sniffed {
			return "", errors.Errorf("расширение %s не соответствует содержимому %s", ext, sniffed)
		}
	}
	return sniffed, nil
}

// dataURLImageType заявленный тип должен быть из разрешенных и совпадать с содержимым
func dataURLImageType(declared string, body []byte) (string, error) {
	if _, ok := extByMediaType[declared]; !ok {
		return "", errors.Wrapf(ErrInvalidSignatureFormat, "недопустимый тип подписи: %s", declared)
	}
	sniffed := http.DetectContentType(body)
	if sniffed != declared {
		return "", errors.Wrapf(ErrInvalidSignatureFormat, "заявлен %s, содержимое %s", declared, sniffed)
	}
	return sniffed, nil
}

func IsSignatureError(err error) bool {
	return errors.Is(err, ErrInvalidSignatureFormat) ||
		errors.Is(err, ErrSignatureTooSmall) ||
		errors.Is(err, ErrInvalidSignatureEncoding) ||
		errors.Is(err, ErrSignaturePersistenceFailed) ||
		errors.Is(err, ErrSignatureVerificationFailed) ||
		errors.Is(err, ErrUnsupportedSignatureFile)
}

// UserMessage текст ошибки подписи для арендатора
func UserMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidSignatureFormat):
		return "The signature could not be read. Please sign again."
	case errors.Is(err, ErrSignatureTooSmall):
		return "The signature is too small. Please sign again."
	case errors.Is(err, ErrInvalidSignatureEncoding):
		return "The signature data is corrupted. Please sign again."
	case errors.Is(err, ErrUnsupportedSignatureFile):
		return "The signature file must be a PNG, JPEG, GIF or WebP image."
	case errors.Is(err, ErrSignaturePersistenceFailed), errors.Is(err, ErrSignatureVerificationFailed):
		return "The signature could not be saved. Please try again."
	}
	return "The signature could not be processed."
}

func strategyLabel(strategy string) string {
	if strategy == "" {
		return "none"
	}
	return strategy
}
