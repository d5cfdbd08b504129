package filestorage

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var ErrAllStrategiesFailed = errors.New("файл не удалось записать ни одним способом")

// WriteStrategy один из способов записи файла
type WriteStrategy interface {
	Name() string
	Write(ctx context.Context, filePath string, body []byte) error
}

const (
	StrategyStorage = "storage"
	StrategyDirect  = "direct"
	StrategyAtomic  = "atomic"
)

// WriteWithFallback пробует стратегии по порядку до первой успешной.
// Возвращает имя сработавшей стратегии.
func WriteWithFallback(ctx context.Context, filePath string, body []byte, strategies ...WriteStrategy) (string, error) {
	if len(strategies) == 0 {
		return "", errors.Wrap(ErrAllStrategiesFailed, "не задано ни одной стратегии")
	}
	logger := log.WithField("path", filePath)
	failures := make([]string, 0, len(strategies))
	for _, strategy := range strategies {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		err := strategy.Write(ctx, filePath, body)
		if err == nil {
			return strategy.Name(), nil
		}
		logger.
			WithField("strategy", strategy.Name()).
			WithError(err).
			Warn("ошибка записи файла, пробуем следующий способ")
		failures = append(failures, strategy.Name()+": "+err.Error())
	}
	return "", errors.Wrap(ErrAllStrategiesFailed, strings.Join(failures, "; "))
}

type storageStrategy struct {
	storage     Provider
	contentType string
}

// StorageStrategy запись через хранилище с проверкой, что файл действительно появился
func StorageStrategy(storage Provider, contentType string) WriteStrategy {
	return storageStrategy{storage: storage, contentType: contentType}
}

func (s storageStrategy) Name() string {
	return StrategyStorage
}

func (s storageStrategy) Write(ctx context.Context, filePath string, body []byte) error {
	if err := s.storage.Put(ctx, filePath, body, s.contentType); err != nil {
		return err
	}
	size, err := s.storage.Size(ctx, filePath)
	if err != nil {
		return errors.Wrap(err, "хранилище сообщило об успешной записи, но файл не читается")
	}
	if size == 0 {
		return errors.New("хранилище сообщило об успешной записи, но файл пустой")
	}
	return nil
}

type directStrategy struct {
	root string
}

// DirectStrategy запись напрямую в файловую систему
func DirectStrategy(root string) WriteStrategy {
	return directStrategy{root: root}
}

func (s directStrategy) Name() string {
	return StrategyDirect
}

func (s directStrategy) Write(ctx context.Context, filePath string, body []byte) error {
	full, err := localPath(s.root, filePath)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrap(err, "ошибка создания каталога")
	}
	if err = os.WriteFile(full, body, 0o644); err != nil {
		return errors.Wrap(err, "ошибка записи файла")
	}
	return checkLocal(full)
}

type atomicStrategy struct {
	root string
}

// AtomicStrategy запись во временный файл в том же каталоге и переименование
func AtomicStrategy(root string) WriteStrategy {
	return atomicStrategy{root: root}
}

func (s atomicStrategy) Name() string {
	return StrategyAtomic
}

func (s atomicStrategy) Write(ctx context.Context, filePath string, body []byte) (err error) {
	full, err := localPath(s.root, filePath)
	if err != nil {
		return err
	}
	dir := filepath.Dir(full)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(err, "ошибка создания каталога")
	}
	tmp, err := os.CreateTemp(dir, ".upload-*")
	if err != nil {
		return errors.Wrap(err, "ошибка создания временного файла")
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()
	if _, err = tmp.Write(body); err != nil {
		tmp.Close()
		return errors.Wrap(err, "ошибка записи временного файла")
	}
	if err = tmp.Sync(); err != nil {
		tmp.Close()
		return errors.Wrap(err, "ошибка сброса временного файла на диск")
	}
	if err = tmp.Close(); err != nil {
		return errors.Wrap(err, "ошибка закрытия временного файла")
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return errors.Wrap(err, "ошибка установки прав на файл")
	}
	if err = os.Rename(tmpName, full); err != nil {
		return errors.Wrap(err, "ошибка переименования временного файла")
	}
	return checkLocal(full)
}

func localPath(root, filePath string) (string, error) {
	if root == "" {
		return "", errors.New("не задан локальный каталог")
	}
	p, err := CleanPath(filePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, filepath.FromSlash(p)), nil
}

func checkLocal(full string) error {
	info, err := os.Stat(full)
	if err != nil {
		return errors.Wrap(err, "файл не найден после записи")
	}
	if info.Size() == 0 {
		return errors.New("файл пустой после записи")
	}
	return nil
}

// DefaultStrategies хранилище, затем прямая запись, затем временный файл + rename
func DefaultStrategies(storage Provider, contentType string) []WriteStrategy {
	return []WriteStrategy{
		StorageStrategy(storage, contentType),
		DirectStrategy(storage.LocalRoot()),
		AtomicStrategy(storage.LocalRoot()),
	}
}
