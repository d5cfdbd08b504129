package filestorage

import (
	"context"
	"path"
	"strings"

	"github.com/pkg/errors"
)

var ErrFileNotFound = errors.New("файл не найден")

// Provider хранилище файлов заявок: подписи, фото, pdf
type Provider interface {
	Put(ctx context.Context, filePath string, body []byte, contentType string) error
	Exists(ctx context.Context, filePath string) (bool, error)
	// Size размер файла, ErrFileNotFound если файла нет
	Size(ctx context.Context, filePath string) (int64, error)
	Get(ctx context.Context, filePath string) ([]byte, error)
	// Resolve абсолютный путь к локальной копии файла (для вложений в письма)
	Resolve(ctx context.Context, filePath string) (string, error)
	Delete(ctx context.Context, filePath string) error
	// LocalRoot каталог для записи в обход хранилища
	LocalRoot() string
}

var Instance Provider

// CleanPath относительный путь внутри хранилища, без выхода за корень
func CleanPath(filePath string) (string, error) {
	p := strings.ReplaceAll(filePath, "\\", "/")
	p = path.Clean("/" + p)
	p = strings.TrimPrefix(p, "/")
	if p == "" || p == "." {
		return "", errors.New("пустой путь к файлу")
	}
	return p, nil
}
