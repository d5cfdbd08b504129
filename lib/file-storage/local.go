package filestorage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

type localImpl struct {
	root string
}

func NewLocal(root string) (Provider, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка определения каталога хранилища")
	}
	if err = os.MkdirAll(abs, 0o755); err != nil {
		return nil, errors.Wrap(err, "ошибка создания каталога хранилища")
	}
	return &localImpl{root: abs}, nil
}

func (i localImpl) fullPath(filePath string) (string, error) {
	p, err := CleanPath(filePath)
	if err != nil {
		return "", err
	}
	return filepath.Join(i.root, filepath.FromSlash(p)), nil
}

func (i localImpl) Put(ctx context.Context, filePath string, body []byte, contentType string) error {
	full, err := i.fullPath(filePath)
	if err != nil {
		return err
	}
	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return errors.Wrap(err, "ошибка создания каталога")
	}
	return os.WriteFile(full, body, 0o644)
}

func (i localImpl) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := i.Size(ctx, filePath)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i localImpl) Size(ctx context.Context, filePath string) (int64, error) {
	full, err := i.fullPath(filePath)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(full)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, ErrFileNotFound
		}
		return 0, err
	}
	if info.IsDir() {
		return 0, ErrFileNotFound
	}
	return info.Size(), nil
}

func (i localImpl) Get(ctx context.Context, filePath string) ([]byte, error) {
	full, err := i.fullPath(filePath)
	if err != nil {
		return nil, err
	}
	body, err := os.ReadFile(full)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrFileNotFound
		}
		return nil, err
	}
	return body, nil
}

func (i localImpl) Resolve(ctx context.Context, filePath string) (string, error) {
	full, err := i.fullPath(filePath)
	if err != nil {
		return "", err
	}
	if _, err = os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", ErrFileNotFound
		}
		return "", err
	}
	return full, nil
}

func (i localImpl) Delete(ctx context.Context, filePath string) error {
	full, err := i.fullPath(filePath)
	if err != nil {
		return err
	}
	err = os.Remove(full)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (i localImpl) LocalRoot() string {
	return i.root
}
