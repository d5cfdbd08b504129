package filestorage

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// s3Impl файлы в бакете minio/s3.
// localRoot - локальное зеркало: сюда пишут резервные стратегии записи
// и сюда скачиваются файлы для вложений в письма.
type s3Impl struct {
	client     *minio.Client
	bucketName string
	local      *localImpl
}

func NewS3(client *minio.Client, bucketName, localRoot string) (Provider, error) {
	local, err := NewLocal(localRoot)
	if err != nil {
		return nil, err
	}
	return &s3Impl{
		client:     client,
		bucketName: bucketName,
		local:      local.(*localImpl),
	}, nil
}

func (i s3Impl) Put(ctx context.Context, filePath string, body []byte, contentType string) error {
	key, err := CleanPath(filePath)
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err = i.client.PutObject(ctx, i.bucketName, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return errors.Wrap(err, "ошибка загрузки файла в s3")
	}
	return nil
}

func (i s3Impl) Exists(ctx context.Context, filePath string) (bool, error) {
	_, err := i.Size(ctx, filePath)
	if err != nil {
		if errors.Is(err, ErrFileNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (i s3Impl) Size(ctx context.Context, filePath string) (int64, error) {
	// файл мог быть записан резервной стратегией в локальный каталог
	if size, err := i.local.Size(ctx, filePath); err == nil {
		return size, nil
	}
	key, err := CleanPath(filePath)
	if err != nil {
		return 0, err
	}
	info, err := i.client.StatObject(ctx, i.bucketName, key, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return 0, ErrFileNotFound
		}
		return 0, errors.Wrap(err, "ошибка получения информации о файле в s3")
	}
	return info.Size, nil
}

func (i s3Impl) Get(ctx context.Context, filePath string) ([]byte, error) {
	if body, err := i.local.Get(ctx, filePath); err == nil {
		return body, nil
	}
	key, err := CleanPath(filePath)
	if err != nil {
		return nil, err
	}
	obj, err := i.client.GetObject(ctx, i.bucketName, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из s3")
	}
	defer obj.Close()
	body, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrFileNotFound
		}
		return nil, errors.Wrap(err, "ошибка чтения файла из s3")
	}
	return body, nil
}

func (i s3Impl) Resolve(ctx context.Context, filePath string) (string, error) {
	if full, err := i.local.Resolve(ctx, filePath); err == nil {
		return full, nil
	}
	key, err := CleanPath(filePath)
	if err != nil {
		return "", err
	}
	full := filepath.Join(i.local.root, filepath.FromSlash(key))
	err = i.client.FGetObject(ctx, i.bucketName, key, full, minio.GetObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return "", ErrFileNotFound
		}
		return "", errors.Wrap(err, "ошибка скачивания файла из s3")
	}
	return full, nil
}

func (i s3Impl) Delete(ctx context.Context, filePath string) error {
	key, err := CleanPath(filePath)
	if err != nil {
		return err
	}
	if err = i.local.Delete(ctx, filePath); err != nil {
		log.WithError(err).WithField("path", key).Warn("ошибка удаления локальной копии файла")
	}
	err = i.client.RemoveObject(ctx, i.bucketName, key, minio.RemoveObjectOptions{})
	if err != nil && !isNoSuchKey(err) {
		return errors.Wrap(err, "ошибка удаления файла из s3")
	}
	return nil
}

func (i s3Impl) LocalRoot() string {
	return i.local.root
}

func isNoSuchKey(err error) bool {
	if err == nil {
		return false
	}
	if os.IsNotExist(err) {
		return true
	}
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
