package s3client

import (
	"context"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
	"maintenance-backend/config"
)

const defaultRegion = "us-east-1"

var Client *minio.Client

// Options параметры подключения к S3 совместимому хранилищу
type Options struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	UseSSL          bool
	Bucket          string
	Region          string
}

func OptionsFromConfig() Options {
	return Options{
		Endpoint:        config.Conf.S3.Endpoint,
		AccessKeyID:     config.Conf.S3.AccessKeyID,
		SecretAccessKey: config.Conf.S3.SecretAccessKey,
		UseSSL:          *config.Conf.S3.UseSSL,
		Bucket:          config.Conf.S3.BucketName,
		Region:          defaultRegion,
	}
}

func NewClient(opts Options) (*minio.Client, error) {
	if opts.Endpoint == "" {
		return nil, errors.New("не указан адрес S3")
	}
	return minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
}

// EnsureBucket создает бакет для подписей, фото и pdf, если его еще нет
func EnsureBucket(ctx context.Context, client *minio.Client, opts Options) error {
	exists, err := client.BucketExists(ctx, opts.Bucket)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки бакета")
	}
	if exists {
		return nil
	}
	err = client.MakeBucket(ctx, opts.Bucket, minio.MakeBucketOptions{Region: opts.Region})
	return errors.Wrapf(err, "ошибка создания бакета %s", opts.Bucket)
}
