package initializers

import (
	"context"

	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	s3client "maintenance-backend/s3"
)

func InitS3(ctx context.Context) {
	if config.Conf.Storage.Driver != "s3" {
		return
	}
	opts := s3client.OptionsFromConfig()
	client, err := s3client.NewClient(opts)
	if err != nil {
		panic("Ошибка инициализации клиента S3: " + err.Error())
	}
	if err = s3client.EnsureBucket(ctx, client, opts); err != nil {
		log.WithError(err).Error("S3 соединение не удалось, бакет не создан")
	}
	s3client.Client = client
	log.WithField("bucket", opts.Bucket).Info("S3 клиент успешно инициализирован")
}
