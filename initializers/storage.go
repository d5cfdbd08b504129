package initializers

import (
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	filestorage "maintenance-backend/lib/file-storage"
	s3client "maintenance-backend/s3"
)

// InitStorage хранилище подписей, фото и pdf: локальный диск или s3
func InitStorage() {
	var (
		storage filestorage.Provider
		err     error
	)
	if config.Conf.Storage.Driver == "s3" && s3client.Client != nil {
		localRoot := config.Conf.Storage.TempDir
		if localRoot == "" {
			localRoot = config.Conf.Storage.LocalRoot
		}
		storage, err = filestorage.NewS3(s3client.Client, config.Conf.S3.BucketName, localRoot)
	} else {
		storage, err = filestorage.NewLocal(config.Conf.Storage.LocalRoot)
	}
	if err != nil {
		panic("Ошибка инициализации хранилища файлов: " + err.Error())
	}
	filestorage.Instance = storage
	log.WithField("driver", config.Conf.Storage.Driver).Info("хранилище файлов инициализировано")
}
