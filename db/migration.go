package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
	dbmodels "maintenance-backend/models/db"
)

func AutoMigrateDB() error {
	log.Info("Запуск миграций")
	if err := Migrate(DB); err != nil {
		return err
	}
	log.Info("Миграция прошла успешно")
	return nil
}

// Migrate создает структуру БД, используется и в тестах на sqlite
func Migrate(tx *gorm.DB) error {
	tables := []interface{}{
		&dbmodels.AdminPanelUser{},
		&dbmodels.Building{},
		&dbmodels.MaintenanceRequest{},
		&dbmodels.Notification{},
		&dbmodels.StoredFile{},
	}
	for _, table := range tables {
		if err := tx.AutoMigrate(table); err != nil {
			return errors.Wrapf(err, "ошибка создания структуры %T", table)
		}
	}
	return nil
}
