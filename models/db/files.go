package dbmodels

import "maintenance-backend/models"

// StoredFile учет файлов, сохраненных по заявке (подпись, фото, pdf)
type StoredFile struct {
	BaseModel
	MaintenanceRequestID *string         `gorm:"type:varchar(36);index"`
	Path                 string          `gorm:"type:varchar(500);index"`
	Type                 models.FileType `gorm:"type:varchar(50)"`
	ContentType          string          `gorm:"type:varchar(100)"`
	Size                 int64
	Strategy             string `gorm:"type:varchar(20)"` // каким способом файл был записан
}
