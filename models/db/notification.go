package dbmodels

import "maintenance-backend/models"

type Notification struct {
	BaseModel
	UserID               string                  `gorm:"type:varchar(36);index:idx_notification_user"`
	MaintenanceRequestID string                  `gorm:"type:varchar(36);index"`
	Type                 models.NotificationType `gorm:"type:varchar(50)"`
	Title                string                  `gorm:"type:varchar(255)"`
	Message              string
	IsRead               bool `gorm:"index:idx_notification_user"`
}
