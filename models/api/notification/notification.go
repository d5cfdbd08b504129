package notificationapimodels

import (
	"time"

	"github.com/pkg/errors"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
	dbmodels "maintenance-backend/models/db"
)

type NotificationView struct {
	ID                   string                  `json:"id"`
	MaintenanceRequestID string                  `json:"maintenance_request_id"`
	Type                 models.NotificationType `json:"type"`
	Title                string                  `json:"title"`
	Message              string                  `json:"message"`
	IsRead               bool                    `json:"is_read"`
	CreatedAt            time.Time               `json:"created_at"`
}

func NotificationConvert(rec dbmodels.Notification) NotificationView {
	return NotificationView{
		ID:                   rec.ID,
		MaintenanceRequestID: rec.MaintenanceRequestID,
		Type:                 rec.Type,
		Title:                rec.Title,
		Message:              rec.Message,
		IsRead:               rec.IsRead,
		CreatedAt:            rec.CreatedAt,
	}
}

type NotificationFilter struct {
	UnreadOnly bool `json:"unread_only" query:"unread_only"`
	Limit      int  `json:"limit" query:"limit"`
	Page       int  `json:"page" query:"page"`
}

func (f NotificationFilter) GetPage() (page, limit int) {
	return apimodels.Pagination{Limit: f.Limit, Page: f.Page}.GetPage()
}

type IDs struct {
	IDs []string `json:"ids"`
}

func (r IDs) Validate() error {
	if len(r.IDs) == 0 {
		return errors.New("не указаны уведомления")
	}
	return nil
}

type UnreadCount struct {
	Count int64 `json:"count"`
}
