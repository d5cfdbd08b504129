package notificationhandler

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/db"
	adminpanelhandler "maintenance-backend/lib/admin-panel"
	notificationstore "maintenance-backend/lib/notification/store"
	connectionhub "maintenance-backend/lib/ws/hub/connection-hub"
	"maintenance-backend/models"
	notificationapimodels "maintenance-backend/models/api/notification"
	dbmodels "maintenance-backend/models/db"
	wsmodels "maintenance-backend/models/ws"
)

var ErrNotFound = errors.New("уведомление не найдено")

// AdminDirectory справочник администраторов, получающих уведомления
type AdminDirectory interface {
	ListAdminUsers() ([]string, error)
}

type Provider interface {
	// FanOut по одному уведомлению на каждого активного администратора
	FanOut(rec dbmodels.MaintenanceRequest) (int, error)
	List(userID string, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error)
	UnreadCount(userID string) (int64, error)
	MarkRead(userID, id string) error
	MarkAllRead(userID string) error
	Delete(userID, id string) error
	DeleteMany(userID string, ids []string) (int64, error)
}

// Pusher доставка событий в открытые консоли администраторов
type Pusher interface {
	SendMessage(msg wsmodels.ServerMessage)
}

var Instance Provider

func NewHandler() {
	Instance = NewHandlerWithPusher(notificationstore.NewInstance(db.DB), adminpanelhandler.Instance, connectionhub.Instance)
	connectionhub.SetCounter(Instance)
}

func NewHandlerWithDeps(store notificationstore.Provider, admins AdminDirectory) Provider {
	return NewHandlerWithPusher(store, admins, nil)
}

func NewHandlerWithPusher(store notificationstore.Provider, admins AdminDirectory, pusher Pusher) Provider {
	return impl{
		store:  store,
		admins: admins,
		pusher: pusher,
	}
}

type impl struct {
	store  notificationstore.Provider
	admins AdminDirectory
	pusher Pusher
}

func (i impl) FanOut(rec dbmodels.MaintenanceRequest) (int, error) {
	logger := log.
		WithField("request_id", rec.ID).
		WithField("work_order_number", rec.WorkOrderNumber)
	userIDs, err := i.admins.ListAdminUsers()
	if err != nil {
		return 0, err
	}
	if len(userIDs) == 0 {
		logger.Warn("нет активных администраторов для уведомления о новой заявке")
		return 0, nil
	}
	title := fmt.Sprintf("New maintenance request %s", rec.WorkOrderNumber)
	message := fmt.Sprintf("%s, %s unit %s", rec.TenantName, rec.BuildingName, rec.UnitNumber)
	if rec.IsEmergency {
		title = "EMERGENCY: " + title
	}
	list := make([]dbmodels.Notification, 0, len(userIDs))
	for _, userID := range userIDs {
		list = append(list, dbmodels.Notification{
			UserID:               userID,
			MaintenanceRequestID: rec.ID,
			Type:                 models.NotificationNewRequest,
			Title:                title,
			Message:              message,
		})
	}
	if err = i.store.CreateBatch(list); err != nil {
		return 0, err
	}
	logger.WithField("count", len(list)).Info("уведомления администраторам созданы")
	i.push(rec, title, userIDs)
	return len(list), nil
}

// push ошибки счетчика не влияют на результат, уведомления уже сохранены
func (i impl) push(rec dbmodels.MaintenanceRequest, title string, userIDs []string) {
	if i.pusher == nil {
		return
	}
	now := wsmodels.FormatTime(time.Now())
	for _, userID := range userIDs {
		count, err := i.store.UnreadCount(userID)
		if err != nil {
			log.WithField("user_id", userID).WithError(err).Warn("ошибка получения количества непрочитанных уведомлений")
		}
		i.pusher.SendMessage(wsmodels.ServerMessage{
			ToUserID:        userID,
			Time:            now,
			Code:            wsmodels.CodeNewRequest,
			Msg:             title,
			RequestID:       rec.ID,
			WorkOrderNumber: rec.WorkOrderNumber,
			IsEmergency:     rec.IsEmergency,
			UnreadCount:     count,
		})
	}
}

func (i impl) List(userID string, filter notificationapimodels.NotificationFilter) ([]notificationapimodels.NotificationView, int64, error) {
	page, limit := filter.GetPage()
	list, rowCount, err := i.store.List(userID, filter.UnreadOnly, page, limit)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка уведомлений")
	}
	result := make([]notificationapimodels.NotificationView, 0, len(list))
	for _, rec := range list {
		result = append(result, notificationapimodels.NotificationConvert(rec))
	}
	return result, rowCount, nil
}

func (i impl) UnreadCount(userID string) (int64, error) {
	return i.store.UnreadCount(userID)
}

func (i impl) MarkRead(userID, id string) error {
	found, err := i.store.MarkRead(userID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка обновления уведомления")
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (i impl) MarkAllRead(userID string) error {
	_, err := i.store.MarkAllRead(userID)
	return err
}

func (i impl) Delete(userID, id string) error {
	found, err := i.store.Delete(userID, id)
	if err != nil {
		return errors.Wrap(err, "ошибка удаления уведомления")
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (i impl) DeleteMany(userID string, ids []string) (int64, error) {
	return i.store.DeleteMany(userID, ids)
}
