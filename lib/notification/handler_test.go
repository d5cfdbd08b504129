package notificationhandler

import (
	"sync"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"maintenance-backend/db/testdb"
	notificationstore "maintenance-backend/lib/notification/store"
	notificationapimodels "maintenance-backend/models/api/notification"
	dbmodels "maintenance-backend/models/db"
	wsmodels "maintenance-backend/models/ws"
)

type adminsStub struct {
	ids []string
	err error
}

func (a adminsStub) ListAdminUsers() ([]string, error) {
	return a.ids, a.err
}

type pusherStub struct {
	mu   sync.Mutex
	msgs []wsmodels.ServerMessage
}

func (p *pusherStub) SendMessage(msg wsmodels.ServerMessage) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
}

func TestFanOutPush(t *testing.T) {
	store := notificationstore.NewInstance(testdb.New(t))
	pusher := &pusherStub{}
	h := NewHandlerWithPusher(store, adminsStub{ids: []string{"admin-1", "admin-2"}}, pusher)
	rec := dbmodels.MaintenanceRequest{
		BaseModel:       dbmodels.BaseModel{ID: "req-9"},
		WorkOrderNumber: "WO-20260310-QWERT",
		IsEmergency:     true,
	}
	_, err := h.FanOut(rec)
	require.NoError(t, err)
	_, err = h.FanOut(rec)
	require.NoError(t, err)

	require.Len(t, pusher.msgs, 4)
	last := pusher.msgs[3]
	require.Equal(t, "admin-2", last.ToUserID)
	require.Equal(t, wsmodels.CodeNewRequest, last.Code)
	require.Equal(t, "req-9", last.RequestID)
	require.True(t, last.IsEmergency)
	require.Contains(t, last.Msg, "EMERGENCY")
	require.EqualValues(t, 2, last.UnreadCount)
}

func TestNotificationHandler(t *testing.T) {
	store := notificationstore.NewInstance(testdb.New(t))
	h := NewHandlerWithDeps(store, adminsStub{ids: []string{"admin-1", "admin-2", "admin-3"}})
	rec := dbmodels.MaintenanceRequest{
		BaseModel:       dbmodels.BaseModel{ID: "req-1"},
		WorkOrderNumber: "WO-20260310-ABCDE",
		TenantName:      "Jane Roe",
		BuildingName:    "Oak Tower",
		UnitNumber:      "12B",
	}

	count, err := h.FanOut(rec)
	require.NoError(t, err)
	require.Equal(t, 3, count)

	t.Run("у каждого администратора своя запись", func(t *testing.T) {
		for _, userID := range []string{"admin-1", "admin-2", "admin-3"} {
			unread, err := h.UnreadCount(userID)
			require.NoError(t, err)
			require.EqualValues(t, 1, unread)
		}
	})
	t.Run("прочтение не влияет на других", func(t *testing.T) {
		list, total, err := h.List("admin-1", notificationapimodels.NotificationFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 1, total)
		require.Equal(t, "req-1", list[0].MaintenanceRequestID)
		require.Contains(t, list[0].Title, "WO-20260310-ABCDE")

		require.NoError(t, h.MarkRead("admin-1", list[0].ID))
		unread, err := h.UnreadCount("admin-1")
		require.NoError(t, err)
		require.EqualValues(t, 0, unread)
		unread, err = h.UnreadCount("admin-2")
		require.NoError(t, err)
		require.EqualValues(t, 1, unread)

		list, _, err = h.List("admin-1", notificationapimodels.NotificationFilter{UnreadOnly: true})
		require.NoError(t, err)
		require.Empty(t, list)
	})
	t.Run("чужое уведомление", func(t *testing.T) {
		list, _, err := h.List("admin-2", notificationapimodels.NotificationFilter{})
		require.NoError(t, err)
		require.ErrorIs(t, h.MarkRead("admin-3", list[0].ID), ErrNotFound)
		require.ErrorIs(t, h.Delete("admin-3", list[0].ID), ErrNotFound)
		deleted, err := h.DeleteMany("admin-3", []string{list[0].ID})
		require.NoError(t, err)
		require.EqualValues(t, 0, deleted)
	})
	t.Run("прочитать все и удалить", func(t *testing.T) {
		_, err := h.FanOut(rec)
		require.NoError(t, err)
		require.NoError(t, h.MarkAllRead("admin-2"))
		unread, err := h.UnreadCount("admin-2")
		require.NoError(t, err)
		require.EqualValues(t, 0, unread)

		list, total, err := h.List("admin-2", notificationapimodels.NotificationFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 2, total)
		require.NoError(t, h.Delete("admin-2", list[0].ID))
		deleted, err := h.DeleteMany("admin-2", []string{list[1].ID})
		require.NoError(t, err)
		require.EqualValues(t, 1, deleted)
		_, total, err = h.List("admin-2", notificationapimodels.NotificationFilter{})
		require.NoError(t, err)
		require.EqualValues(t, 0, total)
	})
	t.Run("ошибка справочника администраторов", func(t *testing.T) {
		h := NewHandlerWithDeps(store, adminsStub{err: errors.New("db down")})
		_, err := h.FanOut(rec)
		require.Error(t, err)
	})
	t.Run("нет администраторов", func(t *testing.T) {
		h := NewHandlerWithDeps(store, adminsStub{})
		count, err := h.FanOut(rec)
		require.NoError(t, err)
		require.Zero(t, count)
	})
}
