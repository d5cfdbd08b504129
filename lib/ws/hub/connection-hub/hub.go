package connectionhub

import (
	"sync"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
	wsmodels "maintenance-backend/models/ws"
)

// UnreadCounter источник счетчика непрочитанных уведомлений, отправляется при подключении
type UnreadCounter interface {
	UnreadCount(userID string) (int64, error)
}

type Provider interface {
	AddClient(userID string, conn *websocket.Conn)
	DeleteClient(userID string, conn *websocket.Conn)
	SendMessage(msg wsmodels.ServerMessage)
	IsConnected(userID string) bool
}

var Instance Provider

func Init() {
	Instance = NewHub(nil)
}

// SetCounter счетчик задается после создания обработчика уведомлений
func SetCounter(counter UnreadCounter) {
	if hub, ok := Instance.(*impl); ok {
		hub.mu.Lock()
		hub.counter = counter
		hub.mu.Unlock()
	}
}

func NewHub(counter UnreadCounter) Provider {
	return &impl{
		clients: map[string]clientSession{},
		counter: counter,
	}
}

type impl struct {
	mu      sync.RWMutex
	clients map[string]clientSession //map[userID]
	counter UnreadCounter
}

// DeleteClient закрывает сессию только если она принадлежит этому соединению,
// переподключение из новой вкладки не должно закрываться старым обработчиком
func (i *impl) DeleteClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	sess, ok := i.clients[userID]
	if !ok || sess.conn != conn {
		i.mu.Unlock()
		return
	}
	delete(i.clients, userID)
	i.mu.Unlock()
	sess.stop()
}

func (i *impl) AddClient(userID string, conn *websocket.Conn) {
	i.mu.Lock()
	oldSess, ok := i.clients[userID]
	i.clients[userID] = newSession(conn)
	counter := i.counter
	i.mu.Unlock()
	if ok {
		oldSess.stop()
	}
	if counter != nil {
		go i.sendUnreadCount(userID, counter)
	}
}

func (i *impl) SendMessage(msg wsmodels.ServerMessage) {
	i.mu.RLock()
	sess, ok := i.clients[msg.ToUserID]
	i.mu.RUnlock()
	if ok {
		sess.enqueue(msg)
	}
}

func (i *impl) IsConnected(userID string) bool {
	i.mu.RLock()
	sess, ok := i.clients[userID]
	i.mu.RUnlock()
	if !ok || sess.conn == nil || sess.conn.Conn == nil {
		return false
	}
	return true
}

func (i *impl) sendUnreadCount(userID string, counter UnreadCounter) {
	count, err := counter.UnreadCount(userID)
	if err != nil {
		log.WithField("user_id", userID).WithError(err).Error("ошибка получения количества непрочитанных уведомлений")
		return
	}
	i.SendMessage(wsmodels.ServerMessage{
		ToUserID:    userID,
		Time:        wsmodels.FormatTime(time.Now()),
		Code:        wsmodels.CodeUnreadCount,
		UnreadCount: count,
	})
}
