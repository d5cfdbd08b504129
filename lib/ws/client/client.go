package wsclient

import (
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	// PongWait без pong от браузера дольше этого времени соединение считается потерянным
	PongWait = 60 * time.Second
	// консоль ничего не отправляет, кроме служебных кадров
	readLimit = 512
)

func NewClient(userID string, c *websocket.Conn) *WsClient {
	return &WsClient{
		conn:   c,
		userID: userID,
	}
}

// WsClient канал только для пушей сервера, входящие кадры читаются ради pong и close
type WsClient struct {
	conn   *websocket.Conn
	userID string
}

// Dispatch блокирует до закрытия соединения
func (c *WsClient) Dispatch() {
	if c.conn == nil || c.conn.Conn == nil {
		return
	}
	logger := log.WithField("user_id", c.userID)
	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(PongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(PongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				logger.WithError(err).Warn("ws соединение администратора прервано")
			}
			return
		}
	}
}
