package connectionhub

import (
	"context"
	"time"

	"github.com/gofiber/contrib/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	sendBufferSize = 16
	// pingPeriod меньше времени ожидания pong на стороне чтения
	pingPeriod = 50 * time.Second
	writeWait  = 10 * time.Second
)

type clientSession struct {
	conn *websocket.Conn
	ctx  context.Context

	// исходящие сообщения, буферизованы
	sendCh chan any
	stop   func()
}

func newSession(conn *websocket.Conn) clientSession {
	ctx, cancelFn := context.WithCancel(context.Background())
	sess := clientSession{
		conn:   conn,
		ctx:    ctx,
		stop:   cancelFn,
		sendCh: make(chan any, sendBufferSize),
	}
	go sess.startSend()
	return sess
}

// enqueue при переполненном буфере сообщение отбрасывается, уведомление остается в БД
func (s clientSession) enqueue(msg any) {
	select {
	case <-s.ctx.Done():
	case s.sendCh <- msg:
	default:
		log.Warn("буфер ws сессии переполнен, сообщение пропущено")
	}
}

func (s clientSession) startSend() {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.ctx.Done():
			s.close()
			return
		case msg := <-s.sendCh:
			if err := s.send(msg); err != nil {
				log.WithError(err).Error("ошибка отправки сообщения")
			}
		case <-ticker.C:
			if err := s.ping(); err != nil {
				log.WithError(err).Debug("ошибка отправки ping")
			}
		}
	}
}

func (s clientSession) send(msg interface{}) error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(msg)
}

func (s clientSession) ping() error {
	if s.conn == nil || s.conn.Conn == nil {
		return nil
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

func (s clientSession) close() {
	if s.conn == nil || s.conn.Conn == nil {
		return
	}
	err := s.conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
	if err != nil {
		log.WithError(err).Debug("ws соединение уже закрыто")
	}
}
