package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	apimodels "maintenance-backend/models/api"
)

type errNotifyPayload struct {
	Service   string `json:"service"`
	Code      int    `json:"code"`
	Method    string `json:"method"`
	Path      string `json:"path"`
	RequestID string `json:"request_id,omitempty"`
	Error     string `json:"error"`
}

// ErrNotify отправляет ответы 5xx во внешний сервис оповещений, при пустом addr ничего не делает
func ErrNotify(addr string) fiber.Handler {
	if addr == "" {
		return func(c *fiber.Ctx) error {
			return c.Next()
		}
	}
	client := &http.Client{Timeout: 5 * time.Second}
	return func(c *fiber.Ctx) error {
		err := c.Next()
		status := c.Response().StatusCode()
		if status < fiber.StatusInternalServerError {
			return err
		}
		payload := errNotifyPayload{
			Service:   "maintenance-backend",
			Code:      status,
			Method:    c.Method(),
			Path:      c.OriginalURL(),
			RequestID: c.GetRespHeader(fiber.HeaderXRequestID),
			Error:     responseMessage(c.Response().Body()),
		}
		if r := c.Route(); r != nil {
			payload.Path = r.Path
		}
		go sendErrNotify(client, addr, payload)
		return err
	}
}

func responseMessage(body []byte) string {
	var resp apimodels.Response
	if err := json.Unmarshal(body, &resp); err != nil || resp.Message == "" {
		return string(body)
	}
	return resp.Message
}

func sendErrNotify(client *http.Client, addr string, payload errNotifyPayload) {
	logger := log.WithField("request_id", payload.RequestID)
	body, err := json.Marshal(payload)
	if err != nil {
		logger.WithError(err).Warn("ошибка формирования оповещения об ошибке")
		return
	}
	resp, err := client.Post(addr, fiber.MIMEApplicationJSON, bytes.NewReader(body))
	if err != nil {
		logger.WithError(err).Warn("ошибка отправки оповещения об ошибке")
		return
	}
	resp.Body.Close()
}
