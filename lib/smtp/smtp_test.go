package smtp

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"maintenance-backend/models"
)

func TestBuildMessage(t *testing.T) {
	raw, err := BuildMessage("no-reply@example.com", "Property Maintenance", Message{
		To:       "tenant@example.com",
		Subject:  "Solicitud recibida",
		TextBody: "Gracias por su solicitud",
		Attachments: []models.File{
			{FileName: "maintenance_request_1_es.pdf", ContentType: "application/pdf", Body: []byte("%PDF-1.3 test")},
		},
	})
	require.NoError(t, err)
	text := string(raw)
	require.Contains(t, text, "To: tenant@example.com")
	require.Contains(t, text, "maintenance_request_1_es.pdf")
	require.Contains(t, text, "application/pdf")
}

func TestSend(t *testing.T) {
	cfg := Config{Host: "localhost", Port: "25", From: "no-reply@example.com", Timeout: time.Second}

	t.Run("не настроен", func(t *testing.T) {
		err := impl{cfg: Config{}}.Send(context.Background(), Message{To: "a@example.com"})
		require.ErrorIs(t, err, ErrNotConfigured)
	})
	t.Run("отправка", func(t *testing.T) {
		var gotTo []string
		var gotBody string
		h := impl{cfg: cfg, send: func(cfg Config, to []string, body io.Reader) error {
			gotTo = to
			b, _ := io.ReadAll(body)
			gotBody = string(b)
			return nil
		}}
		err := h.Send(context.Background(), Message{To: "a@example.com", Subject: "Hi", TextBody: "Body"})
		require.NoError(t, err)
		require.Equal(t, []string{"a@example.com"}, gotTo)
		require.True(t, strings.Contains(gotBody, "Subject: Hi"))
	})
	t.Run("таймаут", func(t *testing.T) {
		cfg := cfg
		cfg.Timeout = 20 * time.Millisecond
		h := impl{cfg: cfg, send: func(cfg Config, to []string, body io.Reader) error {
			time.Sleep(200 * time.Millisecond)
			return nil
		}}
		err := h.Send(context.Background(), Message{To: "a@example.com"})
		require.Error(t, err)
	})
}
