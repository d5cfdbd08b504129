package smtp

import (
	"bytes"
	"context"
	"io"
	"time"

	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
	"maintenance-backend/models"
)

var ErrNotConfigured = errors.New("smtp client is not configured")

var Instance Provider

type Message struct {
	To          string
	Subject     string
	TextBody    string
	HTMLBody    string
	Attachments []models.File
}

type Provider interface {
	Send(ctx context.Context, msg Message) error
}

type Config struct {
	User       string
	Password   string
	Host       string
	Port       string
	TLSEnabled bool
	From       string
	FromName   string
	Timeout    time.Duration
}

func Connect(cfg Config) error {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	Instance = &impl{cfg: cfg, send: sendRaw}
	return nil
}

type sendFunc func(cfg Config, to []string, body io.Reader) error

type impl struct {
	cfg  Config
	send sendFunc
}

func (i impl) Send(ctx context.Context, msg Message) (err error) {
	logger := log.
		WithField("to", msg.To).
		WithField("subject", msg.Subject)
	if i.cfg.Host == "" || i.cfg.Port == "" {
		logger.Warn("Письмо не отправлено, тк не настроен smtp клиент")
		return ErrNotConfigured
	}
	raw, err := BuildMessage(i.cfg.From, i.cfg.FromName, msg)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, i.cfg.Timeout)
	defer cancel()
	done := make(chan error, 1)
	go func() {
		done <- i.send(i.cfg, []string{msg.To}, bytes.NewReader(raw))
	}()
	select {
	case err = <-done:
	case <-ctx.Done():
		err = errors.Wrap(ctx.Err(), "превышено время ожидания smtp сервера")
	}
	if err != nil {
		logger.WithError(err).Error("Ошибка отправки сообщения")
		return err
	}
	logger.Info("письмо отправлено")
	return nil
}

func sendRaw(cfg Config, to []string, body io.Reader) error {
	var auth sasl.Client
	if cfg.User != "" {
		auth = sasl.NewPlainClient("", cfg.User, cfg.Password)
	}
	addr := cfg.Host + ":" + cfg.Port
	if cfg.TLSEnabled {
		return smtp.SendMailTLS(addr, auth, cfg.From, to, body)
	}
	return smtp.SendMail(addr, auth, cfg.From, to, body)
}

// BuildMessage MIME письмо: текст, html-альтернатива и вложения
func BuildMessage(from, fromName string, msg Message) ([]byte, error) {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetAddressHeader("From", from, fromName)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	m.SetDateHeader("Date", time.Now())
	m.SetBody("text/plain", msg.TextBody)
	if msg.HTMLBody != "" {
		m.AddAlternative("text/html", msg.HTMLBody)
	}
	for _, file := range msg.Attachments {
		body := file.Body
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		m.Attach(file.FileName,
			gomail.SetHeader(map[string][]string{"Content-Type": {contentType}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(body)
				return err
			}),
		)
	}
	buf := new(bytes.Buffer)
	if _, err := m.WriteTo(buf); err != nil {
		return nil, errors.Wrap(err, "ошибка формирования письма")
	}
	return buf.Bytes(), nil
}
