package initializers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"maintenance-backend/config"
	"maintenance-backend/fiberlog"
)

func jsonFormatter() *log.JSONFormatter {
	return &log.JSONFormatter{
		FieldMap: log.FieldMap{
			log.FieldKeyTime: "@timestamp",
			log.FieldKeyMsg:  "message",
		},
	}
}

func InitLogger() *fiberlog.Config {
	log.SetFormatter(jsonFormatter())
	log.SetLevel(log.InfoLevel)

	logger := log.New()
	logger.SetFormatter(jsonFormatter())
	logger.SetLevel(log.DebugLevel)
	return &fiberlog.Config{
		Logger: logger,
		Tags: []string{
			fiberlog.TagBody,
			fiberlog.TagResBody,
			fiberlog.TagMethod,
			fiberlog.TagPath,
			fiberlog.TagStatus,
			fiberlog.TagLatency,
			fiberlog.TagIP,
			fiberlog.RequestID,
		},
		SkipPaths: []string{"/api/v1/ws"},
		Message: func(c *fiber.Ctx) string {
			if strings.HasPrefix(c.Path(), "/api/v1/admin") {
				return "запрос api администратора"
			}
			return "запрос api формы арендатора"
		},
	}
}

// ApplyLogLevel уровень логирования из конфигурации, неизвестное значение игнорируется
func ApplyLogLevel() {
	level, err := log.ParseLevel(config.Conf.App.LogLevel)
	if err != nil {
		log.WithField("level", config.Conf.App.LogLevel).Warn("неизвестный уровень логирования")
		return
	}
	log.SetLevel(level)
}
