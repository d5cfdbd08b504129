package fiberlog

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Config struct {
	Logger *logrus.Logger
	Tags   []string
	// SkipPaths пути без записи в лог (метрики, документация)
	SkipPaths []string
	// Message текст записи, по умолчанию "запрос api"
	Message func(c *fiber.Ctx) string
}

var ConfigDefault = Config{
	Tags: []string{
		TagStatus,
		TagLatency,
		TagMethod,
		TagPath,
		RequestID,
	},
}
