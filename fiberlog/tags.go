package fiberlog

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	TagPid     = "pid"
	TagLatency = "latency"
	TagStatus  = "status"
	TagMethod  = "method"
	TagPath    = "path"
	TagIP      = "ip"
	TagUA      = "user_agent"
	TagBody    = "body"
	TagResBody = "res_body"
	RequestID  = "request_id"
)

// bodyMaxLen тела запросов и ответов обрезаются в логе
const bodyMaxLen = 2048

type data struct {
	pid   int
	start time.Time
	end   time.Time
}

// FuncTag значение поля лога для запроса
type FuncTag func(c *fiber.Ctx, d *data) interface{}

func getFuncTagMap(cfg Config) map[string]FuncTag {
	all := map[string]FuncTag{
		TagPid: func(c *fiber.Ctx, d *data) interface{} {
			return d.pid
		},
		TagLatency: func(c *fiber.Ctx, d *data) interface{} {
			return d.end.Sub(d.start).String()
		},
		TagStatus: func(c *fiber.Ctx, d *data) interface{} {
			return c.Response().StatusCode()
		},
		TagMethod: func(c *fiber.Ctx, d *data) interface{} {
			return c.Method()
		},
		TagPath: func(c *fiber.Ctx, d *data) interface{} {
			return c.Path()
		},
		TagIP: func(c *fiber.Ctx, d *data) interface{} {
			return c.IP()
		},
		TagUA: func(c *fiber.Ctx, d *data) interface{} {
			return c.Get(fiber.HeaderUserAgent)
		},
		TagBody: func(c *fiber.Ctx, d *data) interface{} {
			// формы с фото и подписью и запросы с паролем не логируем
			if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) ||
				strings.Contains(c.Path(), "/auth/") ||
				strings.HasSuffix(c.Path(), "/users") {
				return ""
			}
			return truncate(string(c.Body()))
		},
		TagResBody: func(c *fiber.Ctx, d *data) interface{} {
			contentType := string(c.Response().Header.ContentType())
			if !strings.HasPrefix(contentType, fiber.MIMEApplicationJSON) {
				return ""
			}
			return truncate(string(c.Response().Body()))
		},
		RequestID: func(c *fiber.Ctx, d *data) interface{} {
			return c.GetRespHeader(fiber.HeaderXRequestID)
		},
	}
	result := make(map[string]FuncTag, len(cfg.Tags))
	for _, tag := range cfg.Tags {
		if ft, ok := all[tag]; ok {
			result[tag] = ft
		}
	}
	return result
}

func truncate(s string) string {
	if len(s) <= bodyMaxLen {
		return s
	}
	return s[:bodyMaxLen] + "..."
}
