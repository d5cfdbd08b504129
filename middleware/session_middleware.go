package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const (
	SessionCookieName = "mr_session"
	sessionLocalsKey  = "session_id"
)

// TenantSession привязывает браузер арендатора к сессии через cookie
func TenantSession(ttl time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		sessionID := ctx.Cookies(SessionCookieName)
		if _, err := uuid.Parse(sessionID); err != nil {
			sessionID = uuid.NewString()
			ctx.Cookie(&fiber.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				Expires:  time.Now().Add(ttl),
				HTTPOnly: true,
				SameSite: fiber.CookieSameSiteLaxMode,
			})
		}
		ctx.Locals(sessionLocalsKey, sessionID)
		return ctx.Next()
	}
}

func GetSessionID(ctx *fiber.Ctx) string {
	sessionID, _ := ctx.Locals(sessionLocalsKey).(string)
	return sessionID
}
