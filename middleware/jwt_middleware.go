package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"maintenance-backend/config"
	apimodels "maintenance-backend/models/api"
)

// AdminAuthorizationRequired токен администратора в заголовке Authorization
func AdminAuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims: jwt.MapClaims{},
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Admin.JWTSecret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}

// AdminWsAuthorizationRequired браузер не передает заголовки при открытии websocket, токен берется из query
func AdminWsAuthorizationRequired() fiber.Handler {
	return jwtware.New(jwtware.Config{
		Claims:      jwt.MapClaims{},
		TokenLookup: "header:Authorization,query:token",
		SigningKey: jwtware.SigningKey{
			JWTAlg: "HS256",
			Key:    []byte(config.Conf.Admin.JWTSecret),
		},
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("требуется авторизация"))
		},
	})
}
