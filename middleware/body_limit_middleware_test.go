package middleware

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

func TestWithBodyLimit(t *testing.T) {
	app := fiber.New()
	app.Use(WithBodyLimit(16))
	app.Post("/", func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("в пределах лимита", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", bytes.NewReader([]byte("short"))))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
	t.Run("больше лимита", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/", bytes.NewReader(bytes.Repeat([]byte("a"), 64))))
		require.NoError(t, err)
		require.Equal(t, fiber.StatusRequestEntityTooLarge, resp.StatusCode)
	})
}
