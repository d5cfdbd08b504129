package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	apimodels "maintenance-backend/models/api"
)

// WithBodyLimit ранний отказ по заголовку Content-Length, до разбора multipart формы
func WithBodyLimit(limit int64) fiber.Handler {
	return func(c *fiber.Ctx) error {
		size := int64(c.Request().Header.ContentLength())
		if size > limit {
			mb := limit >> 20
			return c.Status(fiber.StatusRequestEntityTooLarge).JSON(apimodels.NewError(
				fmt.Sprintf("The form is too large, the maximum is %d MB. / El formulario es demasiado grande, el máximo es %d MB.", mb, mb)))
		}
		return c.Next()
	}
}
