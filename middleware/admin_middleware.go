package middleware

import (
	"github.com/gofiber/fiber/v2"
	authutils "maintenance-backend/lib/utils/auth-utils"
	"maintenance-backend/models"
	apimodels "maintenance-backend/models/api"
)

func SuperAdminRole() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		if GetUserRole(ctx) != models.UserRoleSuperAdmin {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}

// AdminRole доступ к консоли заявок для администраторов и суперадминов
func AdminRole() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		switch GetUserRole(ctx) {
		case models.UserRoleAdmin, models.UserRoleSuperAdmin:
			return ctx.Next()
		}
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
	}
}

func GetUserID(ctx *fiber.Ctx) string {
	return authutils.GetUserID(ctx)
}

func GetUserRole(ctx *fiber.Ctx) models.UserRole {
	role, _ := authutils.GetClaims(ctx)["role"].(string)
	return models.UserRole(role)
}
