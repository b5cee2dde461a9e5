package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"recruit-tools-backend/models"
	apimodels "recruit-tools-backend/models/api"
)

// RecruiterRole - доступ только рекрутерам и администраторам
func RecruiterRole() fiber.Handler {
	return func(ctx *fiber.Ctx) (err error) {
		token, ok := ctx.Locals("user").(*jwt.Token)
		if !ok {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		claims := token.Claims.(jwt.MapClaims)
		role, _ := claims["role"].(string)
		if !models.UserRole(role).CanManageApplications() {
			return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("операция недоступна"))
		}
		return ctx.Next()
	}
}
