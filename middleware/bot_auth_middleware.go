package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"recruit-tools-backend/config"
	apimodels "recruit-tools-backend/models/api"
)

// BotAuthRequired - проверка общего секрета межсервисного API бота.
// Веб-сервис ходит в бот-сервис с заголовком Authorization: Bearer <секрет>.
func BotAuthRequired() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		secret := config.Conf.BotAPI.Secret
		if secret == "" {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("межсервисный секрет не настроен"))
		}
		authHeader := ctx.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			return ctx.Status(fiber.StatusUnauthorized).JSON(apimodels.NewError("не авторизован"))
		}
		return ctx.Next()
	}
}
