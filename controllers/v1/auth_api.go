package apiv1

import (
	"strings"

	"recruit-tools-backend/controllers"
	"recruit-tools-backend/db"
	userstore "recruit-tools-backend/lib/user/store"
	authutils "recruit-tools-backend/lib/utils/auth-utils"
	"recruit-tools-backend/middleware"
	"recruit-tools-backend/models"
	apimodels "recruit-tools-backend/models/api"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type authApiController struct {
	controllers.BaseAPIController
}

func InitAuthApiRouters(app *fiber.App) {
	controller := authApiController{}
	app.Route("auth", func(router fiber.Router) {
		// обмен проверенной ботом личности на JWT панели, защищен общим секретом
		router.Post("exchange", middleware.BotAuthRequired(), controller.exchange)
	})
}

type exchangeRequest struct {
	PlatformID string          `json:"platform_id"`
	Username   string          `json:"username"`
	Email      string          `json:"email,omitempty"`
	AvatarURL  string          `json:"avatar_url,omitempty"`
	Role       models.UserRole `json:"role"`
}

type exchangeResponse struct {
	AccessToken string `json:"access_token"`
}

// @Summary Обмен личности чат-платформы на токен
// @Tags Авторизация
// @Description Бот-сервис обменивает проверенную личность пользователя на JWT
// @Param   Authorization		header		string		true		"Bearer секрет бот-сервиса"
// @Param   body	body	exchangeRequest	true	"Личность пользователя"
// @Success 200 {object} apimodels.Response{data=exchangeResponse}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/v1/auth/exchange [post]
func (c *authApiController) exchange(ctx *fiber.Ctx) error {
	req := exchangeRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if strings.TrimSpace(req.PlatformID) == "" || strings.TrimSpace(req.Username) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указана личность пользователя"))
	}
	// без явно указанной роли выдается непривилегированный токен кандидата
	if req.Role == "" {
		req.Role = models.UserRoleCandidate
	}
	if !req.Role.IsValid() {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("неизвестная роль"))
	}
	user, err := userstore.NewInstance(db.DB).Upsert(dbmodels.User{
		PlatformID:       req.PlatformID,
		PlatformUsername: req.Username,
		Email:            req.Email,
		AvatarURL:        req.AvatarURL,
	})
	if err != nil {
		log.WithError(err).Error("ошибка сохранения пользователя")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("ошибка сохранения пользователя"))
	}
	token, err := authutils.GetToken(user.ID, user.PlatformUsername, user.PlatformID, req.Role)
	if err != nil {
		log.WithError(err).Error("ошибка выпуска токена")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("ошибка выпуска токена"))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(exchangeResponse{AccessToken: token}))
}
