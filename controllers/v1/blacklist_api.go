package apiv1

import (
	"strings"

	"recruit-tools-backend/controllers"
	blacklisthandler "recruit-tools-backend/lib/blacklist"
	"recruit-tools-backend/middleware"
	apimodels "recruit-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type blacklistApiController struct {
	controllers.BaseAPIController
}

func InitBlacklistApiRouters(app *fiber.App) {
	controller := blacklistApiController{}
	app.Route("blacklist", func(router fiber.Router) {
		router.Use(middleware.RecruiterRole())
		router.Get("", controller.list)
		router.Post("", controller.add)
		router.Delete(":platformID", controller.remove)
	})
}

type blacklistAddRequest struct {
	PlatformID string `json:"platform_id"`
	Reason     string `json:"reason,omitempty"`
}

// @Summary Черный список
// @Tags Черный список
// @Description Список пользователей с запретом подачи
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/blacklist [get]
func (c *blacklistApiController) list(ctx *fiber.Ctx) error {
	list, err := blacklisthandler.Instance.List()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Добавить в черный список
// @Tags Черный список
// @Description Запретить пользователю подачу кандидатур
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   body	body	blacklistAddRequest	true	"Пользователь и причина"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/blacklist [post]
func (c *blacklistApiController) add(ctx *fiber.Ctx) error {
	req := blacklistAddRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if strings.TrimSpace(req.PlatformID) == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан пользователь"))
	}
	if err := blacklisthandler.Instance.Add(req.PlatformID, req.Reason, middleware.GetUserName(ctx)); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Убрать из черного списка
// @Tags Черный список
// @Description Снять запрет подачи кандидатур
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   platformID         	path    string  		true        "ID пользователя на чат-платформе"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/blacklist/{platformID} [delete]
func (c *blacklistApiController) remove(ctx *fiber.Ctx) error {
	platformID := ctx.Params("platformID")
	if platformID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан пользователь"))
	}
	if err := blacklisthandler.Instance.Remove(platformID); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
