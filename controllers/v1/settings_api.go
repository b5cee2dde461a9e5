package apiv1

import (
	"recruit-tools-backend/controllers"
	settingshandler "recruit-tools-backend/lib/settings"
	"recruit-tools-backend/middleware"
	"recruit-tools-backend/models"
	apimodels "recruit-tools-backend/models/api"

	"github.com/gofiber/fiber/v2"
)

type settingsApiController struct {
	controllers.BaseAPIController
}

func InitSettingsApiRouters(app *fiber.App) {
	controller := settingsApiController{}
	app.Route("settings", func(router fiber.Router) {
		router.Use(middleware.RecruiterRole())
		router.Get("", controller.list)
		router.Put("", controller.set)
	})
}

type settingRequest struct {
	Code  models.PolicySettingCode `json:"code"`
	Name  string                   `json:"name,omitempty"`
	Value string                   `json:"value"`
}

// @Summary Настройки политик подачи
// @Tags Настройки
// @Description Список настроек политик подачи
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [get]
func (c *settingsApiController) list(ctx *fiber.Ctx) error {
	list, err := settingshandler.Instance.List()
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Изменить настройку
// @Tags Настройки
// @Description Изменить настройку политики, действует на последующие подачи сразу
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   body	body	settingRequest	true	"Настройка"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/settings [put]
func (c *settingsApiController) set(ctx *fiber.Ctx) error {
	req := settingRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := settingshandler.Instance.Set(req.Code, req.Name, req.Value); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}
