package apiv1

import (
	"fmt"

	"recruit-tools-backend/controllers"
	applicationhandler "recruit-tools-backend/lib/application"
	"recruit-tools-backend/lib/document"
	xlsexport "recruit-tools-backend/lib/export/xls"
	votehandler "recruit-tools-backend/lib/vote"
	"recruit-tools-backend/middleware"
	apimodels "recruit-tools-backend/models/api"
	applicationapimodels "recruit-tools-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

type adminApplicationApiController struct {
	controllers.BaseAPIController
}

func InitAdminApplicationApiRouters(app *fiber.App) {
	controller := adminApplicationApiController{}
	app.Route("applications", func(router fiber.Router) {
		router.Use(middleware.RecruiterRole())
		router.Post("list", controller.list)
		router.Post("export", controller.exportList)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Get("", controller.get)
			idRouter.Get("history", controller.history)
			idRouter.Put("status", controller.setStatus)
			idRouter.Put("close", controller.close)
			idRouter.Put("reopen", controller.reopen)
			idRouter.Delete("", controller.delete)
			idRouter.Post("message", controller.message)
			idRouter.Get("messages", controller.messages)
			idRouter.Delete("message/:messageId", controller.deleteMessage)
			idRouter.Post("vote", controller.vote)
			idRouter.Get("votes", controller.votes)
			idRouter.Get("doc/list", controller.docList)
			idRouter.Get("dossier", controller.dossier)
		})
	})
}

// @Summary Список кандидатур
// @Tags Кандидатуры (панель рекрутера)
// @Description Список кандидатур с фильтром
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   body	body	applicationapimodels.ListFilter	true	"Фильтр"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/list [post]
func (c *adminApplicationApiController) list(ctx *fiber.Ctx) error {
	filter := applicationapimodels.ListFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, rowCount, err := applicationhandler.Instance.List(filter)
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Кандидатура
// @Tags Кандидатуры (панель рекрутера)
// @Description Кандидатура по идентификатору
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [get]
func (c *adminApplicationApiController) get(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := applicationhandler.Instance.GetByID(id)
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Журнал кандидатуры
// @Tags Кандидатуры (панель рекрутера)
// @Description Журнал действий по кандидатуре
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Param   body	body	apimodels.Pagination	true	"Пагинация"
// @Success 200 {object} apimodels.ScrollerResponse{data=[]applicationapimodels.ApplicationLogView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/history [get]
func (c *adminApplicationApiController) history(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	filter := apimodels.Pagination{
		Page:  ctx.QueryInt("page", 1),
		Limit: ctx.QueryInt("limit", 10),
	}
	list, rowCount, err := applicationhandler.Instance.History(id, filter)
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewScrollerResponse(list, rowCount))
}

// @Summary Сменить статус
// @Tags Кандидатуры (панель рекрутера)
// @Description Сменить статус кандидатуры
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Param   body	body	applicationapimodels.SetStatusRequest	true	"Новый статус"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/status [put]
func (c *adminApplicationApiController) setStatus(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	req := applicationapimodels.SetStatusRequest{}
	if err = c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := applicationhandler.Instance.SetStatus(ctx.UserContext(), id, req, actorFromCtx(ctx))
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Закрыть кандидатуру
// @Tags Кандидатуры (панель рекрутера)
// @Description Закрыть кандидатуру с решением
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Param   body	body	applicationapimodels.CloseRequest	true	"Решение"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/close [put]
func (c *adminApplicationApiController) close(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	req := applicationapimodels.CloseRequest{}
	if err = c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := applicationhandler.Instance.Close(ctx.UserContext(), id, req, actorFromCtx(ctx))
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Переоткрыть кандидатуру
// @Tags Кандидатуры (панель рекрутера)
// @Description Вернуть закрытую кандидатуру на рассмотрение
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/reopen [put]
func (c *adminApplicationApiController) reopen(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := applicationhandler.Instance.Reopen(ctx.UserContext(), id, actorFromCtx(ctx))
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Удалить кандидатуру
// @Tags Кандидатуры (панель рекрутера)
// @Description Удалить кандидатуру вместе с документами и журналом
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id} [delete]
func (c *adminApplicationApiController) delete(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = applicationhandler.Instance.Delete(ctx.UserContext(), id, actorFromCtx(ctx)); err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сообщение кандидату
// @Tags Кандидатуры (панель рекрутера)
// @Description Отправить сообщение кандидату
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Param   body	body	applicationapimodels.MessageRequest	true	"Сообщение"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/message [post]
func (c *adminApplicationApiController) message(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	req := applicationapimodels.MessageRequest{}
	if err = c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err = applicationhandler.Instance.SendMessage(ctx.UserContext(), id, actorFromCtx(ctx), req.Content); err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Переписка по кандидатуре
// @Tags Кандидатуры (панель рекрутера)
// @Description Сообщения переписки по кандидатуре, без скрытых
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.MessageView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/messages [get]
func (c *adminApplicationApiController) messages(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := applicationhandler.Instance.ListMessages(id)
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Скрыть сообщение
// @Tags Кандидатуры (панель рекрутера)
// @Description Скрыть сообщение из переписки по кандидатуре
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Param   messageId          	path    string  		true        "ID сообщения"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/message/{messageId} [delete]
func (c *adminApplicationApiController) deleteMessage(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	messageID := ctx.Params("messageId")
	if messageID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан идентификатор сообщения"))
	}
	if err = applicationhandler.Instance.DeleteMessage(id, messageID, actorFromCtx(ctx)); err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

type voteRequest struct {
	InFavor bool   `json:"in_favor"`
	Comment string `json:"comment,omitempty"`
}

// @Summary Голос по кандидатуре
// @Tags Кандидатуры (панель рекрутера)
// @Description Отдать голос по кандидатуре, повторный голос заменяет предыдущий
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Param   body	body	voteRequest	true	"Голос"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/vote [post]
func (c *adminApplicationApiController) vote(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	req := voteRequest{}
	if err = c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := actorFromCtx(ctx)
	if err = votehandler.Instance.Cast(ctx.UserContext(), id, actor.ID, actor.Name, req.InFavor, req.Comment); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Голоса по кандидатуре
// @Tags Кандидатуры (панель рекрутера)
// @Description Список голосов по кандидатуре
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/votes [get]
func (c *adminApplicationApiController) votes(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := votehandler.Instance.ListByApplication(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Документы кандидатуры
// @Tags Кандидатуры (панель рекрутера)
// @Description Список документов кандидатуры
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200 {object} apimodels.Response
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/doc/list [get]
func (c *adminApplicationApiController) docList(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	list, err := document.Instance.List(id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Выгрузка списка кандидатур
// @Tags Кандидатуры (панель рекрутера)
// @Description Выгрузка списка кандидатур в xlsx
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   body	body	applicationapimodels.ListFilter	true	"Фильтр"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/export [post]
func (c *adminApplicationApiController) exportList(ctx *fiber.Ctx) error {
	filter := applicationapimodels.ListFilter{}
	if err := c.BodyParser(ctx, &filter); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	filter.Limit = 100
	list, _, err := applicationhandler.Instance.ListRecords(filter)
	if err != nil {
		return applicationError(ctx, err)
	}
	buf, err := xlsexport.Instance.ExportApplicationList(list)
	if err != nil {
		log.WithError(err).Error("ошибка выгрузки списка кандидатур")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError("ошибка выгрузки списка кандидатур"))
	}
	ctx.Set(fiber.HeaderContentDisposition, `attachment; filename="applications.xlsx"`)
	ctx.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	return ctx.Status(fiber.StatusOK).SendStream(buf)
}

// @Summary Досье кандидатуры
// @Tags Кандидатуры (панель рекрутера)
// @Description Досье кандидатуры в pdf: анкета и журнал действий
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true        "ID кандидатуры"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/applications/{id}/dossier [get]
func (c *adminApplicationApiController) dossier(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	file, err := applicationhandler.Instance.ExportDossier(id)
	if err != nil {
		return applicationError(ctx, err)
	}
	ctx.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="dossier_%v.pdf"`, id))
	ctx.Set(fiber.HeaderContentType, "application/pdf")
	return ctx.Status(fiber.StatusOK).Send(file)
}

func actorFromCtx(ctx *fiber.Ctx) applicationhandler.Actor {
	return applicationhandler.Actor{
		ID:   middleware.GetPlatformID(ctx),
		Name: middleware.GetUserName(ctx),
	}
}
