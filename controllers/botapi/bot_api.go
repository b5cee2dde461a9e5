package botapi

import (
	"recruit-tools-backend/controllers"
	applicationhandler "recruit-tools-backend/lib/application"
	"recruit-tools-backend/lib/chat"
	votehandler "recruit-tools-backend/lib/vote"
	"recruit-tools-backend/middleware"
	apimodels "recruit-tools-backend/models/api"
	applicationapimodels "recruit-tools-backend/models/api/application"
	botapimodels "recruit-tools-backend/models/api/botapi"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type botApiController struct {
	controllers.BaseAPIController
}

// InitBotApiRouters регистрирует межсервисные и командные маршруты бот-сервиса.
// Все маршруты, кроме health, защищены общим секретом.
func InitBotApiRouters(app *fiber.App) {
	controller := botApiController{}
	app.Get("/health", controller.health)
	app.Route("api", func(router fiber.Router) {
		router.Use(middleware.BotAuthRequired())
		router.Post("status", controller.notifyStatus)
		router.Post("close", controller.notifyClose)
		router.Post("withdrawal", controller.notifyWithdrawal)
		router.Post("message", controller.notifyMessage)
		router.Post("vote", controller.notifyVote)
		router.Get("member/:id", controller.member)
	})
	app.Route("command", func(router fiber.Router) {
		router.Use(middleware.BotAuthRequired())
		router.Post("status", controller.commandStatus)
		router.Post("close", controller.commandClose)
		router.Post("bind", controller.commandBind)
	})
}

// @Summary Проверка живости
// @Tags Бот-сервис
// @Description Проверка живости бот-сервиса
// @Success 200 {object} apimodels.Response
// @router /health [get]
func (c *botApiController) health(ctx *fiber.Ctx) error {
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse("ok"))
}

// @Summary Уведомление о смене статуса
// @Tags Бот-сервис
// @Description Отправить embed о смене статуса в канал кандидатуры и в ЛС
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.StatusNotify	true	"Уведомление"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/status [post]
func (c *botApiController) notifyStatus(ctx *fiber.Ctx) error {
	req := botapimodels.StatusNotify{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := chat.Instance.SendStatusNotice(ctx.UserContext(), req); err != nil {
		log.WithError(err).Error("ошибка отправки уведомления о смене статуса")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Уведомление о закрытии
// @Tags Бот-сервис
// @Description Отправить уведомление о закрытии кандидатуры
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.CloseNotify	true	"Уведомление"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/close [post]
func (c *botApiController) notifyClose(ctx *fiber.Ctx) error {
	req := botapimodels.CloseNotify{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := chat.Instance.SendCloseNotice(ctx.UserContext(), req); err != nil {
		log.WithError(err).Error("ошибка отправки уведомления о закрытии")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Уведомление об отзыве
// @Tags Бот-сервис
// @Description Отправить уведомление об отзыве кандидатуры
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.WithdrawalNotify	true	"Уведомление"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/withdrawal [post]
func (c *botApiController) notifyWithdrawal(ctx *fiber.Ctx) error {
	req := botapimodels.WithdrawalNotify{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := chat.Instance.SendWithdrawalNotice(ctx.UserContext(), req); err != nil {
		log.WithError(err).Error("ошибка отправки уведомления об отзыве")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Пересылка сообщения кандидату
// @Tags Бот-сервис
// @Description Переслать сообщение рекрутеров кандидату в ЛС
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.MessageNotify	true	"Сообщение"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/message [post]
func (c *botApiController) notifyMessage(ctx *fiber.Ctx) error {
	req := botapimodels.MessageNotify{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := chat.Instance.RelayMessage(ctx.UserContext(), req); err != nil {
		log.WithError(err).Error("ошибка пересылки сообщения кандидату")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Сводка голосов
// @Tags Бот-сервис
// @Description Опубликовать сводку голосов в канал кандидатуры
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.VoteNotify	true	"Уведомление"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/vote [post]
func (c *botApiController) notifyVote(ctx *fiber.Ctx) error {
	req := botapimodels.VoteNotify{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	rec, err := applicationhandler.Instance.GetRecord(req.ApplicationID)
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	}
	votes, err := votehandler.Instance.ListByApplication(req.ApplicationID)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	if err = chat.Instance.SendVoteRecap(ctx.UserContext(), *rec, votes); err != nil {
		log.WithError(err).Error("ошибка публикации сводки голосов")
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// @Summary Участник чат-платформы
// @Tags Бот-сервис
// @Description Данные участника чат-платформы по идентификатору
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   id          		path    string  		true        "ID участника"
// @Success 200 {object} apimodels.Response{data=botapimodels.MemberView}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 500 {object} apimodels.Response
// @router /api/member/{id} [get]
func (c *botApiController) member(ctx *fiber.Ctx) error {
	id := ctx.Params("id")
	if id == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не указан участник"))
	}
	member, err := chat.Instance.GetMember(ctx.UserContext(), id)
	if err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	view := botapimodels.MemberView{
		DisplayName: member.DisplayName(),
		Username:    member.User.Username,
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Команда: сменить статус
// @Tags Бот-сервис
// @Description Сменить статус кандидатуры, найденной по привязке канала
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.CommandStatus	true	"Команда"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /command/status [post]
func (c *botApiController) commandStatus(ctx *fiber.Ctx) error {
	req := botapimodels.CommandStatus{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if req.ChannelID == "" || req.ActorName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не заполнены обязательные параметры"))
	}
	statusReq := applicationapimodels.SetStatusRequest{
		Status:        req.Status,
		InterviewDate: req.InterviewDate,
	}
	if err := statusReq.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := applicationhandler.Actor{ID: req.ActorID, Name: req.ActorName}
	result, err := applicationhandler.Instance.SetStatusByChannel(ctx.UserContext(), req.ChannelID, statusReq, actor)
	if err != nil {
		return commandError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Команда: закрыть кандидатуру
// @Tags Бот-сервис
// @Description Закрыть кандидатуру, найденную по привязке канала
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	botapimodels.CommandClose	true	"Команда"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /command/close [post]
func (c *botApiController) commandClose(ctx *fiber.Ctx) error {
	req := botapimodels.CommandClose{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if req.ChannelID == "" || req.ActorName == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не заполнены обязательные параметры"))
	}
	closeReq := applicationapimodels.CloseRequest{
		Decision: req.Decision,
		Reason:   req.Reason,
	}
	if err := closeReq.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	actor := applicationhandler.Actor{ID: req.ActorID, Name: req.ActorName}
	result, err := applicationhandler.Instance.CloseByChannel(ctx.UserContext(), req.ChannelID, closeReq, actor)
	if err != nil {
		return commandError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

type bindRequest struct {
	ApplicationID string `json:"application_id"`
	ChannelID     string `json:"channel_id"`
}

// @Summary Команда: привязать канал
// @Tags Бот-сервис
// @Description Привязать канал чат-платформы к кандидатуре
// @Param   Authorization		header		string		true		"Bearer секрет"
// @Param   body	body	bindRequest	true	"Привязка"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 401
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /command/bind [post]
func (c *botApiController) commandBind(ctx *fiber.Ctx) error {
	req := bindRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if req.ApplicationID == "" || req.ChannelID == "" {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError("не заполнены обязательные параметры"))
	}
	if err := applicationhandler.Instance.BindChannel(req.ApplicationID, req.ChannelID); err != nil {
		return commandError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

func commandError(ctx *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, applicationhandler.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, applicationhandler.ErrAlreadyClosed):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
}
