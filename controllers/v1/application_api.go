package apiv1

import (
	"io"

	"recruit-tools-backend/controllers"
	applicationhandler "recruit-tools-backend/lib/application"
	"recruit-tools-backend/lib/document"
	"recruit-tools-backend/lib/policy"
	"recruit-tools-backend/middleware"
	apimodels "recruit-tools-backend/models/api"
	applicationapimodels "recruit-tools-backend/models/api/application"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type applicationApiController struct {
	controllers.BaseAPIController
}

func InitApplicationApiRouters(app *fiber.App) {
	controller := applicationApiController{}
	app.Route("application", func(router fiber.Router) {
		router.Post("", controller.submit)
		router.Get("my", controller.myList)
		router.Route(":id", func(idRouter fiber.Router) {
			idRouter.Put("withdraw", controller.withdraw)
			idRouter.Post("doc", controller.uploadDoc)
		})
	})
}

// @Summary Подать кандидатуру
// @Tags Кандидатура
// @Description Подать кандидатуру в подразделение
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   body	body	applicationapimodels.SubmitRequest	true	"Анкета"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application [post]
func (c *applicationApiController) submit(ctx *fiber.Ctx) error {
	req := applicationapimodels.SubmitRequest{}
	if err := c.BodyParser(ctx, &req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	if err := req.Validate(); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	candidate := applicationhandler.Candidate{
		PlatformID: middleware.GetPlatformID(ctx),
		Username:   middleware.GetUserName(ctx),
	}
	view, err := applicationhandler.Instance.Submit(ctx.UserContext(), candidate, req)
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(view))
}

// @Summary Мои кандидатуры
// @Tags Кандидатура
// @Description Список кандидатур текущего пользователя
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} apimodels.Response{data=[]applicationapimodels.ApplicationView}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/my [get]
func (c *applicationApiController) myList(ctx *fiber.Ctx) error {
	list, err := applicationhandler.Instance.ListByPlatformUser(middleware.GetPlatformID(ctx))
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(list))
}

// @Summary Отозвать кандидатуру
// @Tags Кандидатура
// @Description Отозвать свою кандидатуру
// @Param   Authorization		header		string		true		"Authorization token"
// @Param   id          		path    string  		true         "ID кандидатуры"
// @Success 200 {object} apimodels.Response{data=applicationapimodels.TransitionResult}
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 404 {object} apimodels.Response
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/withdraw [put]
func (c *applicationApiController) withdraw(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	result, err := applicationhandler.Instance.Withdraw(ctx.UserContext(), id, middleware.GetPlatformID(ctx))
	if err != nil {
		return applicationError(ctx, err)
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(result))
}

// @Summary Загрузить документ
// @Tags Кандидатура
// @Description Загрузить документ к кандидатуре
// @Param   Authorization		header		string	true	"Authorization token"
// @Param   id          		path    string  	true    "ID кандидатуры"
// @Param   document	formData	file 	true 	"file to upload"
// @Success 200
// @Failure 400 {object} apimodels.Response
// @Failure 403
// @Failure 500 {object} apimodels.Response
// @router /api/v1/application/{id}/doc [post]
func (c *applicationApiController) uploadDoc(ctx *fiber.Ctx) error {
	id, err := c.GetID(ctx)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	view, err := applicationhandler.Instance.GetByID(id)
	if err != nil {
		return applicationError(ctx, err)
	}
	if view.PlatformID != middleware.GetPlatformID(ctx) {
		return ctx.Status(fiber.StatusForbidden).JSON(apimodels.NewError("кандидатура принадлежит другому пользователю"))
	}
	file, err := ctx.FormFile("document")
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	buffer, err := file.Open()
	if err != nil {
		log.WithError(err).Error("ошибка при получении файла документа")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	defer buffer.Close()
	fileBody, err := io.ReadAll(buffer)
	if err != nil {
		log.WithError(err).Error("ошибка при загрузке файла документа")
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	}
	docType := ctx.Query("doc_type", "document")
	if _, err = document.Instance.Attach(ctx.UserContext(), id, docType, file.Filename, fileBody); err != nil {
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
	return ctx.Status(fiber.StatusOK).JSON(apimodels.NewResponse(nil))
}

// applicationError приводит ошибки исполнителя и политик к кодам ответа
func applicationError(ctx *fiber.Ctx, err error) error {
	var cooldownErr *policy.CooldownError
	switch {
	case errors.Is(err, applicationhandler.ErrNotFound):
		return ctx.Status(fiber.StatusNotFound).JSON(apimodels.NewError(err.Error()))
	case errors.Is(err, applicationhandler.ErrAlreadyClosed),
		errors.Is(err, applicationhandler.ErrNotClosed),
		errors.Is(err, applicationhandler.ErrNotOwner),
		errors.Is(err, policy.ErrBlacklisted),
		errors.Is(err, policy.ErrAlreadyOpen),
		errors.As(err, &cooldownErr):
		return ctx.Status(fiber.StatusBadRequest).JSON(apimodels.NewError(err.Error()))
	default:
		return ctx.Status(fiber.StatusInternalServerError).JSON(apimodels.NewError(err.Error()))
	}
}
