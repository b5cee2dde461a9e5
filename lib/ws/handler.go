package ws

import (
	"time"

	wsclient "recruit-tools-backend/lib/ws/client"
	connectionhub "recruit-tools-backend/lib/ws/hub/connection-hub"
	"recruit-tools-backend/middleware"
	wsmodels "recruit-tools-backend/models/ws"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

func InitWs(app *fiber.App) {
	app.Use("", func(ctx *fiber.Ctx) error {
		userID := middleware.GetUserID(ctx)
		ctx.Locals("userID", userID)
		return ctx.Next()
	})
	app.Get("/", websocket.New(feedHandler))
}

// @Summary Лента событий по кандидатурам
// @Tags Websocket Лента событий
// @Description Лента событий по кандидатурам для панели рекрутеров
// @Param   Authorization		header		string		true		"Authorization token"
// @Success 200 {object} wsmodels.ServerMessage
// @Failure 400
// @Failure 403
// @Failure 500
// @router /ws [get]
func feedHandler(c *websocket.Conn) {
	userID := c.Locals("userID").(string)
	client := wsclient.NewClient(userID, c)
	connectionhub.Instance.AddClient(userID, c)
	defer func() {
		connectionhub.Instance.DeleteClient(userID)
	}()
	client.Dispatch()
}

// Publish рассылает событие по кандидатуре всем подключенным панелям
func Publish(code, applicationID, msg string) {
	if connectionhub.Instance == nil {
		return
	}
	connectionhub.Instance.Broadcast(wsmodels.ServerMessage{
		Time:          time.Now().Format("02.01.2006 15:04:05"),
		Code:          code,
		ApplicationID: applicationID,
		Msg:           msg,
	})
}
