package initializers

import (
	"context"
	"recruit-tools-backend/config"
	"recruit-tools-backend/fiberlog"
	applicationhandler "recruit-tools-backend/lib/application"
	blacklisthandler "recruit-tools-backend/lib/blacklist"
	botnotify "recruit-tools-backend/lib/bot-notify"
	chathandler "recruit-tools-backend/lib/chat"
	chatclient "recruit-tools-backend/lib/chat/client"
	documenthandler "recruit-tools-backend/lib/document"
	xlsexport "recruit-tools-backend/lib/export/xls"
	policyhandler "recruit-tools-backend/lib/policy"
	settingshandler "recruit-tools-backend/lib/settings"
	votehandler "recruit-tools-backend/lib/vote"
	"recruit-tools-backend/lib/ws"
	connectionhub "recruit-tools-backend/lib/ws/hub/connection-hub"
	s3client "recruit-tools-backend/s3"
)

var LoggerConfig *fiberlog.Config

// InitAllServices - инициализация web-сервиса панели рекрутеров
func InitAllServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	connectionhub.Init()
	settingshandler.NewHandler()
	blacklisthandler.NewHandler()
	policyhandler.NewHandler()
	documenthandler.NewHandler(s3client.NewBlobStore())
	xlsexport.NewHandler()
	botnotify.NewProvider(config.Conf.BotAPI.Addr, config.Conf.BotAPI.Secret)
	// уведомления кандидатам уходят через межсервисный API бота,
	// события панели транслируются в websocket-канал
	applicationhandler.NewHandler(botnotify.Instance, ws.Publish)
	votehandler.NewHandler(botnotify.Instance)
}

// InitBotServices - инициализация бот-сервиса чат-платформы
func InitBotServices(ctx context.Context) {
	LoggerConfig = InitLogger()
	config.InitConfig()
	InitDBConnection()
	InitS3(ctx)
	InitSmtp()
	settingshandler.NewHandler()
	blacklisthandler.NewHandler()
	policyhandler.NewHandler()
	documenthandler.NewHandler(s3client.NewBlobStore())
	chatclient.NewProvider(config.Conf.Chat.Host, config.Conf.Chat.BotToken)
	orgName := settingshandler.Instance.GetOrgName(config.Conf.Chat.OrgName)
	chathandler.NewHandler(config.Conf.Chat.GuildID, orgName, settingshandler.Instance.GetCooldownHours)
	// команды из чата исполняются в том же процессе,
	// уведомления отправляются напрямую в чат-платформу
	applicationhandler.NewHandler(chathandler.Instance, nil)
	votehandler.NewHandler(nil)
}
