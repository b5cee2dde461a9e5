package chat

import (
	"context"
	"fmt"
	"strings"
	"time"

	chatclient "recruit-tools-backend/lib/chat/client"
	"recruit-tools-backend/models"
	botapimodels "recruit-tools-backend/models/api/botapi"
	chatapimodels "recruit-tools-backend/models/api/chat"
	dbmodels "recruit-tools-backend/models/db"
)

// Provider - шлюз уведомлений чат-платформы. Send*-методы обслуживают
// межсервисные уведомления web -> bot, Notify*-методы - прямой диспетчер
// исполнителя в бот-сервисе. Отсутствие привязанного канала не считается
// ошибкой, уведомление уходит только в ЛС.
type Provider interface {
	SendStatusNotice(ctx context.Context, req botapimodels.StatusNotify) error
	SendCloseNotice(ctx context.Context, req botapimodels.CloseNotify) error
	SendWithdrawalNotice(ctx context.Context, req botapimodels.WithdrawalNotify) error
	RelayMessage(ctx context.Context, req botapimodels.MessageNotify) error
	SendVoteRecap(ctx context.Context, app dbmodels.Application, votes []dbmodels.ApplicationVote) error
	GetMember(ctx context.Context, userID string) (*chatapimodels.GuildMember, error)

	NotifyStatus(ctx context.Context, app dbmodels.Application, oldStatus models.ApplicationStatus, actorName string) error
	NotifyClose(ctx context.Context, app dbmodels.Application, decision models.ApplicationStatus, reason string) error
	NotifyWithdrawal(ctx context.Context, app dbmodels.Application) error
	NotifyMessage(ctx context.Context, app dbmodels.Application, senderName, content string, number int) error
}

var Instance Provider

func NewHandler(guildID, orgName string, cooldownHours func() (int, error)) {
	Instance = &impl{
		guildID:       guildID,
		orgName:       orgName,
		cooldownHours: cooldownHours,
	}
}

type impl struct {
	guildID       string
	orgName       string
	cooldownHours func() (int, error)
}

func (i impl) SendStatusNotice(ctx context.Context, req botapimodels.StatusNotify) error {
	embed := chatapimodels.Embed{
		Title:       "Статус кандидатуры изменен",
		Description: req.NewStatus.Label(),
		Color:       req.NewStatus.Color(),
		Fields:      candidateFields(req.CandidateName, req.Service),
		Footer:      &chatapimodels.EmbedFooter{Text: req.ActorName},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	if req.NewStatus == models.ApplicationStatusInterviewScheduled && req.InterviewDate != "" {
		embed.Fields = append(embed.Fields, chatapimodels.EmbedField{
			Name:  "Дата собеседования",
			Value: req.InterviewDate,
		})
	}
	return i.deliver(ctx, req.ChannelID, req.CandidateID, embed)
}

func (i impl) SendCloseNotice(ctx context.Context, req botapimodels.CloseNotify) error {
	embed := chatapimodels.Embed{
		Color:     req.Decision.Color(),
		Fields:    candidateFields(req.CandidateName, req.Service),
		Timestamp: time.Now().Format(time.RFC3339),
	}
	if req.Decision == models.ApplicationStatusRecruited {
		embed.Title = "Кандидатура одобрена"
		embed.Description = fmt.Sprintf("Поздравляем! Вы приняты в %v.", i.orgName)
	} else {
		embed.Title = "Кандидатура отклонена"
		embed.Description = "К сожалению, по вашей кандидатуре принято отрицательное решение."
		if hours := i.getCooldownHours(); hours > 0 {
			embed.Description += fmt.Sprintf(" Повторная подача будет доступна через %v ч.", hours)
		}
	}
	if req.Reason != "" {
		embed.Fields = append(embed.Fields, chatapimodels.EmbedField{Name: "Причина", Value: req.Reason})
	}
	return i.deliver(ctx, req.ChannelID, req.CandidateID, embed)
}

func (i impl) SendWithdrawalNotice(ctx context.Context, req botapimodels.WithdrawalNotify) error {
	if req.ChannelID == "" {
		return nil
	}
	embed := chatapimodels.Embed{
		Title:       "Кандидатура отозвана",
		Description: "Кандидат отозвал свою кандидатуру.",
		Color:       models.ApplicationStatusRejected.Color(),
		Fields:      candidateFields(req.CandidateName, req.Service),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	_, err := chatclient.Instance.SendChannelMessage(ctx, req.ChannelID, payload(embed))
	return err
}

func (i impl) RelayMessage(ctx context.Context, req botapimodels.MessageNotify) error {
	title := "Сообщение от рекрутеров"
	if req.MessageNumber > 0 {
		title = fmt.Sprintf("Сообщение №%v от рекрутеров", req.MessageNumber)
	}
	embed := chatapimodels.Embed{
		Title:       title,
		Description: req.Content,
		Color:       models.ApplicationStatusReviewing.Color(),
		Footer:      &chatapimodels.EmbedFooter{Text: req.SenderName},
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	return chatclient.Instance.SendDM(ctx, req.CandidateID, payload(embed))
}

func (i impl) SendVoteRecap(ctx context.Context, app dbmodels.Application, votes []dbmodels.ApplicationVote) error {
	if app.ChannelID == nil {
		return nil
	}
	inFavor := 0
	lines := make([]string, 0, len(votes))
	for _, vote := range votes {
		mark := "👎"
		if vote.InFavor {
			mark = "👍"
			inFavor++
		}
		line := fmt.Sprintf("%v %v", mark, vote.VoterName)
		if vote.Comment != "" {
			line += " - " + vote.Comment
		}
		lines = append(lines, line)
	}
	embed := chatapimodels.Embed{
		Title:       "Голосование по кандидатуре",
		Description: strings.Join(lines, "\n"),
		Color:       app.Status.Color(),
		Fields:      candidateFields(app.GetFIO(), app.Service),
		Timestamp:   time.Now().Format(time.RFC3339),
	}
	embed.Fields = append(embed.Fields, chatapimodels.EmbedField{
		Name:  "Итог",
		Value: fmt.Sprintf("За: %v, против: %v", inFavor, len(votes)-inFavor),
	})
	_, err := chatclient.Instance.SendChannelMessage(ctx, *app.ChannelID, payload(embed))
	return err
}

func (i impl) GetMember(ctx context.Context, userID string) (*chatapimodels.GuildMember, error) {
	return chatclient.Instance.GetGuildMember(ctx, i.guildID, userID)
}

func (i impl) NotifyStatus(ctx context.Context, app dbmodels.Application, oldStatus models.ApplicationStatus, actorName string) error {
	req := botapimodels.StatusNotify{
		CandidateName: app.GetFIO(),
		Service:       app.Service,
		NewStatus:     app.Status,
		ActorName:     actorName,
	}
	if app.ChannelID != nil {
		req.ChannelID = *app.ChannelID
	}
	if app.User != nil {
		req.CandidateID = app.User.PlatformID
	}
	if app.InterviewDate != nil {
		req.InterviewDate = app.InterviewDate.Format(models.InterviewDateLayout)
	}
	return i.SendStatusNotice(ctx, req)
}

func (i impl) NotifyClose(ctx context.Context, app dbmodels.Application, decision models.ApplicationStatus, reason string) error {
	req := botapimodels.CloseNotify{
		ApplicationID: app.ID,
		Decision:      decision,
		Reason:        reason,
		CandidateName: app.GetFIO(),
		Service:       app.Service,
	}
	if app.ChannelID != nil {
		req.ChannelID = *app.ChannelID
	}
	if app.User != nil {
		req.CandidateID = app.User.PlatformID
	}
	return i.SendCloseNotice(ctx, req)
}

func (i impl) NotifyWithdrawal(ctx context.Context, app dbmodels.Application) error {
	req := botapimodels.WithdrawalNotify{
		CandidateName: app.GetFIO(),
		Service:       app.Service,
	}
	if app.ChannelID != nil {
		req.ChannelID = *app.ChannelID
	}
	if app.User != nil {
		req.CandidateID = app.User.PlatformID
	}
	return i.SendWithdrawalNotice(ctx, req)
}

func (i impl) NotifyMessage(ctx context.Context, app dbmodels.Application, senderName, content string, number int) error {
	req := botapimodels.MessageNotify{
		ApplicationID: app.ID,
		SenderName:    senderName,
		Content:       content,
		MessageNumber: number,
	}
	if app.ChannelID != nil {
		req.ChannelID = *app.ChannelID
	}
	if app.User != nil {
		req.CandidateID = app.User.PlatformID
	}
	return i.RelayMessage(ctx, req)
}

func (i impl) getCooldownHours() int {
	if i.cooldownHours == nil {
		return 0
	}
	hours, err := i.cooldownHours()
	if err != nil {
		return models.DefaultCooldownHours
	}
	return hours
}

// deliver отправляет embed в канал кандидатуры (если привязан) и дублем в ЛС
func (i impl) deliver(ctx context.Context, channelID, candidateID string, embed chatapimodels.Embed) error {
	var channelErr error
	if channelID != "" {
		_, channelErr = chatclient.Instance.SendChannelMessage(ctx, channelID, payload(embed))
	}
	if candidateID != "" {
		if err := chatclient.Instance.SendDM(ctx, candidateID, payload(embed)); err != nil {
			return err
		}
	}
	return channelErr
}

func candidateFields(name, service string) []chatapimodels.EmbedField {
	return []chatapimodels.EmbedField{
		{Name: "Кандидат", Value: name, Inline: true},
		{Name: "Подразделение", Value: service, Inline: true},
	}
}

func payload(embed chatapimodels.Embed) chatapimodels.MessagePayload {
	return chatapimodels.MessagePayload{Embeds: []chatapimodels.Embed{embed}}
}
