package botnotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"recruit-tools-backend/models"
	botapimodels "recruit-tools-backend/models/api/botapi"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider - клиент уведомлений web -> bot. Вызывается после фиксации
// перехода в БД, ошибки доставки не откатывают переход.
type Provider interface {
	NotifyStatus(ctx context.Context, app dbmodels.Application, oldStatus models.ApplicationStatus, actorName string) error
	NotifyClose(ctx context.Context, app dbmodels.Application, decision models.ApplicationStatus, reason string) error
	NotifyWithdrawal(ctx context.Context, app dbmodels.Application) error
	NotifyMessage(ctx context.Context, app dbmodels.Application, senderName, content string, number int) error
	NotifyVote(ctx context.Context, app dbmodels.Application, voterName string) error
}

var Instance Provider

type impl struct {
	host   string
	secret string
	client *http.Client
}

func NewProvider(host, secret string) {
	Instance = &impl{
		host:   host,
		secret: secret,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

const (
	statusPath     = "/api/status"
	closePath      = "/api/close"
	withdrawalPath = "/api/withdrawal"
	messagePath    = "/api/message"
	votePath       = "/api/vote"

	maxAttempts = 3
	retryDelay  = 500 * time.Millisecond
)

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
	return i.sendRequest(ctx, statusPath, req)
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
	return i.sendRequest(ctx, closePath, req)
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
	return i.sendRequest(ctx, withdrawalPath, req)
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
	return i.sendRequest(ctx, messagePath, req)
}

func (i impl) NotifyVote(ctx context.Context, app dbmodels.Application, voterName string) error {
	if app.ChannelID == nil {
		return nil
	}
	req := botapimodels.VoteNotify{
		ApplicationID: app.ID,
		ChannelID:     *app.ChannelID,
		VoterName:     voterName,
	}
	return i.sendRequest(ctx, votePath, req)
}

// sendRequest выполняет до трех попыток с паузой, повтор только на сетевых
// ошибках и ответах 5xx
func (i impl) sendRequest(ctx context.Context, path string, payload interface{}) error {
	uri := i.host + path
	body, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации запроса")
	}
	logger := log.
		WithField("external_request", uri).
		WithField("request_body", string(body))

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		retriable, err := i.doRequest(ctx, uri, body)
		if err == nil {
			return nil
		}
		lastErr = err
		if !retriable {
			break
		}
		logger.WithError(err).Warnf("попытка %v из %v не удалась", attempt, maxAttempts)
		if attempt == maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * retryDelay):
		}
	}
	logger.WithError(lastErr).Error("ошибка отправки уведомления бот-сервису")
	return lastErr
}

func (i impl) doRequest(ctx context.Context, uri string, body []byte) (retriable bool, err error) {
	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewBuffer(body))
	r.Header.Add("Content-Type", "application/json")
	r.Header.Add("Authorization", fmt.Sprintf("Bearer %v", i.secret))

	response, err := i.client.Do(r)
	if err != nil {
		return true, errors.Wrap(err, "ошибка отправки запроса бот-сервису")
	}
	defer response.Body.Close()
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return false, nil
	}
	responseBody, _ := io.ReadAll(response.Body)
	err = errors.Errorf("бот-сервис отклонил запрос (%v): %v", response.StatusCode, string(responseBody))
	return response.StatusCode >= 500, err
}
