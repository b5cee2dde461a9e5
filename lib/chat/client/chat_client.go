package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	chatapimodels "recruit-tools-backend/models/api/chat"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	SendChannelMessage(ctx context.Context, channelID string, payload chatapimodels.MessagePayload) (messageID string, err error)
	SendDM(ctx context.Context, userID string, payload chatapimodels.MessagePayload) error
	GetGuildMember(ctx context.Context, guildID, userID string) (*chatapimodels.GuildMember, error)
}

var Instance Provider

type impl struct {
	host     string
	botToken string
}

func NewProvider(host, botToken string) {
	Instance = &impl{
		host:     host,
		botToken: botToken,
	}
}

const (
	channelMessagesPath = "/channels/%v/messages"
	createDMPath        = "/users/@me/channels"
	guildMemberPath     = "/guilds/%v/members/%v"
)

func (i impl) SendChannelMessage(ctx context.Context, channelID string, payload chatapimodels.MessagePayload) (messageID string, err error) {
	uri := i.host + fmt.Sprintf(channelMessagesPath, channelID)
	body, err := json.Marshal(payload)
	if err != nil {
		return "", errors.Wrap(err, "ошибка сериализации запроса")
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewBuffer(body))
	r.Header.Add("Content-Type", "application/json")
	resp := chatapimodels.MessageResponse{}

	logger := log.
		WithField("external_request", uri).
		WithField("chat_channel_id", channelID)

	err = i.sendRequest(logger, r, &resp)
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

func (i impl) SendDM(ctx context.Context, userID string, payload chatapimodels.MessagePayload) error {
	uri := i.host + createDMPath
	body, err := json.Marshal(chatapimodels.CreateDMRequest{RecipientID: userID})
	if err != nil {
		return errors.Wrap(err, "ошибка сериализации запроса")
	}

	r, _ := http.NewRequestWithContext(ctx, "POST", uri, bytes.NewBuffer(body))
	r.Header.Add("Content-Type", "application/json")
	channel := chatapimodels.Channel{}

	logger := log.
		WithField("external_request", uri).
		WithField("chat_user_id", userID)

	err = i.sendRequest(logger, r, &channel)
	if err != nil {
		return errors.Wrap(err, "ошибка открытия личного канала")
	}
	_, err = i.SendChannelMessage(ctx, channel.ID, payload)
	return err
}

func (i impl) GetGuildMember(ctx context.Context, guildID, userID string) (*chatapimodels.GuildMember, error) {
	uri := i.host + fmt.Sprintf(guildMemberPath, guildID, userID)
	r, _ := http.NewRequestWithContext(ctx, "GET", uri, nil)
	r.Header.Add("Content-Type", "application/json")
	resp := new(chatapimodels.GuildMember)

	logger := log.
		WithField("external_request", uri).
		WithField("chat_user_id", userID)

	err := i.sendRequest(logger, r, resp)
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func (i impl) sendRequest(logger *log.Entry, r *http.Request, resp interface{}) error {
	r.Header.Add("User-Agent", "RecruitTools/1.0")
	r.Header.Add("Authorization", fmt.Sprintf("Bot %v", i.botToken))
	client := &http.Client{}
	response, err := client.Do(r)
	if err != nil {
		logger.WithError(err).Error("ошибка отправки запроса в чат-платформу")
		return errors.Wrap(err, "ошибка отправки запроса в чат-платформу")
	}
	defer response.Body.Close()
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		if resp != nil {
			responseBody, _ := io.ReadAll(response.Body)
			err = json.Unmarshal(responseBody, resp)
			if err != nil {
				return errors.Wrap(err, "ошибка сериализации ответа")
			}
		}
		return nil
	}

	errorResp := chatapimodels.ErrorData{}
	responseBody, _ := io.ReadAll(response.Body)
	logger = logger.WithField("response_body", string(responseBody))
	if err = json.Unmarshal(responseBody, &errorResp); err != nil {
		logger.WithError(err).Error("ошибка сериализации ответа")
	}
	logger.WithField("status_code", response.StatusCode).Error("ошибка запроса к чат-платформе")
	if errorResp.Message != "" {
		return errors.Errorf("чат-платформа отклонила запрос (%v): %v", response.StatusCode, errorResp.Message)
	}
	return errors.Errorf("чат-платформа отклонила запрос (%v)", response.StatusCode)
}
