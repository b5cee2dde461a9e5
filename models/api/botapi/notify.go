package botapimodels

import (
	"github.com/pkg/errors"
	"recruit-tools-backend/models"
)

// Контракт межсервисных уведомлений web -> bot. Тела запросов намеренно
// плоские: бот-сервис должен уметь обработать уведомление даже если
// кандидатура уже удалена из БД.

// StatusNotify - уведомление о смене статуса: embed в канал кандидатуры
// и дубль в личные сообщения кандидату
type StatusNotify struct {
	ChannelID     string                   `json:"channel_id,omitempty"`
	CandidateID   string                   `json:"candidate_platform_id,omitempty"`
	CandidateName string                   `json:"candidate_name"`
	Service       string                   `json:"service"`
	NewStatus     models.ApplicationStatus `json:"new_status"`
	ActorName     string                   `json:"actor_name"`
	InterviewDate string                   `json:"interview_date,omitempty"`
}

func (r StatusNotify) Validate() error {
	if r.NewStatus == "" || r.ActorName == "" {
		return errors.New("не заполнены обязательные параметры")
	}
	if !r.NewStatus.IsValid() {
		return errors.Errorf("неизвестный статус: %v", r.NewStatus)
	}
	if r.ChannelID == "" && r.CandidateID == "" {
		return errors.New("не указан получатель уведомления")
	}
	return nil
}

// CloseNotify - уведомление о закрытии: личное сообщение кандидату
// и итоговый embed в канал
type CloseNotify struct {
	ApplicationID string                   `json:"application_id"`
	Decision      models.ApplicationStatus `json:"decision"`
	Reason        string                   `json:"reason,omitempty"`
	CandidateName string                   `json:"candidate_name"`
	Service       string                   `json:"service"`
	ChannelID     string                   `json:"channel_id,omitempty"`
	CandidateID   string                   `json:"candidate_platform_id,omitempty"`
}

func (r CloseNotify) Validate() error {
	if r.ApplicationID == "" || r.CandidateName == "" || r.Service == "" {
		return errors.New("не заполнены обязательные параметры")
	}
	if !models.IsCloseDecision(r.Decision) {
		return errors.New("решение должно быть recruited или rejected")
	}
	return nil
}

// WithdrawalNotify - уведомление об отзыве кандидатуры кандидатом
type WithdrawalNotify struct {
	ChannelID     string `json:"channel_id"`
	CandidateID   string `json:"candidate_platform_id"`
	CandidateName string `json:"candidate_name"`
	Service       string `json:"service"`
}

func (r WithdrawalNotify) Validate() error {
	if r.CandidateID == "" || r.CandidateName == "" || r.Service == "" {
		return errors.New("не заполнены обязательные параметры")
	}
	return nil
}

// MessageNotify - пересылка сообщения рекрутера кандидату
type MessageNotify struct {
	ApplicationID string `json:"application_id"`
	ChannelID     string `json:"channel_id,omitempty"`
	CandidateID   string `json:"candidate_platform_id"`
	SenderName    string `json:"sender_name"`
	Content       string `json:"content"`
	MessageNumber int    `json:"message_number,omitempty"`
}

func (r MessageNotify) Validate() error {
	if r.ApplicationID == "" || r.CandidateID == "" || r.SenderName == "" || r.Content == "" {
		return errors.New("не заполнены обязательные параметры")
	}
	return nil
}

// VoteNotify - публикация сводки голосов в канал кандидатуры
type VoteNotify struct {
	ApplicationID string `json:"application_id"`
	ChannelID     string `json:"channel_id"`
	VoterName     string `json:"voter_name"`
}

func (r VoteNotify) Validate() error {
	if r.ApplicationID == "" || r.ChannelID == "" || r.VoterName == "" {
		return errors.New("не заполнены обязательные параметры")
	}
	return nil
}

// CommandStatus - запрос командной поверхности бота: смена статуса
// кандидатуры, найденной по привязке канала
type CommandStatus struct {
	ChannelID     string                   `json:"channel_id"`
	Status        models.ApplicationStatus `json:"status"`
	InterviewDate string                   `json:"interview_date,omitempty"`
	ActorID       string                   `json:"actor_id"`
	ActorName     string                   `json:"actor_name"`
}

// CommandClose - запрос командной поверхности бота: закрытие кандидатуры
type CommandClose struct {
	ChannelID string                   `json:"channel_id"`
	Decision  models.ApplicationStatus `json:"decision"`
	Reason    string                   `json:"reason,omitempty"`
	ActorID   string                   `json:"actor_id"`
	ActorName string                   `json:"actor_name"`
}

// MemberView - данные участника чат-платформы
type MemberView struct {
	DisplayName string `json:"display_name"`
	Username    string `json:"username"`
}
