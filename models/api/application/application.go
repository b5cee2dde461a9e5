package applicationapimodels

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"recruit-tools-backend/models"
	apimodels "recruit-tools-backend/models/api"
	dbmodels "recruit-tools-backend/models/db"
)

// SubmitRequest - анкета подачи кандидатуры
type SubmitRequest struct {
	Service      string   `json:"service"`      // Подразделение
	FirstName    string   `json:"first_name"`   // Имя персонажа
	LastName     string   `json:"last_name"`    // Фамилия персонажа
	BirthDate    string   `json:"birth_date"`   // Дата рождения персонажа
	Seniority    string   `json:"seniority"`    // Опыт
	Motivation   string   `json:"motivation"`   // Мотивация
	Availability []string `json:"availability"` // Интервалы доступности
}

func (r SubmitRequest) Validate() error {
	if strings.TrimSpace(r.Service) == "" {
		return errors.New("не указано подразделение")
	}
	if strings.TrimSpace(r.FirstName) == "" || strings.TrimSpace(r.LastName) == "" {
		return errors.New("не указаны имя и фамилия")
	}
	if strings.TrimSpace(r.BirthDate) == "" {
		return errors.New("не указана дата рождения")
	}
	if strings.TrimSpace(r.Seniority) == "" {
		return errors.New("не указан опыт")
	}
	if strings.TrimSpace(r.Motivation) == "" {
		return errors.New("не указана мотивация")
	}
	if len(r.Availability) == 0 {
		return errors.New("не указана доступность")
	}
	return nil
}

// SetStatusRequest - произвольная смена статуса оператором
type SetStatusRequest struct {
	Status        models.ApplicationStatus `json:"status"`
	InterviewDate string                   `json:"interview_date,omitempty"` // ДД/ММ/ГГГГ ЧЧ:ММ
}

func (r SetStatusRequest) Validate() error {
	if !r.Status.IsValid() {
		return errors.Errorf("неизвестный статус: %v", r.Status)
	}
	if r.InterviewDate != "" {
		if _, err := time.Parse(models.InterviewDateLayout, r.InterviewDate); err != nil {
			return errors.New("дата собеседования должна быть в формате ДД/ММ/ГГГГ ЧЧ:ММ")
		}
	}
	return nil
}

func (r SetStatusRequest) GetInterviewDate() *time.Time {
	if r.InterviewDate == "" {
		return nil
	}
	date, err := time.Parse(models.InterviewDateLayout, r.InterviewDate)
	if err != nil {
		return nil
	}
	return &date
}

// CloseRequest - закрытие кандидатуры с решением
type CloseRequest struct {
	Decision models.ApplicationStatus `json:"decision"` // recruited | rejected
	Reason   string                   `json:"reason,omitempty"`
}

func (r CloseRequest) Validate() error {
	if !models.IsCloseDecision(r.Decision) {
		return errors.New("решение должно быть recruited или rejected")
	}
	if len(r.Reason) > 500 {
		return errors.New("причина не должна превышать 500 символов")
	}
	return nil
}

// TransitionResult - результат смены статуса
type TransitionResult struct {
	ApplicationID   string                   `json:"application_id"`
	OldStatus       models.ApplicationStatus `json:"old_status"`
	NewStatus       models.ApplicationStatus `json:"new_status"`
	DocumentsPurged int                      `json:"documents_purged,omitempty"` // документов удалено при закрытии
	NotifySent      bool                     `json:"notify_sent"`                // уведомление кандидату отправлено (best-effort)
}

// MessageRequest - сообщение кандидату от рекрутера
type MessageRequest struct {
	Content string `json:"content"`
}

func (r MessageRequest) Validate() error {
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("пустое сообщение")
	}
	return nil
}

// MessageView - сообщение переписки по кандидатуре
type MessageView struct {
	ID              string    `json:"id"`
	SenderName      string    `json:"sender_name"`
	Content         string    `json:"content"`
	IsFromCandidate bool      `json:"is_from_candidate"`
	MessageNumber   int       `json:"message_number"`
	CreatedAt       time.Time `json:"created_at"`
}

func ConvertMessage(rec dbmodels.ApplicationMessage) MessageView {
	return MessageView{
		ID:              rec.ID,
		SenderName:      rec.SenderName,
		Content:         rec.Content,
		IsFromCandidate: rec.IsFromCandidate,
		MessageNumber:   rec.MessageNumber,
		CreatedAt:       rec.CreatedAt,
	}
}

// ApplicationView - представление кандидатуры в ответах API
type ApplicationView struct {
	ID            string                   `json:"id"`
	UserID        string                   `json:"user_id"`
	PlatformID    string                   `json:"platform_id,omitempty"`
	Service       string                   `json:"service"`
	Status        models.ApplicationStatus `json:"status"`
	StatusLabel   string                   `json:"status_label"`
	FirstName     string                   `json:"first_name"`
	LastName      string                   `json:"last_name"`
	BirthDate     string                   `json:"birth_date"`
	Seniority     string                   `json:"seniority"`
	Motivation    string                   `json:"motivation"`
	Availability  []string                 `json:"availability"`
	InterviewDate *time.Time               `json:"interview_date,omitempty"`
	ClosedAt      *time.Time               `json:"closed_at,omitempty"`
	CloseReason   *string                  `json:"close_reason,omitempty"`
	ChannelID     *string                  `json:"channel_id,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

func Convert(rec dbmodels.Application) ApplicationView {
	view := ApplicationView{
		ID:            rec.ID,
		UserID:        rec.UserID,
		Service:       rec.Service,
		Status:        rec.Status,
		StatusLabel:   rec.Status.Label(),
		FirstName:     rec.FirstName,
		LastName:      rec.LastName,
		BirthDate:     rec.BirthDate,
		Seniority:     rec.Seniority,
		Motivation:    rec.Motivation,
		Availability:  rec.Availability,
		InterviewDate: rec.InterviewDate,
		ClosedAt:      rec.ClosedAt,
		CloseReason:   rec.CloseReason,
		ChannelID:     rec.ChannelID,
		CreatedAt:     rec.CreatedAt,
		UpdatedAt:     rec.UpdatedAt,
	}
	if rec.User != nil {
		view.PlatformID = rec.User.PlatformID
	}
	return view
}

// ListFilter - фильтр списка кандидатур для панели рекрутеров
type ListFilter struct {
	Service string                   `json:"service,omitempty"`
	Status  models.ApplicationStatus `json:"status,omitempty"`
	Search  string                   `json:"search,omitempty"` // по имени/фамилии
	apimodels.Pagination
}
