package dbmodels

import (
	"database/sql/driver"
	"encoding/json"

	"recruit-tools-backend/models"
)

// ApplicationLog - журнал действий по кандидатуре. Записи только добавляются,
// удаляются исключительно каскадом вместе с кандидатурой.
type ApplicationLog struct {
	BaseModel
	ApplicationID string     `gorm:"type:varchar(36);index"`
	ActorID       string     `gorm:"type:varchar(32)"`
	ActorName     string     `gorm:"type:varchar(255)"`
	ActionType    ActionType `gorm:"type:varchar(64)"`
	// Идентификатор выполнения перехода, общий ключ идемпотентности
	// для побочных действий этого перехода
	TransitionID string            `gorm:"type:varchar(36);index"`
	Changes      ApplicationChange `gorm:"type:jsonb"`
}

type ActionType string

const (
	HistoryTypeCreated      ActionType = "application_created"   // Кандидатура подана
	HistoryTypeStatusChange ActionType = "status_change"         // Изменен статус
	HistoryTypeClosed       ActionType = "application_closed"    // Кандидатура закрыта
	HistoryTypeReopened     ActionType = "application_reopened"  // Кандидатура переоткрыта
	HistoryTypeWithdrawn    ActionType = "application_withdrawn" // Кандидат отозвал кандидатуру
	HistoryTypeMessage      ActionType = "message_sent"          // Отправлено сообщение кандидату
	HistoryTypeMsgDeleted   ActionType = "message_deleted"       // Сообщение скрыто из переписки
	HistoryTypeDeleted      ActionType = "application_deleted"   // Кандидатура удалена администратором
)

type ApplicationChange struct {
	Description   string                    `json:"description,omitempty"`
	OldStatus     models.ApplicationStatus  `json:"old_status,omitempty"`
	NewStatus     models.ApplicationStatus  `json:"new_status,omitempty"`
	InterviewDate string                    `json:"interview_date,omitempty"`
	CloseReason   string                    `json:"close_reason,omitempty"`
	Service       string                    `json:"service,omitempty"`
}

func (j ApplicationChange) Value() (driver.Value, error) {
	valueString, err := json.Marshal(j)
	return string(valueString), err
}

func (j *ApplicationChange) Scan(value interface{}) error {
	if err := json.Unmarshal(value.([]byte), &j); err != nil {
		return err
	}
	return nil
}
