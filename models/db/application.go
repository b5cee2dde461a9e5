package dbmodels

import (
	"time"

	"github.com/lib/pq"
	"recruit-tools-backend/models"
)

// Application - одна попытка трудоустройства пользователя в подразделение.
// Открытой (нетерминальной) кандидатурой на пару (user_id, service)
// может быть максимум одна, это закрепляется частичным уникальным
// индексом idx_applications_open (см. db/migration.go).
type Application struct {
	BaseModel
	UserID  string `gorm:"type:varchar(36);index"`
	User    *User  `gorm:"foreignKey:UserID"`
	Service string `gorm:"type:varchar(100);index"`

	Status models.ApplicationStatus `gorm:"type:varchar(32);index"`

	FirstName    string         `gorm:"type:varchar(100)"`
	LastName     string         `gorm:"type:varchar(100)"`
	BirthDate    string         `gorm:"type:varchar(20)"`
	Seniority    string         `gorm:"type:varchar(255)"`
	Motivation   string         `gorm:"type:text"`
	Availability pq.StringArray `gorm:"type:text[]"` // интервалы доступности кандидата

	InterviewDate *time.Time
	ClosedAt      *time.Time
	CloseReason   *string `gorm:"type:varchar(500)"`

	// Привязка к каналу чат-платформы, заполняется после создания канала
	ChannelID *string `gorm:"type:varchar(32);index"`

	// Пользователь, "взведённый" на одноразовое упоминание при следующем
	// сообщении кандидата. Снимается коллаборатором после срабатывания.
	AlertSubscriberID *string `gorm:"type:varchar(32)"`

	Documents []ApplicationDocument `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	Votes     []ApplicationVote     `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
	Messages  []ApplicationMessage  `gorm:"foreignKey:ApplicationID;constraint:OnDelete:CASCADE"`
}

func (a Application) GetFIO() string {
	return a.FirstName + " " + a.LastName
}

func (a Application) IsClosed() bool {
	return a.Status.IsTerminal()
}
