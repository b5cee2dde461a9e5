package dbmodels

import (
	"recruit-tools-backend/models"
)

// PolicySetting - настройки политик подачи (кулдаун и т.п.),
// применяются к последующим подачам сразу после изменения
type PolicySetting struct {
	BaseModel
	Name  string                   `gorm:"type:varchar(255)"`
	Code  models.PolicySettingCode `gorm:"type:varchar(64);uniqueIndex"`
	Value string                   `gorm:"type:varchar(500)"`
}

var DefaultCooldownSetting = PolicySetting{
	Name:  "Срок до повторной подачи после отказа, часов",
	Code:  models.CooldownHoursSetting,
	Value: "24",
}
