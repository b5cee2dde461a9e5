package models

type PolicySettingCode string

const (
	CooldownHoursSetting PolicySettingCode = "cooldown_hours" // Минимальный срок (в часах) до повторной подачи после отказа
	OrgNameSetting       PolicySettingCode = "org_name"       // Название организации в уведомлениях кандидатам
)

// DefaultCooldownHours - применяется, если настройка cooldown_hours не задана
const DefaultCooldownHours = 24
