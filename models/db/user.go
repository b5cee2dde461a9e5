package dbmodels

type User struct {
	BaseModel
	PlatformID       string `gorm:"type:varchar(32);uniqueIndex"` // ID пользователя на чат-платформе
	PlatformUsername string `gorm:"type:varchar(255)"`
	Email            string `gorm:"type:varchar(255)"`
	AvatarURL        string `gorm:"type:varchar(500)"`
}
