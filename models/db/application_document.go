package dbmodels

// ApplicationDocument - загруженный кандидатом документ. Файл лежит в S3,
// строка хранит ссылку на объект. Источник истины об очистке - БД:
// осиротевший объект в S3 допустим, осиротевшая строка - нет.
type ApplicationDocument struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	DocType       string `gorm:"type:varchar(64)"`
	FileName      string `gorm:"type:varchar(255)"`
	FileURL       string `gorm:"type:varchar(500)"`
}
