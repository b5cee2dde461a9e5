package dbmodels

// BlacklistEntry - запрет на подачу кандидатур. Проверяется только при подаче,
// уже открытые кандидатуры не затрагивает.
type BlacklistEntry struct {
	BaseModel
	PlatformID  string `gorm:"type:varchar(32);uniqueIndex"`
	Reason      string `gorm:"type:varchar(500)"`
	AddedByName string `gorm:"type:varchar(255)"`
}
