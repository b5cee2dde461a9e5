package dbmodels

// ApplicationMessage - переписка рекрутеров с кандидатом в рамках кандидатуры
type ApplicationMessage struct {
	BaseModel
	ApplicationID   string `gorm:"type:varchar(36);index"`
	SenderName      string `gorm:"type:varchar(255)"`
	Content         string `gorm:"type:text"`
	IsFromCandidate bool
	MessageNumber   int
	IsDeleted       bool
}
