package dbmodels

// ApplicationVote - голос рекрутера по кандидатуре
type ApplicationVote struct {
	BaseModel
	ApplicationID string `gorm:"type:varchar(36);index"`
	VoterID       string `gorm:"type:varchar(32)"`
	VoterName     string `gorm:"type:varchar(255)"`
	InFavor       bool
	Comment       string `gorm:"type:varchar(500)"`
}
