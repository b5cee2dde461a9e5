package messagestore

import (
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApplicationMessage) (saved dbmodels.ApplicationMessage, err error)
	ListByApplication(applicationID string) (list []dbmodels.ApplicationMessage, err error)
	MarkDeleted(id string) error
	DeleteByApplication(applicationID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

// Create присваивает сообщению сквозной номер в рамках кандидатуры
func (i impl) Create(rec dbmodels.ApplicationMessage) (saved dbmodels.ApplicationMessage, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		var maxNumber int
		err := tx.
			Model(dbmodels.ApplicationMessage{}).
			Where("application_id = ?", rec.ApplicationID).
			Select("COALESCE(MAX(message_number), 0)").
			Scan(&maxNumber).Error
		if err != nil {
			return err
		}
		rec.MessageNumber = maxNumber + 1
		return tx.Create(&rec).Error
	})
	if err != nil {
		return dbmodels.ApplicationMessage{}, err
	}
	return rec, nil
}

func (i impl) ListByApplication(applicationID string) (list []dbmodels.ApplicationMessage, err error) {
	list = []dbmodels.ApplicationMessage{}
	err = i.db.
		Model(dbmodels.ApplicationMessage{}).
		Where("application_id = ?", applicationID).
		Where("is_deleted = false").
		Order("message_number").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) MarkDeleted(id string) error {
	return i.db.
		Model(&dbmodels.ApplicationMessage{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

func (i impl) DeleteByApplication(applicationID string) error {
	return i.db.
		Where("application_id = ?", applicationID).
		Delete(&dbmodels.ApplicationMessage{}).Error
}
