package documentstore

import (
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApplicationDocument) (id string, err error)
	ListByApplication(applicationID string) (list []dbmodels.ApplicationDocument, err error)
	DeleteByApplication(applicationID string) (deleted int64, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationDocument) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) ListByApplication(applicationID string) (list []dbmodels.ApplicationDocument, err error) {
	list = []dbmodels.ApplicationDocument{}
	err = i.db.
		Model(dbmodels.ApplicationDocument{}).
		Where("application_id = ?", applicationID).
		Order("created_at").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) DeleteByApplication(applicationID string) (deleted int64, err error) {
	tx := i.db.
		Where("application_id = ?", applicationID).
		Delete(&dbmodels.ApplicationDocument{})
	if tx.Error != nil {
		return 0, tx.Error
	}
	return tx.RowsAffected, nil
}
