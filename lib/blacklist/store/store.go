package blackliststore

import (
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.BlacklistEntry) (id string, err error)
	GetByPlatformID(platformID string) (rec *dbmodels.BlacklistEntry, err error)
	List() (list []dbmodels.BlacklistEntry, err error)
	Delete(platformID string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.BlacklistEntry) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByPlatformID(platformID string) (rec *dbmodels.BlacklistEntry, err error) {
	rec = &dbmodels.BlacklistEntry{}
	err = i.db.
		Model(dbmodels.BlacklistEntry{}).
		Where("platform_id = ?", platformID).
		First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List() (list []dbmodels.BlacklistEntry, err error) {
	list = []dbmodels.BlacklistEntry{}
	err = i.db.
		Model(dbmodels.BlacklistEntry{}).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Delete(platformID string) error {
	return i.db.
		Where("platform_id = ?", platformID).
		Delete(&dbmodels.BlacklistEntry{}).Error
}
