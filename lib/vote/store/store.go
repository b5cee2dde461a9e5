package votestore

import (
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	Save(rec dbmodels.ApplicationVote) (id string, err error)
	ListByApplication(applicationID string) (list []dbmodels.ApplicationVote, err error)
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

// Save создает голос, либо обновляет существующий голос того же рекрутера
func (i impl) Save(rec dbmodels.ApplicationVote) (id string, err error) {
	existing := dbmodels.ApplicationVote{}
	err = i.db.
		Model(dbmodels.ApplicationVote{}).
		Where("application_id = ?", rec.ApplicationID).
		Where("voter_id = ?", rec.VoterID).
		First(&existing).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return "", err
		}
		if err = i.db.Create(&rec).Error; err != nil {
			return "", err
		}
		return rec.ID, nil
	}
	err = i.db.
		Model(&dbmodels.ApplicationVote{}).
		Where("id = ?", existing.ID).
		Updates(map[string]interface{}{
			"in_favor":   rec.InFavor,
			"comment":    rec.Comment,
			"voter_name": rec.VoterName,
		}).Error
	if err != nil {
		return "", err
	}
	return existing.ID, nil
}

func (i impl) ListByApplication(applicationID string) (list []dbmodels.ApplicationVote, err error) {
	list = []dbmodels.ApplicationVote{}
	err = i.db.
		Model(dbmodels.ApplicationVote{}).
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

func (i impl) DeleteByApplication(applicationID string) error {
	return i.db.
		Where("application_id = ?", applicationID).
		Delete(&dbmodels.ApplicationVote{}).Error
}
