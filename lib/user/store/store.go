package userstore

import (
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	GetByID(id string) (rec *dbmodels.User, err error)
	GetByPlatformID(platformID string) (rec *dbmodels.User, err error)
	// Upsert находит пользователя по platform_id и обновляет профиль,
	// либо создает нового
	Upsert(rec dbmodels.User) (saved dbmodels.User, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) GetByID(id string) (rec *dbmodels.User, err error) {
	rec = &dbmodels.User{}
	err = i.db.
		Model(dbmodels.User{}).
		Where("id = ?", id).
		First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetByPlatformID(platformID string) (rec *dbmodels.User, err error) {
	rec = &dbmodels.User{}
	err = i.db.
		Model(dbmodels.User{}).
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

func (i impl) Upsert(rec dbmodels.User) (saved dbmodels.User, err error) {
	existing, err := i.GetByPlatformID(rec.PlatformID)
	if err != nil {
		return dbmodels.User{}, err
	}
	if existing == nil {
		if err = i.db.Create(&rec).Error; err != nil {
			return dbmodels.User{}, err
		}
		return rec, nil
	}
	updMap := map[string]interface{}{}
	if rec.PlatformUsername != "" && rec.PlatformUsername != existing.PlatformUsername {
		updMap["platform_username"] = rec.PlatformUsername
	}
	if rec.Email != "" && rec.Email != existing.Email {
		updMap["email"] = rec.Email
	}
	if rec.AvatarURL != "" && rec.AvatarURL != existing.AvatarURL {
		updMap["avatar_url"] = rec.AvatarURL
	}
	if len(updMap) > 0 {
		err = i.db.
			Model(&dbmodels.User{}).
			Where("id = ?", existing.ID).
			Updates(updMap).Error
		if err != nil {
			return dbmodels.User{}, err
		}
	}
	rec.BaseModel = existing.BaseModel
	return rec, nil
}
