package blacklist

import (
	"recruit-tools-backend/db"
	blackliststore "recruit-tools-backend/lib/blacklist/store"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
)

type Provider interface {
	Add(platformID, reason, actorName string) error
	Remove(platformID string) error
	List() ([]dbmodels.BlacklistEntry, error)
	IsBlocked(platformID string) (bool, error)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store: blackliststore.NewInstance(db.DB),
	}
}

type impl struct {
	store blackliststore.Provider
}

func (i impl) Add(platformID, reason, actorName string) error {
	rec, err := i.store.GetByPlatformID(platformID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки черного списка")
	}
	if rec != nil {
		return errors.New("пользователь уже в черном списке")
	}
	_, err = i.store.Create(dbmodels.BlacklistEntry{
		PlatformID:  platformID,
		Reason:      reason,
		AddedByName: actorName,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка добавления в черный список")
	}
	return nil
}

func (i impl) Remove(platformID string) error {
	return i.store.Delete(platformID)
}

func (i impl) List() ([]dbmodels.BlacklistEntry, error) {
	return i.store.List()
}

func (i impl) IsBlocked(platformID string) (bool, error) {
	rec, err := i.store.GetByPlatformID(platformID)
	if err != nil {
		return false, err
	}
	return rec != nil, nil
}
