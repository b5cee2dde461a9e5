package settings

import (
	"recruit-tools-backend/db"
	policysettingsstore "recruit-tools-backend/lib/settings/store"
	"recruit-tools-backend/models"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
)

// Provider управляет настройками политик подачи. Изменения действуют
// на последующие подачи сразу, без перезапуска сервисов.
type Provider interface {
	List() ([]dbmodels.PolicySetting, error)
	Set(code models.PolicySettingCode, name, value string) error
	GetCooldownHours() (int, error)
	// GetOrgName - название организации в уведомлениях, defaultName при отсутствии
	GetOrgName(defaultName string) string
	Delete(code models.PolicySettingCode) error
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		store: policysettingsstore.NewInstance(db.DB),
	}
}

type impl struct {
	store policysettingsstore.Provider
}

func (i impl) List() ([]dbmodels.PolicySetting, error) {
	return i.store.List()
}

func (i impl) Set(code models.PolicySettingCode, name, value string) error {
	if code == "" {
		return errors.New("не указан код настройки")
	}
	return i.store.Set(code, name, value)
}

func (i impl) GetCooldownHours() (int, error) {
	return i.store.GetIntValueByCode(models.CooldownHoursSetting, models.DefaultCooldownHours)
}

func (i impl) GetOrgName(defaultName string) string {
	value, err := i.store.GetValueByCode(models.OrgNameSetting)
	if err != nil || value == "" {
		return defaultName
	}
	return value
}

func (i impl) Delete(code models.PolicySettingCode) error {
	return i.store.Delete(code)
}
