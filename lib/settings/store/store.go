package policysettingsstore

import (
	"recruit-tools-backend/models"
	dbmodels "recruit-tools-backend/models/db"
	"strconv"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type Provider interface {
	List() (list []dbmodels.PolicySetting, err error)
	GetValueByCode(code models.PolicySettingCode) (value string, err error)
	GetIntValueByCode(code models.PolicySettingCode, defaultValue int) (value int, err error)
	Set(code models.PolicySettingCode, name, value string) error
	Delete(code models.PolicySettingCode) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) List() (list []dbmodels.PolicySetting, err error) {
	list = []dbmodels.PolicySetting{}
	err = i.db.
		Model(dbmodels.PolicySetting{}).
		Order("name").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) GetValueByCode(code models.PolicySettingCode) (value string, err error) {
	rec := dbmodels.PolicySetting{}
	err = i.db.
		Model(dbmodels.PolicySetting{}).
		Where("code = ?", code).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return rec.Value, nil
}

func (i impl) GetIntValueByCode(code models.PolicySettingCode, defaultValue int) (value int, err error) {
	raw, err := i.GetValueByCode(code)
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return defaultValue, nil
	}
	value, err = strconv.Atoi(raw)
	if err != nil {
		return 0, errors.Wrapf(err, "некорректное значение настройки (%v)", code)
	}
	return value, nil
}

func (i impl) Set(code models.PolicySettingCode, name, value string) error {
	rec := dbmodels.PolicySetting{}
	err := i.db.
		Model(dbmodels.PolicySetting{}).
		Where("code = ?", code).
		First(&rec).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		rec = dbmodels.PolicySetting{
			Code:  code,
			Name:  name,
			Value: value,
		}
		return i.db.Create(&rec).Error
	}
	updMap := map[string]interface{}{
		"value": value,
	}
	if name != "" {
		updMap["name"] = name
	}
	return i.db.
		Model(&dbmodels.PolicySetting{}).
		Where("id = ?", rec.ID).
		Updates(updMap).Error
}

func (i impl) Delete(code models.PolicySettingCode) error {
	return i.db.
		Where("code = ?", code).
		Delete(&dbmodels.PolicySetting{}).Error
}
