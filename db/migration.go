package db

import (
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	dbmodels "recruit-tools-backend/models/db"
)

func AutoMigrateDB() error {
	DB.Exec("CREATE EXTENSION IF NOT EXISTS \"uuid-ossp\";")
	log.Info("Запуск миграций")
	if err := DB.AutoMigrate(&dbmodels.User{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры User")
	}
	if err := DB.AutoMigrate(&dbmodels.Application{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры Application")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationLog{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationLog")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationDocument{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationDocument")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationVote{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationVote")
	}
	if err := DB.AutoMigrate(&dbmodels.ApplicationMessage{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры ApplicationMessage")
	}
	if err := DB.AutoMigrate(&dbmodels.BlacklistEntry{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры BlacklistEntry")
	}
	if err := DB.AutoMigrate(&dbmodels.PolicySetting{}); err != nil {
		return errors.Wrap(err, "ошибка создания структуры PolicySetting")
	}

	// Схема - последний рубеж против гонки двух одновременных подач:
	// открытая кандидатура на пару (пользователь, подразделение) может быть
	// только одна. AutoMigrate частичные индексы не умеет.
	err := DB.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_open
		ON applications (user_id, service)
		WHERE status NOT IN ('recruited', 'rejected')`).Error
	if err != nil {
		return errors.Wrap(err, "ошибка создания индекса idx_applications_open")
	}

	log.Info("Миграция прошла успешно")
	return nil
}

// InitPreload - первичное наполнение справочных данных
func InitPreload() {
	var count int64
	err := DB.Model(&dbmodels.PolicySetting{}).
		Where("code = ?", dbmodels.DefaultCooldownSetting.Code).
		Count(&count).
		Error
	if err != nil {
		log.WithError(err).Error("ошибка проверки настроек политик")
		return
	}
	if count == 0 {
		if err := DB.Create(&dbmodels.DefaultCooldownSetting).Error; err != nil {
			log.WithError(err).Error("ошибка создания настройки cooldown_hours")
		}
	}
}
