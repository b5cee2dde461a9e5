package applicationstore

import (
	"recruit-tools-backend/models"
	applicationapimodels "recruit-tools-backend/models/api/application"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	CreateWithLog(rec dbmodels.Application, logRec dbmodels.ApplicationLog) (id string, err error)
	GetByID(id string) (rec *dbmodels.Application, err error)
	GetByChannelID(channelID string) (rec *dbmodels.Application, err error)
	GetOpen(userID, service string) (rec *dbmodels.Application, err error)
	GetLastClosed(userID, service string, status models.ApplicationStatus) (rec *dbmodels.Application, err error)
	List(filter applicationapimodels.ListFilter) (list []dbmodels.Application, err error)
	ListCount(filter applicationapimodels.ListFilter) (count int64, err error)
	ListByUser(userID string) (list []dbmodels.Application, err error)
	Update(id string, updMap map[string]interface{}) error
	UpdateWithLog(id string, updMap map[string]interface{}, logRec dbmodels.ApplicationLog) error
	Delete(id string) error
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) CreateWithLog(rec dbmodels.Application, logRec dbmodels.ApplicationLog) (id string, err error) {
	err = i.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("User", "Documents", "Votes", "Messages").Create(&rec).Error; err != nil {
			return err
		}
		logRec.ApplicationID = rec.ID
		return tx.Create(&logRec).Error
	})
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (rec *dbmodels.Application, err error) {
	rec = &dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("id = ?", id).
		Preload("User").
		Preload("Documents").
		First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) GetByChannelID(channelID string) (rec *dbmodels.Application, err error) {
	rec = &dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("channel_id = ?", channelID).
		Preload("User").
		First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// GetOpen возвращает незакрытую кандидатуру пользователя в указанное подразделение
func (i impl) GetOpen(userID, service string) (rec *dbmodels.Application, err error) {
	rec = &dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("user_id = ?", userID).
		Where("service = ?", service).
		Where("status NOT IN ?", []models.ApplicationStatus{
			models.ApplicationStatusRecruited,
			models.ApplicationStatusRejected,
		}).
		First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

// GetLastClosed возвращает последнюю по дате подачи кандидатуру пользователя
// в подразделение, закрытую с указанным решением
func (i impl) GetLastClosed(userID, service string, status models.ApplicationStatus) (rec *dbmodels.Application, err error) {
	rec = &dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("user_id = ?", userID).
		Where("service = ?", service).
		Where("status = ?", status).
		Order("created_at desc").
		First(rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (i impl) List(filter applicationapimodels.ListFilter) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	tx := i.applyFilter(filter)
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = tx.
		Limit(limit).
		Offset(offset).
		Order("created_at desc").
		Preload("User").
		Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListCount(filter applicationapimodels.ListFilter) (count int64, err error) {
	var rowCount int64
	err = i.applyFilter(filter).Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества кандидатур")
		return 0, errors.New("ошибка получения общего количества кандидатур")
	}
	return rowCount, nil
}

func (i impl) ListByUser(userID string) (list []dbmodels.Application, err error) {
	list = []dbmodels.Application{}
	err = i.db.
		Model(dbmodels.Application{}).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&list).Error
	if err != nil {
		return nil, err
	}
	return list, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	return i.db.
		Model(&dbmodels.Application{}).
		Where("id = ?", id).
		Updates(updMap).Error
}

// UpdateWithLog выполняет смену статуса и запись в журнал одной транзакцией:
// либо фиксируются обе, либо ни одна
func (i impl) UpdateWithLog(id string, updMap map[string]interface{}, logRec dbmodels.ApplicationLog) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		err := tx.
			Model(&dbmodels.Application{}).
			Where("id = ?", id).
			Updates(updMap).Error
		if err != nil {
			return err
		}
		logRec.ApplicationID = id
		return tx.Create(&logRec).Error
	})
}

// Delete удаляет кандидатуру вместе с журналом и дочерними записями
func (i impl) Delete(id string) error {
	return i.db.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&dbmodels.ApplicationLog{},
			&dbmodels.ApplicationDocument{},
			&dbmodels.ApplicationVote{},
			&dbmodels.ApplicationMessage{},
		} {
			if err := tx.Where("application_id = ?", id).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Where("id = ?", id).Delete(&dbmodels.Application{}).Error
	})
}

func (i impl) applyFilter(filter applicationapimodels.ListFilter) *gorm.DB {
	tx := i.db.Model(dbmodels.Application{})
	if filter.Service != "" {
		tx = tx.Where("service = ?", filter.Service)
	}
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		tx = tx.Where("first_name ILIKE ? OR last_name ILIKE ?", like, like)
	}
	return tx
}
