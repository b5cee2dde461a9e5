package applicationlogstore

import (
	apimodels "recruit-tools-backend/models/api"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type Provider interface {
	Create(rec dbmodels.ApplicationLog) (id string, err error)
	List(applicationID string, filter apimodels.Pagination) (list []dbmodels.ApplicationLog, err error)
	ListCount(applicationID string) (count int64, err error)
	ExistsByTransitionID(transitionID string) (bool, error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.ApplicationLog) (id string, err error) {
	err = i.db.Create(&rec).Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) List(applicationID string, filter apimodels.Pagination) (list []dbmodels.ApplicationLog, err error) {
	list = []dbmodels.ApplicationLog{}
	page, limit := filter.GetPage()
	offset := (page - 1) * limit
	err = i.db.
		Model(dbmodels.ApplicationLog{}).
		Where("application_id = ?", applicationID).
		Limit(limit).
		Offset(offset).
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

func (i impl) ListCount(applicationID string) (count int64, err error) {
	var rowCount int64
	err = i.db.
		Model(dbmodels.ApplicationLog{}).
		Where("application_id = ?", applicationID).
		Count(&rowCount).Error
	if err != nil {
		log.WithError(err).Error("ошибка получения общего количества записей журнала")
		return 0, errors.New("ошибка получения общего количества записей журнала")
	}
	return rowCount, nil
}

func (i impl) ExistsByTransitionID(transitionID string) (bool, error) {
	var rowCount int64
	err := i.db.
		Model(dbmodels.ApplicationLog{}).
		Where("transition_id = ?", transitionID).
		Count(&rowCount).Error
	if err != nil {
		return false, err
	}
	return rowCount > 0, nil
}
