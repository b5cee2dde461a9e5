package policy

import (
	"fmt"
	"math"
	"time"

	"recruit-tools-backend/db"
	applicationstore "recruit-tools-backend/lib/application/store"
	blackliststore "recruit-tools-backend/lib/blacklist/store"
	policysettingsstore "recruit-tools-backend/lib/settings/store"
	"recruit-tools-backend/models"

	"github.com/pkg/errors"
)

// Provider проверяет допустимость новой подачи. Проверки выполняются
// в фиксированном порядке: черный список, уже открытая кандидатура,
// срок после отказа. Возвращается первая причина отказа.
type Provider interface {
	CanSubmit(platformID, userID, service string) error
}

var (
	ErrBlacklisted = errors.New("вам запрещена подача кандидатур")
	ErrAlreadyOpen = errors.New("у вас уже есть открытая кандидатура в это подразделение")
)

// CooldownError - отказ из-за недавнего отклонения, с оставшимся сроком
type CooldownError struct {
	HoursRemaining int
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("повторная подача будет доступна через %v ч.", e.HoursRemaining)
}

var Instance Provider

func NewHandler() {
	Instance = &impl{
		appStore:       applicationstore.NewInstance(db.DB),
		blacklistStore: blackliststore.NewInstance(db.DB),
		settingsStore:  policysettingsstore.NewInstance(db.DB),
		now:            time.Now,
	}
}

type impl struct {
	appStore       applicationstore.Provider
	blacklistStore blackliststore.Provider
	settingsStore  policysettingsstore.Provider
	now            func() time.Time
}

func (i impl) CanSubmit(platformID, userID, service string) error {
	blocked, err := i.blacklistStore.GetByPlatformID(platformID)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки черного списка")
	}
	if blocked != nil {
		return ErrBlacklisted
	}

	open, err := i.appStore.GetOpen(userID, service)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки открытых кандидатур")
	}
	if open != nil {
		return ErrAlreadyOpen
	}

	return i.checkCooldown(userID, service)
}

func (i impl) checkCooldown(userID, service string) error {
	last, err := i.appStore.GetLastClosed(userID, service, models.ApplicationStatusRejected)
	if err != nil {
		return errors.Wrap(err, "ошибка проверки срока повторной подачи")
	}
	if last == nil {
		return nil
	}
	hours, err := i.settingsStore.GetIntValueByCode(models.CooldownHoursSetting, models.DefaultCooldownHours)
	if err != nil {
		return errors.Wrap(err, "ошибка получения настройки срока повторной подачи")
	}
	if hours <= 0 {
		return nil
	}
	// срок отсчитывается от даты подачи отклоненной кандидатуры
	until := last.CreatedAt.Add(time.Duration(hours) * time.Hour)
	remaining := until.Sub(i.now())
	// ровно на границе срока подача уже разрешена
	if remaining <= 0 {
		return nil
	}
	return &CooldownError{HoursRemaining: int(math.Ceil(remaining.Hours()))}
}
