package policy

import (
	"testing"
	"time"

	applicationstore "recruit-tools-backend/lib/application/store"
	blackliststore "recruit-tools-backend/lib/blacklist/store"
	"recruit-tools-backend/models"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeAppStore struct {
	applicationstore.Provider
	open       *dbmodels.Application
	lastClosed *dbmodels.Application
}

func (f fakeAppStore) GetOpen(userID, service string) (*dbmodels.Application, error) {
	return f.open, nil
}

func (f fakeAppStore) GetLastClosed(userID, service string, status models.ApplicationStatus) (*dbmodels.Application, error) {
	return f.lastClosed, nil
}

type fakeBlacklistStore struct {
	blackliststore.Provider
	blocked *dbmodels.BlacklistEntry
}

func (f fakeBlacklistStore) GetByPlatformID(platformID string) (*dbmodels.BlacklistEntry, error) {
	return f.blocked, nil
}

type fakeSettingsStore struct {
	hours int
}

func (f fakeSettingsStore) List() ([]dbmodels.PolicySetting, error)                    { return nil, nil }
func (f fakeSettingsStore) GetValueByCode(code models.PolicySettingCode) (string, error) { return "", nil }
func (f fakeSettingsStore) GetIntValueByCode(code models.PolicySettingCode, defaultValue int) (int, error) {
	return f.hours, nil
}
func (f fakeSettingsStore) Set(code models.PolicySettingCode, name, value string) error { return nil }
func (f fakeSettingsStore) Delete(code models.PolicySettingCode) error                  { return nil }

func newTestImpl(appStore fakeAppStore, blocked *dbmodels.BlacklistEntry, hours int, now time.Time) impl {
	return impl{
		appStore:       appStore,
		blacklistStore: fakeBlacklistStore{blocked: blocked},
		settingsStore:  fakeSettingsStore{hours: hours},
		now:            func() time.Time { return now },
	}
}

func rejectedApplication(createdAt, closedAt time.Time) *dbmodels.Application {
	rec := &dbmodels.Application{
		Status:   models.ApplicationStatusRejected,
		ClosedAt: &closedAt,
	}
	rec.CreatedAt = createdAt
	return rec
}

func TestCanSubmit(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	t.Run(`blacklisted user is rejected first`, func(t *testing.T) {
		open := &dbmodels.Application{Status: models.ApplicationStatusPending}
		i := newTestImpl(fakeAppStore{open: open}, &dbmodels.BlacklistEntry{PlatformID: "42"}, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		require.ErrorIs(t, err, ErrBlacklisted)
	})

	t.Run(`open application blocks resubmission`, func(t *testing.T) {
		open := &dbmodels.Application{Status: models.ApplicationStatusReviewing}
		i := newTestImpl(fakeAppStore{open: open}, nil, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		require.ErrorIs(t, err, ErrAlreadyOpen)
	})

	t.Run(`recent rejection starts cooldown`, func(t *testing.T) {
		last := rejectedApplication(now.Add(-24*time.Hour), now.Add(-23*time.Hour))
		i := newTestImpl(fakeAppStore{lastClosed: last}, nil, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		cdErr := &CooldownError{}
		require.Equal(t, true, errors.As(err, &cdErr))
		require.Equal(t, 48, cdErr.HoursRemaining)
	})

	t.Run(`partial hour is rounded up`, func(t *testing.T) {
		last := rejectedApplication(now.Add(-71*time.Hour-30*time.Minute), now.Add(-time.Hour))
		i := newTestImpl(fakeAppStore{lastClosed: last}, nil, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		cdErr := &CooldownError{}
		require.Equal(t, true, errors.As(err, &cdErr))
		require.Equal(t, 1, cdErr.HoursRemaining)
	})

	t.Run(`exactly at the boundary is allowed`, func(t *testing.T) {
		last := rejectedApplication(now.Add(-72*time.Hour), now.Add(-time.Hour))
		i := newTestImpl(fakeAppStore{lastClosed: last}, nil, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		require.Nil(t, err)
	})

	t.Run(`cooldown counts from submission, not from closure`, func(t *testing.T) {
		// подана 73 часа назад, закрыта час назад - срок уже истек
		last := rejectedApplication(now.Add(-73*time.Hour), now.Add(-time.Hour))
		i := newTestImpl(fakeAppStore{lastClosed: last}, nil, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		require.Nil(t, err)
	})

	t.Run(`zero cooldown disables the check`, func(t *testing.T) {
		last := rejectedApplication(now.Add(-time.Hour), now.Add(-time.Minute))
		i := newTestImpl(fakeAppStore{lastClosed: last}, nil, 0, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		require.Nil(t, err)
	})

	t.Run(`no prior rejection passes`, func(t *testing.T) {
		i := newTestImpl(fakeAppStore{}, nil, 72, now)
		err := i.CanSubmit("42", "user-1", "moderation")
		require.Nil(t, err)
	})
}
