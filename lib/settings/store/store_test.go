package policysettingsstore

import (
	"testing"

	"recruit-tools-backend/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStore(t *testing.T) (Provider, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.Nil(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	require.Nil(t, err)
	return NewInstance(gdb), mock
}

func TestPolicySettingsStore(t *testing.T) {
	t.Run(`value by code`, func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "code", "name", "value"}).
			AddRow("id-1", string(models.CooldownHoursSetting), "Срок", "48")
		mock.ExpectQuery(`SELECT .* FROM "policy_settings"`).WillReturnRows(rows)

		value, err := store.GetValueByCode(models.CooldownHoursSetting)
		require.Nil(t, err)
		require.Equal(t, "48", value)
		require.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run(`missing setting falls back to default`, func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .* FROM "policy_settings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "value"}))

		value, err := store.GetIntValueByCode(models.CooldownHoursSetting, 24)
		require.Nil(t, err)
		require.Equal(t, 24, value)
		require.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run(`broken value is reported`, func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "code", "name", "value"}).
			AddRow("id-1", string(models.CooldownHoursSetting), "Срок", "сутки")
		mock.ExpectQuery(`SELECT .* FROM "policy_settings"`).WillReturnRows(rows)

		_, err := store.GetIntValueByCode(models.CooldownHoursSetting, 24)
		require.NotNil(t, err)
	})

	t.Run(`set creates a new setting`, func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .* FROM "policy_settings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "code", "name", "value"}))
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO "policy_settings"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("id-1"))
		mock.ExpectCommit()

		err := store.Set(models.CooldownHoursSetting, "Срок", "72")
		require.Nil(t, err)
		require.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run(`set updates an existing setting`, func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "code", "name", "value"}).
			AddRow("id-1", string(models.CooldownHoursSetting), "Срок", "24")
		mock.ExpectQuery(`SELECT .* FROM "policy_settings"`).WillReturnRows(rows)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "policy_settings"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.Set(models.CooldownHoursSetting, "", "72")
		require.Nil(t, err)
		require.Nil(t, mock.ExpectationsWereMet())
	})
}
