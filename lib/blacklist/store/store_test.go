package blackliststore

import (
	"testing"

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

func TestBlacklistStore(t *testing.T) {
	t.Run(`lookup by platform id`, func(t *testing.T) {
		store, mock := newMockStore(t)
		rows := sqlmock.NewRows([]string{"id", "platform_id", "reason", "added_by_name"}).
			AddRow("id-1", "42", "спам", "Рекрутер")
		mock.ExpectQuery(`SELECT .* FROM "blacklist_entries"`).WillReturnRows(rows)

		rec, err := store.GetByPlatformID("42")
		require.Nil(t, err)
		require.NotNil(t, rec)
		require.Equal(t, "спам", rec.Reason)
		require.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run(`unknown platform id returns nil`, func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectQuery(`SELECT .* FROM "blacklist_entries"`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "platform_id", "reason", "added_by_name"}))

		rec, err := store.GetByPlatformID("99")
		require.Nil(t, err)
		require.Nil(t, rec)
		require.Nil(t, mock.ExpectationsWereMet())
	})

	t.Run(`delete by platform id`, func(t *testing.T) {
		store, mock := newMockStore(t)
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM "blacklist_entries"`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := store.Delete("42")
		require.Nil(t, err)
		require.Nil(t, mock.ExpectationsWereMet())
	})
}
