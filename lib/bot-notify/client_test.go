package botnotify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"recruit-tools-backend/models"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/stretchr/testify/require"
)

func testApplication() dbmodels.Application {
	channelID := "channel-1"
	return dbmodels.Application{
		BaseModel: dbmodels.BaseModel{ID: "app-1"},
		Service:   "moderation",
		Status:    models.ApplicationStatusReviewing,
		FirstName: "Иван",
		LastName:  "Петров",
		ChannelID: &channelID,
		User:      &dbmodels.User{PlatformID: "42"},
	}
}

func newTestClient(host string) impl {
	return impl{
		host:   host,
		secret: "test-secret",
		client: &http.Client{Timeout: time.Second},
	}
}

func TestNotifyClient(t *testing.T) {
	t.Run(`request carries bearer secret`, func(t *testing.T) {
		var gotAuth, gotPath string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotPath = r.URL.Path
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		err := client.NotifyStatus(context.TODO(), testApplication(), models.ApplicationStatusPending, "Рекрутер")
		require.Nil(t, err)
		require.Equal(t, "Bearer test-secret", gotAuth)
		require.Equal(t, statusPath, gotPath)
	})

	t.Run(`5xx is retried up to three attempts`, func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		err := client.NotifyWithdrawal(context.TODO(), testApplication())
		require.NotNil(t, err)
		require.Equal(t, maxAttempts, attempts)
	})

	t.Run(`5xx recovers on a later attempt`, func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			if attempts < 2 {
				w.WriteHeader(http.StatusBadGateway)
				return
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		err := client.NotifyClose(context.TODO(), testApplication(), models.ApplicationStatusRejected, "причина")
		require.Nil(t, err)
		require.Equal(t, 2, attempts)
	})

	t.Run(`4xx is not retried`, func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer srv.Close()

		client := newTestClient(srv.URL)
		err := client.NotifyMessage(context.TODO(), testApplication(), "Рекрутер", "привет", 1)
		require.NotNil(t, err)
		require.Equal(t, 1, attempts)
	})

	t.Run(`vote recap without channel is skipped`, func(t *testing.T) {
		attempts := 0
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			attempts++
		}))
		defer srv.Close()

		app := testApplication()
		app.ChannelID = nil
		client := newTestClient(srv.URL)
		err := client.NotifyVote(context.TODO(), app, "Рекрутер")
		require.Nil(t, err)
		require.Equal(t, 0, attempts)
	})
}
