package application

import (
	"context"
	"testing"
	"time"

	applicationlogstore "recruit-tools-backend/lib/application-log/store"
	applicationstore "recruit-tools-backend/lib/application/store"
	"recruit-tools-backend/lib/document"
	messagestore "recruit-tools-backend/lib/message/store"
	userstore "recruit-tools-backend/lib/user/store"
	votestore "recruit-tools-backend/lib/vote/store"
	"recruit-tools-backend/models"
	apimodels "recruit-tools-backend/models/api"
	applicationapimodels "recruit-tools-backend/models/api/application"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeAppStore struct {
	applicationstore.Provider
	rec *dbmodels.Application

	createdRec dbmodels.Application
	createdLog dbmodels.ApplicationLog
	updMap     map[string]interface{}
	updLog     dbmodels.ApplicationLog
}

func (f *fakeAppStore) CreateWithLog(rec dbmodels.Application, logRec dbmodels.ApplicationLog) (string, error) {
	f.createdRec = rec
	f.createdLog = logRec
	return "app-1", nil
}

func (f *fakeAppStore) GetByID(id string) (*dbmodels.Application, error) {
	return f.rec, nil
}

func (f *fakeAppStore) GetByChannelID(channelID string) (*dbmodels.Application, error) {
	return f.rec, nil
}

func (f *fakeAppStore) UpdateWithLog(id string, updMap map[string]interface{}, logRec dbmodels.ApplicationLog) error {
	f.updMap = updMap
	f.updLog = logRec
	return nil
}

type fakeLogStore struct {
	applicationlogstore.Provider
	created []dbmodels.ApplicationLog
}

func (f *fakeLogStore) Create(rec dbmodels.ApplicationLog) (string, error) {
	f.created = append(f.created, rec)
	return "log-1", nil
}

type fakeUserStore struct {
	userstore.Provider
}

func (f fakeUserStore) Upsert(rec dbmodels.User) (dbmodels.User, error) {
	rec.ID = "user-1"
	return rec, nil
}

type fakeMsgStore struct {
	messagestore.Provider
	list          []dbmodels.ApplicationMessage
	markedDeleted string
}

func (f *fakeMsgStore) Create(rec dbmodels.ApplicationMessage) (dbmodels.ApplicationMessage, error) {
	rec.ID = "msg-1"
	rec.MessageNumber = 3
	return rec, nil
}

func (f *fakeMsgStore) ListByApplication(applicationID string) ([]dbmodels.ApplicationMessage, error) {
	return f.list, nil
}

func (f *fakeMsgStore) MarkDeleted(id string) error {
	f.markedDeleted = id
	return nil
}

func (f *fakeMsgStore) DeleteByApplication(applicationID string) error { return nil }

type fakeVoteStore struct {
	votestore.Provider
	deleted []string
}

func (f *fakeVoteStore) DeleteByApplication(applicationID string) error {
	f.deleted = append(f.deleted, applicationID)
	return nil
}

type fakePolicy struct {
	err error
}

func (f fakePolicy) CanSubmit(platformID, userID, service string) error {
	return f.err
}

type fakeDocs struct {
	document.Provider
	purged      int
	purgeCalled bool
}

func (f *fakeDocs) Purge(ctx context.Context, applicationID string) (int, error) {
	f.purgeCalled = true
	return f.purged, nil
}

type fakeNotifier struct {
	err      error
	statuses []models.ApplicationStatus
	closes   []models.ApplicationStatus
	withdrew bool
	messages []string
}

func (f *fakeNotifier) NotifyStatus(ctx context.Context, app dbmodels.Application, oldStatus models.ApplicationStatus, actorName string) error {
	f.statuses = append(f.statuses, app.Status)
	return f.err
}

func (f *fakeNotifier) NotifyClose(ctx context.Context, app dbmodels.Application, decision models.ApplicationStatus, reason string) error {
	f.closes = append(f.closes, decision)
	return f.err
}

func (f *fakeNotifier) NotifyWithdrawal(ctx context.Context, app dbmodels.Application) error {
	f.withdrew = true
	return f.err
}

func (f *fakeNotifier) NotifyMessage(ctx context.Context, app dbmodels.Application, senderName, content string, number int) error {
	f.messages = append(f.messages, content)
	return f.err
}

func openApplication() *dbmodels.Application {
	return &dbmodels.Application{
		BaseModel: dbmodels.BaseModel{ID: "app-1"},
		UserID:    "user-1",
		Service:   "moderation",
		Status:    models.ApplicationStatusReviewing,
		FirstName: "Иван",
		LastName:  "Петров",
		User: &dbmodels.User{
			BaseModel:        dbmodels.BaseModel{ID: "user-1"},
			PlatformID:       "42",
			PlatformUsername: "ivan",
		},
	}
}

func closedApplication() *dbmodels.Application {
	rec := openApplication()
	now := time.Now().Add(-time.Hour)
	rec.Status = models.ApplicationStatusRejected
	rec.ClosedAt = &now
	return rec
}

func newTestImpl(store *fakeAppStore, logStore *fakeLogStore, docs *fakeDocs, notifier Notifier, published *[]string) impl {
	return impl{
		appStore:  store,
		logStore:  logStore,
		userStore: fakeUserStore{},
		msgStore:  &fakeMsgStore{},
		voteStore: &fakeVoteStore{},
		policy:    fakePolicy{},
		docs:      docs,
		notifier:  notifier,
		publisher: func(code, applicationID, msg string) {
			if published != nil {
				*published = append(*published, code)
			}
		},
	}
}

func TestSubmit(t *testing.T) {
	t.Run(`submit creates pending application with audit entry`, func(t *testing.T) {
		store := &fakeAppStore{}
		published := []string{}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, &published)

		view, err := i.Submit(context.TODO(), Candidate{PlatformID: "42", Username: "ivan"},
			applicationapimodels.SubmitRequest{Service: "moderation", FirstName: "Иван", LastName: "Петров"})
		require.Nil(t, err)
		require.Equal(t, "app-1", view.ID)
		require.Equal(t, models.ApplicationStatusPending, store.createdRec.Status)
		require.Equal(t, dbmodels.HistoryTypeCreated, store.createdLog.ActionType)
		require.NotEmpty(t, store.createdLog.TransitionID)
		require.Equal(t, 1, len(published))
	})

	t.Run(`policy denial stops submission`, func(t *testing.T) {
		store := &fakeAppStore{}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)
		i.policy = fakePolicy{err: errors.New("запрещено")}

		_, err := i.Submit(context.TODO(), Candidate{PlatformID: "42"},
			applicationapimodels.SubmitRequest{Service: "moderation"})
		require.NotNil(t, err)
		require.Empty(t, store.createdRec.Status)
	})
}

func TestSetStatus(t *testing.T) {
	t.Run(`status change is logged and notified`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		docs := &fakeDocs{}
		notifier := &fakeNotifier{}
		i := newTestImpl(store, &fakeLogStore{}, docs, notifier, nil)

		result, err := i.SetStatus(context.TODO(), "app-1",
			applicationapimodels.SetStatusRequest{Status: models.ApplicationStatusInterviewScheduled}, Actor{ID: "r1", Name: "Рекрутер"})
		require.Nil(t, err)
		require.Equal(t, models.ApplicationStatusReviewing, result.OldStatus)
		require.Equal(t, models.ApplicationStatusInterviewScheduled, result.NewStatus)
		require.Equal(t, true, result.NotifySent)
		require.Equal(t, dbmodels.HistoryTypeStatusChange, store.updLog.ActionType)
		require.Equal(t, models.ApplicationStatusInterviewScheduled, store.updMap["status"])
		_, hasClosedAt := store.updMap["closed_at"]
		require.Equal(t, false, hasClosedAt)
		require.Equal(t, false, docs.purgeCalled)
	})

	t.Run(`terminal status closes and purges documents`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		docs := &fakeDocs{purged: 2}
		i := newTestImpl(store, &fakeLogStore{}, docs, &fakeNotifier{}, nil)

		result, err := i.SetStatus(context.TODO(), "app-1",
			applicationapimodels.SetStatusRequest{Status: models.ApplicationStatusRecruited}, Actor{ID: "r1", Name: "Рекрутер"})
		require.Nil(t, err)
		require.Equal(t, 2, result.DocumentsPurged)
		require.Equal(t, true, docs.purgeCalled)
		require.NotNil(t, store.updMap["closed_at"])
	})

	t.Run(`closed application is immutable`, func(t *testing.T) {
		store := &fakeAppStore{rec: closedApplication()}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)

		_, err := i.SetStatus(context.TODO(), "app-1",
			applicationapimodels.SetStatusRequest{Status: models.ApplicationStatusReviewing}, Actor{})
		require.ErrorIs(t, err, ErrAlreadyClosed)
		require.Nil(t, store.updMap)
	})

	t.Run(`missing application returns not found`, func(t *testing.T) {
		store := &fakeAppStore{}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)

		_, err := i.SetStatus(context.TODO(), "app-1",
			applicationapimodels.SetStatusRequest{Status: models.ApplicationStatusReviewing}, Actor{})
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(`notify failure does not fail the transition`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{err: errors.New("бот недоступен")}, nil)

		result, err := i.SetStatus(context.TODO(), "app-1",
			applicationapimodels.SetStatusRequest{Status: models.ApplicationStatusTraining}, Actor{})
		require.Nil(t, err)
		require.Equal(t, false, result.NotifySent)
		require.Equal(t, models.ApplicationStatusTraining, store.updMap["status"])
	})
}

func TestClose(t *testing.T) {
	t.Run(`close records decision and purges documents`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		docs := &fakeDocs{purged: 1}
		notifier := &fakeNotifier{}
		i := newTestImpl(store, &fakeLogStore{}, docs, notifier, nil)

		result, err := i.Close(context.TODO(), "app-1",
			applicationapimodels.CloseRequest{Decision: models.ApplicationStatusRejected, Reason: "не прошел проверку"}, Actor{Name: "Рекрутер"})
		require.Nil(t, err)
		require.Equal(t, models.ApplicationStatusRejected, result.NewStatus)
		require.Equal(t, 1, result.DocumentsPurged)
		require.Equal(t, dbmodels.HistoryTypeClosed, store.updLog.ActionType)
		require.Equal(t, "не прошел проверку", store.updMap["close_reason"])
		require.Equal(t, []models.ApplicationStatus{models.ApplicationStatusRejected}, notifier.closes)
	})
}

func TestReopen(t *testing.T) {
	t.Run(`reopen clears the close fields`, func(t *testing.T) {
		store := &fakeAppStore{rec: closedApplication()}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)

		result, err := i.Reopen(context.TODO(), "app-1", Actor{Name: "Рекрутер"})
		require.Nil(t, err)
		require.Equal(t, models.ApplicationStatusRejected, result.OldStatus)
		require.Equal(t, models.ApplicationStatusReviewing, result.NewStatus)
		require.Equal(t, dbmodels.HistoryTypeReopened, store.updLog.ActionType)
		require.Nil(t, store.updMap["closed_at"])
		require.Nil(t, store.updMap["close_reason"])
	})

	t.Run(`open application cannot be reopened`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)

		_, err := i.Reopen(context.TODO(), "app-1", Actor{})
		require.ErrorIs(t, err, ErrNotClosed)
	})
}

func TestWithdraw(t *testing.T) {
	t.Run(`owner withdraws an open application`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		docs := &fakeDocs{}
		notifier := &fakeNotifier{}
		i := newTestImpl(store, &fakeLogStore{}, docs, notifier, nil)

		result, err := i.Withdraw(context.TODO(), "app-1", "42")
		require.Nil(t, err)
		require.Equal(t, models.ApplicationStatusRejected, result.NewStatus)
		require.Equal(t, dbmodels.HistoryTypeWithdrawn, store.updLog.ActionType)
		require.Equal(t, models.ApplicationStatusRejected, store.updMap["status"])
		require.Equal(t, true, docs.purgeCalled)
		require.Equal(t, true, notifier.withdrew)
	})

	t.Run(`foreign application cannot be withdrawn`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)

		_, err := i.Withdraw(context.TODO(), "app-1", "99")
		require.ErrorIs(t, err, ErrNotOwner)
	})

	t.Run(`closed application cannot be withdrawn`, func(t *testing.T) {
		store := &fakeAppStore{rec: closedApplication()}
		i := newTestImpl(store, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)

		_, err := i.Withdraw(context.TODO(), "app-1", "42")
		require.ErrorIs(t, err, ErrAlreadyClosed)
	})
}

func TestSendMessage(t *testing.T) {
	t.Run(`message is stored, logged and relayed`, func(t *testing.T) {
		store := &fakeAppStore{rec: openApplication()}
		logStore := &fakeLogStore{}
		notifier := &fakeNotifier{}
		i := newTestImpl(store, logStore, &fakeDocs{}, notifier, nil)

		err := i.SendMessage(context.TODO(), "app-1", Actor{ID: "r1", Name: "Рекрутер"}, "Добрый день!")
		require.Nil(t, err)
		require.Equal(t, 1, len(logStore.created))
		require.Equal(t, dbmodels.HistoryTypeMessage, logStore.created[0].ActionType)
		require.Equal(t, []string{"Добрый день!"}, notifier.messages)
	})

	t.Run(`messages list excludes missing application`, func(t *testing.T) {
		i := newTestImpl(&fakeAppStore{}, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)
		_, err := i.ListMessages("app-1")
		require.ErrorIs(t, err, ErrNotFound)
	})

	t.Run(`messages list converts rows`, func(t *testing.T) {
		i := newTestImpl(&fakeAppStore{rec: openApplication()}, &fakeLogStore{}, &fakeDocs{}, &fakeNotifier{}, nil)
		msgStore := &fakeMsgStore{list: []dbmodels.ApplicationMessage{
			{BaseModel: dbmodels.BaseModel{ID: "msg-1"}, SenderName: "Рекрутер", Content: "привет", MessageNumber: 1},
		}}
		i.msgStore = msgStore

		list, err := i.ListMessages("app-1")
		require.Nil(t, err)
		require.Equal(t, 1, len(list))
		require.Equal(t, "msg-1", list[0].ID)
		require.Equal(t, 1, list[0].MessageNumber)
	})

	t.Run(`delete hides the message and logs the action`, func(t *testing.T) {
		logStore := &fakeLogStore{}
		i := newTestImpl(&fakeAppStore{rec: openApplication()}, logStore, &fakeDocs{}, &fakeNotifier{}, nil)
		msgStore := &fakeMsgStore{}
		i.msgStore = msgStore

		err := i.DeleteMessage("app-1", "msg-1", Actor{ID: "r1", Name: "Рекрутер"})
		require.Nil(t, err)
		require.Equal(t, "msg-1", msgStore.markedDeleted)
		require.Equal(t, 1, len(logStore.created))
		require.Equal(t, dbmodels.HistoryTypeMsgDeleted, logStore.created[0].ActionType)
	})
}

func TestHistory(t *testing.T) {
	t.Run(`history returns converted log entries`, func(t *testing.T) {
		logStore := &fakeLogStore{}
		i := newTestImpl(&fakeAppStore{}, logStore, &fakeDocs{}, &fakeNotifier{}, nil)
		i.logStore = stubLogList{}

		list, count, err := i.History("app-1", apimodels.Pagination{Page: 1, Limit: 20})
		require.Nil(t, err)
		require.Equal(t, int64(1), count)
		require.Equal(t, 1, len(list))
		require.Equal(t, dbmodels.HistoryTypeCreated, list[0].ActionType)
	})
}

type stubLogList struct {
	applicationlogstore.Provider
}

func (s stubLogList) List(applicationID string, filter apimodels.Pagination) ([]dbmodels.ApplicationLog, error) {
	return []dbmodels.ApplicationLog{{
		ApplicationID: applicationID,
		ActionType:    dbmodels.HistoryTypeCreated,
		ActorName:     "ivan",
	}}, nil
}

func (s stubLogList) ListCount(applicationID string) (int64, error) {
	return 1, nil
}
