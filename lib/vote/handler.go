package vote

import (
	"context"

	"recruit-tools-backend/db"
	applicationstore "recruit-tools-backend/lib/application/store"
	votestore "recruit-tools-backend/lib/vote/store"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

type Provider interface {
	// Cast сохраняет голос рекрутера, повторный голос заменяет предыдущий
	Cast(ctx context.Context, applicationID, voterID, voterName string, inFavor bool, comment string) error
	ListByApplication(applicationID string) ([]dbmodels.ApplicationVote, error)
}

// RecapNotifier публикует сводку голосов в канал кандидатуры
type RecapNotifier interface {
	NotifyVote(ctx context.Context, app dbmodels.Application, voterName string) error
}

var Instance Provider

func NewHandler(notifier RecapNotifier) {
	Instance = &impl{
		store:    votestore.NewInstance(db.DB),
		appStore: applicationstore.NewInstance(db.DB),
		notifier: notifier,
	}
}

type impl struct {
	store    votestore.Provider
	appStore applicationstore.Provider
	notifier RecapNotifier
}

func (i impl) Cast(ctx context.Context, applicationID, voterID, voterName string, inFavor bool, comment string) error {
	rec, err := i.appStore.GetByID(applicationID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return errors.New("кандидатура не найдена")
	}
	if rec.IsClosed() {
		return errors.New("кандидатура уже закрыта")
	}
	_, err = i.store.Save(dbmodels.ApplicationVote{
		ApplicationID: applicationID,
		VoterID:       voterID,
		VoterName:     voterName,
		InFavor:       inFavor,
		Comment:       comment,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения голоса")
	}
	if i.notifier != nil {
		if err = i.notifier.NotifyVote(ctx, *rec, voterName); err != nil {
			log.WithError(err).WithField("application_id", applicationID).Error("ошибка публикации сводки голосов")
		}
	}
	return nil
}

func (i impl) ListByApplication(applicationID string) ([]dbmodels.ApplicationVote, error) {
	return i.store.ListByApplication(applicationID)
}
