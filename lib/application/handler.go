package application

import (
	"context"
	"fmt"
	"time"

	"recruit-tools-backend/config"
	"recruit-tools-backend/db"
	applicationlogstore "recruit-tools-backend/lib/application-log/store"
	applicationstore "recruit-tools-backend/lib/application/store"
	"recruit-tools-backend/lib/document"
	pdfexport "recruit-tools-backend/lib/export/pdf"
	messagestore "recruit-tools-backend/lib/message/store"
	"recruit-tools-backend/lib/policy"
	"recruit-tools-backend/lib/smtp"
	userstore "recruit-tools-backend/lib/user/store"
	votestore "recruit-tools-backend/lib/vote/store"
	"recruit-tools-backend/models"
	apimodels "recruit-tools-backend/models/api"
	applicationapimodels "recruit-tools-backend/models/api/application"
	dbmodels "recruit-tools-backend/models/db"
	wsmodels "recruit-tools-backend/models/ws"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Provider - исполнитель переходов жизненного цикла кандидатуры.
// Смена статуса и запись журнала фиксируются одной транзакцией,
// побочные действия (уведомления, очистка документов, письма)
// выполняются после фиксации и не откатывают переход.
type Provider interface {
	Submit(ctx context.Context, candidate Candidate, req applicationapimodels.SubmitRequest) (view applicationapimodels.ApplicationView, err error)
	GetByID(id string) (*applicationapimodels.ApplicationView, error)
	GetRecord(id string) (*dbmodels.Application, error)
	List(filter applicationapimodels.ListFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error)
	ListByPlatformUser(platformID string) (list []applicationapimodels.ApplicationView, err error)
	History(applicationID string, filter apimodels.Pagination) (list []applicationapimodels.ApplicationLogView, rowCount int64, err error)

	SetStatus(ctx context.Context, id string, req applicationapimodels.SetStatusRequest, actor Actor) (applicationapimodels.TransitionResult, error)
	SetStatusByChannel(ctx context.Context, channelID string, req applicationapimodels.SetStatusRequest, actor Actor) (applicationapimodels.TransitionResult, error)
	Close(ctx context.Context, id string, req applicationapimodels.CloseRequest, actor Actor) (applicationapimodels.TransitionResult, error)
	CloseByChannel(ctx context.Context, channelID string, req applicationapimodels.CloseRequest, actor Actor) (applicationapimodels.TransitionResult, error)
	Reopen(ctx context.Context, id string, actor Actor) (applicationapimodels.TransitionResult, error)
	Withdraw(ctx context.Context, id, platformID string) (applicationapimodels.TransitionResult, error)
	Delete(ctx context.Context, id string, actor Actor) error

	SendMessage(ctx context.Context, id string, actor Actor, content string) error
	ListMessages(applicationID string) ([]applicationapimodels.MessageView, error)
	DeleteMessage(applicationID, messageID string, actor Actor) error
	BindChannel(id, channelID string) error

	ListRecords(filter applicationapimodels.ListFilter) (list []dbmodels.Application, rowCount int64, err error)
	ExportDossier(id string) ([]byte, error)
}

// Notifier доставляет уведомления кандидату. Web-сервис подставляет
// HTTP-клиент бот-сервиса, бот-сервис - прямой шлюз чат-платформы.
type Notifier interface {
	NotifyStatus(ctx context.Context, app dbmodels.Application, oldStatus models.ApplicationStatus, actorName string) error
	NotifyClose(ctx context.Context, app dbmodels.Application, decision models.ApplicationStatus, reason string) error
	NotifyWithdrawal(ctx context.Context, app dbmodels.Application) error
	NotifyMessage(ctx context.Context, app dbmodels.Application, senderName, content string, number int) error
}

// Publisher рассылает события панелям рекрутеров. В бот-сервисе не задан.
type Publisher func(code, applicationID, msg string)

// Actor - инициатор действия (рекрутер, администратор или система)
type Actor struct {
	ID   string
	Name string
}

// Candidate - личность кандидата на чат-платформе
type Candidate struct {
	PlatformID string
	Username   string
	Email      string
	AvatarURL  string
}

var (
	ErrNotFound      = errors.New("кандидатура не найдена")
	ErrAlreadyClosed = errors.New("кандидатура уже закрыта")
	ErrNotClosed     = errors.New("кандидатура не закрыта")
	ErrNotOwner      = errors.New("кандидатура принадлежит другому пользователю")
)

const withdrawnReason = "Кандидатура отозвана кандидатом"

var Instance Provider

func NewHandler(notifier Notifier, publisher Publisher) {
	Instance = &impl{
		appStore:  applicationstore.NewInstance(db.DB),
		logStore:  applicationlogstore.NewInstance(db.DB),
		userStore: userstore.NewInstance(db.DB),
		msgStore:  messagestore.NewInstance(db.DB),
		voteStore: votestore.NewInstance(db.DB),
		policy:    policy.Instance,
		docs:      document.Instance,
		notifier:  notifier,
		publisher: publisher,
	}
}

type impl struct {
	appStore  applicationstore.Provider
	logStore  applicationlogstore.Provider
	userStore userstore.Provider
	msgStore  messagestore.Provider
	voteStore votestore.Provider
	policy    policy.Provider
	docs      document.Provider
	notifier  Notifier
	publisher Publisher
}

func (i impl) Submit(ctx context.Context, candidate Candidate, req applicationapimodels.SubmitRequest) (view applicationapimodels.ApplicationView, err error) {
	user, err := i.userStore.Upsert(dbmodels.User{
		PlatformID:       candidate.PlatformID,
		PlatformUsername: candidate.Username,
		Email:            candidate.Email,
		AvatarURL:        candidate.AvatarURL,
	})
	if err != nil {
		return view, errors.Wrap(err, "ошибка сохранения пользователя")
	}
	if err = i.policy.CanSubmit(candidate.PlatformID, user.ID, req.Service); err != nil {
		return view, err
	}
	rec := dbmodels.Application{
		UserID:       user.ID,
		Service:      req.Service,
		Status:       models.ApplicationStatusPending,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		BirthDate:    req.BirthDate,
		Seniority:    req.Seniority,
		Motivation:   req.Motivation,
		Availability: req.Availability,
	}
	logRec := dbmodels.ApplicationLog{
		ActorID:      candidate.PlatformID,
		ActorName:    candidate.Username,
		ActionType:   dbmodels.HistoryTypeCreated,
		TransitionID: uuid.NewString(),
		Changes: dbmodels.ApplicationChange{
			Description: "Кандидатура подана",
			NewStatus:   models.ApplicationStatusPending,
			Service:     req.Service,
		},
	}
	id, err := i.appStore.CreateWithLog(rec, logRec)
	if err != nil {
		return view, errors.Wrap(err, "ошибка создания кандидатуры")
	}
	rec.ID = id
	rec.User = &user
	i.publish(wsmodels.EventApplicationCreated, id, fmt.Sprintf("Новая кандидатура: %v (%v)", rec.GetFIO(), rec.Service))
	return applicationapimodels.Convert(rec), nil
}

func (i impl) GetByID(id string) (*applicationapimodels.ApplicationView, error) {
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	view := applicationapimodels.Convert(*rec)
	return &view, nil
}

func (i impl) GetRecord(id string) (*dbmodels.Application, error) {
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, nil
}

func (i impl) List(filter applicationapimodels.ListFilter) (list []applicationapimodels.ApplicationView, rowCount int64, err error) {
	rowCount, err = i.appStore.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	recs, err := i.appStore.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка кандидатур")
	}
	list = make([]applicationapimodels.ApplicationView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, applicationapimodels.Convert(rec))
	}
	return list, rowCount, nil
}

func (i impl) ListByPlatformUser(platformID string) (list []applicationapimodels.ApplicationView, err error) {
	user, err := i.userStore.GetByPlatformID(platformID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения пользователя")
	}
	if user == nil {
		return []applicationapimodels.ApplicationView{}, nil
	}
	recs, err := i.appStore.ListByUser(user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения списка кандидатур")
	}
	list = make([]applicationapimodels.ApplicationView, 0, len(recs))
	for _, rec := range recs {
		rec.User = user
		list = append(list, applicationapimodels.Convert(rec))
	}
	return list, nil
}

// ListRecords возвращает записи БД для выгрузки в xlsx
func (i impl) ListRecords(filter applicationapimodels.ListFilter) (list []dbmodels.Application, rowCount int64, err error) {
	rowCount, err = i.appStore.ListCount(filter)
	if err != nil {
		return nil, 0, err
	}
	list, err = i.appStore.List(filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения списка кандидатур")
	}
	return list, rowCount, nil
}

// ExportDossier собирает pdf-досье: анкета и полный журнал действий
func (i impl) ExportDossier(id string) ([]byte, error) {
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	logs, err := i.logStore.List(id, apimodels.Pagination{Limit: 100})
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения журнала кандидатуры")
	}
	return pdfexport.GenerateDossier(*rec, logs)
}

func (i impl) History(applicationID string, filter apimodels.Pagination) (list []applicationapimodels.ApplicationLogView, rowCount int64, err error) {
	rowCount, err = i.logStore.ListCount(applicationID)
	if err != nil {
		return nil, 0, err
	}
	recs, err := i.logStore.List(applicationID, filter)
	if err != nil {
		return nil, 0, errors.Wrap(err, "ошибка получения журнала кандидатуры")
	}
	list = make([]applicationapimodels.ApplicationLogView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, applicationapimodels.ConvertLog(rec))
	}
	return list, rowCount, nil
}

func (i impl) SetStatus(ctx context.Context, id string, req applicationapimodels.SetStatusRequest, actor Actor) (applicationapimodels.TransitionResult, error) {
	rec, err := i.getOpen(id)
	if err != nil {
		return applicationapimodels.TransitionResult{}, err
	}
	return i.applyStatus(ctx, *rec, req, actor)
}

func (i impl) SetStatusByChannel(ctx context.Context, channelID string, req applicationapimodels.SetStatusRequest, actor Actor) (applicationapimodels.TransitionResult, error) {
	rec, err := i.getOpenByChannel(channelID)
	if err != nil {
		return applicationapimodels.TransitionResult{}, err
	}
	return i.applyStatus(ctx, *rec, req, actor)
}

func (i impl) Close(ctx context.Context, id string, req applicationapimodels.CloseRequest, actor Actor) (applicationapimodels.TransitionResult, error) {
	rec, err := i.getOpen(id)
	if err != nil {
		return applicationapimodels.TransitionResult{}, err
	}
	return i.applyClose(ctx, *rec, req, actor)
}

func (i impl) CloseByChannel(ctx context.Context, channelID string, req applicationapimodels.CloseRequest, actor Actor) (applicationapimodels.TransitionResult, error) {
	rec, err := i.getOpenByChannel(channelID)
	if err != nil {
		return applicationapimodels.TransitionResult{}, err
	}
	return i.applyClose(ctx, *rec, req, actor)
}

// Reopen возвращает закрытую кандидатуру на рассмотрение. Единственный
// способ вывести кандидатуру из терминального статуса.
func (i impl) Reopen(ctx context.Context, id string, actor Actor) (applicationapimodels.TransitionResult, error) {
	result := applicationapimodels.TransitionResult{}
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return result, ErrNotFound
	}
	if !rec.IsClosed() {
		return result, ErrNotClosed
	}
	oldStatus := rec.Status
	newStatus := models.ApplicationStatusReviewing
	transitionID := uuid.NewString()
	updMap := map[string]interface{}{
		"status":       newStatus,
		"closed_at":    nil,
		"close_reason": nil,
	}
	logRec := dbmodels.ApplicationLog{
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ActionType:   dbmodels.HistoryTypeReopened,
		TransitionID: transitionID,
		Changes: dbmodels.ApplicationChange{
			Description: "Кандидатура возвращена на рассмотрение",
			OldStatus:   oldStatus,
			NewStatus:   newStatus,
		},
	}
	if err = i.appStore.UpdateWithLog(id, updMap, logRec); err != nil {
		return result, errors.Wrap(err, "ошибка переоткрытия кандидатуры")
	}
	rec.Status = newStatus
	rec.ClosedAt = nil
	rec.CloseReason = nil

	result = applicationapimodels.TransitionResult{
		ApplicationID: id,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
	}
	result.NotifySent = i.notifyStatus(ctx, *rec, oldStatus, actor.Name)
	i.publish(wsmodels.EventApplicationUpdated, id, fmt.Sprintf("Кандидатура %v возвращена на рассмотрение", rec.GetFIO()))
	return result, nil
}

func (i impl) Withdraw(ctx context.Context, id, platformID string) (applicationapimodels.TransitionResult, error) {
	result := applicationapimodels.TransitionResult{}
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return result, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return result, ErrNotFound
	}
	if rec.User == nil || rec.User.PlatformID != platformID {
		return result, ErrNotOwner
	}
	if rec.IsClosed() {
		return result, ErrAlreadyClosed
	}
	oldStatus := rec.Status
	now := time.Now()
	reason := withdrawnReason
	transitionID := uuid.NewString()
	updMap := map[string]interface{}{
		"status":       models.ApplicationStatusRejected,
		"closed_at":    now,
		"close_reason": reason,
	}
	logRec := dbmodels.ApplicationLog{
		ActorID:      platformID,
		ActorName:    rec.User.PlatformUsername,
		ActionType:   dbmodels.HistoryTypeWithdrawn,
		TransitionID: transitionID,
		Changes: dbmodels.ApplicationChange{
			Description: withdrawnReason,
			OldStatus:   oldStatus,
			NewStatus:   models.ApplicationStatusRejected,
			CloseReason: reason,
		},
	}
	if err = i.appStore.UpdateWithLog(id, updMap, logRec); err != nil {
		return result, errors.Wrap(err, "ошибка отзыва кандидатуры")
	}
	rec.Status = models.ApplicationStatusRejected
	rec.ClosedAt = &now
	rec.CloseReason = &reason

	result = applicationapimodels.TransitionResult{
		ApplicationID: id,
		OldStatus:     oldStatus,
		NewStatus:     models.ApplicationStatusRejected,
	}
	result.DocumentsPurged = i.purgeAttachments(ctx, id)
	if i.notifier != nil {
		if err := i.notifier.NotifyWithdrawal(ctx, *rec); err != nil {
			log.WithError(err).WithField("application_id", id).Error("ошибка уведомления об отзыве кандидатуры")
		} else {
			result.NotifySent = true
		}
	}
	i.publish(wsmodels.EventApplicationWithdrawn, id, fmt.Sprintf("Кандидатура %v отозвана", rec.GetFIO()))
	return result, nil
}

func (i impl) Delete(ctx context.Context, id string, actor Actor) error {
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return ErrNotFound
	}
	i.purgeAttachments(ctx, id)
	if err = i.appStore.Delete(id); err != nil {
		return errors.Wrap(err, "ошибка удаления кандидатуры")
	}
	log.
		WithField("application_id", id).
		WithField("actor", actor.Name).
		Info("кандидатура удалена")
	i.publish(wsmodels.EventApplicationDeleted, id, fmt.Sprintf("Кандидатура %v удалена", rec.GetFIO()))
	return nil
}

func (i impl) SendMessage(ctx context.Context, id string, actor Actor, content string) error {
	rec, err := i.getOpen(id)
	if err != nil {
		return err
	}
	msg, err := i.msgStore.Create(dbmodels.ApplicationMessage{
		ApplicationID: id,
		SenderName:    actor.Name,
		Content:       content,
	})
	if err != nil {
		return errors.Wrap(err, "ошибка сохранения сообщения")
	}
	_, err = i.logStore.Create(dbmodels.ApplicationLog{
		ApplicationID: id,
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		ActionType:    dbmodels.HistoryTypeMessage,
		TransitionID:  uuid.NewString(),
		Changes: dbmodels.ApplicationChange{
			Description: fmt.Sprintf("Сообщение №%v кандидату", msg.MessageNumber),
		},
	})
	if err != nil {
		log.WithError(err).WithField("application_id", id).Error("ошибка записи журнала сообщения")
	}
	if i.notifier != nil {
		if err = i.notifier.NotifyMessage(ctx, *rec, actor.Name, content, msg.MessageNumber); err != nil {
			log.WithError(err).WithField("application_id", id).Error("ошибка пересылки сообщения кандидату")
		}
	}
	return nil
}

func (i impl) ListMessages(applicationID string) ([]applicationapimodels.MessageView, error) {
	rec, err := i.appStore.GetByID(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	recs, err := i.msgStore.ListByApplication(applicationID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения переписки")
	}
	list := make([]applicationapimodels.MessageView, 0, len(recs))
	for _, msg := range recs {
		list = append(list, applicationapimodels.ConvertMessage(msg))
	}
	return list, nil
}

// DeleteMessage скрывает сообщение из переписки, строка остается в БД
func (i impl) DeleteMessage(applicationID, messageID string, actor Actor) error {
	rec, err := i.appStore.GetByID(applicationID)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return ErrNotFound
	}
	if err = i.msgStore.MarkDeleted(messageID); err != nil {
		return errors.Wrap(err, "ошибка удаления сообщения")
	}
	_, err = i.logStore.Create(dbmodels.ApplicationLog{
		ApplicationID: applicationID,
		ActorID:       actor.ID,
		ActorName:     actor.Name,
		ActionType:    dbmodels.HistoryTypeMsgDeleted,
		TransitionID:  uuid.NewString(),
		Changes: dbmodels.ApplicationChange{
			Description: "Сообщение скрыто из переписки",
		},
	})
	if err != nil {
		log.WithError(err).WithField("application_id", applicationID).Error("ошибка записи журнала удаления сообщения")
	}
	return nil
}

// BindChannel привязывает канал чат-платформы, созданный бот-сервисом
func (i impl) BindChannel(id, channelID string) error {
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return ErrNotFound
	}
	return i.appStore.Update(id, map[string]interface{}{"channel_id": channelID})
}

func (i impl) applyStatus(ctx context.Context, rec dbmodels.Application, req applicationapimodels.SetStatusRequest, actor Actor) (applicationapimodels.TransitionResult, error) {
	oldStatus := rec.Status
	newStatus := req.Status
	transitionID := uuid.NewString()
	updMap := map[string]interface{}{
		"status": newStatus,
	}
	change := dbmodels.ApplicationChange{
		Description: fmt.Sprintf("Статус изменен: %v -> %v", oldStatus.Label(), newStatus.Label()),
		OldStatus:   oldStatus,
		NewStatus:   newStatus,
	}
	interviewDate := req.GetInterviewDate()
	if interviewDate != nil {
		updMap["interview_date"] = *interviewDate
		change.InterviewDate = req.InterviewDate
		rec.InterviewDate = interviewDate
	}
	var closedAt *time.Time
	if newStatus.IsTerminal() {
		now := time.Now()
		closedAt = &now
		updMap["closed_at"] = now
	}
	logRec := dbmodels.ApplicationLog{
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ActionType:   dbmodels.HistoryTypeStatusChange,
		TransitionID: transitionID,
		Changes:      change,
	}
	if err := i.appStore.UpdateWithLog(rec.ID, updMap, logRec); err != nil {
		return applicationapimodels.TransitionResult{}, errors.Wrap(err, "ошибка смены статуса")
	}
	rec.Status = newStatus
	rec.ClosedAt = closedAt

	result := applicationapimodels.TransitionResult{
		ApplicationID: rec.ID,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
	}
	if newStatus.IsTerminal() {
		result.DocumentsPurged = i.purgeAttachments(ctx, rec.ID)
	}
	result.NotifySent = i.notifyStatus(ctx, rec, oldStatus, actor.Name)
	i.publish(wsmodels.EventApplicationUpdated, rec.ID,
		fmt.Sprintf("Кандидатура %v: %v", rec.GetFIO(), newStatus.Label()))
	return result, nil
}

func (i impl) applyClose(ctx context.Context, rec dbmodels.Application, req applicationapimodels.CloseRequest, actor Actor) (applicationapimodels.TransitionResult, error) {
	oldStatus := rec.Status
	now := time.Now()
	transitionID := uuid.NewString()
	updMap := map[string]interface{}{
		"status":    req.Decision,
		"closed_at": now,
	}
	if req.Reason != "" {
		updMap["close_reason"] = req.Reason
	}
	logRec := dbmodels.ApplicationLog{
		ActorID:      actor.ID,
		ActorName:    actor.Name,
		ActionType:   dbmodels.HistoryTypeClosed,
		TransitionID: transitionID,
		Changes: dbmodels.ApplicationChange{
			Description: fmt.Sprintf("Кандидатура закрыта с решением: %v", req.Decision.Label()),
			OldStatus:   oldStatus,
			NewStatus:   req.Decision,
			CloseReason: req.Reason,
		},
	}
	if err := i.appStore.UpdateWithLog(rec.ID, updMap, logRec); err != nil {
		return applicationapimodels.TransitionResult{}, errors.Wrap(err, "ошибка закрытия кандидатуры")
	}
	rec.Status = req.Decision
	rec.ClosedAt = &now
	if req.Reason != "" {
		rec.CloseReason = &req.Reason
	}

	result := applicationapimodels.TransitionResult{
		ApplicationID: rec.ID,
		OldStatus:     oldStatus,
		NewStatus:     req.Decision,
	}
	result.DocumentsPurged = i.purgeAttachments(ctx, rec.ID)
	if i.notifier != nil {
		if err := i.notifier.NotifyClose(ctx, rec, req.Decision, req.Reason); err != nil {
			log.WithError(err).WithField("application_id", rec.ID).Error("ошибка уведомления о закрытии кандидатуры")
		} else {
			result.NotifySent = true
		}
	}
	i.sendDecisionEmail(rec, req.Decision, req.Reason)
	i.publish(wsmodels.EventApplicationUpdated, rec.ID,
		fmt.Sprintf("Кандидатура %v закрыта: %v", rec.GetFIO(), req.Decision.Label()))
	return result, nil
}

func (i impl) getOpen(id string) (*dbmodels.Application, error) {
	rec, err := i.appStore.GetByID(id)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.IsClosed() {
		return nil, ErrAlreadyClosed
	}
	return rec, nil
}

func (i impl) getOpenByChannel(channelID string) (*dbmodels.Application, error) {
	rec, err := i.appStore.GetByChannelID(channelID)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения кандидатуры")
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	if rec.IsClosed() {
		return nil, ErrAlreadyClosed
	}
	return rec, nil
}

func (i impl) notifyStatus(ctx context.Context, rec dbmodels.Application, oldStatus models.ApplicationStatus, actorName string) bool {
	if i.notifier == nil {
		return false
	}
	if err := i.notifier.NotifyStatus(ctx, rec, oldStatus, actorName); err != nil {
		log.WithError(err).WithField("application_id", rec.ID).Error("ошибка уведомления о смене статуса")
		return false
	}
	return true
}

// purgeAttachments зачищает вложения закрытой кандидатуры: документы
// (S3 и БД), голоса и сообщения. Возвращает число удаленных документов.
func (i impl) purgeAttachments(ctx context.Context, applicationID string) int {
	purged := 0
	if i.docs != nil {
		count, err := i.docs.Purge(ctx, applicationID)
		if err != nil {
			log.WithError(err).WithField("application_id", applicationID).Error("ошибка очистки документов")
		} else {
			purged = count
		}
	}
	if err := i.voteStore.DeleteByApplication(applicationID); err != nil {
		log.WithError(err).WithField("application_id", applicationID).Error("ошибка очистки голосов")
	}
	if err := i.msgStore.DeleteByApplication(applicationID); err != nil {
		log.WithError(err).WithField("application_id", applicationID).Error("ошибка очистки сообщений")
	}
	return purged
}

func (i impl) sendDecisionEmail(rec dbmodels.Application, decision models.ApplicationStatus, reason string) {
	if smtp.Instance == nil || rec.User == nil || rec.User.Email == "" {
		return
	}
	subject := fmt.Sprintf("Решение по кандидатуре (%v)", rec.Service)
	message := fmt.Sprintf("Здравствуйте, %v!\nПо вашей кандидатуре принято решение: %v.", rec.GetFIO(), decision.Label())
	if reason != "" {
		message += "\nПричина: " + reason
	}
	if err := smtp.Instance.SendEMail(config.Conf.Smtp.User, rec.User.Email, message, subject); err != nil {
		log.WithError(err).WithField("application_id", rec.ID).Error("ошибка отправки письма с решением")
	}
}

func (i impl) publish(code, applicationID, msg string) {
	if i.publisher == nil {
		return
	}
	i.publisher(code, applicationID, msg)
}
