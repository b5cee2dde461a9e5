package document

import (
	"context"
	"fmt"
	"strings"

	"recruit-tools-backend/db"
	documentstore "recruit-tools-backend/lib/document/store"
	dbmodels "recruit-tools-backend/models/db"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// BlobClient - операции с файловым хранилищем документов
type BlobClient interface {
	Put(ctx context.Context, objectName string, data []byte) error
	Get(ctx context.Context, objectName string) ([]byte, error)
	Remove(ctx context.Context, objectName string) error
}

type Provider interface {
	Attach(ctx context.Context, applicationID, docType, fileName string, file []byte) (id string, err error)
	List(applicationID string) ([]dbmodels.ApplicationDocument, error)
	GetFile(ctx context.Context, doc dbmodels.ApplicationDocument) ([]byte, error)
	// Purge удаляет документы кандидатуры: объекты в S3 по возможности,
	// строки в БД безусловно. Возвращает число удаленных строк.
	Purge(ctx context.Context, applicationID string) (int, error)
}

var Instance Provider

func NewHandler(blobs BlobClient) {
	Instance = &impl{
		store: documentstore.NewInstance(db.DB),
		blobs: blobs,
	}
}

type impl struct {
	store documentstore.Provider
	blobs BlobClient
}

func (i impl) Attach(ctx context.Context, applicationID, docType, fileName string, file []byte) (id string, err error) {
	objectName := fmt.Sprintf("%v/%v_%v", applicationID, uuid.NewString(), fileName)
	err = i.blobs.Put(ctx, objectName, file)
	if err != nil {
		return "", errors.Wrap(err, "ошибка загрузки файла в хранилище")
	}
	id, err = i.store.Create(dbmodels.ApplicationDocument{
		ApplicationID: applicationID,
		DocType:       docType,
		FileName:      fileName,
		FileURL:       objectName,
	})
	if err != nil {
		return "", errors.Wrap(err, "ошибка сохранения документа")
	}
	return id, nil
}

func (i impl) List(applicationID string) ([]dbmodels.ApplicationDocument, error) {
	return i.store.ListByApplication(applicationID)
}

func (i impl) GetFile(ctx context.Context, doc dbmodels.ApplicationDocument) ([]byte, error) {
	file, err := i.blobs.Get(ctx, doc.FileURL)
	if err != nil {
		return nil, errors.Wrap(err, "ошибка получения файла из хранилища")
	}
	return file, nil
}

func (i impl) Purge(ctx context.Context, applicationID string) (int, error) {
	logger := log.WithField("application_id", applicationID)
	list, err := i.store.ListByApplication(applicationID)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения списка документов")
	}
	for _, doc := range list {
		objectName := strings.TrimPrefix(doc.FileURL, "/")
		err = i.blobs.Remove(ctx, objectName)
		if err != nil {
			// осиротевший объект допустим, удаление строк не прерываем
			logger.WithError(err).WithField("object", objectName).Warn("не удалось удалить файл из хранилища")
		}
	}
	deleted, err := i.store.DeleteByApplication(applicationID)
	if err != nil {
		return 0, errors.Wrap(err, "ошибка удаления документов")
	}
	return int(deleted), nil
}
