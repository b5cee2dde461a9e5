package document

import (
	"context"
	"testing"

	dbmodels "recruit-tools-backend/models/db"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

type fakeDocStore struct {
	list    []dbmodels.ApplicationDocument
	created *dbmodels.ApplicationDocument
	deleted bool
}

func (f *fakeDocStore) Create(rec dbmodels.ApplicationDocument) (string, error) {
	f.created = &rec
	return "doc-1", nil
}

func (f *fakeDocStore) ListByApplication(applicationID string) ([]dbmodels.ApplicationDocument, error) {
	return f.list, nil
}

func (f *fakeDocStore) DeleteByApplication(applicationID string) (int64, error) {
	f.deleted = true
	return int64(len(f.list)), nil
}

type fakeBlobClient struct {
	removeErr error
	removed   []string
	put       map[string][]byte
}

func (f *fakeBlobClient) Put(ctx context.Context, objectName string, data []byte) error {
	if f.put == nil {
		f.put = map[string][]byte{}
	}
	f.put[objectName] = data
	return nil
}

func (f *fakeBlobClient) Get(ctx context.Context, objectName string) ([]byte, error) {
	return f.put[objectName], nil
}

func (f *fakeBlobClient) Remove(ctx context.Context, objectName string) error {
	f.removed = append(f.removed, objectName)
	return f.removeErr
}

func TestPurge(t *testing.T) {
	docs := []dbmodels.ApplicationDocument{
		{ApplicationID: "app-1", FileName: "resume.pdf", FileURL: "app-1/a_resume.pdf"},
		{ApplicationID: "app-1", FileName: "passport.png", FileURL: "app-1/b_passport.png"},
	}

	t.Run(`removes blobs and rows`, func(t *testing.T) {
		store := &fakeDocStore{list: docs}
		blobs := &fakeBlobClient{}
		i := impl{store: store, blobs: blobs}
		count, err := i.Purge(context.TODO(), "app-1")
		require.Nil(t, err)
		require.Equal(t, 2, count)
		require.Equal(t, []string{"app-1/a_resume.pdf", "app-1/b_passport.png"}, blobs.removed)
		require.Equal(t, true, store.deleted)
	})

	t.Run(`rows are deleted even when the storage fails`, func(t *testing.T) {
		store := &fakeDocStore{list: docs}
		blobs := &fakeBlobClient{removeErr: errors.New("connection refused")}
		i := impl{store: store, blobs: blobs}
		count, err := i.Purge(context.TODO(), "app-1")
		require.Nil(t, err)
		require.Equal(t, 2, count)
		require.Equal(t, true, store.deleted)
	})
}

func TestAttach(t *testing.T) {
	t.Run(`stores the blob and the record`, func(t *testing.T) {
		store := &fakeDocStore{}
		blobs := &fakeBlobClient{}
		i := impl{store: store, blobs: blobs}
		id, err := i.Attach(context.TODO(), "app-1", "resume", "resume.pdf", []byte("data"))
		require.Nil(t, err)
		require.Equal(t, "doc-1", id)
		require.NotNil(t, store.created)
		require.Equal(t, "app-1", store.created.ApplicationID)
		require.Equal(t, 1, len(blobs.put))
	})
}
