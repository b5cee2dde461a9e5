package s3client

import (
	"bytes"
	"context"

	"github.com/minio/minio-go/v7"
	"recruit-tools-backend/config"
)

// BlobStore - операции с объектами в бакете документов
type BlobStore struct{}

func NewBlobStore() *BlobStore {
	return &BlobStore{}
}

func (s *BlobStore) Put(ctx context.Context, objectName string, data []byte) error {
	_, err := Client.PutObject(ctx, config.Conf.S3.BucketName, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/octet-stream"})
	return err
}

func (s *BlobStore) Get(ctx context.Context, objectName string) ([]byte, error) {
	object, err := Client.GetObject(ctx, config.Conf.S3.BucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer object.Close()
	buf := new(bytes.Buffer)
	if _, err = buf.ReadFrom(object); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *BlobStore) Remove(ctx context.Context, objectName string) error {
	return Client.RemoveObject(ctx, config.Conf.S3.BucketName, objectName, minio.RemoveObjectOptions{})
}
