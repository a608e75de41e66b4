package minio_storage

import (
	"context"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
)

// VideoStorage serves self-hosted lesson videos from one bucket. Objects are
// keyed by the lesson's external video ID; ingestion happens out-of-band.
type VideoStorage struct {
	storage      *MinioStorage
	bucket       string
	presignedTTL time.Duration
}

func NewVideoStorage(storage *MinioStorage, bucketName string, presignedTTL time.Duration) (*VideoStorage, error) {
	exists, err := storage.client.BucketExists(context.Background(), bucketName)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err = storage.client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, err
		}
	}
	return &VideoStorage{storage: storage, bucket: bucketName, presignedTTL: presignedTTL}, nil
}

func (s *VideoStorage) PresignedVideoURL(ctx context.Context, objectKey string) (string, error) {
	reqParams := make(url.Values)
	signed, err := s.storage.client.PresignedGetObject(
		ctx,
		s.bucket,
		objectKey,
		s.presignedTTL,
		reqParams,
	)
	if err != nil {
		return "", err
	}
	return signed.String(), nil
}
