package infra

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Vovarama1992/receipt_uploader/internal/config"
	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStore — S3-совместимое хранилище по явному endpoint
type minioStore struct {
	client *minio.Client
}

func NewMinioStore(cfg config.S3) (ports.ObjectStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("S3_ENDPOINT is not set")
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to init S3 client: %w", err)
	}

	return &minioStore{client: client}, nil
}

// PutObject — ни content-type, ни метаданных не выставляем
func (s *minioStore) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, bucket, key, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}
