package infra

import (
	"bytes"
	"context"
	"fmt"

	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3PutAPI — то, что awsStore использует от *s3.Client
type S3PutAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type awsStore struct {
	client S3PutAPI
}

func NewAWSStoreFromClient(client S3PutAPI) ports.ObjectStore {
	return &awsStore{client: client}
}

// NewAWSStore — креды и регион берутся из окружения рантайма
func NewAWSStore(ctx context.Context, region string) (ports.ObjectStore, error) {
	var opts []func(*awsconfig.LoadOptions) error
	if region != "" {
		opts = append(opts, awsconfig.WithRegion(region))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	return NewAWSStoreFromClient(s3.NewFromConfig(cfg)), nil
}

func (s *awsStore) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(body),
	})
	if err != nil {
		return fmt.Errorf("put %s/%s: %w", bucket, key, err)
	}
	return nil
}
