package domain

import (
	"errors"
	"fmt"
)

var (
	ErrBucketNotConfigured = errors.New("RECEIPT_BUCKET environment variable is not set")
	ErrInvalidOrder        = errors.New("invalid order")
)

// UploadError — ошибка единственного PutObject, оборачивает причину
type UploadError struct {
	Bucket string
	Key    string
	Err    error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("failed to upload receipt to S3: %v", e.Err)
}

func (e *UploadError) Unwrap() error {
	return e.Err
}
