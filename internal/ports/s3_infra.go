package ports

import "context"

// Низкоуровневый клиент к объектному хранилищу
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body []byte) error
}
