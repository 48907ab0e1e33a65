package infra

import (
	"context"
	"sync"

	"github.com/Vovarama1992/receipt_uploader/internal/config"
	"github.com/Vovarama1992/receipt_uploader/internal/ports"
)

const BackendMinio = "minio"

// LazyStore строит клиент при первом PutObject и держит его весь процесс.
// Неудачная сборка не запоминается: следующий вызов пробует снова.
type LazyStore struct {
	build func(ctx context.Context) (ports.ObjectStore, error)

	mu    sync.Mutex
	store ports.ObjectStore
}

func NewLazyStore(build func(ctx context.Context) (ports.ObjectStore, error)) *LazyStore {
	return &LazyStore{build: build}
}

func (l *LazyStore) PutObject(ctx context.Context, bucket, key string, body []byte) error {
	store, err := l.get(ctx)
	if err != nil {
		return err
	}
	return store.PutObject(ctx, bucket, key, body)
}

func (l *LazyStore) get(ctx context.Context) (ports.ObjectStore, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.store != nil {
		return l.store, nil
	}

	store, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	l.store = store
	return store, nil
}

// NewObjectStore выбирает бэкенд: minio при S3_BACKEND=minio или заданном endpoint, иначе AWS SDK
func NewObjectStore(cfg config.S3) *LazyStore {
	return NewLazyStore(func(ctx context.Context) (ports.ObjectStore, error) {
		if cfg.Backend == BackendMinio || cfg.Endpoint != "" {
			return NewMinioStore(cfg)
		}
		// ctx первого вызова может отмениться, клиент же живёт весь процесс
		return NewAWSStore(context.WithoutCancel(ctx), cfg.Region)
	})
}
