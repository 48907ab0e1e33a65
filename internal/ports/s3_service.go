package ports

import "context"

// BucketResolver возвращает имя бакета в момент вызова, пустая строка = не настроен
type BucketResolver func() string

type ReceiptService interface {
	Process(ctx context.Context, order Order) (string, error)
}
