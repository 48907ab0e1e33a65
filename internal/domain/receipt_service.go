package domain

import (
	"context"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/receipt_uploader/internal/error_notificator"
	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/dustin/go-humanize"
)

const (
	Success     = "Success"
	serviceName = "receipt_uploader"
)

type receiptService struct {
	store    ports.ObjectStore
	bucket   ports.BucketResolver
	notifier error_notificator.Notificator
	log      *logger.ZapLogger
}

func NewReceiptService(
	store ports.ObjectStore,
	bucket ports.BucketResolver,
	n error_notificator.Notificator,
	log *logger.ZapLogger,
) ports.ReceiptService {
	return &receiptService{
		store:    store,
		bucket:   bucket,
		notifier: n,
		log:      log,
	}
}

func (s *receiptService) Process(ctx context.Context, order ports.Order) (string, error) {
	bucket := s.bucket()
	if bucket == "" {
		s.fail(ctx, ErrBucketNotConfigured, order)
		return "", ErrBucketNotConfigured
	}

	if err := validateOrder(order); err != nil {
		s.fail(ctx, err, order)
		return "", err
	}

	body := RenderReceipt(order)
	key := ReceiptKey(order.OrderID)

	if err := s.store.PutObject(ctx, bucket, key, []byte(body)); err != nil {
		uploadErr := &UploadError{Bucket: bucket, Key: key, Err: err}
		s.fail(ctx, uploadErr, order)
		s.notify(ctx, uploadErr, fmt.Sprintf("order=%s bucket=%s key=%s", order.OrderID, bucket, key))
		return "", uploadErr
	}

	s.log.Log(logger.LogEntry{
		Level: "info",
		Message: fmt.Sprintf(
			"%sSuccessfully processed order %s and stored receipt in S3 bucket %s (%s, %s)",
			logPrefix(ctx), order.OrderID, bucket, key, humanize.Bytes(uint64(len(body))),
		),
		Service: serviceName,
	})

	return Success, nil
}

func (s *receiptService) fail(ctx context.Context, err error, order ports.Order) {
	s.log.Log(logger.LogEntry{
		Level:   "error",
		Message: fmt.Sprintf("%sFailed to process order %q", logPrefix(ctx), order.OrderID),
		Error:   err,
		Service: serviceName,
	})
}

// уведомление best-effort: на результат Process не влияет
func (s *receiptService) notify(ctx context.Context, err error, details string) {
	if s.notifier == nil {
		return
	}
	if nErr := s.notifier.Notify(ctx, err, details); nErr != nil {
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: logPrefix(ctx) + "failure notification not delivered",
			Error:   nErr,
			Service: serviceName,
		})
	}
}

// logPrefix связывает строки лога одного вызова
func logPrefix(ctx context.Context) string {
	if id := ports.InvocationIDFromContext(ctx); id != "" {
		return "[" + id + "] "
	}
	return ""
}
