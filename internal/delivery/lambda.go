package delivery

import (
	"context"
	stdjson "encoding/json"
	"fmt"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

type LambdaHandler struct {
	receipts  ports.ReceiptService
	validator *OrderValidator
	log       *logger.ZapLogger
}

func NewLambdaHandler(receipts ports.ReceiptService, validator *OrderValidator, log *logger.ZapLogger) *LambdaHandler {
	return &LambdaHandler{
		receipts:  receipts,
		validator: validator,
		log:       log,
	}
}

// Handle — точка входа функции: событие {order_id, amount, item} -> "Success" | error.
// RawMessage из encoding/json, потому что событие декодирует рантайм aws-lambda-go.
func (h *LambdaHandler) Handle(ctx context.Context, event stdjson.RawMessage) (string, error) {
	invocationID := uuid.NewString()

	order, err := decodeOrder(h.validator, event)
	if err != nil {
		h.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: fmt.Sprintf("[%s] rejected event", invocationID),
			Error:   err,
			Service: serviceName,
		})
		return "", err
	}

	return h.receipts.Process(ports.WithInvocationID(ctx, invocationID), order)
}

func decodeOrder(v *OrderValidator, data []byte) (ports.Order, error) {
	if err := v.Validate(data); err != nil {
		return ports.Order{}, fmt.Errorf("%w: %v", ErrBadEvent, err)
	}

	var order ports.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return ports.Order{}, fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	return order, nil
}
