package delivery

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/Vovarama1992/receipt_uploader/internal/domain"
	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

const maxOrderBody = 64 << 10

type ReceiptHandler struct {
	receipts  ports.ReceiptService
	validator *OrderValidator
	log       *logger.ZapLogger
}

func NewReceiptHandler(receipts ports.ReceiptService, validator *OrderValidator, log *logger.ZapLogger) *ReceiptHandler {
	return &ReceiptHandler{
		receipts:  receipts,
		validator: validator,
		log:       log,
	}
}

func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	invocationID := uuid.NewString()
	w.Header().Set("X-Invocation-ID", invocationID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxOrderBody))
	if err != nil {
		http.Error(w, "failed to read body: "+err.Error(), http.StatusBadRequest)
		return
	}

	order, err := decodeOrder(h.validator, body)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "warn", Message: fmt.Sprintf("[%s] invalid order", invocationID), Error: err, Service: serviceName})
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	ctx := ports.WithInvocationID(r.Context(), invocationID)
	result, err := h.receipts.Process(ctx, order)
	if err != nil {
		h.log.Log(logger.LogEntry{Level: "error", Message: fmt.Sprintf("[%s] receipt upload failed", invocationID), Error: err, Service: serviceName})
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{
		"result": result,
		"key":    domain.ReceiptKey(order.OrderID),
	})
}
