package domain

import (
	"fmt"
	"math"
	"math/big"

	"github.com/Vovarama1992/receipt_uploader/internal/ports"
	"github.com/shopspring/decimal"
)

const (
	receiptKeyPrefix = "receipts/"
	receiptKeySuffix = ".txt"

	// столько дробных цифр хватает для точной записи любого float64
	exactFloatDigits = 1074
)

// RenderReceipt — три строки без завершающего перевода строки
func RenderReceipt(order ports.Order) string {
	return fmt.Sprintf(
		"OrderID: %s\nAmount: $%s\nItem: %s",
		order.OrderID,
		FormatAmount(order.Amount),
		order.Item,
	)
}

// FormatAmount округляет точное двоичное значение до двух знаков, половина вверх.
// Так же, как Number.prototype.toFixed(2): 1.005 -> "1.00", 0.125 -> "0.13".
func FormatAmount(amount float64) string {
	exact := new(big.Float).SetFloat64(amount).Text('f', exactFloatDigits)
	return decimal.RequireFromString(exact).StringFixed(2)
}

// ReceiptKey — путь в бакете, повторный вызов с тем же id перезаписывает объект
func ReceiptKey(orderID string) string {
	return receiptKeyPrefix + orderID + receiptKeySuffix
}

func validateOrder(order ports.Order) error {
	if order.OrderID == "" {
		return fmt.Errorf("%w: order_id is required", ErrInvalidOrder)
	}
	if math.IsNaN(order.Amount) || math.IsInf(order.Amount, 0) {
		return fmt.Errorf("%w: amount must be a finite number", ErrInvalidOrder)
	}
	if order.Amount < 0 {
		return fmt.Errorf("%w: amount must not be negative, got %v", ErrInvalidOrder, order.Amount)
	}
	return nil
}
