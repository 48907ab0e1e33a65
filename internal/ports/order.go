package ports

// Order — входные данные одного вызова, живут только в рамках запроса.
// Amount — JSON number, как его отдаёт триггер.
type Order struct {
	OrderID string  `json:"order_id"`
	Amount  float64 `json:"amount"`
	Item    string  `json:"item"`
}
