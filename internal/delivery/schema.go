package delivery

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

const orderSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["order_id", "amount", "item"],
	"properties": {
		"order_id": {"type": "string", "minLength": 1},
		"amount":   {"type": "number", "minimum": 0},
		"item":     {"type": "string"}
	}
}`

// OrderValidator проверяет сырое событие до декодирования в ports.Order
type OrderValidator struct {
	schema *jsonschema.Schema
}

func NewOrderValidator() (*OrderValidator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("order.json", strings.NewReader(orderSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("order.json")
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &OrderValidator{schema: schema}, nil
}

func (v *OrderValidator) Validate(data []byte) error {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("unmarshal order: %w", err)
	}
	if err := v.schema.Validate(doc); err != nil {
		return fmt.Errorf("order does not match schema: %w", err)
	}
	return nil
}
