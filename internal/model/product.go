package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Decimal carries the API's price field, which arrives as a JSON string or a
// bare number depending on serializer version.
type Decimal string

func (d *Decimal) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*d = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*d = Decimal(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Decimal(n.String())
	return nil
}

func (d Decimal) String() string {
	return string(d)
}

func (d Decimal) Float() (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(string(d)), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

type Product struct {
	ID          int     `json:"id"`
	SKU         string  `json:"sku,omitempty"`
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Quantity    int     `json:"quantity"`
	Price       Decimal `json:"price,omitempty"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

// ProductInput is the create/update payload. Description is a pointer so an
// empty form field serializes as an explicit null.
type ProductInput struct {
	Name        string  `json:"name"`
	SKU         string  `json:"sku"`
	Description *string `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
}

func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if strings.TrimSpace(in.SKU) == "" {
		return errors.New("sku is required")
	}
	if in.Price < 0 {
		return fmt.Errorf("price must be >= 0, got %v", in.Price)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("quantity must be >= 0, got %d", in.Quantity)
	}
	return nil
}

const (
	StockIn  = "in_stock"
	StockLow = "low_stock"
	StockOut = "out_of_stock"
)

func StockLevel(quantity int) string {
	switch {
	case quantity > 10:
		return StockIn
	case quantity >= 1:
		return StockLow
	default:
		return StockOut
	}
}
