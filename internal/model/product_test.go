package model

import (
	"encoding/json"
	"testing"
)

func TestStockLevelThresholds(t *testing.T) {
	cases := []struct {
		quantity int
		want     string
	}{
		{0, StockOut},
		{1, StockLow},
		{10, StockLow},
		{11, StockIn},
		{500, StockIn},
		{-3, StockOut},
	}

	for _, tc := range cases {
		if got := StockLevel(tc.quantity); got != tc.want {
			t.Fatalf("StockLevel(%d) = %q, want %q", tc.quantity, got, tc.want)
		}
	}
}

func TestDecimalAcceptsStringAndNumber(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{`{"price": "19.9900"}`, "19.9900"},
		{`{"price": 19.99}`, "19.99"},
		{`{"price": null}`, ""},
		{`{}`, ""},
	}

	for _, tc := range cases {
		var p Product
		if err := json.Unmarshal([]byte(tc.raw), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.raw, err)
		}
		if p.Price.String() != tc.want {
			t.Fatalf("price from %s = %q, want %q", tc.raw, p.Price, tc.want)
		}
	}
}

func TestProductInputValidate(t *testing.T) {
	valid := ProductInput{Name: "Widget", SKU: "W-1", Price: 9.5, Quantity: 3}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	cases := []ProductInput{
		{SKU: "W-1"},
		{Name: "Widget"},
		{Name: "Widget", SKU: "W-1", Price: -0.01},
		{Name: "Widget", SKU: "W-1", Quantity: -1},
	}
	for i, in := range cases {
		if err := in.Validate(); err == nil {
			t.Fatalf("case %d: expected validation error for %+v", i, in)
		}
	}
}

func TestProductInputSerializesNullDescription(t *testing.T) {
	data, err := json.Marshal(ProductInput{Name: "Widget", SKU: "W-1"})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(data, &payload); err != nil {
		t.Fatalf("roundtrip: %v", err)
	}
	raw, ok := payload["description"]
	if !ok {
		t.Fatal("expected description key to be present")
	}
	if string(raw) != "null" {
		t.Fatalf("expected description null, got %s", raw)
	}
}
