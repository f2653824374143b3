package normalizer

import (
	"testing"

	"BazarPulse/internal/model"
)

func TestCleanPrice(t *testing.T) {
	tests := []struct {
		name string
		raw  interface{}
		want float64
		ok   bool
	}{
		{"currency and unit", "৳ 35.50/kg", 35.5, true},
		{"plain string", "42", 42, true},
		{"decimal string", "19.99", 19.99, true},
		{"thousands separator", "1,250", 1250, true},
		{"json number", float64(27.5), 27.5, true},
		{"integer", 30, 30, true},
		{"letters only", "abc", 0, false},
		{"negative", "-5", 0, false},
		{"negative with symbol", "৳ -12/kg", 0, false},
		{"zero", "0", 0, false},
		{"zero float", float64(0), 0, false},
		{"empty", "", 0, false},
		{"nil", nil, 0, false},
		{"two decimal points", "1.2.3", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CleanPrice(tt.raw)
			if ok != tt.ok {
				t.Fatalf("CleanPrice(%v): expected ok=%v, got %v", tt.raw, tt.ok, ok)
			}
			if ok && got != tt.want {
				t.Errorf("CleanPrice(%v): expected %v, got %v", tt.raw, tt.want, got)
			}
		})
	}
}

func TestNormalize_Valid(t *testing.T) {
	pt, ok := Normalize(model.PriceEntry{Date: "2024-05-01", Price: "৳ 35.50/kg"})
	if !ok {
		t.Fatal("expected valid point")
	}
	if pt.Price != 35.5 {
		t.Errorf("expected price 35.5, got %v", pt.Price)
	}
	if pt.Date.Year() != 2024 || pt.Date.Day() != 1 {
		t.Errorf("unexpected date: %v", pt.Date)
	}
}

func TestNormalize_Rejected(t *testing.T) {
	tests := []struct {
		name  string
		entry model.PriceEntry
	}{
		{"bad date", model.PriceEntry{Date: "yesterday-ish", Price: "10"}},
		{"empty date", model.PriceEntry{Date: "", Price: "10"}},
		{"bad price", model.PriceEntry{Date: "2024-05-01", Price: "free"}},
		{"negative price", model.PriceEntry{Date: "2024-05-01", Price: "-5"}},
		{"zero price", model.PriceEntry{Date: "2024-05-01", Price: "0"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Normalize(tt.entry); ok {
				t.Errorf("expected rejection for %+v", tt.entry)
			}
		})
	}
}
