package units

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestToBaseUnits(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"1", "1000000"},
		{"0", "0"},
		{"250.5", "250500000"},
		{"0.000001", "1"},
		{"0.0000019", "1"},   // 7th digit truncated, not rounded
		{"1234.567890", "1234567890"},
		{"-2.5", "-2500000"}, // no guard: callers validate positivity
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.amount)
		if err != nil {
			t.Fatalf("bad test amount %q: %v", tt.amount, err)
		}
		if got := ToBaseUnits(d); got != tt.want {
			t.Errorf("ToBaseUnits(%s) = %q, want %q", tt.amount, got, tt.want)
		}
	}
}

func TestFromBaseUnits(t *testing.T) {
	got, err := FromBaseUnits("1000000")
	if err != nil {
		t.Fatalf("FromBaseUnits failed: %v", err)
	}
	if !got.Equal(decimal.NewFromInt(1)) {
		t.Errorf("expected 1, got %s", got.String())
	}

	if _, err := FromBaseUnits("not-a-number"); err == nil {
		t.Error("expected error for malformed input")
	}
}

// Amounts with at most six fractional digits survive the round trip exactly.
func TestRoundTripExact(t *testing.T) {
	amounts := []string{"0", "1", "0.000001", "123.456789", "999999.999999", "250.5"}
	for _, a := range amounts {
		d, _ := decimal.NewFromString(a)
		back, err := FromBaseUnits(ToBaseUnits(d))
		if err != nil {
			t.Fatalf("round trip of %s failed: %v", a, err)
		}
		if !back.Equal(d) {
			t.Errorf("round trip of %s = %s", a, back.String())
		}
	}
}

func TestRoundTripTruncates(t *testing.T) {
	d, _ := decimal.NewFromString("1.0000019")
	back, err := FromBaseUnits(ToBaseUnits(d))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	want, _ := decimal.NewFromString("1.000001")
	if !back.Equal(want) {
		t.Errorf("expected truncation to %s, got %s", want.String(), back.String())
	}
}

func TestFromRaw(t *testing.T) {
	tests := []struct {
		name  string
		in    interface{}
		want  string
		isErr bool
	}{
		{"string", "2500000", "2.5", false},
		{"json number", json.Number("1000000"), "1", false},
		{"float", float64(500000), "0.5", false},
		{"int64", int64(1), "0.000001", false},
		{"nil", nil, "", true},
		{"bool", true, "", true},
	}
	for _, tt := range tests {
		got, err := FromRaw(tt.in)
		if tt.isErr {
			if err == nil {
				t.Errorf("%s: expected error", tt.name)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tt.name, err)
			continue
		}
		want, _ := decimal.NewFromString(tt.want)
		if !got.Equal(want) {
			t.Errorf("%s: got %s, want %s", tt.name, got.String(), tt.want)
		}
	}
}

func TestRawUint64(t *testing.T) {
	if v, err := RawUint64("1755000000000000"); err != nil || v != 1755000000000000 {
		t.Errorf("RawUint64 string: got %d, %v", v, err)
	}
	if v, err := RawUint64(float64(750)); err != nil || v != 750 {
		t.Errorf("RawUint64 float: got %d, %v", v, err)
	}
	if _, err := RawUint64([]string{}); err == nil {
		t.Error("expected error for unsupported type")
	}
}
