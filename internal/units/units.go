package units

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// The on-chain program stores all amounts as integers scaled by 10^6.
const Decimals = 6

var scale = decimal.New(1, Decimals) // 10^6

// ToBaseUnits converts a human-unit amount to its base-unit decimal string.
// Truncates toward zero, so sub-microunit precision is dropped on the way in.
// No guard against negative input -- callers validate positivity first.
func ToBaseUnits(amount decimal.Decimal) string {
	return amount.Mul(scale).Truncate(0).String()
}

// FromBaseUnits converts a base-unit integer string back to a human-unit
// amount. Exact division, no rounding.
func FromBaseUnits(units string) (decimal.Decimal, error) {
	n, err := decimal.NewFromString(units)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid base-unit value %q: %w", units, err)
	}
	return n.Div(scale), nil
}

// FromRaw normalizes a decoded JSON value into a human-unit amount. Node
// responses carry on-chain integers as decimal strings or numbers
// interchangeably; everything funnels through here so large balances never
// pass through a float64.
func FromRaw(v interface{}) (decimal.Decimal, error) {
	switch t := v.(type) {
	case string:
		return FromBaseUnits(t)
	case json.Number:
		return FromBaseUnits(t.String())
	case float64:
		return FromBaseUnits(strconv.FormatFloat(t, 'f', -1, 64))
	case int64:
		return FromBaseUnits(strconv.FormatInt(t, 10))
	case nil:
		return decimal.Zero, fmt.Errorf("missing base-unit value")
	default:
		return decimal.Zero, fmt.Errorf("unsupported base-unit type %T", v)
	}
}

// RawUint64 normalizes a decoded JSON value into a plain uint64 (timestamps,
// counters, scores -- anything that is not a monetary amount).
func RawUint64(v interface{}) (uint64, error) {
	switch t := v.(type) {
	case string:
		return strconv.ParseUint(t, 10, 64)
	case json.Number:
		return strconv.ParseUint(t.String(), 10, 64)
	case float64:
		return uint64(t), nil
	default:
		return 0, fmt.Errorf("unsupported integer type %T", v)
	}
}
