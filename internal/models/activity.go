package models

import (
	"github.com/shopspring/decimal"
)

// Activity kinds surfaced in the feed.
const (
	ActivityBorrow              = "borrow"
	ActivityPayment             = "payment"
	ActivityRepay               = "repay"
	ActivityStake               = "stake"
	ActivityCollateralWithdrawn = "collateral_withdrawn"
	ActivityCreditOpened        = "credit_opened"
)

// ActivityRecord is one normalized, human-readable entry of the activity
// feed. Derived per call from the raw event log; never persisted.
type ActivityRecord struct {
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	OccurredAt string          `json:"occurred_at"` // relative or absolute label
	Status     string          `json:"status"`
	Reference  string          `json:"reference,omitempty"` // transaction hash
}
