package chain

import (
	"strings"
)

// FailureCategory is the fixed taxonomy every signer/ledger failure is
// mapped into before it reaches the user.
type FailureCategory string

const (
	FailureInsufficientBalance    FailureCategory = "insufficient_balance"
	FailureDuplicateCreditLine    FailureCategory = "duplicate_credit_line"
	FailureInsufficientCollateral FailureCategory = "insufficient_collateral"
	FailureUnauthorized           FailureCategory = "unauthorized"
	FailureInvalidAmount          FailureCategory = "invalid_amount"
	FailureInsufficientLiquidity  FailureCategory = "insufficient_liquidity"
	FailureCreditLimitExceeded    FailureCategory = "credit_limit_exceeded"
	FailureUnknown                FailureCategory = "unknown"
)

// Machine-checkable code substrings carried by signer rejections.
var categoryCodes = []struct {
	code     string
	category FailureCategory
}{
	{"EINSUFFICIENT_BALANCE", FailureInsufficientBalance},
	{"CREDIT_LINE_EXISTS", FailureDuplicateCreditLine},
	{"INSUFFICIENT_COLLATERAL", FailureInsufficientCollateral},
	{"NOT_AUTHORIZED", FailureUnauthorized},
	{"INVALID_AMOUNT", FailureInvalidAmount},
	{"INSUFFICIENT_LIQUIDITY", FailureInsufficientLiquidity},
	{"EXCEEDS_CREDIT_LIMIT", FailureCreditLimitExceeded},
}

// Classify maps a raw signer/ledger error onto the failure taxonomy.
func Classify(err error) FailureCategory {
	if err == nil {
		return FailureUnknown
	}
	msg := err.Error()
	for _, c := range categoryCodes {
		if strings.Contains(msg, c.code) {
			return c.category
		}
	}
	return FailureUnknown
}

// UserMessage is the user-facing text for a failure category.
func (c FailureCategory) UserMessage() string {
	switch c {
	case FailureInsufficientBalance:
		return "Insufficient balance for this transaction"
	case FailureDuplicateCreditLine:
		return "A credit line already exists for this account"
	case FailureInsufficientCollateral:
		return "Collateral is below the required amount"
	case FailureUnauthorized:
		return "Not authorized - please try again"
	case FailureInvalidAmount:
		return "Please enter a valid amount"
	case FailureInsufficientLiquidity:
		return "Pool cannot cover this amount - please reduce it"
	case FailureCreditLimitExceeded:
		return "Amount exceeds your credit limit"
	default:
		return "Transaction failed - please try again"
	}
}
