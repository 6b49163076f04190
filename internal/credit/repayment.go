package credit

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Validation errors surfaced by the repayment allocator.
var (
	ErrInvalidAmount       = errors.New("repayment amount must be positive")
	ErrExceedsDebt         = errors.New("repayment amount exceeds outstanding debt")
	ErrInsufficientBalance = errors.New("repayment amount exceeds available balance")
)

// Allocation is the client-side split of a repayment between accrued
// interest and principal. Advisory only: the payload carries the total and
// the on-chain program applies its own allocation; the post-transaction
// refresh is the source of truth.
type Allocation struct {
	InterestPortion  decimal.Decimal
	PrincipalPortion decimal.Decimal
}

// Total is the full amount the allocation covers.
func (a Allocation) Total() decimal.Decimal {
	return a.InterestPortion.Add(a.PrincipalPortion)
}

// AllocateFull clears the entire debt exactly as reported.
func AllocateFull(principal, interest decimal.Decimal) Allocation {
	return Allocation{InterestPortion: interest, PrincipalPortion: principal}
}

// AllocateCustom splits a user-chosen amount interest-first: interest keeps
// accruing on outstanding principal, so retiring interest before principal
// minimizes the borrower's time-weighted cost.
func AllocateCustom(amount, principal, interest, available decimal.Decimal) (Allocation, error) {
	if !amount.IsPositive() {
		return Allocation{}, ErrInvalidAmount
	}
	if amount.GreaterThan(principal.Add(interest)) {
		return Allocation{}, ErrExceedsDebt
	}
	if amount.GreaterThan(available) {
		return Allocation{}, ErrInsufficientBalance
	}

	interestPortion := decimal.Min(amount, interest)
	return Allocation{
		InterestPortion:  interestPortion,
		PrincipalPortion: amount.Sub(interestPortion),
	}, nil
}
