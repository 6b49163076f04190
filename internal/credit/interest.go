package credit

import (
	"github.com/shopspring/decimal"
)

const (
	// SecondsPerYear uses a flat 365-day year, matching the on-chain
	// program's accrual math (not calendar-accurate).
	SecondsPerYear = 31_536_000

	// DefaultGracePeriodSeconds is the interval after borrowing during
	// which no interest accrues (30 days).
	DefaultGracePeriodSeconds = 2_592_000

	bpsDivisor = 10_000
)

// AccruedInterest estimates simple interest on a principal at a given time.
// Nothing accrues through the grace period; after it ends, interest grows
// linearly at annualRateBps.
//
// This is a display estimate only. The authoritative figure is whatever the
// on-chain program reports; callers prefer the ledger's value when available.
func AccruedInterest(principal decimal.Decimal, annualRateBps int64, borrowedAt, now, graceSeconds int64) decimal.Decimal {
	graceEnd := borrowedAt + graceSeconds
	if now <= graceEnd {
		return decimal.Zero
	}
	elapsed := now - graceEnd

	// Single division at the end keeps exact inputs exact.
	numerator := principal.
		Mul(decimal.NewFromInt(annualRateBps)).
		Mul(decimal.NewFromInt(elapsed))
	return numerator.Div(decimal.NewFromInt(bpsDivisor * SecondsPerYear))
}
