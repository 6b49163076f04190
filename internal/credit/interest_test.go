package credit

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestAccruedInterestZeroDuringGrace(t *testing.T) {
	principal := decimal.NewFromInt(1000)
	borrowedAt := int64(1_700_000_000)

	queryTimes := []int64{
		borrowedAt,
		borrowedAt + 1,
		borrowedAt + DefaultGracePeriodSeconds/2,
		borrowedAt + DefaultGracePeriodSeconds, // boundary: still zero
	}
	for _, now := range queryTimes {
		got := AccruedInterest(principal, 1500, borrowedAt, now, DefaultGracePeriodSeconds)
		if !got.IsZero() {
			t.Errorf("expected zero interest at t=%d, got %s", now, got.String())
		}
	}
}

func TestAccruedInterestLinearAfterGrace(t *testing.T) {
	principal := decimal.NewFromInt(1000)
	borrowedAt := int64(1_700_000_000)
	graceEnd := borrowedAt + DefaultGracePeriodSeconds

	oneDay := AccruedInterest(principal, 1500, borrowedAt, graceEnd+86_400, DefaultGracePeriodSeconds)
	if !oneDay.IsPositive() {
		t.Fatalf("expected positive interest one day after grace, got %s", oneDay.String())
	}

	twoDays := AccruedInterest(principal, 1500, borrowedAt, graceEnd+2*86_400, DefaultGracePeriodSeconds)
	drift := twoDays.Sub(oneDay.Mul(decimal.NewFromInt(2))).Abs()
	if drift.GreaterThan(d("0.000000000001")) {
		t.Errorf("accrual not linear: 1d=%s 2d=%s", oneDay.String(), twoDays.String())
	}

	// 15% APR on 1000 over a full year = 150.
	oneYear := AccruedInterest(principal, 1500, borrowedAt, graceEnd+SecondsPerYear, DefaultGracePeriodSeconds)
	if !oneYear.Equal(decimal.NewFromInt(150)) {
		t.Errorf("expected 150 after a full year, got %s", oneYear.String())
	}
}

func TestAccruedInterestZeroRate(t *testing.T) {
	principal := decimal.NewFromInt(1000)
	got := AccruedInterest(principal, 0, 0, SecondsPerYear, 0)
	if !got.IsZero() {
		t.Errorf("expected zero interest at 0 bps, got %s", got.String())
	}
}
