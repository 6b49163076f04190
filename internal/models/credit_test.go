package models

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	v, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestCreditPositionDerivedFields(t *testing.T) {
	tests := []struct {
		name          string
		collateral    string
		limit         string
		principal     string
		interest      string
		wantDebt      string
		wantAvailable string
		wantWithdraw  string
	}{
		{"no debt", "250", "250", "0", "0", "0", "250", "250"},
		{"partial debt", "250", "250", "100", "20", "120", "130", "0"},
		{"interest only", "250", "250", "0", "0.5", "0.5", "249.5", "0"},
		{"debt over limit", "100", "100", "100", "25", "125", "0", "0"},
		{"empty", "0", "0", "0", "0", "0", "0", "0"},
	}
	for _, tt := range tests {
		p := &CreditPosition{
			Collateral:        dec(tt.collateral),
			CreditLimit:       dec(tt.limit),
			BorrowedPrincipal: dec(tt.principal),
			InterestAccrued:   dec(tt.interest),
		}
		if !p.CurrentDebt().Equal(dec(tt.wantDebt)) {
			t.Errorf("%s: debt = %s, want %s", tt.name, p.CurrentDebt(), tt.wantDebt)
		}
		if !p.AvailableCredit().Equal(dec(tt.wantAvailable)) {
			t.Errorf("%s: available = %s, want %s", tt.name, p.AvailableCredit(), tt.wantAvailable)
		}
		if !p.CanWithdrawCollateral().Equal(dec(tt.wantWithdraw)) {
			t.Errorf("%s: withdrawable = %s, want %s", tt.name, p.CanWithdrawCollateral(), tt.wantWithdraw)
		}
	}
}

func TestTierNames(t *testing.T) {
	tests := []struct {
		tier int64
		want string
	}{
		{0, "Bronze"}, {1, "Silver"}, {2, "Gold"}, {3, "Platinum"},
		{99, "Bronze"}, // out-of-range tiers read as the base tier
	}
	for _, tt := range tests {
		r := &ReputationSnapshot{Tier: tt.tier}
		if got := r.TierName(); got != tt.want {
			t.Errorf("TierName(%d) = %s, want %s", tt.tier, got, tt.want)
		}
	}
}

func TestPotentialIncrease(t *testing.T) {
	e := &CreditIncreaseEligibility{Eligible: true, NewLimit: dec("300")}
	if got := e.PotentialIncrease(dec("250")); !got.Equal(dec("50")) {
		t.Errorf("potential increase = %s, want 50", got)
	}

	ineligible := &CreditIncreaseEligibility{Eligible: false, NewLimit: dec("300")}
	if got := ineligible.PotentialIncrease(dec("250")); !got.IsZero() {
		t.Errorf("ineligible increase = %s, want 0", got)
	}

	lower := &CreditIncreaseEligibility{Eligible: true, NewLimit: dec("200")}
	if got := lower.PotentialIncrease(dec("250")); !got.IsZero() {
		t.Errorf("negative increase must clamp to 0, got %s", got)
	}
}
