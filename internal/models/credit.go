/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package models

import (
	"github.com/shopspring/decimal"
)

// CreditPosition is a point-in-time snapshot of a user's credit line as
// reported by the on-chain program. Derived values (debt, availability,
// withdrawable collateral) are always computed locally from the raw fields,
// never read back from the chain, so the arithmetic stays consistent even if
// the program exposes them separately.
type CreditPosition struct {
	Collateral        decimal.Decimal `json:"collateral"`
	CreditLimit       decimal.Decimal `json:"credit_limit"`
	BorrowedPrincipal decimal.Decimal `json:"borrowed_principal"`
	InterestAccrued   decimal.Decimal `json:"interest_accrued"`
	TotalRepaid       decimal.Decimal `json:"total_repaid"`
	RepaymentDueDate  int64           `json:"repayment_due_date"` // unix seconds, 0 = unset
	IsActive          bool            `json:"is_active"`
}

// CurrentDebt is outstanding principal plus accrued interest.
func (p *CreditPosition) CurrentDebt() decimal.Decimal {
	return p.BorrowedPrincipal.Add(p.InterestAccrued)
}

// AvailableCredit is the remaining borrowable amount, floored at zero.
func (p *CreditPosition) AvailableCredit() decimal.Decimal {
	avail := p.CreditLimit.Sub(p.CurrentDebt())
	if avail.IsNegative() {
		return decimal.Zero
	}
	return avail
}

// CanWithdrawCollateral is the collateral amount the user may withdraw.
// Collateral is locked in full until the debt is fully repaid.
func (p *CreditPosition) CanWithdrawCollateral() decimal.Decimal {
	if p.CurrentDebt().IsPositive() {
		return decimal.Zero
	}
	return p.Collateral
}

// ReputationSnapshot is the externally maintained repayment reputation.
type ReputationSnapshot struct {
	Score            int64 `json:"score"` // nominal range 0-1000
	Tier             int64 `json:"tier"`  // ordinal 0-3
	OnTimeRepayments int64 `json:"on_time_repayments"`
	LateRepayments   int64 `json:"late_repayments"`
	TotalRepayments  int64 `json:"total_repayments"`
}

// TierName maps the ordinal tier to its display name.
func (r *ReputationSnapshot) TierName() string {
	switch r.Tier {
	case 1:
		return "Silver"
	case 2:
		return "Gold"
	case 3:
		return "Platinum"
	default:
		return "Bronze"
	}
}

// CreditIncreaseEligibility reports whether the program would grant a higher
// limit. Display-only; never applied automatically.
type CreditIncreaseEligibility struct {
	Eligible bool            `json:"eligible"`
	NewLimit decimal.Decimal `json:"new_limit"`
}

// PotentialIncrease is the additional limit on offer over the current one.
func (e *CreditIncreaseEligibility) PotentialIncrease(currentLimit decimal.Decimal) decimal.Decimal {
	if !e.Eligible {
		return decimal.Zero
	}
	inc := e.NewLimit.Sub(currentLimit)
	if inc.IsNegative() {
		return decimal.Zero
	}
	return inc
}
