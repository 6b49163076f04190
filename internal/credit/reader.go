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

package credit

import (
	"context"
	"errors"
	"fmt"

	"creditline-client-go/internal/chain"
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/units"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// View function names exposed by the credit program.
const (
	fnIsActive           = "credit_manager::is_active"
	fnGetCollateral      = "credit_manager::get_collateral"
	fnGetCreditLimit     = "credit_manager::get_credit_limit"
	fnGetBorrowedAmount  = "credit_manager::get_borrowed_amount"
	fnGetAccruedInterest = "credit_manager::get_accrued_interest"
	fnGetTotalRepaid     = "credit_manager::get_total_repaid"
	fnGetDueDate         = "credit_manager::get_due_date"
	fnGetReputation      = "reputation_manager::get_reputation"
	fnCheckIncrease      = "credit_manager::check_credit_increase_eligibility"
)

// Reader aggregates the program's read-only queries into coherent snapshots.
type Reader struct {
	viewer chain.Viewer
	dep    models.Deployment
}

func NewReader(viewer chain.Viewer, dep models.Deployment) *Reader {
	return &Reader{viewer: viewer, dep: dep}
}

func (r *Reader) fn(name string) string {
	return r.dep.ModuleAddress + "::" + name
}

// Position produces the user's credit snapshot by joining the independent
// view queries. The is_active probe doubles as the initialization check:
// a resource-not-found there means the credit program (or this user's
// credit line) was never initialized, which is an all-zero inactive
// position rather than a failure. Any other error makes the whole read
// fail so the caller never renders a half-fetched snapshot.
func (r *Reader) Position(ctx context.Context, address string) (*models.CreditPosition, error) {
	active, err := r.viewBool(ctx, fnIsActive, address)
	if err != nil {
		if errors.Is(err, chain.ErrResourceNotFound) {
			zap.L().Debug("Credit line not initialized",
				zap.String("address", address))
			return &models.CreditPosition{}, nil
		}
		return nil, fmt.Errorf("credit position probe: %w", err)
	}

	position := &models.CreditPosition{IsActive: active}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := r.viewAmount(gctx, fnGetCollateral, address)
		position.Collateral = v
		return err
	})
	g.Go(func() error {
		v, err := r.viewAmount(gctx, fnGetCreditLimit, address)
		position.CreditLimit = v
		return err
	})
	g.Go(func() error {
		v, err := r.viewAmount(gctx, fnGetBorrowedAmount, address)
		position.BorrowedPrincipal = v
		return err
	})
	g.Go(func() error {
		v, err := r.viewAmount(gctx, fnGetAccruedInterest, address)
		position.InterestAccrued = v
		return err
	})
	g.Go(func() error {
		v, err := r.viewAmount(gctx, fnGetTotalRepaid, address)
		position.TotalRepaid = v
		return err
	})
	g.Go(func() error {
		v, err := r.viewU64(gctx, fnGetDueDate, address)
		position.RepaymentDueDate = int64(v)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("credit position read: %w", err)
	}
	return position, nil
}

// Reputation fetches the externally maintained repayment reputation.
// Not-found degrades to a zeroed Bronze snapshot.
func (r *Reader) Reputation(ctx context.Context, address string) (*models.ReputationSnapshot, error) {
	out, err := r.viewer.View(ctx, r.fn(fnGetReputation), nil, []string{address})
	if err != nil {
		if errors.Is(err, chain.ErrResourceNotFound) {
			return &models.ReputationSnapshot{}, nil
		}
		return nil, fmt.Errorf("reputation read: %w", err)
	}
	if len(out) < 5 {
		return nil, fmt.Errorf("reputation read: expected 5 values, got %d", len(out))
	}

	fields := make([]int64, 5)
	for i := range fields {
		v, err := units.RawUint64(out[i])
		if err != nil {
			return nil, fmt.Errorf("reputation read: value %d: %w", i, err)
		}
		fields[i] = int64(v)
	}
	return &models.ReputationSnapshot{
		Score:            fields[0],
		Tier:             fields[1],
		OnTimeRepayments: fields[2],
		LateRepayments:   fields[3],
		TotalRepayments:  fields[4],
	}, nil
}

// IncreaseEligibility reports whether the program would grant a higher
// limit. Display-only; the orchestrator never applies it.
func (r *Reader) IncreaseEligibility(ctx context.Context, address string) (*models.CreditIncreaseEligibility, error) {
	out, err := r.viewer.View(ctx, r.fn(fnCheckIncrease), nil, []string{address})
	if err != nil {
		if errors.Is(err, chain.ErrResourceNotFound) {
			return &models.CreditIncreaseEligibility{}, nil
		}
		return nil, fmt.Errorf("eligibility read: %w", err)
	}
	if len(out) < 2 {
		return nil, fmt.Errorf("eligibility read: expected 2 values, got %d", len(out))
	}

	eligible, ok := out[0].(bool)
	if !ok {
		return nil, fmt.Errorf("eligibility read: expected bool, got %T", out[0])
	}
	newLimit, err := units.FromRaw(out[1])
	if err != nil {
		return nil, fmt.Errorf("eligibility read: %w", err)
	}
	return &models.CreditIncreaseEligibility{Eligible: eligible, NewLimit: newLimit}, nil
}

// ---------- view helpers ----------

// viewAmount reads a single base-unit amount. A not-found on an individual
// field reads as zero: the program exposes these lazily per account.
func (r *Reader) viewAmount(ctx context.Context, name, address string) (decimal.Decimal, error) {
	out, err := r.viewer.View(ctx, r.fn(name), nil, []string{address})
	if err != nil {
		if errors.Is(err, chain.ErrResourceNotFound) {
			return decimal.Zero, nil
		}
		return decimal.Zero, err
	}
	if len(out) == 0 {
		return decimal.Zero, fmt.Errorf("%s returned no values", name)
	}
	return units.FromRaw(out[0])
}

func (r *Reader) viewU64(ctx context.Context, name, address string) (uint64, error) {
	out, err := r.viewer.View(ctx, r.fn(name), nil, []string{address})
	if err != nil {
		if errors.Is(err, chain.ErrResourceNotFound) {
			return 0, nil
		}
		return 0, err
	}
	if len(out) == 0 {
		return 0, fmt.Errorf("%s returned no values", name)
	}
	return units.RawUint64(out[0])
}

func (r *Reader) viewBool(ctx context.Context, name, address string) (bool, error) {
	out, err := r.viewer.View(ctx, r.fn(name), nil, []string{address})
	if err != nil {
		return false, err
	}
	if len(out) == 0 {
		return false, fmt.Errorf("%s returned no values", name)
	}
	b, ok := out[0].(bool)
	if !ok {
		return false, fmt.Errorf("%s: expected bool, got %T", name, out[0])
	}
	return b, nil
}
