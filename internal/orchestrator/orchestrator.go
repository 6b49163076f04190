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

package orchestrator

import (
	"context"
	"errors"
	"sync"

	"creditline-client-go/internal/chain"
	"creditline-client-go/internal/credit"
	"creditline-client-go/internal/journal"
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/txbuild"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Operation identifiers.
const (
	OpStake         = "stake"
	OpAddCollateral = "add"
	OpWithdraw      = "withdraw"
	OpBorrow        = "borrow"
	OpRepay         = "repay"
)

// Operation states. Every operation moves
// idle -> validating -> submitting -> settled | failed;
// validation failures jump straight to failed without a network call.
const (
	StateIdle       = "idle"
	StateValidating = "validating"
	StateSubmitting = "submitting"
	StateSettled    = "settled"
	StateFailed     = "failed"
)

// Result is what an operation reports back to the UI layer. Anticipated
// failures land here with Success=false; errors never escape past this
// boundary.
type Result struct {
	Success    bool                   `json:"success"`
	State      string                 `json:"state"`
	Operation  string                 `json:"operation"`
	Category   chain.FailureCategory  `json:"category,omitempty"`
	Message    string                 `json:"message,omitempty"`
	TxRef      string                 `json:"tx_ref,omitempty"`
	Position   *models.CreditPosition `json:"position,omitempty"`
	Allocation *credit.Allocation     `json:"allocation,omitempty"` // repay only, advisory
}

// Recorder is the journal surface the orchestrator needs.
type Recorder interface {
	RecordOperation(ctx context.Context, rec journal.OperationRecord) error
}

// Orchestrator validates, submits, and settles state-changing operations.
// A busy flag serializes them: at most one operation is in flight per
// session, and a second attempt is rejected, never queued.
type Orchestrator struct {
	mu   sync.Mutex
	busy bool

	reader    *credit.Reader
	submitter chain.Submitter
	builder   *txbuild.Builder
	journal   Recorder // optional
	minStake  decimal.Decimal
}

func New(reader *credit.Reader, submitter chain.Submitter, builder *txbuild.Builder, rec Recorder, minStake decimal.Decimal) *Orchestrator {
	if minStake.LessThanOrEqual(decimal.Zero) {
		minStake = decimal.NewFromInt(1)
	}
	return &Orchestrator{
		reader:    reader,
		submitter: submitter,
		builder:   builder,
		journal:   rec,
		minStake:  minStake,
	}
}

// Busy reports whether an operation is currently in flight.
func (o *Orchestrator) Busy() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.busy
}

func (o *Orchestrator) begin() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.busy {
		return false
	}
	o.busy = true
	return true
}

func (o *Orchestrator) end() {
	o.mu.Lock()
	o.busy = false
	o.mu.Unlock()
}

func busyResult(op string) *Result {
	return &Result{
		Success:   false,
		State:     StateFailed,
		Operation: op,
		Category:  chain.FailureUnknown,
		Message:   chain.ErrBusy.Error(),
	}
}

func rejected(op string, category chain.FailureCategory, message string) *Result {
	if message == "" {
		message = category.UserMessage()
	}
	zap.L().Info("Operation rejected by client-side validation",
		zap.String("operation", op),
		zap.String("category", string(category)),
		zap.String("reason", message))
	return &Result{
		Success:   false,
		State:     StateFailed,
		Operation: op,
		Category:  category,
		Message:   message,
	}
}

// Stake opens a credit line with an initial collateral stake.
func (o *Orchestrator) Stake(ctx context.Context, address string, amount decimal.Decimal) *Result {
	if !o.begin() {
		return busyResult(OpStake)
	}
	defer o.end()

	if !amount.IsPositive() {
		return rejected(OpStake, chain.FailureInvalidAmount, "")
	}
	if amount.LessThan(o.minStake) {
		return rejected(OpStake, chain.FailureInvalidAmount,
			"Minimum stake is "+o.minStake.String())
	}
	balance, err := o.reader.StableBalance(ctx, address)
	if err != nil {
		return o.fetchFailed(OpStake, err)
	}
	if amount.GreaterThan(balance) {
		return rejected(OpStake, chain.FailureInsufficientBalance, "")
	}

	return o.submit(ctx, OpStake, address, amount, o.builder.OpenCreditLine(amount), nil)
}

// AddCollateral stakes more collateral against an existing line.
func (o *Orchestrator) AddCollateral(ctx context.Context, address string, amount decimal.Decimal) *Result {
	if !o.begin() {
		return busyResult(OpAddCollateral)
	}
	defer o.end()

	if !amount.IsPositive() {
		return rejected(OpAddCollateral, chain.FailureInvalidAmount, "")
	}
	balance, err := o.reader.StableBalance(ctx, address)
	if err != nil {
		return o.fetchFailed(OpAddCollateral, err)
	}
	if amount.GreaterThan(balance) {
		return rejected(OpAddCollateral, chain.FailureInsufficientBalance, "")
	}

	return o.submit(ctx, OpAddCollateral, address, amount, o.builder.AddCollateral(amount), nil)
}

// Withdraw releases collateral. Collateral is locked in full until the debt
// is fully repaid, so the withdrawable amount is zero at any positive debt.
func (o *Orchestrator) Withdraw(ctx context.Context, address string, amount decimal.Decimal) *Result {
	if !o.begin() {
		return busyResult(OpWithdraw)
	}
	defer o.end()

	if !amount.IsPositive() {
		return rejected(OpWithdraw, chain.FailureInvalidAmount, "")
	}
	position, err := o.reader.Position(ctx, address)
	if err != nil {
		return o.fetchFailed(OpWithdraw, err)
	}
	withdrawable := position.CanWithdrawCollateral()
	if amount.GreaterThan(withdrawable) {
		if withdrawable.IsZero() {
			return rejected(OpWithdraw, chain.FailureInvalidAmount,
				"Collateral is locked until the debt is fully repaid")
		}
		return rejected(OpWithdraw, chain.FailureInvalidAmount,
			"Withdrawable collateral is "+withdrawable.String())
	}

	return o.submit(ctx, OpWithdraw, address, amount, o.builder.WithdrawCollateral(amount), nil)
}

// Borrow draws against the credit line.
func (o *Orchestrator) Borrow(ctx context.Context, address string, amount decimal.Decimal) *Result {
	if !o.begin() {
		return busyResult(OpBorrow)
	}
	defer o.end()

	if !amount.IsPositive() {
		return rejected(OpBorrow, chain.FailureInvalidAmount, "")
	}
	position, err := o.reader.Position(ctx, address)
	if err != nil {
		return o.fetchFailed(OpBorrow, err)
	}
	if !position.IsActive {
		return rejected(OpBorrow, chain.FailureInvalidAmount, "No active credit line")
	}
	if amount.GreaterThan(position.AvailableCredit()) {
		return rejected(OpBorrow, chain.FailureCreditLimitExceeded, "")
	}

	return o.submit(ctx, OpBorrow, address, amount, o.builder.Borrow(amount), nil)
}

// RepayFull clears the entire reported debt.
func (o *Orchestrator) RepayFull(ctx context.Context, address string) *Result {
	if !o.begin() {
		return busyResult(OpRepay)
	}
	defer o.end()

	position, err := o.reader.Position(ctx, address)
	if err != nil {
		return o.fetchFailed(OpRepay, err)
	}
	alloc := credit.AllocateFull(position.BorrowedPrincipal, position.InterestAccrued)
	total := alloc.Total()
	if !total.IsPositive() {
		return rejected(OpRepay, chain.FailureInvalidAmount, "Nothing to repay")
	}
	balance, err := o.reader.StableBalance(ctx, address)
	if err != nil {
		return o.fetchFailed(OpRepay, err)
	}
	if total.GreaterThan(balance) {
		return rejected(OpRepay, chain.FailureInsufficientBalance, "")
	}

	return o.submit(ctx, OpRepay, address, total, o.builder.Repay(total), &alloc)
}

// RepayCustom pays down a user-chosen amount, split interest-first. The
// split is advisory; the program applies its own allocation on-chain.
func (o *Orchestrator) RepayCustom(ctx context.Context, address string, amount decimal.Decimal) *Result {
	if !o.begin() {
		return busyResult(OpRepay)
	}
	defer o.end()

	position, err := o.reader.Position(ctx, address)
	if err != nil {
		return o.fetchFailed(OpRepay, err)
	}
	balance, err := o.reader.StableBalance(ctx, address)
	if err != nil {
		return o.fetchFailed(OpRepay, err)
	}

	alloc, err := credit.AllocateCustom(amount, position.BorrowedPrincipal, position.InterestAccrued, balance)
	if err != nil {
		switch {
		case errors.Is(err, credit.ErrInsufficientBalance):
			return rejected(OpRepay, chain.FailureInsufficientBalance, "")
		case errors.Is(err, credit.ErrExceedsDebt):
			return rejected(OpRepay, chain.FailureInvalidAmount,
				"Amount exceeds outstanding debt of "+position.CurrentDebt().String())
		default:
			return rejected(OpRepay, chain.FailureInvalidAmount, "")
		}
	}

	return o.submit(ctx, OpRepay, address, amount, o.builder.Repay(amount), &alloc)
}

// fetchFailed reports a transient read failure during validation. Nothing
// was submitted; the user can retry.
func (o *Orchestrator) fetchFailed(op string, err error) *Result {
	zap.L().Error("State fetch failed during validation",
		zap.String("operation", op),
		zap.Error(err))
	return &Result{
		Success:   false,
		State:     StateFailed,
		Operation: op,
		Category:  chain.FailureUnknown,
		Message:   "Unable to fetch current state - please try again",
	}
}

// submit hands the built payload to the external signer and settles the
// operation. On success the position is re-fetched wholesale before the
// result is reported; on rejection the raw error is classified and state is
// left untouched for a retry.
func (o *Orchestrator) submit(ctx context.Context, op, address string, amount decimal.Decimal, payload models.TransactionPayload, alloc *credit.Allocation) *Result {
	zap.L().Info("Submitting operation",
		zap.String("operation", op),
		zap.String("address", address),
		zap.String("amount", amount.String()),
		zap.String("function", payload.Function))

	submitted, err := o.submitter.Submit(ctx, payload)
	if err != nil {
		category := chain.Classify(err)
		zap.L().Error("Operation rejected by signer",
			zap.String("operation", op),
			zap.String("category", string(category)),
			zap.Error(err))
		return &Result{
			Success:    false,
			State:      StateFailed,
			Operation:  op,
			Category:   category,
			Message:    category.UserMessage(),
			Allocation: alloc,
		}
	}

	if o.journal != nil {
		err := o.journal.RecordOperation(ctx, journal.OperationRecord{
			Kind:    op,
			Address: address,
			Amount:  amount,
			TxRef:   submitted.TxRef,
			Status:  StateSettled,
		})
		if err != nil {
			// Journal is a local convenience; the chain already settled.
			zap.L().Warn("Failed to journal settled operation",
				zap.String("operation", op),
				zap.String("tx_ref", submitted.TxRef),
				zap.Error(err))
		}
	}

	position, err := o.reader.Position(ctx, address)
	if err != nil {
		zap.L().Warn("Post-settlement refresh failed",
			zap.String("operation", op),
			zap.String("tx_ref", submitted.TxRef),
			zap.Error(err))
		position = nil
	}

	zap.L().Info("Operation settled",
		zap.String("operation", op),
		zap.String("address", address),
		zap.String("amount", amount.String()),
		zap.String("tx_ref", submitted.TxRef))

	return &Result{
		Success:    true,
		State:      StateSettled,
		Operation:  op,
		TxRef:      submitted.TxRef,
		Position:   position,
		Allocation: alloc,
	}
}
