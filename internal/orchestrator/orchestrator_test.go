package orchestrator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"creditline-client-go/internal/chain"
	"creditline-client-go/internal/credit"
	"creditline-client-go/internal/journal"
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/txbuild"

	"github.com/shopspring/decimal"
)

var testDeployment = models.Deployment{
	ModuleAddress:  "0xc0ffee",
	PoolAddress:    "0xp001",
	StableMetadata: "0x5tab1e",
	StableCoinType: "0x1::stable_coin::StableCoin",
}

// fakeViewer answers view calls by function-name suffix.
type fakeViewer struct {
	mu        sync.Mutex
	responses map[string][]interface{}
}

func (f *fakeViewer) View(_ context.Context, function string, _, _ []string) ([]interface{}, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for suffix, out := range f.responses {
		if strings.HasSuffix(function, suffix) {
			return out, nil
		}
	}
	return nil, chain.ErrResourceNotFound
}

type fakeSubmitter struct {
	mu       sync.Mutex
	payloads []models.TransactionPayload
	err      error
	block    chan struct{} // if set, Submit waits on it
}

func (f *fakeSubmitter) Submit(_ context.Context, payload models.TransactionPayload) (*models.SubmitResult, error) {
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payloads = append(f.payloads, payload)
	if f.err != nil {
		return nil, f.err
	}
	return &models.SubmitResult{TxRef: "0xfeed"}, nil
}

func (f *fakeSubmitter) submitted() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.payloads)
}

type fakeRecorder struct {
	mu      sync.Mutex
	records []journal.OperationRecord
}

func (f *fakeRecorder) RecordOperation(_ context.Context, rec journal.OperationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records = append(f.records, rec)
	return nil
}

// viewerWith builds a fake chain state: balance (base units) plus an
// optional active position.
func viewerWith(balanceUnits string, position map[string]interface{}) *fakeViewer {
	responses := map[string][]interface{}{
		"primary_fungible_store::balance": {balanceUnits},
	}
	for name, value := range position {
		responses[name] = []interface{}{value}
	}
	return &fakeViewer{responses: responses}
}

func activeState(balanceUnits, collateral, principal, interest string) *fakeViewer {
	return viewerWith(balanceUnits, map[string]interface{}{
		"is_active":            true,
		"get_collateral":       collateral,
		"get_credit_limit":     collateral,
		"get_borrowed_amount":  principal,
		"get_accrued_interest": interest,
		"get_total_repaid":     "0",
		"get_due_date":         "0",
	})
}

func newOrchestrator(viewer *fakeViewer, submitter *fakeSubmitter, rec Recorder) *Orchestrator {
	reader := credit.NewReader(viewer, testDeployment)
	builder := txbuild.NewBuilder(testDeployment)
	return New(reader, submitter, builder, rec, decimal.NewFromInt(1))
}

func TestStakeMinimumSucceeds(t *testing.T) {
	submitter := &fakeSubmitter{}
	recorder := &fakeRecorder{}
	// Balance 500, no credit line yet.
	o := newOrchestrator(viewerWith("500000000", nil), submitter, recorder)

	result := o.Stake(context.Background(), "0xabc", decimal.NewFromInt(1))
	if !result.Success || result.State != StateSettled {
		t.Fatalf("stake failed: %+v", result)
	}
	if result.TxRef != "0xfeed" {
		t.Errorf("tx ref = %s", result.TxRef)
	}
	if submitter.submitted() != 1 {
		t.Fatalf("expected 1 submission, got %d", submitter.submitted())
	}
	payload := submitter.payloads[0]
	if payload.Function != "0xc0ffee::credit_manager::open_credit_line" {
		t.Errorf("function = %s", payload.Function)
	}
	if payload.Arguments[1] != "1000000" {
		t.Errorf("base-unit argument = %s, want 1000000", payload.Arguments[1])
	}
	if len(recorder.records) != 1 || recorder.records[0].Kind != OpStake {
		t.Errorf("journal records = %+v", recorder.records)
	}
	// Post-settlement refresh ran: the probe found no line, so the
	// position is a zeroed snapshot rather than nil.
	if result.Position == nil {
		t.Error("expected refreshed position in result")
	}
}

func TestStakeValidationFailures(t *testing.T) {
	tests := []struct {
		name     string
		amount   string
		category chain.FailureCategory
	}{
		{"zero", "0", chain.FailureInvalidAmount},
		{"negative", "-3", chain.FailureInvalidAmount},
		{"below minimum", "0.5", chain.FailureInvalidAmount},
		{"over balance", "501", chain.FailureInsufficientBalance},
	}
	for _, tt := range tests {
		submitter := &fakeSubmitter{}
		o := newOrchestrator(viewerWith("500000000", nil), submitter, nil)

		amount, _ := decimal.NewFromString(tt.amount)
		result := o.Stake(context.Background(), "0xabc", amount)
		if result.Success || result.State != StateFailed {
			t.Errorf("%s: expected failure, got %+v", tt.name, result)
		}
		if result.Category != tt.category {
			t.Errorf("%s: category = %s, want %s", tt.name, result.Category, tt.category)
		}
		if submitter.submitted() != 0 {
			t.Errorf("%s: validation failure must not reach the signer", tt.name)
		}
	}
}

func TestWithdrawAtZeroDebt(t *testing.T) {
	submitter := &fakeSubmitter{}
	// Debt fully repaid: collateral 250, principal 0, interest 0.
	o := newOrchestrator(activeState("500000000", "250000000", "0", "0"), submitter, nil)

	result := o.Withdraw(context.Background(), "0xabc", decimal.NewFromInt(250))
	if !result.Success {
		t.Fatalf("withdraw of full collateral should pass: %+v", result)
	}

	over, _ := decimal.NewFromString("250.01")
	result = o.Withdraw(context.Background(), "0xabc", over)
	if result.Success || result.Category != chain.FailureInvalidAmount {
		t.Errorf("withdraw over collateral must fail with invalid amount: %+v", result)
	}
	if submitter.submitted() != 1 {
		t.Errorf("rejected withdraw must not submit, got %d submissions", submitter.submitted())
	}
}

func TestWithdrawLockedWhileDebtOutstanding(t *testing.T) {
	submitter := &fakeSubmitter{}
	// Any positive debt locks all collateral.
	o := newOrchestrator(activeState("500000000", "250000000", "100000000", "0"), submitter, nil)

	for _, amount := range []int64{1, 100, 250} {
		result := o.Withdraw(context.Background(), "0xabc", decimal.NewFromInt(amount))
		if result.Success || result.Category != chain.FailureInvalidAmount {
			t.Errorf("withdraw %d with debt outstanding must fail: %+v", amount, result)
		}
	}
	if submitter.submitted() != 0 {
		t.Errorf("no withdraw should reach the signer, got %d", submitter.submitted())
	}
}

func TestBorrowAgainstAvailableCredit(t *testing.T) {
	submitter := &fakeSubmitter{}
	// Limit 250, debt 120 -> available 130.
	o := newOrchestrator(activeState("500000000", "250000000", "100000000", "20000000"), submitter, nil)

	result := o.Borrow(context.Background(), "0xabc", decimal.NewFromInt(130))
	if !result.Success {
		t.Fatalf("borrow within availability should pass: %+v", result)
	}

	result = o.Borrow(context.Background(), "0xabc", decimal.NewFromInt(131))
	if result.Success || result.Category != chain.FailureCreditLimitExceeded {
		t.Errorf("borrow over availability must fail with limit exceeded: %+v", result)
	}
}

func TestBorrowRequiresActiveLine(t *testing.T) {
	o := newOrchestrator(viewerWith("500000000", nil), &fakeSubmitter{}, nil)

	result := o.Borrow(context.Background(), "0xabc", decimal.NewFromInt(10))
	if result.Success || result.Category != chain.FailureInvalidAmount {
		t.Errorf("borrow without a credit line must fail: %+v", result)
	}
}

func TestRepayCustomInterestFirst(t *testing.T) {
	submitter := &fakeSubmitter{}
	// Principal 100, interest 20.
	o := newOrchestrator(activeState("500000000", "250000000", "100000000", "20000000"), submitter, nil)

	result := o.RepayCustom(context.Background(), "0xabc", decimal.NewFromInt(50))
	if !result.Success {
		t.Fatalf("repay failed: %+v", result)
	}
	if result.Allocation == nil {
		t.Fatal("expected advisory allocation in result")
	}
	if !result.Allocation.InterestPortion.Equal(decimal.NewFromInt(20)) ||
		!result.Allocation.PrincipalPortion.Equal(decimal.NewFromInt(30)) {
		t.Errorf("allocation = %+v, want interest 20 / principal 30", result.Allocation)
	}
	// Payload carries the total, not the split.
	if submitter.payloads[0].Arguments[1] != "50000000" {
		t.Errorf("repay argument = %s, want 50000000", submitter.payloads[0].Arguments[1])
	}
}

func TestRepayCustomRejectsOverDebt(t *testing.T) {
	submitter := &fakeSubmitter{}
	o := newOrchestrator(activeState("500000000", "250000000", "100000000", "20000000"), submitter, nil)

	result := o.RepayCustom(context.Background(), "0xabc", decimal.NewFromInt(121))
	if result.Success || result.Category != chain.FailureInvalidAmount {
		t.Errorf("repay over debt must fail: %+v", result)
	}
	if submitter.submitted() != 0 {
		t.Error("rejected repay must not submit")
	}
}

func TestRepayFullClearsDebt(t *testing.T) {
	submitter := &fakeSubmitter{}
	o := newOrchestrator(activeState("500000000", "250000000", "100000000", "20000000"), submitter, nil)

	result := o.RepayFull(context.Background(), "0xabc")
	if !result.Success {
		t.Fatalf("repay full failed: %+v", result)
	}
	if submitter.payloads[0].Arguments[1] != "120000000" {
		t.Errorf("repay argument = %s, want 120000000", submitter.payloads[0].Arguments[1])
	}
}

func TestRepayFullNothingToRepay(t *testing.T) {
	o := newOrchestrator(activeState("500000000", "250000000", "0", "0"), &fakeSubmitter{}, nil)

	result := o.RepayFull(context.Background(), "0xabc")
	if result.Success || result.Category != chain.FailureInvalidAmount {
		t.Errorf("expected nothing-to-repay rejection: %+v", result)
	}
}

func TestSignerRejectionIsClassified(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("Move abort: EINSUFFICIENT_BALANCE(0x10001)")}
	o := newOrchestrator(viewerWith("500000000", nil), submitter, nil)

	result := o.Stake(context.Background(), "0xabc", decimal.NewFromInt(5))
	if result.Success {
		t.Fatal("expected failure")
	}
	if result.Category != chain.FailureInsufficientBalance {
		t.Errorf("category = %s, want insufficient balance", result.Category)
	}
	if result.Message == "" {
		t.Error("expected a user-facing message")
	}
}

func TestSecondOperationWhileBusyIsRejected(t *testing.T) {
	submitter := &fakeSubmitter{block: make(chan struct{})}
	o := newOrchestrator(viewerWith("500000000", nil), submitter, nil)

	done := make(chan *Result, 1)
	go func() {
		done <- o.Stake(context.Background(), "0xabc", decimal.NewFromInt(5))
	}()

	// Wait for the first operation to reach the signer.
	deadline := time.After(2 * time.Second)
	for !o.Busy() {
		select {
		case <-deadline:
			t.Fatal("first operation never started")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	second := o.AddCollateral(context.Background(), "0xabc", decimal.NewFromInt(5))
	if second.Success || second.Message != chain.ErrBusy.Error() {
		t.Errorf("second operation must be rejected while busy: %+v", second)
	}

	close(submitter.block)
	first := <-done
	if !first.Success {
		t.Errorf("first operation should settle: %+v", first)
	}
}
