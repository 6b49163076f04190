package node

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"creditline-client-go/internal/chain"
	"creditline-client-go/internal/models"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, func()) {
	srv := httptest.NewServer(handler)
	svc, err := NewService(models.NodeConfig{
		BaseURL:        srv.URL,
		SignerURL:      srv.URL,
		RequestTimeout: 5 * time.Second,
	})
	if err != nil {
		srv.Close()
		t.Fatalf("NewService failed: %v", err)
	}
	return svc, srv.Close
}

func TestNewServiceValidation(t *testing.T) {
	if _, err := NewService(models.NodeConfig{SignerURL: "http://x"}); err == nil {
		t.Error("expected error for missing BaseURL")
	}
	if _, err := NewService(models.NodeConfig{BaseURL: "http://x"}); err == nil {
		t.Error("expected error for missing SignerURL")
	}
}

func TestViewDecodesTuple(t *testing.T) {
	svc, cleanup := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/view" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`["250000000", true]`))
	}))
	defer cleanup()

	out, err := svc.View(context.Background(), "0x1::credit_manager::get_collateral", nil, []string{"0xabc"})
	if err != nil {
		t.Fatalf("View failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 values, got %d", len(out))
	}
	if n, ok := out[0].(json.Number); !ok || n.String() != "250000000" {
		t.Errorf("expected json.Number 250000000, got %T %v", out[0], out[0])
	}
	if b, ok := out[1].(bool); !ok || !b {
		t.Errorf("expected true, got %v", out[1])
	}
}

func TestViewNotFoundMapsToSentinel(t *testing.T) {
	svc, cleanup := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Resource not found by address","error_code":"resource_not_found"}`))
	}))
	defer cleanup()

	_, err := svc.View(context.Background(), "0x1::credit_manager::is_active", nil, []string{"0xabc"})
	if !errors.Is(err, chain.ErrResourceNotFound) {
		t.Errorf("expected ErrResourceNotFound, got %v", err)
	}
}

func TestViewGenericErrorIsNotSentinel(t *testing.T) {
	svc, cleanup := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"internal error","error_code":"internal_error"}`))
	}))
	defer cleanup()

	_, err := svc.View(context.Background(), "0x1::credit_manager::is_active", nil, []string{"0xabc"})
	if err == nil {
		t.Fatal("expected error")
	}
	if errors.Is(err, chain.ErrResourceNotFound) {
		t.Error("generic failure must not classify as not-found")
	}
}

func TestSubmitReturnsReference(t *testing.T) {
	svc, cleanup := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/transactions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"tx_ref":"0xdeadbeef"}`))
	}))
	defer cleanup()

	result, err := svc.Submit(context.Background(), models.TransactionPayload{
		Function:  "0x1::credit_manager::borrow",
		Arguments: []string{"1000000"},
	})
	if err != nil {
		t.Fatalf("Submit failed: %v", err)
	}
	if result.TxRef != "0xdeadbeef" {
		t.Errorf("expected 0xdeadbeef, got %s", result.TxRef)
	}
}

func TestSubmitRejectionCarriesAbortCode(t *testing.T) {
	svc, cleanup := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"Move abort EINSUFFICIENT_BALANCE","error_code":"vm_error"}`))
	}))
	defer cleanup()

	_, err := svc.Submit(context.Background(), models.TransactionPayload{
		Function:  "0x1::credit_manager::borrow",
		Arguments: []string{"1000000"},
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if chain.Classify(err) != chain.FailureInsufficientBalance {
		t.Errorf("expected insufficient balance classification, got %s", chain.Classify(err))
	}
}

func TestAccountTransactions(t *testing.T) {
	svc, cleanup := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/accounts/0xabc/transactions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "20" {
			t.Errorf("unexpected limit %s", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`[
			{"hash":"0x1","success":true,"timestamp":"1756000000000000","events":[
				{"type":"0x1::credit_manager::BorrowedEvent","data":{"borrower":"0xabc","amount":"5000000"}}
			]},
			{"hash":"0x2","success":false,"timestamp":"1755000000000000","events":[]}
		]`))
	}))
	defer cleanup()

	txs, err := svc.AccountTransactions(context.Background(), "0xabc", 20)
	if err != nil {
		t.Fatalf("AccountTransactions failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if !txs[0].Success || txs[1].Success {
		t.Error("success flags not decoded")
	}
	if len(txs[0].Events) != 1 || txs[0].Events[0].Type != "0x1::credit_manager::BorrowedEvent" {
		t.Error("events not decoded")
	}
}
