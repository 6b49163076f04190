package chain

import (
	"context"
	"errors"

	"creditline-client-go/internal/models"
)

// Sentinel errors shared across all client implementations.
var (
	// ErrResourceNotFound signals the distinguished "resource/function not
	// found" condition: the credit program (or the user's credit line) has
	// never been initialized. Readers treat it as "no credit line yet",
	// not as a failure.
	ErrResourceNotFound = errors.New("resource not found")

	// ErrBusy signals that another state-changing operation is in flight
	// for this session. Operations are never queued.
	ErrBusy = errors.New("another operation is in progress")
)

// Viewer evaluates read-only queries against deployed program state.
type Viewer interface {
	View(ctx context.Context, function string, typeArgs, args []string) ([]interface{}, error)
}

// Submitter executes a signed state-changing call with all-or-nothing
// semantics. The call suspends until the external signer resolves or
// rejects; callers layer timeouts through ctx if they need one.
type Submitter interface {
	Submit(ctx context.Context, payload models.TransactionPayload) (*models.SubmitResult, error)
}

// EventSource returns an address's transaction log, newest first.
type EventSource interface {
	AccountTransactions(ctx context.Context, address string, limit int) ([]models.RawTransaction, error)
}

// Client is the full capability surface of the external ledger.
type Client interface {
	Viewer
	Submitter
	EventSource
}
