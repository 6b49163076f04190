package node

import (
	"context"
	"fmt"

	"creditline-client-go/internal/models"

	"go.uber.org/zap"
)

// Submit forwards a built payload to the signing bridge, which holds the
// user's key, signs the entry-function call, and waits for on-chain
// execution. The call suspends until the bridge resolves or rejects; there
// is no timeout here beyond the HTTP client's and whatever ctx carries,
// since the bridge may be waiting on wallet/user interaction.
func (s *Service) Submit(ctx context.Context, payload models.TransactionPayload) (*models.SubmitResult, error) {
	zap.L().Info("Submitting transaction to signing bridge",
		zap.String("function", payload.Function),
		zap.Strings("arguments", payload.Arguments))

	var result models.SubmitResult
	if err := s.postJSON(ctx, s.signerURL+"/v1/transactions", payload, &result); err != nil {
		return nil, fmt.Errorf("submit %s: %w", payload.Function, err)
	}
	if result.TxRef == "" {
		return nil, fmt.Errorf("submit %s: signing bridge returned no transaction reference", payload.Function)
	}

	zap.L().Info("Transaction executed",
		zap.String("function", payload.Function),
		zap.String("tx_ref", result.TxRef))
	return &result, nil
}
