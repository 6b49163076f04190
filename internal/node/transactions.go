package node

import (
	"context"
	"fmt"
	"net/url"

	"creditline-client-go/internal/models"
)

// AccountTransactions fetches an address's transaction log, newest first.
// The node caps page size; callers that need fewer results truncate after
// reconciliation, not here.
func (s *Service) AccountTransactions(ctx context.Context, address string, limit int) ([]models.RawTransaction, error) {
	if limit <= 0 {
		limit = 25
	}

	endpoint := fmt.Sprintf("%s/v1/accounts/%s/transactions?limit=%d",
		s.baseURL, url.PathEscape(address), limit)

	var txs []models.RawTransaction
	if err := s.getJSON(ctx, endpoint, &txs); err != nil {
		return nil, fmt.Errorf("account transactions for %s: %w", address, err)
	}
	return txs, nil
}
