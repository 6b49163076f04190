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

package activity

import (
	"strings"
	"time"

	"creditline-client-go/internal/models"
	"creditline-client-go/internal/units"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Allow-listed event type suffixes and the feed kind each maps to.
// Unrecognized event kinds are dropped.
var eventKinds = []struct {
	suffix string
	kind   string
}{
	{"::CreditLineOpenedEvent", models.ActivityCreditOpened},
	{"::CollateralAddedEvent", models.ActivityStake},
	{"::CollateralWithdrawnEvent", models.ActivityCollateralWithdrawn},
	{"::BorrowedEvent", models.ActivityBorrow},
	{"::PaymentMadeEvent", models.ActivityPayment},
	{"::RepaidEvent", models.ActivityRepay},
}

// Reconcile maps an address's raw transaction log into the normalized
// activity feed. Failed transactions are discarded, as are events whose
// borrower field does not match the queried address (shared-event noise).
// Accumulation stops as soon as limit records are collected; source
// ordering (newest first) is preserved.
func Reconcile(txs []models.RawTransaction, address string, limit int, now time.Time) []models.ActivityRecord {
	if limit <= 0 {
		limit = 20
	}

	records := make([]models.ActivityRecord, 0, limit)
	for _, tx := range txs {
		if len(records) >= limit {
			break
		}
		if !tx.Success {
			continue
		}

		occurredAt := relativeLabel(tx.TimestampMicros, now)
		for _, event := range tx.Events {
			if len(records) >= limit {
				break
			}

			kind, ok := classifyEvent(event.Type)
			if !ok {
				continue
			}
			if borrower, ok := event.Data["borrower"].(string); ok && !strings.EqualFold(borrower, address) {
				continue
			}

			amount, err := eventAmount(kind, event.Data)
			if err != nil {
				zap.L().Debug("Skipping event with unreadable amount",
					zap.String("type", event.Type),
					zap.Error(err))
				continue
			}

			records = append(records, models.ActivityRecord{
				Kind:       kind,
				Amount:     amount,
				OccurredAt: occurredAt,
				Status:     "confirmed",
				Reference:  tx.Hash,
			})
		}
	}
	return records
}

func classifyEvent(eventType string) (string, bool) {
	for _, ek := range eventKinds {
		if strings.HasSuffix(eventType, ek.suffix) {
			return ek.kind, true
		}
	}
	return "", false
}

// eventAmount extracts the display amount for an event. Repay events carry
// the split; the feed shows their sum. Credit-opened events record the
// staked collateral rather than a generic amount.
func eventAmount(kind string, data map[string]interface{}) (decimal.Decimal, error) {
	switch kind {
	case models.ActivityRepay:
		principal, err := units.FromRaw(data["principal_amount"])
		if err != nil {
			return decimal.Zero, err
		}
		interest, err := units.FromRaw(data["interest_amount"])
		if err != nil {
			return decimal.Zero, err
		}
		return principal.Add(interest), nil
	case models.ActivityCreditOpened:
		return units.FromRaw(data["collateral_amount"])
	default:
		return units.FromRaw(data["amount"])
	}
}
