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

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"creditline-client-go/internal/activity"
	"creditline-client-go/internal/common"
	"creditline-client-go/internal/config"
	"creditline-client-go/internal/journal"
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/node"

	"go.uber.org/zap"
)

var kindLabels = map[string]string{
	models.ActivityCreditOpened:        "Credit Line Opened",
	models.ActivityStake:               "Collateral Added",
	models.ActivityCollateralWithdrawn: "Collateral Withdrawn",
	models.ActivityBorrow:              "Borrowed",
	models.ActivityPayment:             "Payment",
	models.ActivityRepay:               "Repaid",
}

func kindLabel(kind string) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return kind
}

func printActivity(records []models.ActivityRecord) {
	if len(records) == 0 {
		fmt.Println("\nNo activity found.")
		return
	}

	for i, rec := range records {
		isLast := i == len(records)-1
		fmt.Printf("%s %-22s %15s USDC   %-14s %s\n",
			common.BoxPrefix(isLast),
			kindLabel(rec.Kind),
			rec.Amount.String(),
			rec.OccurredAt,
			rec.Reference)
	}
}

func fetchAndPrint(ctx context.Context, svc *node.Service, address string, limit int) error {
	txs, err := svc.AccountTransactions(ctx, address, limit*2)
	if err != nil {
		return err
	}

	records := activity.Reconcile(txs, address, limit, time.Now())
	printActivity(records)
	return nil
}

// printLocalJournal shows what this client submitted, which may include
// operations the on-chain feed has not surfaced yet.
func printLocalJournal(ctx context.Context, journalService *journal.Service, address string, limit int) {
	entries, err := journalService.History(ctx, address, limit)
	if err != nil {
		zap.L().Warn("Local journal unavailable", zap.Error(err))
		return
	}
	if len(entries) == 0 {
		return
	}

	fmt.Printf("\n┌─ Local Journal (%d entries)\n", len(entries))
	for i, entry := range entries {
		isLast := i == len(entries)-1
		fmt.Printf("%s %-10s %15s USDC   %-10s %s   %s\n",
			common.BoxPrefix(isLast),
			entry.Kind,
			entry.Amount.String(),
			entry.Status,
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.TxRef)
	}
}

func main() {
	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	addressFlag := flag.String("address", "", "Borrower account address (required)")
	limitFlag := flag.Int("limit", 20, "Maximum number of activity records")
	watchFlag := flag.Bool("watch", false, "Keep polling for new activity")
	intervalFlag := flag.Duration("interval", 30*time.Second, "Polling interval when watching")
	flag.Parse()

	if *addressFlag == "" {
		zap.L().Fatal("Missing required flag: --address")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	svc, _, dep, err := common.InitializeReadOnly(cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	common.PrintHeader("ACTIVITY HISTORY", common.DefaultWidth)
	fmt.Printf("Address: %s\n", *addressFlag)
	fmt.Printf("Network: %s\n\n", dep.Network)

	if err := fetchAndPrint(ctx, svc, *addressFlag, *limitFlag); err != nil {
		zap.L().Fatal("Failed to fetch activity", zap.Error(err))
	}

	// The local journal complements the on-chain feed; it is optional
	// when the journal file does not exist yet.
	if journalService, err := journal.NewService(ctx, cfg.Journal); err == nil {
		defer journalService.Close()
		printLocalJournal(ctx, journalService, *addressFlag, *limitFlag)
	} else {
		zap.L().Warn("Skipping local journal", zap.Error(err))
	}

	if !*watchFlag {
		common.PrintFooter("History complete", common.DefaultWidth)
		return
	}

	zap.L().Info("Watching for new activity",
		zap.String("address", *addressFlag),
		zap.Duration("interval", *intervalFlag))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(*intervalFlag)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			fmt.Printf("\n--- refreshed %s ---\n", time.Now().Format("15:04:05"))
			if err := fetchAndPrint(ctx, svc, *addressFlag, *limitFlag); err != nil {
				zap.L().Error("Refresh failed", zap.Error(err))
			}
		case <-sigCh:
			zap.L().Info("Shutting down watcher")
			return
		}
	}
}
