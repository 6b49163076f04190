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
	"time"

	"creditline-client-go/internal/activity"
	"creditline-client-go/internal/common"
	"creditline-client-go/internal/config"
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/node"

	"go.uber.org/zap"
)

func formatDueDate(dueDate int64) string {
	if dueDate == 0 {
		return "none"
	}
	return time.Unix(dueDate, 0).UTC().Format("2006-01-02 15:04:05 UTC")
}

func printPosition(position *models.CreditPosition) {
	fmt.Printf("\n┌─ Credit Line\n")
	fmt.Printf("│  Collateral Staked:  %s USDC\n", position.Collateral.String())
	fmt.Printf("│  Credit Limit:       %s USDC\n", position.CreditLimit.String())
	fmt.Printf("│  Borrowed Principal: %s USDC\n", position.BorrowedPrincipal.String())
	fmt.Printf("│  Interest Accrued:   %s USDC\n", position.InterestAccrued.String())
	common.PrintBoxSeparator(78)
	fmt.Printf("│  Current Debt:       %s USDC\n", position.CurrentDebt().String())
	fmt.Printf("│  Available Credit:   %s USDC\n", position.AvailableCredit().String())
	fmt.Printf("│  Withdrawable:       %s USDC\n", position.CanWithdrawCollateral().String())
	fmt.Printf("│  Total Repaid:       %s USDC\n", position.TotalRepaid.String())
	fmt.Printf("└  Repayment Due:      %s\n", formatDueDate(position.RepaymentDueDate))
}

func printReputation(rep *models.ReputationSnapshot, elig *models.CreditIncreaseEligibility, creditLimit string) {
	fmt.Printf("\n┌─ Reputation\n")
	fmt.Printf("│  Tier:               %s (score %d)\n", rep.TierName(), rep.Score)
	fmt.Printf("│  On-time Repayments: %d\n", rep.OnTimeRepayments)
	fmt.Printf("│  Late Repayments:    %d\n", rep.LateRepayments)
	if elig != nil && elig.Eligible {
		fmt.Printf("└  Limit Increase:     eligible, %s → %s USDC\n", creditLimit, elig.NewLimit.String())
	} else {
		fmt.Printf("└  Limit Increase:     not eligible yet\n")
	}
}

func printRecentActivity(ctx context.Context, svc *node.Service, address string) {
	txs, err := svc.AccountTransactions(ctx, address, 10)
	if err != nil {
		zap.L().Warn("Recent activity unavailable", zap.Error(err))
		return
	}

	records := activity.Reconcile(txs, address, 5, time.Now())
	if len(records) == 0 {
		return
	}

	fmt.Printf("\n┌─ Recent Activity\n")
	for i, rec := range records {
		fmt.Printf("%s %-20s %15s USDC   %s\n",
			common.BoxPrefix(i == len(records)-1),
			rec.Kind, rec.Amount.String(), rec.OccurredAt)
	}
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	addressFlag := flag.String("address", "", "Borrower account address (required)")
	flag.Parse()

	if *addressFlag == "" {
		zap.L().Fatal("Missing required flag: --address")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	svc, reader, dep, err := common.InitializeReadOnly(cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}

	zap.L().Info("Fetching credit dashboard",
		zap.String("address", *addressFlag),
		zap.String("network", dep.Network))

	position, err := reader.Position(ctx, *addressFlag)
	if err != nil {
		zap.L().Fatal("Failed to fetch credit position", zap.Error(err))
	}

	balance, err := reader.StableBalance(ctx, *addressFlag)
	if err != nil {
		zap.L().Fatal("Failed to fetch wallet balance", zap.Error(err))
	}

	common.PrintHeader("CREDIT DASHBOARD", common.DefaultWidth)
	fmt.Printf("Address: %s\n", *addressFlag)
	fmt.Printf("Network: %s\n", dep.Network)
	fmt.Printf("Wallet:  %s USDC\n", balance.String())

	if !position.IsActive {
		fmt.Println("\nNo active credit line. Stake collateral to open one.")
		common.PrintFooter("Dashboard complete", common.DefaultWidth)
		return
	}

	printPosition(position)

	// Reputation and eligibility are additive views; a miss on either
	// should not take down the dashboard.
	rep, err := reader.Reputation(ctx, *addressFlag)
	if err != nil {
		zap.L().Warn("Reputation unavailable", zap.Error(err))
		rep = &models.ReputationSnapshot{}
	}
	elig, err := reader.IncreaseEligibility(ctx, *addressFlag)
	if err != nil {
		zap.L().Warn("Eligibility check unavailable", zap.Error(err))
		elig = nil
	}
	printReputation(rep, elig, position.CreditLimit.String())
	printRecentActivity(ctx, svc, *addressFlag)

	if position.InterestAccrued.IsZero() && position.BorrowedPrincipal.IsPositive() {
		fmt.Printf("\nInterest-free grace period active (%d bps annual rate applies after %s)\n",
			cfg.Credit.AnnualRateBps, cfg.Credit.GracePeriod)
	}

	common.PrintFooter("Dashboard complete", common.DefaultWidth)
}
