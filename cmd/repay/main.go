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

	"creditline-client-go/internal/common"
	"creditline-client-go/internal/config"
	"creditline-client-go/internal/orchestrator"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func printRepaySummary(result *orchestrator.Result) {
	common.PrintHeader("REPAYMENT COMPLETE", common.DefaultWidth)
	if result.Allocation != nil {
		fmt.Printf("Total Paid:        %s USDC\n", result.Allocation.Total().String())
		fmt.Printf("Interest Portion:  %s USDC\n", result.Allocation.InterestPortion.String())
		fmt.Printf("Principal Portion: %s USDC\n", result.Allocation.PrincipalPortion.String())
	}
	fmt.Printf("Transaction:       %s\n", result.TxRef)
	if result.Position != nil {
		fmt.Printf("Remaining Debt:    %s USDC\n", result.Position.CurrentDebt().String())
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	addressFlag := flag.String("address", "", "Borrower account address (required)")
	amountFlag := flag.String("amount", "", "Amount to repay in USDC (omit to repay full debt)")
	flag.Parse()

	if *addressFlag == "" {
		zap.L().Fatal("Missing required flag: --address")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	var result *orchestrator.Result
	if *amountFlag == "" {
		zap.L().Info("Repaying full debt", zap.String("address", *addressFlag))
		result = services.Orchestrator.RepayFull(ctx, *addressFlag)
	} else {
		amount, err := decimal.NewFromString(*amountFlag)
		if err != nil {
			zap.L().Fatal("Invalid amount format", zap.Error(err))
		}
		zap.L().Info("Repaying custom amount",
			zap.String("address", *addressFlag),
			zap.String("amount", amount.String()))
		result = services.Orchestrator.RepayCustom(ctx, *addressFlag, amount)
	}

	if !result.Success {
		common.PrintHeader("REPAYMENT FAILED", common.DefaultWidth)
		fmt.Printf("Reason: %s\n", result.Message)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Repayment failed",
			zap.String("category", string(result.Category)),
			zap.String("message", result.Message))
	}

	printRepaySummary(result)

	zap.L().Info("Repayment completed",
		zap.String("address", *addressFlag),
		zap.String("tx_ref", result.TxRef))
}
