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

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	addressFlag := flag.String("address", "", "Borrower account address (required)")
	amountFlag := flag.String("amount", "", "Amount to borrow in USDC (required)")
	flag.Parse()

	if *addressFlag == "" || *amountFlag == "" {
		zap.L().Fatal("All flags are required: --address, --amount")
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		zap.L().Fatal("Invalid amount format", zap.Error(err))
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

	zap.L().Info("Borrowing against credit line",
		zap.String("address", *addressFlag),
		zap.String("amount", amount.String()))

	result := services.Orchestrator.Borrow(ctx, *addressFlag, amount)
	if !result.Success {
		common.PrintHeader("BORROW FAILED", common.DefaultWidth)
		fmt.Printf("Reason: %s\n", result.Message)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Borrow failed",
			zap.String("category", string(result.Category)),
			zap.String("message", result.Message))
	}

	common.PrintHeader("BORROW COMPLETE", common.DefaultWidth)
	fmt.Printf("Amount:           %s USDC\n", amount.String())
	fmt.Printf("Transaction:      %s\n", result.TxRef)
	if result.Position != nil {
		fmt.Printf("Total Borrowed:   %s USDC\n", result.Position.BorrowedPrincipal.String())
		fmt.Printf("Available Credit: %s USDC\n", result.Position.AvailableCredit().String())
	}
	common.PrintSeparator("=", common.DefaultWidth)

	zap.L().Info("Borrow completed",
		zap.String("address", *addressFlag),
		zap.String("tx_ref", result.TxRef))
}
