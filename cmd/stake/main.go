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

type stakeRequest struct {
	address string
	amount  decimal.Decimal
}

func parseAndValidateFlags() (*stakeRequest, error) {
	addressFlag := flag.String("address", "", "Borrower account address (required)")
	amountFlag := flag.String("amount", "", "Collateral amount in USDC (required)")
	flag.Parse()

	if *addressFlag == "" || *amountFlag == "" {
		return nil, fmt.Errorf("all flags are required: --address, --amount")
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	return &stakeRequest{address: *addressFlag, amount: amount}, nil
}

func printResult(result *orchestrator.Result, amount decimal.Decimal) {
	if !result.Success {
		common.PrintHeader("STAKE FAILED", common.DefaultWidth)
		fmt.Printf("Reason: %s\n", result.Message)
		common.PrintSeparator("=", common.DefaultWidth)
		return
	}

	common.PrintHeader("COLLATERAL STAKED", common.DefaultWidth)
	fmt.Printf("Amount:       %s USDC\n", amount.String())
	fmt.Printf("Transaction:  %s\n", result.TxRef)
	if result.Position != nil {
		fmt.Printf("Collateral:   %s USDC\n", result.Position.Collateral.String())
		fmt.Printf("Credit Limit: %s USDC\n", result.Position.CreditLimit.String())
	}
	common.PrintSeparator("=", common.DefaultWidth)
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	req, err := parseAndValidateFlags()
	if err != nil {
		zap.L().Fatal("Invalid flags", zap.Error(err))
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

	// First stake opens the credit line; later stakes top up collateral.
	position, err := services.Reader.Position(ctx, req.address)
	if err != nil {
		zap.L().Fatal("Failed to fetch credit position", zap.Error(err))
	}

	zap.L().Info("Staking collateral",
		zap.String("address", req.address),
		zap.String("amount", req.amount.String()),
		zap.Bool("opening_line", !position.IsActive))

	var result *orchestrator.Result
	if position.IsActive {
		result = services.Orchestrator.AddCollateral(ctx, req.address, req.amount)
	} else {
		result = services.Orchestrator.Stake(ctx, req.address, req.amount)
	}

	printResult(result, req.amount)
	if !result.Success {
		zap.L().Fatal("Stake failed",
			zap.String("category", string(result.Category)),
			zap.String("message", result.Message))
	}

	zap.L().Info("Stake completed",
		zap.String("address", req.address),
		zap.String("tx_ref", result.TxRef))
}
