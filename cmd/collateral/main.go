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

type collateralRequest struct {
	address string
	action  string
	amount  decimal.Decimal
}

func parseAndValidateFlags() (*collateralRequest, error) {
	addressFlag := flag.String("address", "", "Borrower account address (required)")
	actionFlag := flag.String("action", "", "Either add or withdraw (required)")
	amountFlag := flag.String("amount", "", "Collateral amount in USDC (required)")
	flag.Parse()

	if *addressFlag == "" || *actionFlag == "" || *amountFlag == "" {
		return nil, fmt.Errorf("all flags are required: --address, --action, --amount")
	}

	if *actionFlag != "add" && *actionFlag != "withdraw" {
		return nil, fmt.Errorf("invalid action %q, expected add or withdraw", *actionFlag)
	}

	amount, err := decimal.NewFromString(*amountFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid amount format: %w", err)
	}

	return &collateralRequest{
		address: *addressFlag,
		action:  *actionFlag,
		amount:  amount,
	}, nil
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

	zap.L().Info("Adjusting collateral",
		zap.String("address", req.address),
		zap.String("action", req.action),
		zap.String("amount", req.amount.String()))

	var result *orchestrator.Result
	if req.action == "add" {
		result = services.Orchestrator.AddCollateral(ctx, req.address, req.amount)
	} else {
		result = services.Orchestrator.Withdraw(ctx, req.address, req.amount)
	}

	if !result.Success {
		common.PrintHeader("COLLATERAL UPDATE FAILED", common.DefaultWidth)
		fmt.Printf("Action: %s\n", req.action)
		fmt.Printf("Reason: %s\n", result.Message)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Collateral update failed",
			zap.String("category", string(result.Category)),
			zap.String("message", result.Message))
	}

	common.PrintHeader("COLLATERAL UPDATED", common.DefaultWidth)
	fmt.Printf("Action:      %s\n", req.action)
	fmt.Printf("Amount:      %s USDC\n", req.amount.String())
	fmt.Printf("Transaction: %s\n", result.TxRef)
	if result.Position != nil {
		fmt.Printf("Collateral:  %s USDC\n", result.Position.Collateral.String())
	}
	common.PrintSeparator("=", common.DefaultWidth)

	zap.L().Info("Collateral update completed",
		zap.String("address", req.address),
		zap.String("tx_ref", result.TxRef))
}
