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

package txbuild

import (
	"creditline-client-go/internal/models"
	"creditline-client-go/internal/units"

	"github.com/shopspring/decimal"
)

// Entry function names of the credit program.
const (
	fnOpenCreditLine     = "credit_manager::open_credit_line"
	fnAddCollateral      = "credit_manager::add_collateral"
	fnWithdrawCollateral = "credit_manager::withdraw_collateral"
	fnBorrow             = "credit_manager::borrow"
	fnRepay              = "credit_manager::repay"
	fnDepositToPool      = "lending_pool::deposit"
)

// Builder constructs entry-function payloads for the deployed credit
// program. Builders only encode: amounts are converted to base units in the
// argument order the program expects, with no validation -- amount validity
// is the orchestrator's responsibility.
type Builder struct {
	dep models.Deployment
}

func NewBuilder(dep models.Deployment) *Builder {
	return &Builder{dep: dep}
}

func (b *Builder) payload(fn string, args ...string) models.TransactionPayload {
	return models.TransactionPayload{
		Function:      b.dep.ModuleAddress + "::" + fn,
		TypeArguments: []string{},
		Arguments:     args,
	}
}

// OpenCreditLine stakes the initial collateral and opens a 1:1 credit line.
func (b *Builder) OpenCreditLine(amount decimal.Decimal) models.TransactionPayload {
	return b.payload(fnOpenCreditLine, b.dep.PoolAddress, units.ToBaseUnits(amount))
}

// AddCollateral stakes additional collateral against an existing line.
func (b *Builder) AddCollateral(amount decimal.Decimal) models.TransactionPayload {
	return b.payload(fnAddCollateral, b.dep.PoolAddress, units.ToBaseUnits(amount))
}

// WithdrawCollateral releases collateral back to the user.
func (b *Builder) WithdrawCollateral(amount decimal.Decimal) models.TransactionPayload {
	return b.payload(fnWithdrawCollateral, b.dep.PoolAddress, units.ToBaseUnits(amount))
}

// Borrow draws against the credit line.
func (b *Builder) Borrow(amount decimal.Decimal) models.TransactionPayload {
	return b.payload(fnBorrow, b.dep.PoolAddress, units.ToBaseUnits(amount))
}

// Repay pays down debt. The payload carries the total; the program applies
// its own interest-first split on-chain.
func (b *Builder) Repay(amount decimal.Decimal) models.TransactionPayload {
	return b.payload(fnRepay, b.dep.PoolAddress, units.ToBaseUnits(amount))
}

// DepositToPool supplies liquidity to the lending pool.
func (b *Builder) DepositToPool(amount decimal.Decimal) models.TransactionPayload {
	return b.payload(fnDepositToPool, b.dep.PoolAddress, units.ToBaseUnits(amount))
}
