package txbuild

import (
	"testing"

	"creditline-client-go/internal/models"

	"github.com/shopspring/decimal"
)

var testDeployment = models.Deployment{
	ModuleAddress: "0xc0ffee",
	PoolAddress:   "0xp001",
}

func TestOpenCreditLineMinimumStake(t *testing.T) {
	b := NewBuilder(testDeployment)

	p := b.OpenCreditLine(decimal.NewFromInt(1))
	if p.Function != "0xc0ffee::credit_manager::open_credit_line" {
		t.Errorf("function = %s", p.Function)
	}
	if len(p.Arguments) != 2 || p.Arguments[0] != "0xp001" || p.Arguments[1] != "1000000" {
		t.Errorf("arguments = %v, want [0xp001 1000000]", p.Arguments)
	}
}

func TestBuildersEncodeBaseUnits(t *testing.T) {
	b := NewBuilder(testDeployment)
	amount := decimal.NewFromFloat(250.5)

	tests := []struct {
		name     string
		payload  models.TransactionPayload
		function string
	}{
		{"add", b.AddCollateral(amount), "0xc0ffee::credit_manager::add_collateral"},
		{"withdraw", b.WithdrawCollateral(amount), "0xc0ffee::credit_manager::withdraw_collateral"},
		{"borrow", b.Borrow(amount), "0xc0ffee::credit_manager::borrow"},
		{"repay", b.Repay(amount), "0xc0ffee::credit_manager::repay"},
		{"deposit", b.DepositToPool(amount), "0xc0ffee::lending_pool::deposit"},
	}
	for _, tt := range tests {
		if tt.payload.Function != tt.function {
			t.Errorf("%s: function = %s, want %s", tt.name, tt.payload.Function, tt.function)
		}
		if len(tt.payload.Arguments) != 2 || tt.payload.Arguments[1] != "250500000" {
			t.Errorf("%s: arguments = %v", tt.name, tt.payload.Arguments)
		}
		if tt.payload.TypeArguments == nil {
			t.Errorf("%s: type arguments must be an empty list, not nil", tt.name)
		}
	}
}
