package credit

import (
	"context"
	"errors"

	"creditline-client-go/internal/chain"
	"creditline-client-go/internal/units"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// balanceProbe is one strategy for resolving the user's stablecoin balance.
// Probes are tried in order until one yields a value; a miss (not-found or
// empty result) moves on to the next, so older account shapes keep working.
type balanceProbe struct {
	name     string
	function string
	typeArgs func(r *Reader) []string
	args     func(r *Reader, address string) []string
}

var balanceProbes = []balanceProbe{
	{
		name:     "primary_fungible_store",
		function: "0x1::primary_fungible_store::balance",
		typeArgs: func(r *Reader) []string { return []string{"0x1::fungible_asset::Metadata"} },
		args:     func(r *Reader, address string) []string { return []string{address, r.dep.StableMetadata} },
	},
	{
		name:     "coin_balance",
		function: "0x1::coin::balance",
		typeArgs: func(r *Reader) []string { return []string{r.dep.StableCoinType} },
		args:     func(r *Reader, address string) []string { return []string{address} },
	},
	{
		name:     "program_helper",
		function: "", // resolved against the module address below
		typeArgs: func(r *Reader) []string { return nil },
		args:     func(r *Reader, address string) []string { return []string{address} },
	},
}

// StableBalance resolves the user's spendable stablecoin balance.
// All probes missing means the account simply holds nothing yet: zero, not
// an error. A transient failure on any probe aborts the chain so the
// caller does not validate against a stale or partial balance.
func (r *Reader) StableBalance(ctx context.Context, address string) (decimal.Decimal, error) {
	for _, probe := range balanceProbes {
		function := probe.function
		if function == "" {
			function = r.fn("credit_manager::get_stable_balance")
		}

		out, err := r.viewer.View(ctx, function, probe.typeArgs(r), probe.args(r, address))
		if err != nil {
			if errors.Is(err, chain.ErrResourceNotFound) {
				zap.L().Debug("Balance probe missed",
					zap.String("probe", probe.name),
					zap.String("address", address))
				continue
			}
			return decimal.Zero, err
		}
		if len(out) == 0 {
			continue
		}

		balance, err := units.FromRaw(out[0])
		if err != nil {
			return decimal.Zero, err
		}
		return balance, nil
	}

	zap.L().Debug("No balance resource found, treating as zero",
		zap.String("address", address))
	return decimal.Zero, nil
}
