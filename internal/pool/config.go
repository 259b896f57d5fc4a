package pool

import (
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Config describes one pool variant. Every pool runs on the same engine; the
// variants differ only in their assets, share model, lockup and gates.
type Config struct {
	ID           types.PoolID
	Address      types.AccountID
	StakingAsset types.AssetID
	RewardAssets []types.AssetID

	// Rebasing pools mint shares against totalBonded so that supply added to
	// totalBonded accrues to every bonder. Non-rebasing pools hold shares equal
	// to the bonded amount.
	Rebasing bool
	Lockup   uint64

	// PriceGated pools reject bonds while the last valid price is at or above
	// peg after bootstrapping.
	PriceGated bool

	// CounterAsset is paired with the first reward asset when compounding
	// rewards into liquidity. Empty when the pool cannot provide.
	CounterAsset types.AssetID
}

// CanProvide reports whether the pool compounds rewards into liquidity.
func (c Config) CanProvide() bool {
	return c.CounterAsset != ""
}

// RewardIndex returns the position of asset in the reward list.
func (c Config) RewardIndex(asset types.AssetID) (int, bool) {
	for i, a := range c.RewardAssets {
		if a == asset {
			return i, true
		}
	}
	return 0, false
}

// Layout returns the standard four pools.
func Layout(params *types.GlobalParams, dao types.AccountID) []Config {
	return []Config{
		{
			ID:           types.PoolDAO,
			Address:      types.PoolAddress(dao, types.PoolDAO),
			StakingAsset: types.AssetDollar,
			Rebasing:     true,
			Lockup:       params.DaoExitLockupEpochs,
		},
		{
			ID:           types.PoolBonding,
			Address:      types.PoolAddress(dao, types.PoolBonding),
			StakingAsset: types.AssetDollar,
			RewardAssets: []types.AssetID{types.AssetDollar, types.AssetGovernance},
			Lockup:       params.PoolExitLockupEpochs,
			PriceGated:   true,
		},
		{
			ID:           types.PoolLP,
			Address:      types.PoolAddress(dao, types.PoolLP),
			StakingAsset: types.AssetLiquidity,
			RewardAssets: []types.AssetID{types.AssetDollar},
			Lockup:       params.PoolExitLockupEpochs,
			CounterAsset: types.AssetQuote,
		},
		{
			ID:           types.PoolGov,
			Address:      types.PoolAddress(dao, types.PoolGov),
			StakingAsset: types.AssetGovernance,
			RewardAssets: []types.AssetID{types.AssetDollar},
			Lockup:       params.PoolExitLockupEpochs,
		},
	}
}
