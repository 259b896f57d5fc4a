package pool

import (
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Phantom balances are kept at phantomScale sub-units per base unit of reward.
// Bonds are charged the rounded-up entitlement at that resolution, so the
// rewarded balances of all accounts never add up to more than the pool holds.
var phantomScale = types.Units(1)

// totalRewarded is the part of the pool's holdings of reward asset i that has
// not been claimed yet and is not somebody's staked principal.
func (e *Engine) totalRewarded(p *state.Pool, i int) (types.Amount, error) {
	asset := e.cfg.RewardAssets[i]
	tk, err := e.tokens.Token(asset)
	if err != nil {
		return types.ZeroAmount(), err
	}
	held := tk.BalanceOf(e.cfg.Address).SaturatingSub(p.TotalClaimable[i])
	if asset == e.cfg.StakingAsset {
		held = held.SaturatingSub(p.TotalStaged.Add(p.TotalBonded))
	}
	return held, nil
}

// rewardedWithPhantom is totalRewarded plus the pool's phantom, in phantom
// sub-units.
func rewardedWithPhantom(p *state.Pool, i int, totalRewarded types.Amount) types.Amount {
	return totalRewarded.Mul(phantomScale).Add(p.TotalPhantom[i])
}

func (e *Engine) balanceOfRewarded(p *state.Pool, i int, acct state.Account) (types.Amount, error) {
	if p.TotalShares.IsZero() {
		return types.ZeroAmount(), nil
	}
	total, err := e.totalRewarded(p, i)
	if err != nil {
		return types.ZeroAmount(), err
	}
	entitled := rewardedWithPhantom(p, i, total).MulDiv(acct.Shares, p.TotalShares)
	return entitled.SaturatingSub(acct.Phantom[i]).Div(phantomScale), nil
}
