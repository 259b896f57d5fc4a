package pool

import (
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type RewardBalance struct {
	Asset     types.AssetID `json:"asset"`
	Claimable types.Amount  `json:"claimable"`
	Rewarded  types.Amount  `json:"rewarded"`
	Phantom   types.Amount  `json:"phantom"`
}

type AccountView struct {
	Pool        types.PoolID        `json:"pool"`
	Account     types.AccountID     `json:"account"`
	Status      types.AccountStatus `json:"status"`
	Staged      types.Amount        `json:"staged"`
	Shares      types.Amount        `json:"shares"`
	Bonded      types.Amount        `json:"bonded"`
	FluidUntil  uint64              `json:"fluid_until"`
	LockedUntil uint64              `json:"locked_until"`
	Rewards     []RewardBalance     `json:"rewards,omitempty"`
}

type PoolView struct {
	Pool         types.PoolID    `json:"pool"`
	Address      types.AccountID `json:"address"`
	StakingAsset types.AssetID   `json:"staking_asset"`
	Paused       bool            `json:"paused"`
	TotalStaged  types.Amount    `json:"total_staged"`
	TotalBonded  types.Amount    `json:"total_bonded"`
	TotalShares  types.Amount    `json:"total_shares"`
	Rewards      []RewardBalance `json:"rewards,omitempty"`
}

func (e *Engine) BalanceOfBonded(st *state.ProtocolState, account types.AccountID) types.Amount {
	p, err := e.pool(st)
	if err != nil {
		return types.ZeroAmount()
	}
	return p.BondedOf(account)
}

func (e *Engine) TotalBonded(st *state.ProtocolState) types.Amount {
	p, err := e.pool(st)
	if err != nil {
		return types.ZeroAmount()
	}
	return p.TotalBonded
}

// BalanceOfRewarded returns the uncrystallized reward of the asset at index i.
func (e *Engine) BalanceOfRewarded(st *state.ProtocolState, account types.AccountID, i int) (types.Amount, error) {
	p, err := e.pool(st)
	if err != nil {
		return types.ZeroAmount(), err
	}
	return e.balanceOfRewarded(p, i, p.Lookup(account))
}

func (e *Engine) StatusOf(st *state.ProtocolState, account types.AccountID) types.AccountStatus {
	p, err := e.pool(st)
	if err != nil {
		return types.StatusFrozen
	}
	acct := p.Lookup(account)
	return acct.Status(st.Epoch)
}

func (e *Engine) AccountView(st *state.ProtocolState, account types.AccountID) (*AccountView, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	acct := p.Lookup(account)
	view := &AccountView{
		Pool:        e.cfg.ID,
		Account:     account,
		Status:      acct.Status(st.Epoch),
		Staged:      acct.Staged,
		Shares:      acct.Shares,
		Bonded:      p.SharesToAmount(acct.Shares),
		FluidUntil:  acct.FluidUntil,
		LockedUntil: acct.LockedUntil,
	}
	for i, asset := range e.cfg.RewardAssets {
		rewarded, err := e.balanceOfRewarded(p, i, acct)
		if err != nil {
			return nil, err
		}
		view.Rewards = append(view.Rewards, RewardBalance{
			Asset:     asset,
			Claimable: acct.Claimable[i],
			Rewarded:  rewarded,
			Phantom:   acct.Phantom[i],
		})
	}
	return view, nil
}

func (e *Engine) PoolView(st *state.ProtocolState) (*PoolView, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	view := &PoolView{
		Pool:         e.cfg.ID,
		Address:      e.cfg.Address,
		StakingAsset: e.cfg.StakingAsset,
		Paused:       p.Paused,
		TotalStaged:  p.TotalStaged,
		TotalBonded:  p.TotalBonded,
		TotalShares:  p.TotalShares,
	}
	for i, asset := range e.cfg.RewardAssets {
		rewarded, err := e.totalRewarded(p, i)
		if err != nil {
			return nil, err
		}
		view.Rewards = append(view.Rewards, RewardBalance{
			Asset:     asset,
			Claimable: p.TotalClaimable[i],
			Rewarded:  rewarded,
			Phantom:   p.TotalPhantom[i],
		})
	}
	return view, nil
}
