package state

import (
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Vote is an account's live vote on one candidate together with the weight
// it contributed to the tally.
type Vote struct {
	Choice types.VoteChoice
	Weight types.Amount
}

// Account is one participant's position inside one pool. Rewarded balances are
// not stored: they are derived from Shares, Phantom and the pool totals.
type Account struct {
	Staged types.Amount
	Shares types.Amount

	// indexed by reward asset
	Claimable []types.Amount
	Phantom   []types.Amount

	FluidUntil  uint64
	LockedUntil uint64

	Votes map[string]Vote
}

func newAccount(rewardAssets int) *Account {
	return &Account{
		Claimable: make([]types.Amount, rewardAssets),
		Phantom:   make([]types.Amount, rewardAssets),
		Votes:     map[string]Vote{},
	}
}

// Status is derived from the lockup timers, never stored.
func (a *Account) Status(epoch uint64) types.AccountStatus {
	if epoch < a.LockedUntil {
		return types.StatusLocked
	}
	if epoch < a.FluidUntil {
		return types.StatusFluid
	}
	return types.StatusFrozen
}

// Unfreeze starts the exit lockup.
func (a *Account) Unfreeze(epoch, lockup uint64) {
	a.FluidUntil = epoch + lockup
}

// LockUntil extends the governance lock, never shortens it.
func (a *Account) LockUntil(epoch uint64) {
	if epoch > a.LockedUntil {
		a.LockedUntil = epoch
	}
}

func (a *Account) clone() *Account {
	c := *a
	c.Claimable = cloneAmounts(a.Claimable)
	c.Phantom = cloneAmounts(a.Phantom)
	c.Votes = make(map[string]Vote, len(a.Votes))
	for k, v := range a.Votes {
		c.Votes[k] = v
	}
	return &c
}
