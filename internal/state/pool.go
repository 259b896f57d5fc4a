package state

import (
	"sort"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Pool holds the totals and accounts of one bonding pool.
type Pool struct {
	ID     types.PoolID
	Paused bool

	TotalStaged types.Amount
	TotalBonded types.Amount
	TotalShares types.Amount

	// indexed by reward asset
	TotalClaimable []types.Amount
	TotalPhantom   []types.Amount

	accounts     map[types.AccountID]*Account
	rewardAssets int
}

func NewPool(id types.PoolID, rewardAssets int) *Pool {
	return &Pool{
		ID:             id,
		TotalClaimable: make([]types.Amount, rewardAssets),
		TotalPhantom:   make([]types.Amount, rewardAssets),
		accounts:       map[types.AccountID]*Account{},
		rewardAssets:   rewardAssets,
	}
}

func (p *Pool) RewardAssets() int {
	return p.rewardAssets
}

// Account returns the account, creating it on first use.
func (p *Pool) Account(id types.AccountID) *Account {
	acct, ok := p.accounts[id]
	if !ok {
		acct = newAccount(p.rewardAssets)
		p.accounts[id] = acct
	}
	return acct
}

// Lookup returns a copy of the account without creating it.
func (p *Pool) Lookup(id types.AccountID) Account {
	acct, ok := p.accounts[id]
	if !ok {
		return *newAccount(p.rewardAssets)
	}
	return *acct.clone()
}

// AccountIDs returns the ids of every known account in sorted order.
func (p *Pool) AccountIDs() []types.AccountID {
	ids := make([]types.AccountID, 0, len(p.accounts))
	for id := range p.accounts {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// BondedOf converts an account's shares to the underlying bonded amount.
func (p *Pool) BondedOf(id types.AccountID) types.Amount {
	acct, ok := p.accounts[id]
	if !ok {
		return types.ZeroAmount()
	}
	return p.SharesToAmount(acct.Shares)
}

func (p *Pool) SharesToAmount(shares types.Amount) types.Amount {
	return p.TotalBonded.MulDiv(shares, p.TotalShares)
}

func (p *Pool) clone() *Pool {
	c := *p
	c.TotalClaimable = cloneAmounts(p.TotalClaimable)
	c.TotalPhantom = cloneAmounts(p.TotalPhantom)
	c.accounts = make(map[types.AccountID]*Account, len(p.accounts))
	for id, acct := range p.accounts {
		c.accounts[id] = acct.clone()
	}
	return &c
}

func cloneAmounts(in []types.Amount) []types.Amount {
	out := make([]types.Amount, len(in))
	copy(out, in)
	return out
}
