package token

import (
	"context"
	"sync"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Ledger is an in-memory Token.
type Ledger struct {
	mu         sync.RWMutex
	asset      types.AssetID
	supply     types.Amount
	balances   map[types.AccountID]types.Amount
	allowances map[types.AccountID]map[types.AccountID]types.Amount
	minters    map[types.AccountID]bool
}

func NewLedger(asset types.AssetID, minters ...types.AccountID) *Ledger {
	l := &Ledger{
		asset:      asset,
		balances:   map[types.AccountID]types.Amount{},
		allowances: map[types.AccountID]map[types.AccountID]types.Amount{},
		minters:    map[types.AccountID]bool{},
	}
	for _, m := range minters {
		l.minters[m] = true
	}
	return l
}

func (l *Ledger) Asset() types.AssetID {
	return l.asset
}

func (l *Ledger) Transfer(ctx context.Context, from, to types.AccountID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.move(from, to, amount)
}

func (l *Ledger) TransferFrom(ctx context.Context, spender, from, to types.AccountID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	allowance := l.allowanceLocked(from, spender)
	if from != spender && allowance.Lt(amount) {
		return types.ErrInsufficientAllowance
	}
	if l.balances[from].Lt(amount) {
		return types.ErrInsufficientBalance
	}
	if from != spender && !amount.IsZero() && !allowance.Eq(types.MaxAmount()) {
		l.allowances[from][spender] = allowance.Sub(amount)
	}
	return l.move(from, to, amount)
}

func (l *Ledger) Approve(ctx context.Context, owner, spender types.AccountID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.allowances[owner]; !ok {
		l.allowances[owner] = map[types.AccountID]types.Amount{}
	}
	l.allowances[owner][spender] = amount
	return nil
}

func (l *Ledger) Allowance(owner, spender types.AccountID) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.allowanceLocked(owner, spender)
}

func (l *Ledger) BalanceOf(account types.AccountID) types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.balances[account]
}

func (l *Ledger) TotalSupply() types.Amount {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.supply
}

func (l *Ledger) Mint(ctx context.Context, minter, to types.AccountID, amount types.Amount) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.minters[minter] {
		return types.ErrNotMinter
	}
	l.supply = l.supply.Add(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}

func (l *Ledger) IsMinter(account types.AccountID) bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.minters[account]
}

func (l *Ledger) AddMinter(ctx context.Context, caller, account types.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.minters[caller] {
		return types.ErrNotMinter
	}
	l.minters[account] = true
	return nil
}

func (l *Ledger) RenounceMinter(ctx context.Context, account types.AccountID) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !l.minters[account] {
		return types.ErrNotMinter
	}
	delete(l.minters, account)
	return nil
}

// Faucet credits an account out of thin air. Genesis allocations and tests only.
func (l *Ledger) Faucet(account types.AccountID, amount types.Amount) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.supply = l.supply.Add(amount)
	l.balances[account] = l.balances[account].Add(amount)
}

func (l *Ledger) move(from, to types.AccountID, amount types.Amount) error {
	balance := l.balances[from]
	if balance.Lt(amount) {
		return types.ErrInsufficientBalance
	}
	l.balances[from] = balance.Sub(amount)
	l.balances[to] = l.balances[to].Add(amount)
	return nil
}

func (l *Ledger) allowanceLocked(owner, spender types.AccountID) types.Amount {
	if spenders, ok := l.allowances[owner]; ok {
		return spenders[spender]
	}
	return types.ZeroAmount()
}
