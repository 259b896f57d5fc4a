package pool

import (
	"context"
	"fmt"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/liquidity"
	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

// TokenSource resolves the ledger of an asset.
type TokenSource interface {
	Token(asset types.AssetID) (token.Token, error)
}

// Engine runs the bonding operations of one pool against the pool's slice of
// the protocol state. Every operation validates first and touches the tokens
// before mutating state, so a failed call leaves the state unchanged.
type Engine struct {
	cfg    Config
	params *types.GlobalParams
	dao    types.AccountID
	tokens TokenSource
	venue  liquidity.Venue
}

// New builds the engine for cfg. venue may be nil for pools that cannot provide.
func New(cfg Config, params *types.GlobalParams, dao types.AccountID, tokens TokenSource, venue liquidity.Venue) *Engine {
	return &Engine{cfg: cfg, params: params, dao: dao, tokens: tokens, venue: venue}
}

func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) ID() types.PoolID {
	return e.cfg.ID
}

func (e *Engine) Address() types.AccountID {
	return e.cfg.Address
}

// NewState returns the empty pool state matching this engine.
func (e *Engine) NewState() *state.Pool {
	return state.NewPool(e.cfg.ID, len(e.cfg.RewardAssets))
}

func (e *Engine) pool(st *state.ProtocolState) (*state.Pool, error) {
	p, ok := st.Pool(e.cfg.ID)
	if !ok {
		return nil, types.NewErrorWithMsg(0, types.InternalServiceError, fmt.Sprintf("pool %s is not registered", e.cfg.ID))
	}
	return p, nil
}

func (e *Engine) stakingToken() (token.Token, error) {
	return e.tokens.Token(e.cfg.StakingAsset)
}

func (e *Engine) event(eventType types.EventType, st *state.ProtocolState, account types.AccountID) *types.Event {
	return types.NewEvent(eventType, st.Epoch).WithPool(e.cfg.ID).WithAccount(account)
}

// Deposit stages amount of the staking asset. The caller must have approved
// the pool address.
func (e *Engine) Deposit(ctx context.Context, st *state.ProtocolState, caller types.AccountID, amount types.Amount) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	if p.Paused {
		return nil, types.ErrPaused
	}
	if err := requireFrozen(p.Lookup(caller), st.Epoch); err != nil {
		return nil, err
	}
	tk, err := e.stakingToken()
	if err != nil {
		return nil, err
	}
	if err := tk.TransferFrom(ctx, e.cfg.Address, caller, e.cfg.Address, amount); err != nil {
		return nil, err
	}

	acct := p.Account(caller)
	acct.Staged = acct.Staged.Add(amount)
	p.TotalStaged = p.TotalStaged.Add(amount)

	return e.event(types.EventDeposit, st, caller).With("amount", amount).With("staged", acct.Staged), nil
}

func (e *Engine) Withdraw(ctx context.Context, st *state.ProtocolState, caller types.AccountID, amount types.Amount) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	view := p.Lookup(caller)
	if err := requireFrozen(view, st.Epoch); err != nil {
		return nil, err
	}
	if view.Staged.Lt(amount) {
		return nil, types.ErrInsufficientStaged
	}
	tk, err := e.stakingToken()
	if err != nil {
		return nil, err
	}
	if err := tk.Transfer(ctx, e.cfg.Address, caller, amount); err != nil {
		return nil, err
	}

	acct := p.Account(caller)
	acct.Staged = acct.Staged.Sub(amount)
	p.TotalStaged = p.TotalStaged.Sub(amount)

	return e.event(types.EventWithdraw, st, caller).With("amount", amount).With("staged", acct.Staged), nil
}

// Bond moves amount from staged into the bonded tranche and starts the exit
// lockup.
func (e *Engine) Bond(ctx context.Context, st *state.ProtocolState, caller types.AccountID, amount types.Amount) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	if p.Paused {
		return nil, types.ErrPaused
	}
	view := p.Lookup(caller)
	if err := requireNotLocked(view, st.Epoch); err != nil {
		return nil, err
	}
	if e.priceGated(st) {
		return nil, types.ErrPriceGated
	}
	if view.Staged.Lt(amount) {
		return nil, types.ErrInsufficientStaged
	}

	var shares types.Amount
	if e.cfg.Rebasing {
		if p.TotalShares.IsZero() {
			shares = amount.MulUint64(e.params.InitialStakeMultiple)
		} else {
			shares = amount.MulDiv(p.TotalShares, p.TotalBonded)
		}
	} else {
		shares = amount
	}

	phantoms := make([]types.Amount, len(e.cfg.RewardAssets))
	for i := range e.cfg.RewardAssets {
		rewarded, err := e.totalRewarded(p, i)
		if err != nil {
			return nil, err
		}
		phantoms[i] = e.bondPhantom(p, i, rewarded, shares)
	}

	acct := p.Account(caller)
	acct.Staged = acct.Staged.Sub(amount)
	p.TotalStaged = p.TotalStaged.Sub(amount)
	acct.Shares = acct.Shares.Add(shares)
	p.TotalShares = p.TotalShares.Add(shares)
	p.TotalBonded = p.TotalBonded.Add(amount)
	for i, ph := range phantoms {
		acct.Phantom[i] = acct.Phantom[i].Add(ph)
		p.TotalPhantom[i] = p.TotalPhantom[i].Add(ph)
	}
	acct.Unfreeze(st.Epoch, e.cfg.Lockup)

	return e.event(types.EventBond, st, caller).
		With("amount", amount).
		With("shares", shares).
		With("bonded", p.BondedOf(caller)), nil
}

// bondPhantom is the reward entitlement a new bond must be charged so it does
// not share in rewards distributed before it joined.
func (e *Engine) bondPhantom(p *state.Pool, i int, totalRewarded, shares types.Amount) types.Amount {
	if p.TotalShares.IsZero() {
		if totalRewarded.IsZero() {
			return shares.MulUint64(e.params.InitialStakeMultiple).Mul(phantomScale)
		}
		return types.ZeroAmount()
	}
	return rewardedWithPhantom(p, i, totalRewarded).MulDivUp(shares, p.TotalShares)
}

// Unbond releases shares back into the staged tranche. Rewarded balances are
// crystallized into claimable in proportion to the shares released.
func (e *Engine) Unbond(ctx context.Context, st *state.ProtocolState, caller types.AccountID, shares types.Amount) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	view := p.Lookup(caller)
	if err := requireNotLocked(view, st.Epoch); err != nil {
		return nil, err
	}
	if view.Shares.Lt(shares) {
		return nil, types.ErrInsufficientBonded
	}
	return e.unbond(st, p, caller, shares)
}

// UnbondUnderlying releases the shares backing amount of the staking asset.
func (e *Engine) UnbondUnderlying(ctx context.Context, st *state.ProtocolState, caller types.AccountID, amount types.Amount) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	view := p.Lookup(caller)
	if err := requireNotLocked(view, st.Epoch); err != nil {
		return nil, err
	}
	if p.BondedOf(caller).Lt(amount) {
		return nil, types.ErrInsufficientBonded
	}
	shares := amount
	if e.cfg.Rebasing {
		shares = amount.MulDiv(p.TotalShares, p.TotalBonded)
	}
	if view.Shares.Lt(shares) {
		return nil, types.ErrInsufficientBonded
	}
	return e.unbond(st, p, caller, shares)
}

func (e *Engine) unbond(st *state.ProtocolState, p *state.Pool, caller types.AccountID, shares types.Amount) (*types.Event, error) {
	view := p.Lookup(caller)
	amount := p.SharesToAmount(shares)

	claimables := make([]types.Amount, len(e.cfg.RewardAssets))
	lessPhantoms := make([]types.Amount, len(e.cfg.RewardAssets))
	for i := range e.cfg.RewardAssets {
		rewarded, err := e.balanceOfRewarded(p, i, view)
		if err != nil {
			return nil, err
		}
		claimables[i] = rewarded.MulDiv(shares, view.Shares)
		lessPhantoms[i] = view.Phantom[i].MulDiv(shares, view.Shares)
	}

	acct := p.Account(caller)
	acct.Shares = acct.Shares.Sub(shares)
	p.TotalShares = p.TotalShares.Sub(shares)
	p.TotalBonded = p.TotalBonded.Sub(amount)
	acct.Staged = acct.Staged.Add(amount)
	p.TotalStaged = p.TotalStaged.Add(amount)
	for i := range e.cfg.RewardAssets {
		acct.Claimable[i] = acct.Claimable[i].Add(claimables[i])
		p.TotalClaimable[i] = p.TotalClaimable[i].Add(claimables[i])
		acct.Phantom[i] = acct.Phantom[i].Sub(lessPhantoms[i])
		p.TotalPhantom[i] = p.TotalPhantom[i].Sub(lessPhantoms[i])
	}
	acct.Unfreeze(st.Epoch, e.cfg.Lockup)

	evt := e.event(types.EventUnbond, st, caller).
		With("shares", shares).
		With("amount", amount).
		With("staged", acct.Staged)
	for i, asset := range e.cfg.RewardAssets {
		evt.With("claimable_"+string(asset), acct.Claimable[i])
	}
	return evt, nil
}

// Claim pays out claimable reward of the reward asset at index i.
func (e *Engine) Claim(ctx context.Context, st *state.ProtocolState, caller types.AccountID, i int, amount types.Amount) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(e.cfg.RewardAssets) {
		return nil, types.NewErrorWithMsg(400, types.BadRequest, fmt.Sprintf("pool %s has no reward asset %d", e.cfg.ID, i))
	}
	view := p.Lookup(caller)
	if err := requireFrozen(view, st.Epoch); err != nil {
		return nil, err
	}
	if view.Claimable[i].Lt(amount) {
		return nil, types.ErrInsufficientClaimable
	}
	asset := e.cfg.RewardAssets[i]
	tk, err := e.tokens.Token(asset)
	if err != nil {
		return nil, err
	}
	if err := tk.Transfer(ctx, e.cfg.Address, caller, amount); err != nil {
		return nil, err
	}

	acct := p.Account(caller)
	acct.Claimable[i] = acct.Claimable[i].Sub(amount)
	p.TotalClaimable[i] = p.TotalClaimable[i].Sub(amount)

	return e.event(types.EventClaim, st, caller).
		WithString("asset", string(asset)).
		With("amount", amount).
		With("claimable", acct.Claimable[i]), nil
}

// PokeRewards crystallizes every rewarded balance of caller into claimable
// without touching staged or bonded amounts. Calling it twice in a row is a
// no-op the second time.
func (e *Engine) PokeRewards(ctx context.Context, st *state.ProtocolState, caller types.AccountID) (*types.Event, error) {
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	view := p.Lookup(caller)
	rewards := make([]types.Amount, len(e.cfg.RewardAssets))
	for i := range e.cfg.RewardAssets {
		if rewards[i], err = e.balanceOfRewarded(p, i, view); err != nil {
			return nil, err
		}
	}

	evt := e.event(types.EventRewardsPoked, st, caller)
	acct := p.Account(caller)
	for i, r := range rewards {
		acct.Claimable[i] = acct.Claimable[i].Add(r)
		p.TotalClaimable[i] = p.TotalClaimable[i].Add(r)
		acct.Phantom[i] = acct.Phantom[i].Add(r.Mul(phantomScale))
		p.TotalPhantom[i] = p.TotalPhantom[i].Add(r.Mul(phantomScale))
		evt.With("claimable_"+string(e.cfg.RewardAssets[i]), acct.Claimable[i])
	}
	return evt, nil
}

// EmergencyPause blocks deposit, bond and provide. Exits stay open.
func (e *Engine) EmergencyPause(ctx context.Context, st *state.ProtocolState, caller types.AccountID) (*types.Event, error) {
	if caller != e.dao {
		return nil, types.ErrNotDao
	}
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	p.Paused = true
	return e.event(types.EventEmergencyPause, st, caller), nil
}

// EmergencyWithdraw moves any asset held by the pool to the DAO.
func (e *Engine) EmergencyWithdraw(ctx context.Context, st *state.ProtocolState, caller types.AccountID, asset types.AssetID, amount types.Amount) (*types.Event, error) {
	if caller != e.dao {
		return nil, types.ErrNotDao
	}
	if _, err := e.pool(st); err != nil {
		return nil, err
	}
	tk, err := e.tokens.Token(asset)
	if err != nil {
		return nil, err
	}
	if err := tk.Transfer(ctx, e.cfg.Address, e.dao, amount); err != nil {
		return nil, err
	}
	return e.event(types.EventEmergencyWithdraw, st, caller).
		WithString("asset", string(asset)).
		With("amount", amount), nil
}

func (e *Engine) priceGated(st *state.ProtocolState) bool {
	if !e.cfg.PriceGated || e.params.IsBootstrapping(st.Epoch) || !st.PriceValid {
		return false
	}
	return !st.Price.LessThanOne()
}

func requireFrozen(acct state.Account, epoch uint64) error {
	if !utils.Contains(utils.QualifiedStatusesToTransfer(), acct.Status(epoch)) {
		return types.ErrWrongState
	}
	return nil
}

func requireNotLocked(acct state.Account, epoch uint64) error {
	if !utils.Contains(utils.QualifiedStatusesToBond(), acct.Status(epoch)) {
		return types.ErrLocked
	}
	return nil
}
