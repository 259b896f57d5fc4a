package pool

import (
	"context"
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/liquidity"
	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

const (
	dao   types.AccountID = "dao"
	user  types.AccountID = "user"
	user1 types.AccountID = "user1"
	user2 types.AccountID = "user2"
)

var multiple = types.NewAmount(1_000_000)

// phantom converts whole reward units into phantom sub-units.
func phantom(units types.Amount) types.Amount {
	return units.Mul(phantomScale)
}

type ledgers map[types.AssetID]*token.Ledger

func (l ledgers) Token(asset types.AssetID) (token.Token, error) {
	tk, ok := l[asset]
	if !ok {
		return nil, fmt.Errorf("unknown asset %s", asset)
	}
	return tk, nil
}

type fixture struct {
	ctx     context.Context
	params  *types.GlobalParams
	tokens  ledgers
	engines map[types.PoolID]*Engine
	st      *state.ProtocolState
}

func newFixture(t *testing.T, venue liquidity.Venue) *fixture {
	t.Helper()
	f := &fixture{
		ctx:    context.Background(),
		params: types.DefaultGlobalParams(),
		tokens: ledgers{
			types.AssetDollar:     token.NewLedger(types.AssetDollar, dao),
			types.AssetGovernance: token.NewLedger(types.AssetGovernance, dao),
			types.AssetLiquidity:  token.NewLedger(types.AssetLiquidity),
			types.AssetQuote:      token.NewLedger(types.AssetQuote),
		},
		engines: map[types.PoolID]*Engine{},
	}
	var pools []*state.Pool
	for _, cfg := range Layout(f.params, dao) {
		e := New(cfg, f.params, dao, f.tokens, venue)
		f.engines[cfg.ID] = e
		pools = append(pools, e.NewState())
	}
	f.st = state.New(f.params.ActiveVersion, pools...)
	f.st.Epoch = 1
	return f
}

func (f *fixture) fund(t *testing.T, id types.PoolID, account types.AccountID, amount uint64) {
	t.Helper()
	e := f.engines[id]
	tk := f.tokens[e.cfg.StakingAsset]
	tk.Faucet(account, types.NewAmount(amount))
	require.NoError(t, tk.Approve(f.ctx, account, e.Address(), types.MaxAmount()))
}

func (f *fixture) depositAndBond(t *testing.T, id types.PoolID, account types.AccountID, deposit, bond uint64) {
	t.Helper()
	f.fund(t, id, account, deposit)
	e := f.engines[id]
	_, err := e.Deposit(f.ctx, f.st, account, types.NewAmount(deposit))
	require.NoError(t, err)
	_, err = e.Bond(f.ctx, f.st, account, types.NewAmount(bond))
	require.NoError(t, err)
}

// reward mints Dollar straight to a pool address, the way the regulator does.
func (f *fixture) reward(id types.PoolID, amount types.Amount) {
	f.tokens[types.AssetDollar].Faucet(f.engines[id].Address(), amount)
}

func (f *fixture) rewarded(t *testing.T, id types.PoolID, account types.AccountID) types.Amount {
	t.Helper()
	r, err := f.engines[id].BalanceOfRewarded(f.st, account, 0)
	require.NoError(t, err)
	return r
}

func (f *fixture) account(id types.PoolID, account types.AccountID) state.Account {
	p, _ := f.st.Pool(id)
	return p.Lookup(account)
}

func (f *fixture) poolState(id types.PoolID) *state.Pool {
	p, _ := f.st.Pool(id)
	return p
}

func TestDepositAndWithdraw(t *testing.T) {
	f := newFixture(t, nil)
	lp := f.engines[types.PoolLP]
	f.fund(t, types.PoolLP, user, 1000)

	evt, err := lp.Deposit(f.ctx, f.st, user, types.NewAmount(1000))
	require.NoError(t, err)
	assert.Equal(t, types.EventDeposit, evt.Type)
	assert.Equal(t, types.NewAmount(1000), f.poolState(types.PoolLP).TotalStaged)
	assert.Equal(t, types.NewAmount(1000), f.tokens[types.AssetLiquidity].BalanceOf(lp.Address()))

	_, err = lp.Withdraw(f.ctx, f.st, user, types.NewAmount(1001))
	assert.ErrorIs(t, err, types.ErrInsufficientStaged)

	_, err = lp.Withdraw(f.ctx, f.st, user, types.NewAmount(400))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(600), f.account(types.PoolLP, user).Staged)
	assert.Equal(t, types.NewAmount(400), f.tokens[types.AssetLiquidity].BalanceOf(user))
}

func TestFluidAccountGates(t *testing.T) {
	f := newFixture(t, nil)
	lp := f.engines[types.PoolLP]
	f.reward(types.PoolLP, types.NewAmount(1000))
	f.depositAndBond(t, types.PoolLP, user, 1000, 500)

	assert.Equal(t, types.StatusFluid, lp.StatusOf(f.st, user))
	_, err := lp.Deposit(f.ctx, f.st, user, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrWrongState)
	_, err = lp.Withdraw(f.ctx, f.st, user, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrWrongState)
	_, err = lp.Claim(f.ctx, f.st, user, 0, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrWrongState)

	// bond and unbond stay open while fluid
	_, err = lp.Bond(f.ctx, f.st, user, types.NewAmount(500))
	require.NoError(t, err)
	_, err = lp.Unbond(f.ctx, f.st, user, types.NewAmount(1000))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(1000), f.account(types.PoolLP, user).Claimable[0])

	f.st.Epoch += f.params.PoolExitLockupEpochs
	assert.Equal(t, types.StatusFrozen, lp.StatusOf(f.st, user))
	_, err = lp.Claim(f.ctx, f.st, user, 0, types.NewAmount(1000))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(1000), f.tokens[types.AssetDollar].BalanceOf(user))
}

func TestBondWithRewardBeforeBonding(t *testing.T) {
	f := newFixture(t, nil)
	f.reward(types.PoolLP, types.NewAmount(1000))
	f.depositAndBond(t, types.PoolLP, user, 1000, 1000)

	// first bonder collects what was already sitting in the pool
	assert.Equal(t, types.NewAmount(1000), f.rewarded(t, types.PoolLP, user))
	assert.True(t, f.account(types.PoolLP, user).Phantom[0].IsZero())
}

func TestBondMultipleWithRewardFirst(t *testing.T) {
	f := newFixture(t, nil)
	f.reward(types.PoolLP, types.NewAmount(1000))
	f.depositAndBond(t, types.PoolLP, user1, 1000, 600)
	f.depositAndBond(t, types.PoolLP, user2, 1000, 400)

	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000))
	f.depositAndBond(t, types.PoolLP, user, 800, 500)

	// late bonds are charged the rounded-up entitlement, the dust stays in the pool
	assert.Equal(t, types.NewAmount(1600), f.rewarded(t, types.PoolLP, user1))
	assert.True(t, f.account(types.PoolLP, user1).Phantom[0].IsZero())
	assert.Equal(t, types.NewAmount(399), f.rewarded(t, types.PoolLP, user2))
	assert.Equal(t, types.MustAmount("666666666666666666667"), f.account(types.PoolLP, user2).Phantom[0])
	assert.True(t, f.rewarded(t, types.PoolLP, user).IsZero())
	assert.Equal(t, types.MustAmount("1333333333333333333334"), f.account(types.PoolLP, user).Phantom[0])

	view, err := f.engines[types.PoolLP].PoolView(f.st)
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(2000), view.Rewards[0].Rewarded)
	assert.Equal(t, types.MustAmount("2000000000000000000001"), view.Rewards[0].Phantom)
}

func TestBondMultipleWithoutRewardFirst(t *testing.T) {
	f := newFixture(t, nil)
	f.depositAndBond(t, types.PoolLP, user1, 1000, 600)
	f.depositAndBond(t, types.PoolLP, user2, 1000, 400)

	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000).Mul(multiple))
	f.depositAndBond(t, types.PoolLP, user, 800, 500)

	assert.Equal(t, types.NewAmount(600).Mul(multiple), f.rewarded(t, types.PoolLP, user1))
	assert.Equal(t, types.NewAmount(400).Mul(multiple), f.rewarded(t, types.PoolLP, user2))
	assert.True(t, f.rewarded(t, types.PoolLP, user).IsZero())
	assert.Equal(t, phantom(types.NewAmount(1000).Mul(multiple)), f.account(types.PoolLP, user).Phantom[0])
	assert.Equal(t, phantom(types.NewAmount(2000).Mul(multiple)), f.poolState(types.PoolLP).TotalPhantom[0])
}

func TestUnbondWithRewardMultiple(t *testing.T) {
	f := newFixture(t, nil)
	f.depositAndBond(t, types.PoolLP, user, 1000, 1000)
	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000))

	f.depositAndBond(t, types.PoolLP, user1, 1000, 600)
	f.depositAndBond(t, types.PoolLP, user2, 1000, 400)
	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000))

	evt, err := f.engines[types.PoolLP].Unbond(f.ctx, f.st, user, types.NewAmount(800))
	require.NoError(t, err)
	assert.Equal(t, "1200", evt.Fields["claimable_dollar"])

	acct := f.account(types.PoolLP, user)
	assert.Equal(t, types.NewAmount(1200), acct.Claimable[0])
	assert.Equal(t, types.NewAmount(300), f.rewarded(t, types.PoolLP, user))
	assert.Equal(t, phantom(types.NewAmount(200).Mul(multiple)), acct.Phantom[0])
	assert.Equal(t, types.NewAmount(300), f.rewarded(t, types.PoolLP, user1))
	assert.Equal(t, types.NewAmount(200), f.rewarded(t, types.PoolLP, user2))

	p := f.poolState(types.PoolLP)
	assert.Equal(t, types.NewAmount(1200), p.TotalClaimable[0])
	assert.Equal(t, phantom(types.NewAmount(1200).Mul(multiple).Add(types.NewAmount(1000))), p.TotalPhantom[0])
}

func TestUnbondInterleavedDoesNotUnderflow(t *testing.T) {
	f := newFixture(t, nil)
	lp := f.engines[types.PoolLP]
	f.depositAndBond(t, types.PoolLP, user, 1000, 1000)
	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000))

	f.depositAndBond(t, types.PoolLP, user1, 1000, 600)
	f.depositAndBond(t, types.PoolLP, user2, 1000, 500)
	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000))

	for _, step := range []struct {
		bond   bool
		amount uint64
	}{{false, 1000}, {true, 1000}, {false, 600}, {false, 200}} {
		var err error
		if step.bond {
			_, err = lp.Bond(f.ctx, f.st, user, types.NewAmount(step.amount))
		} else {
			_, err = lp.Unbond(f.ctx, f.st, user, types.NewAmount(step.amount))
		}
		require.NoError(t, err)
	}

	acct := f.account(types.PoolLP, user)
	assert.Equal(t, types.NewAmount(1476), acct.Claimable[0])
	assert.True(t, f.rewarded(t, types.PoolLP, user).IsZero())
	assert.Equal(t, phantom(types.NewAmount(200).Mul(multiple)).Add(types.MustAmount("295272727272727272728")), acct.Phantom[0])
	assert.Equal(t, types.NewAmount(285), f.rewarded(t, types.PoolLP, user1))
	assert.Equal(t, types.NewAmount(238), f.rewarded(t, types.PoolLP, user2))

	p := f.poolState(types.PoolLP)
	assert.Equal(t, types.NewAmount(1476), p.TotalClaimable[0])
	assert.Equal(t, phantom(types.NewAmount(1300).Mul(multiple)).Add(types.MustAmount("1395272727272727272728")), p.TotalPhantom[0])
}

func TestRewardFairness(t *testing.T) {
	f := newFixture(t, nil)
	f.depositAndBond(t, types.PoolGov, user1, 500, 500)
	f.depositAndBond(t, types.PoolGov, user2, 500, 500)
	f.st.Epoch++
	f.reward(types.PoolGov, types.NewAmount(1001))

	r1 := f.rewarded(t, types.PoolGov, user1)
	r2 := f.rewarded(t, types.PoolGov, user2)
	assert.Equal(t, types.NewAmount(500), r1)
	assert.Equal(t, types.NewAmount(500), r2)
}

func TestLateBonderDoesNotShareEarlierReward(t *testing.T) {
	f := newFixture(t, nil)
	f.depositAndBond(t, types.PoolGov, user1, 1000, 1000)
	f.reward(types.PoolGov, types.NewAmount(3000))
	f.depositAndBond(t, types.PoolGov, user2, 1000, 1000)

	assert.Equal(t, types.NewAmount(3000), f.rewarded(t, types.PoolGov, user1))
	assert.True(t, f.rewarded(t, types.PoolGov, user2).IsZero())

	f.reward(types.PoolGov, types.NewAmount(2000))
	assert.Equal(t, types.NewAmount(4000), f.rewarded(t, types.PoolGov, user1))
	assert.Equal(t, types.NewAmount(1000), f.rewarded(t, types.PoolGov, user2))
}

func TestPokeRewardsIsIdempotent(t *testing.T) {
	f := newFixture(t, nil)
	bonding := f.engines[types.PoolBonding]
	f.depositAndBond(t, types.PoolBonding, user1, 2000, 2000)
	f.depositAndBond(t, types.PoolBonding, user2, 1000, 1000)
	f.reward(types.PoolBonding, types.NewAmount(900))
	f.tokens[types.AssetGovernance].Faucet(bonding.Address(), types.NewAmount(300))

	_, err := bonding.PokeRewards(f.ctx, f.st, user1)
	require.NoError(t, err)
	first := f.account(types.PoolBonding, user1)
	assert.Equal(t, types.NewAmount(600), first.Claimable[0])
	assert.Equal(t, types.NewAmount(200), first.Claimable[1])
	r, err := bonding.BalanceOfRewarded(f.st, user1, 1)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	before := f.st.Clone()
	_, err = bonding.PokeRewards(f.ctx, f.st, user1)
	require.NoError(t, err)
	assert.Equal(t, before, f.st)

	// user2 is unaffected by user1's poke
	assert.Equal(t, types.NewAmount(300), f.rewarded(t, types.PoolBonding, user2))
}

func TestBondingPoolPriceGate(t *testing.T) {
	f := newFixture(t, nil)
	bonding := f.engines[types.PoolBonding]
	f.fund(t, types.PoolBonding, user, 3000)
	_, err := bonding.Deposit(f.ctx, f.st, user, types.NewAmount(3000))
	require.NoError(t, err)

	// bootstrapping ignores the price
	f.st.Price, f.st.PriceValid = types.NewDecimal(101, 100), true
	_, err = bonding.Bond(f.ctx, f.st, user, types.NewAmount(1000))
	require.NoError(t, err)

	f.st.Epoch = f.params.BootstrappingPeriod + 1
	_, err = bonding.Bond(f.ctx, f.st, user, types.NewAmount(1000))
	assert.ErrorIs(t, err, types.ErrPriceGated)

	f.st.Price = types.DecimalOne()
	_, err = bonding.Bond(f.ctx, f.st, user, types.NewAmount(1000))
	assert.ErrorIs(t, err, types.ErrPriceGated)

	f.st.Price = types.NewDecimal(99, 100)
	_, err = bonding.Bond(f.ctx, f.st, user, types.NewAmount(1000))
	require.NoError(t, err)

	// the LP pool has no gate
	f.st.Price = types.NewDecimal(101, 100)
	f.fund(t, types.PoolLP, user, 10)
	_, err = f.engines[types.PoolLP].Deposit(f.ctx, f.st, user, types.NewAmount(10))
	require.NoError(t, err)
	_, err = f.engines[types.PoolLP].Bond(f.ctx, f.st, user, types.NewAmount(10))
	require.NoError(t, err)
}

func TestDaoPoolRebasingShares(t *testing.T) {
	f := newFixture(t, nil)
	daoPool := f.engines[types.PoolDAO]
	f.depositAndBond(t, types.PoolDAO, user1, 2000, 2000)
	f.depositAndBond(t, types.PoolDAO, user2, 1000, 1000)

	assert.Equal(t, types.NewAmount(2000).Mul(multiple), f.account(types.PoolDAO, user1).Shares)
	assert.Equal(t, types.NewAmount(1000).Mul(multiple), f.account(types.PoolDAO, user2).Shares)

	// supply minted into totalBonded accrues pro rata
	f.tokens[types.AssetDollar].Faucet(dao, types.NewAmount(300))
	p := f.poolState(types.PoolDAO)
	p.TotalBonded = p.TotalBonded.Add(types.NewAmount(300))
	assert.Equal(t, types.NewAmount(2200), daoPool.BalanceOfBonded(f.st, user1))
	assert.Equal(t, types.NewAmount(1100), daoPool.BalanceOfBonded(f.st, user2))

	_, err := daoPool.UnbondUnderlying(f.ctx, f.st, user2, types.NewAmount(1100))
	require.NoError(t, err)
	assert.True(t, f.account(types.PoolDAO, user2).Shares.IsZero())
	assert.Equal(t, types.NewAmount(1100), f.account(types.PoolDAO, user2).Staged)

	_, err = daoPool.Unbond(f.ctx, f.st, user1, types.NewAmount(1000).Mul(multiple))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(1100), f.account(types.PoolDAO, user1).Staged)
	assert.Equal(t, types.NewAmount(1100), daoPool.BalanceOfBonded(f.st, user1))

	_, err = daoPool.Unbond(f.ctx, f.st, user1, types.NewAmount(1001).Mul(multiple))
	assert.ErrorIs(t, err, types.ErrInsufficientBonded)

	f.st.Epoch += f.params.DaoExitLockupEpochs
	_, err = daoPool.Withdraw(f.ctx, f.st, user2, types.NewAmount(1100))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(1100), f.tokens[types.AssetDollar].BalanceOf(user2))
}

func TestLockedAccountCannotBondOrUnbond(t *testing.T) {
	f := newFixture(t, nil)
	daoPool := f.engines[types.PoolDAO]
	f.depositAndBond(t, types.PoolDAO, user, 2000, 1000)
	p := f.poolState(types.PoolDAO)
	p.Account(user).LockUntil(f.st.Epoch + 10)

	_, err := daoPool.Bond(f.ctx, f.st, user, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrLocked)
	_, err = daoPool.Unbond(f.ctx, f.st, user, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrLocked)
	_, err = daoPool.Withdraw(f.ctx, f.st, user, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrWrongState)
}

func TestEmergencyPauseAndWithdraw(t *testing.T) {
	f := newFixture(t, nil)
	lp := f.engines[types.PoolLP]
	f.depositAndBond(t, types.PoolLP, user, 1000, 1000)
	f.st.Epoch++
	f.reward(types.PoolLP, types.NewAmount(1000))
	_, err := lp.Unbond(f.ctx, f.st, user, types.NewAmount(500))
	require.NoError(t, err)

	_, err = lp.EmergencyPause(f.ctx, f.st, user)
	assert.ErrorIs(t, err, types.ErrNotDao)

	_, err = lp.EmergencyPause(f.ctx, f.st, dao)
	require.NoError(t, err)
	assert.True(t, f.poolState(types.PoolLP).Paused)

	_, err = lp.Bond(f.ctx, f.st, user, types.NewAmount(100))
	assert.ErrorIs(t, err, types.ErrPaused)

	// exits stay open
	_, err = lp.Unbond(f.ctx, f.st, user, types.NewAmount(500))
	require.NoError(t, err)
	f.st.Epoch += f.params.PoolExitLockupEpochs
	_, err = lp.Deposit(f.ctx, f.st, user, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrPaused)
	_, err = lp.Withdraw(f.ctx, f.st, user, types.NewAmount(1000))
	require.NoError(t, err)
	_, err = lp.Claim(f.ctx, f.st, user, 0, types.NewAmount(1000))
	require.NoError(t, err)

	f.reward(types.PoolLP, types.NewAmount(7))
	_, err = lp.EmergencyWithdraw(f.ctx, f.st, user, types.AssetDollar, types.NewAmount(7))
	assert.ErrorIs(t, err, types.ErrNotDao)
	_, err = lp.EmergencyWithdraw(f.ctx, f.st, dao, types.AssetDollar, types.NewAmount(7))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(7), f.tokens[types.AssetDollar].BalanceOf(dao))
}

func TestFailedOperationsLeaveStateUntouched(t *testing.T) {
	f := newFixture(t, nil)
	lp := f.engines[types.PoolLP]
	f.depositAndBond(t, types.PoolLP, user, 1000, 600)
	f.tokens[types.AssetLiquidity].Faucet(user2, types.NewAmount(50))
	before := f.st.Clone()

	// no allowance
	_, err := lp.Deposit(f.ctx, f.st, user2, types.NewAmount(50))
	assert.ErrorIs(t, err, types.ErrInsufficientAllowance)
	_, err = lp.Bond(f.ctx, f.st, user, types.NewAmount(401))
	assert.ErrorIs(t, err, types.ErrInsufficientStaged)
	_, err = lp.Unbond(f.ctx, f.st, user, types.NewAmount(601))
	assert.ErrorIs(t, err, types.ErrInsufficientBonded)
	_, err = lp.Claim(f.ctx, f.st, user1, 0, types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrInsufficientClaimable)
	_, err = lp.Claim(f.ctx, f.st, user1, 3, types.NewAmount(1))
	assert.Error(t, err)

	assert.Equal(t, before, f.st)
	assert.Equal(t, types.NewAmount(50), f.tokens[types.AssetLiquidity].BalanceOf(user2))
}

// requireSolvent checks that the pool holds enough of every asset to pay out
// all principal, all claimable and every account's rewarded balance at once.
func (f *fixture) requireSolvent(t *testing.T, id types.PoolID, step int) {
	t.Helper()
	e := f.engines[id]
	p := f.poolState(id)
	principal := p.TotalStaged.Add(p.TotalBonded)
	held := f.tokens[e.cfg.StakingAsset].BalanceOf(e.Address())
	require.False(t, held.Lt(principal), "%s holds %s of principal %s at step %d", id, held, principal, step)

	for i, asset := range e.cfg.RewardAssets {
		owed := p.TotalClaimable[i]
		if asset == e.cfg.StakingAsset {
			owed = owed.Add(principal)
		}
		for _, a := range p.AccountIDs() {
			r, err := e.BalanceOfRewarded(f.st, a, i)
			require.NoError(t, err)
			owed = owed.Add(r)
		}
		held := f.tokens[asset].BalanceOf(e.Address())
		require.False(t, held.Lt(owed), "%s holds %s %s but owes %s at step %d", id, held, asset, owed, step)
	}
}

func TestLateBondAfterPokeKeepsPoolSolvent(t *testing.T) {
	f := newFixture(t, nil)
	gov := f.engines[types.PoolGov]
	f.depositAndBond(t, types.PoolGov, user1, 7, 7)
	f.reward(types.PoolGov, types.NewAmount(6))
	_, err := gov.PokeRewards(f.ctx, f.st, user1)
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(6), f.account(types.PoolGov, user1).Claimable[0])

	f.depositAndBond(t, types.PoolGov, user2, 6, 1)
	_, err = gov.Bond(f.ctx, f.st, user2, types.NewAmount(5))
	require.NoError(t, err)

	// nothing arrived after the poke, so nobody has anything rewarded
	assert.True(t, f.rewarded(t, types.PoolGov, user1).IsZero())
	assert.True(t, f.rewarded(t, types.PoolGov, user2).IsZero())
	f.requireSolvent(t, types.PoolGov, 0)

	f.st.Epoch += f.params.PoolExitLockupEpochs
	_, err = gov.Claim(f.ctx, f.st, user1, 0, types.NewAmount(6))
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(6), f.tokens[types.AssetDollar].BalanceOf(user1))
	f.requireSolvent(t, types.PoolGov, 1)

	f.reward(types.PoolGov, types.NewAmount(13))
	assert.Equal(t, types.NewAmount(7), f.rewarded(t, types.PoolGov, user1))
	assert.Equal(t, types.NewAmount(5), f.rewarded(t, types.PoolGov, user2))
	f.requireSolvent(t, types.PoolGov, 2)
}

func TestConservationUnderRandomOperations(t *testing.T) {
	f := newFixture(t, nil)
	rng := rand.New(rand.NewSource(42))
	accounts := []types.AccountID{user, user1, user2}
	pools := []types.PoolID{types.PoolDAO, types.PoolBonding, types.PoolLP, types.PoolGov}
	for _, id := range pools {
		for _, a := range accounts {
			f.fund(t, id, a, 1_000_000)
		}
	}

	for i := 0; i < 2000; i++ {
		id := pools[rng.Intn(len(pools))]
		e := f.engines[id]
		a := accounts[rng.Intn(len(accounts))]
		amount := types.NewAmount(uint64(rng.Intn(50) + 1))
		switch rng.Intn(9) {
		case 0:
			_, _ = e.Deposit(f.ctx, f.st, a, amount)
		case 1:
			_, _ = e.Withdraw(f.ctx, f.st, a, amount)
		case 2:
			_, _ = e.Bond(f.ctx, f.st, a, amount)
		case 3:
			_, _ = e.UnbondUnderlying(f.ctx, f.st, a, amount)
		case 4:
			_, _ = e.Unbond(f.ctx, f.st, a, f.account(id, a).Shares.DivUint64(uint64(rng.Intn(3)+1)))
		case 5:
			reward := types.NewAmount(uint64(rng.Intn(20)))
			f.reward(id, reward)
			if id == types.PoolDAO {
				p := f.poolState(id)
				p.TotalBonded = p.TotalBonded.Add(reward)
			}
			if id == types.PoolBonding {
				f.tokens[types.AssetGovernance].Faucet(e.Address(), reward)
			}
		case 6:
			_, err := e.PokeRewards(f.ctx, f.st, a)
			require.NoError(t, err)
		case 7:
			for idx := range e.cfg.RewardAssets {
				claimable := f.account(id, a).Claimable[idx]
				if claimable.IsZero() || e.StatusOf(f.st, a) != types.StatusFrozen {
					continue
				}
				_, err := e.Claim(f.ctx, f.st, a, idx, claimable)
				require.NoError(t, err, "claim %s of %s in %s at step %d", claimable, e.cfg.RewardAssets[idx], id, i)
			}
		case 8:
			f.st.Epoch++
		}

		for _, pid := range pools {
			p := f.poolState(pid)
			staged, shares := types.ZeroAmount(), types.ZeroAmount()
			for _, acct := range p.AccountIDs() {
				v := p.Lookup(acct)
				staged = staged.Add(v.Staged)
				shares = shares.Add(v.Shares)
			}
			require.Equal(t, p.TotalStaged, staged, "staged conservation in %s at step %d", pid, i)
			require.Equal(t, p.TotalShares, shares, "share conservation in %s at step %d", pid, i)
			f.requireSolvent(t, pid, i)
		}
	}
}
