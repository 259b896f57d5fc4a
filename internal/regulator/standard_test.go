package regulator

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/pool"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

const (
	dao      types.AccountID = "dao"
	treasury types.AccountID = "treasury"
	holder   types.AccountID = "holder"
)

type ledgers map[types.AssetID]*token.Ledger

func (l ledgers) Token(asset types.AssetID) (token.Token, error) {
	tk, ok := l[asset]
	if !ok {
		return nil, fmt.Errorf("unknown asset %s", asset)
	}
	return tk, nil
}

func newProtocol(t *testing.T, supply uint64, minters ...types.AccountID) (*Protocol, ledgers) {
	t.Helper()
	params := types.DefaultGlobalParams()
	tokens := ledgers{
		types.AssetDollar:     token.NewLedger(types.AssetDollar, minters...),
		types.AssetGovernance: token.NewLedger(types.AssetGovernance, minters...),
	}
	tokens[types.AssetDollar].Faucet(holder, types.NewAmount(supply))

	var pools []*state.Pool
	for _, cfg := range pool.Layout(params, dao) {
		pools = append(pools, state.NewPool(cfg.ID, len(cfg.RewardAssets)))
	}
	st := state.New(params.ActiveVersion, pools...)
	st.Epoch = params.BootstrappingPeriod + 1

	return &Protocol{State: st, Params: params, Tokens: tokens, DAO: dao, Treasury: treasury}, tokens
}

func standard(t *testing.T, p *Protocol) *Standard {
	t.Helper()
	v, ok := p.Params.Version(p.Params.ActiveVersion)
	require.True(t, ok)
	return NewStandard(v)
}

func TestExpansionSplitsRewards(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000, dao)
	dollar := tokens[types.AssetDollar]

	evt, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("1.15"), true)
	require.NoError(t, err)

	assert.Equal(t, types.EventSupplyIncrease, evt.Type)
	assert.Equal(t, "54000", evt.Fields["new_bonded"])
	assert.Equal(t, "0", evt.Fields["less_debt"])
	assert.Equal(t, types.NewAmount(1_054_000), dollar.TotalSupply())
	assert.Equal(t, types.NewAmount(34_020), dollar.BalanceOf(types.PoolAddress(dao, types.PoolBonding)))
	assert.Equal(t, types.NewAmount(14_580), dollar.BalanceOf(types.PoolAddress(dao, types.PoolLP)))
	assert.Equal(t, types.NewAmount(5_400), dollar.BalanceOf(treasury))
	assert.True(t, dollar.BalanceOf(dao).IsZero())

	daoPool, _ := p.State.Pool(types.PoolDAO)
	assert.True(t, daoPool.TotalBonded.IsZero())
}

func TestExpansionBelowLimit(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000, dao)
	_, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("1.02"), true)
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(1_020_000), tokens[types.AssetDollar].TotalSupply())
}

func TestExpansionClearsDebtFirst(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000, dao)
	dollar := tokens[types.AssetDollar]
	p.State.Debt = types.NewAmount(10_000)

	evt, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("1.02"), true)
	require.NoError(t, err)

	assert.Equal(t, "10000", evt.Fields["less_debt"])
	assert.Equal(t, "10000", evt.Fields["new_redeemable"])
	assert.Equal(t, "10000", evt.Fields["new_bonded"])
	assert.True(t, p.State.Debt.IsZero())
	assert.Equal(t, types.NewAmount(10_000), p.State.Redeemable)
	assert.Equal(t, types.NewAmount(10_000), dollar.BalanceOf(dao))
	assert.Equal(t, types.NewAmount(2_700), dollar.BalanceOf(types.PoolAddress(dao, types.PoolLP)))
	assert.Equal(t, types.NewAmount(6_300), dollar.BalanceOf(types.PoolAddress(dao, types.PoolBonding)))
	assert.Equal(t, types.NewAmount(1_000), dollar.BalanceOf(treasury))
}

func TestExpansionDustStaysWithRegulator(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000, dao)
	dollar := tokens[types.AssetDollar]

	_, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("1.000011"), true)
	require.NoError(t, err)

	assert.Equal(t, types.NewAmount(1_000_011), dollar.TotalSupply())
	assert.Equal(t, types.NewAmount(2), dollar.BalanceOf(types.PoolAddress(dao, types.PoolLP)))
	assert.Equal(t, types.NewAmount(6), dollar.BalanceOf(types.PoolAddress(dao, types.PoolBonding)))
	assert.Equal(t, types.NewAmount(1), dollar.BalanceOf(treasury))
	assert.Equal(t, types.NewAmount(2), dollar.BalanceOf(dao))
}

func TestContractionAccruesCappedDebt(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000, dao)
	bonding, _ := p.State.Pool(types.PoolBonding)
	bonding.TotalBonded = types.NewAmount(10_000)
	gov := tokens[types.AssetGovernance]

	evt, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("0.9"), true)
	require.NoError(t, err)
	assert.Equal(t, types.EventSupplyDecrease, evt.Type)
	assert.Equal(t, types.NewAmount(100_000), p.State.Debt)
	// shortfall is capped at the supply change limit for the reward
	assert.Equal(t, types.NewAmount(540), gov.BalanceOf(types.PoolAddress(dao, types.PoolBonding)))
	assert.Equal(t, types.NewAmount(1_000_000), tokens[types.AssetDollar].TotalSupply())

	_, err = standard(t, p).Step(context.Background(), p, types.MustDecimal("0.5"), true)
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(200_000), p.State.Debt)

	evt, err = standard(t, p).Step(context.Background(), p, types.MustDecimal("0.99"), true)
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(200_000), p.State.Debt)
	assert.Equal(t, "0", evt.Fields["new_debt"])
	assert.Equal(t, types.NewAmount(540+540+100), gov.BalanceOf(types.PoolAddress(dao, types.PoolBonding)))
}

func TestBootstrappingMintsRegardlessOfPrice(t *testing.T) {
	for _, price := range []string{"0.5", "1", "1.5"} {
		t.Run(price, func(t *testing.T) {
			p, tokens := newProtocol(t, 1_000_000, dao)
			p.State.Epoch = 10
			dollar := tokens[types.AssetDollar]

			evt, err := standard(t, p).Step(context.Background(), p, types.MustDecimal(price), true)
			require.NoError(t, err)

			assert.Equal(t, types.EventSupplyIncrease, evt.Type)
			assert.Equal(t, "true", evt.Fields["bootstrapping"])
			assert.Equal(t, types.NewAmount(27_000), dollar.BalanceOf(dao))
			assert.Equal(t, types.NewAmount(27_000), dollar.BalanceOf(types.PoolAddress(dao, types.PoolLP)))
			daoPool, _ := p.State.Pool(types.PoolDAO)
			assert.Equal(t, types.NewAmount(27_000), daoPool.TotalBonded)
		})
	}
}

func TestInvalidAndNeutralPrices(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000, dao)
	before := p.State.Clone()

	evt, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("1.5"), false)
	require.NoError(t, err)
	assert.Equal(t, types.EventSupplyNeutral, evt.Type)
	assert.Equal(t, string(types.OracleInvalid), evt.Fields["reason"])

	evt, err = standard(t, p).Step(context.Background(), p, types.DecimalOne(), true)
	require.NoError(t, err)
	assert.Equal(t, types.EventSupplyNeutral, evt.Type)

	assert.Equal(t, before, p.State)
	assert.Equal(t, types.NewAmount(1_000_000), tokens[types.AssetDollar].TotalSupply())
}

func TestMissingMinterRoleAbortsStep(t *testing.T) {
	p, tokens := newProtocol(t, 1_000_000)
	p.State.Debt = types.NewAmount(10_000)
	before := p.State.Clone()

	_, err := standard(t, p).Step(context.Background(), p, types.MustDecimal("1.1"), true)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrNotMinter)
	assert.Equal(t, before, p.State)
	assert.Equal(t, types.NewAmount(1_000_000), tokens[types.AssetDollar].TotalSupply())
}

func TestCatalog(t *testing.T) {
	params := types.DefaultGlobalParams()
	params.Versions = append(params.Versions, &types.VersionedRegulatorParams{
		Version:                  "v2",
		SupplyChangeLimit:        types.NewPercent(3),
		MaxDebtRatio:             types.NewPercent(15),
		PoolLPRewardPercent:      30,
		PoolBondingRewardPercent: 60,
		TreasuryRewardPercent:    10,
	})

	catalog := NewCatalog(params)
	assert.Equal(t, []string{"v1", "v2"}, catalog.Versions())

	impl, ok := catalog.Get("v2")
	require.True(t, ok)
	assert.Equal(t, "v2", impl.Version())

	_, ok = catalog.Get("v3")
	assert.False(t, ok)
}
