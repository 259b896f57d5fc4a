package regulator

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Standard is the fixed-percentage supply regulator.
type Standard struct {
	params *types.VersionedRegulatorParams
}

func NewStandard(params *types.VersionedRegulatorParams) *Standard {
	return &Standard{params: params}
}

func (s *Standard) Version() string {
	return s.params.Version
}

func (s *Standard) Initialize(ctx context.Context, p *Protocol) error {
	log.Ctx(ctx).Info().
		Str("version", s.params.Version).
		Uint64("epoch", p.State.Epoch).
		Msg("regulator implementation initialized")
	return nil
}

func (s *Standard) Step(ctx context.Context, p *Protocol, price types.Decimal, valid bool) (*types.Event, error) {
	st := p.State
	if !valid {
		log.Ctx(ctx).Warn().Err(types.ErrOracleInvalid).Uint64("epoch", st.Epoch).Msg("skipping rebase")
		return types.NewEvent(types.EventSupplyNeutral, st.Epoch).
			WithString("reason", string(types.ErrOracleInvalid.ErrorCode)).
			With("price", price), nil
	}

	dollar, err := p.Tokens.Token(types.AssetDollar)
	if err != nil {
		return nil, err
	}
	supply := dollar.TotalSupply()

	var pl *plan
	switch {
	case p.Params.IsBootstrapping(st.Epoch):
		pl = s.bootstrap(p, supply, price)
	case price.GreaterThanOne():
		pl = s.expand(p, supply, price)
	case price.LessThanOne():
		pl = s.contract(p, supply, price)
	default:
		pl = &plan{event: types.NewEvent(types.EventSupplyNeutral, st.Epoch).With("price", price)}
	}

	if err := pl.apply(ctx, p); err != nil {
		return nil, err
	}
	log.Ctx(ctx).Debug().
		Uint64("epoch", st.Epoch).
		Str("event", pl.event.Type.String()).
		Interface("fields", pl.event.Fields).
		Msg("regulator step applied")
	return pl.event, nil
}

func (s *Standard) bootstrap(p *Protocol, supply types.Amount, price types.Decimal) *plan {
	reward := supply.MulDecimal(s.params.SupplyChangeLimit)
	half := reward.DivUint64(2)

	pl := &plan{daoBonded: half}
	pl.mint(types.AssetDollar, p.DAO, half)
	pl.mint(types.AssetDollar, p.poolAddress(types.PoolLP), half)
	pl.event = types.NewEvent(types.EventSupplyIncrease, p.State.Epoch).
		With("price", price).
		WithString("bootstrapping", "true").
		With("new_redeemable", types.ZeroAmount()).
		With("less_debt", types.ZeroAmount()).
		With("new_bonded", half.Add(half))
	return pl
}

func (s *Standard) expand(p *Protocol, supply types.Amount, price types.Decimal) *plan {
	st := p.State
	delta := types.MinAmount(
		supply.MulDecimal(price.Sub(types.DecimalOne())),
		supply.MulDecimal(s.params.SupplyChangeLimit),
	)

	lessDebt := types.MinAmount(st.Debt, delta)
	newRedeemable := lessDebt
	newBonded := delta.Sub(newRedeemable)

	lpReward := newBonded.Percent(s.params.PoolLPRewardPercent)
	bondingReward := newBonded.Percent(s.params.PoolBondingRewardPercent)
	treasuryReward := newBonded.Percent(s.params.TreasuryRewardPercent)
	dust := newBonded.Sub(lpReward).Sub(bondingReward).Sub(treasuryReward)

	pl := &plan{lessDebt: lessDebt, newRedeemable: newRedeemable}
	// debt clearing first, distribution after
	pl.mint(types.AssetDollar, p.DAO, newRedeemable)
	pl.mint(types.AssetDollar, p.poolAddress(types.PoolLP), lpReward)
	pl.mint(types.AssetDollar, p.poolAddress(types.PoolBonding), bondingReward)
	pl.mint(types.AssetDollar, p.Treasury, treasuryReward)
	pl.mint(types.AssetDollar, p.DAO, dust)

	pl.event = types.NewEvent(types.EventSupplyIncrease, st.Epoch).
		With("price", price).
		With("new_redeemable", newRedeemable).
		With("less_debt", lessDebt).
		With("new_bonded", newBonded).
		With("pool_lp", lpReward).
		With("pool_bonding", bondingReward).
		With("treasury", treasuryReward)
	return pl
}

func (s *Standard) contract(p *Protocol, supply types.Amount, price types.Decimal) *plan {
	st := p.State
	shortfall := types.DecimalOne().Sub(price)

	debt := st.Debt
	if limit := supply.MulDecimal(s.params.MaxDebtRatio); debt.Lt(limit) {
		debt = types.MinAmount(debt.Add(supply.MulDecimal(shortfall)), limit)
	}
	newDebt := debt.Sub(st.Debt)

	bonding, _ := st.Pool(types.PoolBonding)
	govReward := types.ZeroAmount()
	if bonding != nil {
		govReward = bonding.TotalBonded.MulDecimal(types.MinDecimal(shortfall, s.params.SupplyChangeLimit))
	}

	pl := &plan{newDebt: newDebt}
	pl.mint(types.AssetGovernance, p.poolAddress(types.PoolBonding), govReward)
	pl.event = types.NewEvent(types.EventSupplyDecrease, st.Epoch).
		With("price", price).
		With("new_debt", newDebt).
		With("total_debt", debt).
		With("governance_reward", govReward)
	return pl
}
