package pool

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/liquidity"
	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/state"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

const provideDeadline = 5 * time.Minute

var (
	errProvideUnsupported = types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "Liquidity: pool cannot provide")
	errCounterReserve     = types.NewErrorWithMsg(http.StatusBadRequest, types.BadRequest, "Liquidity: counter reserve is not empty")
)

// Provide compounds value of caller's rewarded balance into new liquidity,
// paying the matching counter asset from caller, and bonds the minted LP
// tokens directly. The caller must have approved the pool for the counter asset.
func (e *Engine) Provide(ctx context.Context, st *state.ProtocolState, caller types.AccountID, value types.Amount) (*types.Event, error) {
	return e.provide(ctx, st, caller, value, false)
}

// ProvideOneSided wraps rewarded balance into LP without any counter asset.
// Only possible while the venue holds no counter reserve.
func (e *Engine) ProvideOneSided(ctx context.Context, st *state.ProtocolState, caller types.AccountID, value types.Amount) (*types.Event, error) {
	return e.provide(ctx, st, caller, value, true)
}

func (e *Engine) provide(ctx context.Context, st *state.ProtocolState, caller types.AccountID, value types.Amount, oneSided bool) (*types.Event, error) {
	if !e.cfg.CanProvide() || e.venue == nil {
		return nil, errProvideUnsupported
	}
	p, err := e.pool(st)
	if err != nil {
		return nil, err
	}
	if p.Paused {
		return nil, types.ErrPaused
	}
	view := p.Lookup(caller)
	if err := requireFrozen(view, st.Epoch); err != nil {
		return nil, err
	}
	rewarded, err := e.balanceOfRewarded(p, 0, view)
	if err != nil {
		return nil, err
	}
	if rewarded.Lt(value) {
		return nil, types.ErrInsufficientRewarded
	}

	rewardAsset := e.cfg.RewardAssets[0]
	dollar, err := e.tokens.Token(rewardAsset)
	if err != nil {
		return nil, err
	}
	counter, err := e.tokens.Token(e.cfg.CounterAsset)
	if err != nil {
		return nil, err
	}
	pair, err := e.venue.GetPair(rewardAsset, e.cfg.CounterAsset)
	if err != nil {
		return nil, err
	}
	reserveDollar, reserveCounter, err := e.venue.GetReserves(ctx, rewardAsset, e.cfg.CounterAsset)
	if err != nil {
		return nil, err
	}

	counterAmount := types.ZeroAmount()
	if oneSided {
		if !reserveCounter.IsZero() {
			return nil, errCounterReserve
		}
	} else {
		counterAmount = value.MulDiv(reserveCounter, reserveDollar)
	}

	totalRewarded, err := e.totalRewarded(p, 0)
	if err != nil {
		return nil, err
	}
	withPhantom := rewardedWithPhantom(p, 0, totalRewarded)
	bondedBefore := p.TotalBonded

	if !counterAmount.IsZero() {
		if err := counter.TransferFrom(ctx, e.cfg.Address, caller, e.cfg.Address, counterAmount); err != nil {
			return nil, err
		}
	}
	refund := func(used types.Amount) {
		left := counterAmount.SaturatingSub(used)
		if left.IsZero() {
			return
		}
		if err := counter.Transfer(ctx, e.cfg.Address, caller, left); err != nil {
			log.Ctx(ctx).Error().Err(err).Str("account", caller.String()).Msg("failed to refund counter asset")
		}
	}
	resetApprovals := func() {
		for _, tk := range []token.Token{dollar, counter} {
			if err := tk.Approve(ctx, e.cfg.Address, pair, types.ZeroAmount()); err != nil {
				log.Ctx(ctx).Error().Err(err).Str("asset", string(tk.Asset())).Str("spender", pair.String()).
					Msg("failed to reset venue allowance")
			}
		}
	}

	if err := dollar.Approve(ctx, e.cfg.Address, pair, value); err != nil {
		refund(types.ZeroAmount())
		return nil, err
	}
	if err := counter.Approve(ctx, e.cfg.Address, pair, counterAmount); err != nil {
		resetApprovals()
		refund(types.ZeroAmount())
		return nil, err
	}
	res, err := e.venue.AddLiquidity(ctx, liquidity.AddLiquidityRequest{
		AssetA:         rewardAsset,
		AssetB:         e.cfg.CounterAsset,
		AmountADesired: value,
		AmountBDesired: counterAmount,
		From:           e.cfg.Address,
		Recipient:      e.cfg.Address,
		Deadline:       time.Now().Add(provideDeadline),
	})
	resetApprovals()
	if err != nil {
		refund(types.ZeroAmount())
		return nil, err
	}
	refund(res.AmountB)

	phantomFromBonded := withPhantom.MulDivUp(res.Liquidity, bondedBefore)

	acct := p.Account(caller)
	acct.Shares = acct.Shares.Add(res.Liquidity)
	p.TotalShares = p.TotalShares.Add(res.Liquidity)
	p.TotalBonded = p.TotalBonded.Add(res.Liquidity)
	addPhantom := res.AmountA.Mul(phantomScale).Add(phantomFromBonded)
	acct.Phantom[0] = acct.Phantom[0].Add(addPhantom)
	p.TotalPhantom[0] = p.TotalPhantom[0].Add(addPhantom)

	return e.event(types.EventProvide, st, caller).
		With("dollar", res.AmountA).
		With("counter", res.AmountB).
		With("liquidity", res.Liquidity).
		WithString("one_sided", strconv.FormatBool(oneSided)), nil
}
