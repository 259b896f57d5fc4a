package liquidity

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Pair is an in-memory constant-product pool between two tokens. It holds its
// reserves on the token ledgers under its own address and mints the LP token.
type Pair struct {
	mu      sync.Mutex
	address types.AccountID
	tokenA  token.Token
	tokenB  token.Token
	lp      token.Token
	now     func() time.Time
}

// NewPair expects the pair address to hold the minter role on lp.
func NewPair(address types.AccountID, tokenA, tokenB, lp token.Token, now func() time.Time) *Pair {
	if now == nil {
		now = time.Now
	}
	return &Pair{address: address, tokenA: tokenA, tokenB: tokenB, lp: lp, now: now}
}

func (p *Pair) Address() types.AccountID {
	return p.address
}

func (p *Pair) GetPair(assetA, assetB types.AssetID) (types.AccountID, error) {
	a, b := p.tokenA.Asset(), p.tokenB.Asset()
	if (assetA == a && assetB == b) || (assetA == b && assetB == a) {
		return p.address, nil
	}
	return "", fmt.Errorf("no pair for %s/%s", assetA, assetB)
}

// GetReserves returns the reserves ordered as the requested assets.
func (p *Pair) GetReserves(ctx context.Context, assetA, assetB types.AssetID) (types.Amount, types.Amount, error) {
	if _, err := p.GetPair(assetA, assetB); err != nil {
		return types.ZeroAmount(), types.ZeroAmount(), err
	}
	reserveA, reserveB := p.tokenA.BalanceOf(p.address), p.tokenB.BalanceOf(p.address)
	if assetA == p.tokenB.Asset() {
		return reserveB, reserveA, nil
	}
	return reserveA, reserveB, nil
}

func (p *Pair) AddLiquidity(ctx context.Context, req AddLiquidityRequest) (*AddLiquidityResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !req.Deadline.IsZero() && p.now().After(req.Deadline) {
		return nil, fmt.Errorf("liquidity: expired")
	}
	tokenA, tokenB, desiredA, desiredB, minA, minB := p.tokenA, p.tokenB, req.AmountADesired, req.AmountBDesired, req.AmountAMin, req.AmountBMin
	if req.AssetA == p.tokenB.Asset() && req.AssetB == p.tokenA.Asset() {
		tokenA, tokenB = tokenB, tokenA
	} else if req.AssetA != p.tokenA.Asset() || req.AssetB != p.tokenB.Asset() {
		return nil, fmt.Errorf("no pair for %s/%s", req.AssetA, req.AssetB)
	}

	reserveA, reserveB := tokenA.BalanceOf(p.address), tokenB.BalanceOf(p.address)
	amountA, amountB, err := optimalAmounts(reserveA, reserveB, desiredA, desiredB, minA, minB)
	if err != nil {
		return nil, err
	}

	supply := p.lp.TotalSupply()
	var liquidity types.Amount
	switch {
	case supply.IsZero() && amountB.IsZero():
		liquidity = amountA
	case supply.IsZero():
		liquidity = amountA.Mul(amountB).Sqrt()
	case reserveB.IsZero():
		liquidity = amountA.MulDiv(supply, reserveA)
	default:
		liquidity = types.MinAmount(amountA.MulDiv(supply, reserveA), amountB.MulDiv(supply, reserveB))
	}
	if liquidity.IsZero() {
		return nil, fmt.Errorf("liquidity: insufficient liquidity minted")
	}

	if err := tokenA.TransferFrom(ctx, p.address, req.From, p.address, amountA); err != nil {
		return nil, err
	}
	if !amountB.IsZero() {
		if err := tokenB.TransferFrom(ctx, p.address, req.From, p.address, amountB); err != nil {
			// hand back what was already pulled
			_ = tokenA.Transfer(ctx, p.address, req.From, amountA)
			return nil, err
		}
	}
	if err := p.lp.Mint(ctx, p.address, req.Recipient, liquidity); err != nil {
		return nil, err
	}

	return &AddLiquidityResult{AmountA: amountA, AmountB: amountB, Liquidity: liquidity}, nil
}

func optimalAmounts(reserveA, reserveB, desiredA, desiredB, minA, minB types.Amount) (types.Amount, types.Amount, error) {
	switch {
	case reserveA.IsZero() && reserveB.IsZero():
		return desiredA, desiredB, nil
	case reserveB.IsZero():
		// one-sided: nothing to pair against
		return desiredA, types.ZeroAmount(), nil
	case reserveA.IsZero():
		return types.ZeroAmount(), types.ZeroAmount(), fmt.Errorf("liquidity: empty reserve")
	}

	optimalB := desiredA.MulDiv(reserveB, reserveA)
	if !optimalB.Gt(desiredB) {
		if optimalB.Lt(minB) {
			return types.ZeroAmount(), types.ZeroAmount(), fmt.Errorf("liquidity: insufficient B amount")
		}
		return desiredA, optimalB, nil
	}
	optimalA := desiredB.MulDiv(reserveA, reserveB)
	if optimalA.Lt(minA) {
		return types.ZeroAmount(), types.ZeroAmount(), fmt.Errorf("liquidity: insufficient A amount")
	}
	return optimalA, desiredB, nil
}
