package liquidity

import (
	"context"
	"time"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type AddLiquidityRequest struct {
	AssetA         types.AssetID
	AssetB         types.AssetID
	AmountADesired types.Amount
	AmountBDesired types.Amount
	AmountAMin     types.Amount
	AmountBMin     types.Amount
	From           types.AccountID
	Recipient      types.AccountID
	Deadline       time.Time
}

type AddLiquidityResult struct {
	AmountA   types.Amount
	AmountB   types.Amount
	Liquidity types.Amount
}

// Venue is the external liquidity pool the LP reward pool compounds into.
// AddLiquidity pulls the used amounts from From with TransferFrom, so From
// must have approved the pair address beforehand.
type Venue interface {
	GetPair(assetA, assetB types.AssetID) (types.AccountID, error)
	GetReserves(ctx context.Context, assetA, assetB types.AssetID) (reserveA, reserveB types.Amount, err error)
	AddLiquidity(ctx context.Context, req AddLiquidityRequest) (*AddLiquidityResult, error)
}
