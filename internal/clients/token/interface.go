package token

import (
	"context"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Token is the fungible asset interface the protocol consumes.
type Token interface {
	Asset() types.AssetID
	Transfer(ctx context.Context, from, to types.AccountID, amount types.Amount) error
	TransferFrom(ctx context.Context, spender, from, to types.AccountID, amount types.Amount) error
	Approve(ctx context.Context, owner, spender types.AccountID, amount types.Amount) error
	Allowance(owner, spender types.AccountID) types.Amount
	BalanceOf(account types.AccountID) types.Amount
	TotalSupply() types.Amount

	Mint(ctx context.Context, minter, to types.AccountID, amount types.Amount) error
	IsMinter(account types.AccountID) bool
	AddMinter(ctx context.Context, caller, account types.AccountID) error
	RenounceMinter(ctx context.Context, account types.AccountID) error
}
