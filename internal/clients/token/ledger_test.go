package token

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

func TestLedgerTransferFromRespectsAllowance(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(types.AssetDollar)
	l.Faucet("alice", types.NewAmount(1000))

	err := l.TransferFrom(ctx, "pool", "alice", "pool", types.NewAmount(1))
	require.ErrorIs(t, err, types.ErrInsufficientAllowance)

	require.NoError(t, l.Approve(ctx, "alice", "pool", types.NewAmount(600)))
	require.NoError(t, l.TransferFrom(ctx, "pool", "alice", "pool", types.NewAmount(400)))
	assert.Equal(t, types.NewAmount(200), l.Allowance("alice", "pool"))
	assert.Equal(t, types.NewAmount(600), l.BalanceOf("alice"))
	assert.Equal(t, types.NewAmount(400), l.BalanceOf("pool"))

	err = l.TransferFrom(ctx, "pool", "alice", "pool", types.NewAmount(300))
	assert.ErrorIs(t, err, types.ErrInsufficientAllowance)
}

func TestLedgerUnlimitedAllowanceIsNotConsumed(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(types.AssetDollar)
	l.Faucet("alice", types.NewAmount(10))
	require.NoError(t, l.Approve(ctx, "alice", "pool", types.MaxAmount()))

	require.NoError(t, l.TransferFrom(ctx, "pool", "alice", "pool", types.NewAmount(10)))
	assert.Equal(t, types.MaxAmount(), l.Allowance("alice", "pool"))

	err := l.TransferFrom(ctx, "pool", "alice", "pool", types.NewAmount(1))
	assert.ErrorIs(t, err, types.ErrInsufficientBalance)
}

func TestLedgerMinterRole(t *testing.T) {
	ctx := context.Background()
	l := NewLedger(types.AssetGovernance, "dao")

	require.ErrorIs(t, l.Mint(ctx, "mallory", "mallory", types.NewAmount(1)), types.ErrNotMinter)
	require.NoError(t, l.Mint(ctx, "dao", "pool", types.NewAmount(5)))
	assert.Equal(t, types.NewAmount(5), l.TotalSupply())

	require.NoError(t, l.AddMinter(ctx, "dao", "pair"))
	assert.True(t, l.IsMinter("pair"))
	require.NoError(t, l.RenounceMinter(ctx, "pair"))
	assert.False(t, l.IsMinter("pair"))
	assert.ErrorIs(t, l.RenounceMinter(ctx, "pair"), types.ErrNotMinter)
}
