package clients

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

func testConfig() *config.Config {
	return &config.Config{
		Protocol: config.ProtocolConfig{
			DaoAccount:      "dao",
			TreasuryAccount: "treasury",
			PairAddress:     "pair:univ2",
			Allocations: []config.AllocationConfig{
				{Account: "alice", Asset: "dollar", Amount: "1000"},
				{Account: "alice", Asset: "quote", Amount: "250"},
			},
		},
		Oracle: config.OracleConfig{Type: config.OracleTypeStatic, StaticPrice: "1.1", StaticValid: true},
	}
}

func TestNewClients(t *testing.T) {
	c, err := New(testConfig())
	require.NoError(t, err)

	dollar, err := c.Token(types.AssetDollar)
	require.NoError(t, err)
	assert.Equal(t, types.NewAmount(1000), dollar.BalanceOf("alice"))
	assert.True(t, dollar.IsMinter("dao"))

	lp, err := c.Token(types.AssetLiquidity)
	require.NoError(t, err)
	assert.True(t, lp.IsMinter("pair:univ2"))
	assert.False(t, lp.IsMinter("dao"))

	assert.Equal(t, types.NewAmount(250), c.TotalSupply(types.AssetQuote))
	assert.True(t, c.TotalSupply("unknown").IsZero())

	_, err = c.Token("unknown")
	assert.Error(t, err)

	price, valid, err := c.CapturePrice(context.Background())
	require.NoError(t, err)
	assert.True(t, valid)
	assert.Equal(t, types.MustDecimal("1.1"), price)

	pair, err := c.Venue.GetPair(types.AssetQuote, types.AssetDollar)
	require.NoError(t, err)
	assert.Equal(t, types.AccountID("pair:univ2"), pair)
}

func TestNewClientsFeedOracle(t *testing.T) {
	cfg := testConfig()
	cfg.Oracle = config.OracleConfig{Type: config.OracleTypeFeed, Url: "http://localhost:1", Path: "/twap", Timeout: 10}
	c, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, c.Oracle)
}
