package clients

import (
	"context"
	"fmt"
	"time"

	"github.com/pegkeeper/dollar-protocol-service/internal/clients/liquidity"
	"github.com/pegkeeper/dollar-protocol-service/internal/clients/oracle"
	"github.com/pegkeeper/dollar-protocol-service/internal/clients/token"
	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// Clients are the external collaborators the protocol talks to.
type Clients struct {
	Tokens map[types.AssetID]token.Token
	Oracle oracle.Oracle
	Venue  *liquidity.Pair
}

func New(cfg *config.Config) (*Clients, error) {
	dao := types.AccountID(cfg.Protocol.DaoAccount)
	pairAddress := types.AccountID(cfg.Protocol.PairAddress)

	dollar := token.NewLedger(types.AssetDollar, dao)
	gov := token.NewLedger(types.AssetGovernance, dao)
	quote := token.NewLedger(types.AssetQuote)
	lp := token.NewLedger(types.AssetLiquidity, pairAddress)

	tokens := map[types.AssetID]token.Token{
		types.AssetDollar:     dollar,
		types.AssetGovernance: gov,
		types.AssetQuote:      quote,
		types.AssetLiquidity:  lp,
	}
	ledgers := map[types.AssetID]*token.Ledger{
		types.AssetDollar:     dollar,
		types.AssetGovernance: gov,
		types.AssetQuote:      quote,
	}
	for _, a := range cfg.Protocol.Allocations {
		amount, err := types.AmountFromString(a.Amount)
		if err != nil {
			return nil, err
		}
		ledger, ok := ledgers[types.AssetID(a.Asset)]
		if !ok {
			return nil, fmt.Errorf("unsupported allocation asset %s", a.Asset)
		}
		ledger.Faucet(types.AccountID(a.Account), amount)
	}

	priceOracle, err := newOracle(&cfg.Oracle)
	if err != nil {
		return nil, err
	}

	return &Clients{
		Tokens: tokens,
		Oracle: priceOracle,
		Venue:  liquidity.NewPair(pairAddress, dollar, quote, lp, time.Now),
	}, nil
}

func newOracle(cfg *config.OracleConfig) (oracle.Oracle, error) {
	switch cfg.Type {
	case config.OracleTypeFeed:
		return oracle.NewFeedClient(cfg), nil
	case config.OracleTypeStatic:
		price, err := types.DecimalFromString(cfg.StaticPrice)
		if err != nil {
			return nil, err
		}
		return oracle.NewSettableOracle(price, cfg.StaticValid), nil
	}
	return nil, fmt.Errorf("unsupported oracle type %s", cfg.Type)
}

// Token implements pool.TokenSource.
func (c *Clients) Token(asset types.AssetID) (token.Token, error) {
	tk, ok := c.Tokens[asset]
	if !ok {
		return nil, fmt.Errorf("unknown asset %s", asset)
	}
	return tk, nil
}

// TotalSupply of asset, zero for unknown assets.
func (c *Clients) TotalSupply(asset types.AssetID) types.Amount {
	tk, ok := c.Tokens[asset]
	if !ok {
		return types.ZeroAmount()
	}
	return tk.TotalSupply()
}

// CapturePrice reads the oracle once.
func (c *Clients) CapturePrice(ctx context.Context) (types.Decimal, bool, error) {
	return c.Oracle.Capture(ctx)
}
