package config

import (
	"errors"
	"fmt"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

// AllocationConfig credits an account with an asset at genesis.
type AllocationConfig struct {
	Account string `mapstructure:"account"`
	Asset   string `mapstructure:"asset"`
	Amount  string `mapstructure:"amount"`
}

type ProtocolConfig struct {
	DaoAccount      string             `mapstructure:"dao-account"`
	TreasuryAccount string             `mapstructure:"treasury-account"`
	PairAddress     string             `mapstructure:"pair-address"`
	Allocations     []AllocationConfig `mapstructure:"allocations"`
}

func (cfg *ProtocolConfig) Validate() error {
	if cfg.DaoAccount == "" {
		return errors.New("dao account cannot be empty")
	}

	if cfg.TreasuryAccount == "" {
		return errors.New("treasury account cannot be empty")
	}

	if cfg.DaoAccount == cfg.TreasuryAccount {
		return errors.New("dao and treasury accounts must differ")
	}

	if cfg.PairAddress == "" {
		return errors.New("pair address cannot be empty")
	}

	for i, a := range cfg.Allocations {
		if a.Account == "" {
			return fmt.Errorf("allocation %d: account cannot be empty", i)
		}
		switch types.AssetID(a.Asset) {
		case types.AssetDollar, types.AssetGovernance, types.AssetQuote:
		default:
			return fmt.Errorf("allocation %d: unsupported asset %q", i, a.Asset)
		}
		if _, err := types.AmountFromString(a.Amount); err != nil {
			return fmt.Errorf("allocation %d: invalid amount: %w", i, err)
		}
	}

	return nil
}
