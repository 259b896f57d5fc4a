package config

import "errors"

// KeeperConfig drives the cron job that advances the epoch when it is due.
type KeeperConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Account string `mapstructure:"account"`
	// seconds between attempts
	Interval int `mapstructure:"interval"`
	// upper bound of epochs advanced in one run
	MaxCatchUp int `mapstructure:"max-catch-up"`
}

func (cfg *KeeperConfig) Validate() error {
	if !cfg.Enabled {
		return nil
	}

	if cfg.Account == "" {
		return errors.New("keeper account cannot be empty")
	}

	if cfg.Interval <= 0 {
		return errors.New("keeper interval must be a positive integer")
	}

	if cfg.MaxCatchUp <= 0 {
		return errors.New("keeper max catch up must be a positive integer")
	}

	return nil
}
