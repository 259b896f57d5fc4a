package config

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

const (
	OracleTypeFeed   = "feed"
	OracleTypeStatic = "static"
)

type OracleConfig struct {
	Type string `mapstructure:"type"`
	// feed oracle
	Url     string `mapstructure:"url"`
	Path    string `mapstructure:"path"`
	Timeout int    `mapstructure:"timeout"`
	// static oracle
	StaticPrice string `mapstructure:"static-price"`
	StaticValid bool   `mapstructure:"static-valid"`
}

func (cfg *OracleConfig) Validate() error {
	switch cfg.Type {
	case OracleTypeFeed:
		if cfg.Url == "" {
			return errors.New("oracle url cannot be empty")
		}
		parsedURL, err := url.ParseRequestURI(cfg.Url)
		if err != nil {
			return errors.New("invalid oracle url")
		}
		if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
			return errors.New("oracle url must start with http or https")
		}
		if cfg.Timeout <= 0 {
			return errors.New("timeout cannot be smaller or equal to 0")
		}
	case OracleTypeStatic:
		if _, err := types.DecimalFromString(cfg.StaticPrice); err != nil {
			return fmt.Errorf("invalid static price: %w", err)
		}
	default:
		return fmt.Errorf("unsupported oracle type: %q", cfg.Type)
	}

	return nil
}
