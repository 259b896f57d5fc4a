package oracle

import (
	"context"
	"net/http"
	"time"

	baseclient "github.com/pegkeeper/dollar-protocol-service/internal/clients/base"
	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type FeedResponse struct {
	Price types.Decimal `json:"price"`
	Valid bool          `json:"valid"`
}

// FeedClient reads a TWAP produced by an external price service.
type FeedClient struct {
	config     *config.OracleConfig
	httpClient *http.Client
}

func NewFeedClient(cfg *config.OracleConfig) *FeedClient {
	return &FeedClient{
		config: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Timeout) * time.Millisecond,
		},
	}
}

func (c *FeedClient) GetBaseURL() string {
	return c.config.Url
}

func (c *FeedClient) GetDefaultRequestTimeout() int {
	return c.config.Timeout
}

func (c *FeedClient) GetHttpClient() *http.Client {
	return c.httpClient
}

func (c *FeedClient) Capture(ctx context.Context) (types.Decimal, bool, error) {
	opts := &baseclient.BaseClientOptions{
		Path: c.config.Path,
	}
	resp, err := baseclient.Get[FeedResponse](ctx, c, opts)
	if err != nil {
		return types.DecimalZero(), false, err
	}
	return resp.Price, resp.Valid, nil
}
