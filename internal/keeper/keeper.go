package keeper

import (
	"context"
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

type Advancer interface {
	Advance(ctx context.Context, caller types.AccountID) ([]*types.Event, *types.Error)
}

// Keeper calls advance on a schedule until the protocol has caught up with
// the wall clock. It is an ordinary caller and holds no protocol state.
type Keeper struct {
	advancer   Advancer
	account    types.AccountID
	interval   int
	maxCatchUp int
}

func New(cfg *config.KeeperConfig, advancer Advancer) *Keeper {
	return &Keeper{
		advancer:   advancer,
		account:    types.AccountID(cfg.Account),
		interval:   cfg.Interval,
		maxCatchUp: cfg.MaxCatchUp,
	}
}

// RunOnce advances at most maxCatchUp epochs and returns how many it advanced.
// Reaching an epoch that is not due yet ends the run without error.
func (k *Keeper) RunOnce(ctx context.Context) (int, error) {
	for n := 0; n < k.maxCatchUp; n++ {
		if _, err := k.advancer.Advance(ctx, k.account); err != nil {
			if errors.Is(err, types.ErrNotReady) {
				return n, nil
			}
			return n, err
		}
	}
	return k.maxCatchUp, nil
}

// Start schedules RunOnce every interval seconds until ctx is done. A run
// still in progress skips the next tick.
func (k *Keeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger)))
	logger := log.With().Str("component", "keeper").Str("account", k.account.String()).Logger()

	_, err := c.AddFunc(fmt.Sprintf("@every %ds", k.interval), func() {
		runCtx := logger.WithContext(ctx)
		advanced, err := k.RunOnce(runCtx)
		if err != nil {
			logger.Error().Err(err).Int("advanced", advanced).Msg("keeper run failed")
			return
		}
		if advanced > 0 {
			logger.Info().Int("advanced", advanced).Msg("keeper advanced epochs")
		}
	})
	if err != nil {
		return err
	}

	c.Start()
	logger.Info().Int("interval", k.interval).Msg("keeper started")

	go func() {
		<-ctx.Done()
		logger.Info().Msg("stopping keeper")
		<-c.Stop().Done()
	}()
	return nil
}
