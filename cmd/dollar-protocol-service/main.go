package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/cmd/dollar-protocol-service/cli"
	"github.com/pegkeeper/dollar-protocol-service/internal/api"
	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/db/model"
	"github.com/pegkeeper/dollar-protocol-service/internal/keeper"
	"github.com/pegkeeper/dollar-protocol-service/internal/observability/healthcheck"
	"github.com/pegkeeper/dollar-protocol-service/internal/observability/metrics"
	"github.com/pegkeeper/dollar-protocol-service/internal/queue"
	"github.com/pegkeeper/dollar-protocol-service/internal/services"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}
}

func main() {
	ctx := context.Background()

	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Fatal().Err(err).Msg("error while setting up cli")
	}

	// load config
	cfgPath := cli.GetConfigPath()
	cfg, err := config.New(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading config file: %s", cfgPath))
	}

	paramsPath := cli.GetGlobalParamsPath()
	params, err := types.NewGlobalParams(paramsPath)
	if err != nil {
		log.Fatal().Err(err).Msg(fmt.Sprintf("error while loading global params file: %s", paramsPath))
	}

	metrics.Init(cfg.Metrics.GetMetricsPort(), cfg.Metrics.Path)

	err = model.Setup(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up protocol db model")
	}

	queues, err := queue.New(&cfg.Queue)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up events queue")
	}
	defer queues.Stop()

	services, err := services.New(ctx, cfg, params, queues)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up protocol services layer")
	}
	defer services.Stop()

	if cli.GetReplayFlag() {
		log.Info().Msg("Replay flag is set. Republishing unpublished events.")
		replayed, err := services.ReplayUnpublishedEvents(ctx)
		if err != nil {
			log.Fatal().Err(err).Int("replayed", replayed).Msg("error while replaying unpublished events")
		}
		log.Info().Int("replayed", replayed).Msg("Replay of unpublished events completed.")
		return
	}

	healthcheck.SetLogger(log.With().Str("component", "healthcheck").Logger())
	if err := healthcheck.StartHealthCheckCron(ctx, queues, cfg.Server.HealthCheckInterval); err != nil {
		log.Fatal().Err(err).Msg("error while starting health check cron")
	}

	if cfg.Keeper.Enabled {
		if err := keeper.New(&cfg.Keeper, services).Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("error while starting keeper")
		}
	}

	apiServer, err := api.New(ctx, cfg, services)
	if err != nil {
		log.Fatal().Err(err).Msg("error while setting up protocol api service")
	}
	if err = apiServer.Start(); err != nil {
		log.Fatal().Err(err).Msg("error while starting protocol api service")
	}
}
