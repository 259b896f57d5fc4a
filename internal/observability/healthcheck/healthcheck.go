package healthcheck

import (
	"context"
	"fmt"
	"os"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const defaultCronTime = 60

var logger zerolog.Logger = log.Logger

// terminate is swapped in tests.
var terminate = terminateService

func SetLogger(customLogger zerolog.Logger) {
	logger = customLogger
}

// ConnectionChecker reports whether a long lived connection is still usable.
type ConnectionChecker interface {
	IsConnectionHealthy() error
}

// StartHealthCheckCron checks the queue connection every cronTime seconds and
// terminates the service once it is lost, so the orchestrator restarts it.
func StartHealthCheckCron(ctx context.Context, queues ConnectionChecker, cronTime int) error {
	c := cron.New()
	logger.Info().Msg("Initiated Health Check Cron")

	if cronTime <= 0 {
		cronTime = defaultCronTime
	}

	cronSpec := fmt.Sprintf("@every %ds", cronTime)

	_, err := c.AddFunc(cronSpec, func() {
		queueHealthCheck(queues)
	})
	if err != nil {
		return err
	}

	c.Start()

	go func() {
		<-ctx.Done()
		logger.Info().Msg("Stopping Health Check Cron")
		c.Stop()
	}()

	return nil
}

func queueHealthCheck(queues ConnectionChecker) {
	if err := queues.IsConnectionHealthy(); err != nil {
		logger.Error().Err(err).Msg("Event queue connection is not healthy.")
		terminate()
	}
}

func terminateService() {
	logger.Error().Msg("Terminating service due to health check failure.")
	os.Exit(1)
}
