package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/queue/client"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

const publishBackoff = 200 * time.Millisecond

type Queues struct {
	EventsQueueClient client.QueueClient
	processingTimeout time.Duration
	maxRetryAttempts  int
}

func New(cfg *config.QueueConfig) (*Queues, error) {
	eventsQueueClient, err := client.NewRabbitMqClient(
		cfg.Url, cfg.QueueUser, cfg.QueuePassword, cfg.EventsQueueName,
	)
	if err != nil {
		return nil, fmt.Errorf("error while creating events queue client: %w", err)
	}
	return NewWithClient(cfg, eventsQueueClient), nil
}

// NewWithClient wires an already connected client.
func NewWithClient(cfg *config.QueueConfig, eventsQueueClient client.QueueClient) *Queues {
	return &Queues{
		EventsQueueClient: eventsQueueClient,
		processingTimeout: time.Duration(cfg.QueueProcessingTimeout) * time.Second,
		maxRetryAttempts:  cfg.MsgMaxRetryAttempts,
	}
}

// EncodeEvent renders evt as the message body consumers read.
func (q *Queues) EncodeEvent(evt *types.Event) (string, error) {
	body, err := json.Marshal(client.NewProtocolEventMessage(evt))
	if err != nil {
		return "", fmt.Errorf("failed to marshal event %s: %w", evt.ID, err)
	}
	return string(body), nil
}

// PublishEvent sends evt to the events queue, retrying with a linear backoff.
func (q *Queues) PublishEvent(ctx context.Context, evt *types.Event) error {
	body, err := q.EncodeEvent(evt)
	if err != nil {
		return err
	}
	return q.SendRaw(ctx, body)
}

// SendRaw publishes an already encoded message body.
func (q *Queues) SendRaw(ctx context.Context, body string) error {
	var err error
	for attempt := 0; attempt <= q.maxRetryAttempts; attempt++ {
		if attempt > 0 {
			utils.Sleep(time.Duration(attempt) * publishBackoff)
		}
		sendCtx, cancel := context.WithTimeout(ctx, q.processingTimeout)
		err = q.EventsQueueClient.SendMessage(sendCtx, body)
		cancel()
		if err == nil {
			return nil
		}
		log.Ctx(ctx).Warn().Err(err).
			Str("queueName", q.EventsQueueClient.GetQueueName()).
			Int("attempt", attempt+1).
			Msg("failed to publish event")
	}
	return err
}

func (q *Queues) IsConnectionHealthy() error {
	if err := q.EventsQueueClient.Ping(); err != nil {
		return fmt.Errorf("queue %s is not healthy: %w", q.EventsQueueClient.GetQueueName(), err)
	}
	return nil
}

func (q *Queues) Stop() {
	if err := q.EventsQueueClient.Stop(); err != nil {
		log.Error().Err(err).Str("queueName", q.EventsQueueClient.GetQueueName()).Msg("error while stopping queue client")
	}
}
