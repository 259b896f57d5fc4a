package config

import (
	"fmt"
)

const defaultEventsQueueName = "protocol_events_queue"

// QueueConfig points at the RabbitMQ broker events are published to.
type QueueConfig struct {
	QueueUser              string `mapstructure:"queue_user"`
	QueuePassword          string `mapstructure:"queue_password"`
	Url                    string `mapstructure:"url"`
	EventsQueueName        string `mapstructure:"events_queue_name"`
	QueueProcessingTimeout int    `mapstructure:"processing_timeout"`
	MsgMaxRetryAttempts    int    `mapstructure:"msg_max_retry_attempts"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return fmt.Errorf("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return fmt.Errorf("missing queue password")
	}

	if cfg.Url == "" {
		return fmt.Errorf("missing queue url")
	}

	if cfg.EventsQueueName == "" {
		cfg.EventsQueueName = defaultEventsQueueName
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return fmt.Errorf("processing timeout must be a positive integer")
	}

	if cfg.MsgMaxRetryAttempts < 0 {
		return fmt.Errorf("msg max retry attempts cannot be negative")
	}

	return nil
}
