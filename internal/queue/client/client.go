package client

import "context"

// QueueClient is the publishing side of a message queue.
type QueueClient interface {
	SendMessage(ctx context.Context, messageBody string) error
	GetQueueName() string
	Ping() error
	Stop() error
}
