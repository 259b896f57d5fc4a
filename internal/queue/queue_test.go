package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pegkeeper/dollar-protocol-service/internal/config"
	"github.com/pegkeeper/dollar-protocol-service/internal/queue/client"
	"github.com/pegkeeper/dollar-protocol-service/internal/types"
	"github.com/pegkeeper/dollar-protocol-service/internal/utils"
)

type mockQueueClient struct {
	mock.Mock
}

func (m *mockQueueClient) SendMessage(ctx context.Context, messageBody string) error {
	return m.Called(messageBody).Error(0)
}

func (m *mockQueueClient) GetQueueName() string { return "protocol_events_queue" }

func (m *mockQueueClient) Ping() error { return m.Called().Error(0) }

func (m *mockQueueClient) Stop() error { return nil }

func newQueues(c client.QueueClient) *Queues {
	return NewWithClient(&config.QueueConfig{QueueProcessingTimeout: 1, MsgMaxRetryAttempts: 2}, c)
}

func TestPublishEventEncodesMessage(t *testing.T) {
	c := &mockQueueClient{}
	var body string
	c.On("SendMessage", mock.Anything).Run(func(args mock.Arguments) {
		body = args.String(0)
	}).Return(nil).Once()

	evt := types.NewEvent(types.EventBond, 80).WithPool(types.PoolBonding).WithAccount("alice").With("amount", types.NewAmount(5))
	evt.ID = "id-1"
	require.NoError(t, newQueues(c).PublishEvent(context.Background(), evt))

	var msg client.ProtocolEventMessage
	require.NoError(t, json.Unmarshal([]byte(body), &msg))
	assert.Equal(t, client.EventsSchemaVersion, msg.SchemaVersion)
	assert.Equal(t, "id-1", msg.EventID)
	assert.Equal(t, "bond", msg.EventType)
	assert.Equal(t, "bonding", msg.Pool)
	assert.Equal(t, "5", msg.Fields["amount"])
	c.AssertExpectations(t)
}

func TestPublishEventRetries(t *testing.T) {
	var sleeps []time.Duration
	utils.SetSleepFunc(func(d time.Duration) { sleeps = append(sleeps, d) })
	defer utils.ResetSleepFunc()

	c := &mockQueueClient{}
	c.On("SendMessage", mock.Anything).Return(errors.New("closed")).Twice()
	c.On("SendMessage", mock.Anything).Return(nil).Once()

	require.NoError(t, newQueues(c).PublishEvent(context.Background(), types.NewEvent(types.EventAdvance, 1)))
	assert.Equal(t, []time.Duration{200 * time.Millisecond, 400 * time.Millisecond}, sleeps)
	c.AssertExpectations(t)
}

func TestPublishEventGivesUp(t *testing.T) {
	utils.SetSleepFunc(func(time.Duration) {})
	defer utils.ResetSleepFunc()

	c := &mockQueueClient{}
	c.On("SendMessage", mock.Anything).Return(errors.New("closed")).Times(3)

	err := newQueues(c).PublishEvent(context.Background(), types.NewEvent(types.EventAdvance, 1))
	assert.Error(t, err)
	c.AssertExpectations(t)
}

func TestIsConnectionHealthy(t *testing.T) {
	c := &mockQueueClient{}
	c.On("Ping").Return(errors.New("closed")).Once()
	c.On("Ping").Return(nil).Once()

	q := newQueues(c)
	assert.Error(t, q.IsConnectionHealthy())
	assert.NoError(t, q.IsConnectionHealthy())
}
