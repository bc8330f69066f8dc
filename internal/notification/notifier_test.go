package notification_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelier/config"
	"hotelier/infras/kafka"
	otelMocks "hotelier/infras/otel/mocks"
	"hotelier/internal/notification"
)

// blockingKafka records sent messages and can hold every send until the test
// releases it, so queue saturation is reached deterministically.
type blockingKafka struct {
	mu      sync.Mutex
	sent    []kafka.Message
	entered chan struct{}
	release chan struct{}
}

func newBlockingKafka() *blockingKafka {
	return &blockingKafka{
		entered: make(chan struct{}, 16),
		release: make(chan struct{}),
	}
}

func (b *blockingKafka) SendMessages(_ context.Context, _ string, messages ...kafka.Message) error {
	b.entered <- struct{}{}
	<-b.release

	b.mu.Lock()
	defer b.mu.Unlock()

	b.sent = append(b.sent, messages...)

	return nil
}

func (b *blockingKafka) keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()

	keys := make([]string, len(b.sent))
	for i, msg := range b.sent {
		keys[i] = string(msg.Key)
	}

	return keys
}

func notifierConfig(workers, queueSize int) *config.Config {
	conf := &config.Config{}
	conf.Notification.Workers = workers
	conf.Notification.QueueSize = queueSize
	conf.Notification.Topic = "booking-created"

	return conf
}

func event(id string) notification.BookingCreated {
	return notification.BookingCreated{
		BookingID: id,
		RoomID:    "r-1",
		StartDate: "2026-09-10",
		EndDate:   "2026-09-12",
	}
}

func TestNotifier_DeliversEvents(t *testing.T) {
	client := newBlockingKafka()
	close(client.release)

	notifier := notification.New(notifierConfig(1, 1), client, otelMocks.NewOtel())

	notifier.Notify(event("b-1"))
	notifier.Shutdown()

	require.Len(t, client.keys(), 1)
	assert.Equal(t, "b-1", client.keys()[0])
}

func TestNotifier_DropsWhenSaturated(t *testing.T) {
	client := newBlockingKafka()

	notifier := notification.New(notifierConfig(1, 1), client, otelMocks.NewOtel())

	// First event occupies the single worker inside the send.
	notifier.Notify(event("b-1"))
	<-client.entered

	// Second event fills the single queue slot.
	notifier.Notify(event("b-2"))

	// Third event has nowhere to go and must be dropped, not block.
	notifier.Notify(event("b-3"))

	close(client.release)
	notifier.Shutdown()

	keys := client.keys()
	require.Len(t, keys, 2)
	assert.Contains(t, keys, "b-1")
	assert.Contains(t, keys, "b-2")
	assert.NotContains(t, keys, "b-3")
}

func TestNotifier_ShutdownDrainsQueue(t *testing.T) {
	client := newBlockingKafka()
	close(client.release)

	notifier := notification.New(notifierConfig(3, 1), client, otelMocks.NewOtel())

	notifier.Notify(event("b-1"))
	notifier.Shutdown()
	notifier.Shutdown() // idempotent

	assert.Len(t, client.keys(), 1)
}
