package notification

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"hotelier/config"
	"hotelier/infras/kafka"
	"hotelier/infras/otel"
	"hotelier/shared/constant"
)

// BookingCreated is the event handed to guests after a successful booking.
type BookingCreated struct {
	BookingID string `json:"booking_id"`
	RoomID    string `json:"room_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Notifier delivers booking notifications off the request path. Notify never
// blocks the caller and never surfaces delivery errors; a booking stands on
// its own whether or not the guest hears about it.
type Notifier interface {
	Notify(event BookingCreated)
	Shutdown()
}

type notifierImpl struct {
	config *config.Config
	kafka  kafka.Client
	otel   otel.Otel

	queue chan BookingCreated
	wg    sync.WaitGroup
	once  sync.Once
}

// New starts the delivery workers. The queue is deliberately small; under
// saturation events are dropped rather than letting bookings queue up behind
// a slow SMS gateway.
func New(conf *config.Config, kafkaClient kafka.Client, otl otel.Otel) Notifier {
	workers := conf.Notification.Workers
	if workers < 1 {
		workers = 1
	}

	queueSize := conf.Notification.QueueSize
	if queueSize < 1 {
		queueSize = 1
	}

	notifier := &notifierImpl{
		config: conf,
		kafka:  kafkaClient,
		otel:   otl,
		queue:  make(chan BookingCreated, queueSize),
	}

	for i := 0; i < workers; i++ {
		notifier.wg.Add(1)

		go notifier.work()
	}

	log.Info().Int("workers", workers).Int("queue_size", queueSize).Msg("Booking notifier started")

	return notifier
}

// Notify enqueues the event for delivery. When every worker is busy and the
// queue is full the event is dropped with a log line.
func (n *notifierImpl) Notify(event BookingCreated) {
	select {
	case n.queue <- event:
	default:
		log.Warn().
			Str("booking_id", event.BookingID).
			Str("room_id", event.RoomID).
			Msg("Notification queue saturated, dropping booking event")
	}
}

// Shutdown closes the queue and waits for in-flight deliveries to finish.
// Events already enqueued are still delivered.
func (n *notifierImpl) Shutdown() {
	n.once.Do(func() {
		close(n.queue)
	})

	n.wg.Wait()
}

func (n *notifierImpl) work() {
	defer n.wg.Done()

	for event := range n.queue {
		n.deliver(event)
	}
}

func (n *notifierImpl) deliver(event BookingCreated) {
	ctx, scope := n.otel.NewScope(context.Background(), constant.OtelWorkerScopeName, constant.OtelWorkerScopeName+".notification.deliver")
	defer scope.End()

	// SMS gateway integration pending; the send is logged so deliveries are
	// observable in the meantime.
	log.Info().
		Str("booking_id", event.BookingID).
		Str("room_id", event.RoomID).
		Str("start_date", event.StartDate).
		Str("end_date", event.EndDate).
		Msg("Sending booking confirmation SMS")

	message := kafka.Message{
		Key:   event.BookingID,
		Value: event,
	}

	if err := n.kafka.SendMessages(ctx, n.config.Notification.Topic, message); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("booking_id", event.BookingID).Msg("Failed to publish booking event")
	}
}
