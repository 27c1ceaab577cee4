package notifier

import (
	"context"
	"time"

	"guestcal/pkg/kafka"
	"guestcal/pkg/logger"
)

const publishTimeout = 5 * time.Second

// KafkaNotifier publishes the change signal to the change topic. Every
// service instance consumes the topic and relays to its own websocket
// clients, so a toggle on one instance reaches clients on all of them.
type KafkaNotifier struct {
	producer *kafka.Producer
	source   string
	log      *logger.Logger
}

func NewKafkaNotifier(producer *kafka.Producer, source string, log *logger.Logger) *KafkaNotifier {
	return &KafkaNotifier{
		producer: producer,
		source:   source,
		log:      log,
	}
}

// StateChanged broadcasts fire-and-forget. The state mutation has
// already committed when this runs; a failed publish is logged and
// swallowed, never surfaced to the caller.
func (n *KafkaNotifier) StateChanged(ctx context.Context) {
	msg, err := kafka.NewChangeMessage(n.source)
	if err != nil {
		n.log.Warn("Failed to build change message", "error", err)
		return
	}

	go func() {
		publishCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := n.producer.Publish(publishCtx, msg); err != nil {
			n.log.Warn("Failed to publish change signal", "error", err)
		}
	}()
}
