package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"guestcal/pkg/config"
	"guestcal/pkg/kafka"
)

// Bridge consumes the change topic and relays each signal to the local
// websocket hub.
type Bridge struct {
	consumer *kafka.Consumer
	hub      *Hub
	cfg      *config.Config
}

func NewBridge(cfg *config.Config, hub *Hub) (*Bridge, error) {
	handler := func(ctx context.Context, msg kafka.Message) error {
		var event kafka.ChangeEvent
		if err := msg.DecodeValue(&event); err != nil {
			return err
		}
		hub.Broadcast(event)
		return nil
	}

	// Every instance needs every signal for its own clients, so each
	// one joins its own consumer group.
	groupID := fmt.Sprintf("%s-%s", cfg.KafkaConsumerGrp, uuid.New().String()[:8])

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: cfg.KafkaBrokers,
		Topic:   cfg.KafkaChangeTopic,
		GroupID: groupID,
	}, handler, cfg.Log)
	if err != nil {
		return nil, err
	}

	return &Bridge{
		consumer: consumer,
		hub:      hub,
		cfg:      cfg,
	}, nil
}

// Run consumes until ctx is cancelled.
func (b *Bridge) Run(ctx context.Context) {
	b.cfg.Log.Info("Change-signal bridge started",
		"topic", b.cfg.KafkaChangeTopic,
		"group", b.cfg.KafkaConsumerGrp,
	)

	err := b.consumer.Start(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		b.cfg.Log.Error("Change-signal bridge stopped", "error", err)
		return
	}
	b.cfg.Log.Info("Change-signal bridge stopped")
}

func (b *Bridge) Close() error {
	return b.consumer.Close()
}
