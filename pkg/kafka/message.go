package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Message is one event on the change topic.
type Message struct {
	Key       string
	Value     []byte
	Headers   map[string]string
	Topic     string
	Partition int
	Offset    int64
	Timestamp time.Time
}

// Header keys shared by producers and consumers.
const (
	HeaderEventID   = "event-id"
	HeaderEventType = "event-type"
	HeaderSource    = "source"
	HeaderTimestamp = "timestamp"
)

// ChangeEvent is the generic "state changed, refetch" signal. It carries no
// entity diff on purpose: subscribers are expected to re-read.
type ChangeEvent struct {
	Event  string    `json:"event"`
	Source string    `json:"source"`
	At     time.Time `json:"at"`
}

const EventStateChanged = "state_changed"

// NewChangeMessage builds the broadcast message for a state change.
func NewChangeMessage(source string) (Message, error) {
	evt := ChangeEvent{
		Event:  EventStateChanged,
		Source: source,
		At:     time.Now().UTC(),
	}
	value, err := json.Marshal(evt)
	if err != nil {
		return Message{}, err
	}

	now := time.Now()
	return Message{
		Key:   source,
		Value: value,
		Headers: map[string]string{
			HeaderEventID:   uuid.New().String(),
			HeaderEventType: EventStateChanged,
			HeaderSource:    source,
			HeaderTimestamp: now.Format(time.RFC3339),
		},
		Timestamp: now,
	}, nil
}

// MessageHandler processes one consumed message. A nil return commits the
// offset; an error logs and moves on (change signals are safe to drop).
type MessageHandler func(ctx context.Context, msg Message) error

// DecodeValue decodes the message value into the provided struct.
func (m *Message) DecodeValue(v any) error {
	return json.Unmarshal(m.Value, v)
}

// GetHeader retrieves a header value.
func (m *Message) GetHeader(key string) (string, bool) {
	value, exists := m.Headers[key]
	return value, exists
}
