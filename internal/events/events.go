// Package events carries facts emitted after a unit of work commits. Delivery
// is best effort; consumers must tolerate duplicates.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

const TypeOrderCreated = "order.created"

var (
	ErrClosed         = errors.New("event bus closed")
	ErrMalformedEvent = errors.New("malformed event")
)

// Envelope is the wire format shared by every event type.
type Envelope struct {
	EventID   uuid.UUID       `json:"event_id"`
	Type      string          `json:"type"`
	CreatedAt time.Time       `json:"created_at"`
	Payload   json.RawMessage `json:"payload"`
}

type OrderCreated struct {
	EventID       uuid.UUID `json:"-"`
	OrderID       int64     `json:"order_id"`
	CustomerName  string    `json:"customer_name"`
	CustomerEmail string    `json:"customer_email"`
	CreatedAt     time.Time `json:"-"`
}

func NewOrderCreated(orderID int64, name, email string) OrderCreated {
	return OrderCreated{
		EventID:       uuid.New(),
		OrderID:       orderID,
		CustomerName:  name,
		CustomerEmail: email,
		CreatedAt:     time.Now().UTC(),
	}
}

type Publisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreated) error
	Close() error
}

type Subscriber interface {
	// NextOrderCreated blocks until an order.created event arrives or ctx is done.
	// Events of other types are skipped.
	NextOrderCreated(ctx context.Context) (OrderCreated, error)
	Close() error
}

func encodeOrderCreated(event OrderCreated) ([]byte, error) {
	payload, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order created payload: %w", err)
	}

	return json.Marshal(Envelope{
		EventID:   event.EventID,
		Type:      TypeOrderCreated,
		CreatedAt: event.CreatedAt,
		Payload:   payload,
	})
}

// decodeOrderCreated returns ok=false for well-formed envelopes of another type.
func decodeOrderCreated(data []byte) (OrderCreated, bool, error) {
	var envelope Envelope

	if err := json.Unmarshal(data, &envelope); err != nil {
		return OrderCreated{}, false, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	if envelope.Type != TypeOrderCreated {
		return OrderCreated{}, false, nil
	}

	var event OrderCreated

	if err := json.Unmarshal(envelope.Payload, &event); err != nil {
		return OrderCreated{}, false, fmt.Errorf("%w: %w", ErrMalformedEvent, err)
	}

	if event.OrderID == 0 {
		return OrderCreated{}, false, fmt.Errorf("%w: missing order id", ErrMalformedEvent)
	}

	event.EventID = envelope.EventID
	event.CreatedAt = envelope.CreatedAt

	return event, true, nil
}
