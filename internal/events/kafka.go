package events

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
)

const publishBatchTimeout = 10 * time.Millisecond

type KafkaPublisher struct {
	writer *kafka.Writer
}

// NewKafkaPublisher keys messages by order id so every event of one order
// lands on the same partition.
func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireOne,
			BatchTimeout:           publishBatchTimeout,
			AllowAutoTopicCreation: true,
		},
	}
}

func (p *KafkaPublisher) PublishOrderCreated(ctx context.Context, event OrderCreated) error {
	value, err := encodeOrderCreated(event)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
		Time:  event.CreatedAt,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish order %d: %w", event.OrderID, err)
	}

	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type KafkaSubscriber struct {
	reader *kafka.Reader
}

func NewKafkaSubscriber(brokers []string, topic, groupID string) *KafkaSubscriber {
	return &KafkaSubscriber{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers:  brokers,
			Topic:    topic,
			GroupID:  groupID,
			MinBytes: 10e3,
			MaxBytes: 10e6,
			MaxWait:  time.Second,
		}),
	}
}

// NextOrderCreated commits offsets as messages are read, so an event whose
// handling fails is not redelivered.
func (s *KafkaSubscriber) NextOrderCreated(ctx context.Context) (OrderCreated, error) {
	for {
		msg, err := s.reader.ReadMessage(ctx)
		if err != nil {
			return OrderCreated{}, err
		}

		event, ok, err := decodeOrderCreated(msg.Value)
		if err != nil {
			return OrderCreated{}, fmt.Errorf("offset %d: %w", msg.Offset, err)
		}

		if ok {
			return event, nil
		}
	}
}

func (s *KafkaSubscriber) Close() error {
	return s.reader.Close()
}

// PingBrokers dials the first reachable broker and lists the cluster.
func PingBrokers(ctx context.Context, brokers []string) error {
	var lastErr error

	for _, broker := range brokers {
		conn, err := kafka.DialContext(ctx, "tcp", broker)
		if err != nil {
			lastErr = err

			continue
		}

		_, err = conn.Brokers()
		conn.Close()

		if err == nil {
			return nil
		}

		lastErr = err
	}

	if lastErr == nil {
		return fmt.Errorf("no kafka brokers configured")
	}

	return fmt.Errorf("kafka unreachable: %w", lastErr)
}

