package kafka

import (
	"context"
	"errors"
	"fmt"

	"github.com/twmb/franz-go/pkg/kgo"
)

// ErrNoBrokers is returned when no seed broker is configured
var ErrNoBrokers = errors.New("kafka: at least one broker is required")

// Message is a single record to publish
type Message struct {
	Topic   string
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// KafkaClient defines the interface for Kafka producer operations
type KafkaClient interface {
	Produce(ctx context.Context, msgs ...Message) error
	ProduceAsync(ctx context.Context, msg Message, onError func(Message, error))
	Flush(ctx context.Context) error
	Ping(ctx context.Context) error
	Close() error
	GetClient() *kgo.Client
}

// Client represents a Kafka producer wrapper
type Client struct {
	client *kgo.Client
}

// New creates a new Kafka client with the provided options
func New(opts ...kgo.Opt) (KafkaClient, error) {
	kafkaClient, err := kgo.NewClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka client: %w", err)
	}

	return &Client{client: kafkaClient}, nil
}

func toRecord(msg Message) *kgo.Record {
	record := &kgo.Record{
		Topic: msg.Topic,
		Key:   msg.Key,
		Value: msg.Value,
	}
	for k, v := range msg.Headers {
		record.Headers = append(record.Headers, kgo.RecordHeader{Key: k, Value: []byte(v)})
	}
	return record
}

// Produce sends messages synchronously and returns the first failure
func (k *Client) Produce(ctx context.Context, msgs ...Message) error {
	if len(msgs) == 0 {
		return nil
	}

	records := make([]*kgo.Record, 0, len(msgs))
	for _, msg := range msgs {
		records = append(records, toRecord(msg))
	}

	if err := k.client.ProduceSync(ctx, records...).FirstErr(); err != nil {
		return fmt.Errorf("failed to produce to kafka: %w", err)
	}
	return nil
}

// ProduceAsync sends a message without waiting. onError may be nil.
func (k *Client) ProduceAsync(ctx context.Context, msg Message, onError func(Message, error)) {
	k.client.Produce(ctx, toRecord(msg), func(_ *kgo.Record, err error) {
		if err != nil && onError != nil {
			onError(msg, err)
		}
	})
}

// Flush waits for buffered records to be delivered
func (k *Client) Flush(ctx context.Context) error {
	return k.client.Flush(ctx)
}

// Ping checks that a broker is reachable
func (k *Client) Ping(ctx context.Context) error {
	if err := k.client.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping kafka: %w", err)
	}
	return nil
}

// Close closes the client without flushing buffered records
func (k *Client) Close() error {
	if k.client != nil {
		k.client.Close()
	}
	return nil
}

// GetClient returns the underlying Kafka client for advanced operations
func (k *Client) GetClient() *kgo.Client {
	return k.client
}
