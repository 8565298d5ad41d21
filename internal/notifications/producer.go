package notifications

import (
	"context"
	"fmt"
	"time"

	"github.com/IBM/sarama"

	"inkwell/pkg/logger"
)

// KafkaProducerConfig contains configuration for the Kafka activity producer
type KafkaProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultKafkaProducerConfig returns a default producer configuration
func DefaultKafkaProducerConfig(brokers []string, topic string) *KafkaProducerConfig {
	return &KafkaProducerConfig{
		Brokers:          brokers,
		Topic:            topic,
		RetryMax:         3,
		TimeoutMs:        10000,
		RequiredAcks:     sarama.WaitForAll, // wait for all in-sync replicas
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaPublisher publishes activity events to Kafka
type KafkaPublisher struct {
	producer sarama.SyncProducer
	config   *KafkaProducerConfig
}

// NewKafkaPublisher creates a new Kafka activity publisher
func NewKafkaPublisher(config *KafkaProducerConfig) (*KafkaPublisher, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps events for one subject on one partition.
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaPublisher{
		producer: producer,
		config:   config,
	}, nil
}

// Publish sends a single activity event. Failures are logged, never
// propagated; the API does not depend on broker availability.
func (p *KafkaPublisher) Publish(ctx context.Context, event *ActivityEvent) {
	messageBytes, err := event.ToJSON()
	if err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to marshal activity event", err, map[string]interface{}{
			"event_type": string(event.Type),
		})
		return
	}

	message := &sarama.ProducerMessage{
		Topic:     p.config.Topic,
		Key:       sarama.StringEncoder(event.GetPartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Timestamp: event.CreatedAt,
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("event_id"), Value: []byte(event.ID)},
		},
	}

	if _, _, err := p.producer.SendMessage(message); err != nil {
		logger.GetDefault().ErrorWithContext(ctx, "failed to publish activity event", err, map[string]interface{}{
			"event_type": string(event.Type),
			"subject_id": event.SubjectID,
		})
	}
}

// Close shuts down the underlying producer
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
