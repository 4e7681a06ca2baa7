package queue

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront-events/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"go.uber.org/zap"
)

type KafkaConfig struct {
	Brokers string
	GroupID string
	// PollTimeout bounds how long one Dequeue waits for a record.
	PollTimeout time.Duration
}

func (c KafkaConfig) withDefaults() (KafkaConfig, error) {
	if c.Brokers == "" {
		return c, errors.New("kafka brokers are required")
	}
	if c.GroupID == "" {
		c.GroupID = "storefront-events"
	}
	if c.PollTimeout <= 0 {
		c.PollTimeout = time.Second
	}
	return c, nil
}

// topicReader is the part of *kafka.Consumer Dequeue relies on.
type topicReader interface {
	ReadMessage(timeout time.Duration) (*kafka.Message, error)
	Close() error
}

// KafkaQueue maps each queue name to a topic of the same name. Consumers are
// created lazily, one per topic, and commit offsets automatically.
type KafkaQueue struct {
	cfg       KafkaConfig
	producer  *kafka.Producer
	log       *logger.Logger
	newReader func(topic string) (topicReader, error)

	mu        sync.Mutex
	consumers map[string]topicReader
	doneCh    chan struct{}
}

func NewKafkaQueue(cfg KafkaConfig, log *logger.Logger) (*KafkaQueue, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NewNop()
	}

	p, err := kafka.NewProducer(&kafka.ConfigMap{
		"bootstrap.servers": cfg.Brokers,
		"acks":              "all",
		"linger.ms":         5,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka producer: %w", err)
	}

	q := &KafkaQueue{
		cfg:       cfg,
		producer:  p,
		log:       log.With(zap.String("component", "kafka_queue")),
		consumers: make(map[string]topicReader),
		doneCh:    make(chan struct{}),
	}
	q.newReader = q.subscribe
	go q.deliveryReportHandler()
	return q, nil
}

// deliveryReportHandler drains producer events that were not routed to a
// per-message delivery channel.
func (q *KafkaQueue) deliveryReportHandler() {
	for e := range q.producer.Events() {
		switch ev := e.(type) {
		case *kafka.Message:
			if ev.TopicPartition.Error != nil {
				q.log.Warn("kafka delivery failed", zap.Error(ev.TopicPartition.Error))
			}
		case kafka.Error:
			q.log.Warn("kafka producer error", zap.Error(ev))
		}
	}
	close(q.doneCh)
}

func (q *KafkaQueue) Enqueue(ctx context.Context, queueName, payload string) error {
	topic := queueName
	delivery := make(chan kafka.Event, 1)
	err := q.producer.Produce(&kafka.Message{
		TopicPartition: kafka.TopicPartition{Topic: &topic, Partition: kafka.PartitionAny},
		Value:          []byte(payload),
	}, delivery)
	if err != nil {
		return fmt.Errorf("failed to produce message: %w", err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case e := <-delivery:
		if m, ok := e.(*kafka.Message); ok && m.TopicPartition.Error != nil {
			return fmt.Errorf("kafka delivery to %s: %w", queueName, m.TopicPartition.Error)
		}
		return nil
	}
}

func (q *KafkaQueue) Dequeue(ctx context.Context, queueName string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	c, err := q.consumer(queueName)
	if err != nil {
		return "", false, err
	}

	msg, err := c.ReadMessage(q.cfg.PollTimeout)
	if err != nil {
		var kerr kafka.Error
		if errors.As(err, &kerr) && kerr.Code() == kafka.ErrTimedOut {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kafka read from %s: %w", queueName, err)
	}
	return string(msg.Value), true, nil
}

func (q *KafkaQueue) consumer(topic string) (topicReader, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if c, ok := q.consumers[topic]; ok {
		return c, nil
	}
	c, err := q.newReader(topic)
	if err != nil {
		return nil, err
	}
	q.consumers[topic] = c
	return c, nil
}

func (q *KafkaQueue) subscribe(topic string) (topicReader, error) {
	c, err := kafka.NewConsumer(&kafka.ConfigMap{
		"bootstrap.servers":  q.cfg.Brokers,
		"group.id":           q.cfg.GroupID + "-" + topic,
		"auto.offset.reset":  "earliest",
		"enable.auto.commit": true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create kafka consumer: %w", err)
	}
	if err := c.SubscribeTopics([]string{topic}, nil); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}
	return c, nil
}

func (q *KafkaQueue) Ping(ctx context.Context) error {
	timeout := 2 * time.Second
	if dl, ok := ctx.Deadline(); ok {
		timeout = time.Until(dl)
	}
	if _, err := q.producer.GetMetadata(nil, false, int(timeout.Milliseconds())); err != nil {
		return fmt.Errorf("kafka metadata: %w", err)
	}
	return nil
}

func (q *KafkaQueue) Close() error {
	q.mu.Lock()
	var errs []error
	for topic, c := range q.consumers {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close consumer %s: %w", topic, err))
		}
	}
	q.consumers = map[string]topicReader{}
	q.mu.Unlock()

	if q.producer != nil {
		q.producer.Flush(5000)
		q.producer.Close()
		<-q.doneCh
	}
	return errors.Join(errs...)
}
