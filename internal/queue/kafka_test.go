package queue

import (
	"context"
	"errors"
	"testing"
	"time"

	"storefront-events/pkg/logger"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
)

type fakeReader struct {
	msgs    []*kafka.Message
	err     error
	timeout time.Duration
	closed  bool
}

func (r *fakeReader) ReadMessage(timeout time.Duration) (*kafka.Message, error) {
	r.timeout = timeout
	if r.err != nil {
		return nil, r.err
	}
	if len(r.msgs) == 0 {
		return nil, kafka.NewError(kafka.ErrTimedOut, "timed out", false)
	}
	m := r.msgs[0]
	r.msgs = r.msgs[1:]
	return m, nil
}

func (r *fakeReader) Close() error {
	r.closed = true
	return nil
}

// newTestKafkaQueue builds a queue with no producer whose consumers come from readers.
func newTestKafkaQueue(t *testing.T, readers map[string]*fakeReader) (*KafkaQueue, map[string]int) {
	t.Helper()
	cfg, err := KafkaConfig{Brokers: "localhost:9092"}.withDefaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	created := map[string]int{}
	q := &KafkaQueue{
		cfg:       cfg,
		log:       logger.NewNop(),
		consumers: make(map[string]topicReader),
		doneCh:    make(chan struct{}),
	}
	q.newReader = func(topic string) (topicReader, error) {
		created[topic]++
		r, ok := readers[topic]
		if !ok {
			return nil, errors.New("unknown topic " + topic)
		}
		return r, nil
	}
	return q, created
}

func TestKafkaConfig_Defaults(t *testing.T) {
	cfg, err := KafkaConfig{Brokers: "b:9092"}.withDefaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.GroupID != "storefront-events" {
		t.Fatalf("group = %q", cfg.GroupID)
	}
	if cfg.PollTimeout != time.Second {
		t.Fatalf("poll timeout = %v", cfg.PollTimeout)
	}

	cfg, err = KafkaConfig{Brokers: "b:9092", GroupID: "g", PollTimeout: 250 * time.Millisecond}.withDefaults()
	if err != nil {
		t.Fatalf("defaults: %v", err)
	}
	if cfg.GroupID != "g" || cfg.PollTimeout != 250*time.Millisecond {
		t.Fatalf("explicit values overwritten: %+v", cfg)
	}
}

func TestNewKafkaQueue_RequiresBrokers(t *testing.T) {
	if _, err := NewKafkaQueue(KafkaConfig{}, nil); err == nil {
		t.Fatal("expected error for empty brokers")
	}
}

func TestKafkaQueue_TimeoutIsEmpty(t *testing.T) {
	r := &fakeReader{}
	q, _ := newTestKafkaQueue(t, map[string]*fakeReader{"order-updates": r})

	payload, ok, err := q.Dequeue(context.Background(), "order-updates")
	if err != nil || ok || payload != "" {
		t.Fatalf("dequeue = (%q, %v, %v), want empty", payload, ok, err)
	}
	if r.timeout != time.Second {
		t.Fatalf("read timeout = %v, want poll timeout", r.timeout)
	}
}

func TestKafkaQueue_ReadErrorIsReturned(t *testing.T) {
	broken := kafka.NewError(kafka.ErrTransport, "broker down", false)
	q, _ := newTestKafkaQueue(t, map[string]*fakeReader{"order-updates": {err: broken}})

	_, ok, err := q.Dequeue(context.Background(), "order-updates")
	if ok || err == nil {
		t.Fatalf("dequeue = (%v, %v), want error", ok, err)
	}
	var kerr kafka.Error
	if !errors.As(err, &kerr) || kerr.Code() != kafka.ErrTransport {
		t.Fatalf("err = %v, want wrapped transport error", err)
	}
}

func TestKafkaQueue_ReturnsPayloadAndReusesConsumer(t *testing.T) {
	r := &fakeReader{msgs: []*kafka.Message{
		{Value: []byte(`{"productId":"P1"}`)},
		{Value: []byte(`{"productId":"P2"}`)},
	}}
	q, created := newTestKafkaQueue(t, map[string]*fakeReader{"stock-updates": r})
	ctx := context.Background()

	for _, want := range []string{`{"productId":"P1"}`, `{"productId":"P2"}`} {
		got, ok, err := q.Dequeue(ctx, "stock-updates")
		if err != nil || !ok || got != want {
			t.Fatalf("dequeue = (%q, %v, %v), want %q", got, ok, err, want)
		}
	}
	if created["stock-updates"] != 1 {
		t.Fatalf("consumers created = %d, want 1", created["stock-updates"])
	}
}

func TestKafkaQueue_SubscribeErrorIsReturned(t *testing.T) {
	q, _ := newTestKafkaQueue(t, nil)
	if _, _, err := q.Dequeue(context.Background(), "image-uploads"); err == nil {
		t.Fatal("expected consumer creation error")
	}
	if len(q.consumers) != 0 {
		t.Fatalf("failed consumer cached: %v", q.consumers)
	}
}

func TestKafkaQueue_CancelledContext(t *testing.T) {
	q, created := newTestKafkaQueue(t, map[string]*fakeReader{"order-updates": {}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := q.Dequeue(ctx, "order-updates"); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if created["order-updates"] != 0 {
		t.Fatal("consumer created for cancelled dequeue")
	}
}

func TestKafkaQueue_CloseClosesConsumers(t *testing.T) {
	a, b := &fakeReader{}, &fakeReader{}
	q, _ := newTestKafkaQueue(t, map[string]*fakeReader{"order-updates": a, "stock-updates": b})
	ctx := context.Background()
	_, _, _ = q.Dequeue(ctx, "order-updates")
	_, _, _ = q.Dequeue(ctx, "stock-updates")

	if err := q.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !a.closed || !b.closed {
		t.Fatalf("closed = %v/%v, want both", a.closed, b.closed)
	}
	if len(q.consumers) != 0 {
		t.Fatal("consumers not cleared")
	}
}
