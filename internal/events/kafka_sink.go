package events

import (
	"context"
	"encoding/json"
	"fmt"

	"mwork_admission/internal/admission"

	skafka "github.com/segmentio/kafka-go"
)

// Writer - подмножество kafka.Writer, нужное sink'у. Подменяется в тестах.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...skafka.Message) error
	Close() error
}

// KafkaSink публикует переходы заявок в топик. Ключ - id кастинга, события кастинга
// попадают в одну партицию. Порядок переходов сохраняется, пока перед sink'ом стоит
// Dispatcher: координатор отдает их в порядке коммитов, а Dispatcher держит кастинг
// на одном воркере. Событие создания заявки (Apply) уходит вне домена кастинга
// и относительно переходов не упорядочено.
type KafkaSink struct {
	writer Writer
}

func NewKafkaSink(brokers []string, topic string) *KafkaSink {
	w := &skafka.Writer{
		Addr:     skafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &skafka.Hash{},
	}
	return &KafkaSink{writer: w}
}

// NewKafkaSinkWithWriter позволяет подставить тестовый writer
func NewKafkaSinkWithWriter(w Writer) *KafkaSink {
	return &KafkaSink{writer: w}
}

func (s *KafkaSink) Name() string { return "kafka" }

func (s *KafkaSink) Deliver(ctx context.Context, change admission.StatusChange) error {
	b, err := json.Marshal(change)
	if err != nil {
		return fmt.Errorf("marshal status change: %w", err)
	}
	msg := skafka.Message{
		Key:   []byte(change.CastingID),
		Value: b,
		Headers: []skafka.Header{
			{Key: "event", Value: []byte("assignment.status_changed")},
		},
	}
	if err := s.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}
	return nil
}

func (s *KafkaSink) Close() error {
	return s.writer.Close()
}
