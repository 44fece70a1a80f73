package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"ms-backoffice/internal/logger"
)

// ExportEvent records that an operator downloaded a CSV export.
type ExportEvent struct {
	ID          string    `json:"id"`
	Entity      string    `json:"entity"`
	EventID     string    `json:"event_id,omitempty"`
	Filename    string    `json:"filename"`
	Rows        int       `json:"rows"`
	OperatorID  string    `json:"operator_id,omitempty"`
	RequestedAt time.Time `json:"requested_at"`
}

// NewExportEvent fills in a fresh ID.
func NewExportEvent(entity, eventID, filename string, rows int, operatorID string, at time.Time) ExportEvent {
	return ExportEvent{
		ID:          uuid.NewString(),
		Entity:      entity,
		EventID:     eventID,
		Filename:    filename,
		Rows:        rows,
		OperatorID:  operatorID,
		RequestedAt: at.UTC(),
	}
}

// Publisher sends export audit events.
type Publisher interface {
	PublishExport(ctx context.Context, ev ExportEvent) error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	Writer messageWriter
	log    *logger.Logger
}

func NewProducer(brokers []string, topic string, log *logger.Logger) *Producer {
	writer := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}
	return &Producer{Writer: writer, log: log}
}

// PublishExport streams the export event, keyed by its ID.
func (p *Producer) PublishExport(ctx context.Context, ev ExportEvent) error {
	msgBytes, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal export event: %w", err)
	}

	if err := p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.ID),
		Value: msgBytes,
		Headers: []kafka.Header{
			{Key: "entity", Value: []byte(ev.Entity)},
		},
	}); err != nil {
		return fmt.Errorf("publish export event: %w", err)
	}

	if p.log != nil {
		p.log.LogKafka("EXPORT", ev.Entity, fmt.Sprintf("%s (%d rows)", ev.Filename, ev.Rows))
	}
	return nil
}

func (p *Producer) Close() error {
	return p.Writer.Close()
}

// NoopPublisher drops every event. Used when Kafka is disabled.
type NoopPublisher struct{}

func (NoopPublisher) PublishExport(context.Context, ExportEvent) error { return nil }
