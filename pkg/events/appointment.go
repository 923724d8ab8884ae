package events

import (
	"context"
	"fmt"
	"time"

	"realty/pkg/kafka"
	"realty/pkg/logger"
	"realty/pkg/model"
)

const (
	TypeAppointmentBooked    = "appointment.booked"
	TypeAppointmentCancelled = "appointment.cancelled"

	schemaVersion = "1"
)

// AppointmentEvent is the payload published whenever an appointment is
// created or removed. ActorID is the user who triggered the change.
type AppointmentEvent struct {
	Type        string            `json:"type"`
	Appointment model.Appointment `json:"appointment"`
	ActorID     string            `json:"actor_id"`
	OccurredAt  time.Time         `json:"occurred_at"`
}

type Publisher interface {
	PublishAppointment(ctx context.Context, event AppointmentEvent) error
	Close() error
}

type messageProducer interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	producer messageProducer
	source   string
}

func NewKafkaPublisher(producer *kafka.Producer, source string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, source: source}
}

// PublishAppointment keys messages by appointment date so every event for a
// day lands on the same partition in order.
func (p *KafkaPublisher) PublishAppointment(ctx context.Context, event AppointmentEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	msg := kafka.NewMessage().
		WithKey(event.Appointment.Date).
		WithEventType(event.Type).
		WithSchemaVersion(schemaVersion).
		WithSource(p.source).
		WithValue(event).
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}

// LogPublisher stands in when Kafka is disabled.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) PublishAppointment(_ context.Context, event AppointmentEvent) error {
	p.log.Debug("Appointment event (kafka disabled)",
		"type", event.Type,
		"appointment_id", event.Appointment.ID,
		"date", event.Appointment.Date,
		"time", event.Appointment.Time,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }

// Decode extracts an AppointmentEvent from a consumed message. Undecodable
// payloads are permanent failures.
func Decode(msg kafka.Message) (AppointmentEvent, error) {
	var event AppointmentEvent
	if err := msg.DecodeValue(&event); err != nil {
		return event, kafka.NewPermanentError("decode appointment event", err)
	}
	if event.Type == "" {
		event.Type = msg.GetEventType()
	}
	switch event.Type {
	case TypeAppointmentBooked, TypeAppointmentCancelled:
		return event, nil
	default:
		return event, kafka.NewPermanentError(fmt.Sprintf("unknown event type %q", event.Type), kafka.ErrInvalidMessage)
	}
}
