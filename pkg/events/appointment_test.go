package events

import (
	"context"
	"errors"
	"testing"

	"realty/pkg/kafka"
	"realty/pkg/model"
)

type mockProducer struct {
	publishFunc func(ctx context.Context, msg kafka.Message) error
}

func (m *mockProducer) Publish(ctx context.Context, msg kafka.Message) error {
	return m.publishFunc(ctx, msg)
}

func (m *mockProducer) Close() error { return nil }

func TestKafkaPublisher_PublishAppointment(t *testing.T) {
	var sent kafka.Message
	p := &KafkaPublisher{
		producer: &mockProducer{publishFunc: func(_ context.Context, msg kafka.Message) error {
			sent = msg
			return nil
		}},
		source: "appointments",
	}

	event := AppointmentEvent{
		Type:        TypeAppointmentBooked,
		Appointment: model.Appointment{ID: "a1", Date: "2026-10-20", Time: "10:00", ClientID: "c1", AgentID: "g1"},
		ActorID:     "c1",
	}
	if err := p.PublishAppointment(context.Background(), event); err != nil {
		t.Fatalf("PublishAppointment() error = %v", err)
	}

	if sent.Key != "2026-10-20" {
		t.Errorf("key = %q, want the appointment date", sent.Key)
	}
	if sent.GetEventType() != TypeAppointmentBooked {
		t.Errorf("event type = %q", sent.GetEventType())
	}
	if sent.Headers[kafka.HeaderSource] != "appointments" {
		t.Errorf("source header = %q", sent.Headers[kafka.HeaderSource])
	}

	decoded, err := Decode(sent)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.Appointment.ID != "a1" || decoded.ActorID != "c1" {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.OccurredAt.IsZero() {
		t.Error("OccurredAt should be stamped on publish")
	}
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	p := &KafkaPublisher{producer: &mockProducer{publishFunc: func(context.Context, kafka.Message) error {
		return kafka.ErrProducerClosed
	}}}

	err := p.PublishAppointment(context.Background(), AppointmentEvent{Type: TypeAppointmentCancelled, Appointment: model.Appointment{Date: "2026-10-20"}})
	if !errors.Is(err, kafka.ErrProducerClosed) {
		t.Errorf("error = %v, want wrapped ErrProducerClosed", err)
	}
}

func TestDecode_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"invalid json", "{"},
		{"unknown type", `{"type":"appointment.moved"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(kafka.Message{Value: []byte(tt.value), Headers: map[string]string{}})
			if err == nil {
				t.Fatal("Decode() expected error")
			}
			if kafka.ClassifyError(err) != kafka.ErrorTypePermanent {
				t.Errorf("error %v should be permanent", err)
			}
		})
	}
}
