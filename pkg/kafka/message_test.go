package kafka

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

func TestMessageBuilder_Build(t *testing.T) {
	msg := NewMessage().
		WithKey("2026-10-20").
		WithEventType("appointment.booked").
		WithValue(map[string]string{"id": "a1"}).
		Build()

	if msg.Key != "2026-10-20" {
		t.Errorf("Key = %q", msg.Key)
	}
	if msg.GetEventID() == "" {
		t.Error("Build() should generate an event id")
	}
	if msg.GetEventType() != "appointment.booked" {
		t.Errorf("event type = %q", msg.GetEventType())
	}
	if msg.Headers[HeaderTimestamp] == "" {
		t.Error("Build() should set the timestamp header")
	}

	var payload map[string]string
	if err := msg.DecodeValue(&payload); err != nil {
		t.Fatalf("DecodeValue() error = %v", err)
	}
	if payload["id"] != "a1" {
		t.Errorf("payload = %v", payload)
	}
}

func TestMessage_RetryCount(t *testing.T) {
	msg := Message{}
	if got := msg.GetRetryCount(); got != 0 {
		t.Fatalf("GetRetryCount() = %d, want 0", got)
	}
	for i := 1; i <= 12; i++ {
		msg.IncrementRetryCount()
		if got := msg.GetRetryCount(); got != i {
			t.Fatalf("after %d increments GetRetryCount() = %d", i, got)
		}
	}
	if msg.Headers[HeaderRetryCount] != "12" {
		t.Errorf("retry header = %q, want 12", msg.Headers[HeaderRetryCount])
	}
}

func TestShouldRetry(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		retries int
		want    bool
	}{
		{"nil error", nil, 0, false},
		{"network error", errors.New("dial tcp: connection refused"), 0, true},
		{"wrapped timeout", fmt.Errorf("insert: %w", context.DeadlineExceeded), 1, true},
		{"retries exhausted", errors.New("i/o timeout"), 3, false},
		{"permanent", NewPermanentError("decode", errors.New("bad json")), 0, false},
		{"explicit transient", NewTransientError("store", errors.New("x")), 0, true},
		{"unknown", errors.New("something odd"), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ShouldRetry(tt.err, tt.retries, 3); got != tt.want {
				t.Errorf("ShouldRetry() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTraceHeaders_RoundTrip(t *testing.T) {
	otel.SetTextMapPropagator(propagation.TraceContext{})

	const traceparent = "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"
	src := otel.GetTextMapPropagator().Extract(context.Background(),
		propagation.MapCarrier{"traceparent": traceparent})

	headers := InjectTraceHeaders(src, []kafka.Header{{Key: HeaderEventID, Value: []byte("e1")}})
	if len(headers) != 2 {
		t.Fatalf("headers = %v, want event id plus traceparent", headers)
	}

	ctx := ExtractTraceContext(context.Background(), kafka.Message{Headers: headers, Time: time.Now()})
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	if carrier["traceparent"] != traceparent {
		t.Errorf("traceparent = %q, want %q", carrier["traceparent"], traceparent)
	}
}
