package service

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/events"
	"realty/pkg/kafka"
	"realty/pkg/logger"
	"realty/pkg/model"
)

type inboxKey struct{ eventID, userID string }

type mockNotificationRepo struct {
	stored    map[inboxKey]*model.Notification
	insertErr error
}

func newMockRepo() *mockNotificationRepo {
	return &mockNotificationRepo{stored: map[inboxKey]*model.Notification{}}
}

func (m *mockNotificationRepo) Insert(_ context.Context, n *model.Notification) (bool, error) {
	if m.insertErr != nil {
		return false, m.insertErr
	}
	key := inboxKey{n.EventID, n.UserID}
	if _, ok := m.stored[key]; ok {
		return false, nil
	}
	m.stored[key] = n
	return true, nil
}

func (m *mockNotificationRepo) FindByUser(_ context.Context, userID string, _ int, _ int64) ([]*model.Notification, error) {
	out := []*model.Notification{}
	for k, n := range m.stored {
		if k.userID == userID {
			out = append(out, n)
		}
	}
	return out, nil
}

func (m *mockNotificationRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	items, _ := m.FindByUser(ctx, userID, 0, 0)
	return int64(len(items)), nil
}

func eventMessage(t *testing.T, eventType string) kafka.Message {
	t.Helper()
	return kafka.NewMessage().
		WithEventID("evt-1").
		WithEventType(eventType).
		WithValue(events.AppointmentEvent{
			Type: eventType,
			Appointment: model.Appointment{
				ID: "a1", PropertyTitle: "Sea View", Date: "2026-10-20", Time: "10:00",
				ClientID: "client-1", AgentID: "agent-1",
			},
		}).
		Build()
}

func newTestService(repo *mockNotificationRepo) NotificationService {
	return NewNotificationService(repo, &config.Config{Log: logger.Discard()})
}

func TestHandleMessage_NotifiesBothParticipants(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)

	if err := svc.HandleMessage(context.Background(), eventMessage(t, events.TypeAppointmentBooked)); err != nil {
		t.Fatalf("HandleMessage() error = %v", err)
	}
	if len(repo.stored) != 2 {
		t.Fatalf("stored = %d, want 2", len(repo.stored))
	}

	n := repo.stored[inboxKey{"evt-1", "client-1"}]
	if n == nil || n.Kind != events.TypeAppointmentBooked || n.AppointmentID != "a1" {
		t.Errorf("client notification = %+v", n)
	}
	if n != nil && n.Message != "Viewing of Sea View booked for 2026-10-20 at 10:00" {
		t.Errorf("message = %q", n.Message)
	}
}

func TestHandleMessage_ReplayIsIdempotent(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	msg := eventMessage(t, events.TypeAppointmentCancelled)

	for i := 0; i < 3; i++ {
		if err := svc.HandleMessage(context.Background(), msg); err != nil {
			t.Fatalf("HandleMessage() #%d error = %v", i, err)
		}
	}
	if len(repo.stored) != 2 {
		t.Errorf("stored = %d, want 2", len(repo.stored))
	}
}

func TestHandleMessage_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		msg           kafka.Message
		insertErr     error
		wantRetryable bool
	}{
		{
			name:          "store failure is retried",
			msg:           eventMessage(t, events.TypeAppointmentBooked),
			insertErr:     errors.New("connection reset"),
			wantRetryable: true,
		},
		{
			name:          "unknown event type is permanent",
			msg:           eventMessage(t, "appointment.rescheduled"),
			wantRetryable: false,
		},
		{
			name:          "garbage payload is permanent",
			msg:           kafka.NewMessage().WithRawValue([]byte("{not json")).Build(),
			wantRetryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newMockRepo()
			repo.insertErr = tt.insertErr
			svc := newTestService(repo)

			err := svc.HandleMessage(context.Background(), tt.msg)
			if err == nil {
				t.Fatal("HandleMessage() error = nil")
			}
			if got := kafka.ShouldRetry(err, 0, 3); got != tt.wantRetryable {
				t.Errorf("ShouldRetry = %v, want %v (err %v)", got, tt.wantRetryable, err)
			}
		})
	}
}

func TestList(t *testing.T) {
	repo := newMockRepo()
	svc := newTestService(repo)
	if err := svc.HandleMessage(context.Background(), eventMessage(t, events.TypeAppointmentBooked)); err != nil {
		t.Fatal(err)
	}

	ctx := auth.WithPrincipal(context.Background(), &auth.Principal{UserID: "agent-1", Role: auth.RoleAgent})
	items, count, err := svc.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if count != 1 || len(items) != 1 || items[0].UserID != "agent-1" {
		t.Errorf("List() = %d items, count %d", len(items), count)
	}

	_, _, err = svc.List(context.Background(), 10, 0)
	if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", got)
	}
}
