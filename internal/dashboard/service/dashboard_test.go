package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"realty/internal/appointments/repository"
	appointments "realty/internal/appointments/service"
	"realty/pkg/auth"
	"realty/pkg/config"
	apperrors "realty/pkg/errors"
	"realty/pkg/logger"
	"realty/pkg/model"
)

type mockAppointmentService struct {
	appointments.AppointmentService
	lists map[appointments.Scope][]*model.Appointment
}

func (m *mockAppointmentService) List(_ context.Context, scope appointments.Scope, _ int, _ int64) ([]*model.Appointment, int64, error) {
	items := m.lists[scope]
	return items, int64(len(items)), nil
}

type mockCounter struct {
	queries []repository.Query
	perCall int64
}

func (m *mockCounter) Count(_ context.Context, q repository.Query) (int64, error) {
	m.queries = append(m.queries, q)
	return m.perCall, nil
}

type fixedCount struct {
	n   int64
	err error
}

func (c fixedCount) Count(context.Context) (int64, error) { return c.n, c.err }

type mockPropertyStats struct{}

func (mockPropertyStats) CountSearch(context.Context, model.PropertyFilter) (int64, error) {
	return 12, nil
}

func (mockPropertyStats) CountByStatus(context.Context) (map[string]int64, error) {
	return map[string]int64{"available": 8, "booked": 1, "offer": 1, "sold": 2, "other": 0}, nil
}

func newTestService(users Counter) (*dashboardService, *mockCounter) {
	appts := &mockAppointmentService{lists: map[appointments.Scope][]*model.Appointment{
		appointments.ScopeAll:      {{ID: "a"}, {ID: "b"}, {ID: "c"}},
		appointments.ScopeUpcoming: {{ID: "a"}},
		appointments.ScopePast:     {{ID: "b"}, {ID: "c"}},
	}}
	counter := &mockCounter{perCall: 2}
	cfg := &config.Config{Log: logger.Discard(), TimeZone: "Asia/Kolkata"}
	svc := NewDashboardService(appts, counter, users, mockPropertyStats{}, fixedCount{n: 4}, cfg).(*dashboardService)
	svc.now = func() time.Time { return time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC) }
	return svc, counter
}

func as(role auth.Role) context.Context {
	return auth.WithPrincipal(context.Background(), &auth.Principal{UserID: "u1", Role: role})
}

func TestDashboard_DispatchesByRole(t *testing.T) {
	svc, _ := newTestService(fixedCount{n: 30})

	tests := []struct {
		role     auth.Role
		wantType string
	}{
		{auth.RoleClient, "*model.ClientDashboard"},
		{auth.RoleAgent, "*model.AgentDashboard"},
		{auth.RoleAdmin, "*model.AdminDashboard"},
	}
	for _, tt := range tests {
		t.Run(string(tt.role), func(t *testing.T) {
			got, err := svc.Dashboard(as(tt.role))
			if err != nil {
				t.Fatalf("Dashboard() error = %v", err)
			}
			if gotType := fmt.Sprintf("%T", got); gotType != tt.wantType {
				t.Errorf("Dashboard() type = %s, want %s", gotType, tt.wantType)
			}
		})
	}

	_, err := svc.Dashboard(context.Background())
	if got := apperrors.AsAppError(err).StatusCode(); got != http.StatusUnauthorized {
		t.Errorf("anonymous status = %d, want 401", got)
	}
}

func TestClient(t *testing.T) {
	svc, _ := newTestService(fixedCount{})

	got, err := svc.Client(as(auth.RoleClient))
	if err != nil {
		t.Fatalf("Client() error = %v", err)
	}
	if got.Total != 3 || len(got.Upcoming) != 1 || len(got.Past) != 2 {
		t.Errorf("Client() = %+v", got)
	}

	if _, err := svc.Client(as(auth.RoleAgent)); apperrors.AsAppError(err).StatusCode() != http.StatusForbidden {
		t.Errorf("agent calling Client() error = %v, want 403", err)
	}
}

func TestAgent_NextSevenDays(t *testing.T) {
	svc, counter := newTestService(fixedCount{})

	got, err := svc.Agent(as(auth.RoleAgent))
	if err != nil {
		t.Fatalf("Agent() error = %v", err)
	}
	if len(got.NextSevenDays) != 7 {
		t.Fatalf("days = %d, want 7", len(got.NextSevenDays))
	}
	// 20:00 UTC on Oct 15 is already Oct 16 in Kolkata.
	if first := got.NextSevenDays[0].Date; first != "2026-10-16" {
		t.Errorf("first day = %s, want 2026-10-16", first)
	}
	if last := got.NextSevenDays[6].Date; last != "2026-10-22" {
		t.Errorf("last day = %s, want 2026-10-22", last)
	}
	for _, q := range counter.queries {
		if q.Field != auth.FilterByAgent || q.UserID != "u1" {
			t.Errorf("query not scoped to agent: %+v", q)
		}
		if *q.Before-*q.From != (24 * time.Hour).Milliseconds() {
			t.Errorf("window = %d ms, want one day", *q.Before-*q.From)
		}
	}
	if got.UpcomingCount != 1 || got.Total != 3 {
		t.Errorf("totals = %d/%d", got.Total, got.UpcomingCount)
	}
}

func TestAdmin(t *testing.T) {
	svc, _ := newTestService(fixedCount{n: 30})

	got, err := svc.Admin(as(auth.RoleAdmin))
	if err != nil {
		t.Fatalf("Admin() error = %v", err)
	}
	if got.Users != 30 || got.Properties != 12 || got.Appointments != 2 || got.Promotions != 4 {
		t.Errorf("Admin() = %+v", got)
	}
	if got.PropertyStatus["sold"] != 2 {
		t.Errorf("status breakdown = %v", got.PropertyStatus)
	}
}

func TestAdmin_CountFailure(t *testing.T) {
	svc, _ := newTestService(fixedCount{err: errors.New("timeout")})

	_, err := svc.Admin(as(auth.RoleAdmin))
	if got := apperrors.AsAppError(err).Code; got != apperrors.CodeInternal {
		t.Errorf("code = %s, want %s", got, apperrors.CodeInternal)
	}
}
