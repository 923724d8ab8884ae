package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"realty/internal/appointments/service"
	apperrors "realty/pkg/errors"
	"realty/pkg/logger"
	"realty/pkg/model"

	"github.com/julienschmidt/httprouter"
)

type mockAppointmentService struct {
	availabilityFunc func(ctx context.Context, propertyID, date string) (*model.Availability, error)
	bookFunc         func(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error)
	cancelFunc       func(ctx context.Context, id string) error
	getByIDFunc      func(ctx context.Context, id string) (*model.Appointment, error)
	listFunc         func(ctx context.Context, scope service.Scope, limit int, offset int64) ([]*model.Appointment, int64, error)
	overviewFunc     func(ctx context.Context) (*model.AppointmentOverview, error)
}

func (m *mockAppointmentService) Availability(ctx context.Context, propertyID, date string) (*model.Availability, error) {
	return m.availabilityFunc(ctx, propertyID, date)
}

func (m *mockAppointmentService) Book(ctx context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
	return m.bookFunc(ctx, req)
}

func (m *mockAppointmentService) Cancel(ctx context.Context, id string) error {
	return m.cancelFunc(ctx, id)
}

func (m *mockAppointmentService) GetByID(ctx context.Context, id string) (*model.Appointment, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockAppointmentService) List(ctx context.Context, scope service.Scope, limit int, offset int64) ([]*model.Appointment, int64, error) {
	return m.listFunc(ctx, scope, limit, offset)
}

func (m *mockAppointmentService) Overview(ctx context.Context) (*model.AppointmentOverview, error) {
	return m.overviewFunc(ctx)
}

func newRouter(svc service.AppointmentService) *httprouter.Router {
	router := httprouter.New()
	NewAppointmentHandler(svc, logger.Discard()).RegisterRoutes(router)
	return router
}

func TestAppointmentHandler_Availability(t *testing.T) {
	svc := &mockAppointmentService{
		availabilityFunc: func(_ context.Context, propertyID, date string) (*model.Availability, error) {
			return &model.Availability{Date: date, AgentID: "g1", Slots: []string{"09:00", "10:00"}}, nil
		},
	}
	router := newRouter(svc)

	t.Run("ok", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/availability?property_id=p1&date=2026-10-20", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body)
		}
		var resp struct {
			Data model.Availability `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(resp.Data.Slots) != 2 || resp.Data.Date != "2026-10-20" {
			t.Errorf("data = %+v", resp.Data)
		}
	})

	t.Run("missing date", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments/availability?property_id=p1", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAppointmentHandler_Book(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"created", `{"property_id":"p1","date":"2026-10-20","time":"09:00"}`, nil, http.StatusCreated, ""},
		{"bad json", `{`, nil, http.StatusBadRequest, apperrors.CodeBadRequest},
		{"slot taken", `{"property_id":"p1","date":"2026-10-20","time":"09:00"}`, apperrors.SlotUnavailable("taken"), http.StatusConflict, apperrors.CodeSlotUnavailable},
		{"capacity", `{"property_id":"p1","date":"2026-10-20","time":"09:00"}`, apperrors.CapacityExhausted("full"), http.StatusConflict, apperrors.CodeCapacityExhausted},
		{"anonymous", `{"property_id":"p1","date":"2026-10-20","time":"09:00"}`, apperrors.Unauthorized("sign in"), http.StatusUnauthorized, apperrors.CodeUnauthorized},
		{"store down", `{"property_id":"p1","date":"2026-10-20","time":"09:00"}`, apperrors.Unavailable("Appointment store"), http.StatusServiceUnavailable, apperrors.CodeUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockAppointmentService{
				bookFunc: func(_ context.Context, req *model.AppointmentRequest) (*model.Appointment, error) {
					if tt.err != nil {
						return nil, tt.err
					}
					return &model.Appointment{ID: "a1", PropertyID: req.PropertyID, Date: req.Date, Time: req.Time}, nil
				},
			}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", bytes.NewBufferString(tt.body))
			newRouter(svc).ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if tt.wantCode != "" {
				var resp struct {
					Code string `json:"code"`
				}
				_ = json.NewDecoder(rec.Body).Decode(&resp)
				if resp.Code != tt.wantCode {
					t.Errorf("code = %q, want %q", resp.Code, tt.wantCode)
				}
			}
		})
	}
}

func TestAppointmentHandler_ListScopesAndPaging(t *testing.T) {
	tests := []struct {
		path       string
		wantScope  service.Scope
		wantLimit  int
		wantOffset int64
	}{
		{"/api/v1/appointments", service.ScopeAll, 5, 0},
		{"/api/v1/appointments?page=3", service.ScopeAll, 5, 10},
		{"/api/v1/appointments/upcoming?limit=20&offset=4", service.ScopeUpcoming, 20, 4},
		{"/api/v1/appointments/past", service.ScopePast, 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			svc := &mockAppointmentService{
				listFunc: func(_ context.Context, scope service.Scope, limit int, offset int64) ([]*model.Appointment, int64, error) {
					if scope != tt.wantScope || limit != tt.wantLimit || offset != tt.wantOffset {
						t.Errorf("List(%v, %d, %d), want (%v, %d, %d)", scope, limit, offset, tt.wantScope, tt.wantLimit, tt.wantOffset)
					}
					return []*model.Appointment{}, 0, nil
				},
			}
			rec := httptest.NewRecorder()
			newRouter(svc).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != http.StatusOK {
				t.Errorf("status = %d", rec.Code)
			}
		})
	}

	t.Run("bad page", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newRouter(&mockAppointmentService{}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/appointments?page=0", nil))
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})
}

func TestAppointmentHandler_Cancel(t *testing.T) {
	var gotID string
	svc := &mockAppointmentService{
		cancelFunc: func(_ context.Context, id string) error {
			gotID = id
			if id == "missing" {
				return apperrors.NotFoundWithID("Appointment", id)
			}
			return nil
		},
	}
	router := newRouter(svc)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/id/a1", nil))
	if rec.Code != http.StatusNoContent || gotID != "a1" {
		t.Errorf("status = %d id = %q", rec.Code, gotID)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/appointments/id/missing", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
