package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"realty/pkg/logger"
)

func TestHandler_Ready(t *testing.T) {
	ok := CheckerFunc{N: "mongodb", Fn: func(context.Context) error { return nil }}
	down := CheckerFunc{N: "redis", Fn: func(context.Context) error { return errors.New("connection refused") }}

	tests := []struct {
		name       string
		checkers   []Checker
		wantStatus int
		wantBody   string
		wantDeps   map[string]string
	}{
		{
			name:       "no dependencies",
			wantStatus: http.StatusOK,
			wantBody:   "ready",
			wantDeps:   map[string]string{},
		},
		{
			name:       "all healthy",
			checkers:   []Checker{ok},
			wantStatus: http.StatusOK,
			wantBody:   "ready",
			wantDeps:   map[string]string{"mongodb": "ok"},
		},
		{
			name:       "one failing",
			checkers:   []Checker{ok, down},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unavailable",
			wantDeps:   map[string]string{"mongodb": "ok", "redis": "error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := httprouter.New()
			NewHandler(logger.Discard(), tt.checkers...).RegisterRoutes(router)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Status != tt.wantBody {
				t.Errorf("status field = %q, want %q", resp.Status, tt.wantBody)
			}
			for name, want := range tt.wantDeps {
				if got := resp.Dependencies[name]; got != want {
					t.Errorf("dependency %s = %q, want %q", name, got, want)
				}
			}
		})
	}
}

func TestHandler_Health(t *testing.T) {
	router := httprouter.New()
	NewHandler(logger.Discard()).RegisterRoutes(router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}
