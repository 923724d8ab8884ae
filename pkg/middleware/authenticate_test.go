package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"realty/pkg/auth"
	"realty/pkg/logger"
	"testing"
)

type mockVerifier struct {
	verifyFunc func(token string) (*auth.Principal, error)
}

func (m *mockVerifier) Verify(token string) (*auth.Principal, error) {
	return m.verifyFunc(token)
}

func TestAuthenticate(t *testing.T) {
	verifier := &mockVerifier{
		verifyFunc: func(token string) (*auth.Principal, error) {
			if token == "good" {
				return &auth.Principal{UserID: "u1", Role: auth.RoleClient}, nil
			}
			return nil, errors.New("bad token")
		},
	}

	tests := []struct {
		name          string
		header        string
		wantStatus    int
		wantPrincipal bool
	}{
		{"anonymous", "", http.StatusOK, false},
		{"valid bearer", "Bearer good", http.StatusOK, true},
		{"invalid bearer", "Bearer bad", http.StatusUnauthorized, false},
		{"wrong scheme", "Basic dXNlcjpwYXNz", http.StatusUnauthorized, false},
		{"empty bearer", "Bearer ", http.StatusUnauthorized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPrincipal *auth.Principal
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPrincipal = auth.PrincipalFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/appointments", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			Authenticate(verifier, logger.Discard())(next).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if (gotPrincipal != nil) != tt.wantPrincipal {
				t.Errorf("principal present = %v, want %v", gotPrincipal != nil, tt.wantPrincipal)
			}
		})
	}
}
