package middleware

import (
	"net/http"
	"net/http/httptest"
	"realty/pkg/logger"
	"strings"
	"testing"
)

func TestContentTypeValidation(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := ContentTypeValidation(logger.Discard())(next)

	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
	}{
		{"get without header", http.MethodGet, "", "", http.StatusOK},
		{"json post", http.MethodPost, "application/json; charset=utf-8", `{}`, http.StatusOK},
		{"multipart upload", http.MethodPost, "multipart/form-data; boundary=xyz", "--xyz--", http.StatusOK},
		{"form post", http.MethodPost, "application/x-www-form-urlencoded", "a=b", http.StatusUnsupportedMediaType},
		{"missing header on patch", http.MethodPatch, "", `{}`, http.StatusUnsupportedMediaType},
		{"bodiless patch", http.MethodPatch, "", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, "/api/v1/appointments", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set("Content-Type", tt.contentType)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)
			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}
