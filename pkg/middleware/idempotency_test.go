package middleware

import (
	"net/http"
	"net/http/httptest"
	"realty/pkg/auth"
	"testing"
	"time"
)

func TestIdempotency_ReplaysPerCaller(t *testing.T) {
	store := NewInMemoryIdempotencyStore(time.Hour)
	defer store.Stop()

	calls := 0
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data":{"id":"a1"}}`))
	})
	h := Idempotency(store, "")(next)

	send := func(userID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", nil)
		req.Header.Set("Idempotency-Key", "k-1")
		req = req.WithContext(auth.WithPrincipal(req.Context(), &auth.Principal{UserID: userID, Role: auth.RoleClient}))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)
		return w
	}

	first := send("u1")
	second := send("u1")
	other := send("u2")

	if calls != 2 {
		t.Errorf("expected handler to run twice (u1 once, u2 once), ran %d times", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replayed response mismatch: %d %q", second.Code, second.Body.String())
	}
	if other.Code != http.StatusCreated {
		t.Errorf("expected status 201 for second caller, got %d", other.Code)
	}
}
