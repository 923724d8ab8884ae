package auth

import (
	"errors"
	"testing"
	"time"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestTokenManager_IssueAndVerify(t *testing.T) {
	m := NewTokenManager(testSecret, "realty-accounts", time.Hour)
	in := Principal{UserID: "665f1c2e9b1e8a0012345678", Email: "a@example.com", Name: "Asha", Role: RoleAgent}

	token, expiresAt, err := m.Issue(in)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}
	if time.Until(expiresAt) <= 0 {
		t.Errorf("expiry should be in the future, got %v", expiresAt)
	}

	got, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if *got != in {
		t.Errorf("Verify() = %+v, want %+v", *got, in)
	}
}

func TestTokenManager_VerifyRejects(t *testing.T) {
	m := NewTokenManager(testSecret, "realty-accounts", time.Hour)
	p := Principal{UserID: "u1", Email: "c@example.com", Role: RoleClient}

	otherSecret := NewTokenManager("ffffffffffffffffffffffffffffffff", "realty-accounts", time.Hour)
	forged, _, _ := otherSecret.Issue(p)

	otherIssuer := NewTokenManager(testSecret, "someone-else", time.Hour)
	wrongIssuer, _, _ := otherIssuer.Issue(p)

	expired := NewTokenManager(testSecret, "realty-accounts", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	stale, _, _ := expired.Issue(p)

	badRole := NewTokenManager(testSecret, "realty-accounts", time.Hour)
	unknownRole, _, _ := badRole.Issue(Principal{UserID: "u1", Role: Role("owner")})

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", forged},
		{"wrong issuer", wrongIssuer},
		{"expired", stale},
		{"unknown role", unknownRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			if !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}
	if err := CheckPassword(hash, "s3cret-pass"); err != nil {
		t.Errorf("CheckPassword() with correct password error = %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("CheckPassword() with wrong password = %v, want ErrPasswordMismatch", err)
	}
}
