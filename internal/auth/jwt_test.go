package auth

import (
	"errors"
	"testing"
	"time"
)

func testManager(now time.Time) *JWTManager {
	m := NewJWTManager(JWTConfig{
		Secret:     "test-secret",
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
		Issuer:     "habitual-test",
	})
	m.now = func() time.Time { return now }
	return m
}

func TestJWTManager_AccessToken(t *testing.T) {
	now := time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)
	m := testManager(now)

	token, err := m.AccessToken("user-123", "ada@example.com")
	if err != nil {
		t.Fatalf("AccessToken() error = %v", err)
	}
	claims, err := m.ValidateAccessToken(token)
	if err != nil {
		t.Fatalf("ValidateAccessToken() error = %v", err)
	}
	if claims.UserID != "user-123" || claims.Email != "ada@example.com" || claims.Subject != "user-123" {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if got := claims.ExpiresAt.Time; !got.Equal(now.Add(15 * time.Minute)) {
		t.Errorf("expires at %v", got)
	}
	if m.ExpiresIn() != 900 {
		t.Errorf("ExpiresIn() = %d, want 900", m.ExpiresIn())
	}
}

func TestJWTManager_TokenTypesAreNotInterchangeable(t *testing.T) {
	m := testManager(time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC))

	access, _ := m.AccessToken("u", "e@example.com")
	refresh, _ := m.RefreshToken("u", "e@example.com")

	if _, err := m.ValidateRefreshToken(access); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("access token accepted as refresh: %v", err)
	}
	if _, err := m.ValidateAccessToken(refresh); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("refresh token accepted as access: %v", err)
	}
	if _, err := m.ValidateRefreshToken(refresh); err != nil {
		t.Errorf("ValidateRefreshToken() error = %v", err)
	}
}

func TestJWTManager_Rejects(t *testing.T) {
	issued := time.Date(2024, 1, 12, 10, 0, 0, 0, time.UTC)
	m := testManager(issued)
	token, _ := m.AccessToken("u", "e@example.com")

	tests := []struct {
		name    string
		manager *JWTManager
		token   string
		wantErr error
	}{
		{"expired", testManager(issued.Add(16 * time.Minute)), token, ErrExpiredToken},
		{"wrong secret", func() *JWTManager {
			o := testManager(issued)
			o.cfg.Secret = "other"
			return o
		}(), token, ErrInvalidToken},
		{"wrong issuer", func() *JWTManager {
			o := testManager(issued)
			o.cfg.Issuer = "someone-else"
			return o
		}(), token, ErrInvalidToken},
		{"garbage", m, "not.a.token", ErrInvalidToken},
		{"empty", m, "", ErrInvalidToken},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.manager.ValidateAccessToken(tt.token); !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateAccessToken() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
