package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret-key-with-32-bytes!!!", time.Hour)

	t.Run("Generate and Validate round trip", func(t *testing.T) {
		token, err := manager.Generate("M1", "Aki")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}

		claims, err := manager.Validate(token)
		if err != nil {
			t.Fatalf("Validate failed: %v", err)
		}
		if claims.MemberID != "M1" || claims.DisplayName != "Aki" {
			t.Errorf("unexpected claims %+v", claims)
		}
		if claims.Subject != "M1" || claims.Issuer != Issuer {
			t.Errorf("unexpected registered claims %+v", claims.RegisteredClaims)
		}
	})

	t.Run("Generate requires member id", func(t *testing.T) {
		if _, err := manager.Generate("", "nobody"); err == nil {
			t.Error("expected error for empty member id")
		}
	})

	t.Run("wrong secret is rejected", func(t *testing.T) {
		other := NewJWTManager("another-secret", time.Hour)
		token, _ := other.Generate("M1", "")
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		past := NewJWTManager("test-secret-key-with-32-bytes!!!", time.Minute)
		past.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		token, err := past.Generate("M1", "")
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := manager.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unsigned token is rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
			MemberID:         "M1",
			RegisteredClaims: jwt.RegisteredClaims{Issuer: Issuer},
		})
		raw, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("failed to build none token: %v", err)
		}
		if _, err := manager.Validate(raw); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		if _, err := manager.Validate("not.a.token"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
