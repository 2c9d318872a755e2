package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/gameochtend/internal/accounts"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/storage/memory"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()
	kv := memory.New()
	profiles := accounts.NewProfileStore(kv)
	a := NewPasswordAuthenticator(accounts.NewAccountStore(kv), profiles)

	t.Run("Register normalizes email and hashes password", func(t *testing.T) {
		account, err := a.Register(ctx, " Alice@Example.com ", "Alice", "correct-horse")
		if err != nil {
			t.Fatalf("Register failed: %v", err)
		}
		if account.Email != "alice@example.com" {
			t.Errorf("Email = %q", account.Email)
		}
		if account.PasswordHash == "correct-horse" || account.PasswordHash == "" {
			t.Error("Password was not hashed")
		}
		p, _ := profiles.Get(ctx, "alice@example.com")
		if p.Name != "Alice" {
			t.Errorf("Profile name = %q", p.Name)
		}
	})

	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"weak password", "bob@example.com", "short", ErrWeakPassword},
		{"invalid email", "bob", "long-enough", ErrInvalidEmail},
		{"duplicate", "ALICE@example.com", "another-pass", accounts.ErrAccountExists},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := a.Register(ctx, tt.email, "", tt.password); !errors.Is(err, tt.wantErr) {
				t.Errorf("Register err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	t.Run("Authenticate", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "alice@example.com", "correct-horse"); err != nil {
			t.Errorf("Authenticate failed: %v", err)
		}
		if _, err := a.Authenticate(ctx, "alice@example.com", "wrong-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("wrong password err = %v", err)
		}
		if _, err := a.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("unknown user err = %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	alice := models.UserProfile{UserID: "alice@example.com", Name: "Alice"}

	token, err := m.Generate(alice)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID() != "alice@example.com" || claims.Name != "Alice" || claims.Issuer != Issuer {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := m.Generate(models.UserProfile{Name: "Nobody"}); !errors.Is(err, models.ErrValidation) {
		t.Errorf("Generate without user id err = %v", err)
	}

	sign := func(c jwt.Claims, method jwt.SigningMethod) string {
		signed, err := jwt.NewWithClaims(method, c).SignedString([]byte("test-secret"))
		if err != nil {
			t.Fatalf("SignedString failed: %v", err)
		}
		return signed
	}
	expired, err := NewJWTManager("test-secret", -time.Minute).Generate(alice)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	inAnHour := jwt.NewNumericDate(time.Now().Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"wrong secret", func() string { tok, _ := NewJWTManager("other-secret", time.Hour).Generate(alice); return tok }()},
		{"expired", expired},
		{"garbage", "not-a-token"},
		{"foreign issuer", sign(jwt.RegisteredClaims{Issuer: "elsewhere", Subject: "alice@example.com", ExpiresAt: inAnHour}, jwt.SigningMethodHS256)},
		{"no expiry", sign(jwt.RegisteredClaims{Issuer: Issuer, Subject: "alice@example.com"}, jwt.SigningMethodHS256)},
		{"no subject", sign(jwt.RegisteredClaims{Issuer: Issuer, ExpiresAt: inAnHour}, jwt.SigningMethodHS256)},
		{"other algorithm", sign(jwt.RegisteredClaims{Issuer: Issuer, Subject: "alice@example.com", ExpiresAt: inAnHour}, jwt.SigningMethodHS512)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Validate(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Errorf("Validate err = %v", err)
			}
		})
	}
}
