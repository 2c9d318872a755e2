package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mmynk/gameochtend/internal/models"
)

// Issuer is stamped on every token and required on validation.
const Issuer = "gameochtend"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// JWTManager issues and checks the bearer tokens of logged-in users.
type JWTManager struct {
	secretKey     []byte
	tokenDuration time.Duration
	parser        *jwt.Parser
}

// Claims identify the user in the standard subject claim. Name is the display name
// at login time and is informational only.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// UserID returns the normalized login email the token was issued to.
func (c *Claims) UserID() string {
	return c.Subject
}

// NewJWTManager creates a JWTManager signing with secretKey (HS256). Tokens expire
// tokenDuration after issue.
func NewJWTManager(secretKey string, tokenDuration time.Duration) *JWTManager {
	return &JWTManager{
		secretKey:     []byte(secretKey),
		tokenDuration: tokenDuration,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(Issuer),
			jwt.WithExpirationRequired(),
		),
	}
}

// Generate issues a token for profile's user.
func (m *JWTManager) Generate(profile models.UserProfile) (string, error) {
	if profile.UserID == "" {
		return "", fmt.Errorf("%w: token needs a user id", models.ErrValidation)
	}
	now := time.Now()
	claims := &Claims{
		Name: profile.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    Issuer,
			Subject:   profile.UserID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.tokenDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate checks signature, issuer and expiry and returns the token's claims.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := m.parser.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return m.secretKey, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !token.Valid || claims.UserID() == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
