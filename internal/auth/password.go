package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/gameochtend/internal/accounts"
	"github.com/mmynk/gameochtend/internal/models"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWeakPassword       = errors.New("password must be at least 8 characters")
	ErrInvalidEmail       = errors.New("a valid email address is required")
)

// Ensure PasswordAuthenticator implements Authenticator
var _ Authenticator = (*PasswordAuthenticator)(nil)

// PasswordAuthenticator implements password-based authentication using bcrypt
// over the Account Store. Registration also seeds the user's profile.
type PasswordAuthenticator struct {
	accounts *accounts.AccountStore
	profiles *accounts.ProfileStore
	now      func() time.Time
}

// NewPasswordAuthenticator creates a new password-based authenticator.
func NewPasswordAuthenticator(accountStore *accounts.AccountStore, profileStore *accounts.ProfileStore) *PasswordAuthenticator {
	return &PasswordAuthenticator{
		accounts: accountStore,
		profiles: profileStore,
		now:      time.Now,
	}
}

// ValidateCredential checks if the password meets minimum requirements.
func (a *PasswordAuthenticator) ValidateCredential(credential string) error {
	if len(credential) < 8 {
		return ErrWeakPassword
	}
	return nil
}

// Register creates a new account with a hashed password and stores the display name
// in the user's profile.
func (a *PasswordAuthenticator) Register(ctx context.Context, email, displayName, credential string) (models.UserAccount, error) {
	email = models.NormalizeUserID(email)
	if email == "" || !strings.Contains(email, "@") {
		return models.UserAccount{}, ErrInvalidEmail
	}

	// Validate password strength
	if err := a.ValidateCredential(credential); err != nil {
		return models.UserAccount{}, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return models.UserAccount{}, fmt.Errorf("failed to hash password: %w", err)
	}

	account := models.NewUserAccount(email, string(hashedPassword), a.now())
	if err := a.accounts.Create(ctx, account); err != nil {
		return models.UserAccount{}, err
	}

	if _, err := a.profiles.Update(ctx, email, displayName, nil); err != nil {
		return account, fmt.Errorf("failed to create profile: %w", err)
	}

	return account, nil
}

// Authenticate verifies the email and password, returning the account if valid.
func (a *PasswordAuthenticator) Authenticate(ctx context.Context, email, credential string) (models.UserAccount, error) {
	account, found, err := a.accounts.Get(ctx, email)
	if err != nil {
		return models.UserAccount{}, err
	}
	if !found {
		return models.UserAccount{}, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(credential)); err != nil {
		return models.UserAccount{}, ErrInvalidCredentials
	}

	return account, nil
}
