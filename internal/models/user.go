package models

import (
	"strings"
	"time"
)

// UserAccount is the credential record of a login-capable user,
// stored under user-accounts keyed by normalized email.
type UserAccount struct {
	// Email is the normalized login identifier. It doubles as the user id.
	Email string `json:"email"`

	// PasswordHash is the bcrypt hash of the user's password.
	PasswordHash string `json:"passwordHash"`

	// CreatedAt is the Unix timestamp when the account was registered.
	CreatedAt int64 `json:"createdAt"`
}

// UserProfile is display metadata for a user, stored under user-profiles keyed by user id.
type UserProfile struct {
	UserID string `json:"userId"`

	// Name is the display name. Defaults to the user id.
	Name string `json:"name"`

	// Photo is an inline data URL, or empty.
	Photo string `json:"photo,omitempty"`

	// UpdatedAt is the Unix timestamp of the last profile change.
	UpdatedAt int64 `json:"updatedAt"`
}

// NormalizeUserID trims and lower-cases a login identifier.
func NormalizeUserID(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// DefaultProfile is returned for users that never saved a profile.
func DefaultProfile(userID string) UserProfile {
	return UserProfile{
		UserID: userID,
		Name:   userID,
	}
}

// NewUserAccount builds an account record for an already normalized email.
func NewUserAccount(email, passwordHash string, now time.Time) UserAccount {
	return UserAccount{
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now.Unix(),
	}
}
