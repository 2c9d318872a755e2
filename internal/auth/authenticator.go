package auth

import (
	"context"

	"github.com/mmynk/gameochtend/internal/models"
)

// Authenticator defines the interface for authentication implementations.
// This abstraction allows swapping between different auth methods (password, passkeys, OAuth, etc.)
// without changing the service layer code.
type Authenticator interface {
	// Register creates an account and an initial profile for email.
	// The email is normalized and becomes the user id.
	Register(ctx context.Context, email, displayName, credential string) (models.UserAccount, error)

	// Authenticate verifies the credential and returns the account if it matches.
	Authenticate(ctx context.Context, email, credential string) (models.UserAccount, error)

	// ValidateCredential checks if the credential meets the implementation's requirements.
	ValidateCredential(credential string) error
}
