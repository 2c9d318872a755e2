// Package accounts provides the Account Store (login identifier to credential record)
// and the Profile Store (user id to display metadata). Both are single map documents.
package accounts

import (
	"context"
	"errors"
	"fmt"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/storage"
)

// ErrAccountExists is returned when registering an email twice.
var ErrAccountExists = errors.New("email already registered")

// AccountStore persists UserAccount records under user-accounts.
type AccountStore struct {
	kv storage.KV
}

// NewAccountStore creates an AccountStore on kv.
func NewAccountStore(kv storage.KV) *AccountStore {
	return &AccountStore{kv: kv}
}

// Create stores a new account. The email must already be normalized.
func (s *AccountStore) Create(ctx context.Context, account models.UserAccount) error {
	if account.Email == "" {
		return fmt.Errorf("%w: email is required", models.ErrValidation)
	}
	return storage.Update(ctx, s.kv, storage.KeyUserAccounts, map[string]models.UserAccount{}, func(all map[string]models.UserAccount) (map[string]models.UserAccount, error) {
		if all == nil {
			all = map[string]models.UserAccount{}
		}
		if _, exists := all[account.Email]; exists {
			return nil, ErrAccountExists
		}
		all[account.Email] = account
		return all, nil
	})
}

// Get returns the account for email. found is false when no account exists.
func (s *AccountStore) Get(ctx context.Context, email string) (models.UserAccount, bool, error) {
	all, err := storage.Read(ctx, s.kv, storage.KeyUserAccounts, map[string]models.UserAccount{})
	if err != nil {
		return models.UserAccount{}, false, err
	}
	account, found := all[models.NormalizeUserID(email)]
	return account, found, nil
}
