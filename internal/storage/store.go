// Package storage provides the key-value abstraction every collection is persisted through.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Persisted keys. Each key holds one JSON document.
const (
	KeyCurrentUser     = "current-user"
	KeyGroups          = "groups"
	KeyInvitations     = "invitations"
	KeyChecklistItems  = "checklist-items"
	KeyAttendanceDates = "attendance-dates"
	KeyNotes           = "notes"
	KeyUserAccounts    = "user-accounts"
	KeyUserProfiles    = "user-profiles"
	KeySchemaVersion   = "schema-version"

	// KeyLegacyAttendance is the name-keyed attendance map written by the first app generation.
	// It is only read by the schema migration.
	KeyLegacyAttendance = "attendance"
)

// ErrStoreClosed is returned by backends after Close.
var ErrStoreClosed = errors.New("store closed")

// UpdateFunc receives the current raw value of a key (found reports whether it exists)
// and returns the value to store.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// KV defines the key-value operations the domain packages depend on.
// This abstraction allows swapping storage backends (SQLite, MongoDB, memory)
// without changing the domain layer.
//
// There are no transactions across keys.
type KV interface {
	// Get returns the raw value of key. found is false when the key was never written.
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set overwrites the value of key.
	Set(ctx context.Context, key string, value []byte) error

	// Update performs a read-modify-write of a single key. Backends serialize
	// updates issued through the same store value, so functional updates compose
	// within one process. If fn returns an error nothing is written.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the store.
	Close() error
}

// Read decodes the document under key into T, returning def when the key is absent.
func Read[T any](ctx context.Context, kv KV, key string, def T) (T, error) {
	raw, found, err := kv.Get(ctx, key)
	if err != nil {
		return def, fmt.Errorf("failed to read %s: %w", key, err)
	}
	if !found || len(raw) == 0 {
		return def, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return def, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return v, nil
}

// Write encodes v and stores it under key.
func Write[T any](ctx context.Context, kv KV, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if err := kv.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Update is the functional write form: fn receives the decoded current value
// (def when absent) and returns the value to store. Errors from fn are returned
// unwrapped so domain sentinels survive.
func Update[T any](ctx context.Context, kv KV, key string, def T, fn func(T) (T, error)) error {
	var fnErr error
	err := kv.Update(ctx, key, func(current []byte, found bool) ([]byte, error) {
		v := def
		if found && len(current) > 0 {
			var decoded T
			if err := json.Unmarshal(current, &decoded); err != nil {
				return nil, fmt.Errorf("failed to decode %s: %w", key, err)
			}
			v = decoded
		}
		next, err := fn(v)
		if err != nil {
			fnErr = err
			return nil, err
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s: %w", key, err)
		}
		return raw, nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", key, err)
	}
	return nil
}
