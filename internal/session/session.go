// Package session holds the per-request view of who is acting and what is selected.
//
// A Session is passed explicitly into the group and invitation operations; there is
// no ambient current user. Only the logged-in user id is persisted (current-user key),
// selection is transient.
package session

import (
	"context"
	"fmt"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/storage"
)

// Session is the acting user plus the UI selection.
type Session struct {
	UserID          string
	SelectedGroupID string
	SelectedDateID  string
}

// New returns a session for userID with nothing selected.
func New(userID string) Session {
	return Session{UserID: models.NormalizeUserID(userID)}
}

// Authenticated reports whether a user is logged in.
func (s Session) Authenticated() bool {
	return s.UserID != ""
}

// Require returns ErrUnauthorized when no user is logged in.
func (s Session) Require() error {
	if !s.Authenticated() {
		return fmt.Errorf("%w: login required", models.ErrUnauthorized)
	}
	return nil
}

// SelectGroup selects groupID if it is among visible, otherwise the first visible
// group, otherwise nothing. The selected date is cleared when the group changes.
func (s Session) SelectGroup(groupID string, visible []models.Group) Session {
	next := ""
	for _, g := range visible {
		if g.ID == groupID {
			next = g.ID
			break
		}
	}
	if next == "" && len(visible) > 0 {
		next = visible[0].ID
	}
	if next != s.SelectedGroupID {
		s.SelectedDateID = ""
	}
	s.SelectedGroupID = next
	return s
}

// AfterDateDeleted moves the date selection to the first remaining date, or clears it,
// when deletedID was selected.
func (s Session) AfterDateDeleted(deletedID string, remaining []models.AttendanceDate) Session {
	if s.SelectedDateID != deletedID {
		return s
	}
	s.SelectedDateID = ""
	if len(remaining) > 0 {
		s.SelectedDateID = remaining[0].ID
	}
	return s
}

type ctxKey struct{}

// WithContext returns a copy of ctx carrying s.
func WithContext(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext extracts the session set by WithContext. ok is false if none was set.
func FromContext(ctx context.Context) (Session, bool) {
	s, ok := ctx.Value(ctxKey{}).(Session)
	return s, ok
}

// Store persists the logged-in user id under the current-user key.
type Store struct {
	kv storage.KV
}

// NewStore creates a Store on kv.
func NewStore(kv storage.KV) *Store {
	return &Store{kv: kv}
}

// Login records userID as the current user.
func (s *Store) Login(ctx context.Context, userID string) (Session, error) {
	sess := New(userID)
	if err := sess.Require(); err != nil {
		return Session{}, err
	}
	if err := storage.Write(ctx, s.kv, storage.KeyCurrentUser, &sess.UserID); err != nil {
		return Session{}, err
	}
	return sess, nil
}

// Logout clears the current user.
func (s *Store) Logout(ctx context.Context) error {
	var none *string
	return storage.Write(ctx, s.kv, storage.KeyCurrentUser, none)
}

// Current returns the session of the persisted current user. The session is
// unauthenticated when nobody is logged in.
func (s *Store) Current(ctx context.Context) (Session, error) {
	userID, err := storage.Read[*string](ctx, s.kv, storage.KeyCurrentUser, nil)
	if err != nil {
		return Session{}, err
	}
	if userID == nil {
		return Session{}, nil
	}
	return New(*userID), nil
}
