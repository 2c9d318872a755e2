package session

import (
	"context"
	"errors"
	"testing"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/storage/memory"
)

func TestSelectGroup(t *testing.T) {
	groups := []models.Group{{ID: "g1"}, {ID: "g2"}}

	tests := []struct {
		name      string
		current   Session
		requested string
		visible   []models.Group
		wantGroup string
		wantDate  string
	}{
		{"selects requested", Session{}, "g2", groups, "g2", ""},
		{"falls back to first", Session{}, "gone", groups, "g1", ""},
		{"nothing visible", Session{SelectedGroupID: "g1"}, "g1", nil, "", ""},
		{"same group keeps date", Session{SelectedGroupID: "g1", SelectedDateID: "d1"}, "g1", groups, "g1", "d1"},
		{"new group clears date", Session{SelectedGroupID: "g1", SelectedDateID: "d1"}, "g2", groups, "g2", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.current.SelectGroup(tt.requested, tt.visible)
			if got.SelectedGroupID != tt.wantGroup || got.SelectedDateID != tt.wantDate {
				t.Errorf("got group=%q date=%q, want group=%q date=%q",
					got.SelectedGroupID, got.SelectedDateID, tt.wantGroup, tt.wantDate)
			}
		})
	}
}

func TestAfterDateDeleted(t *testing.T) {
	remaining := []models.AttendanceDate{{ID: "d2"}, {ID: "d3"}}

	s := Session{SelectedDateID: "d1"}
	if got := s.AfterDateDeleted("d1", remaining); got.SelectedDateID != "d2" {
		t.Errorf("Expected fallback to d2, got %q", got.SelectedDateID)
	}
	if got := s.AfterDateDeleted("d1", nil); got.SelectedDateID != "" {
		t.Errorf("Expected cleared selection, got %q", got.SelectedDateID)
	}
	if got := s.AfterDateDeleted("other", remaining); got.SelectedDateID != "d1" {
		t.Errorf("Expected unchanged selection, got %q", got.SelectedDateID)
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(memory.New())

	sess, err := store.Current(ctx)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if sess.Authenticated() {
		t.Fatalf("Expected no user, got %q", sess.UserID)
	}
	if err := sess.Require(); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Require = %v", err)
	}

	if _, err := store.Login(ctx, "  Alice@Example.com "); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	sess, _ = store.Current(ctx)
	if sess.UserID != "alice@example.com" {
		t.Errorf("UserID = %q", sess.UserID)
	}

	if _, err := store.Login(ctx, "   "); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Login with blank id = %v", err)
	}

	if err := store.Logout(ctx); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	sess, _ = store.Current(ctx)
	if sess.Authenticated() {
		t.Errorf("Expected logged out, got %q", sess.UserID)
	}
}

func TestContext(t *testing.T) {
	ctx := WithContext(context.Background(), New("bob@example.com"))
	s, ok := FromContext(ctx)
	if !ok || s.UserID != "bob@example.com" {
		t.Errorf("FromContext = %+v, %v", s, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Error("Expected no session in empty context")
	}
}
