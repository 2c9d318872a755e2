package groups

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage/memory"
)

var (
	alice = session.New("alice")
	bob   = session.New("bob")
)

func newManager(t *testing.T) *Manager {
	t.Helper()
	kv := memory.New()
	t.Cleanup(func() { kv.Close() })
	return NewManager(kv, nil)
}

func mustCreate(t *testing.T, m *Manager, sess session.Session, name string) models.Group {
	t.Helper()
	g, err := m.Create(context.Background(), sess, name)
	if err != nil {
		t.Fatalf("Create(%q) failed: %v", name, err)
	}
	return g
}

func checkOwnerIsMember(t *testing.T, m *Manager) {
	t.Helper()
	all, err := m.All(context.Background())
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	for _, g := range all {
		if !g.HasMember(g.Owner) {
			t.Errorf("group %s: owner %q not in members %v", g.ID, g.Owner, g.Members)
		}
	}
}

func TestCreate(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)

	t.Run("owner is only member", func(t *testing.T) {
		g := mustCreate(t, m, alice, "Team1")
		if g.Owner != "alice" {
			t.Errorf("Owner = %q", g.Owner)
		}
		if !slices.Equal(g.Members, []string{"alice"}) {
			t.Errorf("Members = %v", g.Members)
		}
		if g.Participants == nil || len(g.Participants) != 0 {
			t.Errorf("Participants = %v", g.Participants)
		}
		if g.ID == "" {
			t.Error("Expected id")
		}
	})

	tests := []struct {
		name    string
		sess    session.Session
		input   string
		wantErr error
	}{
		{"empty name", alice, "", models.ErrValidation},
		{"blank name", alice, "   ", models.ErrValidation},
		{"markup only", alice, "<i></i>", models.ErrValidation},
		{"not logged in", session.Session{}, "Team", models.ErrUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.Create(ctx, tt.sess, tt.input); !errors.Is(err, tt.wantErr) {
				t.Errorf("Create err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	all, _ := m.All(ctx)
	if len(all) != 1 {
		t.Errorf("Expected failed creates to leave 1 group, got %d", len(all))
	}
}

func TestDeleteAndRename(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	g := mustCreate(t, m, alice, "Team1")
	if _, err := m.AddMember(ctx, g.ID, "bob"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	t.Run("member cannot rename", func(t *testing.T) {
		if _, err := m.Rename(ctx, bob, g.ID, "Hijacked"); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("Rename err = %v", err)
		}
	})

	t.Run("owner renames", func(t *testing.T) {
		renamed, err := m.Rename(ctx, alice, g.ID, "Dinsdag Ochtend")
		if err != nil {
			t.Fatalf("Rename failed: %v", err)
		}
		if renamed.Name != "Dinsdag Ochtend" {
			t.Errorf("Name = %q", renamed.Name)
		}
	})

	t.Run("member cannot delete", func(t *testing.T) {
		if err := m.Delete(ctx, bob, g.ID); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("Delete err = %v", err)
		}
		if _, found, _ := m.Lookup(ctx, g.ID); !found {
			t.Error("Group should still exist")
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		if err := m.Delete(ctx, alice, g.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, err := m.Get(ctx, alice, g.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Get after delete err = %v", err)
		}
		if err := m.Delete(ctx, alice, g.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Second delete err = %v", err)
		}
	})
}

func TestMembers(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	g := mustCreate(t, m, alice, "Team1")

	t.Run("non member is rejected", func(t *testing.T) {
		if _, err := m.Get(ctx, bob, g.ID); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("Get err = %v", err)
		}
		if _, err := m.AddParticipant(ctx, bob, g.ID, "Anna"); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("AddParticipant err = %v", err)
		}
	})

	t.Run("AddMember is idempotent", func(t *testing.T) {
		for i, want := range []bool{true, false} {
			added, err := m.AddMember(ctx, g.ID, " Bob ")
			if err != nil {
				t.Fatalf("AddMember #%d failed: %v", i, err)
			}
			if added != want {
				t.Errorf("AddMember #%d added = %v, want %v", i, added, want)
			}
		}
		got, _ := m.Get(ctx, bob, g.ID)
		if !slices.Equal(got.Members, []string{"alice", "bob"}) {
			t.Errorf("Members = %v", got.Members)
		}
	})

	t.Run("owner cannot be removed", func(t *testing.T) {
		if _, err := m.RemoveMember(ctx, bob, g.ID, "alice"); !errors.Is(err, models.ErrValidation) {
			t.Errorf("RemoveMember(owner) err = %v", err)
		}
		got, _ := m.Get(ctx, alice, g.ID)
		if !got.HasMember("alice") || len(got.Members) != 2 {
			t.Errorf("Members changed: %v", got.Members)
		}
	})

	t.Run("remove member", func(t *testing.T) {
		updated, err := m.RemoveMember(ctx, alice, g.ID, "bob")
		if err != nil {
			t.Fatalf("RemoveMember failed: %v", err)
		}
		if !slices.Equal(updated.Members, []string{"alice"}) {
			t.Errorf("Members = %v", updated.Members)
		}
		if _, err := m.RemoveMember(ctx, alice, g.ID, "bob"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Second RemoveMember err = %v", err)
		}
	})

	t.Run("AddMember on missing group", func(t *testing.T) {
		if _, err := m.AddMember(ctx, "missing", "bob"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("AddMember err = %v", err)
		}
	})

	checkOwnerIsMember(t, m)
}

func TestListForUser(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	g1 := mustCreate(t, m, alice, "Team1")
	g2 := mustCreate(t, m, bob, "Team2")
	mustCreate(t, m, bob, "Team3")
	if _, err := m.AddMember(ctx, g2.ID, "alice"); err != nil {
		t.Fatalf("AddMember failed: %v", err)
	}

	list, err := m.ListForUser(ctx, "alice")
	if err != nil {
		t.Fatalf("ListForUser failed: %v", err)
	}
	if len(list) != 2 || list[0].ID != g1.ID || list[1].ID != g2.ID {
		t.Errorf("ListForUser = %+v", list)
	}

	owned, member := Split(list, "alice")
	if len(owned) != 1 || owned[0].ID != g1.ID {
		t.Errorf("owned = %+v", owned)
	}
	if len(member) != 1 || member[0].ID != g2.ID {
		t.Errorf("member = %+v", member)
	}
}

func TestRoster(t *testing.T) {
	ctx := context.Background()
	m := newManager(t)
	g := mustCreate(t, m, alice, "Team1")

	anna, err := m.AddParticipant(ctx, alice, g.ID, "Anna")
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	bram, err := m.AddParticipant(ctx, alice, g.ID, "Bram")
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}

	t.Run("defaults", func(t *testing.T) {
		if anna.ID == "" || anna.ID == bram.ID {
			t.Errorf("ids not unique: %q %q", anna.ID, bram.ID)
		}
		if anna.Role != models.RoleParticipant {
			t.Errorf("Role = %q", anna.Role)
		}
	})

	t.Run("empty participant name", func(t *testing.T) {
		if _, err := m.AddParticipant(ctx, alice, g.ID, " "); !errors.Is(err, models.ErrValidation) {
			t.Errorf("err = %v", err)
		}
	})

	t.Run("set role", func(t *testing.T) {
		updated, err := m.SetParticipantRole(ctx, alice, g.ID, anna.ID, models.RoleOrganizer)
		if err != nil {
			t.Fatalf("SetParticipantRole failed: %v", err)
		}
		if updated.Participants[updated.ParticipantIndex(anna.ID)].Role != models.RoleOrganizer {
			t.Error("Role not updated")
		}
		if _, err := m.SetParticipantRole(ctx, alice, g.ID, anna.ID, "captain"); !errors.Is(err, models.ErrValidation) {
			t.Errorf("unknown role err = %v", err)
		}
		if _, err := m.SetParticipantRole(ctx, alice, g.ID, "missing", models.RoleLeader); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("missing participant err = %v", err)
		}
	})

	t.Run("custom role lifecycle", func(t *testing.T) {
		role, err := m.AddCustomRole(ctx, alice, g.ID, "Spelleider", "")
		if err != nil {
			t.Fatalf("AddCustomRole failed: %v", err)
		}
		if role.Color != models.DefaultRoleColor {
			t.Errorf("Color = %q", role.Color)
		}

		if _, err := m.AssignCustomRole(ctx, alice, g.ID, anna.ID, "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("assign missing role err = %v", err)
		}
		for _, p := range []models.Participant{anna, bram} {
			if _, err := m.AssignCustomRole(ctx, alice, g.ID, p.ID, role.ID); err != nil {
				t.Fatalf("AssignCustomRole failed: %v", err)
			}
		}

		updated, err := m.RemoveCustomRole(ctx, alice, g.ID, role.ID)
		if err != nil {
			t.Fatalf("RemoveCustomRole failed: %v", err)
		}
		if len(updated.CustomRoles) != 0 {
			t.Errorf("CustomRoles = %v", updated.CustomRoles)
		}
		for _, p := range updated.Participants {
			if p.CustomRoleID == role.ID {
				t.Errorf("participant %s still references removed role", p.ID)
			}
		}
	})

	t.Run("clear custom role", func(t *testing.T) {
		role, _ := m.AddCustomRole(ctx, alice, g.ID, "Host", "#ff0000")
		if _, err := m.AssignCustomRole(ctx, alice, g.ID, bram.ID, role.ID); err != nil {
			t.Fatalf("Assign failed: %v", err)
		}
		updated, err := m.AssignCustomRole(ctx, alice, g.ID, bram.ID, "")
		if err != nil {
			t.Fatalf("Clear failed: %v", err)
		}
		if updated.Participants[updated.ParticipantIndex(bram.ID)].CustomRoleID != "" {
			t.Error("Expected cleared custom role")
		}
	})

	t.Run("remove participant", func(t *testing.T) {
		updated, err := m.RemoveParticipant(ctx, alice, g.ID, anna.ID)
		if err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		if updated.ParticipantIndex(anna.ID) >= 0 || len(updated.Participants) != 1 {
			t.Errorf("Participants = %+v", updated.Participants)
		}
		if _, err := m.RemoveParticipant(ctx, alice, g.ID, anna.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("second remove err = %v", err)
		}
	})

	checkOwnerIsMember(t, m)
}
