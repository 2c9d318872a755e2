package records

import (
	"bytes"
	"context"
	"errors"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
	"github.com/mmynk/gameochtend/internal/storage/memory"
)

var (
	alice = session.New("alice")
	bob   = session.New("bob")
)

type fixture struct {
	kv     *memory.Store
	groups *groups.Manager
	team1  models.Group
	team2  models.Group
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	kv := memory.New()
	t.Cleanup(func() { kv.Close() })

	gm := groups.NewManager(kv, nil)
	team1, err := gm.Create(ctx, alice, "Team1")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	team2, err := gm.Create(ctx, alice, "Team2")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return &fixture{kv: kv, groups: gm, team1: team1, team2: team2}
}

func texts(items []models.ChecklistItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestChecklist(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := NewChecklist(f.kv, f.groups, nil)

	snacks, err := c.Add(ctx, alice, f.team1.ID, "bring snacks")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if _, err := c.Add(ctx, alice, f.team2.ID, "bring chairs"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	t.Run("items are scoped to their group", func(t *testing.T) {
		items, err := c.List(ctx, alice, f.team1.ID)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if !slices.Equal(texts(items), []string{"bring snacks"}) {
			t.Errorf("Team1 items = %v", texts(items))
		}
	})

	t.Run("validation and access", func(t *testing.T) {
		if _, err := c.Add(ctx, alice, f.team1.ID, "  "); !errors.Is(err, models.ErrValidation) {
			t.Errorf("empty text err = %v", err)
		}
		if _, err := c.List(ctx, bob, f.team1.ID); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("non member list err = %v", err)
		}
		if _, err := c.Toggle(ctx, bob, snacks.ID); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("non member toggle err = %v", err)
		}
		if _, err := c.Toggle(ctx, alice, "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("missing toggle err = %v", err)
		}
	})

	t.Run("toggle completed", func(t *testing.T) {
		item, err := c.Toggle(ctx, alice, snacks.ID)
		if err != nil {
			t.Fatalf("Toggle failed: %v", err)
		}
		if !item.Completed {
			t.Error("Expected completed")
		}
	})

	t.Run("executors are a set of members", func(t *testing.T) {
		item, err := c.ToggleExecutor(ctx, alice, snacks.ID, "alice")
		if err != nil {
			t.Fatalf("ToggleExecutor failed: %v", err)
		}
		if !slices.Equal(item.ExecutedBy, []string{"alice"}) {
			t.Errorf("ExecutedBy = %v", item.ExecutedBy)
		}
		item, _ = c.ToggleExecutor(ctx, alice, snacks.ID, "alice")
		if len(item.ExecutedBy) != 0 {
			t.Errorf("ExecutedBy after second toggle = %v", item.ExecutedBy)
		}
		if _, err := c.ToggleExecutor(ctx, alice, snacks.ID, "bob"); !errors.Is(err, models.ErrValidation) {
			t.Errorf("non member executor err = %v", err)
		}
	})

	t.Run("replace publishes a whole group snapshot", func(t *testing.T) {
		base, _ := c.List(ctx, alice, f.team1.ID)

		first := append(slices.Clone(base), models.NewChecklistItem(f.team1.ID, "book room"))
		if _, err := c.Replace(ctx, alice, f.team1.ID, first); err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
		stale := append(slices.Clone(base), models.ChecklistItem{ID: "x", Text: "print scores", ExecutedBy: []string{"alice", "alice"}})
		out, err := c.Replace(ctx, alice, f.team1.ID, stale)
		if err != nil {
			t.Fatalf("Replace failed: %v", err)
		}
		if out[1].GroupID != f.team1.ID || !slices.Equal(out[1].ExecutedBy, []string{"alice"}) {
			t.Errorf("Replace did not normalize item: %+v", out[1])
		}

		items, _ := c.List(ctx, alice, f.team1.ID)
		if !slices.Equal(texts(items), []string{"bring snacks", "print scores"}) {
			t.Errorf("Expected last write to win, got %v", texts(items))
		}
		other, _ := c.List(ctx, alice, f.team2.ID)
		if !slices.Equal(texts(other), []string{"bring chairs"}) {
			t.Errorf("Team2 items changed: %v", texts(other))
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := c.Delete(ctx, alice, snacks.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if err := c.Delete(ctx, alice, snacks.ID); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Second delete err = %v", err)
		}
	})
}

func TestChecklistReplaceKeepsGroupsApart(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := NewChecklist(f.kv, f.groups, nil)

	bobOnly, err := f.groups.Create(ctx, bob, "BobOnly")
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	secret, err := c.Add(ctx, bob, bobOnly.ID, "bob secret")
	if err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	tests := []struct {
		name  string
		items []models.ChecklistItem
	}{
		{"id of another group's item", []models.ChecklistItem{{ID: secret.ID, Text: "mine now"}}},
		{"repeated id", []models.ChecklistItem{{ID: "dup", Text: "one"}, {ID: "dup", Text: "two"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Replace(ctx, alice, f.team1.ID, tt.items); !errors.Is(err, models.ErrValidation) {
				t.Errorf("Replace err = %v, want validation error", err)
			}
		})
	}

	if _, err := c.Toggle(ctx, alice, secret.ID); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Toggle by non member err = %v", err)
	}
	if err := c.Delete(ctx, alice, secret.ID); !errors.Is(err, models.ErrUnauthorized) {
		t.Errorf("Delete by non member err = %v", err)
	}

	items, err := c.List(ctx, bob, bobOnly.ID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(items) != 1 || items[0].ID != secret.ID || items[0].Completed {
		t.Errorf("BobOnly items changed: %+v", items)
	}
	if own, _ := c.List(ctx, alice, f.team1.ID); len(own) != 0 {
		t.Errorf("Team1 items = %v, want none", texts(own))
	}
}

func TestWritesPublishGroupSegmentLast(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := NewChecklist(f.kv, f.groups, nil)

	stored := func() []string {
		all, err := storage.Read(ctx, f.kv, storage.KeyChecklistItems, []models.ChecklistItem{})
		if err != nil {
			t.Fatalf("Read failed: %v", err)
		}
		return texts(all)
	}

	a, _ := c.Add(ctx, alice, f.team1.ID, "a")
	b, _ := c.Add(ctx, alice, f.team2.ID, "b")
	if _, err := c.Add(ctx, alice, f.team1.ID, "c"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if got := stored(); !slices.Equal(got, []string{"b", "a", "c"}) {
		t.Errorf("after Add = %v, want [b a c]", got)
	}

	if _, err := c.Toggle(ctx, alice, b.ID); err != nil {
		t.Fatalf("Toggle failed: %v", err)
	}
	if got := stored(); !slices.Equal(got, []string{"a", "c", "b"}) {
		t.Errorf("after Toggle = %v, want [a c b]", got)
	}

	if err := c.Delete(ctx, alice, a.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if got := stored(); !slices.Equal(got, []string{"b", "c"}) {
		t.Errorf("after Delete = %v, want [b c]", got)
	}
}

func TestGroupDeletionOrphansRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	c := NewChecklist(f.kv, f.groups, nil)

	if _, err := c.Add(ctx, alice, f.team1.ID, "bring snacks"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := f.groups.Delete(ctx, alice, f.team1.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	all, _ := storage.Read(ctx, f.kv, storage.KeyChecklistItems, []models.ChecklistItem{})
	if len(all) != 1 || all[0].GroupID != f.team1.ID {
		t.Errorf("Expected orphaned item to remain, got %+v", all)
	}
	if _, err := c.List(ctx, alice, f.team1.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("List of deleted group err = %v", err)
	}
}

func TestDraft(t *testing.T) {
	t.Run("data url", func(t *testing.T) {
		var d Draft
		att, err := d.AddFile("hello.txt", "text/plain", []byte("hi"))
		if err != nil {
			t.Fatalf("AddFile failed: %v", err)
		}
		if att.DataURL != "data:text/plain;base64,aGk=" || att.Size != 2 {
			t.Errorf("Attachment = %+v", att)
		}
		if len(d.Attachments) != 1 {
			t.Errorf("Expected 1 queued attachment, got %d", len(d.Attachments))
		}
	})

	t.Run("sniffs missing type", func(t *testing.T) {
		att, err := EncodeAttachment("page", "", []byte("<html><body></body></html>"), 0)
		if err != nil {
			t.Fatalf("EncodeAttachment failed: %v", err)
		}
		if !strings.HasPrefix(att.Type, "text/html") {
			t.Errorf("Type = %q", att.Type)
		}
	})

	t.Run("oversize file is skipped", func(t *testing.T) {
		d := Draft{Text: "scores"}
		big := bytes.Repeat([]byte{0}, 6<<20)
		_, err := d.AddFile("scan.pdf", "application/pdf", big)
		if !errors.Is(err, models.ErrValidation) {
			t.Fatalf("AddFile err = %v", err)
		}
		if !strings.Contains(err.Error(), "6.0 MiB") || !strings.Contains(err.Error(), "5.0 MiB") {
			t.Errorf("Error message = %q", err.Error())
		}
		if len(d.Attachments) != 0 {
			t.Error("Oversize file should not be queued")
		}
	})

	t.Run("custom cap", func(t *testing.T) {
		d := Draft{MaxBytes: 4}
		if _, err := d.AddFile("a", "text/plain", []byte("12345")); !errors.Is(err, models.ErrValidation) {
			t.Errorf("AddFile err = %v", err)
		}
	})
}

func TestNotes(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	n := NewNotes(f.kv, f.groups, nil)
	clock := time.Date(2024, 3, 9, 10, 0, 0, 0, time.UTC)
	n.Now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	t.Run("needs text or attachment", func(t *testing.T) {
		if _, err := n.Create(ctx, alice, f.team1.ID, Draft{Text: "   "}); !errors.Is(err, models.ErrValidation) {
			t.Errorf("Create err = %v", err)
		}
		notes, _ := n.List(ctx, alice, f.team1.ID)
		if len(notes) != 0 {
			t.Errorf("Expected no notes, got %d", len(notes))
		}
	})

	first, err := n.Create(ctx, alice, f.team1.ID, Draft{Text: "first"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	var d Draft
	if _, err := d.AddFile("photo.png", "image/png", []byte{0x89, 'P', 'N', 'G'}); err != nil {
		t.Fatalf("AddFile failed: %v", err)
	}
	second, err := n.Create(ctx, alice, f.team1.ID, d)
	if err != nil {
		t.Fatalf("Create with attachment only failed: %v", err)
	}
	if _, err := n.Create(ctx, alice, f.team2.ID, Draft{Text: "other group"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	t.Run("newest first within the group", func(t *testing.T) {
		notes, err := n.List(ctx, alice, f.team1.ID)
		if err != nil {
			t.Fatalf("List failed: %v", err)
		}
		if len(notes) != 2 || notes[0].ID != second.ID || notes[1].ID != first.ID {
			t.Errorf("Notes = %+v", notes)
		}
		if len(notes[0].Attachments) != 1 || notes[1].Attachments == nil {
			t.Errorf("Attachments not stored as expected: %+v", notes)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := n.Delete(ctx, bob, first.ID); !errors.Is(err, models.ErrUnauthorized) {
			t.Errorf("non member delete err = %v", err)
		}
		if err := n.Delete(ctx, alice, first.ID); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		notes, _ := n.List(ctx, alice, f.team1.ID)
		if len(notes) != 1 || notes[0].ID != second.ID {
			t.Errorf("Notes after delete = %+v", notes)
		}
	})
}

func TestAttendance(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	a := NewAttendance(f.kv, f.groups, nil)

	t.Run("group without participants", func(t *testing.T) {
		if _, err := a.AddDate(ctx, alice, f.team1.ID, "2024-03-09"); !errors.Is(err, models.ErrValidation) {
			t.Errorf("AddDate err = %v", err)
		}
	})

	p, err := f.groups.AddParticipant(ctx, alice, f.team1.ID, "Anna")
	if err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}
	if _, err := f.groups.AddParticipant(ctx, alice, f.team1.ID, "Bram"); err != nil {
		t.Fatalf("AddParticipant failed: %v", err)
	}

	tests := []struct {
		name string
		date string
	}{
		{"empty", ""},
		{"blank", "  "},
		{"wrong format", "09-03-2024"},
	}
	for _, tt := range tests {
		t.Run("invalid date "+tt.name, func(t *testing.T) {
			if _, err := a.AddDate(ctx, alice, f.team1.ID, tt.date); !errors.Is(err, models.ErrValidation) {
				t.Errorf("AddDate(%q) err = %v", tt.date, err)
			}
		})
	}

	d1, err := a.AddDate(ctx, alice, f.team1.ID, "2024-03-09")
	if err != nil {
		t.Fatalf("AddDate failed: %v", err)
	}
	if len(d1.Participants) != 0 || d1.Participants == nil {
		t.Errorf("New date participants = %v", d1.Participants)
	}
	if _, err := a.AddDate(ctx, alice, f.team1.ID, "2024-03-09"); !errors.Is(err, models.ErrValidation) {
		t.Errorf("duplicate date err = %v", err)
	}

	t.Run("toggle counts", func(t *testing.T) {
		wantPresent := []int{0, 1, 0, 1}
		for step, want := range wantPresent {
			if step > 0 {
				if _, err := a.Toggle(ctx, alice, d1.ID, p.ID); err != nil {
					t.Fatalf("Toggle failed: %v", err)
				}
			}
			s, err := a.Summary(ctx, alice, d1.ID)
			if err != nil {
				t.Fatalf("Summary failed: %v", err)
			}
			if s.Present != want || s.Total != 2 {
				t.Errorf("step %d: Summary = %+v, want present %d total 2", step, s, want)
			}
		}
	})

	t.Run("unknown participant", func(t *testing.T) {
		if _, err := a.Toggle(ctx, alice, d1.ID, "missing"); !errors.Is(err, models.ErrNotFound) {
			t.Errorf("Toggle err = %v", err)
		}
	})

	t.Run("removing a participant keeps the entry", func(t *testing.T) {
		if _, err := f.groups.RemoveParticipant(ctx, alice, f.team1.ID, p.ID); err != nil {
			t.Fatalf("RemoveParticipant failed: %v", err)
		}
		dates, _ := a.List(ctx, alice, f.team1.ID)
		if _, ok := dates[0].Participants[p.ID]; !ok {
			t.Error("Expected orphaned attendance entry")
		}
		s, _ := a.Summary(ctx, alice, d1.ID)
		if s.Total != 1 {
			t.Errorf("Total = %d, want 1", s.Total)
		}
	})

	t.Run("delete moves selection", func(t *testing.T) {
		d2, err := a.AddDate(ctx, alice, f.team1.ID, "2024-03-16")
		if err != nil {
			t.Fatalf("AddDate failed: %v", err)
		}
		sess := alice
		sess.SelectedGroupID = f.team1.ID
		sess.SelectedDateID = d1.ID

		sess, err = a.DeleteDate(ctx, sess, d1.ID)
		if err != nil {
			t.Fatalf("DeleteDate failed: %v", err)
		}
		if sess.SelectedDateID != d2.ID {
			t.Errorf("SelectedDateID = %q, want %q", sess.SelectedDateID, d2.ID)
		}

		sess, err = a.DeleteDate(ctx, sess, d2.ID)
		if err != nil {
			t.Fatalf("DeleteDate failed: %v", err)
		}
		if sess.SelectedDateID != "" {
			t.Errorf("SelectedDateID = %q, want empty", sess.SelectedDateID)
		}
	})
}
