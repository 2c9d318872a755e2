package records

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/sanitize"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// DefaultMaxAttachmentBytes caps a single attachment at 5 MiB.
const DefaultMaxAttachmentBytes int64 = 5 << 20

// Draft collects note text and attachments before the note is committed.
type Draft struct {
	Text        string
	Attachments []models.NoteAttachment

	// MaxBytes caps each attachment. Zero means DefaultMaxAttachmentBytes.
	MaxBytes int64
}

// AddFile encodes data as a base64 data URL and queues it on the draft.
// Files over the cap are skipped with an ErrValidation; the draft is unchanged.
func (d *Draft) AddFile(name, mimeType string, data []byte) (models.NoteAttachment, error) {
	att, err := EncodeAttachment(name, mimeType, data, d.MaxBytes)
	if err != nil {
		return models.NoteAttachment{}, err
	}
	d.Attachments = append(d.Attachments, att)
	return att, nil
}

// EncodeAttachment builds an inline attachment, rejecting payloads over maxBytes.
// An empty mimeType is sniffed from the content.
func EncodeAttachment(name, mimeType string, data []byte, maxBytes int64) (models.NoteAttachment, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxAttachmentBytes
	}
	size := int64(len(data))
	if size > maxBytes {
		return models.NoteAttachment{}, fmt.Errorf("%w: %s is %s, the limit is %s",
			models.ErrValidation, name, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(maxBytes)))
	}
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	return models.NoteAttachment{
		ID:      uuid.New().String(),
		Name:    name,
		Size:    size,
		Type:    mimeType,
		DataURL: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
	}, nil
}

// Notes manages group notes, newest first.
type Notes struct {
	notes collection[models.Note]

	// Now is the clock used for note timestamps.
	Now func() time.Time
}

// NewNotes creates Notes. A nil logger uses slog.Default().
func NewNotes(kv storage.KV, gm *groups.Manager, logger *slog.Logger) *Notes {
	return &Notes{
		notes: newCollection[models.Note](kv, storage.KeyNotes, gm, logger),
		Now:   time.Now,
	}
}

// List returns the group's notes, newest first.
func (n *Notes) List(ctx context.Context, sess session.Session, groupID string) ([]models.Note, error) {
	notes, _, err := n.notes.list(ctx, sess, groupID)
	return notes, err
}

// Create commits draft as a new note at the top of the group's notes.
// Either the trimmed text or the attachments must be non-empty.
func (n *Notes) Create(ctx context.Context, sess session.Session, groupID string, draft Draft) (models.Note, error) {
	text := sanitize.Text(draft.Text)
	if text == "" && len(draft.Attachments) == 0 {
		return models.Note{}, fmt.Errorf("%w: a note needs text or an attachment", models.ErrValidation)
	}

	current, _, err := n.notes.list(ctx, sess, groupID)
	if err != nil {
		return models.Note{}, err
	}

	note := models.NewNote(groupID, text, draft.Attachments, n.Now())
	if err := n.notes.publish(ctx, groupID, append([]models.Note{note}, current...)); err != nil {
		return models.Note{}, fmt.Errorf("failed to create note: %w", err)
	}

	n.notes.logger.Info("note created",
		"group_id", groupID,
		"note_id", note.ID,
		"attachments", len(note.Attachments),
		"user_id", sess.UserID,
	)
	return note, nil
}

// Delete removes a note.
func (n *Notes) Delete(ctx context.Context, sess session.Session, noteID string) error {
	g, err := n.notes.owner(ctx, sess, noteID)
	if err != nil {
		return err
	}
	if _, err := n.notes.remove(ctx, g.ID, noteID); err != nil {
		return err
	}
	n.notes.logger.Info("note deleted", "group_id", g.ID, "note_id", noteID, "user_id", sess.UserID)
	return nil
}
