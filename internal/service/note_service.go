package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/records"
	"github.com/mmynk/gameochtend/pkg/api"
)

// NoteService implements the Connect NoteService.
type NoteService struct {
	notes *records.Notes
	// maxAttachmentBytes caps each uploaded file.
	maxAttachmentBytes int64
	logger             *slog.Logger
}

// NewNoteService creates a NoteService. maxAttachmentBytes <= 0 uses the default cap.
func NewNoteService(notes *records.Notes, maxAttachmentBytes int64, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{notes: notes, maxAttachmentBytes: maxAttachmentBytes, logger: logger}
}

// ListNotes returns a group's notes, newest first.
func (s *NoteService) ListNotes(ctx context.Context, req *connect.Request[api.ListNotesRequest]) (*connect.Response[api.ListNotesResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	notes, err := s.notes.List(ctx, sess, req.Msg.GroupID)
	if err != nil {
		s.logger.Warn("ListNotes failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListNotesResponse{Notes: notes}), nil
}

// CreateNote commits a note with its attachments. Oversized files are skipped
// and reported; the rest of the note is still saved.
func (s *NoteService) CreateNote(ctx context.Context, req *connect.Request[api.CreateNoteRequest]) (*connect.Response[api.CreateNoteResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateNote request received",
		"group_id", req.Msg.GroupID,
		"files_count", len(req.Msg.Files),
	)

	draft := records.Draft{Text: req.Msg.Text, MaxBytes: s.maxAttachmentBytes}
	var skipped []string
	for _, f := range req.Msg.Files {
		if _, err := draft.AddFile(f.Name, f.Type, f.Data); err != nil {
			s.logger.Warn("Attachment skipped", "name", f.Name, "error", err)
			skipped = append(skipped, err.Error())
		}
	}

	note, err := s.notes.Create(ctx, sess, req.Msg.GroupID, draft)
	if err != nil {
		s.logger.Warn("CreateNote failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CreateNoteResponse{Note: note, Skipped: skipped}), nil
}

// DeleteNote removes a note.
func (s *NoteService) DeleteNote(ctx context.Context, req *connect.Request[api.DeleteNoteRequest]) (*connect.Response[api.DeleteNoteResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, sess, req.Msg.NoteID); err != nil {
		s.logger.Warn("DeleteNote failed", "note_id", req.Msg.NoteID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteNoteResponse{}), nil
}
