package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// ChecklistItem is a task on a group's checklist.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	GroupID   string `json:"groupId"`

	// ExecutedBy is the set of member ids who performed the task. No duplicates.
	ExecutedBy []string `json:"executedBy"`
}

// Note is a timestamped message with optional inline attachments.
type Note struct {
	ID   string `json:"id"`
	Text string `json:"text"`

	// Timestamp is the Unix time in milliseconds when the note was created.
	Timestamp   int64            `json:"timestamp"`
	GroupID     string           `json:"groupId"`
	Attachments []NoteAttachment `json:"attachments"`
}

// NoteAttachment is a file embedded in a note as a base64 data URL.
type NoteAttachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// Size is the decoded payload size in bytes.
	Size int64 `json:"size"`

	// Type is the MIME type reported by the uploader.
	Type    string `json:"type"`
	DataURL string `json:"dataUrl"`
}

// AttendanceDate records who was present on one calendar date for one group.
type AttendanceDate struct {
	ID string `json:"id"`

	// Date is the calendar date in YYYY-MM-DD form.
	Date    string `json:"date"`
	GroupID string `json:"groupId"`

	// Participants maps participant id to presence. A missing key means not yet marked,
	// which is distinct from false.
	Participants map[string]bool `json:"participants"`
}

// PartitionKey returns the owning group id.
func (c ChecklistItem) PartitionKey() string { return c.GroupID }

// RecordID returns the item id.
func (c ChecklistItem) RecordID() string { return c.ID }

// PartitionKey returns the owning group id.
func (n Note) PartitionKey() string { return n.GroupID }

// RecordID returns the note id.
func (n Note) RecordID() string { return n.ID }

// PartitionKey returns the owning group id.
func (a AttendanceDate) PartitionKey() string { return a.GroupID }

// RecordID returns the date record id.
func (a AttendanceDate) RecordID() string { return a.ID }

// NewChecklistItem builds an open task for the group.
func NewChecklistItem(groupID, text string) ChecklistItem {
	return ChecklistItem{
		ID:         uuid.New().String(),
		Text:       text,
		GroupID:    groupID,
		ExecutedBy: []string{},
	}
}

// ToggleExecutor adds memberID to ExecutedBy, or removes it if already present.
func (c *ChecklistItem) ToggleExecutor(memberID string) {
	if i := slices.Index(c.ExecutedBy, memberID); i >= 0 {
		c.ExecutedBy = slices.Delete(c.ExecutedBy, i, i+1)
		return
	}
	c.ExecutedBy = append(c.ExecutedBy, memberID)
}

// NewNote builds a note for the group. A nil attachment list becomes empty.
func NewNote(groupID, text string, attachments []NoteAttachment, now time.Time) Note {
	if attachments == nil {
		attachments = []NoteAttachment{}
	}
	return Note{
		ID:          uuid.New().String(),
		Text:        text,
		Timestamp:   now.UnixMilli(),
		GroupID:     groupID,
		Attachments: attachments,
	}
}

// NewAttendanceDate builds an unmarked attendance record.
func NewAttendanceDate(groupID, date string) AttendanceDate {
	return AttendanceDate{
		ID:           uuid.New().String(),
		Date:         date,
		GroupID:      groupID,
		Participants: map[string]bool{},
	}
}

// Toggle flips the presence of participantID, initializing it to true when unmarked.
func (a *AttendanceDate) Toggle(participantID string) {
	if a.Participants == nil {
		a.Participants = map[string]bool{}
	}
	present, marked := a.Participants[participantID]
	a.Participants[participantID] = !marked || !present
}

// PresentCount counts participants marked present.
func (a AttendanceDate) PresentCount() int {
	n := 0
	for _, present := range a.Participants {
		if present {
			n++
		}
	}
	return n
}
