package records

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// Summary is the headcount for one attendance date. Total is the size of the group's
// current roster, independent of how many participants were marked.
type Summary struct {
	Present int `json:"present"`
	Total   int `json:"total"`
}

// Attendance manages attendance dates.
type Attendance struct {
	dates collection[models.AttendanceDate]
}

// NewAttendance creates Attendance. A nil logger uses slog.Default().
func NewAttendance(kv storage.KV, gm *groups.Manager, logger *slog.Logger) *Attendance {
	return &Attendance{dates: newCollection[models.AttendanceDate](kv, storage.KeyAttendanceDates, gm, logger)}
}

// List returns the group's dates in insertion order.
func (a *Attendance) List(ctx context.Context, sess session.Session, groupID string) ([]models.AttendanceDate, error) {
	dates, _, err := a.dates.list(ctx, sess, groupID)
	return dates, err
}

// AddDate starts tracking date (YYYY-MM-DD) for the group. The group needs at least
// one participant and may track each date once.
func (a *Attendance) AddDate(ctx context.Context, sess session.Session, groupID, date string) (models.AttendanceDate, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return models.AttendanceDate{}, fmt.Errorf("%w: date is required", models.ErrValidation)
	}
	if _, err := time.Parse(time.DateOnly, date); err != nil {
		return models.AttendanceDate{}, fmt.Errorf("%w: date %q is not YYYY-MM-DD", models.ErrValidation, date)
	}

	current, g, err := a.dates.list(ctx, sess, groupID)
	if err != nil {
		return models.AttendanceDate{}, err
	}
	if len(g.Participants) == 0 {
		return models.AttendanceDate{}, fmt.Errorf("%w: group %s has no participants", models.ErrValidation, groupID)
	}
	if slices.ContainsFunc(current, func(d models.AttendanceDate) bool { return d.Date == date }) {
		return models.AttendanceDate{}, fmt.Errorf("%w: %s is already tracked", models.ErrValidation, date)
	}

	record := models.NewAttendanceDate(groupID, date)
	if err := a.dates.publish(ctx, groupID, append(current, record)); err != nil {
		return models.AttendanceDate{}, fmt.Errorf("failed to add date: %w", err)
	}

	a.dates.logger.Info("attendance date added", "group_id", groupID, "date", date, "user_id", sess.UserID)
	return record, nil
}

// Toggle flips the presence of participantID on dateID, marking present when unmarked.
// The participant must be on the group's current roster.
func (a *Attendance) Toggle(ctx context.Context, sess session.Session, dateID, participantID string) (models.AttendanceDate, error) {
	g, err := a.dates.owner(ctx, sess, dateID)
	if err != nil {
		return models.AttendanceDate{}, err
	}
	if g.ParticipantIndex(participantID) < 0 {
		return models.AttendanceDate{}, fmt.Errorf("%w: participant %s", models.ErrNotFound, participantID)
	}
	return a.dates.modify(ctx, g.ID, dateID, func(d *models.AttendanceDate) error {
		d.Toggle(participantID)
		return nil
	})
}

// DeleteDate removes a date and returns sess with the date selection moved to the
// first remaining date of the group when the deleted date was selected.
func (a *Attendance) DeleteDate(ctx context.Context, sess session.Session, dateID string) (session.Session, error) {
	g, err := a.dates.owner(ctx, sess, dateID)
	if err != nil {
		return sess, err
	}
	remaining, err := a.dates.remove(ctx, g.ID, dateID)
	if err != nil {
		return sess, err
	}
	a.dates.logger.Info("attendance date deleted", "group_id", g.ID, "date_id", dateID, "user_id", sess.UserID)
	return sess.AfterDateDeleted(dateID, remaining), nil
}

// Summary counts present participants on dateID against the group's roster size.
func (a *Attendance) Summary(ctx context.Context, sess session.Session, dateID string) (Summary, error) {
	g, err := a.dates.owner(ctx, sess, dateID)
	if err != nil {
		return Summary{}, err
	}
	dates, err := a.dates.all(ctx)
	if err != nil {
		return Summary{}, err
	}
	i := slices.IndexFunc(dates, func(d models.AttendanceDate) bool { return d.ID == dateID })
	if i < 0 {
		return Summary{}, fmt.Errorf("%w: date %s", models.ErrNotFound, dateID)
	}
	return Summary{
		Present: dates[i].PresentCount(),
		Total:   len(g.Participants),
	}, nil
}
