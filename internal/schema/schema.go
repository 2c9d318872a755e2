// Package schema versions the persisted documents and upgrades legacy shapes.
//
// Version 1 is the first app generation: groups carried participants as plain
// names and had no owner or member list (the logged-in user, if any, takes them over), checklist items and notes had no group
// id, and attendance was one global map from participant name to presence.
// Version 2 is the current shape described in package models.
package schema

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

const (
	// VersionLegacy is assumed for stores that never recorded a version.
	VersionLegacy = 1

	// VersionCurrent is the version written by this build.
	VersionCurrent = 2
)

// LegacyOwner becomes the owner of groups created before ownership existed when
// nobody was logged in at migration time.
const LegacyOwner = models.LegacyOwner

// Result summarizes a migration run.
type Result struct {
	From            int
	To              int
	Groups          int
	AttendanceDates int
}

// Migrate upgrades kv to VersionCurrent. It is a no-op on current stores.
func Migrate(ctx context.Context, kv storage.KV, logger *slog.Logger, now time.Time) (Result, error) {
	if logger == nil {
		logger = slog.Default()
	}

	version, err := storage.Read(ctx, kv, storage.KeySchemaVersion, 0)
	if err != nil {
		return Result{}, err
	}
	if version == 0 {
		version = VersionLegacy
	}
	res := Result{From: version, To: version}
	if version >= VersionCurrent {
		return res, nil
	}

	logger.Info("migrating store", "from", version, "to", VersionCurrent)

	current, err := session.NewStore(kv).Current(ctx)
	if err != nil {
		return res, err
	}
	owner := LegacyOwner
	if current.Authenticated() {
		owner = current.UserID
	}

	groups, err := migrateGroups(ctx, kv, owner)
	if err != nil {
		return res, err
	}
	res.Groups = len(groups)

	soleGroup := ""
	if len(groups) == 1 {
		soleGroup = groups[0].ID
	}

	if err := migrateChecklist(ctx, kv, soleGroup); err != nil {
		return res, err
	}
	if err := migrateNotes(ctx, kv, soleGroup); err != nil {
		return res, err
	}

	created, err := migrateAttendance(ctx, kv, groups, now)
	if err != nil {
		return res, err
	}
	res.AttendanceDates = created

	if err := storage.Write(ctx, kv, storage.KeySchemaVersion, VersionCurrent); err != nil {
		return res, err
	}
	res.To = VersionCurrent

	logger.Info("store migrated",
		"groups", res.Groups,
		"owner", owner,
		"attendance_dates", res.AttendanceDates,
	)
	return res, nil
}

// legacyGroup decodes both generations of the group document.
type legacyGroup struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Participants json.RawMessage     `json:"participants"`
	Owner        string              `json:"owner"`
	Members      []string            `json:"members"`
	CustomRoles  []models.CustomRole `json:"customRoles"`
}

func (lg legacyGroup) upgrade(owner string) (models.Group, error) {
	g := models.Group{
		ID:          lg.ID,
		Name:        lg.Name,
		Owner:       lg.Owner,
		Members:     lg.Members,
		CustomRoles: lg.CustomRoles,
	}
	if g.Owner == "" {
		g.Owner = owner
	}

	if len(lg.Participants) > 0 && string(lg.Participants) != "null" {
		var names []string
		if err := json.Unmarshal(lg.Participants, &names); err == nil {
			for _, name := range names {
				g.Participants = append(g.Participants, models.NewParticipant(name))
			}
		} else if err := json.Unmarshal(lg.Participants, &g.Participants); err != nil {
			return g, fmt.Errorf("group %s: unrecognized participants: %w", lg.ID, err)
		}
	}

	g.Normalize()
	return g, nil
}

func migrateGroups(ctx context.Context, kv storage.KV, owner string) ([]models.Group, error) {
	legacy, err := storage.Read(ctx, kv, storage.KeyGroups, []legacyGroup{})
	if err != nil {
		return nil, err
	}

	groups := make([]models.Group, 0, len(legacy))
	for _, lg := range legacy {
		g, err := lg.upgrade(owner)
		if err != nil {
			return nil, fmt.Errorf("failed to migrate groups: %w", err)
		}
		groups = append(groups, g)
	}

	if err := storage.Write(ctx, kv, storage.KeyGroups, groups); err != nil {
		return nil, err
	}
	return groups, nil
}

func migrateChecklist(ctx context.Context, kv storage.KV, soleGroup string) error {
	err := storage.Update(ctx, kv, storage.KeyChecklistItems, []models.ChecklistItem{}, func(items []models.ChecklistItem) ([]models.ChecklistItem, error) {
		for i := range items {
			if items[i].ExecutedBy == nil {
				items[i].ExecutedBy = []string{}
			}
			if items[i].GroupID == "" {
				items[i].GroupID = soleGroup
			}
		}
		return items, nil
	})
	if err != nil {
		return fmt.Errorf("failed to migrate checklist items: %w", err)
	}
	return nil
}

func migrateNotes(ctx context.Context, kv storage.KV, soleGroup string) error {
	err := storage.Update(ctx, kv, storage.KeyNotes, []models.Note{}, func(notes []models.Note) ([]models.Note, error) {
		for i := range notes {
			if notes[i].Attachments == nil {
				notes[i].Attachments = []models.NoteAttachment{}
			}
			if notes[i].GroupID == "" {
				notes[i].GroupID = soleGroup
			}
		}
		return notes, nil
	})
	if err != nil {
		return fmt.Errorf("failed to migrate notes: %w", err)
	}
	return nil
}

// migrateAttendance converts the global name-keyed map into one AttendanceDate per
// group that has a participant with a recorded name, dated on the migration day.
// The legacy key is removed afterwards.
func migrateAttendance(ctx context.Context, kv storage.KV, groups []models.Group, now time.Time) (int, error) {
	legacy, err := storage.Read(ctx, kv, storage.KeyLegacyAttendance, map[string]bool{})
	if err != nil {
		return 0, err
	}

	var converted []models.AttendanceDate
	if len(legacy) > 0 {
		date := now.Format(time.DateOnly)
		for _, g := range groups {
			record := models.NewAttendanceDate(g.ID, date)
			for _, p := range g.Participants {
				if present, ok := legacy[p.Name]; ok {
					record.Participants[p.ID] = present
				}
			}
			if len(record.Participants) > 0 {
				converted = append(converted, record)
			}
		}
	}

	err = storage.Update(ctx, kv, storage.KeyAttendanceDates, []models.AttendanceDate{}, func(dates []models.AttendanceDate) ([]models.AttendanceDate, error) {
		for i := range dates {
			if dates[i].Participants == nil {
				dates[i].Participants = map[string]bool{}
			}
		}
		return append(dates, converted...), nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to migrate attendance: %w", err)
	}

	if err := kv.Delete(ctx, storage.KeyLegacyAttendance); err != nil {
		return len(converted), fmt.Errorf("failed to drop legacy attendance: %w", err)
	}
	return len(converted), nil
}
