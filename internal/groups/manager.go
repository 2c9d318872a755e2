// Package groups owns group entities: membership, custom roles and participant rosters.
//
// Every operation takes the acting session. Reads and writes require the session user
// to be a member of the group; delete and rename additionally require ownership.
// Mutations are single read-modify-write cycles on the groups collection.
package groups

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/sanitize"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// Manager implements the group and membership operations on a storage.KV.
type Manager struct {
	kv     storage.KV
	logger *slog.Logger
}

// NewManager creates a Manager. A nil logger uses slog.Default().
func NewManager(kv storage.KV, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{kv: kv, logger: logger}
}

// All returns the whole groups collection in stored order.
func (m *Manager) All(ctx context.Context) ([]models.Group, error) {
	return storage.Read(ctx, m.kv, storage.KeyGroups, []models.Group{})
}

// Lookup returns a group without a membership check. found is false when the
// group does not exist.
func (m *Manager) Lookup(ctx context.Context, groupID string) (models.Group, bool, error) {
	all, err := m.All(ctx)
	if err != nil {
		return models.Group{}, false, err
	}
	i := slices.IndexFunc(all, func(g models.Group) bool { return g.ID == groupID })
	if i < 0 {
		return models.Group{}, false, nil
	}
	return all[i], true, nil
}

// Get returns a group the session user belongs to.
func (m *Manager) Get(ctx context.Context, sess session.Session, groupID string) (models.Group, error) {
	if err := sess.Require(); err != nil {
		return models.Group{}, err
	}
	g, found, err := m.Lookup(ctx, groupID)
	if err != nil {
		return models.Group{}, err
	}
	if !found {
		return models.Group{}, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
	}
	if err := requireMember(g, sess.UserID); err != nil {
		return models.Group{}, err
	}
	return g, nil
}

// ListForUser returns the groups userID owns or belongs to, in collection order.
// Migrated groups that still have the legacy owner are claimed by userID first.
func (m *Manager) ListForUser(ctx context.Context, userID string) ([]models.Group, error) {
	all, err := m.claimLegacy(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Group, 0, len(all))
	for _, g := range all {
		if g.IsOwner(userID) || g.HasMember(userID) {
			out = append(out, g)
		}
	}
	return out, nil
}

func (m *Manager) claimLegacy(ctx context.Context, userID string) ([]models.Group, error) {
	all, err := m.All(ctx)
	if err != nil || !slices.ContainsFunc(all, func(g models.Group) bool { return g.IsOwner(models.LegacyOwner) }) {
		return all, err
	}

	var claimed []string
	err = storage.Update(ctx, m.kv, storage.KeyGroups, []models.Group{}, func(groups []models.Group) ([]models.Group, error) {
		claimed = claimed[:0]
		for i := range groups {
			if groups[i].Claim(userID) {
				claimed = append(claimed, groups[i].ID)
			}
		}
		all = groups
		return groups, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to claim legacy groups: %w", err)
	}
	if len(claimed) > 0 {
		m.logger.Info("legacy groups claimed", "user_id", userID, "group_ids", claimed)
	}
	return all, nil
}

// Split partitions groups into those owned by userID and those userID only belongs to.
func Split(groups []models.Group, userID string) (owned, member []models.Group) {
	owned, member = []models.Group{}, []models.Group{}
	for _, g := range groups {
		if g.IsOwner(userID) {
			owned = append(owned, g)
		} else if g.HasMember(userID) {
			member = append(member, g)
		}
	}
	return owned, member
}

// Create makes a new group owned by the session user.
func (m *Manager) Create(ctx context.Context, sess session.Session, name string) (models.Group, error) {
	if err := sess.Require(); err != nil {
		return models.Group{}, err
	}
	name = sanitize.Text(name)
	if name == "" {
		return models.Group{}, fmt.Errorf("%w: group name is required", models.ErrValidation)
	}

	g := models.NewGroup(name, sess.UserID)
	err := storage.Update(ctx, m.kv, storage.KeyGroups, []models.Group{}, func(all []models.Group) ([]models.Group, error) {
		return append(all, g), nil
	})
	if err != nil {
		return models.Group{}, fmt.Errorf("failed to create group: %w", err)
	}

	m.logger.Info("group created", "group_id", g.ID, "name", g.Name, "user_id", sess.UserID)
	return g, nil
}

// Delete removes a group. Only the owner may delete. Scoped records of the group
// are left in their collections.
func (m *Manager) Delete(ctx context.Context, sess session.Session, groupID string) error {
	if err := sess.Require(); err != nil {
		return err
	}
	err := storage.Update(ctx, m.kv, storage.KeyGroups, []models.Group{}, func(all []models.Group) ([]models.Group, error) {
		i := slices.IndexFunc(all, func(g models.Group) bool { return g.ID == groupID })
		if i < 0 {
			return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
		}
		if !all[i].IsOwner(sess.UserID) {
			return nil, fmt.Errorf("%w: only the owner can delete group %s", models.ErrUnauthorized, groupID)
		}
		return slices.Delete(all, i, i+1), nil
	})
	if err != nil {
		return err
	}

	m.logger.Info("group deleted", "group_id", groupID, "user_id", sess.UserID)
	return nil
}

// Rename changes the group name. Only the owner may rename. Invitations keep the
// name they were sent with.
func (m *Manager) Rename(ctx context.Context, sess session.Session, groupID, name string) (models.Group, error) {
	name = sanitize.Text(name)
	if name == "" {
		return models.Group{}, fmt.Errorf("%w: group name is required", models.ErrValidation)
	}
	return m.mutate(ctx, sess, groupID, "group renamed", func(g *models.Group) error {
		if !g.IsOwner(sess.UserID) {
			return fmt.Errorf("%w: only the owner can rename group %s", models.ErrUnauthorized, groupID)
		}
		g.Name = name
		return nil
	})
}

// mutate applies fn to one group after the membership check and stores the result.
func (m *Manager) mutate(ctx context.Context, sess session.Session, groupID, event string, fn func(*models.Group) error) (models.Group, error) {
	if err := sess.Require(); err != nil {
		return models.Group{}, err
	}

	var updated models.Group
	err := storage.Update(ctx, m.kv, storage.KeyGroups, []models.Group{}, func(all []models.Group) ([]models.Group, error) {
		i := slices.IndexFunc(all, func(g models.Group) bool { return g.ID == groupID })
		if i < 0 {
			return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
		}
		if err := requireMember(all[i], sess.UserID); err != nil {
			return nil, err
		}
		g := all[i]
		g.Normalize()
		if err := fn(&g); err != nil {
			return nil, err
		}
		all[i] = g
		updated = g
		return all, nil
	})
	if err != nil {
		return models.Group{}, err
	}

	m.logger.Info(event, "group_id", groupID, "user_id", sess.UserID)
	return updated, nil
}

func requireMember(g models.Group, userID string) error {
	if g.IsOwner(userID) || g.HasMember(userID) {
		return nil
	}
	return fmt.Errorf("%w: %s is not a member of group %s", models.ErrUnauthorized, userID, g.ID)
}
