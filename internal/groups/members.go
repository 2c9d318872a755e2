package groups

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// RemoveMember takes memberID off the member list. The owner cannot be removed.
func (m *Manager) RemoveMember(ctx context.Context, sess session.Session, groupID, memberID string) (models.Group, error) {
	memberID = models.NormalizeUserID(memberID)
	return m.mutate(ctx, sess, groupID, "member removed", func(g *models.Group) error {
		if g.IsOwner(memberID) {
			return fmt.Errorf("%w: the owner cannot be removed from group %s", models.ErrValidation, groupID)
		}
		i := slices.Index(g.Members, memberID)
		if i < 0 {
			return fmt.Errorf("%w: member %s", models.ErrNotFound, memberID)
		}
		g.Members = slices.Delete(g.Members, i, i+1)
		return nil
	})
}

// AddMember appends userID to the member list unless it is already present.
// It performs no membership check on the caller: it is the side effect of an
// accepted invitation, which the invitation workflow authorizes.
func (m *Manager) AddMember(ctx context.Context, groupID, userID string) (added bool, err error) {
	userID = models.NormalizeUserID(userID)
	if userID == "" {
		return false, fmt.Errorf("%w: member id is required", models.ErrValidation)
	}

	err = storage.Update(ctx, m.kv, storage.KeyGroups, []models.Group{}, func(all []models.Group) ([]models.Group, error) {
		i := slices.IndexFunc(all, func(g models.Group) bool { return g.ID == groupID })
		if i < 0 {
			return nil, fmt.Errorf("%w: group %s", models.ErrNotFound, groupID)
		}
		if all[i].HasMember(userID) {
			return all, nil
		}
		all[i].Members = append(all[i].Members, userID)
		added = true
		return all, nil
	})
	if err != nil {
		return false, err
	}

	if added {
		m.logger.Info("member added", "group_id", groupID, "user_id", userID)
	}
	return added, nil
}
