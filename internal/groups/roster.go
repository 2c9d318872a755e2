package groups

import (
	"context"
	"fmt"
	"slices"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/sanitize"
	"github.com/mmynk/gameochtend/internal/session"
)

// AddParticipant appends a roster entry with a fresh id and the default role.
func (m *Manager) AddParticipant(ctx context.Context, sess session.Session, groupID, name string) (models.Participant, error) {
	name = sanitize.Text(name)
	if name == "" {
		return models.Participant{}, fmt.Errorf("%w: participant name is required", models.ErrValidation)
	}

	p := models.NewParticipant(name)
	_, err := m.mutate(ctx, sess, groupID, "participant added", func(g *models.Group) error {
		g.Participants = append(g.Participants, p)
		return nil
	})
	if err != nil {
		return models.Participant{}, err
	}
	return p, nil
}

// RemoveParticipant drops a roster entry. Attendance entries for it are kept.
func (m *Manager) RemoveParticipant(ctx context.Context, sess session.Session, groupID, participantID string) (models.Group, error) {
	return m.mutate(ctx, sess, groupID, "participant removed", func(g *models.Group) error {
		i := g.ParticipantIndex(participantID)
		if i < 0 {
			return fmt.Errorf("%w: participant %s", models.ErrNotFound, participantID)
		}
		g.Participants = slices.Delete(g.Participants, i, i+1)
		return nil
	})
}

// SetParticipantRole overwrites the built-in role of a participant.
func (m *Manager) SetParticipantRole(ctx context.Context, sess session.Session, groupID, participantID string, role models.ParticipantRole) (models.Group, error) {
	switch role {
	case models.RoleParticipant, models.RoleLeader, models.RoleOrganizer:
	default:
		return models.Group{}, fmt.Errorf("%w: unknown role %q", models.ErrValidation, role)
	}
	return m.mutate(ctx, sess, groupID, "participant role set", func(g *models.Group) error {
		i := g.ParticipantIndex(participantID)
		if i < 0 {
			return fmt.Errorf("%w: participant %s", models.ErrNotFound, participantID)
		}
		g.Participants[i].Role = role
		return nil
	})
}

// AssignCustomRole points a participant at one of the group's custom roles.
// An empty roleID clears the assignment.
func (m *Manager) AssignCustomRole(ctx context.Context, sess session.Session, groupID, participantID, roleID string) (models.Group, error) {
	return m.mutate(ctx, sess, groupID, "custom role assigned", func(g *models.Group) error {
		i := g.ParticipantIndex(participantID)
		if i < 0 {
			return fmt.Errorf("%w: participant %s", models.ErrNotFound, participantID)
		}
		if roleID != "" && g.CustomRoleIndex(roleID) < 0 {
			return fmt.Errorf("%w: custom role %s", models.ErrNotFound, roleID)
		}
		g.Participants[i].CustomRoleID = roleID
		return nil
	})
}

// AddCustomRole creates a group-scoped role. An empty color uses models.DefaultRoleColor.
func (m *Manager) AddCustomRole(ctx context.Context, sess session.Session, groupID, name, color string) (models.CustomRole, error) {
	name = sanitize.Text(name)
	if name == "" {
		return models.CustomRole{}, fmt.Errorf("%w: role name is required", models.ErrValidation)
	}

	role := models.NewCustomRole(name, sanitize.Text(color))
	_, err := m.mutate(ctx, sess, groupID, "custom role added", func(g *models.Group) error {
		g.CustomRoles = append(g.CustomRoles, role)
		return nil
	})
	if err != nil {
		return models.CustomRole{}, err
	}
	return role, nil
}

// RemoveCustomRole deletes a role and clears it from every participant referencing it.
func (m *Manager) RemoveCustomRole(ctx context.Context, sess session.Session, groupID, roleID string) (models.Group, error) {
	return m.mutate(ctx, sess, groupID, "custom role removed", func(g *models.Group) error {
		i := g.CustomRoleIndex(roleID)
		if i < 0 {
			return fmt.Errorf("%w: custom role %s", models.ErrNotFound, roleID)
		}
		g.CustomRoles = slices.Delete(g.CustomRoles, i, i+1)
		for j := range g.Participants {
			if g.Participants[j].CustomRoleID == roleID {
				g.Participants[j].CustomRoleID = ""
			}
		}
		return nil
	})
}
