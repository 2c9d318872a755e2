package models

import (
	"slices"

	"github.com/google/uuid"
)

// ParticipantRole is the built-in role of a roster entry.
type ParticipantRole string

const (
	RoleParticipant ParticipantRole = "participant"
	RoleLeader      ParticipantRole = "leader"
	RoleOrganizer   ParticipantRole = "organizer"
)

// DefaultRoleColor is used when a custom role is created without a color.
const DefaultRoleColor = "#6366f1"

// Group represents a team that meets for game mornings.
//
// Invariants: Owner is always in Members, Members is never empty, ID never changes.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string `json:"id"`

	// Name is the display name of the group (e.g., "Team1", "Dinsdag Ochtend").
	Name string `json:"name"`

	// Participants is the event-day roster. Participants need not be login users.
	Participants []Participant `json:"participants"`

	// Owner is the user id of the creator. Only the owner may delete or rename the group.
	Owner string `json:"owner"`

	// Members are the login-capable users with access to the group.
	Members []string `json:"members"`

	// CustomRoles are user-defined labels assignable to participants of this group.
	CustomRoles []CustomRole `json:"customRoles"`
}

// Participant is a roster entry embedded in exactly one group.
type Participant struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Role ParticipantRole `json:"role"`

	// CustomRoleID references a CustomRole of the same group, or is empty.
	CustomRoleID string `json:"customRoleId,omitempty"`
}

// CustomRole is a named, colored label scoped to one group.
type CustomRole struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// NewGroup builds a group owned by creatorID with the creator as its only member.
func NewGroup(name, creatorID string) Group {
	return Group{
		ID:           uuid.New().String(),
		Name:         name,
		Participants: []Participant{},
		Owner:        creatorID,
		Members:      []string{creatorID},
		CustomRoles:  []CustomRole{},
	}
}

// NewParticipant builds a roster entry with the default role.
func NewParticipant(name string) Participant {
	return Participant{
		ID:   uuid.New().String(),
		Name: name,
		Role: RoleParticipant,
	}
}

// NewCustomRole builds a custom role, falling back to DefaultRoleColor.
func NewCustomRole(name, color string) CustomRole {
	if color == "" {
		color = DefaultRoleColor
	}
	return CustomRole{
		ID:    uuid.New().String(),
		Name:  name,
		Color: color,
	}
}

// HasMember reports whether userID is a member of the group.
func (g Group) HasMember(userID string) bool {
	return slices.Contains(g.Members, userID)
}

// IsOwner reports whether userID owns the group.
func (g Group) IsOwner(userID string) bool {
	return g.Owner == userID
}

// ParticipantIndex returns the index of the participant with the given id, or -1.
func (g Group) ParticipantIndex(participantID string) int {
	return slices.IndexFunc(g.Participants, func(p Participant) bool { return p.ID == participantID })
}

// CustomRoleIndex returns the index of the custom role with the given id, or -1.
func (g Group) CustomRoleIndex(roleID string) int {
	return slices.IndexFunc(g.CustomRoles, func(r CustomRole) bool { return r.ID == roleID })
}

// LegacyOwner owns groups migrated from before ownership existed, until a user claims them.
const LegacyOwner = "legacy"

// Claim hands a legacy-owned group to userID. It reports whether the group changed.
func (g *Group) Claim(userID string) bool {
	if g.Owner != LegacyOwner || userID == "" || userID == LegacyOwner {
		return false
	}
	g.Owner = userID
	members := []string{userID}
	for _, m := range g.Members {
		if m != LegacyOwner && m != userID {
			members = append(members, m)
		}
	}
	g.Members = members
	return true
}

// Normalize restores the always-present invariants on a decoded group:
// nil lists become empty and the owner is guaranteed to be a member.
// It reports whether anything changed.
func (g *Group) Normalize() bool {
	changed := false
	if g.Participants == nil {
		g.Participants = []Participant{}
		changed = true
	}
	if g.Members == nil {
		g.Members = []string{}
		changed = true
	}
	if g.CustomRoles == nil {
		g.CustomRoles = []CustomRole{}
		changed = true
	}
	if g.Owner != "" && !g.HasMember(g.Owner) {
		g.Members = append([]string{g.Owner}, g.Members...)
		changed = true
	}
	for i := range g.Participants {
		if g.Participants[i].Role == "" {
			g.Participants[i].Role = RoleParticipant
			changed = true
		}
	}
	return changed
}
