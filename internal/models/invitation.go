package models

import (
	"time"

	"github.com/google/uuid"
)

// InvitationStatus is the lifecycle state of an invitation.
// Pending moves to exactly one of the terminal states and never back.
type InvitationStatus string

const (
	InvitationPending  InvitationStatus = "pending"
	InvitationAccepted InvitationStatus = "accepted"
	InvitationDeclined InvitationStatus = "declined"
)

// Invitation is an offer of group membership. Resolved invitations stay in the
// collection as history.
type Invitation struct {
	// ID is the unique identifier for the invitation (UUID format).
	ID string `json:"id"`

	// GroupID is the group the invitee is asked to join.
	GroupID string `json:"groupId"`

	// GroupName is a snapshot of the group name taken when the invitation was sent.
	GroupName string `json:"groupName"`

	// InvitedBy is the user id of the inviter.
	InvitedBy string `json:"invitedBy"`

	// InvitedUser is the user id of the invitee.
	InvitedUser string `json:"invitedUser"`

	Status InvitationStatus `json:"status"`

	// Timestamp is the Unix time in milliseconds when the invitation was sent.
	Timestamp int64 `json:"timestamp"`
}

// NewInvitation builds a pending invitation for the given group snapshot.
func NewInvitation(group Group, inviterID, inviteeID string, now time.Time) Invitation {
	return Invitation{
		ID:          uuid.New().String(),
		GroupID:     group.ID,
		GroupName:   group.Name,
		InvitedBy:   inviterID,
		InvitedUser: inviteeID,
		Status:      InvitationPending,
		Timestamp:   now.UnixMilli(),
	}
}

// IsPending reports whether the invitation is still open.
func (i Invitation) IsPending() bool {
	return i.Status == InvitationPending
}
