// Package invites implements the invitation workflow between users and groups.
//
// An invitation moves from pending to exactly one of accepted or declined.
// Acceptance writes the invitation first and the group membership second; the two
// writes touch different collections and are not atomic. If the membership write
// fails the invitation stays accepted and the error is returned to the caller.
package invites

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sort"
	"time"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/internal/storage"
)

// Workflow creates, lists and resolves invitations.
type Workflow struct {
	kv     storage.KV
	groups *groups.Manager
	logger *slog.Logger

	// Now is the clock used for invitation timestamps.
	Now func() time.Time
}

// NewWorkflow creates a Workflow. A nil logger uses slog.Default().
func NewWorkflow(kv storage.KV, gm *groups.Manager, logger *slog.Logger) *Workflow {
	if logger == nil {
		logger = slog.Default()
	}
	return &Workflow{kv: kv, groups: gm, logger: logger, Now: time.Now}
}

// Invite sends a pending invitation for groupID from the session user to invitee.
// The invitee id is trimmed and lower-cased. Self invitations and invitations to
// existing members are rejected.
func (w *Workflow) Invite(ctx context.Context, sess session.Session, groupID, invitee string) (models.Invitation, error) {
	invitee = models.NormalizeUserID(invitee)
	if invitee == "" {
		return models.Invitation{}, fmt.Errorf("%w: invitee is required", models.ErrValidation)
	}
	if invitee == sess.UserID {
		return models.Invitation{}, fmt.Errorf("%w: cannot invite yourself", models.ErrValidation)
	}

	g, err := w.groups.Get(ctx, sess, groupID)
	if err != nil {
		return models.Invitation{}, err
	}
	if g.HasMember(invitee) {
		return models.Invitation{}, fmt.Errorf("%w: %s is already a member of %s", models.ErrValidation, invitee, g.Name)
	}

	inv := models.NewInvitation(g, sess.UserID, invitee, w.Now())
	err = storage.Update(ctx, w.kv, storage.KeyInvitations, []models.Invitation{}, func(all []models.Invitation) ([]models.Invitation, error) {
		return append(all, inv), nil
	})
	if err != nil {
		return models.Invitation{}, fmt.Errorf("failed to store invitation: %w", err)
	}

	w.logger.Info("invitation sent",
		"invitation_id", inv.ID,
		"group_id", g.ID,
		"user_id", sess.UserID,
		"invitee", invitee,
	)
	return inv, nil
}

// Accept resolves the session user's invitation as accepted and adds the user to the
// group. A missing group is tolerated: the invitation is accepted and nothing else changes.
func (w *Workflow) Accept(ctx context.Context, sess session.Session, invitationID string) (models.Invitation, error) {
	inv, err := w.resolve(ctx, sess, invitationID, models.InvitationAccepted)
	if err != nil {
		return models.Invitation{}, err
	}

	added, err := w.groups.AddMember(ctx, inv.GroupID, sess.UserID)
	switch {
	case errors.Is(err, models.ErrNotFound):
		w.logger.Warn("accepted invitation for missing group",
			"invitation_id", inv.ID,
			"group_id", inv.GroupID,
			"user_id", sess.UserID,
		)
		return inv, nil
	case err != nil:
		w.logger.Warn("invitation accepted but membership not written",
			"invitation_id", inv.ID,
			"group_id", inv.GroupID,
			"user_id", sess.UserID,
			"error", err,
		)
		return inv, fmt.Errorf("invitation accepted but joining group failed: %w", err)
	}

	w.logger.Info("invitation accepted",
		"invitation_id", inv.ID,
		"group_id", inv.GroupID,
		"user_id", sess.UserID,
		"joined", added,
	)
	return inv, nil
}

// Decline resolves the session user's invitation as declined.
func (w *Workflow) Decline(ctx context.Context, sess session.Session, invitationID string) (models.Invitation, error) {
	inv, err := w.resolve(ctx, sess, invitationID, models.InvitationDeclined)
	if err != nil {
		return models.Invitation{}, err
	}
	w.logger.Info("invitation declined",
		"invitation_id", inv.ID,
		"group_id", inv.GroupID,
		"user_id", sess.UserID,
	)
	return inv, nil
}

// resolve moves an actionable invitation to status in one write.
func (w *Workflow) resolve(ctx context.Context, sess session.Session, invitationID string, status models.InvitationStatus) (models.Invitation, error) {
	if err := sess.Require(); err != nil {
		return models.Invitation{}, err
	}

	var resolved models.Invitation
	err := storage.Update(ctx, w.kv, storage.KeyInvitations, []models.Invitation{}, func(all []models.Invitation) ([]models.Invitation, error) {
		i := slices.IndexFunc(all, func(inv models.Invitation) bool { return inv.ID == invitationID })
		if i < 0 {
			return nil, fmt.Errorf("%w: invitation %s", models.ErrNotFound, invitationID)
		}
		if err := actionable(all, i, sess.UserID); err != nil {
			return nil, err
		}
		all[i].Status = status
		resolved = all[i]
		return all, nil
	})
	if err != nil {
		return models.Invitation{}, err
	}
	return resolved, nil
}

// actionable reports whether all[i] may be resolved by userID: it must be addressed to
// userID, still pending, and the latest pending invitation for its group and invitee.
func actionable(all []models.Invitation, i int, userID string) error {
	inv := all[i]
	if inv.InvitedUser != userID {
		return fmt.Errorf("%w: invitation %s is addressed to someone else", models.ErrNotActionable, inv.ID)
	}
	if !inv.IsPending() {
		return fmt.Errorf("%w: invitation %s is already %s", models.ErrNotActionable, inv.ID, inv.Status)
	}
	for j, other := range all {
		if j == i || !other.IsPending() || other.GroupID != inv.GroupID || other.InvitedUser != inv.InvitedUser {
			continue
		}
		// Later in the collection wins ties on timestamp.
		if other.Timestamp > inv.Timestamp || (other.Timestamp == inv.Timestamp && j > i) {
			return fmt.Errorf("%w: invitation %s is superseded by %s", models.ErrNotActionable, inv.ID, other.ID)
		}
	}
	return nil
}

// PendingFor returns the pending invitations addressed to userID, most recent first.
func (w *Workflow) PendingFor(ctx context.Context, userID string) ([]models.Invitation, error) {
	return w.list(ctx, userID, models.InvitationPending)
}

// AcceptedFor returns the accepted invitations of userID, most recent first.
func (w *Workflow) AcceptedFor(ctx context.Context, userID string) ([]models.Invitation, error) {
	return w.list(ctx, userID, models.InvitationAccepted)
}

func (w *Workflow) list(ctx context.Context, userID string, status models.InvitationStatus) ([]models.Invitation, error) {
	all, err := storage.Read(ctx, w.kv, storage.KeyInvitations, []models.Invitation{})
	if err != nil {
		return nil, err
	}
	userID = models.NormalizeUserID(userID)
	out := make([]models.Invitation, 0)
	for _, inv := range all {
		if inv.InvitedUser == userID && inv.Status == status {
			out = append(out, inv)
		}
	}
	// Reverse first so equal timestamps keep newest-inserted first under the stable sort.
	slices.Reverse(out)
	sort.SliceStable(out, func(a, b int) bool { return out[a].Timestamp > out[b].Timestamp })
	return out, nil
}
