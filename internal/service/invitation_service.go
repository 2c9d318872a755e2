package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/invites"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/pkg/api"
)

// InvitationService implements the Connect InvitationService.
type InvitationService struct {
	workflow *invites.Workflow
	logger   *slog.Logger
}

// NewInvitationService creates an InvitationService on the invitation workflow.
func NewInvitationService(workflow *invites.Workflow, logger *slog.Logger) *InvitationService {
	if logger == nil {
		logger = slog.Default()
	}
	return &InvitationService{workflow: workflow, logger: logger}
}

// Invite creates a pending invitation from the caller.
func (s *InvitationService) Invite(ctx context.Context, req *connect.Request[api.InviteRequest]) (*connect.Response[api.InvitationResponse], error) {
	return s.invitationCall(ctx, "Invite", func(sess session.Session) (models.Invitation, error) {
		return s.workflow.Invite(ctx, sess, req.Msg.GroupID, req.Msg.Invitee)
	})
}

// Accept accepts an invitation addressed to the caller and joins the group.
func (s *InvitationService) Accept(ctx context.Context, req *connect.Request[api.ResolveInvitationRequest]) (*connect.Response[api.InvitationResponse], error) {
	return s.invitationCall(ctx, "Accept", func(sess session.Session) (models.Invitation, error) {
		return s.workflow.Accept(ctx, sess, req.Msg.InvitationID)
	})
}

// Decline declines an invitation addressed to the caller.
func (s *InvitationService) Decline(ctx context.Context, req *connect.Request[api.ResolveInvitationRequest]) (*connect.Response[api.InvitationResponse], error) {
	return s.invitationCall(ctx, "Decline", func(sess session.Session) (models.Invitation, error) {
		return s.workflow.Decline(ctx, sess, req.Msg.InvitationID)
	})
}

// ListPending lists the caller's pending invitations, most recent first.
func (s *InvitationService) ListPending(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return s.listCall(ctx, s.workflow.PendingFor)
}

// ListAccepted lists the caller's accepted invitations, most recent first.
func (s *InvitationService) ListAccepted(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return s.listCall(ctx, s.workflow.AcceptedFor)
}

func (s *InvitationService) invitationCall(ctx context.Context, op string, fn func(session.Session) (models.Invitation, error)) (*connect.Response[api.InvitationResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := fn(sess)
	if err != nil {
		s.logger.Warn(op+" failed", "user_id", sess.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info(op+" successful", "invitation_id", inv.ID, "group_id", inv.GroupID, "status", inv.Status)
	return connect.NewResponse(&api.InvitationResponse{Invitation: inv}), nil
}

func (s *InvitationService) listCall(ctx context.Context, list func(context.Context, string) ([]models.Invitation, error)) (*connect.Response[api.ListInvitationsResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	invs, err := list(ctx, sess.UserID)
	if err != nil {
		s.logger.Error("Listing invitations failed", "user_id", sess.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListInvitationsResponse{Invitations: invs}), nil
}
