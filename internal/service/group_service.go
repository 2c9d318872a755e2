package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/pkg/api"
)

// GroupService implements the Connect GroupService
type GroupService struct {
	groups *groups.Manager
	logger *slog.Logger
}

// NewGroupService creates a new GroupService on the group manager.
func NewGroupService(gm *groups.Manager, logger *slog.Logger) *GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupService{groups: gm, logger: logger}
}

// CreateGroup creates a group owned by the caller.
func (s *GroupService) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("CreateGroup request received", "name", req.Msg.Name, "user_id", sess.UserID)

	group, err := s.groups.Create(ctx, sess, req.Msg.Name)
	if err != nil {
		s.logger.Warn("CreateGroup failed", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GroupResponse{Group: group}), nil
}

// GetGroup retrieves a group the caller belongs to.
func (s *GroupService) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	group, err := s.groups.Get(ctx, sess, req.Msg.GroupID)
	if err != nil {
		s.logger.Warn("GetGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GroupResponse{Group: group}), nil
}

// ListGroups returns the caller's groups and resolves the group selection.
func (s *GroupService) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	visible, err := s.groups.ListForUser(ctx, sess.UserID)
	if err != nil {
		s.logger.Error("ListGroups failed", "error", err)
		return nil, toConnectError(err)
	}
	sess = sess.SelectGroup(req.Msg.SelectedGroupID, visible)

	s.logger.Info("ListGroups successful", "count", len(visible), "user_id", sess.UserID)
	return connect.NewResponse(&api.ListGroupsResponse{
		Groups:          visible,
		SelectedGroupID: sess.SelectedGroupID,
	}), nil
}

// RenameGroup renames a group. Only the owner may do this.
func (s *GroupService) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.groupCall(ctx, "RenameGroup", req.Msg.GroupID, func(sess session.Session) (models.Group, error) {
		return s.groups.Rename(ctx, sess, req.Msg.GroupID, req.Msg.Name)
	})
}

// DeleteGroup deletes a group. Only the owner may do this; records stay in storage.
func (s *GroupService) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("DeleteGroup request received", "group_id", req.Msg.GroupID, "user_id", sess.UserID)

	if err := s.groups.Delete(ctx, sess, req.Msg.GroupID); err != nil {
		s.logger.Warn("DeleteGroup failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteGroupResponse{}), nil
}

// AddParticipant adds a roster entry to a group.
func (s *GroupService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.groups.AddParticipant(ctx, sess, req.Msg.GroupID, req.Msg.Name)
	if err != nil {
		s.logger.Warn("AddParticipant failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddParticipantResponse{Participant: p}), nil
}

// RemoveParticipant removes a roster entry.
func (s *GroupService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.groupCall(ctx, "RemoveParticipant", req.Msg.GroupID, func(sess session.Session) (models.Group, error) {
		return s.groups.RemoveParticipant(ctx, sess, req.Msg.GroupID, req.Msg.ParticipantID)
	})
}

// SetParticipantRole sets the built-in role of a roster entry.
func (s *GroupService) SetParticipantRole(ctx context.Context, req *connect.Request[api.SetParticipantRoleRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.groupCall(ctx, "SetParticipantRole", req.Msg.GroupID, func(sess session.Session) (models.Group, error) {
		return s.groups.SetParticipantRole(ctx, sess, req.Msg.GroupID, req.Msg.ParticipantID, req.Msg.Role)
	})
}

// AssignCustomRole assigns or clears the custom role of a roster entry.
func (s *GroupService) AssignCustomRole(ctx context.Context, req *connect.Request[api.AssignCustomRoleRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.groupCall(ctx, "AssignCustomRole", req.Msg.GroupID, func(sess session.Session) (models.Group, error) {
		return s.groups.AssignCustomRole(ctx, sess, req.Msg.GroupID, req.Msg.ParticipantID, req.Msg.RoleID)
	})
}

// AddCustomRole defines a new custom role on a group.
func (s *GroupService) AddCustomRole(ctx context.Context, req *connect.Request[api.AddCustomRoleRequest]) (*connect.Response[api.AddCustomRoleResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	role, err := s.groups.AddCustomRole(ctx, sess, req.Msg.GroupID, req.Msg.Name, req.Msg.Color)
	if err != nil {
		s.logger.Warn("AddCustomRole failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.AddCustomRoleResponse{Role: role}), nil
}

// RemoveCustomRole deletes a custom role and clears it from participants.
func (s *GroupService) RemoveCustomRole(ctx context.Context, req *connect.Request[api.RemoveCustomRoleRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.groupCall(ctx, "RemoveCustomRole", req.Msg.GroupID, func(sess session.Session) (models.Group, error) {
		return s.groups.RemoveCustomRole(ctx, sess, req.Msg.GroupID, req.Msg.RoleID)
	})
}

// RemoveMember removes a non-owner member from a group.
func (s *GroupService) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return s.groupCall(ctx, "RemoveMember", req.Msg.GroupID, func(sess session.Session) (models.Group, error) {
		return s.groups.RemoveMember(ctx, sess, req.Msg.GroupID, req.Msg.MemberID)
	})
}

// groupCall runs a group mutation that answers with the updated group.
func (s *GroupService) groupCall(ctx context.Context, op, groupID string, fn func(session.Session) (models.Group, error)) (*connect.Response[api.GroupResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	group, err := fn(sess)
	if err != nil {
		s.logger.Warn(op+" failed", "group_id", groupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GroupResponse{Group: group}), nil
}
