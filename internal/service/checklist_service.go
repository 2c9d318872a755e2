package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/records"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/pkg/api"
)

// ChecklistService implements the Connect ChecklistService.
type ChecklistService struct {
	checklist *records.Checklist
	logger    *slog.Logger
}

// NewChecklistService creates a ChecklistService.
func NewChecklistService(checklist *records.Checklist, logger *slog.Logger) *ChecklistService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChecklistService{checklist: checklist, logger: logger}
}

// ListItems returns the checklist of a group.
func (s *ChecklistService) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.checklist.List(ctx, sess, req.Msg.GroupID)
	if err != nil {
		s.logger.Warn("ListItems failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListItemsResponse{Items: items}), nil
}

// AddItem appends an open item to a group's checklist.
func (s *ChecklistService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return s.itemCall(ctx, "AddItem", func(sess session.Session) (models.ChecklistItem, error) {
		return s.checklist.Add(ctx, sess, req.Msg.GroupID, req.Msg.Text)
	})
}

// ToggleItem flips the completed flag of an item.
func (s *ChecklistService) ToggleItem(ctx context.Context, req *connect.Request[api.ToggleItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return s.itemCall(ctx, "ToggleItem", func(sess session.Session) (models.ChecklistItem, error) {
		return s.checklist.Toggle(ctx, sess, req.Msg.ItemID)
	})
}

// ToggleExecutor adds or removes a member from an item's executors.
func (s *ChecklistService) ToggleExecutor(ctx context.Context, req *connect.Request[api.ToggleExecutorRequest]) (*connect.Response[api.ItemResponse], error) {
	return s.itemCall(ctx, "ToggleExecutor", func(sess session.Session) (models.ChecklistItem, error) {
		return s.checklist.ToggleExecutor(ctx, sess, req.Msg.ItemID, req.Msg.MemberID)
	})
}

// DeleteItem removes an item.
func (s *ChecklistService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.checklist.Delete(ctx, sess, req.Msg.ItemID); err != nil {
		s.logger.Warn("DeleteItem failed", "item_id", req.Msg.ItemID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteItemResponse{}), nil
}

// ReplaceItems publishes a whole edited checklist for one group.
func (s *ChecklistService) ReplaceItems(ctx context.Context, req *connect.Request[api.ReplaceItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	items, err := s.checklist.Replace(ctx, sess, req.Msg.GroupID, req.Msg.Items)
	if err != nil {
		s.logger.Warn("ReplaceItems failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListItemsResponse{Items: items}), nil
}

func (s *ChecklistService) itemCall(ctx context.Context, op string, fn func(session.Session) (models.ChecklistItem, error)) (*connect.Response[api.ItemResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	item, err := fn(sess)
	if err != nil {
		s.logger.Warn(op+" failed", "user_id", sess.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ItemResponse{Item: item}), nil
}
