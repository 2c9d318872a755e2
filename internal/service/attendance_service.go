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

// AttendanceService implements the Connect AttendanceService.
type AttendanceService struct {
	attendance *records.Attendance
	logger     *slog.Logger
}

// NewAttendanceService creates an AttendanceService.
func NewAttendanceService(attendance *records.Attendance, logger *slog.Logger) *AttendanceService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceService{attendance: attendance, logger: logger}
}

// ListDates returns a group's attendance dates.
func (s *AttendanceService) ListDates(ctx context.Context, req *connect.Request[api.ListDatesRequest]) (*connect.Response[api.ListDatesResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	dates, err := s.attendance.List(ctx, sess, req.Msg.GroupID)
	if err != nil {
		s.logger.Warn("ListDates failed", "group_id", req.Msg.GroupID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ListDatesResponse{Dates: dates}), nil
}

// AddDate adds a session date with every participant absent.
func (s *AttendanceService) AddDate(ctx context.Context, req *connect.Request[api.AddDateRequest]) (*connect.Response[api.DateResponse], error) {
	return s.dateCall(ctx, "AddDate", func(sess session.Session) (models.AttendanceDate, error) {
		return s.attendance.AddDate(ctx, sess, req.Msg.GroupID, req.Msg.Date)
	})
}

// ToggleAttendance flips one participant's presence on a date.
func (s *AttendanceService) ToggleAttendance(ctx context.Context, req *connect.Request[api.ToggleAttendanceRequest]) (*connect.Response[api.DateResponse], error) {
	return s.dateCall(ctx, "ToggleAttendance", func(sess session.Session) (models.AttendanceDate, error) {
		return s.attendance.Toggle(ctx, sess, req.Msg.DateID, req.Msg.ParticipantID)
	})
}

// DeleteDate removes a date and moves the client's date selection if needed.
func (s *AttendanceService) DeleteDate(ctx context.Context, req *connect.Request[api.DeleteDateRequest]) (*connect.Response[api.DeleteDateResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}
	sess.SelectedDateID = req.Msg.SelectedDateID

	sess, err = s.attendance.DeleteDate(ctx, sess, req.Msg.DateID)
	if err != nil {
		s.logger.Warn("DeleteDate failed", "date_id", req.Msg.DateID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DeleteDateResponse{SelectedDateID: sess.SelectedDateID}), nil
}

// GetSummary reports how many participants are present on a date.
func (s *AttendanceService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	sum, err := s.attendance.Summary(ctx, sess, req.Msg.DateID)
	if err != nil {
		s.logger.Warn("GetSummary failed", "date_id", req.Msg.DateID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetSummaryResponse{Present: sum.Present, Total: sum.Total}), nil
}

func (s *AttendanceService) dateCall(ctx context.Context, op string, fn func(session.Session) (models.AttendanceDate, error)) (*connect.Response[api.DateResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	date, err := fn(sess)
	if err != nil {
		s.logger.Warn(op+" failed", "user_id", sess.UserID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.DateResponse{Date: date}), nil
}
