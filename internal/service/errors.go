package service

import (
	"context"
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/accounts"
	"github.com/mmynk/gameochtend/internal/auth"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
)

// errLoginRequired is returned when a handler runs without an authenticated session.
var errLoginRequired = errors.New("login required")

// toConnectError maps domain errors onto connect codes.
func toConnectError(err error) *connect.Error {
	var ce *connect.Error
	if errors.As(err, &ce) {
		return ce
	}
	switch {
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrInvalidEmail):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, errLoginRequired):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, models.ErrUnauthorized):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, models.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, models.ErrNotActionable):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, accounts.ErrAccountExists):
		return connect.NewError(connect.CodeAlreadyExists, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

// callerSession returns the session placed on ctx by the auth interceptor.
func callerSession(ctx context.Context) (session.Session, error) {
	sess, ok := session.FromContext(ctx)
	if !ok || !sess.Authenticated() {
		return session.Session{}, toConnectError(errLoginRequired)
	}
	return sess, nil
}
