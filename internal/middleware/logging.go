package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"connectrpc.com/connect"
)

// LoggingInterceptor returns a Connect interceptor that logs every RPC call.
// It logs the procedure name, user ID, duration, and any error codes/messages.
// Place it after the auth interceptor so the user ID is known.
func LoggingInterceptor(logger *slog.Logger) connect.UnaryInterceptorFunc {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			start := time.Now()
			procedure := req.Spec().Procedure

			resp, err := next(ctx, req)

			attrs := []any{
				"procedure", procedure,
				"user_id", GetUserID(ctx),
				"duration_ms", time.Since(start).Milliseconds(),
			}
			var connectErr *connect.Error
			switch {
			case err == nil:
				logger.Info("RPC ok", attrs...)
			case errors.As(err, &connectErr) && connectErr.Code() != connect.CodeInternal:
				logger.Warn("RPC error", append(attrs, "code", connectErr.Code(), "error", connectErr.Message())...)
			default:
				logger.Error("RPC error", append(attrs, "error", err)...)
			}

			return resp, err
		}
	}
}
