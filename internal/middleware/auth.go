package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/auth"
	"github.com/mmynk/gameochtend/internal/session"
)

// GetUserID extracts the authenticated user ID from the context.
// Returns empty string if not found.
func GetUserID(ctx context.Context) string {
	sess, _ := session.FromContext(ctx)
	return sess.UserID
}

// bearerToken returns the token of an "Authorization: Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if header == "" {
		return "", auth.ErrMissingToken
	}
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || scheme != "Bearer" || token == "" {
		return "", auth.ErrInvalidToken
	}
	return token, nil
}

// RequireAuth returns an interceptor that validates the bearer token and puts the
// caller's session on the request context. Requests without a valid token fail
// with CodeUnauthenticated.
func RequireAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			token, err := bearerToken(req.Header().Get("Authorization"))
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			claims, err := jwtManager.Validate(token)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(session.WithContext(ctx, session.New(claims.UserID())), req)
		}
	}
}

// OptionalAuth is RequireAuth without the rejection: a missing or invalid token
// leaves the request unauthenticated.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if token, err := bearerToken(req.Header().Get("Authorization")); err == nil {
				if claims, err := jwtManager.Validate(token); err == nil {
					ctx = session.WithContext(ctx, session.New(claims.UserID()))
				}
			}
			return next(ctx, req)
		}
	}
}
