package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/internal/accounts"
	"github.com/mmynk/gameochtend/internal/auth"
	"github.com/mmynk/gameochtend/internal/groups"
	"github.com/mmynk/gameochtend/internal/models"
	"github.com/mmynk/gameochtend/internal/session"
	"github.com/mmynk/gameochtend/pkg/api"
)

// AuthService implements the AuthService RPC interface.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
	sessions      *session.Store
	profiles      *accounts.ProfileStore
	groups        *groups.Manager
	logger        *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager, sessions *session.Store, profiles *accounts.ProfileStore, gm *groups.Manager, logger *slog.Logger) *AuthService {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthService{
		authenticator: authenticator,
		jwtManager:    jwtManager,
		sessions:      sessions,
		profiles:      profiles,
		groups:        gm,
		logger:        logger,
	}
}

// Register creates a user account and logs the new user in.
func (s *AuthService) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	s.logger.Info("Register request", "email", req.Msg.Email)

	account, err := s.authenticator.Register(ctx, req.Msg.Email, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Registration failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, profile, err := s.login(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User registered successfully", "user_id", account.Email)
	return connect.NewResponse(&api.RegisterResponse{Token: token, Profile: profile}), nil
}

// Login authenticates a user and returns a JWT token.
func (s *AuthService) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	s.logger.Info("Login request", "email", req.Msg.Email)

	account, err := s.authenticator.Authenticate(ctx, req.Msg.Email, req.Msg.Password)
	if err != nil {
		s.logger.Warn("Login failed", "email", req.Msg.Email, "error", err)
		return nil, toConnectError(err)
	}

	token, profile, err := s.login(ctx, account.Email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("User logged in successfully", "user_id", account.Email)
	return connect.NewResponse(&api.LoginResponse{Token: token, Profile: profile}), nil
}

// login persists the current user and issues a token.
func (s *AuthService) login(ctx context.Context, userID string) (string, models.UserProfile, error) {
	if _, err := s.sessions.Login(ctx, userID); err != nil {
		s.logger.Error("Failed to persist current user", "user_id", userID, "error", err)
		return "", models.UserProfile{}, toConnectError(err)
	}
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return "", models.UserProfile{}, toConnectError(err)
	}
	token, err := s.jwtManager.Generate(profile)
	if err != nil {
		s.logger.Error("Failed to generate token", "user_id", userID, "error", err)
		return "", models.UserProfile{}, connect.NewError(connect.CodeInternal, err)
	}
	return token, profile, nil
}

// Logout clears the persisted current user. Tokens stay valid until they expire.
func (s *AuthService) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	if err := s.sessions.Logout(ctx); err != nil {
		s.logger.Error("Logout failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.LogoutResponse{}), nil
}

// GetCurrentUser returns the caller's profile with their groups split by ownership.
func (s *AuthService) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Get(ctx, sess.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	visible, err := s.groups.ListForUser(ctx, sess.UserID)
	if err != nil {
		return nil, toConnectError(err)
	}
	owned, member := groups.Split(visible, sess.UserID)

	return connect.NewResponse(&api.GetCurrentUserResponse{
		Profile:      profile,
		OwnedGroups:  owned,
		MemberGroups: member,
	}), nil
}

// UpdateProfile changes the caller's display name and photo.
func (s *AuthService) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	sess, err := callerSession(ctx)
	if err != nil {
		return nil, err
	}

	profile, err := s.profiles.Update(ctx, sess.UserID, req.Msg.Name, req.Msg.Photo)
	if err != nil {
		s.logger.Warn("UpdateProfile failed", "user_id", sess.UserID, "error", err)
		return nil, toConnectError(err)
	}

	s.logger.Info("Profile updated", "user_id", sess.UserID)
	return connect.NewResponse(&api.UpdateProfileResponse{Profile: profile}), nil
}
