package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/pkg/api"
)

// AuthServiceName is the fully-qualified name of the AuthService service.
const AuthServiceName = "gameochtend.v1.AuthService"

const (
	AuthServiceRegisterProcedure       = "/gameochtend.v1.AuthService/Register"
	AuthServiceLoginProcedure          = "/gameochtend.v1.AuthService/Login"
	AuthServiceLogoutProcedure         = "/gameochtend.v1.AuthService/Logout"
	AuthServiceGetCurrentUserProcedure = "/gameochtend.v1.AuthService/GetCurrentUser"
	AuthServiceUpdateProfileProcedure  = "/gameochtend.v1.AuthService/UpdateProfile"
)

// AuthServiceHandler is implemented by the account and session RPCs.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error)
	Login(context.Context, *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error)
	Logout(context.Context, *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error)
	GetCurrentUser(context.Context, *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error)
	UpdateProfile(context.Context, *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler from the service implementation.
// It returns the path on which to mount the handler and the handler itself.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(opts)
	handle(m, AuthServiceRegisterProcedure, svc.Register)
	handle(m, AuthServiceLoginProcedure, svc.Login)
	handle(m, AuthServiceLogoutProcedure, svc.Logout)
	handle(m, AuthServiceGetCurrentUserProcedure, svc.GetCurrentUser)
	handle(m, AuthServiceUpdateProfileProcedure, svc.UpdateProfile)
	return servicePath(AuthServiceName), m
}

// AuthServiceClient is a client for the gameochtend.v1.AuthService service.
type AuthServiceClient struct {
	register       *connect.Client[api.RegisterRequest, api.RegisterResponse]
	login          *connect.Client[api.LoginRequest, api.LoginResponse]
	logout         *connect.Client[api.LogoutRequest, api.LogoutResponse]
	getCurrentUser *connect.Client[api.GetCurrentUserRequest, api.GetCurrentUserResponse]
	updateProfile  *connect.Client[api.UpdateProfileRequest, api.UpdateProfileResponse]
}

// NewAuthServiceClient constructs a client for the gameochtend.v1.AuthService service.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	return &AuthServiceClient{
		register:       newClient[api.RegisterRequest, api.RegisterResponse](httpClient, baseURL, AuthServiceRegisterProcedure, opts),
		login:          newClient[api.LoginRequest, api.LoginResponse](httpClient, baseURL, AuthServiceLoginProcedure, opts),
		logout:         newClient[api.LogoutRequest, api.LogoutResponse](httpClient, baseURL, AuthServiceLogoutProcedure, opts),
		getCurrentUser: newClient[api.GetCurrentUserRequest, api.GetCurrentUserResponse](httpClient, baseURL, AuthServiceGetCurrentUserProcedure, opts),
		updateProfile:  newClient[api.UpdateProfileRequest, api.UpdateProfileResponse](httpClient, baseURL, AuthServiceUpdateProfileProcedure, opts),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[api.RegisterRequest]) (*connect.Response[api.RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[api.LoginRequest]) (*connect.Response[api.LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Logout(ctx context.Context, req *connect.Request[api.LogoutRequest]) (*connect.Response[api.LogoutResponse], error) {
	return c.logout.CallUnary(ctx, req)
}

func (c *AuthServiceClient) GetCurrentUser(ctx context.Context, req *connect.Request[api.GetCurrentUserRequest]) (*connect.Response[api.GetCurrentUserResponse], error) {
	return c.getCurrentUser.CallUnary(ctx, req)
}

func (c *AuthServiceClient) UpdateProfile(ctx context.Context, req *connect.Request[api.UpdateProfileRequest]) (*connect.Response[api.UpdateProfileResponse], error) {
	return c.updateProfile.CallUnary(ctx, req)
}
