package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/pkg/api"
)

// InvitationServiceName is the fully-qualified name of the InvitationService service.
const InvitationServiceName = "gameochtend.v1.InvitationService"

const (
	InvitationServiceInviteProcedure       = "/gameochtend.v1.InvitationService/Invite"
	InvitationServiceAcceptProcedure       = "/gameochtend.v1.InvitationService/Accept"
	InvitationServiceDeclineProcedure      = "/gameochtend.v1.InvitationService/Decline"
	InvitationServiceListPendingProcedure  = "/gameochtend.v1.InvitationService/ListPending"
	InvitationServiceListAcceptedProcedure = "/gameochtend.v1.InvitationService/ListAccepted"
)

// InvitationServiceHandler is implemented by the invitation RPCs.
type InvitationServiceHandler interface {
	Invite(context.Context, *connect.Request[api.InviteRequest]) (*connect.Response[api.InvitationResponse], error)
	Accept(context.Context, *connect.Request[api.ResolveInvitationRequest]) (*connect.Response[api.InvitationResponse], error)
	Decline(context.Context, *connect.Request[api.ResolveInvitationRequest]) (*connect.Response[api.InvitationResponse], error)
	ListPending(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error)
	ListAccepted(context.Context, *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error)
}

// NewInvitationServiceHandler builds an HTTP handler from the service implementation.
func NewInvitationServiceHandler(svc InvitationServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(opts)
	handle(m, InvitationServiceInviteProcedure, svc.Invite)
	handle(m, InvitationServiceAcceptProcedure, svc.Accept)
	handle(m, InvitationServiceDeclineProcedure, svc.Decline)
	handle(m, InvitationServiceListPendingProcedure, svc.ListPending)
	handle(m, InvitationServiceListAcceptedProcedure, svc.ListAccepted)
	return servicePath(InvitationServiceName), m
}

// InvitationServiceClient is a client for the gameochtend.v1.InvitationService service.
type InvitationServiceClient struct {
	invite       *connect.Client[api.InviteRequest, api.InvitationResponse]
	accept       *connect.Client[api.ResolveInvitationRequest, api.InvitationResponse]
	decline      *connect.Client[api.ResolveInvitationRequest, api.InvitationResponse]
	listPending  *connect.Client[api.ListInvitationsRequest, api.ListInvitationsResponse]
	listAccepted *connect.Client[api.ListInvitationsRequest, api.ListInvitationsResponse]
}

// NewInvitationServiceClient constructs a client for the gameochtend.v1.InvitationService service.
func NewInvitationServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *InvitationServiceClient {
	return &InvitationServiceClient{
		invite:       newClient[api.InviteRequest, api.InvitationResponse](httpClient, baseURL, InvitationServiceInviteProcedure, opts),
		accept:       newClient[api.ResolveInvitationRequest, api.InvitationResponse](httpClient, baseURL, InvitationServiceAcceptProcedure, opts),
		decline:      newClient[api.ResolveInvitationRequest, api.InvitationResponse](httpClient, baseURL, InvitationServiceDeclineProcedure, opts),
		listPending:  newClient[api.ListInvitationsRequest, api.ListInvitationsResponse](httpClient, baseURL, InvitationServiceListPendingProcedure, opts),
		listAccepted: newClient[api.ListInvitationsRequest, api.ListInvitationsResponse](httpClient, baseURL, InvitationServiceListAcceptedProcedure, opts),
	}
}

func (c *InvitationServiceClient) Invite(ctx context.Context, req *connect.Request[api.InviteRequest]) (*connect.Response[api.InvitationResponse], error) {
	return c.invite.CallUnary(ctx, req)
}

func (c *InvitationServiceClient) Accept(ctx context.Context, req *connect.Request[api.ResolveInvitationRequest]) (*connect.Response[api.InvitationResponse], error) {
	return c.accept.CallUnary(ctx, req)
}

func (c *InvitationServiceClient) Decline(ctx context.Context, req *connect.Request[api.ResolveInvitationRequest]) (*connect.Response[api.InvitationResponse], error) {
	return c.decline.CallUnary(ctx, req)
}

func (c *InvitationServiceClient) ListPending(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return c.listPending.CallUnary(ctx, req)
}

func (c *InvitationServiceClient) ListAccepted(ctx context.Context, req *connect.Request[api.ListInvitationsRequest]) (*connect.Response[api.ListInvitationsResponse], error) {
	return c.listAccepted.CallUnary(ctx, req)
}
