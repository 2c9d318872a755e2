package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/pkg/api"
)

// GroupServiceName is the fully-qualified name of the GroupService service.
const GroupServiceName = "gameochtend.v1.GroupService"

const (
	GroupServiceCreateGroupProcedure        = "/gameochtend.v1.GroupService/CreateGroup"
	GroupServiceGetGroupProcedure           = "/gameochtend.v1.GroupService/GetGroup"
	GroupServiceListGroupsProcedure         = "/gameochtend.v1.GroupService/ListGroups"
	GroupServiceRenameGroupProcedure        = "/gameochtend.v1.GroupService/RenameGroup"
	GroupServiceDeleteGroupProcedure        = "/gameochtend.v1.GroupService/DeleteGroup"
	GroupServiceAddParticipantProcedure     = "/gameochtend.v1.GroupService/AddParticipant"
	GroupServiceRemoveParticipantProcedure  = "/gameochtend.v1.GroupService/RemoveParticipant"
	GroupServiceSetParticipantRoleProcedure = "/gameochtend.v1.GroupService/SetParticipantRole"
	GroupServiceAssignCustomRoleProcedure   = "/gameochtend.v1.GroupService/AssignCustomRole"
	GroupServiceAddCustomRoleProcedure      = "/gameochtend.v1.GroupService/AddCustomRole"
	GroupServiceRemoveCustomRoleProcedure   = "/gameochtend.v1.GroupService/RemoveCustomRole"
	GroupServiceRemoveMemberProcedure       = "/gameochtend.v1.GroupService/RemoveMember"
)

// GroupServiceHandler is implemented by the group and membership RPCs.
type GroupServiceHandler interface {
	CreateGroup(context.Context, *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error)
	GetGroup(context.Context, *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error)
	ListGroups(context.Context, *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error)
	RenameGroup(context.Context, *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error)
	DeleteGroup(context.Context, *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error)
	AddParticipant(context.Context, *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error)
	RemoveParticipant(context.Context, *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.GroupResponse], error)
	SetParticipantRole(context.Context, *connect.Request[api.SetParticipantRoleRequest]) (*connect.Response[api.GroupResponse], error)
	AssignCustomRole(context.Context, *connect.Request[api.AssignCustomRoleRequest]) (*connect.Response[api.GroupResponse], error)
	AddCustomRole(context.Context, *connect.Request[api.AddCustomRoleRequest]) (*connect.Response[api.AddCustomRoleResponse], error)
	RemoveCustomRole(context.Context, *connect.Request[api.RemoveCustomRoleRequest]) (*connect.Response[api.GroupResponse], error)
	RemoveMember(context.Context, *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error)
}

// NewGroupServiceHandler builds an HTTP handler from the service implementation.
func NewGroupServiceHandler(svc GroupServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(opts)
	handle(m, GroupServiceCreateGroupProcedure, svc.CreateGroup)
	handle(m, GroupServiceGetGroupProcedure, svc.GetGroup)
	handle(m, GroupServiceListGroupsProcedure, svc.ListGroups)
	handle(m, GroupServiceRenameGroupProcedure, svc.RenameGroup)
	handle(m, GroupServiceDeleteGroupProcedure, svc.DeleteGroup)
	handle(m, GroupServiceAddParticipantProcedure, svc.AddParticipant)
	handle(m, GroupServiceRemoveParticipantProcedure, svc.RemoveParticipant)
	handle(m, GroupServiceSetParticipantRoleProcedure, svc.SetParticipantRole)
	handle(m, GroupServiceAssignCustomRoleProcedure, svc.AssignCustomRole)
	handle(m, GroupServiceAddCustomRoleProcedure, svc.AddCustomRole)
	handle(m, GroupServiceRemoveCustomRoleProcedure, svc.RemoveCustomRole)
	handle(m, GroupServiceRemoveMemberProcedure, svc.RemoveMember)
	return servicePath(GroupServiceName), m
}

// GroupServiceClient is a client for the gameochtend.v1.GroupService service.
type GroupServiceClient struct {
	createGroup        *connect.Client[api.CreateGroupRequest, api.GroupResponse]
	getGroup           *connect.Client[api.GetGroupRequest, api.GroupResponse]
	listGroups         *connect.Client[api.ListGroupsRequest, api.ListGroupsResponse]
	renameGroup        *connect.Client[api.RenameGroupRequest, api.GroupResponse]
	deleteGroup        *connect.Client[api.DeleteGroupRequest, api.DeleteGroupResponse]
	addParticipant     *connect.Client[api.AddParticipantRequest, api.AddParticipantResponse]
	removeParticipant  *connect.Client[api.RemoveParticipantRequest, api.GroupResponse]
	setParticipantRole *connect.Client[api.SetParticipantRoleRequest, api.GroupResponse]
	assignCustomRole   *connect.Client[api.AssignCustomRoleRequest, api.GroupResponse]
	addCustomRole      *connect.Client[api.AddCustomRoleRequest, api.AddCustomRoleResponse]
	removeCustomRole   *connect.Client[api.RemoveCustomRoleRequest, api.GroupResponse]
	removeMember       *connect.Client[api.RemoveMemberRequest, api.GroupResponse]
}

// NewGroupServiceClient constructs a client for the gameochtend.v1.GroupService service.
func NewGroupServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupServiceClient {
	return &GroupServiceClient{
		createGroup:        newClient[api.CreateGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceCreateGroupProcedure, opts),
		getGroup:           newClient[api.GetGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceGetGroupProcedure, opts),
		listGroups:         newClient[api.ListGroupsRequest, api.ListGroupsResponse](httpClient, baseURL, GroupServiceListGroupsProcedure, opts),
		renameGroup:        newClient[api.RenameGroupRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRenameGroupProcedure, opts),
		deleteGroup:        newClient[api.DeleteGroupRequest, api.DeleteGroupResponse](httpClient, baseURL, GroupServiceDeleteGroupProcedure, opts),
		addParticipant:     newClient[api.AddParticipantRequest, api.AddParticipantResponse](httpClient, baseURL, GroupServiceAddParticipantProcedure, opts),
		removeParticipant:  newClient[api.RemoveParticipantRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRemoveParticipantProcedure, opts),
		setParticipantRole: newClient[api.SetParticipantRoleRequest, api.GroupResponse](httpClient, baseURL, GroupServiceSetParticipantRoleProcedure, opts),
		assignCustomRole:   newClient[api.AssignCustomRoleRequest, api.GroupResponse](httpClient, baseURL, GroupServiceAssignCustomRoleProcedure, opts),
		addCustomRole:      newClient[api.AddCustomRoleRequest, api.AddCustomRoleResponse](httpClient, baseURL, GroupServiceAddCustomRoleProcedure, opts),
		removeCustomRole:   newClient[api.RemoveCustomRoleRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRemoveCustomRoleProcedure, opts),
		removeMember:       newClient[api.RemoveMemberRequest, api.GroupResponse](httpClient, baseURL, GroupServiceRemoveMemberProcedure, opts),
	}
}

func (c *GroupServiceClient) CreateGroup(ctx context.Context, req *connect.Request[api.CreateGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.createGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) GetGroup(ctx context.Context, req *connect.Request[api.GetGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.getGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) ListGroups(ctx context.Context, req *connect.Request[api.ListGroupsRequest]) (*connect.Response[api.ListGroupsResponse], error) {
	return c.listGroups.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RenameGroup(ctx context.Context, req *connect.Request[api.RenameGroupRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.renameGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) DeleteGroup(ctx context.Context, req *connect.Request[api.DeleteGroupRequest]) (*connect.Response[api.DeleteGroupResponse], error) {
	return c.deleteGroup.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.AddParticipantResponse], error) {
	return c.addParticipant.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeParticipant.CallUnary(ctx, req)
}

func (c *GroupServiceClient) SetParticipantRole(ctx context.Context, req *connect.Request[api.SetParticipantRoleRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.setParticipantRole.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AssignCustomRole(ctx context.Context, req *connect.Request[api.AssignCustomRoleRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.assignCustomRole.CallUnary(ctx, req)
}

func (c *GroupServiceClient) AddCustomRole(ctx context.Context, req *connect.Request[api.AddCustomRoleRequest]) (*connect.Response[api.AddCustomRoleResponse], error) {
	return c.addCustomRole.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveCustomRole(ctx context.Context, req *connect.Request[api.RemoveCustomRoleRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeCustomRole.CallUnary(ctx, req)
}

func (c *GroupServiceClient) RemoveMember(ctx context.Context, req *connect.Request[api.RemoveMemberRequest]) (*connect.Response[api.GroupResponse], error) {
	return c.removeMember.CallUnary(ctx, req)
}
