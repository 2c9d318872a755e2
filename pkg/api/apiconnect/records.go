package apiconnect

import (
	"context"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/gameochtend/pkg/api"
)

// Service names of the group-scoped record services.
const (
	ChecklistServiceName  = "gameochtend.v1.ChecklistService"
	NoteServiceName       = "gameochtend.v1.NoteService"
	AttendanceServiceName = "gameochtend.v1.AttendanceService"
)

const (
	ChecklistServiceListItemsProcedure      = "/gameochtend.v1.ChecklistService/ListItems"
	ChecklistServiceAddItemProcedure        = "/gameochtend.v1.ChecklistService/AddItem"
	ChecklistServiceToggleItemProcedure     = "/gameochtend.v1.ChecklistService/ToggleItem"
	ChecklistServiceDeleteItemProcedure     = "/gameochtend.v1.ChecklistService/DeleteItem"
	ChecklistServiceToggleExecutorProcedure = "/gameochtend.v1.ChecklistService/ToggleExecutor"
	ChecklistServiceReplaceItemsProcedure   = "/gameochtend.v1.ChecklistService/ReplaceItems"

	NoteServiceListNotesProcedure  = "/gameochtend.v1.NoteService/ListNotes"
	NoteServiceCreateNoteProcedure = "/gameochtend.v1.NoteService/CreateNote"
	NoteServiceDeleteNoteProcedure = "/gameochtend.v1.NoteService/DeleteNote"

	AttendanceServiceListDatesProcedure        = "/gameochtend.v1.AttendanceService/ListDates"
	AttendanceServiceAddDateProcedure          = "/gameochtend.v1.AttendanceService/AddDate"
	AttendanceServiceToggleAttendanceProcedure = "/gameochtend.v1.AttendanceService/ToggleAttendance"
	AttendanceServiceDeleteDateProcedure       = "/gameochtend.v1.AttendanceService/DeleteDate"
	AttendanceServiceGetSummaryProcedure       = "/gameochtend.v1.AttendanceService/GetSummary"
)

// ChecklistServiceHandler is implemented by the checklist RPCs.
type ChecklistServiceHandler interface {
	ListItems(context.Context, *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error)
	ToggleItem(context.Context, *connect.Request[api.ToggleItemRequest]) (*connect.Response[api.ItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	ToggleExecutor(context.Context, *connect.Request[api.ToggleExecutorRequest]) (*connect.Response[api.ItemResponse], error)
	ReplaceItems(context.Context, *connect.Request[api.ReplaceItemsRequest]) (*connect.Response[api.ListItemsResponse], error)
}

// NewChecklistServiceHandler builds an HTTP handler from the service implementation.
func NewChecklistServiceHandler(svc ChecklistServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(opts)
	handle(m, ChecklistServiceListItemsProcedure, svc.ListItems)
	handle(m, ChecklistServiceAddItemProcedure, svc.AddItem)
	handle(m, ChecklistServiceToggleItemProcedure, svc.ToggleItem)
	handle(m, ChecklistServiceDeleteItemProcedure, svc.DeleteItem)
	handle(m, ChecklistServiceToggleExecutorProcedure, svc.ToggleExecutor)
	handle(m, ChecklistServiceReplaceItemsProcedure, svc.ReplaceItems)
	return servicePath(ChecklistServiceName), m
}

// NoteServiceHandler is implemented by the note RPCs.
type NoteServiceHandler interface {
	ListNotes(context.Context, *connect.Request[api.ListNotesRequest]) (*connect.Response[api.ListNotesResponse], error)
	CreateNote(context.Context, *connect.Request[api.CreateNoteRequest]) (*connect.Response[api.CreateNoteResponse], error)
	DeleteNote(context.Context, *connect.Request[api.DeleteNoteRequest]) (*connect.Response[api.DeleteNoteResponse], error)
}

// NewNoteServiceHandler builds an HTTP handler from the service implementation.
func NewNoteServiceHandler(svc NoteServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(opts)
	handle(m, NoteServiceListNotesProcedure, svc.ListNotes)
	handle(m, NoteServiceCreateNoteProcedure, svc.CreateNote)
	handle(m, NoteServiceDeleteNoteProcedure, svc.DeleteNote)
	return servicePath(NoteServiceName), m
}

// AttendanceServiceHandler is implemented by the attendance RPCs.
type AttendanceServiceHandler interface {
	ListDates(context.Context, *connect.Request[api.ListDatesRequest]) (*connect.Response[api.ListDatesResponse], error)
	AddDate(context.Context, *connect.Request[api.AddDateRequest]) (*connect.Response[api.DateResponse], error)
	ToggleAttendance(context.Context, *connect.Request[api.ToggleAttendanceRequest]) (*connect.Response[api.DateResponse], error)
	DeleteDate(context.Context, *connect.Request[api.DeleteDateRequest]) (*connect.Response[api.DeleteDateResponse], error)
	GetSummary(context.Context, *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error)
}

// NewAttendanceServiceHandler builds an HTTP handler from the service implementation.
func NewAttendanceServiceHandler(svc AttendanceServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	m := newServiceMux(opts)
	handle(m, AttendanceServiceListDatesProcedure, svc.ListDates)
	handle(m, AttendanceServiceAddDateProcedure, svc.AddDate)
	handle(m, AttendanceServiceToggleAttendanceProcedure, svc.ToggleAttendance)
	handle(m, AttendanceServiceDeleteDateProcedure, svc.DeleteDate)
	handle(m, AttendanceServiceGetSummaryProcedure, svc.GetSummary)
	return servicePath(AttendanceServiceName), m
}

// ChecklistServiceClient is a client for the gameochtend.v1.ChecklistService service.
type ChecklistServiceClient struct {
	listItems      *connect.Client[api.ListItemsRequest, api.ListItemsResponse]
	addItem        *connect.Client[api.AddItemRequest, api.ItemResponse]
	toggleItem     *connect.Client[api.ToggleItemRequest, api.ItemResponse]
	deleteItem     *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	toggleExecutor *connect.Client[api.ToggleExecutorRequest, api.ItemResponse]
	replaceItems   *connect.Client[api.ReplaceItemsRequest, api.ListItemsResponse]
}

// NewChecklistServiceClient constructs a client for the gameochtend.v1.ChecklistService service.
func NewChecklistServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ChecklistServiceClient {
	return &ChecklistServiceClient{
		listItems:      newClient[api.ListItemsRequest, api.ListItemsResponse](httpClient, baseURL, ChecklistServiceListItemsProcedure, opts),
		addItem:        newClient[api.AddItemRequest, api.ItemResponse](httpClient, baseURL, ChecklistServiceAddItemProcedure, opts),
		toggleItem:     newClient[api.ToggleItemRequest, api.ItemResponse](httpClient, baseURL, ChecklistServiceToggleItemProcedure, opts),
		deleteItem:     newClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL, ChecklistServiceDeleteItemProcedure, opts),
		toggleExecutor: newClient[api.ToggleExecutorRequest, api.ItemResponse](httpClient, baseURL, ChecklistServiceToggleExecutorProcedure, opts),
		replaceItems:   newClient[api.ReplaceItemsRequest, api.ListItemsResponse](httpClient, baseURL, ChecklistServiceReplaceItemsProcedure, opts),
	}
}

func (c *ChecklistServiceClient) ListItems(ctx context.Context, req *connect.Request[api.ListItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.listItems.CallUnary(ctx, req)
}

func (c *ChecklistServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *ChecklistServiceClient) ToggleItem(ctx context.Context, req *connect.Request[api.ToggleItemRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.toggleItem.CallUnary(ctx, req)
}

func (c *ChecklistServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *ChecklistServiceClient) ToggleExecutor(ctx context.Context, req *connect.Request[api.ToggleExecutorRequest]) (*connect.Response[api.ItemResponse], error) {
	return c.toggleExecutor.CallUnary(ctx, req)
}

func (c *ChecklistServiceClient) ReplaceItems(ctx context.Context, req *connect.Request[api.ReplaceItemsRequest]) (*connect.Response[api.ListItemsResponse], error) {
	return c.replaceItems.CallUnary(ctx, req)
}

// NoteServiceClient is a client for the gameochtend.v1.NoteService service.
type NoteServiceClient struct {
	listNotes  *connect.Client[api.ListNotesRequest, api.ListNotesResponse]
	createNote *connect.Client[api.CreateNoteRequest, api.CreateNoteResponse]
	deleteNote *connect.Client[api.DeleteNoteRequest, api.DeleteNoteResponse]
}

// NewNoteServiceClient constructs a client for the gameochtend.v1.NoteService service.
func NewNoteServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *NoteServiceClient {
	return &NoteServiceClient{
		listNotes:  newClient[api.ListNotesRequest, api.ListNotesResponse](httpClient, baseURL, NoteServiceListNotesProcedure, opts),
		createNote: newClient[api.CreateNoteRequest, api.CreateNoteResponse](httpClient, baseURL, NoteServiceCreateNoteProcedure, opts),
		deleteNote: newClient[api.DeleteNoteRequest, api.DeleteNoteResponse](httpClient, baseURL, NoteServiceDeleteNoteProcedure, opts),
	}
}

func (c *NoteServiceClient) ListNotes(ctx context.Context, req *connect.Request[api.ListNotesRequest]) (*connect.Response[api.ListNotesResponse], error) {
	return c.listNotes.CallUnary(ctx, req)
}

func (c *NoteServiceClient) CreateNote(ctx context.Context, req *connect.Request[api.CreateNoteRequest]) (*connect.Response[api.CreateNoteResponse], error) {
	return c.createNote.CallUnary(ctx, req)
}

func (c *NoteServiceClient) DeleteNote(ctx context.Context, req *connect.Request[api.DeleteNoteRequest]) (*connect.Response[api.DeleteNoteResponse], error) {
	return c.deleteNote.CallUnary(ctx, req)
}

// AttendanceServiceClient is a client for the gameochtend.v1.AttendanceService service.
type AttendanceServiceClient struct {
	listDates        *connect.Client[api.ListDatesRequest, api.ListDatesResponse]
	addDate          *connect.Client[api.AddDateRequest, api.DateResponse]
	toggleAttendance *connect.Client[api.ToggleAttendanceRequest, api.DateResponse]
	deleteDate       *connect.Client[api.DeleteDateRequest, api.DeleteDateResponse]
	getSummary       *connect.Client[api.GetSummaryRequest, api.GetSummaryResponse]
}

// NewAttendanceServiceClient constructs a client for the gameochtend.v1.AttendanceService service.
func NewAttendanceServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AttendanceServiceClient {
	return &AttendanceServiceClient{
		listDates:        newClient[api.ListDatesRequest, api.ListDatesResponse](httpClient, baseURL, AttendanceServiceListDatesProcedure, opts),
		addDate:          newClient[api.AddDateRequest, api.DateResponse](httpClient, baseURL, AttendanceServiceAddDateProcedure, opts),
		toggleAttendance: newClient[api.ToggleAttendanceRequest, api.DateResponse](httpClient, baseURL, AttendanceServiceToggleAttendanceProcedure, opts),
		deleteDate:       newClient[api.DeleteDateRequest, api.DeleteDateResponse](httpClient, baseURL, AttendanceServiceDeleteDateProcedure, opts),
		getSummary:       newClient[api.GetSummaryRequest, api.GetSummaryResponse](httpClient, baseURL, AttendanceServiceGetSummaryProcedure, opts),
	}
}

func (c *AttendanceServiceClient) ListDates(ctx context.Context, req *connect.Request[api.ListDatesRequest]) (*connect.Response[api.ListDatesResponse], error) {
	return c.listDates.CallUnary(ctx, req)
}

func (c *AttendanceServiceClient) AddDate(ctx context.Context, req *connect.Request[api.AddDateRequest]) (*connect.Response[api.DateResponse], error) {
	return c.addDate.CallUnary(ctx, req)
}

func (c *AttendanceServiceClient) ToggleAttendance(ctx context.Context, req *connect.Request[api.ToggleAttendanceRequest]) (*connect.Response[api.DateResponse], error) {
	return c.toggleAttendance.CallUnary(ctx, req)
}

func (c *AttendanceServiceClient) DeleteDate(ctx context.Context, req *connect.Request[api.DeleteDateRequest]) (*connect.Response[api.DeleteDateResponse], error) {
	return c.deleteDate.CallUnary(ctx, req)
}

func (c *AttendanceServiceClient) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	return c.getSummary.CallUnary(ctx, req)
}
