package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/calculator"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/service"
)

// GroupExpenseServiceHandler is the server side of
// spendwise.v1.GroupExpenseService.
type GroupExpenseServiceHandler interface {
	CreateGroupExpense(context.Context, *connect.Request[CreateGroupExpenseRequest]) (*connect.Response[CreateGroupExpenseResponse], error)
	GetGroupExpense(context.Context, *connect.Request[GetGroupExpenseRequest]) (*connect.Response[GetGroupExpenseResponse], error)
	ListMySplits(context.Context, *connect.Request[ListMySplitsRequest]) (*connect.Response[ListMySplitsResponse], error)
	MarkSplitPaid(context.Context, *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error)
}

// NewGroupExpenseServiceHandler builds an HTTP handler for svc and returns
// the path to mount it on.
func NewGroupExpenseServiceHandler(svc GroupExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return "/" + GroupExpenseServiceName + "/", procedureMux{
		GroupExpenseServiceCreateGroupExpenseProcedure: connect.NewUnaryHandler(GroupExpenseServiceCreateGroupExpenseProcedure, svc.CreateGroupExpense, opts...),
		GroupExpenseServiceGetGroupExpenseProcedure:    connect.NewUnaryHandler(GroupExpenseServiceGetGroupExpenseProcedure, svc.GetGroupExpense, opts...),
		GroupExpenseServiceListMySplitsProcedure:       connect.NewUnaryHandler(GroupExpenseServiceListMySplitsProcedure, svc.ListMySplits, opts...),
		GroupExpenseServiceMarkSplitPaidProcedure:      connect.NewUnaryHandler(GroupExpenseServiceMarkSplitPaidProcedure, svc.MarkSplitPaid, opts...),
	}
}

// GroupExpenseServer implements GroupExpenseServiceHandler on top of
// service.GroupExpenseService.
type GroupExpenseServer struct {
	svc *service.GroupExpenseService
}

var _ GroupExpenseServiceHandler = (*GroupExpenseServer)(nil)

func NewGroupExpenseServer(svc *service.GroupExpenseService) *GroupExpenseServer {
	return &GroupExpenseServer{svc: svc}
}

func (s *GroupExpenseServer) CreateGroupExpense(ctx context.Context, req *connect.Request[CreateGroupExpenseRequest]) (*connect.Response[CreateGroupExpenseResponse], error) {
	shares := make([]calculator.ShareInput, len(req.Msg.Shares))
	for i, share := range req.Msg.Shares {
		shares[i] = calculator.ShareInput{Participant: share.Username, Fraction: share.Fraction}
	}

	detail, err := s.svc.CreateGroupExpense(ctx, middleware.GetUserID(ctx), service.GroupExpenseInput{
		Title:       req.Msg.Title,
		TotalAmount: req.Msg.TotalAmount,
		Category:    req.Msg.Category,
		OccurredAt:  req.Msg.OccurredAt,
		Shares:      shares,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateGroupExpenseResponse{GroupExpense: toGroupExpenseDetail(detail)}), nil
}

func (s *GroupExpenseServer) GetGroupExpense(ctx context.Context, req *connect.Request[GetGroupExpenseRequest]) (*connect.Response[GetGroupExpenseResponse], error) {
	detail, err := s.svc.GetGroupExpense(ctx, middleware.GetUserID(ctx), req.Msg.GroupExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetGroupExpenseResponse{GroupExpense: toGroupExpenseDetail(detail)}), nil
}

func (s *GroupExpenseServer) ListMySplits(ctx context.Context, req *connect.Request[ListMySplitsRequest]) (*connect.Response[ListMySplitsResponse], error) {
	items, err := s.svc.ListMySplits(ctx, middleware.GetUserID(ctx), req.Msg.UnpaidOnly)
	if err != nil {
		return nil, toConnectError(err)
	}

	username := middleware.GetUsername(ctx)
	splits := make([]*MySplit, len(items))
	for i, item := range items {
		splits[i] = &MySplit{
			Split:        toSplit(item.Split, username),
			GroupExpense: toGroupExpense(item.GroupExpense),
		}
	}
	return connect.NewResponse(&ListMySplitsResponse{Splits: splits}), nil
}

func (s *GroupExpenseServer) MarkSplitPaid(ctx context.Context, req *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error) {
	result, err := s.svc.MarkSplitPaid(ctx, middleware.GetUserID(ctx), req.Msg.SplitID)
	if err != nil {
		return nil, toConnectError(err)
	}

	resp := &MarkSplitPaidResponse{
		Split:       toSplit(result.Split, middleware.GetUsername(ctx)),
		AlreadyPaid: result.AlreadyPaid,
	}
	if result.Expense != nil {
		resp.Expense = toExpense(result.Expense)
	}
	return connect.NewResponse(resp), nil
}

// GroupExpenseServiceClient is a typed client for
// spendwise.v1.GroupExpenseService.
type GroupExpenseServiceClient struct {
	createGroupExpense *connect.Client[CreateGroupExpenseRequest, CreateGroupExpenseResponse]
	getGroupExpense    *connect.Client[GetGroupExpenseRequest, GetGroupExpenseResponse]
	listMySplits       *connect.Client[ListMySplitsRequest, ListMySplitsResponse]
	markSplitPaid      *connect.Client[MarkSplitPaidRequest, MarkSplitPaidResponse]
}

// NewGroupExpenseServiceClient creates a client for the service at baseURL.
func NewGroupExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *GroupExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &GroupExpenseServiceClient{
		createGroupExpense: connect.NewClient[CreateGroupExpenseRequest, CreateGroupExpenseResponse](httpClient, baseURL+GroupExpenseServiceCreateGroupExpenseProcedure, opts...),
		getGroupExpense:    connect.NewClient[GetGroupExpenseRequest, GetGroupExpenseResponse](httpClient, baseURL+GroupExpenseServiceGetGroupExpenseProcedure, opts...),
		listMySplits:       connect.NewClient[ListMySplitsRequest, ListMySplitsResponse](httpClient, baseURL+GroupExpenseServiceListMySplitsProcedure, opts...),
		markSplitPaid:      connect.NewClient[MarkSplitPaidRequest, MarkSplitPaidResponse](httpClient, baseURL+GroupExpenseServiceMarkSplitPaidProcedure, opts...),
	}
}

func (c *GroupExpenseServiceClient) CreateGroupExpense(ctx context.Context, req *connect.Request[CreateGroupExpenseRequest]) (*connect.Response[CreateGroupExpenseResponse], error) {
	return c.createGroupExpense.CallUnary(ctx, req)
}

func (c *GroupExpenseServiceClient) GetGroupExpense(ctx context.Context, req *connect.Request[GetGroupExpenseRequest]) (*connect.Response[GetGroupExpenseResponse], error) {
	return c.getGroupExpense.CallUnary(ctx, req)
}

func (c *GroupExpenseServiceClient) ListMySplits(ctx context.Context, req *connect.Request[ListMySplitsRequest]) (*connect.Response[ListMySplitsResponse], error) {
	return c.listMySplits.CallUnary(ctx, req)
}

func (c *GroupExpenseServiceClient) MarkSplitPaid(ctx context.Context, req *connect.Request[MarkSplitPaidRequest]) (*connect.Response[MarkSplitPaidResponse], error) {
	return c.markSplitPaid.CallUnary(ctx, req)
}
