package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/service"
)

// BudgetServiceHandler is the server side of spendwise.v1.BudgetService.
type BudgetServiceHandler interface {
	CreateBudget(context.Context, *connect.Request[CreateBudgetRequest]) (*connect.Response[CreateBudgetResponse], error)
	GetBudget(context.Context, *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error)
	ListBudgets(context.Context, *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error)
	UpdateBudget(context.Context, *connect.Request[UpdateBudgetRequest]) (*connect.Response[UpdateBudgetResponse], error)
	DeleteBudget(context.Context, *connect.Request[DeleteBudgetRequest]) (*connect.Response[DeleteBudgetResponse], error)
}

// NewBudgetServiceHandler builds an HTTP handler for svc and returns the
// path to mount it on.
func NewBudgetServiceHandler(svc BudgetServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return "/" + BudgetServiceName + "/", procedureMux{
		BudgetServiceCreateBudgetProcedure: connect.NewUnaryHandler(BudgetServiceCreateBudgetProcedure, svc.CreateBudget, opts...),
		BudgetServiceGetBudgetProcedure:    connect.NewUnaryHandler(BudgetServiceGetBudgetProcedure, svc.GetBudget, opts...),
		BudgetServiceListBudgetsProcedure:  connect.NewUnaryHandler(BudgetServiceListBudgetsProcedure, svc.ListBudgets, opts...),
		BudgetServiceUpdateBudgetProcedure: connect.NewUnaryHandler(BudgetServiceUpdateBudgetProcedure, svc.UpdateBudget, opts...),
		BudgetServiceDeleteBudgetProcedure: connect.NewUnaryHandler(BudgetServiceDeleteBudgetProcedure, svc.DeleteBudget, opts...),
	}
}

// BudgetServer implements BudgetServiceHandler on top of service.BudgetService.
type BudgetServer struct {
	svc *service.BudgetService
}

var _ BudgetServiceHandler = (*BudgetServer)(nil)

func NewBudgetServer(svc *service.BudgetService) *BudgetServer {
	return &BudgetServer{svc: svc}
}

func (s *BudgetServer) CreateBudget(ctx context.Context, req *connect.Request[CreateBudgetRequest]) (*connect.Response[CreateBudgetResponse], error) {
	status, err := s.svc.CreateBudget(ctx, middleware.GetUserID(ctx), service.BudgetInput{
		Amount:   req.Msg.Amount,
		Duration: req.Msg.Duration,
		Category: req.Msg.Category,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateBudgetResponse{Budget: toBudget(status)}), nil
}

func (s *BudgetServer) GetBudget(ctx context.Context, req *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error) {
	status, err := s.svc.GetBudget(ctx, middleware.GetUserID(ctx), req.Msg.BudgetID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetBudgetResponse{Budget: toBudget(status)}), nil
}

func (s *BudgetServer) ListBudgets(ctx context.Context, _ *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	statuses, err := s.svc.ListBudgetsWithConsumed(ctx, middleware.GetUserID(ctx))
	if err != nil {
		return nil, toConnectError(err)
	}
	budgets := make([]*Budget, len(statuses))
	for i, status := range statuses {
		budgets[i] = toBudget(status)
	}
	return connect.NewResponse(&ListBudgetsResponse{Budgets: budgets}), nil
}

func (s *BudgetServer) UpdateBudget(ctx context.Context, req *connect.Request[UpdateBudgetRequest]) (*connect.Response[UpdateBudgetResponse], error) {
	status, err := s.svc.UpdateBudget(ctx, middleware.GetUserID(ctx), req.Msg.BudgetID, service.BudgetInput{
		Amount:   req.Msg.Amount,
		Duration: req.Msg.Duration,
		Category: req.Msg.Category,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&UpdateBudgetResponse{Budget: toBudget(status)}), nil
}

func (s *BudgetServer) DeleteBudget(ctx context.Context, req *connect.Request[DeleteBudgetRequest]) (*connect.Response[DeleteBudgetResponse], error) {
	if err := s.svc.DeleteBudget(ctx, middleware.GetUserID(ctx), req.Msg.BudgetID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteBudgetResponse{}), nil
}

// BudgetServiceClient is a typed client for spendwise.v1.BudgetService.
type BudgetServiceClient struct {
	createBudget *connect.Client[CreateBudgetRequest, CreateBudgetResponse]
	getBudget    *connect.Client[GetBudgetRequest, GetBudgetResponse]
	listBudgets  *connect.Client[ListBudgetsRequest, ListBudgetsResponse]
	updateBudget *connect.Client[UpdateBudgetRequest, UpdateBudgetResponse]
	deleteBudget *connect.Client[DeleteBudgetRequest, DeleteBudgetResponse]
}

// NewBudgetServiceClient creates a client for the service at baseURL.
func NewBudgetServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *BudgetServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &BudgetServiceClient{
		createBudget: connect.NewClient[CreateBudgetRequest, CreateBudgetResponse](httpClient, baseURL+BudgetServiceCreateBudgetProcedure, opts...),
		getBudget:    connect.NewClient[GetBudgetRequest, GetBudgetResponse](httpClient, baseURL+BudgetServiceGetBudgetProcedure, opts...),
		listBudgets:  connect.NewClient[ListBudgetsRequest, ListBudgetsResponse](httpClient, baseURL+BudgetServiceListBudgetsProcedure, opts...),
		updateBudget: connect.NewClient[UpdateBudgetRequest, UpdateBudgetResponse](httpClient, baseURL+BudgetServiceUpdateBudgetProcedure, opts...),
		deleteBudget: connect.NewClient[DeleteBudgetRequest, DeleteBudgetResponse](httpClient, baseURL+BudgetServiceDeleteBudgetProcedure, opts...),
	}
}

func (c *BudgetServiceClient) CreateBudget(ctx context.Context, req *connect.Request[CreateBudgetRequest]) (*connect.Response[CreateBudgetResponse], error) {
	return c.createBudget.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) GetBudget(ctx context.Context, req *connect.Request[GetBudgetRequest]) (*connect.Response[GetBudgetResponse], error) {
	return c.getBudget.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) ListBudgets(ctx context.Context, req *connect.Request[ListBudgetsRequest]) (*connect.Response[ListBudgetsResponse], error) {
	return c.listBudgets.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) UpdateBudget(ctx context.Context, req *connect.Request[UpdateBudgetRequest]) (*connect.Response[UpdateBudgetResponse], error) {
	return c.updateBudget.CallUnary(ctx, req)
}

func (c *BudgetServiceClient) DeleteBudget(ctx context.Context, req *connect.Request[DeleteBudgetRequest]) (*connect.Response[DeleteBudgetResponse], error) {
	return c.deleteBudget.CallUnary(ctx, req)
}
