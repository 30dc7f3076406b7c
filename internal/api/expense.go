package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/service"
)

// ExpenseServiceHandler is the server side of spendwise.v1.ExpenseService.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	GetDailyTotals(context.Context, *connect.Request[GetDailyTotalsRequest]) (*connect.Response[GetDailyTotalsResponse], error)
	GetCategoryTotals(context.Context, *connect.Request[GetCategoryTotalsRequest]) (*connect.Response[GetCategoryTotalsResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc and returns the
// path to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return "/" + ExpenseServiceName + "/", procedureMux{
		ExpenseServiceCreateExpenseProcedure:     connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:        connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListExpensesProcedure:      connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceUpdateExpenseProcedure:     connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:     connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceGetDailyTotalsProcedure:    connect.NewUnaryHandler(ExpenseServiceGetDailyTotalsProcedure, svc.GetDailyTotals, opts...),
		ExpenseServiceGetCategoryTotalsProcedure: connect.NewUnaryHandler(ExpenseServiceGetCategoryTotalsProcedure, svc.GetCategoryTotals, opts...),
	}
}

// ExpenseServer implements ExpenseServiceHandler on top of service.ExpenseService.
type ExpenseServer struct {
	svc *service.ExpenseService
}

var _ ExpenseServiceHandler = (*ExpenseServer)(nil)

func NewExpenseServer(svc *service.ExpenseService) *ExpenseServer {
	return &ExpenseServer{svc: svc}
}

func (s *ExpenseServer) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	expense, err := s.svc.CreateExpense(ctx, middleware.GetUserID(ctx), service.ExpenseInput{
		Title:      req.Msg.Title,
		Amount:     req.Msg.Amount,
		Category:   req.Msg.Category,
		OccurredAt: req.Msg.OccurredAt,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&CreateExpenseResponse{Expense: toExpense(expense)}), nil
}

func (s *ExpenseServer) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	expense, err := s.svc.GetExpense(ctx, middleware.GetUserID(ctx), req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetExpenseResponse{Expense: toExpense(expense)}), nil
}

func (s *ExpenseServer) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	expenses, err := s.svc.ListExpenses(ctx, middleware.GetUserID(ctx), service.ExpenseQuery{
		StartDate: req.Msg.StartDate,
		EndDate:   req.Msg.EndDate,
		Category:  req.Msg.Category,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ListExpensesResponse{Expenses: toExpenses(expenses)}), nil
}

func (s *ExpenseServer) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	expense, err := s.svc.UpdateExpense(ctx, middleware.GetUserID(ctx), req.Msg.ExpenseID, service.ExpenseInput{
		Title:      req.Msg.Title,
		Amount:     req.Msg.Amount,
		Category:   req.Msg.Category,
		OccurredAt: req.Msg.OccurredAt,
	})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&UpdateExpenseResponse{Expense: toExpense(expense)}), nil
}

func (s *ExpenseServer) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	if err := s.svc.DeleteExpense(ctx, middleware.GetUserID(ctx), req.Msg.ExpenseID); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteExpenseResponse{}), nil
}

func (s *ExpenseServer) GetDailyTotals(ctx context.Context, req *connect.Request[GetDailyTotalsRequest]) (*connect.Response[GetDailyTotalsResponse], error) {
	totals, err := s.svc.GetDailyTotals(ctx, middleware.GetUserID(ctx), req.Msg.StartDate, req.Msg.EndDate)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetDailyTotalsResponse{Totals: toDailyTotals(totals)}), nil
}

func (s *ExpenseServer) GetCategoryTotals(ctx context.Context, req *connect.Request[GetCategoryTotalsRequest]) (*connect.Response[GetCategoryTotalsResponse], error) {
	totals, err := s.svc.GetCategoryTotals(ctx, middleware.GetUserID(ctx), req.Msg.StartDate, req.Msg.EndDate)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&GetCategoryTotalsResponse{Totals: toCategoryTotals(totals)}), nil
}

// ExpenseServiceClient is a typed client for spendwise.v1.ExpenseService.
type ExpenseServiceClient struct {
	createExpense     *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense        *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses      *connect.Client[ListExpensesRequest, ListExpensesResponse]
	updateExpense     *connect.Client[UpdateExpenseRequest, UpdateExpenseResponse]
	deleteExpense     *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	getDailyTotals    *connect.Client[GetDailyTotalsRequest, GetDailyTotalsResponse]
	getCategoryTotals *connect.Client[GetCategoryTotalsRequest, GetCategoryTotalsResponse]
}

// NewExpenseServiceClient creates a client for the service at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &ExpenseServiceClient{
		createExpense:     connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:        connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:      connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		updateExpense:     connect.NewClient[UpdateExpenseRequest, UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:     connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		getDailyTotals:    connect.NewClient[GetDailyTotalsRequest, GetDailyTotalsResponse](httpClient, baseURL+ExpenseServiceGetDailyTotalsProcedure, opts...),
		getCategoryTotals: connect.NewClient[GetCategoryTotalsRequest, GetCategoryTotalsResponse](httpClient, baseURL+ExpenseServiceGetCategoryTotalsProcedure, opts...),
	}
}

func (c *ExpenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[UpdateExpenseRequest]) (*connect.Response[UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetDailyTotals(ctx context.Context, req *connect.Request[GetDailyTotalsRequest]) (*connect.Response[GetDailyTotalsResponse], error) {
	return c.getDailyTotals.CallUnary(ctx, req)
}

func (c *ExpenseServiceClient) GetCategoryTotals(ctx context.Context, req *connect.Request[GetCategoryTotalsRequest]) (*connect.Response[GetCategoryTotalsResponse], error) {
	return c.getCategoryTotals.CallUnary(ctx, req)
}
