package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/spendwise/internal/errs"
	"github.com/mmynk/spendwise/internal/middleware"
	"github.com/mmynk/spendwise/internal/service"
)

// AuthServiceHandler is the server side of spendwise.v1.AuthService.
type AuthServiceHandler interface {
	Register(context.Context, *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error)
	Login(context.Context, *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error)
	DeleteAccount(context.Context, *connect.Request[DeleteAccountRequest]) (*connect.Response[DeleteAccountResponse], error)
}

// NewAuthServiceHandler builds an HTTP handler for svc and returns the path
// to mount it on.
func NewAuthServiceHandler(svc AuthServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{WithJSON()}, opts...)
	return "/" + AuthServiceName + "/", procedureMux{
		AuthServiceRegisterProcedure:      connect.NewUnaryHandler(AuthServiceRegisterProcedure, svc.Register, opts...),
		AuthServiceLoginProcedure:         connect.NewUnaryHandler(AuthServiceLoginProcedure, svc.Login, opts...),
		AuthServiceDeleteAccountProcedure: connect.NewUnaryHandler(AuthServiceDeleteAccountProcedure, svc.DeleteAccount, opts...),
	}
}

// AuthServer implements AuthServiceHandler on top of service.AuthService.
type AuthServer struct {
	svc *service.AuthService
}

var _ AuthServiceHandler = (*AuthServer)(nil)

func NewAuthServer(svc *service.AuthService) *AuthServer {
	return &AuthServer{svc: svc}
}

func (s *AuthServer) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	user, token, err := s.svc.Register(ctx, req.Msg.Username, req.Msg.DisplayName, req.Msg.Password)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&RegisterResponse{User: toUser(user), Token: token}), nil
}

func (s *AuthServer) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	user, token, err := s.svc.Login(ctx, strings.TrimSpace(req.Msg.Username), req.Msg.Password)
	if errs.Is(err, errs.KindUnauthorized) {
		return nil, connect.NewError(connect.CodeUnauthenticated, err)
	}
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&LoginResponse{User: toUser(user), Token: token}), nil
}

func (s *AuthServer) DeleteAccount(ctx context.Context, _ *connect.Request[DeleteAccountRequest]) (*connect.Response[DeleteAccountResponse], error) {
	if err := s.svc.DeleteAccount(ctx, middleware.GetUserID(ctx)); err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&DeleteAccountResponse{}), nil
}

// AuthServiceClient is a typed client for spendwise.v1.AuthService.
type AuthServiceClient struct {
	register      *connect.Client[RegisterRequest, RegisterResponse]
	login         *connect.Client[LoginRequest, LoginResponse]
	deleteAccount *connect.Client[DeleteAccountRequest, DeleteAccountResponse]
}

// NewAuthServiceClient creates a client for the service at baseURL.
func NewAuthServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *AuthServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = append([]connect.ClientOption{WithJSON()}, opts...)
	return &AuthServiceClient{
		register:      connect.NewClient[RegisterRequest, RegisterResponse](httpClient, baseURL+AuthServiceRegisterProcedure, opts...),
		login:         connect.NewClient[LoginRequest, LoginResponse](httpClient, baseURL+AuthServiceLoginProcedure, opts...),
		deleteAccount: connect.NewClient[DeleteAccountRequest, DeleteAccountResponse](httpClient, baseURL+AuthServiceDeleteAccountProcedure, opts...),
	}
}

func (c *AuthServiceClient) Register(ctx context.Context, req *connect.Request[RegisterRequest]) (*connect.Response[RegisterResponse], error) {
	return c.register.CallUnary(ctx, req)
}

func (c *AuthServiceClient) Login(ctx context.Context, req *connect.Request[LoginRequest]) (*connect.Response[LoginResponse], error) {
	return c.login.CallUnary(ctx, req)
}

func (c *AuthServiceClient) DeleteAccount(ctx context.Context, req *connect.Request[DeleteAccountRequest]) (*connect.Response[DeleteAccountResponse], error) {
	return c.deleteAccount.CallUnary(ctx, req)
}
