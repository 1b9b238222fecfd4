package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/circleledger/pkg/api"
)

// CircleServiceName is the fully-qualified name of the CircleService service.
const CircleServiceName = "circleledger.v1.CircleService"

const (
	CircleServiceCreateCircleProcedure = "/circleledger.v1.CircleService/CreateCircle"
	CircleServiceGetCircleProcedure    = "/circleledger.v1.CircleService/GetCircle"
	CircleServiceAddMemberProcedure    = "/circleledger.v1.CircleService/AddMember"
)

// CircleServiceHandler is implemented by the circle directory RPC server.
type CircleServiceHandler interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	GetCircle(context.Context, *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
}

// NewCircleServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewCircleServiceHandler(svc CircleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + CircleServiceName + "/", router{
		CircleServiceCreateCircleProcedure: connect.NewUnaryHandler(CircleServiceCreateCircleProcedure, svc.CreateCircle, opts...),
		CircleServiceGetCircleProcedure:    connect.NewUnaryHandler(CircleServiceGetCircleProcedure, svc.GetCircle, opts...),
		CircleServiceAddMemberProcedure:    connect.NewUnaryHandler(CircleServiceAddMemberProcedure, svc.AddMember, opts...),
	}
}

// CircleServiceClient is a client for the circleledger.v1.CircleService service.
type CircleServiceClient interface {
	CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error)
	GetCircle(context.Context, *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error)
	AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error)
}

// NewCircleServiceClient constructs a client for the CircleService service.
func NewCircleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) CircleServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &circleServiceClient{
		createCircle: connect.NewClient[api.CreateCircleRequest, api.CreateCircleResponse](httpClient, baseURL+CircleServiceCreateCircleProcedure, opts...),
		getCircle:    connect.NewClient[api.GetCircleRequest, api.GetCircleResponse](httpClient, baseURL+CircleServiceGetCircleProcedure, opts...),
		addMember:    connect.NewClient[api.AddMemberRequest, api.AddMemberResponse](httpClient, baseURL+CircleServiceAddMemberProcedure, opts...),
	}
}

type circleServiceClient struct {
	createCircle *connect.Client[api.CreateCircleRequest, api.CreateCircleResponse]
	getCircle    *connect.Client[api.GetCircleRequest, api.GetCircleResponse]
	addMember    *connect.Client[api.AddMemberRequest, api.AddMemberResponse]
}

func (c *circleServiceClient) CreateCircle(ctx context.Context, req *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	return c.createCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) GetCircle(ctx context.Context, req *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	return c.getCircle.CallUnary(ctx, req)
}

func (c *circleServiceClient) AddMember(ctx context.Context, req *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return c.addMember.CallUnary(ctx, req)
}

// UnimplementedCircleServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedCircleServiceHandler struct{}

func (UnimplementedCircleServiceHandler) CreateCircle(context.Context, *connect.Request[api.CreateCircleRequest]) (*connect.Response[api.CreateCircleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.CircleService.CreateCircle is not implemented"))
}

func (UnimplementedCircleServiceHandler) GetCircle(context.Context, *connect.Request[api.GetCircleRequest]) (*connect.Response[api.GetCircleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.CircleService.GetCircle is not implemented"))
}

func (UnimplementedCircleServiceHandler) AddMember(context.Context, *connect.Request[api.AddMemberRequest]) (*connect.Response[api.AddMemberResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.CircleService.AddMember is not implemented"))
}
