package apiconnect

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/circleledger/pkg/api"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "circleledger.v1.LedgerService"

const (
	LedgerServiceRecordExpenseProcedure      = "/circleledger.v1.LedgerService/RecordExpense"
	LedgerServiceVoidExpenseProcedure        = "/circleledger.v1.LedgerService/VoidExpense"
	LedgerServiceVoidAndReplaceProcedure     = "/circleledger.v1.LedgerService/VoidAndReplace"
	LedgerServiceGetExpenseProcedure         = "/circleledger.v1.LedgerService/GetExpense"
	LedgerServiceListExpensesProcedure       = "/circleledger.v1.LedgerService/ListExpenses"
	LedgerServiceGetBalancesProcedure        = "/circleledger.v1.LedgerService/GetBalances"
	LedgerServiceGetSuggestionsProcedure     = "/circleledger.v1.LedgerService/GetSuggestions"
	LedgerServiceGetCorrectionChainProcedure = "/circleledger.v1.LedgerService/GetCorrectionChain"
)

// LedgerServiceHandler is implemented by the ledger RPC server.
type LedgerServiceHandler interface {
	RecordExpense(context.Context, *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error)
	VoidExpense(context.Context, *connect.Request[api.VoidExpenseRequest]) (*connect.Response[api.VoidExpenseResponse], error)
	VoidAndReplace(context.Context, *connect.Request[api.VoidAndReplaceRequest]) (*connect.Response[api.VoidAndReplaceResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSuggestions(context.Context, *connect.Request[api.GetSuggestionsRequest]) (*connect.Response[api.GetSuggestionsResponse], error)
	GetCorrectionChain(context.Context, *connect.Request[api.GetCorrectionChainRequest]) (*connect.Response[api.GetCorrectionChainResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	return "/" + LedgerServiceName + "/", router{
		LedgerServiceRecordExpenseProcedure:      connect.NewUnaryHandler(LedgerServiceRecordExpenseProcedure, svc.RecordExpense, opts...),
		LedgerServiceVoidExpenseProcedure:        connect.NewUnaryHandler(LedgerServiceVoidExpenseProcedure, svc.VoidExpense, opts...),
		LedgerServiceVoidAndReplaceProcedure:     connect.NewUnaryHandler(LedgerServiceVoidAndReplaceProcedure, svc.VoidAndReplace, opts...),
		LedgerServiceGetExpenseProcedure:         connect.NewUnaryHandler(LedgerServiceGetExpenseProcedure, svc.GetExpense, opts...),
		LedgerServiceListExpensesProcedure:       connect.NewUnaryHandler(LedgerServiceListExpensesProcedure, svc.ListExpenses, opts...),
		LedgerServiceGetBalancesProcedure:        connect.NewUnaryHandler(LedgerServiceGetBalancesProcedure, svc.GetBalances, opts...),
		LedgerServiceGetSuggestionsProcedure:     connect.NewUnaryHandler(LedgerServiceGetSuggestionsProcedure, svc.GetSuggestions, opts...),
		LedgerServiceGetCorrectionChainProcedure: connect.NewUnaryHandler(LedgerServiceGetCorrectionChainProcedure, svc.GetCorrectionChain, opts...),
	}
}

// LedgerServiceClient is a client for the circleledger.v1.LedgerService service.
type LedgerServiceClient interface {
	RecordExpense(context.Context, *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error)
	VoidExpense(context.Context, *connect.Request[api.VoidExpenseRequest]) (*connect.Response[api.VoidExpenseResponse], error)
	VoidAndReplace(context.Context, *connect.Request[api.VoidAndReplaceRequest]) (*connect.Response[api.VoidAndReplaceResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error)
	GetSuggestions(context.Context, *connect.Request[api.GetSuggestionsRequest]) (*connect.Response[api.GetSuggestionsResponse], error)
	GetCorrectionChain(context.Context, *connect.Request[api.GetCorrectionChainRequest]) (*connect.Response[api.GetCorrectionChainResponse], error)
}

// NewLedgerServiceClient constructs a client for the LedgerService service.
// baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		recordExpense:      connect.NewClient[api.RecordExpenseRequest, api.RecordExpenseResponse](httpClient, baseURL+LedgerServiceRecordExpenseProcedure, opts...),
		voidExpense:        connect.NewClient[api.VoidExpenseRequest, api.VoidExpenseResponse](httpClient, baseURL+LedgerServiceVoidExpenseProcedure, opts...),
		voidAndReplace:     connect.NewClient[api.VoidAndReplaceRequest, api.VoidAndReplaceResponse](httpClient, baseURL+LedgerServiceVoidAndReplaceProcedure, opts...),
		getExpense:         connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+LedgerServiceGetExpenseProcedure, opts...),
		listExpenses:       connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+LedgerServiceListExpensesProcedure, opts...),
		getBalances:        connect.NewClient[api.GetBalancesRequest, api.GetBalancesResponse](httpClient, baseURL+LedgerServiceGetBalancesProcedure, opts...),
		getSuggestions:     connect.NewClient[api.GetSuggestionsRequest, api.GetSuggestionsResponse](httpClient, baseURL+LedgerServiceGetSuggestionsProcedure, opts...),
		getCorrectionChain: connect.NewClient[api.GetCorrectionChainRequest, api.GetCorrectionChainResponse](httpClient, baseURL+LedgerServiceGetCorrectionChainProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	recordExpense      *connect.Client[api.RecordExpenseRequest, api.RecordExpenseResponse]
	voidExpense        *connect.Client[api.VoidExpenseRequest, api.VoidExpenseResponse]
	voidAndReplace     *connect.Client[api.VoidAndReplaceRequest, api.VoidAndReplaceResponse]
	getExpense         *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses       *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	getBalances        *connect.Client[api.GetBalancesRequest, api.GetBalancesResponse]
	getSuggestions     *connect.Client[api.GetSuggestionsRequest, api.GetSuggestionsResponse]
	getCorrectionChain *connect.Client[api.GetCorrectionChainRequest, api.GetCorrectionChainResponse]
}

func (c *ledgerServiceClient) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	return c.recordExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) VoidExpense(ctx context.Context, req *connect.Request[api.VoidExpenseRequest]) (*connect.Response[api.VoidExpenseResponse], error) {
	return c.voidExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) VoidAndReplace(ctx context.Context, req *connect.Request[api.VoidAndReplaceRequest]) (*connect.Response[api.VoidAndReplaceResponse], error) {
	return c.voidAndReplace.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return c.getBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetSuggestions(ctx context.Context, req *connect.Request[api.GetSuggestionsRequest]) (*connect.Response[api.GetSuggestionsResponse], error) {
	return c.getSuggestions.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) GetCorrectionChain(ctx context.Context, req *connect.Request[api.GetCorrectionChainRequest]) (*connect.Response[api.GetCorrectionChainResponse], error) {
	return c.getCorrectionChain.CallUnary(ctx, req)
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) RecordExpense(context.Context, *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.RecordExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) VoidExpense(context.Context, *connect.Request[api.VoidExpenseRequest]) (*connect.Response[api.VoidExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.VoidExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) VoidAndReplace(context.Context, *connect.Request[api.VoidAndReplaceRequest]) (*connect.Response[api.VoidAndReplaceResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.VoidAndReplace is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.GetExpense is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.ListExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetBalances(context.Context, *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.GetBalances is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetSuggestions(context.Context, *connect.Request[api.GetSuggestionsRequest]) (*connect.Response[api.GetSuggestionsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.GetSuggestions is not implemented"))
}

func (UnimplementedLedgerServiceHandler) GetCorrectionChain(context.Context, *connect.Request[api.GetCorrectionChainRequest]) (*connect.Response[api.GetCorrectionChainResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("circleledger.v1.LedgerService.GetCorrectionChain is not implemented"))
}
