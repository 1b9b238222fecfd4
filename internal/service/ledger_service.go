package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/circleledger/internal/ledger"
	"github.com/mmynk/circleledger/pkg/api"
	"github.com/mmynk/circleledger/pkg/api/apiconnect"
)

// LedgerService implements the Connect LedgerService
type LedgerService struct {
	apiconnect.UnimplementedLedgerServiceHandler
	ledger *ledger.Service
}

// NewLedgerService creates a new LedgerService backed by the given ledger.
func NewLedgerService(l *ledger.Service) *LedgerService {
	return &LedgerService{ledger: l}
}

// RecordExpense appends a new expense to a circle's ledger.
func (s *LedgerService) RecordExpense(ctx context.Context, req *connect.Request[api.RecordExpenseRequest]) (*connect.Response[api.RecordExpenseResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("RecordExpense request received",
		"circle_id", req.Msg.CircleID,
		"title", req.Msg.Expense.Title,
		"amount_yen", req.Msg.Expense.AmountYen,
		"split_type", req.Msg.Expense.SplitType,
		"participants", req.Msg.Expense.Participants,
	)

	expense, err := s.ledger.RecordExpense(ctx, memberID, draftToInput(req.Msg.CircleID, req.Msg.Expense))
	if err != nil {
		return nil, toConnectError(ctx, "RecordExpense", err)
	}

	return connect.NewResponse(&api.RecordExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// VoidExpense marks an active expense void.
func (s *LedgerService) VoidExpense(ctx context.Context, req *connect.Request[api.VoidExpenseRequest]) (*connect.Response[api.VoidExpenseResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("VoidExpense request received", "expense_id", req.Msg.ExpenseID)

	expense, err := s.ledger.VoidExpense(ctx, memberID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(ctx, "VoidExpense", err)
	}

	return connect.NewResponse(&api.VoidExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// VoidAndReplace voids an expense and records its correction in one step.
func (s *LedgerService) VoidAndReplace(ctx context.Context, req *connect.Request[api.VoidAndReplaceRequest]) (*connect.Response[api.VoidAndReplaceResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	slog.Debug("VoidAndReplace request received",
		"expense_id", req.Msg.ExpenseID,
		"amount_yen", req.Msg.Replacement.AmountYen,
	)

	voided, replacement, err := s.ledger.VoidAndReplace(ctx, memberID, req.Msg.ExpenseID, draftToInput("", req.Msg.Replacement))
	if err != nil {
		return nil, toConnectError(ctx, "VoidAndReplace", err)
	}

	return connect.NewResponse(&api.VoidAndReplaceResponse{
		Voided:      expenseToAPI(voided),
		Replacement: expenseToAPI(replacement),
	}), nil
}

// GetExpense retrieves one expense, void or active.
func (s *LedgerService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	expense, err := s.ledger.GetExpense(ctx, memberID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(ctx, "GetExpense", err)
	}

	return connect.NewResponse(&api.GetExpenseResponse{Expense: expenseToAPI(expense)}), nil
}

// ListExpenses lists a circle's expenses, active only unless include_void is set.
func (s *LedgerService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	filter, err := filterFromRequest(req.Msg)
	if err != nil {
		return nil, toConnectError(ctx, "ListExpenses", err)
	}

	expenses, err := s.ledger.ListExpenses(ctx, memberID, req.Msg.CircleID, filter)
	if err != nil {
		return nil, toConnectError(ctx, "ListExpenses", err)
	}

	slog.Debug("ListExpenses successful", "circle_id", req.Msg.CircleID, "count", len(expenses))
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: expensesToAPI(expenses)}), nil
}

// GetBalances returns each member's paid, owed and net totals.
func (s *LedgerService) GetBalances(ctx context.Context, req *connect.Request[api.GetBalancesRequest]) (*connect.Response[api.GetBalancesResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	balances, err := s.ledger.Balances(ctx, memberID, req.Msg.CircleID)
	if err != nil {
		return nil, toConnectError(ctx, "GetBalances", err)
	}

	return connect.NewResponse(&api.GetBalancesResponse{Balances: balancesToAPI(balances)}), nil
}

// GetSuggestions returns the transfers that would settle the circle.
func (s *LedgerService) GetSuggestions(ctx context.Context, req *connect.Request[api.GetSuggestionsRequest]) (*connect.Response[api.GetSuggestionsResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	suggestions, balances, err := s.ledger.Suggestions(ctx, memberID, req.Msg.CircleID)
	if err != nil {
		return nil, toConnectError(ctx, "GetSuggestions", err)
	}

	return connect.NewResponse(&api.GetSuggestionsResponse{
		Suggestions: suggestionsToAPI(suggestions),
		Balances:    balancesToAPI(balances),
	}), nil
}

// GetCorrectionChain returns every version of an expense, oldest first.
func (s *LedgerService) GetCorrectionChain(ctx context.Context, req *connect.Request[api.GetCorrectionChainRequest]) (*connect.Response[api.GetCorrectionChainResponse], error) {
	memberID, err := actor(ctx)
	if err != nil {
		return nil, err
	}

	chain, err := s.ledger.CorrectionChain(ctx, memberID, req.Msg.ExpenseID)
	if err != nil {
		return nil, toConnectError(ctx, "GetCorrectionChain", err)
	}

	return connect.NewResponse(&api.GetCorrectionChainResponse{Chain: expensesToAPI(chain)}), nil
}
