package service

import (
	"time"

	"github.com/mmynk/circleledger/internal/ledger"
	"github.com/mmynk/circleledger/internal/models"
	"github.com/mmynk/circleledger/pkg/api"
)

func draftToInput(circleID string, d api.ExpenseDraft) ledger.ExpenseInput {
	return ledger.ExpenseInput{
		CircleID:      circleID,
		Title:         d.Title,
		AmountYen:     d.AmountYen,
		SplitType:     models.SplitType(d.SplitType),
		OccurredOn:    d.OccurredOn,
		Note:          d.Note,
		PayerMemberID: d.PayerMemberID,
		Participants:  d.Participants,
		FixedShares:   d.FixedShares,
	}
}

func memberToInput(m api.Member) ledger.MemberInput {
	return ledger.MemberInput{
		MemberID:    m.MemberID,
		DisplayName: m.DisplayName,
		Role:        models.Role(m.Role),
	}
}

// filterFromRequest parses the listing bounds. Dates must be YYYY-MM-DD.
func filterFromRequest(req *api.ListExpensesRequest) (models.ExpenseFilter, error) {
	filter := models.ExpenseFilter{
		PayerMemberID: req.PayerMemberID,
		Order:         models.ExpenseOrder(req.Order),
		Limit:         req.Limit,
		IncludeVoid:   req.IncludeVoid,
	}
	switch filter.Order {
	case "", models.OrderCreatedDesc, models.OrderCreatedAsc, models.OrderOccurredDesc:
	default:
		return filter, models.NewValidationError(models.CodeInvalidInput, "unknown order %q", req.Order)
	}

	var err error
	if filter.OccurredFrom, err = parseDate("occurred_from", req.OccurredFrom); err != nil {
		return filter, err
	}
	if filter.OccurredTo, err = parseDate("occurred_to", req.OccurredTo); err != nil {
		return filter, err
	}
	return filter, nil
}

func parseDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return nil, models.NewValidationError(models.CodeInvalidInput, "%s %q is not a date", field, value)
	}
	return &t, nil
}

func expenseToAPI(e *models.Expense) *api.Expense {
	if e == nil {
		return nil
	}
	out := &api.Expense{
		ID:                  e.ID,
		CircleID:            e.CircleID,
		Title:               e.Title,
		AmountYen:           e.AmountYen,
		SplitType:           string(e.SplitType),
		OccurredOn:          e.OccurredOn.Format(models.DateLayout),
		Note:                e.Note,
		PayerMemberID:       e.PayerMemberID,
		CreatedBy:           e.CreatedBy,
		CreatedAt:           e.CreatedAt,
		Status:              string(e.Status),
		VoidedAt:            e.VoidedAt,
		VoidedByMemberID:    e.VoidedByMemberID,
		ReplacesExpenseID:   e.ReplacesExpenseID,
		ReplacedByExpenseID: e.ReplacedByExpenseID,
		Shares:              make([]api.ExpenseShare, len(e.Shares)),
	}
	for i, s := range e.Shares {
		out.Shares[i] = api.ExpenseShare{
			MemberID:           s.MemberID,
			MemberSnapshotName: s.MemberSnapshotName,
			ShareYen:           s.ShareYen,
		}
	}
	return out
}

func expensesToAPI(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = expenseToAPI(e)
	}
	return out
}

func balancesToAPI(balances []models.MemberBalance) []api.MemberBalance {
	out := make([]api.MemberBalance, len(balances))
	for i, b := range balances {
		out[i] = api.MemberBalance{
			MemberID:    b.MemberID,
			DisplayName: b.DisplayName,
			PaidYen:     b.PaidYen,
			OwedYen:     b.OwedYen,
			NetYen:      b.NetYen,
		}
	}
	return out
}

func suggestionsToAPI(suggestions []models.SettlementSuggestion) []api.SettlementSuggestion {
	out := make([]api.SettlementSuggestion, len(suggestions))
	for i, s := range suggestions {
		out[i] = api.SettlementSuggestion{
			FromMemberID: s.FromMemberID,
			ToMemberID:   s.ToMemberID,
			AmountYen:    s.AmountYen,
		}
	}
	return out
}

func circleToAPI(c *models.Circle) *api.Circle {
	out := &api.Circle{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		Members:   make([]api.Member, len(c.Members)),
	}
	for i, m := range c.Members {
		out.Members[i] = api.Member{
			MemberID:    m.MemberID,
			DisplayName: m.DisplayName,
			Role:        string(m.Role),
			JoinedAt:    m.JoinedAt,
		}
	}
	return out
}
