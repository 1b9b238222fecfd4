// Package ledger orchestrates the settlement ledger of a circle: recording
// expenses, correcting them by void and replace, and deriving balances and
// settlement suggestions from the active entries.
//
// Every operation takes the acting member id. Reads require circle membership;
// corrections additionally require being the payer, the recorder, or an owner
// or admin of the circle.
package ledger

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/circleledger/internal/calculator"
	"github.com/mmynk/circleledger/internal/events"
	"github.com/mmynk/circleledger/internal/metrics"
	"github.com/mmynk/circleledger/internal/models"
	"github.com/mmynk/circleledger/internal/storage"
)

// Operation names used for metrics and logs.
const (
	opRecordExpense   = "record_expense"
	opVoidExpense     = "void_expense"
	opVoidAndReplace  = "void_and_replace"
	opGetExpense      = "get_expense"
	opListExpenses    = "list_expenses"
	opBalances        = "balances"
	opSuggestions     = "suggestions"
	opCorrectionChain = "correction_chain"
	opCreateCircle    = "create_circle"
	opGetCircle       = "get_circle"
	opAddMember       = "add_member"
)

// Service is stateless between calls: all state lives in the store.
type Service struct {
	store     storage.Store
	validate  *validator.Validate
	publisher events.Publisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher sets where ledger change events go. Defaults to dropping them.
func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

// WithMetrics sets the collectors operations are recorded on.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithLogger overrides slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithClock overrides the clock used for void timestamps and events.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// New creates a Service backed by store.
func New(store storage.Store, opts ...Option) *Service {
	s := &Service{
		store:     store,
		validate:  newValidator(),
		publisher: events.NopPublisher{},
		logger:    slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RecordExpense validates in, computes its shares and appends it to the
// circle's ledger.
func (s *Service) RecordExpense(ctx context.Context, actor string, in ExpenseInput) (expense *models.Expense, err error) {
	defer s.observe(ctx, opRecordExpense, time.Now(), &err)

	if in.CircleID == "" {
		return nil, models.NewValidationError(models.CodeInvalidInput, "circle id is required")
	}
	circle, err := s.memberCircle(ctx, actor, in.CircleID)
	if err != nil {
		return nil, err
	}

	expense, err = s.buildExpense(in, circle, actor)
	if err != nil {
		return nil, err
	}

	if err := s.store.AppendExpense(ctx, expense); err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Expense recorded",
		"circle_id", expense.CircleID,
		"expense_id", expense.ID,
		"amount_yen", expense.AmountYen,
		"participants", len(expense.Shares),
	)
	s.publish(ctx, events.Event{
		Type:          events.ExpenseRecorded,
		CircleID:      expense.CircleID,
		ExpenseID:     expense.ID,
		AmountYen:     expense.AmountYen,
		ActorMemberID: actor,
	})

	return expense, nil
}

// GetExpense returns one expense, void or active.
func (s *Service) GetExpense(ctx context.Context, actor, expenseID string) (expense *models.Expense, err error) {
	defer s.observe(ctx, opGetExpense, time.Now(), &err)

	expense, err = s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberCircle(ctx, actor, expense.CircleID); err != nil {
		return nil, err
	}
	return expense, nil
}

// ListExpenses lists a circle's expenses. Void expenses are included only
// when filter.IncludeVoid is set.
func (s *Service) ListExpenses(ctx context.Context, actor, circleID string, filter models.ExpenseFilter) (expenses []*models.Expense, err error) {
	defer s.observe(ctx, opListExpenses, time.Now(), &err)

	if filter.Limit < 0 {
		return nil, models.NewValidationError(models.CodeInvalidInput, "limit must not be negative")
	}
	if _, err := s.memberCircle(ctx, actor, circleID); err != nil {
		return nil, err
	}

	if filter.IncludeVoid {
		return s.store.ListExpenses(ctx, circleID, filter)
	}
	return s.store.ListActiveExpenses(ctx, circleID, filter)
}

// Balances returns one balance per roster member, derived from the active
// expenses.
func (s *Service) Balances(ctx context.Context, actor, circleID string) (balances []models.MemberBalance, err error) {
	defer s.observe(ctx, opBalances, time.Now(), &err)

	circle, err := s.memberCircle(ctx, actor, circleID)
	if err != nil {
		return nil, err
	}
	return s.balances(ctx, circle)
}

// Suggestions returns the transfers that would settle every balance of the
// circle, together with the balances they were derived from.
func (s *Service) Suggestions(ctx context.Context, actor, circleID string) (suggestions []models.SettlementSuggestion, balances []models.MemberBalance, err error) {
	defer s.observe(ctx, opSuggestions, time.Now(), &err)

	circle, err := s.memberCircle(ctx, actor, circleID)
	if err != nil {
		return nil, nil, err
	}

	balances, err = s.balances(ctx, circle)
	if err != nil {
		return nil, nil, err
	}

	suggestions, err = calculator.SuggestSettlements(balances)
	if err != nil {
		return nil, nil, err
	}
	return suggestions, balances, nil
}

func (s *Service) balances(ctx context.Context, circle *models.Circle) ([]models.MemberBalance, error) {
	expenses, err := s.store.ListActiveExpenses(ctx, circle.ID, models.ExpenseFilter{})
	if err != nil {
		return nil, err
	}
	return calculator.ComputeBalances(expenses, circle.Members), nil
}

// memberCircle loads the circle and checks that actor is on its roster.
func (s *Service) memberCircle(ctx context.Context, actor, circleID string) (*models.Circle, error) {
	circle, err := s.store.GetCircle(ctx, circleID)
	if err != nil {
		return nil, err
	}
	if !circle.IsMember(actor) {
		return nil, models.Denied("member %s is not in circle %s", actor, circleID)
	}
	return circle, nil
}

// publish delivers an event after commit. A failed publish is logged and
// never fails the operation: the ledger is the source of truth.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish ledger event",
			"type", event.Type,
			"expense_id", event.ExpenseID,
			"error", err,
		)
	}
}

// observe records the outcome of an operation. Invariant violations are
// logged as critical here so no call site can swallow them.
func (s *Service) observe(ctx context.Context, operation string, start time.Time, errp *error) {
	err := *errp
	s.metrics.Observe(operation, start, err)

	if models.IsInvariantViolation(err) {
		s.logger.ErrorContext(ctx, "Ledger invariant violated",
			"operation", operation,
			"critical", true,
			"error", err,
		)
	}
}
