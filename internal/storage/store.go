// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/mmynk/circleledger/internal/models"
)

// Store defines the interface for ledger storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ExpenseStore
	CircleStore

	// Close releases any resources held by the store.
	Close() error
}

// ExpenseStore is the append-only expense ledger.
//
// Every mutating method runs in a single transaction: either the whole change
// is visible afterwards or none of it is. Expenses are never hard-deleted.
type ExpenseStore interface {
	// AppendExpense persists a new expense together with its shares.
	// The expense.ID and expense.CreatedAt fields are populated by the store
	// when empty, and Status is forced to active.
	AppendExpense(ctx context.Context, expense *models.Expense) error

	// VoidExpense marks an active expense void and returns the updated record.
	// Returns a NotFoundError if the expense does not exist and a
	// ConflictError(ALREADY_VOID) if it is already void, including when a
	// concurrent caller voided it first.
	VoidExpense(ctx context.Context, expenseID, voidedBy string, voidedAt time.Time) (*models.Expense, error)

	// ReplaceExpense appends replacement (linked to oldID) and voids oldID
	// (linked to the replacement) atomically. It returns the voided record and
	// the stored replacement. Errors are those of VoidExpense and AppendExpense,
	// plus an InvariantViolation, with nothing written, if the stored pair does
	// not link up.
	ReplaceExpense(ctx context.Context, oldID, voidedBy string, voidedAt time.Time, replacement *models.Expense) (*models.Expense, *models.Expense, error)

	// GetExpense retrieves an expense by its ID, shares included.
	// Returns a NotFoundError if the expense is not found.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// CorrectionChain returns every version of the expense expenseID belongs
	// to, oldest first, from one consistent read. Returns a NotFoundError if
	// expenseID is unknown and an InvariantViolation for broken links.
	CorrectionChain(ctx context.Context, expenseID string) ([]*models.Expense, error)

	// ListActiveExpenses returns the active expenses of a circle.
	// filter.IncludeVoid is ignored.
	ListActiveExpenses(ctx context.Context, circleID string, filter models.ExpenseFilter) ([]*models.Expense, error)

	// ListExpenses returns expenses of a circle honoring filter.IncludeVoid.
	ListExpenses(ctx context.Context, circleID string, filter models.ExpenseFilter) ([]*models.Expense, error)
}

// CircleStore holds circles and their rosters.
type CircleStore interface {
	// CreateCircle persists a new circle with its initial roster.
	// The circle.ID and CreatedAt fields are populated by the store when empty.
	CreateCircle(ctx context.Context, circle *models.Circle) error

	// GetCircle retrieves a circle by ID with its roster in join order.
	// Returns a NotFoundError if the circle is not found.
	GetCircle(ctx context.Context, circleID string) (*models.Circle, error)

	// AddCircleMember appends a member to the roster.
	// Returns a ConflictError(MEMBER_EXISTS) if the member is already present.
	AddCircleMember(ctx context.Context, circleID string, member models.Member) error
}
