package models

import "time"

// SplitType selects how an expense total is divided among participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly; the remainder goes to the first participants.
	SplitEqual SplitType = "equal"
	// SplitFixed takes each participant's share verbatim from the caller.
	SplitFixed SplitType = "fixed"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	return t == SplitEqual || t == SplitFixed
}

// ExpenseStatus is the lifecycle state of an expense.
type ExpenseStatus string

const (
	StatusActive ExpenseStatus = "active"
	StatusVoid   ExpenseStatus = "void"
)

// DateLayout is the calendar date format used for OccurredOn.
const DateLayout = "2006-01-02"

// Expense represents one shared outlay inside a circle.
// It is created by append and only ever mutated by voiding.
type Expense struct {
	// ID is the unique identifier for the expense (UUIDv7, time ordered).
	ID string

	// CircleID is the circle whose ledger owns this expense.
	CircleID string

	// Title is the human-readable name of the outlay (e.g., "Trip", "Groceries").
	Title string

	// AmountYen is the total amount in minor currency units. Always positive.
	AmountYen int64

	// SplitType records how Shares were derived from AmountYen.
	SplitType SplitType

	// OccurredOn is the calendar date of the outlay (UTC midnight).
	OccurredOn time.Time

	// Note is an optional free-form description.
	Note string

	// PayerMemberID is the member who fronted the money.
	PayerMemberID string

	// CreatedBy is the member who recorded the expense.
	CreatedBy string

	// CreatedAt is when the expense was appended to the ledger.
	CreatedAt time.Time

	// Status is active until the expense is voided.
	Status ExpenseStatus

	// VoidedAt and VoidedByMemberID are set together when the expense is voided.
	VoidedAt         *time.Time
	VoidedByMemberID string

	// ReplacesExpenseID points to the voided expense this one supersedes.
	ReplacesExpenseID string

	// ReplacedByExpenseID is set on a voided expense once a replacement exists.
	ReplacedByExpenseID string

	// Shares are the participants' portions, in participant order.
	Shares []ExpenseShare
}

// ExpenseShare is one participant's portion of one expense.
type ExpenseShare struct {
	MemberID string

	// MemberSnapshotName is the roster display name captured at creation.
	// Later renames do not change it.
	MemberSnapshotName string

	ShareYen int64
}

// IsActive reports whether the expense currently counts toward balances.
func (e *Expense) IsActive() bool {
	return e.Status == StatusActive
}

// ShareTotal sums the shares of the expense.
func (e *Expense) ShareTotal() int64 {
	var total int64
	for _, s := range e.Shares {
		total += s.ShareYen
	}
	return total
}

// ExpenseOrder selects the ordering of expense listings.
type ExpenseOrder string

const (
	// OrderCreatedDesc is the default: most recently recorded first, ties by id descending.
	OrderCreatedDesc ExpenseOrder = "created_desc"
	OrderCreatedAsc  ExpenseOrder = "created_asc"
	// OrderOccurredDesc sorts by the outlay date, then by creation.
	OrderOccurredDesc ExpenseOrder = "occurred_desc"
)

// ExpenseFilter narrows an expense listing. The zero value lists every active
// expense of the circle in the default order.
type ExpenseFilter struct {
	PayerMemberID string
	OccurredFrom  *time.Time
	OccurredTo    *time.Time
	Order         ExpenseOrder
	Limit         int

	// IncludeVoid returns voided expenses too (audit view).
	IncludeVoid bool
}
