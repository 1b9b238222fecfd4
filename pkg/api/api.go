// Package api defines the JSON messages of the circleledger.v1 Connect
// services. Bindings for handlers and clients live in apiconnect.
package api

import "time"

// ExpenseDraft carries the caller-supplied fields of a new or corrected
// expense.
type ExpenseDraft struct {
	Title         string           `json:"title"`
	AmountYen     int64            `json:"amount_yen"`
	SplitType     string           `json:"split_type"`
	OccurredOn    string           `json:"occurred_on"`
	Note          string           `json:"note,omitempty"`
	PayerMemberID string           `json:"payer_member_id"`
	Participants  []string         `json:"participants"`
	FixedShares   map[string]int64 `json:"fixed_shares,omitempty"`
}

type ExpenseShare struct {
	MemberID           string `json:"member_id"`
	MemberSnapshotName string `json:"member_snapshot_name"`
	ShareYen           int64  `json:"share_yen"`
}

type Expense struct {
	ID                  string         `json:"id"`
	CircleID            string         `json:"circle_id"`
	Title               string         `json:"title"`
	AmountYen           int64          `json:"amount_yen"`
	SplitType           string         `json:"split_type"`
	OccurredOn          string         `json:"occurred_on"`
	Note                string         `json:"note,omitempty"`
	PayerMemberID       string         `json:"payer_member_id"`
	CreatedBy           string         `json:"created_by"`
	CreatedAt           time.Time      `json:"created_at"`
	Status              string         `json:"status"`
	VoidedAt            *time.Time     `json:"voided_at,omitempty"`
	VoidedByMemberID    string         `json:"voided_by_member_id,omitempty"`
	ReplacesExpenseID   string         `json:"replaces_expense_id,omitempty"`
	ReplacedByExpenseID string         `json:"replaced_by_expense_id,omitempty"`
	Shares              []ExpenseShare `json:"shares"`
}

type MemberBalance struct {
	MemberID    string `json:"member_id"`
	DisplayName string `json:"display_name"`
	PaidYen     int64  `json:"paid_yen"`
	OwedYen     int64  `json:"owed_yen"`
	NetYen      int64  `json:"net_yen"`
}

type SettlementSuggestion struct {
	FromMemberID string `json:"from_member_id"`
	ToMemberID   string `json:"to_member_id"`
	AmountYen    int64  `json:"amount_yen"`
}

type Member struct {
	MemberID    string    `json:"member_id"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role,omitempty"`
	JoinedAt    time.Time `json:"joined_at,omitzero"`
}

type Circle struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Members   []Member  `json:"members"`
	CreatedAt time.Time `json:"created_at"`
}

type RecordExpenseRequest struct {
	CircleID string       `json:"circle_id"`
	Expense  ExpenseDraft `json:"expense"`
}

type RecordExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type VoidExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type VoidExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type VoidAndReplaceRequest struct {
	ExpenseID   string       `json:"expense_id"`
	Replacement ExpenseDraft `json:"replacement"`
}

type VoidAndReplaceResponse struct {
	Voided      *Expense `json:"voided"`
	Replacement *Expense `json:"replacement"`
}

type GetExpenseRequest struct {
	ExpenseID string `json:"expense_id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

// ListExpensesRequest lists a circle's expenses. OccurredFrom and OccurredTo
// are inclusive YYYY-MM-DD bounds; Order is one of created_desc (default),
// created_asc or occurred_desc.
type ListExpensesRequest struct {
	CircleID      string `json:"circle_id"`
	PayerMemberID string `json:"payer_member_id,omitempty"`
	OccurredFrom  string `json:"occurred_from,omitempty"`
	OccurredTo    string `json:"occurred_to,omitempty"`
	Order         string `json:"order,omitempty"`
	Limit         int    `json:"limit,omitempty"`
	IncludeVoid   bool   `json:"include_void,omitempty"`
}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type GetBalancesRequest struct {
	CircleID string `json:"circle_id"`
}

type GetBalancesResponse struct {
	Balances []MemberBalance `json:"balances"`
}

type GetSuggestionsRequest struct {
	CircleID string `json:"circle_id"`
}

type GetSuggestionsResponse struct {
	Suggestions []SettlementSuggestion `json:"suggestions"`
	Balances    []MemberBalance        `json:"balances"`
}

type GetCorrectionChainRequest struct {
	ExpenseID string `json:"expense_id"`
}

// GetCorrectionChainResponse lists every version of an expense, oldest first.
type GetCorrectionChainResponse struct {
	Chain []*Expense `json:"chain"`
}

type CreateCircleRequest struct {
	Name             string   `json:"name"`
	OwnerDisplayName string   `json:"owner_display_name"`
	Members          []Member `json:"members,omitempty"`
}

type CreateCircleResponse struct {
	Circle *Circle `json:"circle"`
}

type GetCircleRequest struct {
	CircleID string `json:"circle_id"`
}

type GetCircleResponse struct {
	Circle *Circle `json:"circle"`
}

type AddMemberRequest struct {
	CircleID string `json:"circle_id"`
	Member   Member `json:"member"`
}

type AddMemberResponse struct {
	Circle *Circle `json:"circle"`
}
