package models

// MemberBalance is one member's position across the active expenses of a circle.
// It is derived on every query and never stored.
type MemberBalance struct {
	MemberID    string
	DisplayName string

	// PaidYen sums AmountYen of active expenses the member paid for.
	PaidYen int64

	// OwedYen sums ShareYen of active expenses the member participates in.
	OwedYen int64

	// NetYen is PaidYen - OwedYen. Positive = the group owes the member,
	// negative = the member owes the group.
	NetYen int64
}

// SettlementSuggestion is a proposed transfer from a debtor to a creditor.
type SettlementSuggestion struct {
	FromMemberID string
	ToMemberID   string
	AmountYen    int64
}
