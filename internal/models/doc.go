// Package models defines the core domain models for the circle ledger.
//
// # Stored models
//
//   - Expense: one shared outlay recorded in a circle's ledger
//   - ExpenseShare: one participant's portion of an expense
//   - Circle, Member: the closed membership group and its roster
//
// # Derived models
//
// MemberBalance and SettlementSuggestion are computed on every read and never
// persisted. Balances are folded from the active expenses of a circle, and
// suggestions are derived from those balances.
//
// # Immutability
//
// Expenses are never edited in place. A correction voids the old expense and
// appends a replacement that points back at it through ReplacesExpenseID, while
// the voided expense points forward through ReplacedByExpenseID.
//
// # Relationships
//
// Models reference each other by ID strings rather than pointers.
package models
