package calculator

import (
	"sort"

	"github.com/mmynk/circleledger/internal/models"
)

type position struct {
	memberID  string
	remaining int64 // always positive: credit for creditors, debt for debtors
}

// SuggestSettlements turns a closed balance vector into settling transfers.
//
// Algorithm (greedy minimum cash flow):
//   - Split members into creditors (net > 0) and debtors (net < 0); zeros drop out
//   - Pair the largest remaining creditor with the largest remaining debtor,
//     ties broken by lowest member id
//   - Transfer min(credit, debt) from the debtor to the creditor
//   - Repeat until nothing remains; every step zeroes at least one side, so
//     there are at most nonzero-1 transfers
//
// This is the standard greedy approximation, not an exact minimum-transaction
// search. Swapping in an exact solver does not change this signature.
//
// The result is sorted by amount descending, then from, then to. A vector that
// does not conserve (sum of nets != 0), whose nets disagree with paid-owed, or
// that repeats a member fails with an InvariantViolation.
func SuggestSettlements(balances []models.MemberBalance) ([]models.SettlementSuggestion, error) {
	if err := checkConservation(balances); err != nil {
		return nil, err
	}

	var creditors, debtors []*position
	for _, b := range balances {
		switch {
		case b.NetYen > 0:
			creditors = append(creditors, &position{memberID: b.MemberID, remaining: b.NetYen})
		case b.NetYen < 0:
			debtors = append(debtors, &position{memberID: b.MemberID, remaining: -b.NetYen})
		}
	}

	var suggestions []models.SettlementSuggestion
	for {
		creditor := largest(creditors)
		debtor := largest(debtors)
		if creditor == nil || debtor == nil {
			break
		}

		amount := min(creditor.remaining, debtor.remaining)
		suggestions = append(suggestions, models.SettlementSuggestion{
			FromMemberID: debtor.memberID,
			ToMemberID:   creditor.memberID,
			AmountYen:    amount,
		})
		creditor.remaining -= amount
		debtor.remaining -= amount
	}

	// Conservation guarantees both sides drain together.
	if creditor, debtor := largest(creditors), largest(debtors); creditor != nil || debtor != nil {
		return nil, models.NewInvariantViolation("settlement left unmatched balances")
	}

	sort.Slice(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if a.AmountYen != b.AmountYen {
			return a.AmountYen > b.AmountYen
		}
		if a.FromMemberID != b.FromMemberID {
			return a.FromMemberID < b.FromMemberID
		}
		return a.ToMemberID < b.ToMemberID
	})

	return suggestions, nil
}

// largest returns the position with the biggest remaining amount, ties by
// lowest member id, or nil when all are settled.
func largest(positions []*position) *position {
	var best *position
	for _, p := range positions {
		if p.remaining == 0 {
			continue
		}
		if best == nil || p.remaining > best.remaining ||
			(p.remaining == best.remaining && p.memberID < best.memberID) {
			best = p
		}
	}
	return best
}

func checkConservation(balances []models.MemberBalance) error {
	seen := make(map[string]bool, len(balances))
	var sum int64
	for _, b := range balances {
		if seen[b.MemberID] {
			return models.NewInvariantViolation("member %s appears twice in balances", b.MemberID)
		}
		seen[b.MemberID] = true

		if b.NetYen != b.PaidYen-b.OwedYen {
			return models.NewInvariantViolation("member %s net %d != paid %d - owed %d",
				b.MemberID, b.NetYen, b.PaidYen, b.OwedYen)
		}
		sum += b.NetYen
	}
	if sum != 0 {
		return models.NewInvariantViolation("net balances sum to %d, want 0", sum)
	}
	return nil
}

// ApplySuggestions returns the balance vector after every suggested transfer
// is paid: the debtor's net rises and the creditor's falls by the amount.
func ApplySuggestions(balances []models.MemberBalance, suggestions []models.SettlementSuggestion) map[string]int64 {
	nets := make(map[string]int64, len(balances))
	for _, b := range balances {
		nets[b.MemberID] = b.NetYen
	}
	for _, s := range suggestions {
		nets[s.FromMemberID] += s.AmountYen
		nets[s.ToMemberID] -= s.AmountYen
	}
	return nets
}
