package calculator

import (
	"sort"

	"github.com/mmynk/circleledger/internal/models"
)

// ComputeBalances folds expenses into one MemberBalance per roster member.
//
// Algorithm:
//   - For each active expense: the payer's paid total grows by the full amount
//   - Each share adds its amount to that member's owed total
//   - net = paid - owed, derived here and never stored
//
// Void expenses are skipped, so callers may pass either the active subset or
// the full ledger. Roster members without activity are reported with zeros in
// roster order. Members that appear in expenses but not in the roster are
// appended sorted by id, which keeps the balance vector closed.
func ComputeBalances(expenses []*models.Expense, roster []models.Member) []models.MemberBalance {
	balances := make(map[string]*models.MemberBalance, len(roster))
	order := make([]string, 0, len(roster))

	for _, m := range roster {
		if _, exists := balances[m.MemberID]; exists {
			continue
		}
		balances[m.MemberID] = &models.MemberBalance{MemberID: m.MemberID, DisplayName: m.DisplayName}
		order = append(order, m.MemberID)
	}

	var extras []string
	entry := func(memberID, name string) *models.MemberBalance {
		if bal, exists := balances[memberID]; exists {
			return bal
		}
		bal := &models.MemberBalance{MemberID: memberID, DisplayName: name}
		balances[memberID] = bal
		extras = append(extras, memberID)
		return bal
	}

	for _, e := range expenses {
		if !e.IsActive() {
			continue
		}

		payerName := ""
		for _, s := range e.Shares {
			if s.MemberID == e.PayerMemberID {
				payerName = s.MemberSnapshotName
				break
			}
		}
		entry(e.PayerMemberID, payerName).PaidYen += e.AmountYen

		for _, s := range e.Shares {
			entry(s.MemberID, s.MemberSnapshotName).OwedYen += s.ShareYen
		}
	}

	sort.Strings(extras)
	order = append(order, extras...)

	result := make([]models.MemberBalance, len(order))
	for i, id := range order {
		bal := balances[id]
		bal.NetYen = bal.PaidYen - bal.OwedYen
		result[i] = *bal
	}
	return result
}
