package sqlite

import (
	"context"
	"database/sql"

	"github.com/mmynk/circleledger/internal/models"
)

// maxChainLength bounds correction chain walks. A longer chain can only come
// from a link cycle.
const maxChainLength = 1000

// CorrectionChain returns every version of the expense that expenseID belongs
// to, oldest first, read from a single snapshot.
func (s *SQLiteStore) CorrectionChain(ctx context.Context, expenseID string) ([]*models.Expense, error) {
	var chain []*models.Expense
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		var err error
		chain, err = walkChain(ctx, tx, expenseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return chain, nil
}

func walkChain(ctx context.Context, q queryer, expenseID string) ([]*models.Expense, error) {
	start, err := getExpense(ctx, q, expenseID)
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{start.ID: true}
	var back []*models.Expense
	for cur := start; cur.ReplacesExpenseID != ""; {
		prev, err := chainStep(ctx, q, cur, cur.ReplacesExpenseID, seen)
		if err != nil {
			return nil, err
		}
		if prev.ReplacedByExpenseID != cur.ID {
			return nil, models.NewInvariantViolation("expense %s replaces %s, which is replaced by %q",
				cur.ID, prev.ID, prev.ReplacedByExpenseID)
		}
		back = append(back, prev)
		cur = prev
	}

	chain := make([]*models.Expense, 0, len(back)+1)
	for i := len(back) - 1; i >= 0; i-- {
		chain = append(chain, back[i])
	}
	chain = append(chain, start)

	for cur := start; cur.ReplacedByExpenseID != ""; {
		next, err := chainStep(ctx, q, cur, cur.ReplacedByExpenseID, seen)
		if err != nil {
			return nil, err
		}
		if next.ReplacesExpenseID != cur.ID {
			return nil, models.NewInvariantViolation("expense %s is replaced by %s, which replaces %q",
				cur.ID, next.ID, next.ReplacesExpenseID)
		}
		chain = append(chain, next)
		cur = next
	}

	return chain, nil
}

func chainStep(ctx context.Context, q queryer, from *models.Expense, id string, seen map[string]bool) (*models.Expense, error) {
	if seen[id] || len(seen) >= maxChainLength {
		return nil, models.NewInvariantViolation("correction chain through %s loops", from.ID)
	}
	seen[id] = true

	next, err := getExpense(ctx, q, id)
	if models.IsNotFound(err) {
		return nil, models.NewInvariantViolation("expense %s links to missing expense %s", from.ID, id)
	}
	if err != nil {
		return nil, err
	}
	if next.CircleID != from.CircleID {
		return nil, models.NewInvariantViolation("expense %s links across circles to %s", from.ID, id)
	}
	return next, nil
}

// checkReplacement verifies a replacement as written, before its transaction
// commits.
func checkReplacement(voided, stored *models.Expense) error {
	if voided.ReplacedByExpenseID != stored.ID || stored.ReplacesExpenseID != voided.ID {
		return models.NewInvariantViolation("replacement links of %s and %s disagree", voided.ID, stored.ID)
	}
	if voided.IsActive() || !stored.IsActive() {
		return models.NewInvariantViolation("replacement of %s left statuses %s and %s",
			voided.ID, voided.Status, stored.Status)
	}
	if total := stored.ShareTotal(); total != stored.AmountYen {
		return models.NewInvariantViolation("shares of replacement %s sum to %d, amount is %d",
			stored.ID, total, stored.AmountYen)
	}
	return nil
}
