package ledger

import (
	"context"
	"time"

	"github.com/mmynk/circleledger/internal/events"
	"github.com/mmynk/circleledger/internal/models"
)

// VoidExpense removes an active expense from balances. The record stays in
// the ledger as void.
func (s *Service) VoidExpense(ctx context.Context, actor, expenseID string) (voided *models.Expense, err error) {
	defer s.observe(ctx, opVoidExpense, time.Now(), &err)

	if _, err := s.correctable(ctx, actor, expenseID); err != nil {
		return nil, err
	}

	voided, err = s.store.VoidExpense(ctx, expenseID, actor, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Expense voided",
		"circle_id", voided.CircleID,
		"expense_id", voided.ID,
		"voided_by", actor,
	)
	s.publish(ctx, events.Event{
		Type:          events.ExpenseVoided,
		CircleID:      voided.CircleID,
		ExpenseID:     voided.ID,
		AmountYen:     voided.AmountYen,
		ActorMemberID: actor,
	})

	return voided, nil
}

// VoidAndReplace corrects an expense: the replacement built from in is
// appended and the old expense is voided, linked both ways, atomically.
//
// The input is fully validated before anything is written. in.CircleID is
// ignored; the replacement stays in the old expense's circle.
func (s *Service) VoidAndReplace(ctx context.Context, actor, oldID string, in ExpenseInput) (voided, replacement *models.Expense, err error) {
	defer s.observe(ctx, opVoidAndReplace, time.Now(), &err)

	old, err := s.correctable(ctx, actor, oldID)
	if err != nil {
		return nil, nil, err
	}

	circle, err := s.store.GetCircle(ctx, old.CircleID)
	if err != nil {
		return nil, nil, err
	}

	in.CircleID = old.CircleID
	replacement, err = s.buildExpense(in, circle, actor)
	if err != nil {
		return nil, nil, err
	}

	voided, replacement, err = s.store.ReplaceExpense(ctx, oldID, actor, s.now().UTC(), replacement)
	if err != nil {
		return nil, nil, err
	}

	s.logger.InfoContext(ctx, "Expense replaced",
		"circle_id", voided.CircleID,
		"expense_id", voided.ID,
		"replacement_id", replacement.ID,
		"voided_by", actor,
	)
	s.publish(ctx, events.Event{
		Type:          events.ExpenseReplaced,
		CircleID:      voided.CircleID,
		ExpenseID:     voided.ID,
		ReplacementID: replacement.ID,
		AmountYen:     replacement.AmountYen,
		ActorMemberID: actor,
	})

	return voided, replacement, nil
}

// CorrectionChain returns every version of the expense that expenseID belongs
// to, oldest first. The last element is the current version unless the whole
// chain was voided.
func (s *Service) CorrectionChain(ctx context.Context, actor, expenseID string) (chain []*models.Expense, err error) {
	defer s.observe(ctx, opCorrectionChain, time.Now(), &err)

	chain, err = s.store.CorrectionChain(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if _, err := s.memberCircle(ctx, actor, chain[0].CircleID); err != nil {
		return nil, err
	}
	return chain, nil
}

// correctable loads an expense and checks that it is active and that actor
// may correct it.
func (s *Service) correctable(ctx context.Context, actor, expenseID string) (*models.Expense, error) {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	circle, err := s.memberCircle(ctx, actor, expense.CircleID)
	if err != nil {
		return nil, err
	}
	if !canCorrect(circle, expense, actor) {
		return nil, models.Denied("member %s may not correct expense %s", actor, expense.ID)
	}

	if !expense.IsActive() {
		return nil, models.NewConflictError(models.CodeAlreadyVoid, "expense %s is already void", expense.ID)
	}
	return expense, nil
}

// canCorrect allows the payer, the recorder, and circle owners and admins.
func canCorrect(circle *models.Circle, expense *models.Expense, actor string) bool {
	return actor == expense.PayerMemberID || actor == expense.CreatedBy || circle.CanManage(actor)
}
