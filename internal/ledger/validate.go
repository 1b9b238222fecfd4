package ledger

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/circleledger/internal/calculator"
	"github.com/mmynk/circleledger/internal/models"
)

// ExpenseInput is a request to record an expense, or the corrected values for
// a replacement.
type ExpenseInput struct {
	// CircleID is ignored for replacements, which always stay in the circle of
	// the expense they replace.
	CircleID string

	Title         string           `validate:"required,max=200"`
	AmountYen     int64            // checked by the split calculator
	SplitType     models.SplitType // checked by the split calculator
	OccurredOn    string           `validate:"required,datetime=2006-01-02"`
	Note          string           `validate:"max=2000"`
	PayerMemberID string           `validate:"required"`

	// Participants in share order. The first participants absorb the
	// remainder of an equal split.
	Participants []string

	// FixedShares maps participant to share for the fixed split type.
	FixedShares map[string]int64
}

// MemberInput adds one member to a circle roster.
type MemberInput struct {
	MemberID    string      `validate:"required,max=128"`
	DisplayName string      `validate:"required,max=100"`
	Role        models.Role `validate:"omitempty,oneof=owner admin member"`
}

// CircleInput creates a circle. The acting member becomes its owner.
type CircleInput struct {
	Name             string        `validate:"required,max=100"`
	OwnerDisplayName string        `validate:"required,max=100"`
	Members          []MemberInput `validate:"dive"`
}

func newValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// checkShape runs the struct tag rules and folds every failure into one
// ValidationError(INVALID_INPUT).
func (s *Service) checkShape(v any) error {
	err := s.validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate input: %w", err)
	}

	fields := processValidationErrors(verrs)
	parts := make([]string, 0, len(fields))
	for field, tag := range fields {
		parts = append(parts, field+" "+tag)
	}
	sort.Strings(parts)
	return models.NewValidationError(models.CodeInvalidInput, "invalid fields: %s", strings.Join(parts, ", "))
}

// processValidationErrors maps each failing field to the rule it broke.
func processValidationErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[fe.Namespace()] = fe.Tag()
	}
	return out
}

// buildExpense validates in against the circle roster and computes the
// shares. Nothing is written; the caller persists the result.
func (s *Service) buildExpense(in ExpenseInput, circle *models.Circle, actor string) (*models.Expense, error) {
	if err := s.checkShape(in); err != nil {
		return nil, err
	}

	occurredOn, err := time.Parse(models.DateLayout, in.OccurredOn)
	if err != nil {
		return nil, models.NewValidationError(models.CodeInvalidInput, "occurred_on %q is not a date", in.OccurredOn)
	}

	shares, err := calculator.ComputeShares(in.AmountYen, in.SplitType, in.Participants, in.FixedShares)
	if err != nil {
		return nil, err
	}

	if !circle.IsMember(in.PayerMemberID) {
		return nil, models.NotFound("member", in.PayerMemberID)
	}

	expense := &models.Expense{
		CircleID:      circle.ID,
		Title:         in.Title,
		AmountYen:     in.AmountYen,
		SplitType:     in.SplitType,
		OccurredOn:    occurredOn,
		Note:          in.Note,
		PayerMemberID: in.PayerMemberID,
		CreatedBy:     actor,
		Shares:        make([]models.ExpenseShare, len(shares)),
	}
	for i, share := range shares {
		member, ok := circle.Member(share.MemberID)
		if !ok {
			return nil, models.NotFound("member", share.MemberID)
		}
		expense.Shares[i] = models.ExpenseShare{
			MemberID:           share.MemberID,
			MemberSnapshotName: member.DisplayName,
			ShareYen:           share.ShareYen,
		}
	}

	if expense.ShareTotal() != expense.AmountYen {
		return nil, models.NewInvariantViolation("shares of %q sum to %d, amount is %d",
			expense.Title, expense.ShareTotal(), expense.AmountYen)
	}
	return expense, nil
}
