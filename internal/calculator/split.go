package calculator

import (
	"github.com/mmynk/circleledger/internal/models"
)

// MaxAmountYen caps a single expense so balance sums stay within int64.
const MaxAmountYen int64 = 1_000_000_000_000

// Share is one participant's computed portion of an expense.
type Share struct {
	MemberID string
	ShareYen int64
}

// ComputeShares splits amountYen among participants and returns one share per
// participant, in participant order. The shares always sum exactly to amountYen.
//
// Algorithm:
//   - equal: every participant gets amount / n; the remainder (amount mod n) is
//     handed out one unit at a time to the first participants in the given order
//   - fixed: fixedShares is taken verbatim after checking it covers exactly the
//     participants, has no negative entry and sums to amountYen
func ComputeShares(amountYen int64, splitType models.SplitType, participants []string, fixedShares map[string]int64) ([]Share, error) {
	if amountYen <= 0 {
		return nil, models.NewValidationError(models.CodeNonPositiveAmount, "amount must be positive, got %d", amountYen)
	}
	if amountYen > MaxAmountYen {
		return nil, models.NewValidationError(models.CodeInvalidInput, "amount %d exceeds the maximum of %d", amountYen, MaxAmountYen)
	}
	if len(participants) == 0 {
		return nil, models.NewValidationError(models.CodeNoParticipants, "must have at least one participant")
	}

	seen := make(map[string]bool, len(participants))
	for _, p := range participants {
		if p == "" {
			return nil, models.NewValidationError(models.CodeInvalidInput, "participant id cannot be empty")
		}
		if seen[p] {
			return nil, models.NewValidationError(models.CodeDuplicateParticipant, "participant %s listed more than once", p)
		}
		seen[p] = true
	}

	switch splitType {
	case models.SplitEqual:
		return equalShares(amountYen, participants), nil
	case models.SplitFixed:
		return fixedSharesFor(amountYen, participants, fixedShares)
	default:
		return nil, models.NewValidationError(models.CodeInvalidSplitType, "unknown split type %q", splitType)
	}
}

func equalShares(amountYen int64, participants []string) []Share {
	n := int64(len(participants))
	base := amountYen / n
	remainder := amountYen % n

	shares := make([]Share, len(participants))
	for i, p := range participants {
		share := base
		if int64(i) < remainder {
			share++
		}
		shares[i] = Share{MemberID: p, ShareYen: share}
	}
	return shares
}

func fixedSharesFor(amountYen int64, participants []string, fixed map[string]int64) ([]Share, error) {
	if len(fixed) != len(participants) {
		return nil, models.NewValidationError(models.CodeAmountMismatch,
			"fixed shares must name exactly the %d participants, got %d entries", len(participants), len(fixed))
	}

	shares := make([]Share, len(participants))
	var sum int64
	for i, p := range participants {
		share, ok := fixed[p]
		if !ok {
			return nil, models.NewValidationError(models.CodeAmountMismatch, "missing fixed share for participant %s", p)
		}
		if share < 0 {
			return nil, models.NewValidationError(models.CodeAmountMismatch, "share for %s is negative: %d", p, share)
		}
		// sum never exceeds amountYen, so this cannot overflow.
		if share > amountYen-sum {
			return nil, models.NewValidationError(models.CodeAmountMismatch,
				"fixed shares exceed amount %d at participant %s", amountYen, p)
		}
		sum += share
		shares[i] = Share{MemberID: p, ShareYen: share}
	}

	if sum != amountYen {
		return nil, models.NewValidationError(models.CodeAmountMismatch, "fixed shares sum to %d, amount is %d", sum, amountYen)
	}
	return shares, nil
}
