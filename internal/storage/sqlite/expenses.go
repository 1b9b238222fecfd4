package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/circleledger/internal/models"
)

const expenseColumns = `id, circle_id, title, amount_yen, split_type, occurred_on, note,
	payer_member_id, created_by, created_at, status, voided_at, voided_by_member_id,
	replaces_expense_id, replaced_by_expense_id`

// shareBatchSize bounds the number of ids per IN clause when loading shares.
const shareBatchSize = 500

// AppendExpense persists a new expense and its shares in one transaction.
func (s *SQLiteStore) AppendExpense(ctx context.Context, expense *models.Expense) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		return s.insertExpense(ctx, tx, expense)
	})
}

// VoidExpense marks an active expense void.
func (s *SQLiteStore) VoidExpense(ctx context.Context, expenseID, voidedBy string, voidedAt time.Time) (*models.Expense, error) {
	var voided *models.Expense
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkVoidable(ctx, tx, expenseID); err != nil {
			return err
		}
		if err := markVoid(ctx, tx, expenseID, voidedBy, voidedAt, ""); err != nil {
			return err
		}

		var err error
		voided, err = getExpense(ctx, tx, expenseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return voided, nil
}

// ReplaceExpense appends the replacement and voids the old expense in one
// transaction. The old expense's status is re-checked under the write lock and
// the written pair is verified before commit.
func (s *SQLiteStore) ReplaceExpense(ctx context.Context, oldID, voidedBy string, voidedAt time.Time, replacement *models.Expense) (*models.Expense, *models.Expense, error) {
	var voided, stored *models.Expense
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		old, err := getExpense(ctx, tx, oldID)
		if err != nil {
			return err
		}
		if !old.IsActive() {
			return models.NewConflictError(models.CodeAlreadyVoid, "expense %s is already void", oldID)
		}

		if replacement.CircleID == "" {
			replacement.CircleID = old.CircleID
		}
		if replacement.CircleID != old.CircleID {
			return models.NewValidationError(models.CodeInvalidInput,
				"replacement must belong to circle %s, got %s", old.CircleID, replacement.CircleID)
		}
		replacement.ReplacesExpenseID = oldID

		if err := s.insertExpense(ctx, tx, replacement); err != nil {
			return err
		}
		if err := markVoid(ctx, tx, oldID, voidedBy, voidedAt, replacement.ID); err != nil {
			return err
		}

		if voided, err = getExpense(ctx, tx, oldID); err != nil {
			return err
		}
		if stored, err = getExpense(ctx, tx, replacement.ID); err != nil {
			return err
		}
		return checkReplacement(voided, stored)
	})
	if err != nil {
		return nil, nil, err
	}
	return voided, stored, nil
}

// GetExpense retrieves an expense by ID, including its shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	var expense *models.Expense
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		var err error
		expense, err = getExpense(ctx, tx, expenseID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return expense, nil
}

// ListActiveExpenses returns the active expenses of a circle.
func (s *SQLiteStore) ListActiveExpenses(ctx context.Context, circleID string, filter models.ExpenseFilter) ([]*models.Expense, error) {
	filter.IncludeVoid = false
	return s.ListExpenses(ctx, circleID, filter)
}

// ListExpenses returns the expenses of a circle matching filter. Expenses and
// shares are read in one snapshot.
func (s *SQLiteStore) ListExpenses(ctx context.Context, circleID string, filter models.ExpenseFilter) ([]*models.Expense, error) {
	query, args := buildListQuery(circleID, filter)

	var expenses []*models.Expense
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		defer rows.Close()

		for rows.Next() {
			expense, err := scanExpense(rows)
			if err != nil {
				return err
			}
			expenses = append(expenses, expense)
		}
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate expenses: %w", err)
		}
		rows.Close()

		return loadShares(ctx, tx, expenses)
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

func buildListQuery(circleID string, filter models.ExpenseFilter) (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT " + expenseColumns + " FROM expenses WHERE circle_id = ?")
	args := []any{circleID}

	if !filter.IncludeVoid {
		b.WriteString(" AND status = 'active'")
	}
	if filter.PayerMemberID != "" {
		b.WriteString(" AND payer_member_id = ?")
		args = append(args, filter.PayerMemberID)
	}
	if filter.OccurredFrom != nil {
		b.WriteString(" AND occurred_on >= ?")
		args = append(args, filter.OccurredFrom.Format(models.DateLayout))
	}
	if filter.OccurredTo != nil {
		b.WriteString(" AND occurred_on <= ?")
		args = append(args, filter.OccurredTo.Format(models.DateLayout))
	}

	switch filter.Order {
	case models.OrderCreatedAsc:
		b.WriteString(" ORDER BY created_at ASC, id ASC")
	case models.OrderOccurredDesc:
		b.WriteString(" ORDER BY occurred_on DESC, created_at DESC, id DESC")
	default:
		b.WriteString(" ORDER BY created_at DESC, id DESC")
	}

	if filter.Limit > 0 {
		b.WriteString(" LIMIT ?")
		args = append(args, filter.Limit)
	}
	return b.String(), args
}

func (s *SQLiteStore) insertExpense(ctx context.Context, tx *sql.Tx, expense *models.Expense) error {
	if expense.ID == "" {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate expense id: %w", err)
		}
		expense.ID = id.String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = s.now().UTC()
	}
	expense.Status = models.StatusActive
	expense.VoidedAt = nil
	expense.VoidedByMemberID = ""
	expense.ReplacedByExpenseID = ""

	_, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (id, circle_id, title, amount_yen, split_type, occurred_on, note,
			payer_member_id, created_by, created_at, status, replaces_expense_id)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.CircleID, expense.Title, expense.AmountYen, string(expense.SplitType),
		expense.OccurredOn.Format(models.DateLayout), nullString(expense.Note),
		expense.PayerMemberID, expense.CreatedBy, toMillis(expense.CreatedAt),
		string(expense.Status), nullString(expense.ReplacesExpenseID),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i, share := range expense.Shares {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_shares (expense_id, position, member_id, member_snapshot_name, share_yen)
			 VALUES (?, ?, ?, ?, ?)`,
			expense.ID, i, share.MemberID, share.MemberSnapshotName, share.ShareYen,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %w", err)
		}
	}

	return nil
}

// checkVoidable fails with NotFoundError or ConflictError(ALREADY_VOID).
func checkVoidable(ctx context.Context, q queryer, expenseID string) error {
	var status string
	err := q.QueryRowContext(ctx, "SELECT status FROM expenses WHERE id = ?", expenseID).Scan(&status)
	if err == sql.ErrNoRows {
		return models.NotFound("expense", expenseID)
	}
	if err != nil {
		return fmt.Errorf("failed to get expense status: %w", err)
	}
	if models.ExpenseStatus(status) != models.StatusActive {
		return models.NewConflictError(models.CodeAlreadyVoid, "expense %s is already void", expenseID)
	}
	return nil
}

// markVoid is the conditional transition active -> void. Zero affected rows
// means another writer got there first.
func markVoid(ctx context.Context, tx *sql.Tx, expenseID, voidedBy string, voidedAt time.Time, replacedBy string) error {
	result, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET status = 'void', voided_at = ?, voided_by_member_id = ?, replaced_by_expense_id = ?
		 WHERE id = ? AND status = 'active'`,
		toMillis(voidedAt), voidedBy, nullString(replacedBy), expenseID,
	)
	if err != nil {
		return fmt.Errorf("failed to void expense: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check void result: %w", err)
	}
	if n == 0 {
		return models.NewConflictError(models.CodeAlreadyVoid, "expense %s is already void", expenseID)
	}
	return nil
}

func getExpense(ctx context.Context, q queryer, expenseID string) (*models.Expense, error) {
	row := q.QueryRowContext(ctx, "SELECT "+expenseColumns+" FROM expenses WHERE id = ?", expenseID)
	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, models.NotFound("expense", expenseID)
	}
	if err != nil {
		return nil, err
	}

	if err := loadShares(ctx, q, []*models.Expense{expense}); err != nil {
		return nil, err
	}
	return expense, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	var (
		e          models.Expense
		splitType  string
		occurredOn string
		note       sql.NullString
		createdAt  int64
		status     string
		voidedAt   sql.NullInt64
		voidedBy   sql.NullString
		replaces   sql.NullString
		replacedBy sql.NullString
	)
	err := row.Scan(&e.ID, &e.CircleID, &e.Title, &e.AmountYen, &splitType, &occurredOn, &note,
		&e.PayerMemberID, &e.CreatedBy, &createdAt, &status, &voidedAt, &voidedBy,
		&replaces, &replacedBy)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan expense: %w", err)
	}

	occurred, err := time.Parse(models.DateLayout, occurredOn)
	if err != nil {
		return nil, fmt.Errorf("failed to parse occurred_on %q: %w", occurredOn, err)
	}

	e.SplitType = models.SplitType(splitType)
	e.OccurredOn = occurred
	e.Note = note.String
	e.CreatedAt = fromMillis(createdAt)
	e.Status = models.ExpenseStatus(status)
	if voidedAt.Valid {
		t := fromMillis(voidedAt.Int64)
		e.VoidedAt = &t
	}
	e.VoidedByMemberID = voidedBy.String
	e.ReplacesExpenseID = replaces.String
	e.ReplacedByExpenseID = replacedBy.String
	return &e, nil
}

// loadShares fills Shares for every expense, in participant order.
func loadShares(ctx context.Context, q queryer, expenses []*models.Expense) error {
	byID := make(map[string]*models.Expense, len(expenses))
	ids := make([]any, 0, len(expenses))
	for _, e := range expenses {
		byID[e.ID] = e
		ids = append(ids, e.ID)
	}

	for start := 0; start < len(ids); start += shareBatchSize {
		end := min(start+shareBatchSize, len(ids))
		batch := ids[start:end]

		rows, err := q.QueryContext(ctx,
			`SELECT expense_id, member_id, member_snapshot_name, share_yen
			 FROM expense_shares
			 WHERE expense_id IN (`+placeholders(len(batch))+`)
			 ORDER BY expense_id, position`,
			batch...,
		)
		if err != nil {
			return fmt.Errorf("failed to get expense shares: %w", err)
		}

		for rows.Next() {
			var expenseID string
			var share models.ExpenseShare
			if err := rows.Scan(&expenseID, &share.MemberID, &share.MemberSnapshotName, &share.ShareYen); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan expense share: %w", err)
			}
			if e, ok := byID[expenseID]; ok {
				e.Shares = append(e.Shares, share)
			}
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate expense shares: %w", err)
		}
	}
	return nil
}
