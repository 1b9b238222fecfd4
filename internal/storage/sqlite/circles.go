package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/mmynk/circleledger/internal/models"
)

// CreateCircle inserts a new circle and its initial roster.
func (s *SQLiteStore) CreateCircle(ctx context.Context, circle *models.Circle) error {
	// Generate ID if not set
	if circle.ID == "" {
		circle.ID = uuid.New().String()
	}
	if circle.CreatedAt.IsZero() {
		circle.CreatedAt = s.now().UTC()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO circles (id, name, created_at) VALUES (?, ?, ?)",
			circle.ID, circle.Name, toMillis(circle.CreatedAt),
		)
		if err != nil {
			return fmt.Errorf("failed to insert circle: %w", err)
		}

		seen := make(map[string]bool, len(circle.Members))
		for i := range circle.Members {
			member := &circle.Members[i]
			if seen[member.MemberID] {
				return models.NewConflictError(models.CodeMemberExists,
					"member %s listed twice in circle %s", member.MemberID, circle.ID)
			}
			seen[member.MemberID] = true

			if member.JoinedAt.IsZero() {
				member.JoinedAt = circle.CreatedAt
			}
			if err := insertMember(ctx, tx, circle.ID, *member, i); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetCircle retrieves a circle by ID, including its roster.
func (s *SQLiteStore) GetCircle(ctx context.Context, circleID string) (*models.Circle, error) {
	var circle *models.Circle
	err := s.withReadTx(ctx, func(tx *sql.Tx) error {
		var err error
		circle, err = getCircle(ctx, tx, circleID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return circle, nil
}

// AddCircleMember appends a member to the end of the roster.
func (s *SQLiteStore) AddCircleMember(ctx context.Context, circleID string, member models.Member) error {
	if member.JoinedAt.IsZero() {
		member.JoinedAt = s.now().UTC()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		var exists int
		err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM circles WHERE id = ?", circleID).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check circle: %w", err)
		}
		if exists == 0 {
			return models.NotFound("circle", circleID)
		}

		var present int
		err = tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM circle_members WHERE circle_id = ? AND member_id = ?",
			circleID, member.MemberID,
		).Scan(&present)
		if err != nil {
			return fmt.Errorf("failed to check membership: %w", err)
		}
		if present > 0 {
			return models.NewConflictError(models.CodeMemberExists,
				"member %s already belongs to circle %s", member.MemberID, circleID)
		}

		var position int
		err = tx.QueryRowContext(ctx,
			"SELECT COALESCE(MAX(position) + 1, 0) FROM circle_members WHERE circle_id = ?",
			circleID,
		).Scan(&position)
		if err != nil {
			return fmt.Errorf("failed to get roster position: %w", err)
		}

		return insertMember(ctx, tx, circleID, member, position)
	})
}

func insertMember(ctx context.Context, tx *sql.Tx, circleID string, member models.Member, position int) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO circle_members (circle_id, member_id, display_name, role, joined_at, position)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		circleID, member.MemberID, member.DisplayName, string(member.Role),
		toMillis(member.JoinedAt), position,
	)
	if err != nil {
		return fmt.Errorf("failed to insert circle member: %w", err)
	}
	return nil
}

func getCircle(ctx context.Context, q queryer, circleID string) (*models.Circle, error) {
	circle := &models.Circle{}
	var createdAt int64
	err := q.QueryRowContext(ctx,
		"SELECT id, name, created_at FROM circles WHERE id = ?",
		circleID,
	).Scan(&circle.ID, &circle.Name, &createdAt)
	if err == sql.ErrNoRows {
		return nil, models.NotFound("circle", circleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get circle: %w", err)
	}
	circle.CreatedAt = fromMillis(createdAt)

	rows, err := q.QueryContext(ctx,
		`SELECT member_id, display_name, role, joined_at
		 FROM circle_members WHERE circle_id = ? ORDER BY position`,
		circleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get circle members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member models.Member
		var role string
		var joinedAt int64
		if err := rows.Scan(&member.MemberID, &member.DisplayName, &role, &joinedAt); err != nil {
			return nil, fmt.Errorf("failed to scan circle member: %w", err)
		}
		member.Role = models.Role(role)
		member.JoinedAt = fromMillis(joinedAt)
		circle.Members = append(circle.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate circle members: %w", err)
	}

	return circle, nil
}
