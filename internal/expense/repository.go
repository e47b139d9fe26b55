package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/expense/split"
)

// Repository handles expense and share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateExpense inserts a new expense into the database
func (r *Repository) CreateExpense(ctx context.Context, meetingID, paidByID uuid.UUID, description string, totalAmount float64, splitType split.SplitType) (*Expense, error) {
	query := `
		INSERT INTO expenses (id, meeting_id, paid_by, description, total_amount, split_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, meeting_id, paid_by, description, total_amount, split_type, created_at
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		meetingID,
		paidByID,
		description,
		totalAmount,
		splitType,
	).Scan(
		&expense.ID,
		&expense.MeetingID,
		&expense.PaidByID,
		&expense.Description,
		&expense.TotalAmount,
		&expense.SplitType,
		&expense.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return expense, nil
}

// CreateShare inserts one split row for an expense
func (r *Repository) CreateShare(ctx context.Context, expenseID, participantID uuid.UUID, amount *float64) (*ShareRow, error) {
	query := `
		INSERT INTO expense_shares (expense_id, participant_id, amount)
		VALUES ($1, $2, $3)
		RETURNING expense_id, participant_id, amount
	`

	share := &ShareRow{}
	err := r.db.QueryRowContext(ctx, query, expenseID, participantID, amount).Scan(
		&share.ExpenseID,
		&share.ParticipantID,
		&share.Amount,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create share: %w", err)
	}

	return share, nil
}

// GetExpenseByID retrieves an expense by its ID
func (r *Repository) GetExpenseByID(ctx context.Context, id uuid.UUID) (*Expense, error) {
	query := `
		SELECT e.id, e.meeting_id, e.paid_by, e.description, e.total_amount, e.split_type, e.created_at, p.display_name
		FROM expenses e
		JOIN meeting_participants p ON e.paid_by = p.id
		WHERE e.id = $1
	`

	expense := &Expense{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&expense.ID,
		&expense.MeetingID,
		&expense.PaidByID,
		&expense.Description,
		&expense.TotalAmount,
		&expense.SplitType,
		&expense.CreatedAt,
		&expense.PayerName,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return expense, nil
}

// GetSharesByExpenseID retrieves all split rows for an expense
func (r *Repository) GetSharesByExpenseID(ctx context.Context, expenseID uuid.UUID) ([]*ShareRow, error) {
	query := `
		SELECT s.expense_id, s.participant_id, s.amount, p.display_name
		FROM expense_shares s
		JOIN meeting_participants p ON s.participant_id = p.id
		WHERE s.expense_id = $1
		ORDER BY p.created_at, p.id
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*ShareRow
	for rows.Next() {
		share := &ShareRow{}
		if err := rows.Scan(
			&share.ExpenseID,
			&share.ParticipantID,
			&share.Amount,
			&share.ParticipantName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// ListExpensesByMeetingID retrieves expenses for a meeting with pagination
func (r *Repository) ListExpensesByMeetingID(ctx context.Context, meetingID uuid.UUID, limit, offset int) ([]*Expense, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM expenses WHERE meeting_id = $1`
	if err := r.db.QueryRowContext(ctx, countQuery, meetingID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	query := `
		SELECT e.id, e.meeting_id, e.paid_by, e.description, e.total_amount, e.split_type, e.created_at, p.display_name
		FROM expenses e
		JOIN meeting_participants p ON e.paid_by = p.id
		WHERE e.meeting_id = $1
		ORDER BY e.created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, meetingID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.MeetingID,
			&expense.PaidByID,
			&expense.Description,
			&expense.TotalAmount,
			&expense.SplitType,
			&expense.CreatedAt,
			&expense.PayerName,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}

	return expenses, total, nil
}

// ListAllByMeetingID retrieves a meeting's full expense list with their
// split rows, oldest first. This is the snapshot the settlement engine
// computes over.
func (r *Repository) ListAllByMeetingID(ctx context.Context, meetingID uuid.UUID) ([]*ExpenseWithShares, error) {
	query := `
		SELECT id, meeting_id, paid_by, description, total_amount, split_type, created_at
		FROM expenses
		WHERE meeting_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*ExpenseWithShares
	for rows.Next() {
		expense := &Expense{}
		if err := rows.Scan(
			&expense.ID,
			&expense.MeetingID,
			&expense.PaidByID,
			&expense.Description,
			&expense.TotalAmount,
			&expense.SplitType,
			&expense.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, &ExpenseWithShares{Expense: expense})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}

	for _, e := range expenses {
		shares, err := r.getSharesBare(ctx, e.Expense.ID)
		if err != nil {
			return nil, err
		}
		e.Shares = shares
	}

	return expenses, nil
}

// getSharesBare loads split rows without the display-name JOIN
func (r *Repository) getSharesBare(ctx context.Context, expenseID uuid.UUID) ([]*ShareRow, error) {
	query := `
		SELECT expense_id, participant_id, amount
		FROM expense_shares
		WHERE expense_id = $1
	`

	rows, err := r.db.QueryContext(ctx, query, expenseID)
	if err != nil {
		return nil, fmt.Errorf("failed to get shares: %w", err)
	}
	defer rows.Close()

	var shares []*ShareRow
	for rows.Next() {
		share := &ShareRow{}
		if err := rows.Scan(&share.ExpenseID, &share.ParticipantID, &share.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan share: %w", err)
		}
		shares = append(shares, share)
	}

	return shares, nil
}

// ListParticipantIDs returns the roster ids for a meeting, used to validate
// split references before anything is persisted
func (r *Repository) ListParticipantIDs(ctx context.Context, meetingID uuid.UUID) (map[uuid.UUID]bool, error) {
	query := `SELECT id FROM meeting_participants WHERE meeting_id = $1`

	rows, err := r.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to list participant ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan participant id: %w", err)
		}
		ids[id] = true
	}

	return ids, nil
}

// DeleteExpense deletes an expense and its split rows
func (r *Repository) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	// Delete shares first (foreign key constraint)
	_, err := r.db.ExecContext(ctx, `DELETE FROM expense_shares WHERE expense_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete shares: %w", err)
	}

	result, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrExpenseNotFound
	}

	return nil
}
