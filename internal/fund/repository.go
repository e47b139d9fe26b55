package fund

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Repository handles fund transaction persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new fund repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new fund transaction
func (r *Repository) Create(ctx context.Context, txType TransactionType, amount decimal.Decimal, description string, meetingID, createdBy *uuid.UUID) (*Transaction, error) {
	query := `
		INSERT INTO fund_transactions (id, type, amount, description, meeting_id, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, type, amount, description, meeting_id, created_by, created_at
	`

	tx := &Transaction{}
	var amountStr string
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		txType,
		amount.StringFixed(2),
		description,
		meetingID,
		createdBy,
	).Scan(
		&tx.ID,
		&tx.Type,
		&amountStr,
		&tx.Description,
		&tx.MeetingID,
		&tx.CreatedBy,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create fund transaction: %w", err)
	}

	tx.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fund amount: %w", err)
	}

	return tx, nil
}

// List retrieves fund transactions with pagination, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Transaction, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM fund_transactions`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count fund transactions: %w", err)
	}

	query := `
		SELECT id, type, amount, description, meeting_id, created_by, created_at
		FROM fund_transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fund transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*Transaction
	for rows.Next() {
		tx := &Transaction{}
		var amountStr string
		if err := rows.Scan(
			&tx.ID,
			&tx.Type,
			&amountStr,
			&tx.Description,
			&tx.MeetingID,
			&tx.CreatedBy,
			&tx.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan fund transaction: %w", err)
		}
		tx.Amount, err = decimal.NewFromString(amountStr)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse fund amount: %w", err)
		}
		transactions = append(transactions, tx)
	}

	return transactions, total, nil
}

// Balance computes the current reserve balance: deposits minus withdrawals
func (r *Repository) Balance(ctx context.Context) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'DEPOSIT' THEN amount ELSE -amount END), 0)
		FROM fund_transactions
	`

	var balanceStr string
	if err := r.db.QueryRowContext(ctx, query).Scan(&balanceStr); err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute fund balance: %w", err)
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to parse fund balance: %w", err)
	}

	return balance, nil
}
