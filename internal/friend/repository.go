package friend

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

// Repository handles friend data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new friend repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new friend into the database
func (r *Repository) Create(ctx context.Context, req *CreateFriendRequest) (*Friend, error) {
	query := `
		INSERT INTO friends (id, name, nickname)
		VALUES ($1, $2, $3)
		RETURNING id, name, nickname, created_at
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), req.Name, req.Nickname).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Nickname,
		&friend.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create friend: %w", err)
	}

	return friend, nil
}

// GetByID retrieves a friend by their ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Friend, error) {
	query := `
		SELECT id, name, nickname, created_at
		FROM friends
		WHERE id = $1
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Nickname,
		&friend.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get friend: %w", err)
	}

	return friend, nil
}

// List retrieves all friends with pagination
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Friend, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM friends`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count friends: %w", err)
	}

	query := `
		SELECT id, name, nickname, created_at
		FROM friends
		ORDER BY name
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list friends: %w", err)
	}
	defer rows.Close()

	var friends []*Friend
	for rows.Next() {
		friend := &Friend{}
		if err := rows.Scan(
			&friend.ID,
			&friend.Name,
			&friend.Nickname,
			&friend.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan friend: %w", err)
		}
		friends = append(friends, friend)
	}

	return friends, total, nil
}

// Update modifies an existing friend
func (r *Repository) Update(ctx context.Context, id uuid.UUID, req *UpdateFriendRequest) (*Friend, error) {
	query := `
		UPDATE friends
		SET name = COALESCE($2, name),
		    nickname = COALESCE($3, nickname)
		WHERE id = $1
		RETURNING id, name, nickname, created_at
	`

	friend := &Friend{}
	err := r.db.QueryRowContext(ctx, query, id, req.Name, req.Nickname).Scan(
		&friend.ID,
		&friend.Name,
		&friend.Nickname,
		&friend.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update friend: %w", err)
	}

	return friend, nil
}

// Delete removes a friend
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM friends WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete friend: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrFriendNotFound
	}

	return nil
}

// CountMeetingReferences counts meeting participants that reference a friend.
// A friend referenced by any meeting cannot be deleted, otherwise expenses
// would dangle on a missing identity.
func (r *Repository) CountMeetingReferences(ctx context.Context, id uuid.UUID) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM meeting_participants WHERE friend_id = $1`
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count meeting references: %w", err)
	}
	return count, nil
}
