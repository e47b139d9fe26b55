package meeting

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository handles meeting and participant data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new meeting repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new meeting into the database
func (r *Repository) Create(ctx context.Context, req *CreateMeetingRequest, meetingDate time.Time) (*Meeting, error) {
	query := `
		INSERT INTO meetings (id, name, description, meeting_date, use_fund, fund_cap)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, description, meeting_date, use_fund, fund_cap, created_at
	`

	meeting := &Meeting{}
	err := r.db.QueryRowContext(ctx, query,
		uuid.New(),
		req.Name,
		req.Description,
		meetingDate,
		req.UseFund,
		req.FundCap,
	).Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Description,
		&meeting.MeetingDate,
		&meeting.UseFund,
		&meeting.FundCap,
		&meeting.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	return meeting, nil
}

// GetByID retrieves a meeting by its ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Meeting, error) {
	query := `
		SELECT id, name, description, meeting_date, use_fund, fund_cap, created_at
		FROM meetings
		WHERE id = $1
	`

	meeting := &Meeting{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Description,
		&meeting.MeetingDate,
		&meeting.UseFund,
		&meeting.FundCap,
		&meeting.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get meeting: %w", err)
	}

	return meeting, nil
}

// List retrieves all meetings with pagination, newest first
func (r *Repository) List(ctx context.Context, limit, offset int) ([]*Meeting, int, error) {
	var total int
	countQuery := `SELECT COUNT(*) FROM meetings`
	if err := r.db.QueryRowContext(ctx, countQuery).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count meetings: %w", err)
	}

	query := `
		SELECT id, name, description, meeting_date, use_fund, fund_cap, created_at
		FROM meetings
		ORDER BY meeting_date DESC, created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list meetings: %w", err)
	}
	defer rows.Close()

	var meetings []*Meeting
	for rows.Next() {
		meeting := &Meeting{}
		if err := rows.Scan(
			&meeting.ID,
			&meeting.Name,
			&meeting.Description,
			&meeting.MeetingDate,
			&meeting.UseFund,
			&meeting.FundCap,
			&meeting.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan meeting: %w", err)
		}
		meetings = append(meetings, meeting)
	}

	return meetings, total, nil
}

// Update modifies an existing meeting
func (r *Repository) Update(ctx context.Context, id uuid.UUID, name, description *string, meetingDate *time.Time) (*Meeting, error) {
	query := `
		UPDATE meetings
		SET name = COALESCE($2, name),
		    description = COALESCE($3, description),
		    meeting_date = COALESCE($4, meeting_date)
		WHERE id = $1
		RETURNING id, name, description, meeting_date, use_fund, fund_cap, created_at
	`

	meeting := &Meeting{}
	err := r.db.QueryRowContext(ctx, query, id, name, description, meetingDate).Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Description,
		&meeting.MeetingDate,
		&meeting.UseFund,
		&meeting.FundCap,
		&meeting.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update meeting: %w", err)
	}

	return meeting, nil
}

// UpdateFundConfig changes a meeting's fund configuration
func (r *Repository) UpdateFundConfig(ctx context.Context, id uuid.UUID, useFund bool, fundCap float64) (*Meeting, error) {
	query := `
		UPDATE meetings
		SET use_fund = $2, fund_cap = $3
		WHERE id = $1
		RETURNING id, name, description, meeting_date, use_fund, fund_cap, created_at
	`

	meeting := &Meeting{}
	err := r.db.QueryRowContext(ctx, query, id, useFund, fundCap).Scan(
		&meeting.ID,
		&meeting.Name,
		&meeting.Description,
		&meeting.MeetingDate,
		&meeting.UseFund,
		&meeting.FundCap,
		&meeting.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update fund config: %w", err)
	}

	return meeting, nil
}

// Delete removes a meeting together with its roster and expenses
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM meetings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete meeting: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrMeetingNotFound
	}

	return nil
}

// AddParticipant inserts a roster entry for either a friend or an
// ephemeral attendee
func (r *Repository) AddParticipant(ctx context.Context, meetingID uuid.UUID, friendID *uuid.UUID, displayName string, fundExcluded bool) (*Participant, error) {
	query := `
		INSERT INTO meeting_participants (id, meeting_id, friend_id, display_name, fund_excluded)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, meeting_id, friend_id, display_name, fund_excluded, created_at
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, uuid.New(), meetingID, friendID, displayName, fundExcluded).Scan(
		&participant.ID,
		&participant.MeetingID,
		&participant.FriendID,
		&participant.DisplayName,
		&participant.FundExcluded,
		&participant.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return participant, nil
}

// GetParticipants retrieves a meeting's roster in insertion order
func (r *Repository) GetParticipants(ctx context.Context, meetingID uuid.UUID) ([]*Participant, error) {
	query := `
		SELECT id, meeting_id, friend_id, display_name, fund_excluded, created_at
		FROM meeting_participants
		WHERE meeting_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, meetingID)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	var participants []*Participant
	for rows.Next() {
		participant := &Participant{}
		if err := rows.Scan(
			&participant.ID,
			&participant.MeetingID,
			&participant.FriendID,
			&participant.DisplayName,
			&participant.FundExcluded,
			&participant.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		participants = append(participants, participant)
	}

	return participants, nil
}

// GetParticipant retrieves one roster entry
func (r *Repository) GetParticipant(ctx context.Context, meetingID, participantID uuid.UUID) (*Participant, error) {
	query := `
		SELECT id, meeting_id, friend_id, display_name, fund_excluded, created_at
		FROM meeting_participants
		WHERE meeting_id = $1 AND id = $2
	`

	participant := &Participant{}
	err := r.db.QueryRowContext(ctx, query, meetingID, participantID).Scan(
		&participant.ID,
		&participant.MeetingID,
		&participant.FriendID,
		&participant.DisplayName,
		&participant.FundExcluded,
		&participant.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get participant: %w", err)
	}

	return participant, nil
}

// CountParticipantExpenseReferences counts how many expenses reference a
// participant, either as payer or inside a split
func (r *Repository) CountParticipantExpenseReferences(ctx context.Context, participantID uuid.UUID) (int, error) {
	var count int
	query := `
		SELECT COUNT(*) FROM (
			SELECT id FROM expenses WHERE paid_by = $1
			UNION
			SELECT expense_id FROM expense_shares WHERE participant_id = $1
		) refs
	`
	if err := r.db.QueryRowContext(ctx, query, participantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count expense references: %w", err)
	}
	return count, nil
}

// RemoveParticipant deletes a roster entry
func (r *Repository) RemoveParticipant(ctx context.Context, meetingID, participantID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM meeting_participants WHERE meeting_id = $1 AND id = $2`,
		meetingID, participantID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove participant: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return ErrParticipantNotFound
	}

	return nil
}
