package expense

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/event"
	"github.com/conkccc/studio-sub000/internal/expense/split"
)

// Common errors
var (
	ErrExpenseNotFound    = errors.New("expense not found")
	ErrUnknownParticipant = errors.New("participant is not on the meeting roster")
	ErrInvalidID          = errors.New("invalid id")
)

// Service handles expense business logic
type Service struct {
	repo         *Repository
	splitFactory *split.Factory
	events       *event.Worker
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, splitFactory *split.Factory, events *event.Worker) *Service {
	return &Service{
		repo:         repo,
		splitFactory: splitFactory,
		events:       events,
	}
}

// CreateExpense validates and records a new expense. Every referenced
// participant must be on the meeting roster and the split must reconcile
// through its strategy before anything is persisted; a rejected split never
// reaches the database, so settlement computations only ever see
// well-formed expenses.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*ExpenseWithShares, error) {
	meetingID, err := uuid.Parse(req.MeetingID)
	if err != nil {
		return nil, fmt.Errorf("meeting_id: %w", ErrInvalidID)
	}
	paidByID, err := uuid.Parse(req.PaidByID)
	if err != nil {
		return nil, fmt.Errorf("paid_by_id: %w", ErrInvalidID)
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	roster, err := s.repo.ListParticipantIDs(ctx, meetingID)
	if err != nil {
		return nil, err
	}
	if !roster[paidByID] {
		return nil, fmt.Errorf("payer %s: %w", req.PaidByID, ErrUnknownParticipant)
	}

	inputs, shareIDs, err := s.buildShareInputs(strategy.Type(), req, roster)
	if err != nil {
		return nil, err
	}

	// Validation only: the stored rows keep the raw split definition and
	// shares are recomputed fresh on every settlement.
	if _, err := strategy.Calculate(req.TotalAmount, inputs); err != nil {
		return nil, err
	}

	expense, err := s.repo.CreateExpense(ctx, meetingID, paidByID, req.Description, req.TotalAmount, strategy.Type())
	if err != nil {
		return nil, err
	}

	shares := make([]*ShareRow, len(inputs))
	for i, input := range inputs {
		share, err := s.repo.CreateShare(ctx, expense.ID, shareIDs[i], input.Amount)
		if err != nil {
			// TODO: Should rollback expense creation in a transaction
			return nil, err
		}
		shares[i] = share
	}

	s.events.Log(event.New(event.TypeExpenseCreated, expense.ID.String(), map[string]any{
		"meeting_id":   expense.MeetingID.String(),
		"total_amount": expense.TotalAmount,
		"split_type":   string(expense.SplitType),
	}))

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shares,
	}, nil
}

// buildShareInputs converts the request's split definition into strategy
// inputs, checking every referenced participant against the roster
func (s *Service) buildShareInputs(splitType split.SplitType, req *CreateExpenseRequest, roster map[uuid.UUID]bool) ([]split.ShareInput, []uuid.UUID, error) {
	switch splitType {
	case split.SplitTypeEqual:
		inputs := make([]split.ShareInput, len(req.SplitAmongIDs))
		ids := make([]uuid.UUID, len(req.SplitAmongIDs))
		for i, idStr := range req.SplitAmongIDs {
			id, err := uuid.Parse(idStr)
			if err != nil {
				return nil, nil, fmt.Errorf("split_among_ids[%d]: %w", i, ErrInvalidID)
			}
			if !roster[id] {
				return nil, nil, fmt.Errorf("participant %s: %w", idStr, ErrUnknownParticipant)
			}
			inputs[i] = split.ShareInput{ParticipantID: idStr}
			ids[i] = id
		}
		return inputs, ids, nil
	case split.SplitTypeCustom:
		inputs := make([]split.ShareInput, len(req.CustomShares))
		ids := make([]uuid.UUID, len(req.CustomShares))
		for i, cs := range req.CustomShares {
			id, err := uuid.Parse(cs.ParticipantID)
			if err != nil {
				return nil, nil, fmt.Errorf("custom_shares[%d]: %w", i, ErrInvalidID)
			}
			if !roster[id] {
				return nil, nil, fmt.Errorf("participant %s: %w", cs.ParticipantID, ErrUnknownParticipant)
			}
			amount := cs.Amount
			inputs[i] = split.ShareInput{ParticipantID: cs.ParticipantID, Amount: &amount}
			ids[i] = id
		}
		return inputs, ids, nil
	default:
		return nil, nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// GetExpenseByID retrieves an expense with its split rows
func (s *Service) GetExpenseByID(ctx context.Context, id uuid.UUID) (*ExpenseWithShares, error) {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, ErrExpenseNotFound
	}

	shares, err := s.repo.GetSharesByExpenseID(ctx, id)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithShares{
		Expense: expense,
		Shares:  shares,
	}, nil
}

// ListExpensesByMeetingID retrieves expenses for a meeting
func (s *Service) ListExpensesByMeetingID(ctx context.Context, meetingID uuid.UUID, page, perPage int) ([]*Expense, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.ListExpensesByMeetingID(ctx, meetingID, perPage, offset)
}

// DeleteExpense deletes an expense and its split rows
func (s *Service) DeleteExpense(ctx context.Context, id uuid.UUID) error {
	expense, err := s.repo.GetExpenseByID(ctx, id)
	if err != nil {
		return err
	}
	if expense == nil {
		return ErrExpenseNotFound
	}

	if err := s.repo.DeleteExpense(ctx, id); err != nil {
		return err
	}

	s.events.Log(event.New(event.TypeExpenseDeleted, id.String(), map[string]any{
		"meeting_id": expense.MeetingID.String(),
	}))

	return nil
}
