package fund

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/conkccc/studio-sub000/internal/event"
)

// Common errors
var (
	ErrInvalidTransactionType = errors.New("transaction type must be DEPOSIT or WITHDRAWAL")
	ErrInvalidAmount          = errors.New("amount must be a positive decimal")
	ErrInsufficientFunds      = errors.New("withdrawal exceeds the current fund balance")
	ErrInvalidMeetingID       = errors.New("invalid meeting id")
)

// Service handles reserve-fund business logic
type Service struct {
	repo   *Repository
	events *event.Worker
}

// NewService creates a new fund service
func NewService(repo *Repository, events *event.Worker) *Service {
	return &Service{repo: repo, events: events}
}

// CreateTransaction records a deposit or withdrawal. Withdrawals may not
// push the reserve below zero.
func (s *Service) CreateTransaction(ctx context.Context, createdBy *uuid.UUID, req *CreateTransactionRequest) (*Transaction, error) {
	txType := TransactionType(req.Type)
	if txType != TransactionTypeDeposit && txType != TransactionTypeWithdrawal {
		return nil, ErrInvalidTransactionType
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	var meetingID *uuid.UUID
	if req.MeetingID != nil {
		parsed, err := uuid.Parse(*req.MeetingID)
		if err != nil {
			return nil, ErrInvalidMeetingID
		}
		meetingID = &parsed
	}

	if txType == TransactionTypeWithdrawal {
		balance, err := s.repo.Balance(ctx)
		if err != nil {
			return nil, err
		}
		if balance.LessThan(amount) {
			return nil, ErrInsufficientFunds
		}
	}

	tx, err := s.repo.Create(ctx, txType, amount, req.Description, meetingID, createdBy)
	if err != nil {
		return nil, err
	}

	eventType := event.TypeFundDeposit
	if txType == TransactionTypeWithdrawal {
		eventType = event.TypeFundWithdrawal
	}
	s.events.Log(event.New(eventType, tx.ID.String(), map[string]any{
		"amount": tx.Amount.StringFixed(2),
	}))

	return tx, nil
}

// List retrieves fund transactions with pagination
func (s *Service) List(ctx context.Context, page, perPage int) ([]*Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 || perPage > 100 {
		perPage = 20
	}

	offset := (page - 1) * perPage
	return s.repo.List(ctx, perPage, offset)
}

// Balance returns the reserve's current balance
func (s *Service) Balance(ctx context.Context) (decimal.Decimal, error) {
	return s.repo.Balance(ctx)
}

// AvailableAmount reports the balance as a float for the settlement
// engine, which runs on float money with the 0.01 settle tolerance
func (s *Service) AvailableAmount(ctx context.Context) (float64, error) {
	balance, err := s.repo.Balance(ctx)
	if err != nil {
		return 0, err
	}
	return balance.InexactFloat64(), nil
}
