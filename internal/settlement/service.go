package settlement

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/event"
	"github.com/conkccc/studio-sub000/internal/expense"
	"github.com/conkccc/studio-sub000/internal/expense/split"
	"github.com/conkccc/studio-sub000/internal/fund"
	"github.com/conkccc/studio-sub000/internal/meeting"
)

// Common errors
var ErrMeetingNotFound = errors.New("meeting not found")

// Service assembles one meeting's snapshot and runs the settlement engine
// over it. The settlement is always derived fresh from the snapshot and
// never cached, so edits are picked up on the next read.
type Service struct {
	meetings *meeting.Repository
	expenses *expense.Repository
	funds    *fund.Service
	events   *event.Worker
}

// NewService creates a new settlement service
func NewService(meetings *meeting.Repository, expenses *expense.Repository, funds *fund.Service, events *event.Worker) *Service {
	return &Service{
		meetings: meetings,
		expenses: expenses,
		funds:    funds,
		events:   events,
	}
}

// ComputeForMeeting loads the meeting's participants, expenses, and fund
// configuration, clamps the per-meeting cap to the reserve's currently
// available balance, and computes the settlement.
func (s *Service) ComputeForMeeting(ctx context.Context, meetingID uuid.UUID) (*Result, []*meeting.Participant, error) {
	mtg, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}
	if mtg == nil {
		return nil, nil, ErrMeetingNotFound
	}

	roster, err := s.meetings.GetParticipants(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}

	expenseRows, err := s.expenses.ListAllByMeetingID(ctx, meetingID)
	if err != nil {
		return nil, nil, err
	}

	fundConfig, err := s.buildFundConfig(ctx, mtg, roster)
	if err != nil {
		return nil, nil, err
	}

	participants := make([]Participant, len(roster))
	for i, p := range roster {
		participants[i] = Participant{ID: p.ID.String(), Name: p.DisplayName}
	}

	engineExpenses := make([]Expense, len(expenseRows))
	for i, row := range expenseRows {
		engineExpenses[i] = toEngineExpense(row)
	}

	result, err := Compute(participants, engineExpenses, fundConfig)
	if err != nil {
		return nil, nil, err
	}

	s.events.Log(event.New(event.TypeSettlementComputed, meetingID.String(), map[string]any{
		"participants": len(participants),
		"expenses":     len(engineExpenses),
		"fund_used":    result.FundUsed,
		"transfers":    len(result.Transfers),
	}))

	return result, roster, nil
}

// buildFundConfig derives the engine's fund input from the meeting's
// configuration and the reserve's current balance. The meeting can never
// draw more than the reserve actually holds.
func (s *Service) buildFundConfig(ctx context.Context, mtg *meeting.Meeting, roster []*meeting.Participant) (FundConfig, error) {
	if !mtg.UseFund {
		return FundConfig{}, nil
	}

	available, err := s.funds.AvailableAmount(ctx)
	if err != nil {
		return FundConfig{}, err
	}

	capAmount := mtg.FundCap
	if available < capAmount {
		capAmount = available
	}

	var excluded []string
	for _, p := range roster {
		if p.FundExcluded {
			excluded = append(excluded, p.ID.String())
		}
	}

	return FundConfig{
		Enabled:                true,
		CapAmount:              capAmount,
		ExcludedParticipantIDs: excluded,
	}, nil
}

// toEngineExpense maps a stored expense and its split rows onto the
// engine's input shape
func toEngineExpense(row *expense.ExpenseWithShares) Expense {
	e := Expense{
		ID:          row.Expense.ID.String(),
		PaidByID:    row.Expense.PaidByID.String(),
		TotalAmount: row.Expense.TotalAmount,
		SplitType:   row.Expense.SplitType,
	}

	switch row.Expense.SplitType {
	case split.SplitTypeEqual:
		e.SplitAmongIDs = make([]string, len(row.Shares))
		for i, share := range row.Shares {
			e.SplitAmongIDs[i] = share.ParticipantID.String()
		}
	case split.SplitTypeCustom:
		e.CustomShares = make([]CustomShare, len(row.Shares))
		for i, share := range row.Shares {
			var amount float64
			if share.Amount != nil {
				amount = *share.Amount
			}
			e.CustomShares[i] = CustomShare{
				ParticipantID: share.ParticipantID.String(),
				Amount:        amount,
			}
		}
	}

	return e
}
