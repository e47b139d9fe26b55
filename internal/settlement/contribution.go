package settlement

import (
	"errors"
	"fmt"

	"github.com/conkccc/studio-sub000/internal/expense/split"
)

// calculateContributions sums, for every participant, what they actually
// paid and what their share across all expenses obliges them to pay.
// All input validation happens here; a rejected expense rejects the whole
// computation so the caller can correct it at the source.
func calculateContributions(participants []Participant, expenses []Expense) (map[string]*contribution, error) {
	contributions := make(map[string]*contribution, len(participants))
	for _, p := range participants {
		contributions[p.ID] = &contribution{}
	}

	for _, e := range expenses {
		if e.TotalAmount <= 0 {
			return nil, fmt.Errorf("expense %s: %w", e.ID, ErrInvalidAmount)
		}

		payer, ok := contributions[e.PaidByID]
		if !ok {
			return nil, fmt.Errorf("expense %s: payer %s: %w", e.ID, e.PaidByID, ErrUnknownParticipant)
		}
		payer.totalPaid += e.TotalAmount

		shares, err := calculateShares(e)
		if err != nil {
			return nil, err
		}

		for _, share := range shares {
			c, ok := contributions[share.ParticipantID]
			if !ok {
				return nil, fmt.Errorf("expense %s: split participant %s: %w", e.ID, share.ParticipantID, ErrUnknownParticipant)
			}
			c.owedAmount += share.Amount
		}
	}

	return contributions, nil
}

// calculateShares resolves one expense's split rule into per-participant
// shares via the split strategy for its type.
func calculateShares(e Expense) ([]split.Share, error) {
	strategy, err := splitFactory.Create(e.SplitType)
	if err != nil {
		return nil, fmt.Errorf("expense %s: %w", e.ID, err)
	}

	var inputs []split.ShareInput
	switch e.SplitType {
	case split.SplitTypeEqual:
		inputs = make([]split.ShareInput, len(e.SplitAmongIDs))
		for i, id := range e.SplitAmongIDs {
			inputs[i] = split.ShareInput{ParticipantID: id}
		}
	case split.SplitTypeCustom:
		inputs = make([]split.ShareInput, len(e.CustomShares))
		for i, cs := range e.CustomShares {
			amount := cs.Amount
			inputs[i] = split.ShareInput{ParticipantID: cs.ParticipantID, Amount: &amount}
		}
	}

	shares, err := strategy.Calculate(e.TotalAmount, inputs)
	if err != nil {
		switch {
		case errors.Is(err, split.ErrNoParticipants) && e.SplitType == split.SplitTypeEqual:
			return nil, fmt.Errorf("expense %s: %w", e.ID, ErrEmptyEqualSplit)
		case errors.Is(err, split.ErrInvalidCustomAmounts):
			return nil, fmt.Errorf("expense %s: %w", e.ID, ErrCustomSplitSum)
		default:
			return nil, fmt.Errorf("expense %s: %w", e.ID, err)
		}
	}

	return shares, nil
}
