package split

import "math"

// =============================================================================
// CUSTOM SPLIT STRATEGY
// Each participant owes an explicit amount (must sum to the expense total)
// =============================================================================

// CustomStrategy implements the Strategy interface for explicit per-person amounts
type CustomStrategy struct{}

// Type returns the split type identifier
func (s *CustomStrategy) Type() SplitType {
	return SplitTypeCustom
}

// Validate checks if the inputs are valid for a custom split
func (s *CustomStrategy) Validate(totalAmount float64, participants []ShareInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}

	// Check that all participants have amounts and they sum to total
	var totalCustom float64
	for _, p := range participants {
		if p.Amount == nil {
			return ErrMissingCustomAmount
		}
		if *p.Amount < 0 {
			return ErrNegativeAmount
		}
		totalCustom += *p.Amount
	}

	// Allow for small floating point errors
	if math.Abs(totalCustom-totalAmount) > sumTolerance {
		return ErrInvalidCustomAmounts
	}

	return nil
}

// Calculate returns the explicit amounts specified for each participant
func (s *CustomStrategy) Calculate(totalAmount float64, participants []ShareInput) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			ParticipantID: p.ParticipantID,
			Amount:        roundToTwoDecimals(*p.Amount),
		}
	}

	return shares, nil
}
