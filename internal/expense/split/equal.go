package split

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all listed participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() SplitType {
	return SplitTypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount float64, participants []ShareInput) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount < 0 {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate divides the total amount evenly among all listed participants.
// A single-participant split assigns the full total to that participant.
func (s *EqualStrategy) Calculate(totalAmount float64, participants []ShareInput) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	sharePerPerson := roundToTwoDecimals(totalAmount / float64(len(participants)))

	// Handle rounding: assign any leftover cents to the first participant
	// so the shares still sum to the expense total.
	totalDistributed := sharePerPerson * float64(len(participants))
	roundingDifference := roundToTwoDecimals(totalAmount - totalDistributed)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		amount := sharePerPerson
		if i == 0 && roundingDifference != 0 {
			amount = roundToTwoDecimals(amount + roundingDifference)
		}
		shares[i] = Share{
			ParticipantID: p.ParticipantID,
			Amount:        amount,
		}
	}

	return shares, nil
}
