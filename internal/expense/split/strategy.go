package split

import (
	"errors"
	"fmt"
	"math"
)

// SplitType defines the type of split strategy
type SplitType string

const (
	SplitTypeEqual  SplitType = "EQUAL"
	SplitTypeCustom SplitType = "CUSTOM"
)

// ShareInput represents a participant in a split with an optional amount
type ShareInput struct {
	ParticipantID string   `json:"participant_id"`
	Amount        *float64 `json:"amount,omitempty"` // For CUSTOM split
}

// Share represents the calculated share for a single participant
type Share struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Calculate computes each participant's share of the total amount.
	// Every listed participant gets a share, including the payer if listed.
	Calculate(totalAmount float64, participants []ShareInput) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() SplitType

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount float64, participants []ShareInput) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewSplitStrategyFactory creates a new factory instance
func NewSplitStrategyFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType SplitType) (Strategy, error) {
	switch splitType {
	case SplitTypeEqual:
		return &EqualStrategy{}, nil
	case SplitTypeCustom:
		return &CustomStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(SplitType(splitType))
}

var (
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrInvalidCustomAmounts = errors.New("custom amounts must sum to total amount")
	ErrNegativeAmount       = errors.New("amounts cannot be negative")
	ErrMissingCustomAmount  = errors.New("custom amount required for all participants")
)

// sumTolerance is the rounding slack accepted when custom amounts are
// reconciled against the expense total.
const sumTolerance = 0.01

// roundToTwoDecimals rounds a float to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}
