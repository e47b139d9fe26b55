package settlement

import (
	"errors"
	"math"

	"github.com/conkccc/studio-sub000/internal/expense/split"
)

// Validation errors surfaced before any balance math runs. Once inputs are
// accepted the rest of the pipeline cannot fail.
var (
	ErrUnknownParticipant = errors.New("expense references a participant not in the meeting")
	ErrEmptyEqualSplit    = errors.New("equal split has no participants")
	ErrCustomSplitSum     = errors.New("custom split amounts do not reconcile with the expense total")
	ErrInvalidAmount      = errors.New("expense amount must be positive")
)

// settleTolerance is the band around zero inside which a balance counts as
// settled. Residual error up to a few cents per participant is an accepted
// rounding artifact of float arithmetic, not a correctness bug.
const settleTolerance = 0.01

// roundToTwoDecimals rounds a float to 2 decimal places
func roundToTwoDecimals(value float64) float64 {
	return math.Round(value*100) / 100
}

// Compute runs the full settlement pipeline for one meeting snapshot:
// contributions, fund allocation, then balance netting and transfer
// planning. It is pure and holds no state between invocations, so it is
// safe to call concurrently for different meetings.
//
// Degenerate inputs (no participants, no expenses) yield a trivial result
// rather than an error.
func Compute(participants []Participant, expenses []Expense, fund FundConfig) (*Result, error) {
	contributions, err := calculateContributions(participants, expenses)
	if err != nil {
		return nil, err
	}

	fundUsed, fundLeft := allocateFund(contributions, participants, fund)

	payouts, transfers, perParticipant := planSettlement(contributions, participants, fundUsed)

	return &Result{
		PerParticipant: perParticipant,
		FundPayouts:    payouts,
		Transfers:      transfers,
		FundUsed:       fundUsed,
		FundLeft:       fundLeft,
	}, nil
}

// contribution accumulates what one participant paid and owes across all
// expenses. OwedAmount is rewritten in place by the fund allocator.
type contribution struct {
	totalPaid  float64
	owedAmount float64
}

// splitFactory is shared by all engine invocations; the factory is stateless.
var splitFactory = split.NewSplitStrategyFactory()
