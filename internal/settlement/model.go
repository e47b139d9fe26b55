package settlement

import "github.com/conkccc/studio-sub000/internal/expense/split"

// Participant is one identity eligible to owe or be owed money in a
// meeting's settlement. The ID is opaque to the engine; registered friends
// and ephemeral one-off attendees are treated uniformly.
type Participant struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// CustomShare is one explicit per-person amount inside a CUSTOM expense.
type CustomShare struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Expense is one recorded cost inside the meeting being settled.
// SplitAmongIDs is used for EQUAL splits, CustomShares for CUSTOM splits.
type Expense struct {
	ID            string          `json:"id"`
	PaidByID      string          `json:"paid_by_id"`
	TotalAmount   float64         `json:"total_amount"`
	SplitType     split.SplitType `json:"split_type"`
	SplitAmongIDs []string        `json:"split_among_ids,omitempty"`
	CustomShares  []CustomShare   `json:"custom_shares,omitempty"`
}

// FundConfig describes how much of the shared reserve a meeting may draw
// and who benefits. The zero value means the fund is disabled.
type FundConfig struct {
	Enabled                bool     `json:"enabled"`
	CapAmount              float64  `json:"cap_amount"`
	ExcludedParticipantIDs []string `json:"excluded_participant_ids,omitempty"`
}

// Balance is the per-participant outcome of a settlement computation.
// OwedAmount is the post-fund obligation. Positive NetBalance means the
// participant is owed money, negative means they owe money.
type Balance struct {
	TotalPaid  float64 `json:"total_paid"`
	OwedAmount float64 `json:"owed_amount"`
	NetBalance float64 `json:"net_balance"`
}

// FundPayout is one payment from the shared fund to a creditor.
type FundPayout struct {
	ParticipantID string  `json:"participant_id"`
	Amount        float64 `json:"amount"`
}

// Transfer is one suggested peer-to-peer payment.
type Transfer struct {
	FromParticipantID string  `json:"from_participant_id"`
	ToParticipantID   string  `json:"to_participant_id"`
	Amount            float64 `json:"amount"`
}

// Result is the complete settlement for one meeting: per-participant
// balances plus the fund payouts and peer transfers that bring every
// balance to zero.
type Result struct {
	PerParticipant map[string]Balance `json:"per_participant"`
	FundPayouts    []FundPayout       `json:"fund_payouts"`
	Transfers      []Transfer         `json:"transfers"`
	FundUsed       float64            `json:"fund_used"`
	FundLeft       float64            `json:"fund_left"`
}
