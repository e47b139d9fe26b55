package expense

// CustomShareRequest is one explicit per-person amount in a CUSTOM split
type CustomShareRequest struct {
	ParticipantID string  `json:"participant_id" validate:"required"`
	Amount        float64 `json:"amount" validate:"gte=0"`
}

// CreateExpenseRequest represents the request to record an expense
type CreateExpenseRequest struct {
	MeetingID     string               `json:"meeting_id" validate:"required"`
	PaidByID      string               `json:"paid_by_id" validate:"required"`
	Description   string               `json:"description" validate:"required,min=1,max=255"`
	TotalAmount   float64              `json:"total_amount" validate:"required,gt=0"`
	SplitType     string               `json:"split_type" validate:"required,oneof=EQUAL CUSTOM"`
	SplitAmongIDs []string             `json:"split_among_ids,omitempty"` // EQUAL
	CustomShares  []CustomShareRequest `json:"custom_shares,omitempty"`   // CUSTOM
}

// ShareResponse represents one split row in a response
type ShareResponse struct {
	ParticipantID   string   `json:"participant_id"`
	ParticipantName string   `json:"participant_name,omitempty"`
	Amount          *float64 `json:"amount,omitempty"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	MeetingID   string           `json:"meeting_id"`
	PaidByID    string           `json:"paid_by_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	TotalAmount float64          `json:"total_amount"`
	SplitType   string           `json:"split_type"`
	CreatedAt   string           `json:"created_at"`
	Shares      []*ShareResponse `json:"shares,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID.String(),
		MeetingID:   e.MeetingID.String(),
		PaidByID:    e.PaidByID.String(),
		PayerName:   e.PayerName,
		Description: e.Description,
		TotalAmount: e.TotalAmount,
		SplitType:   string(e.SplitType),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a ShareRow model to a ShareResponse DTO
func (s *ShareRow) ToResponse() *ShareResponse {
	return &ShareResponse{
		ParticipantID:   s.ParticipantID.String(),
		ParticipantName: s.ParticipantName,
		Amount:          s.Amount,
	}
}
