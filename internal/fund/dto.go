package fund

// CreateTransactionRequest represents the request to record a fund movement
type CreateTransactionRequest struct {
	Type        string  `json:"type" validate:"required,oneof=DEPOSIT WITHDRAWAL"`
	Amount      string  `json:"amount" validate:"required"` // decimal string, e.g. "15000.00"
	Description string  `json:"description" validate:"max=255"`
	MeetingID   *string `json:"meeting_id,omitempty"`
}

// TransactionResponse represents the response for a fund transaction
type TransactionResponse struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      string  `json:"amount"`
	Description string  `json:"description"`
	MeetingID   *string `json:"meeting_id,omitempty"`
	CreatedBy   *string `json:"created_by,omitempty"`
	CreatedAt   string  `json:"created_at"`
}

// BalanceResponse represents the reserve's current balance
type BalanceResponse struct {
	Balance string `json:"balance"`
}

// ToResponse converts a Transaction model to a TransactionResponse DTO
func (t *Transaction) ToResponse() *TransactionResponse {
	resp := &TransactionResponse{
		ID:          t.ID.String(),
		Type:        string(t.Type),
		Amount:      t.Amount.StringFixed(2),
		Description: t.Description,
		CreatedAt:   t.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if t.MeetingID != nil {
		meetingID := t.MeetingID.String()
		resp.MeetingID = &meetingID
	}
	if t.CreatedBy != nil {
		createdBy := t.CreatedBy.String()
		resp.CreatedBy = &createdBy
	}
	return resp
}
