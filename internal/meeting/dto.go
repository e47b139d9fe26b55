package meeting

// CreateMeetingRequest represents the request to create a meeting
type CreateMeetingRequest struct {
	Name        string  `json:"name" validate:"required,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	MeetingDate string  `json:"meeting_date" validate:"required"` // YYYY-MM-DD
	UseFund     bool    `json:"use_fund"`
	FundCap     float64 `json:"fund_cap" validate:"gte=0"`
}

// UpdateMeetingRequest represents the request to update a meeting
type UpdateMeetingRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description,omitempty"`
	MeetingDate *string `json:"meeting_date,omitempty"`
}

// UpdateFundConfigRequest represents the request to change a meeting's
// fund configuration
type UpdateFundConfigRequest struct {
	UseFund bool    `json:"use_fund"`
	FundCap float64 `json:"fund_cap" validate:"gte=0"`
}

// AddParticipantRequest adds either a registered friend (by id) or an
// ephemeral attendee (by display name) to the roster
type AddParticipantRequest struct {
	FriendID     *string `json:"friend_id,omitempty"`
	DisplayName  *string `json:"display_name,omitempty"`
	FundExcluded bool    `json:"fund_excluded"`
}

// MeetingResponse represents the response for a meeting
type MeetingResponse struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	Description  *string                `json:"description,omitempty"`
	MeetingDate  string                 `json:"meeting_date"`
	UseFund      bool                   `json:"use_fund"`
	FundCap      float64                `json:"fund_cap"`
	CreatedAt    string                 `json:"created_at"`
	Participants []*ParticipantResponse `json:"participants,omitempty"`
}

// ParticipantResponse represents the response for a roster entry
type ParticipantResponse struct {
	ID           string  `json:"id"`
	FriendID     *string `json:"friend_id,omitempty"`
	DisplayName  string  `json:"display_name"`
	FundExcluded bool    `json:"fund_excluded"`
	Ephemeral    bool    `json:"ephemeral"`
}

// ToResponse converts a Meeting model to a MeetingResponse DTO
func (m *Meeting) ToResponse() *MeetingResponse {
	return &MeetingResponse{
		ID:          m.ID.String(),
		Name:        m.Name,
		Description: m.Description,
		MeetingDate: m.MeetingDate.Format("2006-01-02"),
		UseFund:     m.UseFund,
		FundCap:     m.FundCap,
		CreatedAt:   m.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Participant model to a ParticipantResponse DTO
func (p *Participant) ToResponse() *ParticipantResponse {
	resp := &ParticipantResponse{
		ID:           p.ID.String(),
		DisplayName:  p.DisplayName,
		FundExcluded: p.FundExcluded,
		Ephemeral:    p.FriendID == nil,
	}
	if p.FriendID != nil {
		friendID := p.FriendID.String()
		resp.FriendID = &friendID
	}
	return resp
}
