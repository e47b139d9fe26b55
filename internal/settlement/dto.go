package settlement

import "github.com/conkccc/studio-sub000/internal/meeting"

// ParticipantBalanceResponse is one participant's settlement line
type ParticipantBalanceResponse struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	TotalPaid     float64 `json:"total_paid"`
	OwedAmount    float64 `json:"owed_amount"`
	NetBalance    float64 `json:"net_balance"`
}

// FundPayoutResponse is one fund-to-creditor payment
type FundPayoutResponse struct {
	ParticipantID string  `json:"participant_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
}

// TransferResponse is one suggested peer transfer
type TransferResponse struct {
	FromParticipantID string  `json:"from_participant_id"`
	FromName          string  `json:"from_name"`
	ToParticipantID   string  `json:"to_participant_id"`
	ToName            string  `json:"to_name"`
	Amount            float64 `json:"amount"`
}

// SettlementResponse is the full settlement for one meeting
type SettlementResponse struct {
	MeetingID    string                        `json:"meeting_id"`
	Participants []*ParticipantBalanceResponse `json:"participants"`
	FundPayouts  []*FundPayoutResponse         `json:"fund_payouts"`
	Transfers    []*TransferResponse           `json:"transfers"`
	FundUsed     float64                       `json:"fund_used"`
	FundLeft     float64                       `json:"fund_left"`
}

// ToResponse renders an engine result against the roster, keeping the
// roster's order for the participant lines
func ToResponse(meetingID string, result *Result, roster []*meeting.Participant) *SettlementResponse {
	names := make(map[string]string, len(roster))
	for _, p := range roster {
		names[p.ID.String()] = p.DisplayName
	}

	resp := &SettlementResponse{
		MeetingID:    meetingID,
		Participants: make([]*ParticipantBalanceResponse, 0, len(roster)),
		FundPayouts:  make([]*FundPayoutResponse, 0, len(result.FundPayouts)),
		Transfers:    make([]*TransferResponse, 0, len(result.Transfers)),
		FundUsed:     result.FundUsed,
		FundLeft:     result.FundLeft,
	}

	for _, p := range roster {
		balance := result.PerParticipant[p.ID.String()]
		resp.Participants = append(resp.Participants, &ParticipantBalanceResponse{
			ParticipantID: p.ID.String(),
			Name:          p.DisplayName,
			TotalPaid:     balance.TotalPaid,
			OwedAmount:    balance.OwedAmount,
			NetBalance:    balance.NetBalance,
		})
	}

	for _, payout := range result.FundPayouts {
		resp.FundPayouts = append(resp.FundPayouts, &FundPayoutResponse{
			ParticipantID: payout.ParticipantID,
			Name:          names[payout.ParticipantID],
			Amount:        payout.Amount,
		})
	}

	for _, transfer := range result.Transfers {
		resp.Transfers = append(resp.Transfers, &TransferResponse{
			FromParticipantID: transfer.FromParticipantID,
			FromName:          names[transfer.FromParticipantID],
			ToParticipantID:   transfer.ToParticipantID,
			ToName:            names[transfer.ToParticipantID],
			Amount:            transfer.Amount,
		})
	}

	return resp
}
