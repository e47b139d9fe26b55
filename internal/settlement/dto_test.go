package settlement

import (
	"testing"

	"github.com/google/uuid"

	"github.com/conkccc/studio-sub000/internal/meeting"
)

func TestToResponse(t *testing.T) {
	t.Parallel()

	idA := uuid.New()
	idB := uuid.New()
	roster := []*meeting.Participant{
		{ID: idA, DisplayName: "Alice"},
		{ID: idB, DisplayName: "Bob"},
	}

	result := &Result{
		PerParticipant: map[string]Balance{
			idA.String(): {TotalPaid: 100, OwedAmount: 50, NetBalance: 50},
			idB.String(): {TotalPaid: 0, OwedAmount: 50, NetBalance: -50},
		},
		FundPayouts: []FundPayout{
			{ParticipantID: idA.String(), Amount: 20},
		},
		Transfers: []Transfer{
			{FromParticipantID: idB.String(), ToParticipantID: idA.String(), Amount: 30},
		},
		FundUsed: 20,
		FundLeft: 5,
	}

	resp := ToResponse("m1", result, roster)

	if resp.MeetingID != "m1" {
		t.Errorf("expected meeting id m1, got %s", resp.MeetingID)
	}
	if len(resp.Participants) != 2 {
		t.Fatalf("expected 2 participant lines, got %d", len(resp.Participants))
	}
	// Lines follow roster order, not map order.
	if resp.Participants[0].Name != "Alice" || resp.Participants[1].Name != "Bob" {
		t.Errorf("expected roster order Alice, Bob; got %s, %s",
			resp.Participants[0].Name, resp.Participants[1].Name)
	}
	if resp.Participants[0].NetBalance != 50 {
		t.Errorf("expected Alice net 50, got %.2f", resp.Participants[0].NetBalance)
	}

	if len(resp.FundPayouts) != 1 || resp.FundPayouts[0].Name != "Alice" {
		t.Errorf("payout name not resolved: %+v", resp.FundPayouts)
	}
	if len(resp.Transfers) != 1 {
		t.Fatalf("expected 1 transfer, got %d", len(resp.Transfers))
	}
	if resp.Transfers[0].FromName != "Bob" || resp.Transfers[0].ToName != "Alice" {
		t.Errorf("transfer names not resolved: %+v", resp.Transfers[0])
	}
	if resp.FundUsed != 20 || resp.FundLeft != 5 {
		t.Errorf("fund totals mismatch: used=%.2f left=%.2f", resp.FundUsed, resp.FundLeft)
	}
}
