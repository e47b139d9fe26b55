package settlement

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/conkccc/studio-sub000/internal/expense/split"
)

func participantsFixture(ids ...string) []Participant {
	out := make([]Participant, 0, len(ids))
	for _, id := range ids {
		out = append(out, Participant{ID: id, Name: "person " + id})
	}
	return out
}

// assertSettled replays the fund payouts and transfers against each
// participant's net balance and verifies everyone ends within the settle
// tolerance of zero.
func assertSettled(t *testing.T, result *Result) {
	t.Helper()

	remaining := make(map[string]float64, len(result.PerParticipant))
	for id, balance := range result.PerParticipant {
		remaining[id] = balance.NetBalance
	}
	for _, payout := range result.FundPayouts {
		remaining[payout.ParticipantID] -= payout.Amount
	}
	for _, transfer := range result.Transfers {
		remaining[transfer.FromParticipantID] += transfer.Amount
		remaining[transfer.ToParticipantID] -= transfer.Amount
	}
	for id, balance := range remaining {
		if math.Abs(balance) > settleTolerance+1e-9 {
			t.Errorf("participant %s left with unsettled balance %.4f", id, balance)
		}
	}
}

func TestComputeTwoPersonEqualSplit(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 10000, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b"}},
	}

	result, err := Compute(participants, expenses, FundConfig{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	wantBalances := map[string]Balance{
		"a": {TotalPaid: 10000, OwedAmount: 5000, NetBalance: 5000},
		"b": {TotalPaid: 0, OwedAmount: 5000, NetBalance: -5000},
	}
	if !reflect.DeepEqual(result.PerParticipant, wantBalances) {
		t.Errorf("balances mismatch: got %+v", result.PerParticipant)
	}

	wantTransfers := []Transfer{
		{FromParticipantID: "b", ToParticipantID: "a", Amount: 5000},
	}
	if !reflect.DeepEqual(result.Transfers, wantTransfers) {
		t.Errorf("transfers mismatch: got %+v", result.Transfers)
	}
	if len(result.FundPayouts) != 0 || result.FundUsed != 0 || result.FundLeft != 0 {
		t.Errorf("expected no fund activity, got payouts=%v used=%.2f left=%.2f",
			result.FundPayouts, result.FundUsed, result.FundLeft)
	}
	assertSettled(t, result)
}

func TestComputeThreePersonEqualSplit(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b", "c")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 9000, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b", "c"}},
	}

	result, err := Compute(participants, expenses, FundConfig{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if got := result.PerParticipant["a"].NetBalance; got != 6000 {
		t.Errorf("expected a to be owed 6000, got %.2f", got)
	}
	for _, id := range []string{"b", "c"} {
		if got := result.PerParticipant[id].NetBalance; got != -3000 {
			t.Errorf("expected %s to owe 3000, got %.2f", id, got)
		}
	}

	wantTransfers := []Transfer{
		{FromParticipantID: "b", ToParticipantID: "a", Amount: 3000},
		{FromParticipantID: "c", ToParticipantID: "a", Amount: 3000},
	}
	if !reflect.DeepEqual(result.Transfers, wantTransfers) {
		t.Errorf("transfers mismatch: got %+v", result.Transfers)
	}
	assertSettled(t, result)
}

func TestComputeWithFundCap(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b", "c")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 9000, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b", "c"}},
	}
	fund := FundConfig{Enabled: true, CapAmount: 4000}

	result, err := Compute(participants, expenses, fund)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if result.FundUsed != 4000 {
		t.Errorf("expected fund used 4000, got %.2f", result.FundUsed)
	}
	if result.FundLeft != 0 {
		t.Errorf("expected fund left 0, got %.2f", result.FundLeft)
	}

	// 5000 residual split three ways.
	for _, id := range []string{"a", "b", "c"} {
		if got := result.PerParticipant[id].OwedAmount; got != 1666.67 {
			t.Errorf("expected %s residual obligation 1666.67, got %.2f", id, got)
		}
	}
	if got := result.PerParticipant["a"].NetBalance; got != 7333.33 {
		t.Errorf("expected a net 7333.33, got %.2f", got)
	}

	// The whole fund goes to the largest creditor, not proportionally.
	wantPayouts := []FundPayout{{ParticipantID: "a", Amount: 4000}}
	if !reflect.DeepEqual(result.FundPayouts, wantPayouts) {
		t.Errorf("payouts mismatch: got %+v", result.FundPayouts)
	}

	wantTransfers := []Transfer{
		{FromParticipantID: "b", ToParticipantID: "a", Amount: 1666.67},
		{FromParticipantID: "c", ToParticipantID: "a", Amount: 1666.66},
	}
	if !reflect.DeepEqual(result.Transfers, wantTransfers) {
		t.Errorf("transfers mismatch: got %+v", result.Transfers)
	}
	assertSettled(t, result)
}

func TestComputeFundExcludedParticipantKeepsShare(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b", "c")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 3000, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b", "c"}},
	}
	fund := FundConfig{Enabled: true, CapAmount: 10000, ExcludedParticipantIDs: []string{"c"}}

	result, err := Compute(participants, expenses, fund)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	// Only a and b benefit: their 2000 combined obligation is absorbed,
	// the rest of the cap is left over, and c still owes a full share.
	if result.FundUsed != 2000 {
		t.Errorf("expected fund used 2000, got %.2f", result.FundUsed)
	}
	if result.FundLeft != 8000 {
		t.Errorf("expected fund left 8000, got %.2f", result.FundLeft)
	}
	if got := result.PerParticipant["c"].OwedAmount; got != 1000 {
		t.Errorf("expected excluded participant to still owe 1000, got %.2f", got)
	}
	for _, id := range []string{"a", "b"} {
		if got := result.PerParticipant[id].OwedAmount; got != 0 {
			t.Errorf("expected %s obligation fully absorbed, got %.2f", id, got)
		}
	}
	assertSettled(t, result)
}

func TestComputeFundDisabledEvenWithCap(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 100, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b"}},
	}

	result, err := Compute(participants, expenses, FundConfig{Enabled: false, CapAmount: 5000})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if result.FundUsed != 0 || result.FundLeft != 0 || len(result.FundPayouts) != 0 {
		t.Errorf("disabled fund must not participate: used=%.2f left=%.2f payouts=%v",
			result.FundUsed, result.FundLeft, result.FundPayouts)
	}
}

func TestComputeValidationErrors(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b")

	tests := []struct {
		name    string
		expense Expense
		wantErr error
	}{
		{
			name: "custom amounts off by two cents",
			expense: Expense{
				ID: "e1", PaidByID: "a", TotalAmount: 100, SplitType: split.SplitTypeCustom,
				CustomShares: []CustomShare{
					{ParticipantID: "a", Amount: 49.99},
					{ParticipantID: "b", Amount: 49.99},
				},
			},
			wantErr: ErrCustomSplitSum,
		},
		{
			name: "equal split references an unknown participant",
			expense: Expense{
				ID: "e1", PaidByID: "a", TotalAmount: 100, SplitType: split.SplitTypeEqual,
				SplitAmongIDs: []string{"a", "ghost"},
			},
			wantErr: ErrUnknownParticipant,
		},
		{
			name: "payer not in the meeting",
			expense: Expense{
				ID: "e1", PaidByID: "ghost", TotalAmount: 100, SplitType: split.SplitTypeEqual,
				SplitAmongIDs: []string{"a", "b"},
			},
			wantErr: ErrUnknownParticipant,
		},
		{
			name: "equal split with empty participant list",
			expense: Expense{
				ID: "e1", PaidByID: "a", TotalAmount: 100, SplitType: split.SplitTypeEqual,
			},
			wantErr: ErrEmptyEqualSplit,
		},
		{
			name: "zero amount",
			expense: Expense{
				ID: "e1", PaidByID: "a", TotalAmount: 0, SplitType: split.SplitTypeEqual,
				SplitAmongIDs: []string{"a", "b"},
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name: "negative amount",
			expense: Expense{
				ID: "e1", PaidByID: "a", TotalAmount: -50, SplitType: split.SplitTypeEqual,
				SplitAmongIDs: []string{"a", "b"},
			},
			wantErr: ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Compute(participants, []Expense{tt.expense}, FundConfig{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestComputeNoExpenses(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b")

	result, err := Compute(participants, nil, FundConfig{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if len(result.Transfers) != 0 || len(result.FundPayouts) != 0 {
		t.Errorf("expected empty plan, got transfers=%v payouts=%v", result.Transfers, result.FundPayouts)
	}
	for id, balance := range result.PerParticipant {
		if balance != (Balance{}) {
			t.Errorf("expected zero balance for %s, got %+v", id, balance)
		}
	}
}

func TestComputeSingleParticipant(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 750, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a"}},
	}

	result, err := Compute(participants, expenses, FundConfig{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	want := Balance{TotalPaid: 750, OwedAmount: 750, NetBalance: 0}
	if got := result.PerParticipant["a"]; got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
	if len(result.Transfers) != 0 {
		t.Errorf("expected no transfers, got %+v", result.Transfers)
	}
}

func TestComputeConservation(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b", "c", "d")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 123.45, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b", "c"}},
		{ID: "e2", PaidByID: "b", TotalAmount: 77.10, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"b", "c", "d"}},
		{ID: "e3", PaidByID: "c", TotalAmount: 200, SplitType: split.SplitTypeCustom,
			CustomShares: []CustomShare{
				{ParticipantID: "a", Amount: 50},
				{ParticipantID: "c", Amount: 120},
				{ParticipantID: "d", Amount: 30},
			},
		},
		{ID: "e4", PaidByID: "d", TotalAmount: 33.33, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "d"}},
	}

	result, err := Compute(participants, expenses, FundConfig{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	// Without a fund the net balances must sum to zero.
	var sum float64
	for _, balance := range result.PerParticipant {
		sum += balance.NetBalance
	}
	if math.Abs(sum) > settleTolerance {
		t.Errorf("net balances sum to %.4f, expected ~0", sum)
	}

	if got, max := len(result.Transfers), len(participants)-1; got > max {
		t.Errorf("expected at most %d transfers, got %d", max, got)
	}
	assertSettled(t, result)
}

func TestComputeTransferBound(t *testing.T) {
	t.Parallel()

	// Every expense is paid by a different person; the plan must still
	// resolve in at most n-1 transfers.
	participants := participantsFixture("a", "b", "c", "d", "e")
	all := []string{"a", "b", "c", "d", "e"}
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 500, SplitType: split.SplitTypeEqual, SplitAmongIDs: all},
		{ID: "e2", PaidByID: "b", TotalAmount: 320, SplitType: split.SplitTypeEqual, SplitAmongIDs: all},
		{ID: "e3", PaidByID: "c", TotalAmount: 75.50, SplitType: split.SplitTypeEqual, SplitAmongIDs: all},
		{ID: "e4", PaidByID: "d", TotalAmount: 1234.56, SplitType: split.SplitTypeEqual, SplitAmongIDs: all},
	}

	result, err := Compute(participants, expenses, FundConfig{})
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if got, max := len(result.Transfers), len(participants)-1; got > max {
		t.Errorf("expected at most %d transfers, got %d", max, got)
	}
	assertSettled(t, result)
}

func TestComputeIsDeterministic(t *testing.T) {
	t.Parallel()

	participants := participantsFixture("a", "b", "c")
	expenses := []Expense{
		{ID: "e1", PaidByID: "a", TotalAmount: 9000, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"a", "b", "c"}},
		{ID: "e2", PaidByID: "b", TotalAmount: 450.75, SplitType: split.SplitTypeEqual, SplitAmongIDs: []string{"b", "c"}},
	}
	fund := FundConfig{Enabled: true, CapAmount: 1000}

	first, err := Compute(participants, expenses, fund)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	second, err := Compute(participants, expenses, fund)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated computation diverged:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
