package split

import (
	"errors"
	"math"
	"testing"
)

func floatPtr(v float64) *float64 { return &v }

func TestFactoryCreate(t *testing.T) {
	t.Parallel()

	factory := NewSplitStrategyFactory()

	equal, err := factory.Create(SplitTypeEqual)
	if err != nil {
		t.Fatalf("create equal strategy: %v", err)
	}
	if equal.Type() != SplitTypeEqual {
		t.Fatalf("expected EQUAL, got %s", equal.Type())
	}

	custom, err := factory.CreateFromString("CUSTOM")
	if err != nil {
		t.Fatalf("create custom strategy: %v", err)
	}
	if custom.Type() != SplitTypeCustom {
		t.Fatalf("expected CUSTOM, got %s", custom.Type())
	}

	if _, err := factory.CreateFromString("PERCENTAGE"); err == nil {
		t.Fatal("expected error for unknown split type")
	}
}

func TestEqualStrategyCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		totalAmount  float64
		participants []ShareInput
		wantAmounts  []float64
		wantErr      error
	}{
		{
			name:         "two way split",
			totalAmount:  10000,
			participants: []ShareInput{{ParticipantID: "a"}, {ParticipantID: "b"}},
			wantAmounts:  []float64{5000, 5000},
		},
		{
			name:         "single participant owes the full amount",
			totalAmount:  7500,
			participants: []ShareInput{{ParticipantID: "a"}},
			wantAmounts:  []float64{7500},
		},
		{
			name:         "rounding leftover lands on the first participant",
			totalAmount:  100,
			participants: []ShareInput{{ParticipantID: "a"}, {ParticipantID: "b"}, {ParticipantID: "c"}},
			wantAmounts:  []float64{33.34, 33.33, 33.33},
		},
		{
			name:         "no participants",
			totalAmount:  100,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative amount",
			totalAmount:  -1,
			participants: []ShareInput{{ParticipantID: "a"}},
			wantErr:      ErrNegativeAmount,
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shares, err := strategy.Calculate(tt.totalAmount, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("calculate: %v", err)
			}

			if len(shares) != len(tt.wantAmounts) {
				t.Fatalf("expected %d shares, got %d", len(tt.wantAmounts), len(shares))
			}
			var sum float64
			for i, share := range shares {
				if share.Amount != tt.wantAmounts[i] {
					t.Errorf("share %d: expected %.2f, got %.2f", i, tt.wantAmounts[i], share.Amount)
				}
				sum += share.Amount
			}
			if math.Abs(sum-tt.totalAmount) > 1e-9 {
				t.Errorf("shares sum to %.4f, expected %.4f", sum, tt.totalAmount)
			}
		})
	}
}

func TestCustomStrategyCalculate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		totalAmount  float64
		participants []ShareInput
		wantErr      error
	}{
		{
			name:        "amounts reconcile exactly",
			totalAmount: 9000,
			participants: []ShareInput{
				{ParticipantID: "a", Amount: floatPtr(4000)},
				{ParticipantID: "b", Amount: floatPtr(5000)},
			},
		},
		{
			name:        "amounts reconcile within tolerance",
			totalAmount: 100,
			participants: []ShareInput{
				{ParticipantID: "a", Amount: floatPtr(33.33)},
				{ParticipantID: "b", Amount: floatPtr(33.33)},
				{ParticipantID: "c", Amount: floatPtr(33.33)},
			},
		},
		{
			name:        "amounts off by more than tolerance",
			totalAmount: 100,
			participants: []ShareInput{
				{ParticipantID: "a", Amount: floatPtr(49.99)},
				{ParticipantID: "b", Amount: floatPtr(49.99)},
			},
			wantErr: ErrInvalidCustomAmounts,
		},
		{
			name:        "missing amount",
			totalAmount: 100,
			participants: []ShareInput{
				{ParticipantID: "a", Amount: floatPtr(100)},
				{ParticipantID: "b"},
			},
			wantErr: ErrMissingCustomAmount,
		},
		{
			name:        "negative amount",
			totalAmount: 100,
			participants: []ShareInput{
				{ParticipantID: "a", Amount: floatPtr(150)},
				{ParticipantID: "b", Amount: floatPtr(-50)},
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name:         "no participants",
			totalAmount:  100,
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
	}

	strategy := &CustomStrategy{}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			shares, err := strategy.Calculate(tt.totalAmount, tt.participants)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("calculate: %v", err)
			}

			if len(shares) != len(tt.participants) {
				t.Fatalf("expected %d shares, got %d", len(tt.participants), len(shares))
			}
			for i, share := range shares {
				if share.Amount != *tt.participants[i].Amount {
					t.Errorf("share %d: expected %.2f, got %.2f", i, *tt.participants[i].Amount, share.Amount)
				}
			}
		})
	}
}
