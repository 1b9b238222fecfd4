package calculator

import (
	"math"
	"testing"

	"github.com/mmynk/circleledger/internal/models"
)

func TestComputeShares(t *testing.T) {
	tests := []struct {
		name         string
		amount       int64
		splitType    models.SplitType
		participants []string
		fixed        map[string]int64
		wantCode     string
		want         []int64
	}{
		{
			name:         "equal split with remainder goes to first participant",
			amount:       10000,
			splitType:    models.SplitEqual,
			participants: []string{"A", "B", "C"},
			want:         []int64{3334, 3333, 3333},
		},
		{
			name:         "equal split without remainder",
			amount:       9000,
			splitType:    models.SplitEqual,
			participants: []string{"M1", "M2", "M3"},
			want:         []int64{3000, 3000, 3000},
		},
		{
			name:         "remainder of two spreads over first two",
			amount:       101,
			splitType:    models.SplitEqual,
			participants: []string{"C", "A", "B"},
			want:         []int64{34, 34, 33},
		},
		{
			name:         "amount smaller than participant count",
			amount:       2,
			splitType:    models.SplitEqual,
			participants: []string{"A", "B", "C", "D"},
			want:         []int64{1, 1, 0, 0},
		},
		{
			name:         "single participant takes everything",
			amount:       777,
			splitType:    models.SplitEqual,
			participants: []string{"A"},
			want:         []int64{777},
		},
		{
			name:         "fixed shares matching total",
			amount:       1000,
			splitType:    models.SplitFixed,
			participants: []string{"A", "B"},
			fixed:        map[string]int64{"A": 700, "B": 300},
			want:         []int64{700, 300},
		},
		{
			name:         "fixed share of zero is allowed",
			amount:       500,
			splitType:    models.SplitFixed,
			participants: []string{"A", "B"},
			fixed:        map[string]int64{"A": 0, "B": 500},
			want:         []int64{0, 500},
		},
		{
			name:         "fixed shares not summing to total",
			amount:       1000,
			splitType:    models.SplitFixed,
			participants: []string{"A", "B"},
			fixed:        map[string]int64{"A": 600, "B": 300},
			wantCode:     models.CodeAmountMismatch,
		},
		{
			name:         "fixed share missing for a participant",
			amount:       1000,
			splitType:    models.SplitFixed,
			participants: []string{"A", "B"},
			fixed:        map[string]int64{"A": 1000, "C": 0},
			wantCode:     models.CodeAmountMismatch,
		},
		{
			name:         "fixed share negative",
			amount:       1000,
			splitType:    models.SplitFixed,
			participants: []string{"A", "B"},
			fixed:        map[string]int64{"A": 1200, "B": -200},
			wantCode:     models.CodeAmountMismatch,
		},
		{
			name:         "fixed share for a non participant",
			amount:       1000,
			splitType:    models.SplitFixed,
			participants: []string{"A"},
			fixed:        map[string]int64{"A": 1000, "Z": 0},
			wantCode:     models.CodeAmountMismatch,
		},
		{
			name:         "fixed shares that wrap around int64",
			amount:       1,
			splitType:    models.SplitFixed,
			participants: []string{"M1", "M2", "M3"},
			fixed:        map[string]int64{"M1": math.MaxInt64, "M2": math.MaxInt64, "M3": 3},
			wantCode:     models.CodeAmountMismatch,
		},
		{
			name:         "single fixed share above amount",
			amount:       1000,
			splitType:    models.SplitFixed,
			participants: []string{"A", "B"},
			fixed:        map[string]int64{"A": 1001, "B": -1},
			wantCode:     models.CodeAmountMismatch,
		},
		{
			name:         "amount at the cap",
			amount:       MaxAmountYen,
			splitType:    models.SplitEqual,
			participants: []string{"A", "B"},
			want:         []int64{MaxAmountYen / 2, MaxAmountYen / 2},
		},
		{
			name:         "amount above the cap",
			amount:       MaxAmountYen + 1,
			splitType:    models.SplitEqual,
			participants: []string{"A"},
			wantCode:     models.CodeInvalidInput,
		},
		{
			name:         "no participants",
			amount:       1000,
			splitType:    models.SplitEqual,
			participants: []string{},
			wantCode:     models.CodeNoParticipants,
		},
		{
			name:         "zero amount",
			amount:       0,
			splitType:    models.SplitEqual,
			participants: []string{"A"},
			wantCode:     models.CodeNonPositiveAmount,
		},
		{
			name:         "negative amount",
			amount:       -5,
			splitType:    models.SplitFixed,
			participants: []string{"A"},
			fixed:        map[string]int64{"A": -5},
			wantCode:     models.CodeNonPositiveAmount,
		},
		{
			name:         "duplicate participant",
			amount:       100,
			splitType:    models.SplitEqual,
			participants: []string{"A", "B", "A"},
			wantCode:     models.CodeDuplicateParticipant,
		},
		{
			name:         "unknown split type",
			amount:       100,
			splitType:    models.SplitType("percentage"),
			participants: []string{"A"},
			wantCode:     models.CodeInvalidSplitType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := ComputeShares(tt.amount, tt.splitType, tt.participants, tt.fixed)
			if tt.wantCode != "" {
				if !models.IsValidation(err, tt.wantCode) {
					t.Fatalf("ComputeShares() error = %v, want ValidationError(%s)", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeShares() unexpected error: %v", err)
			}
			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			var sum int64
			for i, s := range shares {
				if s.MemberID != tt.participants[i] {
					t.Errorf("share %d member = %s, want %s", i, s.MemberID, tt.participants[i])
				}
				if s.ShareYen != tt.want[i] {
					t.Errorf("share %d = %d, want %d", i, s.ShareYen, tt.want[i])
				}
				sum += s.ShareYen
			}
			if sum != tt.amount {
				t.Errorf("shares sum to %d, want %d", sum, tt.amount)
			}
		})
	}
}

func TestComputeShares_EqualSumIsExact(t *testing.T) {
	participants := []string{"a", "b", "c", "d", "e", "f", "g"}
	for amount := int64(1); amount <= 500; amount++ {
		for n := 1; n <= len(participants); n++ {
			shares, err := ComputeShares(amount, models.SplitEqual, participants[:n], nil)
			if err != nil {
				t.Fatalf("amount %d over %d: %v", amount, n, err)
			}
			var sum int64
			for i, s := range shares {
				sum += s.ShareYen
				if i > 0 && s.ShareYen > shares[i-1].ShareYen {
					t.Fatalf("amount %d over %d: shares not front loaded: %v", amount, n, shares)
				}
			}
			if sum != amount {
				t.Fatalf("amount %d over %d: sum %d", amount, n, sum)
			}
		}
	}
}
