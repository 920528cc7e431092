package tripledger

import (
	"testing"

	"github.com/shopspring/decimal"
)

// rec builds a record with a fixed id for tests.
func rec(t *testing.T, amount int64, currency Currency, payer Participant, split SplitPolicy, owner Participant, manual int64) ExpenseRecord {
	t.Helper()
	r, err := buildRecord("r-"+string(currency), RecordFields{
		Date:        "2026/01/10",
		Description: "test item",
		Amount:      decimal.NewFromInt(amount),
		Currency:    currency,
		Payer:       payer,
		Split:       split,
		ManualOwner: owner,
		ManualShare: decimal.NewFromInt(manual),
	})
	if err != nil {
		t.Fatalf("buildRecord: %v", err)
	}
	return r
}

func TestShares(t *testing.T) {
	testCases := []struct {
		name   string
		record ExpenseRecord
		wantA  string
		wantB  string
	}{
		{
			name:   "average even amount",
			record: rec(t, 3000, JPY, Anbao, Average, "", 0),
			wantA:  "1500", wantB: "1500",
		},
		{
			name:   "average odd amount splits exactly",
			record: rec(t, 101, JPY, Anbao, Average, "", 0),
			wantA:  "50.5", wantB: "50.5",
		},
		{
			name:   "manual owned by Anbao",
			record: rec(t, 1000, TWD, Anbao, Manual, Anbao, 200),
			wantA:  "200", wantB: "800",
		},
		{
			name:   "manual owned by Tingbao",
			record: rec(t, 1000, TWD, Anbao, Manual, Tingbao, 200),
			wantA:  "800", wantB: "200",
		},
		{
			name:   "manual share above the amount goes negative",
			record: rec(t, 100, TWD, Anbao, Manual, Anbao, 150),
			wantA:  "150", wantB: "-50",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			a, b := Shares(tc.record)
			if a.String() != tc.wantA || b.String() != tc.wantB {
				t.Errorf("Shares() = (%s, %s), want (%s, %s)", a, b, tc.wantA, tc.wantB)
			}
			// The two shares always sum back to the amount exactly.
			if !a.Add(b).Equal(tc.record.Amount.Decimal()) {
				t.Errorf("shares %s + %s != amount %s", a, b, tc.record.Amount.Decimal())
			}
		})
	}
}

func TestPreviewShares_ClampsDisplayOnly(t *testing.T) {
	// A manual share above the amount: the preview floors the remainder at
	// zero, but the raw arithmetic value survives for settlement.
	r := rec(t, 100, TWD, Anbao, Manual, Anbao, 150)

	a, b := PreviewShares(r)
	if a.String() != "150" || b.String() != "0" {
		t.Errorf("PreviewShares() = (%s, %s), want (150, 0)", a, b)
	}

	_, rawB := Shares(r)
	if rawB.String() != "-50" {
		t.Errorf("Shares() remainder = %s, want -50", rawB)
	}
}

func TestInferPolicy(t *testing.T) {
	testCases := []struct {
		name       string
		shareA     string
		amount     string
		wantPolicy SplitPolicy
		wantOwner  Participant
		wantShare  string
	}{
		{name: "exact half is average", shareA: "1500", amount: "3000", wantPolicy: Average},
		{name: "within tolerance is average", shareA: "1500.05", amount: "3000", wantPolicy: Average},
		{name: "at tolerance boundary is manual", shareA: "1500.1", amount: "3000", wantPolicy: Manual, wantOwner: Anbao, wantShare: "1500.1"},
		{name: "clearly manual", shareA: "200", amount: "1000", wantPolicy: Manual, wantOwner: Anbao, wantShare: "200"},
		{name: "manual zero share", shareA: "0", amount: "1000", wantPolicy: Manual, wantOwner: Anbao, wantShare: "0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			shareA := decimal.RequireFromString(tc.shareA)
			amount := decimal.RequireFromString(tc.amount)
			policy, owner, share := InferPolicy(shareA, amount)
			if policy != tc.wantPolicy {
				t.Fatalf("InferPolicy(%s, %s) policy = %v, want %v", tc.shareA, tc.amount, policy, tc.wantPolicy)
			}
			if policy == Manual {
				if owner != tc.wantOwner || share.String() != tc.wantShare {
					t.Errorf("InferPolicy(%s, %s) = (%v, %s), want (%v, %s)",
						tc.shareA, tc.amount, owner, share, tc.wantOwner, tc.wantShare)
				}
			}
		})
	}
}

func TestInferPolicy_ManualHalfSplitIsLossy(t *testing.T) {
	// A genuinely manual 50/50 split is indistinguishable from an average
	// split after a round trip through the share columns. Inherent to the
	// wire format, documented rather than fixed.
	r := rec(t, 1000, TWD, Anbao, Manual, Anbao, 500)
	shareA, _ := Shares(r)
	policy, _, _ := InferPolicy(shareA, r.Amount.Decimal())
	if policy != Average {
		t.Errorf("InferPolicy on a manual half-split = %v, want %v", policy, Average)
	}
}
