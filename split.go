package tripledger

import "github.com/shopspring/decimal"

// policyTolerance is the absolute distance (in currency minor units) from an
// exact half-split under which a remote share is classified as Average.
var policyTolerance = decimal.NewFromFloat(0.1)

var two = decimal.NewFromInt(2)

// Shares computes each participant's share of a record's amount,
// (Anbao's, Tingbao's), such that the two always sum back to the amount
// exactly: the second share is derived by subtraction, never by dividing
// twice.
//
// A manual share above the amount yields a negative remainder; it is
// preserved here so settlement stays consistent with the raw arithmetic.
func Shares(r ExpenseRecord) (a, b decimal.Decimal) {
	total := r.Amount.Decimal()
	switch r.Split {
	case Manual:
		if r.ManualOwner == Tingbao {
			b = r.ManualShare
			a = total.Sub(b)
		} else {
			a = r.ManualShare
			b = total.Sub(a)
		}
	default: // Average
		a = total.Div(two)
		b = total.Sub(a)
	}
	return a, b
}

// PreviewShares is the display variant of Shares: the derived share is
// floored at zero so the entry form never previews a negative debt.
// Settlement math uses Shares, not this.
func PreviewShares(r ExpenseRecord) (a, b decimal.Decimal) {
	a, b = Shares(r)
	if r.Split == Manual {
		if r.ManualOwner == Tingbao && a.IsNegative() {
			a = decimal.Zero
		}
		if r.ManualOwner != Tingbao && b.IsNegative() {
			b = decimal.Zero
		}
	}
	return a, b
}

// InferPolicy reconstructs a split policy from a raw remote share. The
// remote store persists shares, not policies, so this is a heuristic:
// within policyTolerance of an exact half-split the record is classified
// Average, otherwise Manual owned by Anbao with shareA as the explicit
// amount. A genuinely manual 50/50 split is indistinguishable from an
// average one after a round trip.
func InferPolicy(shareA, amount decimal.Decimal) (policy SplitPolicy, owner Participant, share decimal.Decimal) {
	half := amount.Div(two)
	if shareA.Sub(half).Abs().LessThan(policyTolerance) {
		return Average, "", decimal.Zero
	}
	return Manual, Anbao, shareA
}
