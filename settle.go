package tripledger

import "github.com/shopspring/decimal"

// NetBalance is the outcome of settling one currency: the participant who
// must pay, and the (non-negative) amount they owe the other. A zero amount
// means the currency is settled and Owing is empty.
type NetBalance struct {
	Owing  Participant
	Amount Money
}

// Settled reports whether nothing is owed in this currency.
func (n NetBalance) Settled() bool { return n.Amount.IsZero() }

// Settlement maps each tracked currency to its net balance.
type Settlement map[Currency]NetBalance

// Settle nets all records into a single balance per currency. For each
// record the payer is credited with the other participant's share of the
// bill they fronted; the per-currency net of those credits determines who
// pays whom.
//
// Summation is commutative, so the result does not depend on record order.
func Settle(l *Ledger) Settlement {
	s := make(Settlement, len(Currencies))
	for _, c := range Currencies {
		owedToA, owedToB := decimal.Zero, decimal.Zero
		for _, r := range l.Records(ByCurrency(c)) {
			shareA, shareB := Shares(r)
			if r.Payer == Anbao {
				owedToA = owedToA.Add(shareB)
			} else {
				owedToB = owedToB.Add(shareA)
			}
		}
		net := owedToA.Sub(owedToB)
		switch {
		case net.IsPositive():
			s[c] = NetBalance{Owing: Tingbao, Amount: M(net, c)}
		case net.IsNegative():
			s[c] = NetBalance{Owing: Anbao, Amount: M(net.Neg(), c)}
		default:
			s[c] = NetBalance{Amount: M(decimal.Zero, c)}
		}
	}
	return s
}
