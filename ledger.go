package tripledger

import (
	"iter"

	"github.com/shopspring/decimal"
)

// Ledger represents the ordered collection of expense records.
//
// Records are kept newest-first by insertion, not by date: a newly added
// record always lands at the front, and an edit keeps the record's position.
type Ledger struct {
	records []ExpenseRecord
}

// NewLedger creates an empty ledger.
func NewLedger(records ...ExpenseRecord) *Ledger {
	return &Ledger{records: records}
}

// Len returns the number of records.
func (l *Ledger) Len() int { return len(l.records) }

// Add validates the fields, constructs a new record with a fresh ID and
// inserts it at the front of the sequence. On validation failure the ledger
// is left untouched.
func (l *Ledger) Add(fields RecordFields) (ExpenseRecord, error) {
	rec, err := NewExpenseRecord(fields)
	if err != nil {
		return ExpenseRecord{}, err
	}
	l.records = append([]ExpenseRecord{rec}, l.records...)
	return rec, nil
}

// Edit replaces the record matching id in place, keeping its ID and its
// position in the sequence. It returns false if no record matches.
func (l *Ledger) Edit(id string, fields RecordFields) (ExpenseRecord, bool, error) {
	for i, r := range l.records {
		if r.ID == id {
			rec, err := buildRecord(id, fields)
			if err != nil {
				return ExpenseRecord{}, true, err
			}
			l.records[i] = rec
			return rec, true, nil
		}
	}
	return ExpenseRecord{}, false, nil
}

// Remove deletes the record matching id and returns it. It reports false if
// no record matches.
func (l *Ledger) Remove(id string) (ExpenseRecord, bool) {
	for i, r := range l.records {
		if r.ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			return r, true
		}
	}
	return ExpenseRecord{}, false
}

// Find returns the record matching id.
func (l *Ledger) Find(id string) (ExpenseRecord, bool) {
	for _, r := range l.records {
		if r.ID == id {
			return r, true
		}
	}
	return ExpenseRecord{}, false
}

// Records returns an iterator that yields each record in ledger order
// (newest-first). Optional filters restrict the sequence; a record is
// yielded when any filter accepts it.
func (l *Ledger) Records(filters ...func(ExpenseRecord) bool) iter.Seq2[int, ExpenseRecord] {
	return func(yield func(int, ExpenseRecord) bool) {
		for i, r := range l.records {
			if len(filters) > 0 {
				accept := false
				for _, filter := range filters {
					if filter(r) {
						accept = true
						break
					}
				}
				if !accept {
					continue
				}
			}
			if !yield(i, r) {
				return
			}
		}
	}
}

// ByCurrency returns a predicate that filters records by currency.
func ByCurrency(currency Currency) func(ExpenseRecord) bool {
	return func(r ExpenseRecord) bool { return r.Amount.Currency() == currency }
}

// ByPayer returns a predicate that filters records by payer.
func ByPayer(p Participant) func(ExpenseRecord) bool {
	return func(r ExpenseRecord) bool { return r.Payer == p }
}

// Totals sums record amounts per currency over all records. Aggregates
// never cross currencies.
func (l *Ledger) Totals() map[Currency]Money {
	totals := make(map[Currency]Money, len(Currencies))
	for _, c := range Currencies {
		totals[c] = M(decimal.Zero, c)
	}
	for _, r := range l.records {
		c := r.Amount.Currency()
		totals[c] = totals[c].Add(r.Amount)
	}
	return totals
}
