package tripledger

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Currency is one of the two currencies tracked by the ledger. The two are
// tracked independently and never converted against each other.
type Currency string

const (
	JPY Currency = "JPY"
	TWD Currency = "TWD"
)

// Currencies lists the tracked currencies in display order.
var Currencies = []Currency{JPY, TWD}

// ParseCurrency parses a string into a Currency.
func ParseCurrency(s string) (Currency, error) {
	switch Currency(s) {
	case JPY:
		return JPY, nil
	case TWD:
		return TWD, nil
	default:
		return "", fmt.Errorf("unknown currency: %q", s)
	}
}

// Participant is one of the two fixed trip members.
type Participant string

const (
	Anbao   Participant = "Anbao"
	Tingbao Participant = "Tingbao"
)

// Label returns the localized display name used on the remote store.
func (p Participant) Label() string {
	if p == Tingbao {
		return "婷寶"
	}
	return "安寶"
}

// Other returns the other participant.
func (p Participant) Other() Participant {
	if p == Anbao {
		return Tingbao
	}
	return Anbao
}

// ParseParticipant accepts both the internal name and the localized label.
func ParseParticipant(s string) (Participant, error) {
	switch s {
	case string(Anbao), Anbao.Label():
		return Anbao, nil
	case string(Tingbao), Tingbao.Label():
		return Tingbao, nil
	default:
		return "", fmt.Errorf("unknown participant: %q", s)
	}
}

// SplitPolicy is the rule determining how a record's amount divides into shares.
type SplitPolicy string

const (
	// Average splits the amount in half between the participants.
	Average SplitPolicy = "average"
	// Manual assigns an explicit amount to one named participant; the other
	// owes the remainder.
	Manual SplitPolicy = "manual"
)

// ParseSplitPolicy parses a string into a SplitPolicy.
func ParseSplitPolicy(s string) (SplitPolicy, error) {
	switch SplitPolicy(s) {
	case Average:
		return Average, nil
	case Manual:
		return Manual, nil
	default:
		return "", fmt.Errorf("unknown split policy: %q", s)
	}
}

// Validation sentinels. Callers typically treat these as "nothing happened":
// a record that fails validation is never inserted, and local state is left
// untouched.
var (
	ErrEmptyDescription = errors.New("description can't be empty")
	ErrInvalidAmount    = errors.New("amount must be positive")
	ErrInvalidDate      = errors.New("date is missing or unparseable")
)

// ExpenseRecord is one shared expense. Records are immutable once
// constructed: an edit replaces the whole record under the same ID.
type ExpenseRecord struct {
	ID          string      // opaque stable identifier, reused as the remote row key
	Date        Date        // canonical YYYY/MM/DD
	Description string      // non-empty free text
	Amount      Money       // positive, in exactly one tracked currency
	Payer       Participant // who fronted the bill
	Split       SplitPolicy
	ManualOwner Participant     // only meaningful when Split == Manual
	ManualShare decimal.Decimal // the explicit share owned by ManualOwner
	Notes       string          // optional free text
}

// RecordFields carries the user-editable fields of an expense record.
// NewExpenseRecord and Ledger.Edit validate and normalize them.
type RecordFields struct {
	Date        string
	Description string
	Amount      decimal.Decimal
	Currency    Currency
	Payer       Participant
	Split       SplitPolicy
	ManualOwner Participant
	ManualShare decimal.Decimal
	Notes       string
}

// NewExpenseRecord validates fields and constructs a record with a freshly
// generated ID. The date is normalized to the canonical slash form.
func NewExpenseRecord(fields RecordFields) (ExpenseRecord, error) {
	rec, err := buildRecord(uuid.NewString(), fields)
	if err != nil {
		return ExpenseRecord{}, err
	}
	return rec, nil
}

// buildRecord validates fields into a record reusing the given id.
func buildRecord(id string, fields RecordFields) (ExpenseRecord, error) {
	if fields.Description == "" {
		return ExpenseRecord{}, ErrEmptyDescription
	}
	if !fields.Amount.IsPositive() {
		return ExpenseRecord{}, fmt.Errorf("%w, got %s", ErrInvalidAmount, fields.Amount)
	}
	currency, err := ParseCurrency(string(fields.Currency))
	if err != nil {
		return ExpenseRecord{}, err
	}
	day, err := ParseDate(fields.Date)
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	rec := ExpenseRecord{
		ID:          id,
		Date:        day,
		Description: fields.Description,
		Amount:      M(fields.Amount, currency),
		Payer:       fields.Payer,
		Split:       fields.Split,
		Notes:       fields.Notes,
	}
	if rec.Payer == "" {
		rec.Payer = Anbao
	}
	if rec.Split == "" {
		rec.Split = Average
	}
	if rec.Split == Manual {
		rec.ManualOwner = fields.ManualOwner
		if rec.ManualOwner == "" {
			rec.ManualOwner = Anbao
		}
		// The manual share is deliberately not bounded by the amount: a share
		// larger than the total surfaces as a negative remainder in
		// settlement, matching the preview/settlement asymmetry of the
		// remote store's other clients.
		rec.ManualShare = fields.ManualShare
	}
	return rec, nil
}

// Equal reports whether two records carry the same data.
func (r ExpenseRecord) Equal(o ExpenseRecord) bool {
	return r.ID == o.ID &&
		r.Date == o.Date &&
		r.Description == o.Description &&
		r.Amount.Equal(o.Amount) &&
		r.Payer == o.Payer &&
		r.Split == o.Split &&
		r.ManualOwner == o.ManualOwner &&
		r.ManualShare.Equal(o.ManualShare) &&
		r.Notes == o.Notes
}
