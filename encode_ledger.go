package tripledger

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// recordCmd is a specialized struct for decoding one cache line. All fields
// are re-validated through buildRecord, so a stale or hand-edited line never
// produces a record the constructors would reject.
type recordCmd struct {
	ID          string          `json:"id"`
	Date        string          `json:"date"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    Currency        `json:"currency"`
	Payer       Participant     `json:"payer"`
	Split       SplitPolicy     `json:"split"`
	ManualOwner Participant     `json:"manualOwner,omitempty"`
	ManualShare decimal.Decimal `json:"manualShare,omitempty"`
	Notes       string          `json:"notes,omitempty"`
}

// MarshalJSON implements the json.Marshaler interface for ExpenseRecord,
// keeping a stable key order in the cache file.
func (r ExpenseRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", r.ID)
	w.Append("date", r.Date)
	w.Append("description", r.Description)
	w.Append("amount", r.Amount.Decimal())
	w.Append("currency", r.Amount.Currency())
	w.Append("payer", r.Payer)
	w.Append("split", r.Split)
	if r.Split == Manual {
		w.Append("manualOwner", r.ManualOwner)
		w.Append("manualShare", r.ManualShare)
	}
	w.Optional("notes", r.Notes)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for ExpenseRecord.
func (r *ExpenseRecord) UnmarshalJSON(data []byte) error {
	var temp recordCmd
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	if temp.ID == "" {
		return fmt.Errorf("record is missing an id")
	}
	rec, err := buildRecord(temp.ID, RecordFields{
		Date:        temp.Date,
		Description: temp.Description,
		Amount:      temp.Amount,
		Currency:    temp.Currency,
		Payer:       temp.Payer,
		Split:       temp.Split,
		ManualOwner: temp.ManualOwner,
		ManualShare: temp.ManualShare,
		Notes:       temp.Notes,
	})
	if err != nil {
		return err
	}
	*r = rec
	return nil
}

// DecodeLedger decodes records from a stream of JSONL data, one record per
// line, preserving the stored order (newest-first).
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue // Skip empty lines
		}
		var rec ExpenseRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode record line %q: %w", string(lineBytes), err)
		}
		ledger.records = append(ledger.records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return ledger, nil
}

// EncodeRecord marshals a single record to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeRecord(w io.Writer, rec ExpenseRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write record: %w", err)
	}
	return nil
}

// EncodeLedger persists the whole ledger to an io.Writer in JSONL format,
// in ledger order.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, rec := range ledger.records {
		if err := EncodeRecord(w, rec); err != nil {
			return err
		}
	}
	return nil
}
