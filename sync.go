package tripledger

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
)

// SyncOp names the remote mutation carried by one push.
type SyncOp string

const (
	OpAdd    SyncOp = "add"
	OpEdit   SyncOp = "edit"
	OpDelete SyncOp = "delete"
)

// ResyncDelay is how long to let a fire-and-forget push land on the remote
// store before re-reading the full snapshot.
const ResyncDelay = 1500 * time.Millisecond

// Reconciler keeps the local cache eventually consistent with the remote
// authoritative store. Pushes are best-effort and never confirmed; pulls
// replace local state wholesale on success and leave it untouched on any
// failure.
type Reconciler struct {
	URL    string
	Client *http.Client
}

// NewReconciler returns a reconciler for the given remote endpoint. An
// empty URL disables sync: Push becomes a no-op and Pull reports an error.
func NewReconciler(url string) *Reconciler {
	return &Reconciler{URL: url, Client: http.DefaultClient}
}

// Enabled reports whether a remote endpoint is configured.
func (rc *Reconciler) Enabled() bool { return rc.URL != "" }

// EncodeWire serializes a record into the remote wire object for the given
// operation. Exactly one of the two amount columns is nonzero, and the
// share columns carry the raw computed shares, not the policy: the policy
// is reconstructed heuristically on the way back (see InferPolicy).
func EncodeWire(rec ExpenseRecord, op SyncOp) ([]byte, error) {
	shareA, shareB := Shares(rec)
	amount := rec.Amount.Decimal()

	amountJpy, amountTwd := decimal.Zero, decimal.Zero
	xiangJpy, xiangTwd := decimal.Zero, decimal.Zero
	qianJpy, qianTwd := decimal.Zero, decimal.Zero
	if rec.Amount.Currency() == JPY {
		amountJpy, xiangJpy, qianJpy = amount, shareA, shareB
	} else {
		amountTwd, xiangTwd, qianTwd = amount, shareA, shareB
	}

	var w jsonObjectWriter
	w.Append("action", op)
	w.Append("date", rec.Date)
	w.Append("item", rec.Description)
	w.Append("payer", rec.Payer.Label())
	w.Append("amountTwd", amountTwd)
	w.Append("amountJpy", amountJpy)
	w.Append("splitXiangTwd", xiangTwd)
	w.Append("splitXiangJpy", xiangJpy)
	w.Append("splitQianTwd", qianTwd)
	w.Append("splitQianJpy", qianJpy)
	w.Append("note", rec.Notes)
	w.Append("rowIndex", rec.ID)
	return w.MarshalJSON()
}

// Push serializes the record and fires a best-effort write at the remote
// store. The write is not confirmed: no retry, no status check, and any
// failure is logged and swallowed. Local state is already durable in the
// cache by the time Push runs.
func (rc *Reconciler) Push(rec ExpenseRecord, op SyncOp) {
	if !rc.Enabled() {
		return
	}
	body, err := EncodeWire(rec, op)
	if err != nil {
		log.Printf("remote push %s %s failed (ignored): %v", op, rec.ID, err)
		return
	}
	if err := jwpost(rc.Client, rc.URL, body); err != nil {
		log.Printf("remote push %s %s failed (ignored): %v", op, rec.ID, err)
	}
}

// wireRow is the strict schema of one pulled remote row.
type wireRow struct {
	RowIndex      json.RawMessage `json:"rowIndex"`
	Date          string          `json:"date"`
	Item          string          `json:"item"`
	Payer         string          `json:"payer"`
	Jpy           decimal.Decimal `json:"jpy"`
	Twd           decimal.Decimal `json:"twd"`
	SplitXiangJpy decimal.Decimal `json:"splitXiangJpy"`
	SplitXiangTwd decimal.Decimal `json:"splitXiangTwd"`
	Note          string          `json:"note"`
}

// rowKey coerces the row key, which the remote store returns either as a
// string or as a bare number, into its string form. Anything else is a
// schema violation.
func (r wireRow) rowKey() (string, error) {
	var s string
	if err := json.Unmarshal(r.RowIndex, &s); err == nil {
		return s, nil
	}
	var n json.Number
	if err := json.Unmarshal(r.RowIndex, &n); err == nil {
		return n.String(), nil
	}
	return "", fmt.Errorf("rowIndex %s is neither string nor number", string(r.RowIndex))
}

// DecodeRow decodes one remote row into an ExpenseRecord, reconstructing
// the split policy from the raw shares. Rows that fail schema validation
// are rejected with an error rather than silently coerced.
func DecodeRow(raw []byte) (ExpenseRecord, error) {
	var row wireRow
	if err := json.Unmarshal(raw, &row); err != nil {
		return ExpenseRecord{}, fmt.Errorf("malformed row: %w", err)
	}

	id, err := row.rowKey()
	if err != nil {
		return ExpenseRecord{}, err
	}
	if id == "" {
		return ExpenseRecord{}, fmt.Errorf("row has an empty rowIndex")
	}

	// Exactly one nonzero amount column selects the currency.
	currency, total, shareA := TWD, row.Twd, row.SplitXiangTwd
	if row.Jpy.IsPositive() {
		currency, total, shareA = JPY, row.Jpy, row.SplitXiangJpy
	}
	if !total.IsPositive() {
		return ExpenseRecord{}, fmt.Errorf("row %s has no positive amount in either currency", id)
	}

	payer, err := ParseParticipant(row.Payer)
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("row %s: %w", id, err)
	}

	policy, owner, manual := InferPolicy(shareA, total)
	rec, err := buildRecord(id, RecordFields{
		Date:        row.Date,
		Description: row.Item,
		Amount:      total,
		Currency:    currency,
		Payer:       payer,
		Split:       policy,
		ManualOwner: owner,
		ManualShare: manual,
		Notes:       row.Note,
	})
	if err != nil {
		return ExpenseRecord{}, fmt.Errorf("row %s: %w", id, err)
	}
	return rec, nil
}

// Pull fetches the full remote dataset and decodes it into a ledger. Any
// network, envelope or row failure returns a non-nil error, which callers
// must treat as "leave local state unchanged" — distinct from a
// successfully fetched empty ledger, which does overwrite local state.
func (rc *Reconciler) Pull() (*Ledger, error) {
	if !rc.Enabled() {
		return nil, fmt.Errorf("no remote store configured")
	}

	// Cache-buster: some spreadsheet frontends serve stale GET responses.
	addr := fmt.Sprintf("%s?_t=%d", rc.URL, time.Now().UnixMilli())
	var jobj any
	if err := jwget(rc.Client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("remote fetch failed: %w", err)
	}

	// The envelope is probed leniently, the rows decoded strictly.
	status, err := jsonpath.Get("$.status", jobj)
	if err != nil || status != "success" {
		return nil, fmt.Errorf("remote returned non-success status %v", status)
	}
	data, err := jsonpath.Get("$.data", jobj)
	if err != nil {
		return nil, fmt.Errorf("remote envelope has no data array: %w", err)
	}
	rows, ok := data.([]any)
	if !ok {
		return nil, fmt.Errorf("remote data is not an array")
	}

	ledger := NewLedger()
	for i, jrow := range rows {
		raw, err := json.Marshal(jrow)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		rec, err := DecodeRow(raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		ledger.records = append(ledger.records, rec)
	}
	return ledger, nil
}

// Resync pulls the remote snapshot and, on success, replaces the store's
// ledger and cache wholesale. On failure the store is left untouched and
// the error returned.
func (rc *Reconciler) Resync(store *LedgerStore) error {
	ledger, err := rc.Pull()
	if err != nil {
		return err
	}
	return store.Replace(ledger)
}
