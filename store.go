package tripledger

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// CacheStore is the durable local cache for one logical list. Each store is
// constructed with an explicit namespace and owns exactly one file under the
// data directory; there is no ambient global state and no cross-instance
// sharing.
type CacheStore struct {
	dir       string
	namespace string
}

// NewCacheStore returns a cache store for the given namespace. The data
// directory is created lazily on first write.
func NewCacheStore(dir, namespace string) *CacheStore {
	return &CacheStore{dir: dir, namespace: namespace}
}

// Path returns the file backing this namespace.
func (c *CacheStore) Path() string {
	return filepath.Join(c.dir, c.namespace+".jsonl")
}

// ReadAll returns the full serialized sequence for this namespace. A missing
// file is returned as empty content, not an error.
func (c *CacheStore) ReadAll() ([]byte, error) {
	content, err := os.ReadFile(c.Path())
	if os.IsNotExist(err) {
		return nil, nil
	}
	return content, err
}

// WriteAll replaces the full serialized sequence for this namespace.
func (c *CacheStore) WriteAll(content []byte) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return fmt.Errorf("could not create cache directory %q: %w", c.dir, err)
	}
	if err := os.WriteFile(c.Path(), content, 0644); err != nil {
		return fmt.Errorf("could not write cache %q: %w", c.Path(), err)
	}
	return nil
}

// ledgerNamespace is the cache key of the expense ledger.
const ledgerNamespace = "trip_costs"

// LedgerStore owns the expense ledger for one application session and keeps
// the local cache in step with it: every mutating operation writes the
// entire updated sequence back before returning, so the cache always
// reflects the last mutation even if a later remote sync never lands.
type LedgerStore struct {
	cache  *CacheStore
	ledger *Ledger
}

// OpenLedgerStore loads the ledger from the local cache in dir. An absent
// or unparseable cache yields an empty ledger, never an error: the cache is
// a convenience, not a source of failures.
func OpenLedgerStore(dir string) *LedgerStore {
	s := &LedgerStore{cache: NewCacheStore(dir, ledgerNamespace), ledger: NewLedger()}
	content, err := s.cache.ReadAll()
	if err != nil {
		log.Printf("warning, could not read cache %q (starting empty): %v", s.cache.Path(), err)
		return s
	}
	if len(content) == 0 {
		return s
	}
	ledger, err := DecodeLedger(bytes.NewReader(content))
	if err != nil {
		log.Printf("warning, corrupt cache %q (starting empty): %v", s.cache.Path(), err)
		return s
	}
	s.ledger = ledger
	return s
}

// Ledger returns the current ledger. The store retains ownership; callers
// mutate it only through the store.
func (s *LedgerStore) Ledger() *Ledger { return s.ledger }

// Add constructs and inserts a new record, then persists the whole sequence.
func (s *LedgerStore) Add(fields RecordFields) (ExpenseRecord, error) {
	rec, err := s.ledger.Add(fields)
	if err != nil {
		return ExpenseRecord{}, err
	}
	return rec, s.persist()
}

// Edit replaces the record matching id in place, then persists. It reports
// found=false when no record matches, leaving everything untouched.
func (s *LedgerStore) Edit(id string, fields RecordFields) (rec ExpenseRecord, found bool, err error) {
	rec, found, err = s.ledger.Edit(id, fields)
	if !found || err != nil {
		return rec, found, err
	}
	return rec, true, s.persist()
}

// Remove deletes the record matching id, then persists. Removing an unknown
// id is a no-op.
func (s *LedgerStore) Remove(id string) (ExpenseRecord, bool, error) {
	rec, found := s.ledger.Remove(id)
	if !found {
		return ExpenseRecord{}, false, nil
	}
	return rec, true, s.persist()
}

// Replace swaps in a whole new ledger (a successfully pulled remote
// snapshot) and persists it. There is no field-level merge: last fetched
// snapshot wins.
func (s *LedgerStore) Replace(ledger *Ledger) error {
	s.ledger = ledger
	return s.persist()
}

// Totals sums record amounts per currency.
func (s *LedgerStore) Totals() map[Currency]Money { return s.ledger.Totals() }

func (s *LedgerStore) persist() error {
	var buf bytes.Buffer
	if err := EncodeLedger(&buf, s.ledger); err != nil {
		return err
	}
	return s.cache.WriteAll(buf.Bytes())
}
