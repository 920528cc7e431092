// Package sheetd is a small self-hostable replacement for the spreadsheet
// webhook the ledger syncs against. It speaks the same wire protocol: a GET
// returns the full dataset in a {status, data} envelope, a POST applies one
// add, edit or delete mutation keyed by rowIndex.
//
// It keeps everything in memory, optionally snapshotting to the same JSONL
// cache files the CLI uses, and exists for development and for running the
// sync stack without a spreadsheet account.
package sheetd

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shopspring/decimal"
)

func init() {
	// Amount columns go on the wire as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// row is one stored dataset row, in the exact shape a pull returns.
type row struct {
	RowIndex      string          `json:"rowIndex"`
	Date          string          `json:"date"`
	Item          string          `json:"item"`
	Payer         string          `json:"payer"`
	Jpy           decimal.Decimal `json:"jpy"`
	Twd           decimal.Decimal `json:"twd"`
	SplitXiangJpy decimal.Decimal `json:"splitXiangJpy"`
	SplitXiangTwd decimal.Decimal `json:"splitXiangTwd"`
	Note          string          `json:"note"`
}

// mutation is the body of one POST, in the exact shape a push sends. The
// redundant amount and share columns for the unused currency are accepted
// and stored as-is.
type mutation struct {
	Action        string          `json:"action"`
	Date          string          `json:"date"`
	Item          string          `json:"item"`
	Payer         string          `json:"payer"`
	AmountTwd     decimal.Decimal `json:"amountTwd"`
	AmountJpy     decimal.Decimal `json:"amountJpy"`
	SplitXiangTwd decimal.Decimal `json:"splitXiangTwd"`
	SplitXiangJpy decimal.Decimal `json:"splitXiangJpy"`
	SplitQianTwd  decimal.Decimal `json:"splitQianTwd"`
	SplitQianJpy  decimal.Decimal `json:"splitQianJpy"`
	Note          string          `json:"note"`
	RowIndex      string          `json:"rowIndex"`
}

func (m mutation) row() row {
	return row{
		RowIndex:      m.RowIndex,
		Date:          m.Date,
		Item:          m.Item,
		Payer:         m.Payer,
		Jpy:           m.AmountJpy,
		Twd:           m.AmountTwd,
		SplitXiangJpy: m.SplitXiangJpy,
		SplitXiangTwd: m.SplitXiangTwd,
		Note:          m.Note,
	}
}

// Server holds the dataset. The zero value is empty and ready to use.
type Server struct {
	mu   sync.Mutex
	rows []row
}

func NewServer() *Server { return &Server{} }

// Handler returns the webhook endpoints mounted at the root path.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Get("/", s.getAll)
	r.Post("/", s.apply)
	return r
}

// Len returns the current number of rows.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Server) getAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	rows := make([]row, len(s.rows))
	copy(rows, s.rows)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": rows})
}

func (s *Server) apply(w http.ResponseWriter, r *http.Request) {
	var m mutation
	if err := json.NewDecoder(r.Body).Decode(&m); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "malformed body: " + err.Error()})
		return
	}
	if m.RowIndex == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "rowIndex is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	switch m.Action {
	case "add":
		// Newest rows go first, matching the order clients display in.
		s.rows = append([]row{m.row()}, s.rows...)
	case "edit":
		for i, existing := range s.rows {
			if existing.RowIndex == m.RowIndex {
				s.rows[i] = m.row()
				break
			}
		}
		// Editing an unknown row is accepted and dropped, like a sheet
		// formula pointed at a deleted line.
	case "delete":
		for i, existing := range s.rows {
			if existing.RowIndex == m.RowIndex {
				s.rows = append(s.rows[:i], s.rows[i+1:]...)
				break
			}
		}
	default:
		writeJSON(w, http.StatusBadRequest, map[string]any{"status": "error", "message": "unknown action " + m.Action})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
}

func writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("could not write response: %v", err)
	}
}
