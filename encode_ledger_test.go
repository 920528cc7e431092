package tripledger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestEncodeRecord_CanonicalForm(t *testing.T) {
	testCases := []struct {
		name   string
		record ExpenseRecord
		want   string
	}{
		{
			name:   "average split omits manual fields",
			record: rec(t, 3000, JPY, Anbao, Average, "", 0),
			want:   `{"id":"r-JPY","date":"2026/01/10","description":"test item","amount":3000,"currency":"JPY","payer":"Anbao","split":"average"}`,
		},
		{
			name:   "manual split carries owner and share",
			record: rec(t, 1000, TWD, Tingbao, Manual, Anbao, 200),
			want:   `{"id":"r-TWD","date":"2026/01/10","description":"test item","amount":1000,"currency":"TWD","payer":"Tingbao","split":"manual","manualOwner":"Anbao","manualShare":200}`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeRecord(&buf, tc.record); err != nil {
				t.Fatalf("EncodeRecord: %v", err)
			}
			got := strings.TrimSuffix(buf.String(), "\n")
			if got != tc.want {
				t.Errorf("EncodeRecord\n got %s\nwant %s", got, tc.want)
			}
		})
	}
}

func TestLedger_EncodeDecodeRoundTrip(t *testing.T) {
	original := NewLedger(
		rec(t, 3000, JPY, Anbao, Average, "", 0),
		rec(t, 1000, TWD, Tingbao, Manual, Anbao, 200),
	)

	var buf bytes.Buffer
	if err := EncodeLedger(&buf, original); err != nil {
		t.Fatalf("EncodeLedger: %v", err)
	}

	decoded, err := DecodeLedger(&buf)
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if decoded.Len() != original.Len() {
		t.Fatalf("decoded %d records, want %d", decoded.Len(), original.Len())
	}
	for i, want := range original.records {
		if got := decoded.records[i]; !got.Equal(want) {
			t.Errorf("record %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestDecodeLedger_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{"not json", "this is not json\n"},
		{"missing id", `{"date":"2026/01/10","description":"x","amount":1,"currency":"JPY","payer":"Anbao","split":"average"}` + "\n"},
		{"zero amount", `{"id":"r1","date":"2026/01/10","description":"x","amount":0,"currency":"JPY","payer":"Anbao","split":"average"}` + "\n"},
		{"bad currency", `{"id":"r1","date":"2026/01/10","description":"x","amount":1,"currency":"EUR","payer":"Anbao","split":"average"}` + "\n"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := DecodeLedger(strings.NewReader(tc.input)); err == nil {
				t.Error("DecodeLedger accepted a corrupt line")
			}
		})
	}
}

func TestDecodeLedger_EmptyAndBlankLines(t *testing.T) {
	ledger, err := DecodeLedger(strings.NewReader("\n\n"))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	if ledger.Len() != 0 {
		t.Errorf("decoded %d records from blank input, want 0", ledger.Len())
	}
}

func TestDecodeLedger_NormalizesDashDates(t *testing.T) {
	line := `{"id":"r1","date":"2026-01-10","description":"x","amount":1,"currency":"JPY","payer":"Anbao","split":"average"}` + "\n"
	ledger, err := DecodeLedger(strings.NewReader(line))
	if err != nil {
		t.Fatalf("DecodeLedger: %v", err)
	}
	r, _ := ledger.Find("r1")
	if r.Date.String() != "2026/01/10" {
		t.Errorf("date = %q, want %q", r.Date.String(), "2026/01/10")
	}
	if !r.Amount.Decimal().Equal(decimal.NewFromInt(1)) {
		t.Errorf("amount = %v, want 1", r.Amount.Decimal())
	}
}
