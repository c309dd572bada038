package forex

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const backup = `{
  "exportedAt": "2025-03-10T12:00:00Z",
  "transactions": [
    {"id":"a","type":"purchase","partyName":"Bank X","currency":"USD","quantity":1000,"price":3.75,"total":3750,"date":"2025-03-01T09:00:00.000Z"},
    {"id":"b","type":"sale","partyName":"Ali","supplierName":"Bank X","currency":"USD","quantity":400,"price":3.8,"purchasePrice":3.7,"total":1520,"profit":40,"date":"2025-03-02T10:00:00.000Z","notes":"cash"},
    {"id":"c","type":"purchase","partyName":"Bank Y","currency":"EUR","quantity":"ten","price":4,"date":"2025-03-03T09:00:00.000Z"},
    {"id":"d","type":"purchase","partyName":"Bank Y","currency":"EUR","quantity":10,"price":4.05,"date":"2025-03-04T09:00:00.000Z"}
  ]
}`

func TestImportJSON(t *testing.T) {
	txs, err := ImportJSON(strings.NewReader(backup), "")
	if err != nil {
		t.Fatalf("ImportJSON() failed: %v", err)
	}
	if len(txs) != 4 {
		t.Fatalf("ImportJSON() got %d transactions, want 4", len(txs))
	}

	// stored cost basis and profit are kept, not recomputed.
	b := sale("b", day(2, 10), "Ali", "Bank X", "USD", 400, 3.8, 3.7)
	b.Notes = "cash"
	want := []Transaction{
		receipt("a", day(1, 9), "Bank X", "USD", 1000, 3.75),
		b,
	}
	if diff := cmp.Diff(want, txs[:2], decimals); diff != "" {
		t.Errorf("ImportJSON() mismatch (-want +got):\n%s", diff)
	}
	if !txs[2].Malformed() {
		t.Errorf("record c expected to be malformed")
	}
	if want := A(40.5); !txs[3].Total.Equal(want) {
		t.Errorf("missing total = %v, want computed %v", txs[3].Total, want)
	}
}

func TestImportJSON_Path(t *testing.T) {
	txs, err := ImportJSON(strings.NewReader(backup), `$.transactions[0]`)
	if err != nil {
		t.Fatalf("ImportJSON() failed: %v", err)
	}
	if len(txs) != 1 || txs[0].ID != "a" {
		t.Errorf("ImportJSON() = %v, want record a only", txs)
	}

	if _, err := ImportJSON(strings.NewReader(backup), `$.nothing[*]`); err == nil {
		t.Errorf("ImportJSON() with an unknown path expected an error")
	}
	if _, err := ImportJSON(strings.NewReader(`{not json`), ""); err == nil {
		t.Errorf("ImportJSON() of invalid json expected an error")
	}
}

func TestImportJSON_AssignsStableIDs(t *testing.T) {
	doc := `{"transactions": [
		{"type":"purchase","partyName":"Bank X","currency":"EUR","quantity":100,"price":4.05,"date":"2025-03-01T09:00:00.000Z"},
		{"type":"purchase","partyName":"Bank X","currency":"EUR","quantity":100,"price":4.05,"date":"2025-03-01T09:00:00.000Z"},
		{"type":"purchase","partyName":"Bank Y","currency":"EUR","quantity":"ten","date":"2025-03-02T09:00:00.000Z"}
	]}`
	first, err := ImportJSON(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("ImportJSON() failed: %v", err)
	}
	again, err := ImportJSON(strings.NewReader(doc), "")
	if err != nil {
		t.Fatalf("ImportJSON() failed: %v", err)
	}

	ids := map[string]bool{}
	for i, tx := range first {
		if tx.ID == "" {
			t.Errorf("record %d has no id", i)
		}
		if ids[tx.ID] {
			t.Errorf("record %d reuses id %q", i, tx.ID)
		}
		ids[tx.ID] = true
		if again[i].ID != tx.ID {
			t.Errorf("record %d id = %q on the second import, want %q", i, again[i].ID, tx.ID)
		}
	}

	// the malformed record keeps its id when written and read back.
	line, err := first[2].MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() failed: %v", err)
	}
	if got := decodeTransaction(line); got.ID != first[2].ID || !got.Malformed() {
		t.Errorf("decoded record = %q malformed %v, want %q malformed", got.ID, got.Malformed(), first[2].ID)
	}
}
