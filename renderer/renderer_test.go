package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/forex"
	"github.com/etnz/forex/date"
)

func day(d, hour int) time.Time { return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC) }

// books records two receipts and a sale and returns the ledger.
func books(t *testing.T) *forex.Ledger {
	t.Helper()
	l := forex.NewLedger()
	for _, d := range []forex.ReceiptDraft{
		{Time: day(1, 9), Supplier: "Bank X", Currency: "USD", Quantity: forex.Q(1000), Price: forex.A(3.75)},
		{Time: day(2, 9), Supplier: "Bank Y", Currency: "EUR", Quantity: forex.Q(200), Price: forex.A(4.05)},
	} {
		if _, err := l.Receive(d); err != nil {
			t.Fatal(err)
		}
	}
	_, err := l.Sell(forex.SaleDraft{Time: day(3, 9), Customer: "Ali | Sons", Supplier: "Bank X", Currency: "USD", Quantity: forex.Q(400), Price: forex.A(3.80)})
	if err != nil {
		t.Fatal(err)
	}
	return l
}

// assertContains checks that got contains every wanted fragment.
func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	if strings.HasPrefix(got, "error ") {
		t.Fatalf("rendering failed: %s", got)
	}
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output does not contain %q:\n%s", w, got)
		}
	}
}

func TestRenderInventory(t *testing.T) {
	inv := books(t).Inventory()

	got := RenderInventory(inv, "", "SAR")
	assertContains(t, got,
		"# Inventory",
		"## All suppliers",
		"## Bank X",
		"## Bank Y",
		"| USD | $600.00 | 3.7500 SAR |",
		"| EUR | €200.00 | 4.0500 SAR |",
	)

	got = RenderInventory(inv, "Bank Y", "SAR")
	if strings.Contains(got, "Bank X") || strings.Contains(got, "All suppliers") {
		t.Errorf("RenderInventory(Bank Y) renders other suppliers:\n%s", got)
	}

	got = RenderInventory(forex.NewInventory(nil), "", "SAR")
	assertContains(t, got, "No stock on hand.")
}

func TestRenderReport(t *testing.T) {
	l := books(t)
	r := forex.NewReport(l.Transactions(), forex.ReportOptions{Range: date.All})

	got := RenderReport(r, "SAR", true)
	assertContains(t, got,
		"# General report",
		"Period: all",
		"## By currency",
		"| EUR |",
		"| USD |",
		"**Total**",
		"## Records",
		`Ali \| Sons`,
	)
	if i, j := strings.Index(got, "| EUR |"), strings.Index(got, "| USD |"); i > j {
		t.Errorf("breakdown rows are not sorted by currency:\n%s", got)
	}

	got = RenderReport(r, "SAR", false)
	if strings.Contains(got, "## Records") {
		t.Errorf("RenderReport() without records renders records:\n%s", got)
	}

	empty := forex.NewReport(l.Transactions(), forex.ReportOptions{Range: date.All, Mode: forex.BySupplier})
	assertContains(t, RenderReport(empty, "SAR", true), "# Supplier report", "No records in this period.")
}

func TestRenderListing(t *testing.T) {
	history := books(t).Transactions()
	history = append(history, forex.Transaction{ID: "broken", Kind: forex.Sale})

	got := RenderListing(forex.NewListing(history, forex.ListOptions{Kind: forex.Sale}), "SAR")
	assertContains(t, got,
		"| malformed |",
		"broken",
		"| sale |",
		"**Total**",
		"**400.00**",
	)
}

func TestRenderDashboard(t *testing.T) {
	history := books(t).Transactions()
	got := RenderDashboard(forex.NewDashboard(history, date.New(2025, time.March, 3)), "SAR")
	assertContains(t, got,
		"# Overview on 2025-03-03",
		"## Stock",
		"## Recent records",
		"| 3 | 2 |",
	)

	got = RenderDashboard(forex.NewDashboard(nil, date.New(2025, time.March, 3)), "SAR")
	assertContains(t, got, "No stock on hand.", "No records yet.")
}

func TestTransaction(t *testing.T) {
	txs := books(t).Transactions()
	testCases := []struct {
		tx   forex.Transaction
		want string
	}{
		{txs[0], "Received $1,000.00 from Bank X at 3.7500 SAR"},
		{txs[2], "Sold $400.00 of Bank X's stock to Ali | Sons at 3.8000 SAR"},
		{forex.Transaction{ID: "x"}, `Malformed record "x"`},
	}
	for _, tc := range testCases {
		if got := Transaction(tc.tx, "SAR"); !strings.HasPrefix(got, tc.want) {
			t.Errorf("Transaction() = %q, want prefix %q", got, tc.want)
		}
	}
}
