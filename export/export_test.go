package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/etnz/forex"
	"github.com/etnz/forex/date"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

func testReport(t *testing.T) *forex.Report {
	t.Helper()
	l := forex.NewLedger()
	_, err := l.Receive(forex.ReceiptDraft{
		Time: time.Date(2025, time.March, 1, 9, 30, 0, 0, time.UTC), Supplier: "Bank X",
		Currency: "USD", Quantity: forex.Q(1000), Price: forex.A(3.75),
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = l.Sell(forex.SaleDraft{
		Time: time.Date(2025, time.March, 2, 10, 0, 0, 0, time.UTC), Customer: "Ali", Supplier: "Bank X",
		Currency: "USD", Quantity: forex.Q(400), Price: forex.A(3.8), Notes: "cash",
	})
	if err != nil {
		t.Fatal(err)
	}
	return forex.NewReport(l.Transactions(), forex.ReportOptions{Range: date.All})
}

func TestWorkbook(t *testing.T) {
	f, err := Workbook(testReport(t), forex.DefaultSettings(), true)
	if err != nil {
		t.Fatalf("Workbook() failed: %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write() failed: %v", err)
	}

	got, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader() failed: %v", err)
	}
	if diff := cmp.Diff([]string{TransactionsSheet, SummarySheet}, got.GetSheetList()); diff != "" {
		t.Errorf("sheets mismatch (-want +got):\n%s", diff)
	}

	rows, err := got.GetRows(TransactionsSheet)
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want a header and 2 records", len(rows))
	}
	if rows[0][6] != "Price (SAR)" {
		t.Errorf("price header = %q, want %q", rows[0][6], "Price (SAR)")
	}
	wantSale := []string{"2025-03-02 10:00", "Sale", "Ali", "Bank X", "USD", "400", "3.8", "1520"}
	if diff := cmp.Diff(wantSale, rows[2][:len(wantSale)]); diff != "" {
		t.Errorf("sale row mismatch (-want +got):\n%s", diff)
	}
	if rows[1][3] != "-" || rows[1][8] != "-" {
		t.Errorf("receipt row = %v, want no source supplier nor cost basis", rows[1])
	}

	summary, err := got.GetRows(SummarySheet)
	if err != nil {
		t.Fatalf("GetRows() failed: %v", err)
	}
	if len(summary) != 3 {
		t.Fatalf("got %d summary rows, want a header, USD and the total", len(summary))
	}
	if summary[1][0] != "USD" || summary[2][0] != "Total" {
		t.Errorf("summary rows = %v, want USD then Total", summary)
	}
	if summary[2][6] != "1100" {
		t.Errorf("remaining total = %q, want 1100", summary[2][6])
	}

	view, err := got.GetSheetView(TransactionsSheet, 0)
	if err != nil {
		t.Fatalf("GetSheetView() failed: %v", err)
	}
	if view.RightToLeft == nil || !*view.RightToLeft {
		t.Errorf("sheet is not right to left")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, testReport(t), forex.DefaultSettings()); err != nil {
		t.Fatalf("WriteCSV() failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	want := []string{
		"Date,Kind,Customer / Supplier,Source supplier,Currency,Quantity,Price (SAR),Total (SAR),Cost basis (SAR),Profit (SAR),Notes",
		"2025-03-01 09:30,Receipt,Bank X,-,USD,1000,3.75,3750,-,0,",
		"2025-03-02 10:00,Sale,Ali,Bank X,USD,400,3.8,1520,3.75,20,cash",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Errorf("WriteCSV() mismatch (-want +got):\n%s", diff)
	}
}
