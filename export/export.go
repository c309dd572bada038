// Package export writes the records of a report to files that can be shared
// with an accountant: an Excel workbook or a CSV file.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/etnz/forex"
	"github.com/xuri/excelize/v2"
)

const (
	// TransactionsSheet lists one record per row.
	TransactionsSheet = "Transactions"
	// SummarySheet lists one currency per row, and the grand total.
	SummarySheet = "Summary"

	timeLayout = "2006-01-02 15:04"
)

// kindLabel returns the label of a kind in the exported files.
func kindLabel(k forex.Kind) string {
	switch k {
	case forex.Receipt:
		return "Receipt"
	case forex.Sale:
		return "Sale"
	default:
		return string(k)
	}
}

// detailHeader returns the column titles of the detail rows, amounts being in
// the accounting currency.
func detailHeader(accounting string) []string {
	return []string{
		"Date", "Kind", "Customer / Supplier", "Source supplier", "Currency", "Quantity",
		"Price (" + accounting + ")", "Total (" + accounting + ")", "Cost basis (" + accounting + ")",
		"Profit (" + accounting + ")", "Notes",
	}
}

// detailRow returns the cells of a record. Cost basis and source supplier
// only apply to sales.
func detailRow(tx forex.Transaction) []any {
	source, costBasis := "-", any("-")
	if tx.Kind == forex.Sale {
		source = tx.Supplier
		costBasis = tx.CostBasis.Decimal().InexactFloat64()
	}
	return []any{
		tx.Time.Format(timeLayout),
		kindLabel(tx.Kind),
		tx.Counterparty,
		source,
		tx.Currency,
		tx.Quantity.Decimal().InexactFloat64(),
		tx.Price.Decimal().InexactFloat64(),
		tx.Total.Decimal().InexactFloat64(),
		costBasis,
		tx.Profit.Decimal().InexactFloat64(),
		tx.Notes,
	}
}

func summaryRow(s forex.CurrencySummary) []any {
	return []any{
		s.Currency,
		s.ReceivedQuantity.Decimal().InexactFloat64(),
		s.ReceivedValue.Decimal().InexactFloat64(),
		s.SoldQuantity.Decimal().InexactFloat64(),
		s.SoldValue.Decimal().InexactFloat64(),
		s.Profit.Decimal().InexactFloat64(),
		s.Remaining.Decimal().InexactFloat64(),
	}
}

// Workbook builds a workbook out of a report.
//
// The Transactions sheet lists the report records, the Summary sheet its
// per-currency breakdown followed by the grand total. Sheets read right to
// left when rtl is set.
func Workbook(r *forex.Report, settings *forex.Settings, rtl bool) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", TransactionsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return nil, err
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	acc := settings.AccountingCurrency
	detail := [][]any{toAny(detailHeader(acc))}
	for _, tx := range r.Transactions {
		detail = append(detail, detailRow(tx))
	}
	if err := writeSheet(f, TransactionsSheet, detail); err != nil {
		return nil, err
	}

	summary := [][]any{toAny([]string{
		"Currency", "Received", "Received value (" + acc + ")", "Sold", "Sold value (" + acc + ")",
		"Profit (" + acc + ")", "Remaining",
	})}
	for _, row := range r.Currencies {
		summary = append(summary, summaryRow(row))
	}
	summary = append(summary, summaryRow(r.Total))
	if err := writeSheet(f, SummarySheet, summary); err != nil {
		return nil, err
	}

	for _, sheet := range []string{TransactionsSheet, SummarySheet} {
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, err
		}
		if err := f.SetSheetView(sheet, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
			return nil, err
		}
	}
	// grand total
	if err := f.SetRowStyle(SummarySheet, len(summary), len(summary), bold); err != nil {
		return nil, err
	}
	return f, nil
}

func writeSheet(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("cannot write row %d of %s: %w", i+1, sheet, err)
		}
	}
	return nil
}

func toAny(s []string) []any {
	a := make([]any, len(s))
	for i, v := range s {
		a[i] = v
	}
	return a
}

// WriteCSV writes the report records as CSV, with a header line. Amounts
// are written with all their decimals.
func WriteCSV(w io.Writer, r *forex.Report, settings *forex.Settings) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(detailHeader(settings.AccountingCurrency)); err != nil {
		return err
	}
	for _, tx := range r.Transactions {
		source, costBasis := "-", "-"
		if tx.Kind == forex.Sale {
			source, costBasis = tx.Supplier, tx.CostBasis.Decimal().String()
		}
		record := []string{
			tx.Time.Format(timeLayout),
			kindLabel(tx.Kind),
			tx.Counterparty,
			source,
			tx.Currency,
			tx.Quantity.String(),
			tx.Price.Decimal().String(),
			tx.Total.Decimal().String(),
			costBasis,
			tx.Profit.Decimal().String(),
			tx.Notes,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
