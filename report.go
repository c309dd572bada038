package forex

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/forex/date"
)

// ReportMode selects which records a report looks at.
type ReportMode int

const (
	// General reports on every record in the range.
	General ReportMode = iota
	// BySupplier reports on the records moving one supplier's stock.
	BySupplier
)

func (m ReportMode) String() string {
	switch m {
	case General:
		return "general"
	case BySupplier:
		return "supplier"
	default:
		return fmt.Sprintf("ReportMode(%d)", int(m))
	}
}

// MarshalText encodes the mode by its name.
func (m ReportMode) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

// ParseReportMode parses "general" or "supplier".
func ParseReportMode(s string) (ReportMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "general":
		return General, nil
	case "supplier", "bysupplier", "by-supplier":
		return BySupplier, nil
	default:
		return General, fmt.Errorf("unknown report mode %q, expected general or supplier", s)
	}
}

// ReportOptions are the parameters of a report.
type ReportOptions struct {
	Range    date.Range `json:"range"` // inclusive, open where a bound is zero.
	Mode     ReportMode `json:"mode"`
	Supplier string     `json:"supplier,omitempty"` // only used in BySupplier mode.
}

// Accept reports whether tx passes the report filter. In BySupplier mode a
// receipt passes when bought from Supplier, and a sale when sold out of
// Supplier's stock. Without a Supplier nothing passes.
func (o ReportOptions) Accept(tx Transaction) bool {
	if !o.Range.Contains(tx.Day()) {
		return false
	}
	if o.Mode != BySupplier {
		return true
	}
	if o.Supplier == "" {
		return false
	}
	switch tx.Kind {
	case Receipt:
		return tx.Counterparty == o.Supplier
	case Sale:
		return tx.Supplier == o.Supplier
	}
	return false
}

// CurrencySummary is a row of the report breakdown.
//
// Remaining is what was received minus what was sold within the report
// range. It is a flow, not the stock on hand: see Inventory for balances.
type CurrencySummary struct {
	Currency         string   `json:"currency"`
	ReceivedQuantity Quantity `json:"receivedQuantity"`
	ReceivedValue    Money    `json:"receivedValue"`
	SoldQuantity     Quantity `json:"soldQuantity"`
	SoldValue        Money    `json:"soldValue"`
	Profit           Money    `json:"profit"`
	Remaining        Quantity `json:"remaining"`
}

func (s *CurrencySummary) add(o CurrencySummary) {
	s.ReceivedQuantity = s.ReceivedQuantity.Add(o.ReceivedQuantity)
	s.ReceivedValue = s.ReceivedValue.Add(o.ReceivedValue)
	s.SoldQuantity = s.SoldQuantity.Add(o.SoldQuantity)
	s.SoldValue = s.SoldValue.Add(o.SoldValue)
	s.Profit = s.Profit.Add(o.Profit)
	s.Remaining = s.Remaining.Add(o.Remaining)
}

// Report aggregates the records of a date range.
type Report struct {
	Options ReportOptions `json:"options"`

	// Transactions are the records that passed the filter, in chronological order.
	Transactions []Transaction `json:"transactions"`
	// Skipped counts the malformed records left out.
	Skipped int `json:"skipped"`

	Received Money `json:"received"` // value of receipts
	Sold     Money `json:"sold"`     // value of sales
	Profit   Money `json:"profit"`   // realised on sales

	// Currencies is the per-currency breakdown, sorted by currency code.
	// Only currencies with received or sold value appear.
	Currencies []CurrencySummary `json:"currencies"`
	// Total is the sum of all the Currencies rows.
	Total CurrencySummary `json:"total"`
}

// NewReport aggregates the history according to opts. History can be in any
// order.
func NewReport(history []Transaction, opts ReportOptions) *Report {
	if opts.Mode == BySupplier {
		opts.Supplier = strings.TrimSpace(opts.Supplier)
	}
	r := &Report{Options: opts, Total: CurrencySummary{Currency: "Total"}}
	ordered := slices.Clone(history)
	sortChronologically(ordered)

	rows := make(map[string]*CurrencySummary)
	for _, tx := range ordered {
		if !opts.Accept(tx) {
			continue
		}
		if tx.Malformed() {
			r.Skipped++
			continue
		}
		r.Transactions = append(r.Transactions, tx)

		row, ok := rows[tx.Currency]
		if !ok {
			row = &CurrencySummary{Currency: tx.Currency}
			rows[tx.Currency] = row
		}
		switch tx.Kind {
		case Receipt:
			r.Received = r.Received.Add(tx.Total)
			row.ReceivedQuantity = row.ReceivedQuantity.Add(tx.Quantity)
			row.ReceivedValue = row.ReceivedValue.Add(tx.Total)
			row.Remaining = row.Remaining.Add(tx.Quantity)
		case Sale:
			r.Sold = r.Sold.Add(tx.Total)
			r.Profit = r.Profit.Add(tx.Profit)
			row.SoldQuantity = row.SoldQuantity.Add(tx.Quantity)
			row.SoldValue = row.SoldValue.Add(tx.Total)
			row.Profit = row.Profit.Add(tx.Profit)
			row.Remaining = row.Remaining.Sub(tx.Quantity)
		}
	}

	for _, cur := range slices.Sorted(maps.Keys(rows)) {
		row := rows[cur]
		if !row.ReceivedValue.IsPositive() && !row.SoldValue.IsPositive() {
			continue
		}
		r.Currencies = append(r.Currencies, *row)
		r.Total.add(*row)
	}
	return r
}

// Empty reports whether no record passed the filter.
func (r *Report) Empty() bool { return len(r.Transactions) == 0 }
