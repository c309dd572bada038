package forex

import (
	"slices"
	"strings"
)

// ListOptions filter a listing of records.
type ListOptions struct {
	Kind     Kind   // empty means both kinds.
	Search   string // case-insensitive, on the counterparty or the supplier.
	Currency string // empty means all currencies.
}

func (o ListOptions) accept(tx Transaction) bool {
	if o.Kind != "" && tx.Kind != o.Kind {
		return false
	}
	if o.Currency != "" && !strings.EqualFold(tx.Currency, o.Currency) {
		return false
	}
	if s := strings.ToLower(strings.TrimSpace(o.Search)); s != "" {
		return strings.Contains(strings.ToLower(tx.Counterparty), s) ||
			strings.Contains(strings.ToLower(tx.Supplier), s)
	}
	return true
}

// Listing is a filtered list of raw records with footer totals.
//
// Malformed records are listed, but only well-formed records add up into the
// totals.
type Listing struct {
	Options      ListOptions
	Transactions []Transaction // newest first

	Quantity Quantity
	Total    Money
	Profit   Money
}

// NewListing lists the records of history matching opts, newest first.
func NewListing(history []Transaction, opts ListOptions) *Listing {
	l := &Listing{Options: opts}
	for _, tx := range history {
		if !opts.accept(tx) {
			continue
		}
		l.Transactions = append(l.Transactions, tx)
		if tx.Malformed() {
			continue
		}
		l.Quantity = l.Quantity.Add(tx.Quantity)
		l.Total = l.Total.Add(tx.Total)
		l.Profit = l.Profit.Add(tx.Profit)
	}
	newestFirst(l.Transactions)
	return l
}

// newestFirst sorts transactions by decreasing time, keeping the input order
// of simultaneous ones.
func newestFirst(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int { return b.Time.Compare(a.Time) })
}
