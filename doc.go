// Package forex keeps the books of a currency exchange business: lots of
// foreign currency received from named suppliers and sold to customers.
//
// The Ledger is the single source of truth, an append-only and chronological
// list of transactions, stored one per line in JSONL format. Everything else
// is derived from it by recomputing from scratch:
//   - Inventory folds the whole history into the balance and weighted average
//     cost of each currency, globally and per supplier.
//   - Report aggregates the records of a date range, in general or for a
//     single supplier, into totals and a per-currency breakdown.
//   - Listing and Dashboard are the raw views of the records.
//
// A sale is stamped with the average cost of the stock it draws down at the
// time it is recorded. That cost basis, and the profit computed from it, are
// never recomputed afterwards.
//
// This package serves as the foundational logic for the `fx` command-line
// tool.
package forex
