package forex

import (
	"fmt"
	"slices"
	"sync"
)

// Ledger represents the history of all transactions, the single source of
// truth from which every balance is derived.
//
// In a Ledger transactions are always in chronological order, transactions
// with the same timestamp keep the order in which they were appended.
//
// A Ledger is safe for concurrent use. Receive and Sell hold the ledger for
// the whole read-valuate-append cycle so that two sales never read the same
// stale average cost.
type Ledger struct {
	mu           sync.Mutex
	transactions []Transaction
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{transactions: make([]Transaction, 0)}
}

// Append appends transactions to this ledger and maintains the chronological order of transactions.
func (l *Ledger) Append(txs ...Transaction) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.append(txs...)
}

func (l *Ledger) append(txs ...Transaction) {
	l.transactions = append(l.transactions, txs...)
	sortChronologically(l.transactions)
}

// sortChronologically sorts transactions by time, the sort is stable.
func sortChronologically(txs []Transaction) {
	slices.SortStableFunc(txs, func(a, b Transaction) int { return a.Time.Compare(b.Time) })
}

// Transactions returns a snapshot of all transactions in chronological order.
func (l *Ledger) Transactions() []Transaction {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.transactions)
}

// Len returns the number of transactions.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.transactions)
}

// Get returns the transaction with this id.
func (l *Ledger) Get(id string) (Transaction, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	i := slices.IndexFunc(l.transactions, func(tx Transaction) bool { return tx.ID == id })
	if i < 0 {
		return Transaction{}, false
	}
	return l.transactions[i], true
}

// Inventory computes the current inventory.
func (l *Ledger) Inventory() *Inventory {
	l.mu.Lock()
	defer l.mu.Unlock()
	return NewInventory(l.transactions)
}

// Receive records a new receipt.
func (l *Ledger) Receive(d ReceiptDraft) (Transaction, error) {
	tx, err := NewReceipt(d)
	if err != nil {
		return tx, err
	}
	l.Append(tx)
	return tx, nil
}

// Sell records a new sale against the current inventory.
//
// The sale is refused if it exceeds the balance of the supplier's stock in
// that currency. Its cost basis is the current average cost of that stock.
func (l *Ledger) Sell(d SaleDraft) (Transaction, error) {
	if err := d.validate(); err != nil {
		return Transaction{}, fmt.Errorf("invalid sale: %w", err)
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	inv := NewInventory(l.transactions)
	if err := inv.CheckSale(d.Supplier, d.Currency, d.Quantity); err != nil {
		return Transaction{}, err
	}
	tx, err := NewSale(inv, d)
	if err != nil {
		return tx, err
	}
	l.append(tx)
	return tx, nil
}
