package forex

import (
	"fmt"
	"maps"
	"slices"
)

// Position is the stock of one currency: its balance and the weighted
// average cost of a unit, in the accounting currency.
type Position struct {
	Currency    string   `json:"currency"`
	Balance     Quantity `json:"balance"`
	AverageCost Money    `json:"averageCost"`
}

// Value returns the balance valued at average cost.
func (p Position) Value() Money { return p.AverageCost.Mul(p.Balance) }

// receive blends a lot of quantity q bought for cost into the position.
func (p Position) receive(q Quantity, cost Money) Position {
	held := p.AverageCost.Mul(p.Balance)
	p.Balance = p.Balance.Add(q)
	if p.Balance.IsPositive() {
		p.AverageCost = held.Add(cost).Div(p.Balance)
	} else {
		p.AverageCost = Money{}
	}
	return p
}

// sell draws q out of the position. Selling never changes the average cost,
// and the balance may go negative.
func (p Position) sell(q Quantity) Position {
	p.Balance = p.Balance.Sub(q)
	return p
}

// Inventory is the state of the stock derived from a ledger: the position of
// each currency, globally and per supplier.
//
// An Inventory is always computed from scratch by folding the whole history.
type Inventory struct {
	totals    map[string]Position
	suppliers map[string]map[string]Position
	skipped   []Transaction
}

// NewInventory computes the inventory from a history of transactions, in
// any order.
//
// Transactions are folded in chronological order, the input order breaking
// ties. Receipts are attributed to their counterparty, sales to their
// supplier, and both to Unspecified when that name is empty. Malformed
// transactions are skipped.
func NewInventory(history []Transaction) *Inventory {
	ordered := slices.Clone(history)
	sortChronologically(ordered)

	inv := &Inventory{
		totals:    make(map[string]Position),
		suppliers: make(map[string]map[string]Position),
	}
	for _, tx := range ordered {
		if tx.Malformed() {
			inv.skipped = append(inv.skipped, tx)
			continue
		}
		source := tx.Source()
		if inv.suppliers[source] == nil {
			inv.suppliers[source] = make(map[string]Position)
		}
		global := inv.Total(tx.Currency)
		local := inv.Position(source, tx.Currency)

		switch tx.Kind {
		case Receipt:
			global = global.receive(tx.Quantity, tx.Total)
			local = local.receive(tx.Quantity, tx.Total)
		case Sale:
			global = global.sell(tx.Quantity)
			local = local.sell(tx.Quantity)
		}
		inv.totals[tx.Currency] = global
		inv.suppliers[source][tx.Currency] = local
	}
	return inv
}

// Position returns the position of a supplier in a currency. An empty
// supplier is Unspecified. Unknown positions are empty.
func (inv *Inventory) Position(supplier, currency string) Position {
	if supplier == "" {
		supplier = Unspecified
	}
	if p, ok := inv.suppliers[supplier][currency]; ok {
		return p
	}
	return Position{Currency: currency}
}

// Total returns the position of a currency across all suppliers.
func (inv *Inventory) Total(currency string) Position {
	if p, ok := inv.totals[currency]; ok {
		return p
	}
	return Position{Currency: currency}
}

// Totals returns the global positions sorted by currency.
func (inv *Inventory) Totals() []Position {
	return sortedPositions(inv.totals)
}

// Holdings returns the positions of a supplier sorted by currency.
func (inv *Inventory) Holdings(supplier string) []Position {
	if supplier == "" {
		supplier = Unspecified
	}
	return sortedPositions(inv.suppliers[supplier])
}

// Currencies returns all currencies that ever had a transaction.
func (inv *Inventory) Currencies() []string {
	return slices.Sorted(maps.Keys(inv.totals))
}

// Suppliers returns all suppliers that ever had a transaction.
func (inv *Inventory) Suppliers() []string {
	return slices.Sorted(maps.Keys(inv.suppliers))
}

// Skipped returns the malformed transactions left out of the inventory.
func (inv *Inventory) Skipped() []Transaction {
	return inv.skipped
}

// CheckSale returns an error wrapping ErrOversell if selling quantity out of
// the supplier's stock in currency would exceed its balance.
func (inv *Inventory) CheckSale(supplier, currency string, quantity Quantity) error {
	p := inv.Position(supplier, currency)
	if quantity.GreaterThan(p.Balance) {
		return fmt.Errorf("%w: selling %s %s out of %q stock of %s", ErrOversell, quantity, currency, supplier, p.Balance)
	}
	return nil
}

func sortedPositions(m map[string]Position) []Position {
	list := make([]Position, 0, len(m))
	for _, cur := range slices.Sorted(maps.Keys(m)) {
		list = append(list, m[cur])
	}
	return list
}
