package forex

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

// day returns a timestamp in March 2025 at the given day and hour, UTC.
func day(d, hour int) time.Time { return time.Date(2025, time.March, d, hour, 0, 0, 0, time.UTC) }

// receipt is a helper for tests to create a well formed receipt.
func receipt(id string, at time.Time, supplier, currency string, quantity, price float64) Transaction {
	q, p := Q(quantity), A(price)
	return Transaction{ID: id, Kind: Receipt, Time: at, Counterparty: supplier, Currency: currency, Quantity: q, Price: p, Total: p.Mul(q)}
}

// sale is a helper for tests to create a well formed sale with a given cost basis.
func sale(id string, at time.Time, customer, supplier, currency string, quantity, price, costBasis float64) Transaction {
	q, p, c := Q(quantity), A(price), A(costBasis)
	return Transaction{ID: id, Kind: Sale, Time: at, Counterparty: customer, Supplier: supplier, Currency: currency,
		Quantity: q, Price: p, Total: p.Mul(q), CostBasis: c, Profit: p.Sub(c).Mul(q)}
}

// decimals compares Quantity, Money and Transaction by value.
var decimals = cmp.Options{
	cmp.Comparer(func(a, b Quantity) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Money) bool { return a.Equal(b) }),
	cmp.Comparer(func(a, b Transaction) bool { return a.Equal(b) }),
}

// freeze sets the clock used to stamp new records for the duration of a test.
func freeze(t *testing.T, at time.Time) {
	t.Helper()
	old := now
	now = func() time.Time { return at }
	t.Cleanup(func() { now = old })
}
