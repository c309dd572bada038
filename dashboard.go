package forex

import (
	"slices"

	"github.com/etnz/forex/date"
)

// recentCount is the number of records shown on the dashboard.
const recentCount = 5

// Dashboard is the overview of the books on a given day.
type Dashboard struct {
	On date.Date

	Profit      Money // realised since the first record
	DayProfit   Money // realised on the day
	DayActivity int   // records of the day
	Count       int   // number of records, malformed included
	Currencies  int   // currencies with a positive balance

	Recent    []Transaction
	Inventory *Inventory
}

// NewDashboard computes the overview of history as seen on day on.
func NewDashboard(history []Transaction, on date.Date) *Dashboard {
	d := &Dashboard{
		On:        on,
		Count:     len(history),
		Inventory: NewInventory(history),
	}
	for _, tx := range history {
		if tx.Malformed() {
			continue
		}
		d.Profit = d.Profit.Add(tx.Profit)
		if tx.Day() == on {
			d.DayProfit = d.DayProfit.Add(tx.Profit)
			d.DayActivity++
		}
	}
	for _, p := range d.Inventory.Totals() {
		if p.Balance.IsPositive() {
			d.Currencies++
		}
	}

	recent := slices.Clone(history)
	newestFirst(recent)
	d.Recent = recent[:min(recentCount, len(recent))]
	return d
}
