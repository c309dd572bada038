package date

import (
	"fmt"
	"strings"
)

// Range represents a range of dates, boundaries included.
//
// A zero From or To leaves the range open on that side, so the zero Range
// contains every date.
type Range struct{ From, To Date }

// All is the range with no bounds.
var All = Range{}

// NewRange creates a new date range. If both bounds are set and 'from' is after 'to', they are swapped.
func NewRange(from, to Date) Range {
	if !from.IsZero() && !to.IsZero() && from.After(to) {
		from, to = to, from
	}
	return Range{From: from, To: to}
}

// Contains return true date is included in the range (boundaries included)
func (r Range) Contains(d Date) bool {
	if !r.From.IsZero() && d.Before(r.From) {
		return false
	}
	if !r.To.IsZero() && d.After(r.To) {
		return false
	}
	return true
}

// IsOpen reports whether the range has no bound at all.
func (r Range) IsOpen() bool { return r.From.IsZero() && r.To.IsZero() }

// String returns "from..to", an open side is left empty.
func (r Range) String() string {
	if r.IsOpen() {
		return "all"
	}
	return fmt.Sprintf("%s..%s", r.From, r.To)
}

// Quick ranges, as offered for reports.
const (
	QuickToday     = "today"
	QuickThisMonth = "this-month"
	QuickLastMonth = "last-month"
	QuickAll       = "all"
)

// Quick returns one of the predefined ranges relative to today.
//
//   - today: the single day.
//   - this-month: from the first of the month to today.
//   - last-month: the whole previous month.
//   - all: no bounds.
func Quick(name string, today Date) (Range, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case QuickToday:
		return Range{From: today, To: today}, nil
	case QuickThisMonth:
		return Range{From: today.StartOf(Monthly), To: today}, nil
	case QuickLastMonth:
		prev := today.StartOf(Monthly).Add(-1)
		return Monthly.Range(prev), nil
	case QuickAll, "":
		return All, nil
	default:
		return All, fmt.Errorf("unknown range %q, want one of %s, %s, %s, %s", name, QuickToday, QuickThisMonth, QuickLastMonth, QuickAll)
	}
}
