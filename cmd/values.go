package cmd

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/forex/date"
	"github.com/shopspring/decimal"
)

// decimalValue is a flag.Value reading an exact decimal.
type decimalValue struct{ decimal.Decimal }

func (v *decimalValue) Set(s string) error {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("not a number: %q", s)
	}
	v.Decimal = d
	return nil
}

// timeValue is a flag.Value reading a timestamp, a date and time, or a date.
// Dates without a time are at midnight UTC.
type timeValue struct{ time.Time }

var timeLayouts = []string{time.RFC3339Nano, "2006-01-02 15:04", "2006-01-02T15:04", "2006-01-02"}

func (v *timeValue) String() string {
	if v.IsZero() {
		return ""
	}
	return v.Format(time.RFC3339)
}

func (v *timeValue) Set(s string) error {
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			v.Time = t
			return nil
		}
	}
	return fmt.Errorf("not a time: %q, use YYYY-MM-DD or YYYY-MM-DD HH:MM", s)
}

// rangeFlags select the period of a report.
type rangeFlags struct {
	start string
	end   string
	quick string
}

func (r *rangeFlags) SetFlags(f *flag.FlagSet) {
	f.StringVar(&r.start, "s", "", "Start date of the period (YYYY-MM-DD), included")
	f.StringVar(&r.end, "e", "", "End date of the period (YYYY-MM-DD), included")
	f.StringVar(&r.quick, "r", "", "Quick range: today, this-month, last-month or all. Overridden by -s and -e")
}

// Range returns the selected period.
func (r *rangeFlags) Range(today date.Date) (date.Range, error) {
	if r.start == "" && r.end == "" {
		return date.Quick(r.quick, today)
	}
	from, err := date.Parse(r.start)
	if err != nil {
		return date.All, fmt.Errorf("invalid start date: %w", err)
	}
	to, err := date.Parse(r.end)
	if err != nil {
		return date.All, fmt.Errorf("invalid end date: %w", err)
	}
	return date.NewRange(from, to), nil
}
