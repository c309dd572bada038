package date

import (
	"testing"
	"time"
)

func TestRangeContains(t *testing.T) {
	jan10, jan20 := New(2025, 1, 10), New(2025, 1, 20)
	testCases := []struct {
		name string
		r    Range
		d    Date
		want bool
	}{
		{"inside", Range{jan10, jan20}, New(2025, 1, 15), true},
		{"lower bound included", Range{jan10, jan20}, jan10, true},
		{"upper bound included", Range{jan10, jan20}, jan20, true},
		{"before", Range{jan10, jan20}, New(2025, 1, 9), false},
		{"after", Range{jan10, jan20}, New(2025, 1, 21), false},
		{"open start", Range{To: jan20}, New(1999, 1, 1), true},
		{"open end", Range{From: jan10}, New(2099, 1, 1), true},
		{"open end still bounded below", Range{From: jan10}, New(2025, 1, 1), false},
		{"all", All, New(2025, 6, 1), true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.r.Contains(tc.d); got != tc.want {
				t.Errorf("%v.Contains(%v) = %v, want %v", tc.r, tc.d, got, tc.want)
			}
		})
	}
}

func TestNewRangeSwaps(t *testing.T) {
	a, b := New(2025, 1, 20), New(2025, 1, 10)
	if got := NewRange(a, b); got.From != b || got.To != a {
		t.Errorf("NewRange() = %v, want swapped bounds", got)
	}
	if got := NewRange(a, Date{}); got.From != a || !got.To.IsZero() {
		t.Errorf("NewRange() with open end = %v", got)
	}
}

func TestQuick(t *testing.T) {
	today := New(2025, time.March, 15)
	testCases := []struct {
		name string
		want Range
	}{
		{QuickToday, Range{today, today}},
		{QuickThisMonth, Range{New(2025, time.March, 1), today}},
		{QuickLastMonth, Range{New(2025, time.February, 1), New(2025, time.February, 28)}},
		{QuickAll, All},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Quick(tc.name, today)
			if err != nil {
				t.Fatalf("Quick() error = %v", err)
			}
			if got != tc.want {
				t.Errorf("Quick(%q) = %v, want %v", tc.name, got, tc.want)
			}
		})
	}
	if _, err := Quick("yesterday", today); err == nil {
		t.Error("Quick(yesterday) should fail")
	}
}

func TestQuickLastMonthAcrossYear(t *testing.T) {
	got, err := Quick(QuickLastMonth, New(2026, time.January, 5))
	if err != nil {
		t.Fatal(err)
	}
	want := Range{New(2025, time.December, 1), New(2025, time.December, 31)}
	if got != want {
		t.Errorf("Quick(last-month) = %v, want %v", got, want)
	}
}
