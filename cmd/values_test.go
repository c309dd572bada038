package cmd

import (
	"testing"
	"time"

	"github.com/etnz/forex/date"
)

func TestTimeValue(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Time
		wantErr bool
	}{
		{in: "2025-03-01", want: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
		{in: "2025-03-01 09:30", want: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{in: "2025-03-01T09:30", want: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{in: "2025-03-01T09:30:00Z", want: time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)},
		{in: "yesterday", wantErr: true},
	}
	for _, tt := range tests {
		var v timeValue
		err := v.Set(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("Set(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !v.Equal(tt.want) {
			t.Errorf("Set(%q) = %v, want %v", tt.in, v.Time, tt.want)
		}
	}
}

func TestDecimalValue(t *testing.T) {
	var v decimalValue
	if err := v.Set(" 3.7667 "); err != nil || v.String() != "3.7667" {
		t.Errorf("Set(3.7667) = %v, %v", v.String(), err)
	}
	if err := v.Set("3,75"); err == nil {
		t.Errorf("Set(3,75) succeeded, want an error")
	}
}

func TestRangeFlags(t *testing.T) {
	today := date.New(2025, time.March, 15)
	tests := []struct {
		name    string
		flags   rangeFlags
		want    date.Range
		wantErr bool
	}{
		{name: "default is all", want: date.All},
		{name: "quick", flags: rangeFlags{quick: "last-month"}, want: date.NewRange(date.New(2025, 2, 1), date.New(2025, 2, 28))},
		{name: "explicit", flags: rangeFlags{start: "2025-03-01", end: "2025-03-10"}, want: date.NewRange(date.New(2025, 3, 1), date.New(2025, 3, 10))},
		{name: "explicit overrides quick", flags: rangeFlags{start: "2025-03-01", quick: "today"}, want: date.Range{From: date.New(2025, 3, 1)}},
		{name: "swapped", flags: rangeFlags{start: "2025-03-10", end: "2025-03-01"}, want: date.NewRange(date.New(2025, 3, 1), date.New(2025, 3, 10))},
		{name: "bad date", flags: rangeFlags{start: "March"}, wantErr: true},
		{name: "bad quick", flags: rangeFlags{quick: "tomorrow"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.flags.Range(today)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Range() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Range() = %v, want %v", got, tt.want)
			}
		})
	}
}
