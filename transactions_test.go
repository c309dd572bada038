package forex

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseKind(t *testing.T) {
	testCases := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"receipt", Receipt, false},
		{"purchase", Receipt, false},
		{" Sale ", Sale, false},
		{"sell", Sale, false},
		{"gift", "", true},
	}
	for _, tc := range testCases {
		got, err := ParseKind(tc.in)
		if (err != nil) != tc.wantErr || got != tc.want {
			t.Errorf("ParseKind(%q) = %q, %v, want %q, err=%v", tc.in, got, err, tc.want, tc.wantErr)
		}
		if tc.wantErr && !errors.Is(err, ErrUnknownKind) {
			t.Errorf("ParseKind(%q) error = %v, want %v", tc.in, err, ErrUnknownKind)
		}
	}
}

func TestTransaction_Source(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want string
	}{
		{"receipt", receipt("r", day(1, 9), "Bank X", "USD", 1, 1), "Bank X"},
		{"sale", sale("s", day(1, 9), "Ali", "Bank Y", "USD", 1, 1, 1), "Bank Y"},
		{"blank receipt", receipt("r", day(1, 9), " ", "USD", 1, 1), Unspecified},
		{"blank sale", sale("s", day(1, 9), "Ali", "", "USD", 1, 1, 1), Unspecified},
	}
	for _, tc := range testCases {
		if got := tc.tx.Source(); got != tc.want {
			t.Errorf("%s: Source() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTransaction_MarshalJSON(t *testing.T) {
	testCases := []struct {
		name string
		tx   Transaction
		want string
	}{
		{
			name: "receipt",
			tx:   receipt("r1", day(1, 9), "Bank X", "USD", 1000, 3.75),
			want: `{"id":"r1","kind":"receipt","time":"2025-03-01T09:00:00Z","counterparty":"Bank X","currency":"USD","quantity":1000,"price":3.75,"total":3750}`,
		},
		{
			name: "sale",
			tx:   sale("s1", day(2, 9), "Ali", "Bank X", "USD", 10, 4, 3.5),
			want: `{"id":"s1","kind":"sale","time":"2025-03-02T09:00:00Z","counterparty":"Ali","supplier":"Bank X","currency":"USD","quantity":10,"price":4,"total":40,"costBasis":3.5,"profit":5}`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := json.Marshal(tc.tx)
			if err != nil {
				t.Fatalf("json.Marshal() failed: %v", err)
			}
			if string(got) != tc.want {
				t.Errorf("json.Marshal() =\n%s\nwant\n%s", got, tc.want)
			}
		})
	}
}

func TestNewSale_Invalid(t *testing.T) {
	inv := NewInventory(nil)
	testCases := []struct {
		name  string
		draft SaleDraft
	}{
		{"no customer", SaleDraft{Supplier: "Bank X", Currency: "USD", Quantity: Q(1), Price: A(1)}},
		{"no supplier", SaleDraft{Customer: "Ali", Currency: "USD", Quantity: Q(1), Price: A(1)}},
		{"zero price", SaleDraft{Customer: "Ali", Supplier: "Bank X", Currency: "USD", Quantity: Q(1)}},
	}
	for _, tc := range testCases {
		if _, err := NewSale(inv, tc.draft); err == nil {
			t.Errorf("%s: NewSale() expected an error", tc.name)
		}
	}
}
