package forex

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/etnz/forex/date"
	"github.com/google/uuid"
)

// Kind identifies the two sorts of records in a ledger.
type Kind string

const (
	// Receipt is an inbound lot of currency, bought from a supplier.
	Receipt Kind = "receipt"
	// Sale is an outbound quantity sold to a customer out of a supplier's stock.
	Sale Kind = "sale"
)

// Unspecified is the supplier name under which records without an
// attribution are bucketed.
const Unspecified = "unspecified"

// TimestampFormat is the format of timestamps in the ledger.
const TimestampFormat = time.RFC3339Nano

var (
	ErrUnknownKind = errors.New("unknown transaction kind")
	ErrOversell    = errors.New("quantity exceeds the available balance")
)

// ParseKind parses a kind. "purchase" is accepted as an alias of receipt.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "receipt", "purchase", "receive":
		return Receipt, nil
	case "sale", "sell":
		return Sale, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
	}
}

// now is the clock used to timestamp new records.
var now = time.Now

// Transaction is a single record of the ledger. Once created it is never
// modified: the ledger only ever grows.
//
// Amounts (Price, Total, CostBasis, Profit) are in the accounting currency,
// Quantity is in Currency.
type Transaction struct {
	ID           string
	Kind         Kind
	Time         time.Time
	Counterparty string // the supplier of a receipt, the customer of a sale.
	Supplier     string // for a sale, the supplier whose stock is sold.
	Currency     string
	Quantity     Quantity
	Price        Money // per unit of Currency
	Total        Money // Quantity × Price, computed once.
	CostBasis    Money // for a sale, the average cost of the stock when it was sold.
	Profit       Money // for a sale, (Price − CostBasis) × Quantity.
	Attachment   string
	Notes        string

	// set by the decoder when the stored line could not be read as is.
	raw    json.RawMessage
	damage []string
}

// Day returns the calendar day of the transaction.
func (t Transaction) Day() date.Date { return date.Of(t.Time) }

// Source returns the supplier whose stock this transaction moves: the
// counterparty of a receipt, the supplier of a sale, or Unspecified.
func (t Transaction) Source() string {
	var s string
	switch t.Kind {
	case Receipt:
		s = t.Counterparty
	case Sale:
		s = t.Supplier
	}
	if strings.TrimSpace(s) == "" {
		return Unspecified
	}
	return s
}

// Check reports why this transaction cannot take part in valuation, or nil.
//
// A malformed transaction is still part of the ledger, it is only left out of
// computed balances and reports.
func (t Transaction) Check() error {
	var errs error
	for _, d := range t.damage {
		errs = errors.Join(errs, errors.New(d))
	}
	switch t.Kind {
	case Receipt, Sale:
	default:
		errs = errors.Join(errs, fmt.Errorf("%w: %q", ErrUnknownKind, t.Kind))
	}
	if strings.TrimSpace(t.Currency) == "" {
		errs = errors.Join(errs, errors.New("currency is missing"))
	}
	if t.Time.IsZero() {
		errs = errors.Join(errs, errors.New("timestamp is missing"))
	}
	if !t.Quantity.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("quantity must be positive, got %s", t.Quantity))
	}
	if t.Price.IsNegative() {
		errs = errors.Join(errs, fmt.Errorf("price must not be negative, got %s", t.Price))
	}
	return errs
}

// Malformed is a shortcut for Check() != nil.
func (t Transaction) Malformed() bool { return t.Check() != nil }

// Equal reports whether both transactions record the same fact.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Kind == o.Kind && t.Time.Equal(o.Time) &&
		t.Counterparty == o.Counterparty && t.Supplier == o.Supplier && t.Currency == o.Currency &&
		t.Quantity.Equal(o.Quantity) && t.Price.Equal(o.Price) && t.Total.Equal(o.Total) &&
		t.CostBasis.Equal(o.CostBasis) && t.Profit.Equal(o.Profit) &&
		t.Attachment == o.Attachment && t.Notes == o.Notes
}

// MarshalJSON writes the transaction with a stable key order. A transaction
// that was read malformed is written back exactly as it was read.
func (t Transaction) MarshalJSON() ([]byte, error) {
	if len(t.raw) > 0 && t.Malformed() {
		return t.raw, nil
	}
	var w jsonObjectWriter
	w.Optional("id", t.ID)
	w.Append("kind", t.Kind)
	w.Append("time", t.Time.Format(TimestampFormat))
	w.Append("counterparty", t.Counterparty)
	w.AppendIf(t.Kind == Sale, "supplier", t.Supplier)
	w.Append("currency", t.Currency)
	w.Append("quantity", t.Quantity)
	w.Append("price", t.Price)
	w.Append("total", t.Total)
	w.AppendIf(t.Kind == Sale, "costBasis", t.CostBasis)
	w.AppendIf(t.Kind == Sale, "profit", t.Profit)
	w.Optional("attachment", t.Attachment)
	w.Optional("notes", t.Notes)
	return w.MarshalJSON()
}

// ReceiptDraft holds what a user types to record a receipt.
type ReceiptDraft struct {
	Time       time.Time // defaults to now
	Supplier   string
	Currency   string
	Quantity   Quantity
	Price      Money
	Attachment string
	Notes      string
}

func (d *ReceiptDraft) validate() error {
	d.Supplier = strings.TrimSpace(d.Supplier)
	d.Currency = strings.TrimSpace(d.Currency)
	var errs error
	if d.Supplier == "" {
		errs = errors.Join(errs, errors.New("supplier is missing"))
	}
	errs = errors.Join(errs, validateAmounts(d.Currency, d.Quantity, d.Price))
	return errs
}

// SaleDraft holds what a user types to record a sale.
type SaleDraft struct {
	Time       time.Time // defaults to now
	Customer   string
	Supplier   string // whose stock is sold
	Currency   string
	Quantity   Quantity
	Price      Money
	Attachment string
	Notes      string
}

func (d *SaleDraft) validate() error {
	d.Customer = strings.TrimSpace(d.Customer)
	d.Supplier = strings.TrimSpace(d.Supplier)
	d.Currency = strings.TrimSpace(d.Currency)
	var errs error
	if d.Customer == "" {
		errs = errors.Join(errs, errors.New("customer is missing"))
	}
	if d.Supplier == "" {
		errs = errors.Join(errs, errors.New("source supplier is missing"))
	}
	errs = errors.Join(errs, validateAmounts(d.Currency, d.Quantity, d.Price))
	return errs
}

func validateAmounts(currency string, quantity Quantity, price Money) error {
	var errs error
	if currency == "" {
		errs = errors.Join(errs, errors.New("currency is missing"))
	}
	if !quantity.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("quantity must be positive, got %s", quantity))
	}
	if !price.IsPositive() {
		errs = errors.Join(errs, fmt.Errorf("price must be positive, got %s", price))
	}
	return errs
}

func stamp(t time.Time) time.Time {
	if t.IsZero() {
		return now()
	}
	return t
}

// NewReceipt creates a receipt from a draft.
func NewReceipt(d ReceiptDraft) (Transaction, error) {
	if err := d.validate(); err != nil {
		return Transaction{}, fmt.Errorf("invalid receipt: %w", err)
	}
	return Transaction{
		ID:           uuid.NewString(),
		Kind:         Receipt,
		Time:         stamp(d.Time),
		Counterparty: d.Supplier,
		Currency:     d.Currency,
		Quantity:     d.Quantity,
		Price:        d.Price,
		Total:        d.Price.Mul(d.Quantity),
		Attachment:   d.Attachment,
		Notes:        d.Notes,
	}, nil
}

// NewSale creates a sale from a draft, stamping it with the average cost of
// the drawn down stock as found in inv.
//
// NewSale does not refuse to oversell, see Inventory.CheckSale. Selling out of
// an unknown stock has a zero cost basis.
func NewSale(inv *Inventory, d SaleDraft) (Transaction, error) {
	if err := d.validate(); err != nil {
		return Transaction{}, fmt.Errorf("invalid sale: %w", err)
	}
	costBasis := inv.Position(d.Supplier, d.Currency).AverageCost
	return Transaction{
		ID:           uuid.NewString(),
		Kind:         Sale,
		Time:         stamp(d.Time),
		Counterparty: d.Customer,
		Supplier:     d.Supplier,
		Currency:     d.Currency,
		Quantity:     d.Quantity,
		Price:        d.Price,
		Total:        d.Price.Mul(d.Quantity),
		CostBasis:    costBasis,
		Profit:       d.Price.Sub(costBasis).Mul(d.Quantity),
		Attachment:   d.Attachment,
		Notes:        d.Notes,
	}, nil
}
