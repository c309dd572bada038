package forex

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// jtransaction is the ledger line as read from the file. Numbers are kept raw
// so that a single bad value damages only its field, not the whole line.
type jtransaction struct {
	ID           string          `json:"id"`
	Kind         string          `json:"kind"`
	Time         string          `json:"time"`
	Counterparty string          `json:"counterparty"`
	Supplier     string          `json:"supplier"`
	Currency     string          `json:"currency"`
	Quantity     json.RawMessage `json:"quantity"`
	Price        json.RawMessage `json:"price"`
	Total        json.RawMessage `json:"total"`
	CostBasis    json.RawMessage `json:"costBasis"`
	Profit       json.RawMessage `json:"profit"`
	Attachment   string          `json:"attachment"`
	Notes        string          `json:"notes"`
}

// coercer reads loosely typed values, collecting what it could not read.
type coercer struct {
	damage []string
}

// number reads a JSON number or a numeric string. Missing and null values
// are zero.
func (c *coercer) number(field string, raw json.RawMessage) decimal.Decimal {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || string(raw) == "null" {
		return decimal.Zero
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			c.damage = append(c.damage, fmt.Sprintf("%s is not a number: %s", field, raw))
			return decimal.Zero
		}
		if strings.TrimSpace(s) == "" {
			return decimal.Zero
		}
		raw = []byte(strings.TrimSpace(s))
	}
	d, err := decimal.NewFromString(string(raw))
	if err != nil {
		c.damage = append(c.damage, fmt.Sprintf("%s is not a number: %s", field, raw))
		return decimal.Zero
	}
	return d
}

// timestamp reads an RFC 3339 timestamp, or a bare date at midnight UTC.
func (c *coercer) timestamp(field, s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	c.damage = append(c.damage, fmt.Sprintf("%s is not a timestamp: %q", field, s))
	return time.Time{}
}

// kind reads a kind, unknown ones are kept verbatim and rejected by Check.
func (c *coercer) kind(s string) Kind {
	k, err := ParseKind(s)
	if err != nil {
		return Kind(s)
	}
	return k
}

// decodeTransaction decodes a ledger line. It never fails: what cannot be
// read is recorded as damage on the returned transaction.
func decodeTransaction(line []byte) Transaction {
	raw := json.RawMessage(bytes.Clone(line))
	var jt jtransaction
	if err := json.Unmarshal(line, &jt); err != nil {
		return Transaction{raw: raw, damage: []string{fmt.Sprintf("not a transaction: %v", err)}}
	}
	var c coercer
	tx := Transaction{
		ID:           jt.ID,
		Kind:         c.kind(jt.Kind),
		Time:         c.timestamp("time", jt.Time),
		Counterparty: jt.Counterparty,
		Supplier:     jt.Supplier,
		Currency:     jt.Currency,
		Quantity:     Q(c.number("quantity", jt.Quantity)),
		Price:        A(c.number("price", jt.Price)),
		Total:        A(c.number("total", jt.Total)),
		CostBasis:    A(c.number("costBasis", jt.CostBasis)),
		Profit:       A(c.number("profit", jt.Profit)),
		Attachment:   jt.Attachment,
		Notes:        jt.Notes,
	}
	tx.damage = c.damage
	// a record left out of valuation is written back as it was read.
	if tx.Malformed() {
		tx.raw = raw
	}
	return tx
}

// DecodeLedger decodes transactions from a stream of JSONL data, one
// transaction per line, and returns a chronologically sorted Ledger.
//
// Lines that cannot be read are not an error: they are kept in the ledger,
// and left out of valuation (see Transaction.Check).
func DecodeLedger(r io.Reader) (*Ledger, error) {
	ledger := NewLedger()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024) // attachments can be large

	var txs []Transaction
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue // Skip empty lines
		}
		txs = append(txs, decodeTransaction(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	ledger.Append(txs...)
	return ledger, nil
}

// EncodeTransaction marshals a single transaction to JSON and writes it to the
// writer, followed by a newline, in JSONL format.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	data, err := tx.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal transaction %q: %w", tx.ID, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write transaction: %w", err)
	}
	return nil
}

// EncodeLedger persists all transactions in chronological order, in JSONL format.
func EncodeLedger(w io.Writer, ledger *Ledger) error {
	for _, tx := range ledger.Transactions() {
		if err := EncodeTransaction(w, tx); err != nil {
			return err
		}
	}
	return nil
}
