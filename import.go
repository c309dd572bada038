package forex

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/uuid"
)

// DefaultImportPath selects the records of a backup document.
const DefaultImportPath = "$.transactions[*]"

// importSpace is the namespace of the ids given to imported records that
// have none.
var importSpace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/etnz/forex/import"))

// importFields maps the field names of exported records to ledger field names.
var importFields = map[string]string{
	"id":            "id",
	"type":          "kind",
	"partyName":     "counterparty",
	"supplierName":  "supplier",
	"currency":      "currency",
	"quantity":      "quantity",
	"price":         "price",
	"purchasePrice": "costBasis",
	"total":         "total",
	"profit":        "profit",
	"date":          "time",
	"image":         "attachment",
	"notes":         "notes",
}

// ImportJSON extracts records from a JSON document, typically a backup of
// the books made by another tool.
//
// path is a jsonpath expression selecting the records (DefaultImportPath if
// empty). Each record is read with the same tolerance as a ledger line: a
// record that cannot be read is returned malformed, not as an error. Stored
// cost basis and profit are kept as they are.
//
// A record without an id gets one derived from its content and from the
// number of identical records before it, so that importing the same
// document again yields the same ids.
func ImportJSON(r io.Reader, path string) ([]Transaction, error) {
	if path == "" {
		path = DefaultImportPath
	}
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var jobj any
	if err := dec.Decode(&jobj); err != nil {
		return nil, fmt.Errorf("cannot decode import document: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot select %q in import document: %w", path, err)
	}
	// a path selecting a single record returns it unwrapped.
	items, ok := jval.([]any)
	if !ok {
		items = []any{jval}
	}

	txs := make([]Transaction, 0, len(items))
	seen := make(map[string]int)
	for _, item := range items {
		tx, err := importTransaction(item, seen)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// importTransaction renames the fields of an exported record and decodes it
// as a ledger line. seen counts the id-less records already imported by
// content.
func importTransaction(item any, seen map[string]int) (Transaction, error) {
	fields, ok := item.(map[string]any)
	if !ok {
		line, err := json.Marshal(item)
		if err != nil {
			return Transaction{}, fmt.Errorf("cannot read imported record: %w", err)
		}
		return decodeTransaction(line), nil
	}
	renamed := make(map[string]any, len(fields))
	for k, v := range fields {
		if name, ok := importFields[k]; ok {
			renamed[name] = v
		}
	}
	if id, _ := renamed["id"].(string); id == "" {
		delete(renamed, "id")
		// map keys are marshalled sorted: the content is canonical.
		content, err := json.Marshal(renamed)
		if err != nil {
			return Transaction{}, fmt.Errorf("cannot read imported record: %w", err)
		}
		n := seen[string(content)]
		seen[string(content)]++
		renamed["id"] = uuid.NewSHA1(importSpace, fmt.Appendf(content, "#%d", n)).String()
	}
	line, err := json.Marshal(renamed)
	if err != nil {
		return Transaction{}, fmt.Errorf("cannot read imported record: %w", err)
	}
	tx := decodeTransaction(line)
	if _, ok := fields["total"]; !ok && !tx.Malformed() {
		tx.Total = tx.Price.Mul(tx.Quantity)
	}
	return tx, nil
}
