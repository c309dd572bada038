package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/forex"
	"github.com/etnz/forex/renderer"
	"github.com/google/subcommands"
)

// --- Receive Command ---

type receiveCmd struct {
	when       timeValue
	supplier   string
	currency   string
	quantity   decimalValue
	price      decimalValue
	notes      string
	attachment string
}

func (*receiveCmd) Name() string     { return "receive" }
func (*receiveCmd) Synopsis() string { return "record a lot of currency bought from a supplier" }
func (*receiveCmd) Usage() string {
	return `fx receive -supplier <name> -c <currency> -q <quantity> -p <price> [-t <time>] [-notes <text>]

  Records a receipt: quantity units of currency bought from a supplier, at a
  unit price in the accounting currency.
`
}

func (c *receiveCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.when, "t", "Time of the receipt (YYYY-MM-DD [HH:MM]), defaults to now")
	f.StringVar(&c.supplier, "supplier", "", "Supplier the currency was bought from")
	f.StringVar(&c.currency, "c", "", "Currency code")
	f.Var(&c.quantity, "q", "Quantity of currency")
	f.Var(&c.price, "p", "Unit price, in the accounting currency")
	f.StringVar(&c.notes, "notes", "", "Free notes")
	f.StringVar(&c.attachment, "attachment", "", "Reference to a receipt document")
}

func (c *receiveCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := DecodeSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := ledger.Receive(forex.ReceiptDraft{
		Time:       c.when.Time,
		Supplier:   c.supplier,
		Currency:   c.currency,
		Quantity:   forex.Q(c.quantity.Decimal),
		Price:      forex.A(c.price.Decimal),
		Attachment: c.attachment,
		Notes:      c.notes,
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	warnUnknown(settings, tx.Counterparty, tx.Currency)
	return appendAndPrint(tx, accounting(settings))
}

// --- Sell Command ---

type sellCmd struct {
	when       timeValue
	customer   string
	supplier   string
	currency   string
	quantity   decimalValue
	price      decimalValue
	notes      string
	attachment string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale out of a supplier's stock" }
func (*sellCmd) Usage() string {
	return `fx sell -customer <name> -supplier <name> -c <currency> -q <quantity> -p <price> [-t <time>] [-notes <text>]

  Records a sale to a customer, drawn from the stock bought from a supplier.
  The sale is refused if it exceeds that supplier's balance. Its cost basis is
  the current average cost of that stock.
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.when, "t", "Time of the sale (YYYY-MM-DD [HH:MM]), defaults to now")
	f.StringVar(&c.customer, "customer", "", "Customer the currency is sold to")
	f.StringVar(&c.supplier, "supplier", "", "Supplier whose stock is sold")
	f.StringVar(&c.currency, "c", "", "Currency code")
	f.Var(&c.quantity, "q", "Quantity of currency")
	f.Var(&c.price, "p", "Unit price, in the accounting currency")
	f.StringVar(&c.notes, "notes", "", "Free notes")
	f.StringVar(&c.attachment, "attachment", "", "Reference to a receipt document")
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := DecodeSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	tx, err := ledger.Sell(forex.SaleDraft{
		Time:       c.when.Time,
		Customer:   c.customer,
		Supplier:   c.supplier,
		Currency:   c.currency,
		Quantity:   forex.Q(c.quantity.Decimal),
		Price:      forex.A(c.price.Decimal),
		Attachment: c.attachment,
		Notes:      c.notes,
	})
	if errors.Is(err, forex.ErrOversell) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		f.Usage()
		return subcommands.ExitUsageError
	}
	warnUnknown(settings, tx.Supplier, tx.Currency)
	return appendAndPrint(tx, accounting(settings))
}

// warnUnknown warns about a supplier or a currency that are not in the settings.
func warnUnknown(settings *forex.Settings, supplier, currency string) {
	if !settings.KnowsSupplier(supplier) {
		fmt.Fprintf(os.Stderr, "Warning: supplier %q is not in the settings, see 'fx supplier -add'.\n", supplier)
	}
	if !settings.IsActive(currency) {
		fmt.Fprintf(os.Stderr, "Warning: currency %q is not active, see 'fx currency -add'.\n", currency)
	}
}

func appendAndPrint(tx forex.Transaction, acc string) subcommands.ExitStatus {
	if err := appendTransactions(tx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintln(stdout, renderer.Transaction(tx, acc))
	return subcommands.ExitSuccess
}
