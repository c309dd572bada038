package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/etnz/forex"
	"github.com/google/subcommands"
)

// --- Supplier Command ---

type supplierCmd struct {
	add    string
	remove string
}

func (*supplierCmd) Name() string     { return "supplier" }
func (*supplierCmd) Synopsis() string { return "list, add or remove suppliers" }
func (*supplierCmd) Usage() string {
	return `fx supplier [-add <name> | -rm <name>]

  Without flags, lists the suppliers of the settings and the ones only found
  in the ledger. Removing a supplier does not change its records.
`
}

func (c *supplierCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Add a supplier")
	f.StringVar(&c.remove, "rm", "", "Remove a supplier")
}

func (c *supplierCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := DecodeSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add != "" && c.remove != "":
		fmt.Fprintln(os.Stderr, "Error: -add and -rm are exclusive")
		return subcommands.ExitUsageError
	case c.add != "":
		err = settings.AddSupplier(c.add)
	case c.remove != "":
		err = settings.RemoveSupplier(c.remove)
	default:
		return c.list(settings)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeSettings(settings); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return c.list(settings)
}

func (c *supplierCmd) list(settings *forex.Settings) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	var b strings.Builder
	b.WriteString("# Suppliers\n\n")
	for _, s := range settings.Suppliers {
		fmt.Fprintf(&b, "- %s\n", s)
	}
	if len(settings.Suppliers) == 0 {
		b.WriteString("No supplier yet, see `fx supplier -add`.\n")
	}
	var unknown []string
	for _, s := range ledger.Inventory().Suppliers() {
		if !settings.KnowsSupplier(s) {
			unknown = append(unknown, s)
		}
	}
	if len(unknown) > 0 {
		b.WriteString("\nOnly found in the ledger:\n\n")
		for _, s := range unknown {
			fmt.Fprintf(&b, "- %s\n", s)
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// --- Currency Command ---

type currencyCmd struct {
	toggle string
	add    string
}

func (*currencyCmd) Name() string     { return "currency" }
func (*currencyCmd) Synopsis() string { return "list, add or toggle the active currencies" }
func (*currencyCmd) Usage() string {
	return `fx currency [-add <code> | -toggle <code>]

  Without flags, lists the active currencies and the accounting currency.
  The last active currency cannot be deactivated.
`
}

func (c *currencyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.toggle, "toggle", "", "Activate or deactivate a currency")
	f.StringVar(&c.add, "add", "", "Activate a new currency code")
}

func (c *currencyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := DecodeSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	switch {
	case c.add != "" && c.toggle != "":
		fmt.Fprintln(os.Stderr, "Error: -add and -toggle are exclusive")
		return subcommands.ExitUsageError
	case c.add != "":
		err = settings.AddCurrency(c.add)
	case c.toggle != "":
		_, err = settings.ToggleCurrency(c.toggle)
	default:
		return c.list(settings)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := EncodeSettings(settings); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return c.list(settings)
}

func (c *currencyCmd) list(settings *forex.Settings) subcommands.ExitStatus {
	var b strings.Builder
	fmt.Fprintf(&b, "# Currencies\n\nAccounting currency: %s\n\n", accounting(settings))
	active := slices.Clone(settings.Currencies)
	slices.Sort(active)
	for _, code := range active {
		if forex.KnownCurrency(code) {
			fmt.Fprintf(&b, "- %s\n", code)
		} else {
			fmt.Fprintf(&b, "- %s (not an ISO 4217 code)\n", code)
		}
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
