package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/etnz/forex"
	"github.com/etnz/forex/date"
	"github.com/etnz/forex/renderer"
	"github.com/google/subcommands"
)

// --- Inventory Command ---

type inventoryCmd struct {
	supplier string
	json     bool
}

func (*inventoryCmd) Name() string     { return "inventory" }
func (*inventoryCmd) Synopsis() string { return "show the stock on hand and its average cost" }
func (*inventoryCmd) Usage() string {
	return `fx inventory [-supplier <name>] [-json]

  Shows the balance and the weighted average cost of each currency, for all
  suppliers and for each supplier.
`
}

func (c *inventoryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.supplier, "supplier", "", "Only show this supplier's stock")
	f.BoolVar(&c.json, "json", false, "Output the positions in JSON")
}

func (c *inventoryCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}
	inv := ledger.Inventory()
	if c.json {
		positions := inv.Totals()
		if c.supplier != "" {
			positions = inv.Holdings(c.supplier)
		}
		return printJSON(positions)
	}
	printMarkdown(renderer.RenderInventory(inv, c.supplier, accounting(settings)))
	return subcommands.ExitSuccess
}

// --- Report Command ---

type reportCmd struct {
	period       rangeFlags
	supplier     string
	transactions bool
	json         bool
}

func (*reportCmd) Name() string     { return "report" }
func (*reportCmd) Synopsis() string { return "show received, sold and profit over a period" }
func (*reportCmd) Usage() string {
	return `fx report [-r <range> | -s <start> -e <end>] [-supplier <name>] [-tx] [-json]

  Shows the value received, the value sold and the profit of a period, with a
  breakdown per currency. With -supplier, only the receipts from that supplier
  and the sales out of its stock are reported.
`
}

func (c *reportCmd) SetFlags(f *flag.FlagSet) {
	c.period.SetFlags(f)
	f.StringVar(&c.supplier, "supplier", "", "Report on a single supplier")
	f.BoolVar(&c.transactions, "tx", false, "Also list the records of the period")
	f.BoolVar(&c.json, "json", false, "Output the report in JSON")
}

func (c *reportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := reportOptions(&c.period, c.supplier)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}
	r := forex.NewReport(ledger.Transactions(), opts)
	if c.json {
		return printJSON(r)
	}
	printMarkdown(renderer.RenderReport(r, accounting(settings), c.transactions))
	return subcommands.ExitSuccess
}

// reportOptions returns the options of a report over a period, by supplier
// if one is given.
func reportOptions(period *rangeFlags, supplier string) (forex.ReportOptions, error) {
	rng, err := period.Range(date.Today())
	if err != nil {
		return forex.ReportOptions{}, err
	}
	opts := forex.ReportOptions{Range: rng, Mode: forex.General}
	if strings.TrimSpace(supplier) != "" {
		opts.Mode, opts.Supplier = forex.BySupplier, supplier
	}
	return opts, nil
}

// --- Tx Command ---

type txCmd struct {
	kind     string
	search   string
	currency string
	head     int
}

func (*txCmd) Name() string     { return "tx" }
func (*txCmd) Synopsis() string { return "list the records, newest first" }
func (*txCmd) Usage() string {
	return `fx tx [-kind receipt|sale] [-search <text>] [-c <currency>] [-head <n>]

  Lists the records of the ledger, newest first, with their totals.
`
}

func (c *txCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.kind, "kind", "", "Only list receipts or sales")
	f.StringVar(&c.search, "search", "", "Search the customer or the supplier")
	f.StringVar(&c.currency, "c", "", "Only list this currency")
	f.IntVar(&c.head, "head", 0, "Show only the N most recent records")
}

func (c *txCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts := forex.ListOptions{Search: c.search, Currency: c.currency}
	if c.kind != "" {
		kind, err := forex.ParseKind(c.kind)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return subcommands.ExitUsageError
		}
		opts.Kind = kind
	}
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}
	l := forex.NewListing(ledger.Transactions(), opts)
	if c.head > 0 && len(l.Transactions) > c.head {
		l.Transactions = l.Transactions[:c.head]
	}
	printMarkdown(renderer.RenderListing(l, accounting(settings)))
	return subcommands.ExitSuccess
}

// --- Dashboard Command ---

type dashboardCmd struct {
	on string
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "show the overview of the books" }
func (*dashboardCmd) Usage() string {
	return `fx dashboard [-d <date>]

  Shows the total profit, the profit of the day, the stock on hand and the
  latest records.
`
}

func (c *dashboardCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.on, "d", date.Today().String(), "Day of the overview (YYYY-MM-DD)")
}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.on)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.RenderDashboard(forex.NewDashboard(ledger.Transactions(), on), accounting(settings)))
	return subcommands.ExitSuccess
}

// load reads the settings and the ledger, reporting errors on stderr.
func load() (*forex.Settings, *forex.Ledger, subcommands.ExitStatus) {
	settings, err := DecodeSettings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, subcommands.ExitFailure
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return nil, nil, subcommands.ExitFailure
	}
	return settings, ledger, subcommands.ExitSuccess
}

func printJSON(v any) subcommands.ExitStatus {
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
