package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/forex"
	"github.com/etnz/forex/export"
	"github.com/google/subcommands"
)

type exportCmd struct {
	period   rangeFlags
	supplier string
	output   string
	rtl      bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export a report to a spreadsheet" }
func (*exportCmd) Usage() string {
	return `fx export -o <file.xlsx|file.csv> [-r <range> | -s <start> -e <end>] [-supplier <name>] [-rtl]

  Exports the records and the per-currency summary of a report. The format is
  chosen from the file extension: an Excel workbook with a sheet for each, or
  a CSV file.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.period.SetFlags(f)
	f.StringVar(&c.supplier, "supplier", "", "Export a single supplier's report")
	f.StringVar(&c.output, "o", "report.xlsx", "Output file, .xlsx or .csv")
	f.BoolVar(&c.rtl, "rtl", false, "Lay the workbook sheets out right to left")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	opts, err := reportOptions(&c.period, c.supplier)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitUsageError
	}
	ext := strings.ToLower(filepath.Ext(c.output))
	if ext != ".xlsx" && ext != ".csv" {
		fmt.Fprintf(os.Stderr, "Error: unsupported export format %q, use .xlsx or .csv\n", ext)
		return subcommands.ExitUsageError
	}
	settings, ledger, status := load()
	if status != subcommands.ExitSuccess {
		return status
	}
	r := forex.NewReport(ledger.Transactions(), opts)
	settings.AccountingCurrency = accounting(settings)

	if ext == ".csv" {
		err = writeCSV(c.output, r, settings)
	} else {
		err = writeWorkbook(c.output, r, settings, c.rtl)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Exported %d records to %s.\n", len(r.Transactions), c.output)
	return subcommands.ExitSuccess
}

func writeWorkbook(name string, r *forex.Report, settings *forex.Settings, rtl bool) error {
	wb, err := export.Workbook(r, settings, rtl)
	if err != nil {
		return err
	}
	defer wb.Close()
	if err := wb.SaveAs(name); err != nil {
		return fmt.Errorf("cannot save workbook %q: %w", name, err)
	}
	return nil
}

func writeCSV(name string, r *forex.Report, settings *forex.Settings) error {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("cannot create %q: %w", name, err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, r, settings); err != nil {
		return err
	}
	return f.Close()
}
