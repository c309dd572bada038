package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/forex"
	"github.com/etnz/forex/logger"
	"github.com/google/subcommands"
	"go.uber.org/zap"
)

// --- Import Command ---

type importCmd struct {
	path string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import records from a JSON backup" }
func (*importCmd) Usage() string {
	return `fx import [-path <jsonpath>] [<file>]

  Appends the records of a JSON document (stdin if no file is given) to the
  ledger. Records whose id is already in the ledger are skipped, so importing
  the same backup twice is harmless. The stored cost basis and profit of sales
  are kept as they are.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.path, "path", forex.DefaultImportPath, "jsonpath selecting the records in the document")
}

func (c *importCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	var r io.Reader = os.Stdin
	switch f.NArg() {
	case 0:
	case 1:
		file, err := os.Open(f.Arg(0))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", f.Arg(0), err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		r = file
	default:
		f.Usage()
		return subcommands.ExitUsageError
	}

	imported, err := forex.ImportJSON(r, c.path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	log := logger.Named(appLogger(), "import")
	var fresh []forex.Transaction
	malformed := 0
	for _, tx := range imported {
		if tx.ID != "" {
			if _, exists := ledger.Get(tx.ID); exists {
				log.Debug("record already in the ledger", zap.String("id", tx.ID))
				continue
			}
		}
		if err := tx.Check(); err != nil {
			log.Warn("imported record is malformed", zap.String("id", tx.ID), zap.Error(err))
			malformed++
		}
		ledger.Append(tx)
		fresh = append(fresh, tx)
	}
	if err := appendTransactions(fresh...); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Imported %d records (%d already present, %d malformed).\n", len(fresh), len(imported)-len(fresh), malformed)
	return subcommands.ExitSuccess
}

// --- Fmt Command ---

type fmtCmd struct{}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "rewrite the ledger in its canonical form" }
func (*fmtCmd) Usage() string {
	return `fx fmt

  Rewrites the ledger file sorted chronologically, one record per line.
  Lines that cannot be read are kept as they are.
`
}

func (*fmtCmd) SetFlags(f *flag.FlagSet) {}

func (*fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := DecodeLedger()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := EncodeLedger(ledger); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(stdout, "Formatted %d records in %s.\n", ledger.Len(), *ledgerFile)
	return subcommands.ExitSuccess
}
