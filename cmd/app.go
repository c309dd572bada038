// Package cmd implements the CLI application to keep the books of a currency
// exchange desk.
package cmd

import (
	"errors"
	"flag"
	"io/fs"
	"log"
	"os"
	"strconv"
	"sync"

	"github.com/etnz/forex/logger"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Environment variables holding the defaults of the global flags.
const (
	EnvLedgerFile   = "FX_LEDGER_FILE"
	EnvSettingsFile = "FX_SETTINGS_FILE"
	EnvCurrency     = "FX_CURRENCY"
	EnvVerbose      = "FX_VERBOSE"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	ledgerFile         = new(string)
	settingsFile       = new(string)
	accountingCurrency = new(string)
	Verbose            = new(bool)
)

// SetFlags declares the global flags on f. Their defaults come from the
// environment, that can be completed by a .env file in the current directory.
func SetFlags(f *flag.FlagSet) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("warning: cannot load .env file: %v", err)
	}
	f.StringVar(ledgerFile, "ledger", getenv(EnvLedgerFile, "ledger.jsonl"), "Path to the ledger file (JSONL format)")
	f.StringVar(settingsFile, "settings", getenv(EnvSettingsFile, "settings.json"), "Path to the settings file")
	f.StringVar(accountingCurrency, "currency", os.Getenv(EnvCurrency), "Accounting currency used to display amounts, overrides the settings")
	verbose, _ := strconv.ParseBool(os.Getenv(EnvVerbose))
	f.BoolVar(Verbose, "v", verbose, "Verbose logging")
}

func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&receiveCmd{}, "records")
	c.Register(&sellCmd{}, "records")
	c.Register(&importCmd{}, "records")
	c.Register(&fmtCmd{}, "records")

	c.Register(&inventoryCmd{}, "reports")
	c.Register(&reportCmd{}, "reports")
	c.Register(&txCmd{}, "reports")
	c.Register(&dashboardCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")
	c.Register(&publishCmd{}, "reports")
	c.Register(&assistCmd{}, "reports")

	c.Register(&supplierCmd{}, "settings")
	c.Register(&currencyCmd{}, "settings")

	c.Register(&topicCmd{}, "help")
}

var (
	appLog     *zap.Logger
	appLogOnce sync.Once
)

// appLogger returns the application logger, built on first use from the
// verbose flag.
func appLogger() *zap.Logger {
	appLogOnce.Do(func() {
		l, err := logger.New(*Verbose)
		if err != nil {
			log.Printf("warning: cannot create logger: %v", err)
			l = zap.NewNop()
		}
		appLog = l
	})
	return appLog
}
