package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/etnz/forex"
	"github.com/etnz/forex/logger"
	"go.uber.org/zap"
)

// DecodeLedger reads the ledger file. A missing file is an empty ledger.
func DecodeLedger() (*forex.Ledger, error) {
	log := logger.Named(appLogger(), "store")
	f, err := os.Open(*ledgerFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("ledger does not exist, starting with an empty one", zap.String("file", *ledgerFile))
		return forex.NewLedger(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	ledger, err := forex.DecodeLedger(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read ledger %q: %w", *ledgerFile, err)
	}
	log.Debug("ledger loaded", zap.String("file", *ledgerFile), zap.Int("records", ledger.Len()))
	for _, tx := range ledger.Transactions() {
		if err := tx.Check(); err != nil {
			log.Warn("malformed record left out of balances", zap.String("id", tx.ID), zap.Error(err))
		}
	}
	return ledger, nil
}

// appendTransactions appends records to the ledger file, creating it if needed.
func appendTransactions(txs ...forex.Transaction) error {
	log := logger.Named(appLogger(), "store")
	// Open the file in append mode, creating it if it doesn't exist.
	f, err := os.OpenFile(*ledgerFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("cannot open ledger %q: %w", *ledgerFile, err)
	}
	defer f.Close()

	for _, tx := range txs {
		if err := forex.EncodeTransaction(f, tx); err != nil {
			return fmt.Errorf("cannot write to ledger %q: %w", *ledgerFile, err)
		}
		log.Debug("record appended", zap.String("id", tx.ID), zap.String("kind", string(tx.Kind)))
	}
	return f.Close()
}

// EncodeLedger rewrites the whole ledger file.
func EncodeLedger(ledger *forex.Ledger) error {
	f, err := os.Create(*ledgerFile)
	if err != nil {
		return fmt.Errorf("error opening ledger file %q for writing: %w", *ledgerFile, err)
	}
	defer f.Close()

	if err := forex.EncodeLedger(f, ledger); err != nil {
		return err
	}
	logger.Named(appLogger(), "store").Debug("ledger written", zap.String("file", *ledgerFile), zap.Int("records", ledger.Len()))
	return f.Close()
}

// DecodeSettings reads the settings file. A missing file gives the default settings.
func DecodeSettings() (*forex.Settings, error) {
	f, err := os.Open(*settingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Named(appLogger(), "store").Info("settings do not exist, using defaults", zap.String("file", *settingsFile))
		return forex.DefaultSettings(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open settings %q: %w", *settingsFile, err)
	}
	defer f.Close()
	return forex.DecodeSettings(f)
}

// EncodeSettings writes the settings file.
func EncodeSettings(s *forex.Settings) error {
	f, err := os.Create(*settingsFile)
	if err != nil {
		return fmt.Errorf("cannot open settings %q for writing: %w", *settingsFile, err)
	}
	defer f.Close()
	if err := forex.EncodeSettings(f, s); err != nil {
		return err
	}
	return f.Close()
}

// accounting returns the currency amounts are displayed in.
func accounting(s *forex.Settings) string {
	if *accountingCurrency != "" {
		return *accountingCurrency
	}
	return s.AccountingCurrency
}
