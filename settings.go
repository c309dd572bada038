package forex

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
)

// ErrLastCurrency is returned when disabling the only active currency.
var ErrLastCurrency = errors.New("at least one currency must stay active")

// Settings are the business configuration of the books: the suppliers and
// currencies offered when recording, and the currency prices are paid in.
//
// Settings never change valuation: records may reference suppliers and
// currencies that are not, or no longer, listed here.
type Settings struct {
	Suppliers          []string `json:"suppliers"`
	Currencies         []string `json:"activeCurrencies"`
	AccountingCurrency string   `json:"accountingCurrency"`
}

// DefaultSettings returns the settings of new books.
func DefaultSettings() *Settings {
	return &Settings{
		Suppliers:          []string{},
		Currencies:         []string{"USD", "EUR", "GBP", "AED", "SAR", "EGP", "TRY"},
		AccountingCurrency: "SAR",
	}
}

// AddSupplier adds a supplier to the known ones.
func (s *Settings) AddSupplier(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("supplier name is empty")
	}
	if slices.Contains(s.Suppliers, name) {
		return fmt.Errorf("supplier %q already exists", name)
	}
	s.Suppliers = append(s.Suppliers, name)
	return nil
}

// RemoveSupplier forgets a supplier. Its records are untouched.
func (s *Settings) RemoveSupplier(name string) error {
	i := slices.Index(s.Suppliers, strings.TrimSpace(name))
	if i < 0 {
		return fmt.Errorf("unknown supplier %q", name)
	}
	s.Suppliers = slices.Delete(s.Suppliers, i, i+1)
	return nil
}

// KnowsSupplier reports whether name is a known supplier.
func (s *Settings) KnowsSupplier(name string) bool {
	return slices.Contains(s.Suppliers, strings.TrimSpace(name))
}

// ToggleCurrency activates an inactive currency or deactivates an active one.
// The last active currency cannot be deactivated. It returns whether the
// currency is now active.
func (s *Settings) ToggleCurrency(code string) (bool, error) {
	code = normalizeCode(code)
	if i := slices.Index(s.Currencies, code); i >= 0 {
		if len(s.Currencies) <= 1 {
			return true, ErrLastCurrency
		}
		s.Currencies = slices.Delete(s.Currencies, i, i+1)
		return false, nil
	}
	s.Currencies = append(s.Currencies, code)
	return true, nil
}

// AddCurrency activates a new currency code, of at least two letters.
func (s *Settings) AddCurrency(code string) error {
	code = normalizeCode(code)
	if len(code) < 2 {
		return fmt.Errorf("invalid currency code %q: at least 2 characters are required", code)
	}
	if slices.Contains(s.Currencies, code) {
		return fmt.Errorf("currency %q is already active", code)
	}
	s.Currencies = append(s.Currencies, code)
	return nil
}

// IsActive reports whether a currency is active.
func (s *Settings) IsActive(code string) bool {
	return slices.Contains(s.Currencies, normalizeCode(code))
}

func normalizeCode(code string) string { return strings.ToUpper(strings.TrimSpace(code)) }

// DecodeSettings reads settings in JSON. Missing values take their defaults.
func DecodeSettings(r io.Reader) (*Settings, error) {
	s := DefaultSettings()
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("cannot decode settings: %w", err)
	}
	if len(s.Currencies) == 0 {
		s.Currencies = DefaultSettings().Currencies
	}
	if s.AccountingCurrency == "" {
		s.AccountingCurrency = DefaultSettings().AccountingCurrency
	}
	return s, nil
}

// EncodeSettings writes settings in indented JSON.
func EncodeSettings(w io.Writer, s *Settings) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("cannot encode settings: %w", err)
	}
	return nil
}
