package widget

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AliasTable maps vendor ticker spellings to the spellings expected by the
// market data provider.
type AliasTable struct {
	venues  map[string]struct{}
	tickers map[string]string
}

// aliasFile is the on disk representation of an alias table override.
type aliasFile struct {
	Venues  []string          `yaml:"venues"`
	Tickers map[string]string `yaml:"tickers"`
}

// DefaultAliasTable returns the built in alias table.
func DefaultAliasTable() *AliasTable {
	return &AliasTable{
		venues: map[string]struct{}{
			"HKEX": {},
		},
		tickers: map[string]string{},
	}
}

// LoadAliasTable loads an alias table override from the provided yaml file,
// merged over the built in table.
func LoadAliasTable(path string) (*AliasTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading alias file: %w", err)
	}

	var file aliasFile
	err = yaml.Unmarshal(data, &file)
	if err != nil {
		return nil, fmt.Errorf("parsing alias file: %w", err)
	}

	table := DefaultAliasTable()
	for _, venue := range file.Venues {
		table.venues[strings.ToUpper(venue)] = struct{}{}
	}
	for ticker, alias := range file.Tickers {
		table.tickers[ticker] = alias
	}

	return table, nil
}

// stripLeadingZeros removes leading zeros from the provided symbol. A symbol
// of only zeros reduces to a single zero.
func stripLeadingZeros(symbol string) string {
	stripped := strings.TrimLeft(symbol, "0")
	if stripped == "" && symbol != "" {
		return "0"
	}
	return stripped
}

// Normalize rewrites the provided ticker to the spelling expected by the
// market data provider. Venue prefixed tickers on known venues have leading
// zeros stripped from the symbol, keeping the venue spelling as given. An
// empty symbol is not a zero symbol, it passes through unchanged. All other
// tickers go through the alias table and otherwise pass unchanged.
func (t *AliasTable) Normalize(ticker string) string {
	venue, symbol, found := strings.Cut(ticker, ":")
	if found && symbol != "" {
		_, known := t.venues[strings.ToUpper(venue)]
		if known {
			return fmt.Sprintf("%s:%s", venue, stripLeadingZeros(symbol))
		}
	}

	alias, ok := t.tickers[ticker]
	if ok {
		return alias
	}

	return ticker
}

// NormalizeTicker normalizes the provided ticker using the built in alias
// table.
func NormalizeTicker(ticker string) string {
	return DefaultAliasTable().Normalize(ticker)
}
