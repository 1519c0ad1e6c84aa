package widget

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dnldd/chartview/shared"
	"github.com/peterldowns/testy/assert"
	"github.com/tidwall/gjson"
)

func TestNormalize(t *testing.T) {
	table := DefaultAliasTable()
	table.venues["NASDAQ"] = struct{}{}
	table.tickers["BRK.B"] = "BRK-B"

	tests := []struct {
		name   string
		ticker string
		want   string
	}{
		{
			name:   "known venue strips leading zeros",
			ticker: "HKEX:00700",
			want:   "HKEX:700",
		},
		{
			name:   "venue match is case insensitive",
			ticker: "hkex:00700",
			want:   "hkex:700",
		},
		{
			name:   "all zero symbol reduces to a single zero",
			ticker: "HKEX:0000",
			want:   "HKEX:0",
		},
		{
			name:   "no leading zeros passes through",
			ticker: "NASDAQ:AAPL",
			want:   "NASDAQ:AAPL",
		},
		{
			name:   "unknown venue left untouched",
			ticker: "LSE:0041",
			want:   "LSE:0041",
		},
		{
			name:   "aliased ticker rewritten",
			ticker: "BRK.B",
			want:   "BRK-B",
		},
		{
			name:   "plain ticker passes through",
			ticker: "AAPL",
			want:   "AAPL",
		},
		{
			name:   "known venue with empty symbol passes through",
			ticker: "HKEX:",
			want:   "HKEX:",
		},
		{
			name:   "empty ticker passes through",
			ticker: "",
			want:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.Normalize(tt.ticker)
			assert.Equal(t, got, tt.want)
		})
	}

	// Ensure the package level helper uses the built in table.
	assert.Equal(t, NormalizeTicker("HKEX:00005"), "HKEX:5")
	assert.Equal(t, NormalizeTicker("AAPL"), "AAPL")
}

func TestLoadAliasTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aliases.yaml")
	contents := `venues:
  - nyse
tickers:
  BRK.B: BRK-B
`
	err := os.WriteFile(path, []byte(contents), 0o644)
	assert.NoError(t, err)

	table, err := LoadAliasTable(path)
	assert.NoError(t, err)

	// Overrides merge over the built in table.
	assert.Equal(t, table.Normalize("NYSE:007"), "NYSE:7")
	assert.Equal(t, table.Normalize("HKEX:00700"), "HKEX:700")
	assert.Equal(t, table.Normalize("BRK.B"), "BRK-B")

	// Ensure a missing file errors.
	_, err = LoadAliasTable(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWidgetConfig(t *testing.T) {
	table := DefaultAliasTable()

	cfg, err := NewConfig(table, "HKEX:00700", shared.OneHour, Dark, "en", "UTC")
	assert.NoError(t, err)
	assert.Equal(t, cfg.Symbol, "HKEX:700")
	assert.Equal(t, cfg.Interval, "1h")
	assert.Equal(t, cfg.Theme, "dark")

	data, err := cfg.Encode()
	assert.NoError(t, err)

	parsed := gjson.ParseBytes(data)
	assert.Equal(t, parsed.Get("symbol").String(), "HKEX:700")
	assert.Equal(t, parsed.Get("interval").String(), "1h")
	assert.Equal(t, parsed.Get("theme").String(), "dark")
	assert.Equal(t, parsed.Get("timezone").String(), "UTC")

	// Ensure a nil alias table errors.
	_, err = NewConfig(nil, "AAPL", shared.OneHour, Light, "en", "UTC")
	assert.Error(t, err)

	// Ensure an invalid timezone errors.
	_, err = NewConfig(table, "AAPL", shared.OneHour, Light, "en", "Mars/Olympus")
	assert.Error(t, err)
}

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme("dark")
	assert.NoError(t, err)
	assert.Equal(t, theme, Dark)

	theme, err = ParseTheme("")
	assert.NoError(t, err)
	assert.Equal(t, theme, Light)

	_, err = ParseTheme("sepia")
	assert.Error(t, err)
}
