package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dnldd/chartview/shared"
)

// Theme represents a chart widget color theme.
type Theme int

const (
	Light Theme = iota
	Dark
)

// String stringifies the provided theme.
func (t Theme) String() string {
	switch t {
	case Light:
		return "light"
	case Dark:
		return "dark"
	default:
		return "unknown"
	}
}

// ParseTheme parses a theme from the provided string.
func ParseTheme(theme string) (Theme, error) {
	switch theme {
	case "light", "":
		return Light, nil
	case "dark":
		return Dark, nil
	default:
		return 0, fmt.Errorf("unknown theme provided: %s", theme)
	}
}

// Config represents an embeddable chart widget configuration.
type Config struct {
	// Symbol is the charted ticker, normalized for the market data provider.
	Symbol string `json:"symbol"`
	// Interval is the charted interval.
	Interval string `json:"interval"`
	// Theme is the widget color theme.
	Theme string `json:"theme"`
	// Locale is the widget display locale.
	Locale string `json:"locale"`
	// Timezone is the widget display timezone.
	Timezone string `json:"timezone"`
}

// NewConfig initializes a widget configuration for the provided ticker and
// interval, normalizing the ticker with the provided alias table.
func NewConfig(table *AliasTable, ticker string, interval shared.Interval, theme Theme, locale string, timezone string) (*Config, error) {
	if table == nil {
		return nil, fmt.Errorf("alias table cannot be nil")
	}

	cfg := &Config{
		Symbol:   table.Normalize(ticker),
		Interval: interval.String(),
		Theme:    theme.String(),
		Locale:   locale,
		Timezone: timezone,
	}

	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if cfg.Symbol == "" {
		errs = errors.Join(errs, fmt.Errorf("symbol cannot be an empty string"))
	}
	if _, err := shared.ParseInterval(cfg.Interval); err != nil {
		errs = errors.Join(errs, err)
	}
	if _, err := ParseTheme(cfg.Theme); err != nil {
		errs = errors.Join(errs, err)
	}
	if cfg.Timezone != "" {
		if _, err := time.LoadLocation(cfg.Timezone); err != nil {
			errs = errors.Join(errs, fmt.Errorf("unknown timezone provided: %s", cfg.Timezone))
		}
	}

	return errs
}

// Encode marshals the config to its embeddable json form.
func (cfg *Config) Encode() ([]byte, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("encoding widget config: %w", err)
	}
	return data, nil
}
