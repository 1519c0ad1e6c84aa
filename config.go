package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is the configuration struct for the service.
type Config struct {
	// Tickers represents the charted tickers.
	Tickers []string
	// Interval is the charted interval.
	Interval string
	// FMPAPIkey is the FMP service API Key.
	FMPAPIKey string
	// DatabaseEndpoint is the candle cache endpoint.
	DatabaseEndpoint string
	// DatabaseUser is the candle cache user.
	DatabaseUser string
	// DatabasePass is the candle cache user pass.
	DatabasePass string
	// Theme is the widget color theme.
	Theme string
	// Locale is the widget display locale.
	Locale string
	// Timezone is the widget display timezone.
	Timezone string
	// AliasFilePath is the filepath to a ticker alias override.
	AliasFilePath string
	// ShowVolume toggles the volume panel.
	ShowVolume bool
	// MAWindow is the moving average overlay window.
	MAWindow int

	registeredFlags map[string]bool
}

// Validate asserts the config sane inputs.
func (cfg *Config) Validate() error {
	var errs error

	if len(cfg.Tickers) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no tickers provided for chart service"))
	}
	if cfg.FMPAPIKey == "" {
		errs = errors.Join(errs, fmt.Errorf("fmp api key cannot be an empty string"))
	}
	if cfg.MAWindow < 0 {
		errs = errors.Join(errs, fmt.Errorf("moving average window cannot be negative"))
	}

	return errs
}

// registerFlag registers command line arguments of any type and tracks them to avoid reregistration.
func (cfg *Config) registerFlag(name string, value interface{}, usage string) error {
	if cfg.registeredFlags == nil {
		cfg.registeredFlags = make(map[string]bool)
	}

	if cfg.registeredFlags[name] {
		return nil
	}

	cfg.registeredFlags[name] = true

	defValue := os.Getenv(name)
	val := reflect.ValueOf(value)
	if val.Kind() != reflect.Ptr || val.IsNil() {
		return fmt.Errorf("%s: value must be a non-nil pointer", name)
	}

	switch val.Elem().Kind() {
	case reflect.String:
		flag.StringVar(value.(*string), name, defValue, usage)
	case reflect.Bool:
		var def bool
		if defValue != "" {
			def, _ = strconv.ParseBool(defValue)
		}
		flag.BoolVar(value.(*bool), name, def, usage)
	case reflect.Int:
		var def int
		if defValue != "" {
			def, _ = strconv.Atoi(defValue)
		}
		flag.IntVar(value.(*int), name, def, usage)
	case reflect.Slice:
		// Only handle []string
		if val.Elem().Type().Elem().Kind() == reflect.String {
			var def []string
			if defValue != "" {
				def = strings.Split(defValue, ",")
			}
			flag.Func(name, usage, func(s string) error {
				*value.(*[]string) = strings.Split(s, ",")
				return nil
			})
			// Set default if not provided via flag
			if len(def) > 0 {
				*value.(*[]string) = def
			}
		} else {
			return fmt.Errorf("%s: unsupported slice type", name)
		}
	default:
		return fmt.Errorf("%s: unsupported type", name)
	}

	return nil
}

// loadConfig loads the configuration from environment variables and command line flags.
func loadConfig(cfg *Config, path string) error {
	if path == "" {
		path = ".env"
	}

	// Check if the expected .env file exists before loading it.
	_, err := os.Stat(path)
	if err == nil {
		err := godotenv.Load(path)
		if err != nil {
			return fmt.Errorf("loading .env file: %w", err)
		}
	}

	// Register command line arguments using loaded environment variables as defaults.
	err = cfg.registerFlag("tickers", &cfg.Tickers, "the charted tickers")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("interval", &cfg.Interval, "the charted interval")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("fmpapikey", &cfg.FMPAPIKey, "the FMP api key")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("dbendpoint", &cfg.DatabaseEndpoint, "the candle cache endpoint")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("dbuser", &cfg.DatabaseUser, "the candle cache user")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("dbpass", &cfg.DatabasePass, "the candle cache user pass")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("theme", &cfg.Theme, "the widget color theme")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("locale", &cfg.Locale, "the widget display locale")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("timezone", &cfg.Timezone, "the widget display timezone")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("aliasfilepath", &cfg.AliasFilePath, "the ticker alias override filepath")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("showvolume", &cfg.ShowVolume, "the volume panel flag")
	if err != nil {
		return err
	}
	err = cfg.registerFlag("mawindow", &cfg.MAWindow, "the moving average overlay window")
	if err != nil {
		return err
	}

	// Parse command-line flags.
	flag.Parse()

	return cfg.Validate()
}
