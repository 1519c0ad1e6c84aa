package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dnldd/chartview/chart"
	"github.com/dnldd/chartview/database"
	"github.com/dnldd/chartview/fetch"
	"github.com/dnldd/chartview/render"
	"github.com/dnldd/chartview/shared"
	"github.com/dnldd/chartview/widget"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
	// catchUpBars is the number of bars requested when catching up on a key.
	catchUpBars = 300
	// defaultSurfaceID is the surface id used when none is configured.
	defaultSurfaceID = "chart-1"
)

// ChartConfig represents the configuration struct for the chart service.
type ChartConfig struct {
	// Tickers represents the charted tickers.
	Tickers []string
	// Interval is the charted interval.
	Interval shared.Interval
	// FMPAPIkey is the FMP service API Key.
	FMPAPIKey string
	// DatabaseEndpoint is the candle cache endpoint, the cache is skipped
	// when empty.
	DatabaseEndpoint string
	// DatabaseUser is the candle cache user.
	DatabaseUser string
	// DatabasePass is the candle cache user pass.
	DatabasePass string
	// Theme is the widget color theme.
	Theme widget.Theme
	// Locale is the widget display locale.
	Locale string
	// Timezone is the widget display timezone.
	Timezone string
	// AliasFilePath is the filepath to a ticker alias override, the built in
	// table is used when empty.
	AliasFilePath string
	// SurfaceID identifies the render surface for the chart.
	SurfaceID string
	// ShowVolume toggles the volume panel.
	ShowVolume bool
	// MAWindow is the moving average overlay window, zero disables the
	// overlay.
	MAWindow int
	// Sink receives rendered chart payloads keyed by surface id, it may be
	// nil when payloads only need logging.
	Sink func(surfaceID string, payload []byte) error
	// Cancel is the context cancellation function.
	Cancel context.CancelFunc
}

// Validate asserts the config sane inputs.
func (cfg *ChartConfig) Validate() error {
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
	if cfg.Cancel == nil {
		errs = errors.Join(errs, fmt.Errorf("context cancellation function cannot be nil"))
	}

	return errs
}

// Chart represents a candlestick charting service.
type Chart struct {
	cfg           *ChartConfig
	aliasTable    *widget.AliasTable
	fetchManager  *fetch.Manager
	controller    *render.Controller
	db            *database.Database
	seriesUpdates chan shared.SeriesUpdateSignal
	logger        *zerolog.Logger
	wg            sync.WaitGroup
}

// NewChart initializes a new chart service.
func NewChart(ctx context.Context, cfg *ChartConfig) (*Chart, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	var fetchMgr *fetch.Manager
	var controller *render.Controller
	var db *database.Database

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger := log.With().Str("service", "chart").Logger()

	aliasTable := widget.DefaultAliasTable()
	if cfg.AliasFilePath != "" {
		aliasTable, err = widget.LoadAliasTable(cfg.AliasFilePath)
		if err != nil {
			return nil, fmt.Errorf("loading alias table: %v", err)
		}
	}

	tickers := make([]string, len(cfg.Tickers))
	for idx := range cfg.Tickers {
		tickers[idx] = aliasTable.Normalize(cfg.Tickers[idx])
	}

	if cfg.DatabaseEndpoint != "" {
		dbLogger := logger.With().Str("component", "database").Logger()
		db, err = database.NewDatabase(ctx, &database.DatabaseConfig{
			Endpoint: cfg.DatabaseEndpoint,
			User:     cfg.DatabaseUser,
			Pass:     cfg.DatabasePass,
			Logger:   &dbLogger,
		})
		if err != nil {
			return nil, fmt.Errorf("creating candle cache: %v", err)
		}
	}

	persistCandlesFunc := func(ctx context.Context, candles []shared.Candlestick) error {
		if db != nil {
			return db.PersistCandles(ctx, candles)
		}
		return nil
	}

	currentGenerationFunc := func(ticker string, interval shared.Interval) uint64 {
		if controller != nil {
			return controller.CurrentGeneration(ticker, interval)
		}
		return 0
	}

	caughtUpFunc := func(signal shared.CaughtUpSignal) {
		logger.Info().Msgf("caught up on market data for %s", signal.Ticker)
	}

	sink := cfg.Sink
	if sink == nil {
		sink = func(surfaceID string, payload []byte) error {
			logger.Debug().Msgf("rendered %d byte payload for surface %s", len(payload), surfaceID)
			return nil
		}
	}

	engineLogger := logger.With().Str("component", "embedengine").Logger()
	engine, err := render.NewEmbedEngine(&render.EmbedEngineConfig{
		Sink:   sink,
		Logger: &engineLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating embed engine: %v", err)
	}

	controllerLogger := logger.With().Str("component", "controller").Logger()
	controller, err = render.NewController(&render.ControllerConfig{
		Engine:     engine,
		ShowVolume: cfg.ShowVolume,
		Palette:    chart.DefaultPalette(),
		MAWindow:   cfg.MAWindow,
		Logger:     &controllerLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating render controller: %v", err)
	}

	jobScheduler := gocron.NewScheduler(time.UTC)

	fmp := fetch.NewFMPClient(&fetch.FMPConfig{APIKey: cfg.FMPAPIKey})

	fetchMgrLogger := logger.With().Str("component", "fetchmanager").Logger()
	fetchMgr, err = fetch.NewManager(&fetch.ManagerConfig{
		Tickers:           tickers,
		Intervals:         []shared.Interval{cfg.Interval},
		ExchangeClient:    fmp,
		PersistCandles:    persistCandlesFunc,
		CurrentGeneration: currentGenerationFunc,
		SignalCaughtUp:    caughtUpFunc,
		JobScheduler:      jobScheduler,
		Logger:            &fetchMgrLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("creating fetch manager: %v", err)
	}

	seriesUpdates := make(chan shared.SeriesUpdateSignal, bufferSize)
	fetchMgr.Subscribe("chart", seriesUpdates)

	service := &Chart{
		cfg:           cfg,
		aliasTable:    aliasTable,
		fetchManager:  fetchMgr,
		controller:    controller,
		db:            db,
		seriesUpdates: seriesUpdates,
		logger:        &logger,
	}

	return service, nil
}

// WidgetConfig builds the embeddable widget configuration for the provided
// ticker.
func (c *Chart) WidgetConfig(ticker string) (*widget.Config, error) {
	return widget.NewConfig(c.aliasTable, ticker, c.cfg.Interval, c.cfg.Theme,
		c.cfg.Locale, c.cfg.Timezone)
}

// SwitchTicker makes the provided ticker the charted key, warm starting from
// the candle cache when one is configured and catching up afterwards.
func (c *Chart) SwitchTicker(ctx context.Context, ticker string) error {
	normalized := c.aliasTable.Normalize(ticker)

	generation, err := c.controller.SwitchKey(normalized, c.cfg.Interval)
	if err != nil {
		return fmt.Errorf("switching chart key to %s: %w", normalized, err)
	}

	if c.db != nil {
		cached, err := c.db.FetchCandles(ctx, normalized, c.cfg.Interval, catchUpBars)
		if err != nil {
			c.logger.Error().Msgf("fetching cached candles for %s: %v", normalized, err)
		}

		if len(cached) > 0 {
			refs := make([]*shared.Candlestick, len(cached))
			for idx := range cached {
				refs[idx] = &cached[idx]
			}
			c.controller.SendSeriesUpdate(shared.NewSeriesUpdateSignal(normalized,
				c.cfg.Interval, generation, refs))
		}
	}

	start := time.Now().UTC().Add(-catchUpBars * c.cfg.Interval.Duration())
	c.fetchManager.SendCatchUpSignal(shared.NewCatchUpSignal(normalized,
		[]shared.Interval{c.cfg.Interval}, start))

	return nil
}

// Run handles the lifecycle processes of the chart service.
func (c *Chart) Run(ctx context.Context) {
	c.wg.Add(3)

	go func() {
		c.controller.Run(ctx)
		c.wg.Done()
	}()

	go func() {
		c.fetchManager.Run(ctx)
		c.wg.Done()
	}()

	go func() {
		for {
			select {
			case <-ctx.Done():
				c.wg.Done()
				return
			case signal := <-c.seriesUpdates:
				c.controller.SendSeriesUpdate(signal)
			}
		}
	}()

	surfaceID := c.cfg.SurfaceID
	if surfaceID == "" {
		surfaceID = defaultSurfaceID
	}

	err := c.controller.Mount(&render.Surface{ID: surfaceID})
	if err != nil {
		c.logger.Error().Msgf("mounting chart surface: %v", err)
		c.cfg.Cancel()
	}

	err = c.SwitchTicker(ctx, c.cfg.Tickers[0])
	if err != nil {
		c.logger.Error().Msgf("switching to initial ticker: %v", err)
	}

	c.wg.Wait()
}
