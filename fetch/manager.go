package fetch

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dnldd/chartview/shared"
	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
	// maxWorkers is the maximum number of concurrent workers.
	maxWorkers = 8
	// defaultLookbackBars is the number of bars fetched when no prior update
	// time exists for a key.
	defaultLookbackBars = 300
)

// ManagerConfig represents the configuration for the fetch manager.
type ManagerConfig struct {
	// Tickers represents the tracked tickers.
	Tickers []string
	// Intervals represents the tracked chart intervals.
	Intervals []shared.Interval
	// ExchangeClient represents the market exchange client.
	ExchangeClient shared.MarketFetcher
	// PersistCandles stores fetched candles to the cache, it may be nil when
	// no cache is configured.
	PersistCandles func(ctx context.Context, candles []shared.Candlestick) error
	// CurrentGeneration returns the active fetch generation for a ticker and
	// interval pair, used to stamp series updates.
	CurrentGeneration func(ticker string, interval shared.Interval) uint64
	// SignalCaughtUp relays the conclusion of a catch up for a ticker.
	SignalCaughtUp func(signal shared.CaughtUpSignal)
	// JobScheduler represents the job scheduler.
	JobScheduler *gocron.Scheduler
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *ManagerConfig) Validate() error {
	var errs error

	if len(cfg.Tickers) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no tickers provided for fetch manager"))
	}
	if len(cfg.Intervals) == 0 {
		errs = errors.Join(errs, fmt.Errorf("no intervals provided for fetch manager"))
	}
	if cfg.ExchangeClient == nil {
		errs = errors.Join(errs, fmt.Errorf("exchange client cannot be nil"))
	}
	if cfg.CurrentGeneration == nil {
		errs = errors.Join(errs, fmt.Errorf("current generation function cannot be nil"))
	}
	if cfg.SignalCaughtUp == nil {
		errs = errors.Join(errs, fmt.Errorf("signal caught up function cannot be nil"))
	}
	if cfg.JobScheduler == nil {
		errs = errors.Join(errs, fmt.Errorf("job scheduler cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Manager represents the market fetch manager.
type Manager struct {
	cfg            *ManagerConfig
	catchUpSignals chan shared.CatchUpSignal
	workers        chan struct{}

	updatedMtx       sync.Mutex
	lastUpdatedTimes map[string]time.Time

	subscribersMtx sync.Mutex
	subscribers    map[string]chan shared.SeriesUpdateSignal
}

// NewManager initializes the fetch manager.
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	mgr := &Manager{
		cfg:              cfg,
		lastUpdatedTimes: make(map[string]time.Time),
		catchUpSignals:   make(chan shared.CatchUpSignal, bufferSize),
		subscribers:      make(map[string]chan shared.SeriesUpdateSignal),
		workers:          make(chan struct{}, maxWorkers),
	}

	return mgr, nil
}

// marketKey forms the tracking key for a ticker and interval pair.
func marketKey(ticker string, interval shared.Interval) string {
	return fmt.Sprintf("%s-%s", ticker, interval.String())
}

// Subscribe registers the provided subscriber for series updates.
func (m *Manager) Subscribe(name string, sub chan shared.SeriesUpdateSignal) {
	m.subscribersMtx.Lock()
	defer m.subscribersMtx.Unlock()
	m.subscribers[name] = sub
}

// NotifySubscribers notifies subscribers of the provided series update.
func (m *Manager) NotifySubscribers(signal shared.SeriesUpdateSignal) {
	m.subscribersMtx.Lock()
	defer m.subscribersMtx.Unlock()

	for name, sub := range m.subscribers {
		select {
		case sub <- signal:
			// do nothing.
		default:
			m.cfg.Logger.Error().Msgf("subscriber %s channel at capacity: %d/%d",
				name, len(sub), cap(sub))
		}
	}
}

// SendCatchUpSignal relays the provided catch up signal for processing.
func (m *Manager) SendCatchUpSignal(signal shared.CatchUpSignal) {
	select {
	case m.catchUpSignals <- signal:
		// do nothing.
	default:
		m.cfg.Logger.Error().Msgf("catch up signal channel at capacity: %d/%d",
			len(m.catchUpSignals), bufferSize)
	}
}

// fetchLastUpdated returns the last update time recorded for the provided key.
func (m *Manager) fetchLastUpdated(key string) time.Time {
	m.updatedMtx.Lock()
	defer m.updatedMtx.Unlock()
	return m.lastUpdatedTimes[key]
}

// setLastUpdated records the last update time for the provided key.
func (m *Manager) setLastUpdated(key string, at time.Time) {
	m.updatedMtx.Lock()
	defer m.updatedMtx.Unlock()
	m.lastUpdatedTimes[key] = at
}

// fetchSeries fetches, parses, caches and publishes candles for the provided
// ticker and interval from the provided start time. Cache failures are never
// fatal to a render cycle.
func (m *Manager) fetchSeries(ctx context.Context, ticker string, interval shared.Interval, start time.Time) error {
	data, err := m.cfg.ExchangeClient.FetchHistorical(ctx, ticker, interval, start, time.Time{})
	if err != nil {
		return fmt.Errorf("fetching historical data for %s: %w", ticker, err)
	}

	candles, err := ParseCandlesticks(data, ticker, interval)
	if err != nil {
		return fmt.Errorf("parsing candlesticks for %s: %w", ticker, err)
	}

	if len(candles) == 0 {
		return nil
	}

	if m.cfg.PersistCandles != nil {
		err := m.cfg.PersistCandles(ctx, candles)
		if err != nil {
			m.cfg.Logger.Error().Msgf("caching candles for %s: %v", ticker, err)
		}
	}

	m.setLastUpdated(marketKey(ticker, interval), candles[len(candles)-1].Date)

	refs := make([]*shared.Candlestick, len(candles))
	for idx := range candles {
		refs[idx] = &candles[idx]
	}

	generation := m.cfg.CurrentGeneration(ticker, interval)
	m.NotifySubscribers(shared.NewSeriesUpdateSignal(ticker, interval, generation, refs))

	return nil
}

// handleCatchUpSignal processes the provided catch up signal.
func (m *Manager) handleCatchUpSignal(ctx context.Context, signal shared.CatchUpSignal) error {
	defer func() {
		signal.Status <- shared.Processed
	}()

	if !slices.Contains(m.cfg.Tickers, signal.Ticker) {
		return fmt.Errorf("no tracked ticker found with name %s", signal.Ticker)
	}

	for _, interval := range signal.Intervals {
		err := m.fetchSeries(ctx, signal.Ticker, interval, signal.Start)
		if err != nil {
			return fmt.Errorf("catching up on %s (%s): %w", signal.Ticker, interval.String(), err)
		}
	}

	m.cfg.SignalCaughtUp(shared.NewCaughtUpSignal(signal.Ticker))

	return nil
}

// fetchMarketDataJob refreshes market data for the provided ticker and
// interval.
func (m *Manager) fetchMarketDataJob(ctx context.Context, ticker string, interval shared.Interval) error {
	if !slices.Contains(m.cfg.Tickers, ticker) {
		return fmt.Errorf("no tracked ticker found with name %s", ticker)
	}

	start := m.fetchLastUpdated(marketKey(ticker, interval))
	if start.IsZero() {
		start = time.Now().UTC().Add(-defaultLookbackBars * interval.Duration())
	}

	return m.fetchSeries(ctx, ticker, interval, start)
}

// Run manages the lifecycle processes of the fetch manager.
func (m *Manager) Run(ctx context.Context) {
	for _, ticker := range m.cfg.Tickers {
		for _, interval := range m.cfg.Intervals {
			_, err := m.cfg.JobScheduler.Every(interval.Duration()).Do(func(ticker string, interval shared.Interval) {
				err := m.fetchMarketDataJob(ctx, ticker, interval)
				if err != nil {
					m.cfg.Logger.Error().Msgf("fetching market data for %s: %v", ticker, err)
				}
			}, ticker, interval)
			if err != nil {
				m.cfg.Logger.Error().Msgf("scheduling market data job for %s (%s): %v",
					ticker, interval.String(), err)
			}
		}
	}

	m.cfg.JobScheduler.StartAsync()

	for {
		select {
		case <-ctx.Done():
			m.cfg.JobScheduler.Stop()
			return
		case signal := <-m.catchUpSignals:
			m.workers <- struct{}{}
			go func(signal shared.CatchUpSignal) {
				err := m.handleCatchUpSignal(ctx, signal)
				if err != nil {
					m.cfg.Logger.Error().Msgf("handling catch up signal: %v", err)
				}
				<-m.workers
			}(signal)
		}
	}
}
