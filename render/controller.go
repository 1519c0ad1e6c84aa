package render

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dnldd/chartview/chart"
	"github.com/dnldd/chartview/indicator"
	"github.com/dnldd/chartview/shared"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

const (
	// bufferSize is the default buffer size for channels.
	bufferSize = 64
)

// Key identifies a tracked ticker and interval pair.
type Key struct {
	Ticker   string
	Interval shared.Interval
}

// String stringifies the provided key.
func (k Key) String() string {
	return fmt.Sprintf("%s-%s", k.Ticker, k.Interval.String())
}

// ControllerConfig represents the configuration for the chart lifecycle
// controller.
type ControllerConfig struct {
	// Engine creates rendering instances for mounted surfaces.
	Engine Engine
	// ShowVolume toggles the subordinate volume panel.
	ShowVolume bool
	// Palette decides direction-keyed series colors.
	Palette chart.Palette
	// MAWindow is the moving average overlay window, zero disables the overlay.
	MAWindow int
	// SnapshotSize is the maximum number of bars retained per chart.
	SnapshotSize int32
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *ControllerConfig) Validate() error {
	var errs error

	if cfg.Engine == nil {
		errs = errors.Join(errs, fmt.Errorf("engine cannot be nil"))
	}
	if cfg.MAWindow < 0 {
		errs = errors.Join(errs, fmt.Errorf("moving average window cannot be negative"))
	}
	if cfg.SnapshotSize < 0 {
		errs = errors.Join(errs, fmt.Errorf("snapshot size cannot be negative"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// Controller owns the chart surface binding and keeps it in sync with data
// arrival, resize, loading and mount events. All events are processed
// sequentially by Run; the applied specification always reflects the most
// recent completed fetch for the active key, enforced by a monotonically
// increasing generation counter.
type Controller struct {
	cfg        *ControllerConfig
	generation atomic.Uint64
	activeKey  atomic.Pointer[Key]
	snapshot   atomic.Pointer[shared.CandlestickSnapshot]

	bindingMtx sync.Mutex
	binding    *SurfaceBinding

	updateSignals  chan shared.SeriesUpdateSignal
	resizeSignals  chan shared.ResizeSignal
	loadingSignals chan shared.LoadingSignal
	dataRequests   chan shared.ChartDataRequest
}

// NewController initializes a new chart lifecycle controller.
func NewController(cfg *ControllerConfig) (*Controller, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	if cfg.SnapshotSize == 0 {
		cfg.SnapshotSize = shared.SnapshotSize
	}
	if cfg.Palette.Up == "" {
		cfg.Palette = chart.DefaultPalette()
	}

	ctrl := &Controller{
		cfg:            cfg,
		binding:        NewSurfaceBinding(cfg.Engine, cfg.Logger),
		updateSignals:  make(chan shared.SeriesUpdateSignal, bufferSize),
		resizeSignals:  make(chan shared.ResizeSignal, bufferSize),
		loadingSignals: make(chan shared.LoadingSignal, bufferSize),
		dataRequests:   make(chan shared.ChartDataRequest, bufferSize),
	}

	return ctrl, nil
}

// fetchBinding returns the current surface binding.
func (c *Controller) fetchBinding() *SurfaceBinding {
	c.bindingMtx.Lock()
	defer c.bindingMtx.Unlock()
	return c.binding
}

// Mount binds the provided surface. A disposed binding is replaced by a
// fresh one, serializing dispose-before-create for rapid remounts.
func (c *Controller) Mount(surface *Surface) error {
	c.bindingMtx.Lock()
	defer c.bindingMtx.Unlock()

	if c.binding.State() == Disposed {
		c.binding = NewSurfaceBinding(c.cfg.Engine, c.cfg.Logger)
	}

	return c.binding.Mount(surface)
}

// Unmount releases the surface binding and its rendering instance.
func (c *Controller) Unmount() {
	c.fetchBinding().Dispose()
}

// SwitchKey makes the provided ticker and interval pair the active chart key
// and returns the new fetch generation. Data for the previous key still in
// flight is invalidated by the generation bump; the surface binding is only
// re-specified, never disposed, to avoid renderer churn.
func (c *Controller) SwitchKey(ticker string, interval shared.Interval) (uint64, error) {
	snapshot, err := shared.NewCandlestickSnapshot(c.cfg.SnapshotSize)
	if err != nil {
		return 0, fmt.Errorf("creating snapshot: %w", err)
	}

	key := Key{Ticker: ticker, Interval: interval}
	c.activeKey.Store(&key)
	c.snapshot.Store(snapshot)
	generation := c.generation.Add(1)

	c.fetchBinding().SetLoading(true)

	return generation, nil
}

// CurrentGeneration returns the active fetch generation for the provided
// ticker and interval pair, or zero if the pair is not the active key. A
// zero generation always stamps stale.
func (c *Controller) CurrentGeneration(ticker string, interval shared.Interval) uint64 {
	key := c.activeKey.Load()
	if key == nil || key.Ticker != ticker || key.Interval != interval {
		return 0
	}

	return c.generation.Load()
}

// SendSeriesUpdate relays the provided series update signal for processing.
func (c *Controller) SendSeriesUpdate(signal shared.SeriesUpdateSignal) {
	select {
	case c.updateSignals <- signal:
		// do nothing.
	default:
		c.cfg.Logger.Error().Msgf("series update channel at capacity: %d/%d",
			len(c.updateSignals), bufferSize)
	}
}

// SendResizeSignal relays the provided resize signal for processing.
func (c *Controller) SendResizeSignal(signal shared.ResizeSignal) {
	select {
	case c.resizeSignals <- signal:
		// do nothing.
	default:
		c.cfg.Logger.Error().Msgf("resize signal channel at capacity: %d/%d",
			len(c.resizeSignals), bufferSize)
	}
}

// SendLoadingSignal relays the provided loading signal for processing.
func (c *Controller) SendLoadingSignal(signal shared.LoadingSignal) {
	select {
	case c.loadingSignals <- signal:
		// do nothing.
	default:
		c.cfg.Logger.Error().Msgf("loading signal channel at capacity: %d/%d",
			len(c.loadingSignals), bufferSize)
	}
}

// SendChartDataRequest relays the provided chart data request for processing.
func (c *Controller) SendChartDataRequest(request shared.ChartDataRequest) {
	select {
	case c.dataRequests <- request:
		// do nothing.
	default:
		c.cfg.Logger.Error().Msgf("chart data request channel at capacity: %d/%d",
			len(c.dataRequests), bufferSize)
	}
}

// buildSpecification assembles the chart specification for the provided
// candles.
func (c *Controller) buildSpecification(candles []*shared.Candlestick, interval shared.Interval) *chart.Specification {
	layout := interval.LabelLayout()
	series := chart.Transform(candles, func(date time.Time) string {
		return date.Format(layout)
	})

	opts := chart.Options{
		ShowVolume: c.cfg.ShowVolume,
		Palette:    c.cfg.Palette,
	}

	if c.cfg.MAWindow > 0 {
		opts.Overlay = &chart.Overlay{
			Name:   fmt.Sprintf("MA%d", c.cfg.MAWindow),
			Values: indicator.SMA(candles, c.cfg.MAWindow),
			Color:  c.cfg.Palette.Overlay,
		}
	}

	return chart.Build(series, opts)
}

// handleSeriesUpdate processes the provided series update signal. Updates
// stamped with a superseded generation or a non-active key are discarded so
// a slow response can never overwrite a newer chart.
func (c *Controller) handleSeriesUpdate(signal shared.SeriesUpdateSignal) {
	defer func() {
		signal.Status <- shared.Processed
	}()

	if signal.Generation == 0 || signal.Generation != c.generation.Load() {
		c.cfg.Logger.Debug().Msgf("discarding stale series update for %s-%s (generation %d)",
			signal.Ticker, signal.Interval.String(), signal.Generation)
		return
	}

	key := c.activeKey.Load()
	if key == nil || key.Ticker != signal.Ticker || key.Interval != signal.Interval {
		c.cfg.Logger.Debug().Msgf("discarding series update for inactive key %s-%s",
			signal.Ticker, signal.Interval.String())
		return
	}

	snapshot := c.snapshot.Load()
	for idx := range signal.Candles {
		snapshot.Update(signal.Candles[idx])
	}

	candles := snapshot.LastN(c.cfg.SnapshotSize)
	spec := c.buildSpecification(candles, signal.Interval)

	binding := c.fetchBinding()
	err := binding.Apply(spec)
	if err != nil {
		c.cfg.Logger.Error().Msgf("applying specification for %s: %v", key.String(), err)
		return
	}

	binding.SetLoading(false)
}

// handleResizeSignal processes the provided resize signal.
func (c *Controller) handleResizeSignal(signal shared.ResizeSignal) {
	defer func() {
		signal.Status <- shared.Processed
	}()

	err := c.fetchBinding().Resize(signal.Width, signal.Height)
	if err != nil {
		c.cfg.Logger.Error().Msgf("resizing surface: %v", err)
	}
}

// handleLoadingSignal processes the provided loading signal.
func (c *Controller) handleLoadingSignal(signal shared.LoadingSignal) {
	defer func() {
		signal.Status <- shared.Processed
	}()

	c.fetchBinding().SetLoading(signal.Loading)
}

// handleChartDataRequest processes the provided chart data request.
func (c *Controller) handleChartDataRequest(request shared.ChartDataRequest) {
	key := c.activeKey.Load()
	snapshot := c.snapshot.Load()
	if key == nil || snapshot == nil || key.Ticker != request.Ticker || key.Interval != request.Interval {
		request.Response <- nil
		return
	}

	request.Response <- snapshot.LastN(request.N)
}

// Run manages the lifecycle processes of the controller. The surface binding
// is released on every exit path.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			c.fetchBinding().Dispose()
			return
		case signal := <-c.updateSignals:
			c.handleSeriesUpdate(signal)
		case signal := <-c.resizeSignals:
			c.handleResizeSignal(signal)
		case signal := <-c.loadingSignals:
			c.handleLoadingSignal(signal)
		case request := <-c.dataRequests:
			c.handleChartDataRequest(request)
		}
	}
}
