package render

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dnldd/chartview/chart"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

// EmbedEngineConfig represents the configuration for the embed engine.
type EmbedEngineConfig struct {
	// Sink receives marshalled specification payloads for a surface. The
	// hosted embed script consumes them; nothing is read back.
	Sink func(surfaceID string, payload []byte) error
	// Logger represents the application logger.
	Logger *zerolog.Logger
}

// Validate asserts the config sane inputs.
func (cfg *EmbedEngineConfig) Validate() error {
	var errs error

	if cfg.Sink == nil {
		errs = errors.Join(errs, fmt.Errorf("sink function cannot be nil"))
	}
	if cfg.Logger == nil {
		errs = errors.Join(errs, fmt.Errorf("logger cannot be nil"))
	}

	return errs
}

// EmbedEngine creates rendering instances that forward chart specifications
// to a hosted embed sink as JSON payloads.
type EmbedEngine struct {
	cfg *EmbedEngineConfig
}

// Ensure the embed engine implements the Engine interface.
var _ Engine = (*EmbedEngine)(nil)

// NewEmbedEngine initializes a new embed engine.
func NewEmbedEngine(cfg *EmbedEngineConfig) (*EmbedEngine, error) {
	err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &EmbedEngine{cfg: cfg}, nil
}

// Init creates a rendering instance bound to the provided surface.
func (e *EmbedEngine) Init(surface *Surface) (Renderer, error) {
	if surface == nil {
		return nil, fmt.Errorf("surface cannot be nil")
	}

	return &embedRenderer{
		surface: surface,
		sink:    e.cfg.Sink,
		logger:  e.cfg.Logger,
	}, nil
}

// embedRenderer forwards applied specifications for one surface to the sink.
type embedRenderer struct {
	surface  *Surface
	sink     func(surfaceID string, payload []byte) error
	logger   *zerolog.Logger
	disposed atomic.Bool
	loading  atomic.Bool
}

// ApplySpec replaces the instance's current chart specification in place.
func (r *embedRenderer) ApplySpec(spec *chart.Specification) error {
	if r.disposed.Load() {
		return nil
	}

	payload, err := json.Marshal(spec)
	if err != nil {
		return fmt.Errorf("marshalling chart specification: %w", err)
	}

	return r.sink(r.surface.ID, payload)
}

// Resize re-measures the instance against its container's new size.
func (r *embedRenderer) Resize(width int, height int) error {
	if r.disposed.Load() {
		return nil
	}

	r.surface.Width = width
	r.surface.Height = height
	r.logger.Debug().Msgf("resized surface %s to %dx%d", r.surface.ID, width, height)

	return nil
}

// ShowLoading shows the loading overlay without touching the current chart.
func (r *embedRenderer) ShowLoading() {
	r.loading.Store(true)
}

// HideLoading hides the loading overlay.
func (r *embedRenderer) HideLoading() {
	r.loading.Store(false)
}

// Dispose releases the instance.
func (r *embedRenderer) Dispose() {
	r.disposed.Store(true)
}
