package render

import (
	"fmt"
	"sync"

	"github.com/dnldd/chartview/chart"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// BindingState represents the lifecycle state of a surface binding.
type BindingState int

const (
	Unmounted BindingState = iota
	Mounted
	Rendered
	Disposed
)

// String stringifies the provided binding state.
func (s BindingState) String() string {
	switch s {
	case Unmounted:
		return "unmounted"
	case Mounted:
		return "mounted"
	case Rendered:
		return "rendered"
	case Disposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// SurfaceBinding associates one mounted surface with at most one live
// rendering instance. The instance is created once on first specification
// apply, mutated in place on later applies, and released on dispose. Event
// ordering across mount, unmount and data arrival is not guaranteed by the
// host, so applying to a binding that is not live is a no-op rather than a
// fault.
type SurfaceBinding struct {
	id     string
	engine Engine
	logger *zerolog.Logger

	mtx      sync.Mutex
	state    BindingState
	surface  *Surface
	renderer Renderer
	loading  bool
}

// NewSurfaceBinding initializes a new surface binding.
func NewSurfaceBinding(engine Engine, logger *zerolog.Logger) *SurfaceBinding {
	return &SurfaceBinding{
		id:     uuid.NewString(),
		engine: engine,
		logger: logger,
		state:  Unmounted,
	}
}

// ID returns the binding's identifier.
func (b *SurfaceBinding) ID() string {
	return b.id
}

// State returns the binding's current lifecycle state.
func (b *SurfaceBinding) State() BindingState {
	b.mtx.Lock()
	defer b.mtx.Unlock()
	return b.state
}

// Mount binds the provided surface. Rapid remounts serialize here: any live
// rendering instance is disposed before the new surface is accepted.
func (b *SurfaceBinding) Mount(surface *Surface) error {
	if surface == nil {
		return fmt.Errorf("surface cannot be nil")
	}

	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state == Disposed {
		b.logger.Debug().Msgf("binding %s disposed, ignoring mount for surface %s", b.id, surface.ID)
		return nil
	}

	if b.renderer != nil {
		b.renderer.Dispose()
		b.renderer = nil
	}

	b.surface = surface
	b.state = Mounted

	return nil
}

// Apply applies the provided specification to the bound surface, creating
// the rendering instance on first use and replacing the specification in
// place afterwards. The instance is never recreated on data updates, which
// preserves accumulated pan and zoom state. Applying to an unmounted or
// disposed binding is a no-op.
func (b *SurfaceBinding) Apply(spec *chart.Specification) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	switch b.state {
	case Unmounted, Disposed:
		b.logger.Debug().Msgf("binding %s %s, discarding specification", b.id, b.state.String())
		return nil
	}

	if b.renderer == nil {
		renderer, err := b.engine.Init(b.surface)
		if err != nil {
			return fmt.Errorf("creating rendering instance: %w", err)
		}

		b.renderer = renderer
		if b.loading {
			b.renderer.ShowLoading()
		}
	}

	err := b.renderer.ApplySpec(spec)
	if err != nil {
		return fmt.Errorf("applying chart specification: %w", err)
	}

	b.state = Rendered

	return nil
}

// SetLoading toggles the loading overlay. Entering loading never tears down
// the current chart, and the flag survives until a rendering instance exists
// to show it.
func (b *SurfaceBinding) SetLoading(loading bool) {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state == Disposed {
		return
	}

	b.loading = loading
	if b.renderer == nil {
		return
	}

	if loading {
		b.renderer.ShowLoading()
		return
	}
	b.renderer.HideLoading()
}

// Resize re-measures the bound surface. Container sizes are not stable at
// creation, so this is a continuous concern rather than one-shot at mount.
func (b *SurfaceBinding) Resize(width int, height int) error {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state == Disposed || b.surface == nil {
		return nil
	}

	b.surface.Width = width
	b.surface.Height = height

	if b.renderer == nil {
		return nil
	}

	err := b.renderer.Resize(width, height)
	if err != nil {
		return fmt.Errorf("resizing rendering instance: %w", err)
	}

	return nil
}

// Dispose releases the rendering instance and marks the binding terminal.
// Disposing an already disposed binding is a no-op.
func (b *SurfaceBinding) Dispose() {
	b.mtx.Lock()
	defer b.mtx.Unlock()

	if b.state == Disposed {
		return
	}

	if b.renderer != nil {
		b.renderer.Dispose()
		b.renderer = nil
	}

	b.surface = nil
	b.state = Disposed
}
