package render

import (
	"github.com/dnldd/chartview/chart"
)

// Surface represents a mounted container a chart can bind to.
type Surface struct {
	// ID identifies the container.
	ID string
	// Width is the container width in pixels.
	Width int
	// Height is the container height in pixels.
	Height int
}

// Renderer defines the requirements for a live chart rendering instance
// bound to a mounted surface.
type Renderer interface {
	// ApplySpec replaces the instance's current chart specification in place.
	ApplySpec(spec *chart.Specification) error
	// Resize re-measures the instance against its container's new size.
	Resize(width int, height int) error
	// ShowLoading shows the loading overlay without touching the current chart.
	ShowLoading()
	// HideLoading hides the loading overlay.
	HideLoading()
	// Dispose releases the instance and all of its listeners.
	Dispose()
}

// Engine defines the requirements for creating rendering instances on
// mounted surfaces.
type Engine interface {
	// Init creates a rendering instance bound to the provided surface.
	Init(surface *Surface) (Renderer, error)
}
