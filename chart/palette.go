package chart

import (
	"github.com/dnldd/chartview/shared"
)

// Palette decides the colors for every direction-keyed visual channel.
type Palette struct {
	// Up is the color for up candles and up volume bars.
	Up string
	// Down is the color for down candles and down volume bars.
	Down string
	// Overlay is the color for indicator overlay lines.
	Overlay string
}

// DefaultPalette returns the stock dashboard palette.
func DefaultPalette() Palette {
	return Palette{
		Up:      "#26A69A",
		Down:    "#EF5350",
		Overlay: "#FF9800",
	}
}

// Color returns the palette color for the provided direction. Candle fill,
// candle border and volume bar coloring all route through this single lookup
// so the channels can never disagree for the same sample.
func (p *Palette) Color(direction shared.Direction) string {
	if direction == shared.Up {
		return p.Up
	}
	return p.Down
}
