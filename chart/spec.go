package chart

import (
	"math"
)

const (
	// Series names.
	priceSeriesName  = "Price"
	volumeSeriesName = "Volume"
)

// ItemStyle holds the color assignment for a series or a single data item.
type ItemStyle struct {
	Color        string `json:"color,omitempty"`
	Color0       string `json:"color0,omitempty"`
	BorderColor  string `json:"borderColor,omitempty"`
	BorderColor0 string `json:"borderColor0,omitempty"`
}

// SeriesItem is one data point of a series. A nil value marshals to null,
// which the renderer treats as a gap.
type SeriesItem struct {
	Value     []float64  `json:"value"`
	ItemStyle *ItemStyle `json:"itemStyle,omitempty"`
}

// LineStyle styles a line series.
type LineStyle struct {
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

// Series describes one renderable series bound to an axis pair.
type Series struct {
	Name       string       `json:"name"`
	Type       string       `json:"type"`
	XAxisIndex int          `json:"xAxisIndex"`
	YAxisIndex int          `json:"yAxisIndex"`
	Data       []SeriesItem `json:"data"`
	ItemStyle  *ItemStyle   `json:"itemStyle,omitempty"`
	LineStyle  *LineStyle   `json:"lineStyle,omitempty"`
	ShowSymbol *bool        `json:"showSymbol,omitempty"`
}

// Specification is a declarative, side-effect-free description of the chart:
// panels, axes, zoom controls and series. It is fully determined by its
// inputs, holds no reference to any live rendering handle, and is therefore
// trivially diffable and testable.
type Specification struct {
	Grids       []Grid       `json:"grid"`
	XAxes       []Axis       `json:"xAxis"`
	YAxes       []Axis       `json:"yAxis"`
	DataZoom    []DataZoom   `json:"dataZoom"`
	AxisPointer *AxisPointer `json:"axisPointer,omitempty"`
	Series      []Series     `json:"series"`
}

// Overlay is an optional indicator line drawn on the price panel. Values are
// positional with the series; NaN entries become gaps.
type Overlay struct {
	Name   string
	Values []float64
	Color  string
}

// Options parameterize specification assembly.
type Options struct {
	ShowVolume bool
	Palette    Palette
	Overlay    *Overlay
}

// Build assembles the chart specification for the provided normalized series.
// An empty series yields an empty specification: no panels and no series, not
// an error.
func Build(series NormalizedSeries, opts Options) *Specification {
	if series.Length() == 0 {
		return &Specification{}
	}

	layout := PlanLayout(series.Length(), opts.ShowVolume)

	spec := &Specification{
		Grids:       layout.Grids,
		XAxes:       layout.XAxes,
		YAxes:       layout.YAxes,
		DataZoom:    layout.DataZoom,
		AxisPointer: layout.AxisPointer,
	}

	// Both category axes carry the same labels; the volume axis renders
	// neither labels nor ticks but stays index-aligned with the price axis.
	for idx := range spec.XAxes {
		spec.XAxes[idx].Data = series.Labels
	}

	candleItems := make([]SeriesItem, series.Length())
	for idx := range series.Candles {
		quad := series.Candles[idx]
		color := opts.Palette.Color(series.Volumes[idx].Direction)
		candleItems[idx] = SeriesItem{
			Value:     []float64{quad[0], quad[1], quad[2], quad[3]},
			ItemStyle: &ItemStyle{Color: color, BorderColor: color},
		}
	}

	spec.Series = append(spec.Series, Series{
		Name:       priceSeriesName,
		Type:       "candlestick",
		XAxisIndex: 0,
		YAxisIndex: 0,
		Data:       candleItems,
		ItemStyle: &ItemStyle{
			Color:        opts.Palette.Up,
			Color0:       opts.Palette.Down,
			BorderColor:  opts.Palette.Up,
			BorderColor0: opts.Palette.Down,
		},
	})

	if opts.Overlay != nil {
		spec.Series = append(spec.Series, buildOverlaySeries(series.Length(), opts.Overlay))
	}

	if opts.ShowVolume {
		volumeItems := make([]SeriesItem, series.Length())
		for idx := range series.Volumes {
			bar := series.Volumes[idx]
			volumeItems[idx] = SeriesItem{
				Value:     []float64{float64(bar.Index), bar.Volume, float64(bar.Direction.Sign())},
				ItemStyle: &ItemStyle{Color: opts.Palette.Color(bar.Direction)},
			}
		}

		spec.Series = append(spec.Series, Series{
			Name:       volumeSeriesName,
			Type:       "bar",
			XAxisIndex: 1,
			YAxisIndex: 1,
			Data:       volumeItems,
		})
	}

	return spec
}

// buildOverlaySeries converts overlay values into a price panel line series,
// mapping NaN values to gaps.
func buildOverlaySeries(length int, overlay *Overlay) Series {
	items := make([]SeriesItem, length)
	for idx := range items {
		if idx >= len(overlay.Values) || math.IsNaN(overlay.Values[idx]) {
			items[idx] = SeriesItem{}
			continue
		}
		items[idx] = SeriesItem{Value: []float64{overlay.Values[idx]}}
	}

	hideSymbol := false
	return Series{
		Name:       overlay.Name,
		Type:       "line",
		XAxisIndex: 0,
		YAxisIndex: 0,
		Data:       items,
		LineStyle:  &LineStyle{Color: overlay.Color, Width: 1},
		ShowSymbol: &hideSymbol,
	}
}
