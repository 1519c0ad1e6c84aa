package chart

const (
	// defaultVisibleBars is the number of bars shown by the initial zoom window.
	defaultVisibleBars = 120

	// Grid geometry, as percentages of the container.
	gridLeft          = "10%"
	gridRight         = "8%"
	priceGridTop      = "8%"
	priceHeightSingle = "72%"
	priceHeightDual   = "56%"
	volumeGridTop     = "72%"
	volumeGridHeight  = "16%"
)

// Grid is one rectangular plotting region within the chart.
type Grid struct {
	Left   string `json:"left"`
	Right  string `json:"right"`
	Top    string `json:"top"`
	Height string `json:"height"`
}

// AxisLabel controls axis tick label rendering.
type AxisLabel struct {
	Show bool `json:"show"`
}

// AxisTick controls axis tick mark rendering.
type AxisTick struct {
	Show bool `json:"show"`
}

// SplitLine controls axis grid line rendering.
type SplitLine struct {
	Show bool `json:"show"`
}

// Axis describes a category or value axis bound to a grid.
type Axis struct {
	Type      string     `json:"type"`
	GridIndex int        `json:"gridIndex"`
	Data      []string   `json:"data,omitempty"`
	Scale     bool       `json:"scale,omitempty"`
	AxisLabel *AxisLabel `json:"axisLabel,omitempty"`
	AxisTick  *AxisTick  `json:"axisTick,omitempty"`
	SplitLine *SplitLine `json:"splitLine,omitempty"`
}

// DataZoom describes one zoom control and the axes it drives. Listing both
// x-axis indices keeps the stacked panels panning and zooming in lockstep.
type DataZoom struct {
	Type       string  `json:"type"`
	XAxisIndex []int   `json:"xAxisIndex"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
}

// AxisPointerLink links the axis pointer across all x axes so hovering one
// panel highlights the same time index on the other.
type AxisPointerLink struct {
	XAxisIndex string `json:"xAxisIndex"`
}

// AxisPointer describes the cross-panel crosshair cursor.
type AxisPointer struct {
	Link  []AxisPointerLink `json:"link"`
	Label *AxisPointerLabel `json:"label,omitempty"`
}

// AxisPointerLabel styles the axis pointer label.
type AxisPointerLabel struct {
	BackgroundColor string `json:"backgroundColor,omitempty"`
}

// Layout holds the grid and axis geometry for one or two vertically stacked
// panels with linked time axes.
type Layout struct {
	Grids       []Grid
	XAxes       []Axis
	YAxes       []Axis
	DataZoom    []DataZoom
	AxisPointer *AxisPointer
}

// zoomStart returns the starting zoom percentage placing the initial window
// over the most recent bars.
func zoomStart(seriesLength int) float64 {
	if seriesLength <= defaultVisibleBars {
		return 0
	}
	return 100 * (1 - float64(defaultVisibleBars)/float64(seriesLength))
}

// PlanLayout computes the grid and axis geometry for the chart. With volume
// shown it stacks a subordinate volume panel under the price panel: both
// share identically indexed category axes, the volume axis suppresses its own
// labels and ticks, and the zoom controls drive both axis indices so the
// panels can never desynchronize. Y axes auto-scale to the visible window.
func PlanLayout(seriesLength int, showVolume bool) Layout {
	priceHeight := priceHeightSingle
	if showVolume {
		priceHeight = priceHeightDual
	}

	layout := Layout{
		Grids: []Grid{
			{Left: gridLeft, Right: gridRight, Top: priceGridTop, Height: priceHeight},
		},
		XAxes: []Axis{
			{Type: "category", GridIndex: 0},
		},
		YAxes: []Axis{
			{Type: "value", GridIndex: 0, Scale: true},
		},
		AxisPointer: &AxisPointer{
			Link:  []AxisPointerLink{{XAxisIndex: "all"}},
			Label: &AxisPointerLabel{BackgroundColor: "#777"},
		},
	}

	zoomAxes := []int{0}
	if showVolume {
		layout.Grids = append(layout.Grids, Grid{
			Left:   gridLeft,
			Right:  gridRight,
			Top:    volumeGridTop,
			Height: volumeGridHeight,
		})
		layout.XAxes = append(layout.XAxes, Axis{
			Type:      "category",
			GridIndex: 1,
			AxisLabel: &AxisLabel{Show: false},
			AxisTick:  &AxisTick{Show: false},
		})
		layout.YAxes = append(layout.YAxes, Axis{
			Type:      "value",
			GridIndex: 1,
			Scale:     true,
			AxisLabel: &AxisLabel{Show: false},
			SplitLine: &SplitLine{Show: false},
		})
		zoomAxes = append(zoomAxes, 1)
	}

	start := zoomStart(seriesLength)
	layout.DataZoom = []DataZoom{
		{Type: "inside", XAxisIndex: zoomAxes, Start: start, End: 100},
		{Type: "slider", XAxisIndex: zoomAxes, Start: start, End: 100},
	}

	return layout
}
