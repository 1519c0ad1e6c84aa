package shared

import (
	"time"
)

// StatusCode represents a request or signal status code.
type StatusCode int

const (
	Processing StatusCode = iota
	Processed
)

// CatchUpSignal represents a signal to catch up on market data for a ticker.
type CatchUpSignal struct {
	Ticker    string
	Intervals []Interval
	Start     time.Time
	Status    chan StatusCode
}

// NewCatchUpSignal initializes a new catch up signal.
func NewCatchUpSignal(ticker string, intervals []Interval, start time.Time) CatchUpSignal {
	return CatchUpSignal{
		Ticker:    ticker,
		Intervals: intervals,
		Start:     start,
		Status:    make(chan StatusCode, 1),
	}
}

// CaughtUpSignal represents a signal to conclude a catch up on market data.
type CaughtUpSignal struct {
	Ticker string
	Status chan StatusCode
}

// NewCaughtUpSignal initializes a new caught up signal.
func NewCaughtUpSignal(ticker string) CaughtUpSignal {
	return CaughtUpSignal{
		Ticker: ticker,
		Status: make(chan StatusCode, 1),
	}
}

// SeriesUpdateSignal carries a completed batch of candles for a ticker and
// interval pair. The generation stamp identifies the fetch cycle that
// produced the batch; consumers discard batches stamped with a superseded
// generation so a slow response can never overwrite a newer chart.
type SeriesUpdateSignal struct {
	Ticker     string
	Interval   Interval
	Generation uint64
	Candles    []*Candlestick
	Status     chan StatusCode
}

// NewSeriesUpdateSignal initializes a new series update signal.
func NewSeriesUpdateSignal(ticker string, interval Interval, generation uint64, candles []*Candlestick) SeriesUpdateSignal {
	return SeriesUpdateSignal{
		Ticker:     ticker,
		Interval:   interval,
		Generation: generation,
		Candles:    candles,
		Status:     make(chan StatusCode, 1),
	}
}

// ResizeSignal represents a container size change for a mounted chart surface.
type ResizeSignal struct {
	Width  int
	Height int
	Status chan StatusCode
}

// NewResizeSignal initializes a new resize signal.
func NewResizeSignal(width int, height int) ResizeSignal {
	return ResizeSignal{
		Width:  width,
		Height: height,
		Status: make(chan StatusCode, 1),
	}
}

// LoadingSignal toggles the loading overlay of a chart surface.
type LoadingSignal struct {
	Loading bool
	Status  chan StatusCode
}

// NewLoadingSignal initializes a new loading signal.
func NewLoadingSignal(loading bool) LoadingSignal {
	return LoadingSignal{
		Loading: loading,
		Status:  make(chan StatusCode, 1),
	}
}
