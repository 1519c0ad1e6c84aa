package chart

import (
	"time"

	"github.com/dnldd/chartview/shared"
)

// LabelFormatter formats a candle timestamp into a category axis label.
type LabelFormatter func(date time.Time) string

// VolumeBar is one signed volume entry: the category index of its bar, the
// traded volume and the direction of the bar it belongs to. The direction is
// computed once during the transform and reused by every visual channel.
type VolumeBar struct {
	Index     int
	Volume    float64
	Direction shared.Direction
}

// NormalizedSeries holds the reshaped arrays a renderer consumes. Labels,
// candles and volumes always have the same length and order as the input
// candles.
type NormalizedSeries struct {
	Labels  []string
	Candles [][4]float64
	Volumes []VolumeBar
}

// Length returns the number of samples in the series.
func (s *NormalizedSeries) Length() int {
	return len(s.Labels)
}

// Transform reshapes raw candles into the normalized series form. The candle
// quadruples are ordered [open, close, low, high] as the renderer expects,
// not in natural OHLC order. This is a structural reshape only: no
// aggregation, smoothing or resampling, and no validation of timestamp order.
func Transform(candles []*shared.Candlestick, formatLabel LabelFormatter) NormalizedSeries {
	if formatLabel == nil {
		formatLabel = func(date time.Time) string { return date.Format(shared.DateLayout) }
	}

	series := NormalizedSeries{
		Labels:  make([]string, len(candles)),
		Candles: make([][4]float64, len(candles)),
		Volumes: make([]VolumeBar, len(candles)),
	}

	for idx := range candles {
		candle := candles[idx]

		series.Labels[idx] = formatLabel(candle.Date)
		series.Candles[idx] = [4]float64{candle.Open, candle.Close, candle.Low, candle.High}
		series.Volumes[idx] = VolumeBar{
			Index:     idx,
			Volume:    candle.Volume,
			Direction: candle.FetchDirection(),
		}
	}

	return series
}
