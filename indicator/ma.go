package indicator

import (
	"math"

	"github.com/dnldd/chartview/shared"
)

// SMA computes a simple moving average of closing prices over the provided
// window. The result is positional with the input: entries with fewer than
// window bars behind them are NaN so an overlay line only starts once the
// average is defined.
func SMA(candles []*shared.Candlestick, window int) []float64 {
	averages := make([]float64, len(candles))
	if window <= 0 {
		for idx := range averages {
			averages[idx] = math.NaN()
		}
		return averages
	}

	var sum float64
	for idx := range candles {
		sum += candles[idx].Close
		if idx >= window {
			sum -= candles[idx-window].Close
		}

		if idx >= window-1 {
			averages[idx] = sum / float64(window)
		} else {
			averages[idx] = math.NaN()
		}
	}

	return averages
}
