package indicator

import (
	"math"
	"testing"

	"github.com/dnldd/chartview/shared"
	"github.com/peterldowns/testy/assert"
)

func closes(values ...float64) []*shared.Candlestick {
	candles := make([]*shared.Candlestick, len(values))
	for idx := range values {
		candles[idx] = &shared.Candlestick{Close: values[idx]}
	}
	return candles
}

func TestSMA(t *testing.T) {
	candles := closes(10, 12, 14, 16)
	averages := SMA(candles, 2)

	assert.Equal(t, len(averages), len(candles))

	// Entries before the window fills are undefined.
	assert.True(t, math.IsNaN(averages[0]))

	assert.Equal(t, averages[1], float64(11))
	assert.Equal(t, averages[2], float64(13))
	assert.Equal(t, averages[3], float64(15))
}

func TestSMAWindowLargerThanSeries(t *testing.T) {
	averages := SMA(closes(10, 12), 5)
	assert.Equal(t, len(averages), 2)
	assert.True(t, math.IsNaN(averages[0]))
	assert.True(t, math.IsNaN(averages[1]))
}

func TestSMAInvalidWindow(t *testing.T) {
	// A non-positive window yields an all-undefined series, not a fault.
	averages := SMA(closes(10, 12, 14), 0)
	assert.Equal(t, len(averages), 3)
	for idx := range averages {
		assert.True(t, math.IsNaN(averages[idx]))
	}
}

func TestSMAEmptyInput(t *testing.T) {
	averages := SMA(nil, 3)
	assert.Equal(t, len(averages), 0)
}
