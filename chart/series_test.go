package chart

import (
	"testing"
	"time"

	"github.com/dnldd/chartview/shared"
	"github.com/google/go-cmp/cmp"
	"github.com/peterldowns/testy/assert"
)

func testCandles() []*shared.Candlestick {
	return []*shared.Candlestick{
		{
			Open:   10,
			High:   12,
			Low:    9,
			Close:  11,
			Volume: 100,
			Date:   time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Open:   11,
			High:   11,
			Low:    8,
			Close:  9,
			Volume: 200,
			Date:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestTransform(t *testing.T) {
	candles := testCandles()
	series := Transform(candles, func(date time.Time) string {
		return date.Format(shared.DayLayout)
	})

	// Ensure all output arrays have the input length and order.
	assert.Equal(t, series.Length(), len(candles))
	assert.Equal(t, len(series.Labels), len(candles))
	assert.Equal(t, len(series.Candles), len(candles))
	assert.Equal(t, len(series.Volumes), len(candles))

	wantLabels := []string{"2024-01-01", "2024-01-02"}
	if !cmp.Equal(series.Labels, wantLabels) {
		t.Errorf("mismatching labels: %v", cmp.Diff(series.Labels, wantLabels))
	}

	// Candle quadruples are ordered [open, close, low, high].
	wantCandles := [][4]float64{{10, 11, 9, 12}, {11, 9, 8, 11}}
	if !cmp.Equal(series.Candles, wantCandles) {
		t.Errorf("mismatching candles: %v", cmp.Diff(series.Candles, wantCandles))
	}

	wantVolumes := []VolumeBar{
		{Index: 0, Volume: 100, Direction: shared.Up},
		{Index: 1, Volume: 200, Direction: shared.Down},
	}
	if !cmp.Equal(series.Volumes, wantVolumes) {
		t.Errorf("mismatching volumes: %v", cmp.Diff(series.Volumes, wantVolumes))
	}
}

func TestTransformEmptyInput(t *testing.T) {
	// Ensure an empty input yields all-empty arrays, not a fault.
	series := Transform(nil, nil)
	assert.Equal(t, series.Length(), 0)
	assert.Equal(t, len(series.Labels), 0)
	assert.Equal(t, len(series.Candles), 0)
	assert.Equal(t, len(series.Volumes), 0)
}

func TestTransformDefaultFormatter(t *testing.T) {
	candles := testCandles()
	series := Transform(candles, nil)
	assert.Equal(t, series.Labels[0], "2024-01-01 00:00:00")
}

func TestTransformPreservesDisorderedInput(t *testing.T) {
	// Timestamp order is an upstream contract. Duplicate or out-of-order
	// dates must pass through with input order and length preserved.
	date := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	candles := []*shared.Candlestick{
		{Open: 1, Close: 2, Date: date.Add(time.Hour)},
		{Open: 2, Close: 3, Date: date},
		{Open: 3, Close: 4, Date: date},
	}

	series := Transform(candles, nil)
	assert.Equal(t, series.Length(), 3)
	assert.Equal(t, series.Candles[0][0], float64(1))
	assert.Equal(t, series.Candles[2][0], float64(3))
	assert.Equal(t, series.Labels[1], series.Labels[2])
}

func TestTransformTieGoesUp(t *testing.T) {
	candles := []*shared.Candlestick{
		{Open: 10, Close: 10, Volume: 50, Date: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	series := Transform(candles, nil)
	assert.Equal(t, series.Volumes[0].Direction, shared.Up)
}
