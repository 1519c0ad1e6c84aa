package shared

import (
	"testing"
	"time"

	"github.com/peterldowns/testy/assert"
)

func snapshotCandle(close float64, at time.Time) *Candlestick {
	return &Candlestick{
		Open:   close - 1,
		Low:    close - 2,
		High:   close + 2,
		Close:  close,
		Volume: 100,
		Date:   at,
	}
}

func TestNewCandlestickSnapshot(t *testing.T) {
	// Ensure snapshot sizes are sane.
	_, err := NewCandlestickSnapshot(-1)
	assert.Error(t, err)

	_, err = NewCandlestickSnapshot(0)
	assert.Error(t, err)

	snapshot, err := NewCandlestickSnapshot(4)
	assert.NoError(t, err)
	assert.Equal(t, snapshot.Count(), int32(0))
	assert.Nil(t, snapshot.Last())
}

func TestCandlestickSnapshotUpdate(t *testing.T) {
	snapshot, err := NewCandlestickSnapshot(3)
	assert.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for idx := range 3 {
		snapshot.Update(snapshotCandle(float64(10+idx), start.Add(time.Duration(idx)*time.Minute)))
	}

	assert.Equal(t, snapshot.Count(), int32(3))
	assert.Equal(t, snapshot.Last().Close, float64(12))

	// Ensure the oldest entry is overwritten when the snapshot is at capacity.
	snapshot.Update(snapshotCandle(13, start.Add(3*time.Minute)))
	assert.Equal(t, snapshot.Count(), int32(3))
	assert.Equal(t, snapshot.Last().Close, float64(13))

	set := snapshot.LastN(3)
	assert.Equal(t, len(set), 3)
	assert.Equal(t, set[0].Close, float64(11))
	assert.Equal(t, set[2].Close, float64(13))
}

func TestCandlestickSnapshotLastN(t *testing.T) {
	snapshot, err := NewCandlestickSnapshot(5)
	assert.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for idx := range 4 {
		snapshot.Update(snapshotCandle(float64(10+idx), start.Add(time.Duration(idx)*time.Minute)))
	}

	// Ensure a non-positive count yields no entries.
	assert.Nil(t, snapshot.LastN(0))
	assert.Nil(t, snapshot.LastN(-2))

	// Ensure counts above capacity are clamped.
	set := snapshot.LastN(10)
	assert.Equal(t, len(set), 4)

	// Ensure entries are ordered oldest first.
	for idx := range len(set) - 1 {
		assert.True(t, set[idx].Date.Before(set[idx+1].Date))
	}
}
