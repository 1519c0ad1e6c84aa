package shared

import (
	"testing"

	"github.com/peterldowns/testy/assert"
)

func TestFetchDirection(t *testing.T) {
	tests := []struct {
		name   string
		candle Candlestick
		want   Direction
	}{
		{
			"close above open is up",
			Candlestick{Open: 10, Close: 11},
			Up,
		},
		{
			"close below open is down",
			Candlestick{Open: 11, Close: 9},
			Down,
		},
		{
			"close equal to open is up",
			Candlestick{Open: 10, Close: 10},
			Up,
		},
	}

	for _, test := range tests {
		direction := test.candle.FetchDirection()
		if direction != test.want {
			t.Errorf("%s: expected %v, got %v", test.name, test.want, direction)
		}
	}
}

func TestDirectionSign(t *testing.T) {
	// Ensure directions map to signed unit magnitudes.
	assert.Equal(t, Up.Sign(), 1)
	assert.Equal(t, Down.Sign(), -1)
}

func TestDirectionString(t *testing.T) {
	assert.Equal(t, Up.String(), "up")
	assert.Equal(t, Down.String(), "down")
	assert.Equal(t, Direction(999).String(), "unknown")
}
