package shared

import (
	"time"
)

// Direction represents the up/down direction of a candlestick.
type Direction int

const (
	Down Direction = iota
	Up
)

// String stringifies the provided direction.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Sign returns the signed unit magnitude for the direction, +1 for up and
// -1 for down.
func (d Direction) Sign() int {
	if d == Up {
		return 1
	}
	return -1
}

// Candlestick represents a unit candlestick for a ticker.
type Candlestick struct {
	Open   float64
	Low    float64
	High   float64
	Close  float64
	Volume float64
	Date   time.Time

	// Metadata fields.
	Ticker   string
	Interval Interval
}

// FetchDirection returns the candlestick's direction. A close equal to the
// open counts as up. Every visual channel keyed off a candle's direction must
// read this computed value rather than re-deriving it.
func (c *Candlestick) FetchDirection() Direction {
	if c.Close >= c.Open {
		return Up
	}
	return Down
}
