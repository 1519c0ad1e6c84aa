package shared

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the format layout for parsing intraday candle dates.
	DateLayout = "2006-01-02 15:04:05"
	// DayLayout is the format layout for parsing daily and weekly candle dates.
	DayLayout = "2006-01-02"
)

// Interval represents the market data time period of a candle.
type Interval int

const (
	OneMinute Interval = iota
	OneHour
	OneDay
	OneWeek
)

// String stringifies the provided interval.
func (i Interval) String() string {
	switch i {
	case OneMinute:
		return "1m"
	case OneHour:
		return "1h"
	case OneDay:
		return "1d"
	case OneWeek:
		return "1w"
	default:
		return "unknown"
	}
}

// Duration returns the time spanned by one candle of the interval.
func (i Interval) Duration() time.Duration {
	switch i {
	case OneMinute:
		return time.Minute
	case OneHour:
		return time.Hour
	case OneDay:
		return time.Hour * 24
	case OneWeek:
		return time.Hour * 24 * 7
	default:
		return 0
	}
}

// LabelLayout returns the timestamp format layout used for the interval's
// category axis labels. Intraday intervals label bars by time of day, daily
// and weekly intervals by date.
func (i Interval) LabelLayout() string {
	switch i {
	case OneMinute, OneHour:
		return "01-02 15:04"
	default:
		return DayLayout
	}
}

// Intraday reports whether the interval subdivides a trading day.
func (i Interval) Intraday() bool {
	return i == OneMinute || i == OneHour
}

// ParseInterval parses the provided interval string.
func ParseInterval(interval string) (Interval, error) {
	switch interval {
	case "1m":
		return OneMinute, nil
	case "1h":
		return OneHour, nil
	case "1d":
		return OneDay, nil
	case "1w":
		return OneWeek, nil
	default:
		return 0, fmt.Errorf("unknown interval provided: %s", interval)
	}
}
