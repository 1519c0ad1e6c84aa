package shared

import (
	"context"
	"time"

	"github.com/tidwall/gjson"
)

// MarketFetcher defines the requirements for fetching historical market data.
type MarketFetcher interface {
	// FetchHistorical fetches historical market data for the provided ticker
	// and interval.
	FetchHistorical(ctx context.Context, ticker string, interval Interval, start time.Time, end time.Time) ([]gjson.Result, error)
}
