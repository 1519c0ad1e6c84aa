package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dnldd/chartview/shared"
	"github.com/tidwall/gjson"
)

const (
	baseURL = "https://financialmodelingprep.com/stable"
)

// FMPConfig represents the configuration for the FMP client.
type FMPConfig struct {
	// APIkey is the FMP API Key.
	APIKey string
}

// FMPClient represents the Financial Modeling Preparation (FMP) API client.
type FMPClient struct {
	cfg   *FMPConfig
	httpc http.Client
}

// Ensure the FMPClient implements the MarketFetcher interface.
var _ shared.MarketFetcher = (*FMPClient)(nil)

// NewFMPClient instantiates a new FMP client.
func NewFMPClient(cfg *FMPConfig) *FMPClient {
	return &FMPClient{
		cfg:   cfg,
		httpc: http.Client{Timeout: time.Second * 5},
	}
}

// formURL creates full urls including parameters for the api. The client is
// shared by concurrent fetch workers, so the url is assembled locally.
func (c *FMPClient) formURL(path string, params string) string {
	var buf strings.Builder
	buf.Grow(len(baseURL) + len(path) + 1 + len(params))
	buf.WriteString(baseURL)
	buf.WriteString(path)
	buf.WriteString("?")
	buf.WriteString(params)

	return buf.String()
}

// dateLayout returns the candle date layout used by the api for the interval.
func dateLayout(interval shared.Interval) string {
	if interval.Intraday() {
		return shared.DateLayout
	}
	return shared.DayLayout
}

// ParseCandlesticks parses candlesticks from the provided json data.
func ParseCandlesticks(data []gjson.Result, ticker string, interval shared.Interval) ([]shared.Candlestick, error) {
	candles := make([]shared.Candlestick, len(data))

	for idx := range data {
		var candle shared.Candlestick

		candle.Open = data[idx].Get("open").Float()
		candle.Low = data[idx].Get("low").Float()
		candle.High = data[idx].Get("high").Float()
		candle.Close = data[idx].Get("close").Float()
		candle.Volume = data[idx].Get("volume").Float()

		candle.Ticker = ticker
		candle.Interval = interval

		dt, err := time.Parse(dateLayout(interval), data[idx].Get("date").String())
		if err != nil {
			return nil, fmt.Errorf("parsing candlestick date: %w", err)
		}

		candle.Date = dt
		candles[idx] = candle
	}

	return candles, nil
}

// FetchHistorical fetches historical market data for the provided ticker and
// interval.
func (c *FMPClient) FetchHistorical(ctx context.Context, ticker string, interval shared.Interval, start time.Time, end time.Time) ([]gjson.Result, error) {
	const (
		oneMinuteHistoricalPath = "/historical-chart/1min"
		oneHourHistoricalPath   = "/historical-chart/1hour"
		oneDayHistoricalPath    = "/historical-chart/1day"
		oneWeekHistoricalPath   = "/historical-chart/1week"
	)

	params := url.Values{}
	params.Add("symbol", ticker)
	params.Add("apikey", c.cfg.APIKey)
	params.Add("from", start.Format(dateLayout(interval)))
	if !end.IsZero() {
		params.Add("to", end.Format(dateLayout(interval)))
	}

	var formedURL string

	switch interval {
	case shared.OneMinute:
		formedURL = c.formURL(oneMinuteHistoricalPath, params.Encode())
	case shared.OneHour:
		formedURL = c.formURL(oneHourHistoricalPath, params.Encode())
	case shared.OneDay:
		formedURL = c.formURL(oneDayHistoricalPath, params.Encode())
	case shared.OneWeek:
		formedURL = c.formURL(oneWeekHistoricalPath, params.Encode())
	default:
		return nil, fmt.Errorf("unknown interval provided: %s", interval.String())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, formedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating historical data request: %w", err)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching historical data (%s) for %s: %w", interval.String(), ticker, err)
	}

	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	data := gjson.ParseBytes(body).Array()

	return data, nil
}
