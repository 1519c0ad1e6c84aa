package shared

// ChartDataRequest represents a request to fetch the candles currently
// backing a chart.
type ChartDataRequest struct {
	Ticker   string
	Interval Interval
	N        int32
	Response chan []*Candlestick
}

// NewChartDataRequest initializes a new chart data request.
func NewChartDataRequest(ticker string, interval Interval, n int32) ChartDataRequest {
	return ChartDataRequest{
		Ticker:   ticker,
		Interval: interval,
		N:        n,
		Response: make(chan []*Candlestick, 1),
	}
}
