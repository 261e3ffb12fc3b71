// Package market pulls daily quotes from the public Yahoo chart endpoint
// and derives the CCL proxy, the implicit FX rate read off a stock that
// trades both in Buenos Aires in pesos and in New York in dollars.
package market

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Tickers of the CCL proxy pair.
const (
	TickerARS = "YPFD.BA" // peso leg
	TickerUSD = "YPF"     // dollar leg
)

const (
	chartBase = "https://query1.finance.yahoo.com/v8/finance/chart"
	quoteTTL  = 5 * time.Minute
)

// Client fetches quotes through a shared fetcher and freshness cache.
type Client struct {
	Fetcher *monitor.Fetcher
	Cache   *monitor.Cache
	// Base overrides the chart endpoint, for tests.
	Base string
}

// New returns a client on fresh defaults.
func New() *Client {
	return &Client{Fetcher: monitor.NewFetcher(), Cache: monitor.NewCache(), Base: chartBase}
}

// chartResponse is the subset of the chart envelope the monitor reads.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error json.RawMessage `json:"error"`
	} `json:"chart"`
}

// History returns the daily closing series of a ticker over a chart range
// such as "1y" or "2y". Days without a close (halts, partial sessions)
// are dropped.
func (c *Client) History(ctx context.Context, ticker, rng string) (*monitor.Series, error) {
	key := fmt.Sprintf("market:%s:%s", ticker, rng)
	return monitor.Cached(c.Cache, key, quoteTTL, func() (*monitor.Series, error) {
		addr := fmt.Sprintf("%s/%s?range=%s&interval=1d", c.Base, url.PathEscape(ticker), url.QueryEscape(rng))
		var resp chartResponse
		if err := c.Fetcher.JSON(ctx, addr, &resp); err != nil {
			return nil, err
		}
		if len(resp.Chart.Result) == 0 || len(resp.Chart.Result[0].Indicators.Quote) == 0 {
			return nil, fmt.Errorf("chart %s: %w", ticker, monitor.ErrNoData)
		}
		result := resp.Chart.Result[0]
		closes := result.Indicators.Quote[0].Close
		s := monitor.NewSeries(date.Daily)
		for i, ts := range result.Timestamp {
			if i >= len(closes) || closes[i] == nil {
				continue
			}
			s.Append(date.FromTime(time.Unix(ts, 0).UTC()), *closes[i])
		}
		if s.Len() == 0 {
			return nil, fmt.Errorf("chart %s: %w", ticker, monitor.ErrNoData)
		}
		return s, nil
	})
}

// CCL returns the implicit FX series: the peso quote divided by the
// dollar quote, matched on exact shared trading days. Diverging holiday
// calendars drop out, as do zero dollar closes.
func (c *Client) CCL(ctx context.Context, rng string) (*monitor.Series, error) {
	ars, err := c.History(ctx, TickerARS, rng)
	if err != nil {
		return nil, err
	}
	usd, err := c.History(ctx, TickerUSD, rng)
	if err != nil {
		return nil, err
	}
	ccl := monitor.RatioAsOf(ars, usd, 0)
	if ccl.Len() == 0 {
		return nil, fmt.Errorf("ccl: %w", monitor.ErrNoData)
	}
	return ccl, nil
}
