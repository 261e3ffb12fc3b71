// Package bcra pulls the central bank series the monitor tracks: the
// Monetarias REST API (FX, policy and bank rates, CPI, expected
// inflation), the market expectations survey workbook (REM), the real
// exchange rate workbook (ITCRM) and the EMBI country risk workbook.
package bcra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Variable ids of the Monetarias endpoint.
const (
	FXMayorista       = 5  // wholesale FX rate, daily
	TasaDepositos     = 12 // deposit rate, daily
	TasaAdelantos     = 13 // overdraft rate, daily
	TasaPersonales    = 14 // personal loan rate, daily
	IPCMensual        = 27 // CPI, percent per month
	InflacionEsperada = 29 // expected inflation 12 months ahead, monthly
)

const (
	monetariasBase = "https://api.bcra.gob.ar/estadisticas/v4.0/Monetarias"
	pageSize       = 1000

	monetariasTTL = time.Hour
	workbookTTL   = 12 * time.Hour
)

// Client fetches BCRA sources through a shared fetcher and freshness
// cache.
type Client struct {
	Fetcher *monitor.Fetcher
	Cache   *monitor.Cache
	// Base overrides the Monetarias endpoint, for tests; the workbook
	// URLs override their spreadsheet sources the same way.
	Base     string
	REMURL   string
	ITCRMURL string
	EMBIURL  string
}

// New returns a client on fresh defaults.
func New() *Client {
	return &Client{
		Fetcher:  monitor.NewFetcher(),
		Cache:    monitor.NewCache(),
		Base:     monetariasBase,
		REMURL:   remURL,
		ITCRMURL: itcrmURL,
		EMBIURL:  embiURL,
	}
}

// frequencyOf tells the native reporting frequency of a variable.
func frequencyOf(id int) date.Period {
	switch id {
	case IPCMensual, InflacionEsperada:
		return date.Monthly
	}
	return date.Daily
}

// monetariasPage is the envelope of one Monetarias page.
type monetariasPage struct {
	Results []struct {
		Detalle []record `json:"detalle"`
	} `json:"results"`
}

type record struct {
	Fecha string  `json:"fecha"`
	Valor float64 `json:"valor"`
}

func decodePage(raw []byte) ([]record, error) {
	var p monetariasPage
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	var recs []record
	for _, r := range p.Results {
		recs = append(recs, r.Detalle...)
	}
	return recs, nil
}

// Series fetches the complete history of one Monetarias variable as a
// canonical series. Records with an unreadable date are dropped; monthly
// variables normalize their dates to the first of the month.
func (c *Client) Series(ctx context.Context, id int) (*monitor.Series, error) {
	key := fmt.Sprintf("bcra:monetarias:%d", id)
	return monitor.Cached(c.Cache, key, monetariasTTL, func() (*monitor.Series, error) {
		endpoint := fmt.Sprintf("%s/%d", c.Base, id)
		recs, err := monitor.FetchPages(ctx, c.Fetcher, endpoint, pageSize, decodePage)
		if err != nil {
			return nil, err
		}
		freq := frequencyOf(id)
		s := monitor.NewSeries(freq)
		for _, r := range recs {
			d, ok := monitor.ParseDay(r.Fecha)
			if !ok {
				continue
			}
			if freq == date.Monthly {
				d = d.StartOfMonth()
			}
			s.Append(d, r.Valor)
		}
		if s.Len() == 0 {
			return nil, fmt.Errorf("monetarias %d: %w", id, monitor.ErrNoData)
		}
		return s, nil
	})
}

// ExpectedInflationDaily spreads the monthly expected inflation series
// onto single days up to horizon, so it can sit next to daily rates.
func (c *Client) ExpectedInflationDaily(ctx context.Context, horizon date.Date) (*monitor.Series, error) {
	m, err := c.Series(ctx, InflacionEsperada)
	if err != nil {
		return nil, err
	}
	return monitor.RepeatToDaily(m, horizon), nil
}

// workbook downloads a spreadsheet source and parses it at most once per
// distinct payload.
func workbook[T any](ctx context.Context, c *Client, name, url string, parse func([]byte) (T, error)) (T, error) {
	return monitor.Cached(c.Cache, "bcra:"+name, workbookTTL, func() (T, error) {
		var zero T
		raw, err := c.Fetcher.Blob(ctx, url)
		if err != nil {
			return zero, err
		}
		return monitor.ParseCached(c.Cache, "bcra:"+name, raw, parse)
	})
}
