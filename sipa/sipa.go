// Package sipa pulls registered employment from the monthly SIPA
// workbook. The file is republished under a new period-stamped name every
// month, so its URL is discovered from the ministry landing page, with a
// backward probe as fallback.
package sipa

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

const (
	landingURL = "https://www.argentina.gob.ar/trabajo/estadisticas/situacion-y-evolucion-del-trabajo-registrado"
	filesBase  = "https://www.argentina.gob.ar/sites/default/files"

	resolveTTL  = 24 * time.Hour
	downloadTTL = 12 * time.Hour
)

// filePattern matches the period-stamped workbook name; the capture is
// the YYMM stamp, which sorts chronologically within a century.
var filePattern = regexp.MustCompile(`trabajoregistrado_(\d{4})_estadisticas\.xlsx`)

// Workbook sheets. Every series is monthly; general totals are a two
// column layout, sectors a wide layout with titles on the second row, and
// the industry breakdown the same wide layout restricted to columns D
// through J.
const (
	sheetTotal      = "T.2.1"
	sheetTotalSA    = "T.2.2"
	sheetSectors    = "A.2.1"
	sheetSectorsSA  = "A.2.2"
	sheetIndustry   = "A.6.1"
	sheetIndustrySA = "A.6.2"

	wideHeaderRow = 1
)

var industryCols = []int{3, 4, 5, 6, 7, 8, 9}

// Data is the parsed workbook: each breakdown in original and seasonally
// adjusted form.
type Data struct {
	Total      *monitor.Series
	TotalSA    *monitor.Series
	Sectors    *monitor.KeyedSeries
	SectorsSA  *monitor.KeyedSeries
	Industry   *monitor.KeyedSeries
	IndustrySA *monitor.KeyedSeries
}

// Client fetches the SIPA workbook through a shared fetcher and freshness
// cache.
type Client struct {
	Fetcher *monitor.Fetcher
	Cache   *monitor.Cache
	// Landing and Files override the production URLs, for tests.
	Landing string
	Files   string
}

// New returns a client on fresh defaults.
func New() *Client {
	return &Client{
		Fetcher: monitor.NewFetcher(),
		Cache:   monitor.NewCache(),
		Landing: landingURL,
		Files:   filesBase,
	}
}

// Resolve returns the URL of the current workbook.
func (c *Client) Resolve(ctx context.Context) (string, error) {
	return monitor.Cached(c.Cache, "sipa:url", resolveTTL, func() (string, error) {
		r := &monitor.Resolver{
			Fetcher: c.Fetcher,
			Landing: c.Landing,
			Pattern: filePattern,
			Candidate: func(month date.Date) string {
				return fmt.Sprintf("%s/trabajoregistrado_%02d%02d_estadisticas.xlsx",
					c.Files, month.Year()%100, int(month.Month()))
			},
		}
		return r.Resolve(ctx)
	})
}

// Fetch downloads and parses the current workbook.
func (c *Client) Fetch(ctx context.Context) (*Data, error) {
	return monitor.Cached(c.Cache, "sipa:data", downloadTTL, func() (*Data, error) {
		addr, err := c.Resolve(ctx)
		if err != nil {
			return nil, err
		}
		raw, err := c.Fetcher.Blob(ctx, addr)
		if err != nil {
			return nil, err
		}
		return monitor.ParseCached(c.Cache, "sipa:data", raw, parse)
	})
}

func parse(raw []byte) (*Data, error) {
	d := &Data{}
	var err error
	if d.Total, err = totals(raw, sheetTotal); err != nil {
		return nil, err
	}
	if d.TotalSA, err = totals(raw, sheetTotalSA); err != nil {
		return nil, err
	}
	if d.Sectors, err = wide(raw, sheetSectors, nil); err != nil {
		return nil, err
	}
	if d.SectorsSA, err = wide(raw, sheetSectorsSA, nil); err != nil {
		return nil, err
	}
	if d.Industry, err = wide(raw, sheetIndustry, industryCols); err != nil {
		return nil, err
	}
	if d.IndustrySA, err = wide(raw, sheetIndustrySA, industryCols); err != nil {
		return nil, err
	}
	return d, nil
}

// totals reads a two column month and value sheet. Title rows simply fail
// the month parse and drop out.
func totals(raw []byte, sheet string) (*monitor.Series, error) {
	tab, err := monitor.TableFromXLSX(raw, sheet)
	if err != nil {
		return nil, fmt.Errorf("sipa %s: %w", sheet, err)
	}
	s := tab.Pairs(date.Monthly, 0, 1, 0)
	if s.Len() == 0 {
		return nil, fmt.Errorf("sipa %s: %w", sheet, monitor.ErrNoData)
	}
	return s, nil
}

func wide(raw []byte, sheet string, cols []int) (*monitor.KeyedSeries, error) {
	tab, err := monitor.TableFromXLSX(raw, sheet)
	if err != nil {
		return nil, fmt.Errorf("sipa %s: %w", sheet, err)
	}
	var k *monitor.KeyedSeries
	if cols == nil {
		k = tab.Wide(date.Monthly, wideHeaderRow, 0)
	} else {
		k = tab.WideCols(date.Monthly, wideHeaderRow, 0, cols)
	}
	if k.Empty() {
		return nil, fmt.Errorf("sipa %s: %w", sheet, monitor.ErrNoData)
	}
	return k, nil
}
