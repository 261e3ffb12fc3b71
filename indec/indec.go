// Package indec pulls the INDEC series the monitor tracks: the consumer
// price index by division (CSV) and the manufacturing production index
// workbook (IPI).
package indec

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/corral-ceu/monitor-ceu-uia"
)

const sourceTTL = 12 * time.Hour

// Client fetches INDEC sources through a shared fetcher and freshness
// cache.
type Client struct {
	Fetcher *monitor.Fetcher
	Cache   *monitor.Cache
	// IPCURL and IPIURL override the production endpoints, for tests.
	IPCURL string
	IPIURL string
}

// New returns a client on fresh defaults.
func New() *Client {
	return &Client{
		Fetcher: monitor.NewFetcher(),
		Cache:   monitor.NewCache(),
		IPCURL:  ipcURL,
		IPIURL:  ipiURL,
	}
}

// tableFromCSV decodes a delimited payload into a table. INDEC serves
// some files as Latin-1; payloads that are not valid UTF-8 are decoded
// through that charset before splitting.
func tableFromCSV(raw []byte, comma rune) (monitor.Table, error) {
	if !utf8.Valid(raw) {
		decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
		if err != nil {
			return monitor.Table{}, fmt.Errorf("cannot decode latin-1 payload: %w", err)
		}
		raw = decoded
	}
	r := csv.NewReader(bytes.NewReader(raw))
	r.Comma = comma
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	rows, err := r.ReadAll()
	if err != nil {
		return monitor.Table{}, fmt.Errorf("cannot split delimited payload: %w", err)
	}
	return monitor.Table{Rows: rows}, nil
}

// source downloads a payload and parses it at most once per distinct
// content.
func source[T any](ctx context.Context, c *Client, name, url string, parse func([]byte) (T, error)) (T, error) {
	return monitor.Cached(c.Cache, "indec:"+name, sourceTTL, func() (T, error) {
		var zero T
		raw, err := c.Fetcher.Blob(ctx, url)
		if err != nil {
			return zero, err
		}
		return monitor.ParseCached(c.Cache, "indec:"+name, raw, parse)
	})
}
