// Package comex pulls the monthly Argentine trade balance (ICA) series
// from the national open data portal.
package comex

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strings"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// icaURL is the monthly trade balance distribution, comma delimited with
// machine formatted numbers and ISO dates.
const icaURL = "https://infra.datos.gob.ar/catalog/sspm/dataset/74/distribution/74.3/download/intercambio-comercial-argentino-mensual.csv"

// Canonical keys for the ICA columns the monitor displays.
const (
	ExpoTotal = "expo_total"
	ImpoTotal = "impo_total"
	Saldo     = "saldo"
)

// renameICA maps the portal's column names to the monitor's keys:
// exports FOB by heading, imports CIF by economic use.
var renameICA = map[string]string{
	"ica_expo_totales":          ExpoTotal,
	"ica_importaciones_totales": ImpoTotal,
	"ica_saldo_comercial":       Saldo,

	"ica_exportacion_productos_primarios":              "expo_pp",
	"ica_exportacion_manufacturas_origen_agropecuario": "expo_moa",
	"ica_exportacion_manufacturas_origen_industrial":   "expo_moi",
	"ica_exportacion_combustible_energia":              "expo_cye",

	"ica_importaciones_bienes_capital":                  "impo_bk",
	"ica_importaciones_bienes_intermedios":              "impo_bi",
	"ica_importaciones_combustibles_lubricantes":        "impo_cl",
	"ica_importaciones_piezas_accesorios_bienes_capital": "impo_pabc",
	"ica_importaciones_bienes_consumo":                  "impo_bc",
	"ica_importaciones_vehiculos_automotores_pasajeros": "impo_vap",
	"ica_importaciones_resto":                           "impo_resto",

	"ica_bienes_capital_partes_piezas":                          "impo_bk_pabc",
	"ica_bienes_intermedios_combustibles_lubricantes":           "impo_bi_cl",
	"ica_importaciones_bs_consumo_vehiculos_automotor_pasajeros": "impo_bc_vap",
}

const icaTTL = 6 * time.Hour

// Client fetches the trade balance through a shared fetcher and
// freshness cache.
type Client struct {
	Fetcher *monitor.Fetcher
	Cache   *monitor.Cache
	// URL overrides the production distribution, for tests.
	URL string
}

// New returns a client on fresh defaults.
func New() *Client {
	return &Client{Fetcher: monitor.NewFetcher(), Cache: monitor.NewCache(), URL: icaURL}
}

// ICA returns the monthly trade series keyed by canonical name. Columns
// without a canonical mapping are dropped.
func (c *Client) ICA(ctx context.Context) (*monitor.KeyedSeries, error) {
	return monitor.Cached(c.Cache, "comex:ica", icaTTL, func() (*monitor.KeyedSeries, error) {
		raw, err := c.Fetcher.Blob(ctx, c.URL)
		if err != nil {
			return nil, err
		}
		return monitor.ParseCached(c.Cache, "comex:ica", raw, parseICA)
	})
}

func parseICA(raw []byte) (*monitor.KeyedSeries, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("ica: cannot split payload: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("ica: %w", monitor.ErrNoData)
	}

	header := rows[0]
	dateCol := -1
	type column struct {
		idx int
		key string
	}
	var columns []column
	for i, name := range header {
		name = strings.TrimSpace(name)
		if name == "indice_tiempo" {
			dateCol = i
			continue
		}
		if key, ok := renameICA[name]; ok {
			columns = append(columns, column{i, key})
		}
	}
	if dateCol < 0 {
		return nil, fmt.Errorf("ica: no indice_tiempo column: %w", monitor.ErrNoData)
	}

	k := monitor.NewKeyedSeries(date.Monthly)
	for _, row := range rows[1:] {
		if dateCol >= len(row) {
			continue
		}
		period, ok := monitor.ParseMonth(row[dateCol])
		if !ok {
			continue
		}
		for _, col := range columns {
			if col.idx >= len(row) {
				continue
			}
			if v, ok := monitor.ParseNumber(row[col.idx]); ok {
				k.Append(col.key, period, v)
			}
		}
	}
	if k.Empty() {
		return nil, fmt.Errorf("ica: %w", monitor.ErrNoData)
	}
	return k, nil
}
