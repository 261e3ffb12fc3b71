package indec

import (
	"context"
	"fmt"
	"strings"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// ipcURL is the CPI-by-division series, semicolon delimited, decimal
// comma, periods as YYYYMM.
const ipcURL = "https://www.indec.gob.ar/ftp/cuadros/economia/serie_ipc_divisiones.csv"

// RegionNacional is the national aggregate region label.
const RegionNacional = "Nacional"

// IPCMeasure selects one of the value columns of the CPI file.
type IPCMeasure string

const (
	IPCIndex   IPCMeasure = "Indice_IPC" // index level
	IPCMonthly IPCMeasure = "v_m_IPC"    // percent against previous month
	IPCYearly  IPCMeasure = "v_i_a_IPC"  // percent against same month last year
)

// IPCDivisiones returns one monthly series per CPI division for a region,
// keyed by division description, carrying the chosen measure.
func (c *Client) IPCDivisiones(ctx context.Context, region string, measure IPCMeasure) (*monitor.KeyedSeries, error) {
	name := fmt.Sprintf("ipc:%s:%s", region, measure)
	return source(ctx, c, name, c.IPCURL, func(raw []byte) (*monitor.KeyedSeries, error) {
		return parseIPC(raw, region, measure, nil)
	})
}

// IPCNacionalGeneral returns the national headline CPI monthly variation,
// in percent: division code 0, national region.
func (c *Client) IPCNacionalGeneral(ctx context.Context) (*monitor.Series, error) {
	return source(ctx, c, "ipc:nacional:general", c.IPCURL, func(raw []byte) (*monitor.Series, error) {
		zero := "0"
		k, err := parseIPC(raw, RegionNacional, IPCMonthly, &zero)
		if err != nil {
			return nil, err
		}
		for _, key := range k.Keys() {
			s, _ := k.Get(key)
			return s, nil
		}
		return nil, fmt.Errorf("ipc: headline division missing: %w", monitor.ErrNoData)
	})
}

// parseIPC filters the long CPI file by region, and optionally by
// division code, keying the result by division description.
func parseIPC(raw []byte, region string, measure IPCMeasure, code *string) (*monitor.KeyedSeries, error) {
	tab, err := tableFromCSV(raw, ';')
	if err != nil {
		return nil, fmt.Errorf("ipc: %w", err)
	}
	header, ok := tab.HeaderRow("periodo", "codigo", "region")
	if !ok {
		return nil, fmt.Errorf("ipc: header row not found: %w", monitor.ErrNoData)
	}
	colPeriod, _ := tab.FindColumn(header, "periodo")
	colCode, _ := tab.FindColumn(header, "codigo")
	colRegion, _ := tab.FindColumn(header, "region")
	colDescription, _ := tab.FindColumn(header, "descripcion")
	colValue, ok := tab.FindColumn(header, string(measure))
	if !ok {
		return nil, fmt.Errorf("ipc: column %q not found: %w", measure, monitor.ErrNoData)
	}

	k := monitor.NewKeyedSeries(date.Monthly)
	for r := header + 1; r < tab.Len(); r++ {
		if !strings.EqualFold(strings.TrimSpace(tab.Cell(r, colRegion)), region) {
			continue
		}
		if code != nil && strings.TrimSpace(tab.Cell(r, colCode)) != *code {
			continue
		}
		period, ok := monitor.ParseMonth(tab.Cell(r, colPeriod))
		if !ok {
			continue
		}
		v, ok := monitor.ParseNumber(tab.Cell(r, colValue))
		if !ok {
			continue
		}
		k.Append(strings.TrimSpace(tab.Cell(r, colDescription)), period, v)
	}
	if k.Empty() {
		return nil, fmt.Errorf("ipc: region %q: %w", region, monitor.ErrNoData)
	}
	return k, nil
}
