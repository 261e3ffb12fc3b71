package bcra

import (
	"context"
	"fmt"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// remURL is the historical market expectations survey workbook.
const remURL = "https://www.bcra.gob.ar/archivos/Pdfs/PublicacionesEstadisticas/historico-relevamiento-expectativas-mercado.xlsx"

const (
	remSheet     = "Base de Datos Completa"
	remVariable  = "Precios minoristas (IPC nivel general; INDEC)"
	remReference = "var. % mensual"
	remHorizon   = 24 // months of forecast kept
)

// REM returns the latest monthly inflation forecast path from the market
// expectations survey: the median expected CPI variation, in percent per
// month, for the 24 periods of the most recent survey round.
func (c *Client) REM(ctx context.Context) (*monitor.Series, error) {
	return workbook(ctx, c, "rem", c.REMURL, parseREM)
}

func parseREM(raw []byte) (*monitor.Series, error) {
	tab, err := monitor.TableFromXLSX(raw, remSheet)
	if err != nil {
		return nil, fmt.Errorf("rem: %w", err)
	}
	header, ok := tab.HeaderRow("variable", "referencia", "período")
	if !ok {
		return nil, fmt.Errorf("rem: header row not found: %w", monitor.ErrNoData)
	}
	colVariable, _ := tab.FindColumn(header, "variable")
	colReference, _ := tab.FindColumn(header, "referencia")
	colForecast, ok := tab.FindColumn(header, "fecha de pronóstico")
	if !ok {
		return nil, fmt.Errorf("rem: forecast date column not found: %w", monitor.ErrNoData)
	}
	colPeriod, _ := tab.FindColumn(header, "período")
	colMedian, ok := tab.FindColumn(header, "mediana")
	if !ok {
		return nil, fmt.Errorf("rem: median column not found: %w", monitor.ErrNoData)
	}

	// The workbook holds every survey round; only the newest one counts.
	var latest date.Date
	for r := header + 1; r < tab.Len(); r++ {
		if !matchesREM(tab, r, colVariable, colReference) {
			continue
		}
		if d, ok := monitor.ParseDay(tab.Cell(r, colForecast)); ok && d.After(latest) {
			latest = d
		}
	}
	if latest.IsZero() {
		return nil, fmt.Errorf("rem: no survey rounds: %w", monitor.ErrNoData)
	}

	s := monitor.NewSeries(date.Monthly)
	for r := header + 1; r < tab.Len(); r++ {
		if !matchesREM(tab, r, colVariable, colReference) {
			continue
		}
		if d, ok := monitor.ParseDay(tab.Cell(r, colForecast)); !ok || d != latest {
			continue
		}
		period, ok := monitor.ParseMonth(tab.Cell(r, colPeriod))
		if !ok {
			continue
		}
		v, ok := monitor.ParseNumber(tab.Cell(r, colMedian))
		if !ok {
			continue
		}
		s.Append(period, v)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("rem: %w", monitor.ErrNoData)
	}
	return s.Tail(remHorizon), nil
}

func matchesREM(tab monitor.Table, row, colVariable, colReference int) bool {
	return tab.Cell(row, colVariable) == remVariable && tab.Cell(row, colReference) == remReference
}
