package bcra

import (
	"context"
	"fmt"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// itcrmURL is the multilateral and bilateral real exchange rate workbook.
const itcrmURL = "https://www.bcra.gob.ar/archivos/Pdfs/PublicacionesEstadisticas/ITCRMSerie.xlsx"

const itcrmSheet = "ITCRM y bilaterales"

// ITCRM returns the daily real exchange rate indices, one series per
// column of the workbook: the multilateral index plus one bilateral per
// partner. Dates are day first in column A, series names on the second
// row.
func (c *Client) ITCRM(ctx context.Context) (*monitor.KeyedSeries, error) {
	return workbook(ctx, c, "itcrm", c.ITCRMURL, parseITCRM)
}

func parseITCRM(raw []byte) (*monitor.KeyedSeries, error) {
	tab, err := monitor.TableFromXLSX(raw, itcrmSheet)
	if err != nil {
		return nil, fmt.Errorf("itcrm: %w", err)
	}
	header, ok := tab.HeaderRow("itcrm")
	if !ok {
		return nil, fmt.Errorf("itcrm: header row not found: %w", monitor.ErrNoData)
	}
	k := tab.Wide(date.Daily, header, 0)
	if k.Empty() {
		return nil, fmt.Errorf("itcrm: %w", monitor.ErrNoData)
	}
	return k, nil
}
