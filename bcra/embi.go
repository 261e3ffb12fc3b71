package bcra

import (
	"context"
	"fmt"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// embiURL is the historical EMBI spread workbook, one column per country.
const embiURL = "https://bcrdgdcprod.blob.core.windows.net/documents/entorno-internacional/documents/Serie_Historica_Spread_del_EMBI.xlsx"

// EMBI returns the daily country risk spreads, one series per country
// column. The workbook has moved its date column in past revisions, so
// the column is discovered rather than assumed.
func (c *Client) EMBI(ctx context.Context) (*monitor.KeyedSeries, error) {
	return workbook(ctx, c, "embi", c.EMBIURL, parseEMBI)
}

func parseEMBI(raw []byte) (*monitor.KeyedSeries, error) {
	tab, err := monitor.TableFromXLSX(raw, "")
	if err != nil {
		return nil, fmt.Errorf("embi: %w", err)
	}
	header, ok := tab.HeaderRow("fecha")
	if !ok {
		header = 0
	}
	dateCol, ok := tab.FindColumn(header, "fecha")
	if !ok {
		if dateCol, ok = tab.DateColumn(header); !ok {
			return nil, fmt.Errorf("embi: no date column: %w", monitor.ErrNoData)
		}
	}
	k := tab.Wide(date.Daily, header, dateCol)
	if k.Empty() {
		return nil, fmt.Errorf("embi: %w", monitor.ErrNoData)
	}
	return k, nil
}
