package indec

import (
	"context"
	"fmt"

	"github.com/corral-ceu/monitor-ceu-uia"
)

// ipiURL is the manufacturing production index workbook.
const ipiURL = "https://www.indec.gob.ar/ftp/cuadros/economia/sh_ipi_manufacturero_2025.xlsx"

// IPI workbook layout: data rows start below the title block, the year is
// printed once per block and the month is a full Spanish name.
const (
	IPISheetOriginal = "Cuadro 2" // original series
	IPISheetAdjusted = "Cuadro 5" // seasonally adjusted series
	ipiYearCol       = 1
	ipiMonthCol      = 2
	ipiGeneralCol    = 3
	ipiDataRow       = 6
)

// IPISeries extracts one monthly column of an IPI sheet.
func (c *Client) IPISeries(ctx context.Context, sheet string, col int) (*monitor.Series, error) {
	name := fmt.Sprintf("ipi:%s:%d", sheet, col)
	return source(ctx, c, name, c.IPIURL, func(raw []byte) (*monitor.Series, error) {
		tab, err := monitor.TableFromXLSX(raw, sheet)
		if err != nil {
			return nil, fmt.Errorf("ipi: %w", err)
		}
		s := tab.YearMonth(ipiYearCol, ipiMonthCol, col, ipiDataRow)
		if s.Len() == 0 {
			return nil, fmt.Errorf("ipi %s col %d: %w", sheet, col, monitor.ErrNoData)
		}
		return s, nil
	})
}

// IPIGeneral returns the headline index, original and seasonally
// adjusted.
func (c *Client) IPIGeneral(ctx context.Context) (original, adjusted *monitor.Series, err error) {
	if original, err = c.IPISeries(ctx, IPISheetOriginal, ipiGeneralCol); err != nil {
		return nil, nil, err
	}
	if adjusted, err = c.IPISeries(ctx, IPISheetAdjusted, ipiGeneralCol); err != nil {
		return nil, nil, err
	}
	return original, adjusted, nil
}
