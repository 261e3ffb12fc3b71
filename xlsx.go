package monitor

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TableFromXLSX decodes one sheet of a spreadsheet payload into a Table.
// An empty sheet name selects the first sheet. Cells come back as the
// displayed strings, which is what the locale aware parsers expect.
func TableFromXLSX(raw []byte, sheet string) (Table, error) {
	f, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return Table{}, fmt.Errorf("cannot open workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return Table{}, fmt.Errorf("cannot read sheet %q: %w", sheet, err)
	}
	return Table{Rows: rows}, nil
}
