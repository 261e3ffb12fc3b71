package monitor

import (
	"strings"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Years outside this window flag a cell that merely looks like a date
// (a footnote number, a spreadsheet artifact). Such rows are skipped.
const (
	minSaneYear = 2000
	maxSaneYear = 2035
)

func saneDate(d date.Date) bool {
	return d.Year() >= minSaneYear && d.Year() <= maxSaneYear
}

// Table is a rectangular-ish grid of cells as decoded from a spreadsheet
// or a delimited file. Rows may be ragged; out of range cells read as
// empty. Extraction is row tolerant throughout: a row that does not parse
// is dropped, never fatal, so one corrupt line cannot take down a source.
type Table struct {
	Rows [][]string
}

// Cell returns the cell at row r, column c, or "" when out of range.
func (t Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) {
		return ""
	}
	row := t.Rows[r]
	if c < 0 || c >= len(row) {
		return ""
	}
	return row[c]
}

// Len returns the number of rows.
func (t Table) Len() int { return len(t.Rows) }

func cellHas(cell, token string) bool {
	return strings.Contains(strings.ToLower(cell), strings.ToLower(token))
}

// HeaderRow locates the first row where every token appears in some cell,
// case insensitively. Agency files bury the header under a variable number
// of title and note rows, so it must be discovered, not assumed.
func (t Table) HeaderRow(tokens ...string) (int, bool) {
	for r, row := range t.Rows {
		found := 0
		for _, token := range tokens {
			for _, cell := range row {
				if cellHas(cell, token) {
					found++
					break
				}
			}
		}
		if found == len(tokens) {
			return r, true
		}
	}
	return 0, false
}

// FindColumn returns the first column in row whose cell contains token,
// case insensitively.
func (t Table) FindColumn(row int, token string) (int, bool) {
	if row < 0 || row >= len(t.Rows) {
		return 0, false
	}
	for c, cell := range t.Rows[row] {
		if cellHas(cell, token) {
			return c, true
		}
	}
	return 0, false
}

// DateColumn discovers which column under headerRow holds dates, by
// majority vote over a sample of rows. Some downloads move the date
// column without notice.
func (t Table) DateColumn(headerRow int) (int, bool) {
	width := 0
	for r := headerRow + 1; r < len(t.Rows) && r <= headerRow+20; r++ {
		if len(t.Rows[r]) > width {
			width = len(t.Rows[r])
		}
	}
	bestCol, bestHits := 0, 0
	for c := 0; c < width; c++ {
		hits := 0
		for r := headerRow + 1; r < len(t.Rows) && r <= headerRow+20; r++ {
			if d, ok := ParseDay(t.Cell(r, c)); ok && saneDate(d) {
				hits++
			}
		}
		if hits > bestHits {
			bestCol, bestHits = c, hits
		}
	}
	return bestCol, bestHits > 0
}

// parserFor picks the date reader matching the series frequency.
func parserFor(freq date.Period) func(string) (date.Date, bool) {
	if freq == date.Monthly {
		return ParseMonth
	}
	return ParseDay
}

// Pairs extracts a two column date and value layout starting below
// startRow. Rows whose date or value does not parse, or whose date falls
// outside the sane year window, are skipped.
func (t Table) Pairs(freq date.Period, dateCol, valCol, startRow int) *Series {
	parseDate := parserFor(freq)
	s := NewSeries(freq)
	for r := startRow; r < len(t.Rows); r++ {
		d, ok := parseDate(t.Cell(r, dateCol))
		if !ok || !saneDate(d) {
			continue
		}
		v, ok := ParseNumber(t.Cell(r, valCol))
		if !ok {
			continue
		}
		s.Append(d, v)
	}
	return s
}

// Wide extracts a wide layout: category labels on headerRow, one date per
// data row at dateCol, one value column per category. Columns with an
// empty header and the date column itself are ignored. The result is the
// long form, one series per category.
func (t Table) Wide(freq date.Period, headerRow, dateCol int) *KeyedSeries {
	if headerRow < 0 || headerRow >= len(t.Rows) {
		// A truncated sheet has no header to read; degrade to empty.
		return NewKeyedSeries(freq)
	}
	var cols []int
	for c := range t.Rows[headerRow] {
		if c != dateCol && cleanCell(t.Cell(headerRow, c)) != "" {
			cols = append(cols, c)
		}
	}
	return t.WideCols(freq, headerRow, dateCol, cols)
}

// WideCols is Wide restricted to an explicit set of value columns, for
// sheets that interleave data with subtotal or note columns.
func (t Table) WideCols(freq date.Period, headerRow, dateCol int, cols []int) *KeyedSeries {
	parseDate := parserFor(freq)
	k := NewKeyedSeries(freq)
	for r := headerRow + 1; r < len(t.Rows); r++ {
		d, ok := parseDate(t.Cell(r, dateCol))
		if !ok || !saneDate(d) {
			continue
		}
		for _, c := range cols {
			label := cleanCell(t.Cell(headerRow, c))
			if label == "" {
				continue
			}
			if v, ok := ParseNumber(t.Cell(r, c)); ok {
				k.Append(label, d, v)
			}
		}
	}
	return k
}

// YearMonth extracts the sparse-year layout where the year is printed once
// and left blank for the rest of its block, with a Spanish month name per
// row. Blank year cells inherit the last seen year. A row with a month
// but no year yet, or with an unparseable value, is skipped.
func (t Table) YearMonth(yearCol, monthCol, valCol, startRow int) *Series {
	s := NewSeries(date.Monthly)
	year := 0
	for r := startRow; r < len(t.Rows); r++ {
		if y, ok := ParseYear(t.Cell(r, yearCol)); ok && y >= minSaneYear && y <= maxSaneYear {
			year = y
		}
		if year == 0 {
			continue
		}
		m, ok := spanishMonths[strings.ToLower(strings.TrimSuffix(cleanCell(t.Cell(r, monthCol)), "."))]
		if !ok {
			continue
		}
		v, ok := ParseNumber(t.Cell(r, valCol))
		if !ok {
			continue
		}
		s.Append(date.New(year, m, 1), v)
	}
	return s
}
