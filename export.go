package monitor

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// NoDataLabel is how a missing value is rendered everywhere user-facing.
const NoDataLabel = "s/d"

var monthNames = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// MonthName returns the Spanish name of a month, lowercase as customary.
func MonthName(m time.Month) string { return monthNames[m-1] }

// MonthLabel renders a month-resolution date for display, "marzo 2024".
func MonthLabel(d date.Date) string {
	return fmt.Sprintf("%s %d", MonthName(d.Month()), d.Year())
}

// FormatNumber renders a value in the es-AR convention: dot for thousands,
// comma for decimals ("1.234,56"). NaN renders as the no-data label.
func FormatNumber(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return NoDataLabel
	}
	plain := decimal.NewFromFloat(v).StringFixed(int32(decimals))
	neg := strings.HasPrefix(plain, "-")
	plain = strings.TrimPrefix(plain, "-")
	intPart, fracPart, hasFrac := strings.Cut(plain, ".")
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}
	if hasFrac {
		b.WriteByte(',')
		b.WriteString(fracPart)
	}
	return b.String()
}

func tickLabel(d date.Date, freq date.Period) string {
	if freq == date.Monthly {
		return d.Format("2006-01")
	}
	return d.String()
}

// WriteDelimited exports the frame as a delimited table, one row per
// calendar tick, dates first. This is the user-facing download format, so
// numbers follow the es-AR convention and gaps render as the no-data
// label.
func (f *Frame) WriteDelimited(w io.Writer, sep rune, decimals int) error {
	cw := csv.NewWriter(w)
	cw.Comma = sep
	header := append([]string{"fecha"}, f.cols...)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for i, tick := range f.days {
		row[0] = tickLabel(tick, f.freq)
		for j, name := range f.cols {
			if v, ok := f.At(name, i); ok {
				row[j+1] = FormatNumber(v, decimals)
			} else {
				row[j+1] = NoDataLabel
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
