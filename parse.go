package monitor

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Agency spreadsheets label months in Spanish, in short or long form and
// with both spellings of September in circulation.
var spanishMonths = map[string]time.Month{
	"ene": time.January, "enero": time.January,
	"feb": time.February, "febrero": time.February,
	"mar": time.March, "marzo": time.March,
	"abr": time.April, "abril": time.April,
	"may": time.May, "mayo": time.May,
	"jun": time.June, "junio": time.June,
	"jul": time.July, "julio": time.July,
	"ago": time.August, "agosto": time.August,
	"sep": time.September, "sept": time.September, "septiembre": time.September,
	"set": time.September, "setiembre": time.September,
	"oct": time.October, "octubre": time.October,
	"nov": time.November, "noviembre": time.November,
	"dic": time.December, "diciembre": time.December,
}

// Published cells carry footnote marks and non breaking spaces that must
// not reach the numeric or date parsers.
func cleanCell(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "*")
	return strings.TrimSpace(s)
}

// ParseNumber reads a numeric cell in the es-AR convention: dot groups
// thousands, comma marks decimals ("1.234,56"). Plain machine numbers
// ("1234.56") pass through untouched. Placeholder cells ("s/d", "///",
// "-", empty) report not-a-number without error.
func ParseNumber(s string) (float64, bool) {
	s = cleanCell(s)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	switch s {
	case "", "-", "s/d", "s.d.", "...", "///", "n/d":
		return 0, false
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	}
	s = strings.ReplaceAll(s, " ", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return d.InexactFloat64(), true
}

// serialDate interprets a bare integer as an Excel day serial. Only the
// band covering years 1954 through 2064 qualifies; this keeps six digit
// period stamps such as 202403 out of serial territory.
func serialDate(s string) (date.Date, bool) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 20000 || n > 60000 {
		return date.Date{}, false
	}
	return date.FromSerial(n), true
}

// yearOf reads a 4 or 2 digit year token. Two digit years pivot at 70:
// "24" is 2024, "99" is 1999.
func yearOf(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	switch {
	case len(s) == 4:
		return n, true
	case len(s) == 2:
		if n < 70 {
			return 2000 + n, true
		}
		return 1900 + n, true
	}
	return 0, false
}

var periodStamp = regexp.MustCompile(`^(\d{4})[mM](\d{1,2})$`)

// ParseMonth reads a month-resolution label in any of the shapes agency
// files use ("2024-03", "202403", "2024m3", "mar-24", "Marzo 2024",
// "2024 marzo", an Excel serial, a full ISO date) and returns the first
// day of that month.
func ParseMonth(s string) (date.Date, bool) {
	s = cleanCell(s)
	if s == "" {
		return date.Date{}, false
	}
	if d, ok := serialDate(s); ok {
		return d.StartOfMonth(), true
	}
	// Period stamp "2024m3".
	if m := periodStamp.FindStringSubmatch(s); m != nil {
		y, _ := strconv.Atoi(m[1])
		n, _ := strconv.Atoi(m[2])
		if n >= 1 && n <= 12 {
			return date.New(y, time.Month(n), 1), true
		}
	}
	// Six digit period stamp YYYYMM.
	if len(s) == 6 {
		if n, err := strconv.Atoi(s); err == nil {
			y, m := n/100, n%100
			if m >= 1 && m <= 12 {
				return date.New(y, time.Month(m), 1), true
			}
		}
	}
	if d, ok := ParseDay(s); ok {
		return d.StartOfMonth(), true
	}
	// "2024-03", "2024/03".
	for _, sep := range []string{"-", "/", "."} {
		if y, m, ok := splitPair(s, sep); ok {
			if yr, yok := yearOf(y); yok {
				if n, err := strconv.Atoi(m); err == nil && n >= 1 && n <= 12 {
					return date.New(yr, time.Month(n), 1), true
				}
			}
		}
	}
	// Spanish month and year in either order: "mar-24", "abr.-25",
	// "Marzo 2024", "2024 diciembre".
	norm := strings.ToLower(s)
	norm = strings.ReplaceAll(norm, ".", " ")
	norm = strings.ReplaceAll(norm, "-", " ")
	norm = strings.ReplaceAll(norm, "/", " ")
	fields := strings.Fields(norm)
	if len(fields) == 2 {
		if m, ok := spanishMonths[fields[0]]; ok {
			if y, yok := yearOf(fields[1]); yok {
				return date.New(y, m, 1), true
			}
		}
		if m, ok := spanishMonths[fields[1]]; ok {
			if y, yok := yearOf(fields[0]); yok {
				return date.New(y, m, 1), true
			}
		}
	}
	return date.Date{}, false
}

func splitPair(s, sep string) (a, b string, ok bool) {
	parts := strings.Split(s, sep)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}

// ParseDay reads a day-resolution label: ISO "2006-01-02" with or without
// a time component, the day-first "02/01/2006" convention local files use,
// or an Excel serial.
func ParseDay(s string) (date.Date, bool) {
	s = cleanCell(s)
	if s == "" {
		return date.Date{}, false
	}
	if d, ok := serialDate(s); ok {
		return d, true
	}
	// Drop a trailing time component, "2024-03-01 00:00:00".
	if i := strings.IndexAny(s, " T"); i > 0 && strings.Count(s[:i], "-")+strings.Count(s[:i], "/") == 2 {
		s = s[:i]
	}
	if d, err := date.Parse(s); err == nil {
		return d, true
	}
	// Day first with slashes, "15/03/2024" or "15/3/24".
	parts := strings.Split(s, "/")
	if len(parts) == 3 {
		dd, err1 := strconv.Atoi(strings.TrimSpace(parts[0]))
		mm, err2 := strconv.Atoi(strings.TrimSpace(parts[1]))
		yy, yok := yearOf(strings.TrimSpace(parts[2]))
		if err1 == nil && err2 == nil && yok && mm >= 1 && mm <= 12 && dd >= 1 && dd <= 31 {
			return date.New(yy, time.Month(mm), dd), true
		}
	}
	return date.Date{}, false
}

// ParseYear reads a standalone year cell ("2024", "2024*", "2.024").
func ParseYear(s string) (int, bool) {
	s = cleanCell(s)
	s = strings.ReplaceAll(s, ".", "")
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}
