package date

import (
	"fmt"
	"strings"
)

// Period is the native reporting frequency of a series.
type Period int

const (
	Daily Period = iota
	Monthly
)

func (p Period) String() string {
	switch p {
	case Daily:
		return "daily"
	case Monthly:
		return "monthly"
	default:
		panic(fmt.Sprintf("unknown period %d", p))
	}
}

// ParsePeriod parses a period name.
func ParsePeriod(s string) (Period, error) {
	switch strings.ToLower(s) {
	case "daily", "day":
		return Daily, nil
	case "monthly", "month":
		return Monthly, nil
	default:
		return Daily, fmt.Errorf("unknown period %q", s)
	}
}

// Truncate returns the first calendar tick of the period containing d:
// d itself for Daily, the first of the month for Monthly.
func (p Period) Truncate(d Date) Date {
	if p == Monthly {
		return d.StartOfMonth()
	}
	return d
}

// Next returns the calendar tick that follows d at this period.
func (p Period) Next(d Date) Date {
	if p == Monthly {
		return d.StartOfMonth().AddMonths(1)
	}
	return d.Add(1)
}

// Shift returns d moved by n periods (n may be negative).
func (p Period) Shift(d Date, n int) Date {
	if p == Monthly {
		return d.AddMonths(n)
	}
	return d.Add(n)
}
