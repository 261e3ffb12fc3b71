package date

import "iter"

// Range represents an inclusive range of dates.
type Range struct{ From, To Date }

// NewRange returns the range [from, to].
func NewRange(from, to Date) Range { return Range{From: from, To: to} }

// Contains reports whether date is included in the range (boundaries included).
func (r Range) Contains(date Date) bool { return !date.Before(r.From) && !date.After(r.To) }

// Ticks iterates the dense calendar of the range at the given period:
// every day for Daily, the first of every month for Monthly. The first
// tick is truncated to the period so a mid-month From still yields its month.
func (r Range) Ticks(p Period) iter.Seq[Date] {
	return func(yield func(Date) bool) {
		for d := p.Truncate(r.From); !d.After(r.To); d = p.Next(d) {
			if !yield(d) {
				return
			}
		}
	}
}

// Days returns the number of calendar days covered by the range, boundaries included.
func (r Range) Days() int { return r.From.DaysUntil(r.To) + 1 }
