package monitor

import (
	"math"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Cross-series alignment is always backward looking: a comparison shown
// "as of date X" must never borrow an observation dated after X.

// AsOfWithin returns the most recent observation of s at or before day,
// discarded as missing when it is older than tolDays days. The bound
// keeps a long-stale official figure from silently standing in for a
// current one.
func AsOfWithin(s *Series, day date.Date, tolDays int) (float64, bool) {
	obs, ok := s.AsOf(day)
	if !ok || obs.Day.DaysUntil(day) > tolDays {
		return 0, false
	}
	return obs.Value, true
}

// JoinRow is one row of an as-of join: the left observation and its
// backward matched right value, NaN when no match fell within tolerance.
type JoinRow struct {
	Day   date.Date
	Left  float64
	Right float64
}

// AsOfJoin matches every left observation against the nearest prior right
// observation within tolDays. Rows keep left's order; unmatched rows stay
// in the result with a missing right cell so the caller sees the gap.
func AsOfJoin(left, right *Series, tolDays int) []JoinRow {
	rows := make([]JoinRow, 0, left.Len())
	for on, lv := range left.Values() {
		rv := math.NaN()
		if v, ok := AsOfWithin(right, on, tolDays); ok {
			rv = v
		}
		rows = append(rows, JoinRow{Day: on, Left: lv, Right: rv})
	}
	return rows
}

// LatestCommon returns the most recent date where both series hold an
// exact observation.
func LatestCommon(a, b *Series) (date.Date, bool) {
	for i := a.Len() - 1; i >= 0; i-- {
		on := a.At(i).Day
		if _, ok := b.Get(on); ok {
			return on, true
		}
	}
	return date.Date{}, false
}

// LatestPair returns the freshest comparable pair of values. An exact
// shared date wins over an as-of approximation; only when the domains
// never intersect does it fall back to matching left's latest observation
// backward within tolDays.
func LatestPair(left, right *Series, tolDays int) (on date.Date, l, r float64, ok bool) {
	if day, found := LatestCommon(left, right); found {
		lv, _ := left.Get(day)
		rv, _ := right.Get(day)
		return day, lv, rv, true
	}
	latest, found := left.Latest()
	if !found {
		return date.Date{}, 0, 0, false
	}
	rv, found := AsOfWithin(right, latest.Day, tolDays)
	if !found {
		return date.Date{}, 0, 0, false
	}
	return latest.Day, latest.Value, rv, true
}

// RatioAsOf derives left divided by the backward matched right value, one
// observation per matched left date. Unmatched dates and zero denominators
// are dropped.
func RatioAsOf(left, right *Series, tolDays int) *Series {
	out := NewSeries(left.Frequency())
	for on, lv := range left.Values() {
		rv, ok := AsOfWithin(right, on, tolDays)
		if !ok || rv == 0 {
			continue
		}
		out.Append(on, lv/rv)
	}
	return out
}
