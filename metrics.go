package monitor

import (
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Percent is a relative variation in percentage points.
type Percent float64

func (p Percent) String() string { return FormatNumber(float64(p), 1) + "%" }

// All metrics are views over a canonical Series: they never write back,
// so a recomputation is always consistent with the latest fetch. Every
// operation reports ok=false instead of failing when its reference point
// is absent or its denominator is zero.

// PeriodChange returns the variation of s at a given date against the
// observation lag periods earlier on the calendar: (v[t]/v[t-lag] - 1)*100.
// Both endpoints must be true observations; a gap at the reference date
// reads as missing rather than borrowing a neighbour.
func PeriodChange(s *Series, at date.Date, lag int) (Percent, bool) {
	cur, ok := s.Get(at)
	if !ok {
		return 0, false
	}
	base, ok := s.Get(s.Frequency().Shift(at, -lag))
	if !ok || base == 0 {
		return 0, false
	}
	return Percent((cur/base - 1) * 100), true
}

// MoM is the change against the previous period.
func MoM(s *Series, at date.Date) (Percent, bool) { return PeriodChange(s, at, 1) }

// YoY is the change against the same period one year earlier.
func YoY(s *Series, at date.Date) (Percent, bool) { return PeriodChange(s, at, 12) }

// LatestChange returns the variation of the newest observation against the
// observation lag positions before it, regardless of calendar distance.
// Headline figures use it when a source reports irregularly.
func LatestChange(s *Series, lag int) (Percent, bool) {
	if s.Len() <= lag || lag < 1 {
		return 0, false
	}
	cur := s.At(s.Len() - 1).Value
	base := s.At(s.Len() - 1 - lag).Value
	if base == 0 {
		return 0, false
	}
	return Percent((cur/base - 1) * 100), true
}

// AccumulatedFrom derives the running percentage change of an index level
// series against a base anchored at start, or at the first observation on
// or after it. The base date itself reads exactly 0.
func AccumulatedFrom(s *Series, start date.Date) (*Series, bool) {
	anchor, ok := s.OnOrAfter(start)
	if !ok || anchor.Value == 0 {
		return NewSeries(s.Frequency()), false
	}
	out := NewSeries(s.Frequency())
	for on, v := range s.Values() {
		if on.Before(anchor.Day) {
			continue
		}
		out.Append(on, (v/anchor.Value-1)*100)
	}
	return out, true
}

// CompoundedFrom derives the same running accumulated change when only
// period-over-period percentage changes are available. Each observation
// after the base compounds into the running product; the base itself
// reads exactly 0. Given an index and its own period changes, this and
// AccumulatedFrom agree within floating point tolerance.
func CompoundedFrom(changes *Series, start date.Date) (*Series, bool) {
	anchor, ok := changes.OnOrAfter(start)
	if !ok {
		return NewSeries(changes.Frequency()), false
	}
	out := NewSeries(changes.Frequency())
	acc := 1.0
	for on, v := range changes.Values() {
		if on.Before(anchor.Day) {
			continue
		}
		if on.After(anchor.Day) {
			acc *= 1 + v/100
		}
		out.Append(on, (acc-1)*100)
	}
	return out, true
}

// Rebase rescales s so the anchor observation reads baseValue, typically
// 100, letting two indices with different base periods share an axis.
// When base is not an exact observation the first observation on or after
// it anchors the rescale.
func Rebase(s *Series, base date.Date, baseValue float64) (*Series, bool) {
	anchor, ok := s.OnOrAfter(base)
	if !ok || anchor.Value == 0 {
		return NewSeries(s.Frequency()), false
	}
	factor := baseValue / anchor.Value
	out := NewSeries(s.Frequency())
	for on, v := range s.Values() {
		out.Append(on, v*factor)
	}
	return out, true
}
