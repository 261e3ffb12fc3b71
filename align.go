package monitor

import (
	"math"
	"slices"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Frame places one or more series onto a single dense calendar for joint
// plotting and export. Cells are NaN before a column's first observation
// and strictly after its last one; interior gaps carry the prior value
// forward. This is the only place a missing value is materialized.
type Frame struct {
	freq date.Period
	days []date.Date
	cols []string
	data map[string][]float64
}

// NewFrame returns an empty frame over every tick of r at the given
// frequency.
func NewFrame(r date.Range, freq date.Period) *Frame {
	f := &Frame{freq: freq, data: make(map[string][]float64)}
	for d := range r.Ticks(freq) {
		f.days = append(f.days, d)
	}
	return f
}

// Add aligns s as a named column: each tick takes the most recent prior
// observation. Ticks past the series' last observed native period are
// forced back to missing so a slow source cannot appear to predict months
// it has not reported yet. The cutoff is per period, not per day: every
// day of the last observed month still carries that month's value.
func (f *Frame) Add(name string, s *Series) *Frame {
	col := make([]float64, len(f.days))
	last, hasData := s.LastObserved()
	for i, tick := range f.days {
		col[i] = math.NaN()
		if !hasData || s.Frequency().Truncate(tick).After(last) {
			continue
		}
		if obs, ok := s.AsOf(tick); ok {
			col[i] = obs.Value
		}
	}
	if _, exists := f.data[name]; !exists {
		f.cols = append(f.cols, name)
	}
	f.data[name] = col
	return f
}

// Dense is the single-column convenience: s aligned onto every tick of r.
func Dense(name string, s *Series, r date.Range, freq date.Period) *Frame {
	return NewFrame(r, freq).Add(name, s)
}

// Days returns the calendar ticks in ascending order.
func (f *Frame) Days() []date.Date { return slices.Clone(f.days) }

// Columns returns the column names in insertion order.
func (f *Frame) Columns() []string { return slices.Clone(f.cols) }

// Len returns the number of calendar ticks.
func (f *Frame) Len() int { return len(f.days) }

// At returns the cell for a column at tick index i.
func (f *Frame) At(name string, i int) (float64, bool) {
	col, ok := f.data[name]
	if !ok || i < 0 || i >= len(col) {
		return 0, false
	}
	if math.IsNaN(col[i]) {
		return 0, false
	}
	return col[i], true
}

// Get returns the cell for a column at a calendar tick.
func (f *Frame) Get(name string, day date.Date) (float64, bool) {
	i, found := slices.BinarySearchFunc(f.days, day, date.Date.Compare)
	if !found {
		return 0, false
	}
	return f.At(name, i)
}

// RepeatToDaily spreads a monthly series onto single days, every day of a
// month reading that month's value, and keeps forward-filling past the
// last observation until horizon. Unlike Frame alignment this deliberately
// extends beyond known data: the use case is "latest known expectation"
// against a daily market series, not confirmed history.
func RepeatToDaily(s *Series, horizon date.Date) *Series {
	out := NewSeries(date.Daily)
	first, ok := s.First()
	if !ok {
		return out
	}
	for d := first.Day.StartOfMonth(); !d.After(horizon); d = d.Add(1) {
		if obs, ok := s.AsOf(d); ok {
			out.Append(d, obs.Value)
		}
	}
	return out
}
