package monitor

import (
	"iter"
	"slices"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Observation is a single dated measurement.
type Observation struct {
	Day   date.Date
	Value float64
}

// Series is the canonical representation of one quantity over time:
// strictly increasing unique dates, one float64 per date. Unparseable
// source rows never make it in, so a Series holds no missing values;
// missing only appears in Frame cells and (value, ok) lookups.
//
// A Series is built once per fetch and treated as immutable afterwards:
// alignment and metric derivation always produce a new Series or Frame.
type Series struct {
	freq   date.Period
	days   []date.Date
	values []float64
}

// NewSeries returns an empty series with the given native frequency.
func NewSeries(freq date.Period) *Series {
	return &Series{freq: freq}
}

// Frequency returns the native reporting frequency of the series.
func (s *Series) Frequency() date.Period { return s.freq }

// Len returns the number of observations.
func (s *Series) Len() int { return len(s.days) }

// search locates day in the sorted date slice.
func (s *Series) search(day date.Date) (int, bool) {
	return slices.BinarySearchFunc(s.days, day, date.Date.Compare)
}

// Append adds an observation, keeping dates sorted and unique.
// An existing value at the same date is overwritten: when a source yields
// two records for one date, the later-arriving one wins.
func (s *Series) Append(on date.Date, v float64) *Series {
	i, found := s.search(on)
	if found {
		s.values[i] = v
		return s
	}
	s.days = slices.Insert(s.days, i, on)
	s.values = slices.Insert(s.values, i, v)
	return s
}

// Get returns the value observed exactly at day.
func (s *Series) Get(day date.Date) (float64, bool) {
	if i, found := s.search(day); found {
		return s.values[i], true
	}
	return 0, false
}

// AsOf returns the observation at day or the most recent one before it.
func (s *Series) AsOf(day date.Date) (Observation, bool) {
	i, found := s.search(day)
	if found {
		return Observation{s.days[i], s.values[i]}, true
	}
	if i == 0 {
		return Observation{}, false // nothing on or before day
	}
	return Observation{s.days[i-1], s.values[i-1]}, true
}

// OnOrAfter returns the first observation at day or after it. It anchors
// rebasing and accumulated ranges when the requested base date is not an
// exact observation.
func (s *Series) OnOrAfter(day date.Date) (Observation, bool) {
	i, found := s.search(day)
	if found {
		return Observation{s.days[i], s.values[i]}, true
	}
	if i >= len(s.days) {
		return Observation{}, false
	}
	return Observation{s.days[i], s.values[i]}, true
}

// First returns the earliest observation.
func (s *Series) First() (Observation, bool) {
	if len(s.days) == 0 {
		return Observation{}, false
	}
	return Observation{s.days[0], s.values[0]}, true
}

// Latest returns the most recent observation.
func (s *Series) Latest() (Observation, bool) {
	if len(s.days) == 0 {
		return Observation{}, false
	}
	last := len(s.days) - 1
	return Observation{s.days[last], s.values[last]}, true
}

// LastObserved returns the date of the last true observation. Calendar
// alignment uses it to suppress forward fill past the edge of known data.
func (s *Series) LastObserved() (date.Date, bool) {
	if len(s.days) == 0 {
		return date.Date{}, false
	}
	return s.days[len(s.days)-1], true
}

// At returns the i-th observation in chronological order.
func (s *Series) At(i int) Observation { return Observation{s.days[i], s.values[i]} }

// Values iterates all observations in chronological order.
func (s *Series) Values() iter.Seq2[date.Date, float64] {
	return func(yield func(date.Date, float64) bool) {
		for i, on := range s.days {
			if !yield(on, s.values[i]) {
				return
			}
		}
	}
}

// Trim returns a new series restricted to observations within r.
func (s *Series) Trim(r date.Range) *Series {
	out := NewSeries(s.freq)
	for on, v := range s.Values() {
		if r.Contains(on) {
			out.Append(on, v)
		}
	}
	return out
}

// Tail returns a new series holding only the n most recent observations.
func (s *Series) Tail(n int) *Series {
	out := NewSeries(s.freq)
	for i := max(0, len(s.days)-n); i < len(s.days); i++ {
		out.Append(s.days[i], s.values[i])
	}
	return out
}

// KeyedSeries maps a category label (a sector, a country, a tariff heading)
// to its Series. Keys keep their source order for stable presentation.
type KeyedSeries struct {
	freq   date.Period
	keys   []string
	series map[string]*Series
}

// NewKeyedSeries returns an empty keyed collection with the given frequency.
func NewKeyedSeries(freq date.Period) *KeyedSeries {
	return &KeyedSeries{freq: freq, series: make(map[string]*Series)}
}

// Frequency returns the shared native frequency of all member series.
func (k *KeyedSeries) Frequency() date.Period { return k.freq }

// Append adds an observation to the series of the given key, creating it
// on first use.
func (k *KeyedSeries) Append(key string, on date.Date, v float64) *KeyedSeries {
	s, ok := k.series[key]
	if !ok {
		s = NewSeries(k.freq)
		k.series[key] = s
		k.keys = append(k.keys, key)
	}
	s.Append(on, v)
	return k
}

// Keys returns the category labels in source order.
func (k *KeyedSeries) Keys() []string { return slices.Clone(k.keys) }

// Get returns the series for a key.
func (k *KeyedSeries) Get(key string) (*Series, bool) {
	s, ok := k.series[key]
	return s, ok
}

// Len returns the number of categories.
func (k *KeyedSeries) Len() int { return len(k.keys) }

// Empty reports whether no category holds any observation.
func (k *KeyedSeries) Empty() bool {
	for _, s := range k.series {
		if s.Len() > 0 {
			return false
		}
	}
	return true
}
