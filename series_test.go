package monitor

import (
	"testing"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

func TestSeriesAppendKeepsOrder(t *testing.T) {
	s := NewSeries(date.Monthly)
	d1 := date.New(2025, time.July, 1)
	d2 := date.New(2024, time.July, 1)

	s.Append(d1, 1).Append(d2, 2)

	if s.Len() != 2 {
		t.Fatalf("Len() = %v want 2", s.Len())
	}
	if s.At(0).Day != d2 || s.At(1).Day != d1 {
		t.Errorf("observations out of order: %v, %v", s.At(0).Day, s.At(1).Day)
	}
}

func TestSeriesAppendLastWriteWins(t *testing.T) {
	s := NewSeries(date.Daily)
	d := date.New(2024, time.May, 10)

	s.Append(d, 1).Append(d, 2)

	if s.Len() != 1 {
		t.Fatalf("Len() = %v want 1 after duplicate append", s.Len())
	}
	if v, _ := s.Get(d); v != 2 {
		t.Errorf("Get() = %v want 2 (later record wins)", v)
	}
}

func TestSeriesMonotonicTimestamps(t *testing.T) {
	s := NewSeries(date.Daily)
	// Appended deliberately out of order and with a duplicate.
	for _, day := range []int{15, 3, 9, 3, 27, 1} {
		s.Append(date.New(2024, time.March, day), float64(day))
	}
	for i := 1; i < s.Len(); i++ {
		if !s.At(i - 1).Day.Before(s.At(i).Day) {
			t.Fatalf("timestamps not strictly increasing at %d: %v >= %v", i, s.At(i-1).Day, s.At(i).Day)
		}
	}
	if s.Len() != 5 {
		t.Errorf("Len() = %v want 5 (duplicate collapsed)", s.Len())
	}
}

func TestSeriesAsOf(t *testing.T) {
	s := NewSeries(date.Daily)
	d1, d2 := date.New(2024, time.May, 1), date.New(2024, time.May, 20)
	s.Append(d1, 7).Append(d2, 8)

	if obs, ok := s.AsOf(date.New(2024, time.May, 10)); !ok || obs.Value != 7 || obs.Day != d1 {
		t.Errorf("AsOf(2024-05-10) = %v, %v want {2024-05-01 7}, true", obs, ok)
	}
	if obs, ok := s.AsOf(d2); !ok || obs.Value != 8 {
		t.Errorf("AsOf(exact) = %v, %v want value 8, true", obs, ok)
	}
	if _, ok := s.AsOf(date.New(2024, time.April, 30)); ok {
		t.Error("AsOf(before first) = ok want false")
	}
}

func TestSeriesOnOrAfter(t *testing.T) {
	s := NewSeries(date.Monthly)
	d := date.New(2024, time.March, 1)
	s.Append(d, 42)

	if obs, ok := s.OnOrAfter(date.New(2024, time.January, 1)); !ok || obs.Day != d {
		t.Errorf("OnOrAfter(jan) = %v, %v want 2024-03-01, true", obs, ok)
	}
	if _, ok := s.OnOrAfter(date.New(2024, time.April, 1)); ok {
		t.Error("OnOrAfter(past end) = ok want false")
	}
}

func TestSeriesLastObserved(t *testing.T) {
	s := NewSeries(date.Monthly)
	if _, ok := s.LastObserved(); ok {
		t.Error("LastObserved() on empty series = ok want false")
	}
	d := date.New(2024, time.March, 1)
	s.Append(date.New(2024, time.January, 1), 10).Append(d, 12)
	if got, _ := s.LastObserved(); got != d {
		t.Errorf("LastObserved() = %v want %v", got, d)
	}
}

func TestKeyedSeries(t *testing.T) {
	k := NewKeyedSeries(date.Monthly)
	on := date.New(2024, time.January, 1)
	k.Append("Industria", on, 1)
	k.Append("Comercio", on, 2)
	k.Append("Industria", on.AddMonths(1), 3)

	keys := k.Keys()
	if len(keys) != 2 || keys[0] != "Industria" || keys[1] != "Comercio" {
		t.Errorf("Keys() = %v want [Industria Comercio] in source order", keys)
	}
	s, ok := k.Get("Industria")
	if !ok || s.Len() != 2 {
		t.Errorf("Get(Industria) len = %v want 2", s.Len())
	}
	if k.Empty() {
		t.Error("Empty() = true want false")
	}
	if !NewKeyedSeries(date.Daily).Empty() {
		t.Error("Empty() on new collection = false want true")
	}
}
