package monitor

import (
	"math"
	"testing"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

func TestAsOfWithinTolerance(t *testing.T) {
	right := NewSeries(date.Daily)
	right.Append(date.New(2024, time.May, 1), 7)
	right.Append(date.New(2024, time.May, 20), 8)

	at := date.New(2024, time.May, 10)
	if v, ok := AsOfWithin(right, at, 10); !ok || v != 7 {
		t.Errorf("AsOfWithin(tol=10) = %v, %v want 7, true", v, ok)
	}
	if _, ok := AsOfWithin(right, at, 5); ok {
		t.Error("AsOfWithin(tol=5) = ok want missing (match too old)")
	}
}

func TestAsOfJoinBackwardOnly(t *testing.T) {
	left := NewSeries(date.Daily)
	left.Append(date.New(2024, time.May, 10), 100)
	left.Append(date.New(2024, time.May, 25), 101)

	right := NewSeries(date.Daily)
	right.Append(date.New(2024, time.May, 1), 7)
	right.Append(date.New(2024, time.May, 20), 8)

	rows := AsOfJoin(left, right, 30)
	if len(rows) != 2 {
		t.Fatalf("AsOfJoin() rows = %v want 2", len(rows))
	}
	// Every matched right timestamp must be <= the left timestamp: the
	// May 10 row must see 7, never the later 8.
	if rows[0].Right != 7 {
		t.Errorf("row[0].Right = %v want 7 (no forward leak)", rows[0].Right)
	}
	if rows[1].Right != 8 {
		t.Errorf("row[1].Right = %v want 8", rows[1].Right)
	}
}

func TestAsOfJoinKeepsUnmatchedRows(t *testing.T) {
	left := NewSeries(date.Daily)
	left.Append(date.New(2024, time.May, 10), 100)
	right := NewSeries(date.Daily)
	right.Append(date.New(2024, time.May, 1), 7)

	rows := AsOfJoin(left, right, 5)
	if len(rows) != 1 || !math.IsNaN(rows[0].Right) {
		t.Errorf("AsOfJoin() = %+v want one row with missing right", rows)
	}
}

func TestLatestPairPrefersExactSharedDate(t *testing.T) {
	shared := date.New(2024, time.May, 15)
	left := NewSeries(date.Daily)
	left.Append(shared, 100).Append(date.New(2024, time.May, 20), 110)
	right := NewSeries(date.Daily)
	right.Append(date.New(2024, time.May, 1), 5).Append(shared, 7)

	on, l, r, ok := LatestPair(left, right, 30)
	if !ok || on != shared || l != 100 || r != 7 {
		t.Errorf("LatestPair() = %v, %v, %v, %v want %v, 100, 7, true", on, l, r, ok, shared)
	}
}

func TestLatestPairFallsBackToAsOf(t *testing.T) {
	left := NewSeries(date.Daily)
	left.Append(date.New(2024, time.May, 20), 110)
	right := NewSeries(date.Daily)
	right.Append(date.New(2024, time.May, 18), 7)

	on, l, r, ok := LatestPair(left, right, 5)
	if !ok || l != 110 || r != 7 || on != date.New(2024, time.May, 20) {
		t.Errorf("LatestPair() = %v, %v, %v, %v want as-of fallback", on, l, r, ok)
	}
}

func TestRatioAsOf(t *testing.T) {
	left := NewSeries(date.Daily)
	left.Append(date.New(2024, time.May, 10), 100)
	left.Append(date.New(2024, time.May, 11), 120)

	right := NewSeries(date.Daily)
	right.Append(date.New(2024, time.May, 10), 50)
	right.Append(date.New(2024, time.May, 11), 0) // zero denominator dropped

	out := RatioAsOf(left, right, 3)
	if out.Len() != 1 {
		t.Fatalf("RatioAsOf() len = %v want 1", out.Len())
	}
	if v, _ := out.Get(date.New(2024, time.May, 10)); v != 2 {
		t.Errorf("ratio = %v want 2", v)
	}
}
