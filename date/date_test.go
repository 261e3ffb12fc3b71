package date

import (
	"testing"
	"time"
)

func TestNewNormalizes(t *testing.T) {
	// Day zero of the next month is the last day of this one.
	d := New(2024, time.March, 0)
	if d.String() != "2024-02-29" {
		t.Errorf("New(2024, March, 0) = %v want 2024-02-29", d)
	}

	d = New(2024, time.January, 32)
	if d.String() != "2024-02-01" {
		t.Errorf("New(2024, January, 32) = %v want 2024-02-01", d)
	}
}

func TestParse(t *testing.T) {
	d, err := Parse("2025-7-1")
	if err != nil {
		t.Fatalf("Parse(2025-7-1) unexpected error = %v", err)
	}
	if d != New(2025, time.July, 1) {
		t.Errorf("Parse(2025-7-1) = %v want 2025-07-01", d)
	}

	if _, err := Parse("not a date"); err == nil {
		t.Error("Parse(not a date) expected an error")
	}
}

func TestFromSerial(t *testing.T) {
	// 1900-01-01 is serial day 2 in the 1899-12-30 epoch convention.
	if got := FromSerial(2); got != New(1900, time.January, 1) {
		t.Errorf("FromSerial(2) = %v want 1900-01-01", got)
	}
	// A modern date to pin the epoch.
	if got := FromSerial(45292); got != New(2024, time.January, 1) {
		t.Errorf("FromSerial(45292) = %v want 2024-01-01", got)
	}
}

func TestAddMonths(t *testing.T) {
	d := New(2024, time.January, 31)
	if got := d.AddMonths(1); got != New(2024, time.March, 2) {
		// Normalized by the calendar: Jan 31 + 1 month overflows February.
		t.Errorf("AddMonths(1) = %v want 2024-03-02", got)
	}
	if got := New(2025, time.January, 1).AddMonths(-12); got != New(2024, time.January, 1) {
		t.Errorf("AddMonths(-12) = %v want 2024-01-01", got)
	}
}

func TestStartEndOfMonth(t *testing.T) {
	d := New(2024, time.February, 15)
	if got := d.StartOfMonth(); got != New(2024, time.February, 1) {
		t.Errorf("StartOfMonth() = %v want 2024-02-01", got)
	}
	if got := d.EndOfMonth(); got != New(2024, time.February, 29) {
		t.Errorf("EndOfMonth() = %v want 2024-02-29", got)
	}
}

func TestDaysUntil(t *testing.T) {
	a, b := New(2024, time.May, 10), New(2024, time.May, 20)
	if got := a.DaysUntil(b); got != 10 {
		t.Errorf("DaysUntil() = %v want 10", got)
	}
	if got := b.DaysUntil(a); got != -10 {
		t.Errorf("DaysUntil() reversed = %v want -10", got)
	}
}

func TestRangeTicksDaily(t *testing.T) {
	r := NewRange(New(2024, time.January, 30), New(2024, time.February, 2))
	var got []Date
	for d := range r.Ticks(Daily) {
		got = append(got, d)
	}
	if len(got) != 4 {
		t.Fatalf("Ticks(Daily) produced %d dates want 4", len(got))
	}
	if got[0] != r.From || got[3] != r.To {
		t.Errorf("Ticks(Daily) bounds = %v..%v want %v..%v", got[0], got[3], r.From, r.To)
	}
}

func TestRangeTicksMonthly(t *testing.T) {
	r := NewRange(New(2024, time.January, 15), New(2024, time.April, 2))
	var got []Date
	for d := range r.Ticks(Monthly) {
		got = append(got, d)
	}
	want := []Date{
		New(2024, time.January, 1),
		New(2024, time.February, 1),
		New(2024, time.March, 1),
		New(2024, time.April, 1),
	}
	if len(got) != len(want) {
		t.Fatalf("Ticks(Monthly) produced %d dates want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Ticks(Monthly)[%d] = %v want %v", i, got[i], want[i])
		}
	}
}

func TestPeriodShift(t *testing.T) {
	d := New(2025, time.January, 1)
	if got := Monthly.Shift(d, -12); got != New(2024, time.January, 1) {
		t.Errorf("Monthly.Shift(-12) = %v want 2024-01-01", got)
	}
	if got := Daily.Shift(d, -1); got != New(2024, time.December, 31) {
		t.Errorf("Daily.Shift(-1) = %v want 2024-12-31", got)
	}
}
