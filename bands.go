package monitor

import (
	"math"
	"time"

	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Band is the daily crawling FX band: a lower and an upper bound sharing
// one daily calendar.
type Band struct {
	Lower *Series
	Upper *Series
}

// bandStep is the calendar length, in days, over which the monthly crawl
// rate is spread geometrically.
const bandStep = 30.0

// Bands2025 builds the announced band regime: from its start the upper
// bound crawls up and the lower bound crawls down by one percent per
// month, spread geometrically over the days.
func Bands2025(r date.Range, lower0, upper0 float64) Band {
	gUp := math.Pow(1.01, 1/bandStep)
	gDn := math.Pow(0.99, 1/bandStep)
	b := Band{Lower: NewSeries(date.Daily), Upper: NewSeries(date.Daily)}
	t := 0.0
	for d := range r.Ticks(date.Daily) {
		b.Lower.Append(d, lower0*math.Pow(gDn, t))
		b.Upper.Append(d, upper0*math.Pow(gUp, t))
		t++
	}
	return b
}

// Bands2026 extends the band past the announced regime: from January 2026
// each month crawls by the inflation of two months earlier, observed CPI
// when already published and the market's expected inflation otherwise.
// The horizon runs two months past the last expectation, the furthest
// month whose reference exists. Both inputs are monthly series in percent.
func Bands2026(b2025 Band, ipc, rem *Series) Band {
	b := Band{Lower: NewSeries(date.Daily), Upper: NewSeries(date.Daily)}
	anchor := date.New(2025, time.December, 31)
	lower0, lok := b2025.Lower.Get(anchor)
	upper0, uok := b2025.Upper.Get(anchor)
	lastExpected, rok := rem.LastObserved()
	if !lok || !uok || !rok {
		return b
	}
	horizon := lastExpected.AddMonths(2).EndOfMonth()
	lo, up := lower0, upper0
	for d := date.New(2026, time.January, 1); !d.After(horizon); d = d.Add(1) {
		ref := d.StartOfMonth().AddMonths(-2)
		pct, ok := ipc.Get(ref)
		if !ok {
			pct, ok = rem.Get(ref)
		}
		if !ok {
			break
		}
		daily := math.Pow(1+pct/100, 1/bandStep) - 1
		lo *= 1 - daily
		up *= 1 + daily
		b.Lower.Append(d, lo)
		b.Upper.Append(d, up)
	}
	return b
}
