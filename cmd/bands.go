package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/subcommands"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// Announced band regime: the bounds start at these levels and crawl one
// percent per month until the end of 2025.
var (
	bandStart  = date.New(2025, time.April, 14)
	band25End  = date.New(2025, time.December, 31)
	bandLower0 = 1000.0
	bandUpper0 = 1400.0
)

// bandsCmd projects the FX band bounds.
type bandsCmd struct {
	outputFile string
	tail       int
}

func (*bandsCmd) Name() string     { return "bands" }
func (*bandsCmd) Synopsis() string { return "project the FX band bounds" }
func (*bandsCmd) Usage() string {
	return `ceumon bands [-o <file>] [-tail <n>]

  Projects the daily FX band bounds: the announced one percent monthly
  crawl through 2025, then a crawl indexed to inflation lagged two
  months, observed CPI when published and the REM expectation otherwise.
  Prints the last days next to the wholesale rate, or writes the whole
  projection with -o.
`
}

func (c *bandsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.outputFile, "o", "", "Write the full projection to this file instead of printing.")
	f.IntVar(&c.tail, "tail", 10, "Days to print.")
}

func (c *bandsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	results, err := loadSources(ctx, []string{"ipc", "rem", "fx-mayorista"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: some sources failed: %v\n", err)
	}
	ipc, rem := results["ipc"], results["rem"]
	if ipc == nil || rem == nil {
		fmt.Fprintln(os.Stderr, "Error: the projection needs both the CPI and the REM series.")
		return subcommands.ExitFailure
	}

	b25 := monitor.Bands2025(date.NewRange(bandStart, band25End), bandLower0, bandUpper0)
	b26 := monitor.Bands2026(b25, ipc, rem)
	lower := concat(date.Daily, b25.Lower, b26.Lower)
	upper := concat(date.Daily, b25.Upper, b26.Upper)

	horizon, ok := upper.LastObserved()
	if !ok {
		fmt.Fprintln(os.Stderr, "Error: empty projection.")
		return subcommands.ExitFailure
	}

	frame := monitor.NewFrame(date.NewRange(bandStart, horizon), date.Daily)
	frame.Add("banda_inferior", lower)
	frame.Add("banda_superior", upper)
	if fx := results["fx-mayorista"]; fx != nil {
		frame.Add("mayorista", fx)
	}

	if c.outputFile != "" {
		file, err := os.Create(c.outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.outputFile, err)
			return subcommands.ExitFailure
		}
		defer file.Close()
		if err := frame.WriteDelimited(file, ';', 2); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing projection: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Bandas cambiarias hasta %s\n\n", horizon)
	b.WriteString("| fecha | inferior | superior | mayorista |\n")
	b.WriteString("|---|---:|---:|---:|\n")
	start := frame.Len() - c.tail
	if start < 0 {
		start = 0
	}
	days := frame.Days()
	for i := start; i < frame.Len(); i++ {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", days[i],
			cell(frame, "banda_inferior", i),
			cell(frame, "banda_superior", i),
			cell(frame, "mayorista", i))
	}
	printMarkdown(b.String())
	return subcommands.ExitSuccess
}

// concat merges band tranches into one daily series.
func concat(freq date.Period, parts ...*monitor.Series) *monitor.Series {
	out := monitor.NewSeries(freq)
	for _, p := range parts {
		for d, v := range p.Values() {
			out.Append(d, v)
		}
	}
	return out
}

func cell(f *monitor.Frame, col string, i int) string {
	v, ok := f.At(col, i)
	if !ok {
		return monitor.NoDataLabel
	}
	return monitor.FormatNumber(v, 2)
}
