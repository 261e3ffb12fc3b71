package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/subcommands"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/date"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	date string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the headline indicators" }
func (*summaryCmd) Usage() string {
	return `ceumon summary [-d <date>]

  Downloads the headline series and displays the latest value and
  variation of each indicator as of a date.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Date for the summary (YYYY-MM-DD).")
}

// summarySources are the series the summary reads.
var summarySources = []string{
	"fx-mayorista", "ccl", "ipc", "rem", "saldo", "empleo", "ipi", "embi",
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	results, err := loadSources(ctx, summarySources)
	if err != nil {
		// Degrade to the sources that did answer.
		fmt.Fprintf(os.Stderr, "Warning: some sources failed: %v\n", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Resumen al %s\n\n", on)

	c.renderFX(&b, on, results["fx-mayorista"], results["ccl"])
	c.renderPrices(&b, on, results["ipc"], results["rem"])
	c.renderActivity(&b, on, results["ipi"], results["empleo"])
	c.renderExternal(&b, on, results["saldo"], results["embi"])

	printMarkdown(b.String())

	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *summaryCmd) renderFX(b *strings.Builder, on date.Date, fx, ccl *monitor.Series) {
	if fx == nil && ccl == nil {
		return
	}
	b.WriteString("## Cambiario\n\n")
	if fx != nil {
		if obs, ok := fx.AsOf(on); ok {
			fmt.Fprintf(b, "* Mayorista (%s): $ %s", obs.Day, monitor.FormatNumber(obs.Value, 2))
			if prev, ok := fx.AsOf(on.Add(-30)); ok && prev.Value != 0 {
				fmt.Fprintf(b, " (%s en 30 días)", monitor.Percent((obs.Value/prev.Value-1)*100))
			}
			b.WriteString("\n")
		}
	}
	if ccl != nil {
		if obs, ok := ccl.AsOf(on); ok {
			fmt.Fprintf(b, "* CCL (%s): $ %s\n", obs.Day, monitor.FormatNumber(obs.Value, 2))
		}
		if fx != nil {
			if day, blue, official, ok := monitor.LatestPair(ccl, fx, 5); ok && official != 0 {
				fmt.Fprintf(b, "* Brecha (%s): %s\n", day, monitor.Percent((blue/official-1)*100))
			}
		}
	}
	b.WriteString("\n")
}

func (c *summaryCmd) renderPrices(b *strings.Builder, on date.Date, ipc, rem *monitor.Series) {
	if ipc == nil && rem == nil {
		return
	}
	b.WriteString("## Precios\n\n")
	if ipc != nil {
		if obs, ok := ipc.AsOf(on); ok {
			fmt.Fprintf(b, "* IPC %s: %s mensual", monitor.MonthLabel(obs.Day), monitor.Percent(obs.Value))
			if acc, ok := monitor.CompoundedFrom(ipc, obs.Day.AddMonths(-12)); ok {
				if v, ok := acc.Get(obs.Day); ok {
					fmt.Fprintf(b, ", %s interanual", monitor.Percent(v))
				}
			}
			b.WriteString("\n")
		}
	}
	if rem != nil {
		if next, ok := rem.OnOrAfter(on.StartOfMonth()); ok {
			fmt.Fprintf(b, "* REM %s: %s esperado\n", monitor.MonthLabel(next.Day), monitor.Percent(next.Value))
		}
	}
	b.WriteString("\n")
}

func (c *summaryCmd) renderActivity(b *strings.Builder, on date.Date, ipi, empleo *monitor.Series) {
	if ipi == nil && empleo == nil {
		return
	}
	b.WriteString("## Actividad\n\n")
	if ipi != nil {
		if obs, ok := ipi.AsOf(on); ok {
			fmt.Fprintf(b, "* IPI manufacturero %s", monitor.MonthLabel(obs.Day))
			if yoy, ok := monitor.YoY(ipi, obs.Day); ok {
				fmt.Fprintf(b, ": %s interanual", yoy)
			}
			b.WriteString("\n")
		}
	}
	if empleo != nil {
		if obs, ok := empleo.AsOf(on); ok {
			fmt.Fprintf(b, "* Empleo registrado %s: %s miles", monitor.MonthLabel(obs.Day), monitor.FormatNumber(obs.Value, 1))
			if mom, ok := monitor.MoM(empleo, obs.Day); ok {
				fmt.Fprintf(b, " (%s mensual)", mom)
			}
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
}

func (c *summaryCmd) renderExternal(b *strings.Builder, on date.Date, saldo, embi *monitor.Series) {
	if saldo == nil && embi == nil {
		return
	}
	b.WriteString("## Sector externo\n\n")
	if saldo != nil {
		if obs, ok := saldo.AsOf(on); ok {
			// The trade balance comes in millions of dollars.
			amount := money.New(int64(math.Round(obs.Value*1e6))*100, money.USD)
			fmt.Fprintf(b, "* Saldo comercial %s: %s\n", monitor.MonthLabel(obs.Day), amount.Display())
		}
	}
	if embi != nil {
		if obs, ok := embi.AsOf(on); ok {
			fmt.Fprintf(b, "* Riesgo país (%s): %s pb\n", obs.Day, monitor.FormatNumber(obs.Value, 0))
		}
	}
	b.WriteString("\n")
}
