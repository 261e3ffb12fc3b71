// Package cmd implements the CLI application to query the macro monitor.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"sort"
	"strings"

	"github.com/google/subcommands"

	"github.com/corral-ceu/monitor-ceu-uia"
	"github.com/corral-ceu/monitor-ceu-uia/bcra"
	"github.com/corral-ceu/monitor-ceu-uia/comex"
	"github.com/corral-ceu/monitor-ceu-uia/date"
	"github.com/corral-ceu/monitor-ceu-uia/indec"
	"github.com/corral-ceu/monitor-ceu-uia/market"
	"github.com/corral-ceu/monitor-ceu-uia/sipa"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fetchCmd{}, "data")
	c.Register(&exportCmd{}, "data")

	c.Register(&summaryCmd{}, "reports")
	c.Register(&bandsCmd{}, "reports")

	c.Register(&topicCmd{}, "help")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var workers = flag.Int("workers", monitor.DefaultWorkers, "Concurrent downloads across sources")

var (
	bcraClient   = bcra.New()
	indecClient  = indec.New()
	sipaClient   = sipa.New()
	comexClient  = comex.New()
	marketClient = market.New()
)

// marketRange is the chart range requested from the quote endpoint.
const marketRange = "2y"

// source is one downloadable series, exposed by name on the CLI.
type source struct {
	freq date.Period
	load func(context.Context) (*monitor.Series, error)
}

// pickKeyed adapts a keyed download to a single series, selected by
// column name.
func pickKeyed(load func(context.Context) (*monitor.KeyedSeries, error), match func(string) bool) func(context.Context) (*monitor.Series, error) {
	return func(ctx context.Context) (*monitor.Series, error) {
		k, err := load(ctx)
		if err != nil {
			return nil, err
		}
		for _, key := range k.Keys() {
			if match(key) {
				s, _ := k.Get(key)
				return s, nil
			}
		}
		return nil, monitor.ErrNoData
	}
}

func containsFold(sub string) func(string) bool {
	return func(key string) bool {
		return strings.Contains(strings.ToLower(key), strings.ToLower(sub))
	}
}

func exact(key string) func(string) bool {
	return func(k string) bool { return k == key }
}

func monetarias(id int) func(context.Context) (*monitor.Series, error) {
	return func(ctx context.Context) (*monitor.Series, error) {
		return bcraClient.Series(ctx, id)
	}
}

var sources = map[string]source{
	"fx-mayorista":       {date.Daily, monetarias(bcra.FXMayorista)},
	"tasa-depositos":     {date.Daily, monetarias(bcra.TasaDepositos)},
	"tasa-adelantos":     {date.Daily, monetarias(bcra.TasaAdelantos)},
	"tasa-personales":    {date.Daily, monetarias(bcra.TasaPersonales)},
	"inflacion-esperada": {date.Monthly, monetarias(bcra.InflacionEsperada)},

	"ipc": {date.Monthly, func(ctx context.Context) (*monitor.Series, error) {
		return indecClient.IPCNacionalGeneral(ctx)
	}},
	"rem": {date.Monthly, func(ctx context.Context) (*monitor.Series, error) {
		return bcraClient.REM(ctx)
	}},
	"itcrm": {date.Daily, pickKeyed(func(ctx context.Context) (*monitor.KeyedSeries, error) {
		return bcraClient.ITCRM(ctx)
	}, containsFold("itcrm"))},
	"embi": {date.Daily, pickKeyed(func(ctx context.Context) (*monitor.KeyedSeries, error) {
		return bcraClient.EMBI(ctx)
	}, containsFold("argentina"))},

	"ipi": {date.Monthly, func(ctx context.Context) (*monitor.Series, error) {
		original, _, err := indecClient.IPIGeneral(ctx)
		return original, err
	}},
	"ipi-sa": {date.Monthly, func(ctx context.Context) (*monitor.Series, error) {
		_, adjusted, err := indecClient.IPIGeneral(ctx)
		return adjusted, err
	}},

	"empleo": {date.Monthly, func(ctx context.Context) (*monitor.Series, error) {
		d, err := sipaClient.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return d.Total, nil
	}},
	"empleo-sa": {date.Monthly, func(ctx context.Context) (*monitor.Series, error) {
		d, err := sipaClient.Fetch(ctx)
		if err != nil {
			return nil, err
		}
		return d.TotalSA, nil
	}},

	"expo": {date.Monthly, pickKeyed(func(ctx context.Context) (*monitor.KeyedSeries, error) {
		return comexClient.ICA(ctx)
	}, exact(comex.ExpoTotal))},
	"impo": {date.Monthly, pickKeyed(func(ctx context.Context) (*monitor.KeyedSeries, error) {
		return comexClient.ICA(ctx)
	}, exact(comex.ImpoTotal))},
	"saldo": {date.Monthly, pickKeyed(func(ctx context.Context) (*monitor.KeyedSeries, error) {
		return comexClient.ICA(ctx)
	}, exact(comex.Saldo))},

	"ccl": {date.Daily, func(ctx context.Context) (*monitor.Series, error) {
		return marketClient.CCL(ctx, marketRange)
	}},
}

// SourceNames lists every downloadable series name, sorted.
func SourceNames() []string {
	names := make([]string, 0, len(sources))
	for name := range sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// loadSources downloads the named series concurrently.
func loadSources(ctx context.Context, names []string) (map[string]*monitor.Series, error) {
	tasks := make(map[string]func(context.Context) (*monitor.Series, error), len(names))
	for _, name := range names {
		src, ok := sources[name]
		if !ok {
			return nil, fmt.Errorf("unknown source %q, see 'fetch' for the list", name)
		}
		tasks[name] = src.load
	}
	return monitor.FetchAll(ctx, *workers, tasks)
}
