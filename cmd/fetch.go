package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/corral-ceu/monitor-ceu-uia"
)

// fetchCmd downloads series and reports what came back.
type fetchCmd struct{}

func (*fetchCmd) Name() string     { return "fetch" }
func (*fetchCmd) Synopsis() string { return "download series from their public sources" }
func (*fetchCmd) Usage() string {
	return `ceumon fetch [<source>...]

  Downloads the named series concurrently and prints one status line per
  source. Without arguments every known source is fetched.

Sources:
  ` + strings.Join(SourceNames(), ", ") + `

Usage Examples:
# Fetch everything.
$ ceumon fetch

# Fetch only the FX and inflation series.
$ ceumon fetch fx-mayorista ipc

`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {}

func (c *fetchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = SourceNames()
	}

	results, err := loadSources(ctx, names)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: some sources failed: %v\n", err)
	}

	var b strings.Builder
	b.WriteString("| serie | frecuencia | obs | última fecha | último valor |\n")
	b.WriteString("|---|---|---:|---|---:|\n")
	for _, name := range names {
		s, ok := results[name]
		if !ok || s == nil {
			fmt.Fprintf(&b, "| %s | | | | falló |\n", name)
			continue
		}
		last, _ := s.Latest()
		fmt.Fprintf(&b, "| %s | %s | %d | %s | %s |\n",
			name, s.Frequency(), s.Len(), last.Day, monitor.FormatNumber(last.Value, 2))
	}
	printMarkdown(b.String())

	if err != nil {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
