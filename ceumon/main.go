// ceumon is the command line entry point of the macro monitor.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/corral-ceu/monitor-ceu-uia/cmd"
)

func main() {
	completion()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "help")
	commander.Register(commander.FlagsCommand(), "help")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion wires shell completion. It returns immediately when the
// binary is run normally, and exits after answering when invoked by the
// shell's completion hook.
func completion() {
	srcs := predict.Set(cmd.SourceNames())
	spec := &complete.Command{
		Sub: map[string]*complete.Command{
			"fetch": {Args: srcs},
			"export": {
				Args: srcs,
				Flags: map[string]complete.Predictor{
					"o":        predict.Files("*"),
					"sep":      predict.Something,
					"from":     predict.Something,
					"to":       predict.Something,
					"decimals": predict.Something,
				},
			},
			"summary": {Flags: map[string]complete.Predictor{"d": predict.Something}},
			"bands": {Flags: map[string]complete.Predictor{
				"o":    predict.Files("*"),
				"tail": predict.Something,
			}},
			"topic": {Args: predict.Set{"readme", "fuentes", "metricas", "bandas", "*"}},
		},
		Flags: map[string]complete.Predictor{"workers": predict.Something},
	}
	spec.Complete("ceumon")
}
