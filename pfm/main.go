// Command pfm manages a personal ledger of income and expenses.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/pfm/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range cmd.Commands {
		commander.Register(c, "")
	}

	completion(name).Complete(name)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command tree for shell completion. It exits the
// process when invoked by the shell's completion hook.
func completion(name string) *complete.Command {
	sub := map[string]*complete.Command{
		"add": {Flags: map[string]complete.Predictor{
			"d": predict.Something, "k": predict.Set{"income", "expense"},
			"a": predict.Something, "c": predict.Something, "date": predict.Something,
		}},
		"tx":         {Flags: filterPredictors()},
		"totals":     {Flags: filterPredictors()},
		"categories": {Flags: filterPredictors()},
		"monthly": {Flags: map[string]complete.Predictor{
			"c": predict.Something, "y": predict.Something,
		}},
		"edit": {Flags: map[string]complete.Predictor{
			"id": predict.Something, "d": predict.Something,
			"k": predict.Set{"income", "expense"}, "a": predict.Something,
			"c": predict.Something, "date": predict.Something,
		}},
		"rm": {Args: predict.Something},
		"import": {
			Flags: map[string]complete.Predictor{"path": predict.Something},
			Args:  predict.Files("*.json"),
		},
		"topic":  {Args: predict.Set{"dates", "format", "concurrency"}},
		"assist": {Args: predict.Something},
	}
	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"backend-url": predict.Something,
			"data-dir":    predict.Dirs("*"),
			"key":         predict.Something,
			"currency":    predict.Set{"EUR", "USD", "GBP"},
		},
	}
}

func filterPredictors() map[string]complete.Predictor {
	return map[string]complete.Predictor{
		"y": predict.Something, "m": predict.Something, "day": predict.Something,
		"s": predict.Something, "e": predict.Something, "c": predict.Something,
		"n": predict.Something,
	}
}
