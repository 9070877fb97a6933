package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"path"

	"github.com/etnz/tracker/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := commander.Execute(ctx)
	stop()
	os.Exit(int(status))
}

// completion handles shell completion requests, it exits when there is one.
func completion(name string) {
	reports := make(map[string]*complete.Command)
	for _, n := range cmd.Names() {
		reports[n] = &complete.Command{Args: predict.Files("*.json*")}
	}
	c := &complete.Command{
		Sub: reports,
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.toml"),
			"currency": predict.Set{"USD", "EUR", "GBP", "CHF", "JPY"},
		},
	}
	c.Complete(name)
}
