package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

// performanceCmd implements the 'performance' subcommand.
type performanceCmd struct{}

func (*performanceCmd) Name() string     { return "performance" }
func (*performanceCmd) Synopsis() string { return "display the gain or loss of each holding" }
func (*performanceCmd) Usage() string {
	return `pt performance <portfolio.json>

  Displays, for each holding, the purchase price, the current price, the
  return and the absolute gain or loss. The portfolio total return is computed
  from the total cost and the total current value.
`
}

func (*performanceCmd) SetFlags(f *flag.FlagSet) {}

func (c *performanceCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := portfolioArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	cur, holdings, status := valuate(ctx, path)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.PerformanceMarkdown(tracker.NewPerformanceReport(cur, holdings)))
	return subcommands.ExitSuccess
}
