package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

// allocationCmd implements the 'allocation' subcommand.
type allocationCmd struct{}

func (*allocationCmd) Name() string     { return "allocation" }
func (*allocationCmd) Synopsis() string { return "display the share of each holding in the portfolio" }
func (*allocationCmd) Usage() string {
	return `pt allocation <portfolio.json>

  Displays the percentage of the total portfolio value held in each holding.
`
}

func (*allocationCmd) SetFlags(f *flag.FlagSet) {}

func (c *allocationCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := portfolioArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	cur, holdings, status := valuate(ctx, path)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.AllocationMarkdown(tracker.NewAllocationReport(cur, holdings)))
	return subcommands.ExitSuccess
}
