package cmd

import (
	"context"
	"flag"

	"github.com/etnz/tracker"
	"github.com/etnz/tracker/renderer"
	"github.com/google/subcommands"
)

// balancesCmd implements the 'balances' subcommand.
type balancesCmd struct{}

func (*balancesCmd) Name() string     { return "balances" }
func (*balancesCmd) Synopsis() string { return "display the current value of each holding" }
func (*balancesCmd) Usage() string {
	return `pt balances <portfolio.json>

  Displays, for each holding, the quantity, the current price and the current
  value, followed by the total portfolio value.
`
}

func (*balancesCmd) SetFlags(f *flag.FlagSet) {}

func (c *balancesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	path, ok := portfolioArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	cur, holdings, status := valuate(ctx, path)
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.BalancesMarkdown(tracker.NewBalanceReport(cur, holdings)))
	return subcommands.ExitSuccess
}
