package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/models/polling"
)

// pollingOpts holds the command-line flags for the polling command.
type pollingOpts struct {
	precinct  polling.Precinct
	trials    int
	seed      int64
	sweep     bool
	target    float64
	hasTarget bool
	treemap   string
}

// pollingCommand creates the polling command for wait-time simulations.
func (c *CLI) pollingCommand() *cobra.Command {
	var opts pollingOpts

	cmd := &cobra.Command{
		Use:   "polling",
		Short: "Simulate wait times at a polling place",
		Long: `Simulate wait times at a polling place.

Voters arrive at a Poisson rate, queue for a free booth and vote for an
exponentially distributed time; straight-ticket voters take a fixed
duration instead. The command reports the median over trials of the
mean wait.

With --sweep the split-ticket share rises from 0% to 100% in steps of
10% and each share's median wait is printed. With --target the sweep
stops at the first share whose median wait exceeds the target. With
--treemap one simulated day is summarized as a treemap of waiting and
voting minutes by arrival hour.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.hasTarget = cmd.Flags().Changed("target")
			return c.runPolling(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.precinct.Name, "name", "precinct", "precinct name for summaries")
	cmd.Flags().IntVar(&opts.precinct.HoursOpen, "hours", 10, "hours the polls stay open")
	cmd.Flags().IntVar(&opts.precinct.MaxVoters, "max-voters", 100, "cap on arrivals in one day")
	cmd.Flags().IntVar(&opts.precinct.Booths, "booths", 1, "number of voting booths")
	cmd.Flags().Float64Var(&opts.precinct.ArrivalRate, "arrival-rate", 0.1, "expected arrivals per minute")
	cmd.Flags().Float64Var(&opts.precinct.DurationRate, "duration-rate", 0.1, "rate parameter of split-ticket booth times")
	cmd.Flags().Float64Var(&opts.precinct.StraightTicketShare, "straight-share", 0.5, "share of straight-ticket voters in [0, 1]")
	cmd.Flags().Float64Var(&opts.precinct.StraightTicketDuration, "straight-duration", 5, "fixed booth minutes for straight-ticket voters")
	cmd.Flags().IntVar(&opts.trials, "trials", 20, "simulated days per estimate")
	cmd.Flags().Int64Var(&opts.seed, "seed", 42, "base random seed")
	cmd.Flags().BoolVar(&opts.sweep, "sweep", false, "sweep the split-ticket share from 0% to 100%")
	cmd.Flags().Float64Var(&opts.target, "target", 0, "find the split share pushing the median wait past this many minutes")
	cmd.Flags().StringVar(&opts.treemap, "treemap", "", "write a summary treemap of one day to this file")

	return cmd
}

// runPolling runs the requested estimate and prints the outcome.
func (c *CLI) runPolling(ctx context.Context, opts pollingOpts) error {
	p := opts.precinct

	switch {
	case opts.sweep:
		spinner := newSpinnerWithContext(ctx, "Sweeping split-ticket shares...")
		spinner.Start()
		points, err := p.Sweep(opts.trials, opts.seed)
		if err != nil {
			spinner.StopWithError("Sweep failed")
			return err
		}
		spinner.StopWithSuccess(fmt.Sprintf("Swept %d split-ticket shares", len(points)))
		for _, pt := range points {
			printDetail("split %3.0f%%  median wait %6.2f min", pt.SplitShare*100, pt.MedianWait)
		}

	case opts.hasTarget:
		pt, found, err := p.FindSplitShare(opts.target, opts.trials, opts.seed)
		if err != nil {
			return err
		}
		if !found {
			printWarning("No split share pushes the median wait past %.2f min", opts.target)
			break
		}
		printKeyValue("split share", fmt.Sprintf("%.0f%%", pt.SplitShare*100))
		printKeyValue("median wait", fmt.Sprintf("%.2f min", pt.MedianWait))

	default:
		median, err := p.MedianWaitTime(opts.trials, opts.seed)
		if err != nil {
			return err
		}
		printKeyValue("trials", strconv.Itoa(opts.trials))
		printKeyValue("median wait", fmt.Sprintf("%.2f min", median))
	}

	if opts.treemap == "" {
		return nil
	}
	voters, err := p.Simulate(opts.seed)
	if err != nil {
		return err
	}
	root, err := p.SummaryTree(voters)
	if err != nil {
		return err
	}
	return c.writeSummaryTree(ctx, root, opts.treemap, "Polling day")
}
