package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/models/sir"
)

// sirCommand creates the sir command for epidemic simulations.
func (c *CLI) sirCommand() *cobra.Command {
	var (
		p           sir.Params
		trials      int
		treemapPath string
	)

	cmd := &cobra.Command{
		Use:   "sir [city]",
		Short: "Simulate an epidemic in a one-dimensional city",
		Long: `Simulate an epidemic in a one-dimensional city.

The city is a comma-separated row of people: S (susceptible), In
(infected for n days), R (recovered) and V (vaccinated), for example
"S,S,I0,S,V". Each day the infection spreads to susceptible neighbors
and runs until nobody is contagious.

With --trials the simulation repeats over consecutive seeds and reports
the mean epidemic length. With --treemap the final city is summarized
as a treemap of the population by state.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSIR(cmd.Context(), args[0], p, trials, treemapPath)
		},
	}

	cmd.Flags().IntVar(&p.DaysContagious, "days-contagious", 2, "days an infected person stays contagious")
	cmd.Flags().Float64Var(&p.Effectiveness, "effectiveness", 0, "vaccination effectiveness in [0, 1]")
	cmd.Flags().Int64Var(&p.Seed, "seed", 42, "random seed for vaccination draws")
	cmd.Flags().IntVar(&trials, "trials", 0, "average the epidemic length over this many seeds")
	cmd.Flags().StringVar(&treemapPath, "treemap", "", "write a summary treemap to this file")

	return cmd
}

// runSIR parses the city, runs the simulation, and prints the outcome.
func (c *CLI) runSIR(ctx context.Context, spec string, p sir.Params, trials int, treemapPath string) error {
	city, err := sir.ParseCity(spec)
	if err != nil {
		return err
	}

	final, days, err := sir.Run(city, p)
	if err != nil {
		return err
	}

	printKeyValue("city", final.String())
	printKeyValue("days", strconv.Itoa(days))

	if trials > 0 {
		mean, err := sir.RunTrials(city, p, trials)
		if err != nil {
			return err
		}
		printKeyValue("trials", strconv.Itoa(trials))
		printKeyValue("mean days", fmt.Sprintf("%.2f", mean))
	}

	if treemapPath == "" {
		return nil
	}
	root, err := final.SummaryTree()
	if err != nil {
		return err
	}
	return c.writeSummaryTree(ctx, root, treemapPath, "Epidemic outcome")
}
