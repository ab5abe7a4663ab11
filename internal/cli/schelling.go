package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/errors"
	"github.com/matzehuels/mosaic/pkg/models/schelling"
)

// schellingCommand creates the schelling command for segregation simulations.
func (c *CLI) schellingCommand() *cobra.Command {
	var (
		p           schelling.Params
		treemapPath string
	)

	cmd := &cobra.Command{
		Use:   "schelling [grid-file]",
		Short: "Run a Schelling segregation simulation",
		Long: `Run a Schelling segregation simulation.

The grid file holds one row per line with cells M (maroon), B (blue)
and F (for sale), separated by spaces or commas; blank lines and lines
starting with '#' are skipped. Owners whose neighborhood similarity
falls outside the satisfaction range relocate to homes on the market
until a full sweep moves nobody or --max-steps is reached.

With --treemap the final grid is summarized as a treemap: one branch
per color split into satisfied and seeking owners, plus the homes
still on the market.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSchelling(cmd.Context(), args[0], p, treemapPath)
		},
	}

	cmd.Flags().IntVar(&p.Radius, "radius", 1, "neighborhood radius (Manhattan distance)")
	cmd.Flags().Float64Var(&p.LowerBound, "lower-bound", 0.4, "lowest satisfying similarity score")
	cmd.Flags().Float64Var(&p.UpperBound, "upper-bound", 0.7, "highest satisfying similarity score")
	cmd.Flags().IntVar(&p.Patience, "patience", 3, "satisfying homes an owner visits before moving")
	cmd.Flags().IntVar(&p.MaxSteps, "max-steps", 100, "maximum number of relocation sweeps")
	cmd.Flags().StringVar(&treemapPath, "treemap", "", "write a summary treemap to this file")

	return cmd
}

// runSchelling loads the grid, runs the simulation, and prints the outcome.
func (c *CLI) runSchelling(ctx context.Context, path string, p schelling.Params, treemapPath string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeFileNotFound, err, "reading grid %s", path)
	}
	grid, err := schelling.ParseGrid(string(data))
	if err != nil {
		return err
	}

	result, err := schelling.Run(grid, p)
	if err != nil {
		return err
	}

	fmt.Println(result.Grid)
	printNewline()
	printKeyValue("steps", strconv.Itoa(result.Steps))
	printKeyValue("relocations", strconv.Itoa(result.Relocations))
	printKeyValue("for sale", strconv.Itoa(len(result.ForSale)))

	if treemapPath == "" {
		return nil
	}
	root, err := result.Grid.SummaryTree(p)
	if err != nil {
		return err
	}
	return c.writeSummaryTree(ctx, root, treemapPath, "Neighborhood mix")
}
