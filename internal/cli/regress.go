package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/regress"
)

// regressCommand creates the regress command for linear models.
func (c *CLI) regressCommand() *cobra.Command {
	var (
		validate    bool
		treemapPath string
	)

	cmd := &cobra.Command{
		Use:   "regress [dataset-dir]",
		Short: "Fit linear models over a tabular dataset",
		Long: `Fit linear models over a tabular dataset.

The dataset directory holds a parameters.toml (name, predictor_vars,
dependent_var, training_fraction, seed) and a data.csv with a header
row. Rows are shuffled by the seed and split into training and held-out
partitions.

The command fits one model per predictor, the best pair of predictors
and a model over all predictors, then runs forward selection and
reports the R² gain of each added variable. With --validate the full
model is also scored on the held-out rows. With --treemap the forward
selection is summarized as a treemap of explained variance.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRegress(cmd.Context(), args[0], validate, treemapPath)
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "score the full model on the held-out rows")
	cmd.Flags().StringVar(&treemapPath, "treemap", "", "write an explained-variance treemap to this file")

	return cmd
}

// runRegress loads the dataset and prints the fitted models.
func (c *CLI) runRegress(ctx context.Context, dir string, validate bool, treemapPath string) error {
	ds, err := regress.LoadDataSet(dir)
	if err != nil {
		return err
	}

	name := ds.Name
	if name == "" {
		name = dir
	}
	printKeyValue("dataset", name)
	printKeyValue("rows", fmt.Sprintf("%d train · %d held out", ds.TrainSize(), ds.TestSize()))
	printNewline()

	univariate, err := ds.UnivariateModels()
	if err != nil {
		return err
	}
	printInfo("One predictor at a time")
	for _, m := range univariate {
		printDetail("R²=%.4f  %s", m.R2, m)
	}

	if len(ds.PredVars) >= 2 {
		best, err := ds.BestPair()
		if err != nil {
			return err
		}
		printNewline()
		printInfo("Best pair")
		printDetail("R²=%.4f  %s", best.R2, best)
	}

	full, err := ds.AllVarsModel()
	if err != nil {
		return err
	}
	printNewline()
	printInfo("All predictors")
	printDetail("R²=%.4f  %s", full.R2, full)
	if validate {
		held, err := ds.Validate(full)
		if err != nil {
			return err
		}
		printDetail("held-out R²=%.4f", held)
	}

	steps, err := ds.ForwardSelection()
	if err != nil {
		return err
	}
	printNewline()
	printInfo("Forward selection")
	prev := 0.0
	for i, m := range steps {
		last := m.PredVars[len(m.PredVars)-1]
		printDetail("step %d: +%s  R²=%.4f (gain %.4f)", i+1, m.Labels[last], m.R2, m.R2-prev)
		prev = m.R2
	}

	if treemapPath == "" {
		return nil
	}
	root, err := ds.SummaryTree()
	if err != nil {
		return err
	}
	return c.writeSummaryTree(ctx, root, treemapPath, "Explained variance")
}
