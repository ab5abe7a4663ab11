package cli

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mosaic/pkg/pipeline"
)

// browseCommand creates the browse command for interactive exploration.
func (c *CLI) browseCommand() *cobra.Command {
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "browse [input]",
		Short: "Explore a document interactively in the terminal",
		Long: `Explore a document interactively in the terminal.

The browse command decodes the input document and opens a full-screen
treemap. Arrow keys move the highlight across the children of the
current branch, enter zooms into the selected branch, esc backs out
and q quits.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.Input = args[0]
			return c.runBrowse(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.Format, "input-format", "", "input format: json, yaml, toml, csv, text (default: sniffed)")

	return cmd
}

// runBrowse decodes the document and hands it to the bubbletea program.
func (c *CLI) runBrowse(ctx context.Context, opts pipeline.Options) error {
	opts.Logger = c.Logger
	runner := c.newRunner()

	root, _, err := runner.Decode(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewBrowseModel(root), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		// An interrupt surfaces as a killed program; report it as the
		// context cancellation it stands for.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	return nil
}
