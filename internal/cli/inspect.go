package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

// inspectCommand creates the inspect command.
func (c *CLI) inspectCommand() *cobra.Command {
	var (
		direction string
		plain     bool
	)

	cmd := &cobra.Command{
		Use:   "inspect [file]",
		Short: "Browse where each commit is placed",
		Long: `Lay out a commit history and browse the resulting node placements in an
interactive table, in the order the layout placed them.

--plain prints the whole table once, for pipes and scripts.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			return c.runInspect(cmd.Context(), args[0], direction, cfg, plain)
		},
	}
	cmd.Flags().StringVar(&direction, "direction", "", "layout direction: LR or BT (default from model)")
	cmd.Flags().BoolVar(&plain, "plain", false, "print the table instead of opening the viewer")
	addConfigFlags(cmd)
	return cmd
}

func (c *CLI) runInspect(ctx context.Context, input, direction string, cfg config.Config, plain bool) error {
	logger := loggerFromContext(ctx)

	opts := pipeline.Options{Path: input, Direction: direction, Config: &cfg, Logger: logger}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	m, _, err := pipeline.Load(ctx, opts)
	if err != nil {
		return err
	}

	rec, res, layoutErr := pipeline.Layout(ctx, m, cfg, logger)
	if layoutErr != nil && len(rec.Nodes) == 0 {
		return layoutErr
	}
	if layoutErr != nil {
		logger.Warn("showing partial layout", "err", layoutErr)
	}

	title := fmt.Sprintf("%s · %s · %d placed", filepath.Base(input), res.Direction, len(rec.Nodes))
	view := NewPlacementModel(title, m, rec.Nodes, res)

	if plain {
		view.Height = len(view.Rows)
		fmt.Fprintln(stdout, view.View())
		return layoutErr
	}

	if _, err := tea.NewProgram(view, tea.WithContext(ctx), tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("inspect: %w", err)
	}
	return layoutErr
}
