package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/errors"
	modelio "github.com/matzehuels/gitgraph/pkg/io"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	var strict bool

	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Check a commit history model for structural problems",
		Long: `Check a commit history model without rendering it.

Missing parents, missing branch tips and commits with more than two parents
are errors. Parent cycles, self-parents and duplicate sequence numbers are
warnings: the layout still terminates on them, but the output may be odd.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runValidate(cmd.Context(), args[0], strict)
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "treat warnings as errors")
	return cmd
}

func (c *CLI) runValidate(ctx context.Context, input string, strict bool) error {
	logger := loggerFromContext(ctx)

	g, err := modelio.ImportFile(input)
	if err != nil {
		return err
	}
	logger.Debug("model loaded", "commits", g.Commits().Len(), "branches", len(g.Branches()))

	report := model.Validate(g)
	printModelSummary(input, g)
	printReport(report)

	switch {
	case !report.OK():
		return report.Err()
	case strict && len(report.Warnings()) > 0:
		return errors.New(errors.ErrCodeInvalidModel, "%d warning(s) in strict mode", len(report.Warnings()))
	case len(report.Warnings()) > 0:
		printWarning("%s is usable with %d warning(s)", input, len(report.Warnings()))
	default:
		printSuccess("%s is valid", input)
	}
	printNextStep("Render it", fmt.Sprintf("%s render %s", appName, input))
	return nil
}

func printModelSummary(input string, m model.Model) {
	dir := m.Direction()
	if dir == "" {
		dir = model.LeftRight
	}
	fmt.Fprintln(stdout, StyleTitle.Render(input))
	printKeyValue("direction", string(dir))
	printKeyValue("commits", StyleNumber.Render(fmt.Sprint(m.Commits().Len())))
	printKeyValue("branches", StyleNumber.Render(fmt.Sprint(len(m.Branches()))))
	if opts := m.Options(); len(opts) > 0 {
		printKeyValue("options", fmt.Sprint(len(opts)))
	}
}
