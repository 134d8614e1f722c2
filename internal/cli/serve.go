package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/internal/server"
	"github.com/matzehuels/gitgraph/internal/watch"
	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

// serveKeyPrefix keeps preview artifacts apart from render artifacts when
// both use the same Redis instance.
const serveKeyPrefix = "serve:"

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		direction string
		noCache   bool
	)

	cmd := &cobra.Command{
		Use:   "serve [file]",
		Short: "Serve a live preview of a commit history",
		Long: `Start the preview server. Open the printed address in a browser to see
the rendered model; it updates whenever the file changes.

The server also renders posted models:

  curl --data @history.json 'localhost:8080/api/render?format=svg'

Without a file, only the render API is available.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return c.runServe(cmd.Context(), addr, path, direction, cfg, noCache)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().StringVar(&direction, "direction", "", "layout direction for the watched file: LR or BT")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	addConfigFlags(cmd)
	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, path, direction string, cfg config.Config, noCache bool) error {
	runner, err := c.serveRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	srv := server.New(runner, server.Options{
		Path:      path,
		Direction: direction,
		Config:    cfg,
		Debounce:  watch.DefaultDebounce,
		Logger:    loggerFromContext(ctx),
	})

	printSuccess("Preview at %s", StyleValue.Render("http://"+addr))
	if path != "" {
		printDetail("watching %s", path)
	}

	err = srv.ListenAndServe(ctx, addr)
	if errors.Is(err, context.Canceled) || errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (c *CLI) serveRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	return c.newRunner(ctx, noCache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), serveKeyPrefix))
}
