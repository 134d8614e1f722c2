// Package cli implements the gitgraph command-line interface.
//
// # Commands
//
//   - render: lay out a model file and write SVG, PNG, JSON or DOT output
//   - validate: check a model file and print its findings
//   - inspect: browse node placements in an interactive table
//   - serve: run the live preview server
//   - cache: manage the artifact cache
//
// # Configuration
//
// Layout parameters come from built-in defaults, then gitgraph.toml (or the
// file named by --config), then GITGRAPH_* environment variables, then
// command-line flags. Model files may override any of them in their
// [options] table.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger
// travels in the command context.
package cli

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "gitgraph"

	// redisURLEnv selects a shared Redis artifact cache instead of the
	// local file cache.
	redisURLEnv = "GITGRAPH_REDIS_URL"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig resolves the layout configuration for cmd: defaults, the
// config file, environment and the command's flags.
func (c *CLI) loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("config loaded",
		"file", c.configPath,
		"node_spacing", cfg.NodeSpacing,
		"branch_offset", cfg.BranchOffset,
		"max_steps", cfg.MaxSteps)
	return cfg, nil
}

// addConfigFlags registers flags for the most commonly tuned layout
// parameters. Only flags set explicitly override the config file.
func addConfigFlags(cmd *cobra.Command) {
	d := config.Defaults()
	cmd.Flags().Float64("node-spacing", d.NodeSpacing, "distance between consecutive commits")
	cmd.Flags().Float64("branch-offset", d.BranchOffset, "distance between branch lanes")
	cmd.Flags().Float64("node-radius", d.NodeRadius, "commit circle radius")
	cmd.Flags().Int("max-steps", d.MaxSteps, "step cap for each history walk")
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A nil keyer uses the
// default artifact keys.
func (c *CLI) newRunner(ctx context.Context, noCache bool, keyer cache.Keyer) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, keyer, c.Logger), nil
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if url := os.Getenv(redisURLEnv); url != "" {
		rc, err := cache.NewRedisCache(ctx, url)
		if err == nil {
			c.Logger.Debug("using redis cache")
			return rc, nil
		}
		c.Logger.Warn("redis cache unavailable, using file cache", "err", err)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the artifact cache directory (~/.cache/gitgraph on Linux).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatSVG}
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
