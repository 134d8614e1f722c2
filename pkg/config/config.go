// Package config holds the spacing and styling parameters of a layout pass
// and the layered loading that produces them.
//
// Values are resolved in increasing precedence: built-in defaults, an
// optional TOML file, GITGRAPH_* environment variables and command-line
// flags ([Load]); a render pass then applies the caller's overrides and the
// model's own options on top ([Merge]).
package config

import (
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// EnvPrefix is the prefix of environment variables read by Load. Nested keys
// use a double underscore: GITGRAPH_LABEL__WIDTH sets label.width.
const EnvPrefix = "GITGRAPH_"

// DefaultFile is read by Load when no explicit path is given. A missing
// default file is skipped; one that exists must parse.
const DefaultFile = "gitgraph.toml"

// Label is the text box attached to each commit node, relative to the node
// center.
type Label struct {
	Width     float64 `koanf:"width" json:"width"`
	Height    float64 `koanf:"height" json:"height"`
	X         float64 `koanf:"x" json:"x"`
	Y         float64 `koanf:"y" json:"y"`
	FullWidth bool    `koanf:"full_width" json:"full_width,omitempty"`
}

// Config is the effective configuration of a render pass.
type Config struct {
	NodeSpacing     float64  `koanf:"node_spacing" json:"node_spacing"`
	BranchOffset    float64  `koanf:"branch_offset" json:"branch_offset"`
	LeftMargin      float64  `koanf:"left_margin" json:"left_margin"`
	NodeRadius      float64  `koanf:"node_radius" json:"node_radius"`
	NodeFillColor   string   `koanf:"node_fill_color" json:"node_fill_color"`
	NodeStrokeColor string   `koanf:"node_stroke_color" json:"node_stroke_color"`
	NodeStrokeWidth float64  `koanf:"node_stroke_width" json:"node_stroke_width"`
	LineStrokeWidth float64  `koanf:"line_stroke_width" json:"line_stroke_width"`
	LineColor       string   `koanf:"line_color" json:"line_color"`
	BranchColors    []string `koanf:"branch_colors" json:"branch_colors"`
	Label           Label    `koanf:"label" json:"label"`
	// MaxSteps bounds each traversal loop. Reaching it truncates the walk
	// and is reported as a diagnostic.
	MaxSteps int `koanf:"max_steps" json:"max_steps"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		NodeSpacing:     150,
		BranchOffset:    50,
		LeftMargin:      50,
		NodeRadius:      10,
		NodeFillColor:   "yellow",
		NodeStrokeColor: "grey",
		NodeStrokeWidth: 2,
		LineStrokeWidth: 4,
		LineColor:       "grey",
		BranchColors:    []string{"#442f74", "#983351", "#609732", "#AA9A39"},
		Label:           Label{Width: 75, Height: 100, X: -25, Y: 0},
		MaxSteps:        1000,
	}
}

// Validate checks that the configuration can drive a layout.
func (c Config) Validate() error {
	switch {
	case c.NodeSpacing <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "node_spacing must be positive, got %v", c.NodeSpacing)
	case c.BranchOffset <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "branch_offset must be positive, got %v", c.BranchOffset)
	case c.NodeRadius < 0:
		return errors.New(errors.ErrCodeInvalidInput, "node_radius must not be negative, got %v", c.NodeRadius)
	case c.MaxSteps <= 0:
		return errors.New(errors.ErrCodeInvalidInput, "max_steps must be positive, got %d", c.MaxSteps)
	}
	return nil
}

// Map returns the configuration as a nested map keyed by koanf names.
func (c Config) Map() map[string]any {
	return map[string]any{
		"node_spacing":      c.NodeSpacing,
		"branch_offset":     c.BranchOffset,
		"left_margin":       c.LeftMargin,
		"node_radius":       c.NodeRadius,
		"node_fill_color":   c.NodeFillColor,
		"node_stroke_color": c.NodeStrokeColor,
		"node_stroke_width": c.NodeStrokeWidth,
		"line_stroke_width": c.LineStrokeWidth,
		"line_color":        c.LineColor,
		"branch_colors":     append([]string(nil), c.BranchColors...),
		"label": map[string]any{
			"width":      c.Label.Width,
			"height":     c.Label.Height,
			"x":          c.Label.X,
			"y":          c.Label.Y,
			"full_width": c.Label.FullWidth,
		},
		"max_steps": c.MaxSteps,
	}
}

// Merge applies override maps to base in order; later maps win. Keys may be
// nested maps or dotted paths ("label.width"), in snake_case or camelCase.
// Unknown keys are ignored.
func Merge(base Config, overrides ...map[string]any) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(mapProvider(base.Map()), nil); err != nil {
		return Config{}, fmt.Errorf("load base config: %w", err)
	}
	for i, o := range overrides {
		if len(o) == 0 {
			continue
		}
		if err := k.Load(mapProvider(normalize(o)), nil); err != nil {
			return Config{}, fmt.Errorf("load override %d: %w", i, err)
		}
	}
	return unmarshal(k)
}

// Load builds a configuration from defaults, a TOML file, environment
// variables and flags, in increasing precedence. An empty path reads
// DefaultFile if it exists; an explicit path must exist. Flags are matched
// by name with dashes read as underscores (--node-spacing sets
// node_spacing); only flags naming a config key are used.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	if err := k.Load(mapProvider(Defaults().Map()), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	switch {
	case path != "":
		if _, err := os.Stat(path); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config file %s", path)
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %s", path)
		}
	default:
		if _, err := os.Stat(DefaultFile); err == nil {
			if err := k.Load(file.Provider(DefaultFile), toml.Parser()); err != nil {
				return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse config file %s", DefaultFile)
			}
		} else if !os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "config file %s", DefaultFile)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return Config{}, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		known := Defaults().Map()
		cb := func(f *pflag.Flag) (string, any) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, ok := known[key]; !ok {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, cb), nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	return unmarshal(k)
}

func unmarshal(k *koanf.Koanf) (Config, error) {
	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "__", ".")
}

// normalize converts keys to snake_case and expands dotted paths into
// nested maps.
func normalize(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		if sub, ok := v.(map[string]any); ok {
			v = normalize(sub)
		}
		out[snake(k)] = v
	}
	return maps.Unflatten(out, ".")
}

func snake(s string) string {
	var b strings.Builder
	for i, r := range s {
		switch {
		case r == '-':
			b.WriteByte('_')
		case unicode.IsUpper(r):
			if i > 0 && s[i-1] != '.' && s[i-1] != '_' {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

type mapProvider map[string]any

func (p mapProvider) Read() (map[string]any, error) { return p, nil }

func (p mapProvider) ReadBytes() ([]byte, error) {
	return nil, fmt.Errorf("not implemented")
}
