// Package pipeline runs the load → layout → render flow shared by the CLI
// and the preview server.
//
// # Stages
//
//  1. Load: read a model file, or take an in-memory model, and validate it
//  2. Layout: run a layout pass onto a [sink.Recorder]
//  3. Render: turn the recording into the requested formats
//
// Rendered artifacts are cached by model content hash, effective config and
// format. When every requested format is cached the layout stage is skipped.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Path:    "history.toml",
//	    Formats: []string{"svg", "png"},
//	})
//	svg := result.Artifacts["svg"]
//
// [sink.Recorder]: github.com/matzehuels/gitgraph/pkg/render/sink.Recorder
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// DefaultScale is the PNG scale factor used when none is given.
const DefaultScale = 2.0

// Format constants for output formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatJSON     = "json"
	FormatDOT      = "dot"
	FormatNodelink = "nodelink" // Graphviz-laid-out SVG
)

// Formats lists the supported output formats in display order.
var Formats = []string{FormatSVG, FormatPNG, FormatJSON, FormatDOT, FormatNodelink}

// Extension returns the file extension for a format.
func Extension(format string) string {
	if format == FormatNodelink {
		return ".nodelink.svg"
	}
	return "." + format
}

// Options configures one pipeline run.
type Options struct {
	// Path is the model file to load. Ignored when Model is set.
	Path string `json:"path,omitempty"`
	// Model is an already parsed model.
	Model model.Model `json:"-"`

	// Direction overrides the model's direction when set.
	Direction string `json:"direction,omitempty"`
	// Config is the caller's configuration. Nil means the defaults. Model
	// options are applied on top of it.
	Config *config.Config `json:"config,omitempty"`

	Formats  []string `json:"formats,omitempty"`
	Title    string   `json:"title,omitempty"`
	Scale    float64  `json:"scale,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // DOT and nodelink labels

	// Refresh bypasses cache reads; results are still written.
	Refresh bool `json:"refresh,omitempty"`
	// Partial renders whatever an aborted layout pass produced instead of
	// failing outright. The layout error is still returned.
	Partial bool `json:"partial,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Model is the loaded model, after any direction override.
	Model model.Model
	// ModelHash is the content hash used in cache keys.
	ModelHash string
	// Report holds validation findings.
	Report *model.Report
	// Layout is nil when every artifact came from the cache.
	Layout *layout.Result
	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	Stats     Stats
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Commits    int
	Branches   int
	Nodes      int
	Edges      int
	LoadTime   time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits per format.
type CacheInfo struct {
	Hits      []string
	RenderHit bool // all artifacts came from cache
}

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(Formats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: svg, png, json, dot, nodelink)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// Calling it more than once has no further effect.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Model == nil && o.Path == "" {
		return errors.New(errors.ErrCodeInvalidInput, "a model path or model is required")
	}
	if o.Direction != "" {
		if _, err := model.ParseDirection(o.Direction); err != nil {
			return err
		}
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %v", o.Scale)
	}
	if o.Config == nil {
		d := config.Defaults()
		o.Config = &d
	}
	if err := o.Config.Validate(); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// source names where the model comes from, for logs and hooks.
func (o *Options) source() string {
	if o.Model != nil {
		return "<memory>"
	}
	return o.Path
}

// needsLayout reports whether any requested format is drawn from a layout
// pass. DOT and nodelink output only need the model.
func needsLayout(formats []string) bool {
	return slices.ContainsFunc(formats, func(f string) bool {
		return f != FormatDOT && f != FormatNodelink
	})
}
