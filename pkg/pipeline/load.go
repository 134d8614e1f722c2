package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/matzehuels/gitgraph/pkg/cache"
	"github.com/matzehuels/gitgraph/pkg/config"
	modelio "github.com/matzehuels/gitgraph/pkg/io"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/observability"
)

// directed overrides the direction of a wrapped model.
type directed struct {
	model.Model
	dir model.Direction
}

func (d directed) Direction() model.Direction { return d.dir }

// Load reads the model named by opts and validates it. Validation findings
// are logged and returned; blocking ones are left for the layout pass to
// report, so that a partial render is still possible.
func Load(ctx context.Context, opts Options) (model.Model, *model.Report, error) {
	hooks := observability.Pipeline()
	src := opts.source()
	hooks.OnLoadStart(ctx, src)
	start := time.Now()

	m, err := load(opts)
	commits := 0
	if m != nil {
		commits = m.Commits().Len()
	}
	hooks.OnLoadComplete(ctx, src, commits, time.Since(start), err)
	if err != nil {
		return nil, nil, err
	}

	report := model.Validate(m)
	for _, issue := range report.Issues {
		if issue.Severity == model.Warning {
			opts.Logger.Warn(issue.Message, "code", issue.Code)
		} else {
			opts.Logger.Error(issue.Message, "code", issue.Code)
		}
	}
	return m, report, nil
}

func load(opts Options) (model.Model, error) {
	m := opts.Model
	if m == nil {
		g, err := modelio.ImportFile(opts.Path)
		if err != nil {
			return nil, err
		}
		m = g
	}
	if opts.Direction != "" {
		dir, err := model.ParseDirection(opts.Direction)
		if err != nil {
			return nil, err
		}
		if dir != m.Direction() {
			m = directed{Model: m, dir: dir}
		}
	}
	return m, nil
}

// ModelHash returns the content hash of a model: its canonical JSON
// encoding, so that equivalent TOML and JSON files hash alike.
func ModelHash(m model.Model) (string, error) {
	var buf bytes.Buffer
	if err := modelio.WriteJSON(m, &buf); err != nil {
		return "", err
	}
	return cache.Hash(buf.Bytes()), nil
}

// ConfigHash returns the content hash of a configuration.
func ConfigHash(cfg config.Config) string {
	data, _ := json.Marshal(cfg)
	return cache.Hash(data)
}
