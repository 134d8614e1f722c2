package pipeline

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/render/sink"
)

// Layout runs one layout pass of m onto a fresh recorder. The recorder and
// result are returned even when the pass aborts, holding its partial output.
func Layout(ctx context.Context, m model.Model, cfg config.Config, logger *log.Logger) (*sink.Recorder, *layout.Result, error) {
	rec := sink.NewRecorder()
	res, err := layout.New(cfg, logger).Render(ctx, m, rec)
	return rec, res, err
}
