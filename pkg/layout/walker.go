package layout

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gitgraph/pkg/curve"
	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/geom"
	"github.com/matzehuels/gitgraph/pkg/model"
	"github.com/matzehuels/gitgraph/pkg/observability"
)

// Traversal phases reported in a Truncation.
const (
	PhasePlace = "place"
	PhaseEdges = "edges"
)

// Truncation records a walk that stopped at the step cap.
type Truncation struct {
	Phase string `json:"phase"`
	Start string `json:"start"` // commit the walk began at
	Steps int    `json:"steps"`
}

func (t Truncation) String() string {
	return fmt.Sprintf("%s walk from %s stopped after %d steps", t.Phase, t.Start, t.Steps)
}

// walker holds the state of one pass. Both visited sets live only as long
// as the walker.
type walker struct {
	ctx      context.Context
	logger   *log.Logger
	commits  model.CommitSet
	tips     map[string][]string // commit id -> branch names, model order
	total    int
	dir      model.Direction
	axis     Axis
	surface  Surface
	pen      curve.Renderer
	maxSteps int

	placed map[string]bool
	drawn  map[string]bool

	nodes, edges, paths int
	truncations         []Truncation
}

func newWalker(ctx context.Context, m model.Model, axis Axis, s Surface, pen curve.Renderer, maxSteps int, logger *log.Logger) *walker {
	commits := m.Commits()
	tips := make(map[string][]string)
	for _, b := range m.Branches() {
		tips[b.Commit] = append(tips[b.Commit], b.Name)
	}
	return &walker{
		ctx:      ctx,
		logger:   logger,
		commits:  commits,
		tips:     tips,
		total:    commits.Len(),
		dir:      axis.Direction(),
		axis:     axis,
		surface:  s,
		pen:      pen,
		maxSteps: maxSteps,
		placed:   make(map[string]bool, commits.Len()),
		drawn:    make(map[string]bool, commits.Len()),
	}
}

// placeHistory places id and its first-parent ancestry on lane. The walk
// stops at a root, at an unknown id, at a commit placed earlier in the pass
// or at the step cap. A merge ends the loop: its first parent continues on
// lane and its second parent on the next lane. A commit with more than two
// parents is placed and then fails the walk with INVALID_MODEL.
func (w *walker) placeHistory(id string, lane int) error {
	start := id
	for steps := 0; ; steps++ {
		c, ok := w.commits.Get(id)
		if !ok || w.placed[id] {
			return nil
		}
		if steps >= w.maxSteps {
			w.capped(PhasePlace, start, steps)
			return nil
		}
		if err := w.place(c, lane); err != nil {
			return err
		}

		switch len(c.Parents) {
		case 0:
			return nil
		case 1:
			id = c.Parents[0]
		case 2:
			if err := w.placeHistory(c.Parents[0], lane); err != nil {
				return err
			}
			return w.placeHistory(c.Parents[1], lane+1)
		default:
			return tooManyParents(c)
		}
	}
}

func (w *walker) place(c *model.Commit, lane int) error {
	n := Node{
		ID: c.ID,
		At: w.axis.Place(c.Seq, lane, w.total),
		Labels: Labels{
			Branches: w.tips[c.ID],
			Text:     c.Label(),
		},
	}
	if w.dir == model.BottomTop && c.Message != "" {
		n.Labels.Detail = c.Message
	}
	if err := w.surface.PlaceNode(n); err != nil {
		return fmt.Errorf("place %s: %w", c.ID, err)
	}
	w.placed[c.ID] = true
	w.nodes++
	return nil
}

// drawHistory draws the edges from id down its first-parent line with the
// given colour. It stops at seq 0, at a root, at a commit whose edges are
// already drawn or at the step cap. At a merge the second parent's line is
// drawn recursively with the next colour.
func (w *walker) drawHistory(id string, color int) error {
	c, ok := w.commits.Get(id)
	if !ok {
		return errors.New(errors.ErrCodeMissingParent, "unknown commit %s", id)
	}
	start := id

	for steps := 0; c.Seq > 0 && !w.drawn[c.ID]; steps++ {
		if steps >= w.maxSteps {
			w.capped(PhaseEdges, start, steps)
			return nil
		}

		switch len(c.Parents) {
		case 0:
			return nil
		case 1:
			parent, err := w.edge(c, c.Parents[0], color)
			if err != nil {
				return err
			}
			w.drawn[c.ID] = true
			c = parent
		case 2:
			first, err := w.edge(c, c.Parents[0], color)
			if err != nil {
				return err
			}
			if _, err := w.edge(c, c.Parents[1], color+1); err != nil {
				return err
			}
			w.drawn[c.ID] = true
			if err := w.drawHistory(c.Parents[1], color+1); err != nil {
				return err
			}
			c = first
		default:
			return tooManyParents(c)
		}
	}
	return nil
}

func tooManyParents(c *model.Commit) error {
	return errors.New(errors.ErrCodeInvalidModel, "commit %s has %d parents (at most 2 supported)", c.ID, len(c.Parents))
}

// edge routes and draws the connector from c to its parent and returns the
// parent.
func (w *walker) edge(c *model.Commit, parentID string, color int) (*model.Commit, error) {
	parent, ok := w.commits.Get(parentID)
	if !ok {
		return nil, errors.New(errors.ErrCodeMissingParent, "commit %s references unknown parent %s", c.ID, parentID)
	}
	from, err := w.bbox(c.ID)
	if err != nil {
		return nil, err
	}
	to, err := w.bbox(parent.ID)
	if err != nil {
		return nil, err
	}
	for _, seg := range w.axis.Route(from, to) {
		if err := w.pen.Draw(w.surface, seg, color); err != nil {
			return nil, fmt.Errorf("draw %s -> %s: %w", c.ID, parent.ID, err)
		}
		w.paths++
	}
	w.edges++
	return parent, nil
}

func (w *walker) bbox(id string) (geom.BBox, error) {
	if !w.surface.IsNodePlaced(id) {
		return geom.BBox{}, errors.New(errors.ErrCodeUnplacedNode, "commit %s has not been placed", id)
	}
	return w.surface.NodeBBox(id)
}

func (w *walker) capped(phase, start string, steps int) {
	t := Truncation{Phase: phase, Start: start, Steps: steps}
	w.truncations = append(w.truncations, t)
	w.logger.Warn("traversal capped", "phase", phase, "start", start, "steps", steps)
	observability.Render().OnTraversalCapped(w.ctx, phase, start, steps)
}
