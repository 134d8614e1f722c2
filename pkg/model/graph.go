package model

import (
	"maps"
	"slices"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// Graph is the in-memory Model used by the importers, the server and tests.
//
// The zero value is not usable - use NewGraph to create a Graph.
// Graph is not safe for concurrent mutation.
type Graph struct {
	commits   CommitSet
	branches  []Branch
	direction Direction
	options   map[string]any
}

// NewGraph creates an empty graph with the given direction.
func NewGraph(dir Direction) *Graph {
	if dir == "" {
		dir = LeftRight
	}
	return &Graph{
		commits:   make(CommitSet),
		direction: dir,
		options:   make(map[string]any),
	}
}

// AddCommit adds a commit to the graph. It returns an INVALID_MODEL error if
// the id is invalid or already present. Parent references are not checked
// here; use Validate once the graph is complete.
func (g *Graph) AddCommit(c Commit) error {
	if err := errors.ValidateCommitID(c.ID); err != nil {
		return err
	}
	if _, exists := g.commits[c.ID]; exists {
		return errors.New(errors.ErrCodeInvalidModel, "duplicate commit id %q", c.ID)
	}
	c.Parents = slices.Clone(c.Parents)
	g.commits[c.ID] = &c
	return nil
}

// AddBranch appends a branch. Branch order is preserved.
func (g *Graph) AddBranch(b Branch) error {
	if err := errors.ValidateBranchName(b.Name); err != nil {
		return err
	}
	if slices.ContainsFunc(g.branches, func(x Branch) bool { return x.Name == b.Name }) {
		return errors.New(errors.ErrCodeInvalidModel, "duplicate branch %q", b.Name)
	}
	g.branches = append(g.branches, b)
	return nil
}

// SetOption records a model-level configuration override.
func (g *Graph) SetOption(key string, value any) { g.options[key] = value }

// SetDirection changes the layout orientation.
func (g *Graph) SetDirection(d Direction) { g.direction = d }

// Commits implements Model.
func (g *Graph) Commits() CommitSet { return g.commits }

// Branches implements Model.
func (g *Graph) Branches() []Branch { return g.branches }

// Direction implements Model.
func (g *Graph) Direction() Direction { return g.direction }

// Options implements Model.
func (g *Graph) Options() map[string]any { return g.options }

// SortedCommits returns the commits ordered by sequence number, ties broken
// by id. Exporters use it for deterministic output.
func (g *Graph) SortedCommits() []*Commit {
	return SortedCommits(g.commits)
}

// SortedCommits orders a commit set by sequence number, ties broken by id.
func SortedCommits(s CommitSet) []*Commit {
	out := slices.Collect(maps.Values(s))
	slices.SortFunc(out, func(a, b *Commit) int {
		if a.Seq != b.Seq {
			return a.Seq - b.Seq
		}
		if a.ID < b.ID {
			return -1
		}
		if a.ID > b.ID {
			return 1
		}
		return 0
	})
	return out
}

var _ Model = (*Graph)(nil)
