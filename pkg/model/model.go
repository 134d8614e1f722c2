package model

import (
	"fmt"
	"strings"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// Direction is the layout orientation of a whole render pass.
type Direction string

const (
	// LeftRight lays history out horizontally, oldest commit on the left.
	LeftRight Direction = "LR"
	// BottomTop lays history out vertically, oldest commit at the bottom.
	BottomTop Direction = "BT"
)

// ParseDirection accepts "LR", "BT" and the long forms "left-right" and
// "bottom-top", case-insensitively. An empty string yields LeftRight.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lr", "left-right", "leftright":
		return LeftRight, nil
	case "bt", "bottom-top", "bottomtop":
		return BottomTop, nil
	default:
		return "", errors.New(errors.ErrCodeInvalidDirection, "invalid direction %q (must be LR or BT)", s)
	}
}

// String returns the short form of the direction.
func (d Direction) String() string { return string(d) }

// Commit is a node in the history graph.
//
// Parents holds zero ids for a root commit, one for linear ancestry and two
// for a merge. The first parent of a merge is the line the merge was made
// on; the second is the branch merged into it.
type Commit struct {
	ID      string
	Seq     int
	Parents []string
	Message string
}

// IsRoot reports whether the commit has no parents.
func (c *Commit) IsRoot() bool { return len(c.Parents) == 0 }

// IsMerge reports whether the commit has exactly two parents.
func (c *Commit) IsMerge() bool { return len(c.Parents) == 2 }

// Parent returns the first parent id, or "" for a root commit.
func (c *Commit) Parent() string {
	if len(c.Parents) == 0 {
		return ""
	}
	return c.Parents[0]
}

// Label returns the display text of the commit: its message, or its id when
// the message is empty.
func (c *Commit) Label() string {
	if c.Message != "" {
		return c.Message
	}
	return c.ID
}

func (c *Commit) String() string {
	return fmt.Sprintf("%s@%d", c.ID, c.Seq)
}

// Branch is a named pointer to the commit at its tip.
type Branch struct {
	Name   string
	Commit string
}

// CommitSet maps commit ids to commits for the whole graph being rendered.
type CommitSet map[string]*Commit

// Get returns the commit with the given id.
func (s CommitSet) Get(id string) (*Commit, bool) {
	c, ok := s[id]
	return c, ok && c != nil
}

// Len returns the number of commits in the set.
func (s CommitSet) Len() int { return len(s) }

// Model is the read side of a parsed commit graph, as consumed by the layout
// coordinator. Implementations must return the same values for the duration
// of one render pass.
type Model interface {
	// Commits returns every commit of the graph keyed by id.
	Commits() CommitSet
	// Branches returns the branches in declaration order. This order drives
	// lane assignment and must be stable.
	Branches() []Branch
	// Direction returns the layout orientation.
	Direction() Direction
	// Options returns configuration overrides declared by the model itself.
	// Keys use the config package's names (e.g. "node_spacing").
	Options() map[string]any
}
