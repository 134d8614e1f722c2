package model

import (
	"fmt"
	"slices"
	"strings"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

// Severity classifies a validation issue.
type Severity int

const (
	// Warning issues are reported but do not stop a render. Cycles are
	// warnings: the walker's step cap and visited sets bound the traversal.
	Warning Severity = iota
	// Blocking issues make the model unrenderable in full; a render will
	// abort when traversal reaches the offending commit.
	Blocking
)

func (s Severity) String() string {
	if s == Blocking {
		return "error"
	}
	return "warning"
}

// Issue is a single validation finding.
type Issue struct {
	Severity Severity
	Code     errors.Code
	Commit   string // offending commit id, if any
	Branch   string // offending branch name, if any
	Message  string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Severity, i.Message)
}

// Report collects the findings of Validate.
type Report struct {
	Issues []Issue
	// Cycles lists each parent cycle as a sorted slice of commit ids.
	Cycles [][]string
}

// OK reports whether the model has no blocking issues.
func (r *Report) OK() bool { return len(r.Blocking()) == 0 }

// Blocking returns the blocking issues in report order.
func (r *Report) Blocking() []Issue { return r.filter(Blocking) }

// Warnings returns the non-blocking issues in report order.
func (r *Report) Warnings() []Issue { return r.filter(Warning) }

func (r *Report) filter(s Severity) []Issue {
	var out []Issue
	for _, i := range r.Issues {
		if i.Severity == s {
			out = append(out, i)
		}
	}
	return out
}

// Err returns an INVALID_MODEL error summarising the blocking issues, or nil.
// The first blocking issue's code is kept as the cause so callers can test
// for it with errors.Is.
func (r *Report) Err() error {
	blocking := r.Blocking()
	if len(blocking) == 0 {
		return nil
	}
	msgs := make([]string, len(blocking))
	for i, b := range blocking {
		msgs[i] = b.Message
	}
	first := errors.New(blocking[0].Code, "%s", blocking[0].Message)
	return errors.Wrap(errors.ErrCodeInvalidModel, first, "%d problem(s): %s", len(blocking), strings.Join(msgs, "; "))
}

func (r *Report) add(sev Severity, code errors.Code, commit, branch, format string, args ...any) {
	r.Issues = append(r.Issues, Issue{
		Severity: sev,
		Code:     code,
		Commit:   commit,
		Branch:   branch,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Validate inspects a model without mutating it. It reports:
//   - parents that are not in the commit set (blocking)
//   - branch tips that are not in the commit set (blocking)
//   - commits with more than two parents (blocking)
//   - commits that are their own parent (warning)
//   - parent cycles, found as strongly connected components (warning)
//   - commits sharing a sequence number (warning)
//
// Findings are ordered by commit sequence, then branch order.
func Validate(m Model) *Report {
	r := &Report{}
	commits := m.Commits()
	sorted := SortedCommits(commits)

	ids := make(map[string]int64, len(sorted))
	g := simple.NewDirectedGraph()
	for i, c := range sorted {
		ids[c.ID] = int64(i)
		g.AddNode(simple.Node(i))
	}

	seqs := make(map[int]string, len(sorted))
	for _, c := range sorted {
		if prev, dup := seqs[c.Seq]; dup {
			r.add(Warning, errors.ErrCodeInvalidModel, c.ID, "", "commits %s and %s share sequence number %d", prev, c.ID, c.Seq)
		} else {
			seqs[c.Seq] = c.ID
		}

		if len(c.Parents) > 2 {
			r.add(Blocking, errors.ErrCodeInvalidModel, c.ID, "", "commit %s has %d parents (at most 2 supported)", c.ID, len(c.Parents))
		}
		for _, p := range c.Parents {
			if p == c.ID {
				r.add(Warning, errors.ErrCodeCycle, c.ID, "", "commit %s is its own parent", c.ID)
				continue
			}
			to, ok := ids[p]
			if !ok {
				r.add(Blocking, errors.ErrCodeMissingParent, c.ID, "", "commit %s references unknown parent %s", c.ID, p)
				continue
			}
			g.SetEdge(g.NewEdge(g.Node(ids[c.ID]), g.Node(to)))
		}
	}

	for _, b := range m.Branches() {
		if _, ok := commits.Get(b.Commit); !ok {
			r.add(Blocking, errors.ErrCodeMissingBranchTip, "", b.Name, "branch %s points at unknown commit %q", b.Name, b.Commit)
		}
	}

	for _, scc := range topo.TarjanSCC(g) {
		if len(scc) < 2 {
			continue
		}
		cycle := make([]string, len(scc))
		for i, n := range scc {
			cycle[i] = sorted[n.ID()].ID
		}
		slices.Sort(cycle)
		r.Cycles = append(r.Cycles, cycle)
	}
	slices.SortFunc(r.Cycles, func(a, b []string) int { return strings.Compare(a[0], b[0]) })
	for _, cycle := range r.Cycles {
		r.add(Warning, errors.ErrCodeCycle, cycle[0], "", "parent cycle through %s", strings.Join(cycle, ", "))
	}

	return r
}
