package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/layout"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// captureStdout redirects user-facing output for the rest of the test.
func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	old := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = old })
	return &buf
}

func TestPrintStats(t *testing.T) {
	tests := []struct {
		name         string
		nodes, edges int
		cached       bool
		want         []string
	}{
		{"fresh", 4, 3, false, []string{"4 nodes", "3 edges", "fresh"}},
		{"cached", 2, 1, true, []string{"2 nodes", "1 edges", "cached"}},
		{"cached without layout", 0, 0, true, []string{"cached"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := captureStdout(t)
			printStats(tt.nodes, tt.edges, tt.cached)
			for _, w := range tt.want {
				if !strings.Contains(out.String(), w) {
					t.Errorf("printStats() = %q, missing %q", out.String(), w)
				}
			}
		})
	}
}

func TestPrintReport(t *testing.T) {
	out := captureStdout(t)
	printReport(&model.Report{
		Issues: []model.Issue{
			{Severity: model.Warning, Code: errors.ErrCodeCycle, Message: "cycle through a"},
			{Severity: model.Blocking, Code: errors.ErrCodeMissingParent, Message: "b has missing parent x"},
		},
		Cycles: [][]string{{"a", "b"}},
	})

	got := out.String()
	blocking := strings.Index(got, "missing parent x")
	warning := strings.Index(got, "cycle through a")
	if blocking < 0 || warning < 0 {
		t.Fatalf("printReport() = %q, want both issues", got)
	}
	if blocking > warning {
		t.Error("printReport() should list blocking issues first")
	}
	if !strings.Contains(got, "a → b") {
		t.Errorf("printReport() = %q, want the cycle path", got)
	}
}

func TestPrintTruncations(t *testing.T) {
	out := captureStdout(t)
	printTruncations(nil)
	printTruncations(&layout.Result{})
	if out.Len() != 0 {
		t.Errorf("printTruncations() without truncations printed %q", out.String())
	}

	printTruncations(&layout.Result{Truncations: []layout.Truncation{{Phase: layout.PhasePlace, Start: "c9", Steps: 4}}})
	if !strings.Contains(out.String(), "place walk from c9 stopped after 4 steps") {
		t.Errorf("printTruncations() = %q", out.String())
	}
}
