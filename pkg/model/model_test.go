package model

import (
	"slices"
	"testing"

	"github.com/matzehuels/gitgraph/pkg/errors"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input   string
		want    Direction
		wantErr bool
	}{
		{"", LeftRight, false},
		{"LR", LeftRight, false},
		{"lr", LeftRight, false},
		{"left-right", LeftRight, false},
		{"BT", BottomTop, false},
		{" bt ", BottomTop, false},
		{"bottom-top", BottomTop, false},
		{"TB", "", true},
		{"sideways", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDirection(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDirection(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %q, want %q", tt.input, got, tt.want)
			}
			if tt.wantErr && !errors.Is(err, errors.ErrCodeInvalidDirection) {
				t.Errorf("ParseDirection(%q) code = %v, want %v", tt.input, errors.GetCode(err), errors.ErrCodeInvalidDirection)
			}
		})
	}
}

func TestCommitHelpers(t *testing.T) {
	root := &Commit{ID: "a"}
	linear := &Commit{ID: "b", Seq: 1, Parents: []string{"a"}, Message: "fix"}
	merge := &Commit{ID: "c", Seq: 2, Parents: []string{"b", "x"}}

	if !root.IsRoot() || root.IsMerge() || root.Parent() != "" {
		t.Errorf("root helpers: IsRoot=%v IsMerge=%v Parent=%q", root.IsRoot(), root.IsMerge(), root.Parent())
	}
	if linear.IsRoot() || linear.IsMerge() || linear.Parent() != "a" {
		t.Errorf("linear helpers: IsRoot=%v IsMerge=%v Parent=%q", linear.IsRoot(), linear.IsMerge(), linear.Parent())
	}
	if !merge.IsMerge() || merge.Parent() != "b" {
		t.Errorf("merge helpers: IsMerge=%v Parent=%q", merge.IsMerge(), merge.Parent())
	}
	if got := root.Label(); got != "a" {
		t.Errorf("Label() = %q, want %q", got, "a")
	}
	if got := linear.Label(); got != "fix" {
		t.Errorf("Label() = %q, want %q", got, "fix")
	}
}

func TestGraphAddCommit(t *testing.T) {
	g := NewGraph("")
	if g.Direction() != LeftRight {
		t.Errorf("Direction() = %q, want %q", g.Direction(), LeftRight)
	}

	parents := []string{"x"}
	if err := g.AddCommit(Commit{ID: "a", Parents: parents}); err != nil {
		t.Fatalf("AddCommit() error = %v", err)
	}
	parents[0] = "mutated"
	if c, _ := g.Commits().Get("a"); c.Parent() != "x" {
		t.Errorf("AddCommit() should copy parents, got %q", c.Parent())
	}

	if err := g.AddCommit(Commit{ID: "a"}); !errors.Is(err, errors.ErrCodeInvalidModel) {
		t.Errorf("duplicate AddCommit() error = %v, want INVALID_MODEL", err)
	}
	if err := g.AddCommit(Commit{ID: ""}); err == nil {
		t.Error("AddCommit() with empty id should fail")
	}
}

func TestGraphAddBranch(t *testing.T) {
	g := NewGraph(BottomTop)
	for _, name := range []string{"main", "develop", "feature/x"} {
		if err := g.AddBranch(Branch{Name: name, Commit: "a"}); err != nil {
			t.Fatalf("AddBranch(%q) error = %v", name, err)
		}
	}
	if err := g.AddBranch(Branch{Name: "main", Commit: "b"}); err == nil {
		t.Error("duplicate AddBranch() should fail")
	}

	var names []string
	for _, b := range g.Branches() {
		names = append(names, b.Name)
	}
	if want := []string{"main", "develop", "feature/x"}; !slices.Equal(names, want) {
		t.Errorf("Branches() = %v, want %v (declaration order)", names, want)
	}
}

func TestSortedCommits(t *testing.T) {
	g := NewGraph(LeftRight)
	g.AddCommit(Commit{ID: "c", Seq: 2})
	g.AddCommit(Commit{ID: "b", Seq: 1})
	g.AddCommit(Commit{ID: "a", Seq: 1})
	g.AddCommit(Commit{ID: "z", Seq: 0})

	var got []string
	for _, c := range g.SortedCommits() {
		got = append(got, c.ID)
	}
	if want := []string{"z", "a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("SortedCommits() = %v, want %v", got, want)
	}
}
