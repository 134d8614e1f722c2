package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the sequence number and message to node labels.
	// When false, only the commit id is shown.
	Detailed bool
	// Palette colours edges by lane. Defaults to the configured branch
	// colours.
	Palette []string
	// MaxSteps bounds the lane walk from each branch tip.
	MaxSteps int
}

func (o Options) withDefaults() Options {
	d := config.Defaults()
	if len(o.Palette) == 0 {
		o.Palette = d.BranchColors
	}
	if o.MaxSteps <= 0 {
		o.MaxSteps = d.MaxSteps
	}
	return o
}

// ToDOT converts a commit graph to Graphviz DOT. Edges point from child to
// parent, ranked so that the oldest commit sits on the left (LR) or at the
// bottom (BT). Branch tips are drawn with a double outline and their branch
// names appended to the label.
func ToDOT(m model.Model, opts Options) string {
	opts = opts.withDefaults()
	lanes := assignLanes(m, opts.MaxSteps)

	rankdir := "RL"
	if m.Direction() == model.BottomTop {
		rankdir = "TB"
	}

	tips := make(map[string][]string)
	for _, b := range m.Branches() {
		tips[b.Commit] = append(tips[b.Commit], b.Name)
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(&buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, style=filled, fillcolor=yellow, color=grey, fontsize=12];\n")
	buf.WriteString("  edge [penwidth=2, arrowsize=0.6];\n")
	buf.WriteString("\n")

	commits := model.SortedCommits(m.Commits())
	for _, c := range commits {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(c, tips[c.ID], opts.Detailed))}
		if len(tips[c.ID]) > 0 {
			attrs = append(attrs, "peripheries=2")
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", c.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, c := range commits {
		for i, p := range c.Parents {
			lane := lanes[c.ID]
			if i > 0 {
				lane = lanes[p]
			}
			attrs := fmt.Sprintf("color=%q", laneColor(opts.Palette, lane))
			if i > 0 {
				attrs += ", style=dashed"
			}
			fmt.Fprintf(&buf, "  %q -> %q [%s];\n", c.ID, p, attrs)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(c *model.Commit, branches []string, detailed bool) string {
	parts := append([]string{}, branches...)
	parts = append(parts, c.ID)
	if detailed {
		parts = append(parts, "#"+strconv.Itoa(c.Seq))
		if c.Message != "" {
			parts = append(parts, c.Message)
		}
	}
	return strings.Join(parts, "\n")
}

func laneColor(palette []string, lane int) string {
	if lane < 1 {
		lane = 1
	}
	return palette[(lane-1)%len(palette)]
}

// assignLanes gives every reachable commit the lane it would be placed on:
// branches in model order start at lane 1, first parents stay on the lane and
// second parents move one lane over. The first assignment wins.
func assignLanes(m model.Model, maxSteps int) map[string]int {
	commits := m.Commits()
	lanes := make(map[string]int, commits.Len())

	var walk func(id string, lane int)
	walk = func(id string, lane int) {
		for steps := 0; steps < maxSteps; steps++ {
			c, ok := commits.Get(id)
			if !ok {
				return
			}
			if _, seen := lanes[id]; seen {
				return
			}
			lanes[id] = lane
			switch len(c.Parents) {
			case 0:
				return
			case 1:
				id = c.Parents[0]
			default:
				walk(c.Parents[0], lane)
				walk(c.Parents[1], lane+1)
				return
			}
		}
	}

	for i, b := range m.Branches() {
		walk(b.Commit, i+1)
	}
	return lanes
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized root element with one sized
// in user units so the SVG scales like the native renderer's output.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
