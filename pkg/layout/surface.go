package layout

import (
	"github.com/matzehuels/gitgraph/pkg/config"
	"github.com/matzehuels/gitgraph/pkg/curve"
	"github.com/matzehuels/gitgraph/pkg/geom"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// Labels is the text attached to a placed commit.
type Labels struct {
	// Branches lists the names of branches whose tip is this commit, in
	// model order.
	Branches []string `json:"branches,omitempty"`
	// Text is the commit message, or the id when there is no message.
	Text string `json:"text"`
	// Detail repeats the message next to the id in vertical layouts.
	Detail string `json:"detail,omitempty"`
}

// Node is a commit placed at its center point.
type Node struct {
	ID     string     `json:"id"`
	At     geom.Point `json:"at"`
	Labels Labels     `json:"labels"`
}

// NodeTemplate carries the styling shared by every node of a pass.
type NodeTemplate struct {
	Radius      float64         `json:"radius"`
	Fill        string          `json:"fill"`
	StrokeColor string          `json:"stroke_color"`
	StrokeWidth float64         `json:"stroke_width"`
	Label       config.Label    `json:"label"`
	Direction   model.Direction `json:"direction"`
}

// Stroke is a styled connector segment.
type Stroke = curve.Stroke

// Surface receives the drawing instructions of a layout pass. Surfaces are
// append-only during a pass and need not be safe for concurrent use.
type Surface interface {
	// Init is called once, before any node is placed.
	Init(t NodeTemplate) error
	// PlaceNode adds a commit node.
	PlaceNode(n Node) error
	// IsNodePlaced reports whether PlaceNode was called for id.
	IsNodePlaced(id string) bool
	// NodeBBox returns the bounding box of a placed node: the circle of
	// the node template's radius around its center.
	NodeBBox(id string) (geom.BBox, error)
	// DrawPath adds a connector segment.
	DrawPath(s Stroke) error
	// SetExtent records the canvas dimension along the lane axis for
	// left-right layouts or the history axis for bottom-top layouts.
	SetExtent(dim float64)
}
