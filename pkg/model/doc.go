// Package model defines the commit graph consumed by the layout engine.
//
// # Overview
//
// A graph is a set of [Commit] values keyed by id plus an ordered list of
// [Branch] tips. Each commit carries a sequence number, assigned by whoever
// produced the model, which the layout uses as its primary coordinate. A
// commit has zero parents (root), one (linear history) or two (merge).
//
// The layout engine reads graphs through the [Model] interface. [Graph] is
// the in-memory implementation used by the importers in pkg/io, the preview
// server and tests:
//
//	g := model.NewGraph(model.LeftRight)
//	g.AddCommit(model.Commit{ID: "a", Seq: 0})
//	g.AddCommit(model.Commit{ID: "b", Seq: 1, Parents: []string{"a"}})
//	g.AddBranch(model.Branch{Name: "main", Commit: "b"})
//
// # Validation
//
// [Validate] reports structural problems without mutating the graph:
// dangling parent references, dangling branch tips, commits with more than
// two parents, and parent cycles. Cycles are found as strongly connected
// components of the parent graph. A model with cycles can still be rendered
// because the walker never visits a commit twice, but the output will be
// incomplete.
//
// # Concurrency
//
// Models are read-only during a render pass. [Graph] is not safe for
// concurrent mutation.
package model
