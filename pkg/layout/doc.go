// Package layout computes node positions and connector routes for a commit
// graph and emits them to a [Surface].
//
// # Pass structure
//
// A [Coordinator] runs one pass per call to [Coordinator.Render]:
//
//  1. The effective configuration is the coordinator's config with the
//     model's own options merged on top.
//  2. The [Axis] for the model's direction fixes placement, routing and
//     label geometry.
//  3. Each branch, in model order and on lanes counted from 1, has its
//     history placed and then its edges drawn.
//  4. The canvas extent is set.
//
// # Traversal
//
// Placement follows first parents from a branch tip until it reaches a root
// or a commit that an earlier branch already placed. At a merge the second
// parent continues one lane further out. Edge drawing walks the same line,
// drawing each commit's parent links once, and colours a merged-in line with
// the next palette entry.
//
// Both walks keep their own visited sets and stop after [config.Config]
// MaxSteps iterations. Hitting the cap is not an error: it is recorded as a
// [Truncation] on the [Result], logged and reported to
// observability.RenderHooks.
//
// # Routing
//
// Connectors run from the later commit to the earlier one. Adjacent commits
// get a single smooth dogleg; when the gap exceeds the node spacing the
// connector becomes a straight run along the parent's lane plus a smooth
// dogleg leaving the child.
//
// # Errors
//
// A parent id missing from the commit set, or a connector endpoint that was
// never placed, aborts the pass. The returned error has code RENDER_FAILED
// and wraps MISSING_PARENT or UNPLACED_NODE. Nodes and edges already emitted
// stay on the surface.
package layout
