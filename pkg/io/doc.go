// Package io reads and writes commit graph model files.
//
// # Formats
//
// Models are stored as TOML or JSON. Both carry the same fields:
//
//	direction = "LR"          # or "BT"; defaults to LR
//
//	[options]                 # per-model config overrides
//	node_spacing = 120
//
//	[[commit]]
//	id = "a1"
//	seq = 0
//	message = "initial"
//
//	[[commit]]
//	id = "b2"
//	parents = ["a1"]          # seq omitted: file position is used
//
//	[[branch]]
//	name = "main"
//	commit = "b2"
//
// The JSON form uses "commits" and "branches" arrays with the same record
// fields.
//
// # Validation
//
// Readers reject malformed input with INVALID_FORMAT and bad records (empty
// or duplicate ids, invalid branch names) with INVALID_MODEL. Missing
// parents, cycles and dangling branch tips are left to [model.Validate] and
// the layout pass, which report them with their own codes.
//
// # Round trips
//
// [WriteJSON] and [WriteTOML] always emit an explicit seq for every commit
// and order commits by it, so export followed by import yields an
// equivalent model.
package io
