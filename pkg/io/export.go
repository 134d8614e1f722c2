package io

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitgraph/pkg/model"
)

// document is the on-disk shape of a model file. TOML uses the singular
// table names ([[commit]], [[branch]]); JSON uses the plural keys.
type document struct {
	Direction string         `json:"direction,omitempty" toml:"direction,omitempty"`
	Options   map[string]any `json:"options,omitempty" toml:"options,omitempty"`
	Commits   []commit       `json:"commits" toml:"commit"`
	Branches  []branch       `json:"branches" toml:"branch"`
}

type commit struct {
	ID      string   `json:"id" toml:"id"`
	Seq     *int     `json:"seq,omitempty" toml:"seq,omitempty"`
	Parents []string `json:"parents,omitempty" toml:"parents,omitempty"`
	Message string   `json:"message,omitempty" toml:"message,omitempty"`
}

type branch struct {
	Name   string `json:"name" toml:"name"`
	Commit string `json:"commit" toml:"commit"`
}

func toDocument(m model.Model) document {
	doc := document{
		Direction: m.Direction().String(),
		Options:   maps.Clone(m.Options()),
	}
	if len(doc.Options) == 0 {
		doc.Options = nil
	}
	for _, c := range model.SortedCommits(m.Commits()) {
		seq := c.Seq
		doc.Commits = append(doc.Commits, commit{ID: c.ID, Seq: &seq, Parents: c.Parents, Message: c.Message})
	}
	for _, b := range m.Branches() {
		doc.Branches = append(doc.Branches, branch{Name: b.Name, Commit: b.Commit})
	}
	return doc
}

// WriteJSON encodes a model as indented JSON. Commits are written in
// sequence order and branches in model order, so the output is stable and
// can be read back with [ReadJSON].
func WriteJSON(m model.Model, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toDocument(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteTOML encodes a model as TOML with [[commit]] and [[branch]] tables.
func WriteTOML(m model.Model, w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(toDocument(m)); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportFile writes a model to path, choosing the encoding by extension.
func ExportFile(m model.Model, path string) error {
	write := WriteJSON
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		write = WriteTOML
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
