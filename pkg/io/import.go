package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/gitgraph/pkg/errors"
	"github.com/matzehuels/gitgraph/pkg/model"
)

// ReadJSON decodes a JSON model from r. Unknown fields are rejected.
//
// The returned graph is not validated beyond per-record checks (ids, branch
// names, duplicates); call [model.Validate] for graph-level problems. ReadJSON
// does not close r.
func ReadJSON(r io.Reader) (*model.Graph, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode json model")
	}
	return doc.graph()
}

// ReadTOML decodes a TOML model from r. Keys outside the schema are
// rejected, except under [options] which is passed through as-is.
func ReadTOML(r io.Reader) (*model.Graph, error) {
	var doc document
	md, err := toml.NewDecoder(r).Decode(&doc)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode toml model")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unknown key %q in model", undecoded[0].String())
	}
	return doc.graph()
}

// Read decodes a model in the given format ("toml" or "json").
func Read(r io.Reader, format string) (*model.Graph, error) {
	switch strings.ToLower(strings.TrimPrefix(format, ".")) {
	case "toml":
		return ReadTOML(r)
	case "json":
		return ReadJSON(r)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported model format %q", format)
	}
}

// ImportFile reads the model file at path. The decoder is picked by file
// extension.
func ImportFile(path string) (*model.Graph, error) {
	if err := errors.ValidateModelFilename(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.New(errors.ErrCodeFileNotFound, "model file %s not found", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := Read(bytes.NewReader(data), filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return g, nil
}

func (d document) graph() (*model.Graph, error) {
	dir, err := model.ParseDirection(d.Direction)
	if err != nil {
		return nil, err
	}
	g := model.NewGraph(dir)
	for k, v := range d.Options {
		g.SetOption(k, v)
	}
	for i, c := range d.Commits {
		seq := i
		if c.Seq != nil {
			seq = *c.Seq
		}
		if seq < 0 {
			return nil, errors.New(errors.ErrCodeInvalidModel, "commit %s has negative seq %d", c.ID, seq)
		}
		if err := g.AddCommit(model.Commit{ID: c.ID, Seq: seq, Parents: c.Parents, Message: c.Message}); err != nil {
			return nil, fmt.Errorf("commit %d: %w", i, err)
		}
	}
	for _, b := range d.Branches {
		if err := g.AddBranch(model.Branch{Name: b.Name, Commit: b.Commit}); err != nil {
			return nil, fmt.Errorf("branch %s: %w", b.Name, err)
		}
	}
	return g, nil
}
