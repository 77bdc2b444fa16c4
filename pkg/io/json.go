package io

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Version is the schema version written by [Marshal].
const Version = 1

type document struct {
	Version int    `json:"version"`
	Nodes   []node `json:"nodes"`
}

type node struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Colour string `json:"colour"`
	Shape  string `json:"shape"`
	Notes  string `json:"notes"`
	Links  []link `json:"links"`
}

type link struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Marshal encodes a store as indented JSON. Nodes are sorted by name and
// links keep their insertion order, so equal stores encode to equal bytes.
func Marshal(s *netgraph.Store) ([]byte, error) {
	doc := document{Version: Version, Nodes: make([]node, 0, s.Len())}
	for _, n := range s.Nodes() {
		nd := node{
			ID:     n.ID,
			Name:   n.Name,
			Colour: string(n.Colour),
			Shape:  string(n.Shape),
			Notes:  n.Notes,
			Links:  make([]link, len(n.Links)),
		}
		for i, l := range n.Links {
			nd.Links[i] = link{To: l.To, Message: l.Message}
		}
		doc.Nodes = append(doc.Nodes, nd)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode graph")
	}
	return append(data, '\n'), nil
}

// Unmarshal decodes a document produced by [Marshal] into a new store.
//
// Fields missing from older documents take their defaults: version 1, empty
// notes, no links, colour White and shape dot. Unmarshal returns CORRUPT_DATA
// for malformed JSON, a version newer than [Version], or a graph that breaks
// a store invariant (duplicate names, dangling links, duplicate links).
func Unmarshal(data []byte, opts ...netgraph.Option) (*netgraph.Store, error) {
	var doc document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptData, err, "decode graph")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New(errors.ErrCodeCorruptData, "decode graph: trailing data after document")
	}
	if doc.Version == 0 {
		doc.Version = 1
	}
	if doc.Version > Version {
		return nil, errors.New(errors.ErrCodeCorruptData, "unsupported graph version %d (max %d)", doc.Version, Version)
	}
	if doc.Version < 0 {
		return nil, errors.New(errors.ErrCodeCorruptData, "invalid graph version %d", doc.Version)
	}

	s := netgraph.New(opts...)
	for _, nd := range doc.Nodes {
		n := &netgraph.Node{
			ID:     nd.ID,
			Name:   nd.Name,
			Colour: netgraph.Colour(nd.Colour),
			Shape:  netgraph.Shape(nd.Shape),
			Notes:  nd.Notes,
			Links:  make([]*netgraph.Link, len(nd.Links)),
		}
		if n.Colour == "" {
			n.Colour = netgraph.DefaultColour
		}
		if n.Shape == "" {
			n.Shape = netgraph.DefaultShape
		}
		for i, l := range nd.Links {
			n.Links[i] = &netgraph.Link{To: l.To, Message: l.Message}
		}
		if err := s.Insert(n); err != nil {
			return nil, errors.Wrap(errors.ErrCodeCorruptData, err, "node %q", nd.Name)
		}
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Write encodes s and writes it to w.
func Write(w io.Writer, s *netgraph.Store) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write graph")
	}
	return nil
}

// Read decodes a graph from r. Read does not close r.
func Read(r io.Reader, opts ...netgraph.Option) (*netgraph.Store, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read graph")
	}
	return Unmarshal(data, opts...)
}

// WriteFile writes s to path, replacing any existing file.
func WriteFile(path string, s *netgraph.Store) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write %s", path)
	}
	return nil
}

// ReadFile reads a graph from path. A missing file yields FILE_NOT_FOUND.
func ReadFile(path string, opts ...netgraph.Option) (*netgraph.Store, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	return Unmarshal(data, opts...)
}
