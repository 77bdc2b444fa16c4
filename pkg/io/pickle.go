package io

import (
	"encoding/json"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Legacy .pjson documents are object dumps of the old editor. Two layouts
// exist: the id-keyed one (nodes carry an "id", links point at ids and a
// "_names_map" sits next to "_nodes") and the older name-keyed one (nodes are
// keyed by name, links point at names and no ids are stored).
type pickleGraph struct {
	Nodes map[string]pickleNode `json:"_nodes"`
	Names map[string]string     `json:"_names_map"`
}

type pickleNode struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Colour *string      `json:"colour"`
	Shape  *string      `json:"shape"`
	Notes  *string      `json:"notes"`
	Links  []pickleLink `json:"links"`
}

type pickleLink struct {
	To  string  `json:"_to"`
	Msg *string `json:"msg"`
}

// ImportPickle reads a legacy .pjson graph from r.
//
// Colours and shapes are matched case-insensitively; values outside the
// palette fall back to the defaults. Every imported node gets a fresh id.
// Links that repeat an already linked pair are dropped. The result is
// validated like [Unmarshal].
func ImportPickle(r io.Reader, opts ...netgraph.Option) (*netgraph.Store, error) {
	var pg pickleGraph
	if err := json.NewDecoder(r).Decode(&pg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeCorruptData, err, "decode legacy graph")
	}
	if pg.Nodes == nil {
		return nil, errors.New(errors.ErrCodeCorruptData, "legacy graph has no _nodes")
	}

	keys := make([]string, 0, len(pg.Nodes))
	for k := range pg.Nodes {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	idKeyed := pg.Names != nil
	for _, k := range keys {
		if pg.Nodes[k].ID == "" {
			idKeyed = false
			break
		}
	}

	s := netgraph.New(opts...)
	byKey := make(map[string]string, len(keys)) // document key -> node name
	for _, k := range keys {
		pn := pg.Nodes[k]
		name := pn.Name
		if name == "" {
			name = k
		}
		n, err := s.AddNode(name, pickleColour(pn.Colour), pickleShape(pn.Shape), deref(pn.Notes))
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeCorruptData, err, "legacy node %q", name)
		}
		byKey[k] = n.Name
	}

	for _, k := range keys {
		from := byKey[k]
		for _, pl := range pg.Nodes[k].Links {
			target := strings.TrimSpace(pl.To)
			to, ok := byKey[target]
			if !ok && !idKeyed {
				to, ok = target, s.Contains(target)
			}
			if !ok {
				return nil, errors.New(errors.ErrCodeCorruptData, "legacy node %q links to unknown node %q", from, target)
			}
			err := s.AddLink(from, to, deref(pl.Msg))
			if errors.Is(err, errors.ErrCodeDuplicateLink) {
				continue
			}
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeCorruptData, err, "legacy link %q -> %q", from, to)
			}
		}
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func pickleColour(v *string) netgraph.Colour {
	if c, err := netgraph.ParseColour(deref(v)); err == nil {
		return c
	}
	return netgraph.DefaultColour
}

func pickleShape(v *string) netgraph.Shape {
	if sh, err := netgraph.ParseShape(deref(v)); err == nil {
		return sh
	}
	return netgraph.DefaultShape
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
