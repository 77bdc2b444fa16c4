package netgraph

import (
	"slices"
	"strings"
)

// Link is a directed pointer from the node that holds it to another node,
// plus a free-text annotation.
//
// To is a lookup key into the owning [Store], not ownership. For lookup and
// removal purposes a link is undirected: see [Store.LookupLink].
type Link struct {
	To      string // Target node ID
	Message string // Annotation shown as the edge tooltip
}

// Node is a labelled vertex with display attributes and outgoing links.
//
// Nodes are created by [Store.AddNode] and owned by the store. Callers may
// read any field but must mutate names, styling and links through the store
// so that its indices stay consistent.
type Node struct {
	ID     string // Assigned at creation, never reused
	Name   string // Unique display name (trimmed, non-empty)
	Colour Colour
	Shape  Shape
	Notes  string
	Links  []*Link // Outgoing links in insertion order
}

// Link returns the first outgoing link targeting id, or nil.
func (n *Node) Link(id string) *Link {
	for _, l := range n.Links {
		if l.To == id {
			return l
		}
	}
	return nil
}

// Valid reports whether the node satisfies the per-node invariants: a non-empty
// id and trimmed non-empty name, and colour and shape from their fixed sets.
func (n *Node) Valid() bool {
	return n.ID != "" &&
		n.Name != "" && n.Name == strings.TrimSpace(n.Name) &&
		n.Colour.Valid() && n.Shape.Valid()
}

func (n *Node) addLink(l *Link) {
	n.Links = append(n.Links, l)
}

// removeLinks strips every outgoing link targeting id and reports how many
// were removed.
func (n *Node) removeLinks(id string) int {
	before := len(n.Links)
	n.Links = slices.DeleteFunc(n.Links, func(l *Link) bool { return l.To == id })
	return before - len(n.Links)
}
