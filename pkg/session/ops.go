package session

import (
	"context"

	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// NodeSpec describes a node to create.
type NodeSpec struct {
	Name   string
	Colour netgraph.Colour
	Shape  netgraph.Shape
	Notes  string

	// LinkedFrom names an existing node to link to the new one, with
	// Message as the link message. The node is created and linked in one
	// undoable edit.
	LinkedFrom string
	Message    string
}

// AddNode creates a node. An empty colour or shape takes the package default.
// When spec.LinkedFrom is set, that node must exist; it is checked before
// anything is created.
func (s *Session) AddNode(ctx context.Context, spec NodeSpec) error {
	if spec.Colour == "" {
		spec.Colour = netgraph.DefaultColour
	}
	if spec.Shape == "" {
		spec.Shape = netgraph.DefaultShape
	}
	return s.Apply(ctx, "add node", func(g *netgraph.Store) error {
		if spec.LinkedFrom != "" {
			if _, err := g.Node(spec.LinkedFrom); err != nil {
				return err
			}
		}
		n, err := g.AddNode(spec.Name, spec.Colour, spec.Shape, spec.Notes)
		if err != nil {
			return err
		}
		if spec.LinkedFrom != "" {
			return g.AddLink(spec.LinkedFrom, n.Name, spec.Message)
		}
		return nil
	})
}

// RenameNode renames a node.
func (s *Session) RenameNode(ctx context.Context, oldName, newName string) error {
	return s.Apply(ctx, "rename node", func(g *netgraph.Store) error {
		return g.RenameNode(oldName, newName)
	})
}

// EditNode replaces a node's colour, shape and notes.
func (s *Session) EditNode(ctx context.Context, name string, colour netgraph.Colour, shape netgraph.Shape, notes string) error {
	return s.Apply(ctx, "edit node", func(g *netgraph.Store) error {
		return g.EditNode(name, colour, shape, notes)
	})
}

// DeleteNode deletes a node and every link touching it.
func (s *Session) DeleteNode(ctx context.Context, name string) error {
	return s.Apply(ctx, "delete node", func(g *netgraph.Store) error {
		return g.DeleteNode(name)
	})
}

// AddLink links two nodes.
func (s *Session) AddLink(ctx context.Context, from, to, message string) error {
	return s.Apply(ctx, "add link", func(g *netgraph.Store) error {
		return g.AddLink(from, to, message)
	})
}

// EditLink replaces the message of the link between a and b.
func (s *Session) EditLink(ctx context.Context, a, b, message string) error {
	return s.Apply(ctx, "edit link", func(g *netgraph.Store) error {
		return g.EditLink(a, b, message)
	})
}

// RemoveLink removes the link between a and b in either direction.
func (s *Session) RemoveLink(ctx context.Context, a, b string) error {
	return s.Apply(ctx, "remove link", func(g *netgraph.Store) error {
		return g.RemoveLink(a, b)
	})
}

// SetGraph replaces the whole graph, as one undoable edit. Importers use it
// to load data into an open session.
func (s *Session) SetGraph(ctx context.Context, other *netgraph.Store) error {
	return s.Apply(ctx, "replace graph", func(g *netgraph.Store) error {
		g.SetNodes(other)
		return nil
	})
}
