// Package netgraph provides the labelled graph model edited by netgraph.
//
// # Overview
//
// A [Store] owns a set of [Node] values. Each node has a stable id, a unique
// display name, a colour from a fixed palette, a shape from a fixed set, free
// text notes and an ordered list of outgoing [Link] values. A link points at
// another node's id and carries a message.
//
// # Symmetric links
//
// Links are stored on one endpoint but treated as undirected for lookup,
// duplicate detection and removal: the link "between A and B" is found
// whether it lives on A pointing at B or on B pointing at A, and at most one
// such link may exist. Lookups probe A→B before B→A.
//
// # Invariants
//
// After every successful operation:
//
//   - every name-index entry maps to a node whose current name is that key
//   - every node has exactly one name-index entry
//   - names are unique (case-sensitive, after trimming)
//   - every link targets a node that exists; DeleteNode cascades link removal
//   - at most one link exists between any unordered pair of nodes
//
// Failed operations return a typed error from package errors and leave the
// store unchanged. [Store.Validate] re-checks the invariants and is used
// after loading a serialized graph.
//
// # Usage
//
//	s := netgraph.New()
//	_, _ = s.AddNode("A", netgraph.White, netgraph.ShapeDot, "")
//	_, _ = s.AddNode("B", netgraph.Red, netgraph.ShapeBox, "")
//	_ = s.AddLink("A", "B", "path")
//	l, _ := s.Link("B", "A") // same link, found from the other side
//
// # Concurrency
//
// The model is single-user: a Store is not safe for concurrent use. Callers
// that share one must guard every operation with a single mutex.
package netgraph
