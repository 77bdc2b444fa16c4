// Package pkg provides the libraries behind netgraph, an editor for small
// labelled network graphs.
//
// # Overview
//
// A netgraph graph is a set of named nodes, each with a palette colour, a
// shape and free-text notes, joined by annotated links. Links live on one
// endpoint but behave as undirected: there is at most one link between any
// two nodes, and it is found from either side. The pkg directory is organized
// into four areas:
//
//  1. [netgraph] - The graph model and its invariants
//  2. [history], [session] - Undoable editing
//  3. [io], [storage], [cache] - Serialization, persistence and caching
//  4. [render] - Diagrams via Graphviz
//
// # Architecture
//
// Every edit flows through a session:
//
//	edit command (CLI or interactive editor)
//	         ↓
//	    [session] Apply: snapshot for undo → mutate the [netgraph] store
//	         ↓
//	    [storage] save (JSON file or MongoDB)
//	         ↓
//	    [render] DOT → SVG/HTML/PNG/PDF, cached in [cache] (file or Redis)
//
// # Quick Start
//
// Build a graph and render it:
//
//	import (
//	    "github.com/matzehuels/netgraph/pkg/netgraph"
//	    "github.com/matzehuels/netgraph/pkg/render/nodelink"
//	)
//
//	s := netgraph.New()
//	_, _ = s.AddNode("Router", netgraph.Blue, netgraph.ShapeBox, "core")
//	_, _ = s.AddNode("Switch", netgraph.White, netgraph.ShapeDot, "")
//	_ = s.AddLink("Router", "Switch", "uplink")
//
//	dot := nodelink.ToDOT(s, nodelink.Options{})
//	svg, _ := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// Edit with undo, saving after every change:
//
//	backend, _ := storage.NewFileBackend("")
//	sess, _ := session.Open(ctx, backend, "graph.json", session.Options{})
//	_ = sess.AddNode(ctx, session.NodeSpec{Name: "Printer", LinkedFrom: "Switch"})
//	_, _ = sess.Undo(ctx)
//
// # Main Packages
//
// [netgraph] - The Store: nodes indexed by id and unique name, symmetric link
// lookup, cascading deletes. Every failed operation returns a typed error and
// leaves the store untouched.
//
// [history] - Bounded undo and redo stacks of serialized snapshots.
//
// [session] - Ties a store, its history, a storage backend and a renderer
// into one editing session.
//
// [io] - The versioned JSON document, plus importers for CSV tables and
// legacy pickled-JSON dumps.
//
// [storage] - Where graphs are saved: JSON files or one MongoDB document per
// graph.
//
// [cache] - Render artifact cache with file, Redis and no-op backends.
//
// [render] - Renders a store in several formats with caching.
// [render/nodelink] converts the store to Graphviz DOT and lays it out.
//
// [config] - The TOML configuration file.
//
// [errors] - Structured errors with machine-readable codes.
//
// [observability] - Hooks for edit, render and cache events.
//
// # Testing
//
// Run tests:
//
//	go test ./...                      # All tests
//	go test ./pkg/netgraph/...         # Specific package
//	go test -run Example ./pkg/...     # Examples only
//
// Redis and MongoDB tests run only when NETGRAPH_TEST_REDIS or
// NETGRAPH_TEST_MONGO name a reachable server.
//
// [netgraph]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/netgraph
// [history]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/history
// [session]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/session
// [io]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/io
// [storage]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/storage
// [cache]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/cache
// [render]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/render
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/render/nodelink
// [config]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/netgraph/pkg/observability
package pkg
