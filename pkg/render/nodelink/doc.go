// Package nodelink renders netgraph stores as node-link diagrams.
//
// # Overview
//
// Nodes are drawn with their palette colour and shape, links as undirected
// edges. Hovering a node shows its name and notes; hovering an edge shows the
// link message.
//
// # Usage
//
// Convert a store to DOT format, then render to SVG:
//
//	dot := nodelink.ToDOT(store, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot, nodelink.EngineNeato)
//
// PDF and PNG output is produced from the SVG by the render package.
//
// # Layout
//
// Graphviz places the nodes. The engine is chosen per render; neato (the
// default) and fdp suit the sparse, undirected maps netgraph is used for,
// dot gives a layered drawing.
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process SVG
// rendering.
package nodelink
