// Package render turns netgraph stores into viewable artifacts.
//
// # Overview
//
// A [Renderer] converts a store to Graphviz DOT, lays it out and writes one
// file per requested format next to a base path:
//
//   - dot: the Graphviz source
//   - svg: the laid-out diagram
//   - html: a standalone page embedding the SVG, for opening in a browser
//   - pdf, png: converted from the SVG with rsvg-convert
//
// Artifacts are cached by a hash of the serialized graph and the render
// options, so re-rendering an unchanged graph (for example after undoing an
// edit twice) costs a cache lookup.
//
//	r := render.NewRenderer(render.Options{
//	    Formats: []string{render.FormatSVG, render.FormatHTML},
//	    Output:  "graph",
//	}, cache.NewNullCache(), logger)
//	err := r.Render(ctx, store)  // writes graph.svg and graph.html
//
// The Renderer satisfies the session package's renderer interface, so an
// editing session re-renders after every change.
//
// # Format Conversion
//
// [Convert] turns any SVG into PDF or PNG using the external rsvg-convert
// tool from librsvg. Without it those two formats fail with UNSUPPORTED.
package render
