package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Layout engines accepted by [RenderSVG].
const (
	EngineDot   = "dot"
	EngineNeato = "neato"
	EngineFDP   = "fdp"
	EngineCirco = "circo"
	EngineTwopi = "twopi"
	EngineSFDP  = "sfdp"
)

// DefaultBackground is the canvas colour of rendered diagrams.
const DefaultBackground = "#222222"

// Engines returns the supported layout engines.
func Engines() []string {
	return []string{EngineDot, EngineNeato, EngineFDP, EngineCirco, EngineTwopi, EngineSFDP}
}

// Options configures node-link diagram rendering.
type Options struct {
	// Labels draws link messages on the edges. Messages are always available
	// as edge tooltips.
	Labels bool

	// Background is the canvas colour. Empty means [DefaultBackground].
	Background string
}

var shapes = map[netgraph.Shape]string{
	netgraph.ShapeDot:          "circle",
	netgraph.ShapeCircle:       "circle",
	netgraph.ShapeEllipse:      "ellipse",
	netgraph.ShapeTriangle:     "triangle",
	netgraph.ShapeTriangleDown: "invtriangle",
	netgraph.ShapeSquare:       "square",
	netgraph.ShapeBox:          "box",
	netgraph.ShapeDiamond:      "diamond",
	netgraph.ShapeStar:         "star",
	netgraph.ShapeDatabase:     "cylinder",
}

// ToDOT converts a store to Graphviz DOT format. Nodes are emitted sorted by
// name and links as undirected edges, so equal stores give equal output.
// The result can be rendered with [RenderSVG].
func ToDOT(s *netgraph.Store, opts Options) string {
	bg := opts.Background
	if bg == "" {
		bg = DefaultBackground
	}

	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  bgcolor=%q;\n", bg)
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [style=filled, fontname=\"Helvetica\", fontsize=14, fontcolor=black, color=\"#888888\"];\n")
	buf.WriteString("  edge [color=\"#97c2fc\", fontname=\"Helvetica\", fontsize=11, fontcolor=white];\n")
	buf.WriteString("\n")

	for _, n := range s.Nodes() {
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n), ", "))
	}

	buf.WriteString("\n")
	for _, n := range s.Nodes() {
		for _, l := range n.Links {
			if _, err := s.NodeByID(l.To); err != nil {
				continue
			}
			fmt.Fprintf(&buf, "  %q -- %q [%s];\n", n.ID, l.To, strings.Join(fmtEdgeAttrs(l, opts.Labels), ", "))
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *netgraph.Node) []string {
	attrs := []string{
		fmt.Sprintf("shape=%s", shapes[n.Shape]),
		fmt.Sprintf("fillcolor=%q", n.Colour.Hex()),
		fmt.Sprintf("tooltip=%q", fmtTooltip(n)),
	}
	if n.Shape == netgraph.ShapeDot {
		attrs = append(attrs, `label=""`, fmt.Sprintf("xlabel=%q", n.Name), "fixedsize=true", "width=0.3", "fontcolor=white")
	} else {
		attrs = append(attrs, fmt.Sprintf("label=%q", n.Name))
		if n.Colour.Dark() {
			attrs = append(attrs, "fontcolor=white")
		}
	}
	return attrs
}

func fmtTooltip(n *netgraph.Node) string {
	if n.Notes == "" {
		return n.Name
	}
	return n.Name + "\n" + n.Notes
}

func fmtEdgeAttrs(l *netgraph.Link, labels bool) []string {
	attrs := []string{fmt.Sprintf("tooltip=%q", l.Message)}
	if labels && l.Message != "" {
		attrs = append(attrs, fmt.Sprintf("label=%q", l.Message))
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz with the given layout
// engine. An empty engine means neato.
func RenderSVG(ctx context.Context, dot, engine string) ([]byte, error) {
	if engine == "" {
		engine = EngineNeato
	}
	if !validEngine(engine) {
		return nil, errors.New(errors.ErrCodeUnsupported, "unknown layout engine %q", engine)
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(engine))

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

func validEngine(engine string) bool {
	for _, e := range Engines() {
		if e == engine {
			return true
		}
	}
	return false
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
