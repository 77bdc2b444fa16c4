package render

import (
	"context"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// memCache is an in-memory cache.Cache that counts lookups.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	hits   int
	misses int
}

func newMemCache() *memCache { return &memCache{data: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

func (c *memCache) Close() error { return nil }

var _ cache.Cache = (*memCache)(nil)

func sampleStore(t *testing.T) *netgraph.Store {
	t.Helper()
	s := netgraph.New()
	if _, err := s.AddNode("A", netgraph.White, netgraph.ShapeDot, "start"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.AddNode("B", netgraph.Red, netgraph.ShapeBox, ""); err != nil {
		t.Fatal(err)
	}
	if err := s.AddLink("A", "B", "path"); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		input   string
		want    []string
		wantErr bool
	}{
		{"", []string{FormatHTML}, false},
		{"svg", []string{FormatSVG}, false},
		{"svg, PNG,svg", []string{FormatSVG, FormatPNG}, false},
		{"dot,html", []string{FormatDOT, FormatHTML}, false},
		{"svg,gif", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormats(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormats(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("error code = %s, want INVALID_INPUT", errors.GetCode(err))
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("ParseFormats(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRendererPath(t *testing.T) {
	tests := []struct {
		output string
		format string
		want   string
	}{
		{"graph", "svg", "graph.svg"},
		{"out/graph.html", "svg", "out/graph.svg"},
		{"my.graph", "html", "my.graph.html"},
	}
	for _, tt := range tests {
		r := NewRenderer(Options{Output: tt.output}, nil, nil)
		if got := r.Path(tt.format); got != tt.want {
			t.Errorf("Path(%q) with output %q = %q, want %q", tt.format, tt.output, got, tt.want)
		}
	}
}

func TestRendererDefaults(t *testing.T) {
	opts := NewRenderer(Options{}, nil, nil).Options()
	if opts.Engine != "neato" || !slices.Equal(opts.Formats, []string{FormatHTML}) {
		t.Errorf("defaults = %+v", opts)
	}
	if opts.Background != "#222222" || opts.Scale != 2.0 || opts.TTL != cache.DefaultTTL {
		t.Errorf("defaults = %+v", opts)
	}
}

func TestRendererArtifacts(t *testing.T) {
	ctx := context.Background()
	c := newMemCache()
	r := NewRenderer(Options{Formats: []string{FormatDOT, FormatSVG, FormatHTML}}, c, nil)
	s := sampleStore(t)

	artifacts, err := r.Artifacts(ctx, s)
	if err != nil {
		t.Fatalf("Artifacts: %v", err)
	}
	if !strings.HasPrefix(string(artifacts[FormatDOT]), "graph G {") {
		t.Errorf("dot artifact = %q", artifacts[FormatDOT])
	}
	if !strings.Contains(string(artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact missing <svg>")
	}
	html := string(artifacts[FormatHTML])
	if !strings.HasPrefix(html, "<!DOCTYPE html>") || !strings.Contains(html, "<svg") {
		t.Error("html artifact should embed the svg")
	}
	if c.misses != 3 || len(c.data) != 3 {
		t.Errorf("first render: misses=%d entries=%d, want 3/3", c.misses, len(c.data))
	}

	// Unchanged graph is served from the cache.
	if _, err := r.Artifacts(ctx, s); err != nil {
		t.Fatal(err)
	}
	if c.hits != 3 {
		t.Errorf("second render: hits=%d, want 3", c.hits)
	}

	// Any edit changes the keys.
	if err := s.EditLink("A", "B", "other"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Artifacts(ctx, s); err != nil {
		t.Fatal(err)
	}
	if c.misses != 6 {
		t.Errorf("after edit: misses=%d, want 6", c.misses)
	}
}

func TestRendererRenderWritesFiles(t *testing.T) {
	out := filepath.Join(t.TempDir(), "site", "graph")
	r := NewRenderer(Options{Formats: []string{FormatSVG, FormatHTML}, Output: out}, nil, nil)

	if err := r.Render(context.Background(), sampleStore(t)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	for _, ext := range []string{".svg", ".html"} {
		data, err := os.ReadFile(out + ext)
		if err != nil {
			t.Errorf("missing %s: %v", ext, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("%s is empty", ext)
		}
	}
}

func TestRendererInvalidFormat(t *testing.T) {
	r := NewRenderer(Options{Formats: []string{"gif"}}, nil, nil)
	_, err := r.Artifacts(context.Background(), sampleStore(t))
	if !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want INVALID_INPUT", err)
	}
}

func TestToHTML(t *testing.T) {
	svg := []byte(`<?xml version="1.0"?>` + "\n" + `<!DOCTYPE svg><svg><title>x</title></svg>`)
	page, err := ToHTML(svg, "Map <1>", "#222222")
	if err != nil {
		t.Fatal(err)
	}
	text := string(page)
	if strings.Contains(text, "<?xml") || strings.Contains(text, "<!DOCTYPE svg") {
		t.Error("XML header should be stripped")
	}
	if !strings.Contains(text, "<svg><title>x</title></svg>") {
		t.Error("svg should be embedded unescaped")
	}
	if !strings.Contains(text, "<title>Map &lt;1&gt;</title>") {
		t.Error("title should be escaped")
	}
	if !strings.Contains(text, "background: #222222") {
		t.Error("background missing")
	}
}

func TestConvertUnsupported(t *testing.T) {
	_, err := Convert(context.Background(), []byte("<svg/>"), FormatHTML, 1)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert(html) error = %v, want UNSUPPORTED", err)
	}
}

func TestConvertWithoutRsvg(t *testing.T) {
	defer func(b string) { rsvgBinary = b }(rsvgBinary)
	rsvgBinary = "netgraph-no-such-converter"

	_, err := Convert(context.Background(), []byte("<svg/>"), FormatPNG, 2)
	if !errors.Is(err, errors.ErrCodeUnsupported) {
		t.Errorf("Convert(png) error = %v, want UNSUPPORTED", err)
	}
}
