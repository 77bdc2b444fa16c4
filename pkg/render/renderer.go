package render

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/errors"
	graphio "github.com/matzehuels/netgraph/pkg/io"
	"github.com/matzehuels/netgraph/pkg/netgraph"
	"github.com/matzehuels/netgraph/pkg/observability"
	"github.com/matzehuels/netgraph/pkg/render/nodelink"
)

// Format constants for output formats.
const (
	FormatDOT  = "dot"
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// Formats returns the supported output formats.
func Formats() []string {
	return []string{FormatDOT, FormatSVG, FormatHTML, FormatPNG, FormatPDF}
}

// ValidateFormats checks that every format is supported.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if !slices.Contains(Formats(), f) {
			return errors.New(errors.ErrCodeInvalidInput, "invalid format: %q (must be one of: %s)",
				f, strings.Join(Formats(), ", "))
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list. An empty string yields
// the default format.
func ParseFormats(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return []string{FormatHTML}, nil
	}
	var formats []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(formats, f) {
			formats = append(formats, f)
		}
	}
	if err := ValidateFormats(formats); err != nil {
		return nil, err
	}
	return formats, nil
}

// Options configures a Renderer.
type Options struct {
	Engine     string   `json:"engine"`
	Formats    []string `json:"-"`
	Labels     bool     `json:"labels"`
	Background string   `json:"background"`
	Scale      float64  `json:"scale"` // PNG scale factor
	Title      string   `json:"title"` // HTML page title

	// Output is the base path artifacts are written to; the format is
	// appended as the extension. Empty means Render writes nothing.
	Output string `json:"-"`

	// TTL is the cache lifetime of rendered artifacts.
	TTL time.Duration `json:"-"`
}

// SetDefaults fills unset options.
func (o *Options) SetDefaults() {
	if o.Engine == "" {
		o.Engine = nodelink.EngineNeato
	}
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Background == "" {
		o.Background = nodelink.DefaultBackground
	}
	if o.Scale <= 0 {
		o.Scale = 2.0
	}
	if o.Title == "" {
		o.Title = "netgraph"
	}
	if o.TTL <= 0 {
		o.TTL = cache.DefaultTTL
	}
}

// Renderer renders stores with caching.
//
// The Renderer is stateless except for the cache and logger. It may be
// shared by several sessions.
type Renderer struct {
	Cache  cache.Cache
	Logger *log.Logger
	opts   Options
}

// NewRenderer creates a renderer. A nil cache disables caching and a nil
// logger uses the default logger.
func NewRenderer(opts Options, c cache.Cache, logger *log.Logger) *Renderer {
	opts.SetDefaults()
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Renderer{Cache: c, Logger: logger, opts: opts}
}

// Options returns the renderer's options with defaults applied.
func (r *Renderer) Options() Options { return r.opts }

// Render renders s in every configured format and writes the artifacts to
// the output base path. With no output path it only warms the cache.
func (r *Renderer) Render(ctx context.Context, s *netgraph.Store) error {
	artifacts, err := r.Artifacts(ctx, s)
	if err != nil {
		return err
	}
	if r.opts.Output == "" {
		return nil
	}
	for _, format := range r.opts.Formats {
		path := r.Path(format)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		r.Logger.Debug("wrote artifact", "path", path, "bytes", len(artifacts[format]))
	}
	return nil
}

// Path returns the file an artifact in format is written to.
func (r *Renderer) Path(format string) string {
	base := strings.TrimSuffix(r.opts.Output, filepath.Ext(r.opts.Output))
	if slices.Contains(Formats(), strings.TrimPrefix(filepath.Ext(r.opts.Output), ".")) {
		return base + "." + format
	}
	return r.opts.Output + "." + format
}

// Artifacts renders s in every configured format and returns the bytes keyed
// by format.
func (r *Renderer) Artifacts(ctx context.Context, s *netgraph.Store) (map[string][]byte, error) {
	if err := ValidateFormats(r.opts.Formats); err != nil {
		return nil, err
	}
	start := time.Now()
	observability.Render().OnRenderStart(ctx, r.opts.Formats)

	artifacts, hits, err := r.artifacts(ctx, s)
	observability.Render().OnRenderComplete(ctx, r.opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	r.Logger.Debug("rendered graph",
		"nodes", s.Len(),
		"formats", r.opts.Formats,
		"cached", hits,
		"duration", time.Since(start).Round(time.Millisecond))
	return artifacts, nil
}

func (r *Renderer) artifacts(ctx context.Context, s *netgraph.Store) (map[string][]byte, int, error) {
	snapshot, err := graphio.Marshal(s)
	if err != nil {
		return nil, 0, err
	}

	artifacts := make(map[string][]byte, len(r.opts.Formats))
	hits := 0
	var dot string
	var svg []byte

	for _, format := range r.opts.Formats {
		key := cache.RenderKey(snapshot, format, r.opts)
		if data, ok := r.cached(ctx, key); ok {
			artifacts[format] = data
			hits++
			continue
		}

		if dot == "" {
			dot = nodelink.ToDOT(s, nodelink.Options{Labels: r.opts.Labels, Background: r.opts.Background})
		}
		if svg == nil && format != FormatDOT {
			if svg, err = nodelink.RenderSVG(ctx, dot, r.opts.Engine); err != nil {
				return nil, 0, err
			}
		}

		var data []byte
		switch format {
		case FormatDOT:
			data = []byte(dot)
		case FormatSVG:
			data = svg
		case FormatHTML:
			data, err = ToHTML(svg, r.opts.Title, r.opts.Background)
		case FormatPDF, FormatPNG:
			data, err = Convert(ctx, svg, format, r.opts.Scale)
		}
		if err != nil {
			return nil, 0, err
		}

		artifacts[format] = data
		r.store(ctx, key, data)
	}
	return artifacts, hits, nil
}

// cached looks a key up, treating cache failures as misses.
func (r *Renderer) cached(ctx context.Context, key string) ([]byte, bool) {
	var data []byte
	var ok bool
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		data, ok, err = r.Cache.Get(ctx, key)
		return err
	})
	if err != nil {
		r.Logger.Warn("render cache unavailable", "err", err)
		return nil, false
	}
	if ok {
		observability.Cache().OnCacheHit(ctx, "render")
	} else {
		observability.Cache().OnCacheMiss(ctx, "render")
	}
	return data, ok
}

func (r *Renderer) store(ctx context.Context, key string, data []byte) {
	if err := r.Cache.Set(ctx, key, data, r.opts.TTL); err != nil {
		r.Logger.Warn("render cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "render", len(data))
}
