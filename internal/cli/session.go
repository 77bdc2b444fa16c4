package cli

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/cache"
	"github.com/matzehuels/netgraph/pkg/render"
	"github.com/matzehuels/netgraph/pkg/session"
	"github.com/matzehuels/netgraph/pkg/storage"
)

// =============================================================================
// Backends
// =============================================================================

// graphName is the --file path without directory or extension. Backends
// that are not file based store the graph under this name.
func (c *CLI) graphName() string {
	base := filepath.Base(c.graphFile)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// newBackend opens the configured storage backend and returns the name the
// graph is stored under in it.
func (c *CLI) newBackend(ctx context.Context) (storage.Backend, string, error) {
	switch c.cfg.Storage.Backend {
	case "mongo":
		b, err := storage.NewMongoBackend(ctx, storage.MongoOptions{
			URI:        c.cfg.Storage.MongoURI,
			Database:   c.cfg.Storage.MongoDatabase,
			Collection: c.cfg.Storage.MongoCollection,
		})
		if err != nil {
			return nil, "", err
		}
		c.Logger.Debug("using mongo storage", "database", c.cfg.Storage.MongoDatabase, "graph", c.graphName())
		return b, c.graphName(), nil
	default:
		b, err := storage.NewFileBackend("")
		if err != nil {
			return nil, "", err
		}
		return b, c.graphFile, nil
	}
}

// newCache opens the configured render cache. An unreachable Redis server
// disables caching rather than failing the command.
func (c *CLI) newCache(ctx context.Context) cache.Cache {
	switch c.cfg.Cache.Backend {
	case "none":
		return cache.NewNullCache()
	case "redis":
		rc, err := cache.NewRedisCache(ctx, cache.RedisOptions{Addr: c.cfg.Cache.RedisAddr})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "err", err)
			return cache.NewNullCache()
		}
		return rc
	default:
		dir, err := cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			c.Logger.Warn("file cache unavailable", "dir", dir, "err", err)
			return cache.NewNullCache()
		}
		return fc
	}
}

// =============================================================================
// Rendering
// =============================================================================

// renderOptions builds renderer options from the config. Artifacts are
// written next to the graph file.
func (c *CLI) renderOptions() render.Options {
	return render.Options{
		Engine:     c.cfg.Render.Engine,
		Formats:    c.cfg.Render.Formats,
		Labels:     c.cfg.Render.Labels,
		Background: c.cfg.Render.Background,
		Title:      c.graphName(),
		Output:     strings.TrimSuffix(c.graphFile, filepath.Ext(c.graphFile)),
		TTL:        c.cfg.Cache.TTL(),
	}
}

// =============================================================================
// Sessions
// =============================================================================

// openSession opens the --file graph with the configured backend, cache and
// renderer. With --no-render the session never draws the graph. The returned
// func releases the backend and cache.
func (c *CLI) openSession(ctx context.Context) (*session.Session, func(), error) {
	return c.openSessionWithLogger(ctx, c.Logger)
}

func (c *CLI) openSessionWithLogger(ctx context.Context, logger *log.Logger) (*session.Session, func(), error) {
	backend, name, err := c.newBackend(ctx)
	if err != nil {
		return nil, nil, err
	}

	opts := session.Options{
		HistoryLimit: c.cfg.History.Limit,
		Logger:       logger,
	}
	closeAll := func() { _ = backend.Close() }

	if !c.noRender {
		rc := c.newCache(ctx)
		opts.Renderer = render.NewRenderer(c.renderOptions(), rc, logger)
		closeAll = func() {
			_ = rc.Close()
			_ = backend.Close()
		}
	}

	s, err := session.Open(ctx, backend, name, opts)
	if err != nil {
		closeAll()
		return nil, nil, err
	}
	return s, closeAll, nil
}
