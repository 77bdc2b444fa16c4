// Package session runs editing sessions over a netgraph store.
//
// A [Session] owns the live store, its undo history and the places the graph
// goes after every change: a storage backend and an optional renderer. Every
// edit runs the same explicit sequence:
//
//  1. record the current state for undo
//  2. apply the mutation
//  3. on failure, restore the recorded state and return the error
//  4. clear the redo stack
//  5. save the graph
//  6. re-render it
//
// Undo and redo install the previous or next snapshot into the live store,
// then save and re-render.
//
// A Session is not safe for concurrent use.
package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/netgraph/pkg/history"
	"github.com/matzehuels/netgraph/pkg/netgraph"
	"github.com/matzehuels/netgraph/pkg/observability"
	"github.com/matzehuels/netgraph/pkg/storage"
)

// Renderer draws the graph after every change.
type Renderer interface {
	Render(ctx context.Context, s *netgraph.Store) error
}

// Options configures a Session. The zero value gives an unsaved, unrendered
// session with the default history depth.
type Options struct {
	// Backend and Name say where the graph is saved. A nil Backend disables
	// saving.
	Backend storage.Backend
	Name    string

	Renderer Renderer

	// HistoryLimit bounds the undo and redo stacks. Zero means
	// history.DefaultLimit.
	HistoryLimit int

	Logger *log.Logger
}

// Session is an editing session over one graph.
type Session struct {
	Store   *netgraph.Store
	History *history.History

	backend  storage.Backend
	name     string
	renderer Renderer
	logger   *log.Logger
}

// New starts a session over store.
func New(store *netgraph.Store, opts Options) *Session {
	limit := opts.HistoryLimit
	if limit == 0 {
		limit = history.DefaultLimit
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Session{
		Store:    store,
		History:  history.New(history.WithLimit(limit)),
		backend:  opts.Backend,
		name:     opts.Name,
		renderer: opts.Renderer,
		logger:   logger,
	}
}

// Open loads the graph called name from backend and starts a session over
// it. A graph that does not exist yet starts empty and is created by the
// first save.
func Open(ctx context.Context, backend storage.Backend, name string, opts Options) (*Session, error) {
	opts.Backend = backend
	opts.Name = name

	store, err := backend.Load(ctx, name)
	if storage.IsNotFound(err) {
		store = netgraph.New()
		err = nil
	}
	if err != nil {
		return nil, err
	}
	s := New(store, opts)
	s.logger.Debug("opened graph", "name", name, "nodes", store.Len())
	return s, nil
}

// Name returns the name the graph is saved under.
func (s *Session) Name() string { return s.name }

// Apply runs mutate as one undoable edit. If mutate fails, the store is
// restored to its state before the call and the error is returned; the
// history is unchanged.
//
// After a successful mutation the graph is saved and rendered. A save
// failure is returned (the edit itself stays applied and undoable); render
// failures are logged.
func (s *Session) Apply(ctx context.Context, op string, mutate func(*netgraph.Store) error) error {
	start := time.Now()
	if err := s.History.RecordUndo(s.Store); err != nil {
		return err
	}

	if err := mutate(s.Store); err != nil {
		if prev, rerr := s.History.Restore(); rerr == nil && prev != nil {
			s.Store.SetNodes(prev)
		}
		observability.Editor().OnMutation(ctx, op, time.Since(start), err)
		return err
	}
	s.History.ClearRedos()
	observability.Editor().OnMutation(ctx, op, time.Since(start), nil)
	s.logger.Info("applied", "op", op, "nodes", s.Store.Len())

	return s.commit(ctx)
}

// Undo reverts the most recent edit. It reports false when there was nothing
// to undo.
func (s *Session) Undo(ctx context.Context) (bool, error) {
	prev, err := s.History.Undo(s.Store)
	observability.Editor().OnUndo(ctx, prev != nil, err)
	if err != nil || prev == nil {
		return false, err
	}
	s.Store.SetNodes(prev)
	s.logger.Debug("undo", "nodes", s.Store.Len())
	return true, s.commit(ctx)
}

// Redo re-applies the most recently undone edit. It reports false when there
// was nothing to redo.
func (s *Session) Redo(ctx context.Context) (bool, error) {
	next, err := s.History.Redo(s.Store)
	observability.Editor().OnRedo(ctx, next != nil, err)
	if err != nil || next == nil {
		return false, err
	}
	s.Store.SetNodes(next)
	s.logger.Debug("redo", "nodes", s.Store.Len())
	return true, s.commit(ctx)
}

// Save writes the graph to the backend. It does nothing without one.
func (s *Session) Save(ctx context.Context) error {
	if s.backend == nil {
		return nil
	}
	start := time.Now()
	err := s.backend.Save(ctx, s.name, s.Store)
	observability.Editor().OnSave(ctx, s.Store.Len(), time.Since(start), err)
	if err != nil {
		return err
	}
	s.logger.Debug("saved graph", "name", s.name, "nodes", s.Store.Len())
	return nil
}

// Render draws the graph with the session's renderer, if any.
func (s *Session) Render(ctx context.Context) error {
	if s.renderer == nil {
		return nil
	}
	return s.renderer.Render(ctx, s.Store)
}

func (s *Session) commit(ctx context.Context) error {
	if err := s.Save(ctx); err != nil {
		return err
	}
	if err := s.Render(ctx); err != nil {
		s.logger.Warn("render failed", "err", err)
	}
	return nil
}
