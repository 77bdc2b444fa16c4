// Package history records graph snapshots for undo and redo.
//
// A [History] holds two stacks of serialized stores. Before every mutation the
// caller records the current state on the undo stack and, once the mutation
// succeeded, clears the redo stack:
//
//	if err := h.RecordUndo(store); err != nil { ... }
//	if err := mutate(store); err != nil {
//	    h.DropUndo()
//	    return err
//	}
//	h.ClearRedos()
//
// Undo pushes the current state onto the redo stack and returns the previous
// snapshot; Redo does the reverse. The returned store is a new value, callers
// install it into their live store with [netgraph.Store.SetNodes].
//
// Snapshots are full copies in the [graphio] format, so memory grows with
// graph size times depth. The depth is bounded by [WithLimit].
package history

import (
	"github.com/matzehuels/netgraph/pkg/errors"
	graphio "github.com/matzehuels/netgraph/pkg/io"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// DefaultLimit is the number of snapshots kept per stack.
const DefaultLimit = 100

// History is a pair of snapshot stacks. The zero value is not usable; use [New].
type History struct {
	undos [][]byte
	redos [][]byte
	limit int
}

// Option configures a History.
type Option func(*History)

// WithLimit bounds each stack to n snapshots, evicting the oldest. n <= 0
// disables the bound.
func WithLimit(n int) Option {
	return func(h *History) { h.limit = n }
}

// New creates an empty History.
func New(opts ...Option) *History {
	h := &History{limit: DefaultLimit}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// RecordUndo pushes a snapshot of s onto the undo stack.
func (h *History) RecordUndo(s *netgraph.Store) error {
	snap, err := snapshot(s)
	if err != nil {
		return err
	}
	h.undos = h.push(h.undos, snap)
	return nil
}

// RecordRedo pushes a snapshot of s onto the redo stack.
func (h *History) RecordRedo(s *netgraph.Store) error {
	snap, err := snapshot(s)
	if err != nil {
		return err
	}
	h.redos = h.push(h.redos, snap)
	return nil
}

// Undo records current on the redo stack and returns the most recent undo
// snapshot. It returns nil, nil when there is nothing to undo, leaving both
// stacks untouched.
func (h *History) Undo(current *netgraph.Store) (*netgraph.Store, error) {
	if len(h.undos) == 0 {
		return nil, nil
	}
	prev, err := graphio.Unmarshal(h.undos[len(h.undos)-1])
	if err != nil {
		return nil, err
	}
	if err := h.RecordRedo(current); err != nil {
		return nil, err
	}
	h.undos = h.undos[:len(h.undos)-1]
	return prev, nil
}

// Redo records current on the undo stack and returns the most recent redo
// snapshot. It returns nil, nil when there is nothing to redo.
func (h *History) Redo(current *netgraph.Store) (*netgraph.Store, error) {
	if len(h.redos) == 0 {
		return nil, nil
	}
	next, err := graphio.Unmarshal(h.redos[len(h.redos)-1])
	if err != nil {
		return nil, err
	}
	if err := h.RecordUndo(current); err != nil {
		return nil, err
	}
	h.redos = h.redos[:len(h.redos)-1]
	return next, nil
}

// ClearRedos empties the redo stack. Call it after every new mutation.
func (h *History) ClearRedos() { h.redos = nil }

// DropUndo discards the most recent undo snapshot. It undoes a RecordUndo
// whose mutation failed.
func (h *History) DropUndo() {
	if len(h.undos) > 0 {
		h.undos = h.undos[:len(h.undos)-1]
	}
}

// Restore pops the most recent undo snapshot and returns it without touching
// the redo stack. It rolls back a mutation that failed part way through.
// It returns nil, nil when the undo stack is empty.
func (h *History) Restore() (*netgraph.Store, error) {
	if len(h.undos) == 0 {
		return nil, nil
	}
	prev, err := graphio.Unmarshal(h.undos[len(h.undos)-1])
	if err != nil {
		return nil, err
	}
	h.undos = h.undos[:len(h.undos)-1]
	return prev, nil
}

// Clear empties both stacks.
func (h *History) Clear() {
	h.undos = nil
	h.redos = nil
}

// CanUndo reports whether Undo would return a snapshot.
func (h *History) CanUndo() bool { return len(h.undos) > 0 }

// CanRedo reports whether Redo would return a snapshot.
func (h *History) CanRedo() bool { return len(h.redos) > 0 }

// Len returns the depth of the undo and redo stacks.
func (h *History) Len() (undos, redos int) { return len(h.undos), len(h.redos) }

func (h *History) push(stack [][]byte, snap []byte) [][]byte {
	stack = append(stack, snap)
	if h.limit > 0 && len(stack) > h.limit {
		stack = append(stack[:0:0], stack[len(stack)-h.limit:]...)
	}
	return stack
}

func snapshot(s *netgraph.Store) ([]byte, error) {
	data, err := graphio.Marshal(s)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "snapshot store")
	}
	return data, nil
}
