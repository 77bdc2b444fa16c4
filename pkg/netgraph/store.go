package netgraph

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/matzehuels/netgraph/pkg/errors"
)

// Edge is a link resolved to display names, as consumed by renderers.
type Edge struct {
	From    string
	To      string
	Message string
}

// Store is the authoritative collection of nodes. It indexes nodes by id and
// by unique display name and executes every mutating operation.
//
// Every method either succeeds and leaves all invariants intact, or returns a
// typed error from [errors] before touching any state.
//
// The zero value is not usable - use [New] to create a Store.
// Store is not safe for concurrent use without external synchronization:
// the two-index updates in AddNode, RenameNode and DeleteNode are not atomic
// across both maps.
type Store struct {
	nodes map[string]*Node  // id -> node
	names map[string]string // name -> id
	newID func() string
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the UUID generator used by AddNode. Generated ids
// must be unique for the lifetime of the store.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.newID = fn }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		nodes: make(map[string]*Node),
		names: make(map[string]string),
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Len returns the number of nodes.
func (s *Store) Len() int { return len(s.nodes) }

// AddNode creates a node and inserts it into both indices.
//
// The name and notes are trimmed. Returns a VALIDATION error for an empty
// name or a colour/shape outside the fixed sets, and DUPLICATE_NAME when the
// trimmed name is already taken.
func (s *Store) AddNode(name string, colour Colour, shape Shape, notes string) (*Node, error) {
	name = strings.TrimSpace(name)
	if err := errors.ValidateNodeName(name); err != nil {
		return nil, err
	}
	if err := validateStyle(colour, shape); err != nil {
		return nil, err
	}
	if s.Contains(name) {
		return nil, errors.New(errors.ErrCodeDuplicateName, "node already exists: %s", name)
	}

	id := s.newID()
	if _, exists := s.nodes[id]; exists || id == "" {
		return nil, errors.New(errors.ErrCodeInternal, "id generator returned unusable id %q", id)
	}

	n := &Node{
		ID:     id,
		Name:   name,
		Colour: colour,
		Shape:  shape,
		Notes:  strings.TrimSpace(notes),
	}
	s.nodes[n.ID] = n
	s.names[n.Name] = n.ID
	return n, nil
}

// Insert adds a fully formed node, keeping its id and links. It is meant for
// deserializers rebuilding a store; link targets are not checked here, call
// [Store.Validate] once every node has been inserted.
//
// Returns VALIDATION for a node breaking the per-node invariants,
// DUPLICATE_NAME for a taken name and CORRUPT_DATA for a reused id.
func (s *Store) Insert(n *Node) error {
	if n == nil || !n.Valid() {
		return errors.New(errors.ErrCodeValidation, "node is not valid")
	}
	if _, exists := s.nodes[n.ID]; exists {
		return errors.New(errors.ErrCodeCorruptData, "duplicate node id: %s", n.ID)
	}
	if s.Contains(n.Name) {
		return errors.New(errors.ErrCodeDuplicateName, "node already exists: %s", n.Name)
	}
	s.nodes[n.ID] = n
	s.names[n.Name] = n.ID
	return nil
}

// Node returns the node called name, or NODE_NOT_FOUND.
func (s *Store) Node(name string) (*Node, error) {
	name = strings.TrimSpace(name)
	id, ok := s.names[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node does not exist: %s", name)
	}
	return s.nodes[id], nil
}

// NodeByID returns the node with the given id, or NODE_NOT_FOUND.
func (s *Store) NodeByID(id string) (*Node, error) {
	n, ok := s.nodes[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNodeNotFound, "node does not exist: %s", id)
	}
	return n, nil
}

// Contains reports whether a node called name exists.
func (s *Store) Contains(name string) bool {
	_, ok := s.names[strings.TrimSpace(name)]
	return ok
}

// RenameNode changes a node's display name and swaps its name-index entry.
// Links refer to ids, so they follow the node without being touched.
//
// Returns NODE_NOT_FOUND if oldName is absent, VALIDATION for an invalid new
// name and DUPLICATE_NAME if another node already uses newName. Renaming a
// node to its current name is a no-op.
func (s *Store) RenameNode(oldName, newName string) error {
	n, err := s.Node(oldName)
	if err != nil {
		return err
	}
	newName = strings.TrimSpace(newName)
	if err := errors.ValidateNodeName(newName); err != nil {
		return err
	}
	if newName == n.Name {
		return nil
	}
	if s.Contains(newName) {
		return errors.New(errors.ErrCodeDuplicateName, "node already exists: %s", newName)
	}

	delete(s.names, n.Name)
	s.names[newName] = n.ID
	n.Name = newName
	return nil
}

// EditNode overwrites a node's colour, shape and notes.
func (s *Store) EditNode(name string, colour Colour, shape Shape, notes string) error {
	n, err := s.Node(name)
	if err != nil {
		return err
	}
	if err := validateStyle(colour, shape); err != nil {
		return err
	}
	n.Colour = colour
	n.Shape = shape
	n.Notes = strings.TrimSpace(notes)
	return nil
}

// AddLink appends a link on from pointing at to.
//
// Returns NODE_NOT_FOUND if either endpoint is missing and DUPLICATE_LINK if
// the pair is already linked in either direction.
func (s *Store) AddLink(from, to, message string) error {
	a, b, err := s.pair(from, to)
	if err != nil {
		return err
	}
	if findLink(a, b) != nil {
		return errors.New(errors.ErrCodeDuplicateLink, "a link between '%s' and '%s' already exists", a.Name, b.Name)
	}
	a.addLink(&Link{To: b.ID, Message: strings.TrimSpace(message)})
	return nil
}

// Link returns the link between a and b, stored on either side, or
// LINK_NOT_FOUND if they are not linked.
func (s *Store) Link(a, b string) (*Link, error) {
	l, err := s.LookupLink(a, b)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, errors.New(errors.ErrCodeLinkNotFound, "link not found between '%s' and '%s'",
			strings.TrimSpace(a), strings.TrimSpace(b))
	}
	return l, nil
}

// LookupLink returns the link between a and b, or nil if there is none.
//
// The search checks a's outgoing links for one targeting b first, then b's
// outgoing links for one targeting a. AddLink uses the same order, so the
// result is deterministic even if both directions were stored.
// Returns NODE_NOT_FOUND if either node is missing.
func (s *Store) LookupLink(a, b string) (*Link, error) {
	na, nb, err := s.pair(a, b)
	if err != nil {
		return nil, err
	}
	return findLink(na, nb), nil
}

// EditLink overwrites the message of the link between a and b.
func (s *Store) EditLink(a, b, message string) error {
	l, err := s.Link(a, b)
	if err != nil {
		return err
	}
	l.Message = strings.TrimSpace(message)
	return nil
}

// RemoveLink removes any link from a to b and any link from b to a.
// Removing a link that does not exist is not an error.
func (s *Store) RemoveLink(a, b string) error {
	na, nb, err := s.pair(a, b)
	if err != nil {
		return err
	}
	na.removeLinks(nb.ID)
	nb.removeLinks(na.ID)
	return nil
}

// DeleteNode removes a node from both indices and strips every link that
// targets it from the remaining nodes.
//
// The cleanup scans all nodes and their links, so deletion is O(nodes*links).
func (s *Store) DeleteNode(name string) error {
	n, err := s.Node(name)
	if err != nil {
		return err
	}
	delete(s.nodes, n.ID)
	delete(s.names, n.Name)

	for _, other := range s.nodes {
		other.removeLinks(n.ID)
	}
	return nil
}

// NodeNames returns the current names, sorted.
func (s *Store) NodeNames() []string {
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Nodes returns all nodes sorted by name. The pointers refer to the live
// nodes; use the store's methods to mutate them.
func (s *Store) Nodes() []*Node {
	nodes := make([]*Node, 0, len(s.nodes))
	for _, n := range s.nodes {
		nodes = append(nodes, n)
	}
	slices.SortFunc(nodes, func(a, b *Node) int { return strings.Compare(a.Name, b.Name) })
	return nodes
}

// Edges resolves every link to display names, ordered by source name and then
// link insertion order. Dangling links are skipped.
func (s *Store) Edges() []Edge {
	var edges []Edge
	for _, n := range s.Nodes() {
		for _, l := range n.Links {
			target, ok := s.nodes[l.To]
			if !ok {
				continue
			}
			edges = append(edges, Edge{From: n.Name, To: target.Name, Message: l.Message})
		}
	}
	return edges
}

// SetNodes replaces the store's contents with other's, in place. The receiver
// keeps its identity so references held elsewhere stay valid; other should
// not be used afterwards because the two stores now share nodes.
func (s *Store) SetNodes(other *Store) {
	if other == s {
		return
	}
	clear(s.nodes)
	clear(s.names)
	for id, n := range other.nodes {
		s.nodes[id] = n
	}
	for name, id := range other.names {
		s.names[name] = id
	}
}

// Validate checks every store invariant and returns a CORRUPT_DATA error
// describing the first violation found:
//
//   - every node is valid and indexed under its current name
//   - the name index has exactly one entry per node
//   - every link targets an existing node
//   - at most one link exists between any unordered pair of nodes
func (s *Store) Validate() error {
	if len(s.names) != len(s.nodes) {
		return errors.New(errors.ErrCodeCorruptData, "name index has %d entries for %d nodes", len(s.names), len(s.nodes))
	}

	pairs := make(map[[2]string]bool)
	for _, n := range s.Nodes() {
		if !n.Valid() {
			return errors.New(errors.ErrCodeCorruptData, "node %q is not valid", n.Name)
		}
		if id, ok := s.names[n.Name]; !ok || id != n.ID {
			return errors.New(errors.ErrCodeCorruptData, "node %q is not indexed by name", n.Name)
		}
		for _, l := range n.Links {
			if _, ok := s.nodes[l.To]; !ok {
				return errors.New(errors.ErrCodeCorruptData, "node %q links to unknown id %s", n.Name, l.To)
			}
			key := [2]string{n.ID, l.To}
			if key[0] > key[1] {
				key[0], key[1] = key[1], key[0]
			}
			if pairs[key] {
				target := s.nodes[l.To]
				return errors.New(errors.ErrCodeCorruptData, "duplicate link between %q and %q", n.Name, target.Name)
			}
			pairs[key] = true
		}
	}
	return nil
}

func (s *Store) pair(a, b string) (*Node, *Node, error) {
	na, err := s.Node(a)
	if err != nil {
		return nil, nil, err
	}
	nb, err := s.Node(b)
	if err != nil {
		return nil, nil, err
	}
	return na, nb, nil
}

// findLink implements the symmetric lookup rule: a→b first, then b→a.
func findLink(a, b *Node) *Link {
	if l := a.Link(b.ID); l != nil {
		return l
	}
	return b.Link(a.ID)
}

func validateStyle(colour Colour, shape Shape) error {
	if !colour.Valid() {
		return errors.New(errors.ErrCodeValidation, "unknown colour %q", colour)
	}
	if !shape.Valid() {
		return errors.New(errors.ErrCodeValidation, "unknown shape %q", shape)
	}
	return nil
}
