// Package storage persists netgraph stores by name.
//
// Two backends are provided:
//   - [FileBackend]: one JSON document per graph on the local filesystem
//   - [MongoBackend]: one MongoDB document per graph, holding the same JSON
//
// Both store exactly the bytes produced by the io package, so a graph can be
// moved between backends without conversion.
package storage

import (
	"context"

	"github.com/matzehuels/netgraph/pkg/errors"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Backend loads and saves graphs by name.
type Backend interface {
	// Load returns the graph saved under name. A missing graph yields an
	// error for which IsNotFound reports true.
	Load(ctx context.Context, name string) (*netgraph.Store, error)

	// Save writes s under name, replacing any previous version.
	Save(ctx context.Context, name string, s *netgraph.Store) error

	// Delete removes the graph saved under name. Deleting a missing graph is
	// not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all saved graphs, sorted.
	List(ctx context.Context) ([]string, error)

	// Close releases the backend's resources.
	Close() error
}

// IsNotFound reports whether err means the requested graph does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, errors.ErrCodeFileNotFound)
}

func notFound(name string) error {
	return errors.New(errors.ErrCodeFileNotFound, "graph not found: %s", name)
}
