package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/matzehuels/netgraph/pkg/errors"
	graphio "github.com/matzehuels/netgraph/pkg/io"
	"github.com/matzehuels/netgraph/pkg/netgraph"
)

// Ext is the file extension of saved graphs.
const Ext = ".json"

// FileBackend stores graphs as JSON files.
//
// With a base directory, names are file names inside it (the extension is
// added when missing). Without one, names are paths used as given, which is
// how the CLI addresses the file passed with --file.
type FileBackend struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileBackend creates a file backend rooted at baseDir. An empty baseDir
// means names are plain file paths.
func NewFileBackend(baseDir string) (*FileBackend, error) {
	if baseDir != "" {
		if err := os.MkdirAll(baseDir, 0o755); err != nil {
			return nil, fmt.Errorf("create graph dir: %w", err)
		}
	}
	return &FileBackend{baseDir: baseDir}, nil
}

// Path returns the file used for name.
func (b *FileBackend) Path(name string) string {
	if b.baseDir == "" {
		return name
	}
	if filepath.Ext(name) == "" {
		name += Ext
	}
	return filepath.Join(b.baseDir, filepath.Base(name))
}

func (b *FileBackend) Load(ctx context.Context, name string) (*netgraph.Store, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	s, err := graphio.ReadFile(b.Path(name))
	if errors.Is(err, errors.ErrCodeFileNotFound) {
		return nil, notFound(name)
	}
	return s, err
}

// Save writes the graph to a temporary file in the same directory and
// renames it over the target, so readers never see a partial document.
func (b *FileBackend) Save(ctx context.Context, name string, s *netgraph.Store) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	path := b.Path(name)
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	data, err := graphio.Marshal(s)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create graph dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write graph: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write graph: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func (b *FileBackend) Delete(ctx context.Context, name string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := os.Remove(b.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove graph file: %w", err)
	}
	return nil
}

// List returns the graph names in the base directory. Without a base
// directory there is nothing to enumerate and List returns nil.
func (b *FileBackend) List(ctx context.Context) ([]string, error) {
	if b.baseDir == "" {
		return nil, nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()

	entries, err := os.ReadDir(b.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read graph dir: %w", err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != Ext || strings.HasPrefix(e.Name(), ".") {
			continue
		}
		names = append(names, strings.TrimSuffix(e.Name(), Ext))
	}
	slices.Sort(names)
	return names, nil
}

func (b *FileBackend) Close() error { return nil }

var _ Backend = (*FileBackend)(nil)
