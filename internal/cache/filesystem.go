package cache

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/colthorp/lolfetch-go/internal/core"
)

const matchesFile = "matches.json"

// FilesystemBackend stores JSON files on disk.
// Directory layout: <root>/summoner/<ROUTE>/<puuid>/matches.json
type FilesystemBackend struct {
	root      string
	writeLock sync.Mutex
}

// NewFilesystemBackend creates a new filesystem-based cache backend.
func NewFilesystemBackend(root string) *FilesystemBackend {
	if root == "" {
		root = core.CacheRoot()
	}
	return &FilesystemBackend{root: root}
}

// Root returns the cache root directory.
func (b *FilesystemBackend) Root() string {
	return b.root
}

func (b *FilesystemBackend) dir(id Identity) string {
	return filepath.Join(b.root, "summoner", string(id.Route), id.PUUID)
}

// Path returns the filesystem path of the account file.
func (b *FilesystemBackend) Path(id Identity) string {
	return filepath.Join(b.dir(id), matchesFile)
}

// Open creates the account directory and file if needed and reads it.
func (b *FilesystemBackend) Open(id Identity) ([]byte, error) {
	if err := os.MkdirAll(b.dir(id), 0755); err != nil {
		return nil, fmt.Errorf("creating cache directory: %w", err)
	}

	f, err := os.OpenFile(b.Path(id), os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening cache file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading cache file: %w", err)
	}
	return data, nil
}

// Write persists the data atomically: temp file, sync, rename.
func (b *FilesystemBackend) Write(id Identity, data []byte) error {
	b.writeLock.Lock()
	defer b.writeLock.Unlock()

	dir := b.dir(id)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating cache directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, matchesFile+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing cache file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("syncing cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("closing cache file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("setting cache file mode: %w", err)
	}

	if err := os.Rename(tmpPath, b.Path(id)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing cache file: %w", err)
	}
	return nil
}

// Remove deletes an account directory, or the whole root when id is nil.
func (b *FilesystemBackend) Remove(id *Identity) error {
	dir := b.root
	if id != nil {
		dir = b.dir(*id)
	}
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%s: %w", dir, fs.ErrNotExist)
		}
		return err
	}
	return os.RemoveAll(dir)
}
