package cache

import (
	"fmt"
	"io/fs"
	"strings"
	"sync"
)

// MemoryBackend is an in-memory cache backend for testing.
type MemoryBackend struct {
	files  map[string][]byte
	writes int
	mu     sync.RWMutex
}

// NewMemoryBackend creates a new in-memory cache backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		files: make(map[string][]byte),
	}
}

// Path returns a dummy path for the account.
func (b *MemoryBackend) Path(id Identity) string {
	return "summoner/" + string(id.Route) + "/" + id.PUUID + "/" + matchesFile
}

// Open returns the stored content, creating an empty file if absent.
func (b *MemoryBackend) Open(id Identity) ([]byte, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, ok := b.files[b.Path(id)]
	if !ok {
		b.files[b.Path(id)] = nil
		return nil, nil
	}
	// Return a copy to prevent mutation
	return append([]byte(nil), data...), nil
}

// Write persists the data.
func (b *MemoryBackend) Write(id Identity, data []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.files[b.Path(id)] = append([]byte(nil), data...)
	b.writes++
	return nil
}

// Remove deletes one account or all of them.
func (b *MemoryBackend) Remove(id *Identity) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	prefix := "summoner/"
	if id != nil {
		prefix = strings.TrimSuffix(b.Path(*id), matchesFile)
	}

	found := false
	for path := range b.files {
		if strings.HasPrefix(path, prefix) {
			delete(b.files, path)
			found = true
		}
	}
	if !found {
		return fmt.Errorf("%s: %w", prefix, fs.ErrNotExist)
	}
	return nil
}

// Seed stores raw file content directly (for testing).
func (b *MemoryBackend) Seed(id Identity, data []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.files[b.Path(id)] = append([]byte(nil), data...)
}

// Contents returns the stored file of an account (for testing).
func (b *MemoryBackend) Contents(id Identity) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	data, ok := b.files[b.Path(id)]
	return data, ok
}

// Writes returns the number of Write calls (for testing).
func (b *MemoryBackend) Writes() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.writes
}
