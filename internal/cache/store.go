package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
)

// Store opens and clears per-account caches.
type Store struct {
	backend Backend
	logger  *slog.Logger
}

// NewStore creates a store on the filesystem under root.
// An empty root selects the default cache directory.
func NewStore(root string) *Store {
	return NewStoreWithBackend(NewFilesystemBackend(root))
}

// NewStoreWithBackend creates a store over the given backend.
func NewStoreWithBackend(backend Backend) *Store {
	return &Store{
		backend: backend,
		logger:  slog.Default().With("component", "cache"),
	}
}

// Backend returns the cache backend (for testing).
func (s *Store) Backend() Backend {
	return s.backend
}

// Load opens the cache of an account for one session.
//
// currentPatch is the latest game version; records from another split are
// rejected by Insert and dropped from the loaded entries. A file that cannot
// be decoded is logged and treated as empty; it is overwritten by the next
// persisted Save.
func (s *Store) Load(id Identity, currentPatch string) (*Cache, error) {
	s.logger.Debug("loading cache", "route", id.Route, "puuid", id.PUUID)

	data, err := s.backend.Open(id)
	if err != nil {
		return nil, fmt.Errorf("loading cache for %s: %w", id.PUUID, err)
	}

	c := &Cache{
		id:           id,
		backend:      s.backend,
		currentPatch: currentPatch,
		matches:      make(map[MatchID]MatchRecord),
		logger:       s.logger,
	}
	if len(data) == 0 {
		return c, nil
	}

	var stored map[MatchID]MatchRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		s.logger.Warn("failed to decode cache, starting empty", "path", s.backend.Path(id), "error", err)
		return c, nil
	}

	for matchID, rec := range stored {
		rec.ID = matchID
		switch {
		case rec.IsRemake():
			s.logger.Debug("dropping cached remake", "match", matchID)
		case !rec.BelongsToSplit(currentPatch):
			s.logger.Debug("dropping match from another split", "match", matchID, "version", rec.GameVersion())
		default:
			c.matches[matchID] = rec
		}
	}
	s.logger.Debug("cache loaded", "matches", len(c.matches), "stored", len(stored))
	return c, nil
}

// Clear removes the cache of one account, or every cache when id is nil.
// Clearing a cache that does not exist logs a warning and succeeds.
func (s *Store) Clear(id *Identity) error {
	err := s.backend.Remove(id)
	if errors.Is(err, fs.ErrNotExist) {
		if id != nil {
			s.logger.Warn("cache directory does not exist for summoner", "route", id.Route, "puuid", id.PUUID)
		} else {
			s.logger.Warn("cache directory does not exist")
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("clearing cache: %w", err)
	}
	if id != nil {
		s.logger.Info("cleared cache for summoner", "route", id.Route, "puuid", id.PUUID)
	} else {
		s.logger.Info("cleared cache for all summoners")
	}
	return nil
}
