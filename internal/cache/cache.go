package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
)

// Cache is the in-memory view of one account's matches during a session.
// It is not safe for concurrent use.
type Cache struct {
	id           Identity
	backend      Backend
	currentPatch string
	matches      map[MatchID]MatchRecord
	closed       bool
	logger       *slog.Logger
}

// Identity returns the account the cache belongs to.
func (c *Cache) Identity() Identity {
	return c.id
}

// CurrentPatch returns the session patch records are validated against.
func (c *Cache) CurrentPatch() string {
	return c.currentPatch
}

// Insert validates and adds a record. A refused record returns a Rejection:
//
//	var rej cache.Rejection
//	if errors.As(err, &rej) { ... }
func (c *Cache) Insert(id MatchID, rec MatchRecord) error {
	if c.closed {
		return ErrCacheClosed
	}
	if _, ok := c.matches[id]; ok {
		return AlreadyExists
	}
	if rec.IsRemake() {
		return Remake
	}
	if !rec.BelongsToSplit(c.currentPatch) {
		return PatchMismatch
	}

	rec.ID = id
	c.matches[id] = rec
	return nil
}

// Contains reports whether id is cached.
func (c *Cache) Contains(id MatchID) bool {
	_, ok := c.matches[id]
	return ok
}

// Len returns the number of cached matches.
func (c *Cache) Len() int {
	return len(c.matches)
}

// IsEmpty reports whether the cache holds no matches.
func (c *Cache) IsEmpty() bool {
	return len(c.matches) == 0
}

// Save ends the session. When persist is set the matches are written to the
// backend first. The records are returned newest first; equal creation
// times are ordered by match id.
func (c *Cache) Save(persist bool) ([]MatchRecord, error) {
	if c.closed {
		return nil, ErrCacheClosed
	}
	c.closed = true

	if persist {
		data, err := json.Marshal(c.matches)
		if err != nil {
			return nil, fmt.Errorf("encoding cache: %w", err)
		}
		if err := c.backend.Write(c.id, data); err != nil {
			return nil, fmt.Errorf("saving cache: %w", err)
		}
		c.logger.Debug("saved cache", "path", c.backend.Path(c.id), "matches", len(c.matches))
	}

	ids := make([]MatchID, 0, len(c.matches))
	for id := range c.matches {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]MatchRecord, len(ids))
	for i, id := range ids {
		records[i] = c.matches[id]
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].GameCreation() > records[j].GameCreation()
	})

	c.matches = nil
	return records, nil
}
