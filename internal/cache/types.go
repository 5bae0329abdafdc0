// Package cache stores validated match records per account.
//
// # Layout
//
// Each (platform, account) pair owns one JSON file:
//
//	<root>/summoner/<ROUTE>/<puuid>/matches.json
//
// The file holds an object mapping match ids to records:
//
//	{
//	  "EUW1_7000000000": {"id": "...", "info": {...}, "timeline": {...}},
//	  ...
//	}
//
// info and timeline are the raw match-v5 objects. Only the fields needed for
// validation and ordering are read from them.
//
// # Validity
//
// A record is accepted by Insert when it is not already present, is not a
// remake (shorter than three minutes) and was played in the same split as the
// session patch. The checks run in that order, so a remake from an old patch
// is reported as Remake rather than PatchMismatch.
//
// Validity is checked on insert. A cache loaded from disk re-checks its
// entries against the session patch once, at load; entries from an earlier
// split are dropped and disappear from the file on the next save.
//
// # Writes
//
// Save writes a temp file in the account directory, syncs it and renames it
// over matches.json. An interrupted session leaves the previous file intact.
package cache

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/colthorp/lolfetch-go/internal/patch"
	"github.com/tidwall/gjson"
)

// MatchID is the match-v5 id of a game, e.g. EUW1_7000000000.
type MatchID = string

// MatchRecord is one cached game.
type MatchRecord struct {
	ID       MatchID         `json:"id"`
	Info     json.RawMessage `json:"info"`
	Timeline json.RawMessage `json:"timeline,omitempty"`
}

// GameCreation returns the creation timestamp in milliseconds since epoch.
func (r MatchRecord) GameCreation() int64 {
	return gjson.GetBytes(r.Info, "gameCreation").Int()
}

// GameVersion returns the full game version, e.g. "14.20.628.3001".
func (r MatchRecord) GameVersion() string {
	return gjson.GetBytes(r.Info, "gameVersion").String()
}

// Duration returns the game length. match-v5 reports gameDuration in seconds
// when gameEndTimestamp is present and in milliseconds before that field
// existed.
func (r MatchRecord) Duration() time.Duration {
	d := gjson.GetBytes(r.Info, "gameDuration").Int()
	if gjson.GetBytes(r.Info, "gameEndTimestamp").Exists() {
		return time.Duration(d) * time.Second
	}
	return time.Duration(d) * time.Millisecond
}

// IsRemake reports whether the game ended before the remake threshold.
func (r MatchRecord) IsRemake() bool {
	return r.Duration() < core.RemakeThreshold
}

// BelongsToSplit reports whether the game was played in the same split as
// referencePatch.
func (r MatchRecord) BelongsToSplit(referencePatch string) bool {
	return patch.SameSplit(r.GameVersion(), referencePatch)
}

// Identity selects the cache of one account on one platform.
type Identity struct {
	Route api.PlatformRoute
	PUUID string
}

// Rejection is the reason Insert refused a record.
type Rejection int

const (
	// AlreadyExists means the id is already cached.
	AlreadyExists Rejection = iota + 1
	// Remake means the game was aborted early.
	Remake
	// PatchMismatch means the game belongs to another split.
	PatchMismatch
)

func (r Rejection) String() string {
	switch r {
	case AlreadyExists:
		return "already exists"
	case Remake:
		return "remake"
	case PatchMismatch:
		return "patch mismatch"
	default:
		return "unknown"
	}
}

func (r Rejection) Error() string {
	return "match rejected: " + r.String()
}

// ErrCacheClosed is returned by operations on a saved cache.
var ErrCacheClosed = errors.New("cache already saved")

// Backend is the storage behind a Store.
// The default implementation is FilesystemBackend which stores JSON files on disk.
type Backend interface {
	// Open makes sure the account file exists and returns its content,
	// which is empty for a new account.
	Open(id Identity) ([]byte, error)

	// Write replaces the account file atomically.
	Write(id Identity, data []byte) error

	// Remove deletes one account, or every account when id is nil.
	// A missing directory is reported as fs.ErrNotExist.
	Remove(id *Identity) error

	// Path returns the file backing the account (for logging).
	Path(id Identity) string
}
