// Package core provides shared constants and helpers for the lolfetch CLI.
package core

import (
	"os"
	"path/filepath"
	"time"
)

// API configuration
const (
	APIKeyEnvVar       = "RIOT_API_KEY"
	CacheDirEnvVar     = "LOLFETCH_CACHE_DIR"
	RiotAPIHostFmt     = "https://%s.api.riotgames.com"
	DataDragonURL      = "https://ddragon.leagueoflegends.com"
	CommunityDragonURL = "https://cdn.communitydragon.org"
)

// Match history paging
const (
	// MaxPageSize is the largest count accepted by the match-v5 ids endpoint.
	MaxPageSize = 100

	// RemakeThreshold is the game length under which a match counts as a remake.
	RemakeThreshold = 3 * time.Minute
)

// Queue ids used by the match-v5 ids endpoint.
const (
	QueueRankedSolo = 420
	QueueRankedFlex = 440
)

// Display defaults
const (
	ImageWidth      = 40
	ImageHeight     = 20
	CenterPadLength = 5
)

// CacheRoot returns the default cache directory path.
func CacheRoot() string {
	if dir := os.Getenv(CacheDirEnvVar); dir != "" {
		return dir
	}
	base, err := os.UserCacheDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			home = "."
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "lolfetch")
}

// ConfigPath returns the default config file path.
func ConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "lolfetch", "config.yaml")
}

// Version is the current CLI version.
const Version = "0.3.0"
