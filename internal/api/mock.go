package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/colthorp/lolfetch-go/internal/core"
)

// InMemoryTransport is a lightweight simulation of the Riot API.
// It implements the account, summoner, league, mastery and match-v5
// endpoints used by lolfetch, sufficient for unit testing cache logic.
// Requests may be made concurrently; seeding must happen before use.
type InMemoryTransport struct {
	mu sync.Mutex

	accounts  map[string]Account
	summoners map[string]Summoner
	leagues   map[string][]LeagueEntry
	masteries map[string][]ChampionMastery
	history   map[string][]seededMatch
	matches   map[string]json.RawMessage
	timelines map[string]json.RawMessage
	failures  map[string]error

	RequestLog []RequestLogEntry
}

type seededMatch struct {
	id    string
	queue int
}

// RequestLogEntry records a request made to the transport.
type RequestLogEntry struct {
	Host   string
	Path   string
	Params url.Values
}

// NewInMemoryTransport creates a new in-memory transport for testing.
func NewInMemoryTransport() *InMemoryTransport {
	return &InMemoryTransport{
		accounts:   make(map[string]Account),
		summoners:  make(map[string]Summoner),
		leagues:    make(map[string][]LeagueEntry),
		masteries:  make(map[string][]ChampionMastery),
		history:    make(map[string][]seededMatch),
		matches:    make(map[string]json.RawMessage),
		timelines:  make(map[string]json.RawMessage),
		failures:   make(map[string]error),
		RequestLog: make([]RequestLogEntry, 0),
	}
}

func accountKey(gameName, tagLine string) string {
	return strings.ToLower(gameName + "#" + tagLine)
}

// SeedAccount registers an account and its summoner profile.
func (t *InMemoryTransport) SeedAccount(acc Account, profileIconID int) {
	t.accounts[accountKey(acc.GameName, acc.TagLine)] = acc
	t.summoners[acc.PUUID] = Summoner{PUUID: acc.PUUID, ProfileIconID: profileIconID, SummonerLevel: 100}
}

// SeedLeague sets the league entries of an account.
func (t *InMemoryTransport) SeedLeague(puuid string, entries ...LeagueEntry) {
	t.leagues[puuid] = entries
}

// SeedMasteries sets the champion masteries of an account, highest first.
func (t *InMemoryTransport) SeedMasteries(puuid string, masteries ...ChampionMastery) {
	t.masteries[puuid] = masteries
}

// SeedMatch appends a match to the history of puuid. Matches must be seeded
// newest first, the order the match-v5 ids endpoint returns them in.
// A nil timeline makes the timeline endpoint answer 404.
func (t *InMemoryTransport) SeedMatch(puuid, id string, queue int, info, timeline json.RawMessage) {
	t.history[puuid] = append(t.history[puuid], seededMatch{id: id, queue: queue})
	t.matches[id] = info
	if timeline != nil {
		t.timelines[id] = timeline
	}
}

// FailOn makes every request whose path contains substr return err.
func (t *InMemoryTransport) FailOn(substr string, err error) {
	t.failures[substr] = err
}

// RequestsMade returns the number of requests made to this transport.
func (t *InMemoryTransport) RequestsMade() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.RequestLog)
}

// RequestsTo counts the requests whose path contains substr.
func (t *InMemoryTransport) RequestsTo(substr string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := 0
	for _, r := range t.RequestLog {
		if strings.Contains(r.Path, substr) {
			n++
		}
	}
	return n
}

// Reset clears recorded requests.
func (t *InMemoryTransport) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.RequestLog = make([]RequestLogEntry, 0)
}

func notFound(path string) error {
	return &APIError{StatusCode: http.StatusNotFound, Message: "no data for " + path}
}

// Request simulates a low-level Riot API request.
func (t *InMemoryTransport) Request(ctx context.Context, host, path string, params url.Values) ([]byte, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	// Track the call for assertions in unit tests
	t.RequestLog = append(t.RequestLog, RequestLogEntry{
		Host:   host,
		Path:   path,
		Params: copyParams(params),
	})

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for substr, err := range t.failures {
		if strings.Contains(path, substr) {
			return nil, err
		}
	}

	if rest, ok := strings.CutPrefix(path, "/riot/account/v1/accounts/by-riot-id/"); ok {
		name, tag, _ := strings.Cut(rest, "/")
		name, _ = url.PathUnescape(name)
		tag, _ = url.PathUnescape(tag)
		acc, ok := t.accounts[accountKey(name, tag)]
		if !ok {
			return nil, notFound(path)
		}
		return json.Marshal(acc)
	}

	if puuid, ok := strings.CutPrefix(path, "/lol/summoner/v4/summoners/by-puuid/"); ok {
		s, ok := t.summoners[puuid]
		if !ok {
			return nil, notFound(path)
		}
		return json.Marshal(s)
	}

	if puuid, ok := strings.CutPrefix(path, "/lol/league/v4/entries/by-puuid/"); ok {
		entries := t.leagues[puuid]
		if entries == nil {
			entries = []LeagueEntry{}
		}
		return json.Marshal(entries)
	}

	if rest, ok := strings.CutPrefix(path, "/lol/champion-mastery/v4/champion-masteries/by-puuid/"); ok {
		puuid := strings.TrimSuffix(rest, "/top")
		masteries := t.masteries[puuid]
		if n, err := strconv.Atoi(params.Get("count")); err == nil && n < len(masteries) {
			masteries = masteries[:n]
		}
		if masteries == nil {
			masteries = []ChampionMastery{}
		}
		return json.Marshal(masteries)
	}

	if rest, ok := strings.CutPrefix(path, "/lol/match/v5/matches/by-puuid/"); ok {
		return t.matchIDs(strings.TrimSuffix(rest, "/ids"), params)
	}

	if rest, ok := strings.CutPrefix(path, "/lol/match/v5/matches/"); ok {
		if id, isTimeline := strings.CutSuffix(rest, "/timeline"); isTimeline {
			timeline, ok := t.timelines[id]
			if !ok {
				return nil, notFound(path)
			}
			return wrapInfo(id, timeline), nil
		}
		info, ok := t.matches[rest]
		if !ok {
			return nil, notFound(path)
		}
		return wrapInfo(rest, info), nil
	}

	return nil, notFound(path)
}

func (t *InMemoryTransport) matchIDs(puuid string, params url.Values) ([]byte, error) {
	var filtered []string
	queue, _ := strconv.Atoi(params.Get("queue"))
	for _, m := range t.history[puuid] {
		if queue == 0 || m.queue == queue {
			filtered = append(filtered, m.id)
		}
	}

	start, _ := strconv.Atoi(params.Get("start"))
	count := 20
	if c, err := strconv.Atoi(params.Get("count")); err == nil {
		count = c
	}
	if count > core.MaxPageSize {
		return nil, &APIError{StatusCode: http.StatusBadRequest, Message: "count must be <= 100"}
	}

	ids := []string{}
	if start < len(filtered) {
		end := min(start+count, len(filtered))
		ids = filtered[start:end]
	}
	return json.Marshal(ids)
}

func wrapInfo(id string, info json.RawMessage) []byte {
	return []byte(fmt.Sprintf(`{"metadata":{"matchId":%q},"info":%s}`, id, info))
}

// copyParams creates a copy of the params map.
func copyParams(params url.Values) url.Values {
	result := make(url.Values, len(params))
	for k, v := range params {
		result[k] = append([]string(nil), v...)
	}
	return result
}
