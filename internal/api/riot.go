package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/tidwall/gjson"
)

// RiotAPI provides a typed convenience layer over the Riot REST API.
type RiotAPI struct {
	transport Transport
	logger    *slog.Logger
}

// NewRiotAPI creates a new high-level API client.
func NewRiotAPI(transport Transport) *RiotAPI {
	return &RiotAPI{
		transport: transport,
		logger:    slog.Default().With("component", "riot"),
	}
}

func (a *RiotAPI) getJSON(ctx context.Context, host, path string, params url.Values, out any) error {
	body, err := a.transport.Request(ctx, host, path, params)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

// AccountByRiotID resolves a Riot ID to its account.
func (a *RiotAPI) AccountByRiotID(ctx context.Context, region RegionalRoute, id core.RiotID) (*Account, error) {
	path := fmt.Sprintf("/riot/account/v1/accounts/by-riot-id/%s/%s",
		url.PathEscape(id.GameName), url.PathEscape(id.TagLine))
	var acc Account
	if err := a.getJSON(ctx, region.Host(), path, nil, &acc); err != nil {
		return nil, fmt.Errorf("account %s: %w", id, err)
	}
	return &acc, nil
}

// SummonerByPUUID fetches the platform profile of an account.
func (a *RiotAPI) SummonerByPUUID(ctx context.Context, platform PlatformRoute, puuid string) (*Summoner, error) {
	var s Summoner
	path := "/lol/summoner/v4/summoners/by-puuid/" + url.PathEscape(puuid)
	if err := a.getJSON(ctx, platform.Host(), path, nil, &s); err != nil {
		return nil, fmt.Errorf("summoner: %w", err)
	}
	return &s, nil
}

// LeagueEntries returns every ranked queue standing of an account.
func (a *RiotAPI) LeagueEntries(ctx context.Context, platform PlatformRoute, puuid string) ([]LeagueEntry, error) {
	var entries []LeagueEntry
	path := "/lol/league/v4/entries/by-puuid/" + url.PathEscape(puuid)
	if err := a.getJSON(ctx, platform.Host(), path, nil, &entries); err != nil {
		return nil, fmt.Errorf("league entries: %w", err)
	}
	return entries, nil
}

// TopMasteries returns the count highest champion masteries.
func (a *RiotAPI) TopMasteries(ctx context.Context, platform PlatformRoute, puuid string, count int) ([]ChampionMastery, error) {
	var masteries []ChampionMastery
	path := fmt.Sprintf("/lol/champion-mastery/v4/champion-masteries/by-puuid/%s/top", url.PathEscape(puuid))
	params := url.Values{"count": {strconv.Itoa(count)}}
	if err := a.getJSON(ctx, platform.Host(), path, params, &masteries); err != nil {
		return nil, fmt.Errorf("masteries: %w", err)
	}
	return masteries, nil
}

// MatchIDs returns one page of match ids for an account, newest first.
func (a *RiotAPI) MatchIDs(ctx context.Context, puuid string, region RegionalRoute, q MatchIDQuery) ([]string, error) {
	params := url.Values{
		"start": {strconv.Itoa(q.Start)},
		"count": {strconv.Itoa(q.Count)},
	}
	if q.Queue != 0 {
		params.Set("queue", strconv.Itoa(q.Queue))
	}
	path := fmt.Sprintf("/lol/match/v5/matches/by-puuid/%s/ids", url.PathEscape(puuid))

	var ids []string
	if err := a.getJSON(ctx, region.Host(), path, params, &ids); err != nil {
		return nil, fmt.Errorf("match ids: %w", err)
	}
	a.logger.Debug("match ids", "start", q.Start, "count", q.Count, "returned", len(ids))
	return ids, nil
}

// infoObject extracts the "info" object of a match-v5 response.
func infoObject(body []byte, what, id string) (json.RawMessage, error) {
	info := gjson.GetBytes(body, "info")
	if !info.IsObject() {
		return nil, fmt.Errorf("%s %s: response has no info object", what, id)
	}
	return json.RawMessage(info.Raw), nil
}

// Match fetches the info object of a match.
func (a *RiotAPI) Match(ctx context.Context, region RegionalRoute, id string) (json.RawMessage, error) {
	body, err := a.transport.Request(ctx, region.Host(), "/lol/match/v5/matches/"+url.PathEscape(id), nil)
	if err != nil {
		return nil, fmt.Errorf("match %s: %w", id, err)
	}
	return infoObject(body, "match", id)
}

// Timeline fetches the info object of a match timeline.
func (a *RiotAPI) Timeline(ctx context.Context, region RegionalRoute, id string) (json.RawMessage, error) {
	path := "/lol/match/v5/matches/" + url.PathEscape(id) + "/timeline"
	body, err := a.transport.Request(ctx, region.Host(), path, nil)
	if err != nil {
		return nil, fmt.Errorf("timeline %s: %w", id, err)
	}
	return infoObject(body, "timeline", id)
}

// MatchWithTimeline fetches a match and its timeline, one after the other.
func (a *RiotAPI) MatchWithTimeline(ctx context.Context, region RegionalRoute, id string) (json.RawMessage, json.RawMessage, error) {
	info, err := a.Match(ctx, region, id)
	if err != nil {
		return nil, nil, err
	}
	timeline, err := a.Timeline(ctx, region, id)
	if err != nil {
		return nil, nil, err
	}
	return info, timeline, nil
}

// RankedEntry picks the entry of the given queue type, if any.
func RankedEntry(entries []LeagueEntry, queueType string) (LeagueEntry, bool) {
	for _, e := range entries {
		if e.QueueType == queueType {
			return e, true
		}
	}
	return LeagueEntry{}, false
}
