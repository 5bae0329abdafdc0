// Package api provides the HTTP transport and typed wrappers for the Riot
// Games API and the Data Dragon static data service.
package api

import (
	"context"
	"net/url"
)

// Transport is the interface for making Riot API requests.
// host is a routing value ("euw1", "europe"); path is the endpoint path.
type Transport interface {
	Request(ctx context.Context, host, path string, params url.Values) ([]byte, error)
}

// Account is the account-v1 representation of a Riot ID.
type Account struct {
	PUUID    string `json:"puuid"`
	GameName string `json:"gameName"`
	TagLine  string `json:"tagLine"`
}

// Summoner is the summoner-v4 profile of an account on one platform.
type Summoner struct {
	PUUID         string `json:"puuid"`
	ProfileIconID int    `json:"profileIconId"`
	SummonerLevel int64  `json:"summonerLevel"`
}

// LeagueEntry is one ranked queue standing from league-v4.
type LeagueEntry struct {
	QueueType    string `json:"queueType"`
	Tier         string `json:"tier"`
	Rank         string `json:"rank"`
	LeaguePoints int    `json:"leaguePoints"`
	Wins         int    `json:"wins"`
	Losses       int    `json:"losses"`
}

// Ranked queue types as reported by league-v4.
const (
	QueueTypeSolo = "RANKED_SOLO_5x5"
	QueueTypeFlex = "RANKED_FLEX_SR"
)

// ChampionMastery is a champion-mastery-v4 entry.
type ChampionMastery struct {
	ChampionID     int   `json:"championId"`
	ChampionLevel  int   `json:"championLevel"`
	ChampionPoints int64 `json:"championPoints"`
}

// Champion is a Data Dragon champion summary.
// Key is the asset name used in image URLs ("MonkeyKing"), Name the display
// name ("Wukong").
type Champion struct {
	ID   int    `json:"id"`
	Key  string `json:"key"`
	Name string `json:"name"`
}

// MatchIDQuery selects a page of match ids, newest first.
type MatchIDQuery struct {
	Start int
	Count int
	Queue int
}
