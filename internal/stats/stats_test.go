package stats

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/colthorp/lolfetch-go/internal/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const matchJSON = `{
  "gameCreation": 1700000000000,
  "gameDuration": 1800,
  "gameEndTimestamp": 1700001800000,
  "gameVersion": "14.20.1",
  "participants": [
    {"participantId": 1, "puuid": "me", "teamId": 100, "championId": 145, "championName": "Kaisa",
     "teamPosition": "BOTTOM", "kills": 8, "deaths": 2, "assists": 6,
     "totalMinionsKilled": 200, "totalAllyJungleMinionsKilled": 8, "totalEnemyJungleMinionsKilled": 2, "timePlayed": 1790},
    {"participantId": 2, "puuid": "ally", "teamId": 100, "championId": 1, "championName": "Annie",
     "teamPosition": "MIDDLE", "kills": 1, "deaths": 1, "assists": 1, "totalMinionsKilled": 10, "timePlayed": 1800},
    {"participantId": 6, "puuid": "enemy-bot", "teamId": 200, "championId": 22, "championName": "Ashe",
     "teamPosition": "BOTTOM", "kills": 2, "deaths": 8, "assists": 3, "totalMinionsKilled": 150, "timePlayed": 1800}
  ],
  "teams": [
    {"teamId": 100, "win": true},
    {"teamId": 200, "win": false}
  ]
}`

func timelineWithGold(me, opponent int) json.RawMessage {
	frames := make([]map[string]any, 16)
	for i := range frames {
		frames[i] = map[string]any{"participantFrames": map[string]any{}}
	}
	frames[15]["participantFrames"] = map[string]any{
		"1": map[string]any{"totalGold": me},
		"6": map[string]any{"totalGold": opponent},
	}
	raw, _ := json.Marshal(map[string]any{"frames": frames})
	return raw
}

func TestKDA(t *testing.T) {
	r, ok := KDA{Kills: 8, Deaths: 2, Assists: 6}.Ratio()
	require.True(t, ok)
	assert.InDelta(t, 7.0, r, 1e-9)

	_, ok = KDA{Kills: 3, Assists: 4}.Ratio()
	assert.False(t, ok, "no deaths is a perfect score")

	sum := KDA{1, 2, 3}.Add(KDA{4, 5, 6})
	assert.Equal(t, KDA{5, 7, 9}, sum)
	assert.Equal(t, "5/7/9", sum.String())
}

func TestPlayerView(t *testing.T) {
	rec := cache.MatchRecord{ID: "EUW1_1", Info: json.RawMessage(matchJSON), Timeline: timelineWithGold(5600, 5100)}

	m, err := PlayerView(rec, "me")
	require.NoError(t, err)

	assert.Equal(t, "EUW1_1", m.MatchID)
	assert.Equal(t, 145, m.ChampionID)
	assert.Equal(t, "BOT", m.Position)
	assert.Equal(t, KDA{8, 2, 6}, m.KDA)
	assert.Equal(t, 210, m.MinionsKilled)
	assert.Equal(t, 30*time.Minute, m.TimePlayed)
	assert.True(t, m.Win)
	assert.InDelta(t, 7.0, m.CSPerMinute(), 1e-9)
	require.NotNil(t, m.GoldDiff15)
	assert.Equal(t, 500, *m.GoldDiff15)

	enemy, err := PlayerView(rec, "enemy-bot")
	require.NoError(t, err)
	assert.False(t, enemy.Win)
	require.NotNil(t, enemy.GoldDiff15)
	assert.Equal(t, -500, *enemy.GoldDiff15)
}

func TestPlayerViewWithoutGoldDiff(t *testing.T) {
	// No timeline
	m, err := PlayerView(cache.MatchRecord{ID: "a", Info: json.RawMessage(matchJSON)}, "me")
	require.NoError(t, err)
	assert.Nil(t, m.GoldDiff15)

	// No lane opponent
	m, err = PlayerView(cache.MatchRecord{ID: "a", Info: json.RawMessage(matchJSON), Timeline: timelineWithGold(1, 2)}, "ally")
	require.NoError(t, err)
	assert.Nil(t, m.GoldDiff15)

	// Game shorter than the frame
	short := json.RawMessage(`{"frames":[{"participantFrames":{}}]}`)
	m, err = PlayerView(cache.MatchRecord{ID: "a", Info: json.RawMessage(matchJSON), Timeline: short}, "me")
	require.NoError(t, err)
	assert.Nil(t, m.GoldDiff15)
}

func TestPlayerViewMissingParticipant(t *testing.T) {
	_, err := PlayerView(cache.MatchRecord{ID: "a", Info: json.RawMessage(matchJSON)}, "stranger")
	assert.True(t, errors.Is(err, ErrParticipantNotFound))

	noTeams := json.RawMessage(`{"participants":[{"puuid":"me","teamId":100}],"teams":[]}`)
	_, err = PlayerView(cache.MatchRecord{ID: "b", Info: noTeams}, "me")
	assert.True(t, errors.Is(err, ErrTeamNotFound))
}

func TestPlayerViews(t *testing.T) {
	records := []cache.MatchRecord{
		{ID: "a", Info: json.RawMessage(matchJSON)},
		{ID: "b", Info: json.RawMessage(`{"participants":[]}`)},
	}
	views, skipped := PlayerViews(records, "me")
	assert.Len(t, views, 1)
	assert.Equal(t, []string{"b"}, skipped)
}

func TestGameStats(t *testing.T) {
	var s GameStats
	assert.Zero(t, s.WinRate())
	assert.Zero(t, s.CSPerMinute())

	s.Add(PlayerMatch{Win: true, KDA: KDA{5, 1, 5}, MinionsKilled: 100, TimePlayed: 10 * time.Minute})
	s.Add(PlayerMatch{Win: false, KDA: KDA{1, 3, 1}, MinionsKilled: 200, TimePlayed: 20 * time.Minute})
	s.Add(PlayerMatch{Win: true, KDA: KDA{0, 0, 2}, MinionsKilled: 0, TimePlayed: 0})

	assert.Equal(t, 3, s.Games())
	assert.InDelta(t, 2.0/3.0, s.WinRate(), 1e-9)
	assert.InDelta(t, 10.0, s.CSPerMinute(), 1e-9)
	r, ok := s.KDA.Ratio()
	require.True(t, ok)
	assert.InDelta(t, 14.0/4.0, r, 1e-9)
}

func TestByChampion(t *testing.T) {
	matches := []PlayerMatch{
		{ChampionID: 1, ChampionName: "Annie", Win: true},
		{ChampionID: 22, ChampionName: "Ashe", Win: false},
		{ChampionID: 22, ChampionName: "Ashe", Win: true},
		{ChampionID: 145, ChampionName: "Kaisa", Win: true},
		{ChampionID: 22, ChampionName: "Ashe", Win: true},
	}

	all := ByChampion(matches, 0)
	require.Len(t, all, 3)
	assert.Equal(t, "Ashe", all[0].ChampionName)
	assert.Equal(t, 3, all[0].Stats.Games())
	assert.Equal(t, 2, all[0].Stats.Wins)
	assert.Equal(t, "Annie", all[1].ChampionName)
	assert.Equal(t, "Kaisa", all[2].ChampionName)

	top := ByChampion(matches, 2)
	assert.Len(t, top, 2)
	assert.Empty(t, ByChampion(nil, 5))
}

func TestShortPosition(t *testing.T) {
	assert.Equal(t, "SUP", ShortPosition("UTILITY"))
	assert.Equal(t, "JGL", ShortPosition("JUNGLE"))
	assert.Equal(t, "", ShortPosition(""))
	assert.Equal(t, "NONE", ShortPosition("NONE"))
}
