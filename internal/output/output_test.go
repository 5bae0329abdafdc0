package output

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/colthorp/lolfetch-go/internal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineRender(t *testing.T) {
	line := Plain("a").Append(Colored("bc", Color{1, 2, 3}), Plain("d"))

	assert.Equal(t, 4, line.Width())
	assert.Equal(t, "abcd", line.String())
	assert.Equal(t, "abcd", line.Render(false))
	assert.Equal(t, "a\033[38;2;1;2;3mbc\033[0md", line.Render(true))

	bg := Background(" ", Color{9, 9, 9})
	assert.Equal(t, "\033[48;2;9;9;9m \033[0m", bg.Render(true))
}

func TestBar(t *testing.T) {
	bar := Bar(3, 1, 8, Green)
	require.Len(t, bar, 8)
	filled := 0
	for _, c := range bar {
		if *c.BG == Green {
			filled++
		}
	}
	assert.Equal(t, 6, filled)
	assert.Len(t, Bar(0, 0, 4, Green), 4)
}

func TestSectionLines(t *testing.T) {
	s := Section{Header: "Match History", Body: []Line{Plain("x")}}
	lines := s.Lines()
	require.Len(t, lines, 3)
	assert.Equal(t, "Match History", lines[0].String())
	assert.Equal(t, strings.Repeat("-", 13), lines[1].String())

	assert.Len(t, Section{Body: []Line{Plain("x")}}.Lines(), 1)
}

func TestLayoutCentersShorterColumn(t *testing.T) {
	art := []Line{Plain("####"), Plain("####"), Plain("####"), Plain("####"), Plain("####")}
	layout := Layout{
		Art:      art,
		Sections: []Section{{Body: []Line{Plain("one"), Plain("two")}}},
		Padding:  5,
	}

	rows := layout.Rows()
	require.Len(t, rows, 5)
	assert.Equal(t, "####", rows[0])
	assert.Equal(t, "####     one", rows[1])
	assert.Equal(t, "####     two", rows[2])
	assert.Equal(t, "####", rows[3])
	assert.Equal(t, "####", rows[4])
}

func TestLayoutTallerInfo(t *testing.T) {
	layout := Layout{
		Art: []Line{Plain("@@"), Plain("@")},
		Sections: []Section{
			{Body: []Line{Plain("a"), Plain("b")}},
			{Header: "H", Body: []Line{Plain("c")}},
		},
		Padding: 1,
	}

	// info: a, b, "", H, -, c  -> art offset 2
	rows := layout.Rows()
	require.Len(t, rows, 6)
	assert.Equal(t, "   a", rows[0])
	assert.Equal(t, "   b", rows[1])
	assert.Equal(t, "@@", rows[2])
	assert.Equal(t, "@  H", rows[3])
	assert.Equal(t, "   -", rows[4])
	assert.Equal(t, "   c", rows[5])

	var buf bytes.Buffer
	require.NoError(t, layout.Write(&buf))
	assert.Equal(t, strings.Join(rows, "\n")+"\n", buf.String())
}

func TestSummonerSection(t *testing.T) {
	s := SummonerSection("Faker#KR1", nil)
	require.Len(t, s.Body, 1)
	assert.Equal(t, "Summoner: Faker#KR1", s.Body[0].String())

	s = SummonerSection("A#B", &api.LeagueEntry{Tier: "GOLD", Rank: "II", LeaguePoints: 42, Wins: 6, Losses: 4})
	require.Len(t, s.Body, 3)
	assert.Equal(t, "Rank: Gold II - 42 LP", s.Body[1].String())
	assert.Contains(t, s.Body[2].String(), "60.0% (6W/4L)")

	s = SummonerSection("A#B", &api.LeagueEntry{Tier: "CHALLENGER", Rank: "I", LeaguePoints: 1500, Wins: 1})
	assert.Equal(t, "Rank: Challenger - 1500 LP", s.Body[1].String())
}

func TestMatchHistorySection(t *testing.T) {
	gd := 350
	loss := -120
	matches := []stats.PlayerMatch{
		{ChampionID: 62, ChampionName: "MonkeyKing", Position: "TOP", KDA: stats.KDA{Kills: 5, Deaths: 2, Assists: 3},
			MinionsKilled: 180, TimePlayed: 30 * time.Minute, Win: true, GoldDiff15: &gd},
		{ChampionID: 1, ChampionName: "Annie", Position: "MID", KDA: stats.KDA{Kills: 2},
			MinionsKilled: 100, TimePlayed: 20*time.Minute + 5*time.Second, GoldDiff15: &loss},
		{ChampionID: 2, ChampionName: "Olaf", Position: "JGL", KDA: stats.KDA{Deaths: 1}, TimePlayed: 10 * time.Minute},
	}
	champions := map[int]api.Champion{62: {ID: 62, Key: "MonkeyKing", Name: "Wukong"}}

	s := MatchHistorySection(matches, champions)
	assert.Equal(t, "Match History", s.Header)
	require.Len(t, s.Body, 3)
	assert.Equal(t, "30:00 - W - TOP - Wukong - 5/2/3    - 4.0 KDA - 6.0 CS/M - GD@15: +350", s.Body[0].String())
	assert.Equal(t, "20:05 - L - MID - Annie  - 2/0/0    - PERFECT - 5.0 CS/M - GD@15: -120", s.Body[1].String())
	assert.Equal(t, "10:00 - L - JGL - Olaf   - 0/1/0    - 0.0 KDA - 0.0 CS/M", s.Body[2].String())
}

func TestChampionStatsSection(t *testing.T) {
	champs := []stats.ChampionStats{
		{ChampionID: 1, ChampionName: "Annie", Stats: stats.GameStats{Wins: 1, Losses: 1,
			TimePlayed: 40 * time.Minute, MinionsKilled: 280, KDA: stats.KDA{Kills: 6, Deaths: 3, Assists: 3}}},
	}
	s := ChampionStatsSection(champs, 10, nil)
	assert.Equal(t, "Champion Stats (last 10 games)", s.Header)
	assert.Equal(t, "Annie -  50% WR - 3.0 KDA - 7.0 CS/M - 2 Played", s.Body[0].String())
}

func TestMasterySection(t *testing.T) {
	masteries := []api.ChampionMastery{
		{ChampionID: 62, ChampionLevel: 7, ChampionPoints: 250000},
		{ChampionID: 999, ChampionLevel: 3, ChampionPoints: 1200},
	}
	champions := map[int]api.Champion{62: {ID: 62, Name: "Wukong"}}
	s := MasterySection(masteries, champions)
	assert.Equal(t, "1. Wukong - Level 7 - 250000 points", s.Body[0].String())
	assert.Equal(t, "2. #999   - Level 3 - 1200 points", s.Body[1].String())
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, PrintJSON(&buf, map[string]int{"a": 1}))
	assert.Equal(t, "{\n  \"a\": 1\n}\n", buf.String())
}
