package output

import (
	"fmt"
	"strings"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/colthorp/lolfetch-go/internal/stats"
)

const winRateBarWidth = 30

var apexTiers = map[string]bool{"MASTER": true, "GRANDMASTER": true, "CHALLENGER": true}

// SummonerSection shows the Riot ID and, when ranked, the tier, LP and a
// win-rate bar. Unranked entries are omitted.
func SummonerSection(riotID string, entry *api.LeagueEntry) Section {
	body := []Line{Plain("Summoner: " + riotID)}
	if entry == nil || entry.Tier == "" || strings.EqualFold(entry.Tier, "UNRANKED") {
		return Section{Body: body}
	}

	c := TierColor(entry.Tier)
	rank := titleCase(entry.Tier)
	if !apexTiers[strings.ToUpper(entry.Tier)] && entry.Rank != "" {
		rank += " " + entry.Rank
	}
	body = append(body, Plain("Rank: ").Append(Colored(fmt.Sprintf("%s - %d LP", rank, entry.LeaguePoints), c)))

	games := entry.Wins + entry.Losses
	if games > 0 {
		wr := float64(entry.Wins) / float64(games) * 100
		body = append(body, Plain(strings.Repeat(" ", 6)).Append(
			Bar(entry.Wins, entry.Losses, winRateBarWidth, c),
			Colored(fmt.Sprintf(" %.1f%%", wr), c),
			Plain(fmt.Sprintf(" (%dW/%dL)", entry.Wins, entry.Losses)),
		))
	}
	return Section{Body: body}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	s = strings.ToLower(s)
	return strings.ToUpper(s[:1]) + s[1:]
}

func championName(champions map[int]api.Champion, id int, fallback string) string {
	if c, ok := champions[id]; ok {
		return c.Name
	}
	if fallback != "" {
		return fallback
	}
	return fmt.Sprintf("#%d", id)
}

func kdaText(k stats.KDA, format string) string {
	if r, ok := k.Ratio(); ok {
		return fmt.Sprintf(format, r)
	}
	return "PERFECT"
}

// MatchHistorySection lists matches newest first.
func MatchHistorySection(matches []stats.PlayerMatch, champions map[int]api.Champion) Section {
	width := 0
	for _, m := range matches {
		width = max(width, len(championName(champions, m.ChampionID, m.ChampionName)))
	}

	body := make([]Line, 0, len(matches))
	for _, m := range matches {
		secs := int(m.TimePlayed.Seconds())
		line := Plain(fmt.Sprintf("%02d:%02d - ", secs/60, secs%60))
		if m.Win {
			line = line.Append(Colored("W", Blue))
		} else {
			line = line.Append(Colored("L", Red))
		}
		line = line.Append(Plain(fmt.Sprintf(" - %-3s - %-*s - %-8s - %s - %.1f CS/M",
			m.Position, width, championName(champions, m.ChampionID, m.ChampionName),
			m.KDA.String(), kdaText(m.KDA, "%.1f KDA"), m.CSPerMinute())))

		if m.GoldDiff15 != nil {
			diff := *m.GoldDiff15
			c := Red
			sign := ""
			if diff >= 0 {
				c = Green
			}
			if diff > 0 {
				sign = "+"
			}
			line = line.Append(Plain(" - GD@15: "), Colored(fmt.Sprintf("%s%d", sign, diff), c))
		}
		body = append(body, line)
	}
	return Section{Header: "Match History", Body: body}
}

// ChampionStatsSection shows per-champion aggregates of the last games.
func ChampionStatsSection(champs []stats.ChampionStats, games int, champions map[int]api.Champion) Section {
	width := 0
	for _, c := range champs {
		width = max(width, len(championName(champions, c.ChampionID, c.ChampionName)))
	}

	body := make([]Line, 0, len(champs))
	for _, c := range champs {
		body = append(body, Plain(fmt.Sprintf("%-*s - %3.0f%% WR - %s - %.1f CS/M - %d Played",
			width, championName(champions, c.ChampionID, c.ChampionName),
			c.Stats.WinRate()*100, kdaText(c.Stats.KDA, "%.1f KDA"),
			c.Stats.CSPerMinute(), c.Stats.Games())))
	}
	return Section{Header: fmt.Sprintf("Champion Stats (last %d games)", games), Body: body}
}

// MasterySection lists champion masteries, highest first.
func MasterySection(masteries []api.ChampionMastery, champions map[int]api.Champion) Section {
	width := 0
	for _, m := range masteries {
		width = max(width, len(championName(champions, m.ChampionID, "")))
	}

	body := make([]Line, 0, len(masteries))
	for i, m := range masteries {
		body = append(body, Plain(fmt.Sprintf("%d. %-*s - Level %d - %d points",
			i+1, width, championName(champions, m.ChampionID, ""), m.ChampionLevel, m.ChampionPoints)))
	}
	return Section{Header: "Champion Mastery", Body: body}
}
