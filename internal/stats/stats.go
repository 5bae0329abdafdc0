// Package stats derives per-player figures from cached match records.
package stats

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/colthorp/lolfetch-go/internal/cache"
	"github.com/tidwall/gjson"
)

var (
	// ErrParticipantNotFound means the player did not take part in the match.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrTeamNotFound means the player's team is missing from the match.
	ErrTeamNotFound = errors.New("team not found")
)

// GoldDiffMinute is the timeline frame used for the lane gold comparison.
const GoldDiffMinute = 15

var positions = map[string]string{
	"TOP":     "TOP",
	"JUNGLE":  "JGL",
	"MIDDLE":  "MID",
	"BOTTOM":  "BOT",
	"UTILITY": "SUP",
}

// ShortPosition abbreviates a match-v5 teamPosition. Unknown values are
// returned unchanged.
func ShortPosition(p string) string {
	if s, ok := positions[p]; ok {
		return s
	}
	return p
}

// KDA holds kills, deaths and assists.
type KDA struct {
	Kills   int `json:"kills"`
	Deaths  int `json:"deaths"`
	Assists int `json:"assists"`
}

// Ratio returns (kills+assists)/deaths. It returns false for a perfect
// score (no deaths).
func (k KDA) Ratio() (float64, bool) {
	if k.Deaths == 0 {
		return 0, false
	}
	return float64(k.Kills+k.Assists) / float64(k.Deaths), true
}

// Add sums two scores.
func (k KDA) Add(o KDA) KDA {
	return KDA{Kills: k.Kills + o.Kills, Deaths: k.Deaths + o.Deaths, Assists: k.Assists + o.Assists}
}

func (k KDA) String() string {
	return fmt.Sprintf("%d/%d/%d", k.Kills, k.Deaths, k.Assists)
}

// PlayerMatch is one match seen from a single player.
type PlayerMatch struct {
	MatchID       string        `json:"matchId"`
	GameCreation  int64         `json:"gameCreation"`
	ChampionID    int           `json:"championId"`
	ChampionName  string        `json:"championName"`
	Position      string        `json:"position"`
	KDA           KDA           `json:"kda"`
	MinionsKilled int           `json:"minionsKilled"`
	TimePlayed    time.Duration `json:"timePlayed"`
	Win           bool          `json:"win"`
	// GoldDiff15 is nil when the timeline or the lane opponent is missing.
	GoldDiff15 *int `json:"goldDiff15,omitempty"`
}

// PlayerView extracts the figures of puuid from a match record.
func PlayerView(rec cache.MatchRecord, puuid string) (PlayerMatch, error) {
	info := gjson.ParseBytes(rec.Info)

	var participant gjson.Result
	var maxTime int64
	for _, p := range info.Get("participants").Array() {
		if p.Get("puuid").String() == puuid {
			participant = p
		}
		maxTime = max(maxTime, p.Get("timePlayed").Int())
	}
	if !participant.Exists() {
		return PlayerMatch{}, fmt.Errorf("match %s: %w", rec.ID, ErrParticipantNotFound)
	}

	teamID := participant.Get("teamId").Int()
	team := info.Get(fmt.Sprintf("teams.#(teamId==%d)", teamID))
	if !team.Exists() {
		return PlayerMatch{}, fmt.Errorf("match %s: %w", rec.ID, ErrTeamNotFound)
	}

	m := PlayerMatch{
		MatchID:      rec.ID,
		GameCreation: rec.GameCreation(),
		ChampionID:   int(participant.Get("championId").Int()),
		ChampionName: participant.Get("championName").String(),
		Position:     ShortPosition(participant.Get("teamPosition").String()),
		KDA: KDA{
			Kills:   int(participant.Get("kills").Int()),
			Deaths:  int(participant.Get("deaths").Int()),
			Assists: int(participant.Get("assists").Int()),
		},
		MinionsKilled: int(participant.Get("totalMinionsKilled").Int() +
			participant.Get("totalAllyJungleMinionsKilled").Int() +
			participant.Get("totalEnemyJungleMinionsKilled").Int()),
		TimePlayed: time.Duration(maxTime) * time.Second,
		Win:        team.Get("win").Bool(),
	}

	if diff, ok := laneGoldDiff(info, participant, rec.Timeline, GoldDiffMinute); ok {
		m.GoldDiff15 = &diff
	}
	return m, nil
}

// laneGoldDiff compares the total gold of the player with the enemy in the
// same team position at the given minute.
func laneGoldDiff(info, participant gjson.Result, timeline []byte, minute int) (int, bool) {
	if len(timeline) == 0 {
		return 0, false
	}
	position := participant.Get("teamPosition").String()
	if position == "" {
		return 0, false
	}

	var opponent gjson.Result
	for _, p := range info.Get("participants").Array() {
		if p.Get("teamId").Int() != participant.Get("teamId").Int() && p.Get("teamPosition").String() == position {
			opponent = p
			break
		}
	}
	if !opponent.Exists() {
		return 0, false
	}

	return GoldDiffAt(timeline, participant.Get("participantId").Int(), opponent.Get("participantId").Int(), minute)
}

// GoldDiffAt returns the total gold of participant a minus that of b in the
// timeline frame of the given minute.
func GoldDiffAt(timeline []byte, a, b int64, minute int) (int, bool) {
	frame := gjson.GetBytes(timeline, "frames."+strconv.Itoa(minute)+".participantFrames")
	if !frame.Exists() {
		return 0, false
	}
	goldA := frame.Get(strconv.FormatInt(a, 10) + ".totalGold")
	goldB := frame.Get(strconv.FormatInt(b, 10) + ".totalGold")
	if !goldA.Exists() || !goldB.Exists() {
		return 0, false
	}
	return int(goldA.Int() - goldB.Int()), true
}

// CSPerMinute returns minions killed per minute played.
func (m PlayerMatch) CSPerMinute() float64 {
	return perMinute(m.MinionsKilled, m.TimePlayed)
}

func perMinute(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Minutes()
}

// GameStats aggregates several matches.
type GameStats struct {
	Wins          int           `json:"wins"`
	Losses        int           `json:"losses"`
	TimePlayed    time.Duration `json:"timePlayed"`
	MinionsKilled int           `json:"minionsKilled"`
	KDA           KDA           `json:"kda"`
}

// Add accounts one match.
func (s *GameStats) Add(m PlayerMatch) {
	s.KDA = s.KDA.Add(m.KDA)
	s.TimePlayed += m.TimePlayed
	s.MinionsKilled += m.MinionsKilled
	if m.Win {
		s.Wins++
	} else {
		s.Losses++
	}
}

// Games returns the number of matches accounted.
func (s GameStats) Games() int {
	return s.Wins + s.Losses
}

// WinRate returns the fraction of matches won, 0 when empty.
func (s GameStats) WinRate() float64 {
	if s.Games() == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Games())
}

// CSPerMinute returns minions killed per minute over all matches.
func (s GameStats) CSPerMinute() float64 {
	return perMinute(s.MinionsKilled, s.TimePlayed)
}

// ChampionStats is the aggregate of one champion.
type ChampionStats struct {
	ChampionID   int       `json:"championId"`
	ChampionName string    `json:"championName"`
	Stats        GameStats `json:"stats"`
}

// ByChampion aggregates matches per champion, most played first, and keeps
// at most limit entries (all when limit <= 0). Equal counts are ordered by
// champion name.
func ByChampion(matches []PlayerMatch, limit int) []ChampionStats {
	index := make(map[int]int)
	var out []ChampionStats
	for _, m := range matches {
		i, ok := index[m.ChampionID]
		if !ok {
			i = len(out)
			index[m.ChampionID] = i
			out = append(out, ChampionStats{ChampionID: m.ChampionID, ChampionName: m.ChampionName})
		}
		out[i].Stats.Add(m)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Stats.Games() != out[j].Stats.Games() {
			return out[i].Stats.Games() > out[j].Stats.Games()
		}
		return out[i].ChampionName < out[j].ChampionName
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// PlayerViews converts records with PlayerView, skipping records the
// player is missing from. The skipped ids are returned.
func PlayerViews(records []cache.MatchRecord, puuid string) ([]PlayerMatch, []string) {
	views := make([]PlayerMatch, 0, len(records))
	var skipped []string
	for _, rec := range records {
		m, err := PlayerView(rec, puuid)
		if err != nil {
			skipped = append(skipped, rec.ID)
			continue
		}
		views = append(views, m)
	}
	return views, skipped
}
