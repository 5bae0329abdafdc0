package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/tidwall/gjson"
)

// StaticData reads Data Dragon. The latest patch is fetched at most once per
// instance; callers construct one instance per run and pass the patch on.
type StaticData struct {
	baseURL    string
	httpClient *http.Client

	mu    sync.Mutex
	patch string
}

// NewStaticData creates a Data Dragon client. An empty baseURL selects the
// public endpoint.
func NewStaticData(baseURL string) *StaticData {
	if baseURL == "" {
		baseURL = core.DataDragonURL
	}
	return &StaticData{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

// Get downloads url and returns the body. Non-200 responses are errors.
func (s *StaticData) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "unexpected status from " + url}
	}

	const maxBodySize = 20 * 1024 * 1024
	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(raw) > maxBodySize {
		return nil, fmt.Errorf("response body too large (exceeds %d bytes)", maxBodySize)
	}
	return raw, nil
}

// LatestPatch returns the newest game version listed by Data Dragon.
func (s *StaticData) LatestPatch(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.patch != "" {
		return s.patch, nil
	}

	raw, err := s.Get(ctx, s.baseURL+"/api/versions.json")
	if err != nil {
		return "", fmt.Errorf("latest patch: %w", err)
	}
	var versions []string
	if err := json.Unmarshal(raw, &versions); err != nil {
		return "", fmt.Errorf("latest patch: parsing versions: %w", err)
	}
	if len(versions) == 0 {
		return "", fmt.Errorf("latest patch: empty version list")
	}

	s.patch = versions[0]
	return s.patch, nil
}

// Champions returns the champion list of a patch keyed by numeric id.
func (s *StaticData) Champions(ctx context.Context, patch string) (map[int]Champion, error) {
	raw, err := s.Get(ctx, fmt.Sprintf("%s/cdn/%s/data/en_US/champion.json", s.baseURL, patch))
	if err != nil {
		return nil, fmt.Errorf("champions: %w", err)
	}
	data := gjson.GetBytes(raw, "data")
	if !data.IsObject() {
		return nil, fmt.Errorf("champions: response has no data object")
	}

	champions := make(map[int]Champion)
	data.ForEach(func(_, value gjson.Result) bool {
		id, err := strconv.Atoi(value.Get("key").String())
		if err != nil {
			return true
		}
		champions[id] = Champion{
			ID:   id,
			Key:  value.Get("id").String(),
			Name: value.Get("name").String(),
		}
		return true
	})
	return champions, nil
}

// ChampionIconURL returns the square icon of a champion by asset key.
func (s *StaticData) ChampionIconURL(patch, key string) string {
	return fmt.Sprintf("%s/cdn/%s/img/champion/%s.png", s.baseURL, patch, key)
}

// ProfileIconURL returns the Community Dragon URL of a profile icon.
func ProfileIconURL(patch string, iconID int) string {
	return fmt.Sprintf("%s/%s/profile-icon/%d", core.CommunityDragonURL, patch, iconID)
}

var rankEmblems = map[string]string{
	"IRON":        "https://static.wikia.nocookie.net/leagueoflegends/images/f/f8/Season_2023_-_Iron.png/revision/latest",
	"BRONZE":      "https://static.wikia.nocookie.net/leagueoflegends/images/c/cb/Season_2023_-_Bronze.png/revision/latest",
	"SILVER":      "https://static.wikia.nocookie.net/leagueoflegends/images/c/c4/Season_2023_-_Silver.png/revision/latest",
	"GOLD":        "https://static.wikia.nocookie.net/leagueoflegends/images/7/78/Season_2023_-_Gold.png/revision/latest",
	"PLATINUM":    "https://static.wikia.nocookie.net/leagueoflegends/images/b/bd/Season_2023_-_Platinum.png/revision/latest",
	"EMERALD":     "https://static.wikia.nocookie.net/leagueoflegends/images/4/4b/Season_2023_-_Emerald.png/revision/latest",
	"DIAMOND":     "https://static.wikia.nocookie.net/leagueoflegends/images/3/37/Season_2023_-_Diamond.png/revision/latest",
	"MASTER":      "https://static.wikia.nocookie.net/leagueoflegends/images/d/d5/Season_2023_-_Master.png/revision/latest",
	"GRANDMASTER": "https://static.wikia.nocookie.net/leagueoflegends/images/6/64/Season_2023_-_Grandmaster.png/revision/latest",
	"CHALLENGER":  "https://static.wikia.nocookie.net/leagueoflegends/images/1/14/Season_2023_-_Challenger.png/revision/latest",
	"UNRANKED":    "https://static.wikia.nocookie.net/leagueoflegends/images/3/3e/Season_2022_-_Unranked.png/revision/latest",
}

// RankEmblemURL returns the emblem image of a tier; unknown tiers get the
// unranked emblem.
func RankEmblemURL(tier string) string {
	if u, ok := rankEmblems[strings.ToUpper(tier)]; ok {
		return u
	}
	return rankEmblems["UNRANKED"]
}

// ChampionByName finds a champion by display name or asset key, ignoring
// case and non-letters ("kai'sa" matches "Kai'Sa").
func ChampionByName(champions map[int]Champion, name string) (Champion, bool) {
	want := normalizeName(name)
	for _, c := range champions {
		if normalizeName(c.Name) == want || normalizeName(c.Key) == want {
			return c, true
		}
	}
	return Champion{}, false
}

func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
