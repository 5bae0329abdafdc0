package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/colthorp/lolfetch-go/internal/ascii"
	"github.com/colthorp/lolfetch-go/internal/cache"
	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/colthorp/lolfetch-go/internal/output"
	"github.com/colthorp/lolfetch-go/internal/stats"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"golang.org/x/sync/errgroup"
)

// Display modes
const (
	modeRanked        = "ranked"
	modeMastery       = "mastery"
	modeRecentMatches = "recent-matches"
)

// Image sources
const (
	imageDefault  = "default"
	imageRank     = "rank"
	imageChampion = "champion"
	imageProfile  = "profile"
	imageCustom   = "custom"
)

// minInfoWidth is the narrowest info column kept next to the art.
const minInfoWidth = 40

func init() {
	rootCmd.AddCommand(displayCmd)
	displayCmd.AddCommand(displayRankedCmd)
	displayCmd.AddCommand(displayMasteryCmd)
	displayCmd.AddCommand(displayRecentCmd)

	for _, cmd := range []*cobra.Command{displayRankedCmd, displayMasteryCmd, displayRecentCmd} {
		addAccountFlags(cmd)
		cmd.Flags().String("image", "", "Image next to the info: default, rank, champion, profile or custom")
		cmd.Flags().String("champion", "", "Champion shown with --image champion")
		cmd.Flags().String("custom-img-url", "", "Image URL or file shown with --image custom")
	}

	for _, cmd := range []*cobra.Command{displayRankedCmd, displayRecentCmd} {
		cmd.Flags().String("queue", "solo", "Ranked queue (solo or flex)")
		cmd.Flags().Int("recent-matches", 5, "Number of matches in the match history")
		cmd.Flags().Bool("no-save", false, "Do not write fetched matches to the cache")
	}
	displayRankedCmd.Flags().Int("games", 10, "Number of games the champion stats cover")
	displayRankedCmd.Flags().Int("top-champions", 5, "Number of champions in the champion stats")

	displayMasteryCmd.Flags().Int("mastery-champions", 10, "Number of champions in the mastery list")
}

// displayCmd groups the display modes
var displayCmd = &cobra.Command{
	Use:   "display",
	Short: "Show account info next to ASCII art",
}

var displayRankedCmd = &cobra.Command{
	Use:   modeRanked,
	Short: "Rank, match history and champion stats",
	RunE:  handleDisplay(modeRanked),
}

var displayMasteryCmd = &cobra.Command{
	Use:   modeMastery,
	Short: "Champion mastery",
	RunE:  handleDisplay(modeMastery),
}

var displayRecentCmd = &cobra.Command{
	Use:   modeRecentMatches,
	Short: "Rank and match history",
	RunE:  handleDisplay(modeRecentMatches),
}

// displayOptions are the parsed flags of a display mode.
type displayOptions struct {
	Mode             string
	RiotID           string
	Server           string
	Queue            int
	Games            int
	RecentMatches    int
	TopChampions     int
	MasteryChampions int
	Image            string
	Champion         string
	CustomImage      string
	NoSave           bool
}

// flagInt reads an int flag the command may not define.
func flagInt(cmd *cobra.Command, name string) int {
	if cmd.Flags().Lookup(name) == nil {
		return 0
	}
	v, _ := cmd.Flags().GetInt(name)
	return v
}

func parseDisplayOptions(cmd *cobra.Command, mode string) (displayOptions, error) {
	opts := displayOptions{
		Mode:             mode,
		Games:            flagInt(cmd, "games"),
		RecentMatches:    flagInt(cmd, "recent-matches"),
		TopChampions:     flagInt(cmd, "top-champions"),
		MasteryChampions: flagInt(cmd, "mastery-champions"),
	}
	riotID, _ := cmd.Flags().GetString("riot-id")
	server, _ := cmd.Flags().GetString("server")
	image, _ := cmd.Flags().GetString("image")
	opts.RiotID = orDefault(riotID, cfg.RiotID)
	opts.Server = orDefault(server, cfg.Server)
	opts.Image = orDefault(image, cfg.Image)
	opts.Champion, _ = cmd.Flags().GetString("champion")
	opts.CustomImage, _ = cmd.Flags().GetString("custom-img-url")

	if f := cmd.Flags().Lookup("games"); f != nil && !f.Changed && cfg.Games > 0 {
		opts.Games = cfg.Games
	}
	if mode == modeRecentMatches {
		opts.Games = opts.RecentMatches
	}

	if cmd.Flags().Lookup("queue") != nil {
		name, _ := cmd.Flags().GetString("queue")
		q, err := core.ParseQueue(name)
		if err != nil {
			return opts, err
		}
		opts.Queue = q
		opts.NoSave, _ = cmd.Flags().GetBool("no-save")
	}
	return opts, opts.validate()
}

func (o displayOptions) validate() error {
	switch o.Mode {
	case modeRanked:
		if o.Games <= 0 {
			return fmt.Errorf("--games must be greater than 0")
		}
		if o.TopChampions < 0 {
			return fmt.Errorf("--top-champions must not be negative")
		}
		fallthrough
	case modeRecentMatches:
		if o.RecentMatches < 0 {
			return fmt.Errorf("--recent-matches must not be negative")
		}
	case modeMastery:
		if o.MasteryChampions <= 0 {
			return fmt.Errorf("--mastery-champions must be greater than 0")
		}
	default:
		return fmt.Errorf("unknown display mode '%s'", o.Mode)
	}

	switch o.Image {
	case "", imageDefault, imageRank, imageProfile:
	case imageChampion:
		if o.Champion == "" {
			return fmt.Errorf("--image champion requires --champion")
		}
	case imageCustom:
		if o.CustomImage == "" {
			return fmt.Errorf("--image custom requires --custom-img-url")
		}
	default:
		return fmt.Errorf("invalid image '%s' (expected default, rank, champion, profile or custom)", o.Image)
	}
	return nil
}

func handleDisplay(mode string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		opts, err := parseDisplayOptions(cmd, mode)
		if err != nil {
			return err
		}
		sess, err := newSession(cfg)
		if err != nil {
			return err
		}

		data, err := gatherDisplay(cmd.Context(), sess, opts)
		if err != nil {
			return err
		}
		if raw {
			return output.PrintJSON(cmd.OutOrStdout(), data)
		}

		art := renderArt(cmd.Context(), sess, data.ImageSource)
		return writeDisplay(cmd.OutOrStdout(), data, art)
	}
}

// displayData is everything a display mode shows. ImageSource is a URL
// or, for custom images, possibly a file path.
type displayData struct {
	Mode        string                `json:"mode"`
	RiotID      string                `json:"riotId"`
	Patch       string                `json:"patch"`
	Summoner    *api.Summoner         `json:"summoner"`
	Ranked      *api.LeagueEntry      `json:"ranked,omitempty"`
	Masteries   []api.ChampionMastery `json:"masteries,omitempty"`
	Matches     []stats.PlayerMatch   `json:"matches,omitempty"`
	Champions   []stats.ChampionStats `json:"champions,omitempty"`
	Games       int                   `json:"games,omitempty"`
	ImageSource string                `json:"image"`

	championList map[int]api.Champion
	recent       int
}

func queueType(queue int) string {
	if queue == core.QueueRankedFlex {
		return api.QueueTypeFlex
	}
	return api.QueueTypeSolo
}

// gatherDisplay fetches and aggregates the data of a display mode.
func gatherDisplay(ctx context.Context, sess *session, opts displayOptions) (*displayData, error) {
	acc, err := sess.resolve(ctx, opts.RiotID, opts.Server)
	if err != nil {
		return nil, err
	}
	patch, err := sess.static.LatestPatch(ctx)
	if err != nil {
		return nil, err
	}

	data := &displayData{
		Mode:   opts.Mode,
		RiotID: acc.RiotID.String(),
		Patch:  patch,
		recent: opts.RecentMatches,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := sess.riot.SummonerByPUUID(gctx, acc.Platform, acc.PUUID)
		data.Summoner = s
		return err
	})
	g.Go(func() error {
		champs, err := sess.static.Champions(gctx, patch)
		data.championList = champs
		return err
	})
	if opts.Mode != modeMastery {
		g.Go(func() error {
			entries, err := sess.riot.LeagueEntries(gctx, acc.Platform, acc.PUUID)
			if err != nil {
				return err
			}
			if e, ok := api.RankedEntry(entries, queueType(opts.Queue)); ok {
				data.Ranked = &e
			}
			return nil
		})
	}
	if opts.Mode == modeMastery {
		g.Go(func() error {
			m, err := sess.riot.TopMasteries(gctx, acc.Platform, acc.PUUID, opts.MasteryChampions)
			data.Masteries = m
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if opts.Mode != modeMastery {
		records, err := recentRecords(ctx, sess, acc, patch, opts)
		if err != nil {
			return nil, err
		}
		views, skipped := stats.PlayerViews(records, acc.PUUID)
		if len(skipped) > 0 {
			sess.logger.Warn("matches without the player skipped", "count", len(skipped))
		}
		data.Matches = views
		data.Games = len(views)
		if opts.Mode == modeRanked {
			data.Champions = stats.ByChampion(views, opts.TopChampions)
		}
	}

	src, err := imageSource(sess.static, data, opts)
	if err != nil {
		return nil, err
	}
	data.ImageSource = src
	return data, nil
}

// recentRecords refreshes the cache and returns the newest opts.Games
// records of the queue.
func recentRecords(ctx context.Context, sess *session, acc *account, patch string, opts displayOptions) ([]cache.MatchRecord, error) {
	c, err := sess.store.Load(acc.identity(), patch)
	if err != nil {
		return nil, err
	}

	core.ProgressPrint(fmt.Sprintf("Fetching the last %d %s matches…", opts.Games, core.QueueName(opts.Queue)), sess.quiet)
	if _, err := cache.Refresh(ctx, c, sess.riot, cache.RefreshOptions{
		PUUID:  acc.PUUID,
		Region: acc.Platform.Regional(),
		Queue:  opts.Queue,
		Count:  opts.Games,
	}); err != nil {
		return nil, err
	}

	records, err := c.Save(!opts.NoSave)
	if err != nil {
		return nil, err
	}

	out := make([]cache.MatchRecord, 0, opts.Games)
	for _, rec := range records {
		if len(out) == opts.Games {
			break
		}
		if int(gjson.GetBytes(rec.Info, "queueId").Int()) == opts.Queue {
			out = append(out, rec)
		}
	}
	return out, nil
}

// imageSource picks the art shown next to the info.
func imageSource(static *api.StaticData, data *displayData, opts displayOptions) (string, error) {
	image := opts.Image
	if image == "" || image == imageDefault {
		switch opts.Mode {
		case modeRanked:
			image = imageRank
		case modeMastery:
			if len(data.Masteries) > 0 {
				if c, ok := data.championList[data.Masteries[0].ChampionID]; ok {
					return static.ChampionIconURL(data.Patch, c.Key), nil
				}
			}
			image = imageProfile
		default:
			image = imageProfile
		}
	}

	switch image {
	case imageRank:
		tier := "UNRANKED"
		if data.Ranked != nil && data.Ranked.Tier != "" {
			tier = data.Ranked.Tier
		}
		return api.RankEmblemURL(tier), nil
	case imageChampion:
		c, ok := api.ChampionByName(data.championList, opts.Champion)
		if !ok {
			return "", fmt.Errorf("unknown champion '%s'", opts.Champion)
		}
		return static.ChampionIconURL(data.Patch, c.Key), nil
	case imageProfile:
		icon := 0
		if data.Summoner != nil {
			icon = data.Summoner.ProfileIconID
		}
		return api.ProfileIconURL(data.Patch, icon), nil
	case imageCustom:
		return opts.CustomImage, nil
	}
	return "", fmt.Errorf("invalid image '%s'", image)
}

func isURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// renderArt converts the image to ASCII art. Failures are logged and
// yield no art.
func renderArt(ctx context.Context, sess *session, src string) []output.Line {
	var (
		art []output.Line
		err error
	)
	if isURL(src) {
		art, err = ascii.FromURL(ctx, sess.static, src, core.ImageWidth, core.ImageHeight)
	} else {
		art, err = ascii.FromFile(src, core.ImageWidth, core.ImageHeight)
	}
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			sess.logger.Warn("image unavailable", "source", src, "error", err)
		}
		return nil
	}
	return art
}

func (d *displayData) sections() []output.Section {
	switch d.Mode {
	case modeMastery:
		return []output.Section{
			output.SummonerSection(d.RiotID, nil),
			output.MasterySection(d.Masteries, d.championList),
		}
	case modeRanked:
		return []output.Section{
			output.SummonerSection(d.RiotID, d.Ranked),
			output.MatchHistorySection(firstN(d.Matches, d.recent), d.championList),
			output.ChampionStatsSection(d.Champions, d.Games, d.championList),
		}
	default:
		return []output.Section{
			output.SummonerSection(d.RiotID, d.Ranked),
			output.MatchHistorySection(firstN(d.Matches, d.recent), d.championList),
		}
	}
}

func firstN[T any](s []T, n int) []T {
	if n >= 0 && len(s) > n {
		return s[:n]
	}
	return s
}

// writeDisplay prints the art and sections. The art is dropped when the
// terminal cannot fit it next to the info.
func writeDisplay(w io.Writer, d *displayData, art []output.Line) error {
	width := core.TerminalWidth(w, 0)
	if width > 0 && width < core.ImageWidth+core.CenterPadLength+minInfoWidth {
		art = nil
	}
	layout := output.Layout{
		Art:      art,
		Sections: d.sections(),
		Padding:  core.CenterPadLength,
		Color:    core.IsTerminal(w) && os.Getenv("NO_COLOR") == "",
	}
	return layout.Write(w)
}
