package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/colthorp/lolfetch-go/internal/cache"
	"github.com/colthorp/lolfetch-go/internal/core"
	"github.com/colthorp/lolfetch-go/internal/output"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheLoadCmd)

	addAccountFlags(cacheClearCmd)

	addAccountFlags(cacheLoadCmd)
	cacheLoadCmd.Flags().String("queue", "solo", "Ranked queue to load (solo or flex)")
	cacheLoadCmd.Flags().Int("matches", 0, "Number of matches to page through (default: until the previous split)")
	cacheLoadCmd.Flags().Bool("no-save", false, "Do not write the cache to disk")
}

func addAccountFlags(cmd *cobra.Command) {
	cmd.Flags().String("riot-id", "", "Riot ID (name#tag)")
	cmd.Flags().String("server", "", "Server of the account (EUW, NA, KR, ...)")
}

// cacheCmd groups cache maintenance commands
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the local match cache",
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Clear the cache of one account, or of every account",
	RunE:  handleCacheClear,
}

var cacheLoadCmd = &cobra.Command{
	Use:   "load",
	Short: "Backfill the cache with ranked matches of the current split",
	RunE:  handleCacheLoad,
}

func handleCacheClear(cmd *cobra.Command, args []string) error {
	riotID, _ := cmd.Flags().GetString("riot-id")
	server, _ := cmd.Flags().GetString("server")

	if (riotID == "") != (server == "") {
		return fmt.Errorf("--riot-id and --server must be used together")
	}
	if riotID == "" {
		core.ProgressPrint("Clearing cache for all summoners…", quiet)
		return cache.NewStore(cfg.CacheDir).Clear(nil)
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}
	acc, err := sess.resolve(cmd.Context(), riotID, server)
	if err != nil {
		return err
	}
	core.ProgressPrint(fmt.Sprintf("Clearing cache for %s…", acc.RiotID), quiet)
	id := acc.identity()
	return sess.store.Clear(&id)
}

// loadOptions are the parsed flags of `cache load`.
type loadOptions struct {
	RiotID  string
	Server  string
	Queue   int
	Matches int
	NoSave  bool
}

func handleCacheLoad(cmd *cobra.Command, args []string) error {
	riotID, _ := cmd.Flags().GetString("riot-id")
	server, _ := cmd.Flags().GetString("server")
	queueName, _ := cmd.Flags().GetString("queue")
	matches, _ := cmd.Flags().GetInt("matches")
	noSave, _ := cmd.Flags().GetBool("no-save")

	queue, err := core.ParseQueue(queueName)
	if err != nil {
		return err
	}
	if matches < 0 {
		return fmt.Errorf("--matches must not be negative")
	}

	sess, err := newSession(cfg)
	if err != nil {
		return err
	}

	res, err := runCacheLoad(cmd.Context(), sess, loadOptions{
		RiotID:  orDefault(riotID, cfg.RiotID),
		Server:  orDefault(server, cfg.Server),
		Queue:   queue,
		Matches: matches,
		NoSave:  noSave,
	})
	if err != nil {
		return err
	}

	if raw {
		return output.PrintJSON(cmd.OutOrStdout(), res)
	}
	printLoadSummary(cmd.OutOrStdout(), res)
	return nil
}

// loadSummary is the outcome of `cache load`.
type loadSummary struct {
	*cache.BackfillResult
	RiotID string `json:"riotId"`
	Queue  string `json:"queue"`
	Patch  string `json:"patch"`
	Stop   string `json:"stop"`
	Saved  bool   `json:"saved"`
}

func runCacheLoad(ctx context.Context, sess *session, opts loadOptions) (*loadSummary, error) {
	acc, err := sess.resolve(ctx, opts.RiotID, opts.Server)
	if err != nil {
		return nil, err
	}

	patch, err := sess.static.LatestPatch(ctx)
	if err != nil {
		return nil, err
	}

	c, err := sess.store.Load(acc.identity(), patch)
	if err != nil {
		return nil, err
	}

	core.ProgressPrint(fmt.Sprintf("Loading %s matches for %s (patch %s, %d cached)…",
		core.QueueName(opts.Queue), acc.RiotID, patch, c.Len()), sess.quiet)

	res, err := cache.Backfill(ctx, c, sess.riot, cache.BackfillOptions{
		PUUID:   acc.PUUID,
		Region:  acc.Platform.Regional(),
		Queue:   opts.Queue,
		Target:  opts.Matches,
		Persist: !opts.NoSave,
	})
	if err != nil {
		return nil, err
	}

	return &loadSummary{
		BackfillResult: res,
		RiotID:         acc.RiotID.String(),
		Queue:          core.QueueName(opts.Queue),
		Patch:          patch,
		Stop:           res.Stop.String(),
		Saved:          !opts.NoSave,
	}, nil
}

func printLoadSummary(w io.Writer, s *loadSummary) {
	fmt.Fprintf(w, "%s (%s queue, patch %s)\n", s.RiotID, s.Queue, s.Patch)
	fmt.Fprintf(w, "  inserted: %d\n", s.Inserted)
	fmt.Fprintf(w, "  skipped:  %d cached, %d remakes\n", s.Existing, s.Remakes)
	fmt.Fprintf(w, "  stopped:  %s after %d pages\n", s.Stop, s.Pages)
	fmt.Fprintf(w, "  total:    %d matches", s.Total)
	if !s.Saved {
		fmt.Fprint(w, " (not saved)")
	}
	fmt.Fprintln(w)
}
