package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/colthorp/lolfetch-go/internal/core"
)

// MatchSource fetches match ids and match details. *api.RiotAPI satisfies it.
type MatchSource interface {
	MatchIDs(ctx context.Context, puuid string, region api.RegionalRoute, q api.MatchIDQuery) ([]string, error)
	MatchWithTimeline(ctx context.Context, region api.RegionalRoute, id string) (json.RawMessage, json.RawMessage, error)
}

// StopReason tells why a backfill ended.
type StopReason int

const (
	// StopTarget means the requested number of matches was paged through.
	StopTarget StopReason = iota
	// StopExhausted means the provider returned an empty page.
	StopExhausted
	// StopPatchMismatch means a match from another split was reached.
	StopPatchMismatch
)

func (r StopReason) String() string {
	switch r {
	case StopTarget:
		return "target reached"
	case StopExhausted:
		return "no more matches"
	case StopPatchMismatch:
		return "reached previous split"
	default:
		return "unknown"
	}
}

// BackfillOptions configures Backfill.
type BackfillOptions struct {
	PUUID  string
	Region api.RegionalRoute
	Queue  int
	// Target is the total number of matches to page through; 0 pages until
	// the history is exhausted or a previous split is reached.
	Target int
	// Persist writes the cache when done.
	Persist bool
}

// BackfillResult summarizes an ingestion run.
type BackfillResult struct {
	Records  []MatchRecord `json:"-"`
	Pages    int           `json:"pages"`
	Fetched  int           `json:"fetched"`
	Inserted int           `json:"inserted"`
	Existing int           `json:"existing"`
	Remakes  int           `json:"remakes"`
	Stop     StopReason    `json:"-"`
	Total    int           `json:"total"`
}

// ingest offers one id to the cache, fetching it only when missing.
// It returns the rejection, if any; other errors come from the source.
func ingest(ctx context.Context, c *Cache, src MatchSource, region api.RegionalRoute, id string, res *BackfillResult) (Rejection, error) {
	if c.Contains(id) {
		res.Existing++
		c.logger.Debug("match already cached", "match", id)
		return AlreadyExists, nil
	}

	info, timeline, err := src.MatchWithTimeline(ctx, region, id)
	if err != nil {
		return 0, err
	}
	res.Fetched++

	err = c.Insert(id, MatchRecord{ID: id, Info: info, Timeline: timeline})
	if err == nil {
		res.Inserted++
		return 0, nil
	}

	var rej Rejection
	if !errors.As(err, &rej) {
		return 0, err
	}
	switch rej {
	case AlreadyExists:
		res.Existing++
		c.logger.Debug("match already cached", "match", id)
	case Remake:
		res.Remakes++
		c.logger.Debug("skipping remake", "match", id)
	case PatchMismatch:
		c.logger.Info("match from another split, stopping", "match", id, "patch", c.currentPatch)
	}
	return rej, nil
}

// Backfill pages backwards through an account's match history and inserts
// every valid match into c, then saves c.
//
// Paging starts at an offset equal to the number of cached matches. Pages
// hold at most core.MaxPageSize ids and the offset advances by the size
// requested. The first match from another split ends the run without
// requesting further pages. Any source error aborts the run and c is not
// saved.
func Backfill(ctx context.Context, c *Cache, src MatchSource, opts BackfillOptions) (*BackfillResult, error) {
	res := &BackfillResult{Stop: StopTarget}

	start := c.Len()
	remaining := -1
	if opts.Target > 0 {
		remaining = max(opts.Target-c.Len(), 0)
	}

	c.logger.Debug("backfill", "start", start, "target", opts.Target, "queue", opts.Queue)

pages:
	for remaining != 0 {
		count := core.MaxPageSize
		if remaining > 0 {
			count = min(remaining, core.MaxPageSize)
		}

		ids, err := src.MatchIDs(ctx, opts.PUUID, opts.Region, api.MatchIDQuery{
			Start: start,
			Count: count,
			Queue: opts.Queue,
		})
		if err != nil {
			return nil, fmt.Errorf("backfill: %w", err)
		}
		res.Pages++
		if len(ids) == 0 {
			res.Stop = StopExhausted
			break
		}

		for _, id := range ids {
			rej, err := ingest(ctx, c, src, opts.Region, id, res)
			if err != nil {
				return nil, fmt.Errorf("backfill: %w", err)
			}
			if rej == PatchMismatch {
				res.Stop = StopPatchMismatch
				break pages
			}
		}

		start += count
		if remaining > 0 {
			remaining -= count
		}
	}

	res.Total = c.Len()
	records, err := c.Save(opts.Persist)
	if err != nil {
		return nil, err
	}
	res.Records = records
	return res, nil
}

// RefreshOptions configures Refresh.
type RefreshOptions struct {
	PUUID  string
	Region api.RegionalRoute
	Queue  int
	Count  int
}

// Refresh inserts the newest Count matches of an account that are missing
// from c. It stops at the first match from another split and does not save.
func Refresh(ctx context.Context, c *Cache, src MatchSource, opts RefreshOptions) (*BackfillResult, error) {
	res := &BackfillResult{Stop: StopTarget}

	for start := 0; start < opts.Count; start += core.MaxPageSize {
		count := min(opts.Count-start, core.MaxPageSize)
		ids, err := src.MatchIDs(ctx, opts.PUUID, opts.Region, api.MatchIDQuery{
			Start: start,
			Count: count,
			Queue: opts.Queue,
		})
		if err != nil {
			return nil, fmt.Errorf("refresh: %w", err)
		}
		res.Pages++
		if len(ids) == 0 {
			res.Stop = StopExhausted
			break
		}

		for _, id := range ids {
			rej, err := ingest(ctx, c, src, opts.Region, id, res)
			if err != nil {
				return nil, fmt.Errorf("refresh: %w", err)
			}
			if rej == PatchMismatch {
				res.Stop = StopPatchMismatch
				res.Total = c.Len()
				return res, nil
			}
		}
		if len(ids) < count {
			res.Stop = StopExhausted
			break
		}
	}

	res.Total = c.Len()
	return res, nil
}
