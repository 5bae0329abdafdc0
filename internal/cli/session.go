package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/colthorp/lolfetch-go/internal/api"
	"github.com/colthorp/lolfetch-go/internal/cache"
	"github.com/colthorp/lolfetch-go/internal/config"
	"github.com/colthorp/lolfetch-go/internal/core"
)

// session bundles the collaborators of one command run.
type session struct {
	riot   *api.RiotAPI
	static *api.StaticData
	store  *cache.Store
	quiet  bool
	logger *slog.Logger
}

// account is a resolved Riot ID.
type account struct {
	RiotID   core.RiotID
	Platform api.PlatformRoute
	PUUID    string
}

func (a account) identity() cache.Identity {
	return cache.Identity{Route: a.Platform, PUUID: a.PUUID}
}

// newSession wires the production collaborators from the config.
func newSession(c *config.Config) (*session, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	client := api.NewClient(c.APIKey, api.WithLogger(slog.Default()))
	return &session{
		riot:   api.NewRiotAPI(client),
		static: api.NewStaticData(""),
		store:  cache.NewStore(c.CacheDir),
		quiet:  quiet,
		logger: slog.Default().With("component", "cli"),
	}, nil
}

// orDefault returns flag unless it is empty.
func orDefault(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

// resolve looks up the PUUID of a Riot ID on a server.
func (s *session) resolve(ctx context.Context, riotID, server string) (*account, error) {
	id, err := core.ParseRiotID(riotID)
	if err != nil {
		return nil, err
	}
	platform, err := api.ParseServer(server)
	if err != nil {
		return nil, err
	}

	core.ProgressPrint(fmt.Sprintf("Looking up %s on %s…", id, platform), s.quiet)
	acc, err := s.riot.AccountByRiotID(ctx, platform.AccountRegion(), id)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("resolved account", "riot_id", id.String(), "puuid", acc.PUUID)
	return &account{RiotID: id, Platform: platform, PUUID: acc.PUUID}, nil
}
