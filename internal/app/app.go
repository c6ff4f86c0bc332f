package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cricsight/cricsight/external/cricclubs"
	"github.com/cricsight/cricsight/internal/config"
	"github.com/cricsight/cricsight/internal/domain/match"
	"github.com/cricsight/cricsight/internal/domain/series"
	"github.com/cricsight/cricsight/internal/domain/stats"
	"github.com/cricsight/cricsight/internal/infrastructure/assets"
	cachedrepo "github.com/cricsight/cricsight/internal/infrastructure/repository/cache"
	"github.com/cricsight/cricsight/internal/infrastructure/repository/memory"
	"github.com/cricsight/cricsight/internal/infrastructure/repository/postgres"
	"github.com/cricsight/cricsight/internal/infrastructure/snapshot"
	"github.com/cricsight/cricsight/internal/interfaces/httpapi"
	"github.com/cricsight/cricsight/internal/platform/cache"
	"github.com/cricsight/cricsight/internal/platform/logging"
	"github.com/cricsight/cricsight/internal/platform/resilience"
	"github.com/cricsight/cricsight/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *slog.Logger) (*http.Server, error) {
	statsRepo, matchRepo, mapping, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	ttl := cfg.CacheTTL
	if !cfg.CacheEnabled {
		// A sub-millisecond TTL keeps singleflight collapse without serving
		// stale passes.
		ttl = time.Nanosecond
	}

	session := usecase.NewSessionService(
		usecase.NewFilterService(matchRepo, mapping),
		usecase.NewStatsService(statsRepo, cfg.RecomputeWorkers),
		usecase.NewLeaderboardService(cfg.LeaderboardSize, cfg.LeaderboardMinSRBalls),
		usecase.NewTeamReportService(),
		cache.NewStore(ttl),
		cfg.FilterDebounce,
		logger,
	)

	handler := httpapi.NewHandler(session, mapping, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

// buildRepositories picks the snapshot source: exporter files on disk first,
// then Postgres, then the CricClubs exporter endpoint, then seed data.
func buildRepositories(
	ctx context.Context,
	cfg config.Config,
	logger *slog.Logger,
) (stats.Repository, match.Repository, series.Mapping, error) {
	if cfg.HasAssetPaths() {
		bundle, err := assets.Load(ctx, assets.Paths{
			PlayerStatsPath:  cfg.PlayerStatsPath,
			MatchResultsPath: cfg.MatchResultsPath,
			SeriesPath:       cfg.SeriesListPath,
		})
		if err != nil {
			return nil, nil, series.Mapping{}, fmt.Errorf("load exporter files: %w", err)
		}
		logSnapshot(ctx, logger, "assets", bundle)
		return repositoriesFromBundle(bundle)
	}

	if cfg.DBURL != "" {
		db, err := postgres.Open(ctx, cfg.DBURL)
		if err != nil {
			return nil, nil, series.Mapping{}, fmt.Errorf("open postgres: %w", err)
		}
		// Recompute passes list the full snapshot; read-through caching keeps
		// them off the database between refreshes.
		reads := cache.NewStore(cfg.CacheTTL)
		statsRepo := cachedrepo.NewStatsRepository(postgres.NewStatsRepository(db), reads)
		matchRepo := cachedrepo.NewMatchRepository(postgres.NewMatchRepository(db), reads)

		matches, err := matchRepo.List(ctx)
		if err != nil {
			return nil, nil, series.Mapping{}, fmt.Errorf("list matches for series mapping: %w", err)
		}
		logger.InfoContext(ctx, "snapshot source selected", "source", "postgres", "matches", len(matches))
		return statsRepo, matchRepo, series.BuildMapping(rawSeriesNames(matches), nil), nil
	}

	if cfg.CricClubsEnabled {
		client := cricclubs.NewClient(cricclubs.ClientConfig{
			BaseURL:    cfg.CricClubsBaseURL,
			Timeout:    cfg.CricClubsTimeout,
			MaxRetries: cfg.CricClubsMaxRetries,
			Logger:     logging.Default(),
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.CricClubsCircuitEnabled,
				FailureThreshold: cfg.CricClubsCircuitFailureCount,
				OpenTimeout:      cfg.CricClubsCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.CricClubsCircuitHalfOpenMaxReq,
			},
		})
		bundle, err := client.FetchBundle(ctx)
		if err != nil {
			return nil, nil, series.Mapping{}, fmt.Errorf("fetch exporter snapshot: %w", err)
		}
		logSnapshot(ctx, logger, "cricclubs", bundle)
		return repositoriesFromBundle(bundle)
	}

	bundle := snapshot.Bundle{
		Players: memory.SeedPlayers(),
		Matches: memory.SeedMatches(),
	}
	logSnapshot(ctx, logger, "seed", bundle)
	return repositoriesFromBundle(bundle)
}

func repositoriesFromBundle(bundle snapshot.Bundle) (stats.Repository, match.Repository, series.Mapping, error) {
	statsRepo := memory.NewStatsRepository(bundle.Players)
	matchRepo := memory.NewMatchRepository(bundle.Matches)
	mapping := series.BuildMapping(rawSeriesNames(bundle.Matches), bundle.Series)
	return statsRepo, matchRepo, mapping, nil
}

func rawSeriesNames(matches []match.Result) []string {
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Series)
	}
	return out
}

func logSnapshot(ctx context.Context, logger *slog.Logger, source string, bundle snapshot.Bundle) {
	logger.InfoContext(ctx, "snapshot source selected",
		"source", source,
		"players", len(bundle.Players),
		"matches", len(bundle.Matches),
		"series", len(bundle.Series),
	)
}
