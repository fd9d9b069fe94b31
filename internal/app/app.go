package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/aegisleagues/league-data/external/tournament"
	"github.com/aegisleagues/league-data/internal/config"
	pgdocstore "github.com/aegisleagues/league-data/internal/infrastructure/docstore/postgres"
	"github.com/aegisleagues/league-data/internal/infrastructure/matchrecord"
	"github.com/aegisleagues/league-data/internal/infrastructure/repository/docstore"
	pgstats "github.com/aegisleagues/league-data/internal/infrastructure/repository/postgres"
	"github.com/aegisleagues/league-data/internal/interfaces/httpapi"
	"github.com/aegisleagues/league-data/internal/platform/cache"
	"github.com/aegisleagues/league-data/internal/platform/logging"
	"github.com/aegisleagues/league-data/internal/usecase"
)

// NewHTTPServer wires the full service graph and returns the configured
// server plus a cleanup that releases the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}

	db, err := otelsqlx.Connect("postgres", normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary))
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	store := pgdocstore.NewStore(db)
	seasonRepo := docstore.NewSeasonRepository(store)
	tournamentRepo := docstore.NewTournamentRepository(store)
	teamRepo := docstore.NewTeamRepository(store)
	profileRepo := docstore.NewProfileRepository(store)
	gamedataRepo := docstore.NewGamedataRepository(store)
	matchRepo := docstore.NewMatchRepository(store)
	statsRepo := pgstats.NewMatchStatsRepository(db)

	// A nil store turns every lookup into a pass-through read.
	var cacheStore *cache.Store
	if cfg.CacheEnabled {
		cacheStore = cache.NewStore()
	}

	tournamentClient := tournament.NewClient(tournament.ClientConfig{
		BaseURL:    cfg.TournamentBaseURL,
		Token:      cfg.TournamentToken,
		Timeout:    cfg.TournamentTimeout,
		MaxRetries: cfg.TournamentMaxRetries,
		Logger:     logger,
	})

	resolver := usecase.NewResolverService(profileRepo, teamRepo, cacheStore)
	seasonSvc := usecase.NewSeasonService(seasonRepo, tournamentRepo, resolver, tournamentClient, cacheStore, cfg.CacheTTL, logger)
	codeSvc := usecase.NewCodeService(seasonRepo, tournamentClient, logger)
	pipeline := usecase.NewValidationPipeline(resolver, gamedataRepo, statsRepo)
	builder := matchrecord.NewBuilder(gamedataRepo)
	matchSvc := usecase.NewMatchService(matchRepo, resolver, pipeline, builder, statsRepo, logger)
	warmSvc := usecase.NewWarmService(seasonSvc, logger)

	handler := httpapi.NewHandler(seasonSvc, codeSvc, matchSvc, warmSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	if cfg.CacheEnabled && cfg.CacheWarmOnStart {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			result, err := warmSvc.WarmSeasons(ctx, cfg.CacheWarmWorkers)
			if err != nil {
				logger.Error("startup cache warm-up failed", "error", err)
				return
			}
			logger.Info("startup cache warm-up finished",
				"seasons", result.SeasonCount,
				"views", result.ViewCount,
				"failed", result.FailedCount,
			)
		}()
	}

	return server, db.Close, nil
}
