package usecase

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/aegisleagues/league-data/internal/domain/match"
	"github.com/aegisleagues/league-data/internal/domain/profile"
	"github.com/aegisleagues/league-data/internal/domain/season"
	"github.com/aegisleagues/league-data/internal/domain/team"
	"github.com/aegisleagues/league-data/internal/infrastructure/matchrecord"
	docrepo "github.com/aegisleagues/league-data/internal/infrastructure/repository/docstore"
	"github.com/aegisleagues/league-data/internal/platform/cache"
	"github.com/aegisleagues/league-data/internal/platform/docstore"
	"github.com/aegisleagues/league-data/internal/platform/logging"
)

// countingSeasonRepo counts backing-store reads so tests can assert which
// calls were served from cache.
type countingSeasonRepo struct {
	season.Repository
	mu       sync.Mutex
	getCalls int
}

func (r *countingSeasonRepo) GetByID(ctx context.Context, seasonID int64) (season.Season, bool, error) {
	r.mu.Lock()
	r.getCalls++
	r.mu.Unlock()
	return r.Repository.GetByID(ctx, seasonID)
}

func (r *countingSeasonRepo) gets() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getCalls
}

type fakeTournamentAPI struct {
	mu          sync.Mutex
	nextID      int64
	codeSeq     int
	retriesEach int
	calls       []CodeRequest
}

func (f *fakeTournamentAPI) CreateTournamentID(_ context.Context, shortName string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return 77000 + f.nextID, nil
}

func (f *fakeTournamentAPI) GenerateCodes(_ context.Context, req CodeRequest) (CodeBatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, req)

	count := req.Count
	if count <= 0 {
		count = 1
	}
	codes := make([]string, 0, count)
	for i := 0; i < count; i++ {
		f.codeSeq++
		codes = append(codes, fmt.Sprintf("%s-%s-%04d", req.ShortName, req.Week, f.codeSeq))
	}
	return CodeBatch{Codes: codes, TimesRetried: f.retriesEach}, nil
}

func (f *fakeTournamentAPI) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeTournamentAPI) createCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return int(f.nextID)
}

type fakeStatsStore struct {
	health   StoreHealth
	inserted []match.Record
}

func (f *fakeStatsStore) InsertMatch(_ context.Context, rec match.Record, _ match.Setup) error {
	f.inserted = append(f.inserted, rec)
	return nil
}

func (f *fakeStatsStore) Health(_ context.Context) (StoreHealth, error) {
	if f.health == "" {
		return StoreAvailable, nil
	}
	return f.health, nil
}

type testEnv struct {
	store       *docstore.Memory
	cache       *cache.Store
	seasonRepo  *countingSeasonRepo
	seasonDocs  *docrepo.SeasonRepository
	tournaments *docrepo.TournamentRepository
	profiles    *docrepo.ProfileRepository
	teams       *docrepo.TeamRepository
	matchRepo   *docrepo.MatchRepository
	gamedata    *docrepo.GamedataRepository
	resolver    *ResolverService
	api         *fakeTournamentAPI
	stats       *fakeStatsStore
	seasons     *SeasonService
	codes       *CodeService
	matches     *MatchService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	store := docstore.NewMemory()
	cacheStore := cache.NewStore()
	logger := logging.NewNop()

	seasonDocs := docrepo.NewSeasonRepository(store)
	seasonRepo := &countingSeasonRepo{Repository: seasonDocs}
	tournaments := docrepo.NewTournamentRepository(store)
	profiles := docrepo.NewProfileRepository(store)
	teams := docrepo.NewTeamRepository(store)
	matchRepo := docrepo.NewMatchRepository(store)
	gamedataRepo := docrepo.NewGamedataRepository(store)

	resolver := NewResolverService(profiles, teams, cacheStore)
	api := &fakeTournamentAPI{}
	stats := &fakeStatsStore{}

	seasons := NewSeasonService(seasonRepo, tournaments, resolver, api, cacheStore, time.Minute, logger)
	seasons.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	codes := NewCodeService(seasonRepo, api, logger)
	codes.now = func() time.Time { return time.Unix(1_700_000_000, 0) }

	pipeline := NewValidationPipeline(resolver, gamedataRepo, stats)
	builder := matchrecord.NewBuilder(gamedataRepo)
	matches := NewMatchService(matchRepo, resolver, pipeline, builder, stats, logger)

	return &testEnv{
		store:       store,
		cache:       cacheStore,
		seasonRepo:  seasonRepo,
		seasonDocs:  seasonDocs,
		tournaments: tournaments,
		profiles:    profiles,
		teams:       teams,
		matchRepo:   matchRepo,
		gamedata:    gamedataRepo,
		resolver:    resolver,
		api:         api,
		stats:       stats,
		seasons:     seasons,
		codes:       codes,
		matches:     matches,
	}
}

func (e *testEnv) seedTeam(t *testing.T, teamPID int64, name string) {
	t.Helper()
	if err := e.teams.Put(t.Context(), team.Team{TeamPID: teamPID, TeamName: name}); err != nil {
		t.Fatalf("seed team %d: %v", teamPID, err)
	}
}

func (e *testEnv) seedProfile(t *testing.T, profilePID int64, name string) {
	t.Helper()
	if err := e.profiles.Put(t.Context(), profile.Profile{ProfilePID: profilePID, ProfileName: name}); err != nil {
		t.Fatalf("seed profile %d: %v", profilePID, err)
	}
}

func (e *testEnv) seedGamedata(t *testing.T) {
	t.Helper()
	champions := map[string]string{
		"12":  "Alistar",
		"84":  "Akali",
		"103": "Ahri",
		"120": "Hecarim",
		"157": "Yasuo",
		"266": "Aatrox",
		"412": "Thresh",
		"555": "Pyke",
	}
	if err := e.gamedata.PutChampionCatalog(t.Context(), champions); err != nil {
		t.Fatalf("seed champion catalog: %v", err)
	}
	if err := e.gamedata.PutPatch(t.Context(), "11.15"); err != nil {
		t.Fatalf("seed patch: %v", err)
	}
}

func (e *testEnv) seedSeason(t *testing.T, doc season.Season) {
	t.Helper()
	if err := e.seasonDocs.Put(t.Context(), doc); err != nil {
		t.Fatalf("seed season %d: %v", doc.SeasonPID, err)
	}
}

func baseSeason(seasonID int64) season.Season {
	return season.Season{
		SeasonPID:       seasonID,
		SeasonShortName: "s2021agl",
		Information: season.Information{
			Status:          "Open",
			DateOpened:      1_600_000_000,
			SeasonName:      "Summer 2021 Aegis Guardians League",
			SeasonShortName: "s2021agl",
			SeasonTabName:   "Summer 2021 Guardians",
			SeasonTime:      "Summer 2021",
			LeagueCode:      "AGL",
			LeagueRank:      "A",
			LeagueType:      "Guardians",
			TournamentPIDs: season.TournamentPIDs{
				RegTournamentPID:  301,
				PostTournamentPID: 302,
			},
		},
		Codes: season.Codes{
			TournamentAPIID: 9001,
			Weeks:           map[string]season.WeekCodes{},
		},
		Roster: season.Roster{
			Teams:    map[string]season.RosterTeam{},
			Profiles: map[string]season.RosterProfile{},
		},
	}
}
