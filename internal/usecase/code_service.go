package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aegisleagues/league-data/internal/domain/season"
	"github.com/aegisleagues/league-data/internal/platform/logging"
)

const backupCodeCount = 10

// CodeService mints tournament join codes for a week's matchups through the
// external provider and records them on the season document.
type CodeService struct {
	seasonRepo season.Repository
	api        TournamentAPI
	logger     *logging.Logger
	now        func() time.Time
}

func NewCodeService(seasonRepo season.Repository, api TournamentAPI, logger *logging.Logger) *CodeService {
	return &CodeService{
		seasonRepo: seasonRepo,
		api:        api,
		logger:     logger,
		now:        time.Now,
	}
}

// CodeGeneration summarizes one generation run.
type CodeGeneration struct {
	Response     string `json:"response"`
	NumMatches   int    `json:"numMatches"`
	TimesRetried int    `json:"timesRetried"`
}

// GenerateNewCodes creates codes for the given week. The team list pairs
// consecutive entries into matchups, so after dropping blanks it must have
// even length. The first run for a week also mints a shared backup batch.
func (s *CodeService) GenerateNewCodes(ctx context.Context, seasonID int64, week string, teamNames []string) (CodeGeneration, error) {
	ctx, span := startUsecaseSpan(ctx, "CodeService.GenerateNewCodes")
	defer span.End()

	doc, exists, err := s.seasonRepo.GetByID(ctx, seasonID)
	if err != nil {
		return CodeGeneration{}, fmt.Errorf("get season: %w", err)
	}
	if !exists {
		return CodeGeneration{}, fmt.Errorf("%w: season=%d", ErrNotFound, seasonID)
	}
	if doc.Codes.TournamentAPIID == 0 || doc.Codes.Weeks == nil {
		return CodeGeneration{}, fmt.Errorf("%w: season '%s' has no code ledger", ErrInvalidInput, doc.SeasonShortName)
	}

	weekLabel := strings.ToUpper(strings.TrimSpace(week))
	if weekLabel == "" {
		return CodeGeneration{}, fmt.Errorf("%w: week is required", ErrInvalidInput)
	}

	matchups := make([]string, 0, len(teamNames))
	for _, name := range teamNames {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			matchups = append(matchups, trimmed)
		}
	}
	if len(matchups)%2 != 0 {
		return CodeGeneration{}, fmt.Errorf("%w: team list has %d entries, matchups need pairs", ErrInvalidInput, len(matchups))
	}

	weeks := doc.Codes.Weeks
	timesRetried := 0

	entry, ok := weeks[weekLabel]
	if !ok {
		entry = season.WeekCodes{
			Timestamp: s.now().Unix(),
			Primary:   []season.MatchupCodes{},
			Backups:   []string{},
		}
		batch, err := s.api.GenerateCodes(ctx, CodeRequest{
			Week:         weekLabel,
			TournamentID: doc.Codes.TournamentAPIID,
			ShortName:    doc.SeasonShortName,
			Count:        backupCodeCount,
		})
		if err != nil {
			return CodeGeneration{}, fmt.Errorf("generate backup codes: %w", err)
		}
		entry.Backups = batch.Codes
		timesRetried += batch.TimesRetried
	}

	for i := 0; i < len(matchups); i += 2 {
		team1, team2 := matchups[i], matchups[i+1]
		batch, err := s.api.GenerateCodes(ctx, CodeRequest{
			Week:         weekLabel,
			TournamentID: doc.Codes.TournamentAPIID,
			ShortName:    doc.SeasonShortName,
			Team1:        team1,
			Team2:        team2,
		})
		if err != nil {
			return CodeGeneration{}, fmt.Errorf("generate matchup codes %s vs %s: %w", team1, team2, err)
		}
		entry.Primary = append(entry.Primary, season.MatchupCodes{
			Team1: team1,
			Team2: team2,
			Codes: batch.Codes,
		})
		timesRetried += batch.TimesRetried
	}
	weeks[weekLabel] = entry

	if err := s.seasonRepo.UpdateWeekCodes(ctx, seasonID, weeks); err != nil {
		return CodeGeneration{}, fmt.Errorf("update week codes: %w", err)
	}

	numMatches := len(matchups) / 2
	s.logger.InfoContext(ctx, "tournament codes generated",
		"seasonId", seasonID,
		"week", weekLabel,
		"numMatches", numMatches,
		"timesRetried", timesRetried,
	)
	return CodeGeneration{
		Response:     fmt.Sprintf("Season '%s' successfully generated new codes.", doc.SeasonShortName),
		NumMatches:   numMatches,
		TimesRetried: timesRetried,
	}, nil
}
