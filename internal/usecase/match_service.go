package usecase

import (
	"context"
	"fmt"

	"github.com/aegisleagues/league-data/internal/domain/match"
	"github.com/aegisleagues/league-data/internal/platform/logging"
)

// StoreHealth is the availability verdict of the relational stats store.
type StoreHealth string

const (
	StoreAvailable   StoreHealth = "available"
	StoreUnavailable StoreHealth = "unavailable"
)

// MatchStatsStore is the relational side of a submission. InsertMatch writes
// the whole record in one transaction.
type MatchStatsStore interface {
	InsertMatch(ctx context.Context, rec match.Record, setup match.Setup) error
	Health(ctx context.Context) (StoreHealth, error)
}

// RecordBuilder turns a validated setup into the canonical match record.
type RecordBuilder interface {
	BuildRecord(ctx context.Context, matchID string, setup match.Setup) (match.Record, error)
}

// MatchService runs the submission workflow: validate the setup form, build
// the canonical record, write it to both stores, and retire the setup entry.
type MatchService struct {
	matchRepo  match.Repository
	resolver   *ResolverService
	rules      *ValidationPipeline
	builder    RecordBuilder
	statsStore MatchStatsStore
	logger     *logging.Logger
}

func NewMatchService(
	matchRepo match.Repository,
	resolver *ResolverService,
	rules *ValidationPipeline,
	builder RecordBuilder,
	statsStore MatchStatsStore,
	logger *logging.Logger,
) *MatchService {
	return &MatchService{
		matchRepo:  matchRepo,
		resolver:   resolver,
		rules:      rules,
		builder:    builder,
		statsStore: statsStore,
		logger:     logger,
	}
}

// SubmitOutcome is the result of one submission attempt. A populated
// ValidationErrors list means the form was rejected and nothing was written;
// Setup then carries the form with any resolved ids filled in. A populated
// Record means the submission committed.
type SubmitOutcome struct {
	Message          string        `json:"error,omitempty"`
	ValidationErrors []string      `json:"validateMessages,omitempty"`
	Setup            *match.Setup  `json:"setupObject,omitempty"`
	Record           *match.Record `json:"record,omitempty"`
}

// AddMatchSetup stores a new setup form and registers it in the
// pending-setup index.
func (s *MatchService) AddMatchSetup(ctx context.Context, matchID string, setup match.Setup) error {
	ctx, span := startUsecaseSpan(ctx, "MatchService.AddMatchSetup")
	defer span.End()

	if matchID == "" {
		return fmt.Errorf("%w: match id is required", ErrInvalidInput)
	}

	pending := match.PendingMatch{MatchPID: matchID, Setup: &setup}
	if err := s.matchRepo.PutPending(ctx, pending); err != nil {
		return fmt.Errorf("put pending match: %w", err)
	}

	index, err := s.matchRepo.GetSetupIndex(ctx)
	if err != nil {
		return fmt.Errorf("get setup index: %w", err)
	}
	index[matchID] = "Setup"
	if err := s.matchRepo.PutSetupIndex(ctx, index); err != nil {
		return fmt.Errorf("put setup index: %w", err)
	}
	return nil
}

// SetupIDs returns the pending-setup index: match id to setup type.
func (s *MatchService) SetupIDs(ctx context.Context) (map[string]string, error) {
	index, err := s.matchRepo.GetSetupIndex(ctx)
	if err != nil {
		return nil, fmt.Errorf("get setup index: %w", err)
	}
	return index, nil
}

// SubmitMatchSetup validates and commits the setup form of one pending
// match. The second return is false when the match is missing or no longer
// has a setup to submit.
func (s *MatchService) SubmitMatchSetup(ctx context.Context, matchID string) (SubmitOutcome, bool, error) {
	ctx, span := startUsecaseSpan(ctx, "MatchService.SubmitMatchSetup")
	defer span.End()

	pending, exists, err := s.matchRepo.Get(ctx, matchID)
	if err != nil {
		return SubmitOutcome{}, false, fmt.Errorf("get match: %w", err)
	}
	if !exists {
		s.logger.ErrorContext(ctx, "match does not exist", "matchId", matchID)
		return SubmitOutcome{}, false, nil
	}
	if pending.Setup == nil {
		s.logger.ErrorContext(ctx, "match has no setup to submit", "matchId", matchID)
		return SubmitOutcome{}, false, nil
	}

	validateMessages, err := s.rules.ValidateSetup(ctx, &pending.Setup.Teams)
	if err != nil {
		return SubmitOutcome{}, false, fmt.Errorf("validate setup: %w", err)
	}
	if len(validateMessages) > 0 {
		return SubmitOutcome{
			Message:          "Form fields from Match Setup are not valid.",
			ValidationErrors: validateMessages,
			Setup:            pending.Setup,
		}, true, nil
	}

	rec, err := s.builder.BuildRecord(ctx, matchID, *pending.Setup)
	if err != nil {
		return SubmitOutcome{}, false, fmt.Errorf("build match record: %w", err)
	}

	if err := s.statsStore.InsertMatch(ctx, rec, *pending.Setup); err != nil {
		return SubmitOutcome{}, false, fmt.Errorf("insert match stats: %w", err)
	}
	if err := s.matchRepo.PutRecord(ctx, rec); err != nil {
		return SubmitOutcome{}, false, fmt.Errorf("put match record: %w", err)
	}

	index, err := s.matchRepo.GetSetupIndex(ctx)
	if err != nil {
		return SubmitOutcome{}, false, fmt.Errorf("get setup index: %w", err)
	}
	if _, ok := index[matchID]; ok {
		delete(index, matchID)
		if err := s.matchRepo.PutSetupIndex(ctx, index); err != nil {
			return SubmitOutcome{}, false, fmt.Errorf("put setup index: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "match setup submitted", "matchId", matchID)
	return SubmitOutcome{Record: &rec}, true, nil
}
