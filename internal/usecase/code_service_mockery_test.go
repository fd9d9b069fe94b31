package usecase

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/aegisleagues/league-data/internal/domain/season"
	seasonmock "github.com/aegisleagues/league-data/internal/mocks/domain/season"
	"github.com/aegisleagues/league-data/internal/platform/logging"
)

func TestCodeService_GenerateNewCodes_UppercasesWeekUsingMockery(t *testing.T) {
	t.Parallel()

	seasonRepo := seasonmock.NewRepository(t)
	api := &fakeTournamentAPI{}
	service := NewCodeService(seasonRepo, api, logging.NewNop())

	doc := baseSeason(1)
	seasonRepo.
		On("GetByID", mock.Anything, int64(1)).
		Return(doc, true, nil).
		Once()
	seasonRepo.
		On("UpdateWeekCodes", mock.Anything, int64(1), mock.MatchedBy(func(weeks map[string]season.WeekCodes) bool {
			entry, ok := weeks["W3"]
			return ok && len(entry.Primary) == 1 && len(entry.Backups) == 10
		})).
		Return(nil).
		Once()

	result, err := service.GenerateNewCodes(t.Context(), 1, "w3", []string{"Cloud Nine", "Moon Wolves"})
	if err != nil {
		t.Fatalf("generate codes: %v", err)
	}
	if result.NumMatches != 1 {
		t.Fatalf("unexpected match count: %d", result.NumMatches)
	}
}

func TestCodeService_GenerateNewCodes_PersistErrorUsingMockery(t *testing.T) {
	t.Parallel()

	seasonRepo := seasonmock.NewRepository(t)
	api := &fakeTournamentAPI{}
	service := NewCodeService(seasonRepo, api, logging.NewNop())

	writeErr := errors.New("conditional check failed")
	seasonRepo.
		On("GetByID", mock.Anything, int64(1)).
		Return(baseSeason(1), true, nil).
		Once()
	seasonRepo.
		On("UpdateWeekCodes", mock.Anything, int64(1), mock.Anything).
		Return(writeErr).
		Once()

	_, err := service.GenerateNewCodes(t.Context(), 1, "W3", []string{"Cloud Nine", "Moon Wolves"})
	if !errors.Is(err, writeErr) {
		t.Fatalf("expected persist error surfaced, got %v", err)
	}
}
