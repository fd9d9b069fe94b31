package usecase

import (
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/aegisleagues/league-data/internal/domain/match"
	matchmock "github.com/aegisleagues/league-data/internal/mocks/domain/match"
	"github.com/aegisleagues/league-data/internal/platform/logging"
)

func TestMatchService_SubmitMissingMatchUsingMockery(t *testing.T) {
	t.Parallel()

	matchRepo := matchmock.NewRepository(t)
	service := NewMatchService(matchRepo, nil, nil, nil, nil, logging.NewNop())

	matchRepo.
		On("Get", mock.Anything, "NA-404").
		Return(match.PendingMatch{}, false, nil).
		Once()

	_, handled, err := service.SubmitMatchSetup(t.Context(), "NA-404")
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if handled {
		t.Fatalf("expected missing match to be signalled, not handled")
	}
}
