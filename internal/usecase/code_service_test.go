package usecase

import (
	"errors"
	"testing"
)

func TestCodeService_GenerateNewCodes(t *testing.T) {
	env := newTestEnv(t)
	env.api.retriesEach = 1
	env.seedSeason(t, baseSeason(1))

	teams := []string{"Cloud Nine", "Moon Wolves", "", "Iron Pact", "Dawn Patrol"}

	result, err := env.codes.GenerateNewCodes(t.Context(), 1, "w1", teams)
	if err != nil {
		t.Fatalf("generate codes failed: %v", err)
	}
	if result.NumMatches != 2 {
		t.Fatalf("expected 2 matchups, got %d", result.NumMatches)
	}
	if result.Response != "Season 's2021agl' successfully generated new codes." {
		t.Fatalf("unexpected response: %s", result.Response)
	}
	// One backup batch plus two matchup batches, one retry each.
	if result.TimesRetried != 3 {
		t.Fatalf("expected 3 retries accumulated, got %d", result.TimesRetried)
	}
	if env.api.callCount() != 3 {
		t.Fatalf("expected 3 provider calls, got %d", env.api.callCount())
	}

	doc, _, err := env.seasonDocs.GetByID(t.Context(), 1)
	if err != nil {
		t.Fatalf("reload season failed: %v", err)
	}
	entry, ok := doc.Codes.Weeks["W1"]
	if !ok {
		t.Fatalf("expected week key uppercased, got %v", doc.Codes.Weeks)
	}
	if len(entry.Backups) != 10 {
		t.Fatalf("expected 10 backup codes, got %d", len(entry.Backups))
	}
	if len(entry.Primary) != 2 {
		t.Fatalf("expected 2 primary matchups, got %d", len(entry.Primary))
	}
	if entry.Primary[0].Team1 != "Cloud Nine" || entry.Primary[0].Team2 != "Moon Wolves" {
		t.Fatalf("unexpected first matchup: %+v", entry.Primary[0])
	}
	if entry.Primary[1].Team1 != "Iron Pact" || entry.Primary[1].Team2 != "Dawn Patrol" {
		t.Fatalf("unexpected second matchup: %+v", entry.Primary[1])
	}
	if entry.Timestamp == 0 {
		t.Fatalf("expected week timestamp set")
	}
}

func TestCodeService_SecondRunAppendsWithoutNewBackups(t *testing.T) {
	env := newTestEnv(t)
	env.seedSeason(t, baseSeason(1))

	if _, err := env.codes.GenerateNewCodes(t.Context(), 1, "W1", []string{"Cloud Nine", "Moon Wolves"}); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	firstCalls := env.api.callCount()

	if _, err := env.codes.GenerateNewCodes(t.Context(), 1, "w1", []string{"Iron Pact", "Dawn Patrol"}); err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	// Second run for the same week mints no backup batch.
	if env.api.callCount() != firstCalls+1 {
		t.Fatalf("expected 1 more provider call, got %d total", env.api.callCount())
	}

	doc, _, err := env.seasonDocs.GetByID(t.Context(), 1)
	if err != nil {
		t.Fatalf("reload season failed: %v", err)
	}
	entry := doc.Codes.Weeks["W1"]
	if len(entry.Backups) != 10 {
		t.Fatalf("expected backups untouched, got %d", len(entry.Backups))
	}
	if len(entry.Primary) != 2 {
		t.Fatalf("expected accumulated matchups, got %d", len(entry.Primary))
	}
}

func TestCodeService_OddTeamListFailsBeforeProviderCall(t *testing.T) {
	env := newTestEnv(t)
	env.seedSeason(t, baseSeason(1))

	_, err := env.codes.GenerateNewCodes(t.Context(), 1, "W1", []string{"Cloud Nine", "Moon Wolves", "Iron Pact"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	if env.api.callCount() != 0 {
		t.Fatalf("provider must not be called for an odd team list")
	}

	doc, _, err := env.seasonDocs.GetByID(t.Context(), 1)
	if err != nil {
		t.Fatalf("reload season failed: %v", err)
	}
	if len(doc.Codes.Weeks) != 0 {
		t.Fatalf("expected untouched code ledger, got %v", doc.Codes.Weeks)
	}
}

func TestCodeService_UnknownSeason(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.codes.GenerateNewCodes(t.Context(), 42, "W1", []string{"A", "B"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
