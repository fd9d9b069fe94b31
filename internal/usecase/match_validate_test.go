package usecase

import (
	"testing"

	"github.com/aegisleagues/league-data/internal/domain/match"
)

func validSetupTeams() match.SetupTeams {
	return match.SetupTeams{
		BlueTeam: match.SetupTeam{
			TeamName: "Cloud Nine",
			Bans:     []int{266, 103},
			Players: []match.SetupPlayer{
				{ProfileName: "Shadowfall", Role: "Top"},
				{ProfileName: "Riverspirit", Role: "Jungle"},
			},
		},
		RedTeam: match.SetupTeam{
			TeamName: "Moon Wolves",
			Bans:     []int{412, 555},
			Players: []match.SetupPlayer{
				{ProfileName: "Nightbloom", Role: "Top"},
				{ProfileName: "Emberline", Role: "Jungle"},
			},
		},
	}
}

func seedValidationFixtures(t *testing.T, env *testEnv) {
	t.Helper()
	env.seedGamedata(t)
	env.seedTeam(t, 1, "Cloud Nine")
	env.seedTeam(t, 2, "Moon Wolves")
	env.seedProfile(t, 101, "Shadowfall")
	env.seedProfile(t, 102, "Riverspirit")
	env.seedProfile(t, 103, "Nightbloom")
	env.seedProfile(t, 104, "Emberline")
}

func TestValidationPipeline_ValidSetup(t *testing.T) {
	env := newTestEnv(t)
	seedValidationFixtures(t, env)

	pipeline := NewValidationPipeline(env.resolver, env.gamedata, env.stats)
	teams := validSetupTeams()

	findings, err := pipeline.ValidateSetup(t.Context(), &teams)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if len(findings) != 0 {
		t.Fatalf("expected clean setup, got %v", findings)
	}

	if teams.BlueTeam.TeamPID != 1 || teams.RedTeam.TeamPID != 2 {
		t.Fatalf("team ids not written back: blue=%d red=%d", teams.BlueTeam.TeamPID, teams.RedTeam.TeamPID)
	}
	if teams.BlueTeam.Players[0].ProfilePID != 101 || teams.RedTeam.Players[1].ProfilePID != 104 {
		t.Fatalf("profile ids not written back: %+v %+v", teams.BlueTeam.Players, teams.RedTeam.Players)
	}
}

func TestValidationPipeline_CollectsEveryFinding(t *testing.T) {
	env := newTestEnv(t)
	seedValidationFixtures(t, env)

	pipeline := NewValidationPipeline(env.resolver, env.gamedata, env.stats)
	teams := validSetupTeams()
	teams.BlueTeam.Bans = []int{266, 266, 9999}
	teams.BlueTeam.Players = []match.SetupPlayer{
		{ProfileName: "Shadowfall", Role: "Top"},
		{ProfileName: "Shadowfall", Role: "Top"},
		{ProfileName: "Ghostwriter", Role: ""},
	}
	teams.RedTeam.TeamName = "No Such Team"

	findings, err := pipeline.ValidateSetup(t.Context(), &teams)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	want := []string{
		"Blue Team Bans of Id '266' is a duplicate in Textfields.",
		"Blue Team Bans of Id '9999' at index 2 is invalid.",
		"Blue Team Profile Name 'Shadowfall' duplicate in Textfields.",
		"Blue Team duplicate Role 'Top'.",
		"Blue Team Profile Name 'Ghostwriter' does not exist in database.",
		"Blue Team has an empty textfield for its Role.",
		"Red Team Name 'No Such Team' does not exist in database.",
	}
	for _, expected := range want {
		if !containsString(findings, expected) {
			t.Fatalf("missing finding %q in %v", expected, findings)
		}
	}
	if len(findings) != len(want) {
		t.Fatalf("expected %d findings, got %d: %v", len(want), len(findings), findings)
	}
}

func TestValidationPipeline_SameTeamNamesReportedOnce(t *testing.T) {
	env := newTestEnv(t)
	seedValidationFixtures(t, env)

	pipeline := NewValidationPipeline(env.resolver, env.gamedata, env.stats)
	teams := validSetupTeams()
	teams.RedTeam.TeamName = "Cloud Nine"
	teams.RedTeam.Players = []match.SetupPlayer{
		{ProfileName: "Nightbloom", Role: "Top"},
	}

	findings, err := pipeline.ValidateSetup(t.Context(), &teams)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}

	count := 0
	for _, finding := range findings {
		if finding == "Team Names are the same." {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("expected exactly one same-name finding, got %d in %v", count, findings)
	}
}

func TestValidationPipeline_StatsStoreDown(t *testing.T) {
	env := newTestEnv(t)
	seedValidationFixtures(t, env)
	env.stats.health = StoreUnavailable

	pipeline := NewValidationPipeline(env.resolver, env.gamedata, env.stats)
	teams := validSetupTeams()

	findings, err := pipeline.ValidateSetup(t.Context(), &teams)
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if len(findings) != 1 || findings[0] != "Stats database is inactive. Start it first." {
		t.Fatalf("unexpected findings: %v", findings)
	}
}

func containsString(items []string, want string) bool {
	for _, item := range items {
		if item == want {
			return true
		}
	}
	return false
}
