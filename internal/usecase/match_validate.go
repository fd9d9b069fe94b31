package usecase

import (
	"context"
	"fmt"

	"github.com/aegisleagues/league-data/internal/domain/gamedata"
	"github.com/aegisleagues/league-data/internal/domain/match"
)

// ValidationPipeline checks a match setup form. Every rule runs and every
// finding is collected; resolved numeric ids are written back into the form
// as a side effect so a passing form is ready for record building. The stats
// store health check always runs last.
type ValidationPipeline struct {
	resolver     *ResolverService
	gamedataRepo gamedata.Repository
	statsStore   MatchStatsStore
}

func NewValidationPipeline(resolver *ResolverService, gamedataRepo gamedata.Repository, statsStore MatchStatsStore) *ValidationPipeline {
	return &ValidationPipeline{
		resolver:     resolver,
		gamedataRepo: gamedataRepo,
		statsStore:   statsStore,
	}
}

// ValidateSetup returns the full list of form findings. A nil error with an
// empty list means the form passed.
func (v *ValidationPipeline) ValidateSetup(ctx context.Context, teams *match.SetupTeams) ([]string, error) {
	findings := []string{}

	for _, side := range []struct {
		color string
		team  *match.SetupTeam
	}{
		{match.SideBlue, &teams.BlueTeam},
		{match.SideRed, &teams.RedTeam},
	} {
		if err := v.checkBans(ctx, side.color, side.team, &findings); err != nil {
			return nil, err
		}
		if err := v.checkPlayers(ctx, side.color, side.team, &findings); err != nil {
			return nil, err
		}
		if err := v.checkTeamName(ctx, side.color, side.team, &findings); err != nil {
			return nil, err
		}
	}

	if teams.BlueTeam.TeamName == teams.RedTeam.TeamName {
		findings = append(findings, "Team Names are the same.")
	}

	health, err := v.statsStore.Health(ctx)
	if err != nil {
		return nil, fmt.Errorf("stats store health: %w", err)
	}
	if health != StoreAvailable {
		findings = append(findings, "Stats database is inactive. Start it first.")
	}

	return findings, nil
}

func (v *ValidationPipeline) checkBans(ctx context.Context, color string, team *match.SetupTeam, findings *[]string) error {
	seen := map[int]bool{}
	for i, banID := range team.Bans {
		exists, err := v.gamedataRepo.ChampionExists(ctx, banID)
		if err != nil {
			return fmt.Errorf("champion lookup: %w", err)
		}
		switch {
		case !exists:
			*findings = append(*findings, fmt.Sprintf("%s Team Bans of Id '%d' at index %d is invalid.", color, banID, i))
		case seen[banID]:
			*findings = append(*findings, fmt.Sprintf("%s Team Bans of Id '%d' is a duplicate in Textfields.", color, banID))
		default:
			seen[banID] = true
		}
	}
	return nil
}

func (v *ValidationPipeline) checkPlayers(ctx context.Context, color string, team *match.SetupTeam, findings *[]string) error {
	seenProfiles := map[int64]bool{}
	seenRoles := map[string]bool{}
	for i := range team.Players {
		player := &team.Players[i]

		pid, exists, err := v.resolver.ResolveProfileID(ctx, player.ProfileName)
		if err != nil {
			return fmt.Errorf("profile lookup: %w", err)
		}
		switch {
		case !exists:
			*findings = append(*findings, fmt.Sprintf("%s Team Profile Name '%s' does not exist in database.", color, player.ProfileName))
		case seenProfiles[pid]:
			*findings = append(*findings, fmt.Sprintf("%s Team Profile Name '%s' duplicate in Textfields.", color, player.ProfileName))
		default:
			seenProfiles[pid] = true
			player.ProfilePID = pid
		}

		switch {
		case player.Role == "":
			*findings = append(*findings, fmt.Sprintf("%s Team has an empty textfield for its Role.", color))
		case seenRoles[player.Role]:
			*findings = append(*findings, fmt.Sprintf("%s Team duplicate Role '%s'.", color, player.Role))
		default:
			seenRoles[player.Role] = true
		}
	}
	return nil
}

func (v *ValidationPipeline) checkTeamName(ctx context.Context, color string, team *match.SetupTeam, findings *[]string) error {
	pid, exists, err := v.resolver.ResolveTeamID(ctx, team.TeamName)
	if err != nil {
		return fmt.Errorf("team lookup: %w", err)
	}
	if !exists {
		*findings = append(*findings, fmt.Sprintf("%s Team Name '%s' does not exist in database.", color, team.TeamName))
		return nil
	}
	team.TeamPID = pid
	return nil
}
