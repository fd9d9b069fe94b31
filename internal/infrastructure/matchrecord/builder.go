package matchrecord

import (
	"context"
	"fmt"
	"time"

	"github.com/aegisleagues/league-data/internal/domain/gamedata"
	"github.com/aegisleagues/league-data/internal/domain/match"
	"github.com/aegisleagues/league-data/internal/platform/identifier"
)

// Builder assembles the canonical match record from a validated setup form.
// The form must already have its numeric ids resolved.
type Builder struct {
	gamedataRepo gamedata.Repository
	now          func() time.Time
}

func NewBuilder(gamedataRepo gamedata.Repository) *Builder {
	return &Builder{
		gamedataRepo: gamedataRepo,
		now:          time.Now,
	}
}

func (b *Builder) BuildRecord(ctx context.Context, matchID string, setup match.Setup) (match.Record, error) {
	patch, err := b.gamedataRepo.CurrentPatch(ctx)
	if err != nil {
		return match.Record{}, fmt.Errorf("current patch: %w", err)
	}

	rec := match.Record{
		MatchPID:   matchID,
		DatePlayed: b.now().Unix(),
		Patch:      patch,
		Teams: map[string]match.RecordTeam{
			match.SideBlue: buildTeam(setup.Teams.BlueTeam),
			match.SideRed:  buildTeam(setup.Teams.RedTeam),
		},
	}
	return rec, nil
}

func buildTeam(team match.SetupTeam) match.RecordTeam {
	players := make([]match.RecordPlayer, 0, len(team.Players))
	for _, player := range team.Players {
		players = append(players, match.RecordPlayer{
			ProfilePID: player.ProfilePID,
			ProfileHID: identifier.ProfileHashID(player.ProfilePID),
			Role:       player.Role,
		})
	}

	bans := team.Bans
	if bans == nil {
		bans = []int{}
	}
	return match.RecordTeam{
		TeamPID: team.TeamPID,
		TeamHID: identifier.TeamHashID(team.TeamPID),
		Bans:    bans,
		Players: players,
	}
}
