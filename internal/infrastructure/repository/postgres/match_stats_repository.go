package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/aegisleagues/league-data/internal/domain/match"
	"github.com/aegisleagues/league-data/internal/usecase"
)

// MatchStatsRepository writes submitted match records into the relational
// stats schema. One submission is one transaction across all three tables.
type MatchStatsRepository struct {
	db *sqlx.DB
}

func NewMatchStatsRepository(db *sqlx.DB) *MatchStatsRepository {
	return &MatchStatsRepository{db: db}
}

const (
	insertMatchSQL = `
		INSERT INTO matches (match_pid, date_played, patch)
		VALUES ($1, $2, $3)
		ON CONFLICT (match_pid) DO UPDATE
		SET date_played = EXCLUDED.date_played, patch = EXCLUDED.patch`

	insertTeamSQL = `
		INSERT INTO match_teams (match_pid, side, team_pid)
		VALUES ($1, $2, $3)`

	insertBanSQL = `
		INSERT INTO match_bans (match_pid, side, ban_index, champion_id)
		VALUES ($1, $2, $3, $4)`

	insertPlayerSQL = `
		INSERT INTO match_players (match_pid, side, profile_pid, role)
		VALUES ($1, $2, $3, $4)`

	deleteTeamsSQL   = `DELETE FROM match_teams WHERE match_pid = $1`
	deleteBansSQL    = `DELETE FROM match_bans WHERE match_pid = $1`
	deletePlayersSQL = `DELETE FROM match_players WHERE match_pid = $1`
)

func (r *MatchStatsRepository) InsertMatch(ctx context.Context, rec match.Record, setup match.Setup) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin match insert: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, insertMatchSQL, rec.MatchPID, rec.DatePlayed, rec.Patch); err != nil {
		return fmt.Errorf("insert match row: %w", err)
	}

	// Resubmission replaces the child rows instead of stacking duplicates.
	for _, query := range []string{deleteTeamsSQL, deleteBansSQL, deletePlayersSQL} {
		if _, err := tx.ExecContext(ctx, query, rec.MatchPID); err != nil {
			return fmt.Errorf("clear match child rows: %w", err)
		}
	}

	for side, team := range rec.Teams {
		if _, err := tx.ExecContext(ctx, insertTeamSQL, rec.MatchPID, side, team.TeamPID); err != nil {
			return fmt.Errorf("insert match team %s: %w", side, err)
		}
		for i, championID := range team.Bans {
			if _, err := tx.ExecContext(ctx, insertBanSQL, rec.MatchPID, side, i, championID); err != nil {
				return fmt.Errorf("insert match ban %s[%d]: %w", side, i, err)
			}
		}
		for _, player := range team.Players {
			if _, err := tx.ExecContext(ctx, insertPlayerSQL, rec.MatchPID, side, player.ProfilePID, player.Role); err != nil {
				return fmt.Errorf("insert match player %s/%d: %w", side, player.ProfilePID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match insert: %w", err)
	}
	return nil
}

// Health pings the database. An unreachable database is a verdict, not an
// error, so validation can report it as a form finding.
func (r *MatchStatsRepository) Health(ctx context.Context) (usecase.StoreHealth, error) {
	if err := r.db.PingContext(ctx); err != nil {
		return usecase.StoreUnavailable, nil
	}
	return usecase.StoreAvailable, nil
}
