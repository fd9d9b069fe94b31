package docstore

import (
	"context"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/domain/team"
	"github.com/aegisleagues/league-data/internal/platform/docstore"
	"github.com/aegisleagues/league-data/internal/platform/identifier"
)

type TeamRepository struct {
	store docstore.Store
}

func NewTeamRepository(store docstore.Store) *TeamRepository {
	return &TeamRepository{store: store}
}

func (r *TeamRepository) FindPIDByName(ctx context.Context, name string) (int64, bool, error) {
	wanted := identifier.FilterName(name)
	if wanted == "" {
		return 0, false, nil
	}

	rows, err := r.store.Scan(ctx, tableTeams, []string{"TeamPId", "TeamName"}, "", "")
	if err != nil {
		return 0, false, fmt.Errorf("scan teams: %w", err)
	}

	for _, row := range rows {
		var partial team.Team
		if err := sonic.Unmarshal(row, &partial); err != nil {
			return 0, false, fmt.Errorf("decode team: %w", err)
		}
		if identifier.FilterName(partial.TeamName) == wanted {
			return partial.TeamPID, true, nil
		}
	}
	return 0, false, nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID int64) (team.Team, bool, error) {
	doc, found, err := r.store.Get(ctx, tableTeams, strconv.FormatInt(teamID, 10))
	if err != nil {
		return team.Team{}, false, fmt.Errorf("get team %d: %w", teamID, err)
	}
	if !found {
		return team.Team{}, false, nil
	}

	var t team.Team
	if err := sonic.Unmarshal(doc, &t); err != nil {
		return team.Team{}, false, fmt.Errorf("decode team %d: %w", teamID, err)
	}
	return t, true, nil
}

func (r *TeamRepository) Put(ctx context.Context, t team.Team) error {
	doc, err := sonic.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode team %d: %w", t.TeamPID, err)
	}
	if err := r.store.Put(ctx, tableTeams, strconv.FormatInt(t.TeamPID, 10), doc); err != nil {
		return fmt.Errorf("put team %d: %w", t.TeamPID, err)
	}
	return nil
}
