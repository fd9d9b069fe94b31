package docstore

import (
	"context"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/domain/tournament"
	"github.com/aegisleagues/league-data/internal/platform/docstore"
)

type TournamentRepository struct {
	store docstore.Store
}

func NewTournamentRepository(store docstore.Store) *TournamentRepository {
	return &TournamentRepository{store: store}
}

func (r *TournamentRepository) GetByID(ctx context.Context, tournamentID int64) (tournament.Tournament, bool, error) {
	doc, found, err := r.store.Get(ctx, tableTournaments, strconv.FormatInt(tournamentID, 10))
	if err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("get tournament %d: %w", tournamentID, err)
	}
	if !found {
		return tournament.Tournament{}, false, nil
	}

	var t tournament.Tournament
	if err := sonic.Unmarshal(doc, &t); err != nil {
		return tournament.Tournament{}, false, fmt.Errorf("decode tournament %d: %w", tournamentID, err)
	}
	return t, true, nil
}

func (r *TournamentRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.store.Scan(ctx, tableTournaments, []string{"TournamentPId"}, "", "")
	if err != nil {
		return nil, fmt.Errorf("scan tournament ids: %w", err)
	}

	out := make([]int64, 0, len(rows))
	for _, row := range rows {
		var partial struct {
			TournamentPID int64 `json:"TournamentPId"`
		}
		if err := sonic.Unmarshal(row, &partial); err != nil {
			return nil, fmt.Errorf("decode tournament id: %w", err)
		}
		out = append(out, partial.TournamentPID)
	}
	return out, nil
}

func (r *TournamentRepository) Put(ctx context.Context, t tournament.Tournament) error {
	doc, err := sonic.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode tournament %d: %w", t.TournamentPID, err)
	}
	if err := r.store.Put(ctx, tableTournaments, strconv.FormatInt(t.TournamentPID, 10), doc); err != nil {
		return fmt.Errorf("put tournament %d: %w", t.TournamentPID, err)
	}
	return nil
}
