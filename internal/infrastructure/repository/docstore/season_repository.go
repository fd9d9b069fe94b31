package docstore

import (
	"context"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/domain/season"
	"github.com/aegisleagues/league-data/internal/platform/docstore"
	"github.com/aegisleagues/league-data/internal/platform/identifier"
)

type SeasonRepository struct {
	store docstore.Store
}

func NewSeasonRepository(store docstore.Store) *SeasonRepository {
	return &SeasonRepository{store: store}
}

func (r *SeasonRepository) GetByID(ctx context.Context, seasonID int64) (season.Season, bool, error) {
	doc, found, err := r.store.Get(ctx, tableSeasons, strconv.FormatInt(seasonID, 10))
	if err != nil {
		return season.Season{}, false, fmt.Errorf("get season %d: %w", seasonID, err)
	}
	if !found {
		return season.Season{}, false, nil
	}

	var s season.Season
	if err := sonic.Unmarshal(doc, &s); err != nil {
		return season.Season{}, false, fmt.Errorf("decode season %d: %w", seasonID, err)
	}
	return s, true, nil
}

func (r *SeasonRepository) FindIDByShortName(ctx context.Context, shortName string) (int64, bool, error) {
	simpleName := identifier.FilterName(shortName)
	rows, err := r.store.Scan(ctx, tableSeasons, []string{"SeasonPId"}, "SeasonShortName", simpleName)
	if err != nil {
		return 0, false, fmt.Errorf("scan seasons by short name %q: %w", simpleName, err)
	}
	if len(rows) == 0 {
		return 0, false, nil
	}

	var partial struct {
		SeasonPID int64 `json:"SeasonPId"`
	}
	if err := sonic.Unmarshal(rows[0], &partial); err != nil {
		return 0, false, fmt.Errorf("decode season id: %w", err)
	}
	return partial.SeasonPID, true, nil
}

func (r *SeasonRepository) ListInformation(ctx context.Context) ([]season.Information, error) {
	rows, err := r.store.Scan(ctx, tableSeasons, []string{"Information"}, "", "")
	if err != nil {
		return nil, fmt.Errorf("scan season information: %w", err)
	}

	out := make([]season.Information, 0, len(rows))
	for _, row := range rows {
		var partial struct {
			Information season.Information `json:"Information"`
		}
		if err := sonic.Unmarshal(row, &partial); err != nil {
			return nil, fmt.Errorf("decode season information: %w", err)
		}
		out = append(out, partial.Information)
	}
	return out, nil
}

func (r *SeasonRepository) ListIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.store.Scan(ctx, tableSeasons, []string{"SeasonPId"}, "", "")
	if err != nil {
		return nil, fmt.Errorf("scan season ids: %w", err)
	}

	out := make([]int64, 0, len(rows))
	for _, row := range rows {
		var partial struct {
			SeasonPID int64 `json:"SeasonPId"`
		}
		if err := sonic.Unmarshal(row, &partial); err != nil {
			return nil, fmt.Errorf("decode season id: %w", err)
		}
		out = append(out, partial.SeasonPID)
	}
	return out, nil
}

func (r *SeasonRepository) Put(ctx context.Context, s season.Season) error {
	doc, err := sonic.Marshal(s)
	if err != nil {
		return fmt.Errorf("encode season %d: %w", s.SeasonPID, err)
	}
	if err := r.store.Put(ctx, tableSeasons, strconv.FormatInt(s.SeasonPID, 10), doc); err != nil {
		return fmt.Errorf("put season %d: %w", s.SeasonPID, err)
	}
	return nil
}

func (r *SeasonRepository) UpdateWeekCodes(ctx context.Context, seasonID int64, weeks map[string]season.WeekCodes) error {
	value, err := sonic.Marshal(weeks)
	if err != nil {
		return fmt.Errorf("encode week codes for season %d: %w", seasonID, err)
	}
	if err := r.store.UpdatePath(ctx, tableSeasons, strconv.FormatInt(seasonID, 10), []string{"Codes", "Weeks"}, value); err != nil {
		return fmt.Errorf("update week codes for season %d: %w", seasonID, err)
	}
	return nil
}
