package usecase

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants/v2"

	"github.com/aegisleagues/league-data/internal/platform/logging"
)

const defaultWarmWorkers = 4

// WarmService pre-populates the read-view cache by walking every season and
// loading its views through the same cache-aside paths the API serves from.
type WarmService struct {
	seasons *SeasonService
	logger  *logging.Logger
}

func NewWarmService(seasons *SeasonService, logger *logging.Logger) *WarmService {
	return &WarmService{
		seasons: seasons,
		logger:  logger,
	}
}

// WarmResult counts the views loaded during one warm-up run.
type WarmResult struct {
	SeasonCount int `json:"seasonCount"`
	ViewCount   int `json:"viewCount"`
	FailedCount int `json:"failedCount"`
}

// WarmSeasons loads the information, roster, regular and playoff views for
// every season through a bounded worker pool.
func (s *WarmService) WarmSeasons(ctx context.Context, maxWorkers int) (WarmResult, error) {
	ctx, span := startUsecaseSpan(ctx, "WarmService.WarmSeasons")
	defer span.End()

	seasonIDs, err := s.seasons.seasonRepo.ListIDs(ctx)
	if err != nil {
		return WarmResult{}, fmt.Errorf("list season ids: %w", err)
	}

	result := WarmResult{SeasonCount: len(seasonIDs)}
	if len(seasonIDs) == 0 {
		return result, nil
	}

	workerCount := maxWorkers
	if workerCount <= 0 {
		workerCount = defaultWarmWorkers
	}
	if workerCount > len(seasonIDs) {
		workerCount = len(seasonIDs)
	}

	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return WarmResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var viewCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, seasonID := range seasonIDs {
		seasonID := seasonID
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()

			loads := []func(context.Context, int64) (bool, error){
				func(ctx context.Context, id int64) (bool, error) {
					_, found, err := s.seasons.Information(ctx, id)
					return found, err
				},
				func(ctx context.Context, id int64) (bool, error) {
					_, found, err := s.seasons.RosterByID(ctx, id)
					return found, err
				},
				func(ctx context.Context, id int64) (bool, error) {
					_, found, err := s.seasons.Regular(ctx, id)
					return found, err
				},
				func(ctx context.Context, id int64) (bool, error) {
					_, found, err := s.seasons.Playoffs(ctx, id)
					return found, err
				},
			}
			for _, load := range loads {
				found, err := load(ctx, seasonID)
				if err != nil {
					failedCount.Add(1)
					s.logger.WarnContext(ctx, "season view warm-up failed", "seasonId", seasonID, "error", err)
					continue
				}
				if found {
					viewCount.Add(1)
				}
			}
		}); err != nil {
			workers.Done()
			return WarmResult{}, fmt.Errorf("submit warm-up task: %w", err)
		}
	}
	workers.Wait()

	if _, err := s.seasons.Leagues(ctx); err != nil {
		failedCount.Add(1)
		s.logger.WarnContext(ctx, "league summary warm-up failed", "error", err)
	} else {
		viewCount.Add(1)
	}

	result.ViewCount = int(viewCount.Load())
	result.FailedCount = int(failedCount.Load())
	return result, nil
}
