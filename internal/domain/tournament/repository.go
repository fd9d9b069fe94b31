package tournament

import "context"

// Repository describes tournament persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, tournamentID int64) (Tournament, bool, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Put(ctx context.Context, t Tournament) error
}
