package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	FindPIDByName(ctx context.Context, name string) (int64, bool, error)
	GetByID(ctx context.Context, teamID int64) (Team, bool, error)
}
