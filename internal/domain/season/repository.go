package season

import "context"

// Repository describes season persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, seasonID int64) (Season, bool, error)
	FindIDByShortName(ctx context.Context, shortName string) (int64, bool, error)
	ListInformation(ctx context.Context) ([]Information, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Put(ctx context.Context, s Season) error
	// UpdateWeekCodes rewrites only Codes.Weeks of the season document.
	UpdateWeekCodes(ctx context.Context, seasonID int64, weeks map[string]WeekCodes) error
}
