package profile

import "context"

// Repository describes profile persistence needs from use cases. Name lookup
// is an exact match on the filtered display name.
type Repository interface {
	FindPIDByName(ctx context.Context, name string) (int64, bool, error)
	GetByID(ctx context.Context, profileID int64) (Profile, bool, error)
}
