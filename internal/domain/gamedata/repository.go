package gamedata

import "context"

// Repository exposes the read-only reference catalogs: champion IDs for ban
// validation and the current patch label for canonical records.
type Repository interface {
	ChampionExists(ctx context.Context, championID int) (bool, error)
	CurrentPatch(ctx context.Context) (string, error)
}
