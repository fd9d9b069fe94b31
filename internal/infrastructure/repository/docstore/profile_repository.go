package docstore

import (
	"context"
	"fmt"
	"strconv"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/domain/profile"
	"github.com/aegisleagues/league-data/internal/platform/docstore"
	"github.com/aegisleagues/league-data/internal/platform/identifier"
)

type ProfileRepository struct {
	store docstore.Store
}

func NewProfileRepository(store docstore.Store) *ProfileRepository {
	return &ProfileRepository{store: store}
}

// FindPIDByName matches on the filtered display name, so "Cloud-Nine GG" and
// "cloudninegg" resolve to the same profile.
func (r *ProfileRepository) FindPIDByName(ctx context.Context, name string) (int64, bool, error) {
	wanted := identifier.FilterName(name)
	if wanted == "" {
		return 0, false, nil
	}

	rows, err := r.store.Scan(ctx, tableProfiles, []string{"ProfilePId", "ProfileName"}, "", "")
	if err != nil {
		return 0, false, fmt.Errorf("scan profiles: %w", err)
	}

	for _, row := range rows {
		var partial profile.Profile
		if err := sonic.Unmarshal(row, &partial); err != nil {
			return 0, false, fmt.Errorf("decode profile: %w", err)
		}
		if identifier.FilterName(partial.ProfileName) == wanted {
			return partial.ProfilePID, true, nil
		}
	}
	return 0, false, nil
}

func (r *ProfileRepository) GetByID(ctx context.Context, profileID int64) (profile.Profile, bool, error) {
	doc, found, err := r.store.Get(ctx, tableProfiles, strconv.FormatInt(profileID, 10))
	if err != nil {
		return profile.Profile{}, false, fmt.Errorf("get profile %d: %w", profileID, err)
	}
	if !found {
		return profile.Profile{}, false, nil
	}

	var p profile.Profile
	if err := sonic.Unmarshal(doc, &p); err != nil {
		return profile.Profile{}, false, fmt.Errorf("decode profile %d: %w", profileID, err)
	}
	return p, true, nil
}

func (r *ProfileRepository) Put(ctx context.Context, p profile.Profile) error {
	doc, err := sonic.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile %d: %w", p.ProfilePID, err)
	}
	if err := r.store.Put(ctx, tableProfiles, strconv.FormatInt(p.ProfilePID, 10), doc); err != nil {
		return fmt.Errorf("put profile %d: %w", p.ProfilePID, err)
	}
	return nil
}
