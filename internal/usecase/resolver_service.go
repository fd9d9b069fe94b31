package usecase

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aegisleagues/league-data/internal/domain/profile"
	"github.com/aegisleagues/league-data/internal/domain/team"
	"github.com/aegisleagues/league-data/internal/platform/cache"
	"github.com/aegisleagues/league-data/internal/platform/identifier"
)

// ResolverService answers the small identity questions the rest of the
// services ask constantly: name to numeric id, hash id to display name.
// Every answer goes through the cache store so repeated lookups during
// enrichment and validation hit the backing store once.
type ResolverService struct {
	profileRepo profile.Repository
	teamRepo    team.Repository
	cache       *cache.Store
}

func NewResolverService(profileRepo profile.Repository, teamRepo team.Repository, cacheStore *cache.Store) *ResolverService {
	return &ResolverService{
		profileRepo: profileRepo,
		teamRepo:    teamRepo,
		cache:       cacheStore,
	}
}

// ResolveProfileID maps a display name to the profile's numeric id. The
// name is normalized before it is used as a cache key or a lookup value,
// so "Moon Cat" and "mooncat" resolve identically.
func (s *ResolverService) ResolveProfileID(ctx context.Context, name string) (int64, bool, error) {
	filtered := identifier.FilterName(name)
	if filtered == "" {
		return 0, false, nil
	}

	key := cacheKeyProfileID + filtered
	id, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (int64, bool, error) {
		return s.profileRepo.FindPIDByName(ctx, filtered)
	})
	if err != nil {
		return 0, false, fmt.Errorf("resolve profile id: %w", err)
	}
	return id, found, nil
}

// ResolveTeamID maps a display name to the team's numeric id.
func (s *ResolverService) ResolveTeamID(ctx context.Context, name string) (int64, bool, error) {
	filtered := identifier.FilterName(name)
	if filtered == "" {
		return 0, false, nil
	}

	key := cacheKeyTeamID + filtered
	id, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (int64, bool, error) {
		return s.teamRepo.FindPIDByName(ctx, filtered)
	})
	if err != nil {
		return 0, false, fmt.Errorf("resolve team id: %w", err)
	}
	return id, found, nil
}

// ProfileNameByHashID decodes an opaque profile hash id and returns the
// stored display name.
func (s *ResolverService) ProfileNameByHashID(ctx context.Context, hashID string) (string, bool, error) {
	pid, err := identifier.DecodeProfileHashID(hashID)
	if err != nil {
		return "", false, nil
	}

	key := cacheKeyProfileName + strconv.FormatInt(pid, 10)
	name, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		p, exists, err := s.profileRepo.GetByID(ctx, pid)
		if err != nil || !exists {
			return "", false, err
		}
		return p.ProfileName, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("profile name by hash id: %w", err)
	}
	return name, found, nil
}

// TeamNameByHashID decodes an opaque team hash id and returns the stored
// display name.
func (s *ResolverService) TeamNameByHashID(ctx context.Context, hashID string) (string, bool, error) {
	pid, err := identifier.DecodeTeamHashID(hashID)
	if err != nil {
		return "", false, nil
	}
	return s.TeamNameByID(ctx, pid)
}

// TeamNameByID returns the display name for a numeric team id.
func (s *ResolverService) TeamNameByID(ctx context.Context, pid int64) (string, bool, error) {
	key := cacheKeyTeamName + strconv.FormatInt(pid, 10)
	name, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		t, exists, err := s.teamRepo.GetByID(ctx, pid)
		if err != nil || !exists {
			return "", false, err
		}
		return t.TeamName, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("team name by id: %w", err)
	}
	return name, found, nil
}

// ProfileNameByID returns the display name for a numeric profile id.
func (s *ResolverService) ProfileNameByID(ctx context.Context, pid int64) (string, bool, error) {
	key := cacheKeyProfileName + strconv.FormatInt(pid, 10)
	name, found, err := cache.Lookup(ctx, s.cache, key, 0, func(ctx context.Context) (string, bool, error) {
		p, exists, err := s.profileRepo.GetByID(ctx, pid)
		if err != nil || !exists {
			return "", false, err
		}
		return p.ProfileName, true, nil
	})
	if err != nil {
		return "", false, fmt.Errorf("profile name by id: %w", err)
	}
	return name, found, nil
}
