package docstore

import (
	"context"
	"fmt"

	sonic "github.com/bytedance/sonic"

	"github.com/aegisleagues/league-data/internal/domain/match"
	"github.com/aegisleagues/league-data/internal/platform/docstore"
)

type MatchRepository struct {
	store docstore.Store
}

func NewMatchRepository(store docstore.Store) *MatchRepository {
	return &MatchRepository{store: store}
}

func (r *MatchRepository) Get(ctx context.Context, matchID string) (match.PendingMatch, bool, error) {
	doc, found, err := r.store.Get(ctx, tableMatches, matchID)
	if err != nil {
		return match.PendingMatch{}, false, fmt.Errorf("get match %s: %w", matchID, err)
	}
	if !found {
		return match.PendingMatch{}, false, nil
	}

	var m match.PendingMatch
	if err := sonic.Unmarshal(doc, &m); err != nil {
		return match.PendingMatch{}, false, fmt.Errorf("decode match %s: %w", matchID, err)
	}
	return m, true, nil
}

func (r *MatchRepository) PutPending(ctx context.Context, m match.PendingMatch) error {
	doc, err := sonic.Marshal(m)
	if err != nil {
		return fmt.Errorf("encode pending match %s: %w", m.MatchPID, err)
	}
	if err := r.store.Put(ctx, tableMatches, m.MatchPID, doc); err != nil {
		return fmt.Errorf("put pending match %s: %w", m.MatchPID, err)
	}
	return nil
}

// PutRecord replaces the pending document with the canonical record under the
// same match key.
func (r *MatchRepository) PutRecord(ctx context.Context, rec match.Record) error {
	doc, err := sonic.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode match record %s: %w", rec.MatchPID, err)
	}
	if err := r.store.Put(ctx, tableMatches, rec.MatchPID, doc); err != nil {
		return fmt.Errorf("put match record %s: %w", rec.MatchPID, err)
	}
	return nil
}

type setupIndexDocument struct {
	Key             string            `json:"Key"`
	MatchSetupIDMap map[string]string `json:"MatchSetupIdMap"`
}

func (r *MatchRepository) GetSetupIndex(ctx context.Context) (map[string]string, error) {
	doc, found, err := r.store.Get(ctx, tableMiscellaneous, miscKeySetupIndex)
	if err != nil {
		return nil, fmt.Errorf("get setup index: %w", err)
	}
	if !found {
		return map[string]string{}, nil
	}

	var decoded setupIndexDocument
	if err := sonic.Unmarshal(doc, &decoded); err != nil {
		return nil, fmt.Errorf("decode setup index: %w", err)
	}
	if decoded.MatchSetupIDMap == nil {
		return map[string]string{}, nil
	}
	return decoded.MatchSetupIDMap, nil
}

func (r *MatchRepository) PutSetupIndex(ctx context.Context, index map[string]string) error {
	doc, err := sonic.Marshal(setupIndexDocument{
		Key:             miscKeySetupIndex,
		MatchSetupIDMap: index,
	})
	if err != nil {
		return fmt.Errorf("encode setup index: %w", err)
	}
	if err := r.store.Put(ctx, tableMiscellaneous, miscKeySetupIndex, doc); err != nil {
		return fmt.Errorf("put setup index: %w", err)
	}
	return nil
}
