package match

import "context"

// Repository describes match persistence needs from use cases. The pending
// setup index is the bookkeeping map of match IDs still awaiting submission.
type Repository interface {
	Get(ctx context.Context, matchID string) (PendingMatch, bool, error)
	PutPending(ctx context.Context, m PendingMatch) error
	PutRecord(ctx context.Context, rec Record) error
	GetSetupIndex(ctx context.Context) (map[string]string, error)
	PutSetupIndex(ctx context.Context, index map[string]string) error
}
