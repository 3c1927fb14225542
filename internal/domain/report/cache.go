package report

import "context"

// TrendCache stores computed trend sets keyed by the store revision they were
// computed at. An entry for an older revision is never returned as current.
type TrendCache interface {
	// Get returns the trend set computed at revision, or ok=false
	Get(ctx context.Context, revision int64) (set *TrendSet, ok bool, err error)

	// Put stores the trend set computed at revision
	Put(ctx context.Context, revision int64, set TrendSet) error
}
