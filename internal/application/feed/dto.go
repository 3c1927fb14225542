package feed

import (
	"github.com/shelflog/backend/internal/domain/feed"
	"github.com/shelflog/backend/internal/domain/shelf"
)

// FeedQuery selects one page of a feed
type FeedQuery struct {
	Page     int
	PageSize int // 0 uses the scope default
	// KnownRevision is the revision the caller already holds, if any.
	// When it is still current the page is not fetched again.
	KnownRevision *int64
}

// FeedResult is one enriched page of a feed and the revision it reflects
type FeedResult struct {
	Page        feed.Page[shelf.EnrichedEvent]
	Revision    int64
	NotModified bool
}
