package domain

import "context"

// ListingSource is the remote search backend.
type ListingSource interface {
	Search(ctx context.Context, q SearchQuery) ([]Listing, error)
	Listings(ctx context.Context, limit int) ([]Listing, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

type SearchHistory interface {
	RecordSearch(ctx context.Context, r SearchRecord) error
	RecentSearches(ctx context.Context, limit int) ([]SearchRecord, error)
}
