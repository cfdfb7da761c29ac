package app

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog/log"

	"renthub/internal/domain"
)

// SearchService fronts the remote backend with an optional result cache and
// records completed searches in an optional history store.
type SearchService struct {
	src      domain.ListingSource
	cache    domain.Cache
	history  domain.SearchHistory
	cacheTTL time.Duration
	now      func() time.Time
}

// NewSearchService accepts nil cache and history; ttl <= 0 disables caching.
func NewSearchService(src domain.ListingSource, c domain.Cache, h domain.SearchHistory, ttl time.Duration) *SearchService {
	return &SearchService{src: src, cache: c, history: h, cacheTTL: ttl, now: time.Now}
}

func (s *SearchService) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	key := q.CacheKey()
	if s.caching() {
		var items []domain.Listing
		ok, err := s.cache.Get(ctx, key, &items)
		if err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache read failed")
		}
		if ok && err == nil {
			s.record(ctx, q, len(items))
			return items, nil
		}
	}

	items, err := s.src.Search(ctx, q)
	if err != nil {
		return nil, err
	}

	if s.caching() {
		if err := s.cache.Set(ctx, key, items, int(s.cacheTTL.Seconds())); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	s.record(ctx, q, len(items))
	return items, nil
}

// Refresh drops any cached entry for q and searches again, so the entry and
// its TTL are rewritten from the backend.
func (s *SearchService) Refresh(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	if s.caching() {
		if err := s.cache.Del(ctx, q.CacheKey()); err != nil {
			return nil, errors.Wrapf(err, "evict %s", q.CacheKey())
		}
	}
	return s.Search(ctx, q)
}

// Listings always goes to the backend; the latest feed is not cached.
func (s *SearchService) Listings(ctx context.Context, limit int) ([]domain.Listing, error) {
	return s.src.Listings(ctx, limit)
}

// RecentSearches returns nil when no history store is configured.
func (s *SearchService) RecentSearches(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	if s.history == nil {
		return nil, nil
	}
	return s.history.RecentSearches(ctx, limit)
}

func (s *SearchService) caching() bool { return s.cache != nil && s.cacheTTL > 0 }

func (s *SearchService) record(ctx context.Context, q domain.SearchQuery, n int) {
	if s.history == nil {
		return
	}
	err := s.history.RecordSearch(ctx, domain.SearchRecord{
		Location:    q.Location,
		BHK:         q.BHK,
		MinRent:     q.MinRent,
		MaxRent:     q.MaxRent,
		ResultCount: n,
		SearchedAt:  s.now().UTC(),
	})
	if err != nil {
		log.Warn().Err(err).Str("location", q.Location).Msg("search history write failed")
	}
}
