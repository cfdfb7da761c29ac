package app_test

import (
	"context"
	"strconv"
	"sync"

	"renthub/internal/domain"
)

// ---- fakes ----

type fakeSource struct {
	mu       sync.Mutex
	items    []domain.Listing
	err      error
	searches int
	lists    int
	lastQ    domain.SearchQuery
	lastLim  int
}

func (f *fakeSource) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searches++
	f.lastQ = q
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func (f *fakeSource) Listings(ctx context.Context, limit int) ([]domain.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists++
	f.lastLim = limit
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

type fakeCache struct {
	store map[string][]domain.Listing
}

func (c *fakeCache) Get(ctx context.Context, key string, dst any) (bool, error) {
	v, ok := c.store[key]
	if !ok {
		return false, nil
	}
	*dst.(*[]domain.Listing) = v
	return true, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, v any, ttlSec int) error {
	if c.store == nil {
		c.store = map[string][]domain.Listing{}
	}
	c.store[key] = v.([]domain.Listing)
	return nil
}

func (c *fakeCache) Del(ctx context.Context, key string) error {
	delete(c.store, key)
	return nil
}

type fakeHistory struct {
	recs []domain.SearchRecord
	err  error
}

func (h *fakeHistory) RecordSearch(ctx context.Context, r domain.SearchRecord) error {
	if h.err != nil {
		return h.err
	}
	h.recs = append(h.recs, r)
	return nil
}

func (h *fakeHistory) RecentSearches(ctx context.Context, limit int) ([]domain.SearchRecord, error) {
	return h.recs, h.err
}

// recorder is a Listener that keeps every call in order.
type recorder struct {
	events []string
}

func (r *recorder) OnResults(items []domain.Listing) {
	if items == nil {
		r.events = append(r.events, "results:nil")
		return
	}
	r.events = append(r.events, "results:"+strconv.Itoa(len(items)))
}
func (r *recorder) OnLoadingChange(b bool) {
	if b {
		r.events = append(r.events, "loading:true")
	} else {
		r.events = append(r.events, "loading:false")
	}
}
func (r *recorder) OnError(msg string)  { r.events = append(r.events, "error:"+msg) }
func (r *recorder) OnNotice(msg string) { r.events = append(r.events, "notice:"+msg) }

func listings(n int) []domain.Listing {
	out := make([]domain.Listing, n)
	for i := range out {
		out[i] = domain.Listing{Title: "Listing", Rent: 20000, Location: "HSR Layout", SourceURL: "https://x/" + strconv.Itoa(i)}
	}
	return out
}

func ptr[T any](v T) *T { return &v }
