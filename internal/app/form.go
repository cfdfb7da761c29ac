package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"renthub/internal/adapters/observability"
	"renthub/internal/domain"
)

const (
	MsgNoResults = "No results found. Try adjusting your search filters."
	MsgFallback  = "Failed to fetch results. Please try again."

	DefaultBrowseLimit = 50
	MaxBrowseLimit     = 200
)

// Listener receives the form's state changes. An empty message clears the
// corresponding field.
type Listener interface {
	OnResults(items []domain.Listing)
	OnLoadingChange(loading bool)
	OnError(msg string)
	OnNotice(msg string)
}

// SearchForm validates filter input and drives one search per Submit.
type SearchForm struct {
	src domain.ListingSource
}

func NewSearchForm(src domain.ListingSource) *SearchForm {
	return &SearchForm{src: src}
}

// Submit validates in and, when valid, runs the search. Invalid input is
// reported through l and never reaches the backend.
func (f *SearchForm) Submit(ctx context.Context, in domain.FormInput, l Listener) {
	q, err := domain.ParseQuery(in)
	if err != nil {
		observability.ObserveSearch("invalid")
		l.OnNotice("")
		l.OnError(err.Error())
		return
	}
	f.run(l, func() ([]domain.Listing, error) { return f.src.Search(ctx, q) })
}

// Browse loads the latest listings with the same loading and error lifecycle as Submit.
func (f *SearchForm) Browse(ctx context.Context, limit int, l Listener) {
	f.run(l, func() ([]domain.Listing, error) { return f.src.Listings(ctx, ClampBrowseLimit(limit)) })
}

// Reset clears results and messages.
func (f *SearchForm) Reset(l Listener) {
	l.OnResults(nil)
	l.OnError("")
	l.OnNotice("")
}

func (f *SearchForm) run(l Listener, call func() ([]domain.Listing, error)) {
	l.OnError("")
	l.OnNotice("")
	l.OnLoadingChange(true)
	defer l.OnLoadingChange(false)

	items, err := call()
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = MsgFallback
		}
		observability.ObserveSearch("failed")
		log.Debug().Err(err).Msg("search failed")
		l.OnError(msg)
		l.OnResults(nil)
		return
	}

	l.OnResults(items)
	if len(items) == 0 {
		observability.ObserveSearch("empty")
		l.OnNotice(MsgNoResults)
		return
	}
	observability.ObserveSearch("ok")
}

func ClampBrowseLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultBrowseLimit
	case n > MaxBrowseLimit:
		return MaxBrowseLimit
	}
	return n
}
