package app

import (
	"sync"

	"renthub/internal/domain"
)

// PageState is the UI state owned by a Page.
type PageState struct {
	Results []domain.Listing
	Loading bool
	Error   string
	Notice  string
}

// Page is the top-level coordinator. It implements Listener; concurrent
// searches are safe and whichever callback lands last wins.
type Page struct {
	mu       sync.Mutex
	st       PageState
	onChange func(PageState)
}

// NewPage returns an empty page. onChange, if set, is called with a snapshot
// after every state change, outside the lock.
func NewPage(onChange func(PageState)) *Page {
	return &Page{onChange: onChange}
}

func (p *Page) OnResults(items []domain.Listing) {
	p.update(func(st *PageState) { st.Results = items })
}

func (p *Page) OnLoadingChange(loading bool) {
	p.update(func(st *PageState) { st.Loading = loading })
}

func (p *Page) OnError(msg string) {
	p.update(func(st *PageState) { st.Error = msg })
}

func (p *Page) OnNotice(msg string) {
	p.update(func(st *PageState) { st.Notice = msg })
}

func (p *Page) Snapshot() PageState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.st
}

// View renders the current results section.
func (p *Page) View() ResultsView {
	st := p.Snapshot()
	return RenderResults(st.Results, st.Loading)
}

func (p *Page) update(fn func(*PageState)) {
	p.mu.Lock()
	fn(&p.st)
	st := p.st
	p.mu.Unlock()
	if p.onChange != nil {
		p.onChange(st)
	}
}
