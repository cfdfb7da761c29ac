package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	httpserver "renthub/internal/adapters/http_server"
	"renthub/internal/adapters/observability"
	"renthub/internal/app"
	"renthub/internal/domain"
)

type fakeSource struct {
	items []domain.Listing
	err   error
	calls int
	limit int
}

func (f *fakeSource) Search(ctx context.Context, q domain.SearchQuery) ([]domain.Listing, error) {
	f.calls++
	return f.items, f.err
}

func (f *fakeSource) Listings(ctx context.Context, limit int) ([]domain.Listing, error) {
	f.calls++
	f.limit = limit
	return f.items, f.err
}

func newTestServer(t *testing.T, src *fakeSource) *httptest.Server {
	t.Helper()
	svc := app.NewSearchService(src, nil, nil, 0)
	srv := httpserver.New(5*time.Second, []string{"http://localhost:5173"})
	srv.MountHandlers(&httpserver.Handlers{
		Form:            app.NewSearchForm(svc),
		Svc:             svc,
		DefaultLocation: "HSR Layout",
		BrowseLimit:     50,
	})
	ts := httptest.NewServer(srv.Mux())
	t.Cleanup(ts.Close)
	return ts
}

func readBody(t *testing.T, res *http.Response) string {
	t.Helper()
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func twoListings() []domain.Listing {
	bhk := 2
	return []domain.Listing{
		{ID: "a", Title: "Lake view 2BHK", BHK: &bhk, Rent: 30000, Location: "HSR Layout", Source: "nobroker", SourceURL: "https://x/a"},
		{ID: "b", Title: "Compact studio", Rent: 14000, Location: "HSR Layout", Source: "housing", SourceURL: "https://x/b"},
	}
}

func TestIndex_PrefillsDefaultLocation(t *testing.T) {
	ts := newTestServer(t, &fakeSource{})
	res, err := http.Get(ts.URL + "/")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	body := readBody(t, res)
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if !strings.Contains(body, `value="HSR Layout"`) || !strings.Contains(body, "Start your search") {
		t.Fatalf("unexpected page: %s", body)
	}
}

func TestSearch_BlankLocationShowsValidationError(t *testing.T) {
	src := &fakeSource{items: twoListings()}
	ts := newTestServer(t, src)

	res, err := http.PostForm(ts.URL+"/search", url.Values{"location": {"  "}})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body := readBody(t, res)
	if !strings.Contains(body, domain.MsgLocationRequired) {
		t.Fatalf("missing validation message: %s", body)
	}
	if src.calls != 0 {
		t.Fatalf("backend called %d times", src.calls)
	}
}

func TestSearch_RendersCards(t *testing.T) {
	ts := newTestServer(t, &fakeSource{items: twoListings()})

	res, err := http.PostForm(ts.URL+"/search", url.Values{"location": {"HSR Layout"}, "bhk": {"2"}})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body := readBody(t, res)
	if !strings.Contains(body, "2 Properties Found") {
		t.Fatalf("missing count header: %s", body)
	}
	if strings.Count(body, `class="card"`) != 2 {
		t.Fatalf("expected 2 cards: %s", body)
	}
}

func TestSearch_BackendErrorShown(t *testing.T) {
	ts := newTestServer(t, &fakeSource{err: errors.New("Server error: 500")})

	res, err := http.PostForm(ts.URL+"/search", url.Values{"location": {"Koramangala"}})
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	body := readBody(t, res)
	if !strings.Contains(body, "Server error: 500") || !strings.Contains(body, "Start your search") {
		t.Fatalf("expected error with cleared list: %s", body)
	}
}

func TestBrowse_NonNumericLimitUsesDefault(t *testing.T) {
	src := &fakeSource{}
	ts := newTestServer(t, src)
	res, err := http.Get(ts.URL + "/browse?limit=abc")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}
	if src.calls != 1 || src.limit != 50 {
		t.Fatalf("calls %d, limit %d", src.calls, src.limit)
	}
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	if err := c.Write(&m); err != nil {
		t.Fatalf("read counter: %v", err)
	}
	return m.GetCounter().GetValue()
}

func postJSON(t *testing.T, u, body string) (*http.Response, map[string]any) {
	t.Helper()
	res, err := http.Post(u, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(readBody(t, res)), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return res, out
}

func TestAPISearch(t *testing.T) {
	t.Run("validation", func(t *testing.T) {
		src := &fakeSource{}
		ts := newTestServer(t, src)
		invalid := observability.Searches.WithLabelValues("invalid")
		before := counterValue(t, invalid)
		res, out := postJSON(t, ts.URL+"/api/search", `{"location":"HSR","minRent":9000,"maxRent":"1000"}`)
		if res.StatusCode != http.StatusUnprocessableEntity || out["error"] != domain.MsgRentRange {
			t.Fatalf("status %d body %v", res.StatusCode, out)
		}
		if src.calls != 0 {
			t.Fatalf("backend called")
		}
		if got := counterValue(t, invalid) - before; got != 1 {
			t.Fatalf("invalid searches counted %v", got)
		}
	})
	t.Run("backend error", func(t *testing.T) {
		ts := newTestServer(t, &fakeSource{err: errors.New("Scraper offline")})
		res, out := postJSON(t, ts.URL+"/api/search", `{"location":"HSR Layout"}`)
		if res.StatusCode != http.StatusBadGateway || out["error"] != "Scraper offline" {
			t.Fatalf("status %d body %v", res.StatusCode, out)
		}
	})
	t.Run("empty", func(t *testing.T) {
		ts := newTestServer(t, &fakeSource{items: []domain.Listing{}})
		res, out := postJSON(t, ts.URL+"/api/search", `{"location":"HSR Layout","bhk":3}`)
		if res.StatusCode != http.StatusOK || out["notice"] != app.MsgNoResults || out["count"] != float64(0) {
			t.Fatalf("status %d body %v", res.StatusCode, out)
		}
	})
	t.Run("results", func(t *testing.T) {
		ts := newTestServer(t, &fakeSource{items: twoListings()})
		res, out := postJSON(t, ts.URL+"/api/search", `{"location":"HSR Layout","bhk":null}`)
		if res.StatusCode != http.StatusOK || out["count"] != float64(2) {
			t.Fatalf("status %d body %v", res.StatusCode, out)
		}
	})
}

func TestAPISearch_CORSPreflight(t *testing.T) {
	ts := newTestServer(t, &fakeSource{})
	req, _ := http.NewRequest(http.MethodOptions, ts.URL+"/api/search", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "POST")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("OPTIONS: %v", err)
	}
	res.Body.Close()
	if got := res.Header.Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("allow-origin = %q", got)
	}
}
