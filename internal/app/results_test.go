package app_test

import (
	"sync"
	"testing"
	"time"

	"renthub/internal/app"
	"renthub/internal/domain"
)

func TestRenderResults_Views(t *testing.T) {
	if v := app.RenderResults(listings(3), true); v.Kind != app.ViewLoading || len(v.Cards) != 0 {
		t.Fatalf("loading must win over items: %+v", v)
	}
	if v := app.RenderResults(nil, false); v.Kind != app.ViewEmpty {
		t.Fatalf("expected empty view, got %v", v.Kind)
	}
	if v := app.RenderResults([]domain.Listing{}, false); v.Kind != app.ViewEmpty {
		t.Fatalf("expected empty view, got %v", v.Kind)
	}
}

func TestRenderResults_HeaderMatchesCount(t *testing.T) {
	for n, want := range map[int]string{
		1:  "1 Property Found",
		2:  "2 Properties Found",
		49: "49 Properties Found",
	} {
		v := app.RenderResults(listings(n), false)
		if v.Kind != app.ViewList || v.Count != n || len(v.Cards) != n {
			t.Fatalf("n=%d: %+v", n, v)
		}
		if v.Heading != want {
			t.Fatalf("n=%d: heading %q, want %q", n, v.Heading, want)
		}
		if v.Truncated {
			t.Fatalf("n=%d: unexpected truncation hint", n)
		}
	}
	if v := app.RenderResults(listings(app.TruncateAt), false); !v.Truncated || v.Detail == "" {
		t.Fatalf("expected truncation hint at %d", app.TruncateAt)
	}
}

func TestNewCard_Labels(t *testing.T) {
	l := domain.Listing{
		Title:      "Spacious 2BHK",
		BHK:        ptr(2),
		Rent:       32000,
		Location:   "HSR Layout",
		AreaSqft:   ptr(1150.0),
		Furnishing: domain.FurnishingSemi,
		PostedAt:   time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC),
		Source:     "nobroker",
		SourceURL:  "https://x/1",
	}
	c := app.NewCard(l, 4)
	if c.Key != "https://x/1-4" {
		t.Fatalf("key = %q", c.Key)
	}
	if c.BHK != "2 BHK" || c.Area != "1150 sq.ft" || c.Furnishing != "Semi Furnished" {
		t.Fatalf("card = %+v", c)
	}
	if c.Rent != "₹32,000/mo" {
		t.Fatalf("rent = %q", c.Rent)
	}
	if c.Posted != "5 Mar 2024" {
		t.Fatalf("posted = %q", c.Posted)
	}

	l.ID = "abc"
	l.BHK = nil
	l.AreaSqft = nil
	l.Furnishing = domain.FurnishingUnknown
	l.PostedAt = time.Time{}
	c = app.NewCard(l, 0)
	if c.Key != "abc" || c.BHK != "N/A" || c.Area != "N/A" || c.Furnishing != "Not specified" || c.Posted != "Unknown" {
		t.Fatalf("card = %+v", c)
	}
}

func TestFurnishingLabel(t *testing.T) {
	cases := map[domain.Furnishing]string{
		domain.FurnishingFurnished:   "Furnished",
		domain.FurnishingUnfurnished: "Unfurnished",
		domain.FurnishingSemi:        "Semi Furnished",
		domain.FurnishingUnknown:     "Not specified",
	}
	for f, want := range cases {
		if got := app.FurnishingLabel(f); got != want {
			t.Fatalf("%s: %q", f, got)
		}
	}
}

func TestFurnishingLabel_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := app.FurnishingLabel(domain.FurnishingSemi); got != "Semi Furnished" {
				t.Errorf("got %q", got)
			}
		}()
	}
	wg.Wait()
}
