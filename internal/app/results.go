package app

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"renthub/internal/domain"
)

type ViewKind int

const (
	ViewLoading ViewKind = iota
	ViewEmpty
	ViewList
)

func (k ViewKind) String() string {
	switch k {
	case ViewLoading:
		return "loading"
	case ViewEmpty:
		return "empty"
	}
	return "list"
}

// TruncateAt is the backend's page size; at or above it the view hints that
// the search could be narrowed.
const TruncateAt = 50

// ResultsView is exactly one of loading, empty or list.
type ResultsView struct {
	Kind      ViewKind
	Heading   string
	Detail    string
	Count     int
	Cards     []Card
	Truncated bool
}

// Card is a display-ready listing.
type Card struct {
	Key        string
	Title      string
	Source     string
	Location   string
	BHK        string
	Rent       string
	Area       string
	Furnishing string
	Furnished  domain.Furnishing
	Posted     string
	URL        string
}

var printer = message.NewPrinter(language.English)

// RenderResults has no state and no side effects.
func RenderResults(items []domain.Listing, loading bool) ResultsView {
	if loading {
		return ResultsView{
			Kind:    ViewLoading,
			Heading: "Searching for properties...",
			Detail:  "This may take a few moments while we fetch fresh listings",
		}
	}
	if len(items) == 0 {
		return ResultsView{
			Kind:    ViewEmpty,
			Heading: "Start your search",
			Detail:  "Enter a location and adjust filters to find rental properties. We search across multiple platforms to bring you the best results.",
		}
	}

	noun := "Properties"
	if len(items) == 1 {
		noun = "Property"
	}
	v := ResultsView{
		Kind:      ViewList,
		Heading:   fmt.Sprintf("%d %s Found", len(items), noun),
		Count:     len(items),
		Cards:     make([]Card, len(items)),
		Truncated: len(items) >= TruncateAt,
	}
	if v.Truncated {
		v.Detail = fmt.Sprintf("Showing first %d results. Refine your search for more specific results.", TruncateAt)
	}
	for i, l := range items {
		v.Cards[i] = NewCard(l, i)
	}
	return v
}

func NewCard(l domain.Listing, idx int) Card {
	key := l.ID
	if key == "" {
		key = l.SourceURL + "-" + strconv.Itoa(idx)
	}
	return Card{
		Key:        key,
		Title:      l.Title,
		Source:     l.Source,
		Location:   l.Location,
		BHK:        bhkLabel(l.BHK),
		Rent:       RentLabel(l.Rent),
		Area:       areaLabel(l.AreaSqft),
		Furnishing: FurnishingLabel(l.Furnishing),
		Furnished:  l.Furnishing,
		Posted:     postedLabel(l),
		URL:        l.SourceURL,
	}
}

func bhkLabel(n *int) string {
	if n == nil || *n == 0 {
		return "N/A"
	}
	return strconv.Itoa(*n) + " BHK"
}

func RentLabel(v float64) string {
	return printer.Sprintf("₹%d/mo", int64(math.Round(v)))
}

func areaLabel(a *float64) string {
	if a == nil || *a == 0 {
		return "N/A"
	}
	return strconv.FormatFloat(*a, 'f', -1, 64) + " sq.ft"
}

// FurnishingLabel turns SEMI_FURNISHED into "Semi Furnished".
func FurnishingLabel(f domain.Furnishing) string {
	if f == domain.FurnishingUnknown {
		return "Not specified"
	}
	// Caser keeps state between calls, so each label gets its own.
	return cases.Title(language.English).String(strings.ReplaceAll(string(f), "_", " "))
}

func postedLabel(l domain.Listing) string {
	if l.PostedAt.IsZero() {
		return "Unknown"
	}
	return l.PostedAt.Format("2 Jan 2006")
}
