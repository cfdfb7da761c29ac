package domain

import (
	"encoding/json"
	"strings"
	"time"
)

type Furnishing string

const (
	FurnishingUnknown     Furnishing = ""
	FurnishingFurnished   Furnishing = "FURNISHED"
	FurnishingSemi        Furnishing = "SEMI_FURNISHED"
	FurnishingUnfurnished Furnishing = "UNFURNISHED"
)

// ParseFurnishing maps backend values onto the known set; anything else is unknown.
func ParseFurnishing(s string) Furnishing {
	switch f := Furnishing(strings.ToUpper(strings.TrimSpace(s))); f {
	case FurnishingFurnished, FurnishingSemi, FurnishingUnfurnished:
		return f
	}
	return FurnishingUnknown
}

func (f *Furnishing) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		// numbers, objects: treat as unknown rather than failing the whole result set
		*f = FurnishingUnknown
		return nil
	}
	if s == nil {
		*f = FurnishingUnknown
		return nil
	}
	*f = ParseFurnishing(*s)
	return nil
}

func (f Furnishing) MarshalJSON() ([]byte, error) {
	if f == FurnishingUnknown {
		return []byte("null"), nil
	}
	return json.Marshal(string(f))
}

// Listing is one rental record as returned by the search backend.
type Listing struct {
	ID         string     `json:"id,omitempty"`
	Title      string     `json:"title"`
	BHK        *int       `json:"bhk"`
	Rent       float64    `json:"rent"`
	Location   string     `json:"location"`
	AreaSqft   *float64   `json:"area_sqft"`
	Furnishing Furnishing `json:"furnishing"`
	Type       *string    `json:"type,omitempty"`
	PostedAt   time.Time  `json:"posted_at"`
	Source     string     `json:"source"`
	SourceURL  string     `json:"source_url"`
	CreatedAt  *time.Time `json:"created_at,omitempty"`
}

// wireListing mirrors Listing with loosely typed timestamps; the backend sends
// dates in a handful of layouts.
type wireListing struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	BHK        *int       `json:"bhk"`
	Rent       float64    `json:"rent"`
	Location   string     `json:"location"`
	AreaSqft   *float64   `json:"area_sqft"`
	Furnishing Furnishing `json:"furnishing"`
	Type       *string    `json:"type"`
	PostedAt   *string    `json:"posted_at"`
	Source     string     `json:"source"`
	SourceURL  string     `json:"source_url"`
	CreatedAt  *string    `json:"created_at"`
}

func (l *Listing) UnmarshalJSON(b []byte) error {
	var w wireListing
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*l = Listing{
		ID:         w.ID,
		Title:      w.Title,
		BHK:        w.BHK,
		Rent:       w.Rent,
		Location:   w.Location,
		AreaSqft:   w.AreaSqft,
		Furnishing: w.Furnishing,
		Type:       w.Type,
		Source:     w.Source,
		SourceURL:  w.SourceURL,
	}
	if w.PostedAt != nil {
		l.PostedAt = ParseTimestamp(*w.PostedAt)
	}
	if w.CreatedAt != nil {
		if t := ParseTimestamp(*w.CreatedAt); !t.IsZero() {
			l.CreatedAt = &t
		}
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp returns the zero time when s matches none of the known layouts.
func ParseTimestamp(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
