package domain

import "time"

// SearchRecord is one completed search kept in the history store.
type SearchRecord struct {
	ID          string
	Location    string
	BHK         *int
	MinRent     *float64
	MaxRent     *float64
	ResultCount int
	SearchedAt  time.Time
}
