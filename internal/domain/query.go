package domain

import (
	"math"
	"strconv"
	"strings"
)

const (
	MsgLocationRequired = "Please enter a location"
	MsgInvalidBHK       = "BHK must be a positive whole number"
	MsgInvalidMinRent   = "Minimum rent must be a non-negative number"
	MsgInvalidMaxRent   = "Maximum rent must be a non-negative number"
	MsgRentRange        = "Minimum rent cannot be greater than maximum rent"
)

// ValidationError is reported to the user before any network call is made.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

// SearchQuery is the normalized filter set sent to the search endpoint.
// Nil optionals are omitted from the request body.
type SearchQuery struct {
	Location string   `json:"location"`
	BHK      *int     `json:"bhk,omitempty"`
	MinRent  *float64 `json:"minRent,omitempty"`
	MaxRent  *float64 `json:"maxRent,omitempty"`
}

// Validate checks the query invariants and returns a *ValidationError.
func (q SearchQuery) Validate() error {
	if strings.TrimSpace(q.Location) == "" {
		return &ValidationError{Msg: MsgLocationRequired}
	}
	if q.BHK != nil && *q.BHK <= 0 {
		return &ValidationError{Msg: MsgInvalidBHK}
	}
	if q.MinRent != nil && !validRent(*q.MinRent) {
		return &ValidationError{Msg: MsgInvalidMinRent}
	}
	if q.MaxRent != nil && !validRent(*q.MaxRent) {
		return &ValidationError{Msg: MsgInvalidMaxRent}
	}
	if q.MinRent != nil && q.MaxRent != nil && *q.MinRent > *q.MaxRent {
		return &ValidationError{Msg: MsgRentRange}
	}
	return nil
}

func validRent(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// FormInput carries filter values exactly as typed; blank optional fields are absent.
type FormInput struct {
	Location string
	BHK      string
	MinRent  string
	MaxRent  string
}

// ParseQuery turns raw form input into a validated SearchQuery.
func ParseQuery(in FormInput) (SearchQuery, error) {
	q := SearchQuery{Location: strings.TrimSpace(in.Location)}
	if q.Location == "" {
		return SearchQuery{}, &ValidationError{Msg: MsgLocationRequired}
	}
	if s := strings.TrimSpace(in.BHK); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil {
			return SearchQuery{}, &ValidationError{Msg: MsgInvalidBHK}
		}
		q.BHK = &n
	}
	if s := strings.TrimSpace(in.MinRent); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return SearchQuery{}, &ValidationError{Msg: MsgInvalidMinRent}
		}
		q.MinRent = &v
	}
	if s := strings.TrimSpace(in.MaxRent); s != "" {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return SearchQuery{}, &ValidationError{Msg: MsgInvalidMaxRent}
		}
		q.MaxRent = &v
	}
	if err := q.Validate(); err != nil {
		return SearchQuery{}, err
	}
	return q, nil
}

// CacheKey is stable for equal queries; location matching is case-insensitive.
func (q SearchQuery) CacheKey() string {
	var b strings.Builder
	b.WriteString("search:")
	b.WriteString(strings.ToLower(strings.TrimSpace(q.Location)))
	b.WriteString("|bhk=")
	if q.BHK != nil {
		b.WriteString(strconv.Itoa(*q.BHK))
	}
	b.WriteString("|min=")
	if q.MinRent != nil {
		b.WriteString(strconv.FormatFloat(*q.MinRent, 'f', -1, 64))
	}
	b.WriteString("|max=")
	if q.MaxRent != nil {
		b.WriteString(strconv.FormatFloat(*q.MaxRent, 'f', -1, 64))
	}
	return b.String()
}
