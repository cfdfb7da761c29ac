// Package terminal prints result views for the command-line client.
package terminal

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"renthub/internal/app"
	"renthub/internal/domain"
)

// Render writes v as plain text.
func Render(w io.Writer, v app.ResultsView) error {
	switch v.Kind {
	case app.ViewLoading, app.ViewEmpty:
		_, err := fmt.Fprintf(w, "%s\n%s\n", v.Heading, v.Detail)
		return err
	}

	if _, err := fmt.Fprintf(w, "%s\n\n", v.Heading); err != nil {
		return err
	}
	for i, c := range v.Cards {
		if err := renderCard(w, i+1, c); err != nil {
			return err
		}
	}
	if v.Detail != "" {
		if _, err := fmt.Fprintln(w, v.Detail); err != nil {
			return err
		}
	}
	return nil
}

func renderCard(w io.Writer, n int, c app.Card) error {
	if _, err := fmt.Fprintf(w, "[%d] %s (%s)\n", n, c.Title, c.Source); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"Location", c.Location},
		{"BHK", c.BHK},
		{"Rent", c.Rent},
		{"Area", c.Area},
		{"Furnishing", c.Furnishing},
		{"Posted", c.Posted},
		{"Link", c.URL},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "    %s\t%s\n", r[0], r[1])
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w)
	return err
}

type jsonOutput struct {
	Count   int              `json:"count"`
	Results []domain.Listing `json:"results"`
	Notice  string           `json:"notice,omitempty"`
}

// RenderJSON writes the listings of st as indented JSON.
func RenderJSON(w io.Writer, st app.PageState) error {
	out := jsonOutput{Count: len(st.Results), Results: st.Results, Notice: st.Notice}
	if out.Results == nil {
		out.Results = []domain.Listing{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
