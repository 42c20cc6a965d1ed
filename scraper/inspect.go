package scraper

import (
	"context"

	"github.com/use-agent/skinprices/extractor"
	"github.com/use-agent/skinprices/layout"
	"github.com/use-agent/skinprices/prices"
)

// Report summarizes the table found on the source page without writing it.
type Report struct {
	URL         string
	FinalURL    string
	Engine      string
	StatusCode  int
	Rows        int
	Qualifying  int
	Entries     int
	Fingerprint uint64

	// TableBody is the raw inner markup of the first table body.
	TableBody string
}

// Inspect fetches and parses the page the same way Run does, then reports
// what it found.
func (s *Scraper) Inspect(ctx context.Context) (*Report, error) {
	page, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}
	table, err := s.extract(page.HTML)
	if err != nil {
		return nil, err
	}

	rep := &Report{
		URL:        s.source.URL,
		FinalURL:   page.FinalURL,
		Engine:     page.EngineName,
		StatusCode: page.StatusCode,
		Rows:       len(table.Rows),
		Qualifying: prices.Qualifying(table),
		Entries:    prices.Build(table).Len(),
	}
	if body, ok := extractor.Locate(page.HTML); ok {
		rep.TableBody = body
		rep.Fingerprint = layout.Fingerprint(body)
	}
	return rep, nil
}

// Drifted reports whether the inspected layout moved more than threshold
// bits away from baseline.
func (r *Report) Drifted(baseline uint64, threshold int) bool {
	return layout.Drifted(baseline, r.Fingerprint, threshold)
}
