// Package scraper runs the fetch, extract, build and save pipeline once.
package scraper

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/use-agent/skinprices/config"
	"github.com/use-agent/skinprices/engine"
	"github.com/use-agent/skinprices/extractor"
	"github.com/use-agent/skinprices/layout"
	"github.com/use-agent/skinprices/models"
	"github.com/use-agent/skinprices/prices"
	"github.com/use-agent/skinprices/store"
	"github.com/use-agent/skinprices/webhook"
)

// Scraper holds the configured engine and extractor for one source page.
// A Scraper does not serialize its own runs; callers that share one decide.
type Scraper struct {
	engine    engine.Engine
	extractor extractor.Extractor
	source    config.SourceConfig
	output    string
	hook      config.WebhookConfig
}

// Result describes a completed run.
type Result struct {
	Count       int
	Path        string
	Fingerprint uint64
	Engine      string
	Duration    time.Duration
}

// New builds a Scraper from cfg.
func New(cfg *config.Config) (*Scraper, error) {
	eng, err := engine.New(cfg.Source, cfg.Browser)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidConfig, "invalid engine", err)
	}
	ext, err := extractor.New(cfg.Source.Extractor)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInvalidConfig, "invalid extractor", err)
	}
	if cfg.Output.Path == "" {
		return nil, models.NewScrapeError(models.ErrCodeInvalidConfig, "output path is empty", nil)
	}
	return &Scraper{
		engine:    eng,
		extractor: ext,
		source:    cfg.Source,
		output:    cfg.Output.Path,
		hook:      cfg.Webhook,
	}, nil
}

// OutputPath returns where Run writes the book.
func (s *Scraper) OutputPath() string { return s.output }

// Run fetches the page, builds the price book and writes it. Nothing is
// written when the page has no table body.
func (s *Scraper) Run(ctx context.Context) (*Result, error) {
	start := time.Now()

	page, err := s.fetch(ctx)
	if err != nil {
		return nil, err
	}

	var fp uint64
	if body, ok := extractor.Locate(page.HTML); ok {
		fp = layout.Fingerprint(body)
	}

	table, err := s.extract(page.HTML)
	if err != nil {
		return nil, err
	}

	book := prices.Build(table)
	if err := store.Save(s.output, book); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeWrite, "failed to write "+s.output, err)
	}

	res := &Result{
		Count:       book.Len(),
		Path:        s.output,
		Fingerprint: fp,
		Engine:      page.EngineName,
		Duration:    time.Since(start),
	}
	slog.Info("price book saved",
		"path", res.Path,
		"entries", res.Count,
		"rows", len(table.Rows),
		"engine", res.Engine,
		"fingerprint", fmt.Sprintf("%016x", fp),
		"duration", res.Duration,
	)

	s.notify(ctx, res)
	return res, nil
}

func (s *Scraper) fetch(ctx context.Context) (*engine.FetchResult, error) {
	slog.Debug("fetching", "url", s.source.URL, "engine", s.engine.Name())
	page, err := s.engine.Fetch(ctx, &engine.FetchRequest{
		URL:       s.source.URL,
		UserAgent: s.source.UserAgent,
		Timeout:   s.source.Timeout,
	})
	if err != nil {
		return nil, categorizeError(err)
	}
	return page, nil
}

func (s *Scraper) extract(doc string) (*extractor.Table, error) {
	table, err := s.extractor.Extract(doc)
	switch {
	case errors.Is(err, extractor.ErrNoTableBody):
		return nil, models.NewScrapeError(models.ErrCodeNoTableBody, "no table body", err)
	case err != nil:
		return nil, models.NewScrapeError(models.ErrCodeDecode, "failed to parse page", err)
	}
	return table, nil
}

func (s *Scraper) notify(ctx context.Context, res *Result) {
	if s.hook.URL == "" {
		return
	}
	event := webhook.NewEvent(webhook.EventPricesSaved, savedEvent{
		URL:         s.source.URL,
		Path:        res.Path,
		Count:       res.Count,
		Engine:      res.Engine,
		Fingerprint: fmt.Sprintf("%016x", res.Fingerprint),
	})
	if err := webhook.Deliver(ctx, s.hook.URL, s.hook.Secret, event); err != nil {
		slog.Warn("webhook delivery failed", "url", s.hook.URL, "error", err)
		return
	}
	slog.Info("webhook delivered", "url", s.hook.URL, "event", event.Type)
}

type savedEvent struct {
	URL         string `json:"url"`
	Path        string `json:"path"`
	Count       int    `json:"count"`
	Engine      string `json:"engine"`
	Fingerprint string `json:"fingerprint"`
}

// categorizeError wraps fetch failures into typed ScrapeErrors so callers
// can map them to exit codes and HTTP statuses.
func categorizeError(err error) *models.ScrapeError {
	switch {
	case errors.Is(err, engine.ErrInvalidEncoding):
		return models.NewScrapeError(models.ErrCodeDecode, "failed to decode page", err)
	case errors.Is(err, context.DeadlineExceeded):
		return models.NewScrapeError(models.ErrCodeFetch, "fetch timed out", err)
	default:
		return models.NewScrapeError(models.ErrCodeFetch, "failed to fetch page", err)
	}
}
