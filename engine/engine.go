package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/use-agent/skinprices/config"
)

// ErrInvalidEncoding is returned when a response body is not valid UTF-8.
var ErrInvalidEncoding = errors.New("invalid UTF-8")

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier ("http" or "rod").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL       string
	UserAgent string

	// Timeout bounds the whole fetch. Zero means no timeout.
	Timeout time.Duration
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	StatusCode int
	FinalURL   string
	EngineName string
}

// New returns the engine named by src.Engine.
func New(src config.SourceConfig, browser config.BrowserConfig) (Engine, error) {
	switch src.Engine {
	case "", "http":
		return NewHTTPEngine(src.MaxBodyBytes), nil
	case "rod":
		return NewRodEngine(browser), nil
	default:
		return nil, fmt.Errorf("engine: unknown engine %q (want http or rod)", src.Engine)
	}
}
