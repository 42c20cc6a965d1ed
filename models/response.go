package models

import "encoding/json"

// PricesResponse is the response for GET /api/v1/prices.
type PricesResponse struct {
	Success bool `json:"success"`

	// Count is the number of entries in the book.
	Count int `json:"count"`

	// Prices is the book itself, keys in file order.
	Prices json.RawMessage `json:"prices,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// PriceResponse is the response for a single-key lookup.
type PriceResponse struct {
	Success bool `json:"success"`

	// Key is the derived key that was looked up.
	Key string `json:"key"`

	// Price is the stored price token ("Special" for non-purchasable skins).
	Price string `json:"price,omitempty"`

	// Suggestions lists the closest keys when Key is absent.
	Suggestions []string `json:"suggestions,omitempty"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// RefreshResponse is the response for POST /api/v1/refresh.
type RefreshResponse struct {
	Success bool `json:"success"`

	// Count is the number of entries written.
	Count int `json:"count"`

	// Path is where the book was written.
	Path string `json:"path"`

	// Engine is the fetch engine that produced the page.
	Engine string `json:"engine,omitempty"`

	// Fingerprint is the layout fingerprint of the table body, hex encoded.
	Fingerprint string `json:"fingerprint,omitempty"`

	// DurationMs is the wall time of the run.
	DurationMs int64 `json:"duration_ms"`

	Error *ErrorDetail `json:"error,omitempty"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Entries int    `json:"entries"`
	Version string `json:"version"`
}

// ErrorResponse is returned by middleware that rejects a request before it
// reaches a handler.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}
