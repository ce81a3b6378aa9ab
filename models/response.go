package models

// SearchResult is the outcome of one search invocation.
//
// Products is empty both when the site listed nothing and when the fetch
// failed; the two cases are only told apart in the server logs.
type SearchResult struct {
	// Query is the search text as received.
	Query string `json:"query"`

	// SearchURL is the site URL that was fetched.
	SearchURL string `json:"search_url"`

	// Products holds the extracted cards in document order. Never nil.
	Products []Product `json:"products"`

	// Count is len(Products).
	Count int `json:"count"`

	// Engine is the name of the fetch engine that served the request.
	Engine string `json:"engine"`

	// Timing provides duration breakdowns for the operation.
	Timing TimingInfo `json:"timing"`
}

// TimingInfo breaks down the time spent in each phase.
type TimingInfo struct {
	// TotalMs is the end-to-end duration in milliseconds.
	TotalMs int64 `json:"total_ms"`

	// FetchMs is the time spent retrieving the search page.
	FetchMs int64 `json:"fetch_ms"`

	// ExtractMs is the time spent parsing product cards.
	ExtractMs int64 `json:"extract_ms"`
}

// ErrorResponse wraps an ErrorDetail for non-200 API responses.
type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

// HealthResponse is the response for GET /api/v1/health.
type HealthResponse struct {
	Status  string `json:"status"`
	Uptime  string `json:"uptime"`
	Engine  string `json:"engine"`
	Version string `json:"version"`
}
