package models

// SearchRequest is the payload for POST /api/v1/search.
type SearchRequest struct {
	// SearchQuery is the product search text, e.g. "iphone 15 pro max lcd".
	// Required. It is passed to the site's search verbatim after escaping.
	SearchQuery string `json:"search_query" binding:"required"`
}
