package search

import "net/url"

// BuildURL appends the form-escaped query to base. Spaces become "+",
// reserved and non-ASCII bytes are percent-escaped. Empty queries are
// allowed and produce base unchanged.
func BuildURL(base, query string) string {
	return base + url.QueryEscape(query)
}
