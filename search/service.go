// Package search ties URL construction, page fetching, and product
// extraction into a single query operation.
package search

import (
	"context"
	"log/slog"
	"time"

	"github.com/use-agent/lcdparts/engine"
	"github.com/use-agent/lcdparts/extractor"
	"github.com/use-agent/lcdparts/models"
)

// Service runs product searches. It keeps no per-query state and is safe
// for concurrent use as long as its engine is.
type Service struct {
	engine    engine.Engine
	extractor *extractor.Extractor
	baseURL   string
	timeout   time.Duration
}

// NewService creates a Service that fetches with eng and parses with ex.
// timeout bounds each page fetch; zero leaves only the caller's context.
func NewService(eng engine.Engine, ex *extractor.Extractor, baseURL string, timeout time.Duration) *Service {
	return &Service{engine: eng, extractor: ex, baseURL: baseURL, timeout: timeout}
}

// EngineName reports which fetch engine backs this service.
func (s *Service) EngineName() string { return s.engine.Name() }

// Search returns the products listed for query. Any failure, from a
// missing credential to an empty page, yields an empty slice.
func (s *Service) Search(ctx context.Context, query string) []models.Product {
	return s.Run(ctx, query).Products
}

// Run performs one search and reports the products with timing detail.
// It never returns nil and never fails; errors are logged with their code.
func (s *Service) Run(ctx context.Context, query string) *models.SearchResult {
	totalStart := time.Now()
	searchURL := BuildURL(s.baseURL, query)

	result := &models.SearchResult{
		Query:     query,
		SearchURL: searchURL,
		Products:  []models.Product{},
		Engine:    s.engine.Name(),
	}
	defer func() {
		result.Count = len(result.Products)
		result.Timing.TotalMs = time.Since(totalStart).Milliseconds()
	}()

	slog.Info("search: fetching", "url", searchURL, "engine", s.engine.Name())

	fetchStart := time.Now()
	page, err := s.engine.Fetch(ctx, &engine.FetchRequest{
		URL:     searchURL,
		Timeout: s.timeout,
	})
	result.Timing.FetchMs = time.Since(fetchStart).Milliseconds()
	if err != nil {
		slog.Error("search: fetch failed",
			"url", searchURL,
			"engine", s.engine.Name(),
			"code", models.CodeOf(err),
			"error", err,
		)
		return result
	}
	if page == nil || page.HTML == "" {
		slog.Error("search: fetch returned no HTML",
			"url", searchURL,
			"engine", s.engine.Name(),
			"code", models.ErrCodeEmptyResponse,
		)
		return result
	}

	extractStart := time.Now()
	result.Products = s.extractor.Extract(page.HTML)
	result.Timing.ExtractMs = time.Since(extractStart).Milliseconds()

	if len(result.Products) == 0 {
		slog.Info("search: no products found",
			"url", searchURL,
			"status", page.StatusCode,
			"title", page.Title,
		)
		return result
	}

	slog.Info("search: products extracted",
		"url", searchURL,
		"count", len(result.Products),
		"fetch_ms", result.Timing.FetchMs,
	)
	return result
}
