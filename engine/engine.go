package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/use-agent/lcdparts/config"
)

// Engine is the interface that all fetch engines must implement.
type Engine interface {
	// Name returns the engine identifier (e.g. "firecrawl", "http", "browser").
	Name() string

	// Fetch retrieves the page content for the given request.
	Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error)

	// Close releases engine resources (browser processes, idle connections).
	Close() error
}

// FetchRequest contains everything an engine needs to fetch a page.
type FetchRequest struct {
	URL     string
	Headers map[string]string
	Timeout time.Duration
}

// FetchResult is the output of a successful engine fetch.
type FetchResult struct {
	HTML       string
	Title      string
	StatusCode int
	FinalURL   string
	EngineName string
}

// New builds the engine selected by cfg.Fetch.Engine.
func New(cfg *config.Config) (Engine, error) {
	switch cfg.Fetch.Engine {
	case "", "firecrawl":
		return NewFirecrawlEngine(cfg.Firecrawl, nil), nil
	case "http":
		return NewHTTPEngine(cfg.Fetch.Proxy), nil
	case "browser":
		return NewRodEngine(cfg.Browser, cfg.Fetch.Proxy), nil
	default:
		return nil, fmt.Errorf("engine: unknown fetch engine %q", cfg.Fetch.Engine)
	}
}
