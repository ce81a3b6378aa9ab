package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/use-agent/lcdparts/config"
	"github.com/use-agent/lcdparts/models"
)

// FirecrawlEngine fetches pages through the hosted Firecrawl scrape API.
// It uses net/http directly; the API is a single JSON POST.
type FirecrawlEngine struct {
	cfg        config.FirecrawlConfig
	httpClient *http.Client
}

// NewFirecrawlEngine creates a Firecrawl engine. The API key comes from cfg;
// pass nil httpClient to use a default client.
func NewFirecrawlEngine(cfg config.FirecrawlConfig, httpClient *http.Client) *FirecrawlEngine {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &FirecrawlEngine{cfg: cfg, httpClient: httpClient}
}

// scrapeRequest is the Firecrawl /v1/scrape request body.
type scrapeRequest struct {
	URL     string            `json:"url"`
	Formats []string          `json:"formats"`
	Headers map[string]string `json:"headers,omitempty"`
	Timeout int64             `json:"timeout,omitempty"` // milliseconds
}

// scrapeResponse is the subset of the Firecrawl response we need.
type scrapeResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		HTML     string `json:"html"`
		Metadata struct {
			Title      string `json:"title"`
			SourceURL  string `json:"sourceURL"`
			URL        string `json:"url"`
			StatusCode int    `json:"statusCode"`
		} `json:"metadata"`
	} `json:"data"`
	Error string `json:"error"`
}

func (e *FirecrawlEngine) Name() string { return "firecrawl" }

func (e *FirecrawlEngine) Close() error {
	e.httpClient.CloseIdleConnections()
	return nil
}

// Fetch scrapes req.URL with formats=["html"].
//
// A missing or placeholder API key fails before any request is made.
func (e *FirecrawlEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if !e.cfg.KeyConfigured() {
		return nil, models.NewScrapeError(
			models.ErrCodeMissingCredential,
			"Firecrawl API key is not set or is a placeholder",
			nil,
		)
	}

	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	body, err := json.Marshal(scrapeRequest{
		URL:     req.URL,
		Formats: []string{"html"},
		Headers: req.Headers,
		Timeout: req.Timeout.Milliseconds(),
	})
	if err != nil {
		return nil, fmt.Errorf("firecrawl: marshal request: %w", err)
	}

	endpoint := strings.TrimRight(e.cfg.BaseURL, "/") + "/v1/scrape"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("firecrawl: create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+strings.TrimSpace(e.cfg.APIKey))

	resp, err := e.httpClient.Do(httpReq)
	if err != nil {
		return nil, categorizeError(err, "Firecrawl request failed")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, categorizeError(err, "failed to read Firecrawl response")
	}

	var sr scrapeResponse
	if err := json.Unmarshal(respBody, &sr); err != nil {
		if resp.StatusCode >= 400 {
			return nil, classifyFirecrawlError(resp.StatusCode, "")
		}
		return nil, models.NewScrapeError(models.ErrCodeUpstream, "failed to parse Firecrawl response", err)
	}

	if resp.StatusCode >= 400 || !sr.Success {
		return nil, classifyFirecrawlError(resp.StatusCode, sr.Error)
	}

	if sr.Data == nil {
		return nil, models.NewScrapeError(models.ErrCodeEmptyResponse, "Firecrawl returned no data", nil)
	}
	if strings.TrimSpace(sr.Data.HTML) == "" {
		return nil, models.NewScrapeError(models.ErrCodeEmptyResponse, "Firecrawl response has no HTML content", nil)
	}

	meta := sr.Data.Metadata
	title := meta.Title
	if title == "" {
		title = extractTitle(sr.Data.HTML)
	}
	finalURL := meta.URL
	if finalURL == "" {
		finalURL = meta.SourceURL
	}
	if finalURL == "" {
		finalURL = req.URL
	}

	return &FetchResult{
		HTML:       sr.Data.HTML,
		Title:      title,
		StatusCode: meta.StatusCode,
		FinalURL:   finalURL,
		EngineName: e.Name(),
	}, nil
}

// classifyFirecrawlError maps an unsuccessful Firecrawl reply to a ScrapeError.
func classifyFirecrawlError(statusCode int, msg string) *models.ScrapeError {
	if msg == "" {
		msg = "Firecrawl API error"
	}
	switch statusCode {
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return models.NewScrapeError(models.ErrCodeTimeout, msg, nil)
	case 0, http.StatusOK:
		return models.NewScrapeError(models.ErrCodeUpstream, msg, nil)
	default:
		return models.NewScrapeError(models.ErrCodeUpstream, fmt.Sprintf("Firecrawl API returned %d: %s", statusCode, msg), nil)
	}
}
