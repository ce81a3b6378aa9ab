package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/use-agent/lcdparts/config"
	"github.com/use-agent/lcdparts/models"
)

type stubRunner struct {
	products []models.Product
	queries  []string
}

func (s *stubRunner) EngineName() string { return "stub" }

func (s *stubRunner) Run(_ context.Context, query string) *models.SearchResult {
	s.queries = append(s.queries, query)
	return &models.SearchResult{
		Query:    query,
		Products: s.products,
		Count:    len(s.products),
		Engine:   "stub",
	}
}

func testConfig(keys ...string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: "test", MCPPath: "/mcp"},
		Auth:   config.AuthConfig{APIKeys: keys},
	}
}

func do(t *testing.T, h http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestSearch_OK(t *testing.T) {
	runner := &stubRunner{products: []models.Product{{
		Name:     models.Value("iPhone 15 LCD"),
		Price:    models.Value("$29.99"),
		URL:      models.Missing(),
		ImageURL: models.Missing(),
	}}}
	r := NewRouter(runner, nil, testConfig(), time.Now())

	w := do(t, r, http.MethodPost, "/api/v1/search", `{"search_query":"iphone 15"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body)
	}

	var resp struct {
		Query    string              `json:"query"`
		Count    int                 `json:"count"`
		Products []map[string]string `json:"products"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Query != "iphone 15" || resp.Count != 1 {
		t.Errorf("query = %q, count = %d", resp.Query, resp.Count)
	}
	if resp.Products[0]["url"] != "N/A" || resp.Products[0]["price"] != "$29.99" {
		t.Errorf("product = %v", resp.Products[0])
	}
}

func TestSearch_EmptyResultIsOK(t *testing.T) {
	r := NewRouter(&stubRunner{products: []models.Product{}}, nil, testConfig(), time.Now())

	w := do(t, r, http.MethodPost, "/api/v1/search", `{"search_query":"nothing"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"products":[]`) {
		t.Errorf("body = %s, want empty products array", w.Body)
	}
}

func TestSearch_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `search=iphone`},
		{"missing field", `{}`},
		{"empty query", `{"search_query":""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &stubRunner{}
			r := NewRouter(runner, nil, testConfig(), time.Now())

			w := do(t, r, http.MethodPost, "/api/v1/search", tt.body, nil)
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			if !strings.Contains(w.Body.String(), models.ErrCodeInvalidInput) {
				t.Errorf("body = %s", w.Body)
			}
			if len(runner.queries) != 0 {
				t.Errorf("runner called with %v", runner.queries)
			}
		})
	}
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		want    int
	}{
		{"no key", nil, http.StatusUnauthorized},
		{"wrong key", map[string]string{"X-API-Key": "nope"}, http.StatusUnauthorized},
		{"x-api-key", map[string]string{"X-API-Key": "secret"}, http.StatusOK},
		{"bearer", map[string]string{"Authorization": "Bearer secret"}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(&stubRunner{}, nil, testConfig("secret"), time.Now())
			w := do(t, r, http.MethodPost, "/api/v1/search", `{"search_query":"x"}`, tt.headers)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestHealth_NoAuth(t *testing.T) {
	r := NewRouter(&stubRunner{}, nil, testConfig("secret"), time.Now())

	w := do(t, r, http.MethodGet, "/api/v1/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}

	var resp models.HealthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" || resp.Engine != "stub" {
		t.Errorf("health = %+v", resp)
	}
}

func TestMCPMount(t *testing.T) {
	var hits int
	mcpHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusAccepted)
	})

	r := NewRouter(&stubRunner{}, mcpHandler, testConfig("secret"), time.Now())

	if w := do(t, r, http.MethodPost, "/mcp", `{}`, nil); w.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated /mcp status = %d, want 401", w.Code)
	}
	if w := do(t, r, http.MethodPost, "/mcp", `{}`, map[string]string{"X-API-Key": "secret"}); w.Code != http.StatusAccepted {
		t.Errorf("/mcp status = %d, want 202", w.Code)
	}
	if hits != 1 {
		t.Errorf("mcp handler hits = %d, want 1", hits)
	}
}
