package search

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/use-agent/lcdparts/config"
	"github.com/use-agent/lcdparts/engine"
	"github.com/use-agent/lcdparts/extractor"
	"github.com/use-agent/lcdparts/models"
)

// stubEngine returns a canned page or error and records requested URLs.
type stubEngine struct {
	result   *engine.FetchResult
	err      error
	urls     []string
	timeouts []time.Duration
}

func (s *stubEngine) Name() string { return "stub" }
func (s *stubEngine) Close() error { return nil }

func (s *stubEngine) Fetch(_ context.Context, req *engine.FetchRequest) (*engine.FetchResult, error) {
	s.urls = append(s.urls, req.URL)
	s.timeouts = append(s.timeouts, req.Timeout)
	return s.result, s.err
}

const resultsPage = `<html><head><title>Search results</title></head><body>
<form class="product_addtocart_form">
	<a class="product-item-link" href="/iphone-15-pro-max-lcd.html">iPhone 15 Pro Max LCD</a>
	<span class="price">$49.99</span>
	<img class="product-image-photo" src="/media/img1.jpg">
</form>
<form class="product_addtocart_form">
	<a class="product-item-link" href="/iphone-15-lcd.html">iPhone 15 LCD</a>
</form>
</body></html>`

func newTestService(eng engine.Engine) *Service {
	return NewService(eng, extractor.NewDefault(), config.DefaultSearchBaseURL, 0)
}

func TestService_Search(t *testing.T) {
	eng := &stubEngine{result: &engine.FetchResult{HTML: resultsPage, StatusCode: 200}}
	svc := newTestService(eng)

	got := svc.Search(context.Background(), "iphone 15")

	if len(eng.urls) != 1 || eng.urls[0] != config.DefaultSearchBaseURL+"iphone+15" {
		t.Errorf("fetched %v", eng.urls)
	}
	if len(got) != 2 {
		t.Fatalf("got %d products, want 2", len(got))
	}
	if got[0].Name.String() != "iPhone 15 Pro Max LCD" || got[0].Price.String() != "$49.99" {
		t.Errorf("first product = %+v", got[0])
	}
	if got[1].Price.String() != models.NotAvailable || got[1].ImageURL.String() != models.NotAvailable {
		t.Errorf("second product should lack price and image: %+v", got[1])
	}
}

func TestService_FailuresReturnEmpty(t *testing.T) {
	tests := []struct {
		name   string
		result *engine.FetchResult
		err    error
	}{
		{"missing credential", nil, models.NewScrapeError(models.ErrCodeMissingCredential, "no key", nil)},
		{"transport", nil, models.NewScrapeError(models.ErrCodeFetch, "refused", errors.New("dial tcp"))},
		{"plain error", nil, errors.New("boom")},
		{"nil result", nil, nil},
		{"empty html", &engine.FetchResult{HTML: ""}, nil},
		{"no cards", &engine.FetchResult{HTML: "<html><title>Just a moment...</title></html>"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(&stubEngine{result: tt.result, err: tt.err})

			res := svc.Run(context.Background(), "iphone")
			if res == nil {
				t.Fatal("Run returned nil")
			}
			if res.Products == nil {
				t.Error("Products is nil, want empty slice")
			}
			if len(res.Products) != 0 || res.Count != 0 {
				t.Errorf("got %d products (count %d), want 0", len(res.Products), res.Count)
			}
			if res.Engine != "stub" {
				t.Errorf("Engine = %q", res.Engine)
			}
		})
	}
}

func TestService_RunMetadata(t *testing.T) {
	svc := newTestService(&stubEngine{result: &engine.FetchResult{HTML: resultsPage}})

	res := svc.Run(context.Background(), "iphone 15")
	if res.Query != "iphone 15" {
		t.Errorf("Query = %q", res.Query)
	}
	if res.SearchURL != config.DefaultSearchBaseURL+"iphone+15" {
		t.Errorf("SearchURL = %q", res.SearchURL)
	}
	if res.Count != 2 {
		t.Errorf("Count = %d, want 2", res.Count)
	}
	if res.Timing.TotalMs < res.Timing.FetchMs {
		t.Errorf("TotalMs %d < FetchMs %d", res.Timing.TotalMs, res.Timing.FetchMs)
	}
}

func TestService_FirecrawlWithoutKey(t *testing.T) {
	eng := engine.NewFirecrawlEngine(config.FirecrawlConfig{
		APIKey:  config.PlaceholderAPIKey,
		BaseURL: "http://127.0.0.1:1",
	}, nil)
	svc := newTestService(eng)

	if got := svc.Search(context.Background(), "iphone"); len(got) != 0 {
		t.Errorf("got %d products, want 0", len(got))
	}
}

func TestService_PassesFetchTimeout(t *testing.T) {
	eng := &stubEngine{result: &engine.FetchResult{HTML: resultsPage}}
	svc := NewService(eng, extractor.NewDefault(), config.DefaultSearchBaseURL, 45*time.Second)

	svc.Search(context.Background(), "iphone")

	if len(eng.timeouts) != 1 || eng.timeouts[0] != 45*time.Second {
		t.Errorf("fetch timeouts = %v, want [45s]", eng.timeouts)
	}
}

func TestService_FetchTimeoutBoundsSlowUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	eng := engine.NewFirecrawlEngine(config.FirecrawlConfig{APIKey: "fc-test", BaseURL: srv.URL}, nil)
	svc := NewService(eng, extractor.NewDefault(), config.DefaultSearchBaseURL, 100*time.Millisecond)

	start := time.Now()
	got := svc.Search(context.Background(), "iphone")
	elapsed := time.Since(start)

	if len(got) != 0 {
		t.Errorf("got %d products, want 0", len(got))
	}
	if elapsed > time.Second {
		t.Errorf("search took %v with a 100ms fetch timeout", elapsed)
	}
}
