package engine

import (
	"context"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
	"github.com/use-agent/lcdparts/config"
	"github.com/use-agent/lcdparts/models"
	"github.com/ysmood/gson"
)

// RodEngine renders the search page in headless Chromium. The browser is
// launched on the first Fetch and reused until Close.
type RodEngine struct {
	cfg   config.BrowserConfig
	proxy string

	mu      sync.Mutex
	browser *rod.Browser
}

// NewRodEngine creates a RodEngine. No browser is started until needed.
func NewRodEngine(cfg config.BrowserConfig, proxy string) *RodEngine {
	return &RodEngine{cfg: cfg, proxy: proxy}
}

func (e *RodEngine) Name() string { return "browser" }

// Close kills the browser process if one was launched.
func (e *RodEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser == nil {
		return nil
	}
	slog.Info("browser engine: closing browser")
	err := e.browser.Close()
	e.browser = nil
	return err
}

// connect returns the shared browser, launching it on first use. A failed
// launch is not cached, so the next Fetch tries again.
func (e *RodEngine) connect() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return e.browser, nil
	}

	l := launcher.New().
		Headless(e.cfg.Headless).
		NoSandbox(e.cfg.NoSandbox)
	if e.cfg.BrowserBin != "" {
		l = l.Bin(e.cfg.BrowserBin)
	}
	if e.proxy != "" {
		l = l.Proxy(e.proxy)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to launch browser", err)
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to connect to browser", err)
	}
	slog.Info("browser engine: browser launched", "controlURL", controlURL)

	e.browser = browser
	return browser, nil
}

// Fetch opens a fresh tab, navigates to req.URL, waits for the DOM to
// settle, and returns the rendered HTML. The tab is always closed.
func (e *RodEngine) Fetch(ctx context.Context, req *FetchRequest) (*FetchResult, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	browser, err := e.connect()
	if err != nil {
		return nil, err
	}

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeBrowserCrash, "failed to open page", err)
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			slog.Warn("browser engine: failed to close page", "error", closeErr)
		}
	}()

	// Stealth and hijacking only affect navigations that start after them.
	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
	}

	headers := map[string]string{}
	if u, parseErr := url.Parse(req.URL); parseErr == nil {
		headers["Referer"] = u.Scheme + "://" + u.Host + "/"
	}
	for k, v := range req.Headers {
		headers[k] = v
	}
	_ = proto.NetworkSetExtraHTTPHeaders{Headers: toHeadersMap(headers)}.Call(page)

	if router := setupHijack(page, e.cfg.BlockedResourceTypes); router != nil {
		defer func() { _ = router.Stop() }()
	}

	p := page.Context(ctx)

	if err := p.Navigate(req.URL); err != nil {
		return nil, categorizeError(err, "navigation to search page failed")
	}
	if err := p.WaitDOMStable(300*time.Millisecond, 0.1); err != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", err)
	}

	var statusCode int
	if res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch(e) {}
		return 0;
	}`); err == nil {
		statusCode = res.Value.Int()
	}

	rawHTML, err := p.HTML()
	if err != nil {
		return nil, categorizeError(err, "failed to read rendered HTML")
	}

	finalURL := evalStringOrEmpty(p, `() => window.location.href`)
	if finalURL == "" {
		finalURL = req.URL
	}

	return &FetchResult{
		HTML:       rawHTML,
		Title:      evalStringOrEmpty(p, `() => document.title`),
		StatusCode: statusCode,
		FinalURL:   finalURL,
		EngineName: e.Name(),
	}, nil
}

// evalStringOrEmpty evaluates a JS expression and returns the string result,
// swallowing any errors.
func evalStringOrEmpty(page *rod.Page, js string) string {
	res, err := page.Eval(js)
	if err != nil {
		return ""
	}
	return res.Value.Str()
}

// toHeadersMap converts a plain string map to the proto.NetworkHeaders type
// (map[string]gson.JSON) required by NetworkSetExtraHTTPHeaders.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}

// configToProto maps human-readable config strings to Rod protocol resource types.
var configToProto = map[string]proto.NetworkResourceType{
	"Image":      proto.NetworkResourceTypeImage,
	"Stylesheet": proto.NetworkResourceTypeStylesheet,
	"Font":       proto.NetworkResourceTypeFont,
	"Media":      proto.NetworkResourceTypeMedia,
	"Script":     proto.NetworkResourceTypeScript,
}

// blockedSet resolves config names to resource types, dropping unknown names.
func blockedSet(names []string) map[proto.NetworkResourceType]struct{} {
	blocked := make(map[proto.NetworkResourceType]struct{}, len(names))
	for _, name := range names {
		if rt, ok := configToProto[name]; ok {
			blocked[rt] = struct{}{}
		}
	}
	return blocked
}

// setupHijack blocks the configured resource types on page. Product image
// URLs come from the img src attribute, so images never need to load.
// Returns nil if there is nothing to block.
func setupHijack(page *rod.Page, blockedTypes []string) *rod.HijackRouter {
	blocked := blockedSet(blockedTypes)
	if len(blocked) == 0 {
		return nil
	}

	router := page.HijackRequests()
	_ = router.Add("*", "", func(ctx *rod.Hijack) {
		if _, shouldBlock := blocked[ctx.Request.Type()]; shouldBlock {
			ctx.Response.Fail(proto.NetworkErrorReasonBlockedByClient)
			return
		}
		ctx.ContinueRequest(&proto.FetchContinueRequest{})
	})

	// router.Run blocks until Stop.
	go router.Run()

	return router
}
