package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/lcdparts/api"
	"github.com/use-agent/lcdparts/api/handler"
	"github.com/use-agent/lcdparts/config"
	"github.com/use-agent/lcdparts/engine"
	"github.com/use-agent/lcdparts/extractor"
	"github.com/use-agent/lcdparts/search"
	"github.com/use-agent/lcdparts/tool"
)

func main() {
	// ── 1. Load configuration ───────────────────────────────────────
	cfg := config.Load()

	// ── 2. Initialise structured logging ────────────────────────────
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stdout))
	slog.Info("lcdparts starting",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"engine", cfg.Fetch.Engine,
	)
	if cfg.Fetch.Engine == "firecrawl" && !cfg.Firecrawl.KeyConfigured() {
		slog.Warn("FIRECRAWL_API_KEY is not set; every search will return no products")
	}

	// ── 3. Initialise fetch engine ──────────────────────────────────
	eng, err := engine.New(cfg)
	if err != nil {
		slog.Error("failed to initialise engine", "error", err)
		os.Exit(1)
	}
	defer eng.Close()

	// ── 4. Search service and MCP tool ──────────────────────────────
	svc := search.NewService(eng, extractor.NewDefault(), cfg.Search.BaseURL, cfg.Fetch.Timeout)
	mcpSrv := tool.NewServer(svc, handler.Version)
	mcpHTTP := server.NewStreamableHTTPServer(mcpSrv)

	// ── 5. Setup router ─────────────────────────────────────────────
	startTime := time.Now()
	router := api.NewRouter(svc, mcpHTTP, cfg, startTime)

	// ── 6. Start HTTP server ────────────────────────────────────────
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		slog.Info("HTTP server listening", "addr", addr, "mcp", cfg.Server.MCPPath)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// ── 7. Graceful shutdown ────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("HTTP server forced shutdown", "error", err)
	} else {
		slog.Info("HTTP server drained gracefully")
	}

	// eng.Close() runs via defer and kills Chrome if the browser engine launched it.
	slog.Info("lcdparts stopped")
}
