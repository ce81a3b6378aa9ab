package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/lcdparts/api/handler"
	"github.com/use-agent/lcdparts/config"
	"github.com/use-agent/lcdparts/engine"
	"github.com/use-agent/lcdparts/extractor"
	"github.com/use-agent/lcdparts/search"
	"github.com/use-agent/lcdparts/tool"
)

// Stdio MCP server. Stdout carries the protocol, so logs go to stderr.
func main() {
	cfg := config.Load()
	slog.SetDefault(config.NewLogger(cfg.Log, os.Stderr))

	if cfg.Fetch.Engine == "firecrawl" && !cfg.Firecrawl.KeyConfigured() {
		slog.Warn("FIRECRAWL_API_KEY is not set; every search will return no products")
	}

	eng, err := engine.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "engine error: %v\n", err)
		os.Exit(1)
	}

	svc := search.NewService(eng, extractor.NewDefault(), cfg.Search.BaseURL, cfg.Fetch.Timeout)
	s := tool.NewServer(svc, handler.Version)

	slog.Info("lcdparts-mcp serving on stdio", "engine", eng.Name())
	err = server.ServeStdio(s)
	eng.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}
