// Package tool exposes product search as an MCP tool.
package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/lcdparts/models"
)

const (
	// ServerName is the MCP server name advertised to clients.
	ServerName = "PhoneLCDPartsScraper"

	// Name is the tool name clients call.
	Name = "scrape_phonelcdparts"

	instructions = "Scrapes product search results from phonelcdparts.com"
)

// Searcher is the operation the tool exposes.
type Searcher interface {
	Search(ctx context.Context, query string) []models.Product
}

// Definition returns the scrape_phonelcdparts tool schema.
func Definition() mcp.Tool {
	return mcp.NewTool(Name,
		mcp.WithDescription("Scrapes product information (name, price, URL, image URL) from phonelcdparts.com for a given search query. "+
			"Returns a JSON array of objects with keys name, price, url and image_url; a field the listing does not show is \"N/A\". "+
			"Returns an empty array if scraping fails or no products are found."),
		mcp.WithString("search_query",
			mcp.Required(),
			mcp.Description("The product search query (e.g. \"iphone 15 pro max lcd\")"),
		),
	)
}

// Handler returns the tool handler backed by s. Upstream failures are not
// tool errors: they produce an empty array, exactly like a search with no
// matches.
func Handler(s Searcher) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("search_query")
		if err != nil {
			return mcp.NewToolResultError("search_query is required and must be a string"), nil
		}

		products := s.Search(ctx, query)
		if products == nil {
			products = []models.Product{}
		}

		out, err := json.Marshal(products)
		if err != nil {
			slog.Error("tool: failed to encode products", "error", err)
			return mcp.NewToolResultError(fmt.Sprintf("failed to encode products: %v", err)), nil
		}
		return mcp.NewToolResultText(string(out)), nil
	}
}

// NewServer builds an MCP server with the search tool registered.
func NewServer(s Searcher, version string) *server.MCPServer {
	srv := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(false),
		server.WithInstructions(instructions),
		server.WithRecovery(),
	)
	srv.AddTool(Definition(), Handler(s))
	return srv
}
