package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/joho/godotenv/autoload"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/config"
	"github.com/use-agent/skinprices/prices"
)

const defaultSearchLimit = 10

func main() {
	cfg := config.Load()

	// stdout is the MCP transport; logs must stay off it.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	s := newServer(cache.New(cfg.Cache.TTL), cfg.Output.Path)
	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "server error: %v\n", err)
		os.Exit(1)
	}
}

func newServer(cc *cache.Cache, path string) *server.MCPServer {
	s := server.NewMCPServer(
		"skinprices",
		"1.0.0",
		server.WithToolCapabilities(false),
	)

	lookupTool := mcp.NewTool("lookup_skin_price",
		mcp.WithDescription("Look up the RP price of one champion skin. Returns \"Special\" for skins that are not sold for a fixed price."),
		mcp.WithString("champion",
			mcp.Required(),
			mcp.Description("Champion name, e.g. \"Ashe\""),
		),
		mcp.WithString("skin",
			mcp.Required(),
			mcp.Description("Skin name, e.g. \"Queen of Frost\""),
		),
	)
	s.AddTool(lookupTool, handleLookup(cc, path))

	searchTool := mcp.NewTool("search_skins",
		mcp.WithDescription("Search skin prices by free text. Returns the best matching entries with their prices."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Words to match, e.g. \"ahri arcade\""),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 10)"),
		),
	)
	s.AddTool(searchTool, handleSearch(cc, path))

	return s
}

func handleLookup(cc *cache.Cache, path string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		champion, err := request.RequireString("champion")
		if err != nil {
			return mcp.NewToolResultError("champion is required"), nil
		}
		skin, err := request.RequireString("skin")
		if err != nil {
			return mcp.NewToolResultError("skin is required"), nil
		}

		book, err := cc.Book(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("price book unavailable: %v", err)), nil
		}

		key := prices.Key(champion, skin)
		if price, ok := book.Get(key); ok {
			return mcp.NewToolResultText(fmt.Sprintf("%s: %s", key, price)), nil
		}

		msg := fmt.Sprintf("%s: not found", key)
		if s := prices.Suggest(book, key, 5); len(s) > 0 {
			msg += "\nclosest: " + strings.Join(s, ", ")
		}
		return mcp.NewToolResultError(msg), nil
	}
}

func handleSearch(cc *cache.Cache, path string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query, err := request.RequireString("query")
		if err != nil {
			return mcp.NewToolResultError("query is required"), nil
		}
		limit := request.GetInt("limit", defaultSearchLimit)
		if limit <= 0 {
			limit = defaultSearchLimit
		}

		book, err := cc.Book(path)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("price book unavailable: %v", err)), nil
		}

		keys := prices.Search(book, query, limit)
		if len(keys) == 0 {
			return mcp.NewToolResultText("no matches"), nil
		}

		var sb strings.Builder
		for _, key := range keys {
			price, _ := book.Get(key)
			fmt.Fprintf(&sb, "%s: %s\n", key, price)
		}
		return mcp.NewToolResultText(strings.TrimSuffix(sb.String(), "\n")), nil
	}
}
