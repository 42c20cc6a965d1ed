package main

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/skinprices/cache"
	"github.com/use-agent/skinprices/prices"
	"github.com/use-agent/skinprices/store"
)

func seedBook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "skin_prices.json")
	b := prices.NewBook()
	b.Set("ahri_foxfire", "1350")
	b.Set("ahri_arcade", "1350")
	b.Set("ashe_queenoffrost", "520")
	require.NoError(t, store.Save(path, b))
	return path
}

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestLookupTool(t *testing.T) {
	path := seedBook(t)
	h := handleLookup(cache.New(0), path)

	res, err := h(context.Background(), call(map[string]any{"champion": "Ashe", "skin": "Queen of Frost"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "ashe_queenoffrost: 520", text(t, res))

	res, err = h(context.Background(), call(map[string]any{"champion": "Ahri", "skin": "Foxfir"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "closest: ahri_foxfire")

	res, err = h(context.Background(), call(map[string]any{"champion": "Ahri"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestSearchTool(t *testing.T) {
	path := seedBook(t)
	h := handleSearch(cache.New(0), path)

	res, err := h(context.Background(), call(map[string]any{"query": "ahri", "limit": 2}))
	require.NoError(t, err)
	assert.Equal(t, "ahri_foxfire: 1350\nahri_arcade: 1350", text(t, res))
}

func TestTools_MissingBook(t *testing.T) {
	h := handleSearch(cache.New(0), filepath.Join(t.TempDir(), "none.json"))
	res, err := h(context.Background(), call(map[string]any{"query": "ahri"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestNewServer(t *testing.T) {
	assert.NotNil(t, newServer(cache.New(0), "unused.json"))
}
