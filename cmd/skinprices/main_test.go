package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body><table><tbody>
<tr><th>Champion</th><th>Skin</th><th>Release</th><th>Cost</th></tr>
<tr><td>Ahri</td><td>Foxfire</td><td>2011-12-14</td><td><style>.rp{}</style>1350 RP</td></tr>
<tr><td>Ahri</td><td>Midnight</td><td>2011-12-14</td><td><style>.rp{}</style> </td></tr>
</tbody></table></body></html>`

// setup serves body, points the CLI at it and runs from a fresh directory.
func setup(t *testing.T, status int, body string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("SKINPRICES_URL", srv.URL)
	t.Setenv("SKINPRICES_OUTPUT", "")
	t.Setenv("SKINPRICES_ENGINE", "http")
	t.Setenv("SKINPRICES_WEBHOOK_URL", "")
	return dir
}

func execute(args ...string) (int, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String()
}

func TestScrape_Saved(t *testing.T) {
	dir := setup(t, http.StatusOK, page)

	code, out := execute()
	assert.Equal(t, 0, code)
	assert.Equal(t, "Saved 2 skins to assets/skin_prices.json\n", out)

	data, err := os.ReadFile(filepath.Join(dir, "assets", "skin_prices.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"ahri_foxfire\": \"1350\",\n  \"ahri_midnight\": \"Special\"\n}", string(data))
}

func TestScrape_NoTbody(t *testing.T) {
	dir := setup(t, http.StatusOK, `<html><body><p>down for maintenance</p></body></html>`)

	code, out := execute("scrape")
	assert.Equal(t, 1, code)
	assert.Equal(t, "No tbody\n", out)

	_, err := os.Stat(filepath.Join(dir, "assets", "skin_prices.json"))
	assert.True(t, os.IsNotExist(err))
}

func TestScrape_ErrorExitsZero(t *testing.T) {
	setup(t, http.StatusServiceUnavailable, "busy")

	code, out := execute("scrape")
	assert.Equal(t, 0, code)
	assert.Regexp(t, `^Error: .*503`, out)
}

func TestLookup(t *testing.T) {
	setup(t, http.StatusOK, page)
	code, _ := execute()
	require.Equal(t, 0, code)

	code, out := execute("lookup", "Ahri", "Foxfire")
	assert.Equal(t, 0, code)
	assert.Equal(t, "ahri_foxfire: 1350\n", out)

	code, out = execute("lookup", "Ahri", "Foxfir")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "ahri_foxfir: not found")
	assert.Contains(t, out, "did you mean: ahri_foxfire")
}

func TestList(t *testing.T) {
	setup(t, http.StatusOK, page)
	code, _ := execute()
	require.Equal(t, 0, code)

	code, out := execute("list", "--champion", "ahri")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "ahri_midnight")
	assert.Contains(t, out, "Special")
}

func TestInspect(t *testing.T) {
	setup(t, http.StatusOK, page)

	code, out := execute("inspect", "--markdown")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "qualifying:  2")
	assert.Contains(t, out, "Foxfire")

	_, err := os.Stat("assets")
	assert.True(t, os.IsNotExist(err), "inspect writes nothing")
}

func TestInspect_BadBaseline(t *testing.T) {
	setup(t, http.StatusOK, page)
	code, _ := execute("inspect", "--baseline", "zz")
	assert.Equal(t, 1, code)
}

func TestScrape_InterruptedExitsNonZero(t *testing.T) {
	setup(t, http.StatusOK, page)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	code := run(ctx, []string{"scrape"}, &stdout, &stderr)
	assert.Equal(t, exitInterrupted, code)
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "interrupted")

	_, err := os.Stat(filepath.Join("assets", "skin_prices.json"))
	assert.True(t, os.IsNotExist(err))
}
