package cache

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/use-agent/skinprices/prices"
	"github.com/use-agent/skinprices/store"
)

func countingCache(ttl time.Duration) (*Cache, *int) {
	c := New(ttl)
	loads := 0
	c.load = func(path string) (*prices.Book, error) {
		loads++
		return store.Load(path)
	}
	return c, &loads
}

func writeBook(t *testing.T, path string, kv ...string) {
	t.Helper()
	b := prices.NewBook()
	for i := 0; i+1 < len(kv); i += 2 {
		b.Set(kv[i], kv[i+1])
	}
	require.NoError(t, store.Save(path, b))
}

func TestCache_HitsUntilFileChanges(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeBook(t, path, "ahri_foxfire", "1350")

	c, loads := countingCache(0)
	_, err := c.Book(path)
	require.NoError(t, err)
	_, err = c.Book(path)
	require.NoError(t, err)
	assert.Equal(t, 1, *loads)

	writeBook(t, path, "ahri_foxfire", "1350", "ahri_midnight", "Special")
	future := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, future, future))

	b, err := c.Book(path)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
	assert.Equal(t, 2, *loads)
}

func TestCache_TTL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeBook(t, path, "a_b", "1")

	c, loads := countingCache(time.Minute)
	clock := time.Now()
	c.now = func() time.Time { return clock }

	_, err := c.Book(path)
	require.NoError(t, err)
	clock = clock.Add(30 * time.Second)
	_, err = c.Book(path)
	require.NoError(t, err)
	assert.Equal(t, 1, *loads)

	clock = clock.Add(time.Minute)
	_, err = c.Book(path)
	require.NoError(t, err)
	assert.Equal(t, 2, *loads)
}

func TestCache_Invalidate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.json")
	writeBook(t, path, "a_b", "1")

	c, loads := countingCache(0)
	_, _ = c.Book(path)
	c.Invalidate(path)
	_, _ = c.Book(path)
	assert.Equal(t, 2, *loads)
}

func TestCache_MissingFile(t *testing.T) {
	c := New(0)
	_, err := c.Book(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
