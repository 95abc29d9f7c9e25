// Copyright Whalen Digital Projects, 2026. All rights reserved.

package images

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhalen/artcat/pkg/types"
)

func TestDownload(t *testing.T) {
	payload := []byte("jpeg bytes")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write(payload)
	}))
	defer srv.Close()

	client := NewClient(types.ImageConfig{HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second}})
	data, hash, err := client.Download(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, payload, data)
	// md5 of "jpeg bytes"; identical content must always map to the same key.
	assert.Len(t, hash, 32)

	_, again, err := client.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, hash, again)
}

func TestDownloadErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(types.ImageConfig{HTTPConfig: types.HTTPConfig{Timeout: 5 * time.Second}})
	_, _, err := client.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestWriteFigure(t *testing.T) {
	dir := t.TempDir()
	client := NewClient(types.ImageConfig{FiguresDir: dir})

	path, err := client.WriteFigure("cat-4", []byte("jpeg bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "cat-4.jpg"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg bytes"), data)

	// No temp files left behind.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestHashCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "figures.json")

	c, err := LoadHashCache(path)
	require.NoError(t, err)

	_, ok := c.Get("abc123")
	assert.False(t, ok)

	c.Put("abc123", "cat-4")
	require.NoError(t, c.Save())

	reloaded, err := LoadHashCache(path)
	require.NoError(t, err)

	id, ok := reloaded.Get("abc123")
	require.True(t, ok)
	assert.Equal(t, "cat-4", id)
}
