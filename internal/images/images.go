// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package images downloads representative figure images and deduplicates
// them by content hash.
// Implements: docs/ARCHITECTURE § Image Pipeline.
package images

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/mwhalen/artcat/internal/httputil"
	"github.com/mwhalen/artcat/pkg/types"
)

// Client downloads figure images.
type Client struct {
	http *http.Client
	cfg  types.ImageConfig
}

// NewClient builds an image client from config.
func NewClient(cfg types.ImageConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// Download fetches the image at uri into memory and returns its bytes
// with their md5 content hash. The hash is a dedup cache key, not a
// security boundary.
func (c *Client) Download(ctx context.Context, uri string) (data []byte, hash string, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, "", fmt.Errorf("creating request for %s: %w", uri, err)
	}
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, "", fmt.Errorf("fetching image %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, uri)
	}

	data, err = io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", fmt.Errorf("reading image body: %w", err)
	}
	sum := md5.Sum(data)
	return data, hex.EncodeToString(sum[:]), nil
}

// WriteFigure writes image data to figuresDir/<figureID>.jpg through a
// temp file renamed on success, so an interrupted write never leaves a
// truncated figure behind.
func (c *Client) WriteFigure(figureID string, data []byte) (string, error) {
	if err := os.MkdirAll(c.cfg.FiguresDir, 0o755); err != nil {
		return "", fmt.Errorf("creating figures directory: %w", err)
	}
	destPath := filepath.Join(c.cfg.FiguresDir, figureID+".jpg")

	tmpFile, err := os.CreateTemp(c.cfg.FiguresDir, ".figure-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	_, writeErr := tmpFile.Write(data)
	closeErr := tmpFile.Close()
	if writeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("writing figure: %w", writeErr)
	}
	if closeErr != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("closing temp file: %w", closeErr)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("renaming temp file: %w", err)
	}
	return destPath, nil
}

// HashCache maps image content hashes to figure ids so re-adding an
// object reuses the already-downloaded figure.
type HashCache struct {
	path    string
	entries map[string]string
}

// LoadHashCache reads the hash cache JSON file; missing files yield an
// empty cache.
func LoadHashCache(path string) (*HashCache, error) {
	c := &HashCache{path: path, entries: map[string]string{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return c, nil
		}
		return nil, fmt.Errorf("reading figure cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &c.entries); err != nil {
		return nil, fmt.Errorf("parsing figure cache %s: %w", path, err)
	}
	return c, nil
}

// Get returns the figure id recorded for hash.
func (c *HashCache) Get(hash string) (string, bool) {
	id, ok := c.entries[hash]
	return id, ok
}

// Put records a figure id for hash; call Save to persist.
func (c *HashCache) Put(hash, figureID string) {
	c.entries[hash] = figureID
}

// Save writes the cache back to disk.
func (c *HashCache) Save() error {
	if dir := filepath.Dir(c.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating figure cache directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling figure cache: %w", err)
	}
	return os.WriteFile(c.path, data, 0o644)
}
