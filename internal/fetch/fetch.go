// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package fetch retrieves Linked Art documents by URI using HTTP content
// negotiation.
// Implements: docs/ARCHITECTURE § Resource Fetcher.
package fetch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/mwhalen/artcat/internal/httputil"
	"github.com/mwhalen/artcat/internal/linked"
	"github.com/mwhalen/artcat/pkg/types"
)

// acceptHeader requests JSON-LD first and plain JSON second; Linked Art
// endpoints negotiate on it.
const acceptHeader = "application/ld+json, application/json"

// Client fetches Linked Art documents. It makes at most one attempt per
// call (429 backoff inside the transport aside); the caching layer above
// decides whether to re-call.
type Client struct {
	http *http.Client
	cfg  types.FetchConfig
}

// NewClient builds a fetch client from config.
func NewClient(cfg types.FetchConfig) *Client {
	return &Client{
		http: &http.Client{Timeout: cfg.Timeout},
		cfg:  cfg,
	}
}

// Fetch dereferences uri and decodes the response body. Non-2xx statuses
// and malformed bodies are errors; callers treat them as missing data
// unless IsHostNotFound reports an environment problem.
func (c *Client) Fetch(ctx context.Context, uri string) (linked.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request for %s: %w", uri, err)
	}
	req.Header.Set("Accept", acceptHeader)
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	resp, err := httputil.DoWithRetry(ctx, c.http, req, 0)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", uri, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, uri)
	}

	var doc linked.Document
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", uri, err)
	}
	return doc, nil
}

// IsHostNotFound reports whether err stems from hostname resolution
// failure. Unlike data-level misses this indicates an environment
// problem, so batch callers abort with a user-facing message instead of
// recording an empty field.
func IsHostNotFound(err error) bool {
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
