// Copyright Whalen Digital Projects, 2026. All rights reserved.

package activity

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwhalen/artcat/internal/linked"
)

type fakeFetcher struct {
	docs map[string]linked.Document
}

func (f *fakeFetcher) Fetch(_ context.Context, uri string) (linked.Document, error) {
	if doc, ok := f.docs[uri]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("no document for %s", uri)
}

func TestValidateType(t *testing.T) {
	for _, accepted := range []string{"HumanMadeObject", "DigitalObject", "Activity"} {
		assert.NoError(t, ValidateType(linked.Document{"type": accepted}))
	}

	err := ValidateType(linked.Document{"type": "Person"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `record type "Person" is not supported`)

	assert.Error(t, ValidateType(linked.Document{}))
}

func TestIsActivity(t *testing.T) {
	assert.True(t, IsActivity(linked.Document{"type": "Activity"}))
	assert.False(t, IsActivity(linked.Document{"type": "HumanMadeObject"}))
}

func setPage(ids ...string) linked.Document {
	items := make([]any, len(ids))
	for i, id := range ids {
		items[i] = map[string]any{"id": id}
	}
	return linked.Document{"orderedItems": items}
}

func TestCollectObjectURIs(t *testing.T) {
	setHref := "https://api.test/set/1?member=items"
	doc := linked.Document{
		"type": "Activity",
		"_links": map[string]any{
			"lux:eventIncludedItems": map[string]any{"href": setHref},
		},
	}
	fetcher := &fakeFetcher{docs: map[string]linked.Document{
		setHref + "&page=1": setPage("https://api.test/object/1", "https://api.test/object/2"),
		setHref + "&page=2": setPage("https://api.test/object/3"),
		setHref + "&page=3": setPage(),
	}}

	var out bytes.Buffer
	uris, err := CollectObjectURIs(context.Background(), fetcher, doc, &out)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"https://api.test/object/1",
		"https://api.test/object/2",
		"https://api.test/object/3",
	}, uris)
	assert.Contains(t, out.String(), "collected 3 object URIs")
}

func TestCollectObjectURIsMissingLink(t *testing.T) {
	var out bytes.Buffer
	_, err := CollectObjectURIs(context.Background(), &fakeFetcher{}, linked.Document{"type": "Activity"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "link for the set of items was not found")
}

func TestCollectObjectURIsPageFailure(t *testing.T) {
	doc := linked.Document{
		"_links": map[string]any{
			"lux:eventIncludedItems": map[string]any{"href": "https://api.test/set/1?member=items"},
		},
	}

	var out bytes.Buffer
	_, err := CollectObjectURIs(context.Background(), &fakeFetcher{}, doc, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching set page 1")
}
