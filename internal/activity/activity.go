// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package activity collects object URIs from Linked Art activity records
// (exhibitions, accession events) by paging their included-items link.
package activity

import (
	"context"
	"fmt"
	"io"

	"github.com/mwhalen/artcat/internal/linked"
)

// includedItemsRel is the hypermedia link naming the set of objects an
// activity includes.
const includedItemsRel = "lux:eventIncludedItems"

// recordTypes are the Linked Art types the add pipeline accepts.
var recordTypes = []string{"HumanMadeObject", "DigitalObject", "Activity"}

// ValidateType rejects records that are not objects or activities.
func ValidateType(doc linked.Document) error {
	t := doc.Type()
	for _, allowed := range recordTypes {
		if t == allowed {
			return nil
		}
	}
	return fmt.Errorf("record type %q is not supported (expected HumanMadeObject, DigitalObject, or Activity)", t)
}

// IsActivity reports whether the record is an activity whose member
// objects should be collected.
func IsActivity(doc linked.Document) bool {
	return doc.Type() == "Activity"
}

// CollectObjectURIs pages through the activity's included-items link and
// returns every member object URI. Paging stops at the first empty page.
func CollectObjectURIs(ctx context.Context, fetcher linked.Fetcher, doc linked.Document, w io.Writer) ([]string, error) {
	links, _ := doc["_links"].(map[string]any)
	rel, _ := links[includedItemsRel].(map[string]any)
	href, _ := rel["href"].(string)
	if href == "" {
		return nil, fmt.Errorf("link for the set of items was not found")
	}

	var uris []string
	for page := 1; ; page++ {
		pageURL := fmt.Sprintf("%s&page=%d", href, page)
		fmt.Fprintf(w, "fetching page %d of the set...\n", page)

		pageDoc, err := fetcher.Fetch(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("fetching set page %d: %w", page, err)
		}

		items := linked.ExtractIDs(pageDoc["orderedItems"])
		if len(items) == 0 {
			break
		}
		uris = append(uris, items...)
	}

	fmt.Fprintf(w, "collected %d object URIs\n", len(uris))
	return uris, nil
}
