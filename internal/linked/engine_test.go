// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/mwhalen/artcat/pkg/types"
)

// fakeFetcher serves canned documents by URI.
type fakeFetcher struct {
	docs  map[string]Document
	calls []string
}

func (f *fakeFetcher) Fetch(_ context.Context, uri string) (Document, error) {
	f.calls = append(f.calls, uri)
	if doc, ok := f.docs[uri]; ok {
		return doc, nil
	}
	return nil, fmt.Errorf("no document for %s", uri)
}

const (
	vocabHost = "https://vocab.test"

	conceptPrimary    = "https://vocab.test/aat/primary"
	conceptEnglish    = "https://vocab.test/aat/english"
	conceptAccession  = "https://vocab.test/aat/accession"
	conceptObjectType = "https://vocab.test/aat/object-type"
	conceptCreditLine = "https://vocab.test/aat/credit-line"
	conceptWebPage    = "https://vocab.test/aat/web-page"
	conceptThumbnail  = "https://vocab.test/aat/thumbnail"
	conceptDesc       = "https://vocab.test/aat/description"
	conceptCitation   = "https://vocab.test/aat/citation"
	conceptDimStmt    = "https://vocab.test/aat/dimensions-statement"
	conceptPreferred  = "https://vocab.test/aat/preferred"
	conceptPositional = "https://vocab.test/aat/positional"
	conceptFoundPlace = "https://vocab.test/aat/found-place"
)

func testVocab() types.Vocabulary {
	return types.Vocabulary{
		PrimaryName:         []string{conceptPrimary},
		English:             []string{conceptEnglish},
		Accession:           []string{conceptAccession},
		ObjectType:          []string{conceptObjectType},
		CreditLine:          []string{conceptCreditLine},
		WebPage:             []string{conceptWebPage},
		Thumbnail:           []string{conceptThumbnail},
		Description:         []string{conceptDesc},
		Citation:            []string{conceptCitation},
		DimensionsStatement: []string{conceptDimStmt},
		PreferredTerm:       conceptPreferred,
		PositionalAttribute: conceptPositional,
		FindSpotNote:        conceptFoundPlace,
		VocabHost:           vocabHost,
	}
}

// newTestEngine returns an engine over canned documents plus the
// diagnostics it writes.
func newTestEngine(docs map[string]Document) (*Engine, *bytes.Buffer) {
	var diag bytes.Buffer
	return NewEngine(&fakeFetcher{docs: docs}, testVocab(), &diag), &diag
}

// mustDoc parses a JSON literal into a Document.
func mustDoc(t *testing.T, src string) Document {
	t.Helper()
	var doc Document
	if err := json.Unmarshal([]byte(src), &doc); err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	return doc
}

// term builds a dereferenceable concept document carrying a preferred term.
func term(label string) Document {
	return Document{
		"identified_by": []any{
			map[string]any{
				"type":    "Name",
				"content": label,
				"classified_as": []any{
					map[string]any{"id": conceptPreferred},
				},
			},
		},
	}
}
