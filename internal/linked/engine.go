// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/mwhalen/artcat/pkg/types"
)

// Fetcher dereferences a URI to a Linked Art document. Implementations
// make at most one attempt per call; the caching layer above decides
// whether to re-call. A nil document with a non-nil error is the only
// failure shape.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) (Document, error)
}

// Engine resolves semantic fields from Linked Art documents. Resolvers
// are pure functions of (document, vocabulary) plus the Fetcher's cache
// side effect, so one Engine is safe to share across records.
type Engine struct {
	fetcher Fetcher
	vocab   types.Vocabulary
	diag    io.Writer
}

// NewEngine builds an Engine. diag receives human-readable diagnostics on
// missing or ambiguous data; it is a side channel and never affects
// control flow. Pass io.Discard to silence it.
func NewEngine(f Fetcher, vocab types.Vocabulary, diag io.Writer) *Engine {
	if diag == nil {
		diag = io.Discard
	}
	return &Engine{fetcher: f, vocab: vocab, diag: diag}
}

func (e *Engine) logf(format string, args ...any) {
	fmt.Fprintf(e.diag, format+"\n", args...)
}

// termURI appends the vocabulary-host format suffix where required before
// dereferencing. The host match ignores the scheme: sources reference the
// same vocabulary over both http and https.
func (e *Engine) termURI(id string) string {
	if e.vocab.VocabHost == "" || e.vocab.VocabSuffix == "" {
		return id
	}
	host := strings.TrimPrefix(strings.TrimPrefix(e.vocab.VocabHost, "https://"), "http://")
	if strings.Contains(id, host) && !strings.HasSuffix(id, e.vocab.VocabSuffix) {
		return id + e.vocab.VocabSuffix
	}
	return id
}

// fetch dereferences uri, logging and returning nil on any transport or
// decode failure. Resolvers treat a nil result as missing data.
func (e *Engine) fetch(ctx context.Context, uri string) Document {
	doc, err := e.fetcher.Fetch(ctx, uri)
	if err != nil {
		e.logf("fetch %s failed: %v", uri, err)
		return nil
	}
	return doc
}

// Resolver extracts one field from a document. It returns a string,
// a []string (citations), or nil when the field is absent.
type Resolver func(ctx context.Context, doc Document) any

// Resolvers returns the explicit field-to-resolver mapping. requested is
// the full set of fields the caller asked for; a few resolvers vary their
// diagnostics based on it (year hints at period when period was not also
// requested).
func (e *Engine) Resolvers(requested []types.FieldKey) map[types.FieldKey]Resolver {
	want := make(map[types.FieldKey]bool, len(requested))
	for _, f := range requested {
		want[f] = true
	}

	str := func(f func(Document) string) Resolver {
		return func(_ context.Context, doc Document) any {
			if s := f(doc); s != "" {
				return s
			}
			return nil
		}
	}
	cstr := func(f func(context.Context, Document) string) Resolver {
		return func(ctx context.Context, doc Document) any {
			if s := f(ctx, doc); s != "" {
				return s
			}
			return nil
		}
	}

	return map[types.FieldKey]Resolver{
		types.FieldTitle:     str(e.Title),
		types.FieldAccession: str(e.Accession),
		types.FieldCreator:   cstr(e.Creator),
		types.FieldYear: str(func(doc Document) string {
			return e.Year(doc, want[types.FieldPeriod])
		}),
		types.FieldPeriod: str(func(doc Document) string {
			return e.Statement(doc, e.vocab.Period, "period")
		}),
		types.FieldType: cstr(e.ObjectType),
		types.FieldCreditLine: str(func(doc Document) string {
			return e.Statement(doc, e.vocab.CreditLine, "credit line")
		}),
		types.FieldWebPage:     str(e.WebPage),
		types.FieldThumbnail:   str(e.Thumbnail),
		types.FieldDescription: str(e.Description),
		types.FieldCitations: func(_ context.Context, doc Document) any {
			if cs := e.Citations(doc); len(cs) > 0 {
				return cs
			}
			return nil
		},
		types.FieldDimensions: cstr(e.DimensionsField),
		types.FieldMaterials: str(func(doc Document) string {
			return e.Statement(doc, e.vocab.MaterialsStatement, "materials statement")
		}),
		types.FieldAccess: str(func(doc Document) string {
			return e.Statement(doc, e.vocab.AccessStatement, "access statement")
		}),
		types.FieldProvenance: str(func(doc Document) string {
			return e.Statement(doc, e.vocab.Provenance, "provenance")
		}),
		types.FieldEncounterPlace: cstr(e.FindSpot),
		types.FieldSet:            cstr(e.Set),
		types.FieldOwner:          cstr(e.Owner),
		types.FieldLocation:       cstr(e.Location),
		types.FieldTookPlaceAt:    cstr(e.TookPlaceAt),
		types.FieldEncounteredBy:  cstr(e.EncounteredBy),
	}
}

// Extract resolves the requested fields of one document into a flat
// record. Missing fields are omitted. The uri field is always carried:
// duplicate detection in the catalog depends on it.
func (e *Engine) Extract(ctx context.Context, doc Document, uri string, fields []types.FieldKey) types.ObjectRecord {
	record := types.ObjectRecord{
		URI:    uri,
		Fields: make(map[types.FieldKey]any, len(fields)+1),
	}
	if doc == nil {
		e.logf("document not available for %s", uri)
		return record
	}

	resolvers := e.Resolvers(fields)
	for _, field := range fields {
		if field == types.FieldURI {
			continue
		}
		resolve, ok := resolvers[field]
		if !ok {
			e.logf("unknown field %q requested", field)
			continue
		}
		if v := resolve(ctx, doc); v != nil {
			record.Fields[field] = v
		}
	}
	record.Fields[types.FieldURI] = uri
	return record
}
