// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import (
	"context"
	"strings"
	"testing"

	"github.com/mwhalen/artcat/pkg/types"
)

func TestTitle(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"identified_by": []any{
			nameItem("De sterrennacht", true, false),
			nameItem("The Starry Night", true, true),
		},
	}

	if got := engine.Title(doc); got != "The Starry Night" {
		t.Errorf("Title = %q, want %q", got, "The Starry Night")
	}
}

func TestTitleMissing(t *testing.T) {
	engine, diag := newTestEngine(nil)
	if got := engine.Title(Document{}); got != "" {
		t.Errorf("Title = %q, want empty", got)
	}
	if !strings.Contains(diag.String(), "object title not found") {
		t.Errorf("diagnostics = %q, want title-not-found message", diag.String())
	}
}

func TestTitleNilDocument(t *testing.T) {
	engine, _ := newTestEngine(nil)
	if got := engine.Title(nil); got != "" {
		t.Errorf("Title(nil) = %q, want empty", got)
	}
}

func TestAccession(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"identified_by": []any{
			map[string]any{
				"type":          "Name",
				"content":       "Not an accession",
				"classified_as": []any{map[string]any{"id": conceptAccession}},
			},
			map[string]any{
				"type":          "Identifier",
				"content":       "1941.12",
				"classified_as": []any{map[string]any{"id": conceptAccession}},
			},
		},
	}
	if got := engine.Accession(doc); got != "1941.12" {
		t.Errorf("Accession = %q, want %q", got, "1941.12")
	}
}

func TestStatement(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"referred_to_by": []any{
			map[string]any{
				"type":          "LinguisticObject",
				"content":       "Gift of Mrs. Paul Moore",
				"classified_as": []any{map[string]any{"id": conceptCreditLine}},
			},
		},
	}
	if got := engine.Statement(doc, testVocab().CreditLine, "credit line"); got != "Gift of Mrs. Paul Moore" {
		t.Errorf("Statement = %q, want credit line content", got)
	}
	if got := engine.Statement(doc, testVocab().Description, "description"); got != "" {
		t.Errorf("Statement = %q, want empty for unmatched concept", got)
	}
}

func TestCreatorPartShape(t *testing.T) {
	actorURI := "https://museum.test/person/van-gogh"
	engine, _ := newTestEngine(map[string]Document{
		actorURI: {
			"identified_by": []any{nameItem("Vincent van Gogh", true, true)},
		},
	})

	doc := Document{
		"produced_by": map[string]any{
			"part": []any{
				map[string]any{
					"carried_out_by": []any{map[string]any{"id": actorURI}},
				},
			},
		},
	}
	if got := engine.Creator(context.Background(), doc); got != "Vincent van Gogh" {
		t.Errorf("Creator = %q, want %q", got, "Vincent van Gogh")
	}
}

func TestCreatorFlatShape(t *testing.T) {
	actorURI := "https://museum.test/person/rembrandt"
	engine, _ := newTestEngine(map[string]Document{
		actorURI: {
			"identified_by": []any{nameItem("Rembrandt van Rijn", true, false)},
		},
	})

	doc := Document{
		"produced_by": map[string]any{
			"carried_out_by": []any{map[string]any{"id": actorURI}},
		},
	}
	if got := engine.Creator(context.Background(), doc); got != "Rembrandt van Rijn" {
		t.Errorf("Creator = %q, want %q", got, "Rembrandt van Rijn")
	}
}

func TestCreatorSecondActorSucceeds(t *testing.T) {
	// The first actor fails to dereference; the second resolves. The
	// batch keeps going and succeeds.
	first := "https://museum.test/person/missing"
	second := "https://museum.test/person/known"
	engine, _ := newTestEngine(map[string]Document{
		second: {
			"identified_by": []any{nameItem("Known Artist", true, true)},
		},
	})

	doc := Document{
		"produced_by": map[string]any{
			"part": []any{
				map[string]any{"carried_out_by": []any{map[string]any{"id": first}}},
				map[string]any{"carried_out_by": []any{map[string]any{"id": second}}},
			},
		},
	}
	if got := engine.Creator(context.Background(), doc); got != "Known Artist" {
		t.Errorf("Creator = %q, want %q", got, "Known Artist")
	}
}

func TestCreatorFallsBackToURIs(t *testing.T) {
	uri := "https://museum.test/person/unresolvable"
	engine, diag := newTestEngine(nil)

	doc := Document{
		"produced_by": map[string]any{
			"carried_out_by": []any{map[string]any{"id": uri}},
		},
	}
	if got := engine.Creator(context.Background(), doc); got != uri {
		t.Errorf("Creator = %q, want raw URI fallback %q", got, uri)
	}
	if !strings.Contains(diag.String(), "name extraction was unsuccessful") {
		t.Errorf("diagnostics = %q, want unsuccessful-extraction warning", diag.String())
	}
}

func TestYear(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"produced_by": map[string]any{
			"timespan": map[string]any{
				"identified_by": []any{map[string]any{"content": "1889"}},
			},
		},
	}
	if got := engine.Year(doc, false); got != "1889" {
		t.Errorf("Year = %q, want %q", got, "1889")
	}
}

func TestYearHintsAtPeriod(t *testing.T) {
	engine, diag := newTestEngine(nil)
	if got := engine.Year(Document{}, false); got != "" {
		t.Errorf("Year = %q, want empty", got)
	}
	if !strings.Contains(diag.String(), "try period") {
		t.Errorf("diagnostics = %q, want period hint", diag.String())
	}

	diag.Reset()
	engine.Year(Document{}, true)
	if strings.Contains(diag.String(), "try period") {
		t.Errorf("diagnostics = %q, period hint should be suppressed when period was requested", diag.String())
	}
}

func TestObjectTypeDereferences(t *testing.T) {
	conceptURI := "https://museum.test/concept/painting"
	engine, _ := newTestEngine(map[string]Document{
		conceptURI: {
			"identified_by": []any{nameItem("painting", true, true)},
		},
	})

	doc := Document{
		"classified_as": []any{
			map[string]any{
				"id":            conceptURI,
				"classified_as": []any{map[string]any{"id": conceptObjectType}},
			},
		},
	}
	if got := engine.ObjectType(context.Background(), doc); got != "painting" {
		t.Errorf("ObjectType = %q, want %q", got, "painting")
	}
}

func TestObjectTypeStatementFallback(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"referred_to_by": []any{
			map[string]any{
				"type":          "LinguisticObject",
				"content":       "drawing",
				"classified_as": []any{map[string]any{"id": conceptObjectType}},
			},
		},
	}
	if got := engine.ObjectType(context.Background(), doc); got != "drawing" {
		t.Errorf("ObjectType = %q, want statement fallback %q", got, "drawing")
	}
}

func TestObjectTypeURIFallback(t *testing.T) {
	conceptURI := "https://museum.test/concept/unresolvable"
	engine, diag := newTestEngine(nil)

	doc := Document{
		"classified_as": []any{
			map[string]any{
				"id":            conceptURI,
				"classified_as": []any{map[string]any{"id": conceptObjectType}},
			},
		},
	}
	if got := engine.ObjectType(context.Background(), doc); got != conceptURI {
		t.Errorf("ObjectType = %q, want raw URI fallback", got)
	}
	if !strings.Contains(diag.String(), "returning URI") {
		t.Errorf("diagnostics = %q, want returning-URI warning", diag.String())
	}
}

func TestWebPage(t *testing.T) {
	engine, _ := newTestEngine(nil)

	wrapped := Document{
		"subject_of": []any{
			map[string]any{
				"digitally_carried_by": []any{
					map[string]any{
						"classified_as": []any{map[string]any{"id": conceptWebPage}},
						"access_point":  []any{map[string]any{"id": "https://museum.test/page"}},
					},
				},
			},
		},
	}
	if got := engine.WebPage(wrapped); got != "https://museum.test/page" {
		t.Errorf("WebPage wrapped = %q", got)
	}

	direct := Document{
		"subject_of": []any{
			map[string]any{
				"id":            "https://museum.test/direct-page",
				"classified_as": []any{map[string]any{"id": conceptWebPage}},
			},
		},
	}
	if got := engine.WebPage(direct); got != "https://museum.test/direct-page" {
		t.Errorf("WebPage direct = %q", got)
	}
}

func TestThumbnail(t *testing.T) {
	engine, _ := newTestEngine(nil)

	wrapped := Document{
		"representation": []any{
			map[string]any{
				"digitally_shown_by": []any{
					map[string]any{
						"classified_as": []any{map[string]any{"id": conceptThumbnail}},
						"access_point":  []any{map[string]any{"id": "https://museum.test/thumb.jpg"}},
					},
				},
			},
		},
	}
	if got := engine.Thumbnail(wrapped); got != "https://museum.test/thumb.jpg" {
		t.Errorf("Thumbnail wrapped = %q", got)
	}

	direct := Document{
		"representation": []any{
			map[string]any{
				"id":            "https://museum.test/direct-thumb.jpg",
				"classified_as": []any{map[string]any{"id": conceptThumbnail}},
			},
		},
	}
	if got := engine.Thumbnail(direct); got != "https://museum.test/direct-thumb.jpg" {
		t.Errorf("Thumbnail direct = %q", got)
	}
}

func TestCitations(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"referred_to_by": []any{
			map[string]any{
				"content":       "Catalogue raisonné, no. 52",
				"classified_as": []any{map[string]any{"id": conceptCitation}},
			},
			map[string]any{
				"id":            "https://museum.test/citation/2",
				"classified_as": []any{map[string]any{"id": conceptCitation}},
			},
		},
	}
	got := engine.Citations(doc)
	if len(got) != 2 {
		t.Fatalf("Citations returned %d entries, want 2", len(got))
	}
	if got[0] != "Catalogue raisonné, no. 52" || got[1] != "https://museum.test/citation/2" {
		t.Errorf("Citations = %v", got)
	}
}

func TestFindSpotNoteFallback(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"referred_to_by": []any{
			map[string]any{
				"type":          "LinguisticObject",
				"content":       "Egypt, Thebes",
				"classified_as": []any{map[string]any{"id": conceptFoundPlace}},
			},
		},
	}
	if got := engine.FindSpot(context.Background(), doc); got != "Egypt, Thebes" {
		t.Errorf("FindSpot = %q, want note fallback", got)
	}
}

func TestRelationalResolvers(t *testing.T) {
	placeURI := "https://museum.test/place/gallery"
	engine, _ := newTestEngine(map[string]Document{
		placeURI: {
			"identified_by": []any{nameItem("European Art Gallery", true, false)},
		},
	})
	ctx := context.Background()

	setDoc := Document{"member_of": []any{map[string]any{"id": placeURI}}}
	if got := engine.Set(ctx, setDoc); got != "European Art Gallery" {
		t.Errorf("Set = %q", got)
	}

	ownerDoc := Document{"current_owner": []any{map[string]any{"id": placeURI}}}
	if got := engine.Owner(ctx, ownerDoc); got != "European Art Gallery" {
		t.Errorf("Owner = %q", got)
	}

	// current_location is a single reference, not an array.
	locDoc := Document{"current_location": map[string]any{"id": placeURI}}
	if got := engine.Location(ctx, locDoc); got != "European Art Gallery" {
		t.Errorf("Location = %q", got)
	}
}

func TestExtractNeverErrorsOnMissingData(t *testing.T) {
	engine, _ := newTestEngine(nil)
	record := engine.Extract(context.Background(), Document{}, "https://museum.test/object/1", types.AllFields())

	if record.URI != "https://museum.test/object/1" {
		t.Errorf("URI = %q", record.URI)
	}
	if got := record.Get(types.FieldURI); got != "https://museum.test/object/1" {
		t.Errorf("uri field = %q; the uri must always be carried", got)
	}
	for key := range record.Fields {
		if key == types.FieldURI {
			continue
		}
		t.Errorf("field %q present on empty document", key)
	}
}

func TestExtractRequestedFieldsOnly(t *testing.T) {
	engine, _ := newTestEngine(nil)
	doc := Document{
		"identified_by": []any{
			nameItem("The Starry Night", true, true),
			map[string]any{
				"type":          "Identifier",
				"content":       "472.1941",
				"classified_as": []any{map[string]any{"id": conceptAccession}},
			},
		},
	}

	record := engine.Extract(context.Background(), doc, "https://museum.test/object/2",
		[]types.FieldKey{types.FieldTitle})

	if got := record.Get(types.FieldTitle); got != "The Starry Night" {
		t.Errorf("title = %q", got)
	}
	if _, ok := record.Fields[types.FieldAccession]; ok {
		t.Error("accession resolved without being requested")
	}
}
