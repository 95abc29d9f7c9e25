// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestResolveTermPreferred(t *testing.T) {
	conceptURI := "https://vocab.test/aat/sculpture"
	engine, _ := newTestEngine(map[string]Document{conceptURI: term("sculpture")})

	if got := engine.ResolveTerm(context.Background(), conceptURI, "object type", PreferredTerm); got != "sculpture" {
		t.Errorf("ResolveTerm = %q, want %q", got, "sculpture")
	}
}

func TestResolveTermPreferredViaEquivalent(t *testing.T) {
	conceptURI := "https://vocab.test/aat/painting"
	// The preferred-term classification arrives as a local concept that
	// declares equivalence with the canonical one.
	doc := Document{
		"identified_by": []any{
			map[string]any{
				"type":    "Name",
				"content": "painting",
				"classified_as": []any{
					map[string]any{
						"id": "https://local.test/concepts/pref",
						"equivalent": []any{
							map[string]any{"id": conceptPreferred},
						},
					},
				},
			},
		},
	}
	engine, _ := newTestEngine(map[string]Document{conceptURI: doc})

	if got := engine.ResolveTerm(context.Background(), conceptURI, "object type", PreferredTerm); got != "painting" {
		t.Errorf("ResolveTerm = %q, want %q", got, "painting")
	}
}

func TestResolveTermAlternative(t *testing.T) {
	conceptURI := "https://vocab.test/aat/meters"
	doc := Document{
		"identified_by": []any{
			map[string]any{
				"type":    "Name",
				"content": "meters",
				"classified_as": []any{
					map[string]any{"id": conceptPreferred},
				},
				"alternative": []any{
					map[string]any{"type": "Name", "content": "m"},
				},
			},
		},
	}
	engine, _ := newTestEngine(map[string]Document{conceptURI: doc})

	if got := engine.ResolveTerm(context.Background(), conceptURI, "unit", AlternativeTerm); got != "m" {
		t.Errorf("ResolveTerm = %q, want %q", got, "m")
	}
}

func TestResolveTermAppliesVocabSuffix(t *testing.T) {
	vocab := testVocab()
	vocab.VocabSuffix = ".json"

	conceptURI := "https://vocab.test/aat/drawing"
	fetcher := &fakeFetcher{docs: map[string]Document{conceptURI + ".json": term("drawing")}}
	var diag bytes.Buffer
	engine := NewEngine(fetcher, vocab, &diag)

	if got := engine.ResolveTerm(context.Background(), conceptURI, "object type", PreferredTerm); got != "drawing" {
		t.Errorf("ResolveTerm = %q, want %q", got, "drawing")
	}
	if len(fetcher.calls) != 1 || fetcher.calls[0] != conceptURI+".json" {
		t.Errorf("fetched %v, want the suffixed URI", fetcher.calls)
	}

	// An already-suffixed identifier is not suffixed again.
	if got := engine.ResolveTerm(context.Background(), conceptURI+".json", "object type", PreferredTerm); got != "drawing" {
		t.Errorf("ResolveTerm = %q, want %q", got, "drawing")
	}

	// Identifiers outside the vocabulary host pass through untouched.
	otherURI := "https://local.test/concepts/pref"
	fetcher.docs[otherURI] = term("local")
	if got := engine.ResolveTerm(context.Background(), otherURI, "object type", PreferredTerm); got != "local" {
		t.Errorf("ResolveTerm = %q, want %q", got, "local")
	}
}

func TestResolveTermLabelFallback(t *testing.T) {
	conceptURI := "https://vocab.test/aat/amphora"
	engine, diag := newTestEngine(map[string]Document{
		conceptURI: {"label": "amphora"},
	})

	if got := engine.ResolveTerm(context.Background(), conceptURI, "object type", PreferredTerm); got != "amphora" {
		t.Errorf("ResolveTerm = %q, want %q", got, "amphora")
	}
	want := `no preferred term found for ` + conceptURI + `; "label" retrieved instead`
	if !strings.Contains(diag.String(), want) {
		t.Errorf("diagnostics = %q, want %q", diag.String(), want)
	}
}

func TestResolveTermUnderscoreLabelFallback(t *testing.T) {
	conceptURI := "https://vocab.test/aat/krater"
	engine, diag := newTestEngine(map[string]Document{
		conceptURI: {"_label": "krater"},
	})

	if got := engine.ResolveTerm(context.Background(), conceptURI, "object type", PreferredTerm); got != "krater" {
		t.Errorf("ResolveTerm = %q, want %q", got, "krater")
	}
	if !strings.Contains(diag.String(), `"_label" retrieved instead`) {
		t.Errorf("diagnostics = %q, want _label warning", diag.String())
	}
}

func TestResolveTermFetchFailure(t *testing.T) {
	engine, diag := newTestEngine(nil)

	if got := engine.ResolveTerm(context.Background(), "https://vocab.test/aat/missing", "unit", PreferredTerm); got != "" {
		t.Errorf("ResolveTerm = %q, want empty", got)
	}
	if !strings.Contains(diag.String(), "error retrieving unit data") {
		t.Errorf("diagnostics = %q, want a retrieval error naming the field", diag.String())
	}
}

func TestResolveTermNoTermFound(t *testing.T) {
	conceptURI := "https://vocab.test/aat/bare"
	engine, diag := newTestEngine(map[string]Document{conceptURI: {}})

	if got := engine.ResolveTerm(context.Background(), conceptURI, "object type", PreferredTerm); got != "" {
		t.Errorf("ResolveTerm = %q, want empty", got)
	}
	want := "no preferred term found for " + conceptURI
	if !strings.Contains(diag.String(), want) {
		t.Errorf("diagnostics = %q, want %q", diag.String(), want)
	}
}
