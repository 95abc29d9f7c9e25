// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import "context"

// TermType selects which label of a vocabulary term to resolve.
type TermType int

const (
	PreferredTerm TermType = iota
	AlternativeTerm
)

// ResolveTerm dereferences a concept identifier and returns its
// human-readable label. For PreferredTerm it scans the identifying items
// for one classified as a preferred term, directly or through an
// equivalence reference; for AlternativeTerm it returns that item's first
// alternative content. When no preferred term exists the resource's own
// generic label field is used, with a logged warning naming which field
// was read: a preferred term should normally exist. Failures resolve to
// "" after logging; nothing escapes this boundary.
func (e *Engine) ResolveTerm(ctx context.Context, uri, field string, termType TermType) string {
	uri = e.termURI(uri)
	doc, err := e.fetcher.Fetch(ctx, uri)
	if err != nil {
		e.logf("error retrieving %s data: %v", field, err)
		return ""
	}

	for _, raw := range doc.seq("identified_by") {
		item := AsDocument(raw)
		if !e.isPreferredTerm(item.seq("classified_as")) {
			continue
		}
		if termType == PreferredTerm {
			if c := item.str("content"); c != "" {
				return c
			}
			continue
		}
		if alt := item.first("alternative").str("content"); alt != "" {
			return alt
		}
	}

	if termType == PreferredTerm {
		if label := doc.str("label"); label != "" {
			e.logf("no preferred term found for %s; \"label\" retrieved instead", uri)
			return label
		}
		if label := doc.str("_label"); label != "" {
			e.logf("no preferred term found for %s; \"_label\" retrieved instead", uri)
			return label
		}
	}

	e.logf("error retrieving %s data: no %s term found for %s", field, termName(termType), uri)
	return ""
}

func termName(t TermType) string {
	if t == AlternativeTerm {
		return "alternative"
	}
	return "preferred"
}

// isPreferredTerm reports whether any classification is the preferred-term
// concept, either directly or via an equivalent reference.
func (e *Engine) isPreferredTerm(classifications []any) bool {
	for _, raw := range classifications {
		ca := AsDocument(raw)
		if ca.ID() == e.vocab.PreferredTerm {
			return true
		}
		for _, eq := range ca.seq("equivalent") {
			if AsDocument(eq).ID() == e.vocab.PreferredTerm {
				return true
			}
		}
	}
	return false
}
