// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import (
	"context"
)

// Title returns the object title from the identifying names, preferring
// primary-name items in English, then primary-name items in any language,
// then unclassified names.
func (e *Engine) Title(doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	title := selectContent(doc.seq("identified_by"), e.vocab.PrimaryName, e.vocab.English, "Name", AllTiers)
	if title == "" {
		e.logf("object title not found")
	}
	return title
}

// PrimaryName returns the first identifying name classified as a primary
// name, without tiering or dereferencing. Relational resolvers use it on
// the documents they fetch.
func (e *Engine) PrimaryName(doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	for _, raw := range doc.seq("identified_by") {
		item := AsDocument(raw)
		if Matches(item["classified_as"], e.vocab.PrimaryName) {
			return item.str("content")
		}
	}
	return ""
}

// Accession returns the accession number: the first identifying item of
// type Identifier classified as an accession concept.
func (e *Engine) Accession(doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	for _, raw := range doc.seq("identified_by") {
		item := AsDocument(raw)
		if item.Type() != "Identifier" {
			continue
		}
		if Matches(item["classified_as"], e.vocab.Accession) {
			return item.str("content")
		}
	}
	e.logf("accession number not found")
	return ""
}

// Statement returns the content of the first referred_to_by linguistic
// annotation classified under uris. Credit line, materials, access,
// provenance, period and the prose dimensions statement all share this
// shape.
func (e *Engine) Statement(doc Document, uris []string, field string) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	for _, raw := range doc.seq("referred_to_by") {
		item := AsDocument(raw)
		if item.Type() != "LinguisticObject" {
			continue
		}
		if Matches(item["classified_as"], uris) {
			return item.str("content")
		}
	}
	e.logf("%s not found", field)
	return ""
}

// Creator resolves the producing actor names. Production appears in two
// shapes: an activity with sub-part activities (multi-actor) or a flat
// carried_out_by list. Actor ids are dereferenced and their primary names
// selected; when no name resolves the raw identifiers are returned so the
// caller still gets a usable, lower-confidence value.
func (e *Engine) Creator(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}

	var ids []string
	production := AsDocument(doc["produced_by"])
	if parts := production.seq("part"); parts != nil {
		for _, raw := range parts {
			ids = append(ids, ExtractIDs(AsDocument(raw)["carried_out_by"])...)
		}
	} else if production != nil {
		ids = append(ids, ExtractIDs(production["carried_out_by"])...)
	}

	if len(ids) == 0 {
		e.logf("no creator URIs found")
		return ""
	}
	return e.actorNames(ctx, ids, "creator")
}

// EncounteredBy resolves the actors of encounter activities (field
// collectors, expeditions). Multi-actor like Creator.
func (e *Engine) EncounteredBy(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}

	var ids []string
	for _, raw := range doc.seq("encountered_by") {
		ids = append(ids, ExtractIDs(AsDocument(raw)["carried_out_by"])...)
	}
	if len(ids) == 0 {
		e.logf("no encountered by URIs found")
		return ""
	}
	return e.actorNames(ctx, ids, "encountered by")
}

// actorNames dereferences actor ids and selects each actor's identifying
// name; the first actor whose names resolve wins. Falls back to the raw
// identifiers, logged as a degradation signal rather than a silent
// success.
func (e *Engine) actorNames(ctx context.Context, ids []string, field string) string {
	for i, id := range ids {
		ids[i] = e.termURI(id)
	}
	for _, id := range ids {
		actor := e.fetch(ctx, id)
		if actor == nil {
			continue
		}
		name := selectContent(actor.seq("identified_by"), e.vocab.PrimaryName, e.vocab.English, "Name", AllTiers)
		if name != "" {
			return name
		}
	}
	e.logf("%s URI found, but name extraction was unsuccessful; returning URI", field)
	return FormatList(ids)
}

// Year returns the production date: the first identifying content of the
// production timespan. When absent and the caller did not also request
// the period field, the diagnostic hints at it as an alternative.
func (e *Engine) Year(doc Document, periodRequested bool) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	timespan := AsDocument(doc["produced_by"]).doc("timespan")
	if year := timespan.first("identified_by").str("content"); year != "" {
		return year
	}
	if periodRequested {
		e.logf("year not found")
	} else {
		e.logf("year not found; try period")
	}
	return ""
}

// ObjectType resolves the object's type. Classification entries tagged as
// type concepts are collected first; when none exist a free-text
// linguistic annotation is tried; otherwise the type concept ids are
// dereferenced for their names, with the raw-URI fallback.
func (e *Engine) ObjectType(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}

	var ids []string
	for _, raw := range doc.seq("classified_as") {
		item := AsDocument(raw)
		if Matches(item["classified_as"], e.vocab.ObjectType) {
			if id := item.ID(); id != "" {
				ids = append(ids, id)
			}
		}
	}

	if len(ids) == 0 {
		if stmt := e.Statement(doc, e.vocab.ObjectType, "object type"); stmt != "" {
			return stmt
		}
		e.logf("object type not found")
		return ""
	}

	for i, id := range ids {
		ids[i] = e.termURI(id)
	}
	for _, id := range ids {
		concept := e.fetch(ctx, id)
		if concept == nil {
			continue
		}
		name := selectContent(concept.seq("identified_by"), e.vocab.PrimaryName, e.vocab.English, "Name", PreciseTiers)
		if name != "" {
			return name
		}
	}

	e.logf("object type URI found, but name extraction was unsuccessful; returning URI")
	return FormatList(ids)
}

// WebPage returns the access point of the object's web page. Two
// structural shapes are tried in order: a digitally_carried_by wrapper,
// then a direct subject_of item.
func (e *Engine) WebPage(doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	for _, raw := range doc.seq("subject_of") {
		subject := AsDocument(raw)
		for _, carried := range subject.seq("digitally_carried_by") {
			item := AsDocument(carried)
			if Matches(item["classified_as"], e.vocab.WebPage) {
				if id := item.first("access_point").ID(); id != "" {
					return id
				}
			}
		}
	}
	for _, raw := range doc.seq("subject_of") {
		item := AsDocument(raw)
		if Matches(item["classified_as"], e.vocab.WebPage) {
			if id := item.ID(); id != "" {
				return id
			}
		}
	}
	e.logf("web page not found")
	return ""
}

// Thumbnail returns the access point of the object's thumbnail image,
// trying the digitally_shown_by wrapper before direct representation
// items.
func (e *Engine) Thumbnail(doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	for _, raw := range doc.seq("representation") {
		rep := AsDocument(raw)
		if shown := rep.seq("digitally_shown_by"); shown != nil {
			for _, s := range shown {
				item := AsDocument(s)
				if Matches(item["classified_as"], e.vocab.Thumbnail) {
					if id := item.first("access_point").ID(); id != "" {
						return id
					}
				}
			}
			continue
		}
		if Matches(rep["classified_as"], e.vocab.Thumbnail) {
			if id := rep.ID(); id != "" {
				return id
			}
		}
	}
	e.logf("thumbnail URI not found")
	return ""
}

// Description returns the object description from referred_to_by
// linguistic annotations, restricted to the precise tiers.
func (e *Engine) Description(doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	desc := selectContent(doc.seq("referred_to_by"), e.vocab.Description, e.vocab.English, "LinguisticObject", PreciseTiers)
	if desc == "" {
		e.logf("description not found")
	}
	return desc
}

// Citations collects all referred_to_by items classified as citations.
// Citations are legitimately multi-valued, so no single-value collapsing
// happens; each entry is its content or, failing that, its id.
func (e *Engine) Citations(doc Document) []string {
	if doc == nil {
		e.logf("data not available")
		return nil
	}
	var citations []string
	for _, raw := range doc.seq("referred_to_by") {
		item := AsDocument(raw)
		if Matches(item["classified_as"], e.vocab.Citation) {
			if c := item.str("content"); c != "" {
				citations = append(citations, c)
			} else if id := item.ID(); id != "" {
				citations = append(citations, id)
			}
		}
	}
	if len(citations) == 0 {
		e.logf("no citations found")
	}
	return citations
}

// FindSpot resolves where the object was encountered: the place of the
// first encounter activity, falling back to a source-specific free-text
// annotation.
func (e *Engine) FindSpot(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	placeID := doc.first("encountered_by").first("took_place_at").ID()
	if placeID != "" {
		if place := e.fetch(ctx, placeID); place != nil {
			if name := e.PrimaryName(place); name != "" {
				return name
			}
		}
	}
	if e.vocab.FindSpotNote != "" {
		if note := e.Statement(doc, []string{e.vocab.FindSpotNote}, "find spot note"); note != "" {
			return note
		}
	}
	e.logf("find spot not found")
	return ""
}

// Set resolves the primary name of the first set the object is a member of.
func (e *Engine) Set(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	return e.relatedName(ctx, doc.first("member_of").ID(), "set")
}

// Owner resolves the primary name of the current owner.
func (e *Engine) Owner(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	return e.relatedName(ctx, doc.first("current_owner").ID(), "owner")
}

// Location resolves the primary name of the current location. Unlike the
// other relations, current_location is a single reference, not an array.
func (e *Engine) Location(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	return e.relatedName(ctx, AsDocument(doc["current_location"]).ID(), "location")
}

// TookPlaceAt resolves where production took place, falling back to the
// encounter place when production carries no location.
func (e *Engine) TookPlaceAt(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}
	if id := AsDocument(doc["produced_by"]).first("took_place_at").ID(); id != "" {
		if name := e.relatedName(ctx, id, "took place at"); name != "" {
			return name
		}
	}
	if id := doc.first("encountered_by").first("took_place_at").ID(); id != "" {
		return e.relatedName(ctx, id, "took place at")
	}
	e.logf("took place at not found")
	return ""
}

// relatedName is the shared single-hop relational resolver: dereference
// one id and extract the primary name of the result.
func (e *Engine) relatedName(ctx context.Context, id, field string) string {
	if id == "" {
		e.logf("%s not found", field)
		return ""
	}
	related := e.fetch(ctx, id)
	if related == nil {
		e.logf("%s not found", field)
		return ""
	}
	name := e.PrimaryName(related)
	if name == "" {
		e.logf("%s not found", field)
	}
	return name
}

// DimensionsField resolves the dimensions output: a curated prose
// statement when the source carries one, otherwise statements built from
// the structured dimension entries.
func (e *Engine) DimensionsField(ctx context.Context, doc Document) string {
	if stmt := e.Statement(doc, e.vocab.DimensionsStatement, "dimensions statement"); stmt != "" {
		return stmt
	}
	return e.Dimensions(ctx, doc)
}
