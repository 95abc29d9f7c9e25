// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import "context"

// dimensionPattern tags the two irreconcilable structured-dimension
// encodings. Getty groups related measurements under a named set via
// member_of; LUX-style sources carry the grouping as an additional
// classification, either on an assigned_by sub-record or as a second
// entry in the dimension's own classification array.
type dimensionPattern int

const (
	patternSet dimensionPattern = iota
	patternClassified
)

func detectPattern(dim Document) dimensionPattern {
	if _, ok := dim["member_of"].([]any); ok {
		return patternSet
	}
	return patternClassified
}

// dimensionStatement is one resolved measurement plus the label of the
// group it renders under. An empty group label is permitted.
type dimensionStatement struct {
	statement string
	group     string
}

// Dimensions builds grouped, human-readable dimension statements from the
// structured dimension entries. Entries classified as positional
// attributes are discarded outright: they enumerate data values, not
// physical measurements. Unresolvable type or unit labels are logged as
// data-quality issues without aborting the remaining entries.
func (e *Engine) Dimensions(ctx context.Context, doc Document) string {
	if doc == nil {
		e.logf("data not available")
		return ""
	}

	var (
		order  []string
		groups = map[string][]string{}
	)
	for _, raw := range doc.seq("dimension") {
		dim := AsDocument(raw)
		if dim == nil || e.excludeDimension(dim) {
			continue
		}

		var stmt dimensionStatement
		var ok bool
		switch detectPattern(dim) {
		case patternSet:
			stmt, ok = e.setPatternStatement(ctx, dim)
		case patternClassified:
			stmt, ok = e.classifiedPatternStatement(ctx, dim)
		}
		if !ok {
			continue
		}

		if _, seen := groups[stmt.group]; !seen {
			order = append(order, stmt.group)
		}
		groups[stmt.group] = append(groups[stmt.group], stmt.statement)
	}

	var out string
	for i, label := range order {
		if i > 0 {
			out += "\n"
		}
		if label != "" {
			out += label + ": "
		}
		out += joinStatements(groups[label])
	}
	return out
}

func joinStatements(stmts []string) string {
	out := ""
	for i, s := range stmts {
		if i > 0 {
			out += "; "
		}
		out += s
	}
	return out
}

// excludeDimension reports whether the entry is a positional attribute.
// Exclusion dominates pattern selection.
func (e *Engine) excludeDimension(dim Document) bool {
	for _, raw := range dim.seq("classified_as") {
		if findVocabURI(raw, e.vocab.VocabHost) == e.vocab.PositionalAttribute {
			return true
		}
	}
	return false
}

// dimensionLabels resolves the measurement type and unit labels for one
// entry via term lookup.
func (e *Engine) dimensionLabels(ctx context.Context, dim Document) (typeLabel, unitLabel string) {
	typeURI := findVocabURI(dim["classified_as"], e.vocab.VocabHost)
	unitURI := findVocabURI(dim["unit"], e.vocab.VocabHost)

	if typeURI != "" {
		typeLabel = e.ResolveTerm(ctx, typeURI, "dimension", PreferredTerm)
	}
	if unitURI != "" {
		unitLabel = e.ResolveTerm(ctx, unitURI, "unit", PreferredTerm)
	}

	if typeLabel == "" {
		e.logf("unable to retrieve dimension type from %s", fallbackLabel(typeURI, dim["classified_as"]))
	}
	if unitLabel == "" {
		e.logf("unable to retrieve dimension unit from %s", fallbackLabel(unitURI, dim["unit"]))
	}
	return typeLabel, unitLabel
}

func fallbackLabel(uri string, refs any) string {
	if uri != "" {
		return uri
	}
	if ids := ExtractIDs(refs); len(ids) > 0 {
		return FormatList(ids)
	}
	return "unknown"
}

// setPatternStatement handles entries grouped under a named set via
// member_of; the group label is the set's resolved term.
func (e *Engine) setPatternStatement(ctx context.Context, dim Document) (dimensionStatement, bool) {
	stmt, ok := e.baseStatement(ctx, dim)
	if !ok {
		return dimensionStatement{}, false
	}

	group := ""
	for _, raw := range dim.seq("member_of") {
		id := AsDocument(raw).ID()
		if id == "" {
			continue
		}
		if label := e.ResolveTerm(ctx, id, "set label", PreferredTerm); label != "" {
			group = label
			break
		}
	}
	return dimensionStatement{statement: stmt, group: group}, true
}

// classifiedPatternStatement handles entries whose grouping comes from an
// additional classification: the first classification of an assigned_by
// sub-record, or the second entry of the dimension's own classification
// array.
func (e *Engine) classifiedPatternStatement(ctx context.Context, dim Document) (dimensionStatement, bool) {
	stmt, ok := e.baseStatement(ctx, dim)
	if !ok {
		return dimensionStatement{}, false
	}

	group := ""
	if assignments := dim.seq("assigned_by"); assignments != nil {
		for _, raw := range assignments {
			assignment := AsDocument(raw)
			classes := assignment.seq("classified_as")
			if len(classes) == 0 {
				continue
			}
			if uri := AsDocument(classes[0]).ID(); uri != "" {
				group = e.ResolveTerm(ctx, uri, "additional classification", PreferredTerm)
				if group == "" {
					e.logf("unable to retrieve additional classification label from %s", uri)
				}
			}
			break
		}
	} else if classes := dim.seq("classified_as"); len(classes) > 1 {
		if uri := AsDocument(classes[1]).ID(); uri != "" {
			group = e.ResolveTerm(ctx, uri, "additional classification", PreferredTerm)
			if group == "" {
				e.logf("unable to retrieve additional classification label from %s", uri)
			}
		}
	}
	return dimensionStatement{statement: stmt, group: group}, true
}

// baseStatement renders "<type label>: <value> <unit label>"; all three
// parts are required.
func (e *Engine) baseStatement(ctx context.Context, dim Document) (string, bool) {
	typeLabel, unitLabel := e.dimensionLabels(ctx, dim)
	value := dim.number("value")
	if value == "" || typeLabel == "" || unitLabel == "" {
		return "", false
	}
	return typeLabel + ": " + value + " " + unitLabel, true
}
