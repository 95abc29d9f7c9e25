// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

// Matches reports whether any entry in a classified_as style array carries
// an id contained in targets. Non-array input is a non-match, never an
// error: source data routinely omits or mis-shapes classification lists.
func Matches(classifications any, targets []string) bool {
	list, ok := classifications.([]any)
	if !ok {
		return false
	}
	for _, item := range list {
		id := AsDocument(item).ID()
		if id == "" {
			continue
		}
		for _, t := range targets {
			if id == t {
				return true
			}
		}
	}
	return false
}

// ExtractIDs collects the id of each element in an entity-reference array.
// It returns nil for non-array input so callers can distinguish "no ids"
// from "not a reference list".
func ExtractIDs(refs any) []string {
	list, ok := refs.([]any)
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(list))
	for _, item := range list {
		if id := AsDocument(item).ID(); id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}
