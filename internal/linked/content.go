// Copyright Whalen Digital Projects, 2026. All rights reserved.

package linked

import "strings"

// Tier is the precision bucket a content item falls into: whether it
// matched both the semantic-role concept and the language concept, the
// role concept only, or neither.
type Tier int

const (
	TierPrimaryAndEn Tier = iota
	TierPrimary
	TierOther
)

func (t Tier) String() string {
	switch t {
	case TierPrimaryAndEn:
		return "primaryAndEn"
	case TierPrimary:
		return "primary"
	default:
		return "other"
	}
}

// AllTiers is the full precision order, most confident first.
var AllTiers = []Tier{TierPrimaryAndEn, TierPrimary, TierOther}

// PreciseTiers excludes the neither-matched bucket; used where a low
// confidence value is worse than none (object type, description).
var PreciseTiers = []Tier{TierPrimaryAndEn, TierPrimary}

// FormatList collapses a multi-valued extraction into one value:
// nothing for empty, the element verbatim for one, comma-joined otherwise.
func FormatList(values []string) string {
	switch len(values) {
	case 0:
		return ""
	case 1:
		return values[0]
	default:
		return strings.Join(values, ", ")
	}
}

// selectContent buckets candidate items into precision tiers and returns
// the first non-empty tier formatted, honoring the caller's declared tier
// interest. Items are filtered by type tag when itemType is non-empty.
// An item lands in a tier only when the caller asked for that tier; a
// role+language match is dropped entirely when TierPrimaryAndEn was not
// requested rather than demoted.
func selectContent(items []any, role, lang []string, itemType string, order []Tier) string {
	want := make(map[Tier]bool, len(order))
	for _, t := range order {
		want[t] = true
	}

	var primaryAndEn, primary, other []string
	for _, raw := range items {
		item := AsDocument(raw)
		if item == nil {
			continue
		}
		if itemType != "" && item.Type() != itemType {
			continue
		}

		hasRole := Matches(item["classified_as"], role)
		hasLang := Matches(item["language"], lang)

		switch {
		case want[TierPrimaryAndEn] && hasRole && hasLang:
			primaryAndEn = append(primaryAndEn, item.str("content"))
		case want[TierPrimary] && hasRole && !hasLang:
			primary = append(primary, item.str("content"))
		case want[TierOther] && !hasRole && !hasLang:
			other = append(other, item.str("content"))
		}
	}

	for _, bucket := range [][]string{primaryAndEn, primary, other} {
		if len(bucket) > 0 {
			return FormatList(bucket)
		}
	}
	return ""
}
