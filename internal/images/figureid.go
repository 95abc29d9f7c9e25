// Copyright Whalen Digital Projects, 2026. All rights reserved.

package images

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\w\s]|_`)
var spaces = regexp.MustCompile(`\s+`)

// TitleSlug turns an object title into a figure-id fragment: lowercased,
// punctuation stripped, spaces hyphenated.
func TitleSlug(title string) string {
	s := strings.ToLower(title)
	s = nonWord.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	return spaces.ReplaceAllString(s, "-")
}

// FigureIDForObject derives a figure id for an object entry. The
// preferred id is cat-<objectID>; when taken, a title-based slug with an
// alphabetic suffix disambiguates.
func FigureIDForObject(objectID, title string, existingIDs []string) string {
	preferred := "cat-" + objectID
	if !contains(existingIDs, preferred) {
		return preferred
	}

	baseID := "cat-" + TitleSlug(title)
	prefixTaken := false
	for _, id := range existingIDs {
		if strings.HasPrefix(id, baseID) {
			prefixTaken = true
			break
		}
	}
	if !prefixTaken {
		return baseID
	}
	return baseID + nextSuffix(baseID, existingIDs)
}

// SuffixedFigureID appends the next free alphabetic suffix to
// cat-<objectID>, starting at "b"; used when adding additional figures to
// an object that already has one.
func SuffixedFigureID(objectID string, existingIDs []string) string {
	baseID := "cat-" + objectID
	suffix := "b"
	for contains(existingIDs, baseID+"-"+suffix) {
		suffix = string(rune(suffix[0] + 1))
	}
	return baseID + "-" + suffix
}

// nextSuffix returns "-a", "-b", ... skipping suffixes already in use
// under baseID.
func nextSuffix(baseID string, existingIDs []string) string {
	for r := 'a'; ; r++ {
		candidate := baseID + "-" + string(r)
		if !contains(existingIDs, candidate) {
			return "-" + string(r)
		}
	}
}

func contains(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
