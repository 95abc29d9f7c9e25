// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package linked is the Linked Art extraction engine. It walks JSON-LD
// shaped documents (CIDOC-CRM / Linked Art) and recovers scalar metadata
// fields despite the multiple alternative encodings museums use for the
// same fact. Extraction is a read-only projection: documents are never
// mutated.
// Implements: docs/ARCHITECTURE § Extraction Engine.
package linked

import (
	"strconv"
	"strings"
)

// Document is one fetched JSON-LD node, as decoded by encoding/json.
// Attributes may be absent, scalar, or arrays; accessors below tolerate
// every shape and return zero values instead of panicking.
type Document map[string]any

// AsDocument converts a decoded JSON value to a Document. Non-map input
// yields nil.
func AsDocument(v any) Document {
	switch m := v.(type) {
	case Document:
		return m
	case map[string]any:
		return Document(m)
	default:
		return nil
	}
}

// seq returns the array under key, or nil when absent or not an array.
func (d Document) seq(key string) []any {
	if d == nil {
		return nil
	}
	s, _ := d[key].([]any)
	return s
}

// doc returns the nested mapping under key. Some sources wrap single
// relations in one-element arrays; the first element is used in that case.
func (d Document) doc(key string) Document {
	if d == nil {
		return nil
	}
	switch v := d[key].(type) {
	case map[string]any:
		return Document(v)
	case []any:
		if len(v) > 0 {
			return AsDocument(v[0])
		}
	}
	return nil
}

// str returns the string under key, or "".
func (d Document) str(key string) string {
	if d == nil {
		return ""
	}
	s, _ := d[key].(string)
	return s
}

// Type returns the document's type tag.
func (d Document) Type() string {
	return d.str("type")
}

// ID returns the document's identifier URI.
func (d Document) ID() string {
	return d.str("id")
}

// first returns the first element of the array under key as a Document.
func (d Document) first(key string) Document {
	s := d.seq(key)
	if len(s) == 0 {
		return nil
	}
	return AsDocument(s[0])
}

// number renders the numeric or string value under key. JSON numbers
// decode as float64; trailing zeros are trimmed so "67.3" stays "67.3".
func (d Document) number(key string) string {
	if d == nil {
		return ""
	}
	switch v := d[key].(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case string:
		return v
	}
	return ""
}

// findVocabURI walks v depth-first and returns the first string value
// hosted by the given vocabulary service, or "".
func findVocabURI(v any, host string) string {
	hostPart := strings.TrimPrefix(strings.TrimPrefix(host, "https://"), "http://")
	if hostPart == "" {
		return ""
	}
	return findURIContaining(v, hostPart)
}

func findURIContaining(v any, fragment string) string {
	switch t := v.(type) {
	case string:
		if strings.Contains(t, fragment) {
			return t
		}
	case []any:
		for _, item := range t {
			if uri := findURIContaining(item, fragment); uri != "" {
				return uri
			}
		}
	case map[string]any:
		for _, val := range t {
			if uri := findURIContaining(val, fragment); uri != "" {
				return uri
			}
		}
	case Document:
		return findURIContaining(map[string]any(t), fragment)
	}
	return ""
}
