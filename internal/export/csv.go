// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package export writes CSV spreadsheets from extracted catalog data:
// a per-activity summary of member objects, and a flattened field dump
// of a single object record.
package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/mwhalen/artcat/internal/linked"
)

// Placeholder values written when extraction came up empty. The select
// filter treats them as non-values.
const (
	UnknownTitle   = "Unknown Title"
	UnknownCreator = "Unknown Creator"
	UnknownType    = "Unknown Type"
	MissingImage   = "Image URI not found"
)

var activityHeader = []string{"Linked Art URI", "Object Title", "Creator", "Object Type", "Image URI"}

// ActivityRow is one member object of an activity spreadsheet.
type ActivityRow struct {
	URI        string
	Title      string
	Creator    string
	ObjectType string
	ImageURI   string
}

// WriteActivitySpreadsheet writes the activity summary CSV. Empty cells
// are replaced by their placeholder values.
func WriteActivitySpreadsheet(w io.Writer, rows []ActivityRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(activityHeader); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for _, row := range rows {
		record := []string{
			row.URI,
			orElse(row.Title, UnknownTitle),
			orElse(row.Creator, UnknownCreator),
			orElse(row.ObjectType, UnknownType),
			orElse(row.ImageURI, MissingImage),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row for %s: %w", row.URI, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var (
	nonFileChar = regexp.MustCompile(`[^\w\s-]`)
	whitespace  = regexp.MustCompile(`\s+`)
)

// ActivityFileName names the activity spreadsheet after the activity
// title, with filesystem-hostile characters replaced.
func ActivityFileName(activityTitle string) string {
	return nonFileChar.ReplaceAllString(activityTitle, "_") + ".csv"
}

// ObjectFileName names the flattened object spreadsheet after the object
// title: lowercased, whitespace underscored, punctuation stripped.
func ObjectFileName(title string) string {
	s := strings.ToLower(title)
	s = whitespace.ReplaceAllString(s, "_")
	s = nonFileChar.ReplaceAllString(s, "")
	s = strings.Trim(s, "-")
	return s + "_data.csv"
}

// LabelResolver turns a URI into a display label, typically the primary
// name of the record it dereferences to.
type LabelResolver func(ctx context.Context, uri string) (string, error)

// WriteObjectCSV writes the Field,Content dump of one object document.
// Values are the document flattened to underscore-joined key paths.
// http(s) values are passed through resolve so the reader sees names
// instead of URIs; rows whose value fails to resolve are dropped.
func WriteObjectCSV(ctx context.Context, w io.Writer, doc linked.Document, resolve LabelResolver) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Field", "Content"}); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, kv := range Flatten(doc) {
		value := kv.Value
		if strings.HasPrefix(value, "http") && resolve != nil {
			label, err := resolve(ctx, value)
			if err != nil {
				continue
			}
			if label != "" {
				value = label
			}
		}
		if err := cw.Write([]string{kv.Key, value}); err != nil {
			return fmt.Errorf("writing field %s: %w", kv.Key, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// KV is one flattened field of a document.
type KV struct {
	Key   string
	Value string
}

// Flatten reduces a nested document to scalar leaves keyed by their
// underscore-joined paths; array elements are keyed by index. Keys are
// sorted at each level so output is deterministic.
func Flatten(doc linked.Document) []KV {
	var out []KV
	flattenValue(map[string]any(doc), "", &out)
	return out
}

func flattenValue(v any, prefix string, out *[]KV) {
	switch t := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			flattenValue(t[k], prefix+k+"_", out)
		}
	case linked.Document:
		flattenValue(map[string]any(t), prefix, out)
	case []any:
		for i, item := range t {
			flattenValue(item, prefix+strconv.Itoa(i)+"_", out)
		}
	case string:
		*out = append(*out, KV{Key: strings.TrimSuffix(prefix, "_"), Value: t})
	case float64:
		*out = append(*out, KV{Key: strings.TrimSuffix(prefix, "_"), Value: strconv.FormatFloat(t, 'f', -1, 64)})
	case bool:
		*out = append(*out, KV{Key: strings.TrimSuffix(prefix, "_"), Value: strconv.FormatBool(t)})
	}
}

// documentationURLs maps record types to the Linked Art endpoint docs
// describing their fields.
var documentationURLs = map[string]string{
	"HumanMadeObject": "https://linked.art/api/1.0/endpoint/physical_object/",
	"DigitalObject":   "https://linked.art/api/1.0/endpoint/digital_object/",
	"Activity":        "https://linked.art/api/1.0/endpoint/event/",
}

// DocumentationURL returns the field-reference documentation link for a
// record type.
func DocumentationURL(recordType string) string {
	if url, ok := documentationURLs[recordType]; ok {
		return url
	}
	return "Documentation link not available for this data type."
}
