// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package catalog is the YAML-backed object and figure datastore. It
// mirrors the Quire data-file contract: objects.yaml carries an
// object_display_order list and an object_list of flat entries,
// figures.yaml carries a figure_list. The extraction engine never touches
// these files; it hands flat records to this package.
package catalog

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/mwhalen/artcat/pkg/types"
)

// ImmutableFieldNames are catalog columns whose names cannot be remapped
// through configuration; identifier generation and figure linkage depend
// on them.
var ImmutableFieldNames = []string{"id", "title", "figure", "link", "thumbnail"}

// ValidateFieldNames rejects configured field names that collide with the
// immutable columns.
func ValidateFieldNames(fieldNames map[string]string) error {
	var collisions []string
	for _, name := range fieldNames {
		for _, immutable := range ImmutableFieldNames {
			if name == immutable {
				collisions = append(collisions, name)
			}
		}
	}
	if len(collisions) > 0 {
		return fmt.Errorf("cannot remap immutable field names: %s", strings.Join(ImmutableFieldNames, ", "))
	}
	return nil
}

// Entry is one object record as stored in objects.yaml.
type Entry map[string]any

// Objects is the objects.yaml document.
type Objects struct {
	DisplayOrder []string `yaml:"object_display_order"`
	List         []Entry  `yaml:"object_list"`
}

// Figures is the figures.yaml document.
type Figures struct {
	List []types.FigureRecord `yaml:"figure_list"`
}

// LoadObjects reads objects.yaml. A missing file yields an empty document.
func LoadObjects(path string) (*Objects, error) {
	var o Objects
	if err := loadYAML(path, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

// SaveObjects writes objects.yaml back.
func SaveObjects(path string, o *Objects) error {
	return saveYAML(path, o)
}

// LoadFigures reads figures.yaml, normalizing empty or placeholder lists
// (a single entry with a blank or "-" id) to an empty list.
func LoadFigures(path string) (*Figures, error) {
	var f Figures
	if err := loadYAML(path, &f); err != nil {
		return nil, err
	}
	if len(f.List) == 1 {
		id := strings.TrimSpace(f.List[0].ID)
		if id == "" || id == "-" {
			f.List = nil
		}
	}
	return &f, nil
}

// SaveFigures writes figures.yaml back.
func SaveFigures(path string, f *Figures) error {
	return saveYAML(path, f)
}

func loadYAML(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}

func saveYAML(path string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0o644)
}

// SeedDisplayOrder populates an empty or placeholder display order with
// the initial field columns (creator, year, accession, uri, mapped
// through fieldNames). It reports whether seeding happened so the caller
// can tell the user the file was rewritten.
func (o *Objects) SeedDisplayOrder(fieldNames map[string]string) bool {
	if len(o.DisplayOrder) > 1 {
		return false
	}
	if len(o.DisplayOrder) == 1 && strings.TrimSpace(o.DisplayOrder[0]) != "" {
		return false
	}

	initial := []types.FieldKey{
		types.FieldCreator, types.FieldYear, types.FieldAccession, types.FieldURI,
	}
	o.DisplayOrder = o.DisplayOrder[:0]
	for _, key := range initial {
		o.DisplayOrder = append(o.DisplayOrder, ColumnName(fieldNames, key))
	}
	return true
}

// ColumnName maps a field key to its configured objects.yaml column name,
// defaulting to the key itself.
func ColumnName(fieldNames map[string]string, key types.FieldKey) string {
	if name, ok := fieldNames[string(key)]; ok && name != "" {
		return name
	}
	return string(key)
}

// FieldKeyFor reverses ColumnName: given a configured column name it
// returns the field key, or "" when the column is unknown.
func FieldKeyFor(fieldNames map[string]string, column string) types.FieldKey {
	for _, key := range types.AllFields() {
		if ColumnName(fieldNames, key) == column {
			return key
		}
	}
	return ""
}

// HasURI reports whether any field of any entry equals uri. The check is
// deliberately broad — any column, not just the uri column — matching the
// established duplicate-detection contract.
func (o *Objects) HasURI(uri string) bool {
	return o.indexOfURI(uri) != -1
}

// RemoveByURI deletes the first entry carrying uri in any field and
// reports whether one was removed.
func (o *Objects) RemoveByURI(uri string) bool {
	i := o.indexOfURI(uri)
	if i == -1 {
		return false
	}
	o.List = append(o.List[:i], o.List[i+1:]...)
	return true
}

func (o *Objects) indexOfURI(uri string) int {
	for i, entry := range o.List {
		for _, v := range entry {
			if s, ok := v.(string); ok && s == uri {
				return i
			}
		}
	}
	return -1
}

// FindByURI returns the entry whose uri column equals uri.
func (o *Objects) FindByURI(uriColumn, uri string) (Entry, bool) {
	for _, entry := range o.List {
		if s, ok := entry[uriColumn].(string); ok && s == uri {
			return entry, true
		}
	}
	return nil, false
}

// HasID reports whether an entry with the given id exists.
func (o *Objects) HasID(id string) bool {
	_, ok := o.FindByID(id)
	return ok
}

// FindByID returns the entry with the given id.
func (o *Objects) FindByID(id string) (Entry, bool) {
	for _, entry := range o.List {
		if entryID(entry) == id {
			return entry, true
		}
	}
	return nil, false
}

func entryID(e Entry) string {
	switch v := e["id"].(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.Itoa(int(v))
	}
	return ""
}

// NextID allocates the smallest positive integer id not already in use.
func (o *Objects) NextID() int {
	used := make(map[int]bool, len(o.List))
	for _, entry := range o.List {
		if n, err := strconv.Atoi(entryID(entry)); err == nil {
			used[n] = true
		}
	}
	for i := 1; ; i++ {
		if !used[i] {
			return i
		}
	}
}

// Insert appends an entry and keeps the list sorted by numeric id;
// non-numeric ids sort after numeric ones, lexically.
func (o *Objects) Insert(entry Entry) {
	o.List = append(o.List, entry)
	sort.SliceStable(o.List, func(i, j int) bool {
		a, aErr := strconv.Atoi(entryID(o.List[i]))
		b, bErr := strconv.Atoi(entryID(o.List[j]))
		switch {
		case aErr == nil && bErr == nil:
			return a < b
		case aErr == nil:
			return true
		case bErr == nil:
			return false
		default:
			return entryID(o.List[i]) < entryID(o.List[j])
		}
	})
}

// AttachFigure appends a figure reference to the entry's figure list,
// skipping duplicates.
func AttachFigure(entry Entry, figureID string) {
	var figures []any
	if existing, ok := entry["figure"].([]any); ok {
		figures = existing
	}
	for _, raw := range figures {
		if ref, ok := raw.(map[string]any); ok && ref["id"] == figureID {
			return
		}
	}
	entry["figure"] = append(figures, map[string]any{"id": figureID})
}

// FindByURI returns the figure record for uri.
func (f *Figures) FindByURI(uri string) (types.FigureRecord, bool) {
	for _, fig := range f.List {
		if fig.URI == uri {
			return fig, true
		}
	}
	return types.FigureRecord{}, false
}

// HasFigureID reports whether a figure with id exists.
func (f *Figures) HasFigureID(id string) bool {
	for _, fig := range f.List {
		if fig.ID == id {
			return true
		}
	}
	return false
}

// NextFigureID allocates one past the highest numeric figure id.
func (f *Figures) NextFigureID() int {
	maxID := 0
	for _, fig := range f.List {
		if n, err := strconv.Atoi(fig.ID); err == nil && n > maxID {
			maxID = n
		}
	}
	return maxID + 1
}

// FigureIDs returns all figure ids.
func (f *Figures) FigureIDs() []string {
	ids := make([]string, len(f.List))
	for i, fig := range f.List {
		ids[i] = fig.ID
	}
	return ids
}
