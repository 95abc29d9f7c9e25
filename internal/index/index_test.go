package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/mwhalen/artcat/pkg/types"
)

// --- test helpers ---

func testIndex(t *testing.T) *Index {
	t.Helper()
	idx, err := Open(types.IndexConfig{IndexDir: t.TempDir(), MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { idx.Close() })
	return idx
}

func record(uri, title, creator, objectType string) types.ObjectRecord {
	return types.ObjectRecord{
		URI: uri,
		Fields: map[types.FieldKey]any{
			types.FieldTitle:     title,
			types.FieldCreator:   creator,
			types.FieldType:      objectType,
			types.FieldYear:      "1889",
			types.FieldAccession: "1999.32.1",
		},
	}
}

func seedIndex(t *testing.T, idx *Index) {
	t.Helper()
	ctx := context.Background()
	entries := []struct {
		id  string
		rec types.ObjectRecord
	}{
		{"1", record("https://api.test/object/1", "Wheat Field with Cypresses", "Vincent van Gogh", "painting")},
		{"2", record("https://api.test/object/2", "Sunflowers", "Vincent van Gogh", "painting")},
		{"3", record("https://api.test/object/3", "Marble Statue of Aphrodite", "Unknown", "sculpture")},
	}
	for _, e := range entries {
		if err := idx.Upsert(ctx, e.id, e.rec); err != nil {
			t.Fatal(err)
		}
	}
}

// --- schema tests ---

func TestOpenCreatesSchema(t *testing.T) {
	idx := testIndex(t)

	for _, table := range []string{"objects", "objects_fts"} {
		var count int
		err := idx.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

func TestOpenCreatesDBFile(t *testing.T) {
	dir := t.TempDir()
	idx, err := Open(types.IndexConfig{IndexDir: filepath.Join(dir, "index")})
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	dbPath := filepath.Join(dir, "index", dbFile)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file not created at %s", dbPath)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	cfg := types.IndexConfig{IndexDir: dir}

	first, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Upsert(context.Background(), "1", record("https://api.test/object/1", "Sunflowers", "Vincent van Gogh", "painting")); err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := Open(cfg)
	if err != nil {
		t.Fatalf("reopening index: %v", err)
	}
	defer second.Close()

	results, err := second.Query(context.Background(), "Sunflowers", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results after reopen, want 1", len(results))
	}
}

// --- upsert tests ---

func TestUpsertReplacesByURI(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()
	uri := "https://api.test/object/1"

	if err := idx.Upsert(ctx, "1", record(uri, "Draft Title", "Unknown", "painting")); err != nil {
		t.Fatal(err)
	}
	if err := idx.Upsert(ctx, "1", record(uri, "Wheat Field with Cypresses", "Vincent van Gogh", "painting")); err != nil {
		t.Fatal(err)
	}

	var count int
	if err := idx.db.QueryRow(`SELECT count(*) FROM objects`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("got %d rows, want 1 (same URI must replace, not duplicate)", count)
	}

	// The FTS table must track the replacement.
	if results, err := idx.Query(ctx, "Draft", 0); err != nil {
		t.Fatal(err)
	} else if len(results) != 0 {
		t.Errorf("stale title still searchable: %v", results)
	}
	results, err := idx.Query(ctx, "Cypresses", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || results[0].Creator != "Vincent van Gogh" {
		t.Errorf("Query = %v, want the updated row", results)
	}
}

func TestUpsertStoresAllFields(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()

	if err := idx.Upsert(ctx, "7", record("https://api.test/object/7", "Sunflowers", "Vincent van Gogh", "painting")); err != nil {
		t.Fatal(err)
	}

	results, err := idx.Query(ctx, "Sunflowers", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1", len(results))
	}
	r := results[0]
	if r.ObjectID != "7" {
		t.Errorf("ObjectID = %q, want %q", r.ObjectID, "7")
	}
	if r.Year != "1889" {
		t.Errorf("Year = %q, want %q", r.Year, "1889")
	}
	if r.Accession != "1999.32.1" {
		t.Errorf("Accession = %q, want %q", r.Accession, "1999.32.1")
	}
}

// --- full-text search tests ---

func TestQuery(t *testing.T) {
	idx := testIndex(t)
	seedIndex(t, idx)

	tests := []struct {
		name    string
		query   string
		want    int
	}{
		{"creator term", "Gogh", 2},
		{"title term", "Aphrodite", 1},
		{"object type term", "sculpture", 1},
		{"no match", "tapestry", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := idx.Query(context.Background(), tt.query, 0)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestQueryRespectsMaxResults(t *testing.T) {
	idx := testIndex(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		uri := fmt.Sprintf("https://api.test/object/%d", i)
		if err := idx.Upsert(ctx, fmt.Sprint(i), record(uri, "Sunflowers study", "Vincent van Gogh", "painting")); err != nil {
			t.Fatal(err)
		}
	}

	results, err := idx.Query(ctx, "Sunflowers", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) > 2 {
		t.Errorf("got %d results, want <= 2", len(results))
	}
}

// --- select tests ---

func TestSelect(t *testing.T) {
	idx := testIndex(t)
	seedIndex(t, idx)
	ctx := context.Background()

	tests := []struct {
		name        string
		creators    []string
		objectTypes []string
		want        int
	}{
		{"no filters match everything", nil, nil, 3},
		{"creator fragment", []string{"gogh"}, nil, 2},
		{"creators OR together", []string{"gogh", "unknown"}, nil, 3},
		{"creator AND type", []string{"gogh"}, []string{"sculpture"}, 0},
		{"type alone", nil, []string{"sculpture"}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := idx.Select(ctx, tt.creators, tt.objectTypes)
			if err != nil {
				t.Fatal(err)
			}
			if len(results) != tt.want {
				t.Errorf("got %d results, want %d", len(results), tt.want)
			}
		})
	}
}

func TestSelectOrdersByObjectID(t *testing.T) {
	idx := testIndex(t)
	seedIndex(t, idx)

	results, err := idx.Select(context.Background(), nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i := 1; i < len(results); i++ {
		if results[i-1].ObjectID > results[i].ObjectID {
			t.Errorf("results not ordered by object_id: %q before %q",
				results[i-1].ObjectID, results[i].ObjectID)
		}
	}
}

// --- remove tests ---

func TestRemove(t *testing.T) {
	idx := testIndex(t)
	seedIndex(t, idx)
	ctx := context.Background()

	if err := idx.Remove(ctx, "https://api.test/object/3"); err != nil {
		t.Fatal(err)
	}

	results, err := idx.Query(ctx, "Aphrodite", 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 0 {
		t.Errorf("removed row still searchable: %v", results)
	}

	// Removing an absent URI is not an error.
	if err := idx.Remove(ctx, "https://api.test/object/404"); err != nil {
		t.Errorf("Remove(absent) = %v, want nil", err)
	}
}
