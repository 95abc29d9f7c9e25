// Copyright Whalen Digital Projects, 2026. All rights reserved.

// Package index maintains a SQLite full-text index over catalog entries.
// The YAML catalog stays the source of truth; the index is derived and
// can be rebuilt from it at any time.
// Implements: docs/ARCHITECTURE § Catalog Index.
package index

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mwhalen/artcat/pkg/types"
)

const dbFile = "catalog.db"

// Index manages the catalog SQLite database.
type Index struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates the catalog index at indexDir/catalog.db,
// creating the schema if it does not exist.
func Open(cfg types.IndexConfig) (*Index, error) {
	if err := os.MkdirAll(cfg.IndexDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	dbPath := filepath.Join(cfg.IndexDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	idx := &Index{db: db, maxResults: maxResults}
	if err := idx.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return idx, nil
}

// Close releases the database connection.
func (x *Index) Close() error {
	return x.db.Close()
}

func (x *Index) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS objects (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			uri TEXT NOT NULL UNIQUE,
			object_id TEXT,
			title TEXT,
			creator TEXT,
			object_type TEXT,
			year TEXT,
			accession TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_objects_object_id ON objects(object_id)`,
	}

	for _, stmt := range statements {
		if _, err := x.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := x.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='objects_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE objects_fts USING fts5(title, creator, object_type, content=objects, content_rowid=rowid)`,
			`CREATE TRIGGER objects_ai AFTER INSERT ON objects BEGIN
				INSERT INTO objects_fts(rowid, title, creator, object_type)
				VALUES (new.rowid, new.title, new.creator, new.object_type);
			END`,
			`CREATE TRIGGER objects_ad AFTER DELETE ON objects BEGIN
				INSERT INTO objects_fts(objects_fts, rowid, title, creator, object_type)
				VALUES('delete', old.rowid, old.title, old.creator, old.object_type);
			END`,
			`CREATE TRIGGER objects_au AFTER UPDATE ON objects BEGIN
				INSERT INTO objects_fts(objects_fts, rowid, title, creator, object_type)
				VALUES('delete', old.rowid, old.title, old.creator, old.object_type);
				INSERT INTO objects_fts(rowid, title, creator, object_type)
				VALUES (new.rowid, new.title, new.creator, new.object_type);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := x.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// Upsert records one extracted object under its catalog id. Existing
// rows for the same URI are replaced in full.
func (x *Index) Upsert(ctx context.Context, objectID string, rec types.ObjectRecord) error {
	_, err := x.db.ExecContext(ctx,
		`INSERT INTO objects (uri, object_id, title, creator, object_type, year, accession)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(uri) DO UPDATE SET
			object_id=excluded.object_id, title=excluded.title,
			creator=excluded.creator, object_type=excluded.object_type,
			year=excluded.year, accession=excluded.accession`,
		rec.URI, objectID,
		fieldString(rec, types.FieldTitle),
		fieldString(rec, types.FieldCreator),
		fieldString(rec, types.FieldType),
		fieldString(rec, types.FieldYear),
		fieldString(rec, types.FieldAccession),
	)
	if err != nil {
		return fmt.Errorf("upserting object %s: %w", rec.URI, err)
	}
	return nil
}

func fieldString(rec types.ObjectRecord, key types.FieldKey) string {
	s, _ := rec.Fields[key].(string)
	return s
}

// Remove deletes the row for uri, if any.
func (x *Index) Remove(ctx context.Context, uri string) error {
	if _, err := x.db.ExecContext(ctx, `DELETE FROM objects WHERE uri = ?`, uri); err != nil {
		return fmt.Errorf("removing object %s: %w", uri, err)
	}
	return nil
}

// Result is one indexed catalog entry.
type Result struct {
	URI        string
	ObjectID   string
	Title      string
	Creator    string
	ObjectType string
	Year       string
	Accession  string
}

// Query runs an FTS5 full-text search over title, creator, and object
// type, ranked by relevance. maxResults of zero uses the index default.
func (x *Index) Query(ctx context.Context, query string, maxResults int) ([]Result, error) {
	if maxResults <= 0 {
		maxResults = x.maxResults
	}

	rows, err := x.db.QueryContext(ctx,
		`SELECT o.uri, o.object_id, o.title, o.creator, o.object_type, o.year, o.accession
		 FROM objects_fts
		 JOIN objects o ON o.rowid = objects_fts.rowid
		 WHERE objects_fts MATCH ?
		 ORDER BY objects_fts.rank
		 LIMIT ?`,
		query, maxResults)
	if err != nil {
		return nil, fmt.Errorf("querying catalog index: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// Select returns entries matching any of the given creator fragments and
// any of the given object-type fragments, case-insensitively. Empty
// filter slices match everything.
func (x *Index) Select(ctx context.Context, creators, objectTypes []string) ([]Result, error) {
	var (
		qb   strings.Builder
		args []any
	)
	qb.WriteString(`SELECT uri, object_id, title, creator, object_type, year, accession
		 FROM objects WHERE 1=1`)

	appendAnyOf := func(column string, fragments []string) {
		if len(fragments) == 0 {
			return
		}
		qb.WriteString(` AND (`)
		for i, f := range fragments {
			if i > 0 {
				qb.WriteString(` OR `)
			}
			qb.WriteString(column + ` LIKE ?`)
			args = append(args, "%"+f+"%")
		}
		qb.WriteString(`)`)
	}
	appendAnyOf("creator", creators)
	appendAnyOf("object_type", objectTypes)
	qb.WriteString(` ORDER BY object_id, uri`)

	rows, err := x.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("filtering catalog index: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var (
			r     Result
			id    sql.NullString
			title sql.NullString
			name  sql.NullString
			typ   sql.NullString
			year  sql.NullString
			acc   sql.NullString
		)
		if err := rows.Scan(&r.URI, &id, &title, &name, &typ, &year, &acc); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		r.ObjectID = id.String
		r.Title = title.String
		r.Creator = name.String
		r.ObjectType = typ.String
		r.Year = year.String
		r.Accession = acc.String
		results = append(results, r)
	}
	return results, rows.Err()
}
